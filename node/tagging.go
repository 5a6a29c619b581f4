package node

import (
	"reflect"

	"github.com/susji/cl/token"
	"github.com/susji/cl/types"
)

// Common is embedded in every node. It holds the originating token and the
// annotations written by semantic analysis.
type Common struct {
	tok *token.Token
	typ *types.Type
	ref bool
}

// Store does all the relevant book-keeping for a Node.
func Store(tok *token.Token, n Node) Node {
	if n == nil {
		panic("nil node")
	}
	if tok == nil {
		panic("nil token")
	}
	// The embedded Common is initialized via reflection, so every node
	// constructor stays a plain composite literal.
	f := reflect.ValueOf(n).Elem().FieldByName("Common")
	f.Set(reflect.ValueOf(Common{tok: tok}))
	return n
}

func (c *Common) Tok() *token.Token {
	return c.tok
}

// Line is the line number of the originating token, zero for nodes built
// without one.
func (c *Common) Line() int {
	if c.tok == nil {
		return 0
	}
	return c.tok.Lineno()
}

// Type is nil until the node has been analyzed.
func (c *Common) Type() *types.Type {
	return c.typ
}

func (c *Common) SetType(t *types.Type) {
	c.typ = t
}

// Ref tells whether the node designates a storable location.
func (c *Common) Ref() bool {
	return c.ref
}

func (c *Common) SetRef(ref bool) {
	c.ref = ref
}
