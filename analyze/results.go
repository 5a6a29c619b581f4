package analyze

import (
	"github.com/susji/cl/node"
	"github.com/susji/cl/symtab"
	"github.com/susji/cl/types"
)

type Headers map[*node.Subprogram]*types.Type
type Scopes map[symtab.Handle]node.Node

// Results should contain everything that should be passed onwards from the
// analysis stage in addition to the annotated tree itself:
//
//  1. The signature of every procedure and function
//  2. Which node introduced each scope
type Results struct {
	Headers Headers
	Scopes  Scopes
}
