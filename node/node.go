package node

import (
	"fmt"
	"strings"

	"github.com/susji/cl/symtab"
	"github.com/susji/cl/token"
	"github.com/susji/cl/types"
)

// Node is the interface, which must be implemented by all syntax tree nodes.
// All Nodes must be able to produce the Token which they originated from,
// carry their analysis annotations and stringify themselves in a sexpr.
type Node interface {
	String() string
	Tok() *token.Token
	Line() int
	Type() *types.Type
	SetType(*types.Type)
	Ref() bool
	SetRef(bool)
}

// Program is the root of a compilation unit.
type Program struct {
	Common
	Vars     []*VarDecl
	Subprogs []*Subprogram
	Body     *Block
	// Scope is filled in by semantic analysis.
	Scope symtab.Handle
}

// Subprogram is either a procedure or a function. Returns is nil for
// procedures.
type Subprogram struct {
	Common
	Name     string
	Function bool
	Params   []*Param
	Returns  Node
	Vars     []*VarDecl
	Subprogs []*Subprogram
	Body     *Block
	Scope    symtab.Handle
}

type Param struct {
	Common
	Name  string
	ByRef bool
	Kind  Node
}

// VarDecl declares one or more variables sharing a single type expression.
type VarDecl struct {
	Common
	Names []string
	Kind  Node
}

// BasicType is "int" or "bool".
type BasicType struct {
	Common
	Name string
}

type ArrayType struct {
	Common
	Size *IntLit
	Elem Node
}

type StructType struct {
	Common
	Fields []*Field
}

type Field struct {
	Common
	Name string
	Kind Node
}

type Block struct {
	Common
	Value []Node
}

type Assign struct {
	Common
	To, What Node
}

// If has a nil False when there is no else branch.
type If struct {
	Common
	Cond        Node
	True, False *Block
}

type While struct {
	Common
	Cond Node
	Body *Block
}

type Read struct {
	Common
	Expr Node
}

// Write is both "write" and "writeln".
type Write struct {
	Common
	Expr    Node
	Newline bool
}

type Return struct {
	Common
	Expr Node
}

type Ident struct {
	Common
	Value string
}

type IntLit struct {
	Common
	Value int
}

type BoolLit struct {
	Common
	Value bool
}

type OpUnary struct {
	Common
	Op KindOpUn
	To Node
}

type OpBinary struct {
	Common
	Op          KindOpBin
	Left, Right Node
}

type Index struct {
	Common
	Base, Index Node
}

type FieldAccess struct {
	Common
	Base  Node
	Field string
}

// Call is a procedure call when it appears directly in a Block and a
// function call anywhere else.
type Call struct {
	Common
	Callee *Ident
	Args   []Node
}

type KindOpBin int
type KindOpUn int

const (
	OPUN_NEG KindOpUn = iota
	OPUN_NOT
)

var opunnames = [...]string{
	"-",
	"not",
}

func (k KindOpUn) String() string {
	return opunnames[k]
}

const (
	OPBIN_ADD KindOpBin = iota
	OPBIN_SUB
	OPBIN_MUL
	OPBIN_DIV
	OPBIN_LT
	OPBIN_GT
	OPBIN_EQ
	OPBIN_AND
	OPBIN_OR
)

var opbinnames = [...]string{
	"+",
	"-",
	"*",
	"/",
	"<",
	">",
	"=",
	"and",
	"or",
}

func (k KindOpBin) String() string {
	return opbinnames[k]
}

func str(n Node) string {
	if n == nil {
		return "nil"
	}
	return n.String()
}

func sexpr(head string, parts ...string) string {
	b := &strings.Builder{}
	b.WriteString("(")
	b.WriteString(head)
	for _, part := range parts {
		b.WriteString(" ")
		b.WriteString(part)
	}
	b.WriteString(")")
	return b.String()
}

func vars(vs []*VarDecl) string {
	parts := []string{}
	for _, v := range vs {
		parts = append(parts, v.String())
	}
	return sexpr("vars", parts...)
}

func subprogs(ss []*Subprogram) string {
	parts := []string{}
	for _, s := range ss {
		parts = append(parts, s.String())
	}
	return sexpr("subprogs", parts...)
}

func (n *Program) String() string {
	return sexpr("program", vars(n.Vars), subprogs(n.Subprogs), str(n.Body))
}

func (n *Subprogram) String() string {
	params := []string{}
	for _, p := range n.Params {
		params = append(params, p.String())
	}
	head := "procedure"
	if n.Function {
		head = "function"
	}
	parts := []string{fmt.Sprintf("%q", n.Name), sexpr("params", params...)}
	if n.Function {
		parts = append(parts, str(n.Returns))
	}
	parts = append(parts, vars(n.Vars), subprogs(n.Subprogs), str(n.Body))
	return sexpr(head, parts...)
}

func (n *Param) String() string {
	mode := "val"
	if n.ByRef {
		mode = "ref"
	}
	return sexpr(mode, fmt.Sprintf("%q", n.Name), str(n.Kind))
}

func (n *VarDecl) String() string {
	parts := []string{}
	for _, name := range n.Names {
		parts = append(parts, fmt.Sprintf("%q", name))
	}
	parts = append(parts, str(n.Kind))
	return sexpr("vardecl", parts...)
}

func (n *BasicType) String() string {
	return n.Name
}

func (n *ArrayType) String() string {
	size := "nil"
	if n.Size != nil {
		size = n.Size.String()
	}
	return sexpr("array", size, str(n.Elem))
}

func (n *StructType) String() string {
	parts := []string{}
	for _, f := range n.Fields {
		parts = append(parts, f.String())
	}
	return sexpr("struct", parts...)
}

func (n *Field) String() string {
	return sexpr("field", fmt.Sprintf("%q", n.Name), str(n.Kind))
}

func (n *Block) String() string {
	parts := []string{}
	for _, stmt := range n.Value {
		parts = append(parts, str(stmt))
	}
	return sexpr("begin", parts...)
}

func (n *Assign) String() string {
	return sexpr(":=", str(n.To), str(n.What))
}

func (n *If) String() string {
	f := "'noelse"
	if n.False != nil {
		f = n.False.String()
	}
	return sexpr("if", str(n.Cond), n.True.String(), f)
}

func (n *While) String() string {
	return sexpr("while", str(n.Cond), n.Body.String())
}

func (n *Read) String() string {
	return sexpr("read", str(n.Expr))
}

func (n *Write) String() string {
	if n.Newline {
		return sexpr("writeln", str(n.Expr))
	}
	return sexpr("write", str(n.Expr))
}

func (n *Return) String() string {
	return sexpr("return", str(n.Expr))
}

func (n *Ident) String() string {
	return n.Value
}

func (n *IntLit) String() string {
	return fmt.Sprintf("%d", n.Value)
}

func (n *BoolLit) String() string {
	return fmt.Sprintf("%t", n.Value)
}

func (n *OpUnary) String() string {
	if n.Op == OPUN_NEG {
		return sexpr("u-", str(n.To))
	}
	return sexpr(n.Op.String(), str(n.To))
}

func (n *OpBinary) String() string {
	return sexpr(n.Op.String(), str(n.Left), str(n.Right))
}

func (n *Index) String() string {
	return sexpr("[]", str(n.Base), str(n.Index))
}

func (n *FieldAccess) String() string {
	return sexpr(".", str(n.Base), n.Field)
}

func (n *Call) String() string {
	parts := []string{n.Callee.String()}
	for _, arg := range n.Args {
		parts = append(parts, str(arg))
	}
	return sexpr("call", parts...)
}

// NodeCallback is called by Walk for each individual Node encountered. The
// integer argument is the current recursion depth. NodeCallback has to return
// a boolean, which indicates whether to continue recursion for the present
// path.
type NodeCallback func(Node, int) bool

// Children lists the direct subnodes of n in source order.
func Children(node Node) []Node {
	sub := []Node{}
	a := func(n Node) {
		if n != nil {
			sub = append(sub, n)
		}
	}
	switch t := node.(type) {
	case *Program:
		for _, v := range t.Vars {
			a(v)
		}
		for _, s := range t.Subprogs {
			a(s)
		}
		if t.Body != nil {
			a(t.Body)
		}
	case *Subprogram:
		for _, p := range t.Params {
			a(p)
		}
		a(t.Returns)
		for _, v := range t.Vars {
			a(v)
		}
		for _, s := range t.Subprogs {
			a(s)
		}
		if t.Body != nil {
			a(t.Body)
		}
	case *Param:
		a(t.Kind)
	case *VarDecl:
		a(t.Kind)
	case *ArrayType:
		if t.Size != nil {
			a(t.Size)
		}
		a(t.Elem)
	case *StructType:
		for _, f := range t.Fields {
			a(f)
		}
	case *Field:
		a(t.Kind)
	case *Block:
		for _, stmt := range t.Value {
			a(stmt)
		}
	case *Assign:
		a(t.To)
		a(t.What)
	case *If:
		a(t.Cond)
		if t.True != nil {
			a(t.True)
		}
		if t.False != nil {
			a(t.False)
		}
	case *While:
		a(t.Cond)
		if t.Body != nil {
			a(t.Body)
		}
	case *Read:
		a(t.Expr)
	case *Write:
		a(t.Expr)
	case *Return:
		a(t.Expr)
	case *OpUnary:
		a(t.To)
	case *OpBinary:
		a(t.Left)
		a(t.Right)
	case *Index:
		a(t.Base)
		a(t.Index)
	case *FieldAccess:
		a(t.Base)
	case *Call:
		if t.Callee != nil {
			a(t.Callee)
		}
		for _, arg := range t.Args {
			a(arg)
		}
	default:
	}
	return sub
}

func walk(node Node, cb NodeCallback, depth int) {
	if !cb(node, depth) {
		return
	}
	for _, n := range Children(node) {
		walk(n, cb, depth+1)
	}
}

// Walk performs a pre-order traversal of a syntax tree defined by node.
func Walk(node Node, cb NodeCallback) {
	walk(node, cb, 0)
}
