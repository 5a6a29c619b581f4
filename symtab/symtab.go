// Package symtab implements the scoped symbol table used during semantic
// analysis. Scopes form a stack: declarations go into the innermost scope and
// lookups walk outwards.
package symtab

import (
	"errors"
	"fmt"

	"github.com/susji/cl/types"
)

var ErrDuplicateDeclaration = errors.New("identifier already declared")

type Kind int

const (
	LocalVariable Kind = iota
	ParamByValue
	ParamByRef
	Function
	Procedure
)

var kindnames = [...]string{
	"variable",
	"val parameter",
	"ref parameter",
	"function",
	"procedure",
}

func (k Kind) String() string {
	return kindnames[k]
}

// Referenceable tells whether a symbol of this kind designates storage.
func (k Kind) Referenceable() bool {
	return k != Function && k != Procedure
}

type Symbol struct {
	Name string
	Kind Kind
	Type *types.Type
}

// Handle identifies a scope for later phases. Handles are never reused
// within one Table.
type Handle int

type scope struct {
	parent *scope
	handle Handle
	vars   map[string]*Symbol
	order  []*Symbol
}

func newScope(parent *scope, h Handle) *scope {
	return &scope{
		parent: parent,
		handle: h,
		vars:   map[string]*Symbol{},
	}
}

func (s *scope) add(sym *Symbol) error {
	// Shadowing is fine, so only the innermost scope matters here.
	if _, ok := s.vars[sym.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDeclaration, sym.Name)
	}
	s.vars[sym.Name] = sym
	s.order = append(s.order, sym)
	return nil
}

func (s *scope) get(name string) *Symbol {
	cur := s
	for cur != nil {
		if sym, ok := cur.vars[name]; ok {
			return sym
		}
		cur = cur.parent
	}
	return nil
}

type Table struct {
	top   *scope
	depth int
	next  Handle
}

func New() *Table {
	return &Table{next: 1}
}

func (t *Table) Push() Handle {
	h := t.next
	t.next++
	t.top = newScope(t.top, h)
	t.depth++
	return h
}

func (t *Table) Pop() {
	if t.top == nil {
		panic("symtab: Pop without an open scope")
	}
	t.top = t.top.parent
	t.depth--
}

// Declare binds name in the innermost scope. On a clash the earlier binding
// stays in place.
func (t *Table) Declare(name string, kind Kind, typ *types.Type) error {
	if t.top == nil {
		panic("symtab: Declare without an open scope")
	}
	return t.top.add(&Symbol{Name: name, Kind: kind, Type: typ})
}

func (t *Table) Lookup(name string) (*Symbol, bool) {
	sym := t.top.get(name)
	return sym, sym != nil
}

func (t *Table) Depth() int {
	return t.depth
}

// Current returns the handle of the innermost scope, or zero when no scope
// is open.
func (t *Table) Current() Handle {
	if t.top == nil {
		return 0
	}
	return t.top.handle
}

// Symbols lists the innermost scope's bindings in declaration order.
func (t *Table) Symbols() []*Symbol {
	if t.top == nil {
		return nil
	}
	ret := make([]*Symbol, len(t.top.order))
	copy(ret, t.top.order)
	return ret
}
