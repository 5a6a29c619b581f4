// Package types captures everything we need to know about a CL syntax node's
// type.
package types

import (
	"errors"
	"fmt"
	"strings"
)

var ErrDuplicateField = errors.New("field already defined")

type Kind int

const (
	Int Kind = iota
	Bool
	Array
	Struct
	Function
	Procedure
	ParamByValue
	ParamByRef
	Error
	// Void types statements and declarations, which have no value.
	Void
	// If and While are markers for the respective statements.
	If
	While
)

var kindnames = [...]string{
	"int",
	"bool",
	"array",
	"struct",
	"function",
	"procedure",
	"val",
	"ref",
	"error",
	"void",
	"if",
	"while",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindnames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindnames[k]
}

// Type is used to propagate type information from declarations to
// expressions. Types are never modified after they have been constructed, so
// they are freely shared between symbols and syntax nodes.
type Type struct {
	Kind Kind
	// Elem is the element type of an array or the wrapped type of a
	// parameter.
	Elem *Type
	// Len is the declared length of an array.
	Len int
	// Params holds the ParamByValue and ParamByRef wrappers of a function or
	// a procedure in declaration order.
	Params []*Type
	// Returns is only set for functions.
	Returns *Type
	// Fields and FieldOrder are only set for structs.
	Fields     map[string]*Type
	FieldOrder []string
}

func New(k Kind) *Type {
	return &Type{Kind: k}
}

func NewArray(elem *Type, n int) *Type {
	return &Type{
		Kind: Array,
		Elem: elem,
		Len:  n,
	}
}

func NewStruct() *Type {
	return &Type{
		Kind:   Struct,
		Fields: map[string]*Type{},
	}
}

// NewParam wraps the type of a single function or procedure parameter.
func NewParam(byref bool, elem *Type) *Type {
	k := ParamByValue
	if byref {
		k = ParamByRef
	}
	return &Type{
		Kind: k,
		Elem: elem,
	}
}

// NewHeader builds the type of a function or a procedure signature. The
// result type is ignored for procedures.
func NewHeader(k Kind, params []*Type, returns *Type) *Type {
	if k != Function && k != Procedure {
		panic(fmt.Sprintf("NewHeader: not a header kind: %s", k))
	}
	for _, p := range params {
		if !p.IsParam() {
			panic(fmt.Sprintf("NewHeader: not a parameter: %s", p))
		}
	}
	ret := &Type{
		Kind:   k,
		Params: params,
	}
	if k == Function {
		ret.Returns = returns
	}
	return ret
}

// AddField appends a field to a struct under construction. The first
// definition of a field wins.
func (t *Type) AddField(name string, ft *Type) error {
	if t.Kind != Struct {
		panic(fmt.Sprintf("AddField: not a struct: %s", t))
	}
	if _, ok := t.Fields[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateField, name)
	}
	t.Fields[name] = ft
	t.FieldOrder = append(t.FieldOrder, name)
	return nil
}

// Field resolves a struct field. It returns nil if the field is not defined
// or t is not a struct.
func (t *Type) Field(name string) *Type {
	if t.Kind != Struct {
		return nil
	}
	return t.Fields[name]
}

func (t *Type) Is(k Kind) bool {
	return t != nil && t.Kind == k
}

func (t *Type) IsError() bool {
	return t.Is(Error)
}

func (t *Type) IsBasic() bool {
	return t.Is(Int) || t.Is(Bool)
}

func (t *Type) IsParam() bool {
	return t.Is(ParamByValue) || t.Is(ParamByRef)
}

func (t *Type) IsHeader() bool {
	return t.Is(Function) || t.Is(Procedure)
}

// NumParams is the parameter count of a function or a procedure.
func (t *Type) NumParams() int {
	return len(t.Params)
}

// Equivalent tells whether values of the two types are compatible. Error is
// equivalent to nothing, itself included; callers are expected to skip their
// checks for Error operands instead of reporting them again.
//
// Arrays are compared structurally including their length. Structs are only
// equivalent with themselves: two struct definitions with identical fields
// are still distinct types.
func (t *Type) Equivalent(t2 *Type) bool {
	if t == nil || t2 == nil {
		return false
	}
	if t.Kind == Error || t2.Kind == Error || t.Kind != t2.Kind {
		return false
	}
	switch t.Kind {
	case Array:
		return t.Len == t2.Len && t.Elem.Equivalent(t2.Elem)
	case Struct:
		return t == t2
	case ParamByValue, ParamByRef:
		return t.Elem.Equivalent(t2.Elem)
	case Function, Procedure:
		if len(t.Params) != len(t2.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equivalent(t2.Params[i]) {
				return false
			}
		}
		return t.Kind == Procedure || t.Returns.Equivalent(t2.Returns)
	default:
		return true
	}
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case Array:
		return fmt.Sprintf("array[%d] of %s", t.Len, t.Elem)
	case Struct:
		b := &strings.Builder{}
		b.WriteString("struct{")
		for i, name := range t.FieldOrder {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(fmt.Sprintf("%s %s", name, t.Fields[name]))
		}
		b.WriteString("}")
		return b.String()
	case ParamByValue, ParamByRef:
		return fmt.Sprintf("%s %s", t.Kind, t.Elem)
	case Function, Procedure:
		b := &strings.Builder{}
		b.WriteString(t.Kind.String())
		b.WriteString("(")
		for i, p := range t.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteString(")")
		if t.Kind == Function {
			b.WriteString(fmt.Sprintf(" %s", t.Returns))
		}
		return b.String()
	default:
		return t.Kind.String()
	}
}
