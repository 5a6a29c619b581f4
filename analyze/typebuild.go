package analyze

import (
	"github.com/susji/cl/diag"
	"github.com/susji/cl/node"
	"github.com/susji/cl/types"
)

// TypeFromNode builds the type denoted by a type expression and annotates
// the expression with it. Problems are reported and still produce a usable
// type.
func (s *Analyzer) TypeFromNode(n node.Node) *types.Type {
	var ret *types.Type
	switch t := n.(type) {
	case *node.BasicType:
		if !IsValidBasic(t.Name) {
			internalf(n, "unknown basic type %q", t.Name)
		}
		if t.Name == "int" {
			ret = typeInt
		} else {
			ret = typeBool
		}
	case *node.ArrayType:
		ret = s.ArrayFromNode(t)
	case *node.StructType:
		ret = s.StructFromNode(t)
	default:
		internalf(n, "not a type expression")
	}
	n.SetType(ret)
	return ret
}

func (s *Analyzer) ArrayFromNode(n *node.ArrayType) *types.Type {
	if n.Size == nil {
		internalf(n, "array without size")
	}
	s.check(n.Size)
	elem := s.TypeFromNode(n.Elem)
	size, et := n.Size.Type(), elem
	if (!size.IsError() && !size.Is(types.Int)) ||
		(!et.IsError() && !et.IsBasic() && !et.Is(types.Struct)) {
		s.report(diag.IncompatibleOperator(n.Line(), "array"))
	}
	return types.NewArray(elem, n.Size.Value)
}

// StructFromNode builds a new struct type. Every struct expression is a
// distinct type, even if another one has identical fields.
func (s *Analyzer) StructFromNode(n *node.StructType) *types.Type {
	ret := types.NewStruct()
	for _, f := range n.Fields {
		s.enter(f)
		ft := s.TypeFromNode(f.Kind)
		f.SetType(ft)
		if err := ret.AddField(f.Name, ft); err != nil {
			s.report(diag.DuplicateField(f.Line(), f.Name))
		}
		s.leave(f)
	}
	return ret
}

// HeaderFromNode builds the signature of a procedure or a function. It is
// done before any body is checked, so that subprograms may call each other
// regardless of their order.
func (s *Analyzer) HeaderFromNode(n *node.Subprogram) *types.Type {
	params := make([]*types.Type, 0, len(n.Params))
	for _, p := range n.Params {
		s.enter(p)
		pt := types.NewParam(p.ByRef, s.TypeFromNode(p.Kind))
		p.SetType(pt)
		params = append(params, pt)
		s.leave(p)
	}
	kind := types.Procedure
	var returns *types.Type
	if n.Function {
		kind = types.Function
		if n.Returns == nil {
			internalf(n, "function %s without result type", n.Name)
		}
		returns = s.TypeFromNode(n.Returns)
	}
	ret := types.NewHeader(kind, params, returns)
	n.SetType(ret)
	s.res.Headers[n] = ret
	return ret
}
