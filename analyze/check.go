package analyze

// Most code in this file is related to type-checking the syntax tree provided
// us by parsing. We do the whole thing with a single depth-first-traversal
// pass: children are checked first, and then the node itself gets its type
// and referenceability. A node is always left with a type, which is the
// error type whenever nothing better is known. Checks involving an error
// type are skipped, as the cause has already been reported.

import (
	"github.com/susji/cl/diag"
	"github.com/susji/cl/node"
	"github.com/susji/cl/symtab"
	"github.com/susji/cl/types"
)

var (
	typeInt   = types.New(types.Int)
	typeBool  = types.New(types.Bool)
	typeVoid  = types.New(types.Void)
	typeError = types.New(types.Error)
	typeIf    = types.New(types.If)
	typeWhile = types.New(types.While)
)

// mismatch tells whether t is known to be something other than k.
func mismatch(t *types.Type, k types.Kind) bool {
	return !t.IsError() && !t.Is(k)
}

func (s *Analyzer) checkProgram(n *node.Program) {
	if n.Body == nil {
		internalf(n, "program without body")
	}
	s.withScope(n, func(h symtab.Handle) {
		n.Scope = h
		s.checkVarDecls(n.Vars)
		s.checkSubprograms(n.Subprogs)
		s.check(n.Body)
	})
	n.SetType(typeVoid)
}

// checkSubprograms declares all headers of a block before checking any of
// the bodies.
func (s *Analyzer) checkSubprograms(subs []*node.Subprogram) {
	for _, sub := range subs {
		hdr := s.HeaderFromNode(sub)
		kind := symtab.Procedure
		if sub.Function {
			kind = symtab.Function
		}
		if err := s.syms.Declare(sub.Name, kind, hdr); err != nil {
			s.report(diag.DuplicateDeclaration(sub.Line(), sub.Name))
		}
	}
	for _, sub := range subs {
		s.check(sub)
	}
}

func (s *Analyzer) checkSubprogram(n *node.Subprogram) {
	hdr, ok := s.res.Headers[n]
	if !ok {
		internalf(n, "header of %s not built", n.Name)
	}
	if n.Body == nil {
		internalf(n, "%s without body", n.Name)
	}
	s.withScope(n, func(h symtab.Handle) {
		n.Scope = h
		// The parameter types were built along with the header.
		for i, p := range n.Params {
			kind := symtab.ParamByValue
			if p.ByRef {
				kind = symtab.ParamByRef
			}
			if err := s.syms.Declare(p.Name, kind, hdr.Params[i].Elem); err != nil {
				s.report(diag.DuplicateDeclaration(p.Line(), p.Name))
			}
		}
		s.checkVarDecls(n.Vars)
		s.checkSubprograms(n.Subprogs)
		s.withSubprogram(hdr, func() {
			s.check(n.Body)
		})
	})
}

func (s *Analyzer) checkVarDecls(vds []*node.VarDecl) {
	for _, vd := range vds {
		s.check(vd)
	}
}

func (s *Analyzer) checkVarDecl(n *node.VarDecl) {
	t := s.TypeFromNode(n.Kind)
	for _, name := range n.Names {
		if err := s.syms.Declare(name, symtab.LocalVariable, t); err != nil {
			s.report(diag.DuplicateDeclaration(n.Line(), name))
		}
	}
	n.SetType(typeVoid)
}

func (s *Analyzer) checkBlock(n *node.Block) {
	for _, instr := range n.Value {
		// A call directly in a block is a procedure call.
		if call, ok := instr.(*node.Call); ok {
			s.enter(call)
			s.checkCall(call, true)
			s.leave(call)
			continue
		}
		s.check(instr)
	}
	n.SetType(typeVoid)
}

func (s *Analyzer) checkIdent(n *node.Ident) {
	sym, ok := s.syms.Lookup(n.Value)
	if !ok {
		s.report(diag.UndeclaredIdentifier(n.Line(), n.Value))
		n.SetType(typeError)
		n.SetRef(false)
		return
	}
	n.SetType(sym.Type)
	n.SetRef(sym.Kind.Referenceable())
}

func (s *Analyzer) checkAssign(n *node.Assign) {
	lt, rt := n.To.Type(), n.What.Type()
	switch {
	case lt.IsError():
		n.SetType(typeError)
	case !n.To.Ref():
		s.report(diag.NonReferenceableLeft(n.Line()))
		n.SetType(typeError)
	case !rt.IsError() && !lt.Equivalent(rt):
		s.report(diag.IncompatibleAssignment(n.Line()))
		n.SetType(typeError)
	default:
		n.SetType(lt)
	}
}

func (s *Analyzer) checkCond(n node.Node, cond node.Node, what string) {
	if mismatch(cond.Type(), types.Bool) {
		s.report(diag.IncompatibleOperator(n.Line(), what))
	}
}

func (s *Analyzer) checkRead(n *node.Read) {
	t := n.Expr.Type()
	if !t.IsError() {
		if !n.Expr.Ref() {
			s.report(diag.ReferenceableRequired(n.Line(), "read"))
		}
		if !t.IsBasic() {
			s.report(diag.BasicTypeRequired(n.Line(), "read"))
		}
	}
	n.SetType(typeVoid)
}

func (s *Analyzer) checkWrite(n *node.Write) {
	what := "write"
	if n.Newline {
		what = "writeln"
	}
	if t := n.Expr.Type(); !t.IsError() && !t.IsBasic() {
		s.report(diag.BasicTypeRequired(n.Line(), what))
	}
	n.SetType(typeVoid)
}

func (s *Analyzer) checkReturn(n *node.Return) {
	t := n.Expr.Type()
	switch {
	case !s.cursub.Is(types.Function):
		// Procedures and the main program have nothing to return.
		s.report(diag.IncompatibleReturn(n.Line()))
	case !t.IsError() && !t.Equivalent(s.cursub.Returns):
		s.report(diag.IncompatibleReturn(n.Line()))
	}
	n.SetType(typeVoid)
}

func (s *Analyzer) checkUnary(n *node.OpUnary) {
	want := typeInt
	if n.Op == node.OPUN_NOT {
		want = typeBool
	}
	if mismatch(n.To.Type(), want.Kind) {
		s.report(diag.IncompatibleOperator(n.Line(), n.Op.String()))
	}
	n.SetType(want)
}

func (s *Analyzer) checkEq(n *node.OpBinary) {
	lt, rt := n.Left.Type(), n.Right.Type()
	notint := mismatch(lt, types.Int) || mismatch(rt, types.Int)
	notbool := mismatch(lt, types.Bool) || mismatch(rt, types.Bool)
	if notint && notbool {
		s.report(diag.IncompatibleOperator(n.Line(), n.Op.String()))
	}
	n.SetType(typeBool)
}

func (s *Analyzer) checkBinary(n *node.OpBinary) {
	var want *types.Type
	var ret *types.Type
	switch n.Op {
	case node.OPBIN_ADD, node.OPBIN_SUB, node.OPBIN_MUL, node.OPBIN_DIV:
		want, ret = typeInt, typeInt
	case node.OPBIN_LT, node.OPBIN_GT:
		want, ret = typeInt, typeBool
	case node.OPBIN_AND, node.OPBIN_OR:
		want, ret = typeBool, typeBool
	case node.OPBIN_EQ:
		s.checkEq(n)
		return
	default:
		internalf(n, "unhandled binary operator %d", n.Op)
	}
	if mismatch(n.Left.Type(), want.Kind) || mismatch(n.Right.Type(), want.Kind) {
		s.report(diag.IncompatibleOperator(n.Line(), n.Op.String()))
	}
	n.SetType(ret)
}

func (s *Analyzer) checkIndex(n *node.Index) {
	bt, it := n.Base.Type(), n.Index.Type()
	if mismatch(bt, types.Array) {
		s.report(diag.IncompatibleOperator(n.Line(), "array[]"))
	}
	if mismatch(it, types.Int) {
		s.report(diag.IncompatibleOperator(n.Line(), "[]"))
	}
	if bt.Is(types.Array) {
		n.SetType(bt.Elem)
	} else {
		n.SetType(typeError)
	}
	n.SetRef(n.Base.Ref())
}

func (s *Analyzer) checkFieldAccess(n *node.FieldAccess) {
	bt := n.Base.Type()
	n.SetRef(n.Base.Ref())
	switch {
	case bt.IsError():
		n.SetType(typeError)
	case !bt.Is(types.Struct):
		s.report(diag.IncompatibleOperator(n.Line(), "struct."))
		n.SetType(typeError)
	case bt.Field(n.Field) == nil:
		s.report(diag.FieldNotDefined(n.Line(), n.Field))
		n.SetType(typeError)
	default:
		n.SetType(bt.Field(n.Field))
	}
}

// checkCall handles both procedure calls, which are instructions, and
// function calls within expressions.
func (s *Analyzer) checkCall(n *node.Call, instr bool) {
	if n.Callee == nil {
		internalf(n, "call without callee")
	}
	s.check(n.Callee)
	for _, arg := range n.Args {
		s.check(arg)
	}
	ct := n.Callee.Type()
	var hdr *types.Type
	switch {
	case ct.IsError():
	case instr && !ct.Is(types.Procedure):
		s.report(diag.NotProcedure(n.Line()))
	case !instr && !ct.Is(types.Function):
		s.report(diag.NotFunction(n.Line()))
	default:
		hdr = ct
	}
	n.SetRef(false)
	if hdr == nil || !s.checkArgs(n, hdr) || s.errorcalls {
		n.SetType(typeError)
		return
	}
	if instr {
		n.SetType(typeVoid)
		return
	}
	n.SetType(hdr.Returns)
}

// checkArgs matches the already checked arguments of a call against the
// parameters of the callee.
func (s *Analyzer) checkArgs(n *node.Call, hdr *types.Type) bool {
	if len(n.Args) != hdr.NumParams() {
		s.report(diag.WrongParamCount(n.Line()))
		return false
	}
	ok := true
	for i, arg := range n.Args {
		pt, at := hdr.Params[i], arg.Type()
		if at.IsError() {
			continue
		}
		if pt.Is(types.ParamByRef) && !arg.Ref() {
			s.report(diag.ParamNotReferenceable(n.Line(), i+1))
			ok = false
		}
		if !pt.Elem.Equivalent(at) {
			s.report(diag.IncompatibleParam(n.Line(), i+1))
			ok = false
		}
	}
	return ok
}

func (s *Analyzer) check(n node.Node) {
	if n == nil {
		internalf(nil, "check: nil node")
	}
	s.enter(n)
	defer s.leave(n)
	a := s.check
	switch t := n.(type) {
	case *node.Program:
		s.checkProgram(t)
	case *node.Subprogram:
		s.checkSubprogram(t)
	case *node.VarDecl:
		s.checkVarDecl(t)
	case *node.BasicType, *node.ArrayType, *node.StructType:
		s.TypeFromNode(t)
	case *node.Block:
		s.checkBlock(t)
	case *node.Assign:
		a(t.To)
		a(t.What)
		s.checkAssign(t)
	case *node.If:
		if t.True == nil {
			internalf(n, "if without body")
		}
		a(t.Cond)
		a(t.True)
		if t.False != nil {
			a(t.False)
		}
		s.checkCond(t, t.Cond, "if")
		t.SetType(typeIf)
	case *node.While:
		if t.Body == nil {
			internalf(n, "while without body")
		}
		a(t.Cond)
		a(t.Body)
		s.checkCond(t, t.Cond, "while")
		t.SetType(typeWhile)
	case *node.Read:
		a(t.Expr)
		s.checkRead(t)
	case *node.Write:
		a(t.Expr)
		s.checkWrite(t)
	case *node.Return:
		a(t.Expr)
		s.checkReturn(t)
	case *node.Ident:
		s.checkIdent(t)
	case *node.IntLit:
		t.SetType(typeInt)
	case *node.BoolLit:
		t.SetType(typeBool)
	case *node.OpUnary:
		a(t.To)
		s.checkUnary(t)
	case *node.OpBinary:
		a(t.Left)
		a(t.Right)
		s.checkBinary(t)
	case *node.Index:
		a(t.Base)
		a(t.Index)
		s.checkIndex(t)
	case *node.FieldAccess:
		a(t.Base)
		s.checkFieldAccess(t)
	case *node.Call:
		s.checkCall(t, false)
	default:
		internalf(n, "check: unhandled node")
	}
}
