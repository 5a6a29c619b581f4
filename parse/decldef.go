package parse

import (
	"github.com/susji/cl/analyze"
	"github.com/susji/cl/node"
	"github.com/susji/cl/token"
)

// name accepts a non-reserved identifier.
func (p *Parser) name(toks *token.Tokens, what string) (*token.Token, error) {
	cur := toks.Peek()
	if cur == nil {
		return nil, p.errorf(nil, "expecting %s: %w", what, token.EOT)
	}
	if cur.Kind() != token.Id {
		return nil, p.errorf(cur, "expecting %s, got %v", what, cur)
	}
	if analyze.IsReserved(cur.Value()) {
		return nil, p.errorf(cur, "%w %q used as %s", ErrReserved, cur.Value(), what)
	}
	toks.Pop()
	return cur, nil
}

// Program implements
//
//	program = "program" vars subprogs instrs "endprogram"
func (p *Parser) Program(toks *token.Tokens) *node.Program {
	first := toks.Peek()
	prog := &node.Program{}
	if first == nil {
		p.errorf(nil, "empty program: %w", token.EOT)
		return prog
	}
	node.Store(first, prog)
	if err := toks.AcceptWord("program"); err != nil {
		p.errorf(first, "%w", err)
	}
	prog.Vars = p.Vars(toks)
	prog.Subprogs = p.Subprograms(toks)
	prog.Body = p.Instrs(toks, first)
	if err := toks.AcceptWord("endprogram"); err != nil {
		p.errorf(toks.Peek(), "program not terminated: %w", err)
		skipTo(toks, "endprogram")
	}
	return prog
}

// Vars parses an optional variable section:
//
//	vars = [ "vars" { id { "," id } type } "endvars" ]
func (p *Parser) Vars(toks *token.Tokens) []*node.VarDecl {
	ret := []*node.VarDecl{}
	if !atWord(toks, "vars") {
		return ret
	}
	toks.Pop()
	for {
		cur := toks.Peek()
		if cur == nil {
			p.errorf(nil, "vars not terminated: %w", token.EOT)
			return ret
		}
		if cur.Is("endvars") {
			toks.Pop()
			return ret
		}
		vd, err := p.VarDecl(toks)
		if err != nil {
			p.failed(cur, err)
			if toks.Peek() == cur {
				toks.Pop()
			}
			skipLine(toks, cur.Lineno(), "endvars")
			continue
		}
		ret = append(ret, vd)
	}
}

func (p *Parser) VarDecl(toks *token.Tokens) (*node.VarDecl, error) {
	first, err := p.name(toks, "variable name")
	if err != nil {
		return nil, err
	}
	names := []string{first.Value()}
	for toks.Accept(token.Comma) == nil {
		next, err := p.name(toks, "variable name")
		if err != nil {
			return nil, err
		}
		names = append(names, next.Value())
	}
	kind, err := p.Type(toks)
	if err != nil {
		return nil, err
	}
	ret := &node.VarDecl{
		Names: names,
		Kind:  kind,
	}
	node.Store(first, ret)
	return ret, nil
}

// Subprograms parses any number of procedures and functions.
func (p *Parser) Subprograms(toks *token.Tokens) []*node.Subprogram {
	ret := []*node.Subprogram{}
	for atWord(toks, "procedure", "function") {
		first := toks.Peek()
		sub, err := p.Subprogram(toks)
		if err != nil {
			p.failed(first, err)
			if first.Is("function") {
				skipTo(toks, "endfunction")
			} else {
				skipTo(toks, "endprocedure")
			}
			continue
		}
		ret = append(ret, sub)
	}
	return ret
}

// Subprogram implements
//
//	procedure = "procedure" id "(" params ")" vars subprogs instrs "endprocedure"
//	function  = "function" id "(" params ")" "return" type vars subprogs instrs "endfunction"
//
// Errors in the body are recovered from locally, so an error is only
// returned for a broken header.
func (p *Parser) Subprogram(toks *token.Tokens) (*node.Subprogram, error) {
	first := toks.Pop()
	if first == nil {
		return nil, token.EOT
	}
	ret := &node.Subprogram{Function: first.Is("function")}
	node.Store(first, ret)
	end := "endprocedure"
	if ret.Function {
		end = "endfunction"
	}
	name, err := p.name(toks, "subprogram name")
	if err != nil {
		return nil, err
	}
	ret.Name = name.Value()
	if ret.Params, err = p.Params(toks); err != nil {
		return nil, err
	}
	if ret.Function {
		if err := toks.AcceptWord("return"); err != nil {
			return nil, p.errorf(first, "function %s missing return type: %w",
				ret.Name, err)
		}
		if ret.Returns, err = p.Type(toks); err != nil {
			return nil, err
		}
	}
	ret.Vars = p.Vars(toks)
	ret.Subprogs = p.Subprograms(toks)
	ret.Body = p.Instrs(toks, first)
	if err := toks.AcceptWord(end); err != nil {
		p.errorf(toks.Peek(), "%s %s not terminated: %w", first.Value(), ret.Name, err)
		skipTo(toks, end)
	}
	return ret, nil
}

// Params implements
//
//	params = "(" [ param { "," param } ] ")"
//	param  = ( "val" | "ref" ) id type
func (p *Parser) Params(toks *token.Tokens) ([]*node.Param, error) {
	open := toks.Peek()
	if err := toks.Accept(token.LParen); err != nil {
		return nil, p.errorf(open, "parameter list missing '(': %w", err)
	}
	ret := []*node.Param{}
	if toks.Accept(token.RParen) == nil {
		return ret, nil
	}
	for {
		mode := toks.Peek()
		if !mode.Is("val") && !mode.Is("ref") {
			return nil, p.errorf(mode, "expecting val or ref, got %v", mode)
		}
		toks.Pop()
		name, err := p.name(toks, "parameter name")
		if err != nil {
			return nil, err
		}
		kind, err := p.Type(toks)
		if err != nil {
			return nil, err
		}
		param := &node.Param{
			Name:  name.Value(),
			ByRef: mode.Is("ref"),
			Kind:  kind,
		}
		node.Store(name, param)
		ret = append(ret, param)
		if toks.Accept(token.Comma) == nil {
			continue
		}
		if err := toks.Accept(token.RParen); err != nil {
			return nil, p.errorf(open, "unbalanced parameter list: %w", err)
		}
		return ret, nil
	}
}
