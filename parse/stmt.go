package parse

import (
	"github.com/susji/cl/node"
	"github.com/susji/cl/token"
)

// terminators end an instruction list.
var terminators = []string{
	"endprogram",
	"endprocedure",
	"endfunction",
	"endif",
	"else",
	"endwhile",
}

// Instrs parses instructions until a terminating keyword or the end of
// input. A broken instruction is reported and the rest of its line skipped.
func (p *Parser) Instrs(toks *token.Tokens, owner *token.Token) *node.Block {
	ret := &node.Block{Value: []node.Node{}}
	tok := owner
	if first := toks.Peek(); first != nil {
		tok = first
	}
	if tok != nil {
		node.Store(tok, ret)
	}
	for {
		cur := toks.Peek()
		if cur == nil || atWord(toks, terminators...) {
			return ret
		}
		if atWord(toks, "procedure", "function") {
			p.errorf(cur, "%s not permitted among instructions", cur.Value())
			skipTo(toks, "end"+cur.Value())
			continue
		}
		instr, err := p.Instr(toks)
		if err != nil {
			p.failed(cur, err)
			if toks.Peek() == cur {
				toks.Pop()
			}
			skipLine(toks, cur.Lineno(), terminators...)
			continue
		}
		ret.Value = append(ret.Value, instr)
	}
}

// Instr implements
//
//	instr = expr ":=" expr | call
//	      | "if" expr "then" instrs [ "else" instrs ] "endif"
//	      | "while" expr "do" instrs "endwhile"
//	      | "read" "(" expr ")" | "write" "(" expr ")" | "writeln" "(" expr ")"
//	      | "return" expr
func (p *Parser) Instr(toks *token.Tokens) (node.Node, error) {
	first := toks.Peek()
	if first == nil {
		return nil, p.errorf(nil, "expecting instruction: %w", token.EOT)
	}
	switch {
	case first.Is("if"):
		toks.Pop()
		cond, err := p.Expr(toks)
		if err != nil {
			return nil, err
		}
		if err := toks.AcceptWord("then"); err != nil {
			return nil, p.errorf(first, "if missing then: %w", err)
		}
		ret := &node.If{Cond: cond}
		node.Store(first, ret)
		ret.True = p.Instrs(toks, first)
		if atWord(toks, "else") {
			elsetok := toks.Pop()
			ret.False = p.Instrs(toks, elsetok)
		}
		if err := toks.AcceptWord("endif"); err != nil {
			return nil, p.errorf(first, "if not terminated: %w", err)
		}
		return ret, nil
	case first.Is("while"):
		toks.Pop()
		cond, err := p.Expr(toks)
		if err != nil {
			return nil, err
		}
		if err := toks.AcceptWord("do"); err != nil {
			return nil, p.errorf(first, "while missing do: %w", err)
		}
		ret := &node.While{Cond: cond}
		node.Store(first, ret)
		ret.Body = p.Instrs(toks, first)
		if err := toks.AcceptWord("endwhile"); err != nil {
			return nil, p.errorf(first, "while not terminated: %w", err)
		}
		return ret, nil
	case first.Is("read"), first.Is("write"), first.Is("writeln"):
		toks.Pop()
		if err := toks.Accept(token.LParen); err != nil {
			return nil, p.errorf(first, "%s missing '(': %w", first.Value(), err)
		}
		expr, err := p.Expr(toks)
		if err != nil {
			return nil, err
		}
		if err := toks.Accept(token.RParen); err != nil {
			return nil, p.errorf(first, "%s missing ')': %w", first.Value(), err)
		}
		if first.Is("read") {
			return node.Store(first, &node.Read{Expr: expr}), nil
		}
		return node.Store(first, &node.Write{
			Expr:    expr,
			Newline: first.Is("writeln"),
		}), nil
	case first.Is("return"):
		toks.Pop()
		expr, err := p.Expr(toks)
		if err != nil {
			return nil, err
		}
		return node.Store(first, &node.Return{Expr: expr}), nil
	}
	lv, err := p.Expr(toks)
	if err != nil {
		return nil, err
	}
	if next := toks.Peek(); next != nil && next.Kind() == token.Assign {
		toks.Pop()
		rv, err := p.Expr(toks)
		if err != nil {
			return nil, err
		}
		return node.Store(next, &node.Assign{
			To:   lv,
			What: rv,
		}), nil
	}
	if _, ok := lv.(*node.Call); ok {
		return lv, nil
	}
	return nil, p.errorf(first, "%w: %v", ErrNotInstruction, lv)
}
