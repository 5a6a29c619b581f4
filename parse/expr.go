package parse

import (
	"github.com/susji/cl/analyze"
	"github.com/susji/cl/node"
	"github.com/susji/cl/token"
)

var tok_to_binop = map[token.Kind]node.KindOpBin{
	token.Plus:  node.OPBIN_ADD,
	token.Minus: node.OPBIN_SUB,
	token.Star:  node.OPBIN_MUL,
	token.Slash: node.OPBIN_DIV,
	token.Lt:    node.OPBIN_LT,
	token.Gt:    node.OPBIN_GT,
	token.Eq:    node.OPBIN_EQ,
}

var word_to_binop = map[string]node.KindOpBin{
	"and": node.OPBIN_AND,
	"or":  node.OPBIN_OR,
}

const precunary = 7

func precedenceb(op node.KindOpBin) int {
	switch op {
	case node.OPBIN_OR:
		return 1
	case node.OPBIN_AND:
		return 2
	case node.OPBIN_EQ:
		return 3
	case node.OPBIN_LT, node.OPBIN_GT:
		return 4
	case node.OPBIN_ADD, node.OPBIN_SUB:
		return 5
	default:
		return 6
	}
}

func binop(tok *token.Token) (node.KindOpBin, bool) {
	if tok == nil {
		return 0, false
	}
	if tok.Kind() == token.Id {
		op, ok := word_to_binop[tok.Value()]
		return op, ok
	}
	op, ok := tok_to_binop[tok.Kind()]
	return op, ok
}

func (p *Parser) expratom(toks *token.Tokens) (node.Node, error) {
	this := toks.Peek()
	if this == nil {
		return nil, p.errorf(nil, "expecting expression: %w", token.EOT)
	}
	if this.Kind() == token.Minus || this.Is("not") {
		op := node.OPUN_NEG
		if this.Is("not") {
			op = node.OPUN_NOT
		}
		// Unary operators bind right, hence the +1 to their precedence.
		toks.Pop()
		n, err := p.exprparse(toks, precunary+1)
		if err != nil {
			return nil, err
		}
		return node.Store(this, &node.OpUnary{
			Op: op,
			To: n,
		}), nil
	}
	switch this.Kind() {
	case token.LParen:
		toks.Pop()
		parexpr, err := p.exprparse(toks, 0)
		if err != nil {
			return nil, err
		}
		if err := toks.Accept(token.RParen); err != nil {
			return nil, p.errorf(this, "unbalanced parentheses: %w", err)
		}
		return parexpr, nil
	case token.IntLit:
		return p.intlit(toks)
	case token.True, token.False:
		toks.Pop()
		return node.Store(this, &node.BoolLit{Value: this.Kind() == token.True}), nil
	case token.Id:
		if analyze.IsReserved(this.Value()) {
			return nil, p.errorf(this, "%w %q in expression", ErrReserved, this.Value())
		}
		toks.Pop()
		return node.Store(this, &node.Ident{Value: this.Value()}), nil
	default:
		return nil, p.errorf(this, "invalid expression atom: %v", this)
	}
}

// postfix handles indexing, field access and calls, which bind tighter than
// any other operator.
func (p *Parser) postfix(toks *token.Tokens, lhs node.Node) (node.Node, error) {
	for {
		op := toks.Peek()
		if op == nil {
			return lhs, nil
		}
		switch op.Kind() {
		case token.LBrack:
			toks.Pop()
			index, err := p.exprparse(toks, 0)
			if err != nil {
				return nil, err
			}
			if err := toks.Accept(token.RBrack); err != nil {
				return nil, p.errorf(op, "unbalanced array subscript: %w", err)
			}
			lhs = node.Store(op, &node.Index{Base: lhs, Index: index})
		case token.Dot:
			toks.Pop()
			field, err := p.name(toks, "field name")
			if err != nil {
				return nil, err
			}
			lhs = node.Store(op, &node.FieldAccess{Base: lhs, Field: field.Value()})
		case token.LParen:
			callee, ok := lhs.(*node.Ident)
			if !ok {
				return nil, p.errorf(op, "only identifiers may be called, got %v", lhs)
			}
			toks.Pop()
			args := []node.Node{}
			// We may have the case without arguments, ie. "()".
			if err := toks.Accept(token.RParen); err != nil {
				for {
					arg, err := p.exprparse(toks, 0)
					if err != nil {
						return nil, err
					}
					args = append(args, arg)
					if err := toks.Accept(token.Comma); err == nil {
						continue
					} else if err := toks.Accept(token.RParen); err == nil {
						break
					} else {
						return nil, p.errorf(
							op,
							"unbalanced parentheses in call: %w", err)
					}
				}
			}
			// The call is tagged with the callee's token so that diagnostics
			// point at the callee's line.
			lhs = node.Store(callee.Tok(), &node.Call{Callee: callee, Args: args})
		default:
			return lhs, nil
		}
	}
}

func (p *Parser) exprparse(toks *token.Tokens, minprec int) (node.Node, error) {
	lhs, err := p.expratom(toks)
	if err != nil {
		return nil, err
	}
	if lhs, err = p.postfix(toks, lhs); err != nil {
		return nil, err
	}
	for {
		op := toks.Peek()
		bop, ok := binop(op)
		if !ok {
			break
		}
		// All of this is just vanilla precedence-climbing. Every binary
		// operator associates to the left.
		prec := precedenceb(bop)
		if prec < minprec {
			break
		}
		toks.Pop()
		rhs, err := p.exprparse(toks, prec+1)
		if err != nil {
			return nil, err
		}
		lhs = node.Store(op, &node.OpBinary{
			Op:    bop,
			Left:  lhs,
			Right: rhs,
		})
	}
	return lhs, nil
}

// Expr parses an expression with precedence climbing following Norvell at
//
//	https://www.engr.mun.ca/~theo/Misc/exp_parsing.htm#climbing
//
// From the loosest to the tightest binding: or, and, "=", "<" ">", "+" "-",
// "*" "/", unary "-" "not", and finally the postfix "[]", "." and "()".
func (p *Parser) Expr(toks *token.Tokens) (node.Node, error) {
	return p.exprparse(toks, 0)
}
