package parse

import (
	"strconv"

	"github.com/susji/cl/node"
	"github.com/susji/cl/token"
)

// Type parses a type expression:
//
//	type = "int" | "bool"
//	     | "array" "[" intlit "]" "of" type
//	     | "struct" { id type } "endstruct"
//
// Whether an array size or element type is acceptable is left for semantic
// analysis.
func (p *Parser) Type(toks *token.Tokens) (node.Node, error) {
	atom := toks.Peek()
	if atom == nil {
		return nil, p.errorf(nil, "expecting type: %w", token.EOT)
	}
	if atom.Kind() != token.Id {
		return nil, p.errorf(atom, "not a type: %v", atom)
	}
	switch atom.Value() {
	case "int", "bool":
		toks.Pop()
		return node.Store(atom, &node.BasicType{Name: atom.Value()}), nil
	case "array":
		toks.Pop()
		if err := toks.Accept(token.LBrack); err != nil {
			return nil, p.errorf(atom, "array missing '[': %w", err)
		}
		size, err := p.intlit(toks)
		if err != nil {
			return nil, err
		}
		if err := toks.Accept(token.RBrack); err != nil {
			return nil, p.errorf(atom, "array missing ']': %w", err)
		}
		if err := toks.AcceptWord("of"); err != nil {
			return nil, p.errorf(atom, "array missing of: %w", err)
		}
		elem, err := p.Type(toks)
		if err != nil {
			return nil, err
		}
		return node.Store(atom, &node.ArrayType{Size: size, Elem: elem}), nil
	case "struct":
		toks.Pop()
		ret := &node.StructType{}
		for !atWord(toks, "endstruct") {
			name, err := p.name(toks, "field name")
			if err != nil {
				return nil, err
			}
			kind, err := p.Type(toks)
			if err != nil {
				return nil, err
			}
			f := &node.Field{Name: name.Value(), Kind: kind}
			node.Store(name, f)
			ret.Fields = append(ret.Fields, f)
		}
		toks.Pop()
		return node.Store(atom, ret), nil
	default:
		return nil, p.errorf(atom, "not a type: %v", atom)
	}
}

func (p *Parser) intlit(toks *token.Tokens) (*node.IntLit, error) {
	cur := toks.Peek()
	if cur == nil {
		return nil, p.errorf(nil, "expecting integer: %w", token.EOT)
	}
	if cur.Kind() != token.IntLit {
		return nil, p.errorf(cur, "expecting integer, got %v", cur)
	}
	toks.Pop()
	v, err := strconv.Atoi(cur.Value())
	if err != nil {
		return nil, p.errorf(cur, "invalid integer: %w", err)
	}
	ret := &node.IntLit{Value: v}
	node.Store(cur, ret)
	return ret, nil
}
