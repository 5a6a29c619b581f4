// Package parse builds CL syntax trees from tokens.
package parse

import (
	"errors"
	"fmt"

	"github.com/susji/cl/node"
	"github.com/susji/cl/token"
)

var (
	ErrParse          = errors.New("parsing met with error(s)")
	ErrReserved       = errors.New("reserved word")
	ErrNotInstruction = errors.New("expression is not an instruction")
	ErrTrailing       = errors.New("trailing input after endprogram")
)

type Parser struct {
	fn   string
	errs []error
}

func (p *Parser) errorf(tok *token.Token, format string, a ...interface{}) error {
	err := &ParseError{
		Tok:     tok,
		Fn:      p.fn,
		Wrapped: fmt.Errorf(format, a...),
	}
	p.errs = append(p.errs, err)
	return err
}

// failed records err unless it already is one of our reported errors.
func (p *Parser) failed(tok *token.Token, err error) {
	var perr *ParseError
	if errors.As(err, &perr) {
		return
	}
	p.errorf(tok, "%w", err)
}

func (p *Parser) Errors() []error {
	if len(p.errs) == 0 {
		return nil
	}
	return p.errs
}

func (p *Parser) Fn() string {
	return p.fn
}

// Parse consumes a whole program. Syntax errors do not stop parsing: the
// offending line is skipped and parsing resumes, so the returned tree may be
// used for diagnostics, but should not be analyzed when the error is
// non-nil.
func (p *Parser) Parse(toks *token.Tokens) (*node.Program, error) {
	p.errs = []error{}
	prog := p.Program(toks)
	if rest := toks.Peek(); rest != nil {
		p.errorf(rest, "%w: %v", ErrTrailing, rest)
	}
	if len(p.errs) > 0 {
		return prog, ErrParse
	}
	return prog, nil
}

func New() *Parser {
	return NewFile("<stdin>")
}

func NewFile(fn string) *Parser {
	return &Parser{
		fn: fn,
	}
}

// skipTo drops tokens until one of the given keywords, which is also
// consumed. It reports whether a keyword was found.
func skipTo(toks *token.Tokens, words ...string) bool {
	for {
		cur := toks.Peek()
		if cur == nil {
			return false
		}
		toks.Pop()
		for _, word := range words {
			if cur.Is(word) {
				return true
			}
		}
	}
}

// skipLine drops the rest of the given line for error recovery, stopping
// early at any of the given keywords.
func skipLine(toks *token.Tokens, lineno int, stops ...string) {
	for {
		cur := toks.Peek()
		if cur == nil || cur.Lineno() > lineno {
			return
		}
		for _, word := range stops {
			if cur.Is(word) {
				return
			}
		}
		toks.Pop()
	}
}

func atWord(toks *token.Tokens, words ...string) bool {
	cur := toks.Peek()
	for _, word := range words {
		if cur.Is(word) {
			return true
		}
	}
	return false
}
