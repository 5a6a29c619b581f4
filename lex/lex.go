// Package lex turns CL source text into tokens.
package lex

import (
	"errors"
	"fmt"

	"github.com/cznic/mathutil"

	"github.com/susji/cl/span"
	"github.com/susji/cl/token"
)

var (
	ErrUnexpectedRune = errors.New("unexpected character")
	ErrLoneColon      = errors.New("expecting '=' after ':'")
)

// Error is a lexing error at a given position. Lexing continues after it.
type Error struct {
	Lineno, Col int
	Wrapped     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Lineno, e.Col, e.Wrapped)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

type scanner struct {
	src         []rune
	start, end  int
	lineno, col int
	// position of the token being scanned
	lineno0, col0 int
	toks          *token.Tokens
	errs          []error
}

var singles = map[rune]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBrack,
	']': token.RBrack,
	',': token.Comma,
	'.': token.Dot,
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'<': token.Lt,
	'>': token.Gt,
	'=': token.Eq,
}

func isIdStart(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || r == '_'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func (s *scanner) peek() rune {
	if s.end >= len(s.src) {
		return 0
	}
	return s.src[s.end]
}

func (s *scanner) advance() rune {
	r := s.peek()
	s.end++
	if r == '\n' {
		s.lineno++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *scanner) text() string {
	end := mathutil.Clamp(s.end, 0, len(s.src))
	return string(s.src[s.start:end])
}

func (s *scanner) emit(kind token.Kind, value string) {
	sp := span.New(s.lineno0, s.col0, s.lineno, s.col)
	s.toks.Add(token.New(kind, sp, value))
}

func (s *scanner) errorf(err error, format string, a ...interface{}) {
	s.errs = append(s.errs, &Error{
		Lineno:  s.lineno0,
		Col:     s.col0,
		Wrapped: fmt.Errorf("%w: "+format, append([]interface{}{err}, a...)...),
	})
}

func (s *scanner) scan() {
	r := s.advance()
	switch {
	case r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\v':
		// Whitespace is ignored, linefeeds included.
	case r == '/' && s.peek() == '/':
		s.advance()
		for s.peek() != '\n' && s.peek() != 0 {
			s.advance()
		}
		s.emit(token.Comment, s.text()[2:])
	case r == '/':
		s.emit(token.Slash, "")
	case r == ':':
		if s.peek() != '=' {
			s.errorf(ErrLoneColon, "got %q", s.peek())
			return
		}
		s.advance()
		s.emit(token.Assign, "")
	case isDigit(r):
		for isDigit(s.peek()) {
			s.advance()
		}
		s.emit(token.IntLit, s.text())
	case isIdStart(r):
		for isIdStart(s.peek()) || isDigit(s.peek()) {
			s.advance()
		}
		switch id := s.text(); id {
		case "true":
			s.emit(token.True, id)
		case "false":
			s.emit(token.False, id)
		default:
			s.emit(token.Id, id)
		}
	default:
		if kind, ok := singles[r]; ok {
			s.emit(kind, "")
			return
		}
		s.errorf(ErrUnexpectedRune, "%q", r)
	}
}

// Lex scans the whole input. Erroneous characters are reported and skipped,
// so the returned tokens are usable for further error reporting even when
// errors are present.
func Lex(what []rune) (*token.Tokens, []error) {
	s := &scanner{
		src:    what,
		lineno: 1,
		col:    1,
		toks:   &token.Tokens{},
	}
	for s.end < len(s.src) {
		s.start = s.end
		s.lineno0, s.col0 = s.lineno, s.col
		s.scan()
	}
	return s.toks, s.errs
}
