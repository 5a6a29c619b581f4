package token

import (
	"errors"
	"fmt"
	"strings"

	"github.com/susji/cl/span"
)

var EOT = errors.New("end of tokens")

// Tokens implements a FIFO for individual tokens.
type Tokens struct {
	toks []Token
}

type Token struct {
	span  span.Span
	kind  Kind
	value string
}

func New(kind Kind, span span.Span, value string) Token {
	if !validkind(kind) {
		panic(fmt.Sprintf("invalid token kind: %v", kind))
	}
	return Token{
		kind:  kind,
		value: value,
		span:  span,
	}
}

// At is a convenience constructor for tokens which only need a line, mostly
// useful when building syntax trees by hand.
func At(kind Kind, lineno int, value string) *Token {
	tok := New(kind, span.New(lineno, 1, lineno, 1), value)
	return &tok
}

type Kind int

const (
	Id Kind = iota
	IntLit
	True
	False
	LParen
	RParen
	LBrack
	RBrack
	Comma
	Dot
	Plus
	Minus
	Star
	Slash
	Lt
	Gt
	Eq
	Assign
	Comment
)

var toknames = [...]string{
	"id",
	"intlit",
	"true",
	"false",
	"(",
	")",
	"[",
	"]",
	",",
	".",
	"+",
	"-",
	"*",
	"/",
	"<",
	">",
	"=",
	":=",
	"//comment",
}

func (k Kind) String() string {
	return toknames[k]
}

func validkind(kind Kind) bool {
	return kind >= 0 && int(kind) <= (len(toknames)-1)
}

func (tok *Token) String() string {
	switch tok.kind {
	case Id, IntLit:
		return tok.value
	case Comment:
		return fmt.Sprintf("// %s", tok.value)
	default:
		return fmt.Sprintf("%q", toknames[tok.kind])
	}
}

func (tok *Token) Value() string {
	return tok.value
}

func (tok *Token) Kind() Kind {
	return tok.kind
}

// Is reports whether the token is an identifier spelling the given word. The
// language's keywords are lexed as plain identifiers.
func (tok *Token) Is(word string) bool {
	return tok != nil && tok.kind == Id && tok.value == word
}

func (tok *Token) Lineno() int {
	return tok.span.Lineno0
}

func (tok *Token) Col() int {
	return tok.span.Col0
}

func (tok *Token) Span() span.Span {
	return tok.span
}

func (toks *Tokens) Add(tok Token) *Tokens {
	toks.toks = append(toks.toks, tok)
	return toks
}

func (toks *Tokens) String() string {
	b := &strings.Builder{}
	for _, tok := range toks.toks {
		b.WriteString(
			fmt.Sprintf("[%d:%d] %s\n", tok.Lineno(), tok.Col(), tok.String()))
	}
	return b.String()
}

func (toks *Tokens) Len() int {
	return len(toks.toks)
}

func (toks *Tokens) Pop() *Token {
	if toks.Len() == 0 {
		return nil
	}
	var tok Token
	tok, toks.toks = toks.toks[0], toks.toks[1:]
	return &tok
}

// Peek returns the current token-to-be-parsed. It never returns comment
// tokens.
func (toks *Tokens) Peek() *Token {
	for {
		if toks.Len() == 0 {
			return nil
		}
		if toks.toks[0].Kind() != Comment {
			return &toks.toks[0]
		}
		toks.Pop()
	}
}

// PeekAll returns the current token-to-be-parsed. Unlike Peek, it never
// discriminates based on token kind.
func (toks *Tokens) PeekAll() *Token {
	if toks.Len() == 0 {
		return nil
	}
	return &toks.toks[0]
}

func (toks *Tokens) Accept(kind Kind) error {
	cur := toks.Peek()
	if cur == nil {
		return EOT
	}
	got := cur.Kind()
	if got != kind {
		return fmt.Errorf("expecting %q, got %v", toknames[kind], cur)
	}
	toks.Pop()
	return nil
}

// AcceptWord is Accept for keywords.
func (toks *Tokens) AcceptWord(word string) error {
	cur := toks.Peek()
	if cur == nil {
		return EOT
	}
	if !cur.Is(word) {
		return fmt.Errorf("expecting %q, got %v", word, cur)
	}
	toks.Pop()
	return nil
}

func (toks *Tokens) Find(kinds ...Kind) *Token {
	find := map[Kind]struct{}{}
	for _, kind := range kinds {
		find[kind] = struct{}{}
	}
	for {
		cur := toks.Peek()
		if cur == nil {
			return nil
		}
		if _, ok := find[cur.Kind()]; ok {
			return cur
		}
		toks.Pop()
	}
}

// SkipLine drops tokens until the first one starting on a line after the
// given one. The language has no statement terminators, so line breaks are
// the best resynchronization points we have.
func (toks *Tokens) SkipLine(lineno int) {
	for {
		cur := toks.Peek()
		if cur == nil || cur.Lineno() > lineno {
			return
		}
		toks.Pop()
	}
}
