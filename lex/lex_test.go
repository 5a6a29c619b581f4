package lex_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susji/cl/lex"
	"github.com/susji/cl/token"
)

type tok struct {
	kind  token.Kind
	value string
}

func drain(toks *token.Tokens) []tok {
	ret := []tok{}
	for toks.PeekAll() != nil {
		cur := toks.Pop()
		ret = append(ret, tok{cur.Kind(), cur.Value()})
	}
	return ret
}

func TestLexSimple(t *testing.T) {
	type entry struct {
		give string
		want []tok
	}
	table := []entry{
		{
			give: "x := 123",
			want: []tok{
				{token.Id, "x"},
				{token.Assign, ""},
				{token.IntLit, "123"},
			},
		},
		{
			give: "v[i+1].f:=not true",
			want: []tok{
				{token.Id, "v"},
				{token.LBrack, ""},
				{token.Id, "i"},
				{token.Plus, ""},
				{token.IntLit, "1"},
				{token.RBrack, ""},
				{token.Dot, ""},
				{token.Id, "f"},
				{token.Assign, ""},
				{token.Id, "not"},
				{token.True, "true"},
			},
		},
		{
			give: "a<b>c=d-e*f/g,(false)",
			want: []tok{
				{token.Id, "a"},
				{token.Lt, ""},
				{token.Id, "b"},
				{token.Gt, ""},
				{token.Id, "c"},
				{token.Eq, ""},
				{token.Id, "d"},
				{token.Minus, ""},
				{token.Id, "e"},
				{token.Star, ""},
				{token.Id, "f"},
				{token.Slash, ""},
				{token.Id, "g"},
				{token.Comma, ""},
				{token.LParen, ""},
				{token.False, "false"},
				{token.RParen, ""},
			},
		},
		{
			give: "x // the rest is a comment\ny",
			want: []tok{
				{token.Id, "x"},
				{token.Comment, " the rest is a comment"},
				{token.Id, "y"},
			},
		},
	}
	for i, cur := range table {
		t.Run(fmt.Sprintf("#%d", i+1), func(t *testing.T) {
			toks, errs := lex.Lex([]rune(cur.give))
			require.Empty(t, errs)
			assert.Equal(t, cur.want, drain(toks))
		})
	}
}

func TestLexPositions(t *testing.T) {
	toks, errs := lex.Lex([]rune("program\n  x := 1\nendprogram"))
	require.Empty(t, errs)
	want := []struct{ lineno, col int }{
		{1, 1},
		{2, 3},
		{2, 5},
		{2, 8},
		{3, 1},
	}
	require.Equal(t, len(want), toks.Len())
	for _, w := range want {
		cur := toks.Pop()
		assert.Equal(t, w.lineno, cur.Lineno(), cur.String())
		assert.Equal(t, w.col, cur.Col(), cur.String())
	}
}

func TestLexErrors(t *testing.T) {
	type entry struct {
		give    string
		wanterr error
		left    int
	}
	table := []entry{
		{"x # y", lex.ErrUnexpectedRune, 2},
		{"x : y", lex.ErrLoneColon, 2},
		{"x$", lex.ErrUnexpectedRune, 1},
	}
	for _, cur := range table {
		t.Run(cur.give, func(t *testing.T) {
			toks, errs := lex.Lex([]rune(cur.give))
			require.Len(t, errs, 1)
			assert.True(t, errors.Is(errs[0], cur.wanterr))
			var lerr *lex.Error
			require.True(t, errors.As(errs[0], &lerr))
			assert.Equal(t, 1, lerr.Lineno)
			assert.Equal(t, cur.left, toks.Len())
		})
	}
}

func TestLexSmoke(t *testing.T) {
	src := `
program
  vars
    x, y int
    v array [10] of struct a int b bool endstruct
  endvars

  procedure swap(ref a int, ref b int)
    vars t int endvars
    t := a
    a := b
    b := t
  endprocedure

  x := 1
  y := 2
  swap(x, y)
  writeln(v[x].a)
endprogram
`
	toks, errs := lex.Lex([]rune(src))
	assert.Empty(t, errs)
	assert.True(t, 50 < toks.Len())
	t.Log(toks)
}
