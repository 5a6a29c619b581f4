package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susji/cl/span"
	"github.com/susji/cl/token"
)

func sp() span.Span {
	return span.Span{}
}

func line(n int) span.Span {
	return span.New(n, 1, n, 2)
}

func TestTokensFind(t *testing.T) {
	toks := &token.Tokens{}
	toks.Add(token.New(token.IntLit, sp(), "1")).
		Add(token.New(token.IntLit, sp(), "2")).
		Add(token.New(token.Id, sp(), "one")).
		Add(token.New(token.Plus, sp(), "")).
		Add(token.New(token.Id, sp(), "two")).
		Add(token.New(token.Id, sp(), "three")).
		Add(token.New(token.IntLit, sp(), "7")).
		Add(token.New(token.Assign, sp(), ""))

	first := toks.Find(token.Id)
	toks.Pop()
	second := toks.Find(token.Id)
	toks.Pop()
	third := toks.Find(token.Id)
	toks.Pop()
	fourth := toks.Find(token.Assign, token.IntLit)
	toks.Pop()
	fifth := toks.Find(token.Assign, token.IntLit)
	toks.Pop()
	assert.Nil(t, toks.Peek())

	require.NotNil(t, first)
	require.NotNil(t, second)
	require.NotNil(t, third)
	require.NotNil(t, fourth)
	require.NotNil(t, fifth)
	assert.Equal(t, "one", first.Value())
	assert.Equal(t, "two", second.Value())
	assert.Equal(t, "three", third.Value())
	assert.Equal(t, "7", fourth.Value())
	assert.Equal(t, token.Assign, fifth.Kind())
}

func TestPeekSkipsComments(t *testing.T) {
	toks := &token.Tokens{}
	toks.Add(token.New(token.Comment, sp(), "hello")).
		Add(token.New(token.Comment, sp(), "there")).
		Add(token.New(token.Id, sp(), "x"))

	assert.Equal(t, token.Comment, toks.PeekAll().Kind())
	cur := toks.Peek()
	require.NotNil(t, cur)
	assert.Equal(t, "x", cur.Value())
	assert.Equal(t, 1, toks.Len())
}

func TestAccept(t *testing.T) {
	toks := &token.Tokens{}
	toks.Add(token.New(token.Id, sp(), "while")).
		Add(token.New(token.LParen, sp(), ""))

	assert.Error(t, toks.AcceptWord("if"))
	assert.NoError(t, toks.AcceptWord("while"))
	assert.Error(t, toks.Accept(token.RParen))
	assert.NoError(t, toks.Accept(token.LParen))
	assert.ErrorIs(t, toks.Accept(token.LParen), token.EOT)
}

func TestSkipLine(t *testing.T) {
	toks := &token.Tokens{}
	toks.Add(token.New(token.Id, line(1), "x")).
		Add(token.New(token.Assign, line(1), "")).
		Add(token.New(token.Plus, line(1), "")).
		Add(token.New(token.Id, line(2), "y"))

	toks.SkipLine(1)
	cur := toks.Peek()
	require.NotNil(t, cur)
	assert.Equal(t, "y", cur.Value())
	assert.Equal(t, 2, cur.Lineno())

	toks.SkipLine(2)
	assert.Nil(t, toks.Peek())
}

func TestIs(t *testing.T) {
	kw := token.At(token.Id, 3, "endif")
	assert.True(t, kw.Is("endif"))
	assert.False(t, kw.Is("endwhile"))
	assert.False(t, token.At(token.IntLit, 3, "endif").Is("endif"))
	assert.Equal(t, 3, kw.Lineno())
}
