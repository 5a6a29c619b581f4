package symtab_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susji/cl/symtab"
	"github.com/susji/cl/types"
)

var (
	tint  = types.New(types.Int)
	tbool = types.New(types.Bool)
)

func TestDeclareLookup(t *testing.T) {
	st := symtab.New()
	st.Push()
	require.NoError(t, st.Declare("x", symtab.LocalVariable, tint))
	require.NoError(t, st.Declare("f", symtab.Function, tbool))

	sym, ok := st.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, tint, sym.Type)
	assert.True(t, sym.Kind.Referenceable())

	sym, ok = st.Lookup("f")
	require.True(t, ok)
	assert.False(t, sym.Kind.Referenceable())

	_, ok = st.Lookup("y")
	assert.False(t, ok)
}

func TestDuplicateKeepsFirst(t *testing.T) {
	st := symtab.New()
	st.Push()
	require.NoError(t, st.Declare("x", symtab.LocalVariable, tint))
	err := st.Declare("x", symtab.LocalVariable, tbool)
	assert.True(t, errors.Is(err, symtab.ErrDuplicateDeclaration))

	sym, ok := st.Lookup("x")
	require.True(t, ok)
	assert.Same(t, tint, sym.Type)
	assert.Len(t, st.Symbols(), 1)
}

func TestShadowing(t *testing.T) {
	st := symtab.New()
	outer := st.Push()
	require.NoError(t, st.Declare("x", symtab.LocalVariable, tint))

	inner := st.Push()
	assert.NotEqual(t, outer, inner)
	assert.Equal(t, inner, st.Current())
	require.NoError(t, st.Declare("x", symtab.ParamByRef, tbool))
	sym, _ := st.Lookup("x")
	assert.Same(t, tbool, sym.Type)
	assert.Equal(t, symtab.ParamByRef, sym.Kind)
	assert.Equal(t, 2, st.Depth())

	st.Pop()
	sym, _ = st.Lookup("x")
	assert.Same(t, tint, sym.Type)
	assert.Equal(t, outer, st.Current())
	assert.Equal(t, 1, st.Depth())

	st.Pop()
	assert.Equal(t, 0, st.Depth())
	_, ok := st.Lookup("x")
	assert.False(t, ok)
}

func TestSymbolsOrder(t *testing.T) {
	st := symtab.New()
	st.Push()
	for _, name := range []string{"c", "a", "b"} {
		require.NoError(t, st.Declare(name, symtab.LocalVariable, tint))
	}
	names := []string{}
	for _, sym := range st.Symbols() {
		names = append(names, sym.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestPopEmptyPanics(t *testing.T) {
	st := symtab.New()
	assert.Panics(t, func() { st.Pop() })
	assert.Panics(t, func() { st.Declare("x", symtab.LocalVariable, tint) })
	assert.Equal(t, symtab.Handle(0), st.Current())
	assert.Nil(t, st.Symbols())
}
