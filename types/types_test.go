package types_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susji/cl/types"
)

func point() *types.Type {
	st := types.NewStruct()
	if err := st.AddField("x", types.New(types.Int)); err != nil {
		panic(err)
	}
	if err := st.AddField("y", types.New(types.Int)); err != nil {
		panic(err)
	}
	return st
}

// constructed returns one of every kind of type we can build, Error aside.
func constructed() map[string]*types.Type {
	pt := point()
	return map[string]*types.Type{
		"int":          types.New(types.Int),
		"bool":         types.New(types.Bool),
		"void":         types.New(types.Void),
		"array3int":    types.NewArray(types.New(types.Int), 3),
		"array4int":    types.NewArray(types.New(types.Int), 4),
		"array3bool":   types.NewArray(types.New(types.Bool), 3),
		"arraypoint":   types.NewArray(pt, 2),
		"point":        pt,
		"otherpoint":   point(),
		"valint":       types.NewParam(false, types.New(types.Int)),
		"refint":       types.NewParam(true, types.New(types.Int)),
		"procedure":    types.NewHeader(types.Procedure, nil, nil),
		"procedureint": types.NewHeader(types.Procedure, []*types.Type{types.NewParam(false, types.New(types.Int))}, nil),
		"function":     types.NewHeader(types.Function, nil, types.New(types.Bool)),
	}
}

func TestEquivalentReflexive(t *testing.T) {
	for name, cur := range constructed() {
		t.Run(name, func(t *testing.T) {
			assert.True(t, cur.Equivalent(cur))
		})
	}
}

func TestEquivalentSymmetric(t *testing.T) {
	all := constructed()
	for n1, t1 := range all {
		for n2, t2 := range all {
			assert.Equalf(t, t1.Equivalent(t2), t2.Equivalent(t1),
				"%s vs. %s", n1, n2)
		}
	}
}

func TestEquivalent(t *testing.T) {
	all := constructed()
	type entry struct {
		a, b string
		want bool
	}
	table := []entry{
		{"array3int", "array4int", false},
		{"array3int", "array3bool", false},
		{"int", "bool", false},
		{"point", "otherpoint", false},
		{"valint", "refint", false},
		{"procedure", "procedureint", false},
		{"procedure", "function", false},
	}
	for _, cur := range table {
		t.Run(cur.a+"/"+cur.b, func(t *testing.T) {
			assert.Equal(t, cur.want, all[cur.a].Equivalent(all[cur.b]))
		})
	}
	assert.True(t,
		types.NewArray(types.New(types.Int), 3).Equivalent(all["array3int"]))
	assert.True(t, types.New(types.Int).Equivalent(all["int"]))
}

func TestErrorEquivalentToNothing(t *testing.T) {
	e := types.New(types.Error)
	assert.False(t, e.Equivalent(e))
	for name, cur := range constructed() {
		assert.False(t, e.Equivalent(cur), name)
		assert.False(t, cur.Equivalent(e), name)
	}
	var none *types.Type
	assert.False(t, none.Equivalent(e))
}

func TestStructFields(t *testing.T) {
	st := types.NewStruct()
	require.NoError(t, st.AddField("b", types.New(types.Bool)))
	require.NoError(t, st.AddField("a", types.New(types.Int)))
	err := st.AddField("b", types.New(types.Int))
	assert.True(t, errors.Is(err, types.ErrDuplicateField))

	assert.Equal(t, []string{"b", "a"}, st.FieldOrder)
	assert.Len(t, st.Fields, 2)
	assert.Equal(t, types.Bool, st.Field("b").Kind)
	assert.Equal(t, types.Int, st.Field("a").Kind)
	assert.Nil(t, st.Field("c"))
	assert.Nil(t, types.New(types.Int).Field("a"))
	assert.Equal(t, "struct{b bool, a int}", st.String())
}

func TestHeader(t *testing.T) {
	h := types.NewHeader(types.Function, []*types.Type{
		types.NewParam(false, types.New(types.Int)),
		types.NewParam(true, types.NewArray(types.New(types.Bool), 5)),
	}, types.New(types.Int))

	assert.Equal(t, 2, h.NumParams())
	assert.True(t, h.IsHeader())
	assert.True(t, h.Params[1].Is(types.ParamByRef))
	assert.Equal(t, types.Array, h.Params[1].Elem.Kind)
	assert.Equal(t, "function(val int, ref array[5] of bool) int", h.String())

	p := types.NewHeader(types.Procedure, nil, types.New(types.Int))
	assert.Nil(t, p.Returns)
	assert.Equal(t, "procedure()", p.String())

	assert.Panics(t, func() {
		types.NewHeader(types.Procedure, []*types.Type{types.New(types.Int)}, nil)
	})
	assert.Panics(t, func() {
		types.NewHeader(types.Array, nil, nil)
	})
}

func TestPredicates(t *testing.T) {
	assert.True(t, types.New(types.Int).IsBasic())
	assert.True(t, types.New(types.Bool).IsBasic())
	assert.False(t, point().IsBasic())
	assert.False(t, types.New(types.Error).IsBasic())
	assert.True(t, types.New(types.Error).IsError())

	var none *types.Type
	assert.False(t, none.IsError())
	assert.False(t, none.Is(types.Int))
}
