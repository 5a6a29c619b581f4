package config_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susji/cl/config"
	"github.com/susji/cl/diag"
)

func TestParse(t *testing.T) {
	c, err := config.Parse(`
# comment
check.call-result = error
check.trace = true
diag.color: 1
diag.context = false
diag.max-errors = 3
`)
	require.NoError(t, err)
	assert.Equal(t, &config.Config{
		ErrorCallResult: true,
		Trace:           true,
		Color:           true,
		Context:         false,
		MaxErrors:       3,
	}, c)
	assert.Len(t, c.Options(), 1)
}

func TestParseDefaults(t *testing.T) {
	c, err := config.Parse("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
	assert.Empty(t, c.Options())
}

func TestParseErrors(t *testing.T) {
	type entry struct {
		src  string
		want error
	}
	table := []entry{
		{"check.call-resutl = error", config.ErrUnknownKey},
		{"check.call-result = maybe", config.ErrBadValue},
		{"check.trace = perhaps", config.ErrBadValue},
		{"diag.color = on", config.ErrBadValue},
		{"diag.context = yes", config.ErrBadValue},
		{"diag.max-errors = many", config.ErrBadValue},
		{"diag.max-errors = -1", config.ErrBadValue},
	}
	for _, cur := range table {
		t.Run(cur.src, func(t *testing.T) {
			c, err := config.Parse(cur.src)
			t.Log(err)
			assert.Nil(t, c)
			assert.True(t, errors.Is(err, cur.want))
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	c, err := config.Load(filepath.Join(dir, config.DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)

	path := filepath.Join(dir, "custom.properties")
	require.NoError(t, os.WriteFile(path, []byte("diag.max-errors = 1\n"), 0o644))
	c, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.MaxErrors)

	require.NoError(t, os.WriteFile(path, []byte("bogus = 1\n"), 0o644))
	_, err = config.Load(path)
	assert.True(t, errors.Is(err, config.ErrUnknownKey))
	assert.Contains(t, err.Error(), path)
}

func TestEmitter(t *testing.T) {
	c, err := config.Parse("diag.max-errors = 1\ndiag.context = true")
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	em := c.Emitter(buf, []rune("program\n  x := 1\nendprogram"))
	n, err := em.Emit([]*diag.Error{
		diag.UndeclaredIdentifier(2, "x"),
		diag.UndeclaredIdentifier(2, "x"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), "L. 2: Identifier x is undeclared.\n    x := 1\n")
}
