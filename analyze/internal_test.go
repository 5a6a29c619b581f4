package analyze

import (
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susji/cl/node"
	"github.com/susji/cl/token"
)

func catch(what func()) (ierr *InternalError) {
	defer func() {
		if r := recover(); r != nil {
			var ok bool
			if ierr, ok = r.(*InternalError); !ok {
				panic(r)
			}
		}
	}()
	what()
	return nil
}

func TestInternalScopesClosed(t *testing.T) {
	sub := &node.Subprogram{
		Name: "p",
		Body: &node.Block{Value: []node.Node{
			&node.Param{Name: "stray"},
		}},
	}
	node.Store(token.At(token.Id, 3, "p"), sub)
	root := &node.Program{
		Subprogs: []*node.Subprogram{sub},
		Body:     &node.Block{},
	}
	s := New("internal")
	ierr := catch(func() { s.Analyze(root) })
	require.NotNil(t, ierr)
	assert.Same(t, sub.Body.Value[0], ierr.Node)
	assert.Equal(t, 0, s.syms.Depth())
	assert.Nil(t, s.cursub)
}

func TestInternalMalformed(t *testing.T) {
	table := []*node.Program{
		nil,
		{},
		{Body: &node.Block{Value: []node.Node{&node.If{Cond: &node.BoolLit{}}}}},
		{Body: &node.Block{Value: []node.Node{&node.While{Cond: &node.BoolLit{}}}}},
		{Body: &node.Block{Value: []node.Node{&node.Call{}}}},
		{Body: &node.Block{Value: []node.Node{
			&node.Write{Expr: &node.OpBinary{Op: node.KindOpBin(99), Left: &node.IntLit{}, Right: &node.IntLit{}}},
		}}},
		{Subprogs: []*node.Subprogram{
			{Name: "f", Function: true, Body: &node.Block{}},
		}, Body: &node.Block{}},
	}
	for _, cur := range table {
		s := New("malformed")
		ierr := catch(func() { s.Analyze(cur) })
		require.NotNil(t, ierr, "%v", cur)
		assert.NotEmpty(t, ierr.Error())
		assert.True(t, errors.Is(ierr, ierr.Wrapped))
		assert.Equal(t, 0, s.syms.Depth())
	}
}

// depthLog compares the scope depth when each traced node is left to the
// depth when it was entered.
type depthLog struct {
	t     *testing.T
	s     *Analyzer
	stack []int
	max   int
}

func (d *depthLog) Write(b []byte) (int, error) {
	line := strings.TrimSpace(string(b))
	depth := d.s.syms.Depth()
	if depth > d.max {
		d.max = depth
	}
	switch {
	case strings.HasPrefix(line, "> "):
		d.stack = append(d.stack, depth)
	case strings.HasPrefix(line, "< "):
		require.NotEmpty(d.t, d.stack, line)
		top := d.stack[len(d.stack)-1]
		d.stack = d.stack[:len(d.stack)-1]
		assert.Equal(d.t, top, depth, line)
	}
	return len(b), nil
}

func TestScopeDepthRestored(t *testing.T) {
	// procedure p
	//   procedure q
	//     x := true       (x undeclared)
	//     r := 1          (r undeclared)
	//   q()
	// p()
	q := &node.Subprogram{
		Name: "q",
		Body: &node.Block{Value: []node.Node{
			&node.Assign{To: &node.Ident{Value: "x"}, What: &node.BoolLit{Value: true}},
			&node.Assign{To: &node.Ident{Value: "r"}, What: &node.IntLit{Value: 1}},
		}},
	}
	p := &node.Subprogram{
		Name:     "p",
		Subprogs: []*node.Subprogram{q},
		Body: &node.Block{Value: []node.Node{
			&node.Call{Callee: &node.Ident{Value: "q"}},
		}},
	}
	root := &node.Program{
		Subprogs: []*node.Subprogram{p},
		Body: &node.Block{Value: []node.Node{
			&node.Call{Callee: &node.Ident{Value: "p"}},
		}},
	}
	d := &depthLog{t: t}
	s := New("scopes", WithTrace(log.New(d, "", 0)))
	d.s = s
	errs := s.Analyze(root)
	assert.Len(t, errs, 2)
	assert.True(t, s.Failed())
	assert.Empty(t, d.stack)
	assert.Equal(t, 3, d.max)
	assert.Equal(t, 0, s.syms.Depth())

	scopes := s.Results().Scopes
	assert.Len(t, scopes, 3)
	assert.Same(t, root, scopes[root.Scope])
	assert.Same(t, p, scopes[p.Scope])
	assert.Same(t, q, scopes[q.Scope])
}
