// package analyze is responsible for scoping, declaration and type checking
// of a parsed CL program.
package analyze

import (
	"log"

	"github.com/susji/cl/diag"
	"github.com/susji/cl/node"
	"github.com/susji/cl/symtab"
	"github.com/susji/cl/types"
)

type Option func(*Analyzer)

// WithTrace logs every node as it is entered and left.
func WithTrace(l *log.Logger) Option {
	return func(s *Analyzer) {
		s.trace = l
	}
}

// WithErrorCallResult makes every call expression evaluate to the error
// type, regardless of what the callee returns. Any use of a function result
// is then silently accepted.
func WithErrorCallResult() Option {
	return func(s *Analyzer) {
		s.errorcalls = true
	}
}

// Analyzer maintains the state when we check a syntax tree. All findings are
// written into the tree itself: every node receives a type and a
// referenceability flag.
type Analyzer struct {
	fn    string
	diags *diag.Bag

	// res will contain everything that it's meant to be passed onwards after
	// the analysis stage.
	res *Results

	// The stuff below this comment is used to maintain state while
	// checking.

	syms *symtab.Table
	// cursub is the header of the subprogram whose body is being checked.
	cursub *types.Type

	trace      *log.Logger
	depth      int
	errorcalls bool
}

func New(fn string, opts ...Option) *Analyzer {
	ret := &Analyzer{fn: fn}
	for _, opt := range opts {
		opt(ret)
	}
	ret.reset()
	return ret
}

func (s *Analyzer) reset() {
	s.diags = &diag.Bag{}
	s.syms = symtab.New()
	s.cursub = nil
	s.depth = 0
	s.res = &Results{
		Headers: Headers{},
		Scopes:  Scopes{},
	}
}

func (s *Analyzer) Fn() string {
	return s.fn
}

func (s *Analyzer) Results() *Results {
	return s.res
}

func (s *Analyzer) Diagnostics() *diag.Bag {
	return s.diags
}

// Failed tells whether the last analysis reported any errors.
func (s *Analyzer) Failed() bool {
	return s.diags.Failed()
}

func (s *Analyzer) report(e *diag.Error) {
	if s.trace != nil {
		s.trace.Printf("%s: %s", s.fn, e)
	}
	s.diags.Report(e)
}

// Analyze type-checks the whole program with a single depth-first traversal.
// Analyzer state is reset first, so one Analyzer may be used for several
// programs.
func (s *Analyzer) Analyze(root *node.Program) []error {
	s.reset()
	if root == nil {
		internalf(nil, "nil program")
	}
	s.check(root)
	if s.syms.Depth() != 0 {
		internalf(root, "%d scopes left open", s.syms.Depth())
	}
	return s.diags.Err()
}

// withScope runs what with a fresh innermost scope, which is always removed
// afterwards.
func (s *Analyzer) withScope(n node.Node, what func(symtab.Handle)) {
	h := s.syms.Push()
	defer s.syms.Pop()
	s.res.Scopes[h] = n
	what(h)
}

// withSubprogram marks hdr as the header of the body being checked.
func (s *Analyzer) withSubprogram(hdr *types.Type, what func()) {
	prev := s.cursub
	s.cursub = hdr
	defer func() { s.cursub = prev }()
	what()
}

func (s *Analyzer) enter(n node.Node) {
	if s.trace == nil {
		return
	}
	s.trace.Printf("%*s> %T line %d", s.depth*2, "", n, n.Line())
	s.depth++
}

func (s *Analyzer) leave(n node.Node) {
	if s.trace == nil {
		return
	}
	s.depth--
	s.trace.Printf("%*s< %T %s ref=%t", s.depth*2, "", n, n.Type(), n.Ref())
}
