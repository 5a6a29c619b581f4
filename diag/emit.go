package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/cznic/mathutil"
)

const (
	ansiRed   = "\x1b[31m"
	ansiDim   = "\x1b[2m"
	ansiReset = "\x1b[0m"
)

// Emitter writes diagnostics in the `L. <line>: <message>` form, one per
// line, optionally followed by the offending source line.
type Emitter struct {
	w     io.Writer
	lines []string
	// Color wraps the line prefix and the context in ANSI escapes.
	Color bool
	// Context prints the source line below each diagnostic.
	Context bool
	// Max limits the number of diagnostics written. Zero means all.
	Max int
}

func NewEmitter(w io.Writer, src []rune) *Emitter {
	return &Emitter{
		w:     w,
		lines: strings.Split(string(src), "\n"),
	}
}

func (em *Emitter) prefix(line int) string {
	if em.Color {
		return fmt.Sprintf("%sL. %d:%s", ansiRed, line, ansiReset)
	}
	return fmt.Sprintf("L. %d:", line)
}

func (em *Emitter) context(line int) (string, bool) {
	if line < 1 || line > len(em.lines) {
		return "", false
	}
	text := strings.TrimSpace(em.lines[line-1])
	if em.Color {
		return fmt.Sprintf("    %s%s%s", ansiDim, text, ansiReset), true
	}
	return "    " + text, true
}

// Emit writes the diagnostics and returns how many were written.
func (em *Emitter) Emit(errs []*Error) (int, error) {
	n := len(errs)
	if em.Max > 0 {
		n = mathutil.Min(n, em.Max)
	}
	for _, e := range errs[:n] {
		if _, err := fmt.Fprintf(em.w, "%s %s\n", em.prefix(e.Line), e.Message()); err != nil {
			return 0, err
		}
		if !em.Context {
			continue
		}
		if ctx, ok := em.context(e.Line); ok {
			if _, err := fmt.Fprintln(em.w, ctx); err != nil {
				return 0, err
			}
		}
	}
	if rest := len(errs) - n; rest > 0 {
		if _, err := fmt.Fprintf(em.w, "... %d more omitted\n", rest); err != nil {
			return 0, err
		}
	}
	return n, nil
}
