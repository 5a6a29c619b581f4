// Package span records where in the source a token came from.
package span

import "fmt"

// Span defines a range formed by two pairs of (lineno, col). Both pairs are
// 1-based; the end pair points one past the last rune.
type Span struct {
	Lineno0, Col0, Lineno, Col int
}

func New(lineno0, col0, lineno, col int) Span {
	return Span{
		Lineno0: lineno0,
		Col0:    col0,
		Lineno:  lineno,
		Col:     col,
	}
}

// Multiline reports whether the span crosses a line boundary.
func (span Span) Multiline() bool {
	return span.Lineno != span.Lineno0
}

func (span Span) String() string {
	if !span.Multiline() {
		return fmt.Sprintf("%d:%d-%d", span.Lineno0, span.Col0, span.Col)
	}
	return fmt.Sprintf(
		"(%d, %d) -> (%d, %d)",
		span.Lineno0, span.Col0,
		span.Lineno, span.Col)
}
