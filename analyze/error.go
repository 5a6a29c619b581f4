package analyze

import (
	"fmt"

	"github.com/susji/cl/node"
)

// InternalError is raised with panic when the analyzer meets a tree it
// cannot have been given by a working front end. It is never a problem in
// the analyzed program.
type InternalError struct {
	Node    node.Node
	Wrapped error
}

func (e *InternalError) Error() string {
	if e.Node == nil {
		return fmt.Sprintf("internal error: %s", e.Wrapped)
	}
	return fmt.Sprintf("internal error: line %d: %T: %s", e.Node.Line(), e.Node, e.Wrapped)
}

func (e *InternalError) Unwrap() error {
	return e.Wrapped
}

func internalf(n node.Node, format string, a ...interface{}) {
	panic(&InternalError{
		Node:    n,
		Wrapped: fmt.Errorf(format, a...),
	})
}
