// Package diag holds the semantic diagnostics of a CL program: the error
// kinds, the records describing each reported violation and an ordered
// collector for them.
package diag

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateDeclaration   = errors.New("duplicate declaration")
	ErrUndeclaredIdentifier   = errors.New("undeclared identifier")
	ErrNonReferenceableLeft   = errors.New("non-referenceable left side")
	ErrIncompatibleAssignment = errors.New("incompatible assignment")
	ErrIncompatibleOperator   = errors.New("incompatible operator")
	ErrIncompatibleReturn     = errors.New("incompatible return")
	ErrBasicTypeRequired      = errors.New("basic type required")
	ErrFieldNotDefined        = errors.New("field not defined")
	ErrDuplicateField         = errors.New("duplicate field")
	ErrWrongParamCount        = errors.New("wrong parameter count")
	ErrIncompatibleParam      = errors.New("incompatible parameter")
	ErrParamNotReferenceable  = errors.New("parameter not referenceable")
	ErrNotProcedure           = errors.New("not a procedure")
	ErrNotFunction            = errors.New("not a function")
	ErrReferenceableRequired  = errors.New("referenceable expression required")
)

// Error is a single semantic violation. Subject is the identifier, field,
// operator or construct the message talks about and Index the 1-based
// parameter position, depending on Kind.
type Error struct {
	Line    int
	Kind    error
	Subject string
	Index   int
}

func (e *Error) Error() string {
	return fmt.Sprintf("L. %d: %s", e.Line, e.Message())
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Message is the fixed phrase of the error kind with its subject filled in.
func (e *Error) Message() string {
	switch e.Kind {
	case ErrDuplicateDeclaration:
		return fmt.Sprintf("Identifier %s already declared.", e.Subject)
	case ErrUndeclaredIdentifier:
		return fmt.Sprintf("Identifier %s is undeclared.", e.Subject)
	case ErrNonReferenceableLeft:
		return "Left expression of assignment is not referenceable."
	case ErrIncompatibleAssignment:
		return "Assignment with incompatible types."
	case ErrIncompatibleOperator:
		return fmt.Sprintf("Operator %s with incompatible types.", e.Subject)
	case ErrIncompatibleReturn:
		return "Return with incompatible type."
	case ErrBasicTypeRequired:
		return fmt.Sprintf("Basic type required in %s.", e.Subject)
	case ErrFieldNotDefined:
		return fmt.Sprintf("Field %s is not defined in the struct.", e.Subject)
	case ErrDuplicateField:
		return fmt.Sprintf("Field %s already defined in the struct.", e.Subject)
	case ErrWrongParamCount:
		return "The number of parameters in the call do not match."
	case ErrIncompatibleParam:
		return fmt.Sprintf("Parameter %d with incompatible types.", e.Index)
	case ErrParamNotReferenceable:
		return fmt.Sprintf(
			"Parameter %d is expected to be referenceable but it is not.", e.Index)
	case ErrNotProcedure:
		return "Operator ( must be applied to a procedure in an instruction."
	case ErrNotFunction:
		return "Operator ( must be applied to a function in an expression."
	case ErrReferenceableRequired:
		return fmt.Sprintf("Referenceable expression required in %s.", e.Subject)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Subject)
}

func DuplicateDeclaration(line int, name string) *Error {
	return &Error{Line: line, Kind: ErrDuplicateDeclaration, Subject: name}
}

func UndeclaredIdentifier(line int, name string) *Error {
	return &Error{Line: line, Kind: ErrUndeclaredIdentifier, Subject: name}
}

func NonReferenceableLeft(line int) *Error {
	return &Error{Line: line, Kind: ErrNonReferenceableLeft}
}

func IncompatibleAssignment(line int) *Error {
	return &Error{Line: line, Kind: ErrIncompatibleAssignment}
}

func IncompatibleOperator(line int, op string) *Error {
	return &Error{Line: line, Kind: ErrIncompatibleOperator, Subject: op}
}

func IncompatibleReturn(line int) *Error {
	return &Error{Line: line, Kind: ErrIncompatibleReturn}
}

func BasicTypeRequired(line int, construct string) *Error {
	return &Error{Line: line, Kind: ErrBasicTypeRequired, Subject: construct}
}

func FieldNotDefined(line int, field string) *Error {
	return &Error{Line: line, Kind: ErrFieldNotDefined, Subject: field}
}

func DuplicateField(line int, field string) *Error {
	return &Error{Line: line, Kind: ErrDuplicateField, Subject: field}
}

func WrongParamCount(line int) *Error {
	return &Error{Line: line, Kind: ErrWrongParamCount}
}

func IncompatibleParam(line, index int) *Error {
	return &Error{Line: line, Kind: ErrIncompatibleParam, Index: index}
}

func ParamNotReferenceable(line, index int) *Error {
	return &Error{Line: line, Kind: ErrParamNotReferenceable, Index: index}
}

func NotProcedure(line int) *Error {
	return &Error{Line: line, Kind: ErrNotProcedure}
}

func NotFunction(line int) *Error {
	return &Error{Line: line, Kind: ErrNotFunction}
}

func ReferenceableRequired(line int, construct string) *Error {
	return &Error{Line: line, Kind: ErrReferenceableRequired, Subject: construct}
}

// Bag collects diagnostics in the order they were reported. A non-empty bag
// means the analysis failed.
type Bag struct {
	errs []*Error
}

func (b *Bag) Report(e *Error) {
	b.errs = append(b.errs, e)
}

func (b *Bag) Failed() bool {
	return len(b.errs) > 0
}

func (b *Bag) Len() int {
	return len(b.errs)
}

func (b *Bag) Errors() []*Error {
	return b.errs
}

// Err returns the diagnostics as plain errors, nil when there are none.
func (b *Bag) Err() []error {
	if len(b.errs) == 0 {
		return nil
	}
	ret := make([]error, len(b.errs))
	for i, e := range b.errs {
		ret[i] = e
	}
	return ret
}

func (b *Bag) Reset() {
	b.errs = nil
}

// Count returns how many diagnostics of the given kind were reported.
func (b *Bag) Count(kind error) int {
	n := 0
	for _, e := range b.errs {
		if errors.Is(e, kind) {
			n++
		}
	}
	return n
}
