package dimacs

import (
	"errors"
	"fmt"
)

var (
	ErrIO                = errors.New("could not read instance")
	ErrMalformedHeader   = errors.New("malformed header")
	ErrMalformedClause   = errors.New("malformed clause")
	ErrLiteralOutOfRange = errors.New("literal out of range")
	ErrAllocation        = errors.New("allocation limit exceeded")
	ErrClauseCount       = errors.New("clause count mismatch")
)

// ParseError is returned by Parse when the input violates the DIMACS
// grammar or one of the problem's invariants. Kind is one of the sentinel
// errors above and can be tested with errors.Is.
type ParseError struct {
	Kind error
	Line int

	// Index of the clause being parsed, or -1 if the error occurred in the
	// header.
	Clause int

	Msg string
}

func (e *ParseError) Error() string {
	if e.Clause < 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Msg)
	}
	return fmt.Sprintf("line %d: clause %d: %s: %s", e.Line, e.Clause, e.Kind, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

func headerErr(c *cursor, format string, args ...any) error {
	return &ParseError{
		Kind:   ErrMalformedHeader,
		Line:   c.line,
		Clause: -1,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func clauseErr(kind error, c *cursor, clause int, format string, args ...any) error {
	return &ParseError{
		Kind:   kind,
		Line:   c.line,
		Clause: clause,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func literalMsg(l, nVars int) string {
	return fmt.Sprintf("literal %d not in [1, %d]", l, nVars)
}
