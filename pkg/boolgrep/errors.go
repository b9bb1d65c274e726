package boolgrep

import (
	"errors"
	"fmt"
)

// Sentinel errors for building and running a Searcher.
var (
	// ErrEmptyQuery indicates New was called with a blank query.
	ErrEmptyQuery = errors.New("empty query")

	// ErrNilContext indicates Search was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")

	// ErrInvalidSearchType indicates an unknown search type name.
	ErrInvalidSearchType = errors.New("invalid search type")
)

// OperandError reports an operand that could not be compiled into a
// matcher, typically a bad regular expression.
type OperandError struct {
	// Index is the operand's index in the expression.
	Index int
	// Operand is the operand text as typed.
	Operand string
	// Err is the underlying compile error.
	Err error
}

// Error implements the error interface.
func (e *OperandError) Error() string {
	return fmt.Sprintf("operand %d %q: %v", e.Index, e.Operand, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *OperandError) Unwrap() error {
	return e.Err
}

// DocumentError wraps a failure to search one document.
type DocumentError struct {
	// Document is the document name.
	Document string
	// Op is the step that failed ("open", "read", "scan").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %s: %s: %v", e.Document, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *DocumentError) Unwrap() error {
	return e.Err
}

// PanicError captures a panic raised while searching a document.
type PanicError struct {
	// Document is the document being searched.
	Document string
	// Value is the value passed to panic().
	Value any
	// Stack is the stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("document %s panicked: %v", e.Document, e.Value)
}
