package expr

import (
	"errors"
	"fmt"
)

// ParserState reports the outcome of parsing an expression.
type ParserState int

// Parser states.
const (
	None ParserState = iota
	MismatchedParentheses
	MissingOperator
	MissingOperand
	UnknownToken
	UnknownError
)

// String implements fmt.Stringer.
func (s ParserState) String() string {
	switch s {
	case None:
		return "None"
	case MismatchedParentheses:
		return "MismatchedParentheses"
	case MissingOperator:
		return "MissingOperator"
	case MissingOperand:
		return "MissingOperand"
	case UnknownToken:
		return "UnknownToken"
	case UnknownError:
		return "UnknownError"
	}
	return fmt.Sprintf("ParserState(%d)", int(s))
}

// Sentinel errors, one per failing parser state.
var (
	// ErrMismatchedParentheses indicates unbalanced or misplaced parentheses.
	ErrMismatchedParentheses = errors.New("mismatched parentheses")

	// ErrMissingOperator indicates two operands with no operator between them.
	ErrMissingOperator = errors.New("missing operator")

	// ErrMissingOperand indicates an operator with no operand on one side.
	ErrMissingOperand = errors.New("missing operand")

	// ErrUnknownToken indicates a token kind outside the supported set.
	ErrUnknownToken = errors.New("unknown token")

	// ErrUnknown indicates an unexpected failure while parsing.
	ErrUnknown = errors.New("unknown parser error")
)

// ErrIncompleteExpression is returned when an expression is evaluated before
// every operand has a result. It signals caller misuse.
var ErrIncompleteExpression = errors.New("expression is incomplete")

// ErrInvalidExpression is returned when evaluating an expression that failed
// to parse.
var ErrInvalidExpression = errors.New("expression did not parse")

// Err returns the sentinel error for the state, or nil for None.
func (s ParserState) Err() error {
	switch s {
	case None:
		return nil
	case MismatchedParentheses:
		return ErrMismatchedParentheses
	case MissingOperator:
		return ErrMissingOperator
	case MissingOperand:
		return ErrMissingOperand
	case UnknownToken:
		return ErrUnknownToken
	}
	return ErrUnknown
}

// ParseError describes why an expression failed to parse.
type ParseError struct {
	// State is the failing parser state.
	State ParserState
	// Pos is the byte offset of the offending token, or -1 if unknown.
	Pos int
	// Token is the offending token text, if any.
	Token string
	// Cause holds the recovered value for UnknownError.
	Cause any
}

func newParseError(state ParserState, tok *Token) *ParseError {
	e := &ParseError{State: state, Pos: -1}
	if tok != nil {
		e.Pos = tok.Pos
		e.Token = tok.String()
	}
	return e
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := ErrUnknown.Error()
	if err := e.State.Err(); err != nil {
		msg = err.Error()
	}
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	case e.Token != "" && e.Pos >= 0:
		return fmt.Sprintf("%s at %d near %q", msg, e.Pos, e.Token)
	case e.Token != "":
		return fmt.Sprintf("%s near %q", msg, e.Token)
	}
	return msg
}

// Unwrap returns the sentinel for errors.Is support.
func (e *ParseError) Unwrap() error {
	return e.State.Err()
}
