package expr

import (
	"fmt"
	"strings"
)

// Expression is a parsed boolean search expression.
//
// An Expression is immutable once Parse returns and may be shared by any
// number of goroutines. Per-document operand results live in a State.
type Expression struct {
	input     string
	state     ParserState
	err       error
	canonical string
	postfix   []Token
	operands  []Token
}

// Parse tokenizes and parses input.
//
// Parse always returns a non-nil Expression. When parsing fails the error is
// a *ParseError, State reports the failure and the expression cannot be
// evaluated.
func Parse(input string) (*Expression, error) {
	e, err := ParseTokens(Tokenize(input))
	e.input = input
	return e, err
}

// ParseTokens parses tokens produced by an external lexer.
func ParseTokens(tokens []Token) (e *Expression, err error) {
	e = &Expression{}
	defer func() {
		if r := recover(); r != nil {
			pe := &ParseError{State: UnknownError, Pos: -1, Cause: r}
			e.fail(pe)
			err = pe
		}
	}()

	infix, _ := indexOperands(tokens)
	e.canonical = canonical(infix)
	e.input = joinValues(tokens)

	if len(infix) == 0 {
		pe := newParseError(MissingOperand, nil)
		e.fail(pe)
		return e, pe
	}

	postfix, err := toPostfix(infix)
	if err != nil {
		e.fail(err)
		return e, err
	}
	if err := checkStructure(postfix); err != nil {
		e.fail(err)
		return e, err
	}

	e.postfix = postfix
	for _, tok := range postfix {
		if tok.Kind == Operand {
			e.operands = append(e.operands, tok)
		}
	}
	return e, nil
}

// MustParse is like Parse but panics on a syntax error.
func MustParse(input string) *Expression {
	e, err := Parse(input)
	if err != nil {
		panic(fmt.Sprintf("expr: Parse(%q): %v", input, err))
	}
	return e
}

func (e *Expression) fail(err error) {
	e.err = err
	e.state = UnknownError
	if pe, ok := err.(*ParseError); ok {
		e.state = pe.State
	}
	e.postfix = nil
	e.operands = nil
}

// Input returns the text the expression was parsed from.
func (e *Expression) Input() string {
	return e.input
}

// State returns the parser state; None means the parse succeeded.
func (e *Expression) State() ParserState {
	return e.state
}

// Err returns the parse error, or nil.
func (e *Expression) Err() error {
	return e.err
}

// Valid reports whether the expression parsed and can be evaluated.
func (e *Expression) Valid() bool {
	return e.state == None && len(e.postfix) > 0
}

// Canonical returns the expression with every operand replaced by its
// placeholder, e.g. "( a AND b ) OR c".
func (e *Expression) Canonical() string {
	return e.canonical
}

// Postfix returns a copy of the tokens in postfix order.
func (e *Expression) Postfix() []Token {
	out := make([]Token, len(e.postfix))
	copy(out, e.postfix)
	return out
}

// PostfixString renders the postfix tokens separated by spaces.
func (e *Expression) PostfixString() string {
	parts := make([]string, len(e.postfix))
	for i, tok := range e.postfix {
		parts[i] = tok.String()
	}
	return strings.Join(parts, " ")
}

// Operands returns a copy of the operand tokens ordered by Index.
func (e *Expression) Operands() []Token {
	out := make([]Token, len(e.operands))
	copy(out, e.operands)
	return out
}

// NumOperands returns the number of operands.
func (e *Expression) NumOperands() int {
	return len(e.operands)
}

// HasOr reports whether any operator is OR or XOR.
func (e *Expression) HasOr() bool {
	for _, tok := range e.postfix {
		if tok.Kind == Or || tok.Kind == Xor {
			return true
		}
	}
	return false
}

// String returns the canonical form.
func (e *Expression) String() string {
	return e.canonical
}

func joinValues(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = tok.Value
	}
	return strings.Join(parts, " ")
}
