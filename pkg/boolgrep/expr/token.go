package expr

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

// Token kinds. The set is closed; any other value is rejected by the parser
// with UnknownToken.
const (
	Operand Kind = iota
	Not
	And
	Nand
	Xor
	Or
	Nor
	OpenParen
	CloseParen
)

var kindNames = [...]string{
	Operand:    "OPERAND",
	Not:        "NOT",
	And:        "AND",
	Nand:       "NAND",
	Xor:        "XOR",
	Or:         "OR",
	Nor:        "NOR",
	OpenParen:  "(",
	CloseParen: ")",
}

// String returns the keyword for operators and the symbol for parentheses.
func (k Kind) String() string {
	if k.valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) valid() bool {
	return k >= Operand && k <= CloseParen
}

// IsOperand reports whether k is a literal search term.
func (k Kind) IsOperand() bool {
	return k == Operand
}

// IsOperator reports whether k is one of the six boolean operators.
func (k Kind) IsOperator() bool {
	switch k {
	case Not, And, Nand, Xor, Or, Nor:
		return true
	}
	return false
}

// IsBinary reports whether k is a two-operand operator.
func (k Kind) IsBinary() bool {
	return k.IsOperator() && k != Not
}

// Precedence returns the binding strength of an operator. Higher binds
// tighter. Non-operators return 0.
//
//	NOT > AND = NAND > XOR > OR = NOR
func (k Kind) Precedence() int {
	switch k {
	case Not:
		return 4
	case And, Nand:
		return 3
	case Xor:
		return 2
	case Or, Nor:
		return 1
	}
	return 0
}

// keywords maps the upper-case operator keywords to their kinds.
var keywords = map[string]Kind{
	"NOT":  Not,
	"AND":  And,
	"NAND": Nand,
	"XOR":  Xor,
	"OR":   Or,
	"NOR":  Nor,
}

// Token is one lexical unit of an expression.
//
// Tokens are values and never change after parsing. The per-document
// evaluation slot for an operand lives in a State, addressed by Index.
type Token struct {
	Kind Kind

	// Value is the literal text: the search term for operands, the source
	// spelling for operators and parentheses.
	Value string

	// Pos is the byte offset of the token in the input, or -1 if unknown.
	Pos int

	// Index is the operand's position in first-seen order, or -1 for
	// operators and parentheses.
	Index int
}

// NewToken returns a token of the given kind with no position information.
func NewToken(kind Kind, value string) Token {
	return Token{Kind: kind, Value: value, Pos: -1, Index: -1}
}

// String implements fmt.Stringer.
func (t Token) String() string {
	if t.Kind == Operand {
		return t.Value
	}
	return t.Kind.String()
}

// Result is a tri-state boolean.
type Result int

// Result values.
const (
	Undetermined Result = iota - 1
	False
	True
)

// ResultOf converts a bool to a known Result.
func ResultOf(b bool) Result {
	if b {
		return True
	}
	return False
}

// Known reports whether r is True or False.
func (r Result) Known() bool {
	return r == True || r == False
}

// Bool returns true only for True.
func (r Result) Bool() bool {
	return r == True
}

// String implements fmt.Stringer.
func (r Result) String() string {
	switch r {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "undetermined"
	}
}
