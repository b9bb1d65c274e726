package expr

import "strings"

// toPostfix reorders infix tokens into postfix order using the
// shunting-yard algorithm, validating the syntax as it goes.
func toPostfix(tokens []Token) ([]Token, error) {
	var open, closed int
	for _, tok := range tokens {
		switch tok.Kind {
		case OpenParen:
			open++
		case CloseParen:
			closed++
		}
	}
	if open != closed {
		return nil, newParseError(MismatchedParentheses, nil)
	}
	if n := len(tokens); n > 0 && tokens[n-1].Kind.IsOperator() {
		return nil, newParseError(MissingOperand, &tokens[n-1])
	}

	out := make([]Token, 0, len(tokens))
	stack := make([]Token, 0, len(tokens)/2)
	var prev *Token

	for i := range tokens {
		tok := &tokens[i]
		switch {
		case tok.Kind == Operand:
			out = append(out, *tok)

		case tok.Kind.IsBinary():
			if prev == nil || (prev.Kind != Operand && prev.Kind != CloseParen) {
				return nil, newParseError(MissingOperand, tok)
			}
			for len(stack) > 0 && popsBefore(stack[len(stack)-1].Kind, tok.Kind) {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, *tok)

		case tok.Kind == Not:
			for len(stack) > 0 && popsBefore(stack[len(stack)-1].Kind, tok.Kind) {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, *tok)

		case tok.Kind == OpenParen:
			stack = append(stack, *tok)

		case tok.Kind == CloseParen:
			if prev != nil && prev.Kind.IsOperator() {
				return nil, newParseError(MismatchedParentheses, tok)
			}
			for {
				if len(stack) == 0 {
					return nil, newParseError(MismatchedParentheses, tok)
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Kind == OpenParen {
					break
				}
				out = append(out, top)
			}

		default:
			return nil, newParseError(UnknownToken, tok)
		}
		prev = tok
	}

	for len(stack) > 0 {
		out = append(out, stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}
	return out, nil
}

// popsBefore reports whether the operator on top of the stack must be
// emitted before next is pushed. Binary operators are left-associative;
// the prefix NOT is right-associative and yields only to tighter operators.
func popsBefore(top, next Kind) bool {
	if !top.IsOperator() {
		return false
	}
	if next == Not {
		return top.Precedence() > next.Precedence()
	}
	return top.Precedence() >= next.Precedence()
}

// checkStructure verifies that a postfix sequence reduces to exactly one
// value.
func checkStructure(postfix []Token) error {
	var operands, binary, depth int
	for i := range postfix {
		tok := &postfix[i]
		switch {
		case tok.Kind == Operand:
			operands++
			depth++
		case tok.Kind == Not:
			if depth < 1 {
				return newParseError(MissingOperand, tok)
			}
		case tok.Kind.IsBinary():
			binary++
			if depth < 2 {
				return newParseError(MissingOperand, tok)
			}
			depth--
		}
	}
	if operands == 0 {
		return newParseError(MissingOperand, nil)
	}
	if binary < operands-1 || depth != 1 {
		return newParseError(MissingOperator, nil)
	}
	return nil
}

// indexOperands returns a copy of tokens with operand indices assigned in
// first-seen order and all other indices cleared.
func indexOperands(tokens []Token) ([]Token, int) {
	out := make([]Token, len(tokens))
	n := 0
	for i, tok := range tokens {
		if tok.Kind == Operand {
			tok.Index = n
			n++
		} else {
			tok.Index = -1
		}
		out[i] = tok
	}
	return out, n
}

// canonical renders the infix tokens with operands replaced by their
// placeholders.
func canonical(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == Operand {
			parts = append(parts, Placeholder(tok.Index))
			continue
		}
		parts = append(parts, tok.Kind.String())
	}
	return strings.Join(parts, " ")
}

// Placeholder returns the short identifier used for the operand at idx in
// the canonical form: a..z, then aa, ab, ... zz, then aaa and so on.
func Placeholder(idx int) string {
	var buf [16]byte
	i := len(buf)
	for n := idx + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('a' + (n-1)%26)
	}
	return string(buf[i:])
}
