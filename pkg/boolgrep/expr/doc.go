/*
Package expr parses and evaluates boolean search expressions.

# Overview

An expression combines search terms with boolean operators so a text search
can decide, term by term, whether a document satisfies the whole condition.
Parsing converts the infix input to postfix order once; each document then
gets its own State that collects operand results as the scanner finds them.

# Expression Syntax

	<expr>    := <operand>
	           | 'NOT' <expr>
	           | <expr> <binop> <expr>
	           | '(' <expr> ')'
	<binop>   := 'AND' | 'NAND' | 'XOR' | 'OR' | 'NOR'
	<operand> := bare-word | "quoted phrase"

Keywords are case-insensitive. A word that only contains a keyword, such as
"ORDER" or "android", is an operand. Inside a quoted phrase a backslash
escapes the next character.

# Precedence

	NOT            highest, prefix
	AND, NAND
	XOR
	OR, NOR        lowest

Binary operators of equal precedence associate to the left.

# Parser States

Parse always returns an Expression. When the input is malformed the error is
a *ParseError and State reports one of:

	MismatchedParentheses   "(a AND b", "a AND )"
	MissingOperator         "a b", "(a) b"
	MissingOperand          "a AND", "AND a", "a AND OR b"
	UnknownToken            a token kind outside the supported set
	UnknownError            anything else

# Canonical Form

Canonical replaces each operand with a placeholder in first-seen order:
a..z, then aa, ab and so on.

	foo AND ("bar baz" OR NOT qux)   =>   a AND ( b OR NOT c )

# Evaluation

	e, err := expr.Parse(`error AND NOT "connection reset"`)
	if err != nil {
	    return err
	}

	st := expr.NewState[Match](e)
	for i, op := range e.Operands() {
	    hits := scan(doc, op.Value)
	    st.Set(i, len(hits) > 0, hits)
	    if st.IsShortCircuitFalse() {
	        break // the document cannot match
	    }
	}
	if st.Evaluate() == expr.True {
	    report(st.AllMatches())
	}

Evaluate discards the matches of operands whose sub-expression was falsified
under AND, NAND, NOR or NOT. Matches under OR and XOR are always kept.

# Concurrency

An Expression is read-only after parsing and can be shared. A State must not
be shared between goroutines.
*/
package expr
