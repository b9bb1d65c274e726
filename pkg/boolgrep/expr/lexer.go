package expr

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer splits an expression into tokens.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a Lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize returns every token in input, in order.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, ok := l.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token. ok is false at end of input.
func (l *Lexer) Next() (tok Token, ok bool) {
	for {
		l.skipWhitespace()
		if l.pos >= len(l.input) {
			return Token{}, false
		}

		start := l.pos
		switch l.input[l.pos] {
		case '(':
			l.pos++
			return Token{Kind: OpenParen, Value: "(", Pos: start, Index: -1}, true
		case ')':
			l.pos++
			return Token{Kind: CloseParen, Value: ")", Pos: start, Index: -1}, true
		case '"':
			value := l.readPhrase()
			if value == "" {
				continue
			}
			return Token{Kind: Operand, Value: value, Pos: start, Index: -1}, true
		}

		word := l.readWord()
		if kind, isKeyword := keywords[strings.ToUpper(word)]; isKeyword {
			return Token{Kind: kind, Value: word, Pos: start, Index: -1}, true
		}
		return Token{Kind: Operand, Value: word, Pos: start, Index: -1}, true
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

// readPhrase reads a double-quoted phrase. A backslash escapes the next
// character; a missing closing quote runs to end of input.
func (l *Lexer) readPhrase() string {
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == '\\' && l.pos+1 < len(l.input):
			sb.WriteByte(l.input[l.pos+1])
			l.pos += 2
		case c == '"':
			l.pos++
			return sb.String()
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
	return sb.String()
}

// readWord reads up to the next whitespace or parenthesis.
func (l *Lexer) readWord() string {
	start := l.pos
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '(' || c == ')' {
			break
		}
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if unicode.IsSpace(r) {
			break
		}
		l.pos += size
	}
	return l.input[start:l.pos]
}
