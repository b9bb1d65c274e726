package expr

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kinds  []Kind
		values []string
	}{
		{
			name:   "simple and",
			input:  "a AND b",
			kinds:  []Kind{Operand, And, Operand},
			values: []string{"a", "AND", "b"},
		},
		{
			name:   "keywords are case-insensitive",
			input:  "a and b Or c nOt d",
			kinds:  []Kind{Operand, And, Operand, Or, Operand, Not, Operand},
			values: []string{"a", "and", "b", "Or", "c", "nOt", "d"},
		},
		{
			name:   "all operators",
			input:  "NOT AND NAND XOR OR NOR",
			kinds:  []Kind{Not, And, Nand, Xor, Or, Nor},
			values: []string{"NOT", "AND", "NAND", "XOR", "OR", "NOR"},
		},
		{
			name:   "keyword substrings stay operands",
			input:  "ORDER android NOTHING xorg",
			kinds:  []Kind{Operand, Operand, Operand, Operand},
			values: []string{"ORDER", "android", "NOTHING", "xorg"},
		},
		{
			name:   "parentheses split words",
			input:  "(a OR b)AND(c)",
			kinds:  []Kind{OpenParen, Operand, Or, Operand, CloseParen, And, OpenParen, Operand, CloseParen},
			values: []string{"(", "a", "OR", "b", ")", "AND", "(", "c", ")"},
		},
		{
			name:   "quoted phrase",
			input:  `"hello world" AND x`,
			kinds:  []Kind{Operand, And, Operand},
			values: []string{"hello world", "AND", "x"},
		},
		{
			name:   "quoted keyword is an operand",
			input:  `"AND" OR "(x)"`,
			kinds:  []Kind{Operand, Or, Operand},
			values: []string{"AND", "OR", "(x)"},
		},
		{
			name:   "escaped quote",
			input:  `"say \"hi\""`,
			kinds:  []Kind{Operand},
			values: []string{`say "hi"`},
		},
		{
			name:   "unterminated quote runs to end",
			input:  `a OR "b c`,
			kinds:  []Kind{Operand, Or, Operand},
			values: []string{"a", "OR", "b c"},
		},
		{
			name:   "empty phrase is dropped",
			input:  `"" a`,
			kinds:  []Kind{Operand},
			values: []string{"a"},
		},
		{
			name:   "unicode whitespace and text",
			input:  "größe AND\tçà",
			kinds:  []Kind{Operand, And, Operand},
			values: []string{"größe", "AND", "çà"},
		},
		{
			name:  "empty input",
			input: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			var kinds []Kind
			var values []string
			for _, tok := range tokens {
				kinds = append(kinds, tok.Kind)
				values = append(values, tok.Value)
				if tok.Index != -1 {
					t.Errorf("token %q has Index %d before parsing, want -1", tok.Value, tok.Index)
				}
			}
			if !reflect.DeepEqual(kinds, tt.kinds) {
				t.Errorf("kinds = %v, want %v", kinds, tt.kinds)
			}
			if !reflect.DeepEqual(values, tt.values) {
				t.Errorf("values = %q, want %q", values, tt.values)
			}
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	tokens := Tokenize(`(ab OR "c d")`)
	want := []int{0, 1, 4, 7, 12}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, tok := range tokens {
		if tok.Pos != want[i] {
			t.Errorf("token %d (%q) Pos = %d, want %d", i, tok.Value, tok.Pos, want[i])
		}
	}
}

func TestKind_Predicates(t *testing.T) {
	tests := []struct {
		kind       Kind
		operator   bool
		binary     bool
		precedence int
	}{
		{Operand, false, false, 0},
		{Not, true, false, 4},
		{And, true, true, 3},
		{Nand, true, true, 3},
		{Xor, true, true, 2},
		{Or, true, true, 1},
		{Nor, true, true, 1},
		{OpenParen, false, false, 0},
		{CloseParen, false, false, 0},
		{Kind(42), false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.IsOperator(); got != tt.operator {
				t.Errorf("IsOperator() = %v, want %v", got, tt.operator)
			}
			if got := tt.kind.IsBinary(); got != tt.binary {
				t.Errorf("IsBinary() = %v, want %v", got, tt.binary)
			}
			if got := tt.kind.Precedence(); got != tt.precedence {
				t.Errorf("Precedence() = %v, want %v", got, tt.precedence)
			}
			if got := tt.kind.IsOperand(); got != (tt.kind == Operand) {
				t.Errorf("IsOperand() = %v", got)
			}
		})
	}

	if got := Kind(42).String(); got != "Kind(42)" {
		t.Errorf("Kind(42).String() = %q", got)
	}
}
