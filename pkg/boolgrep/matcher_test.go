package boolgrep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineIndex(t *testing.T) {
	idx := newLineIndex("a\nbb\n\nccc")
	assert.Equal(t, lineIndex{1, 4, 5}, idx)

	tests := []struct {
		offset int
		line   int
	}{
		{0, 1},
		{1, 1}, // the newline belongs to its line
		{2, 2},
		{4, 2},
		{5, 3},
		{6, 4},
		{8, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.line, idx.line(tt.offset), "offset %d", tt.offset)
	}

	assert.Empty(t, newLineIndex("no newline"))
	assert.Equal(t, 1, newLineIndex("").line(0))
}

func TestCompileOperand(t *testing.T) {
	tests := []struct {
		name  string
		value string
		cfg   searchConfig
		text  string
		want  bool
	}{
		{"plain quoted", "1+1", searchConfig{}, "1+1=2", true},
		{"plain not regex", "1+1", searchConfig{}, "11", false},
		{"regex", "1+1", searchConfig{searchType: Regex}, "11", true},
		{"insensitive", "abc", searchConfig{}, "ABC", true},
		{"sensitive", "abc", searchConfig{caseSensitive: true}, "ABC", false},
		{"whole word hit", "cat", searchConfig{wholeWord: true}, "a cat.", true},
		{"whole word miss", "cat", searchConfig{wholeWord: true}, "cats", false},
		{"whole word alternation", "cat|dog", searchConfig{searchType: Regex, wholeWord: true}, "hotdog", false},
		{"multiline anchors", "^two$", searchConfig{searchType: Regex}, "one\ntwo\nthree", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := compileOperand(tt.value, &tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, re.MatchString(tt.text))
		})
	}

	_, err := compileOperand("(", &searchConfig{searchType: Regex})
	assert.Error(t, err)
}

func TestFindMatches_SkipsEmpty(t *testing.T) {
	re, err := compileOperand("x*", &searchConfig{searchType: Regex})
	require.NoError(t, err)

	text := "ab xx c x"
	matches := findMatches(re, 2, text, newLineIndex(text), -1)
	assert.Equal(t, []Match{
		{Operand: 2, Start: 3, Length: 2, Line: 1},
		{Operand: 2, Start: 8, Length: 1, Line: 1},
	}, matches)

	assert.Empty(t, findMatches(re, 0, "abc", nil, -1))
}

func TestFindMatches_Limit(t *testing.T) {
	re, err := compileOperand("x*", &searchConfig{searchType: Regex})
	require.NoError(t, err)

	// Empty matches at the start of the text push the first real match past
	// the first few locations the regexp reports.
	text := "ab xx c x"
	lines := newLineIndex(text)
	first := Match{Operand: 1, Start: 3, Length: 2, Line: 1}
	second := Match{Operand: 1, Start: 8, Length: 1, Line: 1}

	tests := []struct {
		limit int
		want  []Match
	}{
		{1, []Match{first}},
		{2, []Match{first, second}},
		{5, []Match{first, second}},
		{-1, []Match{first, second}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, findMatches(re, 1, text, lines, tt.limit), "limit %d", tt.limit)
	}

	assert.Nil(t, findMatches(re, 0, "abc", nil, 3))

	plain, err := compileOperand("a", &searchConfig{})
	require.NoError(t, err)
	text = "a\na\na\na"
	got := findMatches(plain, 0, text, newLineIndex(text), 2)
	assert.Equal(t, []Match{
		{Operand: 0, Start: 0, Length: 1, Line: 1},
		{Operand: 0, Start: 2, Length: 1, Line: 2},
	}, got)
}

func TestMatchLimit(t *testing.T) {
	assert.Equal(t, -1, (&searchConfig{}).matchLimit())
	assert.Equal(t, 5, (&searchConfig{maxMatches: 5}).matchLimit())
	assert.Equal(t, 1, (&searchConfig{maxMatches: 5, stopAfterFirstMatch: true}).matchLimit())
}

func TestSortMatches(t *testing.T) {
	matches := []Match{
		{Operand: 1, Start: 9},
		{Operand: 2, Start: 0},
		{Operand: 0, Start: 9},
	}
	sortMatches(matches)
	assert.Equal(t, []Match{
		{Operand: 2, Start: 0},
		{Operand: 0, Start: 9},
		{Operand: 1, Start: 9},
	}, matches)
}
