package boolgrep

import (
	"regexp"
	"slices"
	"sort"
	"strings"
)

// Match is one hit in a document.
type Match struct {
	// Operand is the index of the operand that produced the match.
	Operand int
	// Start is the byte offset of the match.
	Start int
	// Length is the match length in bytes.
	Length int
	// Line is the 1-based line containing Start.
	Line int
}

// compileOperand builds the regular expression for one operand.
func compileOperand(value string, cfg *searchConfig) (*regexp.Regexp, error) {
	pattern := value
	if cfg.searchType == PlainText {
		pattern = regexp.QuoteMeta(value)
	}
	if cfg.wholeWord {
		pattern = `\b(?:` + pattern + `)\b`
	}
	flags := "m"
	if !cfg.caseSensitive {
		flags += "i"
	}
	return regexp.Compile("(?" + flags + ")" + pattern)
}

// matchLimit returns the n argument for FindAllStringIndex.
func (c *searchConfig) matchLimit() int {
	switch {
	case c.stopAfterFirstMatch:
		return 1
	case c.maxMatches > 0:
		return c.maxMatches
	}
	return -1
}

// lineIndex maps byte offsets to line numbers.
type lineIndex []int

func newLineIndex(text string) lineIndex {
	var idx lineIndex
	for i := 0; i < len(text); {
		j := strings.IndexByte(text[i:], '\n')
		if j < 0 {
			break
		}
		idx = append(idx, i+j)
		i += j + 1
	}
	return idx
}

// line returns the 1-based line of offset.
func (idx lineIndex) line(offset int) int {
	return sort.SearchInts(idx, offset) + 1
}

// findMatches returns the non-empty matches of re in text, at most limit
// of them when limit > 0. With a limit the regexp only scans as far as it
// needs to, asking again for more when empty matches were dropped.
func findMatches(re *regexp.Regexp, operand int, text string, lines lineIndex, limit int) []Match {
	n := -1
	if limit > 0 {
		n = limit
	}
	for {
		locs := re.FindAllStringIndex(text, n)
		matches := make([]Match, 0, len(locs))
		for _, loc := range locs {
			if loc[1] == loc[0] {
				continue
			}
			matches = append(matches, Match{
				Operand: operand,
				Start:   loc[0],
				Length:  loc[1] - loc[0],
				Line:    lines.line(loc[0]),
			})
			if limit > 0 && len(matches) == limit {
				return matches
			}
		}
		if n < 0 || len(locs) < n {
			if len(matches) == 0 {
				return nil
			}
			return matches
		}
		n *= 2
	}
}

// sortMatches orders matches by offset, then by operand.
func sortMatches(matches []Match) {
	slices.SortStableFunc(matches, func(a, b Match) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.Operand - b.Operand
	})
}
