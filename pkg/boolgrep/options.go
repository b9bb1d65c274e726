package boolgrep

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/randalmurphal/boolgrep/pkg/boolgrep/observability"
	"github.com/randalmurphal/boolgrep/pkg/boolgrep/store"
)

// SearchType selects how operands are matched.
type SearchType int

const (
	// PlainText matches operands literally.
	PlainText SearchType = iota
	// Regex treats every operand as a regular expression.
	Regex
)

// String returns the configuration name of the search type.
func (t SearchType) String() string {
	switch t {
	case PlainText:
		return "plaintext"
	case Regex:
		return "regex"
	}
	return fmt.Sprintf("SearchType(%d)", int(t))
}

// ParseSearchType converts a configuration name into a SearchType.
func ParseSearchType(name string) (SearchType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "plaintext", "plain", "text":
		return PlainText, nil
	case "regex", "regexp":
		return Regex, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSearchType, name)
}

// searchConfig holds the settings of a Searcher.
type searchConfig struct {
	searchType          SearchType
	caseSensitive       bool
	wholeWord           bool
	booleanOperators    bool
	workers             int
	documentTimeout     time.Duration
	maxMatches          int
	stopAfterFirstMatch bool
	openRetry           RetryPolicy

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	store   store.Store
	runID   string
}

func defaultSearchConfig() searchConfig {
	return searchConfig{
		searchType:       PlainText,
		booleanOperators: true,
		workers:          4,
		openRetry:        NoRetry,
		metrics:          observability.NoopMetrics{},
		spans:            observability.NoopSpanManager{},
	}
}

// Option configures a Searcher.
type Option func(*searchConfig)

// WithSearchType sets how operands are matched.
// Default: PlainText
func WithSearchType(t SearchType) Option {
	return func(c *searchConfig) {
		c.searchType = t
	}
}

// WithCaseSensitive makes matching case sensitive.
// Default: false
func WithCaseSensitive(enabled bool) Option {
	return func(c *searchConfig) {
		c.caseSensitive = enabled
	}
}

// WithWholeWord restricts matches to whole words.
// Default: false
func WithWholeWord(enabled bool) Option {
	return func(c *searchConfig) {
		c.wholeWord = enabled
	}
}

// WithBooleanOperators controls whether AND, OR, NOT, NAND, NOR and XOR
// are operators. When disabled the whole query is a single operand.
// Default: true
func WithBooleanOperators(enabled bool) Option {
	return func(c *searchConfig) {
		c.booleanOperators = enabled
	}
}

// WithWorkers sets how many documents Search scans in parallel.
// Default: 4
func WithWorkers(n int) Option {
	return func(c *searchConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithDocumentTimeout bounds the time spent on a single document.
// Zero disables the limit.
func WithDocumentTimeout(d time.Duration) Option {
	return func(c *searchConfig) {
		if d >= 0 {
			c.documentTimeout = d
		}
	}
}

// WithMaxMatches caps the matches collected per operand in a document.
// Zero is unlimited.
func WithMaxMatches(n int) Option {
	return func(c *searchConfig) {
		if n >= 0 {
			c.maxMatches = n
		}
	}
}

// WithStopAfterFirstMatch collects at most one match per operand.
func WithStopAfterFirstMatch(enabled bool) Option {
	return func(c *searchConfig) {
		c.stopAfterFirstMatch = enabled
	}
}

// WithLogger sets the logger. Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(c *searchConfig) {
		c.logger = logger
	}
}

// WithMetrics records search metrics with m.
//
// Example:
//
//	s, err := boolgrep.New(query, boolgrep.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *searchConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager traces searches with m.
func WithSpanManager(m observability.SpanManager) Option {
	return func(c *searchConfig) {
		if m != nil {
			c.spans = m
		}
	}
}

// WithStore saves a store.Record for every searched document.
func WithStore(s store.Store) Option {
	return func(c *searchConfig) {
		c.store = s
	}
}

// WithRunID sets the run identifier used for logs, traces and stored
// results. A random UUID is used when unset.
func WithRunID(id string) Option {
	return func(c *searchConfig) {
		c.runID = id
	}
}
