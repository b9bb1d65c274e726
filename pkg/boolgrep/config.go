package boolgrep

import (
	"github.com/randalmurphal/boolgrep/pkg/boolgrep/config"
)

// OptionsFromConfig converts loaded settings into Options.
// Include, Exclude and Database are used by callers that walk directories
// and open stores, not by the Searcher itself.
func OptionsFromConfig(cfg config.Config) ([]Option, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	searchType, err := ParseSearchType(cfg.SearchType)
	if err != nil {
		return nil, err
	}
	opts := []Option{
		WithBooleanOperators(cfg.BooleanOperators),
		WithSearchType(searchType),
		WithCaseSensitive(cfg.CaseSensitive),
		WithWholeWord(cfg.WholeWord),
		WithWorkers(cfg.Workers),
		WithDocumentTimeout(cfg.DocumentTimeout.Std()),
		WithMaxMatches(cfg.MaxMatches),
		WithStopAfterFirstMatch(cfg.StopAfterFirstMatch),
	}
	if cfg.OpenRetries > 0 {
		policy := DefaultOpenRetry
		policy.MaxAttempts = cfg.OpenRetries + 1
		opts = append(opts, WithOpenRetry(policy))
	}
	return opts, nil
}
