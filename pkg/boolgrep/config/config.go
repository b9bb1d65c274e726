package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Search types accepted by SearchType.
const (
	SearchPlainText = "plaintext"
	SearchRegex     = "regex"
)

// Config holds search settings loaded from a file.
// The zero value is not useful; start from Default().
type Config struct {
	// BooleanOperators enables AND/OR/NOT/NAND/NOR/XOR parsing. When false
	// the whole query is one search term.
	BooleanOperators bool `yaml:"boolean_operators" json:"boolean_operators"`

	// SearchType is "plaintext" or "regex".
	SearchType string `yaml:"search_type" json:"search_type"`

	CaseSensitive bool `yaml:"case_sensitive" json:"case_sensitive"`
	WholeWord     bool `yaml:"whole_word" json:"whole_word"`

	// Workers is the number of documents scanned in parallel.
	Workers int `yaml:"workers" json:"workers"`

	// DocumentTimeout bounds a single document scan. Zero disables it.
	DocumentTimeout Duration `yaml:"document_timeout" json:"document_timeout"`

	// MaxMatches caps the matches collected per operand. Zero is unlimited.
	MaxMatches int `yaml:"max_matches" json:"max_matches"`

	// StopAfterFirstMatch stops each operand scan at its first hit.
	StopAfterFirstMatch bool `yaml:"stop_after_first_match" json:"stop_after_first_match"`

	// OpenRetries is how many times a document that failed to open with a
	// transient error is tried again.
	OpenRetries int `yaml:"open_retries" json:"open_retries"`

	// Include and Exclude are file name glob patterns used when walking
	// directories.
	Include []string `yaml:"include" json:"include"`
	Exclude []string `yaml:"exclude" json:"exclude"`

	// Database is the path of the SQLite result store. Empty disables it.
	Database string `yaml:"database" json:"database"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		BooleanOperators: true,
		SearchType:       SearchPlainText,
		Workers:          4,
	}
}

// ErrInvalidConfig indicates a setting is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch strings.ToLower(c.SearchType) {
	case SearchPlainText, SearchRegex:
	default:
		return fmt.Errorf("%w: search_type %q", ErrInvalidConfig, c.SearchType)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.MaxMatches < 0 {
		return fmt.Errorf("%w: max_matches must not be negative", ErrInvalidConfig)
	}
	if c.OpenRetries < 0 {
		return fmt.Errorf("%w: open_retries must not be negative", ErrInvalidConfig)
	}
	if c.DocumentTimeout < 0 {
		return fmt.Errorf("%w: document_timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Duration is a time.Duration that decodes from a Go duration string
// ("1m30s") or a number of seconds.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func parseDuration(v any) (Duration, error) {
	switch val := v.(type) {
	case string:
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return 0, err
		}
		return Duration(parsed), nil
	case float64:
		return Duration(val * float64(time.Second)), nil
	case int:
		return Duration(time.Duration(val) * time.Second), nil
	case nil:
		return 0, nil
	}
	return 0, fmt.Errorf("unsupported duration %v (%T)", v, v)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	parsed, err := parseDuration(v)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := parseDuration(v)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON writes the duration as a Go duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// MarshalYAML writes the duration as a Go duration string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}
