package store

import (
	"encoding/json"
	"time"
)

// Version is the current record format version.
const Version = 1

// Span is a stored match location.
type Span struct {
	Start  int `json:"start"`
	Length int `json:"length"`
	Line   int `json:"line"`
}

// Record is the persisted outcome of searching one document.
type Record struct {
	Version   int       `json:"version"`
	RunID     string    `json:"run_id"`
	Document  string    `json:"document"`
	Timestamp time.Time `json:"timestamp"`

	// Query is the text the user typed; Canonical is its placeholder form.
	Query     string `json:"query"`
	Canonical string `json:"canonical"`

	Matched        bool   `json:"matched"`
	ShortCircuited bool   `json:"short_circuited,omitempty"`
	Matches        []Span `json:"matches,omitempty"`
	Error          string `json:"error,omitempty"`
}

// NewRecord creates a record stamped with the current format version and time.
func NewRecord(runID, document, query, canonical string) *Record {
	return &Record{
		Version:   Version,
		RunID:     runID,
		Document:  document,
		Timestamp: time.Now().UTC(),
		Query:     query,
		Canonical: canonical,
	}
}

// Marshal serializes a record to JSON.
func (r *Record) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// Unmarshal deserializes a record from JSON.
func Unmarshal(data []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
