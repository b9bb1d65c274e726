// Package store persists per-document search results so a run can be
// inspected after the process exits.
package store

import (
	"errors"
	"fmt"
	"time"
)

// Store persists encoded search results keyed by run and document.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores the result for a document in a run.
	// Saving the same (runID, document) again replaces the earlier result
	// and moves it to the end of the run's sequence.
	Save(runID, document string, data []byte) error

	// Load retrieves a result.
	// Returns ErrNotFound if no result was saved for the document.
	Load(runID, document string) ([]byte, error)

	// List returns metadata for every result in a run, ordered by sequence.
	// Returns an empty slice (not an error) for an unknown run.
	List(runID string) ([]Info, error)

	// Delete removes one result. Deleting a missing result is not an error.
	Delete(runID, document string) error

	// DeleteRun removes every result in a run.
	DeleteRun(runID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info describes a stored result without loading it.
type Info struct {
	RunID     string
	Document  string
	Sequence  int
	Timestamp time.Time
	Size      int64
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no result exists for the document.
	ErrNotFound = errors.New("result not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("result store closed")
)

// SaveRecord encodes rec and saves it under its run and document.
func SaveRecord(s Store, rec *Record) error {
	data, err := rec.Marshal()
	if err != nil {
		return fmt.Errorf("encode result %s: %w", rec.Document, err)
	}
	return s.Save(rec.RunID, rec.Document, data)
}

// LoadRecord loads and decodes one result.
func LoadRecord(s Store, runID, document string) (*Record, error) {
	data, err := s.Load(runID, document)
	if err != nil {
		return nil, err
	}
	rec, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decode result %s: %w", document, err)
	}
	return rec, nil
}

// Records loads every result of a run in sequence order.
func Records(s Store, runID string) ([]*Record, error) {
	infos, err := s.List(runID)
	if err != nil {
		return nil, err
	}
	records := make([]*Record, 0, len(infos))
	for _, info := range infos {
		rec, err := LoadRecord(s, runID, info.Document)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
