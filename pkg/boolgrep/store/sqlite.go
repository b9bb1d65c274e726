package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS results (
		run_id TEXT NOT NULL,
		document TEXT NOT NULL,
		sequence INTEGER NOT NULL,
		saved_at TEXT NOT NULL,
		data BLOB NOT NULL,
		PRIMARY KEY (run_id, document)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_results_run_sequence ON results(run_id, sequence)`,
}

// SQLiteStore persists results to a SQLite database file.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore opens (or creates) a result database.
// path is a file path or ":memory:".
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Every pooled connection to ":memory:" would see its own empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	for _, stmt := range sqliteSchema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(runID, document string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO results (run_id, document, sequence, saved_at, data)
		VALUES (?, ?, COALESCE((SELECT MAX(sequence) FROM results WHERE run_id = ?), 0) + 1, ?, ?)
		ON CONFLICT(run_id, document) DO UPDATE SET
			sequence = (SELECT MAX(sequence) FROM results WHERE run_id = excluded.run_id) + 1,
			saved_at = excluded.saved_at,
			data = excluded.data
	`, runID, document, runID, time.Now().UTC().Format(time.RFC3339Nano), data)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(runID, document string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	var data []byte
	err := s.db.QueryRow(
		`SELECT data FROM results WHERE run_id = ? AND document = ?`,
		runID, document,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load result: %w", err)
	}
	return data, nil
}

// List implements Store.
func (s *SQLiteStore) List(runID string) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT document, sequence, saved_at, LENGTH(data)
		FROM results
		WHERE run_id = ?
		ORDER BY sequence
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		info := Info{RunID: runID}
		var savedAt string
		if err := rows.Scan(&info.Document, &info.Sequence, &savedAt, &info.Size); err != nil {
			return nil, fmt.Errorf("scan result info: %w", err)
		}
		info.Timestamp, _ = time.Parse(time.RFC3339Nano, savedAt)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return infos, nil
}

// Runs returns the distinct run IDs in the database in the order they
// were first saved.
func (s *SQLiteStore) Runs() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT run_id FROM results
		GROUP BY run_id
		ORDER BY MIN(rowid)
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []string
	for rows.Next() {
		var runID string
		if err := rows.Scan(&runID); err != nil {
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		runs = append(runs, runID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(runID, document string) error {
	return s.exec("delete result",
		`DELETE FROM results WHERE run_id = ? AND document = ?`, runID, document)
}

// DeleteRun implements Store.
func (s *SQLiteStore) DeleteRun(runID string) error {
	return s.exec("delete run", `DELETE FROM results WHERE run_id = ?`, runID)
}

func (s *SQLiteStore) exec(op, query string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close implements Store. Closing twice is a no-op.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
