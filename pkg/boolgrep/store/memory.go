package store

import (
	"slices"
	"sync"
	"time"
)

// MemoryStore keeps results in process memory.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	runs   map[string]*memoryRun
	closed bool
}

type memoryRun struct {
	next    int
	results map[string]memoryResult // document -> result
}

type memoryResult struct {
	data      []byte
	sequence  int
	timestamp time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]*memoryRun)}
}

// Save implements Store.
func (m *MemoryStore) Save(runID, document string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	run := m.runs[runID]
	if run == nil {
		run = &memoryRun{results: make(map[string]memoryResult)}
		m.runs[runID] = run
	}
	run.next++
	run.results[document] = memoryResult{
		data:      slices.Clone(data),
		sequence:  run.next,
		timestamp: time.Now().UTC(),
	}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(runID, document string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	run := m.runs[runID]
	if run == nil {
		return nil, ErrNotFound
	}
	res, ok := run.results[document]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(res.data), nil
}

// List implements Store.
func (m *MemoryStore) List(runID string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	run := m.runs[runID]
	if run == nil {
		return nil, nil
	}

	infos := make([]Info, 0, len(run.results))
	for document, res := range run.results {
		infos = append(infos, Info{
			RunID:     runID,
			Document:  document,
			Sequence:  res.sequence,
			Timestamp: res.timestamp,
			Size:      int64(len(res.data)),
		})
	}
	slices.SortFunc(infos, func(a, b Info) int { return a.Sequence - b.Sequence })
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(runID, document string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	if run := m.runs[runID]; run != nil {
		delete(run.results, document)
	}
	return nil
}

// DeleteRun implements Store.
func (m *MemoryStore) DeleteRun(runID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.runs, runID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.runs = nil
	return nil
}

// Len returns the number of results across all runs.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, run := range m.runs {
		n += len(run.results)
	}
	return n
}
