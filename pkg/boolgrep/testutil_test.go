package boolgrep_test

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

// recordingMetrics counts calls made by a Searcher.
type recordingMetrics struct {
	mu            sync.Mutex
	documents     int
	matched       int
	documentErrs  int
	searches      int
	shortCircuits int
	skipped       int
	pruned        int
}

func (m *recordingMetrics) RecordDocument(_ context.Context, matched bool, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents++
	if matched {
		m.matched++
	}
	if err != nil {
		m.documentErrs++
	}
}

func (m *recordingMetrics) RecordSearch(_ context.Context, _ int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches++
}

func (m *recordingMetrics) RecordShortCircuit(_ context.Context, skipped int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shortCircuits++
	m.skipped += skipped
}

func (m *recordingMetrics) RecordPrunedMatches(_ context.Context, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruned += count
}

// slowDocument returns one byte per Read after a delay.
type slowDocument struct {
	name  string
	delay time.Duration
}

func (d slowDocument) Name() string { return d.name }

func (d slowDocument) Open() (io.ReadCloser, error) {
	return io.NopCloser(&slowReader{delay: d.delay, data: []byte("slow text")}), nil
}

type slowReader struct {
	delay time.Duration
	data  []byte
}

func (r *slowReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	time.Sleep(r.delay)
	p[0] = r.data[0]
	r.data = r.data[1:]
	return 1, nil
}

// panicDocument panics when opened.
type panicDocument struct{ name string }

func (d panicDocument) Name() string { return d.name }

func (d panicDocument) Open() (io.ReadCloser, error) {
	panic("cannot open " + d.name)
}

// failingDocument returns err from Open.
type failingDocument struct {
	name string
	err  error
}

func (d failingDocument) Name() string { return d.name }

func (d failingDocument) Open() (io.ReadCloser, error) {
	return nil, d.err
}

var errOpen = errors.New("device not ready")

// writeGzip writes text to path gzip-compressed.
func writeGzip(t *testing.T, path, text string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := gzip.NewWriter(f)
	_, err = io.Copy(zw, strings.NewReader(text))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

// writeZstd writes text to path zstd-compressed.
func writeZstd(t *testing.T, path, text string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = io.Copy(zw, strings.NewReader(text))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func writeFile(path, text string) error {
	return os.WriteFile(path, []byte(text), 0o644)
}

func mkdirAll(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
