package boolgrep

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/boolgrep/pkg/boolgrep/observability"
)

// flakyDocument fails to open until it has been tried failures+1 times.
type flakyDocument struct {
	failures int
	err      error
	opens    int
}

func (d *flakyDocument) Name() string { return "flaky" }

func (d *flakyDocument) Open() (io.ReadCloser, error) {
	d.opens++
	if d.opens <= d.failures {
		return nil, &fs.PathError{Op: "open", Path: "flaky", Err: d.err}
	}
	return io.NopCloser(strings.NewReader("finally")), nil
}

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }
func (timeoutErr) Timeout() bool { return true }

var fastRetry = RetryPolicy{MaxAttempts: 3, InitialBackoff: time.Millisecond, BackoffFactor: 2}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&fs.PathError{Op: "open", Err: syscall.EMFILE}))
	assert.True(t, IsTransient(syscall.EAGAIN))
	assert.True(t, IsTransient(timeoutErr{}))
	assert.False(t, IsTransient(fs.ErrNotExist))
	assert.False(t, IsTransient(errors.New("boom")))
}

func TestOpenWithRetry(t *testing.T) {
	t.Run("recovers from transient errors", func(t *testing.T) {
		doc := &flakyDocument{failures: 2, err: syscall.EMFILE}
		rc, attempts, err := openWithRetry(context.Background(), doc, fastRetry)
		require.NoError(t, err)
		defer rc.Close()
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		doc := &flakyDocument{failures: 5, err: syscall.EBUSY}
		_, attempts, err := openWithRetry(context.Background(), doc, fastRetry)
		assert.ErrorIs(t, err, syscall.EBUSY)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, 3, doc.opens)
	})

	t.Run("permanent errors are not retried", func(t *testing.T) {
		doc := &flakyDocument{failures: 5, err: syscall.ENOENT}
		_, attempts, err := openWithRetry(context.Background(), doc, fastRetry)
		assert.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("no retry policy", func(t *testing.T) {
		doc := &flakyDocument{failures: 1, err: syscall.EMFILE}
		_, attempts, err := openWithRetry(context.Background(), doc, NoRetry)
		assert.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		doc := &flakyDocument{}
		_, attempts, err := openWithRetry(ctx, doc, fastRetry)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, attempts)
		assert.Equal(t, 0, doc.opens)
	})
}

func TestSearch_OpenRetry(t *testing.T) {
	s, err := New("finally", WithOpenRetry(fastRetry))
	require.NoError(t, err)

	results, err := s.Search(context.Background(), []Document{&flakyDocument{failures: 1, err: syscall.EAGAIN}})
	require.NoError(t, err)
	require.NoError(t, results[0].Err)
	assert.True(t, results[0].Matched)
}

// eventRecorder keeps the span events added during a search.
type eventRecorder struct {
	observability.NoopSpanManager
	mu     sync.Mutex
	events map[string][]attribute.KeyValue
}

func (r *eventRecorder) AddSpanEvent(_ context.Context, name string, attrs ...attribute.KeyValue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.events == nil {
		r.events = make(map[string][]attribute.KeyValue)
	}
	r.events[name] = attrs
}

func TestSearch_OpenRetryReportsAttempts(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	spans := &eventRecorder{}

	s, err := New("finally", WithOpenRetry(fastRetry), WithLogger(logger), WithSpanManager(spans))
	require.NoError(t, err)

	results, err := s.Search(context.Background(), []Document{&flakyDocument{failures: 2, err: syscall.EMFILE}})
	require.NoError(t, err)
	require.NoError(t, results[0].Err)

	attrs, ok := spans.events["open_retried"]
	require.True(t, ok, "open_retried event missing")
	assert.Equal(t, []attribute.KeyValue{attribute.Int("open.attempts", 3)}, attrs)
	assert.Contains(t, buf.String(), `"msg":"document opened after retry"`)
	assert.Contains(t, buf.String(), `"attempts":3`)
}

func TestSearch_OpenWithoutRetryAddsNoEvent(t *testing.T) {
	spans := &eventRecorder{}
	s, err := New("finally", WithSpanManager(spans))
	require.NoError(t, err)

	results, err := s.Search(context.Background(), []Document{&flakyDocument{}})
	require.NoError(t, err)
	require.NoError(t, results[0].Err)
	assert.NotContains(t, spans.events, "open_retried")
}

func TestJittered(t *testing.T) {
	assert.Equal(t, 10*time.Millisecond, jittered(10*time.Millisecond, 0))
	for i := 0; i < 20; i++ {
		d := jittered(10*time.Millisecond, 0.5)
		assert.GreaterOrEqual(t, d, 5*time.Millisecond)
		assert.LessOrEqual(t, d, 15*time.Millisecond)
	}
}
