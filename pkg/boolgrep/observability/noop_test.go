package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics(t *testing.T) {
	var m MetricsRecorder = NoopMetrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordDocument(ctx, true, time.Second, nil)
		m.RecordDocument(ctx, false, 0, errors.New("test"))
		m.RecordSearch(ctx, 0, 0)
		m.RecordShortCircuit(ctx, 3)
		m.RecordPrunedMatches(ctx, 3)
	})
}

func TestNoopSpanManager(t *testing.T) {
	var m SpanManager = NoopSpanManager{}
	ctx := context.Background()

	newCtx, span := m.StartSearchSpan(ctx, "a", "run")
	assert.Equal(t, ctx, newCtx)
	assert.NotNil(t, span)
	assert.False(t, span.IsRecording())

	newCtx, span = m.StartDocumentSpan(ctx, "doc")
	assert.Equal(t, ctx, newCtx)
	assert.False(t, span.IsRecording())

	assert.NotPanics(t, func() {
		m.EndSpanWithError(span, errors.New("ignored"))
		m.AddSpanEvent(ctx, "event", attribute.String("k", "v"))
	})
}
