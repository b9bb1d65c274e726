package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordDocument does nothing.
func (NoopMetrics) RecordDocument(_ context.Context, _ bool, _ time.Duration, _ error) {}

// RecordSearch does nothing.
func (NoopMetrics) RecordSearch(_ context.Context, _ int, _ time.Duration) {}

// RecordShortCircuit does nothing.
func (NoopMetrics) RecordShortCircuit(_ context.Context, _ int) {}

// RecordPrunedMatches does nothing.
func (NoopMetrics) RecordPrunedMatches(_ context.Context, _ int) {}

// NoopSpanManager is a SpanManager that does nothing.
type NoopSpanManager struct{}

// Compile-time interface check.
var _ SpanManager = NoopSpanManager{}

var noopSpan = noop.Span{}

// StartSearchSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartSearchSpan(ctx context.Context, _, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// StartDocumentSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartDocumentSpan(ctx context.Context, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}

// AddSpanEvent does nothing.
func (NoopSpanManager) AddSpanEvent(_ context.Context, _ string, _ ...attribute.KeyValue) {}
