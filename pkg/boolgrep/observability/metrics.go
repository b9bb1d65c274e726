package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records boolgrep metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordDocument records a document scan with its outcome and duration.
	RecordDocument(ctx context.Context, matched bool, duration time.Duration, err error)

	// RecordSearch records a completed search run.
	RecordSearch(ctx context.Context, documents int, duration time.Duration)

	// RecordShortCircuit records a document abandoned early and the number
	// of operands that did not need scanning.
	RecordShortCircuit(ctx context.Context, skipped int)

	// RecordPrunedMatches records matches dropped because their
	// sub-expression was false.
	RecordPrunedMatches(ctx context.Context, count int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	documents       metric.Int64Counter
	documentLatency metric.Float64Histogram
	documentErrors  metric.Int64Counter
	searches        metric.Int64Counter
	searchLatency   metric.Float64Histogram
	shortCircuits   metric.Int64Counter
	skippedOperands metric.Int64Counter
	prunedMatches   metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("boolgrep")

	documents, err := meter.Int64Counter("boolgrep.document.scans",
		metric.WithDescription("Number of documents scanned"),
	)
	if err != nil {
		return nil, err
	}

	documentLatency, err := meter.Float64Histogram("boolgrep.document.latency_ms",
		metric.WithDescription("Document scan latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	documentErrors, err := meter.Int64Counter("boolgrep.document.errors",
		metric.WithDescription("Number of documents that could not be scanned"),
	)
	if err != nil {
		return nil, err
	}

	searches, err := meter.Int64Counter("boolgrep.search.runs",
		metric.WithDescription("Number of search runs"),
	)
	if err != nil {
		return nil, err
	}

	searchLatency, err := meter.Float64Histogram("boolgrep.search.latency_ms",
		metric.WithDescription("Search run latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	shortCircuits, err := meter.Int64Counter("boolgrep.document.short_circuits",
		metric.WithDescription("Number of documents abandoned before every operand was scanned"),
	)
	if err != nil {
		return nil, err
	}

	skippedOperands, err := meter.Int64Counter("boolgrep.operand.skipped",
		metric.WithDescription("Number of operand scans avoided by short-circuiting"),
	)
	if err != nil {
		return nil, err
	}

	prunedMatches, err := meter.Int64Counter("boolgrep.match.pruned",
		metric.WithDescription("Number of matches discarded by falsified sub-expressions"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		documents:       documents,
		documentLatency: documentLatency,
		documentErrors:  documentErrors,
		searches:        searches,
		searchLatency:   searchLatency,
		shortCircuits:   shortCircuits,
		skippedOperands: skippedOperands,
		prunedMatches:   prunedMatches,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordDocument records a document scan.
func (m *otelMetrics) RecordDocument(ctx context.Context, matched bool, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.Bool("matched", matched),
	}

	m.documents.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.documentLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.documentErrors.Add(ctx, 1)
	}
}

// RecordSearch records a search run.
func (m *otelMetrics) RecordSearch(ctx context.Context, documents int, duration time.Duration) {
	m.searches.Add(ctx, 1)
	m.searchLatency.Record(ctx, float64(duration.Milliseconds()),
		metric.WithAttributes(attribute.Int("documents", documents)))
}

// RecordShortCircuit records a short-circuited document.
func (m *otelMetrics) RecordShortCircuit(ctx context.Context, skipped int) {
	m.shortCircuits.Add(ctx, 1)
	m.skippedOperands.Add(ctx, int64(skipped))
}

// RecordPrunedMatches records discarded matches.
func (m *otelMetrics) RecordPrunedMatches(ctx context.Context, count int) {
	if count <= 0 {
		return
	}
	m.prunedMatches.Add(ctx, int64(count))
}
