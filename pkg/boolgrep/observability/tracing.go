package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the boolgrep tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("boolgrep")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartSearchSpan starts a span for a whole search run.
	StartSearchSpan(ctx context.Context, canonical, runID string) (context.Context, trace.Span)

	// StartDocumentSpan starts a span for one document scan.
	// The document span should be a child of the search span.
	StartDocumentSpan(ctx context.Context, document string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartSearchSpan starts a span for a search run.
func (m *otelSpanManager) StartSearchSpan(ctx context.Context, canonical, runID string) (context.Context, trace.Span) {
	return StartSearchSpan(ctx, canonical, runID)
}

// StartDocumentSpan starts a span for a document scan.
func (m *otelSpanManager) StartDocumentSpan(ctx context.Context, document string) (context.Context, trace.Span) {
	return StartDocumentSpan(ctx, document)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// StartSearchSpan starts a span for a search run using the global tracer.
func StartSearchSpan(ctx context.Context, canonical, runID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "boolgrep.search",
		trace.WithAttributes(
			attribute.String("search.expression", canonical),
			attribute.String("run.id", runID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartDocumentSpan starts a span for a document scan using the global tracer.
func StartDocumentSpan(ctx context.Context, document string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "boolgrep.document",
		trace.WithAttributes(
			attribute.String("document.name", document),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
