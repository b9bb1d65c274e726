// Package observability provides logging, metrics, and tracing for
// boolgrep searches.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds search context to a logger.
// Returns a new logger with run_id and document fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "run-123", "notes.txt")
//	enriched.Info("scanning") // includes run_id, document
func EnrichLogger(logger *slog.Logger, runID, document string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("run_id", runID),
		slog.String("document", document),
	)
}

// LogSearchStart logs the start of a search run.
func LogSearchStart(logger *slog.Logger, runID, canonical string, documents int) {
	if logger == nil {
		return
	}
	logger.Info("search starting",
		slog.String("run_id", runID),
		slog.String("expression", canonical),
		slog.Int("documents", documents),
	)
}

// LogSearchComplete logs a finished search run.
func LogSearchComplete(logger *slog.Logger, runID string, durationMs float64, scanned, matched int) {
	if logger == nil {
		return
	}
	logger.Info("search completed",
		slog.String("run_id", runID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("documents_scanned", scanned),
		slog.Int("documents_matched", matched),
	)
}

// LogSearchError logs a search run that stopped early.
func LogSearchError(logger *slog.Logger, runID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("search failed",
		slog.String("run_id", runID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// The LogDocument helpers expect a logger from EnrichLogger, which already
// carries the document name.

// LogDocumentStart logs the start of a document scan.
func LogDocumentStart(logger *slog.Logger) {
	if logger == nil {
		return
	}
	logger.Debug("document scan starting")
}

// LogDocumentComplete logs a finished document scan.
func LogDocumentComplete(logger *slog.Logger, matched bool, matches int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("document scan completed",
		slog.Bool("matched", matched),
		slog.Int("matches", matches),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogDocumentError logs a document that could not be scanned.
func LogDocumentError(logger *slog.Logger, err error) {
	if logger == nil {
		return
	}
	logger.Warn("document scan failed",
		slog.String("error", err.Error()),
	)
}

// LogDocumentOpenRetried logs a document that opened only after retries.
func LogDocumentOpenRetried(logger *slog.Logger, attempts int) {
	if logger == nil {
		return
	}
	logger.Debug("document opened after retry",
		slog.Int("attempts", attempts),
	)
}

// LogShortCircuit logs a document abandoned because the expression could
// no longer be true.
func LogShortCircuit(logger *slog.Logger, evaluated, skipped int) {
	if logger == nil {
		return
	}
	logger.Debug("document short-circuited",
		slog.Int("operands_evaluated", evaluated),
		slog.Int("operands_skipped", skipped),
	)
}

// LogResultSaved logs a result written to the store.
func LogResultSaved(logger *slog.Logger, sizeBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("result saved",
		slog.Int("size_bytes", sizeBytes),
	)
}

// LogStoreError logs a result store failure (non-fatal).
func LogStoreError(logger *slog.Logger, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("result store failed",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
