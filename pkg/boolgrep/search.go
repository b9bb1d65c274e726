package boolgrep

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/boolgrep/pkg/boolgrep/expr"
	"github.com/randalmurphal/boolgrep/pkg/boolgrep/observability"
	"github.com/randalmurphal/boolgrep/pkg/boolgrep/store"
)

// Result is the outcome of searching one document.
type Result struct {
	// Document is the document name.
	Document string
	// Matched is true when the expression evaluated to true.
	Matched bool
	// Matches holds the surviving matches of a matched document, ordered
	// by offset. A matched negative expression may have none.
	Matches []Match
	// ShortCircuited is true when the document was rejected before every
	// operand was scanned.
	ShortCircuited bool
	// Skipped is the number of operands that were never scanned.
	Skipped int
	// Duration is the time spent on the document.
	Duration time.Duration
	// Err is a *DocumentError or *PanicError when the document could not
	// be searched.
	Err error
}

// Searcher evaluates one boolean query against documents.
// A Searcher is safe for concurrent use.
type Searcher struct {
	query    string
	expr     *expr.Expression
	matchers []matcherFor
	cfg      searchConfig
	logger   *slog.Logger
}

type matcherFor struct {
	index   int
	operand string
	find    func(text string, lines lineIndex, limit int) []Match
}

// New parses query and compiles a matcher for each operand.
// A query that does not parse returns a *expr.ParseError; an operand that
// is not a valid regular expression returns an *OperandError.
func New(query string, opts ...Option) (*Searcher, error) {
	cfg := defaultSearchConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if cfg.runID == "" {
		cfg.runID = uuid.New().String()
	}

	var (
		e   *expr.Expression
		err error
	)
	if cfg.booleanOperators {
		e, err = expr.Parse(query)
	} else {
		e, err = expr.ParseTokens([]expr.Token{expr.NewToken(expr.Operand, query)})
	}
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		query:  query,
		expr:   e,
		cfg:    cfg,
		logger: cfg.logger,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	for _, tok := range e.Operands() {
		re, err := compileOperand(tok.Value, &cfg)
		if err != nil {
			return nil, &OperandError{Index: tok.Index, Operand: tok.Value, Err: err}
		}
		index := tok.Index
		s.matchers = append(s.matchers, matcherFor{
			index:   index,
			operand: tok.Value,
			find: func(text string, lines lineIndex, limit int) []Match {
				return findMatches(re, index, text, lines, limit)
			},
		})
	}
	return s, nil
}

// MustNew is like New but panics on error.
func MustNew(query string, opts ...Option) *Searcher {
	s, err := New(query, opts...)
	if err != nil {
		panic(fmt.Sprintf("boolgrep: New(%q): %v", query, err))
	}
	return s
}

// Query returns the query as given to New.
func (s *Searcher) Query() string {
	return s.query
}

// Expression returns the parsed expression.
func (s *Searcher) Expression() *expr.Expression {
	return s.expr
}

// RunID returns the identifier attached to logs, traces and stored results.
func (s *Searcher) RunID() string {
	return s.cfg.runID
}

// SearchText searches a single in-memory document. A nil ctx is reported
// as ErrNilContext in Result.Err.
func (s *Searcher) SearchText(ctx context.Context, name, text string) Result {
	if ctx == nil {
		return Result{Document: name, Err: ErrNilContext}
	}
	state := expr.NewState[Match](s.expr)
	return s.searchDocument(ctx, state, TextDocument(name, text))
}

// Search scans docs with a bounded pool of workers and returns one Result
// per document in input order. Per-document failures are reported in
// Result.Err; the returned error is non-nil only when ctx ends before
// every document was searched.
func (s *Searcher) Search(ctx context.Context, docs []Document) ([]Result, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	elapsed := observability.TimedOperation()
	start := time.Now()
	ctx, span := s.cfg.spans.StartSearchSpan(ctx, s.expr.Canonical(), s.RunID())
	observability.LogSearchStart(s.logger, s.RunID(), s.expr.Canonical(), len(docs))

	type job struct {
		index int
		doc   Document
	}
	type indexedResult struct {
		index  int
		result Result
	}

	workers := min(s.cfg.workers, max(len(docs), 1))
	jobs := make(chan job)
	out := make(chan indexedResult, len(docs))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Each worker owns its operand state; the expression is shared.
			state := expr.NewState[Match](s.expr)
			for j := range jobs {
				out <- indexedResult{index: j.index, result: s.searchDocument(ctx, state, j.doc)}
			}
		}()
	}

	dispatched := 0
dispatch:
	for i, doc := range docs {
		if ctx.Err() != nil {
			break
		}
		select {
		case jobs <- job{index: i, doc: doc}:
			dispatched++
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(out)
	}()

	results := make([]Result, len(docs))
	for r := range out {
		results[r.index] = r.result
	}

	var err error
	if dispatched < len(docs) {
		err = ctx.Err()
		for i := dispatched; i < len(docs); i++ {
			results[i] = Result{
				Document: docs[i].Name(),
				Err:      &DocumentError{Document: docs[i].Name(), Op: "dispatch", Err: err},
			}
		}
	}

	matched := 0
	for _, r := range results {
		if r.Matched {
			matched++
		}
	}

	s.cfg.metrics.RecordSearch(ctx, len(docs), time.Since(start))
	if err != nil {
		observability.LogSearchError(s.logger, s.RunID(), err, elapsed())
	} else {
		observability.LogSearchComplete(s.logger, s.RunID(), elapsed(), dispatched, matched)
	}
	s.cfg.spans.EndSpanWithError(span, err)
	return results, err
}

// searchDocument reads doc and evaluates the expression against it,
// reusing state.
func (s *Searcher) searchDocument(ctx context.Context, state *expr.State[Match], doc Document) (result Result) {
	name := doc.Name()
	start := time.Now()
	logger := observability.EnrichLogger(s.logger, s.RunID(), name)

	ctx, span := s.cfg.spans.StartDocumentSpan(ctx, name)
	if s.cfg.documentTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.documentTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			result = Result{
				Document: name,
				Err:      &PanicError{Document: name, Value: r, Stack: string(debug.Stack())},
			}
		}
		result.Duration = time.Since(start)
		s.finishDocument(ctx, logger, result)
		s.cfg.spans.EndSpanWithError(span, result.Err)
	}()

	observability.LogDocumentStart(logger)
	state.Reset()

	text, err := s.readDocument(ctx, logger, doc)
	if err != nil {
		return Result{Document: name, Err: err}
	}
	return s.scan(ctx, logger, state, name, text)
}

// scan runs the operand matchers in order, stopping as soon as the
// expression can no longer be true.
func (s *Searcher) scan(ctx context.Context, logger *slog.Logger, state *expr.State[Match], name, text string) Result {
	lines := newLineIndex(text)
	limit := s.cfg.matchLimit()
	total := len(s.matchers)

	for n, m := range s.matchers {
		if err := ctx.Err(); err != nil {
			return Result{Document: name, Err: &DocumentError{Document: name, Op: "scan", Err: err}}
		}

		matches := m.find(text, lines, limit)
		state.Set(m.index, len(matches) > 0, matches)

		if n+1 < total && state.IsShortCircuitFalse() {
			skipped := total - (n + 1)
			s.cfg.metrics.RecordShortCircuit(ctx, skipped)
			s.cfg.spans.AddSpanEvent(ctx, "short_circuit",
				attribute.Int("operands.evaluated", n+1),
				attribute.Int("operands.skipped", skipped))
			observability.LogShortCircuit(logger, n+1, skipped)
			return Result{Document: name, ShortCircuited: true, Skipped: skipped}
		}
	}

	found := 0
	for i := 0; i < state.Len(); i++ {
		found += len(state.Matches(i))
	}

	outcome, err := state.EvaluateErr()
	if err != nil {
		return Result{Document: name, Err: &DocumentError{Document: name, Op: "evaluate", Err: err}}
	}
	if !outcome {
		return Result{Document: name}
	}

	matches := state.AllMatches()
	if pruned := found - len(matches); pruned > 0 {
		s.cfg.metrics.RecordPrunedMatches(ctx, pruned)
	}
	sortMatches(matches)
	return Result{Document: name, Matched: true, Matches: matches}
}

// finishDocument logs, records and persists a finished document.
func (s *Searcher) finishDocument(ctx context.Context, logger *slog.Logger, r Result) {
	s.cfg.metrics.RecordDocument(ctx, r.Matched, r.Duration, r.Err)
	if r.Err != nil {
		observability.LogDocumentError(logger, r.Err)
	} else {
		observability.LogDocumentComplete(logger, r.Matched, len(r.Matches), float64(r.Duration.Microseconds())/1000)
	}

	if s.cfg.store == nil {
		return
	}
	rec := s.record(r)
	data, err := rec.Marshal()
	if err == nil {
		err = s.cfg.store.Save(rec.RunID, rec.Document, data)
	}
	if err != nil {
		observability.LogStoreError(logger, "save", err)
		return
	}
	observability.LogResultSaved(logger, len(data))
}

// record converts a Result into its stored form.
func (s *Searcher) record(r Result) *store.Record {
	rec := store.NewRecord(s.RunID(), r.Document, s.query, s.expr.Canonical())
	rec.Matched = r.Matched
	rec.ShortCircuited = r.ShortCircuited
	for _, m := range r.Matches {
		rec.Matches = append(rec.Matches, store.Span{Start: m.Start, Length: m.Length, Line: m.Line})
	}
	if r.Err != nil {
		rec.Error = r.Err.Error()
	}
	return rec
}

// readDocument reads the whole document, giving up when ctx ends.
func (s *Searcher) readDocument(ctx context.Context, logger *slog.Logger, doc Document) (string, error) {
	name := doc.Name()
	rc, attempts, err := openWithRetry(ctx, doc, s.cfg.openRetry)
	if attempts > 1 {
		s.cfg.spans.AddSpanEvent(ctx, "open_retried", attribute.Int("open.attempts", attempts))
		if err == nil {
			observability.LogDocumentOpenRetried(logger, attempts)
		}
	}
	if err != nil {
		return "", &DocumentError{Document: name, Op: "open", Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(contextReader{ctx: ctx, r: rc})
	if err != nil {
		return "", &DocumentError{Document: name, Op: "read", Err: err}
	}
	return string(data), nil
}

// contextReader fails reads once its context is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
