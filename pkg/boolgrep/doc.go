/*
Package boolgrep searches documents with boolean queries.

A query combines search terms with AND, OR, NOT, NAND, NOR and XOR:

	s, err := boolgrep.New(`error AND NOT "connection reset"`)
	if err != nil {
	    var perr *expr.ParseError
	    if errors.As(err, &perr) {
	        fmt.Println(perr.State) // e.g. MissingOperand
	    }
	    return err
	}

	res := s.SearchText(ctx, "app.log", text)
	if res.Matched {
	    for _, m := range res.Matches {
	        fmt.Println(m.Line, text[m.Start:m.Start+m.Length])
	    }
	}

# Matching

Each operand is matched independently, as plain text by default or as a
regular expression with WithSearchType(Regex). Matching is case
insensitive unless WithCaseSensitive(true) is set, and WithWholeWord
anchors operands to word boundaries.

Operands are scanned in order. After each one the Searcher asks whether
the expression can still become true; when it cannot, the remaining
operands are skipped and the Result is marked ShortCircuited.

When a document matches, matches belonging to sub-expressions that were
false (the NOT side of "a AND NOT b", for instance) are discarded, so the
reported matches explain why the document matched.

# Many Documents

Search scans documents with a fixed pool of workers (WithWorkers). Every
worker keeps its own operand state; the parsed expression is shared.

	docs, _ := boolgrep.CollectFiles([]string{"./logs"}, []string{"*.log", "*.gz"}, nil)
	results, err := s.Search(ctx, docs)

Files ending in .gz or .zst are decompressed transparently.

# Observability and Storage

WithLogger, WithMetrics and WithSpanManager attach slog logging and
OpenTelemetry metrics and tracing. WithStore saves a store.Record for every
document so a run can be inspected later.
*/
package boolgrep
