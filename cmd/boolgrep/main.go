// Command boolgrep searches files with boolean queries.
//
//	boolgrep 'error AND NOT "connection reset"' ./logs
//	boolgrep --regex 'timeout\d+ OR fatal' app.log.gz
//	boolgrep --explain 'a OR (b AND NOT c)'
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/randalmurphal/boolgrep/pkg/boolgrep"
	"github.com/randalmurphal/boolgrep/pkg/boolgrep/config"
	"github.com/randalmurphal/boolgrep/pkg/boolgrep/expr"
	"github.com/randalmurphal/boolgrep/pkg/boolgrep/store"
)

// Exit codes follow grep.
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

type cli struct {
	Query string   `arg:"" help:"Boolean query: terms combined with AND, OR, NOT, NAND, NOR, XOR and parentheses."`
	Paths []string `arg:"" optional:"" help:"Files or directories to search. Reads standard input when omitted."`

	Regex         bool     `help:"Treat every term as a regular expression."`
	CaseSensitive bool     `short:"s" help:"Match case."`
	WholeWord     bool     `short:"w" help:"Match whole words only."`
	NoBoolean     bool     `help:"Search for the whole query as one literal term."`
	Workers       int      `short:"j" help:"Documents searched in parallel."`
	OpenRetries   int      `help:"Retries for files that fail to open with a transient error."`
	Include       []string `help:"Only search files whose name matches one of these globs."`
	Exclude       []string `help:"Skip files whose name matches one of these globs."`
	Config        string   `type:"existingfile" help:"YAML or JSON settings file."`
	DB            string   `name:"db" help:"SQLite file to save per-document results to."`
	RunID         string   `help:"Run identifier for saved results (default: random UUID)."`
	Explain       bool     `help:"Print how the query parses and exit."`
	FilesOnly     bool     `short:"l" help:"Print only the names of matching files."`
	LogLevel      string   `enum:"debug,info,warn,error" default:"warn" help:"Log level (${enum})."`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("boolgrep"),
		kong.Description("Search files with boolean queries."),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintf(stderr, "boolgrep: %v\n", err)
		return exitError
	}
	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintf(stderr, "boolgrep: %v\n", err)
		return exitError
	}

	if c.Explain {
		return explain(c, stdout, stderr)
	}

	cfg, err := c.settings()
	if err != nil {
		fmt.Fprintf(stderr, "boolgrep: %v\n", err)
		return exitError
	}
	opts, err := boolgrep.OptionsFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "boolgrep: %v\n", err)
		return exitError
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}))
	opts = append(opts, boolgrep.WithLogger(logger))
	if c.RunID != "" {
		opts = append(opts, boolgrep.WithRunID(c.RunID))
	}

	if cfg.Database != "" {
		db, err := store.NewSQLiteStore(cfg.Database)
		if err != nil {
			fmt.Fprintf(stderr, "boolgrep: %v\n", err)
			return exitError
		}
		defer db.Close()
		opts = append(opts, boolgrep.WithStore(db))
	}

	s, err := boolgrep.New(c.Query, opts...)
	if err != nil {
		reportQueryError(stderr, err)
		return exitError
	}

	docs, err := c.documents(stdin, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "boolgrep: %v\n", err)
		return exitError
	}

	results, err := s.Search(ctx, docs)
	code := exitNoMatch
	for i, r := range results {
		if r.Err != nil {
			fmt.Fprintf(stderr, "boolgrep: %v\n", r.Err)
			code = max(code, exitError)
			continue
		}
		if !r.Matched {
			continue
		}
		if code == exitNoMatch {
			code = exitMatch
		}
		if err := printResult(stdout, docs[i], r, c.FilesOnly); err != nil {
			fmt.Fprintf(stderr, "boolgrep: %v\n", err)
			code = exitError
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "boolgrep: %v\n", err)
		return exitError
	}
	if cfg.Database != "" {
		fmt.Fprintf(stderr, "results saved to %s (run %s)\n", cfg.Database, s.RunID())
	}
	return code
}

// settings merges the config file, if any, with command line flags.
func (c cli) settings() (config.Config, error) {
	cfg := config.Default()
	if c.Config != "" {
		var err error
		if cfg, err = config.FromFile(c.Config); err != nil {
			return cfg, err
		}
	}
	if c.Regex {
		cfg.SearchType = config.SearchRegex
	}
	if c.CaseSensitive {
		cfg.CaseSensitive = true
	}
	if c.WholeWord {
		cfg.WholeWord = true
	}
	if c.NoBoolean {
		cfg.BooleanOperators = false
	}
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	if c.OpenRetries > 0 {
		cfg.OpenRetries = c.OpenRetries
	}
	if len(c.Include) > 0 {
		cfg.Include = c.Include
	}
	if len(c.Exclude) > 0 {
		cfg.Exclude = c.Exclude
	}
	if c.DB != "" {
		cfg.Database = c.DB
	}
	return cfg, nil
}

func (c cli) documents(stdin io.Reader, cfg config.Config) ([]boolgrep.Document, error) {
	if len(c.Paths) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read standard input: %w", err)
		}
		return []boolgrep.Document{boolgrep.TextDocument("(standard input)", string(data))}, nil
	}
	return boolgrep.CollectFiles(c.Paths, cfg.Include, cfg.Exclude)
}

// explain prints the parsed forms of the query.
func explain(c cli, stdout, stderr io.Writer) int {
	var (
		e   *expr.Expression
		err error
	)
	if c.NoBoolean {
		e, err = expr.ParseTokens([]expr.Token{expr.NewToken(expr.Operand, c.Query)})
	} else {
		e, err = expr.Parse(c.Query)
	}

	fmt.Fprintf(stdout, "input:     %s\n", e.Input())
	fmt.Fprintf(stdout, "canonical: %s\n", e.Canonical())
	fmt.Fprintf(stdout, "state:     %s\n", e.State())
	if err != nil {
		reportQueryError(stderr, err)
		return exitError
	}
	fmt.Fprintf(stdout, "postfix:   %s\n", e.PostfixString())
	for i, op := range e.Operands() {
		fmt.Fprintf(stdout, "operand %s: %q\n", expr.Placeholder(i), op.Value)
	}
	fmt.Fprintf(stdout, "negative:  %t\n", e.IsNegative())
	return exitMatch
}

func reportQueryError(w io.Writer, err error) {
	var perr *expr.ParseError
	if errors.As(err, &perr) {
		fmt.Fprintf(w, "boolgrep: invalid query (%s): %v\n", perr.State, err)
		return
	}
	fmt.Fprintf(w, "boolgrep: invalid query: %v\n", err)
}

// printResult prints "name:line: text" for every line holding a match, or
// just the name when the document matched without hits or filesOnly is set.
func printResult(w io.Writer, doc boolgrep.Document, r boolgrep.Result, filesOnly bool) error {
	if filesOnly || len(r.Matches) == 0 {
		_, err := fmt.Fprintln(w, r.Document)
		return err
	}

	rc, err := doc.Open()
	if err != nil {
		return fmt.Errorf("reopen %s: %w", r.Document, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("reread %s: %w", r.Document, err)
	}

	lines := strings.Split(string(data), "\n")
	printed := make(map[int]bool)
	for _, m := range r.Matches {
		if printed[m.Line] || m.Line > len(lines) {
			continue
		}
		printed[m.Line] = true
		fmt.Fprintf(w, "%s:%d: %s\n", r.Document, m.Line, strings.TrimRight(lines[m.Line-1], "\r"))
	}
	return nil
}

func parseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelWarn
	}
	return level
}
