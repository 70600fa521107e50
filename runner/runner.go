// Package runner drives source code through the lexer, parser, resolver and
// interpreter, stopping before the next stage when one reports errors.
package runner

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lagerfeuer/golox/ast"
	"github.com/lagerfeuer/golox/diag"
	"github.com/lagerfeuer/golox/interpreter"
	"github.com/lagerfeuer/golox/lexer"
	"github.com/lagerfeuer/golox/parser"
	"github.com/lagerfeuer/golox/resolver"
)

// ErrStatic is returned when lexing, parsing or resolving reported errors.
// The errors themselves went to the reporter.
var ErrStatic = errors.New("static errors in source")

// Interactive input has no file.
const StdinName = "<stdin>"

type Runner struct {
	// One resolver and interpreter for the whole session, so globals persist
	// across runs.
	interp   *interpreter.Interpreter
	resolver *resolver.Resolver
	reporter diag.Reporter
	logger   *slog.Logger
	stdout   io.Writer
	printAST bool
}

type Option func(*Runner)

func WithReporter(r diag.Reporter) Option {
	return func(rn *Runner) { rn.reporter = r }
}

func WithLogger(logger *slog.Logger) Option {
	return func(rn *Runner) { rn.logger = logger }
}

// WithStdout sets where program output and printed trees go.
func WithStdout(w io.Writer) Option {
	return func(rn *Runner) { rn.stdout = w }
}

// WithPrintAST makes runs print the parsed tree instead of executing it.
func WithPrintAST(enabled bool) Option {
	return func(rn *Runner) { rn.printAST = enabled }
}

func New(opts ...Option) *Runner {
	rn := &Runner{
		reporter: diag.Writer{W: os.Stderr},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		stdout:   os.Stdout,
	}
	for _, opt := range opts {
		opt(rn)
	}

	rn.resolver = resolver.New(rn.reporter)
	rn.interp = interpreter.New(
		interpreter.WithStdout(rn.stdout),
		interpreter.WithReporter(rn.reporter),
		interpreter.WithLogger(rn.logger),
	)
	return rn
}

// Run executes a whole program. It returns ErrStatic or the
// *interpreter.RuntimeError that stopped execution.
func (rn *Runner) Run(source, filename string) error {
	stmts, err := rn.front(source, filename)
	if err != nil || stmts == nil {
		return err
	}

	rn.logger.Debug("interpreting", slog.String("file", filename))
	return rn.interp.Interpret(stmts)
}

// RunInteractive executes one REPL entry. When the entry is a lone
// expression its stringified value is returned along with true.
func (rn *Runner) RunInteractive(source string) (string, bool, error) {
	stmts, err := rn.front(source, StdinName)
	if err != nil || stmts == nil {
		return "", false, err
	}

	return rn.interp.InterpretInteractive(stmts)
}

// Runs the static stages. Returns nil statements without error when the
// tree was printed instead.
func (rn *Runner) front(source, filename string) ([]ast.Stmt, error) {
	tokens, ok := lexer.Scan(source, filename, rn.reporter)
	rn.logger.Debug("scanned",
		slog.String("file", filename), slog.Int("token_count", len(tokens)))
	if !ok {
		return nil, ErrStatic
	}

	stmts, ok := parser.Parse(tokens, rn.reporter)
	rn.logger.Debug("parsed",
		slog.String("file", filename), slog.Int("stmt_count", len(stmts)))
	if !ok {
		return nil, ErrStatic
	}

	if rn.printAST {
		if _, err := fmt.Fprint(rn.stdout, ast.Print(stmts)); err != nil {
			return nil, fmt.Errorf("print tree: %w", err)
		}
		return nil, nil
	}

	ok = rn.resolver.Resolve(stmts)
	distances := rn.resolver.Distances()
	rn.logger.Debug("resolved",
		slog.String("file", filename), slog.Int("distance_count", len(distances)))
	if !ok {
		return nil, ErrStatic
	}

	rn.interp.Resolve(distances)
	return stmts, nil
}
