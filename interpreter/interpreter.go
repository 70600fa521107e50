package interpreter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lagerfeuer/golox/ast"
	"github.com/lagerfeuer/golox/diag"
	"github.com/lagerfeuer/golox/object"
	"github.com/lagerfeuer/golox/resolver"
	"github.com/lagerfeuer/golox/token"
	"github.com/lagerfeuer/golox/value"
)

type Interpreter struct {
	// Global variables, natives included.
	globals *object.Environment
	// Current scope, globals when at the top level.
	env *object.Environment
	// Scope distances of local variables, filled by Resolve.
	distances resolver.Distances
	// Value of the last executed 'return', consumed by ExecuteBody.
	returnValue value.Value

	stdout   io.Writer
	reporter diag.Reporter
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Interpreter)

// WithStdout sets where the native 'print' writes, os.Stdout by default.
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) { i.stdout = w }
}

// WithReporter sets the sink for runtime errors raised by Interpret.
func WithReporter(r diag.Reporter) Option {
	return func(i *Interpreter) { i.reporter = r }
}

func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) { i.logger = logger }
}

// WithClock sets the time source of the native 'clock'.
func WithClock(now func() time.Time) Option {
	return func(i *Interpreter) { i.now = now }
}

func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		distances: resolver.Distances{},
		stdout:    os.Stdout,
		reporter:  diag.Discard,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}

	i.globals = object.NewEnvironment(nil)
	for _, native := range object.Natives(i.now) {
		i.globals.Define(native.Name, native)
	}
	i.env = i.globals

	return i
}

// Resolve adds scope distances computed by the resolver. Distances from
// earlier calls are kept, so a session can be resolved piece by piece.
func (i *Interpreter) Resolve(distances resolver.Distances) {
	for expr, d := range distances {
		i.distances[expr] = d
	}
}

// Interpret executes statements until the first runtime error, which is
// reported and returned.
func (i *Interpreter) Interpret(statements []ast.Stmt) error {
	// Discard any local environment left by a previous failed run.
	i.env = i.globals

	for _, stmt := range statements {
		ctl, err := i.execute(stmt)
		if err != nil {
			i.report(err)
			return err
		}
		if ctl != ast.ControlLinear {
			panic(fmt.Sprintf("Control signal '%v' reached the top level.", ctl))
		}
	}

	return nil
}

// InterpretInteractive is Interpret, except that a lone expression statement
// also yields its stringified value and true, unless it is a call that
// gave nil.
func (i *Interpreter) InterpretInteractive(statements []ast.Stmt) (string, bool, error) {
	if len(statements) != 1 {
		return "", false, i.Interpret(statements)
	}

	stmt, ok := statements[0].(*ast.Expression)
	if !ok {
		return "", false, i.Interpret(statements)
	}

	i.env = i.globals
	v, err := i.evaluate(stmt.Expression)
	if err != nil {
		i.report(err)
		return "", false, err
	}

	// Calls run for their effect, 'print x;' included, so a nil result is
	// not echoed.
	if _, isCall := stmt.Expression.(*ast.Call); isCall && bool(value.EqualTo(v, value.Nil{})) {
		return "", false, nil
	}
	return value.Stringify(v), true, nil
}

// Evaluate evaluates an expression in the global scope. Errors are returned,
// not reported.
func (i *Interpreter) Evaluate(expr ast.Expr) (value.Value, error) {
	i.env = i.globals
	return i.evaluate(expr)
}

// LookupGlobal returns the value of a global variable.
func (i *Interpreter) LookupGlobal(name string) (value.Value, bool) {
	return i.globals.Get(name)
}

// Implement the object.Executor interface
// --------------------------------------------------------
func (i *Interpreter) ExecuteBody(body []ast.Stmt, env *object.Environment) (value.Value, error) {
	ctl, err := i.executeBlock(body, env)
	if err != nil {
		return nil, err
	}

	switch ctl {
	case ast.ControlReturn:
		ret := i.returnValue
		i.returnValue = nil
		return ret, nil
	case ast.ControlBreak:
		panic("Control signal 'break' escaped a function body.")
	default:
		return nil, nil
	}
}

func (i *Interpreter) Stdout() io.Writer {
	return i.stdout
}

// Utility methods
// --------------------------------------------------------

// Use supplied environment to execute code and later restore the old one,
// on every path out of the block.
func (i *Interpreter) executeBlock(statements []ast.Stmt, environ *object.Environment) (ast.ControlKind, error) {
	old_env := i.env
	i.env = environ
	defer func() {
		i.env = old_env
	}()

	for _, stmt := range statements {
		ctl, err := i.execute(stmt)
		if err != nil || ctl != ast.ControlLinear {
			return ctl, err
		}
	}

	return ast.ControlLinear, nil
}

func (i *Interpreter) lookUpVariable(name token.Token, e ast.Expr) (value.Value, error) {
	if distance, ok := i.distances[e]; ok {
		if v, ok := i.env.GetAt(distance, name.Lexeme); ok {
			return v, nil
		}
	} else if v, ok := i.globals.Get(name.Lexeme); ok {
		return v, nil
	}

	return nil, i.makeError(name, "Undefined variable '%v'.", name.Lexeme)
}

func (i *Interpreter) assignVariable(name token.Token, e ast.Expr, v value.Value) error {
	assigned := false
	if distance, ok := i.distances[e]; ok {
		assigned = i.env.AssignAt(distance, name.Lexeme, v)
	} else {
		assigned = i.globals.Assign(name.Lexeme, v)
	}

	if !assigned {
		return i.makeError(name, "Undefined variable '%v'.", name.Lexeme)
	}
	return nil
}
