package interpreter

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/lagerfeuer/golox/token"
)

// RuntimeError is raised while executing, at the token which caused it.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%v:%v: %v", e.Token.File, e.Token.Line, e.Message)
}

func (i *Interpreter) makeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// Attach errors coming out of a call, such as native function errors, to
// the call site unless they already carry a location.
func (i *Interpreter) atCallSite(paren token.Token, err error) error {
	var rte *RuntimeError
	if errors.As(err, &rte) {
		return err
	}
	return &RuntimeError{Token: paren, Message: err.Error()}
}

func (i *Interpreter) report(err error) {
	var rte *RuntimeError
	if !errors.As(err, &rte) {
		rte = &RuntimeError{Message: err.Error()}
	}

	i.logger.Debug("runtime error",
		slog.String("file", rte.Token.File),
		slog.Int("line", rte.Token.Line),
		slog.String("message", rte.Message),
	)
	i.reporter.RuntimeError(rte.Token, rte.Message)
}
