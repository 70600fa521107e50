package object

import (
	"fmt"
	"io"

	"github.com/lagerfeuer/golox/ast"
	"github.com/lagerfeuer/golox/value"
)

// All lox objects are stored in value.Value variables as follows:
// Types 'nil', 'bool', 'number' and 'string' are the primitive types from
// golox/value, stored by value. While 'function', 'native function', 'class'
// and 'instance' are implemented here as structs, stored as pointers.

// Callable is any value that can be called with a fixed number of arguments.
type Callable interface {
	value.Value
	Arity() int
	Call(exec Executor, args []value.Value) (value.Value, error)
}

// Executor is the part of the interpreter that callables need.
type Executor interface {
	// ExecuteBody runs a function body in env and returns the value given
	// to 'return', or nil if the body ran to its end.
	ExecuteBody(body []ast.Stmt, env *Environment) (value.Value, error)
	Stdout() io.Writer
}

// Error returned by native functions on domain or type error.
// Note arity is verified by the interpreter.
// --------------------------------------------------------
type NativeError struct {
	message string
}

// For 'error' interface
func (n NativeError) Error() string { return n.message }

func makeNativeError(format string, args ...any) NativeError {
	return NativeError{message: fmt.Sprintf(format, args...)}
}
