package object

import (
	"fmt"
	"time"

	"github.com/lagerfeuer/golox/value"
)

type NativeFunction struct {
	Name       string
	ParamCount int
	Function   func(exec Executor, args []value.Value) (value.Value, error)
}

// Natives returns the native functions every global environment starts
// with. The clock source is given by the caller.
func Natives(now func() time.Time) []*NativeFunction {
	return []*NativeFunction{
		{"clock", 0, clock(now)},
		{"print", 1, printValue},
		{"string", 1, tostring},
		{"getattr", 2, getattr},
		{"setattr", 3, setattr},
		{"delattr", 2, delattr},
		{"isinstance", 2, isinstance},
	}
}

// Implement the value.Value interface
// --------------------------------------------------------
func (*NativeFunction) LoxValueMarkerFunc() {}

func (n *NativeFunction) String() string {
	return fmt.Sprintf("<native fn %v>", n.Name)
}

// --------------------------------------------------------

func (n *NativeFunction) Arity() int {
	return n.ParamCount
}

func (n *NativeFunction) Call(exec Executor, args []value.Value) (value.Value, error) {
	// Arity is verified by the interpreter, so crash on a mismatch here.
	if len(args) != n.Arity() {
		panic("Got wrong number of arguments in native function.")
	}

	return n.Function(exec, args)
}

// Native functions
// --------------------------------------------------------

// Seconds since the Unix epoch.
func clock(now func() time.Time) func(Executor, []value.Value) (value.Value, error) {
	return func(Executor, []value.Value) (value.Value, error) {
		return value.Number(now().UnixMilli()) / 1000.0, nil
	}
}

func printValue(exec Executor, args []value.Value) (value.Value, error) {
	if _, err := fmt.Fprintln(exec.Stdout(), value.Stringify(args[0])); err != nil {
		return nil, makeNativeError("Cannot write output (%v).", err)
	}
	return value.Nil{}, nil
}

func tostring(_ Executor, args []value.Value) (value.Value, error) {
	return value.String(value.Stringify(args[0])), nil
}

func getattr(_ Executor, args []value.Value) (value.Value, error) {
	instance, field, err := instanceAndField("getattr", args)
	if err != nil {
		return nil, err
	}

	if v, ok := instance.Get(string(field)); ok {
		return v, nil
	}
	return nil, makeNativeError("Instance has no attribute named '%v'.", field)
}

func setattr(_ Executor, args []value.Value) (value.Value, error) {
	instance, field, err := instanceAndField("setattr", args)
	if err != nil {
		return nil, err
	}

	instance.Set(string(field), args[2])
	return value.Nil{}, nil
}

func delattr(_ Executor, args []value.Value) (value.Value, error) {
	instance, field, err := instanceAndField("delattr", args)
	if err != nil {
		return nil, err
	}

	if !instance.Delete(string(field)) {
		return nil, makeNativeError("Instance has no attribute named '%v'.", field)
	}
	return value.Nil{}, nil
}

func isinstance(_ Executor, args []value.Value) (value.Value, error) {
	class, err := extractArg[*Class](args[1],
		"Second argument to 'isinstance' should be a class.")
	if err != nil {
		return nil, err
	}

	// Anything that is not an instance is an instance of no class.
	instance, ok := args[0].(*Instance)
	if !ok {
		return value.Boolean(false), nil
	}
	return value.Boolean(instance.Class.IsSubclassOf(class)), nil
}

// Type checking helpers
// --------------------------------------------------------
func instanceAndField(fname string, args []value.Value) (*Instance, value.String, error) {
	instance, err := extractArg[*Instance](args[0],
		"First argument to '%v' should be an instance.", fname)
	if err != nil {
		return nil, "", err
	}

	field, err := extractArg[value.String](args[1],
		"Second argument to '%v' should be a field name.", fname)
	if err != nil {
		return nil, "", err
	}

	return instance, field, nil
}

func extractArg[T value.Value](arg value.Value, format string, args ...any) (T, error) {
	if v, ok := arg.(T); ok {
		return v, nil
	}

	var zero T
	return zero, makeNativeError(format, args...)
}
