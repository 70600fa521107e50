package object

import (
	"fmt"

	"github.com/lagerfeuer/golox/ast"
	"github.com/lagerfeuer/golox/value"
)

type Function struct {
	Declaration *ast.Function
	Closure     *Environment
	IsInit      bool // Is class constructor?
}

// Implement the value.Value interface
// --------------------------------------------------------
func (*Function) LoxValueMarkerFunc() {}

func (f *Function) String() string {
	if f.Declaration.Name.Lexeme == "" {
		return "<anonymous function>"
	}
	return fmt.Sprintf("<function %v>", f.Declaration.Name.Lexeme)
}

// --------------------------------------------------------

func NewFunction(decl *ast.Function, closure *Environment, is_init bool) *Function {
	return &Function{
		Declaration: decl,
		Closure:     closure,
		IsInit:      is_init,
	}
}

func (f *Function) Arity() int {
	return len(f.Declaration.Params)
}

func (f *Function) IsStatic() bool {
	return f.Declaration.Qualifiers.Has(ast.Static)
}

func (f *Function) Call(exec Executor, args []value.Value) (value.Value, error) {
	env := NewEnvironment(f.Closure)
	for i, param := range f.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	ret, err := exec.ExecuteBody(f.Declaration.Body, env)
	if err != nil {
		return nil, err
	}

	// An initializer always gives back its instance.
	if f.IsInit {
		this, _ := f.Closure.Get("this")
		return this, nil
	}
	if ret == nil {
		return value.Nil{}, nil
	}
	return ret, nil
}

// Bind creates a new function bound to the instance.
func (f *Function) Bind(instance *Instance) *Function {
	// Put the instance in a new scope enclosed by the scope which
	// previously enclosed the function's scope.
	env := NewEnvironment(f.Closure)
	env.Define("this", instance)

	return NewFunction(f.Declaration, env, f.IsInit)
}
