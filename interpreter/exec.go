package interpreter

import (
	"fmt"

	"github.com/lagerfeuer/golox/ast"
	"github.com/lagerfeuer/golox/object"
	"github.com/lagerfeuer/golox/value"
)

// Statement evaluators
// --------------------------------------------------------
func (i *Interpreter) execute(s ast.Stmt) (ast.ControlKind, error) {
	switch s := s.(type) {
	case *ast.Expression:
		_, err := i.evaluate(s.Expression)
		return ast.ControlLinear, err

	case *ast.Var:
		val := value.Value(value.Nil{})
		if s.Initializer != nil {
			v, err := i.evaluate(s.Initializer)
			if err != nil {
				return ast.ControlLinear, err
			}
			val = v
		}
		i.env.Define(s.Name.Lexeme, val)
		return ast.ControlLinear, nil

	case *ast.Block:
		return i.executeBlock(s.Statements, object.NewEnvironment(i.env))

	case *ast.If:
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return ast.ControlLinear, err
		}

		if value.Truthiness(cond) {
			return i.execute(s.ThenBranch)
		} else if s.ElseBranch != nil {
			return i.execute(s.ElseBranch)
		}
		return ast.ControlLinear, nil

	case *ast.While:
		return i.executeWhile(s)

	case *ast.Break:
		return ast.ControlBreak, nil

	case *ast.Return:
		val := value.Value(value.Nil{})
		if s.Value != nil {
			v, err := i.evaluate(s.Value)
			if err != nil {
				return ast.ControlLinear, err
			}
			val = v
		}
		i.returnValue = val
		return ast.ControlReturn, nil

	case *ast.Function:
		fun := object.NewFunction(s, i.env, false)
		i.env.Define(s.Name.Lexeme, fun)
		return ast.ControlLinear, nil

	case *ast.Class:
		return ast.ControlLinear, i.executeClass(s)

	default:
		panic(fmt.Sprintf("Unknown statement type %T.", s))
	}
}

// A 'break' stops here, a 'return' goes on to the enclosing function.
func (i *Interpreter) executeWhile(s *ast.While) (ast.ControlKind, error) {
	for {
		cond, err := i.evaluate(s.Condition)
		if err != nil {
			return ast.ControlLinear, err
		}
		if !value.Truthiness(cond) {
			return ast.ControlLinear, nil
		}

		ctl, err := i.execute(s.Body)
		if err != nil {
			return ast.ControlLinear, err
		}

		switch ctl {
		case ast.ControlBreak:
			return ast.ControlLinear, nil
		case ast.ControlReturn:
			return ctl, nil
		}
	}
}

func (i *Interpreter) executeClass(s *ast.Class) error {
	superclass := (*object.Class)(nil)
	if s.Superclass != nil {
		v, err := i.evaluate(s.Superclass)
		if err != nil {
			return err
		}

		class, ok := v.(*object.Class)
		if !ok {
			return i.makeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = class
	}

	// Methods may refer to the class by its name.
	i.env.Define(s.Name.Lexeme, value.Nil{})

	// Methods of a subclass close over an environment holding 'super'.
	closure := i.env
	if superclass != nil {
		closure = object.NewEnvironment(i.env)
		closure.Define("super", superclass)
	}

	methods := make(map[string]*object.Function, len(s.Methods))
	for _, m := range s.Methods {
		is_init := m.Name.Lexeme == "init" && !m.Qualifiers.Has(ast.Static)
		methods[m.Name.Lexeme] = object.NewFunction(m, closure, is_init)
	}

	class := object.NewClass(s.Name.Lexeme, methods, superclass)
	i.env.Assign(s.Name.Lexeme, class)
	return nil
}
