package interpreter

import (
	"fmt"

	"github.com/lagerfeuer/golox/ast"
	"github.com/lagerfeuer/golox/object"
	"github.com/lagerfeuer/golox/token"
	"github.com/lagerfeuer/golox/value"
)

// Expression evaluators
// --------------------------------------------------------
func (i *Interpreter) evaluate(e ast.Expr) (value.Value, error) {
	switch e := e.(type) {
	case *ast.Literal:
		if e.Value == nil {
			return value.Nil{}, nil
		}
		return e.Value, nil

	case *ast.Grouping:
		return i.evaluate(e.Expr)

	case *ast.Unary:
		return i.evaluateUnary(e)

	case *ast.Binary:
		return i.evaluateBinary(e)

	case *ast.Logical:
		return i.evaluateLogical(e)

	case *ast.Ternary:
		cond, err := i.evaluate(e.Condition)
		if err != nil {
			return nil, err
		}

		if value.Truthiness(cond) {
			return i.evaluate(e.TrueExpr)
		} else {
			return i.evaluate(e.FalseExpr)
		}

	case *ast.Comma:
		last := value.Value(value.Nil{})
		for _, inner := range e.Exprs {
			v, err := i.evaluate(inner)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil

	case *ast.Variable:
		return i.lookUpVariable(e.Name, e)

	case *ast.Assign:
		val, err := i.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if err := i.assignVariable(e.Name, e, val); err != nil {
			return nil, err
		}
		return val, nil

	case *ast.Call:
		return i.evaluateCall(e)

	case *ast.Get:
		return i.evaluateGet(e)

	case *ast.Set:
		return i.evaluateSet(e)

	case *ast.This:
		return i.lookUpVariable(e.Keyword, e)

	case *ast.Super:
		return i.evaluateSuper(e)

	case *ast.Lambda:
		return object.NewFunction(e.Function, i.env, false), nil

	default:
		panic(fmt.Sprintf("Unknown expression type %T.", e))
	}
}

func (i *Interpreter) evaluateUnary(e *ast.Unary) (value.Value, error) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case token.BANG:
		return !value.Truthiness(right), nil

	case token.MINUS:
		if v, ok := value.Neg(right); ok {
			return v, nil
		}
		return nil, i.makeError(e.Operator, "Operand must be a number.")

	default:
		panic("Invalid operator token in unary expression.")
	}
}

func (i *Interpreter) evaluateBinary(e *ast.Binary) (value.Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	op := e.Operator
	arith := func(v value.Value, ok bool) (value.Value, error) {
		if ok {
			return v, nil
		}
		return nil, i.makeError(op, "Operands of '%v' must be numbers.", op.Lexeme)
	}
	compare := func(v value.Boolean, ok bool) (value.Value, error) {
		if ok {
			return v, nil
		}
		return nil, i.makeError(op,
			"Operands of '%v' must be two numbers or two strings.", op.Lexeme)
	}

	switch op.Kind {
	case token.PLUS:
		if v, ok := value.Add(left, right); ok {
			return v, nil
		}
		return nil, i.makeError(op,
			"Operands of '+' must be two numbers or include a string.")
	case token.MINUS:
		return arith(value.Sub(left, right))
	case token.STAR:
		return arith(value.Mul(left, right))
	case token.SLASH:
		_, numeric := left.(value.Number)
		if divisor, ok := right.(value.Number); ok && numeric && divisor == 0 {
			return nil, i.makeError(op, "Division by zero.")
		}
		return arith(value.Div(left, right))

	case token.GREATER:
		return compare(value.GreaterThan(left, right))
	case token.GREATER_EQUAL:
		return compare(value.GreaterEqual(left, right))
	case token.LESS:
		return compare(value.LessThan(left, right))
	case token.LESS_EQUAL:
		return compare(value.LessEqual(left, right))

	case token.EQUAL_EQUAL:
		return value.EqualTo(left, right), nil
	case token.BANG_EQUAL:
		return !value.EqualTo(left, right), nil

	default:
		panic("Invalid operator token in binary expression.")
	}
}

func (i *Interpreter) evaluateLogical(e *ast.Logical) (value.Value, error) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	// Return the value of the expression which determines the truth value of
	// the logical expression and not a boolean, similar to what python does.
	switch e.Operator.Kind {
	case token.OR:
		if value.Truthiness(left) {
			return left, nil
		}

	case token.AND:
		if !value.Truthiness(left) {
			return left, nil
		}

	default:
		panic("Invalid operator in logical expression.")
	}

	return i.evaluate(e.Right)
}

func (i *Interpreter) evaluateCall(e *ast.Call) (value.Value, error) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]value.Value, 0, len(e.Arguments))
	for _, arg := range e.Arguments {
		v, err := i.evaluate(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fun, ok := callee.(object.Callable)
	if !ok {
		return nil, i.makeError(e.Paren,
			"Can only call functions and classes, not '%v'.", value.Stringify(callee))
	}

	if fun.Arity() != len(args) {
		return nil, i.makeError(e.Paren,
			"%v expected %v arguments but got %v.", fun, fun.Arity(), len(args))
	}

	ret, err := fun.Call(i, args)
	if err != nil {
		return nil, i.atCallSite(e.Paren, err)
	}
	return ret, nil
}

func (i *Interpreter) evaluateGet(e *ast.Get) (value.Value, error) {
	obj, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}

	switch obj := obj.(type) {
	case *object.Instance:
		if v, ok := obj.Get(e.Name.Lexeme); ok {
			return v, nil
		}
	case *object.Class:
		// Only static methods are reachable through the class.
		if fun, ok := obj.Get(e.Name.Lexeme); ok {
			return fun, nil
		}
	default:
		return nil, i.makeError(e.Name, "Only instances have properties.")
	}

	return nil, i.makeError(e.Name, "Undefined property '%v'.", e.Name.Lexeme)
}

func (i *Interpreter) evaluateSet(e *ast.Set) (value.Value, error) {
	obj, err := i.evaluate(e.Object)
	if err != nil {
		return nil, err
	}

	instance, ok := obj.(*object.Instance)
	if !ok {
		return nil, i.makeError(e.Name, "Only instances have fields.")
	}

	val, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	instance.Set(e.Name.Lexeme, val)
	return val, nil
}

// The superclass and the instance are taken from the environment chain,
// not from the instance's class, which may override the method.
func (i *Interpreter) evaluateSuper(e *ast.Super) (value.Value, error) {
	distance, ok := i.distances[e]
	if !ok {
		return nil, i.makeError(e.Keyword, "Cannot use 'super' outside of a subclass.")
	}

	sv, _ := i.env.GetAt(distance, "super")
	superclass := sv.(*object.Class)

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, i.makeError(e.Method, "Undefined property '%v'.", e.Method.Lexeme)
	}
	if method.IsStatic() {
		return method, nil
	}

	// 'this' is always in the scope right inside the one holding 'super'.
	tv, _ := i.env.GetAt(distance-1, "this")
	return method.Bind(tv.(*object.Instance)), nil
}
