package ast

import (
	"github.com/lagerfeuer/golox/token"
	"github.com/lagerfeuer/golox/value"
)

// Expr is implemented only by the pointer types below. The pointer identity
// of Variable, Assign, This and Super nodes keys the resolver's distances.
type Expr interface {
	exprNode()
}

type Literal struct {
	Value value.Value
}

type Grouping struct {
	Expr Expr
}

type Unary struct {
	Operator token.Token
	Right    Expr
}

type Binary struct {
	Operator    token.Token
	Left, Right Expr
}

type Logical struct {
	Operator    token.Token
	Left, Right Expr
}

type Ternary struct {
	Condition           Expr
	TrueExpr, FalseExpr Expr
}

// Comma evaluates all of Exprs left to right, yielding the last one.
type Comma struct {
	Exprs []Expr
}

type Variable struct {
	Name token.Token
}

type Assign struct {
	Name  token.Token
	Value Expr
}

type Call struct {
	Callee    Expr
	Paren     token.Token
	Arguments []Expr
}

type Get struct {
	Object Expr
	Name   token.Token
}

type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

type This struct {
	Keyword token.Token
}

type Super struct {
	Keyword token.Token
	Method  token.Token
}

// Lambda is an anonymous function, Function.Name is the zero token.
type Lambda struct {
	Keyword  token.Token
	Function *Function
}

func (*Literal) exprNode()  {}
func (*Grouping) exprNode() {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Logical) exprNode()  {}
func (*Ternary) exprNode()  {}
func (*Comma) exprNode()    {}
func (*Variable) exprNode() {}
func (*Assign) exprNode()   {}
func (*Call) exprNode()     {}
func (*Get) exprNode()      {}
func (*Set) exprNode()      {}
func (*This) exprNode()     {}
func (*Super) exprNode()    {}
func (*Lambda) exprNode()   {}
