package ast

import (
	"github.com/lagerfeuer/golox/token"
)

type Stmt interface {
	stmtNode()
}

type Expression struct {
	Expression Expr
}

type Var struct {
	Name        token.Token
	Initializer Expr // Can be nil
}

type Block struct {
	Statements []Stmt
}

type If struct {
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt // Can be nil
}

// While is also the target of 'for' loops, which the parser desugars into:
//
//	{ initializer; while (condition) { body; increment; } }
type While struct {
	Condition Expr
	Body      Stmt
}

type Break struct {
	Keyword token.Token
}

type Return struct {
	Keyword token.Token
	Value   Expr // Can be nil
}

type Qualifiers uint8

const (
	Static Qualifiers = 1 << iota
)

func (q Qualifiers) Has(o Qualifiers) bool { return q&o != 0 }

type Function struct {
	Name       token.Token
	Params     []token.Token
	Body       []Stmt
	Qualifiers Qualifiers
}

type Class struct {
	Name       token.Token
	Superclass *Variable // Can be nil
	// Declaration order is kept, a later method overrides an earlier one
	// with the same name.
	Methods []*Function
}

func (*Expression) stmtNode() {}
func (*Var) stmtNode()        {}
func (*Block) stmtNode()      {}
func (*If) stmtNode()         {}
func (*While) stmtNode()      {}
func (*Break) stmtNode()      {}
func (*Return) stmtNode()     {}
func (*Function) stmtNode()   {}
func (*Class) stmtNode()      {}

// Makes a block from a list of statements, nil statements are dropped.
func NewBlock(statements ...Stmt) *Block {
	stmts := make([]Stmt, 0, len(statements))
	for _, s := range statements {
		if s != nil {
			stmts = append(stmts, s)
		}
	}
	return &Block{Statements: stmts}
}
