package ast

import (
	"fmt"
	"strings"

	"github.com/lagerfeuer/golox/value"
)

// Print renders statements as parenthesized prefix notation, one
// top-level statement per line. Used for debugging the parser.
func Print(stmts []Stmt) string {
	var b strings.Builder
	for _, s := range stmts {
		b.WriteString(PrintStmt(s))
		b.WriteByte('\n')
	}
	return b.String()
}

func PrintStmt(s Stmt) string {
	switch s := s.(type) {
	case *Expression:
		return parens(";", PrintExpr(s.Expression))
	case *Var:
		if s.Initializer == nil {
			return parens("var", s.Name.Lexeme)
		}
		return parens("var", s.Name.Lexeme, PrintExpr(s.Initializer))
	case *Block:
		frags := []string{"block"}
		for _, inner := range s.Statements {
			frags = append(frags, PrintStmt(inner))
		}
		return parens(frags...)
	case *If:
		if s.ElseBranch == nil {
			return parens("if", PrintExpr(s.Condition), PrintStmt(s.ThenBranch))
		}
		return parens("if", PrintExpr(s.Condition),
			PrintStmt(s.ThenBranch), PrintStmt(s.ElseBranch))
	case *While:
		return parens("while", PrintExpr(s.Condition), PrintStmt(s.Body))
	case *Break:
		return "(break)"
	case *Return:
		if s.Value == nil {
			return "(return)"
		}
		return parens("return", PrintExpr(s.Value))
	case *Function:
		return printFunction("fun", s)
	case *Class:
		frags := []string{"class", s.Name.Lexeme}
		if s.Superclass != nil {
			frags = append(frags, "<"+s.Superclass.Name.Lexeme)
		}
		for _, m := range s.Methods {
			kw := "method"
			if m.Qualifiers.Has(Static) {
				kw = "static"
			}
			frags = append(frags, printFunction(kw, m))
		}
		return parens(frags...)
	default:
		panic(fmt.Sprintf("Unknown statement type %T.", s))
	}
}

func PrintExpr(e Expr) string {
	switch e := e.(type) {
	case *Literal:
		if s, ok := e.Value.(value.String); ok {
			return fmt.Sprintf("%q", string(s))
		}
		return value.Stringify(e.Value)
	case *Grouping:
		return parens("group", PrintExpr(e.Expr))
	case *Unary:
		return parens(e.Operator.Lexeme, PrintExpr(e.Right))
	case *Binary:
		return parens(e.Operator.Lexeme, PrintExpr(e.Left), PrintExpr(e.Right))
	case *Logical:
		return parens(e.Operator.Lexeme, PrintExpr(e.Left), PrintExpr(e.Right))
	case *Ternary:
		return parens("?:", PrintExpr(e.Condition),
			PrintExpr(e.TrueExpr), PrintExpr(e.FalseExpr))
	case *Comma:
		frags := []string{","}
		for _, inner := range e.Exprs {
			frags = append(frags, PrintExpr(inner))
		}
		return parens(frags...)
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return parens("=", e.Name.Lexeme, PrintExpr(e.Value))
	case *Call:
		// Put initial content before args
		frags := []string{"call", PrintExpr(e.Callee)}
		for _, arg := range e.Arguments {
			frags = append(frags, PrintExpr(arg))
		}
		return parens(frags...)
	case *Get:
		return parens("get", PrintExpr(e.Object), e.Name.Lexeme)
	case *Set:
		return parens("set", PrintExpr(e.Object), e.Name.Lexeme, PrintExpr(e.Value))
	case *This:
		return "this"
	case *Super:
		return "super." + e.Method.Lexeme
	case *Lambda:
		return printFunction("lambda", e.Function)
	default:
		panic(fmt.Sprintf("Unknown expression type %T.", e))
	}
}

func printFunction(kw string, f *Function) string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Lexeme
	}

	frags := []string{kw}
	if f.Name.Lexeme != "" {
		frags = append(frags, f.Name.Lexeme)
	}
	frags = append(frags, "("+strings.Join(params, " ")+")")
	for _, s := range f.Body {
		frags = append(frags, PrintStmt(s))
	}
	return parens(frags...)
}

func parens(frags ...string) string {
	return "(" + strings.Join(frags, " ") + ")"
}
