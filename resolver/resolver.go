// Package resolver computes, for every local variable reference, how many
// scopes away its declaration is, and rejects scope misuse statically.
package resolver

import (
	"fmt"

	"github.com/lagerfeuer/golox/ast"
	"github.com/lagerfeuer/golox/diag"
	"github.com/lagerfeuer/golox/token"
	"github.com/lagerfeuer/golox/util"
)

// Distances maps *ast.Variable, *ast.Assign, *ast.This and *ast.Super nodes
// to the number of scopes to walk up. Missing nodes are globals.
type Distances map[ast.Expr]int

type Resolver struct {
	reporter diag.Reporter
	// Name to defined flag, innermost scope last. Globals are not tracked.
	scopes    []map[string]bool
	distances Distances
	// Globals whose initializer is being resolved, and globals defined by
	// earlier declarations, possibly from earlier calls to Resolve.
	pendingGlobals map[string]bool
	definedGlobals map[string]bool
	// Globals first defined during the current call to Resolve.
	newGlobals []string

	currentFunction functionKind
	currentClass    classKind
	inStatic        bool
	loopDepth       int

	hadError bool
}

func New(reporter diag.Reporter) *Resolver {
	if reporter == nil {
		reporter = diag.Discard
	}
	return &Resolver{
		reporter:       reporter,
		scopes:         make([]map[string]bool, 0, 8),
		distances:      Distances{},
		pendingGlobals: map[string]bool{},
		definedGlobals: map[string]bool{},
	}
}

// Resolve runs a fresh resolver over stmts, the boolean is false on error.
func Resolve(stmts []ast.Stmt, reporter diag.Reporter) (Distances, bool) {
	r := New(reporter)
	ok := r.Resolve(stmts)
	return r.Distances(), ok
}

// Distances found by the last call to Resolve.
func (r *Resolver) Distances() Distances {
	return r.distances
}

// HadError reports if the last call to Resolve reported errors.
func (r *Resolver) HadError() bool {
	return r.hadError
}

// Resolve resolves one program, or one REPL entry. Globals defined by
// earlier successful calls stay visible, so redefining a global in terms of
// its old value is fine. The boolean is false on error.
func (r *Resolver) Resolve(stmts []ast.Stmt) bool {
	r.hadError = false
	r.distances = Distances{}
	r.newGlobals = r.newGlobals[:0]

	r.resolveStmts(stmts)

	// Nothing of a rejected entry runs, so its globals never exist.
	if r.hadError {
		for _, name := range r.newGlobals {
			delete(r.definedGlobals, name)
		}
	}
	return !r.hadError
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

// Statements
// --------------------------------------------------------
func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Expression:
		r.resolveExpr(s.Expression)

	case *ast.Var:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)

	case *ast.Block:
		r.pushScope()
		r.resolveStmts(s.Statements)
		r.popScope()

	case *ast.If:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.ThenBranch)
		if s.ElseBranch != nil {
			r.resolveStmt(s.ElseBranch)
		}

	case *ast.While:
		r.loopDepth++
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
		r.loopDepth--

	case *ast.Break:
		if r.loopDepth == 0 {
			r.error(s.Keyword, "Cannot 'break' outside of a loop.")
		}

	case *ast.Return:
		if r.currentFunction == kindNoFunction {
			r.error(s.Keyword, "Cannot 'return' from top-level code.")
		}
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}

	case *ast.Function:
		// A function can refer to itself inside it.
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, kindFunction)

	case *ast.Class:
		r.resolveClass(s)

	default:
		panic(fmt.Sprintf("Unknown statement type %T.", s))
	}
}

func (r *Resolver) resolveClass(s *ast.Class) {
	old_class, old_static := r.currentClass, r.inStatic
	r.currentClass = kindClass
	defer func() { r.currentClass, r.inStatic = old_class, old_static }()

	// A class can refer to itself.
	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.error(s.Superclass.Name, "A class cannot inherit from itself.")
		}
		r.currentClass = kindSubclass
		r.resolveExpr(s.Superclass)

		// 'super' lives in a scope which encloses all the methods' scopes.
		r.pushScope()
		util.Last(r.scopes)["super"] = true
		defer r.popScope()
	}

	for _, method := range s.Methods {
		r.inStatic = method.Qualifiers.Has(ast.Static)
		if r.inStatic {
			r.resolveFunction(method, kindStaticMethod)
			continue
		}

		kind := kindMethod
		if method.Name.Lexeme == "init" {
			kind = kindInitializer
		}

		// 'this' lives in a scope which encloses the method's scope.
		r.pushScope()
		util.Last(r.scopes)["this"] = true
		r.resolveFunction(method, kind)
		r.popScope()
	}
}

// Function bodies get their own scope holding the parameters. Loops do not
// extend into nested functions.
func (r *Resolver) resolveFunction(f *ast.Function, kind functionKind) {
	old_func, old_loop := r.currentFunction, r.loopDepth
	r.currentFunction, r.loopDepth = kind, 0
	defer func() { r.currentFunction, r.loopDepth = old_func, old_loop }()

	r.pushScope()
	defer r.popScope()

	for _, param := range f.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(f.Body)
}

// Expressions
// --------------------------------------------------------
func (r *Resolver) resolveExpr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Literal:

	case *ast.Grouping:
		r.resolveExpr(e.Expr)

	case *ast.Unary:
		r.resolveExpr(e.Right)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Ternary:
		r.resolveExpr(e.Condition)
		r.resolveExpr(e.TrueExpr)
		r.resolveExpr(e.FalseExpr)

	case *ast.Comma:
		for _, inner := range e.Exprs {
			r.resolveExpr(inner)
		}

	case *ast.Variable:
		if r.isUninitialized(e.Name.Lexeme) {
			r.error(e.Name, "Variable cannot reference itself in initializer.")
		}
		r.resolveLocal(e, e.Name.Lexeme)

	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name.Lexeme)

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpr(arg)
		}

	case *ast.Get:
		// Properties are looked up dynamically, only the object is resolved.
		r.resolveExpr(e.Object)

	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.This:
		switch {
		case r.currentClass == kindNoClass:
			r.error(e.Keyword, "Cannot use 'this' outside of a class.")
			return
		case r.inStatic:
			r.error(e.Keyword, "Cannot use 'this' in a static method.")
			return
		}
		r.resolveLocal(e, "this")

	case *ast.Super:
		switch r.currentClass {
		case kindNoClass:
			r.error(e.Keyword, "Cannot use 'super' outside of a class.")
			return
		case kindClass:
			r.error(e.Keyword, "Cannot use 'super' in a class with no superclass.")
			return
		}
		if r.inStatic {
			r.error(e.Keyword, "Cannot use 'super' in a static method.")
			return
		}
		r.resolveLocal(e, "super")

	case *ast.Lambda:
		r.resolveFunction(e.Function, kindFunction)

	default:
		panic(fmt.Sprintf("Unknown expression type %T.", e))
	}
}

// Scope management
// --------------------------------------------------------
func (r *Resolver) pushScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *Resolver) popScope() {
	util.Pop(&r.scopes)
}

// Declares the name in the innermost scope. Globals may be redeclared, a
// global is pending only until its first definition.
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		if !r.definedGlobals[name.Lexeme] {
			r.pendingGlobals[name.Lexeme] = true
		}
		return
	}

	scope := util.Last(r.scopes)
	if _, ok := scope[name.Lexeme]; ok {
		r.error(name, fmt.Sprintf(
			"Variable '%v' already declared in this scope.", name.Lexeme,
		))
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		delete(r.pendingGlobals, name.Lexeme)
		if !r.definedGlobals[name.Lexeme] {
			r.definedGlobals[name.Lexeme] = true
			r.newGlobals = append(r.newGlobals, name.Lexeme)
		}
		return
	}

	util.Last(r.scopes)[name.Lexeme] = true
}

// Reports if name is declared in the current scope but not yet defined.
func (r *Resolver) isUninitialized(name string) bool {
	if len(r.scopes) == 0 {
		return r.pendingGlobals[name]
	}

	defined, ok := util.Last(r.scopes)[name]
	return ok && !defined
}

// Records the distance of the innermost scope declaring name.
// Not found means global, which is recorded by omission.
func (r *Resolver) resolveLocal(e ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.distances[e] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) error(tok token.Token, message string) {
	r.hadError = true

	at := "'" + tok.Lexeme + "'"
	if tok.Kind == token.END_OF_FILE {
		at = "end"
	}

	r.reporter.Error(tok.File, tok.Line, fmt.Sprintf("Error at %v: %v", at, message))
}
