package parser

import (
	"fmt"

	"github.com/lagerfeuer/golox/ast"
	"github.com/lagerfeuer/golox/diag"
	"github.com/lagerfeuer/golox/token"
	"github.com/lagerfeuer/golox/value"
)

const MAX_CALL_ARGS = 255

type Parser struct {
	tokens   []token.Token
	current  int
	reporter diag.Reporter

	// Was any syntax error detected while parsing.
	hadError bool
}

// Panic value used to unwind to the enclosing declaration on malformed syntax.
type syntaxError struct{}

// New makes a parser over tokens, which must end with an EOF token.
func New(tokens []token.Token, reporter diag.Reporter) *Parser {
	if reporter == nil {
		reporter = diag.Discard
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.END_OF_FILE {
		tokens = append(tokens, token.Token{Kind: token.END_OF_FILE})
	}
	return &Parser{tokens: tokens, reporter: reporter}
}

// Parse parses tokens into statements, the boolean is false on any error.
func Parse(tokens []token.Token, reporter diag.Reporter) ([]ast.Stmt, bool) {
	p := New(tokens, reporter)
	stmts := p.Parse()
	return stmts, !p.HadError()
}

func (p *Parser) HadError() bool {
	return p.hadError
}

// Parse returns every statement that parsed, malformed ones are dropped.
func (p *Parser) Parse() []ast.Stmt {
	stmts := make([]ast.Stmt, 0)
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	return stmts
}

// Statement parsing methods
// --------------------------------------------------------

// Returns nil if the declaration was malformed, after synchronizing.
func (p *Parser) declaration() (stmt ast.Stmt) {
	// Synchronize tokens if malformed syntax is detected.
	defer func() {
		if v := recover(); v != nil {
			if _, ok := v.(syntaxError); !ok {
				panic(v)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.check(token.FUN) && p.checkNext(token.IDENTIFIER):
		p.advance()
		return p.function("function", 0)
	case p.match(token.VAR):
		return p.varDeclaration()

	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect class name.")

	superclass := (*ast.Variable)(nil)
	if p.match(token.LESS) {
		sname := p.consume(token.IDENTIFIER, "Expect superclass name.")
		superclass = &ast.Variable{Name: sname}
	}

	p.consume(token.LEFT_BRACE, "Expect '{' before class body.")

	ret := &ast.Class{Name: name, Superclass: superclass}
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		quals := ast.Qualifiers(0)
		if p.match(token.STATIC) {
			quals |= ast.Static
		}
		ret.Methods = append(ret.Methods, p.function("method", quals))
	}

	p.consume(token.RIGHT_BRACE, "Expect '}' after class body.")
	return ret
}

// Parses the part after 'fun' of a function, or a method.
func (p *Parser) function(kind string, quals ast.Qualifiers) *ast.Function {
	name := p.consume(token.IDENTIFIER, "Expect "+kind+" name.")
	params, body := p.functionTail(kind)

	return &ast.Function{Name: name, Params: params, Body: body, Qualifiers: quals}
}

// Parses: '(' parameters? ')' block
func (p *Parser) functionTail(kind string) ([]token.Token, []ast.Stmt) {
	p.consume(token.LEFT_PAREN, "Expect '(' after "+kind+" name.")
	params := make([]token.Token, 0)

	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= MAX_CALL_ARGS {
				p.errorAt(p.peek(), fmt.Sprintf(
					"Can't have more than %v parameters.", MAX_CALL_ARGS,
				))
				// Continue after the error as the syntax is well formed.
			}

			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))

			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")

	p.consume(token.LEFT_BRACE, "Expect '{' before "+kind+" body.")
	return params, p.bareBlock()
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect variable name.")

	init_value := ast.Expr(nil)
	if p.match(token.EQUAL) {
		init_value = p.assignment()
	}

	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.Var{Name: name, Initializer: init_value}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.BREAK):
		return p.breakStatement()
	case p.match(token.RETURN):
		return p.returnStatement()

	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()

	case p.match(token.LEFT_BRACE):
		return ast.NewBlock(p.bareBlock()...)

	case p.isPrintSugar():
		return p.printStatement()

	default:
		return p.expressionStatement()
	}
}

// 'print' is the native function, 'print expr;' is sugar for 'print(expr);'.
// Applies only when the token after 'print' can start an operand, so
// 'print(x);', 'print = f;' and 'print.x' keep their usual meaning.
func (p *Parser) isPrintSugar() bool {
	if !p.check(token.IDENTIFIER) || p.peek().Lexeme != "print" {
		return false
	}

	switch p.peekNext().Kind {
	case token.IDENTIFIER, token.NUMBER, token.STRING,
		token.TRUE, token.FALSE, token.NIL,
		token.THIS, token.SUPER, token.FUN,
		token.MINUS, token.BANG:
		return true
	default:
		return false
	}
}

func (p *Parser) printStatement() ast.Stmt {
	callee := p.advance()
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")

	return &ast.Expression{Expression: &ast.Call{
		Callee:    &ast.Variable{Name: callee},
		Paren:     callee,
		Arguments: []ast.Expr{expr},
	}}
}

func (p *Parser) breakStatement() ast.Stmt {
	kw := p.previous()
	p.consume(token.SEMICOLON, "Expect ';' after 'break'.")

	return &ast.Break{Keyword: kw}
}

func (p *Parser) returnStatement() ast.Stmt {
	kw := p.previous()
	value := ast.Expr(nil) // A return with no expression returns nil.

	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")

	return &ast.Return{Keyword: kw, Value: value}
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after if condition.")

	then_branch := p.statement()
	else_branch := ast.Stmt(nil)
	if p.match(token.ELSE) {
		else_branch = p.statement()
	}

	return &ast.If{
		Condition:  condition,
		ThenBranch: then_branch,
		ElseBranch: else_branch,
	}
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	condition := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")

	body := p.statement()
	return &ast.While{Condition: condition, Body: body}
}

// There is no runtime 'for', we do the following construction:
//
//	{ initializer; while (condition) { body; increment; } }
func (p *Parser) forStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	init := ast.Stmt(nil)
	switch {
	case p.match(token.SEMICOLON):
		init = nil
	case p.match(token.VAR):
		init = p.varDeclaration()
	default:
		init = p.expressionStatement()
	}

	cond := ast.Expr(&ast.Literal{Value: value.Boolean(true)})
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	increment := ast.Expr(nil)
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()
	if increment != nil {
		body = ast.NewBlock(body, &ast.Expression{Expression: increment})
	}

	loop := ast.Stmt(&ast.While{Condition: cond, Body: body})
	if init == nil {
		return loop
	}
	return ast.NewBlock(init, loop)
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")

	return &ast.Expression{Expression: expr}
}

// Expression parsing methods
// --------------------------------------------------------
func (p *Parser) expression() ast.Expr {
	return p.comma()
}

func (p *Parser) comma() ast.Expr {
	expr := p.assignment()
	if !p.check(token.COMMA) {
		return expr
	}

	exprs := []ast.Expr{expr}
	for p.match(token.COMMA) {
		exprs = append(exprs, p.assignment())
	}
	return &ast.Comma{Exprs: exprs}
}

func (p *Parser) assignment() ast.Expr {
	// Since the '=' can be any number of tokens ahead,
	// parse the LHS first and then check for equal sign and verify that the
	// assingment target valid.
	expr := p.logicOr()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}
		case *ast.Get:
			// If Get(like: expr.name) then transform it into Set.
			// Where the name is the property to be set.
			return &ast.Set{
				Object: target.Object,
				Name:   target.Name,
				Value:  value,
			}
		default:
			p.errorAt(equals, "Invalid assignment target.")
			// Continue after the error as the syntax is well formed.
		}
	}

	return expr
}

// Generic helper function for parsing left-associative binary expressions.
func doLeftBinaryExpr[E ast.Binary | ast.Logical](
	p *Parser, next_rule func() ast.Expr, matches ...token.TokenKind) ast.Expr {
	left := next_rule()

	for p.matchAny(matches...) {
		op := p.previous()
		right := next_rule()

		e := E{Operator: op, Left: left, Right: right}
		left = any(&e).(ast.Expr)
	}

	return left
}

func (p *Parser) logicOr() ast.Expr {
	return doLeftBinaryExpr[ast.Logical](p, p.logicAnd, token.OR)
}

func (p *Parser) logicAnd() ast.Expr {
	return doLeftBinaryExpr[ast.Logical](p, p.ternary, token.AND)
}

// The true arm nests to the right: a ? b ? c : d : e
func (p *Parser) ternary() ast.Expr {
	expr := p.equality()

	if p.match(token.QUESTION) {
		true_expr := p.ternary()
		p.consume(token.COLON, "Expect ':' in ternary expression.")
		false_expr := p.equality()

		return &ast.Ternary{
			Condition: expr,
			TrueExpr:  true_expr,
			FalseExpr: false_expr,
		}
	}

	return expr
}

func (p *Parser) equality() ast.Expr {
	return doLeftBinaryExpr[ast.Binary](p, p.comparison,
		token.EQUAL_EQUAL, token.BANG_EQUAL)
}

func (p *Parser) comparison() ast.Expr {
	return doLeftBinaryExpr[ast.Binary](p, p.term,
		token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL)
}

func (p *Parser) term() ast.Expr {
	return doLeftBinaryExpr[ast.Binary](p, p.factor,
		token.PLUS, token.MINUS)
}

func (p *Parser) factor() ast.Expr {
	return doLeftBinaryExpr[ast.Binary](p, p.unary,
		token.STAR, token.SLASH)
}

func (p *Parser) unary() ast.Expr {
	if p.matchAny(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Operator: op, Right: right}
	}

	return p.call()
}

func (p *Parser) call() ast.Expr {
	// This parses function calls and get(property access),
	// both are left-associative.
	expr := p.primary()

	for {
		if p.match(token.DOT) {
			name := p.consume(token.IDENTIFIER, "Expect property name after '.'.")
			expr = &ast.Get{Object: expr, Name: name}
		} else if p.match(token.LEFT_PAREN) {
			expr = p.finishCall(expr)
		} else {
			break
		}
	}

	return expr
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.matchAny(token.FALSE, token.TRUE, token.NIL, token.NUMBER, token.STRING):
		return &ast.Literal{Value: p.previous().Literal}

	case p.match(token.THIS):
		return &ast.This{Keyword: p.previous()}

	case p.match(token.SUPER):
		kw := p.previous()
		p.consume(token.DOT, "Expect '.' after 'super'.")
		method := p.consume(token.IDENTIFIER, "Expect superclass method name.")
		return &ast.Super{Keyword: kw, Method: method}

	case p.match(token.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}

	case p.match(token.FUN):
		kw := p.previous()
		params, body := p.functionTail("lambda")
		return &ast.Lambda{
			Keyword:  kw,
			Function: &ast.Function{Params: params, Body: body},
		}

	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.Grouping{Expr: expr}
	}

	p.errorAt(p.peek(), "Expect expression.")
	panic(syntaxError{})
}

// Parsing helpers
// --------------------------------------------------------
// Parses: declaration* '}', the opening brace is already consumed.
func (p *Parser) bareBlock() []ast.Stmt {
	stmts := make([]ast.Stmt, 0)

	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")

	return stmts
}

// Parses call arguments: (expr (',' expr)*)? ')'
func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	args := make([]ast.Expr, 0)

	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= MAX_CALL_ARGS {
				p.errorAt(p.peek(), fmt.Sprintf(
					"Can't have more than %v arguments.", MAX_CALL_ARGS,
				))
			}
			// Continue after the error as the syntax is well formed.

			args = append(args, p.assignment())

			if !p.match(token.COMMA) {
				break
			}
		}
	}

	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Arguments: args}
}

// Error reporting and recovery methods
// --------------------------------------------------------
func (p *Parser) errorAt(tok token.Token, message string) {
	p.hadError = true

	at := "'" + tok.Lexeme + "'"
	if tok.Kind == token.END_OF_FILE {
		at = "end"
	}

	p.reporter.Error(tok.File, tok.Line, fmt.Sprintf("Error at %v: %v", at, message))
}

// Synchronize the token stream after seeing malformed syntax to prevent
// cascading errors and parse as much correct synytax as possible.
func (p *Parser) synchronize() {
	// Discard token on which error happened and continue to do so until we
	// find a token which might be the begining of a new statement/declaration.
	p.advance()

	for !p.isAtEnd() {
		// If a statement has ended then we might see a new statement.
		if p.previous().Kind == token.SEMICOLON {
			return
		}

		// If we see a token which is begining of a statement.
		switch p.peek().Kind {
		case token.CLASS, token.FUN, token.VAR,
			token.FOR, token.IF, token.WHILE,
			token.RETURN, token.BREAK:
			return

		default:
			p.advance()
		}
	}
}

// Parser token matching and processing methods
// --------------------------------------------------------
func (p *Parser) consume(kind token.TokenKind, message string) token.Token {
	if p.check(kind) {
		return p.advance()
	}

	p.errorAt(p.peek(), message)
	panic(syntaxError{})
}

func (p *Parser) matchAny(kinds ...token.TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}

	return false
}

func (p *Parser) match(kind token.TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}

	return false
}

func (p *Parser) check(kind token.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) checkNext(kind token.TokenKind) bool {
	return p.peekNext().Kind == kind
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.END_OF_FILE
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) peekNext() token.Token {
	if p.current+1 < len(p.tokens) {
		return p.tokens[p.current+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) previous() token.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}
