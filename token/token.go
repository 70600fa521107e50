package token

import (
	"fmt"

	"github.com/lagerfeuer/golox/value"
)

type TokenKind uint8

const (
	// Single-character tokens.
	LEFT_PAREN TokenKind = iota
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	COMMA
	DOT
	MINUS
	PLUS
	SEMICOLON
	COLON
	QUESTION
	SLASH
	STAR

	// One or two character tokens.
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL

	// Literals.
	IDENTIFIER
	STRING
	NUMBER

	// Keywords.
	AND
	BREAK
	CLASS
	ELSE
	FALSE
	FOR
	FUN
	IF
	NIL
	OR
	RETURN
	STATIC
	SUPER
	THIS
	TRUE
	VAR
	WHILE

	END_OF_FILE
)

var kindNames = [...]string{
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	COMMA:         "COMMA",
	DOT:           "DOT",
	MINUS:         "MINUS",
	PLUS:          "PLUS",
	SEMICOLON:     "SEMICOLON",
	COLON:         "COLON",
	QUESTION:      "QUESTION",
	SLASH:         "SLASH",
	STAR:          "STAR",
	BANG:          "BANG",
	BANG_EQUAL:    "BANG_EQUAL",
	EQUAL:         "EQUAL",
	EQUAL_EQUAL:   "EQUAL_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	IDENTIFIER:    "IDENTIFIER",
	STRING:        "STRING",
	NUMBER:        "NUMBER",
	AND:           "AND",
	BREAK:         "BREAK",
	CLASS:         "CLASS",
	ELSE:          "ELSE",
	FALSE:         "FALSE",
	FOR:           "FOR",
	FUN:           "FUN",
	IF:            "IF",
	NIL:           "NIL",
	OR:            "OR",
	RETURN:        "RETURN",
	STATIC:        "STATIC",
	SUPER:         "SUPER",
	THIS:          "THIS",
	TRUE:          "TRUE",
	VAR:           "VAR",
	WHILE:         "WHILE",
	END_OF_FILE:   "EOF",
}

func (k TokenKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

// Reserved words, checked after an identifier has been scanned.
var Keywords = map[string]TokenKind{
	"and":    AND,
	"break":  BREAK,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"for":    FOR,
	"fun":    FUN,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"return": RETURN,
	"static": STATIC,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

type Token struct {
	Kind   TokenKind
	Lexeme string
	// Decoded value for NUMBER, STRING, TRUE, FALSE and NIL, nil otherwise.
	Literal value.Value

	File string
	Line int
}

// Equal compares kind, lexeme and literal. The source location is ignored.
func (t Token) Equal(o Token) bool {
	return t.Kind == o.Kind && t.Lexeme == o.Lexeme && t.Literal == o.Literal
}

func (t Token) String() string {
	if t.Literal == nil {
		return fmt.Sprintf("%v %q", t.Kind, t.Lexeme)
	}
	return fmt.Sprintf("%v %q %v", t.Kind, t.Lexeme, t.Literal)
}

