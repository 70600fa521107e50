package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lagerfeuer/golox/token"
	"github.com/lagerfeuer/golox/value"
)

func TestEqualIgnoresLocation(t *testing.T) {
	a := token.Token{Kind: token.NUMBER, Lexeme: "1", Literal: value.Number(1), File: "a.lox", Line: 1}
	b := token.Token{Kind: token.NUMBER, Lexeme: "1", Literal: value.Number(1), File: "b.lox", Line: 7}
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
}

func TestEqualComparesKindLexemeLiteral(t *testing.T) {
	base := token.Token{Kind: token.STRING, Lexeme: `"a"`, Literal: value.String("a")}

	tests := []struct {
		name  string
		other token.Token
	}{
		{"kind", token.Token{Kind: token.IDENTIFIER, Lexeme: `"a"`, Literal: value.String("a")}},
		{"lexeme", token.Token{Kind: token.STRING, Lexeme: `"b"`, Literal: value.String("a")}},
		{"literal", token.Token{Kind: token.STRING, Lexeme: `"a"`, Literal: value.String("b")}},
		{"missing literal", token.Token{Kind: token.STRING, Lexeme: `"a"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, base.Equal(tt.other))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "BANG_EQUAL", token.BANG_EQUAL.String())
	assert.Equal(t, "EOF", token.END_OF_FILE.String())
	assert.Equal(t, "TokenKind(200)", token.TokenKind(200).String())
}

func TestKeywords(t *testing.T) {
	assert.Equal(t, token.STATIC, token.Keywords["static"])
	_, ok := token.Keywords["print"]
	assert.False(t, ok, "print is a native function, not a keyword")
}
