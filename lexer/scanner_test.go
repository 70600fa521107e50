package lexer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagerfeuer/golox/diag"
	"github.com/lagerfeuer/golox/lexer"
	"github.com/lagerfeuer/golox/token"
	"github.com/lagerfeuer/golox/value"
)

func kinds(tokens []token.Token) []token.TokenKind {
	ret := make([]token.TokenKind, len(tokens))
	for i, tok := range tokens {
		ret[i] = tok.Kind
	}
	return ret
}

func TestScanKinds(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []token.TokenKind
	}{
		{
			name:   "empty",
			source: "",
			want:   []token.TokenKind{token.END_OF_FILE},
		},
		{
			name:   "single char",
			source: "(){},.-+;:?*/",
			want: []token.TokenKind{
				token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
				token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON,
				token.COLON, token.QUESTION, token.STAR, token.SLASH, token.END_OF_FILE,
			},
		},
		{
			name:   "one or two chars",
			source: "! != = == < <= > >=",
			want: []token.TokenKind{
				token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
				token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL,
				token.END_OF_FILE,
			},
		},
		{
			name:   "keywords and identifiers",
			source: "class Foo < Bar { static init() { this.x = super.y; } } print _a1",
			want: []token.TokenKind{
				token.CLASS, token.IDENTIFIER, token.LESS, token.IDENTIFIER, token.LEFT_BRACE,
				token.STATIC, token.IDENTIFIER, token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE,
				token.THIS, token.DOT, token.IDENTIFIER, token.EQUAL, token.SUPER, token.DOT,
				token.IDENTIFIER, token.SEMICOLON, token.RIGHT_BRACE, token.RIGHT_BRACE,
				token.IDENTIFIER, token.IDENTIFIER, token.END_OF_FILE,
			},
		},
		{
			name:   "comments",
			source: "1 // line comment\n/* block\ncomment */ 2 /**/ 3",
			want:   []token.TokenKind{token.NUMBER, token.NUMBER, token.NUMBER, token.END_OF_FILE},
		},
		{
			name:   "unterminated block comment",
			source: "1 /* never closed",
			want:   []token.TokenKind{token.NUMBER, token.END_OF_FILE},
		},
		{
			name:   "slash is division",
			source: "4 / 2",
			want:   []token.TokenKind{token.NUMBER, token.SLASH, token.NUMBER, token.END_OF_FILE},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, ok := lexer.Scan(tt.source, "test.lox", nil)
			require.True(t, ok)
			if diff := cmp.Diff(tt.want, kinds(tokens)); diff != "" {
				t.Errorf("kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanLiterals(t *testing.T) {
	tokens, ok := lexer.Scan(`12 3.25 4. "hi" true false nil`, "test.lox", nil)
	require.True(t, ok)

	want := []token.Token{
		{Kind: token.NUMBER, Lexeme: "12", Literal: value.Number(12)},
		{Kind: token.NUMBER, Lexeme: "3.25", Literal: value.Number(3.25)},
		// A trailing '.' is not part of the number.
		{Kind: token.NUMBER, Lexeme: "4", Literal: value.Number(4)},
		{Kind: token.DOT, Lexeme: "."},
		{Kind: token.STRING, Lexeme: `"hi"`, Literal: value.String("hi")},
		{Kind: token.TRUE, Lexeme: "true", Literal: value.Boolean(true)},
		{Kind: token.FALSE, Lexeme: "false", Literal: value.Boolean(false)},
		{Kind: token.NIL, Lexeme: "nil", Literal: value.Nil{}},
		{Kind: token.END_OF_FILE},
	}

	require.Len(t, tokens, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(tokens[i]), "token %d: want %v, got %v", i, want[i], tokens[i])
	}
}

func TestScanLocations(t *testing.T) {
	tokens, ok := lexer.Scan("a\n\"multi\nline\"\nb", "loc.lox", nil)
	require.True(t, ok)
	require.Len(t, tokens, 4)

	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 3, tokens[1].Line)
	assert.Equal(t, value.String("multi\nline"), tokens[1].Literal)
	assert.Equal(t, 4, tokens[2].Line)
	for _, tok := range tokens {
		assert.Equal(t, "loc.lox", tok.File)
	}
}

func TestScanErrorsContinue(t *testing.T) {
	var errs diag.Collector
	tokens, ok := lexer.Scan("1 @ 2 # 3", "bad.lox", &errs)

	assert.False(t, ok)
	assert.Equal(t, []string{
		"Unexpected character '@'.",
		"Unexpected character '#'.",
	}, errs.Messages())
	if diff := cmp.Diff(
		[]token.TokenKind{token.NUMBER, token.NUMBER, token.NUMBER, token.END_OF_FILE},
		kinds(tokens),
	); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestScanMultiByteCharacter(t *testing.T) {
	var errs diag.Collector
	tokens, ok := lexer.Scan("a é b", "bad.lox", &errs)

	assert.False(t, ok)
	assert.Equal(t, []string{"Unexpected character 'é'."}, errs.Messages())
	if diff := cmp.Diff(
		[]token.TokenKind{token.IDENTIFIER, token.IDENTIFIER, token.END_OF_FILE},
		kinds(tokens),
	); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}

	// Multi-byte text inside strings is kept as is.
	tokens, ok = lexer.Scan(`"né"`, "ok.lox", nil)
	require.True(t, ok)
	assert.Equal(t, value.String("né"), tokens[0].Literal)
}

func TestScanUnterminatedString(t *testing.T) {
	var errs diag.Collector
	tokens, ok := lexer.Scan("var s = \"open\n", "bad.lox", &errs)

	assert.False(t, ok)
	require.Len(t, errs.Diagnostics, 1)
	assert.Equal(t, diag.Diagnostic{File: "bad.lox", Line: 2, Message: "Unterminated string."}, errs.Diagnostics[0])
	assert.Equal(t, token.END_OF_FILE, tokens[len(tokens)-1].Kind)
}

func TestScannerHadError(t *testing.T) {
	s := lexer.New("ok", "f.lox", nil)
	s.ScanTokens()
	assert.False(t, s.HadError())
}
