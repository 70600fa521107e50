package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/lagerfeuer/golox/diag"
	"github.com/lagerfeuer/golox/token"
	"github.com/lagerfeuer/golox/value"
)

const EOF_CHAR = '\x00'

type Scanner struct {
	source   string
	filename string
	reporter diag.Reporter

	tokens  []token.Token
	start   int
	current int
	line    int

	hadError bool
}

func New(source, filename string, reporter diag.Reporter) *Scanner {
	if reporter == nil {
		reporter = diag.Discard
	}
	return &Scanner{
		source:   source,
		filename: filename,
		reporter: reporter,
		tokens:   make([]token.Token, 0, len(source)/4+1),
		line:     1,
	}
}

// Scan tokenizes source, the returned slice always ends with an EOF token.
// The boolean is false if any lexical error was reported.
func Scan(source, filename string, reporter diag.Reporter) ([]token.Token, bool) {
	s := New(source, filename, reporter)
	tokens := s.ScanTokens()
	return tokens, !s.HadError()
}

func (s *Scanner) HadError() bool {
	return s.hadError
}

func (s *Scanner) ScanTokens() []token.Token {
	for {
		s.skipBlanks()
		if s.isAtEnd() {
			break
		}

		s.start = s.current
		s.scanToken()
	}

	s.start = s.current
	s.addToken(token.END_OF_FILE, nil)
	return s.tokens
}

func (s *Scanner) scanToken() {
	c := s.advance()

	switch c {
	case '(':
		s.addToken(token.LEFT_PAREN, nil)
	case ')':
		s.addToken(token.RIGHT_PAREN, nil)
	case '{':
		s.addToken(token.LEFT_BRACE, nil)
	case '}':
		s.addToken(token.RIGHT_BRACE, nil)

	case '-':
		s.addToken(token.MINUS, nil)
	case '+':
		s.addToken(token.PLUS, nil)
	case '*':
		s.addToken(token.STAR, nil)
	case '/':
		s.addToken(token.SLASH, nil)

	case ',':
		s.addToken(token.COMMA, nil)
	case '.':
		s.addToken(token.DOT, nil)
	case ';':
		s.addToken(token.SEMICOLON, nil)
	case ':':
		s.addToken(token.COLON, nil)
	case '?':
		s.addToken(token.QUESTION, nil)

	case '!':
		s.addToken(s.either('=', token.BANG_EQUAL, token.BANG), nil)
	case '=':
		s.addToken(s.either('=', token.EQUAL_EQUAL, token.EQUAL), nil)
	case '<':
		s.addToken(s.either('=', token.LESS_EQUAL, token.LESS), nil)
	case '>':
		s.addToken(s.either('=', token.GREATER_EQUAL, token.GREATER), nil)

	case '"':
		s.do_string()

	default:
		switch {
		case isDigit(c):
			s.do_number()
		case isIdentFirstChar(c):
			s.do_identifier()
		case c >= utf8.RuneSelf:
			// Report a multi-byte character once, as a whole.
			r, size := utf8.DecodeRuneInString(s.source[s.start:])
			s.current = s.start + size
			s.error(fmt.Sprintf("Unexpected character '%c'.", r))
		default:
			s.error(fmt.Sprintf("Unexpected character '%c'.", c))
		}
	}
}

func (s *Scanner) do_string() {
	// The line of a multi-line string is where it ends.
	for s.peek() != '"' && !s.isAtEnd() {
		s.advance()
	}

	if s.isAtEnd() {
		s.error("Unterminated string.")
		return
	}

	s.advance() // Eat the closing '"'
	s.addToken(token.STRING, value.String(s.source[s.start+1:s.current-1]))
}

func (s *Scanner) do_number() {
	for isDigit(s.peek()) {
		s.advance()
	}

	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // Eat the '.'

		for isDigit(s.peek()) {
			s.advance()
		}
	}

	val, err := strconv.ParseFloat(s.source[s.start:s.current], 64)
	if err != nil {
		s.error(fmt.Sprintf("Invalid number (%v).", err.Error()))
		return
	}

	s.addToken(token.NUMBER, value.Number(val))
}

func (s *Scanner) do_identifier() {
	for isIdentChar(s.peek()) {
		s.advance()
	}

	kind, ok := token.Keywords[s.source[s.start:s.current]]
	if !ok {
		s.addToken(token.IDENTIFIER, nil)
		return
	}

	switch kind {
	case token.TRUE:
		s.addToken(kind, value.Boolean(true))
	case token.FALSE:
		s.addToken(kind, value.Boolean(false))
	case token.NIL:
		s.addToken(kind, value.Nil{})
	default:
		s.addToken(kind, nil)
	}
}

// Utility methods
// -----------------------------------------------

// Skip blanks and comments.
// We use a loop since there can be multiple consecutive comments.
func (s *Scanner) skipBlanks() {
	for !s.isAtEnd() {
		switch s.peek() {
		case ' ', '\t', '\r', '\n', '\v':
			s.advance()

		case '/':
			switch s.peekNext() {
			case '/':
				for s.peek() != '\n' && !s.isAtEnd() {
					s.advance()
				}
			case '*':
				s.advance()
				s.advance()
				// Not nested, an unterminated comment runs to the end.
				for !s.isAtEnd() && !(s.peek() == '*' && s.peekNext() == '/') {
					s.advance()
				}
				s.advance()
				s.advance()
			default:
				return
			}

		default:
			return
		}
	}
}

func (s *Scanner) error(message string) {
	s.hadError = true
	s.reporter.Error(s.filename, s.line, message)
}

func (s *Scanner) addToken(kind token.TokenKind, literal value.Value) {
	s.tokens = append(s.tokens, token.Token{
		Kind:    kind,
		Lexeme:  s.source[s.start:s.current],
		Literal: literal,
		File:    s.filename,
		Line:    s.line,
	})
}

// Scanner character matching and processing methods
// --------------------------------------------------------
func (s *Scanner) either(expected byte, matched, otherwise token.TokenKind) token.TokenKind {
	if s.match(expected) {
		return matched
	}
	return otherwise
}

func (s *Scanner) match(expected byte) bool {
	if s.peek() == expected && !s.isAtEnd() {
		s.advance()
		return true
	} else {
		return false
	}
}

func (s *Scanner) peekNext() byte {
	if s.current+1 < len(s.source) {
		return s.source[s.current+1]
	} else {
		return EOF_CHAR
	}
}

func (s *Scanner) peek() byte {
	if !s.isAtEnd() {
		return s.source[s.current]
	} else {
		return EOF_CHAR
	}
}

func (s *Scanner) advance() byte {
	if s.isAtEnd() {
		return EOF_CHAR
	}

	ret := s.source[s.current]
	s.current++
	if ret == '\n' {
		s.line++
	}

	return ret
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// Character class functions
// --------------------------------------------------------
func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentChar(c byte) bool {
	return isIdentFirstChar(c) || isDigit(c)
}

func isIdentFirstChar(c byte) bool {
	return c == '_' ||
		'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z'
}
