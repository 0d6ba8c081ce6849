// Package lexer converts raw source text into the token stream consumed by
// the parser.
package lexer

import (
	"imp/interpreter-go/pkg/diagnostics"
	"imp/interpreter-go/pkg/token"
)

type scanner struct {
	source string
	pos    int
	line   int
	col    int
}

func newScanner(source string) *scanner {
	return &scanner{source: source, line: 1, col: 1}
}

// Lex scans the entire source buffer eagerly and appends a final EOF token so
// the parser has a uniform lookahead sentinel.
func Lex(source string) ([]token.Token, error) {
	s := newScanner(source)
	var tokens []token.Token
	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

func (s *scanner) atEnd() bool {
	return s.pos >= len(s.source)
}

func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.source[s.pos]
}

func (s *scanner) peekNext() byte {
	if s.pos+1 >= len(s.source) {
		return 0
	}
	return s.source[s.pos+1]
}

func (s *scanner) advance() byte {
	ch := s.source[s.pos]
	s.pos++
	if ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return ch
}

func (s *scanner) skipWhitespace() {
	for !s.atEnd() {
		switch s.peek() {
		case ' ', '\t', '\r', '\n':
			s.advance()
		default:
			return
		}
	}
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}

func (s *scanner) next() (token.Token, error) {
	s.skipWhitespace()
	if s.atEnd() {
		return s.make(token.EOF, "", s.line, s.col), nil
	}

	startLine, startCol := s.line, s.col
	ch := s.peek()

	switch {
	case isAlpha(ch):
		return s.scanIdentOrKeyword(), nil
	case isDigit(ch):
		return s.scanNumber(), nil
	}

	s.advance()
	two := func(next byte, twoType, oneType token.Type, oneLexeme string) (token.Token, error) {
		if !s.atEnd() && s.peek() == next {
			s.advance()
			return s.make(twoType, oneLexeme+string(next), startLine, startCol), nil
		}
		return s.make(oneType, oneLexeme, startLine, startCol), nil
	}

	switch ch {
	case '+':
		return s.make(token.Plus, "+", startLine, startCol), nil
	case '-':
		return s.make(token.Minus, "-", startLine, startCol), nil
	case '*':
		return s.make(token.Star, "*", startLine, startCol), nil
	case '/':
		return s.make(token.Slash, "/", startLine, startCol), nil
	case ';':
		return s.make(token.Semicolon, ";", startLine, startCol), nil
	case '(':
		return s.make(token.LParen, "(", startLine, startCol), nil
	case ')':
		return s.make(token.RParen, ")", startLine, startCol), nil
	case '{':
		return s.make(token.LBrace, "{", startLine, startCol), nil
	case '}':
		return s.make(token.RBrace, "}", startLine, startCol), nil
	case '=':
		return two('=', token.EqEq, token.Assign, "=")
	case '<':
		return two('=', token.LessEq, token.Less, "<")
	case '>':
		return two('=', token.GreaterEq, token.Greater, ">")
	case '!':
		if !s.atEnd() && s.peek() == '=' {
			s.advance()
			return s.make(token.NotEq, "!=", startLine, startCol), nil
		}
		return token.Token{}, s.lexError(startLine, startCol, "unexpected character '!'")
	case '&':
		if !s.atEnd() && s.peek() == '&' {
			s.advance()
			return s.make(token.AndAnd, "&&", startLine, startCol), nil
		}
		return token.Token{}, s.lexError(startLine, startCol, "unexpected character '&'")
	case '|':
		if !s.atEnd() && s.peek() == '|' {
			s.advance()
			return s.make(token.OrOr, "||", startLine, startCol), nil
		}
		return token.Token{}, s.lexError(startLine, startCol, "unexpected character '|'")
	default:
		return token.Token{}, s.lexError(startLine, startCol, "unrecognized character %q", ch)
	}
}

func (s *scanner) scanIdentOrKeyword() token.Token {
	startLine, startCol := s.line, s.col
	startPos := s.pos
	for !s.atEnd() && isAlphaNumeric(s.peek()) {
		s.advance()
	}
	text := s.source[startPos:s.pos]
	return s.make(token.LookupIdent(text), text, startLine, startCol)
}

// scanNumber consumes digits with an optional fractional part. A trailing '.'
// without digits is left in the stream for the next token; sign is handled by
// the parser's unary production, not here.
func (s *scanner) scanNumber() token.Token {
	startLine, startCol := s.line, s.col
	startPos := s.pos
	for !s.atEnd() && isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for !s.atEnd() && isDigit(s.peek()) {
			s.advance()
		}
	}
	return s.make(token.Number, s.source[startPos:s.pos], startLine, startCol)
}

func (s *scanner) make(typ token.Type, lexeme string, line, col int) token.Token {
	return token.Token{Type: typ, Lexeme: lexeme, Line: line, Column: col}
}

func (s *scanner) lexError(line, col int, format string, args ...interface{}) error {
	return diagnostics.Newf(diagnostics.CodeLex, format, args...).At(diagnostics.SpanAt(line, col))
}
