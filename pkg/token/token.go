// Package token defines the lexical vocabulary shared by the lexer and parser.
package token

import "fmt"

// Type identifies the category of a token.
type Type int

const (
	// Keywords
	Var Type = iota
	If
	Else
	While
	Print

	// Identifiers and literals
	Identifier
	Number

	// Operators
	Plus
	Minus
	Star
	Slash
	Assign
	EqEq
	NotEq
	Less
	Greater
	LessEq
	GreaterEq
	AndAnd
	OrOr

	// Punctuation
	Semicolon
	LParen
	RParen
	LBrace
	RBrace

	// End of input
	EOF
)

var typeNames = map[Type]string{
	Var:        "var",
	If:         "if",
	Else:       "else",
	While:      "while",
	Print:      "print",
	Identifier: "identifier",
	Number:     "number",
	Plus:       "'+'",
	Minus:      "'-'",
	Star:       "'*'",
	Slash:      "'/'",
	Assign:     "'='",
	EqEq:       "'=='",
	NotEq:      "'!='",
	Less:       "'<'",
	Greater:    "'>'",
	LessEq:     "'<='",
	GreaterEq:  "'>='",
	AndAnd:     "'&&'",
	OrOr:       "'||'",
	Semicolon:  "';'",
	LParen:     "'('",
	RParen:     "')'",
	LBrace:     "'{'",
	RBrace:     "'}'",
	EOF:        "end of input",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token is a single lexical unit. Tokens are immutable once produced.
type Token struct {
	Type   Type
	Lexeme string
	Line   int
	Column int
}

func (t Token) String() string {
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Lexeme)
}

var keywords = map[string]Type{
	"var":   Var,
	"if":    If,
	"else":  Else,
	"while": While,
	"print": Print,
}

// LookupIdent resolves a scanned identifier run against the keyword table.
func LookupIdent(name string) Type {
	if kw, ok := keywords[name]; ok {
		return kw
	}
	return Identifier
}
