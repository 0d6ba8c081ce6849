// Package diagnostics defines the error values surfaced by the lexer, parser,
// and interpreter. Every detected problem is fatal to the run that produced it.
package diagnostics

import (
	"fmt"

	"imp/interpreter-go/pkg/ast"
)

// Diagnostic code constants.
const (
	CodeLex               = "LexError"
	CodeParse             = "ParseError"
	CodeUndefinedVariable = "UndefinedVariable"
	CodeType              = "TypeError"
	CodeDivisionByZero    = "DivisionByZero"
)

// Diagnostic is a single terminal error with an optional source span.
// Lex and parse diagnostics always carry a span; runtime diagnostics carry
// one when the offending AST node retains it.
type Diagnostic struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Span    *ast.Span `json:"span,omitempty"`
}

// New creates a diagnostic without position information.
func New(code, message string) *Diagnostic {
	return &Diagnostic{Code: code, Message: message}
}

// Newf creates a diagnostic from a format string.
func Newf(code, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Code: code, Message: fmt.Sprintf(format, args...)}
}

// At attaches a span to the diagnostic and returns it. An already positioned
// diagnostic is left untouched so the innermost location wins.
func (d *Diagnostic) At(span ast.Span) *Diagnostic {
	if d.Span == nil && span != (ast.Span{}) {
		d.Span = &span
	}
	return d
}

func (d *Diagnostic) Error() string {
	if d.Span != nil {
		return fmt.Sprintf("%s: %s at %d:%d", d.Code, d.Message, d.Span.Start.Line, d.Span.Start.Column)
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// SpanAt builds a single-position span from a line/column pair.
func SpanAt(line, column int) ast.Span {
	pos := ast.Position{Line: line, Column: column}
	return ast.Span{Start: pos, End: pos}
}

// AsDiagnostic unwraps err when it is a Diagnostic.
func AsDiagnostic(err error) (*Diagnostic, bool) {
	d, ok := err.(*Diagnostic)
	return d, ok
}

// CodeOf reports the diagnostic code of err, or the empty string when err is
// not a Diagnostic.
func CodeOf(err error) string {
	if d, ok := AsDiagnostic(err); ok {
		return d.Code
	}
	return ""
}
