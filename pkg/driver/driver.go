// Package driver composes the pipeline: source text through the lexer and
// parser into the interpreter.
package driver

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"imp/interpreter-go/pkg/ast"
	"imp/interpreter-go/pkg/interpreter"
	"imp/interpreter-go/pkg/lexer"
	"imp/interpreter-go/pkg/parser"
)

// Compile lexes and parses a source buffer without executing it.
func Compile(source string) (*ast.Program, error) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		return nil, err
	}
	return parser.Parse(tokens)
}

// Run executes a source buffer, writing print output to out. The first lex,
// parse, or runtime error halts the run and is returned as-is so callers can
// inspect its diagnostic code.
func Run(source string, out io.Writer) error {
	program, err := Compile(source)
	if err != nil {
		return err
	}
	return interpreter.NewWithOutput(out).EvaluateProgram(program)
}

// RunFile executes a script from disk.
func RunFile(path string, out io.Writer) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	return Run(string(source), out)
}
