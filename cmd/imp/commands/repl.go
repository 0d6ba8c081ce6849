package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"imp/interpreter-go/pkg/interpreter"
	"imp/interpreter-go/pkg/lexer"
	"imp/interpreter-go/pkg/parser"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read statements from stdin and execute them against one global scope",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		runRepl()
	},
}

// runRepl buffers input lines until the brace depth returns to zero, then
// executes the buffered statements. Bindings persist across inputs because
// every chunk runs against the same interpreter.
func runRepl() {
	interp := interpreter.NewWithOutput(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)
	var buffer strings.Builder
	depth := 0

	prompt := func() {
		if depth > 0 {
			fmt.Print("... ")
			return
		}
		fmt.Print("imp> ")
	}

	prompt()
	for scanner.Scan() {
		line := scanner.Text()
		buffer.WriteString(line)
		buffer.WriteByte('\n')
		depth += braceDelta(line)

		if depth > 0 {
			prompt()
			continue
		}
		depth = 0

		source := buffer.String()
		buffer.Reset()
		if strings.TrimSpace(source) != "" {
			execute(interp, source)
		}
		prompt()
	}
}

func execute(interp *interpreter.Interpreter, source string) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	program, err := parser.Parse(tokens)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if err := interp.EvaluateProgram(program); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

// braceDelta tracks block nesting across lines. The language has no string
// or comment syntax, so counting raw braces is exact.
func braceDelta(line string) int {
	delta := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '{':
			delta++
		case '}':
			delta--
		}
	}
	return delta
}
