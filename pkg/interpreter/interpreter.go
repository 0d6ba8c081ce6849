// Package interpreter walks the AST and executes it against a chain of
// lexically scoped environments.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"imp/interpreter-go/pkg/ast"
	"imp/interpreter-go/pkg/diagnostics"
	"imp/interpreter-go/pkg/runtime"
)

// Interpreter drives evaluation of program nodes. Execution is
// single-threaded and synchronous; the output sink is the only external
// resource and is written in program order.
type Interpreter struct {
	global *runtime.Environment
	out    io.Writer
}

// New returns an interpreter writing print output to stdout.
func New() *Interpreter {
	return NewWithOutput(os.Stdout)
}

// NewWithOutput returns an interpreter with an empty global environment and
// the given print sink.
func NewWithOutput(out io.Writer) *Interpreter {
	return &Interpreter{
		global: runtime.NewEnvironment(nil),
		out:    out,
	}
}

// GlobalEnvironment returns the interpreter's root environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// EvaluateProgram executes the program's statements in order against the
// global environment. The first error halts execution.
func (i *Interpreter) EvaluateProgram(program *ast.Program) error {
	for _, stmt := range program.Body {
		if err := i.evaluateStatement(stmt, i.global); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) error {
	switch n := node.(type) {
	case *ast.VarDecl:
		return i.evaluateVarDecl(n, env)
	case *ast.Assignment:
		return i.evaluateAssignment(n, env)
	case *ast.IfStatement:
		return i.evaluateIfStatement(n, env)
	case *ast.WhileStatement:
		return i.evaluateWhileStatement(n, env)
	case *ast.PrintStatement:
		return i.evaluatePrintStatement(n, env)
	case *ast.BlockStatement:
		return i.evaluateBlock(n, env)
	default:
		return fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateVarDecl(decl *ast.VarDecl, env *runtime.Environment) error {
	// Uninitialized declarations default to numeric zero.
	var value runtime.Value = runtime.NumberValue{Val: 0}
	if decl.Initializer != nil {
		val, err := i.evaluateExpression(decl.Initializer, env)
		if err != nil {
			return err
		}
		value = val
	}
	env.Define(decl.Name.Name, value)
	return nil
}

func (i *Interpreter) evaluateAssignment(assign *ast.Assignment, env *runtime.Environment) error {
	value, err := i.evaluateExpression(assign.Value, env)
	if err != nil {
		return err
	}
	if err := env.Assign(assign.Name.Name, value); err != nil {
		return withSpan(err, assign.Name.Span())
	}
	return nil
}

func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement, env *runtime.Environment) error {
	cond, err := i.evaluateExpression(stmt.Condition, env)
	if err != nil {
		return err
	}
	if isTruthy(cond) {
		return i.evaluateStatement(stmt.Then, env)
	}
	if stmt.Else != nil {
		return i.evaluateStatement(stmt.Else, env)
	}
	return nil
}

func (i *Interpreter) evaluateWhileStatement(loop *ast.WhileStatement, env *runtime.Environment) error {
	for {
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return err
		}
		if !isTruthy(cond) {
			return nil
		}
		if err := i.evaluateStatement(loop.Body, env); err != nil {
			return err
		}
	}
}

func (i *Interpreter) evaluatePrintStatement(stmt *ast.PrintStatement, env *runtime.Environment) error {
	value, err := i.evaluateExpression(stmt.Value, env)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(i.out, runtime.Format(value))
	return err
}

// evaluateBlock runs the body against a fresh child scope. The child is
// discarded on every exit path, normal or error.
func (i *Interpreter) evaluateBlock(block *ast.BlockStatement, env *runtime.Environment) error {
	scope := env.Extend()
	for _, stmt := range block.Body {
		if err := i.evaluateStatement(stmt, scope); err != nil {
			return err
		}
	}
	return nil
}

// isTruthy maps condition values to a boolean decision: booleans directly,
// numeric zero false, any nonzero number true.
func isTruthy(val runtime.Value) bool {
	switch v := val.(type) {
	case runtime.BoolValue:
		return v.Val
	case runtime.NumberValue:
		return v.Val != 0
	default:
		return false
	}
}

// withSpan attaches node position to a diagnostic lacking one.
func withSpan(err error, span ast.Span) error {
	if d, ok := diagnostics.AsDiagnostic(err); ok {
		return d.At(span)
	}
	return err
}
