package parser

import (
	"strings"
	"testing"

	"imp/interpreter-go/pkg/ast"
	"imp/interpreter-go/pkg/diagnostics"
	"imp/interpreter-go/pkg/lexer"
)

func parseSource(t *testing.T, source string) *ast.Program {
	t.Helper()
	tokens, err := lexer.Lex(source)
	if err != nil {
		t.Fatalf("lex %q: %v", source, err)
	}
	program, err := Parse(tokens)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	return program
}

func parseError(t *testing.T, source string) *diagnostics.Diagnostic {
	t.Helper()
	tokens, err := lexer.Lex(source)
	if err != nil {
		t.Fatalf("lex %q: %v", source, err)
	}
	_, err = Parse(tokens)
	if err == nil {
		t.Fatalf("parse %q: expected error", source)
	}
	diag, ok := diagnostics.AsDiagnostic(err)
	if !ok {
		t.Fatalf("parse %q: error %v is not a diagnostic", source, err)
	}
	if diag.Code != diagnostics.CodeParse {
		t.Fatalf("parse %q: got code %s, want %s", source, diag.Code, diagnostics.CodeParse)
	}
	return diag
}

func soleExpression(t *testing.T, source string) ast.Expression {
	t.Helper()
	program := parseSource(t, "print "+source+";")
	if len(program.Body) != 1 {
		t.Fatalf("expected one statement, got %d", len(program.Body))
	}
	stmt, ok := program.Body[0].(*ast.PrintStatement)
	if !ok {
		t.Fatalf("expected print statement, got %T", program.Body[0])
	}
	return stmt.Value
}

func binary(t *testing.T, expr ast.Expression, op ast.BinaryOperator) *ast.BinaryExpression {
	t.Helper()
	bin, ok := expr.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expected binary expression, got %T", expr)
	}
	if bin.Operator != op {
		t.Fatalf("expected operator %s, got %s", op, bin.Operator)
	}
	return bin
}

func number(t *testing.T, expr ast.Expression, want float64) {
	t.Helper()
	lit, ok := expr.(*ast.NumberLiteral)
	if !ok {
		t.Fatalf("expected number literal, got %T", expr)
	}
	if lit.Value != want {
		t.Fatalf("expected %g, got %g", want, lit.Value)
	}
}

func TestMultiplicativeBindsTighter(t *testing.T) {
	// 2 + 3 * 4 parses as 2 + (3 * 4).
	add := binary(t, soleExpression(t, "2 + 3 * 4"), ast.OpAdd)
	number(t, add.Left, 2)
	mul := binary(t, add.Right, ast.OpMultiply)
	number(t, mul.Left, 3)
	number(t, mul.Right, 4)
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	// (2 + 3) * 4 parses as (2 + 3) * 4.
	mul := binary(t, soleExpression(t, "(2 + 3) * 4"), ast.OpMultiply)
	add := binary(t, mul.Left, ast.OpAdd)
	number(t, add.Left, 2)
	number(t, add.Right, 3)
	number(t, mul.Right, 4)
}

func TestBinaryLevelsFoldLeft(t *testing.T) {
	// 10 - 4 - 3 parses as (10 - 4) - 3.
	outer := binary(t, soleExpression(t, "10 - 4 - 3"), ast.OpSubtract)
	inner := binary(t, outer.Left, ast.OpSubtract)
	number(t, inner.Left, 10)
	number(t, inner.Right, 4)
	number(t, outer.Right, 3)
}

func TestPrecedenceLadderOrder(t *testing.T) {
	// a || b && c == d < e + f * g nests one level per rung.
	or := binary(t, soleExpression(t, "a || b && c == d < e + f * g"), ast.OpOr)
	and := binary(t, or.Right, ast.OpAnd)
	eq := binary(t, and.Right, ast.OpEqual)
	lt := binary(t, eq.Right, ast.OpLess)
	add := binary(t, lt.Right, ast.OpAdd)
	binary(t, add.Right, ast.OpMultiply)
}

func TestUnaryBindsTighterAndStacks(t *testing.T) {
	// -2 + 3 parses as (-2) + 3.
	add := binary(t, soleExpression(t, "-2 + 3"), ast.OpAdd)
	neg, ok := add.Left.(*ast.UnaryExpression)
	if !ok || neg.Operator != ast.UnaryMinus {
		t.Fatalf("expected unary minus on the left, got %T", add.Left)
	}
	number(t, neg.Operand, 2)

	// --x recurses: minus applied to minus applied to x.
	outer, ok := soleExpression(t, "--x").(*ast.UnaryExpression)
	if !ok {
		t.Fatalf("expected unary expression")
	}
	inner, ok := outer.Operand.(*ast.UnaryExpression)
	if !ok {
		t.Fatalf("expected nested unary expression, got %T", outer.Operand)
	}
	if _, ok := inner.Operand.(*ast.Identifier); !ok {
		t.Fatalf("expected identifier under nested unary, got %T", inner.Operand)
	}
}

func TestVarDeclInitializerOptional(t *testing.T) {
	program := parseSource(t, "var x; var y = 1;")
	bare, ok := program.Body[0].(*ast.VarDecl)
	if !ok || bare.Name.Name != "x" || bare.Initializer != nil {
		t.Fatalf("expected uninitialized declaration of x, got %#v", program.Body[0])
	}
	initialized, ok := program.Body[1].(*ast.VarDecl)
	if !ok || initialized.Name.Name != "y" || initialized.Initializer == nil {
		t.Fatalf("expected initialized declaration of y, got %#v", program.Body[1])
	}
}

func TestDanglingElseBindsToNearestIf(t *testing.T) {
	program := parseSource(t, "if (a) if (b) print 1; else print 2;")
	outer, ok := program.Body[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected if statement, got %T", program.Body[0])
	}
	if outer.Else != nil {
		t.Fatalf("outer if must not own the else branch")
	}
	inner, ok := outer.Then.(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected nested if, got %T", outer.Then)
	}
	if inner.Else == nil {
		t.Fatalf("inner if must own the else branch")
	}
}

func TestBlocksNest(t *testing.T) {
	program := parseSource(t, "{ var x = 1; { print x; } }")
	outer, ok := program.Body[0].(*ast.BlockStatement)
	if !ok {
		t.Fatalf("expected block, got %T", program.Body[0])
	}
	if len(outer.Body) != 2 {
		t.Fatalf("expected two statements in block, got %d", len(outer.Body))
	}
	if _, ok := outer.Body[1].(*ast.BlockStatement); !ok {
		t.Fatalf("expected nested block, got %T", outer.Body[1])
	}
}

func TestWhileBodyIsStatement(t *testing.T) {
	program := parseSource(t, "while (x < 3) x = x + 1;")
	loop, ok := program.Body[0].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("expected while statement, got %T", program.Body[0])
	}
	if _, ok := loop.Body.(*ast.Assignment); !ok {
		t.Fatalf("expected assignment body, got %T", loop.Body)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"var x = 1":                  "';'",
		"x = 1":                      "';'",
		"print 1":                    "';'",
		"var = 1;":                   "variable name",
		"if x > 1 print x;":          "'('",
		"if (x > 1 print x;":         "')'",
		"while (1) { print 1;":       "'}'",
		"(1 + 2;":                    "expected statement",
		"print (1 + 2;":              "')'",
		"print ;":                    "expected expression",
		"var x = 1; else print 2;":   "expected statement",
		"print 1 + * 2;":             "expected expression",
		"":                           "expected statement",
		"var x = 5; while (x < 10)":  "expected statement",
	}
	for source, fragment := range cases {
		diag := parseError(t, source)
		if !strings.Contains(diag.Message, fragment) {
			t.Fatalf("parse %q: message %q does not mention %q", source, diag.Message, fragment)
		}
		if diag.Span == nil {
			t.Fatalf("parse %q: diagnostic missing position", source)
		}
	}
}

func TestParseErrorPosition(t *testing.T) {
	diag := parseError(t, "var x = 1;\nprint x")
	if diag.Span.Start.Line != 2 {
		t.Fatalf("expected error on line 2, got line %d", diag.Span.Start.Line)
	}
}

func TestNestingDepthBounded(t *testing.T) {
	deep := strings.Repeat("(", maxNestingDepth+1) + "1" + strings.Repeat(")", maxNestingDepth+1)
	parseError(t, "print "+deep+";")

	shallow := strings.Repeat("(", 16) + "1" + strings.Repeat(")", 16)
	parseSource(t, "print "+shallow+";")
}

func TestSpansAnnotated(t *testing.T) {
	program := parseSource(t, "var x = 1;\nprint x;")
	decl := program.Body[0].(*ast.VarDecl)
	if decl.Span().Start.Line != 1 || decl.Span().Start.Column != 1 {
		t.Fatalf("declaration span starts at %v", decl.Span().Start)
	}
	stmt := program.Body[1].(*ast.PrintStatement)
	if stmt.Span().Start.Line != 2 {
		t.Fatalf("print span starts at %v", stmt.Span().Start)
	}
	if id, ok := stmt.Value.(*ast.Identifier); !ok || id.Span().Start.Column != 7 {
		t.Fatalf("identifier span should start at column 7, got %v", stmt.Value.Span().Start)
	}
}
