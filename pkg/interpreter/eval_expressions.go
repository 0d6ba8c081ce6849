package interpreter

import (
	"fmt"

	"imp/interpreter-go/pkg/ast"
	"imp/interpreter-go/pkg/diagnostics"
	"imp/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.Identifier:
		val, err := env.Get(n.Name)
		if err != nil {
			return nil, withSpan(err, n.Span())
		}
		return val, nil
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	num, ok := operand.(runtime.NumberValue)
	if !ok {
		return nil, diagnostics.Newf(diagnostics.CodeType,
			"unary '%s' requires a number, got %s", expr.Operator, operand.Kind()).At(expr.Span())
	}
	if expr.Operator == ast.UnaryMinus {
		return runtime.NumberValue{Val: -num.Val}, nil
	}
	return num, nil
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	// Logical operators short-circuit: the right operand is not evaluated
	// when the left already determines the result.
	switch expr.Operator {
	case ast.OpAnd:
		left, err := i.evaluateExpression(expr.Left, env)
		if err != nil {
			return nil, err
		}
		if !isTruthy(left) {
			return runtime.BoolValue{Val: false}, nil
		}
		right, err := i.evaluateExpression(expr.Right, env)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: isTruthy(right)}, nil
	case ast.OpOr:
		left, err := i.evaluateExpression(expr.Left, env)
		if err != nil {
			return nil, err
		}
		if isTruthy(left) {
			return runtime.BoolValue{Val: true}, nil
		}
		right, err := i.evaluateExpression(expr.Right, env)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: isTruthy(right)}, nil
	}

	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Operator {
	case ast.OpEqual:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case ast.OpNotEqual:
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	}

	// Arithmetic and relational operators require numeric operands.
	l, r, err := i.numericOperands(expr, left, right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator {
	case ast.OpAdd:
		return runtime.NumberValue{Val: l + r}, nil
	case ast.OpSubtract:
		return runtime.NumberValue{Val: l - r}, nil
	case ast.OpMultiply:
		return runtime.NumberValue{Val: l * r}, nil
	case ast.OpDivide:
		if r == 0 {
			return nil, diagnostics.New(diagnostics.CodeDivisionByZero, "division by zero").At(expr.Span())
		}
		return runtime.NumberValue{Val: l / r}, nil
	case ast.OpLess:
		return runtime.BoolValue{Val: l < r}, nil
	case ast.OpGreater:
		return runtime.BoolValue{Val: l > r}, nil
	case ast.OpLessEqual:
		return runtime.BoolValue{Val: l <= r}, nil
	case ast.OpGreaterEqual:
		return runtime.BoolValue{Val: l >= r}, nil
	default:
		return nil, fmt.Errorf("unsupported binary operator: %s", expr.Operator)
	}
}

func (i *Interpreter) numericOperands(expr *ast.BinaryExpression, left, right runtime.Value) (float64, float64, error) {
	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		offending := left.Kind()
		if lok {
			offending = right.Kind()
		}
		return 0, 0, diagnostics.Newf(diagnostics.CodeType,
			"operator '%s' requires numbers, got %s", expr.Operator, offending).At(expr.Span())
	}
	return l.Val, r.Val, nil
}
