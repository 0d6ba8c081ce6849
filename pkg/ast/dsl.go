package ast

// Terse constructors used by tests and fixtures.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Num(value float64) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Unary(operator UnaryOperator, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

func Bin(operator BinaryOperator, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Var(name string, initializer Expression) *VarDecl {
	return NewVarDecl(ID(name), initializer)
}

func Assign(name string, value Expression) *Assignment {
	return NewAssignment(ID(name), value)
}

func If(condition Expression, then Statement) *IfStatement {
	return NewIfStatement(condition, then, nil)
}

func IfElse(condition Expression, then, elseBranch Statement) *IfStatement {
	return NewIfStatement(condition, then, elseBranch)
}

func While(condition Expression, body Statement) *WhileStatement {
	return NewWhileStatement(condition, body)
}

func Print(value Expression) *PrintStatement {
	return NewPrintStatement(value)
}

func Block(statements ...Statement) *BlockStatement {
	return NewBlockStatement(statements)
}

func Prog(statements ...Statement) *Program {
	return NewProgram(statements)
}
