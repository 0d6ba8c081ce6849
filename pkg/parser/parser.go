// Package parser builds the AST from a token stream by recursive descent,
// one method per grammar rule.
package parser

import (
	"strconv"

	"imp/interpreter-go/pkg/ast"
	"imp/interpreter-go/pkg/diagnostics"
	"imp/interpreter-go/pkg/token"
)

// maxNestingDepth bounds statement and expression nesting so adversarial
// input cannot exhaust the goroutine stack.
const maxNestingDepth = 256

// Parser consumes a token stream exactly once, front to back. The stream must
// end with an EOF token, as produced by lexer.Lex.
type Parser struct {
	tokens []token.Token
	pos    int
	depth  int
}

// New wraps a token stream in a parser.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse builds the program AST. Parsing stops at the first grammar violation;
// the returned error carries the offending token's position.
func Parse(tokens []token.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

// ParseProgram parses statement+ terminated by end of input.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	start := p.current()
	var body []ast.Statement
	for !p.check(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if len(body) == 0 {
		return nil, p.errorAt(p.current(), "expected statement, found %s", p.current())
	}
	program := ast.NewProgram(body)
	p.annotate(program, start)
	return program, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.current().Type {
	case token.Var:
		return p.parseVarDecl()
	case token.Identifier:
		return p.parseAssignment()
	case token.If:
		return p.parseIfStatement()
	case token.While:
		return p.parseWhileStatement()
	case token.Print:
		return p.parsePrintStatement()
	case token.LBrace:
		return p.parseBlock()
	default:
		return nil, p.errorAt(p.current(), "expected statement, found %s", p.current())
	}
}

// parseVarDecl parses `var IDENTIFIER ('=' expression)? ';'`.
func (p *Parser) parseVarDecl() (ast.Statement, error) {
	start := p.advance() // var
	nameTok, err := p.expect(token.Identifier, "variable name in declaration")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expression
	if p.match(token.Assign) {
		initializer, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semicolon, "';' after declaration"); err != nil {
		return nil, err
	}

	decl := ast.NewVarDecl(p.identifier(nameTok), initializer)
	p.annotate(decl, start)
	return decl, nil
}

// parseAssignment parses `IDENTIFIER '=' expression ';'`.
func (p *Parser) parseAssignment() (ast.Statement, error) {
	nameTok := p.advance()
	if _, err := p.expect(token.Assign, "'=' in assignment"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon, "';' after assignment"); err != nil {
		return nil, err
	}

	assign := ast.NewAssignment(p.identifier(nameTok), value)
	p.annotate(assign, nameTok)
	return assign, nil
}

// parseIfStatement parses `if '(' expression ')' statement ('else' statement)?`.
// A dangling else binds to the nearest preceding if: the recursive call for
// the then-branch consumes the else itself when one follows it.
func (p *Parser) parseIfStatement() (ast.Statement, error) {
	start := p.advance() // if
	if _, err := p.expect(token.LParen, "'(' after 'if'"); err != nil {
		return nil, err
	}
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen, "')' after condition"); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	var elseBranch ast.Statement
	if p.match(token.Else) {
		elseBranch, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}

	stmt := ast.NewIfStatement(condition, then, elseBranch)
	p.annotate(stmt, start)
	return stmt, nil
}

// parseWhileStatement parses `while '(' expression ')' statement`.
func (p *Parser) parseWhileStatement() (ast.Statement, error) {
	start := p.advance() // while
	if _, err := p.expect(token.LParen, "'(' after 'while'"); err != nil {
		return nil, err
	}
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen, "')' after condition"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	stmt := ast.NewWhileStatement(condition, body)
	p.annotate(stmt, start)
	return stmt, nil
}

// parsePrintStatement parses `print expression ';'`.
func (p *Parser) parsePrintStatement() (ast.Statement, error) {
	start := p.advance() // print
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon, "';' after print"); err != nil {
		return nil, err
	}

	stmt := ast.NewPrintStatement(value)
	p.annotate(stmt, start)
	return stmt, nil
}

// parseBlock parses `'{' statement* '}'`.
func (p *Parser) parseBlock() (ast.Statement, error) {
	start := p.advance() // {
	var body []ast.Statement
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if _, err := p.expect(token.RBrace, "'}' to end block"); err != nil {
		return nil, err
	}

	block := ast.NewBlockStatement(body)
	p.annotate(block, start)
	return block, nil
}

// Expression precedence ladder, lowest binding first. Every binary level
// folds left.

func (p *Parser) parseExpression() (ast.Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseLogicalAnd, map[token.Type]ast.BinaryOperator{
		token.OrOr: ast.OpOr,
	})
}

func (p *Parser) parseLogicalAnd() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseEquality, map[token.Type]ast.BinaryOperator{
		token.AndAnd: ast.OpAnd,
	})
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseRelational, map[token.Type]ast.BinaryOperator{
		token.EqEq:  ast.OpEqual,
		token.NotEq: ast.OpNotEqual,
	})
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseAdditive, map[token.Type]ast.BinaryOperator{
		token.Less:      ast.OpLess,
		token.Greater:   ast.OpGreater,
		token.LessEq:    ast.OpLessEqual,
		token.GreaterEq: ast.OpGreaterEqual,
	})
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseMultiplicative, map[token.Type]ast.BinaryOperator{
		token.Plus:  ast.OpAdd,
		token.Minus: ast.OpSubtract,
	})
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parsePrimary, map[token.Type]ast.BinaryOperator{
		token.Star:  ast.OpMultiply,
		token.Slash: ast.OpDivide,
	})
}

func (p *Parser) parseBinaryLevel(next func() (ast.Expression, error), operators map[token.Type]ast.BinaryOperator) (ast.Expression, error) {
	start := p.current()
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := operators[p.current().Type]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpression(op, left, right)
		p.annotate(left, start)
	}
}

// parsePrimary parses `NUMBER | IDENTIFIER | '(' expression ')' | ('+'|'-') primary`.
// Unary sign recurses into primary, so it binds tighter than any binary
// operator and stacks right-associatively.
func (p *Parser) parsePrimary() (ast.Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok := p.current()
	switch tok.Type {
	case token.Number:
		p.advance()
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errorAt(tok, "malformed number literal %q", tok.Lexeme)
		}
		lit := ast.NewNumberLiteral(value)
		p.annotate(lit, tok)
		return lit, nil
	case token.Identifier:
		p.advance()
		return p.identifier(tok), nil
	case token.LParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen, "')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	case token.Plus, token.Minus:
		p.advance()
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		op := ast.UnaryPlus
		if tok.Type == token.Minus {
			op = ast.UnaryMinus
		}
		expr := ast.NewUnaryExpression(op, operand)
		p.annotate(expr, tok)
		return expr, nil
	default:
		return nil, p.errorAt(tok, "expected expression, found %s", tok)
	}
}

// Token stream helpers.

func (p *Parser) current() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return token.Token{Type: token.EOF}
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(typ token.Type) bool {
	return p.current().Type == typ
}

func (p *Parser) match(typ token.Type) bool {
	if p.check(typ) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(typ token.Type, expected string) (token.Token, error) {
	if p.check(typ) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAt(p.current(), "expected %s, found %s", expected, p.current())
}

func (p *Parser) previous() token.Token {
	if p.pos == 0 {
		return p.current()
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxNestingDepth {
		return p.errorAt(p.current(), "nesting exceeds %d levels", maxNestingDepth)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) identifier(tok token.Token) *ast.Identifier {
	id := ast.NewIdentifier(tok.Lexeme)
	p.annotate(id, tok)
	return id
}

// annotate spans the node from the start token through the last consumed one.
func (p *Parser) annotate(node ast.Node, start token.Token) {
	end := p.previous()
	ast.SetSpan(node, ast.Span{
		Start: ast.Position{Line: start.Line, Column: start.Column},
		End:   ast.Position{Line: end.Line, Column: end.Column + len(end.Lexeme)},
	})
}

func (p *Parser) errorAt(tok token.Token, format string, args ...interface{}) error {
	return diagnostics.Newf(diagnostics.CodeParse, format, args...).At(diagnostics.SpanAt(tok.Line, tok.Column))
}
