package calc

import (
	"errors"
	"strconv"

	"github.com/atinylittleshell/qalc/internal/calc/lexer"
)

// maxDepth bounds expression nesting so pathological input cannot exhaust
// the stack.
const maxDepth = 256

// Operator precedence levels
const (
	_ int = iota
	LOWEST
	SUM     // + -
	PRODUCT // * / // %
	PREFIX  // -X or +X
	POWER   // ^ **
	CALL    // fn(X)
)

var precedences = map[lexer.TokenType]int{
	lexer.OP_PLUS:     SUM,
	lexer.OP_MINUS:    SUM,
	lexer.OP_ASTERISK: PRODUCT,
	lexer.OP_SLASH:    PRODUCT,
	lexer.OP_FLOORDIV: PRODUCT,
	lexer.OP_PERCENT:  PRODUCT,
	lexer.OP_CARET:    POWER,
	lexer.OP_POWER:    POWER,
	lexer.LPAREN:      CALL,
}

type (
	prefixParseFn func() Node
	infixParseFn  func(Node) Node
)

// Parser is a Pratt parser over the closed calculator grammar. It stops at
// the first error.
type Parser struct {
	l   *lexer.Lexer
	err *Error

	curToken  lexer.Token
	peekToken lexer.Token
	depth     int
	open      int // parentheses opened and not yet closed

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// NewParser creates a parser reading from l.
func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:    p.parseIdentifier,
		lexer.NUMBER:   p.parseNumberLiteral,
		lexer.OP_MINUS: p.parseUnaryExpression,
		lexer.OP_PLUS:  p.parseUnaryExpression,
		lexer.LPAREN:   p.parseGroupedExpression,
	}

	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.OP_PLUS:     p.parseBinaryExpression,
		lexer.OP_MINUS:    p.parseBinaryExpression,
		lexer.OP_ASTERISK: p.parseBinaryExpression,
		lexer.OP_SLASH:    p.parseBinaryExpression,
		lexer.OP_FLOORDIV: p.parseBinaryExpression,
		lexer.OP_PERCENT:  p.parseBinaryExpression,
		lexer.OP_CARET:    p.parsePowerExpression,
		lexer.OP_POWER:    p.parsePowerExpression,
		lexer.LPAREN:      p.parseCallExpression,
	}

	// Read two tokens to set both curToken and peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// Parse parses a complete expression. Unbalanced parentheses are reported
// before any other syntax error.
func Parse(input string) (Node, error) {
	if err := checkParens(lexer.Tokenize(input)); err != nil {
		return nil, err
	}
	return NewParser(lexer.New(input)).ParseExpression()
}

func checkParens(tokens []lexer.Token) error {
	var open []int
	for _, tok := range tokens {
		switch tok.Type {
		case lexer.LPAREN:
			open = append(open, tok.Pos)
		case lexer.RPAREN:
			if len(open) == 0 {
				return newError(KindParen, tok.Pos, "unmatched ')'")
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return newError(KindParen, open[len(open)-1], "'(' was never closed")
	}
	return nil
}

// ParseExpression parses the whole input as one expression.
func (p *Parser) ParseExpression() (Node, error) {
	if p.curTokenIs(lexer.EOF) {
		return nil, newError(KindSyntax, p.curToken.Pos, "empty expression")
	}

	node := p.parseExpression(LOWEST)
	if p.err != nil {
		return nil, p.err
	}

	if !p.peekTokenIs(lexer.EOF) {
		if p.peekTokenIs(lexer.RPAREN) {
			return nil, newError(KindParen, p.peekToken.Pos, "unmatched ')'")
		}
		return nil, newError(KindSyntax, p.peekToken.Pos, "unexpected %s", p.peekToken.Type)
	}

	return node, nil
}

// nextToken advances the parser to the next token
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) fail(kind Kind, pos int, format string, args ...any) Node {
	if p.err == nil {
		p.err = newError(kind, pos, format, args...)
	}
	return nil
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

// expectClose advances past a closing parenthesis. Running out of input is
// a missing parenthesis; anything else is a syntax error.
func (p *Parser) expectClose() bool {
	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		p.open--
		return true
	}
	if p.peekTokenIs(lexer.EOF) {
		p.fail(KindParen, p.peekToken.Pos, "'(' was never closed")
	} else {
		p.fail(KindSyntax, p.peekToken.Pos, "expected ')', got %s", p.peekToken.Type)
	}
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// parseExpression parses an expression with operator precedence
func (p *Parser) parseExpression(precedence int) Node {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return p.fail(KindUnknown, p.curToken.Pos, "expression nested too deeply")
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		return p.noPrefix()
	}
	left := prefix()

	for p.err == nil && !p.peekTokenIs(lexer.EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	if p.err != nil {
		return nil
	}
	return left
}

func (p *Parser) noPrefix() Node {
	switch p.curToken.Type {
	case lexer.RPAREN:
		return p.fail(KindSyntax, p.curToken.Pos, "unexpected ')'")
	case lexer.EOF:
		if p.open > 0 {
			return p.fail(KindParen, p.curToken.Pos, "'(' was never closed")
		}
		return p.fail(KindSyntax, p.curToken.Pos, "unexpected end of input")
	default:
		return p.fail(KindSyntax, p.curToken.Pos, "unexpected %s %q", p.curToken.Type, p.curToken.Literal)
	}
}

func (p *Parser) parseIdentifier() Node {
	return &Identifier{Token: p.curToken, Name: p.curToken.Literal}
}

func (p *Parser) parseNumberLiteral() Node {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return p.fail(KindNumber, p.curToken.Pos, "%q is out of range", p.curToken.Literal)
		}
		return p.fail(KindNumber, p.curToken.Pos, "could not parse %q as number", p.curToken.Literal)
	}
	return &NumberLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseUnaryExpression() Node {
	expression := &UnaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
	}

	p.nextToken()

	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseBinaryExpression(left Node) Node {
	expression := &BinaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parsePowerExpression is right-associative and binds tighter than a
// leading sign, so -2^2 is -(2^2) and 2^-1 is 2^(-1).
func (p *Parser) parsePowerExpression(left Node) Node {
	expression := &BinaryExpression{
		Token:    p.curToken,
		Operator: "^",
		Left:     left,
	}

	p.nextToken()
	expression.Right = p.parseExpression(POWER - 1)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseGroupedExpression() Node {
	open := p.curToken
	p.open++
	p.nextToken()

	if p.curTokenIs(lexer.EOF) {
		return p.fail(KindParen, open.Pos, "'(' was never closed")
	}

	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}

	if !p.expectClose() {
		return nil
	}

	return exp
}

func (p *Parser) parseCallExpression(function Node) Node {
	exp := &CallExpression{Token: p.curToken, Function: function}

	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return exp
	}

	p.open++

	p.nextToken()
	if p.curTokenIs(lexer.EOF) {
		return p.fail(KindParen, exp.Token.Pos, "'(' was never closed")
	}

	for {
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		exp.Arguments = append(exp.Arguments, arg)

		if !p.peekTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken()
		p.nextToken()
		if p.curTokenIs(lexer.EOF) {
			return p.fail(KindParen, exp.Token.Pos, "'(' was never closed")
		}
	}

	if !p.expectClose() {
		return nil
	}

	return exp
}
