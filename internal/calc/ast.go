package calc

import (
	"strings"

	"github.com/atinylittleshell/qalc/internal/calc/lexer"
)

// Node is an expression in the parsed tree.
type Node interface {
	Pos() int
	String() string
}

// NumberLiteral is a numeric constant.
type NumberLiteral struct {
	Token lexer.Token
	Value float64
}

func (n *NumberLiteral) Pos() int       { return n.Token.Pos }
func (n *NumberLiteral) String() string { return n.Token.Literal }

// Identifier names a constant or a function.
type Identifier struct {
	Token lexer.Token
	Name  string
}

func (i *Identifier) Pos() int       { return i.Token.Pos }
func (i *Identifier) String() string { return i.Name }

// UnaryExpression is a prefix sign.
type UnaryExpression struct {
	Token    lexer.Token
	Operator string
	Right    Node
}

func (u *UnaryExpression) Pos() int { return u.Token.Pos }
func (u *UnaryExpression) String() string {
	return "(" + u.Operator + u.Right.String() + ")"
}

// BinaryExpression is an infix operation.
type BinaryExpression struct {
	Token    lexer.Token
	Operator string
	Left     Node
	Right    Node
}

func (b *BinaryExpression) Pos() int { return b.Token.Pos }
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// CallExpression applies a function to arguments.
type CallExpression struct {
	Token     lexer.Token
	Function  Node
	Arguments []Node
}

func (c *CallExpression) Pos() int { return c.Token.Pos }
func (c *CallExpression) String() string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = a.String()
	}
	return c.Function.String() + "(" + strings.Join(args, ", ") + ")"
}
