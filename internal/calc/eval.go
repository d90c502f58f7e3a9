// Package calc rewrites and evaluates calculator expressions.
//
// Input goes through two stages. Rewrite substitutes the last answer and
// expands percent suffixes into plain arithmetic; Evaluate parses the result
// with a Pratt parser over a closed grammar and computes it against a fixed
// table of constants and functions. Every failure is an *Error whose Kind
// maps to one short message.
package calc

import (
	"errors"
	"math"
	"strconv"
)

// Evaluate parses and computes a rewritten expression.
func Evaluate(input string) (float64, error) {
	node, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return Eval(node)
}

// Calculate runs the full pipeline: Rewrite, then Evaluate.
func Calculate(expr string, lastAnswer float64) (float64, error) {
	return Evaluate(Rewrite(expr, lastAnswer))
}

// Eval computes a parsed expression.
func Eval(node Node) (float64, error) {
	switch n := node.(type) {
	case *NumberLiteral:
		return n.Value, nil

	case *Identifier:
		return evalIdentifier(n)

	case *UnaryExpression:
		right, err := Eval(n.Right)
		if err != nil {
			return 0, err
		}
		if n.Operator == "-" {
			return -right, nil
		}
		return right, nil

	case *BinaryExpression:
		return evalBinary(n)

	case *CallExpression:
		return evalCall(n)

	default:
		return 0, newError(KindUnknown, 0, "unsupported node %T", node)
	}
}

func evalIdentifier(n *Identifier) (float64, error) {
	if value, ok := Constants[n.Name]; ok {
		return value, nil
	}
	if _, ok := Functions[n.Name]; ok {
		return 0, newError(KindOperand, n.Pos(), "function %s used as a value", n.Name)
	}
	return 0, unknownName(n)
}

func unknownName(n *Identifier) *Error {
	err := newError(KindUnknownName, n.Pos(), "name %q is not defined", n.Name)
	err.Name = n.Name
	return err
}

func evalBinary(n *BinaryExpression) (float64, error) {
	left, err := Eval(n.Left)
	if err != nil {
		return 0, err
	}
	right, err := Eval(n.Right)
	if err != nil {
		return 0, err
	}

	var result float64
	switch n.Operator {
	case "+":
		result = left + right
	case "-":
		result = left - right
	case "*":
		result = left * right
	case "/":
		if right == 0 {
			return 0, newError(KindDivideByZero, n.Pos(), "division by zero")
		}
		result = left / right
	case "//":
		if right == 0 {
			return 0, newError(KindDivideByZero, n.Pos(), "integer division by zero")
		}
		result = floorDiv(left, right)
	case "%":
		if right == 0 {
			return 0, newError(KindDivideByZero, n.Pos(), "modulo by zero")
		}
		result = floorMod(left, right)
	case "^":
		result, err = power(left, right)
		if err != nil {
			return 0, withPos(err, n.Pos())
		}
	default:
		return 0, newError(KindOperand, n.Pos(), "unsupported operator %q", n.Operator)
	}

	if err := checkFinite(result, n.Pos(), left, right); err != nil {
		return 0, err
	}
	return result, nil
}

func evalCall(n *CallExpression) (float64, error) {
	ident, ok := n.Function.(*Identifier)
	if !ok {
		return 0, newError(KindOperand, n.Pos(), "%s is not callable", n.Function.String())
	}

	fn, ok := Functions[ident.Name]
	if !ok {
		if _, isConst := Constants[ident.Name]; isConst {
			return 0, newError(KindOperand, n.Pos(), "%s is not callable", ident.Name)
		}
		return 0, unknownName(ident)
	}

	args := make([]float64, len(n.Arguments))
	for i, a := range n.Arguments {
		v, err := Eval(a)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}

	argc := len(args)
	if argc < fn.MinArgs || (fn.MaxArgs >= 0 && argc > fn.MaxArgs) {
		return 0, newError(KindOperand, n.Pos(), "%s takes %s, got %d", fn.Name, arity(fn), argc)
	}

	result, err := fn.Call(args)
	if err != nil {
		return 0, withPos(err, n.Pos())
	}
	if err := checkFinite(result, n.Pos(), args...); err != nil {
		return 0, err
	}
	return result, nil
}

// power follows float semantics except that zero to a negative power is a
// division by zero.
func power(base, exp float64) (float64, error) {
	if base == 0 && exp < 0 {
		return 0, newError(KindDivideByZero, 0, "0 cannot be raised to a negative power")
	}
	return math.Pow(base, exp), nil
}

// floorMod takes the sign of the divisor.
// floorDiv derives the quotient from the remainder so that a == q*b + r
// holds with floorMod's r. Dividing first and flooring can round up past
// the true quotient (28 // 0.1 is 279, not 280).
func floorDiv(a, b float64) float64 {
	r := math.Mod(a, b)
	q := (a - r) / b
	if r != 0 && (r < 0) != (b < 0) {
		q--
	}
	if q == 0 {
		return math.Copysign(0, a/b)
	}
	f := math.Floor(q)
	if q-f > 0.5 {
		f++
	}
	return f
}

func floorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// checkFinite reports a math error when finite inputs produce a non-finite
// result. Non-finite inputs (inf, nan) propagate unchanged.
func checkFinite(result float64, pos int, inputs ...float64) error {
	if !math.IsNaN(result) && !math.IsInf(result, 0) {
		return nil
	}
	for _, in := range inputs {
		if math.IsNaN(in) || math.IsInf(in, 0) {
			return nil
		}
	}
	if math.IsNaN(result) {
		return newError(KindMath, pos, "math domain error")
	}
	return newError(KindMath, pos, "result too large")
}

func withPos(err error, pos int) error {
	var calcErr *Error
	if errors.As(err, &calcErr) && calcErr.Pos == 0 {
		calcErr.Pos = pos
	}
	return err
}

func arity(fn Function) string {
	switch {
	case fn.MaxArgs < 0:
		return "at least " + strconv.Itoa(fn.MinArgs) + " arguments"
	case fn.MinArgs == fn.MaxArgs && fn.MinArgs == 1:
		return "1 argument"
	case fn.MinArgs == fn.MaxArgs:
		return strconv.Itoa(fn.MinArgs) + " arguments"
	default:
		return strconv.Itoa(fn.MinArgs) + " to " + strconv.Itoa(fn.MaxArgs) + " arguments"
	}
}
