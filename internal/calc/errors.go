package calc

import (
	"errors"
	"fmt"
)

// Kind classifies an evaluation failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindParen
	KindUnknownName
	KindDivideByZero
	KindSyntax
	KindMath
	KindOperand
	KindNumber
)

// messages are the short texts shown in place of a result.
var messages = map[Kind]string{
	KindUnknown:      "Can't calculate.",
	KindParen:        "Missing parenthesis.",
	KindUnknownName:  "Unknown name.",
	KindDivideByZero: "Divide by zero.",
	KindSyntax:       "Syntax error.",
	KindMath:         "Math error.",
	KindOperand:      "Bad operator or value.",
	KindNumber:       "Bad number.",
}

// Message returns the user-facing message for the kind.
func (k Kind) Message() string {
	if msg, ok := messages[k]; ok {
		return msg
	}
	return messages[KindUnknown]
}

func (k Kind) String() string {
	switch k {
	case KindParen:
		return "paren"
	case KindUnknownName:
		return "unknown-name"
	case KindDivideByZero:
		return "divide-by-zero"
	case KindSyntax:
		return "syntax"
	case KindMath:
		return "math"
	case KindOperand:
		return "operand"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Error is an evaluation failure. Detail is for logs; Kind decides what the
// user sees.
type Error struct {
	Kind   Kind
	Detail string
	Pos    int
	// Name is set for KindUnknownName failures.
	Name string
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d: %s", e.Kind, e.Pos, e.Detail)
}

func newError(kind Kind, pos int, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Pos:    pos,
		Detail: fmt.Sprintf(format, args...),
	}
}

// KindOf returns the failure kind of err, or KindUnknown when err is not an
// evaluation error.
func KindOf(err error) Kind {
	var calcErr *Error
	if errors.As(err, &calcErr) {
		return calcErr.Kind
	}
	return KindUnknown
}

// Message maps any evaluation error to exactly one user-facing message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return KindOf(err).Message()
}

// UnknownName returns the offending identifier when err is an unknown-name
// failure.
func UnknownName(err error) (string, bool) {
	var calcErr *Error
	if errors.As(err, &calcErr) && calcErr.Kind == KindUnknownName {
		return calcErr.Name, true
	}
	return "", false
}
