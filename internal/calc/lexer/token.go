package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers and literals
	IDENT  // sqrt, pi, ans
	NUMBER // 123, 45.67, 1e-3

	// Operators
	OP_PLUS     // +
	OP_MINUS    // -
	OP_ASTERISK // *
	OP_SLASH    // /
	OP_FLOORDIV // //
	OP_PERCENT  // %
	OP_CARET    // ^
	OP_POWER    // **

	// Delimiters
	COMMA  // ,
	LPAREN // (
	RPAREN // )
)

var tokenTypeNames = [...]string{
	ILLEGAL:     "ILLEGAL",
	EOF:         "EOF",
	IDENT:       "IDENT",
	NUMBER:      "NUMBER",
	OP_PLUS:     "OP_PLUS",
	OP_MINUS:    "OP_MINUS",
	OP_ASTERISK: "OP_ASTERISK",
	OP_SLASH:    "OP_SLASH",
	OP_FLOORDIV: "OP_FLOORDIV",
	OP_PERCENT:  "OP_PERCENT",
	OP_CARET:    "OP_CARET",
	OP_POWER:    "OP_POWER",
	COMMA:       "COMMA",
	LPAREN:      "LPAREN",
	RPAREN:      "RPAREN",
}

// String implements fmt.Stringer for TokenType.
func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenTypeNames) {
		if name := tokenTypeNames[t]; name != "" {
			return name
		}
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// IsOperator reports whether the token is one of the four operators that can
// introduce a percent suffix (+, -, *, /).
func (t TokenType) IsOperator() bool {
	switch t {
	case OP_PLUS, OP_MINUS, OP_ASTERISK, OP_SLASH:
		return true
	}
	return false
}

// Token represents a lexical token. Pos and End are byte offsets into the
// source so callers can recover the exact text span, including whitespace
// between tokens.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
	End     int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Type, t.Literal, t.Pos)
}
