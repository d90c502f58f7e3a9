package lexer

import (
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `sqrt(16) + 2**3 - 7//2 * 1.5e-3 / .5 % 3 ^ ans, max`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{IDENT, "sqrt"},
		{LPAREN, "("},
		{NUMBER, "16"},
		{RPAREN, ")"},
		{OP_PLUS, "+"},
		{NUMBER, "2"},
		{OP_POWER, "**"},
		{NUMBER, "3"},
		{OP_MINUS, "-"},
		{NUMBER, "7"},
		{OP_FLOORDIV, "//"},
		{NUMBER, "2"},
		{OP_ASTERISK, "*"},
		{NUMBER, "1.5e-3"},
		{OP_SLASH, "/"},
		{NUMBER, ".5"},
		{OP_PERCENT, "%"},
		{NUMBER, "3"},
		{OP_CARET, "^"},
		{IDENT, "ans"},
		{COMMA, ","},
		{IDENT, "max"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestTokenPositions(t *testing.T) {
	tokens := Tokenize("12 +  3.5%")

	want := []Token{
		{Type: NUMBER, Literal: "12", Pos: 0, End: 2},
		{Type: OP_PLUS, Literal: "+", Pos: 3, End: 4},
		{Type: NUMBER, Literal: "3.5", Pos: 6, End: 9},
		{Type: OP_PERCENT, Literal: "%", Pos: 9, End: 10},
		{Type: EOF, Pos: 10, End: 10},
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v", i, want[i], tokens[i])
		}
	}
}

func TestNumberExponentEdgeCases(t *testing.T) {
	tests := []struct {
		input string
		types []TokenType
	}{
		{"2e", []TokenType{NUMBER, IDENT, EOF}},
		{"2e5", []TokenType{NUMBER, EOF}},
		{"2e+", []TokenType{NUMBER, IDENT, OP_PLUS, EOF}},
		{"1e+21", []TokenType{NUMBER, EOF}},
		{"3.", []TokenType{NUMBER, EOF}},
		{"$", []TokenType{ILLEGAL, EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if len(tokens) != len(tt.types) {
				t.Fatalf("expected %d tokens, got %v", len(tt.types), tokens)
			}
			for i, typ := range tt.types {
				if tokens[i].Type != typ {
					t.Errorf("token %d: expected %s, got %s", i, typ, tokens[i].Type)
				}
			}
		})
	}
}

func TestIsPlainDecimal(t *testing.T) {
	tests := map[string]bool{
		"10":    true,
		"10.5":  true,
		"0.25":  true,
		"10.":   false,
		".5":    false,
		"1e5":   false,
		"":      false,
		"1.2.3": false,
	}
	for input, want := range tests {
		if got := IsPlainDecimal(input); got != want {
			t.Errorf("IsPlainDecimal(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	if OP_POWER.String() != "OP_POWER" {
		t.Errorf("unexpected name %q", OP_POWER.String())
	}
	if TokenType(99).String() != "TokenType(99)" {
		t.Errorf("unexpected name %q", TokenType(99).String())
	}
}
