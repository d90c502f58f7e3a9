package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewrite(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		lastAnswer float64
		want       string
	}{
		{
			name:  "no rewriting",
			input: "1 + 2",
			want:  "1 + 2",
		},
		{
			name:       "answer substitution",
			input:      "ans*2",
			lastAnswer: 21,
			want:       "21*2",
		},
		{
			name:       "answer substitution inside identifiers",
			input:      "answer+ans",
			lastAnswer: 3,
			want:       "3wer+3",
		},
		{
			name:  "percent added",
			input: "100+10%",
			want:  "100+((10/100)*100)",
		},
		{
			name:  "percent subtracted",
			input: "100-10%",
			want:  "100-((10/100)*100)",
		},
		{
			name:  "percent multiplied",
			input: "100*10%",
			want:  "100*(10/100)",
		},
		{
			name:  "percent divided",
			input: "100/10%",
			want:  "100/( 10/100)",
		},
		{
			name:  "whitespace between operator and number",
			input: "200 +  5%",
			want:  "200 +((5/100)*200)",
		},
		{
			name:  "signed exponent before percent",
			input: "52e-6%7",
			want:  "52e-((6/100)*0)7",
		},
		{
			name:  "exponent without sign is left alone",
			input: "1e5%2",
			want:  "1e5%2",
		},
		{
			name:  "decimal operands",
			input: "12.5+2.5%",
			want:  "12.5+((2.5/100)*12.5)",
		},
		{
			name:  "balanced group operand",
			input: "(2+3)+10%",
			want:  "(2+3)+((10/100)*(2+3))",
		},
		{
			name:  "nested group operand",
			input: "2*((1+1)*(3))+50%",
			want:  "2*((1+1)*(3))+((50/100)*((1+1)*(3)))",
		},
		{
			name:  "only the immediately preceding literal",
			input: "2+3+10%",
			want:  "2+3+((10/100)*3)",
		},
		{
			name:       "no operand falls back to last answer",
			input:      "-10%",
			lastAnswer: 50,
			want:       "-((10/100)*50)",
		},
		{
			name:       "chained percent reads the original text",
			input:      "100+10%+10%",
			lastAnswer: 7,
			want:       "100+((10/100)*100)+((10/100)*7)",
		},
		{
			name:  "leading bare percent",
			input: "50%",
			want:  "(50/100)",
		},
		{
			name:       "leading bare percent with suffix",
			input:      "5%+10%",
			lastAnswer: 2,
			want:       "(5/100)+((10/100)*2)",
		},
		{
			name:  "leading whitespace disables bare percent",
			input: " 50%",
			want:  " 50%",
		},
		{
			name:  "space before percent is not a suffix",
			input: "100+10 %",
			want:  "100+10 %",
		},
		{
			name:  "leading number with modulo reads as bare percent",
			input: "10%3",
			want:  "(10/100)3",
		},
		{
			name:  "modulo after a group is left alone",
			input: "(10)%3",
			want:  "(10)%3",
		},
		{
			name:  "power operator ending in asterisk",
			input: "2**50%",
			want:  "2**(50/100)",
		},
		{
			name:  "unbalanced group operand",
			input: "2)+10%",
			want:  "2)+((10/100)*))",
		},
		{
			name:  "trailing digits of an identifier",
			input: "log10+5%",
			want:  "log10+((5/100)*10)",
		},
		{
			name:       "negative last answer",
			input:      "ans+1",
			lastAnswer: -2.5,
			want:       "-2.5+1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rewrite(tt.input, tt.lastAnswer))
		})
	}
}

func TestPrecedingOperand(t *testing.T) {
	tests := map[string]string{
		"100":      "100",
		"1.5  ":    "1.5",
		"12.34.56": "34.56",
		"a.5":      "5",
		"(1+(2))":  "(1+(2))",
		"3*(4)":    "(4)",
		"x":        "",
		"":         "",
		"1+":       "",
	}
	for before, want := range tests {
		assert.Equal(t, want, precedingOperand(before), "before=%q", before)
	}
}
