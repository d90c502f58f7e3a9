package calc

import (
	"strings"

	"github.com/atinylittleshell/qalc/internal/calc/lexer"
)

// AnswerToken is replaced by the last answer before anything else happens.
const AnswerToken = "ans"

// percentSuffix is an <op><number>% span found in the substituted text.
type percentSuffix struct {
	op     lexer.TokenType
	number string
	start  int // offset of the operator
	end    int // offset just past '%'
}

// Rewrite turns raw input into plain arithmetic: it substitutes the last
// answer for every "ans", expands percent suffixes relative to the operand
// before them, and turns a leading bare "N%" into "(N/100)".
//
// Substitution is a plain substring replace, so "ans" inside a longer
// identifier is replaced too.
func Rewrite(expr string, lastAnswer float64) string {
	answer := FormatNumber(lastAnswer)
	substituted := strings.ReplaceAll(expr, AnswerToken, answer)

	tokens := lexer.Tokenize(substituted)
	suffixes := findPercentSuffixes(tokens)

	var sb strings.Builder
	cursor := 0

	if n, end, ok := leadingPercent(tokens); ok {
		sb.WriteString("(" + n + "/100)")
		cursor = end
	}

	for _, s := range suffixes {
		if s.start < cursor {
			continue
		}
		sb.WriteString(substituted[cursor:s.start])
		operand := precedingOperand(substituted[:s.start])
		if operand == "" {
			operand = answer
		}
		sb.WriteString(expandPercent(s, operand))
		cursor = s.end
	}
	sb.WriteString(substituted[cursor:])

	return sb.String()
}

// findPercentSuffixes tags every operator immediately followed by a plain
// decimal literal and a '%' with no gap between the number and the '%'.
// Matches never overlap: scanning resumes after the '%'.
func findPercentSuffixes(tokens []lexer.Token) []percentSuffix {
	var out []percentSuffix
	for i := 0; i+2 < len(tokens); i++ {
		// "2e-5%" is the operator suffix "-5%" after "2e", not a literal
		// 2e-5 followed by '%'.
		if s, ok := exponentSuffix(tokens[i], tokens[i+1]); ok {
			out = append(out, s)
			i++
			continue
		}

		op, num, pct := tokens[i], tokens[i+1], tokens[i+2]
		if num.Type != lexer.NUMBER || pct.Type != lexer.OP_PERCENT {
			continue
		}
		if num.End != pct.Pos || !lexer.IsPlainDecimal(num.Literal) {
			continue
		}
		opType, start := op.Type, op.Pos
		// "**" and "//" end in an operator character; only that last
		// character belongs to the suffix.
		switch op.Type {
		case lexer.OP_POWER:
			opType, start = lexer.OP_ASTERISK, op.End-1
		case lexer.OP_FLOORDIV:
			opType, start = lexer.OP_SLASH, op.End-1
		}
		if !opType.IsOperator() {
			continue
		}
		out = append(out, percentSuffix{
			op:     opType,
			number: num.Literal,
			start:  start,
			end:    pct.End,
		})
		i += 2
	}
	return out
}

func exponentSuffix(num, pct lexer.Token) (percentSuffix, bool) {
	if num.Type != lexer.NUMBER || pct.Type != lexer.OP_PERCENT || num.End != pct.Pos {
		return percentSuffix{}, false
	}
	e := strings.LastIndexAny(num.Literal, "eE")
	if e < 0 || e+2 >= len(num.Literal) {
		return percentSuffix{}, false
	}
	var op lexer.TokenType
	switch num.Literal[e+1] {
	case '+':
		op = lexer.OP_PLUS
	case '-':
		op = lexer.OP_MINUS
	default:
		return percentSuffix{}, false
	}
	digits := num.Literal[e+2:]
	if !lexer.IsPlainDecimal(digits) {
		return percentSuffix{}, false
	}
	return percentSuffix{
		op:     op,
		number: digits,
		start:  num.Pos + e + 1,
		end:    pct.End,
	}, true
}

// leadingPercent reports a bare "N%" at the very start of the text.
func leadingPercent(tokens []lexer.Token) (string, int, bool) {
	if len(tokens) < 2 {
		return "", 0, false
	}
	num, pct := tokens[0], tokens[1]
	if num.Type != lexer.NUMBER || num.Pos != 0 || pct.Type != lexer.OP_PERCENT || num.End != pct.Pos {
		return "", 0, false
	}
	if !lexer.IsPlainDecimal(num.Literal) {
		return "", 0, false
	}
	return num.Literal, pct.End, true
}

func expandPercent(s percentSuffix, operand string) string {
	switch s.op {
	case lexer.OP_PLUS:
		return "+((" + s.number + "/100)*" + operand + ")"
	case lexer.OP_MINUS:
		return "-((" + s.number + "/100)*" + operand + ")"
	case lexer.OP_ASTERISK:
		return "*(" + s.number + "/100)"
	default:
		return "/( " + s.number + "/100)"
	}
}

// precedingOperand returns the operand a percent suffix applies to: the
// trailing decimal literal of before, or the balanced parenthesised group
// ending at its last character. Returns "" when neither is present.
func precedingOperand(before string) string {
	before = strings.TrimRight(before, " \t\n\r\f\v")
	if before == "" {
		return ""
	}

	if before[len(before)-1] == ')' {
		return balancedGroup(before)
	}

	end := len(before)
	i := end
	for i > 0 && isDigit(before[i-1]) {
		i--
	}
	if i == end {
		return ""
	}
	// digits '.' digits: take the integer part as well
	if i >= 2 && before[i-1] == '.' && isDigit(before[i-2]) {
		i--
		for i > 0 && isDigit(before[i-1]) {
			i--
		}
	}
	return before[i:]
}

// balancedGroup scans backward from the closing parenthesis at the end of s
// and returns the group it closes. An unbalanced group yields just ")".
func balancedGroup(s string) string {
	depth := 1
	i := len(s) - 2
	for ; i >= 0; i-- {
		switch s[i] {
		case ')':
			depth++
		case '(':
			depth--
		}
		if depth == 0 {
			return s[i:]
		}
	}
	return s[len(s)-1:]
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
