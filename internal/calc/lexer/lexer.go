// Package lexer tokenizes calculator expressions.
package lexer

// Lexer tokenizes an arithmetic expression
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
}

// New creates a new Lexer instance
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Tokenize returns every token in input, ending with EOF.
func Tokenize(input string) []Token {
	l := New(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	start := l.position

	var tok Token
	switch l.ch {
	case '+':
		tok = l.single(OP_PLUS)
	case '-':
		tok = l.single(OP_MINUS)
	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			tok = Token{Type: OP_POWER, Literal: "**"}
		} else {
			tok = l.single(OP_ASTERISK)
		}
	case '/':
		if l.peekChar() == '/' {
			l.readChar()
			tok = Token{Type: OP_FLOORDIV, Literal: "//"}
		} else {
			tok = l.single(OP_SLASH)
		}
	case '%':
		tok = l.single(OP_PERCENT)
	case '^':
		tok = l.single(OP_CARET)
	case ',':
		tok = l.single(COMMA)
	case '(':
		tok = l.single(LPAREN)
	case ')':
		tok = l.single(RPAREN)
	case 0:
		if l.position >= len(l.input) {
			return Token{Type: EOF, Pos: len(l.input), End: len(l.input)}
		}
		tok = l.single(ILLEGAL)
	default:
		if isLetter(l.ch) {
			lit := l.readIdentifier()
			return Token{Type: IDENT, Literal: lit, Pos: start, End: l.position}
		}
		if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
			lit := l.readNumber()
			return Token{Type: NUMBER, Literal: lit, Pos: start, End: l.position}
		}
		tok = l.single(ILLEGAL)
	}

	l.readChar()
	tok.Pos = start
	tok.End = l.position
	return tok
}

func (l *Lexer) single(t TokenType) Token {
	return Token{Type: t, Literal: string(l.ch)}
}

// readChar advances the lexer's position and updates the current character
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// peekChar returns the next character without advancing the position
func (l *Lexer) peekChar() byte {
	return l.peekCharN(1)
}

func (l *Lexer) peekCharN(n int) byte {
	pos := l.position + n
	if pos >= len(l.input) {
		return 0
	}
	return l.input[pos]
}

func (l *Lexer) skipWhitespace() {
	for isSpace(l.ch) {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads digits, an optional fraction and an optional exponent.
// A trailing 'e' that is not followed by digits is left for the next token,
// so "2e" lexes as NUMBER IDENT.
func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekCharN(2))) {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	return l.input[start:l.position]
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// IsPlainDecimal reports whether s is digits with an optional fractional
// part, i.e. no exponent and no leading or trailing dot.
func IsPlainDecimal(s string) bool {
	if s == "" || !isDigit(s[0]) {
		return false
	}
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == len(s) {
		return true
	}
	if s[i] != '.' || i+1 == len(s) {
		return false
	}
	i++
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i == len(s)
}
