// Package session holds the state one calculator window carries for the
// life of the process: the last answer and the committed history.
package session

import (
	"strings"

	"github.com/atinylittleshell/qalc/internal/calc"
	"go.uber.org/zap"
)

// Outcome is the result of evaluating one expression.
type Outcome struct {
	Value float64
	Err   error
	Blank bool
}

// OK reports whether the evaluation produced a value.
func (o Outcome) OK() bool {
	return !o.Blank && o.Err == nil
}

// Text is what the result line shows for the outcome.
func (o Outcome) Text() string {
	switch {
	case o.Blank:
		return ""
	case o.Err != nil:
		return calc.Message(o.Err)
	default:
		return calc.FormatNumber(o.Value)
	}
}

type Session struct {
	lastAnswer float64
	history    *History
	logger     *zap.Logger
}

// New creates a session. A nil history gets an in-memory one with the
// default limit.
func New(history *History, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if history == nil {
		history = NewHistory(DefaultHistoryLimit, nil, logger)
	}
	return &Session{
		history: history,
		logger:  logger,
	}
}

// Evaluate rewrites and evaluates expr. A successful evaluation becomes the
// new last answer; failures and blank input leave it untouched.
func (s *Session) Evaluate(expr string) Outcome {
	if strings.TrimSpace(expr) == "" {
		return Outcome{Blank: true}
	}

	value, err := calc.Calculate(expr, s.lastAnswer)
	if err != nil {
		s.logger.Debug("evaluation failed", zap.String("expr", expr), zap.Error(err))
		return Outcome{Err: err}
	}

	s.lastAnswer = value
	return Outcome{Value: value}
}

// Commit records a successful, non-blank outcome in the history. It reports
// whether a new entry was appended.
func (s *Session) Commit(expr string, outcome Outcome) bool {
	if !outcome.OK() || strings.TrimSpace(expr) == "" {
		return false
	}
	return s.history.Commit(expr, outcome.Text())
}

func (s *Session) LastAnswer() float64 {
	return s.lastAnswer
}

func (s *Session) History() *History {
	return s.history
}
