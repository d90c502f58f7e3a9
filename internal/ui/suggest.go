package ui

import (
	"fmt"
	"strings"

	"github.com/atinylittleshell/qalc/internal/calc"
	"github.com/atinylittleshell/qalc/internal/session"
	"github.com/sahilm/fuzzy"
)

// DefaultHint is shown when there is nothing more specific to say.
const DefaultHint = "Use %, ans, pi, e, min, max, pow, round. Example: 11+11% or ans*2"

// Hint is the info line for expr, using the built-in names for suggestions.
func Hint(expr string, outcome session.Outcome) string {
	return infoLine(expr, outcome, calc.Names())
}

// infoLine picks the hint shown under the result.
func infoLine(expr string, outcome session.Outcome, names []string) string {
	if outcome.Blank {
		return DefaultHint
	}
	if missing := strings.Count(expr, "(") - strings.Count(expr, ")"); missing > 0 {
		noun := "parenthesis"
		if missing > 1 {
			noun = "parentheses"
		}
		return fmt.Sprintf("Add %d closing %s: %s", missing, noun, strings.Repeat(")", missing))
	}
	if name, ok := calc.UnknownName(outcome.Err); ok {
		if suggestion := suggestName(name, names); suggestion != "" {
			return fmt.Sprintf("Unknown name %q. Did you mean %s?", name, suggestion)
		}
	}
	return DefaultHint
}

// suggestName returns the known name closest to name, or "".
func suggestName(name string, names []string) string {
	if matches := fuzzy.Find(name, names); len(matches) > 0 {
		return matches[0].Str
	}

	// A typo with extra characters ("sqrtt") contains the intended name.
	best := ""
	for _, candidate := range names {
		if len(candidate) < 2 || len(candidate) <= len(best) {
			continue
		}
		if len(fuzzy.Find(candidate, []string{name})) > 0 {
			best = candidate
		}
	}
	return best
}
