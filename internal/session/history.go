package session

import (
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// DefaultHistoryLimit is how many entries the history panel shows.
const DefaultHistoryLimit = 50

// Entry is a committed calculation.
type Entry struct {
	Expression string
	Result     string
}

// String renders the entry as a history line.
func (e Entry) String() string {
	return e.Expression + " = " + e.Result
}

// Store persists committed entries. It is optional; without one the
// history lives only as long as the process.
type Store interface {
	Append(entry Entry) error
	Recent(limit int) ([]Entry, error)
}

// History is the append-only list of committed calculations.
type History struct {
	entries []Entry
	limit   int
	store   Store
	logger  *zap.Logger
}

// NewHistory creates a history that renders at most limit entries.
func NewHistory(limit int, store Store, logger *zap.Logger) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &History{
		limit:  limit,
		store:  store,
		logger: logger,
	}
}

// Load seeds the history from the store, if there is one.
func (h *History) Load() error {
	if h.store == nil {
		return nil
	}
	entries, err := h.store.Recent(h.limit)
	if err != nil {
		return err
	}
	h.entries = append(entries, h.entries...)
	return nil
}

// Commit appends an entry unless its expression repeats the previous one.
// It reports whether the entry was appended.
func (h *History) Commit(expression, result string) bool {
	if n := len(h.entries); n > 0 && h.entries[n-1].Expression == expression {
		return false
	}

	entry := Entry{Expression: expression, Result: result}
	h.entries = append(h.entries, entry)

	if h.store != nil {
		if err := h.store.Append(entry); err != nil {
			h.logger.Warn("failed to persist history entry", zap.Error(err))
		}
	}
	return true
}

// Entries returns a copy of the most recent entries, oldest first.
func (h *History) Entries() []Entry {
	start := max(0, len(h.entries)-h.limit)
	return append([]Entry(nil), h.entries[start:]...)
}

// Render returns "expression = result" lines for the most recent entries,
// oldest first.
func (h *History) Render() []string {
	return lo.Map(h.Entries(), func(e Entry, _ int) string {
		return e.String()
	})
}

// Len returns the total number of committed entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Limit returns the display window size.
func (h *History) Limit() int {
	return h.limit
}
