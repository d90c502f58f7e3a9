package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestEvaluateUpdatesLastAnswer(t *testing.T) {
	s := New(nil, zaptest.NewLogger(t))

	out := s.Evaluate("6*7")
	require.True(t, out.OK())
	assert.Equal(t, 42.0, out.Value)
	assert.Equal(t, "42", out.Text())
	assert.Equal(t, 42.0, s.LastAnswer())

	out = s.Evaluate("ans/2")
	require.True(t, out.OK())
	assert.Equal(t, 21.0, s.LastAnswer())
}

func TestEvaluateFailureKeepsLastAnswer(t *testing.T) {
	s := New(nil, zaptest.NewLogger(t))
	s.Evaluate("5")

	out := s.Evaluate("foo(1)")
	assert.False(t, out.OK())
	assert.Equal(t, "Unknown name.", out.Text())
	assert.Equal(t, 5.0, s.LastAnswer())

	out = s.Evaluate("1/0")
	assert.Equal(t, "Divide by zero.", out.Text())
	assert.Equal(t, 5.0, s.LastAnswer())
}

func TestEvaluateBlank(t *testing.T) {
	s := New(nil, nil)
	s.Evaluate("3")

	for _, in := range []string{"", "   ", "\t"} {
		out := s.Evaluate(in)
		assert.True(t, out.Blank)
		assert.False(t, out.OK())
		assert.Equal(t, "", out.Text())
	}
	assert.Equal(t, 3.0, s.LastAnswer())
}

func TestEvaluatePercentUsesLastAnswer(t *testing.T) {
	s := New(nil, nil)
	s.Evaluate("200")

	out := s.Evaluate("+10%")
	require.True(t, out.OK())
	assert.Equal(t, 20.0, out.Value)
}

func TestCommit(t *testing.T) {
	s := New(nil, zaptest.NewLogger(t))

	out := s.Evaluate("1+1")
	assert.True(t, s.Commit("1+1", out))
	assert.False(t, s.Commit("1+1", out), "duplicate of previous expression")

	out = s.Evaluate("2+2")
	assert.True(t, s.Commit("2+2", out))

	out = s.Evaluate("1+1")
	assert.True(t, s.Commit("1+1", out), "only the immediately preceding entry is compared")

	assert.Equal(t, []string{"1+1 = 2", "2+2 = 4", "1+1 = 2"}, s.History().Render())
}

func TestCommitRejectsFailuresAndBlank(t *testing.T) {
	s := New(nil, nil)

	assert.False(t, s.Commit("1/0", s.Evaluate("1/0")))
	assert.False(t, s.Commit("  ", s.Evaluate("  ")))
	assert.Equal(t, 0, s.History().Len())
}

func TestHistoryWindow(t *testing.T) {
	h := NewHistory(0, nil, nil)
	assert.Equal(t, DefaultHistoryLimit, h.Limit())

	for i := 0; i < 60; i++ {
		h.Commit(fmt.Sprintf("%d+0", i), fmt.Sprint(i))
	}

	lines := h.Render()
	require.Len(t, lines, 50)
	assert.Equal(t, "10+0 = 10", lines[0])
	assert.Equal(t, "59+0 = 59", lines[49])
	assert.Equal(t, 60, h.Len())
}

func TestHistoryEntriesIsCopy(t *testing.T) {
	h := NewHistory(5, nil, nil)
	h.Commit("1", "1")

	entries := h.Entries()
	entries[0].Result = "changed"
	assert.Equal(t, "1", h.Entries()[0].Result)
}

type memoryStore struct {
	entries   []Entry
	appendErr error
}

func (m *memoryStore) Append(entry Entry) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memoryStore) Recent(limit int) ([]Entry, error) {
	start := max(0, len(m.entries)-limit)
	return append([]Entry(nil), m.entries[start:]...), nil
}

func TestHistoryWritesThroughToStore(t *testing.T) {
	store := &memoryStore{}
	h := NewHistory(2, store, zaptest.NewLogger(t))

	h.Commit("1", "1")
	h.Commit("1", "1")
	h.Commit("2", "2")
	assert.Equal(t, []Entry{{"1", "1"}, {"2", "2"}}, store.entries)

	reloaded := NewHistory(2, store, nil)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, []string{"1 = 1", "2 = 2"}, reloaded.Render())
	assert.False(t, reloaded.Commit("2", "2"), "dedupe carries across reloads")
}

func TestHistoryStoreFailureIsNotFatal(t *testing.T) {
	store := &memoryStore{appendErr: errors.New("disk full")}
	h := NewHistory(5, store, zaptest.NewLogger(t))

	assert.True(t, h.Commit("1", "1"))
	assert.Equal(t, []string{"1 = 1"}, h.Render())
}
