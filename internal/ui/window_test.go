package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestShellWindowDispatch(t *testing.T) {
	w, err := NewShellWindow("show-cmd", "", zaptest.NewLogger(t))
	require.NoError(t, err)

	var ran []string
	w.run = func(command string) { ran = append(ran, command) }

	w.Show()
	w.Raise()
	w.Focus()
	w.Hide()
	assert.Equal(t, []string{"show-cmd"}, ran, "empty commands are skipped")
}

func TestShellWindowRunsCommands(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "shown")
	w, err := NewShellWindow("echo shown > '"+marker+"'", "exit 1", zaptest.NewLogger(t))
	require.NoError(t, err)

	w.exec(w.ShowCommand)
	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "shown\n", string(data))

	w.exec(w.HideCommand)
}

func TestShellWindowShowIsAsync(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "shown")
	w, err := NewShellWindow("echo shown > '"+marker+"'", "", nil)
	require.NoError(t, err)

	t.Cleanup(w.Close)

	w.Show()
	assert.Eventually(t, func() bool {
		_, err := os.Stat(marker)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)
}

func TestShellWindowRunsCommandsInOrder(t *testing.T) {
	log := filepath.Join(t.TempDir(), "window.log")
	w, err := NewShellWindow(
		"sleep 0.3; echo show >> '"+log+"'",
		"echo hide >> '"+log+"'",
		zaptest.NewLogger(t),
	)
	require.NoError(t, err)

	w.Show()
	w.Hide()
	w.Show()
	w.Close()

	data, err := os.ReadFile(log)
	require.NoError(t, err)
	assert.Equal(t, "show\nhide\nshow\n", string(data))
}

func TestShellWindowCloseIsIdempotent(t *testing.T) {
	w, err := NewShellWindow("", "", nil)
	require.NoError(t, err)
	w.Close()
	w.Close()
}

func TestTerminalWindowIsNoop(t *testing.T) {
	w := TerminalWindow{Logger: zaptest.NewLogger(t)}
	w.Show()
	w.Raise()
	w.Focus()
	w.Hide()
	TerminalWindow{}.Show()
}
