package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathsFollowHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	ResetPaths()
	t.Cleanup(ResetPaths)

	assert.Equal(t, home, HomeDir())
	assert.Equal(t, filepath.Join(home, ".qalc"), DataDir())
	assert.DirExists(t, DataDir())
	assert.Equal(t, filepath.Join(home, ".qalc", "qalc.log"), LogFile())
	assert.Equal(t, filepath.Join(home, ".qalc", "history.db"), HistoryFile())
	assert.Equal(t, filepath.Join(home, ".qalc", "config.yaml"), ConfigFile())
}
