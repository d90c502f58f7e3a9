package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionSubmit, "Submit"},
		{ActionCopy, "Copy"},
		{ActionClear, "Clear"},
		{ActionClose, "Close"},
		{ActionQuit, "Quit"},
		{ActionScrollUp, "ScrollUp"},
		{ActionScrollDown, "ScrollDown"},
		{ActionPageUp, "PageUp"},
		{ActionPageDown, "PageDown"},
		{Action(999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.action.String(); got != tt.expected {
				t.Errorf("Action.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDefaultKeyMapLookup(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want Action
	}{
		{tea.KeyMsg{Type: tea.KeyEnter}, ActionSubmit},
		{tea.KeyMsg{Type: tea.KeyCtrlY}, ActionCopy},
		{tea.KeyMsg{Type: tea.KeyCtrlL}, ActionClear},
		{tea.KeyMsg{Type: tea.KeyEsc}, ActionClose},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, ActionClose},
		{tea.KeyMsg{Type: tea.KeyCtrlW}, ActionClose},
		{tea.KeyMsg{Type: tea.KeyCtrlQ}, ActionQuit},
		{tea.KeyMsg{Type: tea.KeyUp}, ActionScrollUp},
		{tea.KeyMsg{Type: tea.KeyDown}, ActionScrollDown},
		{tea.KeyMsg{Type: tea.KeyPgUp}, ActionPageUp},
		{tea.KeyMsg{Type: tea.KeyPgDown}, ActionPageDown},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, ActionNone},
		{tea.KeyMsg{Type: tea.KeyBackspace}, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			if got := km.Lookup(tt.msg); got != tt.want {
				t.Errorf("Lookup(%q) = %s, want %s", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestSetBinding(t *testing.T) {
	km := DefaultKeyMap()

	km.SetBinding(KeyBinding{Keys: []string{"ctrl+x"}, Action: ActionQuit})

	if got := km.Lookup(tea.KeyMsg{Type: tea.KeyCtrlX}); got != ActionQuit {
		t.Errorf("expected ctrl+x to quit, got %s", got)
	}
	if got := km.Lookup(tea.KeyMsg{Type: tea.KeyCtrlQ}); got != ActionNone {
		t.Errorf("expected ctrl+q to be unbound, got %s", got)
	}
	if b := km.GetBinding(ActionQuit); b == nil || len(b.Keys) != 1 {
		t.Errorf("unexpected binding %+v", b)
	}
	if b := km.GetBinding(Action(999)); b != nil {
		t.Errorf("expected nil binding, got %+v", b)
	}
}

func TestParseAction(t *testing.T) {
	action, err := ParseAction("Scroll_Up")
	require.NoError(t, err)
	assert.Equal(t, ActionScrollUp, action)

	_, err = ParseAction("launch")
	assert.ErrorContains(t, err, `unknown key action "launch"`)
	assert.ErrorContains(t, err, "clear, close, copy")
}

func TestApplyBindings(t *testing.T) {
	km := DefaultKeyMap()

	err := km.ApplyBindings(map[string][]string{
		"copy":  {"alt+c"},
		"close": {},
	})
	require.NoError(t, err)

	assert.Equal(t, ActionCopy, km.Lookup(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c"), Alt: true}))
	assert.Equal(t, ActionNone, km.Lookup(tea.KeyMsg{Type: tea.KeyCtrlY}))
	assert.Equal(t, ActionNone, km.Lookup(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.Equal(t, "", km.FirstKey(ActionClose))
	assert.Equal(t, "alt+c", km.FirstKey(ActionCopy))
	assert.Equal(t, ActionSubmit, km.Lookup(tea.KeyMsg{Type: tea.KeyEnter}))
}

func TestApplyBindingsRejectsUnknownAction(t *testing.T) {
	km := DefaultKeyMap()
	err := km.ApplyBindings(map[string][]string{"explode": {"ctrl+e"}})
	assert.Error(t, err)
	assert.Equal(t, ActionCopy, km.Lookup(tea.KeyMsg{Type: tea.KeyCtrlY}))
}
