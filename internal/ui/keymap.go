package ui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
)

// Action is what a key press asks the calculator window to do. Keys that map
// to ActionNone go to the text input.
type Action int

const (
	ActionNone Action = iota

	ActionSubmit // Commit the result and hide (Enter)
	ActionCopy   // Copy the result without hiding (Ctrl+Y)
	ActionClear  // Empty the input field (Ctrl+L)
	ActionClose  // Hide the window (Esc, Ctrl+C, Ctrl+W)
	ActionQuit   // Exit the program (Ctrl+Q)

	// History panel scrolling
	ActionScrollUp
	ActionScrollDown
	ActionPageUp
	ActionPageDown
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionSubmit:
		return "Submit"
	case ActionCopy:
		return "Copy"
	case ActionClear:
		return "Clear"
	case ActionClose:
		return "Close"
	case ActionQuit:
		return "Quit"
	case ActionScrollUp:
		return "ScrollUp"
	case ActionScrollDown:
		return "ScrollDown"
	case ActionPageUp:
		return "PageUp"
	case ActionPageDown:
		return "PageDown"
	default:
		return "Unknown"
	}
}

// actionNames are the names used for actions in the config file.
var actionNames = map[string]Action{
	"submit":      ActionSubmit,
	"copy":        ActionCopy,
	"clear":       ActionClear,
	"close":       ActionClose,
	"quit":        ActionQuit,
	"scroll_up":   ActionScrollUp,
	"scroll_down": ActionScrollDown,
	"page_up":     ActionPageUp,
	"page_down":   ActionPageDown,
}

func ParseAction(name string) (Action, error) {
	if action, ok := actionNames[strings.ToLower(name)]; ok {
		return action, nil
	}
	names := lo.Keys(actionNames)
	sort.Strings(names)
	return ActionNone, fmt.Errorf("unknown key action %q (want one of %s)", name, strings.Join(names, ", "))
}

// KeyBinding maps tea.KeyMsg strings to an action.
type KeyBinding struct {
	Keys   []string
	Action Action
}

type KeyMap struct {
	bindings []KeyBinding
	lookup   map[string]Action
}

func NewKeyMap(bindings []KeyBinding) *KeyMap {
	km := &KeyMap{bindings: bindings}
	km.rebuildLookup()
	return km
}

func (km *KeyMap) rebuildLookup() {
	km.lookup = make(map[string]Action)
	for _, b := range km.bindings {
		for _, key := range b.Keys {
			km.lookup[key] = b.Action
		}
	}
}

func DefaultKeyMap() *KeyMap {
	return NewKeyMap([]KeyBinding{
		{Keys: []string{"enter"}, Action: ActionSubmit},
		{Keys: []string{"ctrl+y"}, Action: ActionCopy},
		{Keys: []string{"ctrl+l"}, Action: ActionClear},
		{Keys: []string{"esc", "ctrl+c", "ctrl+w"}, Action: ActionClose},
		{Keys: []string{"ctrl+q"}, Action: ActionQuit},

		{Keys: []string{"up", "ctrl+p"}, Action: ActionScrollUp},
		{Keys: []string{"down", "ctrl+n"}, Action: ActionScrollDown},
		{Keys: []string{"pgup"}, Action: ActionPageUp},
		{Keys: []string{"pgdown"}, Action: ActionPageDown},
	})
}

// Lookup returns ActionNone if no binding matches.
func (km *KeyMap) Lookup(msg tea.KeyMsg) Action {
	if action, ok := km.lookup[msg.String()]; ok {
		return action
	}
	return ActionNone
}

// SetBinding replaces the binding for the same action, or adds it.
func (km *KeyMap) SetBinding(binding KeyBinding) {
	for i, b := range km.bindings {
		if b.Action == binding.Action {
			km.bindings[i] = binding
			km.rebuildLookup()
			return
		}
	}
	km.bindings = append(km.bindings, binding)
	km.rebuildLookup()
}

// GetBinding returns nil if the action has no binding.
func (km *KeyMap) GetBinding(action Action) *KeyBinding {
	for i := range km.bindings {
		if km.bindings[i].Action == action {
			return &km.bindings[i]
		}
	}
	return nil
}

// ApplyBindings replaces the keys of each named action. An action given an
// empty key list is left unbound.
func (km *KeyMap) ApplyBindings(overrides map[string][]string) error {
	names := lo.Keys(overrides)
	sort.Strings(names)
	for _, name := range names {
		action, err := ParseAction(name)
		if err != nil {
			return err
		}
		km.SetBinding(KeyBinding{Keys: overrides[name], Action: action})
	}
	return nil
}

// FirstKey is the first key bound to action, or "" when it has none.
func (km *KeyMap) FirstKey(action Action) string {
	if b := km.GetBinding(action); b != nil && len(b.Keys) > 0 {
		return b.Keys[0]
	}
	return ""
}
