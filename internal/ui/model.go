// Package ui is the Bubble Tea front end of the calculator window.
package ui

import (
	"strings"

	"github.com/atinylittleshell/qalc/internal/calc"
	"github.com/atinylittleshell/qalc/internal/session"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"go.uber.org/zap"
)

// ActivateMsg asks the window to show itself and take focus. It is sent
// from the hotkey goroutine with tea.Program.Send.
type ActivateMsg struct{}

// Rows taken by everything except the history panel: the bordered input
// (3), result, info and history header.
const chromeHeight = 6

const defaultWidth = 60

// Options configures a Model.
type Options struct {
	Session   *session.Session
	Window    Window
	Clipboard Clipboard

	// KeyMap defaults to DefaultKeyMap.
	KeyMap *KeyMap

	GroupDigits  bool
	StartVisible bool

	// HotkeyHint names the hotkey in the hidden view, e.g. "alt+space".
	HotkeyHint string

	Logger *zap.Logger
}

type Model struct {
	session     *session.Session
	window      Window
	clipboard   Clipboard
	keymap      *KeyMap
	groupDigits bool
	hotkeyHint  string
	names       []string
	logger      *zap.Logger

	input   textinput.Model
	history viewport.Model

	visible bool
	outcome session.Outcome
	info    string

	width  int
	height int

	quitting bool
}

func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sess := opts.Session
	if sess == nil {
		sess = session.New(nil, logger)
	}

	window := opts.Window
	if window == nil {
		window = TerminalWindow{Logger: logger}
	}

	clip := opts.Clipboard
	if clip == nil {
		clip = SystemClipboard{}
	}

	keymap := opts.KeyMap
	if keymap == nil {
		keymap = DefaultKeyMap()
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Type a calculation and press Enter"

	m := Model{
		session:     sess,
		window:      window,
		clipboard:   clip,
		keymap:      keymap,
		groupDigits: opts.GroupDigits,
		hotkeyHint:  opts.HotkeyHint,
		names:       calc.Names(),
		logger:      logger,
		input:       input,
		history:     viewport.New(defaultWidth, 10),
		visible:     opts.StartVisible,
		outcome:     session.Outcome{Blank: true},
		info:        DefaultHint,
	}
	m.resize(defaultWidth, 10+chromeHeight)
	if m.visible {
		m.input.Focus()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.visible {
		m.window.Show()
	}
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ActivateMsg:
		return m.activate()

	case tea.BlurMsg:
		if m.visible {
			return m.hide(), nil
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keymap.Lookup(msg)
	if action == ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// A key reaching a hidden window means the host terminal has focus
	// again, so treat it like the hotkey.
	var activateCmd tea.Cmd
	if !m.visible {
		m, activateCmd = m.activate()
	}

	switch action {
	case ActionSubmit:
		return m.commit(), nil

	case ActionCopy:
		m.copyResult()
		return m, activateCmd

	case ActionClear:
		m.input.Reset()
		m.evaluate()
		return m, activateCmd

	case ActionClose:
		return m.hide(), nil

	case ActionScrollUp:
		m.history.LineUp(1)
		return m, activateCmd
	case ActionScrollDown:
		m.history.LineDown(1)
		return m, activateCmd
	case ActionPageUp:
		m.history.ViewUp()
		return m, activateCmd
	case ActionPageDown:
		m.history.ViewDown()
		return m, activateCmd
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.evaluate()
	}
	return m, tea.Batch(activateCmd, cmd)
}

// activate shows the window. An already visible window only takes focus
// again; the typed text stays either way.
func (m Model) activate() (Model, tea.Cmd) {
	if !m.visible {
		m.visible = true
		m.outcome = session.Outcome{Blank: true}
		m.window.Show()
	}
	m.window.Raise()
	m.window.Focus()
	return m, m.input.Focus()
}

// hide keeps the input and result as they are.
func (m Model) hide() Model {
	m.visible = false
	m.input.Blur()
	m.window.Hide()
	return m
}

// commit records a successful result, copies it and hides the window.
// Failures and blank input only hide.
func (m Model) commit() Model {
	expr := m.input.Value()
	if m.outcome.OK() && strings.TrimSpace(expr) != "" {
		if m.session.Commit(expr, m.outcome) {
			m.refreshHistory()
		}
		m.copyResult()
	}
	return m.hide()
}

func (m *Model) copyResult() {
	if !m.outcome.OK() {
		return
	}
	if err := m.clipboard.WriteAll(m.outcome.Text()); err != nil {
		m.logger.Warn("failed to copy result to clipboard", zap.Error(err))
	}
}

func (m *Model) evaluate() {
	expr := m.input.Value()
	m.outcome = m.session.Evaluate(expr)
	m.info = infoLine(expr, m.outcome, m.names)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	// Border, padding and prompt.
	m.input.Width = max(1, width-8)
	m.history.Width = width
	m.history.Height = max(1, height-chromeHeight)
	m.refreshHistory()
}

func (m *Model) refreshHistory() {
	lines := m.session.History().Render()
	for i, line := range lines {
		lines[i] = truncate.StringWithTail(line, uint(max(0, m.width)), "…")
	}
	m.history.SetContent(strings.Join(lines, "\n"))
	m.history.GotoBottom()
}

func (m Model) resultText() string {
	if m.groupDigits && m.outcome.OK() {
		return calc.FormatGrouped(m.outcome.Value)
	}
	return m.outcome.Text()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.visible {
		hint := "Hidden."
		if m.hotkeyHint != "" {
			hint += " Press " + m.hotkeyHint + " or any key to show."
		}
		if quit := m.keymap.FirstKey(ActionQuit); quit != "" {
			hint += " " + quit + " quits."
		}
		return InfoStyle.Render(hint)
	}

	inputStyle := InputAcceptedStyle
	resultStyle := ResultStyle
	if m.outcome.Err != nil {
		inputStyle = InputErrorStyle
		resultStyle = ResultErrorStyle
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		inputStyle.Width(max(1, m.width-2)).Render(m.input.View()),
		resultStyle.Render(m.resultText()),
		InfoStyle.Render(truncate.StringWithTail(m.info, uint(max(0, m.width-4)), "…")),
		HeaderStyle.Render("History"),
		HistoryStyle.Render(m.history.View()),
	)
}

// Visible reports whether the window is shown.
func (m Model) Visible() bool {
	return m.visible
}

func (m Model) Value() string {
	return m.input.Value()
}

func (m Model) Outcome() session.Outcome {
	return m.outcome
}

func (m Model) Info() string {
	return m.info
}

// ResultText is the result line as displayed.
func (m Model) ResultText() string {
	return m.resultText()
}
