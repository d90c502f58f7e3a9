package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atinylittleshell/qalc/internal/calc"
	"github.com/atinylittleshell/qalc/internal/config"
	"github.com/atinylittleshell/qalc/internal/core"
	"github.com/atinylittleshell/qalc/internal/history"
	"github.com/atinylittleshell/qalc/internal/hotkey"
	"github.com/atinylittleshell/qalc/internal/session"
	"github.com/atinylittleshell/qalc/internal/styles"
	"github.com/atinylittleshell/qalc/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// app carries flag values and what PersistentPreRunE builds from them.
type app struct {
	configPath string
	logLevel   string
	noHotkey   bool
	visible    bool

	cfg    config.Config
	keymap *ui.KeyMap
	logger *zap.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "qalc",
		Short: "qalc - popup calculator",
		Long: `qalc is a small calculator window summoned with a global hotkey.

Type an expression to see the result live; Enter copies it to the clipboard
and hides the window. "ans" is the previous result and N% after +, -, * or /
is a percentage of the preceding operand.

When stdin is not a terminal, qalc evaluates one expression per line.`,
		Version: BUILD_VERSION,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !stdinIsTerminal() {
				return a.runBatch(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			}
			return a.runInteractive(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ~/.qalc/config.yaml, or $QALC_CONFIG)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override the configured log level")
	root.Flags().BoolVar(&a.noHotkey, "no-hotkey", false, "Do not install the global hotkey")
	root.Flags().BoolVar(&a.visible, "visible", false, "Show the window on start")

	root.AddCommand(newEvalCommand(a))
	root.AddCommand(newHistoryCommand(a))
	return root
}

func newEvalCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval EXPRESSION...",
		Short: "Evaluate one expression and print the result",
		Long:  "Evaluate one expression and print the result. Arguments are joined with spaces.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := session.New(nil, a.logger)
			expr := strings.Join(args, " ")
			outcome := sess.Evaluate(expr)
			if !outcome.OK() {
				return reportFailure(cmd.ErrOrStderr(), expr, outcome)
			}
			fmt.Fprintln(cmd.OutOrStdout(), styles.RESULT(outcome.Text()))
			return nil
		},
	}
}

func newHistoryCommand(a *app) *cobra.Command {
	var clearHistory bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print or clear saved calculations",
		Long: `Print the saved calculations, oldest first, up to history_limit entries.
Calculations are only saved while persist_history is enabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			historyManager, err := history.NewHistoryManager(core.HistoryFile())
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer historyManager.Close()

			if clearHistory {
				if err := historyManager.ResetHistory(); err != nil {
					return fmt.Errorf("failed to clear history: %w", err)
				}
				a.logger.Info("history cleared")
				fmt.Fprintln(cmd.OutOrStdout(), styles.HINT("History cleared."))
				return nil
			}

			entries, err := historyManager.Recent(a.cfg.HistoryLimit)
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}
			for _, entry := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), styles.EXPRESSION(entry.Expression)+" = "+styles.RESULT(entry.Result))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearHistory, "clear", false, "Delete every saved calculation")
	return cmd
}

func (a *app) setup() error {
	cfg, err := config.NewLoader(a.configPath).Load()
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.noHotkey {
		cfg.Hotkey.Enabled = false
	}
	if a.visible {
		cfg.StartVisible = true
	}
	a.cfg = cfg

	a.keymap = ui.DefaultKeyMap()
	if err := a.keymap.ApplyBindings(cfg.Keys); err != nil {
		return fmt.Errorf("invalid key bindings: %w", err)
	}

	logger, err := initializeLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = logger
	a.logger.Info("-------- new qalc session --------", zap.Any("args", os.Args))
	return nil
}

func initializeLogger(level string) (*zap.Logger, error) {
	logLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	// Bubble Tea owns the terminal, so logs only go to the file.
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}
	loggerConfig.ErrorOutputPaths = []string{
		core.LogFile(),
	}

	return loggerConfig.Build()
}

// runBatch evaluates one expression per line with a shared session, so ans
// refers to the previous line's result.
func (a *app) runBatch(in io.Reader, out, errOut io.Writer) error {
	sess := session.New(nil, a.logger)

	failed := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		expr := scanner.Text()
		outcome := sess.Evaluate(expr)
		switch {
		case outcome.Blank:
			continue
		case outcome.Err != nil:
			failed++
			_ = reportFailure(errOut, expr, outcome)
		default:
			fmt.Fprintln(out, styles.RESULT(outcome.Text()))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading expressions: %w", err)
	}
	a.logger.Debug("batch finished", zap.Int("failed", failed), zap.Float64("last_answer", sess.LastAnswer()))
	if failed > 0 {
		return fmt.Errorf("%d expression(s) failed", failed)
	}
	return nil
}

// reportedError has already been printed; main only sets the exit code.
type reportedError struct {
	msg string
}

func (e *reportedError) Error() string { return e.msg }

// reportFailure prints the error and, when there is one, a specific fix
// such as a missing parenthesis or a likely name.
func reportFailure(w io.Writer, expr string, outcome session.Outcome) error {
	msg := calc.Message(outcome.Err)
	fmt.Fprintln(w, styles.EXPRESSION(expr)+": "+styles.ERROR(msg))
	if hint := ui.Hint(expr, outcome); hint != ui.DefaultHint {
		fmt.Fprintln(w, "  "+styles.HINT(hint))
	}
	return &reportedError{msg: msg}
}

func (a *app) runInteractive(ctx context.Context) error {
	var store session.Store
	if a.cfg.PersistHistory {
		historyManager, err := history.NewHistoryManager(core.HistoryFile())
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer historyManager.Close()
		store = historyManager
	}

	hist := session.NewHistory(a.cfg.HistoryLimit, store, a.logger)
	if err := hist.Load(); err != nil {
		a.logger.Warn("failed to load history", zap.Error(err))
	}

	var window ui.Window = ui.TerminalWindow{Logger: a.logger}
	if a.cfg.Window.ShowCommand != "" || a.cfg.Window.HideCommand != "" {
		shellWindow, err := ui.NewShellWindow(a.cfg.Window.ShowCommand, a.cfg.Window.HideCommand, a.logger)
		if err != nil {
			return fmt.Errorf("failed to set up window commands: %w", err)
		}
		defer shellWindow.Close()
		window = shellWindow
	}

	hotkeyHint := ""
	if a.cfg.Hotkey.Enabled {
		hotkeyHint = a.cfg.Hotkey.Modifier + "+" + a.cfg.Hotkey.Key
	}

	model := ui.New(ui.Options{
		Session:      session.New(hist, a.logger),
		Window:       window,
		Clipboard:    ui.SystemClipboard{},
		KeyMap:       a.keymap,
		GroupDigits:  a.cfg.GroupDigits,
		StartVisible: a.cfg.StartVisible,
		HotkeyHint:   hotkeyHint,
		Logger:       a.logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))

	if a.cfg.Hotkey.Enabled {
		if err := startHotkeyWatcher(ctx, a.cfg.Hotkey, p, a.logger); err != nil {
			return err
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func startHotkeyWatcher(ctx context.Context, settings config.HotkeySettings, p *tea.Program, logger *zap.Logger) error {
	binding, err := hotkey.ParseBinding(settings.Modifier, settings.Key)
	if err != nil {
		return err
	}

	watcher := hotkey.NewWatcher(binding, hotkey.TriggerFunc(func() {
		p.Send(ui.ActivateMsg{})
	}), logger)

	go func() {
		err := watcher.Run(ctx, hotkey.NewHookSource())
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("hotkey watcher stopped", zap.Error(err))
		}
	}()
	return nil
}
