package ui

import (
	"context"
	"sync"
	"time"

	"github.com/atinylittleshell/qalc/internal/bash"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/interp"
)

// Window is the host window the calculator is drawn in.
type Window interface {
	Show()
	Hide()
	Raise()
	Focus()
}

// TerminalWindow leaves the host terminal alone; the model renders a
// collapsed view while hidden.
type TerminalWindow struct {
	Logger *zap.Logger
}

func (w TerminalWindow) Show()  { w.log("show") }
func (w TerminalWindow) Hide()  { w.log("hide") }
func (w TerminalWindow) Raise() {}
func (w TerminalWindow) Focus() {}

func (w TerminalWindow) log(op string) {
	if w.Logger != nil {
		w.Logger.Debug("window " + op)
	}
}

const (
	windowCommandTimeout = 5 * time.Second
	windowCommandQueue   = 16
)

// ShellWindow runs user-configured commands to show and hide the host
// terminal window. Commands run in order on one worker goroutine so the event
// loop never waits on them and a hide never overtakes the show before it.
// Raise and Focus are covered by the show command.
type ShellWindow struct {
	ShowCommand string
	HideCommand string

	runner *interp.Runner
	logger *zap.Logger
	run    func(command string)

	commands  chan string
	done      chan struct{}
	closeOnce sync.Once
}

func NewShellWindow(showCommand, hideCommand string, logger *zap.Logger) (*ShellWindow, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	runner, err := bash.NewRunner()
	if err != nil {
		return nil, err
	}
	w := &ShellWindow{
		ShowCommand: showCommand,
		HideCommand: hideCommand,
		runner:      runner,
		logger:      logger,
		commands:    make(chan string, windowCommandQueue),
		done:        make(chan struct{}),
	}
	w.run = w.enqueue
	go w.worker()
	return w, nil
}

func (w *ShellWindow) Show()  { w.dispatch(w.ShowCommand) }
func (w *ShellWindow) Hide()  { w.dispatch(w.HideCommand) }
func (w *ShellWindow) Raise() {}
func (w *ShellWindow) Focus() {}

// Close stops the worker once every queued command has run. Show and Hide
// must not be called afterwards.
func (w *ShellWindow) Close() {
	w.closeOnce.Do(func() { close(w.commands) })
	<-w.done
}

func (w *ShellWindow) dispatch(command string) {
	if command == "" {
		return
	}
	w.run(command)
}

func (w *ShellWindow) enqueue(command string) {
	select {
	case w.commands <- command:
	default:
		w.logger.Warn("window command queue full, dropping command", zap.String("command", command))
	}
}

func (w *ShellWindow) worker() {
	defer close(w.done)
	for command := range w.commands {
		w.exec(command)
	}
}

func (w *ShellWindow) exec(command string) {
	ctx, cancel := context.WithTimeout(context.Background(), windowCommandTimeout)
	defer cancel()

	_, stderr, err := bash.RunBashCommandInSubShell(ctx, w.runner, command)
	if err != nil {
		w.logger.Warn("window command failed",
			zap.String("command", command),
			zap.String("stderr", stderr),
			zap.Error(err))
	}
}
