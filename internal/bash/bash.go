// Package bash runs short shell snippets with the embedded mvdan.cc/sh
// interpreter, so user-configured hook commands behave the same on every
// platform.
package bash

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// NewRunner creates a runner that inherits the process environment and
// working directory.
func NewRunner() (*interp.Runner, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return interp.New(
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.Dir(dir),
		interp.StdIO(nil, nil, nil),
	)
}

// RunBashCommandInSubShellWithExitCode runs a command in a subshell and captures stdout/stderr.
// A non-zero exit code is NOT treated as an error - check the exit code separately.
func RunBashCommandInSubShellWithExitCode(ctx context.Context, runner *interp.Runner, command string) (string, string, int, error) {
	subShell := runner.Subshell()

	outBuf := &threadSafeBuffer{}
	errBuf := &threadSafeBuffer{}
	interp.StdIO(nil, outBuf, errBuf)(subShell) //nolint:errcheck

	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return "", "", 1, fmt.Errorf("failed to parse bash command: %w", err)
	}

	if len(prog.Stmts) == 0 {
		return "", "", 0, nil
	}

	err = subShell.Run(ctx, prog)
	if err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return outBuf.String(), errBuf.String(), int(status), nil
		}
		return outBuf.String(), errBuf.String(), 1, err
	}

	return outBuf.String(), errBuf.String(), 0, nil
}

// RunBashCommandInSubShell is RunBashCommandInSubShellWithExitCode with
// non-zero exit codes returned as errors that interp.IsExitStatus recognises.
func RunBashCommandInSubShell(ctx context.Context, runner *interp.Runner, command string) (string, string, error) {
	stdout, stderr, exitCode, err := RunBashCommandInSubShellWithExitCode(ctx, runner, command)
	if err != nil {
		return stdout, stderr, err
	}
	if exitCode != 0 {
		return stdout, stderr, interp.NewExitStatus(uint8(exitCode))
	}
	return stdout, stderr, nil
}

type threadSafeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *threadSafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *threadSafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
