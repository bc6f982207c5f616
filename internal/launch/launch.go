// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/boamaod/nautilus-compare/internal/logging"
)

// ErrNoEngine is returned when there is no engine to launch.
var ErrNoEngine = errors.New("no comparison engine configured")

// Launcher starts an engine on a list of arguments.
type Launcher interface {
	Launch(ctx context.Context, engine string, args []string) error
}

// LaunchError wraps a failure to start an engine.
type LaunchError struct {
	Engine string
	Cause  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Engine, e.Cause)
}

func (e *LaunchError) Unwrap() error { return e.Cause }

// ExecLauncher starts engines as detached child processes.
type ExecLauncher struct {
	logger logging.Logger
}

// NewExecLauncher returns a launcher logging to logger. A nil logger
// discards.
func NewExecLauncher(logger logging.Logger) *ExecLauncher {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ExecLauncher{logger: logger}
}

// Launch starts engine with args and returns once the process is running.
// The engine is not tied to ctx: cancelling ctx after Launch returns does not
// stop it.
func (l *ExecLauncher) Launch(ctx context.Context, engine string, args []string) error {
	if strings.TrimSpace(engine) == "" {
		return ErrNoEngine
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := exec.Command(engine, args...)
	cmd.Env = os.Environ()
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return &LaunchError{Engine: engine, Cause: err}
	}

	pid := cmd.Process.Pid
	l.logger.Debug("engine started", "engine", engine, "pid", pid, "args", len(args))

	// Reap the child so long-running callers do not collect zombies.
	go func() {
		err := cmd.Wait()
		l.logger.Debug("engine exited", "engine", engine, "pid", pid, "error", err)
	}()
	return nil
}

// DryRun prints the command line instead of starting anything.
type DryRun struct {
	Out io.Writer
}

// Launch writes the command line to d.Out.
func (d DryRun) Launch(_ context.Context, engine string, args []string) error {
	if strings.TrimSpace(engine) == "" {
		return ErrNoEngine
	}
	_, err := fmt.Fprintln(d.Out, CommandLine(engine, args))
	return err
}

// CommandLine renders engine and args as a shell-style line for display.
// The result is never executed.
func CommandLine(engine string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, Quote(engine))
	for _, a := range args {
		parts = append(parts, Quote(a))
	}
	return strings.Join(parts, " ")
}

// Quote single-quotes s when it contains anything but safe characters.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, needsQuote) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("-_./:=+,@%", r):
		return false
	}
	return true
}
