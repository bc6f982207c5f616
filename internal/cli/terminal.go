// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - What the attached terminal can do.

package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	// DefaultTerminalWidth is used when stdout is not a terminal
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the narrowest layout width
	MinTerminalWidth = 40
)

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// IsTTY reports whether stdin is a terminal, which interactive commands need.
func IsTTY() bool { return isTerminal(os.Stdin) }

// IsStdoutTTY reports whether stdout is a terminal.
func IsStdoutTTY() bool { return isTerminal(os.Stdout) }

// GetTerminalWidth returns the column count of stdout, clamped to
// MinTerminalWidth, or DefaultTerminalWidth when it is unknown.
func GetTerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	switch {
	case err != nil, w <= 0:
		return DefaultTerminalWidth
	case w < MinTerminalWidth:
		return MinTerminalWidth
	}
	return w
}

var colors struct {
	once    sync.Once
	enabled bool
}

// wantColors decides color output: NO_COLOR (https://no-color.org/) wins,
// FORCE_COLOR comes next, otherwise only terminals get colors.
func wantColors(noColor, forceColor string, tty bool) bool {
	if noColor != "" {
		return false
	}
	if forceColor != "" {
		return true
	}
	return tty
}

// ColorsEnabled reports whether output is styled.
func ColorsEnabled() bool {
	colors.once.Do(func() {
		colors.enabled = wantColors(os.Getenv("NO_COLOR"), os.Getenv("FORCE_COLOR"), IsStdoutTTY())
	})
	return colors.enabled
}

// ForceColorsEnabled overrides the detected color decision.
func ForceColorsEnabled(enabled bool) {
	colors.once.Do(func() {})
	colors.enabled = enabled
}

// GetColorProfile maps the color decision to a termenv profile for lipgloss.
func GetColorProfile() termenv.Profile {
	if ColorsEnabled() {
		return termenv.ColorProfile()
	}
	return termenv.Ascii
}

// TTYRequiredError is returned when an interactive command runs without a
// terminal on stdin.
type TTYRequiredError struct {
	Operation string
}

func (e *TTYRequiredError) Error() string {
	if e.Operation == "" {
		return "stdin is not a terminal; interactive input not available"
	}
	return "stdin is not a terminal; cannot " + e.Operation + " interactively"
}

// RequiresTTY fails with a TTYRequiredError unless stdin is a terminal.
func RequiresTTY(operation string) error {
	if IsTTY() {
		return nil
	}
	return &TTYRequiredError{Operation: operation}
}
