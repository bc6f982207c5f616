// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Styles for plain command output, drawn from the same
// palette as the preferences editor. NO_COLOR, non-terminal stdout and
// --no-color all turn them into plain text.

package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/boamaod/nautilus-compare/internal/ui/styles"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(styles.Cyan).MarginBottom(1)
	LabelStyle   = lipgloss.NewStyle().Foreground(styles.TextSecondary).Width(14)
	ValueStyle   = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.Emerald)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(styles.Rose)
	DimStyle     = lipgloss.NewStyle().Foreground(styles.TextMuted)
)

// DisableColors turns styling off for the rest of the process.
func DisableColors() {
	ForceColorsEnabled(false)
	lipgloss.SetColorProfile(termenv.Ascii)
}

// kv renders a "label value" line.
func kv(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value)
}
