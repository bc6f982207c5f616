// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles of the preferences editor.
type Theme struct {
	Container lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style

	// One row per engine slot.
	Row         lipgloss.Style
	RowSelected lipgloss.Style
	SlotLabel   lipgloss.Style
	Engine      lipgloss.Style
	Disabled    lipgloss.Style
	Arrow       lipgloss.Style

	// Engine availability and the status line.
	Installed lipgloss.Style
	Missing   lipgloss.Style
	Dirty     lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
}

// NewTheme returns the default theme. Colors adapt to the terminal
// background; lipgloss drops them when the output has no color support.
func NewTheme() *Theme {
	fg := func(c lipgloss.TerminalColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	return &Theme{
		Container: lipgloss.NewStyle().Padding(1, 2),
		Title:     fg(Cyan).Bold(true),
		Subtitle:  fg(TextSecondary).Italic(true),

		Row: lipgloss.NewStyle().PaddingLeft(2),
		RowSelected: fg(Purple).
			Background(SurfaceBright).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(Purple).
			BorderLeft(true).
			PaddingLeft(1),
		SlotLabel: fg(TextSecondary).Width(12),
		Engine:    fg(TextPrimary).Bold(true),
		Disabled:  fg(TextMuted).Italic(true),
		Arrow:     fg(Purple),

		Installed: fg(Emerald),
		Missing:   fg(Amber),
		Dirty:     fg(Amber).Italic(true),
		Success:   fg(Emerald).Bold(true),
		Error:     fg(Rose).Bold(true),
		Muted:     fg(TextMuted),
	}
}
