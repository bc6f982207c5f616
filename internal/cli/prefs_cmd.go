// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// prefs_cmd.go - Interactive engine preferences.
//
// Command: prefs
// Aliases: preferences
//
// Opens a terminal editor with one row per engine slot. Left/right cycle
// through the known engines, x disables a slot, enter saves.

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/boamaod/nautilus-compare/internal/ui/prefs"
)

// HandlePrefs handles the "prefs" command.
func (a *App) HandlePrefs(args Args) error {
	if err := RequiresTTY("edit preferences"); err != nil {
		return err
	}
	store, err := a.configStore()
	if err != nil {
		return err
	}
	installed := a.Detector.Installed(store.Known())

	m, err := prefs.Run(store, installed, tea.WithInput(a.Stdin), tea.WithOutput(a.Stdout))
	if err != nil {
		return NewCommandError("prefs", "run", "editor failed", err)
	}
	if m.Err() != nil {
		return NewCommandError("prefs", "save", "could not save config", m.Err())
	}
	if m.Saved() && !args.Quiet {
		fmt.Fprintf(a.Stdout, "%s %s\n", SuccessStyle.Render("Saved"), store.UserPath())
	}
	return nil
}
