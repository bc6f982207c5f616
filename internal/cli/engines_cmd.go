// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// engines_cmd.go - Known, installed and configured engines.
//
// Command: engines
//
// Lists every known engine and every configured one, whether it is found
// in the lookup directories, and which slots use it.

package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/boamaod/nautilus-compare/internal/config"
	"github.com/boamaod/nautilus-compare/internal/detect"
)

// EngineRow is one line of the engines command.
type EngineRow struct {
	detect.EngineStatus `yaml:",inline"`
	Slots               []string `json:"slots" yaml:"slots"`
}

// HandleEngines handles the "engines" command.
func (a *App) HandleEngines(args Args) error {
	if err := checkFormat(args); err != nil {
		return err
	}
	store, err := a.configStore()
	if err != nil {
		return err
	}
	rows := engineRows(a.Detector, store.Snapshot())

	return a.Output(args, "engines", rows, func(w io.Writer) {
		fmt.Fprintln(w, TitleStyle.Render("Engines"))
		for _, r := range rows {
			state := ErrorStyle.Render("not found")
			if r.Installed {
				state = SuccessStyle.Render("installed")
				if !r.Executable {
					state = ErrorStyle.Render("not executable")
				}
			}
			line := fmt.Sprintf("%-12s %s", r.Name, state)
			if len(r.Slots) > 0 {
				line += "  " + DimStyle.Render(strings.Join(r.Slots, ", "))
			}
			fmt.Fprintln(w, line)
		}
	})
}

// engineRows lists known engines in order, then configured engines that
// are not known.
func engineRows(d *detect.Detector, cfg config.Config) []EngineRow {
	names := slices.Clone(cfg.Known)
	for _, slot := range config.Slots {
		if v := cfg.Engines.Get(slot); v != "" && !slices.Contains(names, v) {
			names = append(names, v)
		}
	}

	statuses := d.Status(names)
	rows := make([]EngineRow, 0, len(statuses))
	for _, st := range statuses {
		row := EngineRow{EngineStatus: st, Slots: []string{}}
		for _, slot := range config.Slots {
			if cfg.Engines.Get(slot) == st.Name {
				row.Slots = append(row.Slots, slot.String())
			}
		}
		rows = append(rows, row)
	}
	return rows
}
