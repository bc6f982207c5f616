// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - Recently launched comparisons.
//
// Command: history [clear]
//
// Flags:
//   --limit N    Number of entries to show (default 20)
//
// Examples:
//   nautilus-compare history
//   nautilus-compare history --limit 5 --json
//   nautilus-compare history clear

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/boamaod/nautilus-compare/internal/history"
	"github.com/boamaod/nautilus-compare/internal/launch"
	"github.com/boamaod/nautilus-compare/internal/util"
)

// HandleHistory handles the "history" command.
func (a *App) HandleHistory(ctx context.Context, args Args) error {
	if err := checkFormat(args); err != nil {
		return err
	}
	ap := NewArgParser(args.Raw)

	limit := history.DefaultLimit
	if ap.HasFlag("limit") {
		n, err := ParseIntWithValidation(ap.Flag("limit"), "limit")
		if err != nil {
			return err
		}
		if n < 1 {
			return NewValidationErrorWithExample("limit", ap.Flag("limit"), "must be positive", "--limit 10")
		}
		limit = n
	}

	store, err := a.openHistory()
	if err != nil {
		return NewCommandError("history", "open", "could not open history", err)
	}
	defer store.Close()

	switch sub := ap.Subcommand(); sub {
	case "", "list", "show":
	case "clear":
		if err := store.Clear(ctx); err != nil {
			return NewCommandError("history", "clear", "could not clear history", err)
		}
		return a.Output(args, "history", map[string]bool{"cleared": true}, func(w io.Writer) {
			fmt.Fprintln(w, SuccessStyle.Render("History cleared"))
		})
	default:
		return NewValidationErrorWithExample("subcommand", sub, "unknown history subcommand",
			"nautilus-compare history [clear] [--limit N]")
	}

	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return NewCommandError("history", "list", "could not read history", err)
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	return a.Output(args, "history", entries, func(w io.Writer) {
		if len(entries) == 0 {
			fmt.Fprintln(w, DimStyle.Render("No comparisons yet"))
			return
		}
		// date, action and spacing take 34 columns
		width := GetTerminalWidth() - 34
		for _, e := range entries {
			fmt.Fprintf(w, "%s  %-14s %s\n",
				DimStyle.Render(e.Time.Local().Format("2006-01-02 15:04")),
				e.Action,
				util.TruncateMiddle(launch.CommandLine(e.Engine, e.Args), width))
		}
	})
}
