// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// actions_cmd.go - Menu and activation commands.
//
// Commands:
//   menu FILE...                 List the actions offered for FILE...
//   activate ACTION FILE...      Run one of those actions
//   remember FILE                Same as: activate compare-later FILE
//   compare FILE...              Run the first comparison offered
//
// Flags:
//   --dry-run    Print the engine command line instead of starting it
//
// Examples:
//   nautilus-compare remember old.txt
//   nautilus-compare menu new.txt --json
//   nautilus-compare activate compare-to new.txt
//   nautilus-compare compare a.txt b.txt c.txt --dry-run

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/boamaod/nautilus-compare/internal/launch"
	"github.com/boamaod/nautilus-compare/internal/provider"
	"github.com/boamaod/nautilus-compare/internal/selection"
	"github.com/boamaod/nautilus-compare/internal/util"
)

// labelWidth bounds menu labels in text output.
const labelWidth = 60

// ActivateData is the result of an activation command.
type ActivateData struct {
	provider.Result `yaml:",inline"`
	DryRun          bool   `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	CommandLine     string `json:"command_line,omitempty" yaml:"command_line,omitempty"`
}

// HandleMenu handles "menu FILE...".
func (a *App) HandleMenu(ctx context.Context, args Args) error {
	if err := checkFormat(args); err != nil {
		return err
	}
	files := NewArgParser(args.Raw).PositionalFrom(0)
	if len(files) == 0 {
		return ErrMissingArgument("FILE", "nautilus-compare menu a.txt b.txt")
	}

	o, err := a.openOneShot(true, io.Discard)
	if err != nil {
		return err
	}
	defer o.Close()

	items := o.provider.Items(files)
	if items == nil {
		items = []selection.Action{}
	}
	return a.Output(args, "menu", items, func(w io.Writer) {
		if len(items) == 0 {
			fmt.Fprintln(w, DimStyle.Render("No actions for this selection"))
			return
		}
		for _, it := range items {
			fmt.Fprintf(w, "%-14s %s\n", it.Kind.String(), util.TruncateWidth(it.Label, labelWidth))
		}
	})
}

// HandleActivate handles "activate ACTION FILE...".
func (a *App) HandleActivate(ctx context.Context, args Args) error {
	ap := NewArgParser(args.Raw, "dry-run")
	name := ap.Subcommand()
	if name == "" {
		return ErrMissingArgument("ACTION", "nautilus-compare activate compare-to b.txt")
	}
	if _, err := selection.ParseKind(name); err != nil {
		return NewValidationErrorWithExample("action", name, "unknown action",
			"compare-later, compare-to, compare, multi-compare")
	}
	return a.activate(ctx, args, "activate", name, ap.PositionalFrom(1), ap.BoolFlag("dry-run"))
}

// HandleRemember handles "remember FILE".
func (a *App) HandleRemember(ctx context.Context, args Args) error {
	ap := NewArgParser(args.Raw)
	files := ap.PositionalFrom(0)
	if len(files) != 1 {
		return ErrMissingArgument("FILE", "nautilus-compare remember a.txt")
	}
	return a.activate(ctx, args, "remember", selection.KindRemember.String(), files, false)
}

// HandleCompare handles "compare FILE...": the first offered action that
// compares something is run.
func (a *App) HandleCompare(ctx context.Context, args Args) error {
	ap := NewArgParser(args.Raw, "dry-run")
	files := ap.PositionalFrom(0)
	if len(files) == 0 {
		return ErrMissingArgument("FILE", "nautilus-compare compare a.txt b.txt")
	}
	return a.activate(ctx, args, "compare", "", files, ap.BoolFlag("dry-run"))
}

// activate runs the named action, or the first comparison when name is
// empty, and reports the result.
func (a *App) activate(ctx context.Context, args Args, command, name string, files []string, dryRun bool) error {
	if err := checkFormat(args); err != nil {
		return err
	}
	if len(files) == 0 {
		return ErrMissingArgument("FILE", "nautilus-compare "+command+" a.txt")
	}

	// Dry-run lines go to stdout only in text mode; structured output
	// carries the command line instead.
	out := io.Discard
	if args.OutputFormat() == FormatText && dryRun {
		out = a.Stdout
	}
	o, err := a.openOneShot(dryRun, out)
	if err != nil {
		return err
	}
	defer o.Close()

	var res provider.Result
	if name == "" {
		action, ok := firstComparison(o.provider.Items(files))
		if !ok {
			return fmt.Errorf("%w: nothing to compare", provider.ErrNotOffered)
		}
		res, err = o.provider.Activate(ctx, action)
	} else {
		res, err = o.provider.Run(ctx, name, files)
	}
	if err != nil {
		return err
	}

	data := ActivateData{Result: res, DryRun: dryRun}
	if res.Engine != "" {
		data.CommandLine = launch.CommandLine(res.Engine, res.Args)
	}
	return a.Output(args, command, data, func(w io.Writer) {
		switch {
		case res.Remembered != "":
			fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render("Remembered"), res.Remembered)
		case !dryRun:
			fmt.Fprintf(w, "%s %s with %d items\n", SuccessStyle.Render("Started"), res.Engine, len(res.Args))
		}
	})
}

func firstComparison(actions []selection.Action) (selection.Action, bool) {
	for _, act := range actions {
		if act.Kind != selection.KindRemember {
			return act, true
		}
	}
	return selection.Action{}, false
}
