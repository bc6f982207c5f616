// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation.
//
// Command: config [subcommand]
//
// Subcommands:
//   show (default)      Display current configuration
//   set <key> <value>   Set an engine slot ("" disables it)
//   reset               Remove the user file; engines are detected again
//   path                Show configuration file paths
//
// Examples:
//   nautilus-compare config
//   nautilus-compare config show --format toml
//   nautilus-compare config set three_way kdiff3
//   nautilus-compare config set multi_way ""
//   nautilus-compare config reset
//
// Configuration Keys:
//   two_way      (diff_engine_path)         Engine for two items
//   three_way    (diff_engine_path_3way)    Engine for three items
//   multi_way    (diff_engine_path_multi)   Engine for any other count

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/boamaod/nautilus-compare/internal/config"
)

// ConfigData represents the data returned by config show.
type ConfigData struct {
	config.Config `yaml:",inline"`
	UserPath      string `json:"user_path" yaml:"user_path"`
	SystemPath    string `json:"system_path" yaml:"system_path"`
}

// HandleConfig handles the "config" command.
func (a *App) HandleConfig(args Args) error {
	ap := NewArgParser(args.Raw)
	sub := ap.Subcommand()

	if sub == "" || sub == "show" {
		if err := checkFormat(args, FormatTOML); err != nil {
			return err
		}
	} else if err := checkFormat(args); err != nil {
		return err
	}

	store, err := a.configStore()
	if err != nil {
		return err
	}

	switch sub {
	case "", "show":
		return a.handleConfigShow(args, store)
	case "path":
		return a.handleConfigPath(args, store)
	case "set":
		if ap.PositionalCount() != 3 {
			return ErrMissingArgument("KEY VALUE", "nautilus-compare config set two_way meld")
		}
		return a.handleConfigSet(args, store, ap.Positional(1), ap.Positional(2))
	case "reset":
		if err := store.Reset(); err != nil {
			return NewCommandError("config", "reset", "could not remove config file", err)
		}
		return a.Output(args, "config", map[string]string{"removed": store.UserPath()}, func(w io.Writer) {
			fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render("Removed"), store.UserPath())
		})
	}
	return NewValidationErrorWithExample("subcommand", sub, "unknown config subcommand",
		"nautilus-compare config [show|path|set KEY VALUE|reset]")
}

func (a *App) handleConfigShow(args Args, store *config.Store) error {
	cfg := store.Snapshot()
	if args.OutputFormat() == FormatTOML {
		data, err := config.Encode(cfg)
		if err != nil {
			return err
		}
		_, err = a.Stdout.Write(data)
		return err
	}

	data := ConfigData{Config: cfg, UserPath: store.UserPath(), SystemPath: store.SystemPath()}
	return a.Output(args, "config", data, func(w io.Writer) {
		fmt.Fprintln(w, TitleStyle.Render("Comparison engines"))
		for _, slot := range config.Slots {
			engine := cfg.Engines.Get(slot)
			if engine == "" {
				engine = DimStyle.Render("(disabled)")
			}
			fmt.Fprintln(w, kv(slot.String(), engine))
		}
		fmt.Fprintln(w, kv("known", strings.Join(cfg.Known, ", ")))
		fmt.Fprintln(w, kv("file", store.UserPath()))
	})
}

func (a *App) handleConfigPath(args Args, store *config.Store) error {
	data := map[string]string{"user": store.UserPath(), "system": store.SystemPath()}
	return a.Output(args, "config", data, func(w io.Writer) {
		fmt.Fprintln(w, store.UserPath())
	})
}

func (a *App) handleConfigSet(args Args, store *config.Store, key, value string) error {
	slot, err := config.ParseSlot(key)
	if err != nil {
		return NewValidationErrorWithExample("key", key, "unknown config key", "two_way, three_way, multi_way")
	}
	value = strings.TrimSpace(value)
	if err := store.Set(slot, value); err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return NewCommandError("config", "set", "could not save config", err)
	}
	a.Logger.Debug("config updated", "slot", slot.String(), "engine", value)

	return a.Output(args, "config", store.Engines(), func(w io.Writer) {
		shown := value
		if shown == "" {
			shown = "(disabled)"
		}
		fmt.Fprintf(w, "%s %s = %s\n", SuccessStyle.Render("Set"), slot.String(), shown)
	})
}
