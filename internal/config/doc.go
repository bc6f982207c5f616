// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config stores the comparison engines nautilus-compare launches.
//
// Three engine slots are kept, one per arity (two-way, three-way and
// multi-way), together with the list of engines the user can choose from.
// An empty slot means the arity is disabled.
//
// # Key Types
//
//   - Store: Loads, repairs and saves the engine configuration
//   - Engines: The three engine slots
//   - Env: Environment overrides (NAUTILUS_COMPARE_*)
//
// # Configuration Files
//
// Configuration is read from the first existing file of:
//   - $XDG_CONFIG_HOME/nautilus-compare.conf (or NAUTILUS_COMPARE_CONFIG)
//   - /etc/nautilus-compare.conf (or NAUTILUS_COMPARE_SYSTEM_CONFIG)
//
// Writes always go to the user file. The format is TOML:
//
//	[settings]
//	diff_engine_path = "meld"
//	diff_engine_path_3way = "meld"
//	diff_engine_path_multi = ""
//	defined_comparators = ["", "kdiff3", "meld"]
//
// # Self-repair
//
// When any key is missing, or the file cannot be parsed, Load detects the
// installed engines, fills in the missing values and writes the repaired
// file back. A crash in the middle of a previous save therefore heals on
// the next Load.
//
// # Usage
//
//	store, err := config.NewStore()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := store.Load(); err != nil {
//	    logger.Warn("config not persisted", "error", err)
//	}
//	engines := store.Engines()
package config
