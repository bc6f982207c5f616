// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

// SubstitutionPolicy picks the engine for a slot whose configured engine is
// not in the known list. known always starts with "" (no engine), followed
// by previously known engines and then installed engines in preference
// order.
type SubstitutionPolicy func(known []string) string

// PreferInstalled substitutes the first real engine, leaving the slot
// disabled only when no engine is known at all. This is the default.
func PreferInstalled(known []string) string {
	for _, name := range known {
		if name != "" {
			return name
		}
	}
	return ""
}

// FirstKnown substitutes known[0], which is always "", so an unavailable
// engine disables its slot.
func FirstKnown(known []string) string {
	if len(known) == 0 {
		return ""
	}
	return known[0]
}
