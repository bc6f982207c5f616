// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// LegacySection is the section name used by INI config files written
// before the TOML layout.
const LegacySection = "Settings"

// readLegacyFile decodes an INI config file: a [Settings] section with
// bare values and the known list written as a bracketed list of quoted
// strings. It follows the same rules as readFile.
func readLegacyFile(path string, cfg *Config) (complete bool, err error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:     true,
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return false, fmt.Errorf("failed to decode INI file: %w", err)
	}
	sec, err := f.GetSection(LegacySection)
	if err != nil {
		return false, fmt.Errorf("no [%s] section", LegacySection)
	}

	out := *cfg
	complete = true
	for _, slot := range Slots {
		key := slot.Key()
		if !sec.HasKey(key) {
			complete = false
			continue
		}
		out.Engines.set(slot, strings.TrimSpace(sec.Key(key).String()))
	}
	if sec.HasKey(KeyKnown) {
		known, err := parseLegacyList(sec.Key(KeyKnown).String())
		if err != nil {
			return false, fmt.Errorf("%s: %w", KeyKnown, err)
		}
		out.Known = known
	} else {
		complete = false
	}

	*cfg = out
	return complete, nil
}

// parseLegacyList reads a bracketed list such as ['meld', "o'diff"].
// Elements must be quoted strings.
func parseLegacyList(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("not a list: %q", s)
	}
	rest := strings.TrimSpace(s[1 : len(s)-1])

	list := []string{}
	for rest != "" {
		if rest[0] != '\'' && rest[0] != '"' {
			return nil, fmt.Errorf("unquoted element at %q", rest)
		}
		quote := rest[0]
		var b strings.Builder
		i := 1
		for ; i < len(rest) && rest[i] != quote; i++ {
			if rest[i] == '\\' && i+1 < len(rest) {
				i++
			}
			b.WriteByte(rest[i])
		}
		if i >= len(rest) {
			return nil, fmt.Errorf("unterminated string in %q", s)
		}
		list = append(list, b.String())

		rest = strings.TrimSpace(rest[i+1:])
		if rest == "" {
			break
		}
		if rest[0] != ',' {
			return nil, fmt.Errorf("expected ',' at %q", rest)
		}
		rest = strings.TrimSpace(rest[1:])
	}
	return list, nil
}
