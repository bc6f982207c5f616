// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Per-command argument parsing.
package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ArgParser splits the arguments of one command into flags and positional
// arguments. File names are positional, so the rules keep them intact:
//   - "--" ends flag parsing; a lone "-" is positional
//   - "--name=value" always binds value
//   - "--name value" binds the next argument unless name is declared boolean
//     or the next argument is itself a flag
type ArgParser struct {
	values     map[string]string
	switches   map[string]bool
	positional []string
}

// NewArgParser parses raw. Names in boolNames never consume a value.
//
//	p := NewArgParser([]string{"--dry-run", "a.txt", "b.txt"}, "dry-run")
//	p.BoolFlag("dry-run")  // true
//	p.PositionalFrom(0)    // a.txt b.txt
func NewArgParser(raw []string, boolNames ...string) *ArgParser {
	p := &ArgParser{
		values:     map[string]string{},
		switches:   map[string]bool{},
		positional: []string{},
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]
		switch {
		case arg == "--":
			p.positional = append(p.positional, raw[i+1:]...)
			return p
		case arg == "-" || !strings.HasPrefix(arg, "-"):
			p.positional = append(p.positional, arg)
			continue
		}

		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		isBool := slices.Contains(boolNames, name)
		switch {
		case hasValue && isBool:
			b, err := ParseBoolString(value)
			if err != nil {
				p.values[name] = value
				continue
			}
			p.switches[name] = b
		case hasValue:
			p.values[name] = value
		case !isBool && i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-"):
			i++
			p.values[name] = raw[i]
		default:
			p.switches[name] = true
		}
	}
	return p
}

// Subcommand returns the first positional argument, or "".
func (p *ArgParser) Subcommand() string { return p.Positional(0) }

// Flag returns the value of --name, or "".
func (p *ArgParser) Flag(name string) string {
	return p.values[strings.TrimLeft(name, "-")]
}

// FlagOrDefault returns the value of --name, or def when it is unset.
func (p *ArgParser) FlagOrDefault(name, def string) string {
	if v := p.Flag(name); v != "" {
		return v
	}
	return def
}

// FlagInt returns --name as an integer.
func (p *ArgParser) FlagInt(name string) (int, error) {
	v := p.Flag(name)
	if v == "" {
		return 0, fmt.Errorf("flag %s not set", name)
	}
	return strconv.Atoi(v)
}

// FlagIntOrDefault returns --name as an integer, or def when it is unset or
// not a number.
func (p *ArgParser) FlagIntOrDefault(name string, def int) int {
	if n, err := p.FlagInt(name); err == nil {
		return n
	}
	return def
}

// BoolFlag reports whether the switch --name is on.
func (p *ArgParser) BoolFlag(name string) bool {
	return p.switches[strings.TrimLeft(name, "-")]
}

// HasFlag reports whether --name was given at all.
func (p *ArgParser) HasFlag(name string) bool {
	name = strings.TrimLeft(name, "-")
	_, v := p.values[name]
	_, s := p.switches[name]
	return v || s
}

// Positional returns positional argument i, or "" when out of range.
func (p *ArgParser) Positional(i int) string {
	if i < 0 || i >= len(p.positional) {
		return ""
	}
	return p.positional[i]
}

// PositionalFrom returns the positional arguments from index i on.
func (p *ArgParser) PositionalFrom(i int) []string {
	if i < 0 || i >= len(p.positional) {
		return []string{}
	}
	return p.positional[i:]
}

// PositionalCount returns the number of positional arguments.
func (p *ArgParser) PositionalCount() int { return len(p.positional) }

// ParseIntWithValidation parses a positive integer given for field.
func ParseIntWithValidation(s, field string) (int, error) {
	if s == "" {
		return 0, NewValidationError(field, s, "value is required")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, NewValidationError(field, s, "must be a valid integer")
	}
	if n <= 0 {
		return 0, NewValidationError(field, s, "must be positive")
	}
	return n, nil
}

// ParseBoolString accepts true/false, yes/no, y/n, 1/0 and on/off in any case.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "on":
		return true, nil
	case "false", "no", "n", "0", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value: %s", s)
}
