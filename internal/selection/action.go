// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package selection

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAction is returned when an action name cannot be parsed.
var ErrUnknownAction = errors.New("unknown action")

// Kind is the type of a menu action.
type Kind int

const (
	// KindRemember stores the selected item for a later comparison.
	KindRemember Kind = iota
	// KindCompareTo compares the remembered item with one selected item.
	KindCompareTo
	// KindCompareWithin compares the selected items with each other.
	KindCompareWithin
	// KindMultiCompare compares the remembered item with several selected items.
	KindMultiCompare
)

// itemPrefix namespaces menu item names.
const itemPrefix = "NautilusCompareExtension::"

// String returns the CLI name of the action.
func (k Kind) String() string {
	switch k {
	case KindRemember:
		return "compare-later"
	case KindCompareTo:
		return "compare-to"
	case KindCompareWithin:
		return "compare"
	case KindMultiCompare:
		return "multi-compare"
	default:
		return "unknown"
	}
}

// ItemName returns the menu item identifier of the action.
func (k Kind) ItemName() string {
	switch k {
	case KindRemember:
		return itemPrefix + "CompareLater"
	case KindCompareTo:
		return itemPrefix + "CompareTo"
	case KindCompareWithin:
		return itemPrefix + "CompareWithin"
	case KindMultiCompare:
		return itemPrefix + "MultiCompare"
	default:
		return itemPrefix + "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k < KindRemember || k > KindMultiCompare {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind accepts a CLI name ("compare-to"), a menu item name
// ("NautilusCompareExtension::CompareTo") or its suffix ("CompareTo").
func ParseKind(name string) (Kind, error) {
	n := strings.TrimPrefix(strings.TrimSpace(name), itemPrefix)
	switch strings.ToLower(n) {
	case "compare-later", "comparelater", "remember":
		return KindRemember, nil
	case "compare-to", "compareto":
		return KindCompareTo, nil
	case "compare", "comparewithin", "compare-within":
		return KindCompareWithin, nil
	case "multi-compare", "multicompare":
		return KindMultiCompare, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// Action is one entry of the context menu.
type Action struct {
	Kind  Kind     `json:"action" yaml:"action"`
	Name  string   `json:"name" yaml:"name"`
	Label string   `json:"label" yaml:"label"`
	Tip   string   `json:"tip" yaml:"tip"`
	Args  []string `json:"args" yaml:"args"`
}

// Find returns the first action of kind k.
func Find(actions []Action, k Kind) (Action, bool) {
	for _, a := range actions {
		if a.Kind == k {
			return a, true
		}
	}
	return Action{}, false
}
