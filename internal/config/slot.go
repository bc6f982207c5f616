// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"strings"
)

// Slot identifies one of the three engine slots.
type Slot int

const (
	SlotTwoWay Slot = iota
	SlotThreeWay
	SlotMulti
)

// Slots lists every slot in file order.
var Slots = []Slot{SlotTwoWay, SlotThreeWay, SlotMulti}

// String returns the slot name used in logs and the CLI.
func (s Slot) String() string {
	switch s {
	case SlotTwoWay:
		return "two_way"
	case SlotThreeWay:
		return "three_way"
	case SlotMulti:
		return "multi_way"
	default:
		return "unknown"
	}
}

// Key returns the config file key of the slot.
func (s Slot) Key() string {
	switch s {
	case SlotTwoWay:
		return KeyTwoWay
	case SlotThreeWay:
		return KeyThreeWay
	default:
		return KeyMulti
	}
}

// ParseSlot accepts a slot name, its config key, or a short alias.
func ParseSlot(name string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "two_way", "two-way", "2way", "2", KeyTwoWay:
		return SlotTwoWay, nil
	case "three_way", "three-way", "3way", "3", KeyThreeWay:
		return SlotThreeWay, nil
	case "multi_way", "multi-way", "multi", "n", KeyMulti:
		return SlotMulti, nil
	}
	return 0, fmt.Errorf("unknown engine slot %q (want two_way, three_way or multi_way)", name)
}

// Get returns the engine in slot.
func (e Engines) Get(slot Slot) string {
	switch slot {
	case SlotTwoWay:
		return e.TwoWay
	case SlotThreeWay:
		return e.ThreeWay
	default:
		return e.Multi
	}
}

func (e *Engines) set(slot Slot, engine string) {
	switch slot {
	case SlotTwoWay:
		e.TwoWay = engine
	case SlotThreeWay:
		e.ThreeWay = engine
	default:
		e.Multi = engine
	}
}

// With returns a copy of e with slot set to engine.
func (e Engines) With(slot Slot, engine string) Engines {
	e.set(slot, engine)
	return e
}
