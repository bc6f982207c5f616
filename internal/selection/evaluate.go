// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package selection

import (
	"slices"

	"github.com/boamaod/nautilus-compare/internal/config"
	"github.com/boamaod/nautilus-compare/internal/detect"
	"github.com/boamaod/nautilus-compare/internal/session"
)

// Evaluator computes menu actions with labels in one language.
type Evaluator struct {
	labels *Labels
}

// NewEvaluator returns an evaluator labelling actions for lang, a locale
// string such as "et_EE.UTF-8". Unsupported languages fall back to English.
func NewEvaluator(lang string) *Evaluator {
	return &Evaluator{labels: NewLabels(lang)}
}

var defaultEvaluator = NewEvaluator("en")

// Evaluate computes actions with English labels.
func Evaluate(items []string, sess *session.Session, engines config.Engines) []Action {
	return defaultEvaluator.Evaluate(items, sess, engines)
}

// Evaluate returns the valid actions for items, in menu order. An empty
// selection yields no actions.
func (e *Evaluator) Evaluate(items []string, sess *session.Session, engines config.Engines) []Action {
	if len(items) == 0 {
		return nil
	}

	remembered, hasRemembered := sess.Remembered()
	// The remembered item is never compared with itself.
	usable := hasRemembered && !slices.Contains(items, remembered)

	var actions []Action

	if len(items) == 1 {
		if usable {
			actions = append(actions, e.action(KindCompareTo, remembered, withFirst(remembered, items)))
		}
		actions = append(actions, e.action(KindRemember, "", slices.Clone(items)))
		return actions
	}

	if usable && (engines.Multi != "" || (len(items) == 2 && engines.ThreeWay != "")) {
		actions = append(actions, e.action(KindMultiCompare, remembered, withFirst(remembered, items)))
	}

	if engines.Multi != "" || len(items) == 2 || (len(items) == 3 && engines.ThreeWay != "") {
		actions = append(actions, e.action(KindCompareWithin, "", slices.Clone(items)))
	}

	return actions
}

func (e *Evaluator) action(k Kind, remembered string, args []string) Action {
	label, tip := e.labels.For(k, remembered)
	return Action{
		Kind:  k,
		Name:  k.ItemName(),
		Label: label,
		Tip:   tip,
		Args:  args,
	}
}

func withFirst(first string, rest []string) []string {
	out := make([]string, 0, len(rest)+1)
	out = append(out, first)
	return append(out, rest...)
}

// EngineFor returns the engine that compares n items. Two items always
// have an engine: an empty two-way slot falls back to the default engine.
// Three items use the three-way engine when set and the multi-way engine
// otherwise; more items need the multi-way engine.
func EngineFor(engines config.Engines, n int) (string, bool) {
	switch {
	case n < 2:
		return "", false
	case n == 2:
		if engines.TwoWay == "" {
			return detect.DefaultEngine, true
		}
		return engines.TwoWay, true
	case n == 3 && engines.ThreeWay != "":
		return engines.ThreeWay, true
	case engines.Multi != "":
		return engines.Multi, true
	}
	return "", false
}
