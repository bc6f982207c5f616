// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package selection decides which comparison actions a file selection offers.
//
// Given the selected items, the session's remembered item and the
// configured engines, Evaluate returns the actions to show in the file
// manager's context menu, each with the exact argument list the engine will
// receive. Evaluate is a pure function: it never touches the disk and never
// changes the session.
//
// # Rules
//
// One selected item:
//   - CompareTo when an item is remembered and differs from the selection,
//     with arguments [remembered, selected]
//   - Remember (shown as "Compare Later"), always
//
// Two or more selected items:
//   - MultiCompare when an item is remembered, is not part of the selection,
//     and either a multi-way engine is set or two items are selected and a
//     three-way engine is set; arguments [remembered, selection...]
//   - CompareWithin when a multi-way engine is set, or two items are
//     selected, or three items are selected and a three-way engine is set;
//     arguments are the selection in order
//
// # Usage
//
//	actions := selection.Evaluate(paths, sess, store.Engines())
//	for _, a := range actions {
//		fmt.Println(a.Label, a.Args)
//	}
package selection
