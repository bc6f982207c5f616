// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles holds the color palette shared by command output and the
// preferences editor, and the editor's Theme.
//
//	theme := styles.NewTheme()
//	fmt.Println(theme.Title.Render("Comparison engines"))
package styles
