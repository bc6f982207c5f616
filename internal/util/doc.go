// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by nautilus-compare packages.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// Display:
//   - TruncateWidth: Display-width aware truncation with ellipsis
//   - TruncateMiddle: Keeps both ends of a long path visible
//
// # Usage
//
//	// Write config files atomically so an interrupted save never
//	// leaves a half-written file behind
//	err := util.AtomicWriteFile(path, data, 0644)
//
//	// Shorten a path for a terminal menu
//	label := util.TruncateMiddle("/very/long/path/to/file.txt", 20)
package util
