// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package launch starts external comparison engines.
//
// Engines are started with an explicit argument vector, never through a
// shell, so item names containing quotes or shell metacharacters reach the
// engine unchanged. Launches are fire-and-forget: the engine runs in its own
// process group and its exit status is only logged.
package launch
