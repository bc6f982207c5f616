// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package paths turns raw file-manager inputs into comparable items.
//
// An input is either a plain filesystem path or a URI. Local items must be a
// directory, a regular file or a symbolic link. Non-local URIs (sftp://,
// smb://, ...) are only accepted when the configured two-way engine can open
// URIs itself. Accepted items are kept as absolute paths (or remote URIs) and
// rendered per engine at launch: an unescaped file:// URI for URI-compatible
// engines, a plain path otherwise.
package paths
