// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the state that survives between menu invocations.
//
// The only piece of state is the remembered item: a path the user picked
// with "Compare Later" so it can be compared with a later selection. The
// caller owns the Session and passes it to the evaluator; nothing here is
// global.
//
// # Key Types
//
//   - Session: The remembered item plus an identifier for logs
//   - FileStore: Persists a Session between one-shot CLI invocations
//
// # Usage
//
//	sess := session.New()
//	sess.Remember("/home/me/a.txt")
//	if item, ok := sess.Remembered(); ok {
//	    // offer "Compare to a.txt"
//	}
//
// The remembered item is replaced by the next Remember and is not cleared
// when it takes part in a comparison.
package session
