// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the command handlers of
// nautilus-compare.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed global flags and the remaining arguments
//   - App: Streams, environment and collaborators of one run
//
// # Usage
//
//	cmd, args := cli.Parse()
//	app := cli.NewApp(env)
//	if err := app.Run(ctx, cmd, args); err != nil {
//	    cli.DisplayError(os.Stderr, err, args.JSON)
//	    os.Exit(cli.GetExitCode(err))
//	}
//
// One-shot commands (menu, activate, remember, compare) keep the
// remembered item in a session file between invocations. The serve
// command keeps it in memory for the life of the process.
//
// All commands support --json and --format yaml.
package cli
