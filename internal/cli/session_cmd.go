// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// session_cmd.go - The remembered item.
//
// Command: session [show|forget]
//
// Subcommands:
//   show (default)    Show the remembered item (aliases: status)
//   forget            Drop the remembered item (aliases: clear)
//
// Examples:
//   nautilus-compare session
//   nautilus-compare session forget
//   nautilus-compare session --json

package cli

import (
	"fmt"
	"io"

	"github.com/boamaod/nautilus-compare/internal/provider"
	"github.com/boamaod/nautilus-compare/internal/session"
)

// SessionData represents the data returned by the session command.
type SessionData struct {
	session.Status `yaml:",inline"`
	Path           string `json:"path" yaml:"path"`
}

// HandleSession handles the "session" command.
func (a *App) HandleSession(args Args) error {
	if err := checkFormat(args); err != nil {
		return err
	}
	sessions, err := a.sessionStore()
	if err != nil {
		return err
	}
	sess, err := sessions.Load()
	if err != nil {
		return err
	}

	sub := NewArgParser(args.Raw).Subcommand()
	switch sub {
	case "", "show", "status":
		return a.outputSession(args, sessions.Path(), sess)
	case "forget", "clear":
		store, err := a.configStore()
		if err != nil {
			return err
		}
		p := provider.New(store, sess, provider.WithSessionSaver(sessions), provider.WithLogger(a.Logger))
		if err := p.Forget(); err != nil {
			return NewCommandError("session", "forget", "could not save session", err)
		}
		return a.outputSession(args, sessions.Path(), sess)
	}
	return NewValidationErrorWithExample("subcommand", sub, "unknown session subcommand",
		"nautilus-compare session [show|forget]")
}

func (a *App) outputSession(args Args, path string, sess *session.Session) error {
	data := SessionData{Status: sess.GetStatus(), Path: path}
	return a.Output(args, "session", data, func(w io.Writer) {
		if data.HasItem {
			fmt.Fprintln(w, kv("Remembered", data.Remembered))
		} else {
			fmt.Fprintln(w, kv("Remembered", DimStyle.Render("(nothing)")))
		}
		fmt.Fprintln(w, kv("Session", data.ID))
		fmt.Fprintln(w, kv("File", path))
	})
}
