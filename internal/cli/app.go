// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - Command context shared by all handlers.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/boamaod/nautilus-compare/internal/config"
	"github.com/boamaod/nautilus-compare/internal/detect"
	"github.com/boamaod/nautilus-compare/internal/history"
	"github.com/boamaod/nautilus-compare/internal/launch"
	"github.com/boamaod/nautilus-compare/internal/logging"
	"github.com/boamaod/nautilus-compare/internal/provider"
	"github.com/boamaod/nautilus-compare/internal/selection"
	"github.com/boamaod/nautilus-compare/internal/session"
)

// App carries the streams, environment and collaborators of one CLI run.
// The zero value is not usable; call NewApp.
type App struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	Env      config.Env
	Logger   logging.Logger
	Detector *detect.Detector

	// Launcher replaces the process launcher when set.
	Launcher launch.Launcher

	now func() time.Time
}

// NewApp returns an App wired to the process streams.
func NewApp(env config.Env) *App {
	return &App{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		Env:      env,
		Logger:   logging.GetLogger(),
		Detector: detect.Default(),
		now:      time.Now,
	}
}

// Run dispatches cmd to its handler.
func (a *App) Run(ctx context.Context, cmd Command, args Args) error {
	switch cmd {
	case CmdHelp:
		return a.HandleHelp(args)
	case CmdVersion:
		return a.HandleVersion(args)
	case CmdMenu:
		return a.HandleMenu(ctx, args)
	case CmdActivate:
		return a.HandleActivate(ctx, args)
	case CmdRemember:
		return a.HandleRemember(ctx, args)
	case CmdCompare:
		return a.HandleCompare(ctx, args)
	case CmdSession:
		return a.HandleSession(args)
	case CmdConfig:
		return a.HandleConfig(args)
	case CmdEngines:
		return a.HandleEngines(args)
	case CmdPrefs:
		return a.HandlePrefs(args)
	case CmdHistory:
		return a.HandleHistory(ctx, args)
	case CmdServe:
		return a.HandleServe(ctx, args)
	}
	return NewValidationErrorWithExample("command", args.Name, "unknown command", "nautilus-compare help")
}

// =============================================================================
// COLLABORATORS
// =============================================================================

// configStore builds and loads the engine configuration. A failed
// write-back of a repaired config is logged; the loaded state is still used.
func (a *App) configStore() (*config.Store, error) {
	user, err := a.Env.UserConfigPath()
	if err != nil {
		return nil, err
	}
	store, err := config.NewStore(
		config.WithPaths(user, a.Env.SystemConfigPath),
		config.WithInstaller(a.Detector),
		config.WithLogger(a.Logger),
	)
	if err != nil {
		return nil, err
	}
	if err := store.Load(); err != nil {
		a.Logger.Warn("config load", "error", err)
	}
	return store, nil
}

func (a *App) stateDir() (string, error) {
	dir, err := a.Env.StatePath()
	if err != nil {
		return "", NewCommandError("state", "locate", "no state directory", err)
	}
	return dir, nil
}

func (a *App) sessionStore() (*session.FileStore, error) {
	dir, err := a.stateDir()
	if err != nil {
		return nil, err
	}
	return session.NewFileStore(dir), nil
}

// openHistory opens the launch history. Callers that only record treat a
// failure as non-fatal.
func (a *App) openHistory() (*history.Store, error) {
	dir, err := a.stateDir()
	if err != nil {
		return nil, err
	}
	return history.Open(filepath.Join(dir, history.FileName))
}

func (a *App) evaluator() *selection.Evaluator {
	return selection.NewEvaluator(a.Env.Language())
}

func (a *App) launcher() launch.Launcher {
	if a.Launcher != nil {
		return a.Launcher
	}
	return launch.NewExecLauncher(a.Logger)
}

// oneShot is the state a single command invocation works on: the loaded
// config, the persisted session and, when launching, the history.
type oneShot struct {
	provider *provider.Provider
	sessions *session.FileStore
	history  *history.Store
}

func (o *oneShot) Close() {
	if o.history != nil {
		o.history.Close()
	}
}

// openOneShot prepares a provider over the persisted session. dryRun
// prints engine command lines to out instead of launching and skips the
// history.
func (a *App) openOneShot(dryRun bool, out io.Writer) (*oneShot, error) {
	store, err := a.configStore()
	if err != nil {
		return nil, err
	}
	sessions, err := a.sessionStore()
	if err != nil {
		return nil, err
	}
	sess, err := sessions.Load()
	if err != nil {
		return nil, err
	}

	o := &oneShot{sessions: sessions}
	opts := []provider.Option{
		provider.WithEvaluator(a.evaluator()),
		provider.WithSessionSaver(sessions),
		provider.WithLogger(a.Logger),
	}
	if dryRun {
		opts = append(opts, provider.WithLauncher(launch.DryRun{Out: out}))
	} else {
		opts = append(opts, provider.WithLauncher(a.launcher()))
		if h, err := a.openHistory(); err != nil {
			a.Logger.Warn("history unavailable", "error", err)
		} else {
			o.history = h
			opts = append(opts, provider.WithRecorder(h))
		}
	}
	o.provider = provider.New(store, sess, opts...)
	return o, nil
}
