// nautilus-compare - remember a file now, compare it with another later.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap/zapcore"

	"github.com/boamaod/nautilus-compare/internal/cli"
	"github.com/boamaod/nautilus-compare/internal/config"
	"github.com/boamaod/nautilus-compare/internal/logging"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()
	if args.NoColor {
		cli.DisableColors()
	}

	env, err := config.LoadEnv()
	if err != nil {
		cli.DisplayError(os.Stderr, err, args.JSON)
		os.Exit(cli.ExitConfigError)
	}

	level := args.LogLevel()
	if env.LogLevel != "" {
		level = env.LogLevel
	}
	logging.InitLogger(level, env.LogFormat, zapcore.Lock(os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(env)
	if err := app.Run(ctx, cmd, args); err != nil {
		stop()
		cli.DisplayError(os.Stderr, err, args.OutputFormat() == cli.FormatJSON)
		os.Exit(cli.GetExitCode(err))
	}
}
