// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// AppName names the config file and state directory.
const AppName = "nautilus-compare"

// ErrNoUserConfigDir is returned when no user configuration directory can be
// determined and no explicit path was given.
var ErrNoUserConfigDir = errors.New("could not determine user config directory")

// Env holds the environment overrides understood by nautilus-compare.
type Env struct {
	// ConfigPath replaces the per-user config file location.
	ConfigPath string `env:"NAUTILUS_COMPARE_CONFIG"`
	// SystemConfigPath replaces the system-wide fallback.
	SystemConfigPath string `env:"NAUTILUS_COMPARE_SYSTEM_CONFIG" envDefault:"/etc/nautilus-compare.conf"`
	// StateDir holds the session file and the launch history.
	StateDir string `env:"NAUTILUS_COMPARE_STATE_DIR"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"NAUTILUS_COMPARE_LOG_LEVEL"`
	// LogFormat is console or json.
	LogFormat string `env:"NAUTILUS_COMPARE_LOG_FORMAT" envDefault:"console"`
	// Lang selects the menu language; LANG is used when unset.
	Lang string `env:"NAUTILUS_COMPARE_LANG"`
	// SystemLang mirrors LANG.
	SystemLang string `env:"LANG"`
}

// LoadEnv parses the environment.
func LoadEnv() (Env, error) {
	e, err := env.ParseAs[Env]()
	if err != nil {
		return Env{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return e, nil
}

// Language returns the preferred menu language tag string.
func (e Env) Language() string {
	if e.Lang != "" {
		return e.Lang
	}
	return e.SystemLang
}

// UserConfigPath returns the per-user config file path.
func (e Env) UserConfigPath() (string, error) {
	if e.ConfigPath != "" {
		return e.ConfigPath, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "", fmt.Errorf("%w: %v", ErrNoUserConfigDir, err)
	}
	return filepath.Join(dir, AppName+".conf"), nil
}

// StatePath returns the directory for session and history files, following
// the XDG base directory layout.
func (e Env) StatePath() (string, error) {
	if e.StateDir != "" {
		return e.StateDir, nil
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" && filepath.IsAbs(xdg) {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", AppName), nil
}
