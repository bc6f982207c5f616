// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/boamaod/nautilus-compare/internal/config"
	"github.com/boamaod/nautilus-compare/internal/detect"
	"github.com/boamaod/nautilus-compare/internal/history"
	"github.com/boamaod/nautilus-compare/internal/logging"
	"github.com/boamaod/nautilus-compare/internal/provider"
	"github.com/boamaod/nautilus-compare/internal/session"
)

// MockLauncher implements launch.Launcher for testing
type MockLauncher struct {
	mock.Mock
}

func (m *MockLauncher) Launch(ctx context.Context, engine string, args []string) error {
	return m.Called(ctx, engine, args).Error(0)
}

type testApp struct {
	*App
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	launcher *MockLauncher
	dir      string
}

const testConfig = `[settings]
diff_engine_path = "kdiff3"
diff_engine_path_3way = "kdiff3"
diff_engine_path_multi = "diffuse"
defined_comparators = ["", "diffuse", "kdiff3", "meld"]
`

// newTestApp returns an App whose config, state and engine directories
// live under a temp dir. The config names kdiff3 for two and three items
// and diffuse for more.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "bin")
	require.NoError(t, os.MkdirAll(bin, 0755))
	for _, name := range []string{"kdiff3", "diffuse"} {
		require.NoError(t, os.WriteFile(filepath.Join(bin, name), []byte("#!/bin/sh\n"), 0755))
	}
	cfgPath := filepath.Join(dir, "config", "nautilus-compare.conf")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0755))
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfig), 0644))

	ta := &testApp{
		stdout:   new(bytes.Buffer),
		stderr:   new(bytes.Buffer),
		launcher: new(MockLauncher),
		dir:      dir,
	}
	ta.App = &App{
		Stdout: ta.stdout,
		Stderr: ta.stderr,
		Stdin:  strings.NewReader(""),
		Env: config.Env{
			ConfigPath:       cfgPath,
			SystemConfigPath: filepath.Join(dir, "system.conf"),
			StateDir:         filepath.Join(dir, "state"),
			Lang:             "en_US.UTF-8",
		},
		Logger:   logging.Nop(),
		Detector: detect.New([]string{bin}),
		Launcher: ta.launcher,
		now:      func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
	return ta
}

// files creates named files in a fresh directory.
func (ta *testApp) files(t *testing.T, names ...string) []string {
	t.Helper()
	dir, err := os.MkdirTemp(ta.dir, "files")
	require.NoError(t, err)
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = filepath.Join(dir, n)
		require.NoError(t, os.WriteFile(out[i], []byte(n), 0644))
	}
	return out
}

func (ta *testApp) run(t *testing.T, argv ...string) error {
	t.Helper()
	cmd, args := ParseArgs(argv)
	return ta.Run(context.Background(), cmd, args)
}

func (ta *testApp) reset() {
	ta.stdout.Reset()
	ta.stderr.Reset()
}

type envelope struct {
	Success bool            `json:"success"`
	Command string          `json:"command"`
	Data    json.RawMessage `json:"data"`
}

func decodeData(t *testing.T, out []byte, v interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(out, &env), string(out))
	require.NoError(t, json.Unmarshal(env.Data, v))
	return env
}

// =============================================================================
// MENU
// =============================================================================

func TestMenu_JSON(t *testing.T) {
	ta := newTestApp(t)
	f := ta.files(t, "a.txt", "b.txt")

	require.NoError(t, ta.run(t, "menu", "--json", f[0], f[1]))

	var items []struct {
		Action string   `json:"action"`
		Name   string   `json:"name"`
		Label  string   `json:"label"`
		Args   []string `json:"args"`
	}
	env := decodeData(t, ta.stdout.Bytes(), &items)
	assert.True(t, env.Success)
	assert.Equal(t, "menu", env.Command)
	require.Len(t, items, 1)
	assert.Equal(t, "compare", items[0].Action)
	assert.Equal(t, "NautilusCompareExtension::CompareWithin", items[0].Name)
	assert.Equal(t, f, items[0].Args)
}

func TestMenu_TextTruncatesLongLabels(t *testing.T) {
	ta := newTestApp(t)
	long := strings.Repeat("x", 80) + ".txt"
	f := ta.files(t, long, "b.txt")

	require.NoError(t, ta.run(t, "remember", f[0]))
	ta.reset()
	require.NoError(t, ta.run(t, "menu", f[1]))

	lines := strings.Split(strings.TrimSpace(ta.stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "compare-to"))
	assert.True(t, strings.HasSuffix(lines[0], "..."), lines[0])
	assert.Contains(t, lines[1], "compare-later")
}

func TestMenu_NoValidFiles(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run(t, "menu", filepath.Join(ta.dir, "missing")))
	assert.Contains(t, ta.stdout.String(), "No actions")

	ta.reset()
	require.NoError(t, ta.run(t, "menu", "--json", filepath.Join(ta.dir, "missing")))
	var items []interface{}
	decodeData(t, ta.stdout.Bytes(), &items)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestMenu_RequiresFiles(t *testing.T) {
	ta := newTestApp(t)
	err := ta.run(t, "menu")
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestMenu_YAML(t *testing.T) {
	ta := newTestApp(t)
	f := ta.files(t, "a.txt")
	require.NoError(t, ta.run(t, "menu", "--format", "yaml", f[0]))

	var out struct {
		Success bool `yaml:"success"`
		Data    []struct {
			Action string `yaml:"action"`
		} `yaml:"data"`
	}
	require.NoError(t, yaml.Unmarshal(ta.stdout.Bytes(), &out))
	assert.True(t, out.Success)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "compare-later", out.Data[0].Action)
}

func TestMenu_UnsupportedFormat(t *testing.T) {
	ta := newTestApp(t)
	f := ta.files(t, "a.txt")
	err := ta.run(t, "menu", "--format", "xml", f[0])
	assert.Equal(t, ExitUsageError, GetExitCode(err))
	assert.Empty(t, ta.stdout.String())
}

// =============================================================================
// ACTIVATION
// =============================================================================

func TestRememberThenCompareTo_AcrossInvocations(t *testing.T) {
	ta := newTestApp(t)
	f := ta.files(t, "a.txt", "c.txt")
	ta.launcher.On("Launch", mock.Anything, "kdiff3", []string{f[0], f[1]}).Return(nil).Once()

	require.NoError(t, ta.run(t, "remember", f[0]))
	assert.Contains(t, ta.stdout.String(), "Remembered")

	// A separate App sees the remembered item through the session file.
	second := newTestApp(t)
	second.Env = ta.Env
	second.Launcher = ta.launcher
	require.NoError(t, second.run(t, "activate", "compare-to", f[1]))
	assert.Contains(t, second.stdout.String(), "Started kdiff3 with 2 items")
	ta.launcher.AssertExpectations(t)

	st, err := session.NewFileStore(ta.Env.StateDir).Load()
	require.NoError(t, err)
	rem, ok := st.Remembered()
	assert.True(t, ok)
	assert.Equal(t, f[0], rem)
}

func TestCompare_PicksEngineByCount(t *testing.T) {
	ta := newTestApp(t)
	f := ta.files(t, "1", "2", "3", "4")
	ta.launcher.On("Launch", mock.Anything, "kdiff3", f[:3]).Return(nil).Once()
	ta.launcher.On("Launch", mock.Anything, "diffuse", f).Return(nil).Once()

	require.NoError(t, ta.run(t, "compare", f[0], f[1], f[2]))
	require.NoError(t, ta.run(t, "compare", f[0], f[1], f[2], f[3]))
	ta.launcher.AssertExpectations(t)
}

func TestCompare_RecordsHistory(t *testing.T) {
	ta := newTestApp(t)
	f := ta.files(t, "a", "b")
	ta.launcher.On("Launch", mock.Anything, "kdiff3", f).Return(nil)

	require.NoError(t, ta.run(t, "compare", f[0], f[1]))
	ta.reset()
	require.NoError(t, ta.run(t, "history", "--json"))

	var entries []history.Entry
	decodeData(t, ta.stdout.Bytes(), &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "compare", entries[0].Action)
	assert.Equal(t, "kdiff3", entries[0].Engine)
	assert.Equal(t, f, entries[0].Args)
}

func TestCompare_DryRun(t *testing.T) {
	ta := newTestApp(t)
	f := ta.files(t, "a b", "c")

	require.NoError(t, ta.run(t, "compare", "--dry-run", f[0], f[1]))
	assert.Equal(t, "kdiff3 '"+f[0]+"' "+f[1]+"\n", ta.stdout.String())
	ta.launcher.AssertNotCalled(t, "Launch", mock.Anything, mock.Anything, mock.Anything)

	ta.reset()
	require.NoError(t, ta.run(t, "compare", "--dry-run", "--json", f[0], f[1]))
	var data ActivateData
	decodeData(t, ta.stdout.Bytes(), &data)
	assert.True(t, data.DryRun)
	assert.Equal(t, "kdiff3", data.Engine)
	assert.Equal(t, "kdiff3 '"+f[0]+"' "+f[1], data.CommandLine)

	// Dry runs are not recorded.
	ta.reset()
	require.NoError(t, ta.run(t, "history", "--json"))
	var entries []history.Entry
	decodeData(t, ta.stdout.Bytes(), &entries)
	assert.Empty(t, entries)
}

func TestCompare_SelfComparisonNotOffered(t *testing.T) {
	ta := newTestApp(t)
	f := ta.files(t, "a.txt")

	require.NoError(t, ta.run(t, "remember", f[0]))
	err := ta.run(t, "compare", f[0])
	assert.ErrorIs(t, err, provider.ErrNotOffered)
	assert.Equal(t, ExitNotOffered, GetExitCode(err))
}

func TestActivate_Errors(t *testing.T) {
	ta := newTestApp(t)
	f := ta.files(t, "a.txt")

	err := ta.run(t, "activate")
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	err = ta.run(t, "activate", "bogus", f[0])
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	err = ta.run(t, "activate", "compare-to", f[0])
	assert.ErrorIs(t, err, provider.ErrNotOffered)

	err = ta.run(t, "remember", f[0], f[0])
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

// =============================================================================
// SESSION
// =============================================================================

func TestSession_ShowAndForget(t *testing.T) {
	ta := newTestApp(t)
	f := ta.files(t, "a.txt")

	require.NoError(t, ta.run(t, "session"))
	assert.Contains(t, ta.stdout.String(), "(nothing)")

	require.NoError(t, ta.run(t, "remember", f[0]))
	ta.reset()
	require.NoError(t, ta.run(t, "session", "--json"))
	var data SessionData
	decodeData(t, ta.stdout.Bytes(), &data)
	assert.True(t, data.HasItem)
	assert.Equal(t, f[0], data.Remembered)
	assert.Equal(t, filepath.Join(ta.Env.StateDir, session.FileName), data.Path)

	ta.reset()
	require.NoError(t, ta.run(t, "session", "forget", "--json"))
	decodeData(t, ta.stdout.Bytes(), &data)
	assert.False(t, data.HasItem)

	err := ta.run(t, "session", "explode")
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

// =============================================================================
// CONFIG
// =============================================================================

func TestConfig_Show(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run(t, "config", "--json"))

	var data ConfigData
	decodeData(t, ta.stdout.Bytes(), &data)
	assert.Equal(t, config.Engines{TwoWay: "kdiff3", ThreeWay: "kdiff3", Multi: "diffuse"}, data.Engines)
	assert.Equal(t, ta.Env.ConfigPath, data.UserPath)

	ta.reset()
	require.NoError(t, ta.run(t, "config", "show"))
	out := ta.stdout.String()
	assert.Contains(t, out, "two_way")
	assert.Contains(t, out, "diffuse")
}

func TestConfig_ShowTOML(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run(t, "config", "show", "--format", "toml"))
	out := ta.stdout.String()
	assert.Contains(t, out, "[settings]")
	assert.Contains(t, out, `diff_engine_path_multi = "diffuse"`)

	// toml is only offered by config show
	err := ta.run(t, "config", "path", "--format", "toml")
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestConfig_SetPersists(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run(t, "config", "set", "three_way", "meld"))
	require.NoError(t, ta.run(t, "config", "set", "multi", ""))
	assert.Contains(t, ta.stdout.String(), "multi_way = (disabled)")

	store, err := config.NewStore(config.WithPaths(ta.Env.ConfigPath, ""), config.WithInstaller(ta.Detector))
	require.NoError(t, err)
	require.NoError(t, store.Load())
	assert.Equal(t, config.Engines{TwoWay: "kdiff3", ThreeWay: "meld"}, store.Engines())
}

func TestConfig_SetErrors(t *testing.T) {
	ta := newTestApp(t)

	err := ta.run(t, "config", "set", "four_way", "meld")
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	err = ta.run(t, "config", "set", "two_way")
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	err = ta.run(t, "config", "set", "two_way", "mel\nd")
	assert.Equal(t, ExitConfigError, GetExitCode(err))
}

func TestConfig_PathAndReset(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run(t, "config", "path"))
	assert.Equal(t, ta.Env.ConfigPath+"\n", ta.stdout.String())

	require.NoError(t, ta.run(t, "config", "reset"))
	_, err := os.Stat(ta.Env.ConfigPath)
	assert.True(t, os.IsNotExist(err))
}

// =============================================================================
// ENGINES
// =============================================================================

func TestEngines(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run(t, "engines", "--json"))

	var rows []EngineRow
	decodeData(t, ta.stdout.Bytes(), &rows)

	byName := map[string]EngineRow{}
	for _, r := range rows {
		byName[r.Name] = r
	}
	require.Contains(t, byName, "kdiff3")
	assert.True(t, byName["kdiff3"].Installed)
	assert.Equal(t, []string{"two_way", "three_way"}, byName["kdiff3"].Slots)
	assert.Equal(t, []string{"multi_way"}, byName["diffuse"].Slots)
	assert.False(t, byName["meld"].Installed)
	assert.True(t, byName["meld"].URICompat)
	assert.NotContains(t, byName, "")
}

// =============================================================================
// HISTORY
// =============================================================================

func TestHistory_LimitAndClear(t *testing.T) {
	ta := newTestApp(t)
	f := ta.files(t, "a", "b")
	ta.launcher.On("Launch", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, ta.run(t, "compare", f[0], f[1]))
	}

	ta.reset()
	require.NoError(t, ta.run(t, "history", "--limit", "2", "--json"))
	var entries []history.Entry
	decodeData(t, ta.stdout.Bytes(), &entries)
	assert.Len(t, entries, 2)

	ta.reset()
	require.NoError(t, ta.run(t, "history"))
	assert.Equal(t, 3, strings.Count(ta.stdout.String(), "kdiff3"))

	require.NoError(t, ta.run(t, "history", "clear"))
	ta.reset()
	require.NoError(t, ta.run(t, "history"))
	assert.Contains(t, ta.stdout.String(), "No comparisons yet")

	err := ta.run(t, "history", "--limit", "0")
	assert.Equal(t, ExitUsageError, GetExitCode(err))
	err = ta.run(t, "history", "--limit", "many")
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

// =============================================================================
// MISC
// =============================================================================

func TestVersionAndHelp(t *testing.T) {
	ta := newTestApp(t)
	require.NoError(t, ta.run(t, "version", "--json"))
	var v VersionData
	env := decodeData(t, ta.stdout.Bytes(), &v)
	assert.Equal(t, Version, v.Version)
	assert.Equal(t, "version", env.Command)

	ta.reset()
	require.NoError(t, ta.run(t))
	assert.Contains(t, ta.stdout.String(), "Usage:")
}

func TestUnknownCommand(t *testing.T) {
	ta := newTestApp(t)
	err := ta.run(t, "frobnicate")
	assert.Equal(t, ExitUsageError, GetExitCode(err))
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestPrefs_RequiresTTY(t *testing.T) {
	if IsTTY() {
		t.Skip("stdin is a terminal")
	}
	ta := newTestApp(t)
	err := ta.run(t, "prefs")
	var ttyErr *TTYRequiredError
	assert.ErrorAs(t, err, &ttyErr)
}

func TestDisplayError(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, NewNotFoundError("engine", "foo"), false)
	assert.Equal(t, "[ERROR] engine not found: foo\n", buf.String())

	buf.Reset()
	DisplayError(&buf, NewValidationError("limit", "x", "not a number"), true)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "validation_error", out["error_type"])
	assert.Equal(t, float64(ExitUsageError), out["exit_code"])
}
