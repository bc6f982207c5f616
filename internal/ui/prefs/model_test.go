// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boamaod/nautilus-compare/internal/config"
)

type fakeStore struct {
	engines config.Engines
	known   []string
	saves   int
	saveErr error
}

func (f *fakeStore) Engines() config.Engines { return f.engines }
func (f *fakeStore) Known() []string         { return f.known }
func (f *fakeStore) SetEngines(e config.Engines) error {
	if err := e.Validate(); err != nil {
		return err
	}
	f.engines = e
	return nil
}
func (f *fakeStore) Save() error {
	f.saves++
	return f.saveErr
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds keys to m and runs any resulting command that is not Quit.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(keyMsg(k))
		m = next.(Model)
		if cmd == nil {
			continue
		}
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			continue
		}
		next, _ = m.Update(msg)
		m = next.(Model)
	}
	return m
}

func newStore() *fakeStore {
	return &fakeStore{
		engines: config.Engines{TwoWay: "meld"},
		known:   []string{"", "kdiff3", "meld"},
	}
}

func TestNew_SelectsCurrentEngines(t *testing.T) {
	m := New(newStore(), []string{"meld"})
	assert.Equal(t, config.Engines{TwoWay: "meld"}, m.Engines())
	assert.False(t, m.Dirty())
}

func TestNew_AddsUnknownSlotValues(t *testing.T) {
	s := &fakeStore{engines: config.Engines{TwoWay: "/opt/bc/bcompare"}, known: []string{"meld"}}
	m := New(s, nil)
	assert.Equal(t, []string{"", "meld", "/opt/bc/bcompare"}, m.known)
	assert.Equal(t, "/opt/bc/bcompare", m.Engines().TwoWay)
}

func TestCycleAndSave(t *testing.T) {
	s := newStore()
	m := New(s, nil)

	// Two-way: meld -> "" (wraps)
	m = press(t, m, "right")
	assert.Equal(t, "", m.Engines().TwoWay)
	m = press(t, m, "left", "left")
	assert.Equal(t, "kdiff3", m.Engines().TwoWay)

	// Three-way: "" -> kdiff3 -> meld
	m = press(t, m, "down", "right", "right")
	assert.Equal(t, "meld", m.Engines().ThreeWay)
	assert.True(t, m.Dirty())

	m = press(t, m, "enter")
	require.NoError(t, m.Err())
	assert.True(t, m.Saved())
	assert.False(t, m.Dirty())
	assert.Equal(t, 1, s.saves)
	assert.Equal(t, config.Engines{TwoWay: "kdiff3", ThreeWay: "meld"}, s.engines)
}

func TestCursorWraps(t *testing.T) {
	m := New(newStore(), nil)
	m = press(t, m, "up", "right")
	assert.Equal(t, "kdiff3", m.Engines().Multi)
}

func TestClearAndRevert(t *testing.T) {
	m := New(newStore(), nil)
	m = press(t, m, "x")
	assert.Equal(t, "", m.Engines().TwoWay)

	m = press(t, m, "r")
	assert.Equal(t, "meld", m.Engines().TwoWay)
	assert.False(t, m.Dirty())
}

func TestSaveError(t *testing.T) {
	s := newStore()
	s.saveErr = errors.New("read-only file system")
	m := New(s, nil)

	m = press(t, m, "right", "enter")
	assert.EqualError(t, m.Err(), "read-only file system")
	assert.False(t, m.Saved())
	assert.True(t, m.Dirty())
	assert.Contains(t, m.View(), "Save failed")
}

func TestQuit(t *testing.T) {
	m := New(newStore(), nil)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(keyMsg("esc"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView(t *testing.T) {
	m := New(newStore(), []string{"meld"})
	v := m.View()
	assert.Contains(t, v, "Two-way")
	assert.Contains(t, v, "Three-way")
	assert.Contains(t, v, "Multi-way")
	assert.Contains(t, v, "meld")
	assert.Contains(t, v, "installed")
	assert.Contains(t, v, "(disabled)")

	m = press(t, m, "?")
	assert.Contains(t, m.View(), "disable slot")
}

func TestWithConfigStore(t *testing.T) {
	dir := t.TempDir()
	store, err := config.NewStore(
		config.WithPaths(filepath.Join(dir, "user.conf"), filepath.Join(dir, "system.conf")),
	)
	require.NoError(t, err)

	m := New(store, nil)
	m = press(t, m, "down", "right", "enter")
	require.NoError(t, m.Err())

	assert.Equal(t, "meld", store.Engines().ThreeWay)
	assert.FileExists(t, store.UserPath())
}
