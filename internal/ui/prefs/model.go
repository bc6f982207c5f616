// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prefs is the interactive editor for the three engine slots.
//
// Each slot cycles through the known engines, the empty entry meaning
// "disabled". Saving goes through the configuration store, so any engine
// chosen here is also added to the known list.
package prefs

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/boamaod/nautilus-compare/internal/config"
	"github.com/boamaod/nautilus-compare/internal/ui/styles"
)

// Store is what the editor needs from the configuration store.
type Store interface {
	Engines() config.Engines
	Known() []string
	SetEngines(config.Engines) error
	Save() error
}

// savedMsg reports the outcome of a save.
type savedMsg struct {
	err error
}

// Model is the bubbletea model of the preferences editor.
type Model struct {
	store     Store
	keys      KeyMap
	help      help.Model
	theme     *styles.Theme
	installed map[string]bool

	known   []string
	choice  [3]int // index into known per slot
	initial config.Engines
	cursor  int

	saving bool
	saved  bool
	err    error
	width  int
	quit   bool
}

// New builds an editor over store. installed lists the engines found on
// this machine; they are marked in the view.
func New(store Store, installed []string) Model {
	m := Model{
		store:     store,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     styles.NewTheme(),
		installed: make(map[string]bool, len(installed)),
	}
	for _, name := range installed {
		m.installed[name] = true
	}

	m.initial = store.Engines()
	m.known = knownWith(store.Known(), m.initial)
	m.selectEngines(m.initial)
	return m
}

// knownWith returns known with "" first and every slot value present.
func knownWith(known []string, e config.Engines) []string {
	out := []string{""}
	for _, k := range known {
		if k != "" && !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	for _, slot := range config.Slots {
		if v := e.Get(slot); v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func (m *Model) selectEngines(e config.Engines) {
	for i, slot := range config.Slots {
		m.choice[i] = max(0, slices.Index(m.known, e.Get(slot)))
	}
}

// Engines returns the engines currently selected in the editor.
func (m Model) Engines() config.Engines {
	var e config.Engines
	for i, slot := range config.Slots {
		e = e.With(slot, m.known[m.choice[i]])
	}
	return e
}

// Dirty reports whether the selection differs from the last saved state.
func (m Model) Dirty() bool { return m.Engines() != m.initial }

// Saved reports whether at least one save succeeded.
func (m Model) Saved() bool { return m.saved }

// Err returns the last save error.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case savedMsg:
		m.saving = false
		m.err = msg.err
		if msg.err == nil {
			m.saved = true
			m.initial = m.Engines()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor + len(config.Slots) - 1) % len(config.Slots)
	case key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(config.Slots)
	case key.Matches(msg, m.keys.Prev):
		m.choice[m.cursor] = (m.choice[m.cursor] + len(m.known) - 1) % len(m.known)
		m.err = nil
	case key.Matches(msg, m.keys.Next):
		m.choice[m.cursor] = (m.choice[m.cursor] + 1) % len(m.known)
		m.err = nil
	case key.Matches(msg, m.keys.Clear):
		m.choice[m.cursor] = 0
		m.err = nil
	case key.Matches(msg, m.keys.Reset):
		m.selectEngines(m.initial)
		m.err = nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Save):
		m.saving = true
		return m, m.save(m.Engines())
	}
	return m, nil
}

func (m Model) save(e config.Engines) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if err := store.SetEngines(e); err != nil {
			return savedMsg{err: err}
		}
		return savedMsg{err: store.Save()}
	}
}

// =============================================================================
// VIEW
// =============================================================================

var slotTitles = map[config.Slot]string{
	config.SlotTwoWay:   "Two-way",
	config.SlotThreeWay: "Three-way",
	config.SlotMulti:    "Multi-way",
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quit {
		return ""
	}
	t := m.theme
	var b strings.Builder

	b.WriteString(t.Title.Render("Comparison engines"))
	b.WriteString("\n")
	b.WriteString(t.Subtitle.Render("Choose the program used for each number of files"))
	b.WriteString("\n\n")

	for i, slot := range config.Slots {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			t.SlotLabel.Render(slotTitles[slot]),
			t.Arrow.Render("< "),
			m.renderEngine(m.known[m.choice[i]]),
			t.Arrow.Render(" >"),
		)
		if i == m.cursor {
			b.WriteString(t.RowSelected.Render(row))
		} else {
			b.WriteString(t.Row.Render(row))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return t.Container.Render(b.String())
}

func (m Model) renderEngine(name string) string {
	t := m.theme
	if name == "" {
		return t.Disabled.Render("(disabled)")
	}
	mark := t.Missing.Render(" not found")
	if m.installed[name] {
		mark = t.Installed.Render(" installed")
	}
	return t.Engine.Render(name) + mark
}

func (m Model) status() string {
	t := m.theme
	switch {
	case m.saving:
		return t.Muted.Render("Saving...")
	case m.err != nil:
		return t.Error.Render("Save failed: " + m.err.Error())
	case m.Dirty():
		return t.Dirty.Render("Unsaved changes")
	case m.saved:
		return t.Success.Render("Saved")
	}
	return t.Muted.Render(" ")
}

// Run starts the editor on the terminal and returns the final model.
func Run(store Store, installed []string, opts ...tea.ProgramOption) (Model, error) {
	final, err := tea.NewProgram(New(store, installed), opts...).Run()
	if err != nil {
		return Model{}, err
	}
	return final.(Model), nil
}
