// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/boamaod/nautilus-compare/internal/detect"
	"github.com/boamaod/nautilus-compare/internal/logging"
	"github.com/boamaod/nautilus-compare/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Engines holds one engine identifier per comparison arity. An empty string
// disables the arity.
type Engines struct {
	TwoWay   string `json:"two_way" yaml:"two_way"`
	ThreeWay string `json:"three_way" yaml:"three_way"`
	Multi    string `json:"multi_way" yaml:"multi_way"`
}

// Config is a snapshot of the store.
type Config struct {
	Engines Engines  `json:"engines" yaml:"engines"`
	Known   []string `json:"known" yaml:"known"`
}

// Clone returns a deep copy.
func (c Config) Clone() Config {
	c.Known = slices.Clone(c.Known)
	return c
}

// Section and key names of the config file.
const (
	SectionSettings = "settings"

	KeyTwoWay   = "diff_engine_path"
	KeyThreeWay = "diff_engine_path_3way"
	KeyMulti    = "diff_engine_path_multi"
	KeyKnown    = "defined_comparators"
)

// fileFormat mirrors the on-disk layout.
type fileFormat struct {
	Settings settingsTable `toml:"settings"`
}

type settingsTable struct {
	TwoWay   string   `toml:"diff_engine_path"`
	ThreeWay string   `toml:"diff_engine_path_3way"`
	Multi    string   `toml:"diff_engine_path_multi"`
	Known    []string `toml:"defined_comparators"`
}

// Default returns the configuration assumed before anything is loaded:
// the default two-way engine and nothing else.
func Default() Config {
	return Config{Engines: Engines{TwoWay: detect.DefaultEngine}}
}

// =============================================================================
// STORE
// =============================================================================

// Installer reports which of the named engines are installed, in order.
type Installer interface {
	Installed(names []string) []string
}

// Store loads and saves the engine configuration. It is safe for concurrent
// use.
type Store struct {
	mu  sync.RWMutex
	cfg Config

	userPath   string
	systemPath string
	installer  Installer
	candidates []string
	substitute SubstitutionPolicy
	logger     logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithPaths sets the user and system config file paths.
func WithPaths(user, system string) Option {
	return func(s *Store) {
		s.userPath = user
		s.systemPath = system
	}
}

// WithInstaller replaces the engine detector.
func WithInstaller(i Installer) Option {
	return func(s *Store) { s.installer = i }
}

// WithCandidates replaces the predefined engine preference list.
func WithCandidates(names []string) Option {
	return func(s *Store) { s.candidates = slices.Clone(names) }
}

// WithSubstitution sets the policy for slots whose engine is not known.
func WithSubstitution(p SubstitutionPolicy) Option {
	return func(s *Store) { s.substitute = p }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a store holding Default() and resolves file locations
// from the environment unless WithPaths is given.
func NewStore(opts ...Option) (*Store, error) {
	s := &Store{
		cfg:        Default(),
		installer:  detect.Default(),
		candidates: slices.Clone(detect.PredefinedEngines),
		substitute: PreferInstalled,
		logger:     logging.GetLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.userPath == "" {
		e, err := LoadEnv()
		if err != nil {
			return nil, err
		}
		user, err := e.UserConfigPath()
		if err != nil {
			return nil, err
		}
		s.userPath = user
		if s.systemPath == "" {
			s.systemPath = e.SystemConfigPath
		}
	}
	return s, nil
}

// UserPath returns the file Save writes to.
func (s *Store) UserPath() string { return s.userPath }

// SystemPath returns the system-wide fallback file.
func (s *Store) SystemPath() string { return s.systemPath }

// Engines returns the current engine slots.
func (s *Store) Engines() Engines {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Engines
}

// Known returns a copy of the known engine list.
func (s *Store) Known() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cfg.Known)
}

// Snapshot returns a copy of the whole configuration.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Clone()
}

// SetEngines replaces all three slots. Call Save to persist.
func (s *Store) SetEngines(e Engines) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Engines = e
	return nil
}

// Set changes one slot. Call Save to persist.
func (s *Store) Set(slot Slot, engine string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.cfg.Engines
	e.set(slot, engine)
	if err := e.Validate(); err != nil {
		return err
	}
	s.cfg.Engines = e
	return nil
}

// =============================================================================
// LOAD
// =============================================================================

// Load reads the first existing config file. A file that is not TOML is
// read as a legacy INI file; a complete legacy user file is rewritten as
// TOML. A complete file is adopted verbatim. A missing, partial or unparsable file triggers the heuristic
// repair described in the package documentation, and the result is written
// to the user file at once. The in-memory state is updated even when that
// write fails; the write error is returned.
func (s *Store) Load() error {
	cfg := Default()
	complete, legacy := false, false

	path, found := s.existingPath()
	if found {
		var err error
		complete, err = readFile(path, &cfg)
		if err != nil {
			var lerr error
			complete, lerr = readLegacyFile(path, &cfg)
			if lerr != nil {
				s.logger.Warn("config unreadable, rebuilding", "path", path, "error", err, "legacy_error", lerr)
				cfg = Default()
				complete = false
			} else {
				legacy = true
				s.logger.Info("legacy INI config read", "path", path, "complete", complete)
			}
		}
	}

	if complete {
		s.mu.Lock()
		s.cfg = cfg
		s.mu.Unlock()
		s.logger.Debug("config loaded", "path", path)
		if legacy && path == s.userPath {
			if err := writeFile(s.userPath, cfg); err != nil {
				return fmt.Errorf("failed to migrate legacy config: %w", err)
			}
		}
		return nil
	}

	cfg = s.repair(cfg)

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()

	s.logger.Info("config rebuilt from detected engines",
		"two_way", cfg.Engines.TwoWay,
		"three_way", cfg.Engines.ThreeWay,
		"multi_way", cfg.Engines.Multi,
		"known", cfg.Known)

	if err := writeFile(s.userPath, cfg); err != nil {
		return fmt.Errorf("failed to persist repaired config: %w", err)
	}
	return nil
}

// existingPath returns the first of the user and system files that exists.
func (s *Store) existingPath() (string, bool) {
	for _, p := range []string{s.userPath, s.systemPath} {
		if p == "" {
			continue
		}
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// readFile decodes path into cfg, adopting every key that is present.
// complete reports whether all four keys were found.
func readFile(path string, cfg *Config) (complete bool, err error) {
	var f fileFormat
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return false, fmt.Errorf("failed to decode TOML file: %w", err)
	}

	complete = true
	if md.IsDefined(SectionSettings, KeyTwoWay) {
		cfg.Engines.TwoWay = f.Settings.TwoWay
	} else {
		complete = false
	}
	if md.IsDefined(SectionSettings, KeyThreeWay) {
		cfg.Engines.ThreeWay = f.Settings.ThreeWay
	} else {
		complete = false
	}
	if md.IsDefined(SectionSettings, KeyMulti) {
		cfg.Engines.Multi = f.Settings.Multi
	} else {
		complete = false
	}
	if md.IsDefined(SectionSettings, KeyKnown) {
		cfg.Known = slices.Clone(f.Settings.Known)
	} else {
		complete = false
	}
	return complete, nil
}

// repair fills in the known engine list and fixes slots pointing at
// unknown engines.
func (s *Store) repair(cfg Config) Config {
	known := make([]string, 0, len(cfg.Known)+len(s.candidates)+1)
	for _, name := range cfg.Known {
		if name != "" && !slices.Contains(known, name) {
			known = append(known, name)
		}
	}
	for _, name := range s.installer.Installed(s.candidates) {
		if !slices.Contains(known, name) {
			known = append(known, name)
		}
	}

	// "" is the "no engine" choice and always comes first.
	known = append([]string{""}, known...)

	for _, slot := range Slots {
		if v := cfg.Engines.Get(slot); !slices.Contains(known, v) {
			sub := s.substitute(known)
			s.logger.Info("engine not available, substituting",
				"slot", slot.String(), "engine", v, "substitute", sub)
			cfg.Engines.set(slot, sub)
		}
	}

	sort.Strings(known)
	cfg.Known = known
	return cfg
}

// =============================================================================
// SAVE
// =============================================================================

// Save writes the slots and the known list to the user file. Slot values
// missing from the known list are appended to it first.
func (s *Store) Save() error {
	s.mu.Lock()
	for _, slot := range Slots {
		if v := s.cfg.Engines.Get(slot); !slices.Contains(s.cfg.Known, v) {
			s.cfg.Known = append(s.cfg.Known, v)
		}
	}
	cfg := s.cfg.Clone()
	s.mu.Unlock()

	if err := writeFile(s.userPath, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	s.logger.Debug("config saved", "path", s.userPath)
	return nil
}

// Reset removes the user config file so the next Load starts over.
func (s *Store) Reset() error {
	if err := os.Remove(s.userPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove config: %w", err)
	}
	s.mu.Lock()
	s.cfg = Default()
	s.mu.Unlock()
	return nil
}

// Encode renders cfg in the on-disk format.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# nautilus-compare configuration\n")
	buf.WriteString("# Empty engine means the comparison is disabled.\n\n")

	known := cfg.Known
	if known == nil {
		known = []string{}
	}
	f := fileFormat{Settings: settingsTable{
		TwoWay:   cfg.Engines.TwoWay,
		ThreeWay: cfg.Engines.ThreeWay,
		Multi:    cfg.Engines.Multi,
		Known:    known,
	}}
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFile(path string, cfg Config) error {
	if path == "" {
		return ErrNoUserConfigDir
	}
	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(path, data, 0644)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents an invalid engine identifier.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate rejects identifiers that cannot name a program.
func (e Engines) Validate() error {
	for _, slot := range Slots {
		v := e.Get(slot)
		if v != strings.TrimSpace(v) {
			return ValidationError{Field: slot.String(), Message: "engine must not have surrounding whitespace"}
		}
		if strings.ContainsAny(v, "\x00\n\r") {
			return ValidationError{Field: slot.String(), Message: "engine contains control characters"}
		}
	}
	return nil
}
