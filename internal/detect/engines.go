// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/boamaod/nautilus-compare/internal/logging"
)

// =============================================================================
// ENGINE CONSTANTS
// =============================================================================

// DefaultEngine is the two-way engine assumed when nothing else is known.
const DefaultEngine = "meld"

// PredefinedEngines lists the engines nautilus-compare knows about, ordered
// by preference.
var PredefinedEngines = []string{"meld", "kdiff3", "diffuse", "kompare", "fldiff", "tkdiff", "xxdiff"}

// URICompatEngines accept URIs (including non-local ones) as arguments.
var URICompatEngines = []string{"meld"}

// LookupDirs are the directories searched for installed engines.
var LookupDirs = []string{"/usr/bin", "/usr/local/bin"}

// IsURICompatible reports whether engine takes URIs instead of plain paths.
func IsURICompatible(engine string) bool {
	return slices.Contains(URICompatEngines, engine)
}

// =============================================================================
// DETECTOR
// =============================================================================

// Detector looks for engines in a fixed list of directories.
type Detector struct {
	Dirs   []string
	Logger logging.Logger
}

// Default returns a detector over LookupDirs.
func Default() *Detector {
	return New(LookupDirs)
}

// New returns a detector over dirs.
func New(dirs []string) *Detector {
	return &Detector{Dirs: slices.Clone(dirs), Logger: logging.GetLogger()}
}

// Installed returns the subset of names present in any lookup directory,
// keeping the order of names. Missing directories are skipped.
func (d *Detector) Installed(names []string) []string {
	var found []string
	for _, name := range names {
		if name == "" || slices.Contains(found, name) {
			continue
		}
		if _, ok := d.Locate(name); ok {
			found = append(found, name)
		}
	}
	return found
}

// Locate returns the first lookup-directory path holding name.
func (d *Detector) Locate(name string) (string, bool) {
	if name == "" || filepath.Base(name) != name {
		return "", false
	}
	for _, dir := range d.Dirs {
		path := filepath.Join(dir, name)
		_, err := os.Lstat(path)
		if err == nil {
			return path, true
		}
		if !errors.Is(err, fs.ErrNotExist) && d.Logger != nil {
			d.Logger.Debug("engine lookup skipped", "dir", dir, "error", err)
		}
	}
	return "", false
}

// =============================================================================
// DIAGNOSTICS
// =============================================================================

// EngineStatus describes one engine for the `engines` command.
type EngineStatus struct {
	Name       string `json:"name" yaml:"name"`
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
	Installed  bool   `json:"installed" yaml:"installed"`
	Executable bool   `json:"executable" yaml:"executable"`
	URICompat  bool   `json:"uri_compat" yaml:"uri_compat"`
}

// Status reports on each of names. Absolute engine paths from the config
// are checked directly instead of through the lookup directories.
func (d *Detector) Status(names []string) []EngineStatus {
	out := make([]EngineStatus, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		st := EngineStatus{Name: name, URICompat: IsURICompatible(name)}
		if filepath.IsAbs(name) {
			if _, err := os.Stat(name); err == nil {
				st.Path, st.Installed = name, true
			}
		} else {
			st.Path, st.Installed = d.Locate(name)
		}
		if st.Installed {
			st.Executable = isExecutable(st.Path)
		}
		out = append(out, st)
	}
	return out
}
