// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/boamaod/nautilus-compare/internal/util"
)

// FileName is the session file inside the state directory.
const FileName = "session.json"

// FileStore persists a Session as JSON so that separate CLI invocations
// share the remembered item.
type FileStore struct {
	path string
}

// NewFileStore stores the session in dir/session.json.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, FileName)}
}

// Path returns the session file path.
func (f *FileStore) Path() string { return f.path }

// Load returns the stored session, or a fresh one when none exists or the
// file is corrupt.
func (f *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var st Status
	if err := json.Unmarshal(data, &st); err != nil {
		return New(), nil
	}
	return FromStatus(st), nil
}

// Save writes s to disk atomically. The state directory is private to the
// user because remembered paths can be sensitive.
func (f *FileStore) Save(s *Session) error {
	data, err := json.MarshalIndent(s.GetStatus(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := util.AtomicWriteFileWithDir(f.path, data, 0600, 0700); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}
