// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session tracks the remembered item for one file-manager session.
type Session struct {
	mu sync.Mutex

	id         string
	startTime  time.Time
	remembered string
	hasItem    bool
	updatedAt  time.Time
}

// New creates an empty session.
func New() *Session {
	return &Session{
		id:        uuid.NewString(),
		startTime: time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// StartTime returns when the session was created.
func (s *Session) StartTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startTime
}

// Remember replaces the remembered item.
func (s *Session) Remember(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remembered = path
	s.hasItem = true
	s.updatedAt = time.Now()
}

// Remembered returns the remembered item, if any.
func (s *Session) Remembered() (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remembered, s.hasItem
}

// Forget drops the remembered item.
func (s *Session) Forget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remembered = ""
	s.hasItem = false
	s.updatedAt = time.Now()
}

// UpdatedAt returns when the remembered item last changed.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// =============================================================================
// SESSION STATUS
// =============================================================================

// Status is a serializable view of a Session.
type Status struct {
	ID         string    `json:"id" yaml:"id"`
	StartTime  time.Time `json:"start_time" yaml:"start_time"`
	Remembered string    `json:"remembered,omitempty" yaml:"remembered,omitempty"`
	HasItem    bool      `json:"has_item" yaml:"has_item"`
	UpdatedAt  time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// GetStatus returns the current status.
func (s *Session) GetStatus() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		ID:         s.id,
		StartTime:  s.startTime,
		Remembered: s.remembered,
		HasItem:    s.hasItem,
		UpdatedAt:  s.updatedAt,
	}
}

// FromStatus rebuilds a Session from a stored status.
func FromStatus(st Status) *Session {
	s := &Session{
		id:         st.ID,
		startTime:  st.StartTime,
		remembered: st.Remembered,
		hasItem:    st.HasItem,
		updatedAt:  st.UpdatedAt,
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.startTime.IsZero() {
		s.startTime = time.Now()
	}
	return s
}
