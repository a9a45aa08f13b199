package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionID identifies one browser session
type SessionID string

// NewSessionID generates a new UUID v4 SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// Validate reports whether the ID is a well-formed UUID
func (id SessionID) Validate() error {
	if _, err := uuid.Parse(string(id)); err != nil {
		return err
	}
	return nil
}

// String returns the string representation of SessionID
func (id SessionID) String() string {
	return string(id)
}

// Session binds per-viewer state to a session ID
type Session[T any] struct {
	ID         SessionID
	CreatedAt  time.Time
	AccessedAt time.Time
	State      T
}

// NewSession creates a session with a fresh ID
func NewSession[T any](state T, now time.Time) *Session[T] {
	return &Session[T]{
		ID:         NewSessionID(),
		CreatedAt:  now,
		AccessedAt: now,
		State:      state,
	}
}

// IsIdle reports whether the session was last accessed before the cutoff
func (s *Session[T]) IsIdle(before time.Time) bool {
	return s.AccessedAt.Before(before)
}
