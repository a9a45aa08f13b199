package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskboard/pkg/domain/interfaces"
	"github.com/secmon-lab/riskboard/pkg/domain/model"
)

// SessionRepository keeps sessions in process memory. Sessions are lost on restart,
// which only costs the viewer a reload.
type SessionRepository[T any] struct {
	mu       sync.RWMutex
	sessions map[model.SessionID]*model.Session[T]
	now      func() time.Time
}

// SessionOption configures a SessionRepository
type SessionOption[T any] func(*SessionRepository[T])

// WithClock replaces the time source used to refresh access times
func WithClock[T any](now func() time.Time) SessionOption[T] {
	return func(r *SessionRepository[T]) {
		r.now = now
	}
}

// NewSessionRepository creates an empty in-memory session repository
func NewSessionRepository[T any](opts ...SessionOption[T]) *SessionRepository[T] {
	r := &SessionRepository[T]{
		sessions: make(map[model.SessionID]*model.Session[T]),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ interfaces.SessionRepository[struct{}] = &SessionRepository[struct{}]{}

// Get returns the session with the given ID and refreshes its access time
func (r *SessionRepository[T]) Get(ctx context.Context, id model.SessionID) (*model.Session[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	session.AccessedAt = r.now()

	// State is shared: it is the controller owned by this session.
	sessionCopy := *session
	return &sessionCopy, nil
}

// Put stores or replaces a session
func (r *SessionRepository[T]) Put(ctx context.Context, session *model.Session[T]) error {
	if session == nil {
		return goerr.New("session is nil")
	}
	if session.ID == "" {
		return goerr.New("session ID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sessionCopy := *session
	r.sessions[session.ID] = &sessionCopy
	return nil
}

// Delete removes a session
func (r *SessionRepository[T]) Delete(ctx context.Context, id model.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

// DeleteIdle removes every session last accessed before the cutoff
func (r *SessionRepository[T]) DeleteIdle(ctx context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if session.IsIdle(before) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Count returns the number of stored sessions
func (r *SessionRepository[T]) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions), nil
}
