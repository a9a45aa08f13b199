package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/riskboard/pkg/domain/model"
)

// SessionRepository stores per-viewer state of type T keyed by session ID
type SessionRepository[T any] interface {
	// Get returns the session and refreshes its last access time. It returns nil if absent.
	Get(ctx context.Context, id model.SessionID) (*model.Session[T], error)

	// Put stores or replaces a session
	Put(ctx context.Context, session *model.Session[T]) error

	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, id model.SessionID) error

	// DeleteIdle removes sessions not accessed since before and returns how many were removed
	DeleteIdle(ctx context.Context, before time.Time) (int, error)

	// Count returns the number of stored sessions
	Count(ctx context.Context) (int, error)
}
