package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskboard/pkg/domain/interfaces"
	"github.com/secmon-lab/riskboard/pkg/domain/model"
	"github.com/secmon-lab/riskboard/pkg/domain/types"
	"github.com/secmon-lab/riskboard/pkg/utils/logging"
)

// DashboardSession is a viewer session owning one Dashboard
type DashboardSession = model.Session[*Dashboard]

// SessionRepository stores dashboard sessions
type SessionRepository = interfaces.SessionRepository[*Dashboard]

// DashboardUseCase hands out one Dashboard per viewer session
type DashboardUseCase struct {
	api        interfaces.RiskAPI
	sessions   SessionRepository
	role       types.Role
	mentorName string
	now        func() time.Time
}

// NewDashboardUseCase creates a new DashboardUseCase
func NewDashboardUseCase(api interfaces.RiskAPI, sessions SessionRepository, role types.Role, mentorName string) *DashboardUseCase {
	return &DashboardUseCase{
		api:        api,
		sessions:   sessions,
		role:       role,
		mentorName: mentorName,
		now:        time.Now,
	}
}

// NewDashboard creates a dashboard that is not bound to any session
func (uc *DashboardUseCase) NewDashboard() *Dashboard {
	return NewDashboard(uc.api, uc.role, uc.mentorName)
}

// Open returns the session with the given ID, creating a new one when the ID is
// empty, malformed or unknown. created reports whether a new session was made.
func (uc *DashboardUseCase) Open(ctx context.Context, id model.SessionID) (session *DashboardSession, created bool, err error) {
	if id != "" && id.Validate() == nil {
		existing, err := uc.sessions.Get(ctx, id)
		if err != nil {
			return nil, false, goerr.Wrap(err, "failed to get session", goerr.V(SessionIDKey, id))
		}
		if existing != nil {
			return existing, false, nil
		}
	}

	session = model.NewSession(uc.NewDashboard(), uc.now())
	if err := uc.sessions.Put(ctx, session); err != nil {
		return nil, false, goerr.Wrap(err, "failed to save session", goerr.V(SessionIDKey, session.ID))
	}

	logging.From(ctx).Debug("dashboard session created", "session_id", session.ID)
	return session, true, nil
}

// Lookup returns an existing session. Fragment requests use it so that they never
// render a dashboard that was not loaded by a page request.
func (uc *DashboardUseCase) Lookup(ctx context.Context, id model.SessionID) (*DashboardSession, error) {
	if id == "" || id.Validate() != nil {
		return nil, goerr.Wrap(ErrSessionNotFound, "malformed session ID", goerr.V(SessionIDKey, id))
	}

	session, err := uc.sessions.Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session", goerr.V(SessionIDKey, id))
	}
	if session == nil {
		return nil, goerr.Wrap(ErrSessionNotFound, "unknown session", goerr.V(SessionIDKey, id))
	}
	return session, nil
}

// Close drops a session
func (uc *DashboardUseCase) Close(ctx context.Context, id model.SessionID) error {
	if err := uc.sessions.Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete session", goerr.V(SessionIDKey, id))
	}
	return nil
}
