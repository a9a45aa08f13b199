package usecase

import (
	"github.com/secmon-lab/riskboard/pkg/domain/interfaces"
	"github.com/secmon-lab/riskboard/pkg/domain/types"
	"github.com/secmon-lab/riskboard/pkg/repository/memory"
)

type UseCases struct {
	api        interfaces.RiskAPI
	role       types.Role
	mentorName string
	sessions   SessionRepository
	notifier   interfaces.Notifier

	Dashboard *DashboardUseCase
	Notify    *NotifyUseCase
}

type Option func(*UseCases)

// WithRole sets the viewer role. The default is admin.
func WithRole(role types.Role) Option {
	return func(uc *UseCases) {
		uc.role = role
	}
}

// WithMentorName sets the mentor a mentor-scoped dashboard belongs to
func WithMentorName(name string) Option {
	return func(uc *UseCases) {
		uc.mentorName = name
	}
}

func WithSessionRepository(repo SessionRepository) Option {
	return func(uc *UseCases) {
		uc.sessions = repo
	}
}

func WithNotifier(notifier interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = notifier
	}
}

func New(api interfaces.RiskAPI, opts ...Option) *UseCases {
	uc := &UseCases{
		api:  api,
		role: types.RoleAdmin,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.sessions == nil {
		uc.sessions = memory.NewSessionRepository[*Dashboard]()
	}

	uc.Dashboard = NewDashboardUseCase(api, uc.sessions, uc.role, uc.mentorName)
	uc.Notify = NewNotifyUseCase(api, uc.notifier, uc.role)

	return uc
}

// Sessions returns the session repository, for the sweeper
func (uc *UseCases) Sessions() SessionRepository {
	return uc.sessions
}
