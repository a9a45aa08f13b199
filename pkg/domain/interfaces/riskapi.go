package interfaces

import (
	"context"

	"github.com/secmon-lab/riskboard/pkg/domain/model"
	"github.com/secmon-lab/riskboard/pkg/domain/types"
)

// RiskAPI reads the read-only endpoints of the backend risk API
type RiskAPI interface {
	// Statistics returns the global category counts
	Statistics(ctx context.Context) (*model.Statistics, error)

	// MentorStats returns the workload of every mentor
	MentorStats(ctx context.Context) ([]*model.MentorWorkload, error)

	// Students returns the students visible to role: every student for admins,
	// only the assigned students for mentors
	Students(ctx context.Context, role types.Role) ([]*model.Student, error)
}
