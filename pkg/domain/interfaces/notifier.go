package interfaces

import (
	"context"

	"github.com/secmon-lab/riskboard/pkg/domain/model"
)

// Notifier delivers critical-risk alerts to mentors
type Notifier interface {
	NotifyCriticalRisk(ctx context.Context, student *model.Student) error
}
