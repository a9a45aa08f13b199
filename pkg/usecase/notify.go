package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskboard/pkg/domain/interfaces"
	"github.com/secmon-lab/riskboard/pkg/domain/model"
	"github.com/secmon-lab/riskboard/pkg/domain/types"
	"github.com/secmon-lab/riskboard/pkg/utils/logging"
)

// DefaultCriticalThreshold is the final risk score above which a student is critical
const DefaultCriticalThreshold = 8.0

// NotifyOption holds options for the notify command
type NotifyOption struct {
	Threshold float64
	DryRun    bool
}

// NotifyResult summarizes one notification run
type NotifyResult struct {
	Critical []*model.Student
	Sent     int
	Failed   int
}

// NotifyUseCase alerts mentors about critically at-risk students
type NotifyUseCase struct {
	api      interfaces.RiskAPI
	notifier interfaces.Notifier
	role     types.Role
}

// NewNotifyUseCase creates a new NotifyUseCase. notifier may be nil for dry runs.
func NewNotifyUseCase(api interfaces.RiskAPI, notifier interfaces.Notifier, role types.Role) *NotifyUseCase {
	return &NotifyUseCase{
		api:      api,
		notifier: notifier,
		role:     role,
	}
}

// NotifyCritical loads the students once and sends one alert per critical student.
// A failed alert is logged and counted; the remaining students are still notified.
func (uc *NotifyUseCase) NotifyCritical(ctx context.Context, opts NotifyOption) (*NotifyResult, error) {
	logger := logging.From(ctx)

	if opts.Threshold <= 0 {
		opts.Threshold = DefaultCriticalThreshold
	}
	if !opts.DryRun && uc.notifier == nil {
		return nil, goerr.Wrap(ErrNotifierNotConfigured, "cannot send alerts")
	}

	students, err := uc.api.Students(ctx, uc.role)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load students")
	}

	result := &NotifyResult{}
	for _, s := range students {
		if s.IsCritical(opts.Threshold) {
			result.Critical = append(result.Critical, s)
		}
	}

	if len(result.Critical) == 0 {
		logger.Info("no critically at-risk students found", "threshold", opts.Threshold)
		return result, nil
	}

	for _, s := range result.Critical {
		if opts.DryRun {
			logger.Info("notification skipped (dry run)",
				"student_id", s.ID,
				"student_name", s.Name,
				"final_risk_score", s.FinalRiskScore,
			)
			continue
		}

		if err := uc.notifier.NotifyCriticalRisk(ctx, s); err != nil {
			result.Failed++
			logger.Error("failed to send notification",
				"student_id", s.ID,
				"error", err,
			)
			continue
		}
		result.Sent++
	}

	logger.Info("critical risk notifications processed",
		"critical", len(result.Critical),
		"sent", result.Sent,
		"failed", result.Failed,
		"dry_run", opts.DryRun,
	)
	return result, nil
}
