package view_test

import (
	"context"

	"github.com/secmon-lab/riskboard/pkg/domain/model"
	"github.com/secmon-lab/riskboard/pkg/domain/types"
)

type staticAPI struct {
	students []*model.Student
}

func (a staticAPI) Statistics(ctx context.Context) (*model.Statistics, error) {
	stats := model.Aggregate(a.students)
	return &stats, nil
}

func (a staticAPI) MentorStats(ctx context.Context) ([]*model.MentorWorkload, error) {
	return nil, nil
}

func (a staticAPI) Students(ctx context.Context, role types.Role) ([]*model.Student, error) {
	return a.students, nil
}
