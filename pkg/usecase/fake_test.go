package usecase_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/secmon-lab/riskboard/pkg/domain/model"
	"github.com/secmon-lab/riskboard/pkg/domain/types"
)

// fakeRiskAPI is an in-memory interfaces.RiskAPI
type fakeRiskAPI struct {
	mu sync.Mutex

	stats    *model.Statistics
	mentors  []*model.MentorWorkload
	students []*model.Student

	statsErr    error
	mentorsErr  error
	studentsErr error

	calls map[string]int
}

func newFakeRiskAPI() *fakeRiskAPI {
	return &fakeRiskAPI{calls: make(map[string]int)}
}

func (f *fakeRiskAPI) Statistics(ctx context.Context) (*model.Statistics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["statistics"]++
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return f.stats, nil
}

func (f *fakeRiskAPI) MentorStats(ctx context.Context) ([]*model.MentorWorkload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["mentor_stats"]++
	if f.mentorsErr != nil {
		return nil, f.mentorsErr
	}
	return f.mentors, nil
}

func (f *fakeRiskAPI) Students(ctx context.Context, role types.Role) ([]*model.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["students:"+role.String()]++
	if f.studentsErr != nil {
		return nil, f.studentsErr
	}
	return f.students, nil
}

func (f *fakeRiskAPI) set(fn func(f *fakeRiskAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeRiskAPI) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// cohort builds students with the given number of High, Medium and Low members
func cohort(high, medium, low int) []*model.Student {
	var list []*model.Student
	add := func(n int, c types.RiskCategory, score float64) {
		for i := 0; i < n; i++ {
			list = append(list, &model.Student{
				ID:             model.StudentID(fmt.Sprintf("%s-%d", c.Slug(), i)),
				Name:           fmt.Sprintf("Student %s %d", c.Slug(), i),
				MentorName:     "Dr. Rao",
				SubScores:      model.SubScores{Financial: 5, CGPA: 5},
				FinalRiskScore: score,
				Category:       c,
			})
		}
	}
	add(high, types.RiskCategoryHigh, 8.5)
	add(medium, types.RiskCategoryMedium, 4.5)
	add(low, types.RiskCategoryLow, 1.5)
	return list
}
