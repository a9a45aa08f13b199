package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskboard/pkg/domain/model"
	"github.com/secmon-lab/riskboard/pkg/domain/types"
	"github.com/secmon-lab/riskboard/pkg/usecase"
)

var errBackendDown = errors.New("backend down")

func loadedAdminDashboard(t *testing.T, api *fakeRiskAPI) *usecase.Dashboard {
	t.Helper()
	d := usecase.NewDashboard(api, types.RoleAdmin, "")
	d.Load(context.Background())
	return d
}

func TestDashboard_Load(t *testing.T) {
	t.Run("admin loads all three sections", func(t *testing.T) {
		api := newFakeRiskAPI()
		api.stats = &model.Statistics{Total: 10, High: 3, Medium: 4, Low: 3}
		api.mentors = []*model.MentorWorkload{{MentorName: "Dr. Rao", Total: 10, High: 3, Medium: 4, Low: 3}}
		api.students = cohort(3, 4, 3)

		d := loadedAdminDashboard(t, api)

		stats, err := d.Statistics()
		gt.NoError(t, err)
		gt.V(t, stats).Equal(model.Statistics{Total: 10, High: 3, Medium: 4, Low: 3})

		medium, err := d.Students(types.RiskFilter(types.RiskCategoryMedium))
		gt.NoError(t, err)
		gt.A(t, medium).Length(4)

		mentors, err := d.MentorWorkloads()
		gt.NoError(t, err)
		gt.A(t, mentors).Length(1)

		gt.V(t, api.callCount("statistics")).Equal(1)
		gt.V(t, api.callCount("mentor_stats")).Equal(1)
		gt.V(t, api.callCount("students:admin")).Equal(1)
	})

	t.Run("students failure does not affect statistics", func(t *testing.T) {
		api := newFakeRiskAPI()
		api.stats = &model.Statistics{Total: 10, High: 3, Medium: 4, Low: 3}
		api.studentsErr = errBackendDown

		d := loadedAdminDashboard(t, api)

		_, err := d.Students(types.RiskFilterAll)
		gt.Error(t, err)
		gt.B(t, errors.Is(err, errBackendDown)).True()
		gt.Error(t, d.SectionError(usecase.SectionStudents))

		stats, err := d.Statistics()
		gt.NoError(t, err)
		gt.V(t, stats.Total).Equal(10)
		gt.NoError(t, d.SectionError(usecase.SectionStatistics))
	})

	t.Run("statistics failure does not affect students", func(t *testing.T) {
		api := newFakeRiskAPI()
		api.statsErr = errBackendDown
		api.students = cohort(1, 1, 1)

		d := loadedAdminDashboard(t, api)

		_, err := d.Statistics()
		gt.Error(t, err)

		students, err := d.Students(types.RiskFilterAll)
		gt.NoError(t, err)
		gt.A(t, students).Length(3)
	})

	t.Run("failed reload keeps prior students", func(t *testing.T) {
		api := newFakeRiskAPI()
		api.students = cohort(1, 0, 0)
		d := loadedAdminDashboard(t, api)

		api.set(func(f *fakeRiskAPI) { f.studentsErr = errBackendDown })
		d.Load(context.Background())
		gt.Error(t, d.SectionError(usecase.SectionStudents))

		detail, err := d.Select("High-0", types.ThemeLight)
		gt.NoError(t, err)
		gt.V(t, detail.Student.ID).Equal(model.StudentID("High-0"))
	})

	t.Run("successful reload replaces the list wholesale", func(t *testing.T) {
		api := newFakeRiskAPI()
		api.students = cohort(2, 2, 2)
		d := loadedAdminDashboard(t, api)

		api.set(func(f *fakeRiskAPI) { f.students = cohort(0, 0, 1) })
		d.Load(context.Background())

		students, err := d.Students(types.RiskFilterAll)
		gt.NoError(t, err)
		gt.A(t, students).Length(1)
		gt.NoError(t, d.SectionError(usecase.SectionStudents))
	})

	t.Run("mentor derives statistics from its own students", func(t *testing.T) {
		api := newFakeRiskAPI()
		api.stats = &model.Statistics{Total: 999}
		api.students = cohort(1, 2, 0)

		d := usecase.NewDashboard(api, types.RoleMentor, "Dr. Rao")
		d.Load(context.Background())

		stats, err := d.Statistics()
		gt.NoError(t, err)
		gt.V(t, stats).Equal(model.Statistics{Total: 3, High: 1, Medium: 2, Low: 0})

		gt.V(t, api.callCount("statistics")).Equal(0)
		gt.V(t, api.callCount("mentor_stats")).Equal(0)
		gt.V(t, api.callCount("students:mentor")).Equal(1)
		gt.A(t, d.Sections()).Length(1)

		mentors, err := d.MentorWorkloads()
		gt.NoError(t, err)
		gt.A(t, mentors).Length(0)
	})

	t.Run("mentor statistics fail with the students section", func(t *testing.T) {
		api := newFakeRiskAPI()
		api.studentsErr = errBackendDown

		d := usecase.NewDashboard(api, types.RoleMentor, "Dr. Rao")
		d.Load(context.Background())

		_, err := d.Statistics()
		gt.Error(t, err)
	})
}

func TestDashboard_Filter(t *testing.T) {
	api := newFakeRiskAPI()
	api.students = cohort(3, 4, 3)
	d := loadedAdminDashboard(t, api)

	t.Run("default filter is all", func(t *testing.T) {
		gt.V(t, d.Filter()).Equal(types.RiskFilterAll)
	})

	t.Run("replaying filters is idempotent", func(t *testing.T) {
		all, err := d.Students(types.RiskFilterAll)
		gt.NoError(t, err)

		gt.NoError(t, d.SetFilter(types.RiskFilter(types.RiskCategoryHigh)))
		high, err := d.Students(d.Filter())
		gt.NoError(t, err)
		gt.A(t, high).Length(3)

		gt.NoError(t, d.SetFilter(types.RiskFilterAll))
		replayed, err := d.Students(d.Filter())
		gt.NoError(t, err)
		gt.V(t, replayed).Equal(all)
	})

	t.Run("invalid filter is rejected", func(t *testing.T) {
		err := d.SetFilter("Critical")
		gt.Error(t, err)
		gt.B(t, errors.Is(err, usecase.ErrInvalidFilter)).True()
		gt.V(t, d.Filter()).Equal(types.RiskFilterAll)
	})
}

func TestDashboard_SwitchView(t *testing.T) {
	t.Run("admin toggles between modes", func(t *testing.T) {
		d := usecase.NewDashboard(newFakeRiskAPI(), types.RoleAdmin, "")
		gt.V(t, d.View()).Equal(types.ViewModeStudent)

		gt.NoError(t, d.SwitchView(types.ViewModeMentor))
		gt.V(t, d.View()).Equal(types.ViewModeMentor)

		gt.NoError(t, d.SwitchView(types.ViewModeStudent))
		gt.V(t, d.View()).Equal(types.ViewModeStudent)
	})

	t.Run("admin rejects unknown mode", func(t *testing.T) {
		d := usecase.NewDashboard(newFakeRiskAPI(), types.RoleAdmin, "")
		err := d.SwitchView("grid")
		gt.B(t, errors.Is(err, usecase.ErrInvalidViewMode)).True()
	})

	t.Run("mentor has no toggle", func(t *testing.T) {
		d := usecase.NewDashboard(newFakeRiskAPI(), types.RoleMentor, "Dr. Rao")
		err := d.SwitchView(types.ViewModeMentor)
		gt.B(t, errors.Is(err, usecase.ErrViewToggleUnavailable)).True()
		gt.V(t, d.View()).Equal(types.ViewModeStudent)
	})
}

func TestDashboard_Select(t *testing.T) {
	api := newFakeRiskAPI()
	api.students = cohort(1, 1, 0)
	d := loadedAdminDashboard(t, api)

	first, err := d.Select("High-0", types.ThemeLight)
	gt.NoError(t, err).Required()
	gt.V(t, first.Composition.Config.Data.Datasets[0].Data).Equal([]float64{50, 0, 0, 50})
	gt.V(t, first.Radar.Slot).Equal(usecase.ChartSlotRadar)
	gt.V(t, first.Role).Equal(types.RoleAdmin)

	second, err := d.Select("Medium-0", types.ThemeDark)
	gt.NoError(t, err).Required()

	t.Run("previous instances are destroyed", func(t *testing.T) {
		gt.B(t, first.Radar.Destroyed()).True()
		gt.B(t, first.Composition.Destroyed()).True()
		gt.B(t, second.Radar.Destroyed()).False()
		gt.B(t, second.Composition.Destroyed()).False()
		gt.V(t, second.Radar.ID == first.Radar.ID).Equal(false)
	})

	t.Run("one live instance per slot", func(t *testing.T) {
		live := d.LiveCharts()
		gt.A(t, live).Length(2)
		for _, inst := range live {
			gt.B(t, inst.Destroyed()).False()
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		_, err := d.Select("nobody", types.ThemeLight)
		gt.Error(t, err)
		gt.B(t, errors.Is(err, usecase.ErrStudentNotFound)).True()
		gt.A(t, d.LiveCharts()).Length(2)
	})
}
