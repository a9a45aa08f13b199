package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskboard/pkg/domain/interfaces"
	"github.com/secmon-lab/riskboard/pkg/domain/model"
	"github.com/secmon-lab/riskboard/pkg/domain/types"
	"github.com/secmon-lab/riskboard/pkg/utils/errutil"
	"github.com/secmon-lab/riskboard/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// Section is one independently loaded region of the dashboard
type Section string

const (
	SectionStatistics  Section = "statistics"
	SectionMentorStats Section = "mentor_stats"
	SectionStudents    Section = "students"
)

// Detail is the selected student together with its freshly created charts
type Detail struct {
	Student     *model.Student
	Role        types.Role
	Radar       *ChartInstance
	Composition *ChartInstance
}

// Dashboard owns the state of one viewer: the loaded sections, the selected
// filter and view mode, and the chart instances of the detail panel.
type Dashboard struct {
	api        interfaces.RiskAPI
	role       types.Role
	mentorName string

	loadMu sync.Mutex

	mu       sync.RWMutex
	students []*model.Student
	stats    *model.Statistics
	mentors  []*model.MentorWorkload
	errs     map[Section]error
	filter   types.RiskFilter
	view     types.ViewMode
	charts   *chartSlots
}

// NewDashboard creates an empty dashboard for role. Nothing is fetched until Load.
func NewDashboard(api interfaces.RiskAPI, role types.Role, mentorName string) *Dashboard {
	return &Dashboard{
		api:        api,
		role:       role,
		mentorName: mentorName,
		errs:       make(map[Section]error),
		filter:     types.RiskFilterAll,
		view:       types.ViewModeStudent,
		charts:     newChartSlots(),
	}
}

// Role returns the viewer role the dashboard serves
func (d *Dashboard) Role() types.Role {
	return d.role
}

// MentorName returns the mentor the dashboard is scoped to, if any
func (d *Dashboard) MentorName() string {
	return d.mentorName
}

// Sections returns the sections loaded for the dashboard's role
func (d *Dashboard) Sections() []Section {
	if d.role.IsMentor() {
		return []Section{SectionStudents}
	}
	return []Section{SectionStatistics, SectionMentorStats, SectionStudents}
}

// Load fetches every section concurrently. Each section succeeds or fails on its
// own: a failure is logged and recorded for that section only, and its previously
// loaded data stays in place. Load never returns an error.
func (d *Dashboard) Load(ctx context.Context) {
	d.loadMu.Lock()
	defer d.loadMu.Unlock()

	var (
		stats       *model.Statistics
		mentors     []*model.MentorWorkload
		students    []*model.Student
		statsErr    error
		mentorsErr  error
		studentsErr error
	)

	var eg errgroup.Group
	if !d.role.IsMentor() {
		eg.Go(func() error {
			stats, statsErr = d.api.Statistics(ctx)
			return nil
		})
		eg.Go(func() error {
			mentors, mentorsErr = d.api.MentorStats(ctx)
			return nil
		})
	}
	eg.Go(func() error {
		students, studentsErr = d.api.Students(ctx, d.role)
		return nil
	})
	_ = eg.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.role.IsMentor() {
		if d.record(ctx, SectionStatistics, statsErr) {
			d.stats = stats
		}
		if d.record(ctx, SectionMentorStats, mentorsErr) {
			d.mentors = mentors
		}
	}
	if d.record(ctx, SectionStudents, studentsErr) {
		d.students = students
	}

	logging.From(ctx).Info("dashboard loaded",
		"role", d.role,
		"students", len(d.students),
		"failed_sections", len(d.errs),
	)
}

// record stores the outcome of a section fetch and reports whether its data should be replaced
func (d *Dashboard) record(ctx context.Context, section Section, err error) bool {
	if err != nil {
		d.errs[section] = errutil.Handle(ctx,
			goerr.Wrap(err, "failed to load dashboard section", goerr.V(SectionKey, section)),
			"dashboard section failed")
		return false
	}
	delete(d.errs, section)
	return true
}

// SectionError returns the error of the latest load of section, or nil
func (d *Dashboard) SectionError(section Section) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.errs[section]
}

// Students returns the students matching filter. The loaded list is never modified.
func (d *Dashboard) Students(filter types.RiskFilter) ([]*model.Student, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if err := d.errs[SectionStudents]; err != nil {
		return nil, err
	}
	return model.FilterStudents(d.students, filter), nil
}

// Statistics returns the category counts shown on the summary cards. Admins see
// the totals of the backend; mentors see counts derived from their own students.
// The two sources are never reconciled.
func (d *Dashboard) Statistics() (model.Statistics, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.role.IsMentor() {
		if err := d.errs[SectionStudents]; err != nil {
			return model.Statistics{}, err
		}
		return model.Aggregate(d.students), nil
	}

	if err := d.errs[SectionStatistics]; err != nil {
		return model.Statistics{}, err
	}
	if d.stats == nil {
		return model.Statistics{}, nil
	}
	return *d.stats, nil
}

// MentorWorkloads returns the per-mentor breakdown. Mentor-scoped dashboards have none.
func (d *Dashboard) MentorWorkloads() ([]*model.MentorWorkload, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.role.IsMentor() {
		return nil, nil
	}
	if err := d.errs[SectionMentorStats]; err != nil {
		return nil, err
	}
	result := make([]*model.MentorWorkload, len(d.mentors))
	copy(result, d.mentors)
	return result, nil
}

// SetFilter stores the selector value
func (d *Dashboard) SetFilter(filter types.RiskFilter) error {
	if !filter.IsValid() {
		return goerr.Wrap(ErrInvalidFilter, "cannot select filter", goerr.V("filter", filter))
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.filter = filter
	return nil
}

// Filter returns the selector value
func (d *Dashboard) Filter() types.RiskFilter {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.filter
}

// SwitchView shows one region and hides the other. Mentor-scoped dashboards have
// no toggle and always stay in student mode.
func (d *Dashboard) SwitchView(mode types.ViewMode) error {
	if d.role.IsMentor() {
		return goerr.Wrap(ErrViewToggleUnavailable, "cannot switch view", goerr.V("mode", mode))
	}
	if !mode.IsValid() {
		return goerr.Wrap(ErrInvalidViewMode, "cannot switch view", goerr.V("mode", mode))
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.view = mode
	return nil
}

// View returns the active view mode
func (d *Dashboard) View() types.ViewMode {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.view
}

// Select builds the detail of a student. Both chart slots are rebound: the
// previous instances are destroyed before the new ones are created.
func (d *Dashboard) Select(id model.StudentID, theme types.Theme) (*Detail, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	student := model.FindStudent(d.students, id)
	if student == nil {
		return nil, goerr.Wrap(ErrStudentNotFound, "cannot select student", goerr.V(StudentIDKey, id))
	}

	return &Detail{
		Student:     student,
		Role:        d.role,
		Radar:       d.charts.replace(ChartSlotRadar, model.RadarChart(student.SubScores, theme)),
		Composition: d.charts.replace(ChartSlotComposition, model.CompositionChart(student.SubScores, theme)),
	}, nil
}

// LiveCharts returns the chart instances currently bound to a slot
func (d *Dashboard) LiveCharts() []*ChartInstance {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.charts.live()
}
