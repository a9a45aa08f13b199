package view

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskboard/pkg/domain/model"
	"github.com/secmon-lab/riskboard/pkg/domain/types"
	"github.com/secmon-lab/riskboard/pkg/usecase"
	"github.com/secmon-lab/riskboard/pkg/utils/errutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultTitle is the page title used when none is configured
const DefaultTitle = "Student Risk Dashboard"

// DefaultFeeLocale is the locale fees are grouped in
var DefaultFeeLocale = language.MustParse("en-IN")

// Renderer writes the dashboard regions as HTML. Each method writes a complete
// replacement of its region; nothing is written when rendering fails.
type Renderer struct {
	tmpl      *template.Template
	title     string
	feeLocale language.Tag
	printer   *message.Printer
}

type Option func(*Renderer)

func WithTitle(title string) Option {
	return func(r *Renderer) {
		if title != "" {
			r.title = title
		}
	}
}

// WithFeeLocale sets the locale used to group the digits of fees
func WithFeeLocale(tag language.Tag) Option {
	return func(r *Renderer) {
		r.feeLocale = tag
	}
}

func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		title:     DefaultTitle,
		feeLocale: DefaultFeeLocale,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.printer = message.NewPrinter(r.feeLocale)

	tmpl, err := template.New("riskboard").Funcs(template.FuncMap{
		"score":     formatScore,
		"num":       formatNumber,
		"fees":      r.formatFees,
		"chartJSON": chartJSON,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse templates")
	}
	r.tmpl = tmpl

	return r, nil
}

// Title returns the configured page title
func (r *Renderer) Title() string {
	return r.title
}

// GridData is the input of the student grid region
type GridData struct {
	Students []*model.Student
	Filter   types.RiskFilter
	Err      error
}

// StatsData is the input of the summary cards region
type StatsData struct {
	Stats model.Statistics
	Role  types.Role
	Err   error
}

// Cards returns the four summary cards in display order
func (d StatsData) Cards() []StatCard {
	total := "Total Students"
	if d.Role.IsMentor() {
		total = "My Total Students"
	}

	cards := []StatCard{{Label: total, Class: "total", Icon: "fa-users", Filter: types.RiskFilterAll, Count: d.Stats.Total}}
	for _, c := range types.AllRiskCategories() {
		f := types.RiskFilter(c)
		cards = append(cards, StatCard{
			Label:  c.String(),
			Class:  categoryClass(c),
			Icon:   categoryIcon(c),
			Filter: f,
			Count:  d.Stats.Count(f),
		})
	}
	return cards
}

// Empty reports whether a mentor has no students at all
func (d StatsData) Empty() bool {
	return d.Role.IsMentor() && d.Stats.Total == 0
}

// StatCard is one clickable summary card
type StatCard struct {
	Label  string
	Class  string
	Icon   string
	Filter types.RiskFilter
	Count  int
}

// MentorTableData is the input of the mentor workload region
type MentorTableData struct {
	Mentors []*model.MentorWorkload
	Err     error
}

// DetailData is the input of the detail panel
type DetailData struct {
	Student     *model.Student
	Role        types.Role
	Radar       *usecase.ChartInstance
	Composition *usecase.ChartInstance
}

// NewDetailData adapts a selection of the dashboard to the detail panel
func NewDetailData(d *usecase.Detail) DetailData {
	return DetailData{
		Student:     d.Student,
		Role:        d.Role,
		Radar:       d.Radar,
		Composition: d.Composition,
	}
}

// Charts returns the chart instances in slot order
func (d DetailData) Charts() []*usecase.ChartInstance {
	return []*usecase.ChartInstance{d.Radar, d.Composition}
}

// PageData is the input of the full dashboard page
type PageData struct {
	Title      string
	Theme      types.Theme
	Role       types.Role
	MentorName string
	View       types.ViewMode
	Filter     types.RiskFilter
	Stats      StatsData
	Mentors    MentorTableData
	Grid       GridData
}

// Filters returns the selector options
func (d PageData) Filters() []types.RiskFilter {
	return types.AllRiskFilters()
}

// ShowToggle reports whether the view-mode toggle is rendered
func (d PageData) ShowToggle() bool {
	return !d.Role.IsMentor()
}

func (r *Renderer) Grid(w io.Writer, data GridData) error {
	return r.execute(w, "grid", data)
}

func (r *Renderer) StatsCards(w io.Writer, data StatsData) error {
	return r.execute(w, "stats", data)
}

func (r *Renderer) MentorTable(w io.Writer, data MentorTableData) error {
	return r.execute(w, "mentors", data)
}

func (r *Renderer) Detail(w io.Writer, data DetailData) error {
	if data.Student == nil || data.Radar == nil || data.Composition == nil {
		return goerr.New("detail requires a student and both charts")
	}
	return r.execute(w, "detail", data)
}

// pageView is PageData with every region already rendered
type pageView struct {
	PageData
	StatsHTML   template.HTML
	GridHTML    template.HTML
	MentorsHTML template.HTML
}

// Page writes the full dashboard. Each region is rendered on its own; a region
// that fails to render is replaced by its failure placeholder and the rest of
// the page is still written.
func (r *Renderer) Page(ctx context.Context, w io.Writer, data PageData) error {
	if data.Title == "" {
		data.Title = r.title
	}
	if !data.Theme.IsValid() {
		data.Theme = types.ThemeLight
	}
	if data.Role.IsMentor() {
		data.View = types.ViewModeStudent
	}

	v := pageView{
		PageData: data,
		StatsHTML: r.region(ctx, "stats", data.Stats, func(err error) any {
			return StatsData{Role: data.Stats.Role, Err: err}
		}),
		GridHTML: r.region(ctx, "grid", data.Grid, func(err error) any {
			return GridData{Filter: data.Grid.Filter, Err: err}
		}),
	}
	if data.ShowToggle() {
		v.MentorsHTML = r.region(ctx, "mentors", data.Mentors, func(err error) any {
			return MentorTableData{Err: err}
		})
	}
	return r.execute(w, "page", v)
}

// region renders one region of the page. On failure the error is reported and
// the region is rendered again from placeholder(err).
func (r *Renderer) region(ctx context.Context, name string, data any, placeholder func(error) any) template.HTML {
	var buf bytes.Buffer
	err := r.execute(&buf, name, data)
	if err == nil {
		// #nosec G203 - output of html/template, already escaped
		return template.HTML(buf.String())
	}
	errutil.Handle(ctx, err, "failed to render dashboard region")

	buf.Reset()
	if err := r.execute(&buf, name, placeholder(err)); err != nil {
		errutil.Handle(ctx, err, "failed to render region placeholder")
		return ""
	}
	// #nosec G203 - output of html/template, already escaped
	return template.HTML(buf.String())
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return goerr.Wrap(err, "failed to render template", goerr.V("template", name))
	}
	if _, err := buf.WriteTo(w); err != nil {
		return goerr.Wrap(err, "failed to write rendered template", goerr.V("template", name))
	}
	return nil
}

func (r *Renderer) formatFees(v float64) string {
	return "₹" + r.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatNumber prints the shortest representation, so 5 renders as "5" and 7.5 as "7.5"
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func chartJSON(cfg model.ChartConfig) (string, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal chart config")
	}
	return string(raw), nil
}

func categoryClass(c types.RiskCategory) string {
	switch c {
	case types.RiskCategoryHigh:
		return "high-risk"
	case types.RiskCategoryMedium:
		return "medium-risk"
	default:
		return "low-risk"
	}
}

func categoryIcon(c types.RiskCategory) string {
	switch c {
	case types.RiskCategoryHigh:
		return "fa-exclamation-triangle"
	case types.RiskCategoryMedium:
		return "fa-exclamation-circle"
	default:
		return "fa-check-circle"
	}
}
