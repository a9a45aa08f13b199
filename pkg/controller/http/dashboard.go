package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskboard/pkg/domain/model"
	"github.com/secmon-lab/riskboard/pkg/domain/types"
	"github.com/secmon-lab/riskboard/pkg/usecase"
	"github.com/secmon-lab/riskboard/pkg/utils/errutil"
	"github.com/secmon-lab/riskboard/pkg/view"
)

func (s *Server) themeOf(r *http.Request) types.Theme {
	cookie, err := r.Cookie(types.ThemeCookieKey)
	if err != nil {
		return s.defaultTheme
	}
	return types.ParseTheme(cookie.Value, s.defaultTheme)
}

func statsData(d *usecase.Dashboard) view.StatsData {
	stats, err := d.Statistics()
	return view.StatsData{Stats: stats, Role: d.Role(), Err: err}
}

func mentorTableData(d *usecase.Dashboard) view.MentorTableData {
	mentors, err := d.MentorWorkloads()
	return view.MentorTableData{Mentors: mentors, Err: err}
}

func gridData(d *usecase.Dashboard, filter types.RiskFilter) view.GridData {
	students, err := d.Students(filter)
	return view.GridData{Students: students, Filter: filter, Err: err}
}

// pageHandler serves the whole dashboard. It is the only handler that loads
// data from the backend.
func (s *Server) pageHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, created, err := s.dashboard.Open(ctx, sessionIDFrom(r))
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}
	if created {
		setSessionCookie(w, r, session.ID)
	}

	d := session.State
	if risk := r.URL.Query().Get("risk"); risk != "" {
		filter, err := types.ParseRiskFilter(risk)
		if err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(usecase.ErrInvalidFilter, err.Error()), http.StatusBadRequest)
			return
		}
		if err := d.SetFilter(filter); err != nil {
			errutil.HandleHTTP(ctx, w, err, statusOf(err))
			return
		}
	}
	if mode := r.URL.Query().Get("view"); mode != "" {
		if err := d.SwitchView(types.ViewMode(mode)); err != nil {
			errutil.HandleHTTP(ctx, w, err, statusOf(err))
			return
		}
	}

	d.Load(ctx)

	filter := d.Filter()
	s.writeHTML(w, r, func(w *htmlBuffer) error {
		return s.renderer.Page(ctx, w, view.PageData{
			Theme:      s.themeOf(r),
			Role:       d.Role(),
			MentorName: d.MentorName(),
			View:       d.View(),
			Filter:     filter,
			Stats:      statsData(d),
			Mentors:    mentorTableData(d),
			Grid:       gridData(d, filter),
		})
	})
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	d := dashboardFrom(r.Context())
	data := statsData(d)
	s.writeRegion(w, r, func(w *htmlBuffer) error {
		return s.renderer.StatsCards(w, data)
	}, func(w *htmlBuffer, err error) error {
		return s.renderer.StatsCards(w, view.StatsData{Role: data.Role, Err: err})
	})
}

func (s *Server) mentorsHandler(w http.ResponseWriter, r *http.Request) {
	d := dashboardFrom(r.Context())
	if d.Role().IsMentor() {
		err := goerr.Wrap(usecase.ErrViewToggleUnavailable, "mentor workloads are not shown to mentors")
		errutil.HandleHTTP(r.Context(), w, err, http.StatusForbidden)
		return
	}

	s.writeRegion(w, r, func(w *htmlBuffer) error {
		return s.renderer.MentorTable(w, mentorTableData(d))
	}, func(w *htmlBuffer, err error) error {
		return s.renderer.MentorTable(w, view.MentorTableData{Err: err})
	})
}

func (s *Server) gridHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d := dashboardFrom(ctx)

	filter, err := types.ParseRiskFilter(r.URL.Query().Get("risk"))
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(usecase.ErrInvalidFilter, err.Error()), http.StatusBadRequest)
		return
	}
	if err := d.SetFilter(filter); err != nil {
		errutil.HandleHTTP(ctx, w, err, statusOf(err))
		return
	}

	s.writeRegion(w, r, func(w *htmlBuffer) error {
		return s.renderer.Grid(w, gridData(d, filter))
	}, func(w *htmlBuffer, err error) error {
		return s.renderer.Grid(w, view.GridData{Filter: filter, Err: err})
	})
}

func (s *Server) detailHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d := dashboardFrom(ctx)

	detail, err := d.Select(model.StudentID(chi.URLParam(r, "id")), s.themeOf(r))
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusOf(err))
		return
	}

	s.writeHTML(w, r, func(w *htmlBuffer) error {
		return s.renderer.Detail(w, view.NewDetailData(detail))
	})
}

type chartResponse struct {
	ID     string            `json:"id"`
	Slot   usecase.ChartSlot `json:"slot"`
	Config model.ChartConfig `json:"config"`
}

type chartsResponse struct {
	StudentID model.StudentID `json:"student_id"`
	Charts    []chartResponse `json:"charts"`
}

// chartsHandler selects a student and returns the new chart configurations as JSON
func (s *Server) chartsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d := dashboardFrom(ctx)

	detail, err := d.Select(model.StudentID(chi.URLParam(r, "id")), s.themeOf(r))
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusOf(err))
		return
	}

	resp := chartsResponse{StudentID: detail.Student.ID}
	for _, inst := range []*usecase.ChartInstance{detail.Radar, detail.Composition} {
		resp.Charts = append(resp.Charts, chartResponse{
			ID:     inst.ID,
			Slot:   inst.Slot,
			Config: inst.Config,
		})
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

func (s *Server) viewHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d := dashboardFrom(ctx)

	if err := r.ParseForm(); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse form"), http.StatusBadRequest)
		return
	}
	if err := d.SwitchView(types.ViewMode(r.PostForm.Get("mode"))); err != nil {
		errutil.HandleHTTP(ctx, w, err, statusOf(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// themeHandler stores the theme preference in the viewer's cookie
func (s *Server) themeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse form"), http.StatusBadRequest)
		return
	}
	theme := types.Theme(r.PostForm.Get("theme"))
	if !theme.IsValid() {
		errutil.HandleHTTP(ctx, w, goerr.New("invalid theme", goerr.V("theme", theme)), http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     types.ThemeCookieKey,
		Value:    theme.String(),
		Path:     "/",
		MaxAge:   themeCookieMaxAge,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
