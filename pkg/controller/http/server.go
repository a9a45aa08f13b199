package http

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskboard/frontend"
	"github.com/secmon-lab/riskboard/pkg/domain/types"
	"github.com/secmon-lab/riskboard/pkg/usecase"
	"github.com/secmon-lab/riskboard/pkg/utils/logging"
	"github.com/secmon-lab/riskboard/pkg/utils/safe"
	"github.com/secmon-lab/riskboard/pkg/view"
)

type Server struct {
	router       *chi.Mux
	dashboard    *usecase.DashboardUseCase
	renderer     *view.Renderer
	defaultTheme types.Theme
}

type Options func(*Server)

// WithDefaultTheme sets the theme used when the viewer has no valid preference
func WithDefaultTheme(theme types.Theme) Options {
	return func(s *Server) {
		if theme.IsValid() {
			s.defaultTheme = theme
		}
	}
}

func New(dashboard *usecase.DashboardUseCase, renderer *view.Renderer, opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router:       r,
		dashboard:    dashboard,
		renderer:     renderer,
		defaultTheme: types.ThemeLight,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", healthzHandler)

	staticFS, err := fs.Sub(frontend.StaticFiles, "static")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to bind static dir")
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Full page load (re)loads the dashboard of the session
	r.Get("/", s.pageHandler)

	// Everything below reuses the state loaded by the page
	r.Group(func(r chi.Router) {
		r.Use(requireSession(s.dashboard))

		r.Route("/fragments", func(r chi.Router) {
			r.Get("/stats", s.statsHandler)
			r.Get("/mentors", s.mentorsHandler)
			r.Get("/grid", s.gridHandler)
			r.Get("/students/{id}", s.detailHandler)
		})
		r.Get("/api/students/{id}/charts", s.chartsHandler)
		r.Post("/view", s.viewHandler)
	})

	r.Post("/theme", s.themeHandler)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogger binds a logger carrying the request ID to the request context
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r.WithContext(logging.With(r.Context(), logger)))
	})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, []byte("ok"))
}
