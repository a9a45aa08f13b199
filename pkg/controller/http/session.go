package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/secmon-lab/riskboard/pkg/domain/model"
	"github.com/secmon-lab/riskboard/pkg/usecase"
	"github.com/secmon-lab/riskboard/pkg/utils/errutil"
)

// SessionCookieKey is the cookie holding the dashboard session ID
const SessionCookieKey = "riskboard_session"

// SessionStatusHeader is set to "expired" when a request carries no known
// session. The page script reloads on it to start a new session.
const SessionStatusHeader = "X-Riskboard-Session"

type ctxDashboardKey struct{}

func sessionIDFrom(r *http.Request) model.SessionID {
	cookie, err := r.Cookie(SessionCookieKey)
	if err != nil {
		return ""
	}
	return model.SessionID(cookie.Value)
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, id model.SessionID) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieKey,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func withDashboard(ctx context.Context, d *usecase.Dashboard) context.Context {
	return context.WithValue(ctx, ctxDashboardKey{}, d)
}

func dashboardFrom(ctx context.Context) *usecase.Dashboard {
	d, _ := ctx.Value(ctxDashboardKey{}).(*usecase.Dashboard)
	return d
}

// requireSession resolves the dashboard of the session cookie. Fragments never
// load data on their own, so a request without a known session is rejected.
func requireSession(uc *usecase.DashboardUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := uc.Lookup(r.Context(), sessionIDFrom(r))
			if err != nil {
				status := http.StatusInternalServerError
				if errors.Is(err, usecase.ErrSessionNotFound) {
					status = http.StatusNotFound
					w.Header().Set(SessionStatusHeader, "expired")
				}
				errutil.HandleHTTP(r.Context(), w, err, status)
				return
			}

			next.ServeHTTP(w, r.WithContext(withDashboard(r.Context(), session.State)))
		})
	}
}
