package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskboard/pkg/usecase"
	"github.com/secmon-lab/riskboard/pkg/utils/errutil"
	"github.com/secmon-lab/riskboard/pkg/utils/safe"
)

// one year
const themeCookieMaxAge = 365 * 24 * 60 * 60

type htmlBuffer = bytes.Buffer

// writeHTML renders into a buffer first so that a template failure still
// produces a clean error response
func (s *Server) writeHTML(w http.ResponseWriter, r *http.Request, render func(w *htmlBuffer) error) {
	var buf htmlBuffer
	if err := render(&buf); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, buf.Bytes())
}

// writeRegion writes one dashboard region. When the region cannot be rendered
// from its data, the error is reported and the region's failure placeholder is
// written instead.
func (s *Server) writeRegion(w http.ResponseWriter, r *http.Request, render func(w *htmlBuffer) error, placeholder func(w *htmlBuffer, err error) error) {
	s.writeHTML(w, r, func(buf *htmlBuffer) error {
		err := render(buf)
		if err == nil {
			return nil
		}
		errutil.Handle(r.Context(), err, "failed to render dashboard region")
		buf.Reset()
		return placeholder(buf, err)
	})
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	safe.Write(ctx, w, raw)
}

// statusOf maps use case errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrStudentNotFound),
		errors.Is(err, usecase.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrViewToggleUnavailable):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrInvalidFilter),
		errors.Is(err, usecase.ErrInvalidViewMode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
