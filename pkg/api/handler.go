package api

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/platformkit/pkg/logger"
	"github.com/dmitrymomot/platformkit/pkg/requestid"
)

// handlerFunc handles a bound request value.
type handlerFunc[R any] func(r *http.Request, req R) Response

// binder fills req from the request.
type binder[R any] func(w http.ResponseWriter, r *http.Request, req *R) error

// errorHandler renders and logs errors from binding or rendering.
type errorHandler func(w http.ResponseWriter, r *http.Request, err error)

// responseFunc adapts a plain function to Response.
type responseFunc func(w http.ResponseWriter, r *http.Request) error

func (f responseFunc) Render(w http.ResponseWriter, r *http.Request) error { return f(w, r) }

// wrap converts a typed handler to an http.HandlerFunc. A nil bind leaves
// the request value zero.
func wrap[R any](onError errorHandler, bind binder[R], h handlerFunc[R]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req R
		if bind != nil {
			if err := bind(w, r, &req); err != nil {
				onError(w, r, err)
				return
			}
		}

		resp := h(r, req)
		if resp == nil {
			onError(w, r, ErrInternal)
			return
		}
		if err := resp.Render(w, r); err != nil {
			onError(w, r, err)
		}
	}
}

// newErrorHandler logs client errors at warn and server errors at error
// level, then answers with the JSON error envelope.
func newErrorHandler(log *slog.Logger) errorHandler {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		he := asHTTPError(err)
		level := slog.LevelError
		if he.Status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			logger.Code(he.Code),
			slog.Int("status", he.Status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		_ = JSONError(he).Render(w, r)
	}
}
