package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/platformkit/pkg/logger"
)

// Check reports whether one dependency is usable.
type Check func(ctx context.Context) error

// HealthCheckHandler serves liveness and readiness probes.
//
//   - Liveness: with no checks the handler always answers 200 "ALIVE".
//   - Readiness: every check runs with the request context; all passing
//     gives 200 "READY", any failure 503 "NOT_READY".
func HealthCheckHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
