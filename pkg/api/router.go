package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/platformkit/pkg/cache"
	"github.com/dmitrymomot/platformkit/pkg/detector"
	"github.com/dmitrymomot/platformkit/pkg/environment"
	"github.com/dmitrymomot/platformkit/pkg/evidence"
	"github.com/dmitrymomot/platformkit/pkg/httpserver"
	"github.com/dmitrymomot/platformkit/pkg/initdata"
	"github.com/dmitrymomot/platformkit/pkg/logger"
	"github.com/dmitrymomot/platformkit/pkg/metrics"
	"github.com/dmitrymomot/platformkit/pkg/requestid"
	"github.com/dmitrymomot/platformkit/pkg/useragent"
)

const (
	parseCacheSize = 1024
	parseCacheTTL  = 10 * time.Minute
)

// Config holds what the API needs to know about the deployment.
type Config struct {
	// BotToken verifies init data. Without it verification answers
	// MISSING_BOT_TOKEN and the readiness probe fails.
	BotToken string
	// BotUsername enables availability and deep links in detect responses.
	BotUsername string
	// InitDataMaxAge overrides initdata.DefaultMaxAge when positive.
	InitDataMaxAge time.Duration
	// Environment pins the deploy environment; empty classifies by host.
	Environment environment.Environment
	// Debug logs every detection verdict.
	Debug bool
}

// Option configures the router.
type Option func(*server)

// WithLogger sets the logger. Defaults to discarding.
func WithLogger(l *slog.Logger) Option {
	return func(s *server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics records detections, verifications and HTTP traffic into m and
// serves it at /metrics. Defaults to a private registry.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock replaces time.Now for verification freshness and detection
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *server) {
		if now != nil {
			s.now = now
		}
	}
}

type server struct {
	cfg     Config
	log     *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	uas     *cache.LRU[string, useragent.UserAgent]
	onError errorHandler
}

// NewRouter builds the HTTP API:
//
//	GET  /health/live          liveness probe
//	GET  /health/ready         readiness probe (bot token configured)
//	GET  /metrics              Prometheus exposition
//	GET  /v1/detect            verdict from request headers only
//	POST /v1/detect            verdict from a client probe snapshot
//	POST /v1/init-data/verify  verify {"init_data": "..."}
//	GET  /v1/me                user from "Authorization: tma <init data>"
func NewRouter(cfg Config, opts ...Option) http.Handler {
	s := &server{
		cfg: cfg,
		log: slog.New(slog.DiscardHandler),
		now: time.Now,
		uas: cache.NewLRU[string, useragent.UserAgent](parseCacheSize, cache.WithTTL(parseCacheTTL)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New(nil)
	}
	s.log = s.log.With(logger.Component("api"))
	s.onError = newErrorHandler(s.log)

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		requestid.Middleware(),
		s.metrics.Middleware,
		environment.Middleware(cfg.Environment),
		acceptClientHints,
	)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) { s.onError(w, r, ErrNotFound) })
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) { s.onError(w, r, ErrMethodNotAllowed) })

	r.Get("/health/live", httpserver.HealthCheckHandler(s.log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(s.log, s.botConfigured))
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.With(detector.Middleware(s.detectorOptions()...)).Get("/detect", wrap[struct{}](s.onError, nil, s.detectFromHeaders))
		r.Post("/detect", wrap(s.onError, bindSnapshot, s.detectFromSnapshot))
		r.Post("/init-data/verify", wrap(s.onError, bindJSON[verifyRequest], s.verify))
		r.With(initdata.Middleware(cfg.BotToken,
			initdata.WithVerifyOptions(append(s.verifyOptions(), initdata.WithRequireUser())...),
			initdata.WithMiddlewareLogger(s.log),
			initdata.WithObserver(s.metrics.ObserveVerification),
		)).Get("/me", wrap[struct{}](s.onError, nil, s.me))
	})

	return r
}

// acceptClientHints asks browsers for the high-entropy hints the detector
// reads from headers on subsequent requests.
func acceptClientHints(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Accept-CH", evidence.AcceptCHValue)
		w.Header().Add("Vary", "User-Agent")
		next.ServeHTTP(w, r)
	})
}

func (s *server) botConfigured(context.Context) error {
	if s.cfg.BotToken == "" {
		return ErrBotNotConfigured
	}
	return nil
}

func (s *server) detectorOptions() []detector.Option {
	opts := []detector.Option{
		detector.WithCacheTTL(0),
		detector.WithParseCache(s.uas),
		detector.WithMetrics(s.metrics),
		detector.WithLogger(s.log),
		detector.WithDebug(s.cfg.Debug),
		detector.WithClock(s.now),
	}
	if s.cfg.Environment != "" {
		opts = append(opts, detector.WithEnvironment(s.cfg.Environment))
	}
	return opts
}

func (s *server) verifyOptions() []initdata.Option {
	opts := []initdata.Option{initdata.WithNow(s.now)}
	if s.cfg.InitDataMaxAge > 0 {
		opts = append(opts, initdata.WithMaxAge(s.cfg.InitDataMaxAge))
	}
	return opts
}
