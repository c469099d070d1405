package detector

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/platformkit/pkg/cache"
	"github.com/dmitrymomot/platformkit/pkg/environment"
	"github.com/dmitrymomot/platformkit/pkg/useragent"
)

const (
	// DefaultCacheTTL is how long Detect reuses its last result.
	DefaultCacheTTL = 5 * time.Second

	// DefaultHintsTimeout bounds the client hints round-trip.
	DefaultHintsTimeout = time.Second
)

// Recorder receives one call per computed (not cached) result.
type Recorder interface {
	ObserveDetection(primaryType, os, device string)
}

// Option configures a Detector.
type Option func(*options)

type options struct {
	userAgent        string
	hostname         string
	debug            bool
	environment      environment.Environment
	clientHints      bool
	featureDetection bool
	cacheTTL         time.Duration
	hintsTimeout     time.Duration
	logger           *slog.Logger
	now              func() time.Time
	metrics          Recorder
	parseCache       *cache.LRU[string, useragent.UserAgent]
}

func defaultOptions() *options {
	return &options{
		cacheTTL:     DefaultCacheTTL,
		hintsTimeout: DefaultHintsTimeout,
		logger:       slog.New(slog.DiscardHandler),
		now:          time.Now,
	}
}

// WithUserAgent overrides the user agent reported by the collector.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithHostname overrides the hostname reported by the collector.
func WithHostname(host string) Option {
	return func(o *options) { o.hostname = host }
}

// WithDebug logs every computed result at debug level.
func WithDebug(debug bool) Option {
	return func(o *options) { o.debug = debug }
}

// WithEnvironment pins the environment instead of classifying the hostname.
func WithEnvironment(env environment.Environment) Option {
	return func(o *options) { o.environment = env }
}

// WithClientHints opts in to client hints enrichment. Without it
// DetectWithHints returns the synchronous verdict. When enabled, synchronous
// results are not penalized for leaving available hints unused.
func WithClientHints(enabled bool) Option {
	return func(o *options) { o.clientHints = enabled }
}

// WithFeatureDetection cross-checks the device verdict against capability
// probes and includes them in the result.
func WithFeatureDetection(enabled bool) Option {
	return func(o *options) { o.featureDetection = enabled }
}

// WithCacheTTL sets the result cache window. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl >= 0 {
			o.cacheTTL = ttl
		}
	}
}

// WithHintsTimeout bounds how long DetectWithHints waits for hints.
func WithHintsTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.hintsTimeout = d
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock overrides time.Now for the cache and result timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithMetrics reports every computed result to r.
func WithMetrics(r Recorder) Option {
	return func(o *options) { o.metrics = r }
}

// WithParseCache shares parsed user agents between detectors, keyed by the
// user agent and the navigator facts that influence parsing.
func WithParseCache(c *cache.LRU[string, useragent.UserAgent]) Option {
	return func(o *options) { o.parseCache = c }
}
