package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header is the request and response header carrying the id.
const Header = "X-Request-ID"

const maxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Option configures Middleware.
type Option func(*config)

type config struct {
	header   string
	trust    bool
	generate func() string
}

// WithHeader reads and echoes the id under a different header name.
func WithHeader(name string) Option {
	return func(c *config) {
		if name != "" {
			c.header = name
		}
	}
}

// WithoutTrust ignores ids supplied by clients and always generates one.
func WithoutTrust() Option {
	return func(c *config) { c.trust = false }
}

// WithGenerator replaces the id generator.
func WithGenerator(fn func() string) Option {
	return func(c *config) {
		if fn != nil {
			c.generate = fn
		}
	}
}

// Middleware attaches a request id to every request. A valid incoming id is
// reused; otherwise a time-ordered UUIDv7 is generated. The id is stored in
// the request context and echoed in the response header.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{header: Header, trust: true, generate: newID}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if cfg.trust {
				id = r.Header.Get(cfg.header)
			}
			if !Valid(id) {
				id = cfg.generate()
			}
			w.Header().Set(cfg.header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

// Valid reports whether id is non-empty, at most 128 characters and made of
// letters, digits, '-' and '_'.
func Valid(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	return validID.MatchString(id)
}

func newID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
