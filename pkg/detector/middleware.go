package detector

import (
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/platformkit/pkg/cache"
	"github.com/dmitrymomot/platformkit/pkg/evidence"
	"github.com/dmitrymomot/platformkit/pkg/useragent"
)

const (
	parseCacheSize = 1024
	parseCacheTTL  = 10 * time.Minute
)

// Middleware classifies each request from its headers and stores the verdict
// in the request context. Server-side evidence is limited to what headers
// carry, so most requests resolve to web. Parsed user agents are shared
// across requests through an LRU cache.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	uas := cache.NewLRU[string, useragent.UserAgent](parseCacheSize, cache.WithTTL(parseCacheTTL))
	base := []Option{WithCacheTTL(0), WithParseCache(uas)}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			det := New(evidence.FromRequest(r), slices.Concat(base, opts)...)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), det.Detect())))
		})
	}
}
