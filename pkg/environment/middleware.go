package environment

import "net/http"

// Middleware attaches an environment and the request's domain mode to every
// request context. An empty override classifies each request by its Host.
func Middleware(override Environment) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			env := override
			if env == "" {
				env = Classify(r.Host)
			}
			ctx := WithContext(r.Context(), env)
			ctx = WithDomainMode(ctx, DomainModeOf(r.Host))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
