package detector

import "context"

type contextKey struct{}

// WithContext stores a verdict in ctx.
func WithContext(ctx context.Context, r *Result) context.Context {
	return context.WithValue(ctx, contextKey{}, r)
}

// FromContext returns the verdict stored by Middleware.
func FromContext(ctx context.Context) (*Result, bool) {
	if ctx == nil {
		return nil, false
	}
	r, ok := ctx.Value(contextKey{}).(*Result)
	return r, ok && r != nil
}
