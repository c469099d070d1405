package initdata

import "context"

type contextKey struct{}

// WithContext stores verified init data in ctx.
func WithContext(ctx context.Context, data *Data) context.Context {
	return context.WithValue(ctx, contextKey{}, data)
}

// FromContext returns the verified init data stored by Middleware.
func FromContext(ctx context.Context) (*Data, bool) {
	if ctx == nil {
		return nil, false
	}
	data, ok := ctx.Value(contextKey{}).(*Data)
	return data, ok && data != nil
}

// UserFromContext is a shortcut for the verified user, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	data, ok := FromContext(ctx)
	if !ok || data.User == nil {
		return nil, false
	}
	return data.User, true
}
