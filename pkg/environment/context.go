package environment

import "context"

type contextKey struct{}

type domainContextKey struct{}

// WithContext adds environment to context
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext retrieves environment from context
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// WithDomainMode adds the request's domain mode to context
func WithDomainMode(ctx context.Context, mode DomainMode) context.Context {
	return context.WithValue(ctx, domainContextKey{}, mode)
}

// DomainModeFromContext retrieves the domain mode, DomainUnknown if absent
func DomainModeFromContext(ctx context.Context) DomainMode {
	if ctx == nil {
		return DomainUnknown
	}
	if mode, ok := ctx.Value(domainContextKey{}).(DomainMode); ok {
		return mode
	}
	return DomainUnknown
}

// IsProduction checks if the environment from context is production
func IsProduction(ctx context.Context) bool {
	env := FromContext(ctx)
	return env == Production || env == "prod"
}

// IsDevelopment checks if the environment from context is development
func IsDevelopment(ctx context.Context) bool {
	env := FromContext(ctx)
	return env == Development || env == "dev"
}
