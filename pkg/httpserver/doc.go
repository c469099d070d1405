// Package httpserver runs an http.Handler with context-driven graceful
// shutdown and configurable timeouts.
//
// Run binds the listener, serves until the context is canceled and then
// shuts down within the configured deadline. Signal handling belongs to the
// caller, typically via signal.NotifyContext, so several servers can share a
// single errgroup.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	g.Go(func() error { return srv.Run(ctx, router) })
//
// HealthCheckHandler serves liveness (no checks) and readiness (with checks)
// probes.
package httpserver
