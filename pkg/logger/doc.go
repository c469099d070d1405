// Package logger builds *slog.Logger instances and provides attribute
// helpers with consistent key names.
//
// New takes functional options. WithEnvironment picks a preset per deploy
// environment (text at debug level for development, JSON at info level for
// staging and production). WithContextExtractors pulls request-scoped values
// such as the request id or environment out of the context on every record.
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production),
//		logger.WithService("platformd"),
//		logger.WithContextExtractors(requestid.LoggerExtractor(), environment.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "detected", logger.Detection("mini-app", "ios", "mobile", 95))
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed without a nil check.
package logger
