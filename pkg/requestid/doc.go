// Package requestid correlates log records of one HTTP request.
//
// Middleware reuses a well-formed X-Request-ID from the client or generates
// a UUIDv7, stores it in the context and echoes it back. LoggerExtractor
// plugs the id into logger.WithContextExtractors.
//
//	r.Use(requestid.Middleware())
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
