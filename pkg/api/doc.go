// Package api exposes runtime-context detection and init data verification
// over HTTP.
//
// NewRouter returns a chi router. Responses use a single envelope: success
// is {"data": ...} and failure is {"error": {"code", "message"}}. Init data
// failures keep the verifier's codes (MISSING_INIT_DATA, HASH_MISMATCH,
// EXPIRED...) with the status from initdata.HTTPStatus.
//
//	h := api.NewRouter(api.Config{BotToken: token, BotUsername: "my_bot"},
//		api.WithLogger(log),
//		api.WithMetrics(metrics.New(nil)),
//	)
package api
