// Package environment classifies a hostname into a deploy environment
// (development, production, unknown) and a domain mode (app, tma, unknown),
// and propagates both through context.Context and structured logs.
//
// Classification is pure string matching; no DNS or network calls are made.
// A hostname is Development when it is loopback, starts with a private network
// prefix, or contains a dev/staging/.local marker. Otherwise it is Production
// when it contains a known TLD, and Unknown when nothing matches.
//
// The domain mode tells whether the host is the regular application ("app.")
// or the host reserved for the messaging mini-app ("tg."). A request reaching
// the mini-app host outside the messaging client is a domain mismatch; see the
// detector package.
//
// # Usage
//
//	env := environment.Classify(r.Host)          // environment.Production
//	mode := environment.DomainModeOf(r.Host)     // environment.DomainMiniApp
//
//	mux := http.NewServeMux()
//	handler := environment.Middleware("")(mux)   // classify per request
//
//	if environment.IsProduction(ctx) {
//	    // production-specific behaviour
//	}
//
//	log := logger.New(logger.WithContextExtractors(environment.LoggerExtractor()))
package environment
