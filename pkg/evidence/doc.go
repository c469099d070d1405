// Package evidence defines how the classifier reads a client environment.
//
// Collector is the capability set the detector consumes: user agent, host,
// viewport, touch points, navigator platform, display-mode matches and the
// shapes of the native bridge, the first-party messaging bridge and the
// third-party messaging SDK. Classification code never reads global state;
// it only calls a Collector.
//
// Two implementations are provided:
//
//   - Snapshot, a plain value decoded from the JSON document a client-side
//     probe posts (DecodeSnapshot). It doubles as the deterministic test
//     collector. Its zero value is the server-rendered context.
//   - FromRequest, which reads the User-Agent, Host and Sec-CH-* client hint
//     headers of an *http.Request into a Snapshot.
//
// HintsProvider is the optional asynchronous source of high-entropy client
// hints. EventSource and Emitter carry environment change events (display
// mode, connectivity, host viewport) to the detector's change monitor.
package evidence
