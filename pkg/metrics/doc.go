// Package metrics defines the Prometheus collectors exported by platformd:
// classification counts, init data verification results and HTTP request
// metrics. Metrics implements detector.Recorder, so it can be passed to
// detector.WithMetrics directly.
package metrics
