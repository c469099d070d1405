// Package detector classifies the runtime context of a client into exactly
// one of web, pwa, mini-app or native, and scores how much the verdict can be
// trusted.
//
// A Detector reads an evidence.Collector. Presence predicates from package
// platform are combined in a fixed precedence (native, then mini-app, then
// pwa, then web). When the mini-app wins, the OS and device guessed from the
// user agent are corrected with the platform the host client reports.
//
//	det := detector.New(snapshot, detector.WithFeatureDetection(true))
//	res := det.Detect()
//	if res.ShouldShowWarning() {
//		link := detector.DeepLink("my_bot", currentURL)
//		...
//	}
//
// Results are cached for DefaultCacheTTL; reads in that window return the
// same *Result. ClearCache invalidates. DetectWithHints layers client hints
// over the synchronous verdict with a bounded wait, and Watch re-detects on
// display-mode, connectivity and host viewport events.
//
// # Confidence
//
// Scores start at 100 and are reduced for a frozen user agent, for client
// hints that were available but not used, for an unknown OS and for an
// unknown browser. Feature detection adds a small bonus to the device score
// when the pointer type agrees with the device verdict. Every score is
// clamped to [0, 100].
package detector
