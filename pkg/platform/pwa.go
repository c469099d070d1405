package platform

import "github.com/dmitrymomot/platformkit/pkg/evidence"

// DetectPWA reports whether the page runs as an installed app with the
// browser chrome suppressed.
func DetectPWA(c evidence.Collector) bool {
	for _, mode := range evidence.DisplayModes {
		if c.DisplayModeMatches(mode) {
			return true
		}
	}
	return c.NavigatorStandalone() || c.WindowControlsOverlay()
}
