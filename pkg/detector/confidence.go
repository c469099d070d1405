package detector

import (
	"github.com/dmitrymomot/platformkit/pkg/evidence"
	"github.com/dmitrymomot/platformkit/pkg/useragent"
)

type signals struct {
	frozen           bool
	hintsAvailable   bool
	hintsUsed        bool
	hintsExpected    bool
	osUnknown        bool
	browserUnknown   bool
	featureDetection bool
	features         evidence.Features
	device           string
}

// score rates a verdict from the signals that produced it. Every component
// ends in [0, 100]. The frozen user agent deduction does not apply once
// client hints were used.
func score(s signals) Confidence {
	c := Confidence{Overall: 100, OS: 100, Device: 100, Browser: 100}

	if s.frozen && !s.hintsUsed {
		c.Overall -= 20
		c.OS -= 25
		c.Device -= 10
	}
	if s.hintsAvailable && !s.hintsUsed && !s.hintsExpected {
		c.Overall -= 10
		c.OS -= 15
	}
	if s.osUnknown {
		c.Overall -= 30
		c.OS = min(c.OS, 20)
	}
	if s.browserUnknown {
		c.Overall -= 10
		c.Browser -= 40
	}
	if s.featureDetection && !contradicts(s.features, s.device) {
		c.Overall += 5
		c.Device += 5
	}

	c.Overall = clamp(c.Overall)
	c.OS = clamp(c.OS)
	c.Device = clamp(c.Device)
	c.Browser = clamp(c.Browser)
	return c
}

// contradicts reports whether the primary pointer disagrees with the device
// verdict: touch devices have a coarse pointer, desktops do not.
func contradicts(f evidence.Features, device string) bool {
	return f.PointerCoarse != (device != useragent.DeviceDesktop)
}

func clamp(v int) int {
	return max(0, min(100, v))
}
