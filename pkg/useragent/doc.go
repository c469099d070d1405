// Package useragent classifies the operating system, device class and browser
// family of a client from its User-Agent string and a few navigator facts.
//
// The UA string alone cannot tell an iPad from a Mac: since iPadOS 13 iPads
// request the desktop site and send a Macintosh UA. Classify therefore also
// takes the navigator touch-point count and platform string. A "MacIntel"
// platform with more than one touch point is an iPad.
//
// # OS resolution
//
// First match wins:
//
//  1. iPhone, iPad or iPod token → ios
//  2. platform "MacIntel" and touch points > 1 → ios
//  3. Android token → android
//  4. ChromeOS → Windows → Linux → macOS → unknown
//
// # Device resolution
//
// iOS devices are tablets when the UA names an iPad or the masquerade holds.
// Android devices are tablets when the UA omits "Mobile" or names a known
// tablet model. Anything else is a desktop unless the viewport is at most
// 768px wide and a generic mobile token is present.
//
// # Usage
//
//	c := useragent.Classify(r.UserAgent(), 0, "", 0)
//	if c.Device == useragent.DeviceTablet {
//	    // ...
//	}
//
//	ua, err := useragent.ParseWith(probe.UserAgent, probe.MaxTouchPoints, probe.Platform, probe.Width)
//	if errors.Is(err, useragent.ErrEmptyUserAgent) {
//	    // ua is still a valid all-unknown value
//	}
//	log.Info("client", slog.String("ua", ua.GetShortIdentifier()))
//
// # Reduced user agents
//
// IsFrozen detects strings whose version and platform details were pinned by
// UA reduction. Callers use it to lower confidence, not to change the verdict.
package useragent
