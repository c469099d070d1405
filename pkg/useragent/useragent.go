package useragent

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Classification is the OS and device guess for one set of UA facts.
type Classification struct {
	OS     string `json:"os"`
	Device string `json:"device"`
}

// Classify turns a raw user agent plus navigator touch/platform facts into a
// single OS and device guess. viewportWidth may be zero when unknown.
func Classify(userAgent string, touchPoints int, platform string, viewportWidth int) Classification {
	lowerUA := strings.ToLower(userAgent)
	os := ParseOS(lowerUA, touchPoints, platform)
	return Classification{
		OS:     os,
		Device: ParseDeviceType(lowerUA, os, touchPoints, platform, viewportWidth),
	}
}

// UserAgent contains the parsed information from a user agent string
type UserAgent struct {
	userAgent   string
	os          string
	device      string
	deviceModel string
	browser     Browser
	bot         bool
	frozen      bool
}

// String returns the user agent as a string
func (ua UserAgent) String() string { return ua.userAgent }

// OS returns the operating system identifier
func (ua UserAgent) OS() string { return ua.os }

// DeviceType returns the device class (mobile, tablet, desktop)
func (ua UserAgent) DeviceType() string { return ua.device }

// DeviceModel returns the hardware vendor if the UA reveals it
func (ua UserAgent) DeviceModel() string { return ua.deviceModel }

// Browser returns the browser family and version
func (ua UserAgent) Browser() Browser { return ua.browser }

// IsBot returns true if the user agent is a crawler or headless client
func (ua UserAgent) IsBot() bool { return ua.bot }

// IsFrozen returns true if the user agent is a reduced UA string
func (ua UserAgent) IsFrozen() bool { return ua.frozen }

// IsMobile returns true for phones
func (ua UserAgent) IsMobile() bool { return ua.device == DeviceMobile }

// IsTablet returns true for tablets
func (ua UserAgent) IsTablet() bool { return ua.device == DeviceTablet }

// IsDesktop returns true for desktops and laptops
func (ua UserAgent) IsDesktop() bool { return ua.device == DeviceDesktop }

// Parse parses a user agent string with no navigator facts available, which is
// the situation of a server looking at a bare request header.
func Parse(ua string) (UserAgent, error) {
	return ParseWith(ua, 0, "", 0)
}

// ParseWith parses a user agent string together with the navigator facts that
// disambiguate iPads and narrow viewports.
//
// The returned UserAgent is always usable; the error only reports that the
// input was empty or carried no recognizable OS or browser.
func ParseWith(ua string, touchPoints int, platform string, viewportWidth int) (UserAgent, error) {
	lowerUA := strings.ToLower(ua)
	c := Classify(ua, touchPoints, platform, viewportWidth)
	result := UserAgent{
		userAgent:   ua,
		os:          c.OS,
		device:      c.Device,
		deviceModel: deviceModel(lowerUA, c.OS, c.Device),
		browser:     ParseBrowser(lowerUA),
		bot:         IsBot(lowerUA),
		frozen:      IsFrozen(lowerUA),
	}

	if ua == "" {
		return result, ErrEmptyUserAgent
	}
	if result.os == OSUnknown && result.browser.Name == BrowserUnknown && !result.bot {
		return result, ErrMalformedUserAgent
	}
	return result, nil
}

// Common bot name patterns compiled only once
var botNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([a-z0-9\-_]+bot)`),
	regexp.MustCompile(`(?i)([a-z0-9\-_]+spider)`),
	regexp.MustCompile(`(?i)([a-z0-9\-_]+crawler)`),
	regexp.MustCompile(`(?i)(headlesschrome)`),
}

func extractBotName(userAgent string) string {
	title := cases.Title(language.English)
	for _, pattern := range botNamePatterns {
		if matches := pattern.FindStringSubmatch(userAgent); len(matches) > 1 {
			return title.String(strings.ToLower(matches[1]))
		}
	}
	return "Unknown Bot"
}

func formatOSName(os string) string {
	switch os {
	case "", OSUnknown:
		return "Unknown OS"
	case OSiOS:
		return "iOS"
	case OSMacOS:
		return "macOS"
	case OSChromeOS:
		return "ChromeOS"
	default:
		return strings.ToUpper(os[:1]) + os[1:]
	}
}

func formatBrowser(b Browser) string {
	name := "Unknown"
	if b.Name != "" && b.Name != BrowserUnknown {
		name = strings.ToUpper(b.Name[:1]) + b.Name[1:]
	}
	version := b.Version
	if version == "" {
		return name
	}
	// Major version is enough for a log line.
	if i := strings.IndexByte(version, '.'); i > 0 {
		version = version[:i]
	}
	return name + "/" + version
}

// GetShortIdentifier returns a short human-readable identifier for logs.
// Format: Browser/Major (OS device) or "Bot: Name" for bots.
func (ua UserAgent) GetShortIdentifier() string {
	if ua.bot {
		return fmt.Sprintf("Bot: %s", extractBotName(ua.userAgent))
	}
	if ua.userAgent == "" {
		return "Unknown device"
	}
	return fmt.Sprintf("%s (%s %s)", formatBrowser(ua.browser), formatOSName(ua.os), ua.device)
}
