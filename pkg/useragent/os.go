package useragent

import (
	"strings"
)

// OS detection keyword sets. Order of evaluation lives in ParseOS, not here.
var (
	iOSKeywords      = newKeywordSet("iphone", "ipad", "ipod")
	androidKeywords  = newKeywordSet("android")
	chromeOSKeywords = newKeywordSet("cros ", "chromeos", "chrome os")
	windowsKeywords  = newKeywordSet("windows", "win64", "win32")
	linuxKeywords    = newKeywordSet("linux", "ubuntu", "debian", "fedora", "x11")
	macOSKeywords    = newKeywordSet("macintosh", "mac os x")
)

// ParseOS resolves the operating system from a lower-cased UA string plus the
// multi-touch facts reported by the navigator. First match wins:
//
//  1. Apple mobile tokens.
//  2. navigator.platform "MacIntel" with more than one touch point (iPadOS 13+).
//  3. Android.
//  4. ChromeOS, Windows, Linux (without Android), macOS.
func ParseOS(lowerUA string, touchPoints int, platform string) string {
	if iOSKeywords.contains(lowerUA) {
		return OSiOS
	}

	// Modern iPads send a desktop Safari UA; only touch support gives them away.
	if isIPadMasquerade(touchPoints, platform) {
		return OSiOS
	}

	if androidKeywords.contains(lowerUA) {
		return OSAndroid
	}

	if chromeOSKeywords.contains(lowerUA) {
		return OSChromeOS
	}

	if windowsKeywords.contains(lowerUA) {
		return OSWindows
	}

	if linuxKeywords.contains(lowerUA) {
		return OSLinux
	}

	if macOSKeywords.contains(lowerUA) {
		return OSMacOS
	}

	return OSUnknown
}

func isIPadMasquerade(touchPoints int, platform string) bool {
	return platform == PlatformMacIntel && touchPoints > 1
}

// NormalizeOS maps OS names reported by platform APIs (client hints, host
// clients) onto the package identifiers. Unrecognized names map to OSUnknown.
func NormalizeOS(name string) string {
	switch strings.ToLower(strings.Trim(strings.TrimSpace(name), `"`)) {
	case "ios", "ipados":
		return OSiOS
	case "android":
		return OSAndroid
	case "macos", "mac os", "mac os x", "macintosh":
		return OSMacOS
	case "windows":
		return OSWindows
	case "linux":
		return OSLinux
	case "chrome os", "chromeos", "chromium os":
		return OSChromeOS
	default:
		return OSUnknown
	}
}
