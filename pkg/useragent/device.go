package useragent

import (
	"strings"
)

// keywordSet optimizes keyword lookups using map structure
type keywordSet map[string]struct{}

func newKeywordSet(keywords ...string) keywordSet {
	result := make(keywordSet, len(keywords))
	for _, word := range keywords {
		result[word] = struct{}{}
	}
	return result
}

func (k keywordSet) contains(s string) bool {
	for keyword := range k {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

var (
	botKeywords = newKeywordSet("bot", "spider", "crawler", "slurp", "facebookexternalhit", "lighthouse", "headlesschrome")

	// Android tablet models that sometimes still advertise "Mobile".
	androidTabletKeywords = newKeywordSet("tablet", "sm-t", "sm-x", "sm-p", "gt-p", "kindle", "silk", "kfjwi", "kftt", "kfmawi", "mediapad", "lenovo tab", "pixel tablet")

	// Generic mobile tokens used to downgrade narrow desktop-looking viewports.
	genericMobileKeywords = newKeywordSet("mobi", "windows phone", "iemobile", "blackberry", "opera mini")

	// Device brands, used for the short identifier only.
	samsungWords = newKeywordSet("samsung", "sm-")
	huaweiWords  = newKeywordSet("huawei", "honor", "mediapad")
	xiaomiWords  = newKeywordSet("xiaomi", "redmi", "miui")
	pixelWords   = newKeywordSet("pixel")
)

// ParseDeviceType derives the device class for an already resolved OS.
//
// iOS is a tablet when the UA names an iPad or the iPadOS masquerade holds.
// Android is a tablet when the UA lacks "mobile" or names a tablet model.
// Everything else is a desktop, downgraded to mobile when the viewport is
// narrow and a generic mobile token is present.
func ParseDeviceType(lowerUA, os string, touchPoints int, platform string, viewportWidth int) string {
	switch os {
	case OSiOS:
		if strings.Contains(lowerUA, "ipad") || isIPadMasquerade(touchPoints, platform) {
			return DeviceTablet
		}
		return DeviceMobile
	case OSAndroid:
		// Unreliable, but it is the documented heuristic: tablets usually omit "Mobile".
		if !strings.Contains(lowerUA, "mobile") {
			return DeviceTablet
		}
		if androidTabletKeywords.contains(lowerUA) {
			return DeviceTablet
		}
		return DeviceMobile
	default:
		if viewportWidth > 0 && viewportWidth <= mobileViewportMaxWidth && genericMobileKeywords.contains(lowerUA) {
			return DeviceMobile
		}
		return DeviceDesktop
	}
}

// IsBot reports whether the lower-cased UA belongs to a crawler or headless client.
func IsBot(lowerUA string) bool {
	return botKeywords.contains(lowerUA)
}

// deviceModel names the hardware vendor where the UA reveals it.
func deviceModel(lowerUA, os, device string) string {
	switch {
	case os == OSiOS && device == DeviceTablet:
		return "ipad"
	case os == OSiOS:
		if strings.Contains(lowerUA, "ipod") {
			return "ipod"
		}
		return "iphone"
	case os != OSAndroid:
		return ""
	case samsungWords.contains(lowerUA):
		return "samsung"
	case huaweiWords.contains(lowerUA):
		return "huawei"
	case xiaomiWords.contains(lowerUA):
		return "xiaomi"
	case pixelWords.contains(lowerUA):
		return "pixel"
	default:
		return "android"
	}
}
