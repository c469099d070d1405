package detector

import (
	"github.com/dmitrymomot/platformkit/pkg/platform"
	"github.com/dmitrymomot/platformkit/pkg/useragent"
)

// resolve picks the primary type. The order is fixed: a native shell hosts a
// web view that can match PWA display modes, and a mini-app can look like a
// PWA too, so both must be ruled out before the PWA check.
func resolve(native, miniApp, pwa bool) Type {
	switch {
	case native:
		return TypeNative
	case miniApp:
		return TypeMiniApp
	case pwa:
		return TypePWA
	default:
		return TypeWeb
	}
}

// applyPlatform corrects a UA-derived OS and device with what the mini-app
// host reports about itself. Web clients run in an ordinary browser, so the
// UA verdict stands for them.
func applyPlatform(os, device string, p platform.Platform) (string, string) {
	switch p.Family() {
	case platform.FamilyMobile:
		if device != useragent.DeviceTablet {
			device = useragent.DeviceMobile
		}
		if want := p.OS(); want != "" && os != want {
			os = want
		}
	case platform.FamilyDesktop:
		device = useragent.DeviceDesktop
		if p == platform.MacOS {
			os = useragent.OSMacOS
		}
	case platform.FamilyWeb, platform.FamilyUnknown:
	}
	return os, device
}
