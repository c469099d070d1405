package platform

import "github.com/dmitrymomot/platformkit/pkg/evidence"

// NativeInfo describes a native shell runtime.
type NativeInfo struct {
	// Platform is the name reported by the bridge, e.g. "ios" or "android".
	Platform string `json:"platform,omitempty"`
	// IsNativePlatform is the runtime flag: true only on a real device build.
	IsNativePlatform bool `json:"is_native_platform"`
	// Legacy is set when only the legacy hybrid runtime global was found.
	Legacy bool `json:"legacy,omitempty"`
	// Marker is set when the DOM marker class was found.
	Marker bool `json:"marker,omitempty"`
}

// DetectNative reports whether the client runs inside a native shell.
//
// Presence is any of the bridge global, the legacy runtime global or the DOM
// marker. The verdict additionally needs the runtime flag: the bridge's own
// IsNativePlatform when a bridge exists, otherwise the legacy runtime. A web
// build that bundles the bridge library is present but not native, and so is
// a page that only carries the marker. Info is returned whenever something
// is present, so callers can log what was seen.
func DetectNative(c evidence.Collector) (bool, *NativeInfo) {
	bridge := c.NativeBridge()
	legacy := c.LegacyHybridRuntime()
	marker := c.NativeMarker()

	if !bridge.Present && !legacy && !marker {
		return false, nil
	}

	info := &NativeInfo{
		Platform: bridge.Platform,
		Legacy:   legacy && !bridge.Present,
		Marker:   marker,
	}
	if bridge.Present {
		info.IsNativePlatform = bridge.IsNativePlatform
	} else {
		info.IsNativePlatform = legacy
	}
	return info.IsNativePlatform, info
}
