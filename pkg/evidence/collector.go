package evidence

import (
	"context"

	"github.com/dmitrymomot/platformkit/pkg/initdata"
)

// Display modes probed through CSS media queries, in evaluation order.
const (
	DisplayStandalone            = "standalone"
	DisplayFullscreen            = "fullscreen"
	DisplayMinimalUI             = "minimal-ui"
	DisplayWindowControlsOverlay = "window-controls-overlay"
)

// DisplayModes lists every display mode that marks an installed app.
var DisplayModes = []string{
	DisplayStandalone,
	DisplayFullscreen,
	DisplayMinimalUI,
	DisplayWindowControlsOverlay,
}

// Collector exposes the ambient facts of one client environment. Every
// accessor returns a safe zero value when the fact is unavailable; none of
// them interpret what they return.
type Collector interface {
	UserAgent() string
	Hostname() string
	Viewport() Viewport
	MaxTouchPoints() int
	NavigatorPlatform() string
	DisplayModeMatches(mode string) bool
	NavigatorStandalone() bool
	WindowControlsOverlay() bool
	NativeBridge() NativeBridge
	LegacyHybridRuntime() bool
	NativeMarker() bool
	MessagingBridge() (MessagingBridge, bool)
	MessagingSDK() (MessagingSDK, bool)
	Features() Features
}

// HintsProvider is implemented by collectors that can reach the high-entropy
// client hints API. The call may block on a permission round-trip.
type HintsProvider interface {
	HintsSupported() bool
	HighEntropyValues(ctx context.Context) (ClientHints, error)
}

// Viewport holds window inner dimensions in CSS pixels.
type Viewport struct {
	Width            int     `json:"width,omitempty"`
	Height           int     `json:"height,omitempty"`
	DevicePixelRatio float64 `json:"dpr,omitempty"`
}

// NativeBridge is the shape of the native-shell bridge global.
// IsNativePlatform is the runtime flag reported by the bridge itself; a web
// build that merely bundles the bridge library reports false.
type NativeBridge struct {
	Present          bool   `json:"present"`
	IsNativePlatform bool   `json:"is_native_platform"`
	Platform         string `json:"platform,omitempty"`
}

// MessagingBridge is the first-party object injected by the messaging client.
type MessagingBridge struct {
	Version              string         `json:"version,omitempty"`
	InitData             string         `json:"init_data,omitempty"`
	Platform             string         `json:"platform,omitempty"`
	ColorScheme          string         `json:"color_scheme,omitempty"`
	ViewportHeight       float64        `json:"viewport_height,omitempty"`
	ViewportStableHeight float64        `json:"viewport_stable_height,omitempty"`
	IsExpanded           bool           `json:"is_expanded,omitempty"`
	StartParam           string         `json:"start_param,omitempty"`
	User                 *initdata.User `json:"user,omitempty"`
}

// MessagingSDK is the state exposed by the third-party mini-app SDK.
type MessagingSDK struct {
	InitDataRaw string            `json:"init_data_raw,omitempty"`
	Platform    string            `json:"platform,omitempty"`
	Version     string            `json:"version,omitempty"`
	ColorScheme string            `json:"color_scheme,omitempty"`
	Viewport    SDKViewport       `json:"viewport"`
	ThemeParams map[string]string `json:"theme_params,omitempty"`
	StartParam  string            `json:"start_param,omitempty"`
	User        *initdata.User    `json:"user,omitempty"`
}

// SDKViewport holds the viewport metrics reported by the third-party SDK.
type SDKViewport struct {
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	StableHeight float64 `json:"stable_height,omitempty"`
	IsExpanded   bool    `json:"is_expanded,omitempty"`
}

// IsZero reports whether the SDK reported no viewport metrics at all.
func (v SDKViewport) IsZero() bool {
	return v.Width == 0 && v.Height == 0 && v.StableHeight == 0
}

// Features are capability probes used to cross-validate the device verdict.
type Features struct {
	TouchEvents   bool `json:"touch_events,omitempty"`
	PointerCoarse bool `json:"pointer_coarse,omitempty"`
	HoverNone     bool `json:"hover_none,omitempty"`
	ServiceWorker bool `json:"service_worker,omitempty"`
}

// ClientHints are the high-entropy values of the User-Agent Client Hints API.
type ClientHints struct {
	Platform        string  `json:"platform,omitempty"`
	PlatformVersion string  `json:"platform_version,omitempty"`
	Model           string  `json:"model,omitempty"`
	Mobile          bool    `json:"mobile,omitempty"`
	Architecture    string  `json:"architecture,omitempty"`
	FullVersionList []Brand `json:"full_version_list,omitempty"`
}

// Brand is one entry of a client hints brand list.
type Brand struct {
	Brand   string `json:"brand"`
	Version string `json:"version"`
}
