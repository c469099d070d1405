package platform

import (
	"github.com/dmitrymomot/platformkit/pkg/evidence"
	"github.com/dmitrymomot/platformkit/pkg/initdata"
)

// MiniAppViewport holds viewport metrics reported by the host client.
type MiniAppViewport struct {
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	StableHeight float64 `json:"stable_height,omitempty"`
	IsExpanded   bool    `json:"is_expanded"`
}

// MiniAppInfo describes the mini-app host as reported by the winning source.
type MiniAppInfo struct {
	Platform    Platform        `json:"platform"`
	Source      BridgeKind      `json:"source"`
	ColorScheme string          `json:"color_scheme,omitempty"`
	Viewport    MiniAppViewport `json:"viewport"`
	User        *initdata.User  `json:"user,omitempty"`
	Version     string          `json:"version,omitempty"`
	StartParam  string          `json:"start_param,omitempty"`
	// InitData is the unverified raw payload. Pass it to initdata.Verify
	// on the server before trusting any of the above.
	InitData string `json:"-"`
}

// Source is one way of recognizing a mini-app from a probe.
type Source interface {
	Detect(p Probe) (*MiniAppInfo, bool)
}

// SDKSource recognizes the third-party SDK. Any one of a raw init payload,
// a reported platform other than "unknown", non-zero viewport metrics or a
// non-empty theme is enough.
type SDKSource struct{}

func (SDKSource) Detect(p Probe) (*MiniAppInfo, bool) {
	s := p.SDK
	if s == nil {
		return nil, false
	}
	hasPlatform := s.Platform != "" && s.Platform != string(Unknown)
	if s.InitDataRaw == "" && !hasPlatform && s.Viewport.IsZero() && len(s.ThemeParams) == 0 {
		return nil, false
	}
	return &MiniAppInfo{
		Platform:    ParsePlatform(s.Platform),
		Source:      ThirdPartySDK,
		ColorScheme: s.ColorScheme,
		Viewport: MiniAppViewport{
			Width:        s.Viewport.Width,
			Height:       s.Viewport.Height,
			StableHeight: s.Viewport.StableHeight,
			IsExpanded:   s.Viewport.IsExpanded,
		},
		User:       s.User,
		Version:    s.Version,
		StartParam: s.StartParam,
		InitData:   s.InitDataRaw,
	}, true
}

// BridgeSource recognizes the first-party bridge. It needs a version and
// either init data or a recognized platform with a color scheme; native
// clients may fill init data only after first paint.
type BridgeSource struct{}

func (BridgeSource) Detect(p Probe) (*MiniAppInfo, bool) {
	b := p.Bridge
	if b == nil || b.Version == "" {
		return nil, false
	}
	platform := ParsePlatform(b.Platform)
	if b.InitData == "" && !(platform.Known() && b.ColorScheme != "") {
		return nil, false
	}
	return &MiniAppInfo{
		Platform:    platform,
		Source:      FirstPartyBridge,
		ColorScheme: b.ColorScheme,
		Viewport: MiniAppViewport{
			Height:       b.ViewportHeight,
			StableHeight: b.ViewportStableHeight,
			IsExpanded:   b.IsExpanded,
		},
		User:       b.User,
		Version:    b.Version,
		StartParam: b.StartParam,
		InitData:   b.InitData,
	}, true
}

type firstMatch []Source

// FirstMatch combines sources so that the first one to recognize the probe
// wins and later ones are not consulted.
func FirstMatch(sources ...Source) Source {
	return firstMatch(sources)
}

func (f firstMatch) Detect(p Probe) (*MiniAppInfo, bool) {
	for _, s := range f {
		if info, ok := s.Detect(p); ok {
			return info, true
		}
	}
	return nil, false
}

// DefaultSource prefers the third-party SDK and falls back to the bridge.
var DefaultSource = FirstMatch(SDKSource{}, BridgeSource{})

// DetectMiniApp reports whether the client runs inside the messaging host.
func DetectMiniApp(c evidence.Collector) (bool, *MiniAppInfo) {
	info, ok := DefaultSource.Detect(ProbeBridge(c))
	return ok, info
}
