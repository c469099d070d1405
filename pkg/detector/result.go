package detector

import (
	"encoding/json"
	"time"

	"github.com/dmitrymomot/platformkit/pkg/environment"
	"github.com/dmitrymomot/platformkit/pkg/evidence"
	"github.com/dmitrymomot/platformkit/pkg/platform"
	"github.com/dmitrymomot/platformkit/pkg/useragent"
)

// Type is the single runtime context a client was classified into.
type Type string

const (
	TypeWeb     Type = "web"
	TypePWA     Type = "pwa"
	TypeMiniApp Type = "mini-app"
	TypeNative  Type = "native"
)

// Confidence scores how much each part of a verdict can be trusted, 0 to 100.
type Confidence struct {
	Overall int `json:"overall"`
	OS      int `json:"os"`
	Device  int `json:"device"`
	Browser int `json:"browser"`
}

// Result is one immutable verdict. Results served from the cache are the
// same pointer, so callers must not modify what the accessors return.
type Result struct {
	primaryType       Type
	os                string
	device            string
	browser           useragent.Browser
	environment       environment.Environment
	domainMode        environment.DomainMode
	shouldShowWarning bool
	native            *platform.NativeInfo
	miniApp           *platform.MiniAppInfo
	confidence        Confidence
	userAgent         string
	hostname          string
	viewport          evidence.Viewport
	features          *evidence.Features
	bot               bool
	frozen            bool
	hintsUsed         bool
	detectedAt        time.Time
}

func (r *Result) PrimaryType() Type                    { return r.primaryType }
func (r *Result) OS() string                           { return r.os }
func (r *Result) Device() string                       { return r.device }
func (r *Result) Browser() useragent.Browser           { return r.browser }
func (r *Result) Environment() environment.Environment { return r.environment }
func (r *Result) DomainMode() environment.DomainMode   { return r.domainMode }
func (r *Result) Confidence() Confidence               { return r.confidence }
func (r *Result) UserAgent() string                    { return r.userAgent }
func (r *Result) Hostname() string                     { return r.hostname }
func (r *Result) Viewport() evidence.Viewport          { return r.viewport }
func (r *Result) IsBot() bool                          { return r.bot }
func (r *Result) IsFrozen() bool                       { return r.frozen }
func (r *Result) HintsUsed() bool                      { return r.hintsUsed }
func (r *Result) DetectedAt() time.Time                { return r.detectedAt }

// ShouldShowWarning is true when a mini-app-only domain is open outside the
// messaging client.
func (r *Result) ShouldShowWarning() bool { return r.shouldShowWarning }

// NativeInfo is set only for native results.
func (r *Result) NativeInfo() *platform.NativeInfo { return r.native }

// MiniAppInfo is set whenever the mini-app predicate held, even if a native
// shell took precedence.
func (r *Result) MiniAppInfo() *platform.MiniAppInfo { return r.miniApp }

// Features is set only when feature detection is enabled.
func (r *Result) Features() *evidence.Features { return r.features }

func (r *Result) IsWeb() bool     { return r.primaryType == TypeWeb }
func (r *Result) IsPWA() bool     { return r.primaryType == TypePWA }
func (r *Result) IsMiniApp() bool { return r.primaryType == TypeMiniApp }
func (r *Result) IsNative() bool  { return r.primaryType == TypeNative }

func (r *Result) IsMobile() bool  { return r.device == useragent.DeviceMobile }
func (r *Result) IsTablet() bool  { return r.device == useragent.DeviceTablet }
func (r *Result) IsDesktop() bool { return r.device == useragent.DeviceDesktop }

func (r *Result) IsIOS() bool      { return r.os == useragent.OSiOS }
func (r *Result) IsAndroid() bool  { return r.os == useragent.OSAndroid }
func (r *Result) IsMacOS() bool    { return r.os == useragent.OSMacOS }
func (r *Result) IsWindows() bool  { return r.os == useragent.OSWindows }
func (r *Result) IsLinux() bool    { return r.os == useragent.OSLinux }
func (r *Result) IsChromeOS() bool { return r.os == useragent.OSChromeOS }

type resultJSON struct {
	Type              Type                    `json:"type"`
	OS                string                  `json:"os"`
	Device            string                  `json:"device"`
	Browser           useragent.Browser       `json:"browser"`
	Environment       environment.Environment `json:"environment"`
	DomainMode        environment.DomainMode  `json:"domain_mode"`
	ShouldShowWarning bool                    `json:"should_show_warning"`
	IsWeb             bool                    `json:"is_web"`
	IsPWA             bool                    `json:"is_pwa"`
	IsMiniApp         bool                    `json:"is_mini_app"`
	IsNative          bool                    `json:"is_native"`
	IsMobile          bool                    `json:"is_mobile"`
	IsTablet          bool                    `json:"is_tablet"`
	IsDesktop         bool                    `json:"is_desktop"`
	IsBot             bool                    `json:"is_bot,omitempty"`
	Native            *platform.NativeInfo    `json:"native,omitempty"`
	MiniApp           *platform.MiniAppInfo   `json:"mini_app,omitempty"`
	Confidence        Confidence              `json:"confidence"`
	UserAgent         string                  `json:"user_agent,omitempty"`
	Hostname          string                  `json:"hostname,omitempty"`
	Viewport          evidence.Viewport       `json:"viewport"`
	Features          *evidence.Features      `json:"features,omitempty"`
	Frozen            bool                    `json:"frozen_user_agent"`
	HintsUsed         bool                    `json:"hints_used"`
	DetectedAt        time.Time               `json:"detected_at"`
}

// MarshalJSON renders the full verdict including derived flags.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Type:              r.primaryType,
		OS:                r.os,
		Device:            r.device,
		Browser:           r.browser,
		Environment:       r.environment,
		DomainMode:        r.domainMode,
		ShouldShowWarning: r.shouldShowWarning,
		IsWeb:             r.IsWeb(),
		IsPWA:             r.IsPWA(),
		IsMiniApp:         r.IsMiniApp(),
		IsNative:          r.IsNative(),
		IsMobile:          r.IsMobile(),
		IsTablet:          r.IsTablet(),
		IsDesktop:         r.IsDesktop(),
		IsBot:             r.bot,
		Native:            r.native,
		MiniApp:           r.miniApp,
		Confidence:        r.confidence,
		UserAgent:         r.userAgent,
		Hostname:          r.hostname,
		Viewport:          r.viewport,
		Features:          r.features,
		Frozen:            r.frozen,
		HintsUsed:         r.hintsUsed,
		DetectedAt:        r.detectedAt,
	})
}
