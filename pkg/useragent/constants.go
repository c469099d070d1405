package useragent

// Operating system identifiers. Values are stable and appear in JSON output.
const (
	// OSiOS identifies iOS and iPadOS, including iPads that report a desktop platform.
	OSiOS = "ios"

	// OSAndroid identifies Google Android.
	OSAndroid = "android"

	// OSMacOS identifies Apple macOS.
	OSMacOS = "macos"

	// OSWindows identifies Microsoft Windows.
	OSWindows = "windows"

	// OSLinux identifies desktop Linux distributions.
	OSLinux = "linux"

	// OSChromeOS identifies Google ChromeOS.
	OSChromeOS = "chromeos"

	// OSUnknown is used when the operating system cannot be determined.
	OSUnknown = "unknown"
)

// Device classes. Every classification resolves to exactly one of them.
const (
	// DeviceMobile identifies phones.
	DeviceMobile = "mobile"

	// DeviceTablet identifies tablets, including iPads running iPadOS 13+.
	DeviceTablet = "tablet"

	// DeviceDesktop identifies desktops and laptops.
	DeviceDesktop = "desktop"
)

// Browser family identifiers
const (
	BrowserChrome   = "chrome"
	BrowserFirefox  = "firefox"
	BrowserSafari   = "safari"
	BrowserEdge     = "edge"
	BrowserOpera    = "opera"
	BrowserIE       = "ie"
	BrowserSamsung  = "samsung"
	BrowserUC       = "uc"
	BrowserYandex   = "yandex"
	BrowserVivaldi  = "vivaldi"
	BrowserBrave    = "brave"
	BrowserMIUI     = "miui"
	BrowserHuawei   = "huawei"
	BrowserUnknown  = "unknown"
	BrowserWebView  = "webview"
	BrowserFacebook = "facebook"
)

// PlatformMacIntel is the navigator.platform value reported by Intel Macs and,
// since iPadOS 13, by iPads requesting the desktop site.
const PlatformMacIntel = "MacIntel"

// mobileViewportMaxWidth is the widest viewport still treated as a phone
// when a desktop-looking UA carries a generic mobile token.
const mobileViewportMaxWidth = 768
