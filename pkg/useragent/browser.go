package useragent

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
)

// Browser represents browser information
type Browser struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// browserPattern defines a pattern for detecting a browser family.
// All Keywords must be present and none of Excludes; AnyKeyword patterns
// match on the first keyword found instead.
type browserPattern struct {
	Name       string
	Keywords   []string
	Excludes   []string
	AnyKeyword bool
	Regex      *regexp.Regexp
	OrderHint  int
}

func init() {
	// Specific browsers embed generic tokens ("chrome", "safari"), so order matters.
	slices.SortStableFunc(browserPatterns, func(a, b browserPattern) int {
		return cmp.Compare(a.OrderHint, b.OrderHint)
	})
}

var browserPatterns = []browserPattern{
	{
		Name:       BrowserEdge,
		Keywords:   []string{"edg/", "edge/", "edga/", "edgios/"},
		AnyKeyword: true,
		Regex:      regexp.MustCompile(`(?:edge|edg|edga|edgios)/([\d.]+)`),
		OrderHint:  10,
	},
	{
		Name:      BrowserFacebook,
		Keywords:  []string{"fban"},
		OrderHint: 15,
	},
	{
		Name:      BrowserSamsung,
		Keywords:  []string{"samsungbrowser"},
		Regex:     regexp.MustCompile(`samsungbrowser/([\d.]+)`),
		OrderHint: 20,
	},
	{
		Name:      BrowserUC,
		Keywords:  []string{"ucbrowser"},
		Regex:     regexp.MustCompile(`ucbrowser/([\d.]+)`),
		OrderHint: 30,
	},
	{
		Name:      BrowserHuawei,
		Keywords:  []string{"huaweibrowser"},
		Regex:     regexp.MustCompile(`huaweibrowser/([\d.]+)`),
		OrderHint: 50,
	},
	{
		Name:      BrowserMIUI,
		Keywords:  []string{"miuibrowser"},
		Regex:     regexp.MustCompile(`miuibrowser/([\d.]+)`),
		OrderHint: 70,
	},
	{
		Name:       BrowserYandex,
		Keywords:   []string{"yabrowser", "yandexbrowser"},
		AnyKeyword: true,
		Regex:      regexp.MustCompile(`(?:yabrowser|yandexbrowser)/([\d.]+)`),
		OrderHint:  80,
	},
	{
		Name:      BrowserVivaldi,
		Keywords:  []string{"vivaldi"},
		Regex:     regexp.MustCompile(`vivaldi/([\d.]+)`),
		OrderHint: 90,
	},
	{
		Name:      BrowserBrave,
		Keywords:  []string{"brave"},
		Regex:     regexp.MustCompile(`brave/([\d.]+)`),
		OrderHint: 100,
	},
	{
		Name:       BrowserOpera,
		Keywords:   []string{"opr/", "opera"},
		AnyKeyword: true,
		Regex:      regexp.MustCompile(`(?:opr|opera)[/ ]([\d.]+)`),
		OrderHint:  110,
	},
	{
		// Android System WebView marks itself with "; wv)".
		Name:      BrowserWebView,
		Keywords:  []string{"; wv)"},
		Regex:     regexp.MustCompile(`chrome/([\d.]+)`),
		OrderHint: 115,
	},
	{
		Name:       BrowserChrome,
		Keywords:   []string{"chrome/", "crios/"},
		AnyKeyword: true,
		Regex:      regexp.MustCompile(`(?:chrome|crios)/([\d.]+)`),
		OrderHint:  120,
	},
	{
		Name:       BrowserFirefox,
		Keywords:   []string{"firefox/", "fxios/"},
		AnyKeyword: true,
		Regex:      regexp.MustCompile(`(?:firefox|fxios)/([\d.]+)`),
		OrderHint:  130,
	},
	{
		Name:      BrowserSafari,
		Keywords:  []string{"safari"},
		Excludes:  []string{"chrome", "chromium", "android"},
		Regex:     regexp.MustCompile(`version/([\d.]+)`),
		OrderHint: 140,
	},
	{
		// WKWebView inside iOS apps: AppleWebKit + Mobile/ but no Safari token.
		Name:      BrowserWebView,
		Keywords:  []string{"applewebkit", "mobile/"},
		Excludes:  []string{"safari"},
		OrderHint: 145,
	},
	{
		Name:       BrowserIE,
		Keywords:   []string{"msie", "trident/"},
		AnyKeyword: true,
		Regex:      regexp.MustCompile(`(?:msie |rv:)([\d.]+)`),
		OrderHint:  150,
	},
}

func extractVersion(ua string, regex *regexp.Regexp) string {
	if regex == nil {
		return ""
	}
	matches := regex.FindStringSubmatch(ua)
	if len(matches) > 1 {
		version := matches[1]
		// Limit version length to avoid excessively long versions
		if len(version) > 20 {
			version = version[:20]
		}
		return version
	}
	return ""
}

func (p browserPattern) matches(ua string) bool {
	if p.AnyKeyword {
		return slices.ContainsFunc(p.Keywords, func(k string) bool { return strings.Contains(ua, k) })
	}
	for _, keyword := range p.Keywords {
		if !strings.Contains(ua, keyword) {
			return false
		}
	}
	for _, exclude := range p.Excludes {
		if strings.Contains(ua, exclude) {
			return false
		}
	}
	return true
}

// ParseBrowser parses the browser family and version from a lower-cased UA string.
func ParseBrowser(lowerUA string) Browser {
	for _, pattern := range browserPatterns {
		if pattern.matches(lowerUA) {
			return Browser{
				Name:    pattern.Name,
				Version: extractVersion(lowerUA, pattern.Regex),
			}
		}
	}
	return Browser{Name: BrowserUnknown}
}
