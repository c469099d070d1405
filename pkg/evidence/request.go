package evidence

import (
	"net"
	"net/http"
	"strconv"
	"strings"
)

// Client hint request headers.
const (
	HeaderUA                = "Sec-CH-UA"
	HeaderUAMobile          = "Sec-CH-UA-Mobile"
	HeaderUAPlatform        = "Sec-CH-UA-Platform"
	HeaderUAPlatformVersion = "Sec-CH-UA-Platform-Version"
	HeaderUAModel           = "Sec-CH-UA-Model"
	HeaderUAArch            = "Sec-CH-UA-Arch"
	HeaderUAFullVersionList = "Sec-CH-UA-Full-Version-List"
	HeaderViewportWidth     = "Sec-CH-Viewport-Width"
	HeaderDPR               = "Sec-CH-DPR"
)

// AcceptCHValue lists the hints a server should request with Accept-CH.
var AcceptCHValue = strings.Join([]string{
	HeaderUAPlatformVersion, HeaderUAModel, HeaderUAArch,
	HeaderUAFullVersionList, HeaderViewportWidth, HeaderDPR,
}, ", ")

// FromRequest builds a snapshot from what an HTTP request reveals: the
// User-Agent, the Host and any client hint headers. Bridges, display modes
// and touch facts are invisible to the server and stay zero.
func FromRequest(r *http.Request) Snapshot {
	return Snapshot{}.WithRequest(r)
}

// WithRequest fills the fields the snapshot leaves empty from the request.
// Values already present in the snapshot win.
func (s Snapshot) WithRequest(r *http.Request) Snapshot {
	if r == nil {
		return s
	}
	if s.UA == "" {
		s.UA = r.UserAgent()
	}
	if s.Host == "" {
		s.Host = hostOnly(r.Host)
	}
	if s.Window.Width == 0 {
		s.Window.Width, _ = strconv.Atoi(strings.TrimSpace(r.Header.Get(HeaderViewportWidth)))
	}
	if s.Window.DevicePixelRatio == 0 {
		s.Window.DevicePixelRatio, _ = strconv.ParseFloat(strings.TrimSpace(r.Header.Get(HeaderDPR)), 64)
	}
	if s.Hints == nil {
		s.Hints = hintsFromHeaders(r.Header)
	}
	return s
}

// hintsFromHeaders returns nil unless at least one high-entropy hint is
// present. Sec-CH-UA, -Mobile and -Platform are sent by default and do not
// count.
func hintsFromHeaders(h http.Header) *ClientHints {
	if h.Get(HeaderUAPlatformVersion) == "" && h.Get(HeaderUAModel) == "" &&
		h.Get(HeaderUAArch) == "" && h.Get(HeaderUAFullVersionList) == "" {
		return nil
	}
	return &ClientHints{
		Platform:        unquote(h.Get(HeaderUAPlatform)),
		PlatformVersion: unquote(h.Get(HeaderUAPlatformVersion)),
		Model:           unquote(h.Get(HeaderUAModel)),
		Mobile:          strings.TrimSpace(h.Get(HeaderUAMobile)) == "?1",
		Architecture:    unquote(h.Get(HeaderUAArch)),
		FullVersionList: parseBrandList(h.Get(HeaderUAFullVersionList)),
	}
}

// parseBrandList parses a structured-header list such as
// `"Chromium";v="120.0.6099.109", "Google Chrome";v="120.0.6099.109"`.
func parseBrandList(v string) []Brand {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	var brands []Brand
	for item := range strings.SplitSeq(v, ",") {
		name, params, _ := strings.Cut(item, ";")
		b := Brand{Brand: unquote(name)}
		for param := range strings.SplitSeq(params, ";") {
			if val, ok := strings.CutPrefix(strings.TrimSpace(param), "v="); ok {
				b.Version = unquote(val)
			}
		}
		if b.Brand != "" {
			brands = append(brands, b)
		}
	}
	return brands
}

func unquote(v string) string {
	return strings.Trim(strings.TrimSpace(v), `"`)
}

func hostOnly(hostport string) string {
	if host, _, err := net.SplitHostPort(hostport); err == nil {
		return host
	}
	return hostport
}
