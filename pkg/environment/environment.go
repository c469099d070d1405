package environment

import (
	"net"
	"strings"
)

// Environment is a deploy-environment tag derived from a hostname or set by
// configuration.
type Environment string

const (
	// Development covers loopback, private networks and dev/staging hosts.
	Development Environment = "development"
	// Production covers public hosts on a known top-level domain.
	Production Environment = "production"
	// Staging is never produced by Classify; staging hosts classify as
	// Development. It exists for explicit configuration.
	Staging Environment = "staging"
	// Unknown is returned when no rule matches.
	Unknown Environment = "unknown"
)

// DomainMode tells which product surface a hostname serves.
type DomainMode string

const (
	// DomainApp is the regular application host ("app." prefix).
	DomainApp DomainMode = "app"
	// DomainMiniApp is the host reserved for the messaging mini-app ("tg." prefix).
	DomainMiniApp DomainMode = "tma"
	// DomainUnknown is any other host.
	DomainUnknown DomainMode = "unknown"
)

const (
	appPrefix     = "app."
	miniAppPrefix = "tg."
)

var (
	loopbackHosts   = []string{"localhost", "127.0.0.1", "::1", "0.0.0.0"}
	privatePrefixes = []string{"192.168.", "10.", "127.", "169.254."}
	devMarkers      = []string{"dev", "staging", ".local", ".test", "localhost"}
	productionTLDs  = []string{".com", ".net", ".org", ".io", ".app", ".ru", ".me", ".co", ".xyz"}
)

// Classify maps a hostname to an environment tag using string rules only.
// Development wins over production: "staging.example.com" is Development.
func Classify(hostname string) Environment {
	host := normalizeHost(hostname)
	if host == "" {
		return Unknown
	}

	for _, h := range loopbackHosts {
		if host == h {
			return Development
		}
	}
	for _, p := range privatePrefixes {
		if strings.HasPrefix(host, p) {
			return Development
		}
	}
	if isPrivate172(host) {
		return Development
	}
	for _, m := range devMarkers {
		if strings.Contains(host, m) {
			return Development
		}
	}

	for _, tld := range productionTLDs {
		if strings.Contains(host, tld) {
			return Production
		}
	}
	return Unknown
}

// DomainModeOf maps a hostname to its domain mode by prefix.
func DomainModeOf(hostname string) DomainMode {
	host := normalizeHost(hostname)
	switch {
	case strings.HasPrefix(host, appPrefix):
		return DomainApp
	case strings.HasPrefix(host, miniAppPrefix):
		return DomainMiniApp
	default:
		return DomainUnknown
	}
}

// normalizeHost lower-cases the host and strips a port if present.
func normalizeHost(hostname string) string {
	host := strings.ToLower(strings.TrimSpace(hostname))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.Trim(host, "[]")
}

// isPrivate172 matches the 172.16.0.0/12 block (172.16. – 172.31.).
func isPrivate172(host string) bool {
	rest, ok := strings.CutPrefix(host, "172.")
	if !ok {
		return false
	}
	octet, _, _ := strings.Cut(rest, ".")
	return len(octet) == 2 && octet >= "16" && octet <= "31"
}
