package platform

import (
	"strings"

	"github.com/dmitrymomot/platformkit/pkg/evidence"
)

// BridgeKind tags which messaging capability a collector exposes.
type BridgeKind int

const (
	NoBridge BridgeKind = iota
	FirstPartyBridge
	ThirdPartySDK
)

func (k BridgeKind) String() string {
	switch k {
	case FirstPartyBridge:
		return "first_party"
	case ThirdPartySDK:
		return "third_party"
	default:
		return "none"
	}
}

// MarshalText renders the kind by name in JSON output.
func (k BridgeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Probe is the parsed messaging capability of one collector. Kind is the
// preferred variant; both payloads are kept because a client may carry the
// SDK and the first-party bridge at the same time.
type Probe struct {
	Kind   BridgeKind
	Bridge *evidence.MessagingBridge
	SDK    *evidence.MessagingSDK
}

// HasBridge reports whether the first-party bridge object exists.
func (p Probe) HasBridge() bool { return p.Bridge != nil }

// ProbeBridge reads the messaging globals once and normalizes them. The
// third-party SDK wins the Kind tag when both are present.
func ProbeBridge(c evidence.Collector) Probe {
	var p Probe
	if b, ok := c.MessagingBridge(); ok {
		b.Platform = strings.ToLower(strings.TrimSpace(b.Platform))
		b.ColorScheme = strings.TrimSpace(b.ColorScheme)
		p.Bridge = &b
		p.Kind = FirstPartyBridge
	}
	if s, ok := c.MessagingSDK(); ok {
		s.Platform = strings.ToLower(strings.TrimSpace(s.Platform))
		s.ColorScheme = strings.TrimSpace(s.ColorScheme)
		p.SDK = &s
		p.Kind = ThirdPartySDK
	}
	return p
}
