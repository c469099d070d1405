package evidence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// maxSnapshotSize bounds the probe body accepted by DecodeSnapshot.
const maxSnapshotSize = 64 << 10

// Snapshot is a frozen copy of a client's ambient facts. It is both the JSON
// document posted by the client-side probe and the deterministic collector
// used in tests. The zero value is the server-rendered context: no browser,
// no bridges, nothing matched.
type Snapshot struct {
	UA                  string           `json:"user_agent,omitempty"`
	Host                string           `json:"hostname,omitempty"`
	Window              Viewport         `json:"viewport"`
	TouchPoints         int              `json:"max_touch_points,omitempty"`
	Platform            string           `json:"platform,omitempty"`
	MatchedDisplayModes []string         `json:"display_modes,omitempty"`
	Standalone          bool             `json:"navigator_standalone,omitempty"`
	WCOVisible          bool             `json:"window_controls_overlay,omitempty"`
	Native              NativeBridge     `json:"native"`
	LegacyRuntime       bool             `json:"legacy_runtime,omitempty"`
	Marker              bool             `json:"native_marker,omitempty"`
	Bridge              *MessagingBridge `json:"messaging_bridge,omitempty"`
	SDK                 *MessagingSDK    `json:"messaging_sdk,omitempty"`
	Capabilities        Features         `json:"features"`
	Hints               *ClientHints     `json:"hints,omitempty"`
}

var (
	_ Collector     = Snapshot{}
	_ HintsProvider = Snapshot{}
)

func (s Snapshot) UserAgent() string         { return s.UA }
func (s Snapshot) Hostname() string          { return s.Host }
func (s Snapshot) Viewport() Viewport        { return s.Window }
func (s Snapshot) MaxTouchPoints() int       { return s.TouchPoints }
func (s Snapshot) NavigatorPlatform() string { return s.Platform }
func (s Snapshot) NavigatorStandalone() bool { return s.Standalone }
func (s Snapshot) WindowControlsOverlay() bool {
	return s.WCOVisible
}
func (s Snapshot) NativeBridge() NativeBridge { return s.Native }
func (s Snapshot) LegacyHybridRuntime() bool  { return s.LegacyRuntime }
func (s Snapshot) NativeMarker() bool         { return s.Marker }
func (s Snapshot) Features() Features         { return s.Capabilities }

func (s Snapshot) DisplayModeMatches(mode string) bool {
	return slices.Contains(s.MatchedDisplayModes, mode)
}

func (s Snapshot) MessagingBridge() (MessagingBridge, bool) {
	if s.Bridge == nil {
		return MessagingBridge{}, false
	}
	return *s.Bridge, true
}

func (s Snapshot) MessagingSDK() (MessagingSDK, bool) {
	if s.SDK == nil {
		return MessagingSDK{}, false
	}
	return *s.SDK, true
}

// HintsSupported reports whether the snapshot carries client hints.
func (s Snapshot) HintsSupported() bool { return s.Hints != nil }

// HighEntropyValues returns the captured client hints.
func (s Snapshot) HighEntropyValues(ctx context.Context) (ClientHints, error) {
	if err := ctx.Err(); err != nil {
		return ClientHints{}, err
	}
	if s.Hints == nil {
		return ClientHints{}, ErrHintsUnsupported
	}
	return *s.Hints, nil
}

// DecodeSnapshot parses a probe document. This is the only fallible step of
// evidence collection: unknown display modes are dropped, platform strings
// are trimmed, and absent bridges stay nil so that downstream code sees
// exactly one of no bridge, a first-party bridge, or a third-party SDK state.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	dec := json.NewDecoder(io.LimitReader(r, maxSnapshotSize))
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Snapshot{}, errors.Join(ErrInvalidSnapshot, err)
	}
	if s.TouchPoints < 0 {
		return Snapshot{}, fmt.Errorf("%w: negative touch points", ErrInvalidSnapshot)
	}

	s.MatchedDisplayModes = slices.DeleteFunc(s.MatchedDisplayModes, func(m string) bool {
		return !slices.Contains(DisplayModes, m)
	})
	s.Platform = strings.TrimSpace(s.Platform)
	if s.Bridge != nil {
		s.Bridge.Platform = strings.ToLower(strings.TrimSpace(s.Bridge.Platform))
	}
	if s.SDK != nil {
		s.SDK.Platform = strings.ToLower(strings.TrimSpace(s.SDK.Platform))
	}
	return s, nil
}
