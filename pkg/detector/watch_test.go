package detector_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/platformkit/pkg/detector"
	"github.com/dmitrymomot/platformkit/pkg/evidence"
)

// liveCollector lets a test change evidence between events.
type liveCollector struct {
	evidence.Snapshot
}

func TestWatch(t *testing.T) {
	t.Parallel()

	c := &liveCollector{Snapshot: evidence.Snapshot{UA: windowsUA}}
	det := detector.New(c, detector.WithCacheTTL(time.Hour))
	em := evidence.NewEmitter()

	initial := det.Detect()
	require.True(t, initial.IsWeb())

	var got []*detector.Result
	cleanup := det.Watch(em, func(r *detector.Result) { got = append(got, r) })
	assert.Equal(t, len(evidence.DisplayModes)+2, em.Listeners())

	c.MatchedDisplayModes = []string{evidence.DisplayStandalone}
	em.Emit(evidence.DisplayModeEvent(evidence.DisplayStandalone))
	require.Len(t, got, 1)
	assert.True(t, got[0].IsPWA())
	assert.NotSame(t, initial, got[0])

	em.Emit(evidence.EventOffline)
	em.Emit(evidence.EventOnline)
	assert.Len(t, got, 3)

	// no bridge, so viewport events were never subscribed
	em.Emit(evidence.EventViewportChanged)
	assert.Len(t, got, 3)

	cleanup()
	assert.Equal(t, 0, em.Listeners())
	assert.NotPanics(t, cleanup)

	em.Emit(evidence.EventOnline)
	assert.Len(t, got, 3)
}

func TestWatch_ViewportWithBridge(t *testing.T) {
	t.Parallel()

	c := &liveCollector{Snapshot: evidence.Snapshot{
		UA:     iPhoneUA,
		Bridge: &evidence.MessagingBridge{Version: "7.0", Platform: "ios", ColorScheme: "light"},
	}}
	det := detector.New(c)
	em := evidence.NewEmitter()

	calls := 0
	cleanup := det.Watch(em, func(r *detector.Result) {
		calls++
		assert.True(t, r.IsMiniApp())
	})
	defer cleanup()

	assert.Equal(t, len(evidence.DisplayModes)+3, em.Listeners())
	em.Emit(evidence.EventViewportChanged)
	assert.Equal(t, 1, calls)
}

func TestWatch_NilArguments(t *testing.T) {
	t.Parallel()

	det := detector.New(evidence.Snapshot{})
	assert.NotPanics(t, det.Watch(nil, func(*detector.Result) {}))
	assert.NotPanics(t, det.Watch(evidence.NewEmitter(), nil))
}
