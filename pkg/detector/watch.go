package detector

import (
	"sync"

	"github.com/dmitrymomot/platformkit/pkg/evidence"
	"github.com/dmitrymomot/platformkit/pkg/platform"
)

// Watch re-runs detection whenever the environment may have changed and
// passes each fresh verdict to fn. It listens to every display-mode change,
// to online and offline, and to host viewport changes when the first-party
// messaging bridge exists. Each event clears the cache first.
//
// The returned cleanup removes every listener Watch registered. Calling it
// more than once is safe.
func (d *Detector) Watch(src evidence.EventSource, fn func(*Result)) (cleanup func()) {
	if src == nil || fn == nil {
		return func() {}
	}

	handler := func() {
		d.ClearCache()
		fn(d.Detect())
	}

	events := make([]evidence.Event, 0, len(evidence.DisplayModes)+3)
	for _, mode := range evidence.DisplayModes {
		events = append(events, evidence.DisplayModeEvent(mode))
	}
	events = append(events, evidence.EventOnline, evidence.EventOffline)
	if platform.ProbeBridge(d.collector).HasBridge() {
		events = append(events, evidence.EventViewportChanged)
	}

	offs := make([]func(), 0, len(events))
	for _, ev := range events {
		if off := src.On(ev, handler); off != nil {
			offs = append(offs, off)
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for _, off := range offs {
				off()
			}
		})
	}
}
