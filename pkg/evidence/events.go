package evidence

import "sync"

// Event names a change in the client environment that may alter the verdict.
type Event string

const (
	EventOnline          Event = "online"
	EventOffline         Event = "offline"
	EventViewportChanged Event = "viewport-changed"
)

// DisplayModeEvent is the change event of one display-mode media query.
func DisplayModeEvent(mode string) Event {
	return Event("display-mode:" + mode)
}

// EventSource lets callers register for environment change events.
// The returned function removes the registration.
type EventSource interface {
	On(event Event, fn func()) (off func())
}

// Emitter is an in-process EventSource. Handlers run synchronously on the
// goroutine calling Emit and may fire many times in quick succession; no
// debouncing is applied.
type Emitter struct {
	mu       sync.Mutex
	nextID   uint64
	handlers map[Event]map[uint64]func()
}

var _ EventSource = (*Emitter)(nil)

// NewEmitter returns an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{handlers: make(map[Event]map[uint64]func())}
}

// On registers fn for event. The returned function is safe to call repeatedly.
func (e *Emitter) On(event Event, fn func()) func() {
	if fn == nil {
		return func() {}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.handlers == nil {
		e.handlers = make(map[Event]map[uint64]func())
	}
	if e.handlers[event] == nil {
		e.handlers[event] = make(map[uint64]func())
	}
	e.nextID++
	id := e.nextID
	e.handlers[event][id] = fn

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.handlers[event], id)
		if len(e.handlers[event]) == 0 {
			delete(e.handlers, event)
		}
	}
}

// Emit calls every handler registered for event.
// Handlers are invoked outside the lock so they may register or unregister.
func (e *Emitter) Emit(event Event) {
	e.mu.Lock()
	fns := make([]func(), 0, len(e.handlers[event]))
	for _, fn := range e.handlers[event] {
		fns = append(fns, fn)
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Listeners returns the number of registered handlers across all events.
func (e *Emitter) Listeners() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, hs := range e.handlers {
		n += len(hs)
	}
	return n
}
