package log

import "sync"

// Logger receives discovery trace events. A nil Logger or NoopLogger
// disables tracing.
type Logger interface {
	// Log records an event. Implementations must be safe for concurrent
	// use and should not block, since events are emitted from the event
	// loop.
	Log(event Event)
}

// NoopLogger discards all events. Its zero value is ready to use.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// RecordingLogger keeps events in memory, for tests and the interactive
// shell's history.
type RecordingLogger struct {
	mu     sync.Mutex
	events []Event
}

// Log appends the event.
func (r *RecordingLogger) Log(event Event) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *RecordingLogger) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Reset drops recorded events.
func (r *RecordingLogger) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

var (
	_ Logger = NoopLogger{}
	_ Logger = (*RecordingLogger)(nil)
)
