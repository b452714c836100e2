// Package eventloop provides a single-goroutine event loop that dispatches
// readiness notifications, posted tasks and shutdown hooks.
//
// Every handler runs on the goroutine that called Run, one at a time.
// Handlers may register, deregister and post freely; none of those calls
// block on the loop.
package eventloop

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrRunning is returned when Run is called on a loop that is already running.
var ErrRunning = errors.New("event loop already running")

// Source is a readiness source, such as a discovery handle.
type Source interface {
	// Readable signals when the source has something to process.
	Readable() <-chan struct{}
}

// Loop is a single-goroutine event loop.
type Loop struct {
	logger *slog.Logger

	mu       sync.Mutex
	tasks    []func()
	wake     chan struct{}
	watches  map[Source]*watch
	shutdown []func()
	running  bool
}

// watch forwards readiness from one source into the loop.
type watch struct {
	fn   func()
	stop chan struct{}
}

// New creates a loop. A nil logger disables debug output.
func New(logger *slog.Logger) *Loop {
	return &Loop{
		logger:  logger,
		wake:    make(chan struct{}, 1),
		watches: make(map[Source]*watch),
	}
}

// RegisterReadable arranges for fn to run on the loop each time src becomes
// readable. Registering a source again replaces its handler.
func (l *Loop) RegisterReadable(src Source, fn func()) {
	l.mu.Lock()
	if w, ok := l.watches[src]; ok {
		w.fn = fn
		l.mu.Unlock()
		return
	}
	w := &watch{fn: fn, stop: make(chan struct{})}
	l.watches[src] = w
	n := len(l.watches)
	l.mu.Unlock()

	l.debugLog("eventloop: watch registered", "watches", n)
	go l.forward(src, w)
}

// DeregisterReadable stops watching src. A readiness notification already
// queued for src is discarded, so a source registered again afterwards may
// need to signal again. Deregistering an unknown source is a no-op.
func (l *Loop) DeregisterReadable(src Source) {
	l.mu.Lock()
	w, ok := l.watches[src]
	if ok {
		delete(l.watches, src)
		close(w.stop)
	}
	n := len(l.watches)
	l.mu.Unlock()

	if ok {
		l.debugLog("eventloop: watch deregistered", "watches", n)
	}
}

// Watching reports whether src is currently registered.
func (l *Loop) Watching(src Source) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.watches[src]
	return ok
}

// OnShutdown registers fn to run on the loop goroutine when Run stops.
// Hooks run in registration order.
func (l *Loop) OnShutdown(fn func()) {
	l.mu.Lock()
	l.shutdown = append(l.shutdown, fn)
	l.mu.Unlock()
}

// Post queues fn to run on the loop. Safe to call from any goroutine.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run dispatches events until ctx is cancelled, then runs the shutdown
// hooks and stops every remaining watch.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrRunning
	}
	l.running = true
	l.mu.Unlock()

	l.debugLog("eventloop: running")
	defer l.debugLog("eventloop: stopped")

	for {
		l.runTasks()

		select {
		case <-ctx.Done():
			l.stop()
			return nil
		case <-l.wake:
		}
	}
}

// runTasks runs queued tasks, including ones queued while running.
func (l *Loop) runTasks() {
	for {
		l.mu.Lock()
		if len(l.tasks) == 0 {
			l.mu.Unlock()
			return
		}
		tasks := l.tasks
		l.tasks = nil
		l.mu.Unlock()

		for _, task := range tasks {
			task()
		}
	}
}

func (l *Loop) stop() {
	l.mu.Lock()
	hooks := l.shutdown
	l.shutdown = nil
	l.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}

	l.mu.Lock()
	for src, w := range l.watches {
		close(w.stop)
		delete(l.watches, src)
	}
	l.tasks = nil
	l.running = false
	l.mu.Unlock()
}

// forward posts one dispatch per readiness signal and waits for it to run
// before listening again, so a source is pumped once per notification.
func (l *Loop) forward(src Source, w *watch) {
	ready := src.Readable()
	for {
		select {
		case <-w.stop:
			return
		case <-ready:
		}

		done := make(chan struct{})
		l.Post(func() {
			defer close(done)
			if fn := l.handler(src, w); fn != nil {
				fn()
			}
		})

		select {
		case <-w.stop:
			return
		case <-done:
		}
	}
}

// handler returns the handler of w if w is still the watch for src.
func (l *Loop) handler(src Source, w *watch) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.watches[src] != w {
		return nil
	}
	return w.fn
}

// debugLog logs a debug message if logging is enabled.
func (l *Loop) debugLog(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Debug(msg, args...)
	}
}
