package dnssd

import (
	"sync"
)

// queueHandle is the Handle used by the zeroconf backend. Background
// workers push deliveries; ProcessResult runs them one at a time on the
// caller's goroutine, which is what makes reply functions synchronous.
type queueHandle struct {
	mu       sync.Mutex
	pending  []func()
	ready    chan struct{}
	released bool

	// onRelease stops the workers and frees backend resources.
	onRelease []func()
}

func newQueueHandle() *queueHandle {
	return &queueHandle{ready: make(chan struct{}, 1)}
}

// Readable implements Handle.
func (h *queueHandle) Readable() <-chan struct{} {
	return h.ready
}

// push queues a delivery and signals readiness. Deliveries pushed after
// Release are dropped.
func (h *queueHandle) push(fn func()) {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.pending = append(h.pending, fn)
	h.mu.Unlock()
	h.signal()
}

func (h *queueHandle) signal() {
	select {
	case h.ready <- struct{}{}:
	default:
	}
}

// ProcessResult implements Handle.
func (h *queueHandle) ProcessResult() error {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return NewServiceError("ProcessResult", ErrBadReference, nil)
	}
	if len(h.pending) == 0 {
		h.mu.Unlock()
		return nil
	}
	fn := h.pending[0]
	h.pending[0] = nil
	h.pending = h.pending[1:]
	h.mu.Unlock()

	fn()

	h.mu.Lock()
	more := !h.released && len(h.pending) > 0
	h.mu.Unlock()
	if more {
		h.signal()
	}
	return nil
}

// Release implements Handle. Calling it more than once is harmless.
func (h *queueHandle) Release() {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.released = true
	h.pending = nil
	hooks := h.onRelease
	h.onRelease = nil
	h.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

// pendingFlags returns FlagsMoreComing when deliveries remain queued.
func (h *queueHandle) pendingFlags() Flags {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.pending) > 0 {
		return FlagsMoreComing
	}
	return 0
}

var _ Handle = (*queueHandle)(nil)
