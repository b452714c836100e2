package bonjour_test

import (
	"errors"
	"sync"

	"github.com/mash-protocol/bonjour-go/pkg/dnssd"
	"github.com/mash-protocol/bonjour-go/pkg/eventloop"
)

// opLog records collaborator calls in order across fakes.
type opLog struct {
	mu  sync.Mutex
	ops []string
}

func (l *opLog) add(op string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.ops = append(l.ops, op)
	l.mu.Unlock()
}

func (l *opLog) get() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.ops...)
}

// fakeLoop is a manually driven event loop.
type fakeLoop struct {
	log      *opLog
	handlers map[eventloop.Source]func()
	shutdown []func()
}

func newFakeLoop(log *opLog) *fakeLoop {
	return &fakeLoop{log: log, handlers: make(map[eventloop.Source]func())}
}

func (l *fakeLoop) RegisterReadable(src eventloop.Source, fn func()) {
	l.log.add("register")
	l.handlers[src] = fn
}

func (l *fakeLoop) DeregisterReadable(src eventloop.Source) {
	l.log.add("deregister")
	delete(l.handlers, src)
}

func (l *fakeLoop) OnShutdown(fn func()) {
	l.shutdown = append(l.shutdown, fn)
}

// fire runs the readiness handler of src, reporting whether one was
// registered.
func (l *fakeLoop) fire(src eventloop.Source) bool {
	fn, ok := l.handlers[src]
	if ok {
		fn()
	}
	return ok
}

func (l *fakeLoop) watching(src eventloop.Source) bool {
	_, ok := l.handlers[src]
	return ok
}

func (l *fakeLoop) runShutdown() {
	for _, fn := range l.shutdown {
		fn()
	}
}

// fakeHandle delivers queued results one per ProcessResult.
type fakeHandle struct {
	log *opLog

	mu         sync.Mutex
	queue      []func()
	releases   int
	processErr error
	ready      chan struct{}
}

func newFakeHandle(log *opLog) *fakeHandle {
	return &fakeHandle{log: log, ready: make(chan struct{}, 1)}
}

func (h *fakeHandle) Readable() <-chan struct{} { return h.ready }

// enqueue queues a delivery and signals readiness.
func (h *fakeHandle) enqueue(fn func()) {
	h.mu.Lock()
	h.queue = append(h.queue, fn)
	h.mu.Unlock()
	h.signal()
}

func (h *fakeHandle) signal() {
	select {
	case h.ready <- struct{}{}:
	default:
	}
}

func (h *fakeHandle) ProcessResult() error {
	h.mu.Lock()
	if h.releases > 0 {
		h.mu.Unlock()
		return errors.New("process on released handle")
	}
	if h.processErr != nil {
		err := h.processErr
		h.mu.Unlock()
		return err
	}
	if len(h.queue) == 0 {
		h.mu.Unlock()
		return nil
	}
	fn := h.queue[0]
	h.queue = h.queue[1:]
	more := len(h.queue) > 0
	h.mu.Unlock()

	fn()
	if more {
		h.signal()
	}
	return nil
}

func (h *fakeHandle) Release() {
	h.log.add("release")
	h.mu.Lock()
	h.releases++
	h.mu.Unlock()
}

func (h *fakeHandle) releaseCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.releases
}

// fakeLibrary hands out fakeHandles and keeps the reply functions so
// tests can deliver results.
type fakeLibrary struct {
	log *opLog

	// err, if set, is returned by the next Start call.
	err error

	handles          []*fakeHandle
	adverts          []dnssd.AdvertiseRequest
	browse           map[string]dnssd.BrowseReply
	resolve          dnssd.ResolveReply
	query            dnssd.QueryReply
	lastBrowseDomain string
}

func newFakeLibrary(log *opLog) *fakeLibrary {
	return &fakeLibrary{log: log, browse: make(map[string]dnssd.BrowseReply)}
}

func (l *fakeLibrary) start(op string) (*fakeHandle, error) {
	l.log.add(op)
	if err := l.err; err != nil {
		l.err = nil
		return nil, err
	}
	h := newFakeHandle(l.log)
	l.handles = append(l.handles, h)
	return h, nil
}

func (l *fakeLibrary) last() *fakeHandle {
	return l.handles[len(l.handles)-1]
}

func (l *fakeLibrary) StartBrowse(serviceType, domain string, reply dnssd.BrowseReply) (dnssd.Handle, error) {
	h, err := l.start("StartBrowse")
	if err != nil {
		return nil, err
	}
	l.browse[serviceType] = reply
	l.lastBrowseDomain = domain
	return h, nil
}

func (l *fakeLibrary) StartAdvertise(req dnssd.AdvertiseRequest) (dnssd.Handle, error) {
	h, err := l.start("StartAdvertise")
	if err != nil {
		return nil, err
	}
	l.adverts = append(l.adverts, req)
	return h, nil
}

func (l *fakeLibrary) StartResolve(name, serviceType, domain string, reply dnssd.ResolveReply) (dnssd.Handle, error) {
	h, err := l.start("StartResolve")
	if err != nil {
		return nil, err
	}
	l.resolve = reply
	return h, nil
}

func (l *fakeLibrary) StartAddressQuery(hostname string, reply dnssd.QueryReply) (dnssd.Handle, error) {
	h, err := l.start("StartAddressQuery")
	if err != nil {
		return nil, err
	}
	l.query = reply
	return h, nil
}

var (
	_ dnssd.Library = (*fakeLibrary)(nil)
	_ dnssd.Handle  = (*fakeHandle)(nil)
)
