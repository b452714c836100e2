package bonjour

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mash-protocol/bonjour-go/pkg/dnssd"
	"github.com/mash-protocol/bonjour-go/pkg/log"
	"github.com/mash-protocol/bonjour-go/pkg/registry"
	"github.com/mash-protocol/bonjour-go/pkg/txt"
)

// Client runs discovery sessions. Create one with New.
type Client struct {
	lib    dnssd.Library
	loop   EventLoop
	config Config

	// browses and adverts are keyed by service type; pending holds the
	// one-shot resolve and address sessions keyed by session ID.
	browses *registry.Registry[*session]
	adverts *registry.Registry[*session]
	pending *registry.Registry[*session]

	closed bool
}

// New creates a Client that starts operations on lib and watches their
// handles on loop. The client closes itself when the loop shuts down.
func New(lib dnssd.Library, loop EventLoop, config Config) *Client {
	if config.Domain == "" {
		config.Domain = dnssd.DefaultDomain
	}
	c := &Client{
		lib:     lib,
		loop:    loop,
		config:  config,
		browses: registry.New[*session](),
		adverts: registry.New[*session](),
		pending: registry.New[*session](),
	}
	loop.OnShutdown(c.Close)
	return c
}

// Advertise publishes a service. It fails with ErrDuplicateRegistration if
// the service type is already advertised, leaving that advertisement
// untouched.
func (c *Client) Advertise(info *AdvertiseInfo) error {
	if c.closed {
		return ErrClosed
	}
	if info == nil || info.ServiceType == "" {
		return ErrInvalidServiceType
	}

	wire, err := txt.Encode(info.TXT)
	if err != nil {
		return err
	}

	if _, exists := c.adverts.Lookup(info.ServiceType); exists {
		c.debugLog("Advertise: duplicate", "type", info.ServiceType)
		return fmt.Errorf("%w: %s", ErrDuplicateRegistration, info.ServiceType)
	}

	domain := info.Domain
	if domain == "" {
		domain = c.config.Domain
	}

	s := newSession(log.KindAdvertise, info.ServiceType)
	h, err := c.lib.StartAdvertise(dnssd.AdvertiseRequest{
		Name:        info.Name,
		ServiceType: info.ServiceType,
		Domain:      domain,
		Port:        dnssd.HostToNetwork(info.Port),
		TXT:         wire,
	})
	if err != nil {
		return c.rollback(s, "StartAdvertise", err)
	}

	// Advertisements need no event pumping; the handle is only kept so
	// the registration can be withdrawn.
	s.handle = h
	c.adverts.Register(s.key, s)
	c.traceStage(s, log.StageStarted, "")
	c.debugLog("Advertise: started",
		"type", info.ServiceType,
		"name", info.Name,
		"port", info.Port,
		"session", s.id)
	return nil
}

// Unadvertise withdraws the advertisement for serviceType. It is a no-op
// if none is active.
func (c *Client) Unadvertise(serviceType string) error {
	if s, ok := c.adverts.Lookup(serviceType); ok {
		c.stop(s, log.ReasonStopped)
	}
	return nil
}

// Browse starts browsing for serviceType. onEvent runs on the loop
// goroutine for every instance added or removed, in library order. It
// fails with ErrDuplicateBrowse if serviceType is already browsed.
func (c *Client) Browse(serviceType string, onEvent BrowseFunc) error {
	if c.closed {
		return ErrClosed
	}
	if serviceType == "" {
		return ErrInvalidServiceType
	}
	if onEvent == nil {
		return ErrNilCallback
	}
	if _, exists := c.browses.Lookup(serviceType); exists {
		c.debugLog("Browse: duplicate", "type", serviceType)
		return fmt.Errorf("%w: %s", ErrDuplicateBrowse, serviceType)
	}

	s := newSession(log.KindBrowse, serviceType)
	s.onBrowse = onEvent

	h, err := c.lib.StartBrowse(serviceType, c.config.Domain, func(r dnssd.BrowseRecord, code dnssd.ErrorCode) {
		c.handleBrowseReply(s, r, code)
	})
	if err != nil {
		return c.rollback(s, "StartBrowse", err)
	}

	s.handle = h
	c.watch(s)
	c.browses.Register(s.key, s)
	c.traceStage(s, log.StageStarted, "")
	c.debugLog("Browse: started", "type", serviceType, "session", s.id)
	return nil
}

// Unbrowse stops browsing for serviceType. It is a no-op if no browse is
// active, and may be called from the browse's own callback.
func (c *Client) Unbrowse(serviceType string) error {
	if s, ok := c.browses.Lookup(serviceType); ok {
		c.stop(s, log.ReasonStopped)
	}
	return nil
}

// Resolve resolves a browsed instance to host, port and TXT metadata.
// onResult runs at most once, on success. Either way the session ends
// after the first result.
func (c *Client) Resolve(name, serviceType, domain string, onResult ResolveFunc) error {
	if c.closed {
		return ErrClosed
	}
	if serviceType == "" {
		return ErrInvalidServiceType
	}
	if onResult == nil {
		return ErrNilCallback
	}
	if domain == "" {
		domain = c.config.Domain
	}

	s := newSession(log.KindResolve, name)
	s.onResolve = onResult

	h, err := c.lib.StartResolve(name, serviceType, domain, func(r dnssd.ResolveRecord, code dnssd.ErrorCode) {
		c.handleResolveReply(s, r, code)
	})
	if err != nil {
		return c.rollback(s, "StartResolve", err)
	}

	s.handle = h
	c.watch(s)
	c.pending.Register(s.id, s)
	c.traceStage(s, log.StageStarted, "")
	c.debugLog("Resolve: started",
		"name", name,
		"type", serviceType,
		"domain", domain,
		"session", s.id)
	return nil
}

// ResolveAddress resolves hostname to an IPv4 address. onResult runs at
// most once, on success. Either way the session ends after the first
// result.
func (c *Client) ResolveAddress(hostname string, onResult AddressFunc) error {
	if c.closed {
		return ErrClosed
	}
	if onResult == nil {
		return ErrNilCallback
	}

	s := newSession(log.KindAddress, hostname)
	s.onAddress = onResult

	h, err := c.lib.StartAddressQuery(hostname, func(r dnssd.QueryRecord, code dnssd.ErrorCode) {
		c.handleQueryReply(s, r, code)
	})
	if err != nil {
		return c.rollback(s, "StartAddressQuery", err)
	}

	s.handle = h
	c.watch(s)
	c.pending.Register(s.id, s)
	c.traceStage(s, log.StageStarted, "")
	c.debugLog("ResolveAddress: started", "host", hostname, "session", s.id)
	return nil
}

// Close stops every session: browses, advertisements and pending
// resolves. It runs automatically when the event loop shuts down and is
// safe to call more than once. Start calls fail with ErrClosed afterwards.
func (c *Client) Close() {
	if c.closed {
		return
	}
	c.closed = true

	n := c.browses.Len() + c.adverts.Len() + c.pending.Len()
	teardown := func(_ string, s *session) { c.stop(s, log.ReasonDrained) }
	c.browses.Drain(teardown)
	c.adverts.Drain(teardown)
	c.pending.Drain(teardown)
	c.debugLog("Close: drained", "sessions", n)
}

// Browsing returns the browsed service types in start order.
func (c *Client) Browsing() []string {
	return c.browses.Keys()
}

// Advertising returns the advertised service types in start order.
func (c *Client) Advertising() []string {
	return c.adverts.Keys()
}

// PendingResolves returns the number of resolves and address queries
// still waiting for a result.
func (c *Client) PendingResolves() int {
	return c.pending.Len()
}

// watch installs the event bridge for s.
func (c *Client) watch(s *session) {
	c.loop.RegisterReadable(s.handle, func() { c.pump(s) })
	s.watched = true
}

// stop tears s down: deregister its handle, release it, drop the callback
// and remove the registry entry, in that order. Stopping twice is a no-op.
func (c *Client) stop(s *session, reason string) {
	if s.stopped {
		return
	}
	s.stopped = true

	if s.watched {
		c.loop.DeregisterReadable(s.handle)
		s.watched = false
	}
	s.handle.Release()
	s.releaseCallback()

	switch s.kind {
	case log.KindBrowse:
		c.removeIfCurrent(c.browses, s.key, s)
	case log.KindAdvertise:
		c.removeIfCurrent(c.adverts, s.key, s)
	default:
		c.pending.Remove(s.id)
	}

	c.traceStage(s, log.StageStopped, reason)
	c.debugLog("session stopped",
		"kind", s.kind.String(),
		"key", s.key,
		"reason", reason,
		"session", s.id)
}

func (c *Client) removeIfCurrent(r *registry.Registry[*session], key string, s *session) {
	if cur, ok := r.Lookup(key); ok && cur == s {
		r.Remove(key)
	}
}

// rollback undoes a failed start: nothing was watched or registered, so
// only the callback is dropped. The returned error is a *dnssd.ServiceError.
func (c *Client) rollback(s *session, op string, err error) error {
	s.releaseCallback()
	s.stopped = true

	serr := asServiceError(op, err)
	c.trace(s, errorEvent(serr, false))
	c.traceStage(s, log.StageRolledBack, log.ReasonFailed)
	c.debugLog(op+": failed", "key", s.key, "error", serr)
	return serr
}

// asServiceError returns err as a *dnssd.ServiceError, wrapping foreign
// errors as ErrUnknown under op.
func asServiceError(op string, err error) *dnssd.ServiceError {
	var serr *dnssd.ServiceError
	if errors.As(err, &serr) {
		return serr
	}
	return dnssd.NewServiceError(op, dnssd.ErrUnknown, err)
}

func errorEvent(err error, callback bool) *log.ErrorEventData {
	data := &log.ErrorEventData{Message: err.Error(), Callback: callback}
	var serr *dnssd.ServiceError
	if errors.As(err, &serr) {
		data.Operation = serr.Operation
		code := int(serr.Code)
		data.Code = &code
	}
	return data
}

// report hands an asynchronous error to Config.OnError.
func (c *Client) report(s *session, err error, callback bool) {
	c.trace(s, errorEvent(err, callback))

	if c.config.OnError != nil {
		c.config.OnError(err)
		return
	}
	logger := c.config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("discovery error",
		"kind", s.kind.String(),
		"key", s.key,
		"session", s.id,
		"error", err)
}

// debugLog logs a debug message if logging is enabled.
func (c *Client) debugLog(msg string, args ...any) {
	if c.config.Logger != nil {
		c.config.Logger.Debug(msg, args...)
	}
}
