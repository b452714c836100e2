package bonjour

import (
	"time"

	"github.com/google/uuid"
	"github.com/mash-protocol/bonjour-go/pkg/dnssd"
	"github.com/mash-protocol/bonjour-go/pkg/log"
)

// session is one running discovery operation. It owns its handle and the
// caller's callback; stop releases both exactly once.
type session struct {
	id   string
	kind log.Kind
	key  string

	handle  dnssd.Handle
	watched bool
	stopped bool

	// Exactly one callback is set, matching kind. Advertise sessions have
	// none.
	onBrowse  BrowseFunc
	onResolve ResolveFunc
	onAddress AddressFunc
}

func newSession(kind log.Kind, key string) *session {
	return &session{
		id:   uuid.NewString(),
		kind: kind,
		key:  key,
	}
}

// oneShot reports whether the session ends after its first result.
func (s *session) oneShot() bool {
	return s.kind == log.KindResolve || s.kind == log.KindAddress
}

// releaseCallback drops the caller's callback.
func (s *session) releaseCallback() {
	s.onBrowse = nil
	s.onResolve = nil
	s.onAddress = nil
}

// trace emits a trace event for s. payload is a *log.LifecycleEvent,
// *log.ResultEvent or *log.ErrorEventData.
func (c *Client) trace(s *session, payload any) {
	if c.config.TraceLogger == nil {
		return
	}

	event := log.Event{
		Timestamp: time.Now(),
		SessionID: s.id,
		Kind:      s.kind,
		Key:       s.key,
	}
	switch p := payload.(type) {
	case *log.LifecycleEvent:
		event.Category = log.CategoryLifecycle
		event.Lifecycle = p
	case *log.ResultEvent:
		event.Category = log.CategoryResult
		event.Result = p
	case *log.ErrorEventData:
		event.Category = log.CategoryError
		event.Error = p
	default:
		return
	}
	c.config.TraceLogger.Log(event)
}

func (c *Client) traceStage(s *session, stage log.Stage, reason string) {
	c.trace(s, &log.LifecycleEvent{Stage: stage, Reason: reason})
}
