package bonjour

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mash-protocol/bonjour-go/pkg/eventloop"
	"github.com/mash-protocol/bonjour-go/pkg/log"
	"github.com/mash-protocol/bonjour-go/pkg/txt"
)

// Client errors.
var (
	ErrDuplicateRegistration = errors.New("service type already advertised")
	ErrDuplicateBrowse       = errors.New("service type already browsed")
	ErrInvalidServiceType    = errors.New("invalid service type")
	ErrNilCallback           = errors.New("nil callback")
	ErrClosed                = errors.New("client closed")
)

// EventLoop is the host event loop a Client wires its handles into.
// *eventloop.Loop implements it.
type EventLoop interface {
	RegisterReadable(src eventloop.Source, fn func())
	DeregisterReadable(src eventloop.Source)
	OnShutdown(fn func())
}

// BrowseErrorPolicy decides what happens to a browse session when the
// library reports an asynchronous error for it.
type BrowseErrorPolicy uint8

const (
	// ContinueOnError reports the error and keeps browsing.
	ContinueOnError BrowseErrorPolicy = iota
	// StopOnError reports the error and ends the browse session.
	StopOnError
)

// String returns the policy name as used in configuration files.
func (p BrowseErrorPolicy) String() string {
	switch p {
	case ContinueOnError:
		return "continue"
	case StopOnError:
		return "stop"
	default:
		return fmt.Sprintf("BrowseErrorPolicy(%d)", uint8(p))
	}
}

// ParseBrowseErrorPolicy parses "continue" or "stop".
func ParseBrowseErrorPolicy(s string) (BrowseErrorPolicy, error) {
	switch strings.ToLower(s) {
	case "", "continue":
		return ContinueOnError, nil
	case "stop":
		return StopOnError, nil
	default:
		return 0, fmt.Errorf("unknown browse error policy %q", s)
	}
}

// Config configures a Client.
type Config struct {
	// Domain is used when an operation names no domain. Empty means "local".
	Domain string

	// BrowseErrorPolicy applies to asynchronous browse errors.
	BrowseErrorPolicy BrowseErrorPolicy

	// OnError receives asynchronous errors: library errors delivered after
	// an operation started, and errors returned by callbacks. If nil, they
	// are logged at error level.
	OnError func(error)

	// Logger is used for debug output. If nil, debug output is disabled
	// and errors go to slog.Default().
	Logger *slog.Logger

	// TraceLogger receives a trace event for every session state change
	// and result. If nil, no trace is produced.
	TraceLogger log.Logger
}

// AdvertiseInfo describes a service to advertise.
type AdvertiseInfo struct {
	// ServiceType, e.g. "_http._tcp". Required.
	ServiceType string

	// Name is the instance name. Empty means the host name.
	Name string

	// Domain to advertise in. Empty means the client's domain.
	Domain string

	// Port in host byte order.
	Port uint16

	// TXT metadata. May be empty.
	TXT txt.Record
}

// Action says whether a browsed instance appeared or went away.
type Action uint8

const (
	ActionAdd Action = iota
	ActionRemove
)

// String returns "add" or "remove".
func (a Action) String() string {
	if a == ActionAdd {
		return "add"
	}
	return "remove"
}

// BrowseEvent is one browse result.
type BrowseEvent struct {
	Action         Action
	Name           string
	ServiceType    string
	Domain         string
	InterfaceIndex int

	// MoreComing is set when the library has more results queued behind
	// this one.
	MoreComing bool
}

// ResolveResult is the outcome of a successful Resolve.
type ResolveResult struct {
	// FullName is the escaped full service name.
	FullName string

	// Host is the target host name.
	Host string

	// Port in host byte order.
	Port uint16

	TXT            txt.Record
	InterfaceIndex int
}

// AddressResult is the outcome of a successful ResolveAddress.
type AddressResult struct {
	Hostname string

	// Address is the IPv4 address in dotted-decimal form.
	Address string

	// TTL of the address record in seconds.
	TTL            uint32
	InterfaceIndex int
}

// Callbacks. An error returned by a callback is passed to Config.OnError
// and never ends a session.
type (
	BrowseFunc  func(BrowseEvent) error
	ResolveFunc func(ResolveResult) error
	AddressFunc func(AddressResult) error
)
