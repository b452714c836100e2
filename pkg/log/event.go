package log

import (
	"time"
)

// Event is one discovery trace event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the discovery session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Kind is the session kind.
	Kind Kind `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Key is the session key: the service type for browse and advertise,
	// the instance name for resolve, the host name for address queries.
	Key string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Lifecycle *LifecycleEvent `cbor:"6,keyasint,omitempty"`
	Result    *ResultEvent    `cbor:"7,keyasint,omitempty"`
	Error     *ErrorEventData `cbor:"8,keyasint,omitempty"`
}

// Kind is the kind of discovery session.
type Kind uint8

const (
	KindBrowse    Kind = 0
	KindAdvertise Kind = 1
	KindResolve   Kind = 2
	KindAddress   Kind = 3
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBrowse:
		return "BROWSE"
	case KindAdvertise:
		return "ADVERTISE"
	case KindResolve:
		return "RESOLVE"
	case KindAddress:
		return "ADDRESS"
	default:
		return "UNKNOWN"
	}
}

// ParseKind parses a kind name as returned by String. Matching is
// case-sensitive.
func ParseKind(s string) (Kind, bool) {
	for k := KindBrowse; k <= KindAddress; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryLifecycle indicates a session start or stop.
	CategoryLifecycle Category = 0
	// CategoryResult indicates a result delivered by the discovery library.
	CategoryResult Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryLifecycle:
		return "LIFECYCLE"
	case CategoryResult:
		return "RESULT"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name as returned by String.
func ParseCategory(s string) (Category, bool) {
	for c := CategoryLifecycle; c <= CategoryError; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// LifecycleEvent captures a session state change.
type LifecycleEvent struct {
	// Stage is the new session stage.
	Stage Stage `cbor:"1,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"2,keyasint,omitempty"`
}

// Stage is a session lifecycle stage.
type Stage uint8

const (
	// StageStarted indicates the library accepted the operation.
	StageStarted Stage = 0
	// StageStopped indicates the session was torn down.
	StageStopped Stage = 1
	// StageRolledBack indicates a failed start was undone.
	StageRolledBack Stage = 2
	// StageRejected indicates the request failed before reaching the library.
	StageRejected Stage = 3
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageStarted:
		return "STARTED"
	case StageStopped:
		return "STOPPED"
	case StageRolledBack:
		return "ROLLED_BACK"
	case StageRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Stop reasons.
const (
	ReasonStopped   = "stopped"
	ReasonCompleted = "completed"
	ReasonFailed    = "failed"
	ReasonDrained   = "drained"
	ReasonDuplicate = "duplicate"
)

// ResultEvent captures one result handed to a session.
type ResultEvent struct {
	// Action says what the result means.
	Action Action `cbor:"1,keyasint"`

	// Flags are the raw reply flags.
	Flags uint32 `cbor:"2,keyasint,omitempty"`

	// Name is the instance name (browse) or full name (resolve).
	Name string `cbor:"3,keyasint,omitempty"`

	// Domain of a browsed instance.
	Domain string `cbor:"4,keyasint,omitempty"`

	// Host is the target host of a resolved instance.
	Host string `cbor:"5,keyasint,omitempty"`

	// Port in host byte order.
	Port uint16 `cbor:"6,keyasint,omitempty"`

	// Address is a dotted-decimal IPv4 address.
	Address string `cbor:"7,keyasint,omitempty"`

	// TXT is the TXT record in wire format.
	TXT []byte `cbor:"8,keyasint,omitempty"`

	// InterfaceIndex the result arrived on.
	InterfaceIndex int `cbor:"9,keyasint,omitempty"`

	// TTL of an address record in seconds.
	TTL uint32 `cbor:"10,keyasint,omitempty"`
}

// Action says what a result means.
type Action uint8

const (
	// ActionAdd indicates a browsed instance appeared.
	ActionAdd Action = 0
	// ActionRemove indicates a browsed instance went away.
	ActionRemove Action = 1
	// ActionResolved indicates an instance was resolved.
	ActionResolved Action = 2
	// ActionAddress indicates a host address was found.
	ActionAddress Action = 3
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "ADD"
	case ActionRemove:
		return "REMOVE"
	case ActionResolved:
		return "RESOLVED"
	case ActionAddress:
		return "ADDRESS"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures a synchronous or asynchronous failure.
type ErrorEventData struct {
	// Operation is the failing call, e.g. "StartBrowse" or "BrowseReply".
	Operation string `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the native error code (if applicable).
	Code *int `cbor:"3,keyasint,omitempty"`

	// Callback is true when the error came from an application callback.
	Callback bool `cbor:"4,keyasint,omitempty"`
}
