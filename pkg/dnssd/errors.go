package dnssd

import (
	"fmt"
	"strconv"
)

// ErrorCode is a native DNS-SD error code. The values match dns_sd.h so
// they stay meaningful in logs next to other DNS-SD tooling.
type ErrorCode int32

const (
	NoError              ErrorCode = 0
	ErrUnknown           ErrorCode = -65537
	ErrNoSuchName        ErrorCode = -65538
	ErrNoMemory          ErrorCode = -65539
	ErrBadParam          ErrorCode = -65540
	ErrBadReference      ErrorCode = -65541
	ErrBadState          ErrorCode = -65542
	ErrBadFlags          ErrorCode = -65543
	ErrUnsupported       ErrorCode = -65544
	ErrNotInitialized    ErrorCode = -65545
	ErrAlreadyRegistered ErrorCode = -65547
	ErrNameConflict      ErrorCode = -65548
	ErrInvalid           ErrorCode = -65549
	ErrFirewall          ErrorCode = -65550
	ErrIncompatible      ErrorCode = -65551
	ErrBadInterfaceIndex ErrorCode = -65552
	ErrRefused           ErrorCode = -65553
	ErrNoSuchRecord      ErrorCode = -65554
	ErrNoAuth            ErrorCode = -65555
	ErrNoSuchKey         ErrorCode = -65556
	ErrServiceNotRunning ErrorCode = -65563
	ErrTimeout           ErrorCode = -65568
)

var codeNames = map[ErrorCode]string{
	NoError:              "NoError",
	ErrUnknown:           "Unknown",
	ErrNoSuchName:        "NoSuchName",
	ErrNoMemory:          "NoMemory",
	ErrBadParam:          "BadParam",
	ErrBadReference:      "BadReference",
	ErrBadState:          "BadState",
	ErrBadFlags:          "BadFlags",
	ErrUnsupported:       "Unsupported",
	ErrNotInitialized:    "NotInitialized",
	ErrAlreadyRegistered: "AlreadyRegistered",
	ErrNameConflict:      "NameConflict",
	ErrInvalid:           "Invalid",
	ErrFirewall:          "Firewall",
	ErrIncompatible:      "Incompatible",
	ErrBadInterfaceIndex: "BadInterfaceIndex",
	ErrRefused:           "Refused",
	ErrNoSuchRecord:      "NoSuchRecord",
	ErrNoAuth:            "NoAuth",
	ErrNoSuchKey:         "NoSuchKey",
	ErrServiceNotRunning: "ServiceNotRunning",
	ErrTimeout:           "Timeout",
}

// String returns the code name.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "ErrorCode(" + strconv.Itoa(int(c)) + ")"
}

// Error makes a bare code usable as an errors.Is target.
func (c ErrorCode) Error() string {
	return c.String()
}

// ServiceError reports a failed discovery operation: either a Start call
// the library rejected, or an error delivered asynchronously in a reply.
type ServiceError struct {
	// Operation names the failing call, e.g. "StartBrowse" or "ResolveReply".
	Operation string

	// Code is the native error code.
	Code ErrorCode

	// Err is the underlying cause, if any.
	Err error
}

// NewServiceError creates a ServiceError.
func NewServiceError(op string, code ErrorCode, cause error) *ServiceError {
	return &ServiceError{Operation: op, Code: code, Err: cause}
}

func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("%s failed: %s (%d)", e.Operation, e.Code, int32(e.Code))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is matches a bare ErrorCode target by code.
func (e *ServiceError) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && code == e.Code
}
