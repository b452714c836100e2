// Package dnssd defines the discovery library that bonjour sessions drive,
// and provides an implementation on top of zeroconf.
//
// The contract follows the shape of the DNS-SD C API. Each Start call
// returns a Handle that owns one readiness source (its "socket"). When the
// source becomes readable, the owner calls ProcessResult, which reads one
// pending result and synchronously invokes the reply function registered
// with the Start call zero or one times. Release tears the operation down.
//
// Ports cross this boundary in network byte order, as they do in dns_sd.h.
// TXT records cross it in wire format (see package txt).
package dnssd

// Library starts discovery operations.
type Library interface {
	// StartBrowse begins browsing for instances of serviceType in domain.
	// An empty domain means the default browse domain.
	StartBrowse(serviceType, domain string, reply BrowseReply) (Handle, error)

	// StartAdvertise publishes a service instance. Advertisements have no
	// reply; the registration stays valid until the handle is released.
	StartAdvertise(req AdvertiseRequest) (Handle, error)

	// StartResolve resolves a browsed instance to host, port and TXT data.
	StartResolve(name, serviceType, domain string, reply ResolveReply) (Handle, error)

	// StartAddressQuery queries the IPv4 address record of hostname.
	StartAddressQuery(hostname string, reply QueryReply) (Handle, error)
}

// Handle is one running discovery operation.
type Handle interface {
	// Readable signals when a result is pending. It stays signalled (or is
	// signalled again) for as long as results remain.
	Readable() <-chan struct{}

	// ProcessResult processes one pending result, invoking the operation's
	// reply function at most once before returning. With nothing pending it
	// returns immediately.
	ProcessResult() error

	// Release stops the operation and frees its resources. No reply is
	// invoked after Release returns.
	Release()
}

// Flags are reply flags.
type Flags uint32

const (
	// FlagsMoreComing indicates more results are queued behind this one.
	FlagsMoreComing Flags = 0x1

	// FlagsAdd indicates a browse result is an addition, not a removal.
	FlagsAdd Flags = 0x2
)

// BrowseRecord is one browse result.
type BrowseRecord struct {
	Flags          Flags
	InterfaceIndex int
	Name           string
	ServiceType    string
	Domain         string
}

// ResolveRecord is one resolve result.
type ResolveRecord struct {
	Flags          Flags
	InterfaceIndex int

	// FullName is the escaped full service name, as built by ConstructFullName.
	FullName   string
	HostTarget string

	// Port is in network byte order.
	Port uint16

	// TXT is the TXT record in wire format.
	TXT []byte
}

// QueryRecord is one resource record returned by an address query.
type QueryRecord struct {
	Flags          Flags
	InterfaceIndex int
	FullName       string
	RRType         uint16
	RRClass        uint16
	RData          []byte
	TTL            uint32
}

// AdvertiseRequest describes a service to advertise.
type AdvertiseRequest struct {
	// Name is the instance name. Empty means the host name.
	Name        string
	ServiceType string
	Domain      string

	// Port is in network byte order.
	Port uint16

	// TXT is the TXT record in wire format. May be empty.
	TXT []byte
}

// Reply functions. code is NoError on success; otherwise the record is
// zero and code says what went wrong.
type (
	BrowseReply  func(r BrowseRecord, code ErrorCode)
	ResolveReply func(r ResolveRecord, code ErrorCode)
	QueryReply   func(r QueryRecord, code ErrorCode)
)

// Resource record constants used by address queries.
const (
	TypeA   uint16 = 1
	ClassIN uint16 = 1
)

// DefaultDomain is the mDNS domain.
const DefaultDomain = "local"
