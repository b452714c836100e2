package dnssd

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"time"

	"github.com/enbility/zeroconf/v3"
	"github.com/mash-protocol/bonjour-go/pkg/txt"
)

// Config configures the zeroconf-backed library.
type Config struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL for advertised services.
	// Zero uses the zeroconf default.
	TTL time.Duration

	// Hostname is the instance name used when an advertisement has none.
	// Empty means os.Hostname.
	Hostname string
}

// DefaultConfig returns the default library configuration.
func DefaultConfig() Config {
	return Config{
		Interface: "",
		TTL:       120 * time.Second,
	}
}

// Zeroconf implements Library using github.com/enbility/zeroconf for
// browse, advertise and resolve, and a direct mDNS query for addresses.
type Zeroconf struct {
	config Config
}

// NewZeroconf creates a zeroconf-backed library.
func NewZeroconf(config Config) *Zeroconf {
	return &Zeroconf{config: config}
}

// getInterfaces returns the network interfaces to use.
// Returns nil to use all interfaces.
func (z *Zeroconf) getInterfaces() ([]net.Interface, error) {
	if z.config.Interface == "" {
		return nil, nil
	}

	iface, err := net.InterfaceByName(z.config.Interface)
	if err != nil {
		return nil, err
	}
	return []net.Interface{*iface}, nil
}

// clientOptions returns zeroconf client options based on config.
func (z *Zeroconf) clientOptions() ([]zeroconf.ClientOption, error) {
	ifaces, err := z.getInterfaces()
	if err != nil {
		return nil, err
	}

	var opts []zeroconf.ClientOption
	if ifaces != nil {
		opts = append(opts, zeroconf.SelectIfaces(ifaces))
	}
	return opts, nil
}

// StartBrowse implements Library.
func (z *Zeroconf) StartBrowse(serviceType, domain string, reply BrowseReply) (Handle, error) {
	const op = "StartBrowse"

	if reply == nil {
		return nil, NewServiceError(op, ErrBadParam, errors.New("nil reply"))
	}
	if err := ValidateServiceType(serviceType); err != nil {
		return nil, NewServiceError(op, ErrBadParam, err)
	}
	opts, err := z.clientOptions()
	if err != nil {
		return nil, NewServiceError(op, ErrBadInterfaceIndex, err)
	}
	if domain == "" {
		domain = DefaultDomain
	}

	h := newQueueHandle()
	ctx, cancel := context.WithCancel(context.Background())
	h.onRelease = append(h.onRelease, cancel)

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	deliver := func(entry *zeroconf.ServiceEntry, flags Flags) {
		rec := browseRecord(entry, serviceType, domain)
		h.push(func() {
			rec.Flags = flags | h.pendingFlags()
			reply(rec, NoError)
		})
	}

	// Forward entries until browsing ends.
	go func() {
		for entries != nil || removed != nil {
			select {
			case entry, ok := <-entries:
				if !ok {
					entries = nil
					continue
				}
				deliver(entry, FlagsAdd)
			case entry, ok := <-removed:
				if !ok {
					removed = nil
					continue
				}
				deliver(entry, 0)
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		if err := zeroconf.Browse(ctx, serviceType, domain, entries, removed, opts...); err != nil && ctx.Err() == nil {
			h.push(func() { reply(BrowseRecord{}, ErrServiceNotRunning) })
		}
	}()

	return h, nil
}

// StartAdvertise implements Library.
func (z *Zeroconf) StartAdvertise(req AdvertiseRequest) (Handle, error) {
	const op = "StartAdvertise"

	if err := ValidateServiceType(req.ServiceType); err != nil {
		return nil, NewServiceError(op, ErrBadParam, err)
	}
	record, err := txt.Decode(req.TXT)
	if err != nil {
		return nil, NewServiceError(op, ErrInvalid, err)
	}

	name := req.Name
	if name == "" {
		name, err = z.hostname()
		if err != nil {
			return nil, NewServiceError(op, ErrUnknown, err)
		}
	}
	instance, err := escapeInstance(name)
	if err != nil {
		return nil, NewServiceError(op, ErrBadParam, err)
	}
	domain := req.Domain
	if domain == "" {
		domain = DefaultDomain
	}

	ifaces, err := z.getInterfaces()
	if err != nil {
		return nil, NewServiceError(op, ErrBadInterfaceIndex, err)
	}

	var opts []zeroconf.ServerOption
	if z.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(z.config.TTL.Seconds())))
	}

	server, err := zeroconf.Register(
		instance,
		req.ServiceType,
		domain,
		int(NetworkToHost(req.Port)),
		txt.ToStrings(record),
		ifaces,
		opts...,
	)
	if err != nil {
		return nil, NewServiceError(op, ErrUnknown, err)
	}

	h := newQueueHandle()
	h.onRelease = append(h.onRelease, server.Shutdown)
	return h, nil
}

// hostname returns the first label of the configured or system host name.
func (z *Zeroconf) hostname() (string, error) {
	host := z.config.Hostname
	if host == "" {
		var err error
		host, err = os.Hostname()
		if err != nil {
			return "", err
		}
	}
	host, _, _ = strings.Cut(host, ".")
	return host, nil
}

// StartResolve implements Library.
func (z *Zeroconf) StartResolve(name, serviceType, domain string, reply ResolveReply) (Handle, error) {
	const op = "StartResolve"

	if reply == nil {
		return nil, NewServiceError(op, ErrBadParam, errors.New("nil reply"))
	}
	if name == "" {
		return nil, NewServiceError(op, ErrBadParam, errors.New("empty instance name"))
	}
	if err := ValidateServiceType(serviceType); err != nil {
		return nil, NewServiceError(op, ErrBadParam, err)
	}
	instance, err := escapeInstance(name)
	if err != nil {
		return nil, NewServiceError(op, ErrBadParam, err)
	}
	opts, err := z.clientOptions()
	if err != nil {
		return nil, NewServiceError(op, ErrBadInterfaceIndex, err)
	}
	if domain == "" {
		domain = DefaultDomain
	}

	h := newQueueHandle()
	ctx, cancel := context.WithCancel(context.Background())
	h.onRelease = append(h.onRelease, cancel)

	entries := make(chan *zeroconf.ServiceEntry)

	go func() {
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				rec, err := resolveRecord(entry, name, serviceType, domain)
				if err != nil {
					h.push(func() { reply(ResolveRecord{}, ErrInvalid) })
					continue
				}
				h.push(func() {
					rec.Flags = h.pendingFlags()
					reply(rec, NoError)
				})
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		if err := zeroconf.Lookup(ctx, instance, serviceType, domain, entries, opts...); err != nil && ctx.Err() == nil {
			h.push(func() { reply(ResolveRecord{}, ErrServiceNotRunning) })
		}
	}()

	return h, nil
}

// browseRecord converts a zeroconf browse entry. zeroconf reports the
// instance in presentation form; it is unescaped here, or passed through
// as is if it does not parse as one label.
func browseRecord(entry *zeroconf.ServiceEntry, serviceType, domain string) BrowseRecord {
	name, err := unescapeInstance(entry.Instance)
	if err != nil {
		name = entry.Instance
	}
	rec := BrowseRecord{
		Name:        name,
		ServiceType: serviceType,
		Domain:      trimDomain(entry.Domain),
	}
	if rec.Domain == "" {
		rec.Domain = domain
	}
	return rec
}

// resolveRecord converts a zeroconf entry to a ResolveRecord with the
// port in network byte order and TXT in wire format. name is the
// unescaped instance name.
func resolveRecord(entry *zeroconf.ServiceEntry, name, serviceType, domain string) (ResolveRecord, error) {
	record, err := txt.FromStrings(entry.Text)
	if err != nil {
		return ResolveRecord{}, err
	}
	wire, err := txt.Encode(record)
	if err != nil {
		return ResolveRecord{}, err
	}

	if d := trimDomain(entry.Domain); d != "" {
		domain = d
	}
	host := entry.HostName
	if host != "" && !strings.HasSuffix(host, ".") {
		host += "."
	}

	return ResolveRecord{
		FullName:   ConstructFullName(name, serviceType, domain),
		HostTarget: host,
		Port:       HostToNetwork(uint16(entry.Port)),
		TXT:        wire,
	}, nil
}

// Ensure Zeroconf implements Library interface.
var _ Library = (*Zeroconf)(nil)
