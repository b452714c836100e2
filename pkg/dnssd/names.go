package dnssd

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

// MaxInstanceLen is the longest instance name that fits one DNS label.
const MaxInstanceLen = 63

// HostToNetwork converts a port from host to network byte order.
func HostToNetwork(port uint16) uint16 {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], port)
	return binary.NativeEndian.Uint16(b[:])
}

// NetworkToHost converts a port from network to host byte order.
func NetworkToHost(port uint16) uint16 {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], port)
	return binary.BigEndian.Uint16(b[:])
}

// ValidateServiceType checks that serviceType has the "_name._tcp" or
// "_name._udp" form, optionally followed by subtypes after a comma.
func ValidateServiceType(serviceType string) error {
	base, _, _ := strings.Cut(serviceType, ",")
	base = strings.TrimSuffix(base, ".")
	labels := strings.Split(base, ".")
	if len(labels) != 2 {
		return fmt.Errorf("service type %q: want _name._tcp or _name._udp", serviceType)
	}
	name, proto := labels[0], labels[1]
	if len(name) < 2 || name[0] != '_' || len(name) > 16 {
		return fmt.Errorf("service type %q: bad service name %q", serviceType, name)
	}
	if proto != "_tcp" && proto != "_udp" {
		return fmt.Errorf("service type %q: bad protocol %q", serviceType, proto)
	}
	return nil
}

// ConstructFullName builds the escaped full name of a service instance:
// "<instance>.<type>.<domain>.". Dots and backslashes in the instance are
// escaped with a backslash; bytes up to and including space as \DDD.
func ConstructFullName(name, serviceType, domain string) string {
	if domain == "" {
		domain = DefaultDomain
	}
	var sb strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '.' || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c <= ' ':
			fmt.Fprintf(&sb, "\\%03d", c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('.')
	sb.WriteString(strings.TrimSuffix(serviceType, "."))
	sb.WriteByte('.')
	sb.WriteString(strings.TrimSuffix(domain, "."))
	sb.WriteByte('.')
	return sb.String()
}

// trimDomain strips the trailing dot zeroconf leaves on domain names.
func trimDomain(domain string) string {
	return strings.TrimSuffix(domain, ".")
}

// escapeInstance returns the instance name as a label in DNS presentation
// form, e.g. "My Printer" becomes `My\ Printer`. zeroconf builds and
// matches record names in this form.
func escapeInstance(name string) (string, error) {
	if len(name) > MaxInstanceLen {
		return "", fmt.Errorf("instance name %q longer than %d bytes", name, MaxInstanceLen)
	}
	wire := make([]byte, 0, len(name)+2)
	wire = append(wire, byte(len(name)))
	wire = append(wire, name...)
	wire = append(wire, 0)
	s, _, err := dns.UnpackDomainName(wire, 0)
	if err != nil {
		return "", fmt.Errorf("instance name %q: %w", name, err)
	}
	return strings.TrimSuffix(s, "."), nil
}

// unescapeInstance reverses escapeInstance. It fails if s is not exactly
// one label.
func unescapeInstance(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	buf := make([]byte, 256)
	off, err := dns.PackDomainName(dns.Fqdn(s), buf, 0, nil, false)
	if err != nil {
		return "", fmt.Errorf("instance name %q: %w", s, err)
	}
	n := int(buf[0])
	if off != n+2 {
		return "", fmt.Errorf("instance name %q spans more than one label", s)
	}
	return string(buf[1 : 1+n]), nil
}
