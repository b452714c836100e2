package interactive

import (
	"fmt"
	"strings"

	"github.com/mash-protocol/bonjour-go/pkg/bonjour"
	"github.com/mash-protocol/bonjour-go/pkg/txt"
)

// FormatBrowse renders a browse event as one line.
func FormatBrowse(e bonjour.BrowseEvent) string {
	sign := "+"
	if e.Action == bonjour.ActionRemove {
		sign = "-"
	}
	line := fmt.Sprintf("%s %-32s %s.%s", sign, e.Name,
		strings.TrimSuffix(e.ServiceType, "."), strings.TrimSuffix(e.Domain, "."))
	if e.InterfaceIndex != 0 {
		line += fmt.Sprintf(" (if %d)", e.InterfaceIndex)
	}
	return line
}

// FormatResolve renders a resolve result as one line.
func FormatResolve(r bonjour.ResolveResult) string {
	line := fmt.Sprintf("%s -> %s:%d", r.FullName, r.Host, r.Port)
	if len(r.TXT) > 0 {
		line += " " + FormatTXT(r.TXT)
	}
	return line
}

// FormatAddress renders an address result as one line.
func FormatAddress(r bonjour.AddressResult) string {
	return fmt.Sprintf("%s -> %s (ttl %ds)", r.Hostname, r.Address, r.TTL)
}

// FormatTXT renders TXT entries space separated, in record order.
func FormatTXT(r txt.Record) string {
	parts := make([]string, len(r))
	for i, p := range r {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
