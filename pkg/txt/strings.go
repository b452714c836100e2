package txt

import (
	"fmt"
	"strconv"
	"strings"
)

// ToStrings converts r to DNS presentation-format strings, one per entry.
//
// mDNS libraries built on miekg/dns (zeroconf among them) carry TXT data as
// []string in presentation format: backslash and double quote are escaped
// with a backslash and bytes outside printable ASCII as \DDD. Escaping keeps
// arbitrary value bytes intact across that boundary.
func ToStrings(r Record) []string {
	out := make([]string, 0, len(r))
	for _, p := range r {
		var sb strings.Builder
		escapeTo(&sb, []byte(p.Key))
		if p.Value != nil {
			sb.WriteByte('=')
			escapeTo(&sb, p.Value)
		}
		out = append(out, sb.String())
	}
	return out
}

// FromStrings parses presentation-format strings back into a Record.
// Empty strings are skipped.
func FromStrings(strs []string) (Record, error) {
	r := Record{}
	for _, s := range strs {
		raw, err := unescape(s)
		if err != nil {
			return nil, err
		}
		if len(raw) == 0 {
			continue
		}
		r = append(r, splitEntry(raw))
	}
	return r, nil
}

func escapeTo(sb *strings.Builder, b []byte) {
	for _, c := range b {
		switch {
		case c == '"' || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c < ' ' || c > '~':
			fmt.Fprintf(sb, "\\%03d", c)
		default:
			sb.WriteByte(c)
		}
	}
}

func unescape(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		if i+1 >= len(s) {
			return nil, fmt.Errorf("%w: trailing backslash in %q", ErrMalformed, s)
		}
		if isDigit(s[i+1]) {
			if i+4 > len(s) || !isDigit(s[i+2]) || !isDigit(s[i+3]) {
				return nil, fmt.Errorf("%w: short escape in %q", ErrMalformed, s)
			}
			n, err := strconv.Atoi(s[i+1 : i+4])
			if err != nil || n > 255 {
				return nil, fmt.Errorf("%w: bad escape in %q", ErrMalformed, s)
			}
			out = append(out, byte(n))
			i += 3
			continue
		}
		out = append(out, s[i+1])
		i++
	}
	return out, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
