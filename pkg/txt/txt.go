// Package txt encodes and decodes DNS-SD TXT records.
//
// A TXT record is a sequence of length-prefixed strings. Each string holds
// one entry of the form "key" (key present, no value) or "key=value", where
// the value may be any bytes, including NUL. See RFC 6763 section 6.
package txt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Limits.
const (
	// MaxKeyLen is the maximum key length in bytes.
	MaxKeyLen = 255

	// MaxEntryLen is the maximum length of one "key=value" string.
	MaxEntryLen = 255

	// MaxRecordLen is the maximum encoded record length.
	MaxRecordLen = 65535
)

// Codec errors.
var (
	ErrInvalidEntry = errors.New("invalid TXT entry")
	ErrMalformed    = errors.New("malformed TXT record")
)

// Pair is one TXT entry. A nil Value means the key is present without a
// value; a non-nil empty Value encodes as "key=".
type Pair struct {
	Key   string
	Value []byte
}

// String returns the entry in "key=value" form.
func (p Pair) String() string {
	if p.Value == nil {
		return p.Key
	}
	return p.Key + "=" + string(p.Value)
}

// Record is an ordered list of TXT entries.
type Record []Pair

// Get returns the value of the first entry whose key matches, ignoring case.
func (r Record) Get(key string) ([]byte, bool) {
	for _, p := range r {
		if strings.EqualFold(p.Key, key) {
			return p.Value, true
		}
	}
	return nil, false
}

// Map returns the record as a map of string values. Later duplicates win.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r))
	for _, p := range r {
		m[p.Key] = string(p.Value)
	}
	return m
}

// Encode builds the wire form of r.
//
// A key that appears more than once (compared case-insensitively) replaces
// the earlier entry and moves to the end of the record.
func Encode(r Record) ([]byte, error) {
	entries := make([]Pair, 0, len(r))
	for _, p := range r {
		if err := validatePair(p); err != nil {
			return nil, err
		}
		for i := range entries {
			if strings.EqualFold(entries[i].Key, p.Key) {
				entries = append(entries[:i], entries[i+1:]...)
				break
			}
		}
		entries = append(entries, p)
	}

	var buf bytes.Buffer
	for _, p := range entries {
		n := len(p.Key)
		if p.Value != nil {
			n += 1 + len(p.Value)
		}
		buf.WriteByte(byte(n))
		buf.WriteString(p.Key)
		if p.Value != nil {
			buf.WriteByte('=')
			buf.Write(p.Value)
		}
	}

	if buf.Len() > MaxRecordLen {
		return nil, fmt.Errorf("%w: record length %d exceeds %d", ErrInvalidEntry, buf.Len(), MaxRecordLen)
	}
	return buf.Bytes(), nil
}

// Decode parses the wire form of a TXT record. Entries are returned in wire
// order. Zero-length strings, which DNS-SD uses for an empty record, are
// skipped.
func Decode(b []byte) (Record, error) {
	r := Record{}
	for i := 0; i < len(b); {
		n := int(b[i])
		i++
		if i+n > len(b) {
			return nil, fmt.Errorf("%w: entry at offset %d overruns record", ErrMalformed, i-1)
		}
		entry := b[i : i+n]
		i += n
		if n == 0 {
			continue
		}
		r = append(r, splitEntry(entry))
	}
	return r, nil
}

// Parse parses a single "key=value" or "key" string.
func Parse(s string) (Pair, error) {
	p := splitEntry([]byte(s))
	if err := validatePair(p); err != nil {
		return Pair{}, err
	}
	return p, nil
}

func splitEntry(entry []byte) Pair {
	k, v, found := bytes.Cut(entry, []byte{'='})
	p := Pair{Key: string(k)}
	if found {
		p.Value = append([]byte{}, v...)
	}
	return p
}

func validatePair(p Pair) error {
	if p.Key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidEntry)
	}
	if len(p.Key) > MaxKeyLen {
		return fmt.Errorf("%w: key length %d exceeds %d", ErrInvalidEntry, len(p.Key), MaxKeyLen)
	}
	for i := 0; i < len(p.Key); i++ {
		c := p.Key[i]
		if c < 0x20 || c > 0x7e || c == '=' {
			return fmt.Errorf("%w: key %q contains byte 0x%02x", ErrInvalidEntry, p.Key, c)
		}
	}
	n := len(p.Key)
	if p.Value != nil {
		n += 1 + len(p.Value)
	}
	if n > MaxEntryLen {
		return fmt.Errorf("%w: entry %q is %d bytes, limit %d", ErrInvalidEntry, p.Key, n, MaxEntryLen)
	}
	return nil
}
