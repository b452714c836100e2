// Package commands implements the bonjour-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/mash-protocol/bonjour-go/pkg/log"
	"github.com/mash-protocol/bonjour-go/pkg/txt"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Kind     *log.Kind
	Category *log.Category
	Key      string
}

func (f ViewFilter) filter() log.Filter {
	return log.Filter{Kind: f.Kind, Category: f.Category, Key: f.Key}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session] KIND CATEGORY key
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [%s] %-9s %-9s %s\n",
		ts, shortenSessionID(event.SessionID), event.Kind, event.Category, event.Key)

	switch {
	case event.Lifecycle != nil:
		formatLifecycleDetails(w, event.Lifecycle)
	case event.Result != nil:
		formatResultDetails(w, event.Result)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatLifecycleDetails(w io.Writer, lc *log.LifecycleEvent) {
	fmt.Fprintf(w, "  Stage: %s\n", lc.Stage)
	if lc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", lc.Reason)
	}
}

func formatResultDetails(w io.Writer, r *log.ResultEvent) {
	fmt.Fprintf(w, "  Action: %s\n", r.Action)
	if r.Name != "" {
		fmt.Fprintf(w, "  Name: %s\n", r.Name)
	}
	if r.Domain != "" {
		fmt.Fprintf(w, "  Domain: %s\n", r.Domain)
	}
	if r.Host != "" {
		fmt.Fprintf(w, "  Host: %s:%d\n", r.Host, r.Port)
	}
	if r.Address != "" {
		fmt.Fprintf(w, "  Address: %s (ttl %ds)\n", r.Address, r.TTL)
	}
	if len(r.TXT) > 0 {
		fmt.Fprintf(w, "  TXT: %s\n", formatTXT(r.TXT))
	}
	if r.InterfaceIndex != 0 {
		fmt.Fprintf(w, "  Interface: %d\n", r.InterfaceIndex)
	}
	if r.Flags != 0 {
		fmt.Fprintf(w, "  Flags: 0x%x\n", r.Flags)
	}
}

// formatTXT renders a wire-format TXT record, falling back to a byte count
// if it does not decode.
func formatTXT(wire []byte) string {
	record, err := txt.Decode(wire)
	if err != nil {
		return fmt.Sprintf("<%d bytes, malformed>", len(wire))
	}
	parts := make([]string, len(record))
	for i, p := range record {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Operation: %s\n", err.Operation)
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Code != nil {
		fmt.Fprintf(w, "  Code: %d\n", *err.Code)
	}
	if err.Callback {
		fmt.Fprintln(w, "  Source: callback")
	}
}

// ParseKindFlag parses a session kind from a command-line flag (case-insensitive).
func ParseKindFlag(s string) (log.Kind, error) {
	k, ok := log.ParseKind(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("invalid kind: %s (must be browse, advertise, resolve, or address)", s)
	}
	return k, nil
}

// ParseCategoryFlag parses a category from a command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	c, ok := log.ParseCategory(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (must be lifecycle, result, or error)", s)
	}
	return c, nil
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.filter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
