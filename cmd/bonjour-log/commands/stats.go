package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mash-protocol/bonjour-go/pkg/log"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents      int
	EventsByKind     map[log.Kind]int
	EventsByCategory map[log.Category]int
	StopReasons      map[string]int
	Sessions         map[string]*SessionStats
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single discovery session.
type SessionStats struct {
	Kind      log.Kind
	Key       string
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Results   int
	Errors    int

	// StopReason is empty while the session is still running at the end
	// of the trace.
	StopReason string
}

// collectStats reads every event from reader.
func collectStats(reader *log.Reader) (*Stats, error) {
	stats := &Stats{
		EventsByKind:     make(map[log.Kind]int),
		EventsByCategory: make(map[log.Category]int),
		StopReasons:      make(map[string]int),
		Sessions:         make(map[string]*SessionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByKind[event.Kind]++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		sess, ok := stats.Sessions[event.SessionID]
		if !ok {
			sess = &SessionStats{
				Kind:      event.Kind,
				Key:       event.Key,
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
			}
			stats.Sessions[event.SessionID] = sess
		}
		sess.Events++
		if event.Timestamp.After(sess.LastSeen) {
			sess.LastSeen = event.Timestamp
		}

		switch {
		case event.Result != nil:
			sess.Results++
		case event.Error != nil:
			sess.Errors++
			stats.Errors++
		case event.Lifecycle != nil && event.Lifecycle.Stage != log.StageStarted:
			sess.StopReason = event.Lifecycle.Stage.String()
			if event.Lifecycle.Reason != "" {
				sess.StopReason = event.Lifecycle.Reason
			}
			stats.StopReasons[sess.StopReason]++
		}
	}

	return stats, nil
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats, err := collectStats(reader)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Discovery Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Kind:")
	for _, kind := range []log.Kind{log.KindBrowse, log.KindAdvertise, log.KindResolve, log.KindAddress} {
		if count := stats.EventsByKind[kind]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", kind.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryLifecycle, log.CategoryResult, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.StopReasons) > 0 {
		reasons := make([]string, 0, len(stats.StopReasons))
		for r := range stats.StopReasons {
			reasons = append(reasons, r)
		}
		sort.Strings(reasons)

		fmt.Fprintln(w, "Sessions Ended:")
		for _, r := range reasons {
			fmt.Fprintf(w, "  %-12s %d\n", r+":", stats.StopReasons[r])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		type sessionInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessionInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessionInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range sessions {
			duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %s %s: %d events, %d results, duration %s\n",
				shortenSessionID(s.id), s.stats.Kind, s.stats.Key, s.stats.Events, s.stats.Results, duration)
			if s.stats.Errors > 0 {
				fmt.Fprintf(w, "           Errors: %d\n", s.stats.Errors)
			}
			if s.stats.StopReason != "" {
				fmt.Fprintf(w, "           Ended: %s\n", s.stats.StopReason)
			} else {
				fmt.Fprintln(w, "           Still running")
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
