package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/mash-protocol/bonjour-go/pkg/log"
)

// FilterOptions specifies filtering criteria for the filter command.
type FilterOptions struct {
	Output    string
	SessionID string
	Key       string
	TimeStart string
	TimeEnd   string
	Kind      string
	Category  string
}

// buildFilter converts the options to a reader filter.
func buildFilter(opts FilterOptions) (log.Filter, error) {
	filter := log.Filter{
		SessionID: opts.SessionID,
		Key:       opts.Key,
	}

	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	if opts.Kind != "" {
		k, err := ParseKindFlag(opts.Kind)
		if err != nil {
			return filter, err
		}
		filter.Kind = &k
	}

	if opts.Category != "" {
		c, err := ParseCategoryFlag(opts.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}

	return filter, nil
}

// RunFilter filters the log file and writes matching events to a new file.
// It reports the number of events written to w.
func RunFilter(path string, opts FilterOptions, w io.Writer) error {
	filter, err := buildFilter(opts)
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return fmt.Errorf("failed to create output logger: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Close()
			return fmt.Errorf("failed to read event: %w", err)
		}
		logger.Log(event)
	}

	if err := logger.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Output, err)
	}

	fmt.Fprintf(w, "Filtered %d events to %s\n", logger.Count(), opts.Output)
	return nil
}
