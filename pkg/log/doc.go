// Package log provides a machine-readable trace of discovery sessions.
//
// It is separate from operational logging (slog). Every session start,
// result, error and teardown produces one Event tagged with the session's
// ID, so a trace file answers questions like "which resolve never got an
// answer" after the fact.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.TraceLogger = log.NewSlogAdapter(slog.Default())
//
//	// For later analysis: write to a trace file
//	cfg.TraceLogger, _ = log.NewFileLogger("discovery.blog")
//
//	// Both: use MultiLogger
//	cfg.TraceLogger = log.NewMultiLogger(console, file)
//
// # File Format
//
// Trace files are a stream of CBOR-encoded events with integer keys and
// the .blog extension. The bonjour-log CLI views, filters and exports them.
package log
