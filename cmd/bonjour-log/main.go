// Command bonjour-log is a tool for viewing and analyzing discovery trace
// files.
//
// Trace files are written by "bonjour -trace-log <file.blog>" or by any
// program that sets a log.FileLogger as the client's trace logger.
//
// Usage:
//
//	bonjour-log <command> [flags] <file.blog>
//
// Commands:
//
//	view     View trace file in human-readable format
//	export   Export trace file to JSON or CSV format
//	filter   Filter trace file and write to new file
//	stats    Show statistics about the trace file
//
// Examples:
//
//	# View all events
//	bonjour-log view discovery.blog
//
//	# View only browse results
//	bonjour-log view -kind browse -category result discovery.blog
//
//	# Export to JSONL
//	bonjour-log export -format jsonl discovery.blog
//
//	# Keep one session and save to new file
//	bonjour-log filter -session 1b4e28ba-2fa1-11d2-883f-0016d3cca427 -o session.blog discovery.blog
//
//	# Show statistics
//	bonjour-log stats discovery.blog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mash-protocol/bonjour-go/cmd/bonjour-log/commands"
)

const usage = `bonjour-log - Discovery Trace Analyzer

Usage:
  bonjour-log <command> [flags] <file.blog>

Commands:
  view     View trace file in human-readable format
  export   Export trace file to JSON or CSV format
  filter   Filter trace file and write to new file
  stats    Show statistics about the trace file

Use "bonjour-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// parseFile parses args and returns the trace file path, exiting on error.
func parseFile(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `bonjour-log view - View trace file in human-readable format

Usage:
  bonjour-log view [flags] <file.blog>

Flags:
`)
		fs.PrintDefaults()
	}

	kind := fs.String("kind", "", "Filter by session kind (browse, advertise, resolve, address)")
	category := fs.String("category", "", "Filter by category (lifecycle, result, error)")
	key := fs.String("key", "", "Filter by session key (service type, instance or host name)")

	path := parseFile(fs, args)

	filter := commands.ViewFilter{Key: *key}

	if *kind != "" {
		k, err := commands.ParseKindFlag(*kind)
		if err != nil {
			fail(err)
		}
		filter.Kind = &k
	}

	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fail(err)
		}
		filter.Category = &c
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `bonjour-log export - Export trace file to JSON or CSV format

Usage:
  bonjour-log export [flags] <file.blog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	path := parseFile(fs, args)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `bonjour-log filter - Filter trace file and write to new file

Usage:
  bonjour-log filter [flags] <file.blog>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	sessionID := fs.String("session", "", "Filter by session ID")
	key := fs.String("key", "", "Filter by session key")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")
	kind := fs.String("kind", "", "Filter by session kind (browse, advertise, resolve, address)")
	category := fs.String("category", "", "Filter by category (lifecycle, result, error)")

	path := parseFile(fs, args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	opts := commands.FilterOptions{
		Output:    *output,
		SessionID: *sessionID,
		Key:       *key,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
		Kind:      *kind,
		Category:  *category,
	}

	if err := commands.RunFilter(path, opts, os.Stdout); err != nil {
		fail(err)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `bonjour-log stats - Show statistics about the trace file

Usage:
  bonjour-log stats <file.blog>

`)
	}

	path := parseFile(fs, args)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
