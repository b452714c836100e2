// Command bonjour advertises, browses and resolves DNS-SD services on the
// local network.
//
// Usage:
//
//	bonjour [flags] <command> [command flags] [args]
//
// Commands:
//
//	advertise [-name n] [-port p] [-txt k=v]... [type]
//	                      Advertise a service until interrupted. Without a
//	                      type, the services listed in the config file are
//	                      advertised.
//	browse [-timeout d] [-resolve] <type>...
//	                      Print instances as they appear and disappear.
//	resolve [-domain d] [-timeout d] <name> <type>
//	                      Resolve an instance to host, port and TXT.
//	resolve-address [-timeout d] <hostname>
//	                      Resolve a host name to an IPv4 address.
//	shell                 Interactive mode.
//	version               Print the release and config format versions.
//
// Flags:
//
//	-config string               Configuration file path
//	-interface string            Network interface to use (default all)
//	-domain string               Discovery domain (default "local")
//	-ttl duration                Record TTL for advertised services (default 2m)
//	-browse-error-policy string  continue or stop (default "continue")
//	-log-level string            Log level: debug, info, warn, error (default "info")
//	-trace-log string            Write a discovery trace to this file
//
// Examples:
//
//	# Advertise a web server with TXT metadata
//	bonjour advertise -name "Kitchen Display" -port 8080 -txt path=/ _http._tcp
//
//	# Browse printers and resolve every one found
//	bonjour browse -resolve _ipp._tcp
//
//	# Look up a host
//	bonjour resolve-address printer.local
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mash-protocol/bonjour-go/pkg/config"
	"github.com/mash-protocol/bonjour-go/pkg/version"
)

// globalFlags are the flags accepted before the command name. Values
// given on the command line override the config file.
type globalFlags struct {
	ConfigFile        string
	Interface         string
	Domain            string
	TTL               time.Duration
	BrowseErrorPolicy string
	LogLevel          string
	TraceLog          string
}

var errUsage = errors.New("usage")

func main() {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if err != errUsage && !errors.Is(err, flag.ErrHelp) {
			log.Printf("Error: %v", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bonjour", flag.ContinueOnError)
	var gf globalFlags
	fs.StringVar(&gf.ConfigFile, "config", "", "Configuration file path")
	fs.StringVar(&gf.Interface, "interface", "", "Network interface to use (default all)")
	fs.StringVar(&gf.Domain, "domain", "", "Discovery domain (default \"local\")")
	fs.DurationVar(&gf.TTL, "ttl", 0, "Record TTL for advertised services (default 2m)")
	fs.StringVar(&gf.BrowseErrorPolicy, "browse-error-policy", "", "Browse error policy: continue, stop")
	fs.StringVar(&gf.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&gf.TraceLog, "trace-log", "", "Write a discovery trace to this file")
	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]
	if cmd == "version" {
		fmt.Fprintf(stdout, "bonjour %s (config format %s)\n", version.Current, version.ConfigFormat)
		return nil
	}

	cfg, err := loadConfig(fs, gf)
	if err != nil {
		return err
	}

	switch cmd {
	case "advertise":
		return runAdvertise(ctx, cfg, cmdArgs)
	case "browse":
		return runBrowse(ctx, cfg, cmdArgs)
	case "resolve":
		return runResolve(ctx, cfg, cmdArgs)
	case "resolve-address":
		return runResolveAddress(ctx, cfg, cmdArgs)
	case "shell":
		return runShell(ctx, cfg)
	case "help":
		fs.Usage()
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fs.Usage()
		return errUsage
	}
}

// loadConfig reads the config file, if any, and applies the global flags
// that were set explicitly.
func loadConfig(fs *flag.FlagSet, gf globalFlags) (*config.Config, error) {
	cfg := config.Default()
	if gf.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(gf.ConfigFile); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "interface":
			cfg.Interface = gf.Interface
		case "domain":
			cfg.Domain = gf.Domain
		case "ttl":
			cfg.TTL = gf.TTL
		case "browse-error-policy":
			cfg.BrowseErrorPolicy = gf.BrowseErrorPolicy
		case "log-level":
			cfg.LogLevel = gf.LogLevel
		case "trace-log":
			cfg.TraceLog = gf.TraceLog
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printUsage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintln(out, `Usage: bonjour [flags] <command> [command flags] [args]

Commands:
  advertise        Advertise a service until interrupted
  browse           Browse for service instances
  resolve          Resolve an instance to host, port and TXT
  resolve-address  Resolve a host name to an IPv4 address
  shell            Interactive mode
  version          Print version information
  help             Show this help

Flags:`)
	fs.PrintDefaults()
}
