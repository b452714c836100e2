package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/mash-protocol/bonjour-go/cmd/bonjour/interactive"
	"github.com/mash-protocol/bonjour-go/pkg/bonjour"
	"github.com/mash-protocol/bonjour-go/pkg/config"
	"github.com/mash-protocol/bonjour-go/pkg/dnssd"
	"github.com/mash-protocol/bonjour-go/pkg/txt"
)

const defaultLookupTimeout = 5 * time.Second

var errTimeout = errors.New("timed out")

// txtFlag collects repeated -txt key=value flags in order.
type txtFlag txt.Record

func (f *txtFlag) String() string {
	return interactive.FormatTXT(txt.Record(*f))
}

func (f *txtFlag) Set(s string) error {
	p, err := txt.Parse(s)
	if err != nil {
		return err
	}
	*f = append(*f, p)
	return nil
}

var (
	// newLibrary returns the discovery library for cfg.
	newLibrary = func(cfg *config.Config) dnssd.Library {
		return dnssd.NewZeroconf(cfg.Library())
	}

	stdout io.Writer = os.Stdout
)

func runAdvertise(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("advertise", flag.ContinueOnError)
	name := fs.String("name", "", "Instance name (default host name)")
	port := fs.Uint("port", 0, "Service port")
	var records txtFlag
	fs.Var(&records, "txt", "TXT entry key=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	services, err := advertiseList(cfg, fs.Args(), *name, *port, txt.Record(records))
	if err != nil {
		return err
	}

	a, err := newApp(cfg, newLibrary(cfg), stdout)
	if err != nil {
		return err
	}
	defer a.close()

	return a.run(ctx, func(context.CancelFunc) error {
		for _, info := range services {
			if err := a.client.Advertise(info); err != nil {
				return err
			}
			log.Printf("Advertising %s on port %d", info.ServiceType, info.Port)
		}
		return nil
	})
}

// advertiseList returns the services to advertise: the one named on the
// command line, or else every service in the config file.
func advertiseList(cfg *config.Config, args []string, name string, port uint, records txt.Record) ([]*bonjour.AdvertiseInfo, error) {
	switch len(args) {
	case 0:
		if len(cfg.Advertise) == 0 {
			return nil, fmt.Errorf("%w: advertise needs a service type or a config file with services", errUsage)
		}
		infos := make([]*bonjour.AdvertiseInfo, 0, len(cfg.Advertise))
		for _, svc := range cfg.Advertise {
			info, err := svc.Info(cfg.Domain)
			if err != nil {
				return nil, err
			}
			infos = append(infos, info)
		}
		return infos, nil

	case 1:
		if port == 0 || port > 0xffff {
			return nil, fmt.Errorf("%w: advertise needs -port between 1 and 65535", errUsage)
		}
		return []*bonjour.AdvertiseInfo{{
			ServiceType: args[0],
			Name:        name,
			Domain:      cfg.Domain,
			Port:        uint16(port),
			TXT:         records,
		}}, nil

	default:
		return nil, fmt.Errorf("%w: advertise takes one service type", errUsage)
	}
}

func runBrowse(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	timeout := fs.Duration("timeout", 0, "Stop after this long (default until interrupted)")
	resolve := fs.Bool("resolve", false, "Resolve every instance found")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: browse needs at least one service type", errUsage)
	}

	a, err := newApp(cfg, newLibrary(cfg), stdout)
	if err != nil {
		return err
	}
	defer a.close()

	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	return a.run(ctx, func(context.CancelFunc) error {
		for _, serviceType := range fs.Args() {
			if err := a.client.Browse(serviceType, a.browsePrinter(*resolve)); err != nil {
				return err
			}
		}
		return nil
	})
}

// browsePrinter prints browse events and, if resolve is set, resolves
// every added instance.
func (a *app) browsePrinter(resolve bool) bonjour.BrowseFunc {
	return func(e bonjour.BrowseEvent) error {
		fmt.Fprintln(a.out, interactive.FormatBrowse(e))
		if !resolve || e.Action != bonjour.ActionAdd {
			return nil
		}
		return a.client.Resolve(e.Name, e.ServiceType, e.Domain, func(r bonjour.ResolveResult) error {
			fmt.Fprintf(a.out, "  %s\n", interactive.FormatResolve(r))
			return nil
		})
	}
}

func runResolve(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	domain := fs.String("domain", "", "Domain of the instance (default the configured domain)")
	timeout := fs.Duration("timeout", defaultLookupTimeout, "Give up after this long")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: resolve needs <name> <type>", errUsage)
	}
	name, serviceType := fs.Arg(0), fs.Arg(1)

	a, err := newApp(cfg, newLibrary(cfg), stdout)
	if err != nil {
		return err
	}
	defer a.close()

	return a.lookup(ctx, *timeout, func(done func()) error {
		return a.client.Resolve(name, serviceType, *domain, func(r bonjour.ResolveResult) error {
			fmt.Fprintln(a.out, interactive.FormatResolve(r))
			done()
			return nil
		})
	})
}

func runResolveAddress(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("resolve-address", flag.ContinueOnError)
	timeout := fs.Duration("timeout", defaultLookupTimeout, "Give up after this long")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: resolve-address needs <hostname>", errUsage)
	}
	hostname := fs.Arg(0)

	a, err := newApp(cfg, newLibrary(cfg), stdout)
	if err != nil {
		return err
	}
	defer a.close()

	return a.lookup(ctx, *timeout, func(done func()) error {
		return a.client.ResolveAddress(hostname, func(r bonjour.AddressResult) error {
			fmt.Fprintln(a.out, interactive.FormatAddress(r))
			done()
			return nil
		})
	})
}

// lookup runs a one-shot operation until its callback calls done or the
// timeout expires.
func (a *app) lookup(ctx context.Context, timeout time.Duration, start func(done func()) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	found := false
	err := a.run(ctx, func(stop context.CancelFunc) error {
		return start(func() {
			found = true
			stop()
		})
	})
	if err != nil {
		return err
	}
	if !found {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("no answer after %s: %w", timeout, errTimeout)
		}
		return ctx.Err()
	}
	return nil
}

func runShell(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a, err := newApp(cfg, newLibrary(cfg), stdout)
	if err != nil {
		return err
	}
	defer a.close()

	sh, err := interactive.New(a.client, a.loop)
	if err != nil {
		return err
	}
	a.out = sh.Stdout()
	log.SetOutput(sh.Stderr())
	defer log.SetOutput(os.Stderr)

	go sh.Run(ctx, cancel)

	return a.run(ctx, func(context.CancelFunc) error {
		for _, svc := range cfg.Advertise {
			info, err := svc.Info(cfg.Domain)
			if err != nil {
				return err
			}
			if err := a.client.Advertise(info); err != nil {
				return err
			}
			log.Printf("Advertising %s on port %d", info.ServiceType, info.Port)
		}
		return nil
	})
}
