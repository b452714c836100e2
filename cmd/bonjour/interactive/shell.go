// Package interactive provides the interactive command-line interface
// of the bonjour tool.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mash-protocol/bonjour-go/pkg/bonjour"
	"github.com/mash-protocol/bonjour-go/pkg/txt"
)

// Poster queues work on the goroutine that owns the client.
// *eventloop.Loop implements it.
type Poster interface {
	Post(fn func())
}

// Shell runs discovery commands typed at a prompt. Every client call is
// posted to the event loop; the shell goroutine only reads input.
type Shell struct {
	client *bonjour.Client
	loop   Poster
	rl     *readline.Instance
	out    io.Writer
	ctx    context.Context
}

// New creates a shell with a readline prompt.
func New(client *bonjour.Client, loop Poster) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "bonjour> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := newShell(client, loop, rl.Stdout())
	s.rl = rl
	return s, nil
}

func newShell(client *bonjour.Client, loop Poster, out io.Writer) *Shell {
	return &Shell{client: client, loop: loop, out: out, ctx: context.Background()}
}

// Stdout returns a writer that coordinates with the prompt.
func (s *Shell) Stdout() io.Writer {
	return s.out
}

// Stderr returns a writer that coordinates with the prompt.
func (s *Shell) Stderr() io.Writer {
	if s.rl != nil {
		return s.rl.Stderr()
	}
	return s.out
}

// Run reads commands until quit, EOF or ctx is cancelled. cancel is
// called when the user leaves the shell.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()
	s.ctx = ctx

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		if !s.Exec(line) {
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}
	}
}

// Exec runs one command line. It returns false when the user asked to
// quit.
func (s *Shell) Exec(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "browse", "b":
		s.cmdBrowse(args)
	case "unbrowse", "ub":
		s.cmdUnbrowse(args)
	case "advertise", "adv":
		s.cmdAdvertise(args)
	case "unadvertise", "unadv":
		s.cmdUnadvertise(args)
	case "resolve", "r":
		s.cmdResolve(args)
	case "address", "addr":
		s.cmdAddress(args)
	case "status", "s":
		s.cmdStatus()
	case "quit", "exit", "q":
		return false
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Discovery Commands:
  Browsing:
    browse <type>                         - Browse for instances, e.g. _http._tcp
    unbrowse <type>                       - Stop browsing
    resolve <name> <type> [domain]        - Resolve an instance to host, port and TXT
    address <hostname>                    - Resolve a host name to an IPv4 address

  Advertising:
    advertise <type> <port> [name] [k=v]  - Advertise a service
    unadvertise <type>                    - Stop advertising

  General:
    status             - Show active sessions
    help               - Show this help
    quit               - Exit`)
}

// do runs fn on the loop and waits for its result.
func (s *Shell) do(fn func() error) error {
	done := make(chan error, 1)
	s.loop.Post(func() { done <- fn() })

	select {
	case err := <-done:
		return err
	case <-s.ctx.Done():
		return s.ctx.Err()
	}
}

func (s *Shell) cmdBrowse(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: browse <type>")
		return
	}
	err := s.do(func() error {
		return s.client.Browse(args[0], func(e bonjour.BrowseEvent) error {
			fmt.Fprintln(s.out, FormatBrowse(e))
			return nil
		})
	})
	s.report("browse", err)
}

func (s *Shell) cmdUnbrowse(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: unbrowse <type>")
		return
	}
	s.report("unbrowse", s.do(func() error { return s.client.Unbrowse(args[0]) }))
}

func (s *Shell) cmdAdvertise(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: advertise <type> <port> [name] [key=value ...]")
		return
	}
	port, err := strconv.ParseUint(args[1], 10, 16)
	if err != nil || port == 0 {
		fmt.Fprintf(s.out, "Invalid port: %s\n", args[1])
		return
	}

	info := &bonjour.AdvertiseInfo{ServiceType: args[0], Port: uint16(port)}
	var name []string
	for _, arg := range args[2:] {
		if !strings.Contains(arg, "=") {
			name = append(name, arg)
			continue
		}
		p, err := txt.Parse(arg)
		if err != nil {
			fmt.Fprintf(s.out, "Invalid TXT entry %q: %v\n", arg, err)
			return
		}
		info.TXT = append(info.TXT, p)
	}
	info.Name = strings.Join(name, " ")

	s.report("advertise", s.do(func() error { return s.client.Advertise(info) }))
}

func (s *Shell) cmdUnadvertise(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: unadvertise <type>")
		return
	}
	s.report("unadvertise", s.do(func() error { return s.client.Unadvertise(args[0]) }))
}

func (s *Shell) cmdResolve(args []string) {
	if len(args) < 2 || len(args) > 3 {
		fmt.Fprintln(s.out, "Usage: resolve <name> <type> [domain]")
		return
	}
	var domain string
	if len(args) == 3 {
		domain = args[2]
	}
	err := s.do(func() error {
		return s.client.Resolve(args[0], args[1], domain, func(r bonjour.ResolveResult) error {
			fmt.Fprintln(s.out, FormatResolve(r))
			return nil
		})
	})
	s.report("resolve", err)
}

func (s *Shell) cmdAddress(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: address <hostname>")
		return
	}
	err := s.do(func() error {
		return s.client.ResolveAddress(args[0], func(r bonjour.AddressResult) error {
			fmt.Fprintln(s.out, FormatAddress(r))
			return nil
		})
	})
	s.report("address", err)
}

func (s *Shell) cmdStatus() {
	var browsing, advertising []string
	var pending int
	err := s.do(func() error {
		browsing = s.client.Browsing()
		advertising = s.client.Advertising()
		pending = s.client.PendingResolves()
		return nil
	})
	if err != nil {
		s.report("status", err)
		return
	}

	fmt.Fprintf(s.out, "Browsing (%d):\n", len(browsing))
	for _, t := range browsing {
		fmt.Fprintf(s.out, "  %s\n", t)
	}
	fmt.Fprintf(s.out, "Advertising (%d):\n", len(advertising))
	for _, t := range advertising {
		fmt.Fprintf(s.out, "  %s\n", t)
	}
	fmt.Fprintf(s.out, "Pending resolves: %d\n", pending)
}

func (s *Shell) report(cmd string, err error) {
	if err != nil {
		fmt.Fprintf(s.out, "%s failed: %v\n", cmd, err)
		return
	}
	fmt.Fprintln(s.out, "OK")
}
