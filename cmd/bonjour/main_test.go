package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mash-protocol/bonjour-go/pkg/config"
	"github.com/mash-protocol/bonjour-go/pkg/dnssd"
	mashlog "github.com/mash-protocol/bonjour-go/pkg/log"
	"github.com/mash-protocol/bonjour-go/pkg/txt"
	"github.com/mash-protocol/bonjour-go/pkg/version"
)

// stubHandle delivers queued results one per ProcessResult.
type stubHandle struct {
	ready chan struct{}

	mu       sync.Mutex
	queue    []func()
	released int
}

func newStubHandle() *stubHandle {
	return &stubHandle{ready: make(chan struct{}, 1)}
}

func (h *stubHandle) Readable() <-chan struct{} { return h.ready }

func (h *stubHandle) push(fn func()) {
	h.mu.Lock()
	h.queue = append(h.queue, fn)
	h.mu.Unlock()
	select {
	case h.ready <- struct{}{}:
	default:
	}
}

func (h *stubHandle) ProcessResult() error {
	h.mu.Lock()
	if len(h.queue) == 0 {
		h.mu.Unlock()
		return nil
	}
	fn := h.queue[0]
	h.queue = h.queue[1:]
	more := len(h.queue) > 0
	h.mu.Unlock()

	fn()
	if more {
		select {
		case h.ready <- struct{}{}:
		default:
		}
	}
	return nil
}

func (h *stubHandle) Release() {
	h.mu.Lock()
	h.released++
	h.mu.Unlock()
}

func (h *stubHandle) releases() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

// stubLibrary answers every operation from canned records. A nil record
// means the operation never answers.
type stubLibrary struct {
	advertiseErr error
	browse       []dnssd.BrowseRecord
	resolve      *dnssd.ResolveRecord
	query        *dnssd.QueryRecord

	handles  []*stubHandle
	requests []dnssd.AdvertiseRequest
}

func (l *stubLibrary) handle() *stubHandle {
	h := newStubHandle()
	l.handles = append(l.handles, h)
	return h
}

func (l *stubLibrary) StartBrowse(_, _ string, reply dnssd.BrowseReply) (dnssd.Handle, error) {
	h := l.handle()
	for _, r := range l.browse {
		h.push(func() { reply(r, dnssd.NoError) })
	}
	return h, nil
}

func (l *stubLibrary) StartAdvertise(req dnssd.AdvertiseRequest) (dnssd.Handle, error) {
	if l.advertiseErr != nil {
		return nil, l.advertiseErr
	}
	l.requests = append(l.requests, req)
	return l.handle(), nil
}

func (l *stubLibrary) StartResolve(_, _, _ string, reply dnssd.ResolveReply) (dnssd.Handle, error) {
	h := l.handle()
	if r := l.resolve; r != nil {
		h.push(func() { reply(*r, dnssd.NoError) })
	}
	return h, nil
}

func (l *stubLibrary) StartAddressQuery(_ string, reply dnssd.QueryReply) (dnssd.Handle, error) {
	h := l.handle()
	if r := l.query; r != nil {
		h.push(func() { reply(*r, dnssd.NoError) })
	}
	return h, nil
}

// useLibrary routes the commands to lib and captures their output.
func useLibrary(t *testing.T, lib dnssd.Library) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	origLib, origOut := newLibrary, stdout
	newLibrary = func(*config.Config) dnssd.Library { return lib }
	stdout = &out
	t.Cleanup(func() {
		newLibrary, stdout = origLib, origOut
	})
	return &out
}

func TestResolveCommand(t *testing.T) {
	wire, err := txt.Encode(txt.Record{{Key: "note", Value: []byte("hi")}})
	if err != nil {
		t.Fatal(err)
	}
	lib := &stubLibrary{resolve: &dnssd.ResolveRecord{
		FullName:   "Printer._ipp._tcp.local.",
		HostTarget: "printer.local.",
		Port:       dnssd.HostToNetwork(631),
		TXT:        wire,
	}}
	out := useLibrary(t, lib)

	if err := runResolve(context.Background(), config.Default(), []string{"-timeout", "2s", "Printer", "_ipp._tcp"}); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	want := "Printer._ipp._tcp.local. -> printer.local.:631 note=hi"
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if n := lib.handles[0].releases(); n != 1 {
		t.Errorf("handle released %d times, want 1", n)
	}
}

func TestResolveAddressCommand(t *testing.T) {
	lib := &stubLibrary{query: &dnssd.QueryRecord{
		FullName: "printer.local.",
		RRType:   dnssd.TypeA,
		RRClass:  dnssd.ClassIN,
		RData:    []byte{192, 168, 1, 20},
		TTL:      120,
	}}
	out := useLibrary(t, lib)

	if err := runResolveAddress(context.Background(), config.Default(), []string{"printer.local"}); err != nil {
		t.Fatalf("resolve-address: %v", err)
	}
	if !strings.Contains(out.String(), "192.168.1.20 (ttl 120s)") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestResolveAddressTimeout(t *testing.T) {
	lib := &stubLibrary{}
	useLibrary(t, lib)

	err := runResolveAddress(context.Background(), config.Default(), []string{"-timeout", "50ms", "nobody.local"})
	if !errors.Is(err, errTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if n := lib.handles[0].releases(); n != 1 {
		t.Errorf("handle released %d times, want 1", n)
	}
}

func TestBrowseCommand(t *testing.T) {
	lib := &stubLibrary{browse: []dnssd.BrowseRecord{
		{Flags: dnssd.FlagsAdd, Name: "Printer", ServiceType: "_ipp._tcp", Domain: "local."},
		{Flags: 0, Name: "Printer", ServiceType: "_ipp._tcp", Domain: "local."},
	}}
	out := useLibrary(t, lib)

	start := time.Now()
	if err := runBrowse(context.Background(), config.Default(), []string{"-timeout", "200ms", "_ipp._tcp"}); err != nil {
		t.Fatalf("browse: %v", err)
	}
	if time.Since(start) < 200*time.Millisecond {
		t.Error("browse returned before its timeout")
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "+ Printer") || !strings.HasPrefix(lines[1], "- Printer") {
		t.Errorf("unexpected output %q", out.String())
	}
	if n := lib.handles[0].releases(); n != 1 {
		t.Errorf("handle released %d times, want 1", n)
	}
}

func TestBrowseCommandResolves(t *testing.T) {
	lib := &stubLibrary{
		browse: []dnssd.BrowseRecord{{Flags: dnssd.FlagsAdd, Name: "Printer", ServiceType: "_ipp._tcp", Domain: "local."}},
		resolve: &dnssd.ResolveRecord{
			FullName:   "Printer._ipp._tcp.local.",
			HostTarget: "printer.local.",
			Port:       dnssd.HostToNetwork(631),
		},
	}
	out := useLibrary(t, lib)

	if err := runBrowse(context.Background(), config.Default(), []string{"-timeout", "200ms", "-resolve", "_ipp._tcp"}); err != nil {
		t.Fatalf("browse: %v", err)
	}
	if !strings.Contains(out.String(), "  Printer._ipp._tcp.local. -> printer.local.:631") {
		t.Errorf("resolve result missing from %q", out.String())
	}
	if len(lib.handles) != 2 {
		t.Fatalf("expected browse and resolve handles, got %d", len(lib.handles))
	}
	for i, h := range lib.handles {
		if n := h.releases(); n != 1 {
			t.Errorf("handle %d released %d times, want 1", i, n)
		}
	}
}

func TestAdvertiseCommand(t *testing.T) {
	lib := &stubLibrary{}
	useLibrary(t, lib)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	args := []string{"-name", "Kitchen", "-port", "8080", "-txt", "path=/", "-txt", "v=1", "_http._tcp"}
	if err := runAdvertise(ctx, config.Default(), args); err != nil {
		t.Fatalf("advertise: %v", err)
	}

	if len(lib.requests) != 1 {
		t.Fatalf("expected 1 advertise request, got %d", len(lib.requests))
	}
	req := lib.requests[0]
	if req.Name != "Kitchen" || req.ServiceType != "_http._tcp" || dnssd.NetworkToHost(req.Port) != 8080 {
		t.Errorf("unexpected request %+v", req)
	}
	record, err := txt.Decode(req.TXT)
	if err != nil {
		t.Fatal(err)
	}
	if got := record.Map(); got["path"] != "/" || got["v"] != "1" {
		t.Errorf("unexpected TXT %v", got)
	}
	if n := lib.handles[0].releases(); n != 1 {
		t.Errorf("handle released %d times, want 1", n)
	}
}

func TestAdvertiseCommandStartError(t *testing.T) {
	lib := &stubLibrary{advertiseErr: dnssd.NewServiceError("StartAdvertise", dnssd.ErrNameConflict, nil)}
	useLibrary(t, lib)

	err := runAdvertise(context.Background(), config.Default(), []string{"-port", "80", "_http._tcp"})
	var se *dnssd.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if se.Code != dnssd.ErrNameConflict {
		t.Errorf("code = %s, want NameConflict", se.Code)
	}
}

func TestTraceLogWritten(t *testing.T) {
	lib := &stubLibrary{resolve: &dnssd.ResolveRecord{HostTarget: "printer.local.", Port: dnssd.HostToNetwork(631)}}
	useLibrary(t, lib)

	cfg := config.Default()
	cfg.TraceLog = filepath.Join(t.TempDir(), "discovery"+mashlog.FileExtension)

	if err := runResolve(context.Background(), cfg, []string{"Printer", "_ipp._tcp"}); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	events, err := mashlog.ReadAll(cfg.TraceLog, mashlog.Filter{})
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	// started, result, stopped
	if len(events) != 3 {
		t.Fatalf("expected 3 trace events, got %d", len(events))
	}
	for _, e := range events {
		if e.Kind != mashlog.KindResolve {
			t.Errorf("unexpected kind %s", e.Kind)
		}
	}
}

func TestAdvertiseList(t *testing.T) {
	cfg, err := config.Parse([]byte("advertise:\n  - type: _ssh._tcp\n    port: 22\n  - type: _http._tcp\n    port: 80\n"))
	if err != nil {
		t.Fatal(err)
	}

	infos, err := advertiseList(cfg, nil, "", 0, nil)
	if err != nil {
		t.Fatalf("from config: %v", err)
	}
	if len(infos) != 2 || infos[0].ServiceType != "_ssh._tcp" || infos[1].Port != 80 {
		t.Errorf("unexpected services %+v", infos)
	}

	infos, err = advertiseList(cfg, []string{"_ipp._tcp"}, "Printer", 631, nil)
	if err != nil {
		t.Fatalf("from args: %v", err)
	}
	if len(infos) != 1 || infos[0].Name != "Printer" || infos[0].Domain != "local" {
		t.Errorf("unexpected services %+v", infos)
	}

	for _, tc := range []struct {
		name string
		args []string
		port uint
	}{
		{"NoPort", []string{"_ipp._tcp"}, 0},
		{"PortTooLarge", []string{"_ipp._tcp"}, 70000},
		{"TwoTypes", []string{"_ipp._tcp", "_http._tcp"}, 80},
	} {
		if _, err := advertiseList(cfg, tc.args, "", tc.port, nil); !errors.Is(err, errUsage) {
			t.Errorf("%s: expected usage error, got %v", tc.name, err)
		}
	}

	if _, err := advertiseList(config.Default(), nil, "", 0, nil); !errors.Is(err, errUsage) {
		t.Errorf("expected usage error without services, got %v", err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bonjour.yaml")
	if err := os.WriteFile(path, []byte("domain: example.org\nlog_level: warn\ninterface: eth0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var gf globalFlags
	fs.StringVar(&gf.ConfigFile, "config", "", "")
	fs.StringVar(&gf.Domain, "domain", "", "")
	fs.StringVar(&gf.Interface, "interface", "", "")
	fs.StringVar(&gf.LogLevel, "log-level", "", "")
	if err := fs.Parse([]string{"-config", path, "-domain", "other.org"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(fs, gf)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Domain != "other.org" {
		t.Errorf("domain = %q, want flag value", cfg.Domain)
	}
	if cfg.LogLevel != "warn" || cfg.Interface != "eth0" {
		t.Errorf("file values lost: %+v", cfg)
	}
}

func TestLoadConfigInvalidFlag(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var gf globalFlags
	fs.StringVar(&gf.BrowseErrorPolicy, "browse-error-policy", "", "")
	if err := fs.Parse([]string{"-browse-error-policy", "retry"}); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(fs, gf); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected invalid configuration, got %v", err)
	}
}

func TestTXTFlag(t *testing.T) {
	var f txtFlag
	for _, s := range []string{"path=/", "secure"} {
		if err := f.Set(s); err != nil {
			t.Fatalf("Set(%q): %v", s, err)
		}
	}
	if got := f.String(); got != "path=/ secure" {
		t.Errorf("String() = %q", got)
	}
	if err := f.Set("=bad"); !errors.Is(err, txt.ErrInvalidEntry) {
		t.Errorf("expected ErrInvalidEntry, got %v", err)
	}
}

func TestRunUsage(t *testing.T) {
	if err := run(context.Background(), nil); err != errUsage {
		t.Errorf("no command: got %v", err)
	}
	if err := run(context.Background(), []string{"frobnicate"}); err != errUsage {
		t.Errorf("unknown command: got %v", err)
	}
	if err := run(context.Background(), []string{"resolve", "only-name"}); !errors.Is(err, errUsage) {
		t.Errorf("bad arguments: got %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out := useLibrary(t, &stubLibrary{})

	// The config file is not read for version.
	if err := run(context.Background(), []string{"-config", "/nonexistent.yaml", "version"}); err != nil {
		t.Fatalf("run version: %v", err)
	}
	want := "bonjour " + version.Current + " (config format " + version.ConfigFormat + ")\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}
