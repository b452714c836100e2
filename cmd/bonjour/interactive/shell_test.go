package interactive

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/bonjour-go/pkg/bonjour"
	"github.com/mash-protocol/bonjour-go/pkg/dnssd"
	"github.com/mash-protocol/bonjour-go/pkg/dnssd/mocks"
	"github.com/mash-protocol/bonjour-go/pkg/eventloop"
	"github.com/mash-protocol/bonjour-go/pkg/txt"
)

// inlineLoop runs posted work immediately and never dispatches readiness.
type inlineLoop struct{}

func (inlineLoop) Post(fn func())                            { fn() }
func (inlineLoop) RegisterReadable(eventloop.Source, func()) {}
func (inlineLoop) DeregisterReadable(eventloop.Source)       {}
func (inlineLoop) OnShutdown(func())                         {}

func newTestShell(t *testing.T) (*Shell, *mocks.MockLibrary, *bytes.Buffer) {
	t.Helper()
	lib := mocks.NewMockLibrary(t)
	client := bonjour.New(lib, inlineLoop{}, bonjour.Config{})
	var out bytes.Buffer
	return newShell(client, inlineLoop{}, &out), lib, &out
}

func TestShellAdvertise(t *testing.T) {
	sh, lib, out := newTestShell(t)
	handle := mocks.NewMockHandle(t)

	wire, err := txt.Encode(txt.Record{{Key: "path", Value: []byte("/")}})
	require.NoError(t, err)

	lib.EXPECT().StartAdvertise(dnssd.AdvertiseRequest{
		Name:        "Kitchen Display",
		ServiceType: "_http._tcp",
		Domain:      "local",
		Port:        dnssd.HostToNetwork(8080),
		TXT:         wire,
	}).Return(handle, nil).Once()
	handle.EXPECT().Release().Once()

	assert.True(t, sh.Exec("advertise _http._tcp 8080 Kitchen path=/ Display"))
	assert.Contains(t, out.String(), "OK")

	out.Reset()
	assert.True(t, sh.Exec("advertise _http._tcp 8081"))
	assert.Contains(t, out.String(), "advertise failed")
	assert.Contains(t, out.String(), bonjour.ErrDuplicateRegistration.Error())

	out.Reset()
	sh.Exec("status")
	assert.Contains(t, out.String(), "Advertising (1):\n  _http._tcp\n")

	assert.True(t, sh.Exec("unadvertise _http._tcp"))
}

func TestShellBrowse(t *testing.T) {
	sh, lib, out := newTestShell(t)
	handle := mocks.NewMockHandle(t)

	var reply dnssd.BrowseReply
	lib.EXPECT().StartBrowse("_ipp._tcp", "local", mock.Anything).
		RunAndReturn(func(_, _ string, r dnssd.BrowseReply) (dnssd.Handle, error) {
			reply = r
			return handle, nil
		}).Once()
	handle.EXPECT().Release().Once()

	sh.Exec("browse _ipp._tcp")
	require.NotNil(t, reply)
	assert.Contains(t, out.String(), "OK")

	out.Reset()
	reply(dnssd.BrowseRecord{Flags: dnssd.FlagsAdd, Name: "Printer", ServiceType: "_ipp._tcp.", Domain: "local."}, dnssd.NoError)
	assert.Contains(t, out.String(), "+ Printer")

	sh.Exec("unbrowse _ipp._tcp")
	out.Reset()
	sh.Exec("status")
	assert.Contains(t, out.String(), "Browsing (0):")
}

func TestShellUsage(t *testing.T) {
	sh, _, out := newTestShell(t)

	tests := []struct {
		line string
		want string
	}{
		{"browse", "Usage: browse <type>"},
		{"unbrowse", "Usage: unbrowse <type>"},
		{"advertise _http._tcp", "Usage: advertise"},
		{"advertise _http._tcp http", "Invalid port: http"},
		{"advertise _http._tcp 0", "Invalid port: 0"},
		{"advertise _http._tcp 80 =x", "Invalid TXT entry"},
		{"resolve a", "Usage: resolve"},
		{"address", "Usage: address"},
		{"frobnicate", "Unknown command: frobnicate"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out.Reset()
			assert.True(t, sh.Exec(tt.line))
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestShellQuit(t *testing.T) {
	sh, _, _ := newTestShell(t)
	assert.True(t, sh.Exec("   "))
	assert.False(t, sh.Exec("quit"))
	assert.False(t, sh.Exec("Q"))
}

func TestFormat(t *testing.T) {
	name := fmt.Sprintf("%-32s", "Kitchen")
	assert.Equal(t, "+ "+name+" _http._tcp.local (if 2)",
		FormatBrowse(bonjour.BrowseEvent{Name: "Kitchen", ServiceType: "_http._tcp", Domain: "local.", InterfaceIndex: 2}))
	assert.Equal(t, "- "+name+" _http._tcp.local",
		FormatBrowse(bonjour.BrowseEvent{Action: bonjour.ActionRemove, Name: "Kitchen", ServiceType: "_http._tcp", Domain: "local"}))

	assert.Equal(t, `Kitchen._http._tcp.local. -> host.local.:8080 path=/ secure`,
		FormatResolve(bonjour.ResolveResult{
			FullName: "Kitchen._http._tcp.local.",
			Host:     "host.local.",
			Port:     8080,
			TXT:      txt.Record{{Key: "path", Value: []byte("/")}, {Key: "secure"}},
		}))

	assert.Equal(t, "host.local. -> 192.168.1.5 (ttl 120s)",
		FormatAddress(bonjour.AddressResult{Hostname: "host.local.", Address: "192.168.1.5", TTL: 120}))
}
