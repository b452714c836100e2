package bonjour_test

import (
	"context"
	"testing"
	"time"

	"github.com/mash-protocol/bonjour-go/pkg/bonjour"
	"github.com/mash-protocol/bonjour-go/pkg/dnssd"
	"github.com/mash-protocol/bonjour-go/pkg/dnssd/mocks"
	"github.com/mash-protocol/bonjour-go/pkg/eventloop"
	"github.com/mash-protocol/bonjour-go/pkg/txt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBrowseWithMockLibrary(t *testing.T) {
	lib := mocks.NewMockLibrary(t)
	handle := mocks.NewMockHandle(t)
	loop := newFakeLoop(nil)

	var reply dnssd.BrowseReply
	lib.EXPECT().StartBrowse("_http._tcp", "example.org", mock.Anything).
		RunAndReturn(func(_, _ string, r dnssd.BrowseReply) (dnssd.Handle, error) {
			reply = r
			return handle, nil
		}).Once()
	handle.EXPECT().ProcessResult().RunAndReturn(func() error {
		reply(dnssd.BrowseRecord{Name: "A", Flags: dnssd.FlagsAdd | dnssd.FlagsMoreComing}, dnssd.NoError)
		return nil
	}).Once()
	handle.EXPECT().Release().Once()

	client := bonjour.New(lib, loop, bonjour.Config{Domain: "example.org"})

	var got []bonjour.BrowseEvent
	require.NoError(t, client.Browse("_http._tcp", func(e bonjour.BrowseEvent) error {
		got = append(got, e)
		return nil
	}))
	require.True(t, loop.fire(handle))

	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)
	assert.True(t, got[0].MoreComing)
	assert.Equal(t, "_http._tcp", got[0].ServiceType, "service type filled from the session")

	require.NoError(t, client.Unbrowse("_http._tcp"))
	assert.False(t, loop.watching(handle))
}

func TestAdvertiseWithMockLibrary(t *testing.T) {
	lib := mocks.NewMockLibrary(t)
	handle := mocks.NewMockHandle(t)

	lib.EXPECT().StartAdvertise(dnssd.AdvertiseRequest{
		Name:        "Kitchen",
		ServiceType: "_test._tcp",
		Domain:      "local",
		Port:        dnssd.HostToNetwork(5000),
		TXT:         []byte("\x03v=1"),
	}).Return(handle, nil).Once()
	handle.EXPECT().Release().Once()

	client := bonjour.New(lib, newFakeLoop(nil), bonjour.Config{})
	require.NoError(t, client.Advertise(&bonjour.AdvertiseInfo{
		ServiceType: "_test._tcp",
		Name:        "Kitchen",
		Port:        5000,
		TXT:         txt.Record{{Key: "v", Value: []byte("1")}},
	}))
	client.Close()
}

func TestBrowseOnEventLoop(t *testing.T) {
	loop := eventloop.New(nil)
	lib := newFakeLibrary(nil)
	client := bonjour.New(lib, loop, bonjour.Config{})

	events := make(chan bonjour.BrowseEvent, 4)
	require.NoError(t, client.Browse("_http._tcp", func(e bonjour.BrowseEvent) error {
		events <- e
		return nil
	}))
	handle := lib.last()
	reply := lib.browse["_http._tcp"]

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, loop.Run(ctx))
	}()

	handle.enqueue(func() { reply(browseRecord("A", true), dnssd.NoError) })
	handle.enqueue(func() { reply(browseRecord("B", true), dnssd.NoError) })

	for _, want := range []string{"A", "B"} {
		select {
		case e := <-events:
			assert.Equal(t, want, e.Name)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}

	// The client drained itself from the loop's shutdown hook.
	assert.Equal(t, 1, handle.releaseCount())
	assert.Empty(t, client.Browsing())
	assert.False(t, loop.Watching(handle))
}

func TestResolveFromPostedTask(t *testing.T) {
	loop := eventloop.New(nil)
	lib := newFakeLibrary(nil)
	client := bonjour.New(lib, loop, bonjour.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	results := make(chan bonjour.ResolveResult, 1)
	started := make(chan *fakeHandle, 1)
	loop.Post(func() {
		err := client.Resolve("Kitchen", "_ipp._tcp", "", func(r bonjour.ResolveResult) error {
			results <- r
			return nil
		})
		if assert.NoError(t, err) {
			started <- lib.last()
		}
	})

	var handle *fakeHandle
	select {
	case handle = <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("resolve not started")
	}
	// Resolve stored the reply before the handle was sent.
	resolve := lib.resolve
	handle.enqueue(func() {
		resolve(dnssd.ResolveRecord{HostTarget: "printer.local.", Port: dnssd.HostToNetwork(631)}, dnssd.NoError)
	})

	select {
	case r := <-results:
		assert.Equal(t, uint16(631), r.Port)
	case <-time.After(2 * time.Second):
		t.Fatal("no resolve result")
	}

	pending := make(chan int, 1)
	loop.Post(func() { pending <- client.PendingResolves() })
	assert.Zero(t, <-pending)
	assert.Equal(t, 1, handle.releaseCount())
}
