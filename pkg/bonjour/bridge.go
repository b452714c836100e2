package bonjour

import (
	"fmt"
	"net"

	"github.com/mash-protocol/bonjour-go/pkg/dnssd"
	"github.com/mash-protocol/bonjour-go/pkg/log"
	"github.com/mash-protocol/bonjour-go/pkg/txt"
)

// pump is the event bridge: it runs when the handle of s is readable and
// has the library process exactly one pending result, which invokes the
// session's reply function synchronously.
func (c *Client) pump(s *session) {
	if s.stopped {
		return
	}
	if err := s.handle.ProcessResult(); err != nil {
		// The handle itself is broken; no further results can arrive.
		c.report(s, asServiceError("ProcessResult", err), false)
		c.stop(s, log.ReasonFailed)
	}
}

func (c *Client) handleBrowseReply(s *session, r dnssd.BrowseRecord, code dnssd.ErrorCode) {
	if s.stopped || s.onBrowse == nil {
		return
	}

	if code != dnssd.NoError {
		c.report(s, dnssd.NewServiceError("BrowseReply", code, nil), false)
		if c.config.BrowseErrorPolicy == StopOnError {
			c.stop(s, log.ReasonFailed)
		}
		return
	}

	event := BrowseEvent{
		Action:         ActionRemove,
		Name:           r.Name,
		ServiceType:    r.ServiceType,
		Domain:         r.Domain,
		InterfaceIndex: r.InterfaceIndex,
		MoreComing:     r.Flags&dnssd.FlagsMoreComing != 0,
	}
	if r.Flags&dnssd.FlagsAdd != 0 {
		event.Action = ActionAdd
	}
	if event.ServiceType == "" {
		event.ServiceType = s.key
	}

	action := log.ActionRemove
	if event.Action == ActionAdd {
		action = log.ActionAdd
	}
	c.trace(s, &log.ResultEvent{
		Action:         action,
		Flags:          uint32(r.Flags),
		Name:           r.Name,
		Domain:         r.Domain,
		InterfaceIndex: r.InterfaceIndex,
	})

	if err := s.onBrowse(event); err != nil {
		c.report(s, fmt.Errorf("browse %s: callback: %w", s.key, err), true)
	}
}

func (c *Client) handleResolveReply(s *session, r dnssd.ResolveRecord, code dnssd.ErrorCode) {
	if s.stopped {
		return
	}
	onResult := s.onResolve

	if code != dnssd.NoError {
		c.report(s, dnssd.NewServiceError("ResolveReply", code, nil), false)
		c.stop(s, log.ReasonFailed)
		return
	}

	record, err := txt.Decode(r.TXT)
	if err != nil {
		c.report(s, dnssd.NewServiceError("ResolveReply", dnssd.ErrInvalid, err), false)
		c.stop(s, log.ReasonFailed)
		return
	}

	result := ResolveResult{
		FullName:       r.FullName,
		Host:           r.HostTarget,
		Port:           dnssd.NetworkToHost(r.Port),
		TXT:            record,
		InterfaceIndex: r.InterfaceIndex,
	}
	c.trace(s, &log.ResultEvent{
		Action:         log.ActionResolved,
		Flags:          uint32(r.Flags),
		Name:           r.FullName,
		Host:           r.HostTarget,
		Port:           result.Port,
		TXT:            r.TXT,
		InterfaceIndex: r.InterfaceIndex,
	})

	if err := onResult(result); err != nil {
		c.report(s, fmt.Errorf("resolve %s: callback: %w", s.key, err), true)
	}
	c.stop(s, log.ReasonCompleted)
}

func (c *Client) handleQueryReply(s *session, r dnssd.QueryRecord, code dnssd.ErrorCode) {
	if s.stopped {
		return
	}
	onResult := s.onAddress

	if code != dnssd.NoError {
		c.report(s, dnssd.NewServiceError("QueryRecordReply", code, nil), false)
		c.stop(s, log.ReasonFailed)
		return
	}

	if r.RRType != dnssd.TypeA || len(r.RData) != net.IPv4len {
		err := fmt.Errorf("unexpected record: type %d, %d bytes of rdata", r.RRType, len(r.RData))
		c.report(s, dnssd.NewServiceError("QueryRecordReply", dnssd.ErrInvalid, err), false)
		c.stop(s, log.ReasonFailed)
		return
	}

	result := AddressResult{
		Hostname:       s.key,
		Address:        net.IP(r.RData).String(),
		TTL:            r.TTL,
		InterfaceIndex: r.InterfaceIndex,
	}
	c.trace(s, &log.ResultEvent{
		Action:         log.ActionAddress,
		Flags:          uint32(r.Flags),
		Name:           r.FullName,
		Address:        result.Address,
		InterfaceIndex: r.InterfaceIndex,
		TTL:            r.TTL,
	})

	if err := onResult(result); err != nil {
		c.report(s, fmt.Errorf("resolve address %s: callback: %w", s.key, err), true)
	}
	c.stop(s, log.ReasonCompleted)
}
