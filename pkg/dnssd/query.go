package dnssd

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	"golang.org/x/net/ipv4"
)

// mDNS IPv4 group and port.
var mdnsGroupIPv4 = &net.UDPAddr{IP: net.IPv4(224, 0, 0, 251), Port: 5353}

const (
	// queryInitialInterval is the delay before the first retransmission.
	queryInitialInterval = time.Second

	// queryMaxInterval caps the retransmission backoff.
	queryMaxInterval = 60 * time.Second

	// maxPacketSize bounds a single mDNS response.
	maxPacketSize = 9000
)

// StartAddressQuery implements Library.
//
// The query is sent from an ephemeral port, which makes responders answer
// with a legacy unicast response straight to the socket. The question is
// retransmitted with doubling intervals until the handle is released.
func (z *Zeroconf) StartAddressQuery(hostname string, reply QueryReply) (Handle, error) {
	const op = "StartAddressQuery"

	if reply == nil {
		return nil, NewServiceError(op, ErrBadParam, errors.New("nil reply"))
	}
	if hostname == "" {
		return nil, NewServiceError(op, ErrBadParam, errors.New("empty hostname"))
	}
	ifaces, err := z.getInterfaces()
	if err != nil {
		return nil, NewServiceError(op, ErrBadInterfaceIndex, err)
	}

	fqdn := dns.Fqdn(hostname)
	msg := new(dns.Msg)
	msg.SetQuestion(fqdn, dns.TypeA)
	msg.RecursionDesired = false
	packet, err := msg.Pack()
	if err != nil {
		return nil, NewServiceError(op, ErrBadParam, err)
	}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero})
	if err != nil {
		return nil, NewServiceError(op, ErrUnknown, err)
	}
	pc := ipv4.NewPacketConn(conn)
	if err := pc.SetMulticastTTL(255); err != nil {
		conn.Close()
		return nil, NewServiceError(op, ErrUnknown, err)
	}
	if len(ifaces) > 0 {
		if err := pc.SetMulticastInterface(&ifaces[0]); err != nil {
			conn.Close()
			return nil, NewServiceError(op, ErrBadInterfaceIndex, err)
		}
	}

	if _, err := conn.WriteToUDP(packet, mdnsGroupIPv4); err != nil {
		conn.Close()
		return nil, NewServiceError(op, ErrUnknown, err)
	}

	h := newQueueHandle()
	ctx, cancel := context.WithCancel(context.Background())
	h.onRelease = append(h.onRelease, cancel, func() { conn.Close() })

	go retransmitQuery(ctx, conn, packet)
	go readAnswers(ctx, h, conn, msg.Id, fqdn, reply)

	return h, nil
}

// retransmitQuery resends the question until ctx is done.
func retransmitQuery(ctx context.Context, conn *net.UDPConn, packet []byte) {
	interval := queryInitialInterval
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		if _, err := conn.WriteToUDP(packet, mdnsGroupIPv4); err != nil {
			return
		}
		interval *= 2
		if interval > queryMaxInterval {
			interval = queryMaxInterval
		}
		timer.Reset(interval)
	}
}

// readAnswers queues every A record answering fqdn.
func readAnswers(ctx context.Context, h *queueHandle, conn *net.UDPConn, id uint16, fqdn string, reply QueryReply) {
	buf := make([]byte, maxPacketSize)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() == nil {
				h.push(func() { reply(QueryRecord{}, ErrServiceNotRunning) })
			}
			return
		}

		var resp dns.Msg
		if err := resp.Unpack(buf[:n]); err != nil {
			continue
		}
		for _, rec := range answerRecords(&resp, id, fqdn) {
			h.push(func() {
				rec.Flags = h.pendingFlags()
				reply(rec, NoError)
			})
		}
	}
}

// answerRecords extracts the A records for fqdn from a response. Queries
// and responses to other questions yield nothing.
func answerRecords(resp *dns.Msg, id uint16, fqdn string) []QueryRecord {
	if !resp.Response {
		return nil
	}
	// Legacy unicast responses echo the query ID; multicast ones use 0.
	if resp.Id != id && resp.Id != 0 {
		return nil
	}

	var out []QueryRecord
	rrs := make([]dns.RR, 0, len(resp.Answer)+len(resp.Extra))
	rrs = append(rrs, resp.Answer...)
	rrs = append(rrs, resp.Extra...)
	for _, rr := range rrs {
		a, ok := rr.(*dns.A)
		if !ok || !strings.EqualFold(a.Hdr.Name, fqdn) {
			continue
		}
		ip := a.A.To4()
		if ip == nil {
			continue
		}
		out = append(out, QueryRecord{
			FullName: a.Hdr.Name,
			RRType:   TypeA,
			// Strip the mDNS cache-flush bit.
			RRClass: a.Hdr.Class &^ 0x8000,
			RData:   append([]byte(nil), ip...),
			TTL:     a.Hdr.Ttl,
		})
	}
	return out
}
