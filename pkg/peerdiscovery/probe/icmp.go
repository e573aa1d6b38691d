package probe

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

var echoPayload = []byte("netsweep-echo")

// ICMPChecker sends one echo request per check over its own socket and
// waits for the matching reply
type ICMPChecker struct {
	privileged bool
	id         int
	seq        atomic.Uint32
}

// NewICMPChecker creates an ICMP checker. privileged selects a raw
// "ip4:icmp" socket instead of an unprivileged "udp4" one.
func NewICMPChecker(privileged bool) *ICMPChecker {
	return &ICMPChecker{
		privileged: privileged,
		id:         os.Getpid() & 0xffff,
	}
}

func (c *ICMPChecker) Name() string {
	if c.privileged {
		return "icmp"
	}
	return "icmp-unprivileged"
}

// SocketsPerCheck returns 1, each check opens a single socket.
func (c *ICMPChecker) SocketsPerCheck() int {
	return 1
}

// Check sends an echo request to ip and waits for the reply until ctx ends.
func (c *ICMPChecker) Check(ctx context.Context, ip net.IP) (bool, error) {
	conn, err := icmp.ListenPacket(icmpNetwork(c.privileged), "0.0.0.0")
	if err != nil {
		if isPermissionDenied(err) {
			return false, fmt.Errorf("not permitted to open icmp socket (run as root or use the tcp method): %w", err)
		}
		return false, fmt.Errorf("failed to open icmp socket: %w", err)
	}
	defer func() {
		_ = conn.Close()
	}()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(DefaultTimeout)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return false, fmt.Errorf("failed to set icmp deadline: %w", err)
	}

	// Unblock the read when ctx ends before the deadline
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetReadDeadline(time.Now())
	})
	defer stop()

	seq := int(c.seq.Add(1) & 0xffff)
	request, err := echoRequest(c.id, seq)
	if err != nil {
		return false, err
	}

	if _, err := conn.WriteTo(request, c.destination(ip)); err != nil {
		if isHostUnreachable(err) || isTimeout(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to send echo request to %s: %w", ip, err)
	}

	reply := make([]byte, 1500)
	for {
		n, peer, err := conn.ReadFrom(reply)
		if err != nil {
			if isTimeout(err) {
				return false, nil
			}
			return false, fmt.Errorf("failed to read echo reply from %s: %w", ip, err)
		}
		// The kernel rewrites the echo ID of datagram sockets, only raw
		// sockets can be matched on it
		if matchEchoReply(reply[:n], peer, ip, c.id, seq, c.privileged) {
			return true, nil
		}
	}
}

func (c *ICMPChecker) destination(ip net.IP) net.Addr {
	if c.privileged {
		return &net.IPAddr{IP: ip}
	}
	return &net.UDPAddr{IP: ip}
}

func echoRequest(id, seq int) ([]byte, error) {
	msg := &icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{
			ID:   id,
			Seq:  seq,
			Data: echoPayload,
		},
	}

	msgBytes, err := msg.Marshal(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ICMP message: %w", err)
	}
	return msgBytes, nil
}

// matchEchoReply reports whether data is the echo reply from target for the
// request identified by id and seq
func matchEchoReply(data []byte, peer net.Addr, target net.IP, id, seq int, checkID bool) bool {
	msg, err := icmp.ParseMessage(ipv4.ICMPTypeEchoReply.Protocol(), data)
	if err != nil {
		return false
	}
	if msg.Type != ipv4.ICMPTypeEchoReply {
		return false
	}

	echo, ok := msg.Body.(*icmp.Echo)
	if !ok || echo.Seq != seq {
		return false
	}
	if checkID && echo.ID != id {
		return false
	}

	return peerIP(peer).Equal(target)
}

func peerIP(addr net.Addr) net.IP {
	switch v := addr.(type) {
	case *net.IPAddr:
		return v.IP
	case *net.UDPAddr:
		return v.IP
	}
	return nil
}
