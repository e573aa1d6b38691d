package probe

import (
	"context"
	"net"
	"testing"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

func marshalEcho(t *testing.T, typ icmp.Type, id, seq int) []byte {
	t.Helper()
	msg := &icmp.Message{
		Type: typ,
		Body: &icmp.Echo{ID: id, Seq: seq, Data: echoPayload},
	}
	data, err := msg.Marshal(nil)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	return data
}

func TestMatchEchoReply(t *testing.T) {
	target := net.ParseIP("192.168.0.7")
	raw := &net.IPAddr{IP: target}
	dgram := &net.UDPAddr{IP: target}
	other := &net.IPAddr{IP: net.ParseIP("192.168.0.8")}

	tests := []struct {
		name    string
		data    []byte
		peer    net.Addr
		checkID bool
		want    bool
	}{
		{name: "raw reply", data: marshalEcho(t, ipv4.ICMPTypeEchoReply, 42, 7), peer: raw, checkID: true, want: true},
		{name: "datagram reply ignores id", data: marshalEcho(t, ipv4.ICMPTypeEchoReply, 1, 7), peer: dgram, checkID: false, want: true},
		{name: "wrong id", data: marshalEcho(t, ipv4.ICMPTypeEchoReply, 43, 7), peer: raw, checkID: true, want: false},
		{name: "wrong seq", data: marshalEcho(t, ipv4.ICMPTypeEchoReply, 42, 8), peer: raw, checkID: true, want: false},
		{name: "wrong peer", data: marshalEcho(t, ipv4.ICMPTypeEchoReply, 42, 7), peer: other, checkID: true, want: false},
		{name: "echo request", data: marshalEcho(t, ipv4.ICMPTypeEcho, 42, 7), peer: raw, checkID: true, want: false},
		{name: "garbage", data: []byte{0x01}, peer: raw, checkID: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchEchoReply(tt.data, tt.peer, target, 42, 7, tt.checkID); got != tt.want {
				t.Errorf("matchEchoReply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEchoRequest(t *testing.T) {
	data, err := echoRequest(42, 7)
	if err != nil {
		t.Fatalf("echoRequest() error = %v", err)
	}
	msg, err := icmp.ParseMessage(ipv4.ICMPTypeEcho.Protocol(), data)
	if err != nil {
		t.Fatalf("ParseMessage() error = %v", err)
	}
	echo, ok := msg.Body.(*icmp.Echo)
	if msg.Type != ipv4.ICMPTypeEcho || !ok || echo.ID != 42 || echo.Seq != 7 {
		t.Errorf("echoRequest() = %+v, want echo id 42 seq 7", msg)
	}
}

func TestICMPCheckerName(t *testing.T) {
	if got := NewICMPChecker(true).Name(); got != "icmp" {
		t.Errorf("Name() = %s, want icmp", got)
	}
	if got := NewICMPChecker(false).Name(); got != "icmp-unprivileged" {
		t.Errorf("Name() = %s, want icmp-unprivileged", got)
	}
}

func TestICMPCheckerLoopback(t *testing.T) {
	privileged := icmpPrivileged()
	if !icmpAvailable(privileged) {
		t.Skip("icmp sockets are not permitted for this user")
	}

	checker := NewICMPChecker(privileged)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	ok, err := checker.Check(ctx, net.ParseIP("127.0.0.1").To4())
	if err != nil {
		t.Fatalf("Check(127.0.0.1) error = %v", err)
	}
	if !ok {
		t.Error("Check(127.0.0.1) = false, want loopback to answer")
	}
}

func TestICMPCheckerCancelled(t *testing.T) {
	privileged := icmpPrivileged()
	if !icmpAvailable(privileged) {
		t.Skip("icmp sockets are not permitted for this user")
	}

	// TEST-NET-1 never answers; the check must return once ctx ends
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	ok, err := NewICMPChecker(privileged).Check(ctx, net.ParseIP("192.0.2.1").To4())
	if ok {
		t.Error("Check(192.0.2.1) = true, want no answer")
	}
	if err != nil && !IsIOError(err) {
		t.Errorf("Check(192.0.2.1) error = %v, want nil or an i/o error", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Check() took %s after a 200ms deadline", elapsed)
	}
}
