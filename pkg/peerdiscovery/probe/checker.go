package probe

import (
	"context"
	"fmt"
	"net"
	"os"

	osutils "github.com/projectdiscovery/utils/os"
	"golang.org/x/net/icmp"
)

// Checker is a bounded reachability test against one address. It returns
// false with a nil error when nothing answered before ctx expired.
type Checker interface {
	Check(ctx context.Context, ip net.IP) (bool, error)
	Name() string
}

// SocketsPerCheck returns how many sockets one Check of c keeps open at the
// same time. Checkers that do not report it use a single socket.
func SocketsPerCheck(c Checker) int {
	if counter, ok := c.(interface{ SocketsPerCheck() int }); ok {
		if n := counter.SocketsPerCheck(); n > 0 {
			return n
		}
	}
	return 1
}

// Method selects a Checker implementation
type Method string

const (
	MethodAuto Method = "auto"
	MethodICMP Method = "icmp"
	MethodTCP  Method = "tcp"
)

// CheckerOptions tunes the checkers built by NewChecker
type CheckerOptions struct {
	// Ports dialed by the TCP checker, DefaultPorts when empty
	Ports []int
}

// NewChecker builds the checker for method. MethodAuto resolves through
// DetectMethod.
func NewChecker(method Method, options CheckerOptions) (Checker, error) {
	if method == MethodAuto || method == "" {
		method = DetectMethod()
	}

	switch method {
	case MethodICMP:
		return NewICMPChecker(icmpPrivileged()), nil
	case MethodTCP:
		return NewTCPChecker(options.Ports), nil
	}
	return nil, fmt.Errorf("unknown probe method %q", method)
}

// DetectMethod picks ICMP when this process may open an ICMP socket, TCP
// otherwise.
func DetectMethod() Method {
	if icmpAvailable(icmpPrivileged()) {
		return MethodICMP
	}
	return MethodTCP
}

// icmpPrivileged decides between raw and datagram ICMP sockets. Windows only
// offers raw sockets, Linux and macOS offer datagram ones to regular users.
func icmpPrivileged() bool {
	if osutils.IsWindows() {
		return true
	}
	return os.Geteuid() == 0
}

func icmpAvailable(privileged bool) bool {
	conn, err := icmp.ListenPacket(icmpNetwork(privileged), "0.0.0.0")
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func icmpNetwork(privileged bool) string {
	if privileged {
		return "ip4:icmp"
	}
	return "udp4"
}
