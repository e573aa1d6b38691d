package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"

	syncutil "github.com/projectdiscovery/utils/sync"
)

// DefaultPorts are dialed by the TCP checker: echo first, then services
// commonly exposed on LAN hosts
var DefaultPorts = []int{7, 22, 80, 443, 445}

// TCPChecker treats a host as reachable when any port completes a handshake
// or actively refuses the connection
type TCPChecker struct {
	ports []int
}

// NewTCPChecker creates a TCP checker; an empty list selects DefaultPorts.
func NewTCPChecker(ports []int) *TCPChecker {
	if len(ports) == 0 {
		ports = DefaultPorts
	}
	return &TCPChecker{ports: append([]int(nil), ports...)}
}

func (c *TCPChecker) Name() string {
	return "tcp"
}

// SocketsPerCheck returns the number of ports dialed in parallel.
func (c *TCPChecker) SocketsPerCheck() int {
	return len(c.ports)
}

// Check dials every port in parallel and stops at the first answer.
func (c *TCPChecker) Check(ctx context.Context, ip net.IP) (bool, error) {
	awg, err := syncutil.New(syncutil.WithSize(len(c.ports)))
	if err != nil {
		return false, fmt.Errorf("failed to create adaptive waitgroup: %w", err)
	}

	dialCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		answered bool
		firstErr error
	)
	for _, port := range c.ports {
		awg.Add()
		go func(port int) {
			defer awg.Done()

			ok, err := dial(dialCtx, ip, port)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case ok:
				answered = true
				cancel()
			case err != nil && firstErr == nil:
				firstErr = err
			}
		}(port)
	}
	awg.Wait()

	if answered {
		return true, nil
	}
	return false, firstErr
}

func dial(ctx context.Context, ip net.IP, port int) (bool, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp4", net.JoinHostPort(ip.String(), strconv.Itoa(port)))
	if err == nil {
		_ = conn.Close()
		return true, nil
	}

	switch {
	case isConnRefused(err):
		return true, nil
	case isTimeout(err), isHostUnreachable(err), errors.Is(err, context.Canceled):
		return false, nil
	}
	return false, fmt.Errorf("failed to dial %s port %d: %w", ip, port, err)
}
