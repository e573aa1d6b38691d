//go:build !windows

package probe

import (
	"errors"

	"golang.org/x/sys/unix"
)

// isConnRefused reports a TCP reset from the target, which proves it is up
func isConnRefused(err error) bool {
	return errors.Is(err, unix.ECONNREFUSED) || errors.Is(err, unix.ECONNRESET)
}

// isHostUnreachable reports a failed neighbour lookup or an ICMP host
// unreachable; both mean nobody answered
func isHostUnreachable(err error) bool {
	return errors.Is(err, unix.EHOSTUNREACH) || errors.Is(err, unix.EHOSTDOWN)
}

func isPermissionDenied(err error) bool {
	return errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES)
}
