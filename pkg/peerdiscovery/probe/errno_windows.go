//go:build windows

package probe

import (
	"errors"
	"syscall"
)

// Winsock error codes
const (
	wsaeacces       syscall.Errno = 10013
	wsaeconnreset   syscall.Errno = 10054
	wsaeconnrefused syscall.Errno = 10061
	wsaehostdown    syscall.Errno = 10064
	wsaehostunreach syscall.Errno = 10065
)

func isConnRefused(err error) bool {
	return errors.Is(err, wsaeconnrefused) || errors.Is(err, wsaeconnreset)
}

func isHostUnreachable(err error) bool {
	return errors.Is(err, wsaehostunreach) || errors.Is(err, wsaehostdown)
}

func isPermissionDenied(err error) bool {
	return errors.Is(err, wsaeacces) || errors.Is(err, syscall.ERROR_ACCESS_DENIED)
}
