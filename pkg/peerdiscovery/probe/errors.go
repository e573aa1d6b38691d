package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"
)

// PanicError is a panic recovered while running a probe
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("probe panicked: %v", e.Value)
}

// IsIOError reports whether err comes from the network or the OS socket
// layer. Everything else, recovered panics included, is a probe fault.
func IsIOError(err error) bool {
	if err == nil {
		return false
	}

	var panicErr *PanicError
	if errors.As(err, &panicErr) {
		return false
	}

	var (
		netErr  net.Error
		sysErr  *os.SyscallError
		errno   syscall.Errno
		pathErr *os.PathError
	)
	switch {
	case errors.As(err, &netErr),
		errors.As(err, &sysErr),
		errors.As(err, &errno),
		errors.As(err, &pathErr):
		return true
	}

	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
