package probe

import (
	"net"
	"time"
)

// Kind classifies the result of one probe
type Kind int

const (
	Unreachable Kind = iota
	Reachable
	Failed
	// Skipped marks a probe whose outcome the caller stopped waiting for
	Skipped
)

func (k Kind) String() string {
	switch k {
	case Reachable:
		return "reachable"
	case Unreachable:
		return "unreachable"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	}
	return "unknown"
}

// Outcome is the single result produced for a probed address
type Outcome struct {
	Address string
	// IP is set once the address resolved
	IP      net.IP
	Kind    Kind
	Err     error
	Elapsed time.Duration
}
