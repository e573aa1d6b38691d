package pingsweep

import (
	"errors"
	"fmt"

	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/probe"
)

var (
	// ErrIO is matched by discovery errors caused by the network or socket layer
	ErrIO = errors.New("network i/o failure")
	// ErrProbeFault is matched by discovery errors caused by a faulty probe
	ErrProbeFault = errors.New("probe fault")
)

// ProbeError is the failure of the probe for one address
type ProbeError struct {
	Address string
	Err     error
}

func (e *ProbeError) Error() string {
	if probe.IsIOError(e.Err) {
		return fmt.Sprintf("%s: probe %s: %v", ErrIO, e.Address, e.Err)
	}
	return fmt.Sprintf("%s: probe %s: %v", ErrProbeFault, e.Address, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// Is matches ErrIO or ErrProbeFault depending on the cause.
func (e *ProbeError) Is(target error) bool {
	switch target {
	case ErrIO:
		return probe.IsIOError(e.Err)
	case ErrProbeFault:
		return !probe.IsIOError(e.Err)
	}
	return false
}
