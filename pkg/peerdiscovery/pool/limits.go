package pool

import (
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// reservedDescriptors are kept free for the resolver, stdio and logging
const reservedDescriptors = 32

// openFileLimit returns the soft RLIMIT_NOFILE of this process. It is a
// variable so tests can fake it.
var openFileLimit = func() (uint64, bool) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, false
	}
	limits, err := proc.Rlimit()
	if err != nil {
		return 0, false
	}
	for _, limit := range limits {
		if limit.Resource == process.RLIMIT_NOFILE {
			return limit.Soft, limit.Soft > 0
		}
	}
	return 0, false
}

func clampToDescriptorLimit(size, socketsPerTask int) int {
	limit, ok := openFileLimit()
	if !ok {
		return size
	}
	return clamp(size, limit, socketsPerTask)
}

// clamp keeps size tasks of socketsPerTask descriptors each within limit
// minus the reserved descriptors, never below one worker
func clamp(size int, limit uint64, socketsPerTask int) int {
	if socketsPerTask < 1 {
		socketsPerTask = 1
	}
	if limit <= reservedDescriptors {
		return 1
	}
	available := (limit - reservedDescriptors) / uint64(socketsPerTask)
	if available < 1 {
		return 1
	}
	if uint64(size) > available {
		return int(available)
	}
	return size
}
