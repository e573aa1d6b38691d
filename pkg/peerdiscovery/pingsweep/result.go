package pingsweep

import (
	"net"
	"slices"
	"time"

	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/addrspace"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/common"
)

// Stats counts the outcomes of one discovery
type Stats struct {
	Submitted   int `json:"submitted"`
	Reachable   int `json:"reachable"`
	Unreachable int `json:"unreachable"`
	Failed      int `json:"failed"`
	Skipped     int `json:"skipped"`
}

// Result is the set of reachable hosts found by one discovery. It does not
// change after Discover returns.
type Result struct {
	RunID   string
	Prefix  addrspace.Prefix
	Stats   Stats
	Elapsed time.Duration

	addresses []net.IP
}

// NewResult builds a result from reachable addresses, dropping duplicates.
func NewResult(runID string, prefix addrspace.Prefix, addresses []net.IP, stats Stats, elapsed time.Duration) *Result {
	sorted := make([]net.IP, 0, len(addresses))
	for _, ip := range addresses {
		if ip4 := ip.To4(); ip4 != nil {
			sorted = append(sorted, ip4)
		}
	}
	slices.SortFunc(sorted, common.CompareIPv4)
	sorted = slices.CompactFunc(sorted, net.IP.Equal)

	return &Result{
		RunID:     runID,
		Prefix:    prefix,
		Stats:     stats,
		Elapsed:   elapsed,
		addresses: sorted,
	}
}

// Addresses returns the reachable hosts in ascending order. The slice is a
// copy and never nil.
func (r *Result) Addresses() []net.IP {
	addresses := make([]net.IP, len(r.addresses))
	for i, ip := range r.addresses {
		addresses[i] = append(net.IP(nil), ip...)
	}
	return addresses
}

// Contains reports whether ip was found reachable.
func (r *Result) Contains(ip net.IP) bool {
	_, found := slices.BinarySearchFunc(r.addresses, ip.To4(), common.CompareIPv4)
	return found
}

// Len returns the number of reachable hosts.
func (r *Result) Len() int {
	return len(r.addresses)
}
