package prescan

import (
	"net"
	"sort"

	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/addrspace"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/common"
)

// Order returns a copy of candidates sorted by priority (high to low), then
// by address. The input slice is left untouched.
func Order(candidates []addrspace.Candidate, network *net.IPNet) []addrspace.Candidate {
	prioritized := make([]PrioritizedIP, len(candidates))
	byIP := make(map[string]addrspace.Candidate, len(candidates))
	for i, candidate := range candidates {
		prioritized[i] = PrioritizedIP{
			IP:       candidate.IP,
			Priority: CalculatePriority(candidate.IP, network),
		}
		byIP[candidate.IP.String()] = candidate
	}

	sort.SliceStable(prioritized, func(i, j int) bool {
		if prioritized[i].Priority != prioritized[j].Priority {
			return prioritized[i].Priority > prioritized[j].Priority
		}
		return common.CompareIPv4(prioritized[i].IP, prioritized[j].IP) < 0
	})

	ordered := make([]addrspace.Candidate, 0, len(prioritized))
	for _, p := range prioritized {
		ordered = append(ordered, byIP[p.IP.String()])
	}
	return ordered
}
