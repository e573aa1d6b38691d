package prescan

import (
	"net"

	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/common"
)

// PrioritizedIP holds an IP and its priority score (0-100)
type PrioritizedIP struct {
	IP       net.IP
	Priority int
}

// HostPriority returns the score of a /24 host octet.
func HostPriority(host int) int {
	if host < 0 || host > 255 {
		return PriorityExcluded
	}
	return hostPriority[host]
}

// CalculatePriority returns priority score (0-100) for an IP in a network.
// Higher scores mean more likely to be online.
func CalculatePriority(ip net.IP, network *net.IPNet) int {
	ip4 := ip.To4()
	if ip4 == nil {
		return PriorityLongTail
	}
	if common.IsNetworkOrBroadcast(ip4, network) {
		return PriorityExcluded
	}
	return HostPriority(int(ip4[3]))
}
