package addrspace

import (
	"fmt"
	"net"
	"sort"

	"github.com/projectdiscovery/mapcidr"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/common"
)

// Host octet bounds of a /24
const (
	FirstHost = 1
	LastHost  = 254
	HostCount = LastHost - FirstHost + 1
)

// Candidate is one host address to probe
type Candidate struct {
	IP   net.IP
	Host int
}

func (c Candidate) String() string {
	return c.IP.String()
}

// Candidates returns the hosts .1 through .254 of p in ascending order.
func Candidates(p Prefix) ([]Candidate, error) {
	if p.IsZero() {
		return nil, fmt.Errorf("%w: empty prefix", ErrInvalidPrefix)
	}

	cidr := p.CIDR()
	ips, err := mapcidr.IPAddresses(cidr)
	if err != nil {
		return nil, fmt.Errorf("failed to expand CIDR %s: %w", cidr, err)
	}

	network := p.Network()
	candidates := make([]Candidate, 0, HostCount)
	for _, ipStr := range ips {
		ip := net.ParseIP(ipStr).To4()
		if ip == nil {
			continue
		}

		// Skip network and broadcast addresses
		if common.IsNetworkOrBroadcast(ip, network) {
			continue
		}

		candidates = append(candidates, Candidate{IP: ip, Host: int(ip[3])})
	}

	if len(candidates) != HostCount {
		return nil, fmt.Errorf("expanded %s to %d hosts, want %d", cidr, len(candidates), HostCount)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Host < candidates[j].Host
	})

	return candidates, nil
}
