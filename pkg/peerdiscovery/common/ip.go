package common

import (
	"bytes"
	"net"
)

// IsNetworkOrBroadcast checks if an IPv4 address is the network or broadcast
// address of network. Non-IPv4 input is never reported as either.
func IsNetworkOrBroadcast(ip net.IP, network *net.IPNet) bool {
	if network == nil {
		return false
	}

	ip4 := ip.To4()
	base := network.IP.To4()
	mask := ipv4Mask(network.Mask)
	if ip4 == nil || base == nil || mask == nil {
		return false
	}

	// Network address
	if ip4.Equal(base.Mask(mask)) {
		return true
	}

	broadcast := make(net.IP, net.IPv4len)
	for i := range broadcast {
		broadcast[i] = base[i] | ^mask[i]
	}
	return ip4.Equal(broadcast)
}

// CompareIPv4 orders two addresses numerically. IPv4 sorts before anything else.
func CompareIPv4(a, b net.IP) int {
	a4, b4 := a.To4(), b.To4()
	switch {
	case a4 != nil && b4 == nil:
		return -1
	case a4 == nil && b4 != nil:
		return 1
	case a4 == nil && b4 == nil:
		return bytes.Compare(a, b)
	}
	return bytes.Compare(a4, b4)
}

func ipv4Mask(mask net.IPMask) net.IPMask {
	switch len(mask) {
	case net.IPv4len:
		return mask
	case net.IPv6len:
		return mask[12:]
	}
	return nil
}
