package common

import (
	"net"
)

// GetLocalNetworks24 returns the private IPv4 networks attached to up,
// non-loopback interfaces, widened to /24 ranges
func GetLocalNetworks24() ([]*net.IPNet, error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var addrs []net.Addr
	for _, iface := range interfaces {
		// Skip loopback and down interfaces
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		ifaceAddrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		addrs = append(addrs, ifaceAddrs...)
	}

	return networks24(addrs), nil
}

// networks24 keeps the private IPv4 addresses of addrs as deduplicated /24s,
// in first-seen order
func networks24(addrs []net.Addr) []*net.IPNet {
	var networks []*net.IPNet
	seen := make(map[string]struct{})
	mask24 := net.CIDRMask(24, 32)

	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		default:
			continue
		}

		ip4 := ip.To4()
		if ip4 == nil || !ip4.IsPrivate() {
			continue
		}

		network24 := &net.IPNet{
			IP:   ip4.Mask(mask24),
			Mask: mask24,
		}

		key := network24.String()
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}

		networks = append(networks, network24)
	}

	return networks
}
