package addrspace

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/common"
)

var (
	// ErrInvalidPrefix is wrapped by every prefix parsing failure
	ErrInvalidPrefix = errors.New("invalid subnet prefix")
	// ErrNoLocalNetwork is returned by LocalPrefix when no private /24 is attached
	ErrNoLocalNetwork = errors.New("no private IPv4 network found on local interfaces")
)

// Prefix is the network part of an IPv4 /24. The zero value is invalid.
type Prefix struct {
	octets [3]byte
	valid  bool
}

// ParsePrefix parses "a.b.c", "a.b.c." or "a.b.c.d/24".
func ParsePrefix(value string) (Prefix, error) {
	value = strings.TrimSpace(value)

	if strings.Contains(value, "/") {
		ip, network, err := net.ParseCIDR(value)
		if err != nil {
			return Prefix{}, fmt.Errorf("%w %q: %v", ErrInvalidPrefix, value, err)
		}
		ones, bits := network.Mask.Size()
		if ip.To4() == nil || bits != 32 || ones != 24 {
			return Prefix{}, fmt.Errorf("%w %q: only IPv4 /24 networks are supported", ErrInvalidPrefix, value)
		}
		return FromIP(ip)
	}

	parts := strings.Split(strings.TrimSuffix(value, "."), ".")
	if len(parts) != 3 {
		return Prefix{}, fmt.Errorf("%w %q: expected three dotted octets", ErrInvalidPrefix, value)
	}

	var prefix Prefix
	for i, part := range parts {
		octet, err := parseOctet(part)
		if err != nil {
			return Prefix{}, fmt.Errorf("%w %q: %v", ErrInvalidPrefix, value, err)
		}
		prefix.octets[i] = octet
	}
	prefix.valid = true
	return prefix, nil
}

// MustParsePrefix is like ParsePrefix but panics on error.
func MustParsePrefix(value string) Prefix {
	prefix, err := ParsePrefix(value)
	if err != nil {
		panic(err)
	}
	return prefix
}

// FromIP returns the /24 prefix containing ip.
func FromIP(ip net.IP) (Prefix, error) {
	ip4 := ip.To4()
	if ip4 == nil {
		return Prefix{}, fmt.Errorf("%w %q: not an IPv4 address", ErrInvalidPrefix, ip)
	}
	return Prefix{octets: [3]byte{ip4[0], ip4[1], ip4[2]}, valid: true}, nil
}

// LocalPrefix returns the first private /24 attached to an up interface.
func LocalPrefix() (Prefix, error) {
	networks, err := common.GetLocalNetworks24()
	if err != nil {
		return Prefix{}, fmt.Errorf("failed to get local networks: %w", err)
	}
	if len(networks) == 0 {
		return Prefix{}, ErrNoLocalNetwork
	}
	return FromIP(networks[0].IP)
}

// IsZero reports whether p was never set.
func (p Prefix) IsZero() bool {
	return !p.valid
}

func (p Prefix) String() string {
	if !p.valid {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d", p.octets[0], p.octets[1], p.octets[2])
}

// CIDR returns the prefix as a /24 network in CIDR notation.
func (p Prefix) CIDR() string {
	if !p.valid {
		return ""
	}
	return p.String() + ".0/24"
}

// Network returns the /24 as a *net.IPNet.
func (p Prefix) Network() *net.IPNet {
	if !p.valid {
		return nil
	}
	return &net.IPNet{
		IP:   net.IPv4(p.octets[0], p.octets[1], p.octets[2], 0).To4(),
		Mask: net.CIDRMask(24, 32),
	}
}

// Host returns the address of host octet n within the prefix.
func (p Prefix) Host(n byte) net.IP {
	return net.IPv4(p.octets[0], p.octets[1], p.octets[2], n).To4()
}

func parseOctet(part string) (byte, error) {
	if part == "" || len(part) > 3 {
		return 0, fmt.Errorf("octet %q out of range", part)
	}
	for _, r := range part {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("octet %q is not a decimal number", part)
		}
	}
	n, err := strconv.Atoi(part)
	if err != nil {
		return 0, err
	}
	if n > 255 {
		return 0, fmt.Errorf("octet %q out of range", part)
	}
	return byte(n), nil
}
