// Package addrspace builds the candidate host addresses of an IPv4 /24.
//
// A Prefix is the network part of the subnet, the first three octets
// ("192.168.0"). Candidates expands it to the 254 usable hosts, .1 through
// .254, in ascending order:
//
//	prefix, err := addrspace.ParsePrefix("10.0.0")
//	candidates, err := addrspace.Candidates(prefix)
//	// candidates[0] is 10.0.0.1, candidates[253] is 10.0.0.254
//
// The /24 CIDR form ("10.0.0.0/24") is accepted as well. LocalPrefix picks
// the first private /24 attached to the host.
package addrspace
