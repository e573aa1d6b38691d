// Package pingsweep discovers the reachable hosts of an IPv4 /24 subnet.
//
// A Discoverer expands the subnet into its 254 host addresses, submits one
// probe per address to a shared pool and only then awaits the outcomes, so
// that every probe is in flight at the same time and a full sweep takes
// about one probe timeout.
//
// Example usage:
//
//	p, _ := pool.New(pool.Options{})
//	defer p.Release()
//
//	checker, _ := probe.NewChecker(probe.MethodAuto, probe.CheckerOptions{})
//	d := pingsweep.New(p, addrspace.MustParsePrefix("192.168.0"), checker)
//	result, err := d.Discover(ctx)
//
// Outcomes are handled as follows:
//   - Reachable hosts are collected into the Result
//   - Unreachable hosts are dropped
//   - Waits interrupted by ctx are dropped and counted as skipped
//   - A network failure fails the discovery with ErrIO once all probes were awaited
//   - Any other failure aborts the discovery with ErrProbeFault
//
// Privilege Requirements:
// - Raw ICMP sockets require root/admin privileges on most systems
// - Unprivileged ICMP or the TCP checker can be used otherwise
package pingsweep
