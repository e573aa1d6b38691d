// Package probe runs a single reachability check against one host address.
//
// A Prober resolves the address, runs a Checker under its own timeout and
// reports exactly one Outcome:
//
//   - Reachable: the host answered before the deadline
//   - Unreachable: no answer, or the deadline passed
//   - Failed: resolution or the check hit an error other than a timeout
//
// Skipped is never produced by a Prober. It is reserved for callers that
// stop waiting for an outcome (see the pool package).
//
// Two checkers are provided:
//   - ICMPChecker: echo request/reply, privileged raw socket or unprivileged
//     ICMP datagram socket
//   - TCPChecker: connects to a small port list, a refused connection counts
//     as an answer
//
// Example usage:
//
//	checker, err := probe.NewChecker(probe.MethodAuto, probe.CheckerOptions{})
//	prober := probe.NewProber(checker, probe.NewResolver(0, 0), 10*time.Second)
//	outcome := prober.Probe(ctx, "192.168.0.1")
//
// Privilege Requirements:
// - Raw ICMP sockets require root/admin privileges
// - Unprivileged ICMP on Linux requires net.ipv4.ping_group_range to cover the process group
package probe
