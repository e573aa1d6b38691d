// Package arp reads the neighbor (ARP) table of the local host.
//
// Hosts that answered a probe are normally present in the table right after
// a sweep, which lets reachable addresses be annotated with the hardware
// address the OS resolved for them.
package arp
