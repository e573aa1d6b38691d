// Package prescan orders /24 candidates so that the hosts most likely to be
// online are probed first. Most live hosts on a small LAN sit on a handful of
// well known octets (routers, gateways, early DHCP allocations).
//
// Priority tiers (0-100):
//   - 100: .1, .254 (routers/gateways)
//   - 90:  .2-.5, .250-.253 (reserved infrastructure)
//   - 80:  .6-.10 (early DHCP)
//   - 70:  .50, .100, .150 (DHCP peaks)
//   - 50:  .51-.99, .101-.149, .151-.200 (main DHCP pool)
//   - 20:  .11-.49, .201-.249 (long-tail)
//   - 0:   .0, .255 (network/broadcast)
//
// Ordering never adds or drops candidates. It matters when the probe pool
// is smaller than the subnet: the first wave then covers the likely hosts.
//
//	ordered := prescan.Order(candidates, prefix.Network())
package prescan
