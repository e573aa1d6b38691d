package prescan

// Priority tiers based on real-world network patterns
const (
	PriorityGateway   = 100 // .1, .254
	PriorityReserved  = 90  // .2-.5, .250-.253
	PriorityEarlyDHCP = 80  // .6-.10
	PriorityDHCPPeak  = 70  // .50, .100, .150
	PriorityDHCPPool  = 50  // .51-.99, .101-.149, .151-.200
	PriorityLongTail  = 20  // .11-.49, .201-.249
	PriorityExcluded  = 0   // .0, .255
)

// hostRange maps an inclusive range of host octets to a priority tier
type hostRange struct {
	first, last int
	priority    int
}

// First match wins.
var hostRanges = []hostRange{
	{first: 1, last: 1, priority: PriorityGateway},
	{first: 254, last: 254, priority: PriorityGateway},
	{first: 2, last: 5, priority: PriorityReserved},
	{first: 250, last: 253, priority: PriorityReserved},
	{first: 6, last: 10, priority: PriorityEarlyDHCP},
	{first: 50, last: 50, priority: PriorityDHCPPeak},
	{first: 100, last: 100, priority: PriorityDHCPPeak},
	{first: 150, last: 150, priority: PriorityDHCPPeak},
	{first: 51, last: 99, priority: PriorityDHCPPool},
	{first: 101, last: 149, priority: PriorityDHCPPool},
	{first: 151, last: 200, priority: PriorityDHCPPool},
	{first: 11, last: 49, priority: PriorityLongTail},
	{first: 201, last: 249, priority: PriorityLongTail},
	{first: 0, last: 0, priority: PriorityExcluded},
	{first: 255, last: 255, priority: PriorityExcluded},
}

// hostPriority is hostRanges flattened into a per-octet table
var hostPriority = func() (table [256]int) {
	for host := range table {
		table[host] = PriorityLongTail
		for _, r := range hostRanges {
			if host >= r.first && host <= r.last {
				table[host] = r.priority
				break
			}
		}
	}
	return table
}()
