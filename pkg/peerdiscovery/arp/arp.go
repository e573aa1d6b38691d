package arp

import (
	"bufio"
	"context"
	"io"
	"net"
	"strings"
)

// Table maps IPv4 addresses to the hardware address the OS resolved for them
type Table map[string]net.HardwareAddr

// ReadTable returns the neighbor table of this host.
func ReadTable(ctx context.Context) (Table, error) {
	return readTable(ctx)
}

// Lookup returns the hardware address of ip.
func (t Table) Lookup(ip net.IP) (net.HardwareAddr, bool) {
	mac, ok := t[ip.String()]
	return mac, ok
}

// add stores a resolved entry, ignoring incomplete and broadcast ones
func (t Table) add(ipStr, macStr string) {
	ip := net.ParseIP(ipStr)
	if ip == nil || ip.To4() == nil {
		return
	}

	mac, err := net.ParseMAC(normalizeMAC(macStr))
	if err != nil || isUnresolved(mac) {
		return
	}
	t[ip.String()] = mac
}

// parseProcNetARP parses the /proc/net/arp format:
// IP address HW type Flags HW address Mask Device
func parseProcNetARP(r io.Reader) (Table, error) {
	table := make(Table)
	scanner := bufio.NewScanner(r)

	// Skip header line
	if !scanner.Scan() {
		return table, scanner.Err()
	}

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 6 {
			continue
		}
		table.add(fields[0], fields[3])
	}
	return table, scanner.Err()
}

// parseBSDArp parses `arp -an` output of macOS and the BSDs:
// ? (192.168.1.1) at aa:bb:cc:dd:ee:ff on en0 ifscope [ethernet]
func parseBSDArp(r io.Reader) (Table, error) {
	table := make(Table)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()

		ipStart := strings.Index(line, "(")
		ipEnd := strings.Index(line, ")")
		if ipStart == -1 || ipEnd == -1 || ipStart >= ipEnd {
			continue
		}

		_, rest, found := strings.Cut(line[ipEnd:], " at ")
		if !found {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		table.add(line[ipStart+1:ipEnd], fields[0])
	}
	return table, scanner.Err()
}

// parseWindowsArp parses `arp -a` output of Windows, one section per
// interface:
//
//	Interface: 192.168.1.100 --- 0xa
//	  Internet Address      Physical Address      Type
//	  192.168.1.1           aa-bb-cc-dd-ee-ff     dynamic
func parseWindowsArp(r io.Reader) (Table, error) {
	table := make(Table)
	scanner := bufio.NewScanner(r)

	inTable := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "Interface:"):
			inTable = false
			continue
		case strings.Contains(line, "Internet Address") && strings.Contains(line, "Physical Address"):
			inTable = true
			continue
		case !inTable:
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		table.add(fields[0], fields[1])
	}
	return table, scanner.Err()
}

// normalizeMAC turns Windows dashes into colons and pads the single digit
// octets macOS prints
func normalizeMAC(mac string) string {
	octets := strings.Split(strings.ReplaceAll(mac, "-", ":"), ":")
	for i, octet := range octets {
		if len(octet) == 1 {
			octets[i] = "0" + octet
		}
	}
	return strings.Join(octets, ":")
}

func isUnresolved(mac net.HardwareAddr) bool {
	zero, broadcast := true, true
	for _, b := range mac {
		if b != 0x00 {
			zero = false
		}
		if b != 0xff {
			broadcast = false
		}
	}
	return zero || broadcast
}
