package arp

import (
	"net"
	"strings"
	"testing"
)

func TestParseTables(t *testing.T) {
	tests := []struct {
		name  string
		parse func(string) (Table, error)
		input string
		want  map[string]string
	}{
		{
			name: "proc net arp",
			parse: func(s string) (Table, error) {
				return parseProcNetARP(strings.NewReader(s))
			},
			input: `IP address       HW type     Flags       HW address            Mask     Device
192.168.0.1      0x1         0x2         aa:bb:cc:dd:ee:01     *        eth0
192.168.0.23     0x1         0x0         00:00:00:00:00:00     *        eth0
192.168.0.40     0x1         0x2         aa:bb:cc:dd:ee:28     *        eth0
`,
			want: map[string]string{
				"192.168.0.1":  "aa:bb:cc:dd:ee:01",
				"192.168.0.40": "aa:bb:cc:dd:ee:28",
			},
		},
		{
			name: "bsd arp",
			parse: func(s string) (Table, error) {
				return parseBSDArp(strings.NewReader(s))
			},
			input: `? (192.168.0.1) at 0:1a:2b:3c:4d:5e on en0 ifscope [ethernet]
? (192.168.0.7) at (incomplete) on en0 ifscope [ethernet]
? (192.168.0.255) at ff:ff:ff:ff:ff:ff on en0 ifscope [ethernet]
printer.lan (192.168.0.9) at a4:5e:60:01:02:03 on en0 ifscope [ethernet]
`,
			want: map[string]string{
				"192.168.0.1": "00:1a:2b:3c:4d:5e",
				"192.168.0.9": "a4:5e:60:01:02:03",
			},
		},
		{
			name: "windows arp",
			parse: func(s string) (Table, error) {
				return parseWindowsArp(strings.NewReader(s))
			},
			input: `
Interface: 192.168.0.100 --- 0xa
  Internet Address      Physical Address      Type
  192.168.0.1           aa-bb-cc-dd-ee-ff     dynamic
  192.168.0.255         ff-ff-ff-ff-ff-ff     static
  224.0.0.22            01-00-5e-00-00-16     static
`,
			want: map[string]string{
				"192.168.0.1": "aa:bb:cc:dd:ee:ff",
				"224.0.0.22":  "01:00:5e:00:00:16",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := tt.parse(tt.input)
			if err != nil {
				t.Fatalf("parse error = %v", err)
			}
			if len(table) != len(tt.want) {
				t.Errorf("parsed %d entries, want %d: %v", len(table), len(tt.want), table)
			}
			for ip, want := range tt.want {
				mac, ok := table.Lookup(net.ParseIP(ip))
				if !ok {
					t.Errorf("Lookup(%s) missing", ip)
					continue
				}
				if mac.String() != want {
					t.Errorf("Lookup(%s) = %s, want %s", ip, mac, want)
				}
			}
		})
	}
}

func TestParseProcNetARPEmpty(t *testing.T) {
	table, err := parseProcNetARP(strings.NewReader(""))
	if err != nil {
		t.Fatalf("parseProcNetARP() error = %v", err)
	}
	if len(table) != 0 {
		t.Errorf("table = %v, want empty", table)
	}
}
