package runner

import (
	"bytes"
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/addrspace"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/arp"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/pingsweep"
	"github.com/tidwall/gjson"
)

func validOptions() *Options {
	return &Options{
		Subnet:      "10.0.0",
		Method:      "tcp",
		Timeout:     time.Second,
		Concurrency: 256,
		IdleTimeout: time.Second,
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(*Options)
		wantErr    bool
		wantField  string
		wantPrefix string
	}{
		{name: "valid", modify: func(o *Options) {}, wantPrefix: "10.0.0"},
		{name: "cidr subnet", modify: func(o *Options) { o.Subnet = "192.168.7.0/24" }, wantPrefix: "192.168.7"},
		{name: "upper case method", modify: func(o *Options) { o.Method = "ICMP" }, wantPrefix: "10.0.0"},
		{name: "bad subnet", modify: func(o *Options) { o.Subnet = "300.1.1" }, wantErr: true, wantField: "subnet"},
		{name: "wider cidr", modify: func(o *Options) { o.Subnet = "10.0.0.0/16" }, wantErr: true, wantField: "subnet"},
		{name: "zero timeout", modify: func(o *Options) { o.Timeout = 0 }, wantErr: true, wantField: "timeout"},
		{name: "zero concurrency", modify: func(o *Options) { o.Concurrency = 0 }, wantErr: true, wantField: "concurrency"},
		{name: "negative watch", modify: func(o *Options) { o.Watch = -time.Second }, wantErr: true, wantField: "watch"},
		{name: "unknown method", modify: func(o *Options) { o.Method = "arp" }, wantErr: true, wantField: "method"},
		{name: "bad port", modify: func(o *Options) { o.Ports = []string{"80", "http"} }, wantErr: true, wantField: "ports"},
		{name: "port out of range", modify: func(o *Options) { o.Ports = []string{"70000"} }, wantErr: true, wantField: "ports"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := validOptions()
			tt.modify(options)
			err := options.Validate()

			if tt.wantErr {
				if err == nil {
					t.Fatal("Validate() expected error, got nil")
				}
				validationErr, ok := err.(*ValidationError)
				if !ok {
					t.Fatalf("Validate() error = %T, want *ValidationError", err)
				}
				if validationErr.Field != tt.wantField {
					t.Errorf("Validate() field = %s, want %s", validationErr.Field, tt.wantField)
				}
				return
			}

			if err != nil {
				t.Fatalf("Validate() unexpected error = %v", err)
			}
			if options.Prefix().String() != tt.wantPrefix {
				t.Errorf("Prefix() = %s, want %s", options.Prefix(), tt.wantPrefix)
			}
		})
	}
}

func TestValidateParsesPorts(t *testing.T) {
	options := validOptions()
	options.Ports = []string{"22", " 8080", "22"}
	if err := options.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(options.ports) != 2 || options.ports[0] != 22 || options.ports[1] != 8080 {
		t.Errorf("ports = %v, want [22 8080]", options.ports)
	}
}

func testResult() *pingsweep.Result {
	ips := []net.IP{net.ParseIP("10.0.0.5"), net.ParseIP("10.0.0.1")}
	stats := pingsweep.Stats{Submitted: 254, Reachable: 2, Unreachable: 252}
	return pingsweep.NewResult("run-1", addrspace.MustParsePrefix("10.0.0"), ips, stats, 1500*time.Millisecond)
}

func TestWriteResultPlain(t *testing.T) {
	var buf bytes.Buffer
	r := &Runner{options: validOptions(), output: &buf}

	if err := r.writeResult(testResult(), nil); err != nil {
		t.Fatalf("writeResult() error = %v", err)
	}
	if got, want := buf.String(), "10.0.0.1\n10.0.0.5\n# 2 reachable hosts in 10.0.0.0/24, elapsed 1.5s\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriteResultJSON(t *testing.T) {
	var buf bytes.Buffer
	options := validOptions()
	options.JSON = true
	r := &Runner{options: options, output: &buf}

	if err := r.writeResult(testResult(), nil); err != nil {
		t.Fatalf("writeResult() error = %v", err)
	}

	out := buf.String()
	if !gjson.Valid(out) {
		t.Fatalf("output is not valid json: %s", out)
	}

	tests := []struct {
		path string
		want string
	}{
		{path: "run_id", want: "run-1"},
		{path: "subnet", want: "10.0.0.0/24"},
		{path: "elapsed", want: "1.5s"},
		{path: "reachable.0", want: "10.0.0.1"},
		{path: "reachable.1", want: "10.0.0.5"},
		{path: "reachable.#", want: "2"},
		{path: "stats.submitted", want: "254"},
		{path: "stats.unreachable", want: "252"},
		{path: "stats.skipped", want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := gjson.Get(out, tt.path).String(); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
	if !gjson.Get(out, "timestamp").Exists() {
		t.Error("timestamp missing")
	}
}

func TestWriteResultWithMAC(t *testing.T) {
	mac, _ := net.ParseMAC("aa:bb:cc:dd:ee:01")
	neighbors := arp.Table{"10.0.0.1": mac}

	var buf bytes.Buffer
	r := &Runner{options: validOptions(), output: &buf}
	if err := r.writeResult(testResult(), neighbors); err != nil {
		t.Fatalf("writeResult() error = %v", err)
	}
	if got, want := buf.String(), "10.0.0.1 aa:bb:cc:dd:ee:01\n10.0.0.5\n# 2 reachable hosts in 10.0.0.0/24, elapsed 1.5s\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	buf.Reset()
	r.options.JSON = true
	if err := r.writeResult(testResult(), neighbors); err != nil {
		t.Fatalf("writeResult() error = %v", err)
	}
	out := buf.String()
	if got := gjson.Get(out, `mac.10\.0\.0\.1`).String(); got != "aa:bb:cc:dd:ee:01" {
		t.Errorf("mac[10.0.0.1] = %q, want aa:bb:cc:dd:ee:01", got)
	}
	if gjson.Get(out, `mac.10\.0\.0\.5`).Exists() {
		t.Error("mac for 10.0.0.5 should be absent")
	}
}

func TestWriteResultJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	options := validOptions()
	options.JSON = true
	r := &Runner{options: options, output: &buf}

	result := pingsweep.NewResult("run-2", addrspace.MustParsePrefix("10.0.0"), nil, pingsweep.Stats{}, 0)
	if err := r.writeResult(result, nil); err != nil {
		t.Fatalf("writeResult() error = %v", err)
	}
	if reachable := gjson.Get(buf.String(), "reachable"); !reachable.IsArray() || len(reachable.Array()) != 0 {
		t.Errorf("reachable = %s, want empty array", reachable.Raw)
	}
}

func TestRunLoopback(t *testing.T) {
	l, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer l.Close()
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	options := validOptions()
	options.Subnet = "127.0.0"
	options.Ports = []string{strconv.Itoa(l.Addr().(*net.TCPAddr).Port)}
	options.JSON = true
	options.MetricsAddr = "127.0.0.1:0"
	if err := options.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	r, err := NewRunner(options)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	defer r.Close()

	var buf bytes.Buffer
	r.output = &buf
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := strings.TrimSpace(buf.String())
	var found bool
	for _, ip := range gjson.Get(out, "reachable").Array() {
		if ip.String() == "127.0.0.1" {
			found = true
		}
	}
	if !found {
		t.Errorf("127.0.0.1 missing from %s", out)
	}
	if got := gjson.Get(out, "stats.submitted").Int(); got != addrspace.HostCount {
		t.Errorf("stats.submitted = %d, want %d", got, addrspace.HostCount)
	}
}
