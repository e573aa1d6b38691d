package runner

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/arp"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/pingsweep"
)

// jsonResult is the document written per run with -json
type jsonResult struct {
	RunID     string            `json:"run_id"`
	Subnet    string            `json:"subnet"`
	Timestamp time.Time         `json:"timestamp"`
	Elapsed   string            `json:"elapsed"`
	Reachable []string          `json:"reachable"`
	MAC       map[string]string `json:"mac,omitempty"`
	Stats     pingsweep.Stats   `json:"stats"`
}

func newJSONResult(result *pingsweep.Result, neighbors arp.Table) jsonResult {
	addresses := result.Addresses()
	reachable := make([]string, 0, len(addresses))
	var macs map[string]string
	for _, ip := range addresses {
		reachable = append(reachable, ip.String())
		if mac, ok := neighbors.Lookup(ip); ok {
			if macs == nil {
				macs = make(map[string]string)
			}
			macs[ip.String()] = mac.String()
		}
	}
	return jsonResult{
		RunID:     result.RunID,
		Subnet:    result.Prefix.CIDR(),
		Timestamp: time.Now().UTC(),
		Elapsed:   result.Elapsed.Round(time.Millisecond).String(),
		Reachable: reachable,
		MAC:       macs,
		Stats:     result.Stats,
	}
}

// writeResult prints reachable hosts one per line followed by a summary
// line, or a single json document. Hosts found in neighbors are printed
// with their mac address.
func (r *Runner) writeResult(result *pingsweep.Result, neighbors arp.Table) error {
	if r.options.JSON {
		data, err := json.Marshal(newJSONResult(result, neighbors))
		if err != nil {
			return fmt.Errorf("could not marshal result: %w", err)
		}
		if _, err := fmt.Fprintln(r.output, string(data)); err != nil {
			return err
		}
	} else {
		for _, ip := range result.Addresses() {
			line := ip.String()
			if mac, ok := neighbors.Lookup(ip); ok {
				line += " " + mac.String()
			}
			if _, err := fmt.Fprintln(r.output, line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(r.output, summary(result)); err != nil {
			return err
		}
	}

	if result.Stats.Skipped > 0 {
		gologger.Info().Msgf("%v probes were still running when the sweep stopped", au.Yellow(result.Stats.Skipped))
	}
	return nil
}

// summary is the last line of plain output
func summary(result *pingsweep.Result) string {
	return fmt.Sprintf("# %d reachable hosts in %s, elapsed %s", result.Len(), result.Prefix.CIDR(), result.Elapsed.Round(time.Millisecond))
}
