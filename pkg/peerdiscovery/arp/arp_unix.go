//go:build !windows

package arp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	osutils "github.com/projectdiscovery/utils/os"
)

// readTable reads the neighbor table from /proc on Linux and from arp(8)
// on macOS
func readTable(ctx context.Context) (Table, error) {
	if osutils.IsLinux() {
		f, err := os.Open("/proc/net/arp")
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = f.Close()
		}()
		return parseProcNetARP(f)
	} else if osutils.IsOSX() {
		output, err := exec.CommandContext(ctx, "arp", "-an").Output()
		if err != nil {
			return nil, fmt.Errorf("failed to execute arp -an: %w", err)
		}
		return parseBSDArp(bytes.NewReader(output))
	}
	return nil, fmt.Errorf("unsupported OS")
}
