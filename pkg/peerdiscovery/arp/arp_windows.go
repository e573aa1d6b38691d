//go:build windows

package arp

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// readTable reads the neighbor table using the arp command
func readTable(ctx context.Context) (Table, error) {
	output, err := exec.CommandContext(ctx, "arp", "-a").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to execute arp -a: %w", err)
	}
	return parseWindowsArp(bytes.NewReader(output))
}
