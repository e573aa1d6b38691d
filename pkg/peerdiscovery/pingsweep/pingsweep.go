package pingsweep

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/netsweep/pkg/metrics"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/addrspace"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/pool"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/prescan"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/probe"
	mapsutil "github.com/projectdiscovery/utils/maps"
	"github.com/rs/xid"
)

// Observer is called once for every awaited outcome
type Observer func(probe.Outcome)

// Option configures a Discoverer
type Option func(*Discoverer)

// WithTimeout sets the per-probe timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Discoverer) {
		d.timeout = timeout
	}
}

// WithResolver replaces the default resolver.
func WithResolver(resolver *probe.Resolver) Option {
	return func(d *Discoverer) {
		d.resolver = resolver
	}
}

// WithMetrics records outcomes and discoveries on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Discoverer) {
		d.metrics = m
	}
}

// WithPrioritization toggles probing likely hosts (gateways, DHCP pools)
// first. Enabled by default.
func WithPrioritization(enabled bool) Option {
	return func(d *Discoverer) {
		d.prioritize = enabled
	}
}

// WithObserver registers fn to see every awaited outcome.
func WithObserver(fn Observer) Option {
	return func(d *Discoverer) {
		d.observer = fn
	}
}

// Discoverer finds the reachable hosts of a /24 subnet
type Discoverer struct {
	pool       *pool.Pool
	prefix     addrspace.Prefix
	checker    probe.Checker
	resolver   *probe.Resolver
	timeout    time.Duration
	metrics    *metrics.Metrics
	prioritize bool
	observer   Observer
}

// New creates a discoverer probing prefix with checker on the workers of p.
// The pool is borrowed: the caller releases it.
func New(p *pool.Pool, prefix addrspace.Prefix, checker probe.Checker, opts ...Option) *Discoverer {
	d := &Discoverer{
		pool:       p,
		prefix:     prefix,
		checker:    checker,
		timeout:    probe.DefaultTimeout,
		prioritize: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.resolver == nil {
		d.resolver = probe.NewResolver(0, 0)
	}
	return d
}

// Prefix returns the configured subnet.
func (d *Discoverer) Prefix() addrspace.Prefix {
	return d.prefix
}

// Discover probes the configured subnet.
func (d *Discoverer) Discover(ctx context.Context) (*Result, error) {
	return d.DiscoverSubnet(ctx, d.prefix)
}

// DiscoverSubnet probes every host of prefix and returns the reachable ones.
//
// All probes are submitted before any is awaited. Ending ctx stops the
// waiting, not the probes: the remaining outcomes are counted as skipped.
// A probe failing with a network error makes the whole discovery fail with
// an error matching ErrIO after every outcome was awaited. Any other probe
// failure returns an error matching ErrProbeFault right away.
//
// Once ctx has ended every outcome not yet available is skipped, not only
// the wait that observed the cancellation, so the result holds the hosts
// found up to that point.
func (d *Discoverer) DiscoverSubnet(ctx context.Context, prefix addrspace.Prefix) (*Result, error) {
	start := time.Now()
	runID := xid.New().String()

	candidates, err := addrspace.Candidates(prefix)
	if err != nil {
		return nil, err
	}
	if d.prioritize {
		candidates = prescan.Order(candidates, prefix.Network())
	}

	gologger.Verbose().Msgf("[%s] probing %d hosts of %s with %s (timeout %s)", runID, len(candidates), prefix.CIDR(), d.checker.Name(), d.timeout)

	prober := probe.NewProber(d.checker, d.resolver, d.timeout)
	handles := make([]*pool.Handle, 0, len(candidates))
	for _, candidate := range candidates {
		address := candidate.String()
		h, err := d.pool.Submit(address, func() probe.Outcome {
			outcome := prober.Probe(ctx, address)
			logOutcome(runID, outcome)
			return outcome
		})
		if err != nil {
			return nil, fmt.Errorf("failed to submit probe for %s: %w", address, err)
		}
		handles = append(handles, h)
	}

	reachable := mapsutil.NewSyncLockMap[string, net.IP]()
	stats := Stats{Submitted: len(handles)}
	var ioErr error

	for _, h := range handles {
		outcome := h.Wait(ctx)
		d.metrics.ObserveOutcome(outcome.Kind.String())
		if d.observer != nil {
			d.observer(outcome)
		}

		switch outcome.Kind {
		case probe.Reachable:
			stats.Reachable++
			_ = reachable.Set(outcome.IP.String(), outcome.IP)
		case probe.Unreachable:
			stats.Unreachable++
		case probe.Skipped:
			stats.Skipped++
			gologger.Verbose().Msgf("[%s] %s: skipped (%s)", runID, outcome.Address, outcome.Err)
		case probe.Failed:
			stats.Failed++
			probeErr := &ProbeError{Address: outcome.Address, Err: outcome.Err}
			if !probe.IsIOError(outcome.Err) {
				return nil, probeErr
			}
			if ioErr == nil {
				ioErr = probeErr
			}
		}
	}

	if stats.Skipped > 0 {
		gologger.Warning().Msgf("[%s] stopped waiting for %d of %d probes of %s", runID, stats.Skipped, stats.Submitted, prefix.CIDR())
	}

	elapsed := time.Since(start)
	d.metrics.ObserveDiscovery(elapsed, stats.Reachable)
	if ioErr != nil {
		return nil, ioErr
	}

	addresses := make([]net.IP, 0, stats.Reachable)
	_ = reachable.Iterate(func(_ string, ip net.IP) error {
		addresses = append(addresses, ip)
		return nil
	})

	return NewResult(runID, prefix, addresses, stats, elapsed), nil
}

func logOutcome(runID string, outcome probe.Outcome) {
	if outcome.Err != nil {
		gologger.Verbose().Msgf("[%s] %s: %s after %s: %s", runID, outcome.Address, outcome.Kind, outcome.Elapsed.Round(time.Millisecond), outcome.Err)
		return
	}
	gologger.Verbose().Msgf("[%s] %s: %s after %s", runID, outcome.Address, outcome.Kind, outcome.Elapsed.Round(time.Millisecond))
}
