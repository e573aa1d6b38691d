package probe

import (
	"context"
	"time"
)

// DefaultTimeout bounds a single probe
const DefaultTimeout = 10 * time.Second

// Prober runs the per-address task: resolve, then check under a timeout
type Prober struct {
	resolver *Resolver
	checker  Checker
	timeout  time.Duration
}

// NewProber creates a prober. A nil resolver gets a default one, a
// non-positive timeout selects DefaultTimeout.
func NewProber(checker Checker, resolver *Resolver, timeout time.Duration) *Prober {
	if resolver == nil {
		resolver = NewResolver(0, 0)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{
		resolver: resolver,
		checker:  checker,
		timeout:  timeout,
	}
}

// Timeout returns the per-probe deadline.
func (p *Prober) Timeout() time.Duration {
	return p.timeout
}

// Probe checks address and returns its outcome. The probe runs to its own
// deadline even when ctx is cancelled; only ctx values are inherited.
func (p *Prober) Probe(ctx context.Context, address string) Outcome {
	start := time.Now()
	outcome := Outcome{Address: address}

	probeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	ip, err := p.resolver.Resolve(probeCtx, address)
	if err != nil {
		outcome.Kind = Failed
		outcome.Err = err
		outcome.Elapsed = time.Since(start)
		return outcome
	}
	outcome.IP = ip

	ok, err := p.checker.Check(probeCtx, ip)
	outcome.Elapsed = time.Since(start)
	switch {
	case err != nil && isTimeout(err):
		outcome.Kind = Unreachable
	case err != nil:
		outcome.Kind = Failed
		outcome.Err = err
	case ok:
		outcome.Kind = Reachable
	default:
		outcome.Kind = Unreachable
	}
	return outcome
}
