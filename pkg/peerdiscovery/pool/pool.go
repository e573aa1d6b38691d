package pool

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/probe"
)

// Pool defaults
const (
	DefaultSize        = 256
	DefaultIdleTimeout = 10 * time.Second
)

// ErrPoolClosed is returned when submitting to a released pool
var ErrPoolClosed = errors.New("probe pool is closed")

// Options configures a Pool
type Options struct {
	// Size is the worker ceiling
	Size int
	// IdleTimeout is how long a worker may wait for work before it exits
	IdleTimeout time.Duration
	// SocketsPerTask is how many descriptors one task holds open at once,
	// 1 when unset
	SocketsPerTask int
}

// Pool is a bounded worker pool for probe tasks. It is safe for concurrent
// use and meant to be reused across discoveries.
type Pool struct {
	pool    *ants.Pool
	options Options
}

// New creates a pool. Zero values in options select the defaults and the
// ceiling is lowered when the open-file limit cannot hold that many sockets.
func New(options Options) (*Pool, error) {
	if options.Size <= 0 {
		options.Size = DefaultSize
	}
	if options.IdleTimeout <= 0 {
		options.IdleTimeout = DefaultIdleTimeout
	}
	if options.SocketsPerTask <= 0 {
		options.SocketsPerTask = 1
	}
	options.Size = clampToDescriptorLimit(options.Size, options.SocketsPerTask)

	p, err := ants.NewPool(options.Size,
		ants.WithExpiryDuration(options.IdleTimeout),
		ants.WithNonblocking(false),
		ants.WithPreAlloc(false),
		ants.WithLogger(antsLogger{}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create probe pool: %w", err)
	}

	return &Pool{pool: p, options: options}, nil
}

// Submit schedules task for address. It blocks while every worker is busy
// and the ceiling is reached.
func (p *Pool) Submit(address string, task func() probe.Outcome) (*Handle, error) {
	h := &Handle{
		address: address,
		done:    make(chan struct{}),
	}

	if err := p.pool.Submit(func() { h.run(task) }); err != nil {
		if errors.Is(err, ants.ErrPoolClosed) {
			return nil, ErrPoolClosed
		}
		return nil, fmt.Errorf("failed to submit probe for %s: %w", address, err)
	}
	return h, nil
}

// Running returns the number of live workers, idle ones included.
func (p *Pool) Running() int {
	return p.pool.Running()
}

// Cap returns the worker ceiling.
func (p *Pool) Cap() int {
	return p.pool.Cap()
}

// IdleTimeout returns how long idle workers are kept.
func (p *Pool) IdleTimeout() time.Duration {
	return p.options.IdleTimeout
}

// Release stops the pool. Workers get up to the idle timeout to finish
// their tasks. Releasing twice is a no-op.
func (p *Pool) Release() error {
	if p.pool.IsClosed() {
		return nil
	}
	err := p.pool.ReleaseTimeout(p.options.IdleTimeout)
	if err != nil && !errors.Is(err, ants.ErrPoolClosed) {
		return fmt.Errorf("failed to release probe pool: %w", err)
	}
	return nil
}

// Handle is the pending outcome of one submitted task
type Handle struct {
	address string
	done    chan struct{}
	outcome probe.Outcome
}

func (h *Handle) run(task func() probe.Outcome) {
	defer close(h.done)
	defer func() {
		if r := recover(); r != nil {
			h.outcome = probe.Outcome{
				Address: h.address,
				Kind:    probe.Failed,
				Err:     &probe.PanicError{Value: r, Stack: debug.Stack()},
			}
		}
	}()

	h.outcome = task()
	if h.outcome.Address == "" {
		h.outcome.Address = h.address
	}
}

// Address returns the address the task probes.
func (h *Handle) Address() string {
	return h.address
}

// Done is closed once the outcome is available.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the task finished or ctx ended. When ctx ends first the
// outcome is Skipped with ctx's error and the task keeps running. A finished
// outcome is always preferred over an ended ctx.
func (h *Handle) Wait(ctx context.Context) probe.Outcome {
	select {
	case <-h.done:
		return h.outcome
	default:
	}

	select {
	case <-h.done:
		return h.outcome
	case <-ctx.Done():
		return probe.Outcome{
			Address: h.address,
			Kind:    probe.Skipped,
			Err:     ctx.Err(),
		}
	}
}

// antsLogger routes the pool's internal messages to gologger
type antsLogger struct{}

func (antsLogger) Printf(format string, args ...any) {
	gologger.Debug().Msgf(format, args...)
}
