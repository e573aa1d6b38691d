package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/netsweep/pkg/metrics"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/arp"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/pingsweep"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/pool"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/probe"
	errorutil "github.com/projectdiscovery/utils/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Runner contains the internal logic of the program
type Runner struct {
	options       *Options
	pool          *pool.Pool
	discoverer    *pingsweep.Discoverer
	metricsServer *metrics.Server
	output        io.Writer
	closeOnce     sync.Once
}

// NewRunner builds the probe pool, the checker and the discoverer from
// validated options.
func NewRunner(options *Options) (*Runner, error) {
	r := &Runner{options: options, output: os.Stdout}

	checker, err := probe.NewChecker(probe.Method(options.Method), probe.CheckerOptions{Ports: options.ports})
	if err != nil {
		return nil, errorutil.NewWithErr(err).Msgf("could not create %s checker", options.Method)
	}

	p, err := pool.New(pool.Options{
		Size:           options.Concurrency,
		IdleTimeout:    options.IdleTimeout,
		SocketsPerTask: probe.SocketsPerCheck(checker),
	})
	if err != nil {
		return nil, errorutil.NewWithErr(err).Msgf("could not create probe pool")
	}
	r.pool = p
	if p.Cap() < options.Concurrency {
		gologger.Warning().Msgf("open file limit lowers concurrency from %d to %d", options.Concurrency, p.Cap())
	}
	gologger.Verbose().Msgf("using %s probes", checker.Name())

	discoverOptions := []pingsweep.Option{
		pingsweep.WithTimeout(options.Timeout),
		pingsweep.WithPrioritization(!options.NoPrioritize),
	}

	if options.MetricsAddr != "" {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m, err := metrics.New(registry)
		if err != nil {
			r.Close()
			return nil, errorutil.NewWithErr(err).Msgf("could not create metrics")
		}
		server, err := metrics.Listen(options.MetricsAddr, registry)
		if err != nil {
			r.Close()
			return nil, errorutil.NewWithErr(err).Msgf("could not listen on %s", options.MetricsAddr)
		}
		r.metricsServer = server
		gologger.Info().Msgf("Serving metrics on http://%s/metrics", server.Addr())
		discoverOptions = append(discoverOptions, pingsweep.WithMetrics(m))
	}

	r.discoverer = pingsweep.New(p, options.Prefix(), checker, discoverOptions...)
	return r, nil
}

// Run sweeps the subnet once, or every watch interval until ctx ends.
// While watching, network failures are reported and the next sweep still
// runs; any other failure stops the runner.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.runOnce(ctx); err != nil {
		return r.sweepError(err)
	}
	if r.options.Watch <= 0 {
		return nil
	}

	ticker := time.NewTicker(r.options.Watch)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := r.runOnce(ctx)
			switch {
			case err == nil:
			case ctx.Err() != nil:
				return nil
			case errors.Is(err, pingsweep.ErrIO):
				gologger.Error().Msgf("%s", r.sweepError(err))
			default:
				return r.sweepError(err)
			}
		}
	}
}

func (r *Runner) runOnce(ctx context.Context) error {
	gologger.Info().Msgf("Sweeping %s", r.discoverer.Prefix().CIDR())

	result, err := r.discoverer.Discover(ctx)
	if err != nil {
		return err
	}

	var neighbors arp.Table
	if r.options.MAC {
		neighbors, err = arp.ReadTable(ctx)
		if err != nil {
			gologger.Warning().Msgf("could not read arp table: %s", err)
		}
	}
	return r.writeResult(result, neighbors)
}

func (r *Runner) sweepError(err error) error {
	return errorutil.NewWithErr(err).Msgf("could not sweep %s", r.discoverer.Prefix().CIDR())
}

// Close releases the probe pool and stops the metrics server.
func (r *Runner) Close() {
	r.closeOnce.Do(r.close)
}

func (r *Runner) close() {
	if r.pool != nil {
		if err := r.pool.Release(); err != nil {
			gologger.Warning().Msgf("%s", err)
		}
	}
	if r.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.metricsServer.Shutdown(ctx); err != nil {
			gologger.Warning().Msgf("could not stop metrics server: %s", err)
		}
	}
}
