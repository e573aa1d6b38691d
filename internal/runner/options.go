package runner

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/logrusorgru/aurora/v4"
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/addrspace"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/pool"
	"github.com/projectdiscovery/netsweep/pkg/peerdiscovery/probe"
	envutil "github.com/projectdiscovery/utils/env"
	fileutil "github.com/projectdiscovery/utils/file"
	sliceutil "github.com/projectdiscovery/utils/slice"
)

var au = aurora.New()

// DefaultSubnet is probed when neither a flag nor NETSWEEP_SUBNET is set
const DefaultSubnet = "192.168.0"

// AutoSubnet selects the first private /24 of the local interfaces
const AutoSubnet = "auto"

var (
	SubnetEnv      = envutil.GetEnvOrDefault("NETSWEEP_SUBNET", DefaultSubnet)
	MethodEnv      = envutil.GetEnvOrDefault("NETSWEEP_METHOD", string(probe.MethodAuto))
	TimeoutEnv     = envutil.GetEnvOrDefault("NETSWEEP_TIMEOUT", probe.DefaultTimeout)
	ConcurrencyEnv = envutil.GetEnvOrDefault("NETSWEEP_CONCURRENCY", pool.DefaultSize)
)

// Options contains the configuration options for a discovery run.
type Options struct {
	ConfigFile string

	Subnet string

	Method  string
	Timeout time.Duration
	Ports   goflags.StringSlice

	Concurrency  int
	IdleTimeout  time.Duration
	NoPrioritize bool

	JSON        bool
	MAC         bool
	Watch       time.Duration
	MetricsAddr string

	Verbose bool
	Silent  bool
	NoColor bool
	Version bool

	// populated by Validate
	prefix addrspace.Prefix
	ports  []int
}

// ParseOptions parses the command line flags provided by a user
func ParseOptions() *Options {
	options := &Options{}
	flagSet := goflags.NewFlagSet()

	flagSet.SetDescription(`netsweep finds the reachable hosts of a local /24 subnet`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&options.Subnet, "subnet", "s", SubnetEnv, "subnet prefix to sweep (e.g. 192.168.0, 10.0.0.0/24, auto)"),
	)

	flagSet.CreateGroup("probe", "Probe",
		flagSet.StringVarP(&options.Method, "method", "m", MethodEnv, "reachability method (auto, icmp, tcp)"),
		flagSet.DurationVarP(&options.Timeout, "timeout", "t", TimeoutEnv, "timeout for a single probe"),
		flagSet.StringSliceVarP(&options.Ports, "ports", "p", nil, "ports dialed by the tcp method (comma separated)", goflags.CommaSeparatedStringSliceOptions),
		flagSet.BoolVarP(&options.NoPrioritize, "no-prioritize", "np", false, "submit probes in address order instead of likely hosts first"),
	)

	flagSet.CreateGroup("pool", "Pool",
		flagSet.IntVarP(&options.Concurrency, "concurrency", "c", ConcurrencyEnv, "maximum number of concurrent probes"),
		flagSet.DurationVarP(&options.IdleTimeout, "idle-timeout", "it", pool.DefaultIdleTimeout, "time an idle probe worker is kept"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&options.JSON, "json", "j", false, "write one json document per run"),
		flagSet.BoolVar(&options.MAC, "mac", false, "annotate reachable hosts with mac addresses from the arp table"),
		flagSet.DurationVarP(&options.Watch, "watch", "w", 0, "repeat the sweep at this interval (0 runs once)"),
		flagSet.StringVarP(&options.MetricsAddr, "metrics-addr", "ma", "", "serve prometheus metrics on this address"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&options.ConfigFile, "config", "", "flag configuration file"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVar(&options.Version, "version", false, "show version of the project"),
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "show verbose output"),
		flagSet.BoolVar(&options.Silent, "silent", false, "show only reachable hosts"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "disable output content coloring (ANSI escape codes)"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}

	if options.ConfigFile != "" {
		if !fileutil.FileExists(options.ConfigFile) {
			gologger.Fatal().Msgf("config file %s does not exist\n", options.ConfigFile)
		}
		if err := flagSet.MergeConfigFile(options.ConfigFile); err != nil {
			gologger.Fatal().Msgf("could not read config %s: %s\n", options.ConfigFile, err)
		}
	}

	options.configureOutput()

	showBanner()

	if options.Version {
		gologger.Info().Msgf("Current Version: %s\n", version)
		os.Exit(0)
	}

	if err := options.Validate(); err != nil {
		gologger.Fatal().Msgf("Program exiting: %s\n", err)
	}

	return options
}

// configureOutput configures the output on the screen
func (options *Options) configureOutput() {
	au = aurora.New(aurora.WithColors(!options.NoColor))

	// If the user desires verbose output, show verbose output
	if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if options.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
}

// Validate checks the options and resolves the subnet and port list.
func (options *Options) Validate() error {
	if options.Timeout <= 0 {
		return &ValidationError{Field: "timeout", Message: "must be positive"}
	}
	if options.Concurrency <= 0 {
		return &ValidationError{Field: "concurrency", Message: "must be positive"}
	}
	if options.IdleTimeout <= 0 {
		return &ValidationError{Field: "idle-timeout", Message: "must be positive"}
	}
	if options.Watch < 0 {
		return &ValidationError{Field: "watch", Message: "must not be negative"}
	}

	switch probe.Method(strings.ToLower(options.Method)) {
	case probe.MethodAuto, probe.MethodICMP, probe.MethodTCP:
		options.Method = strings.ToLower(options.Method)
	default:
		return &ValidationError{Field: "method", Message: fmt.Sprintf("unknown method %q", options.Method)}
	}

	ports := make([]int, 0, len(options.Ports))
	for _, value := range options.Ports {
		port, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || port < 1 || port > 65535 {
			return &ValidationError{Field: "ports", Message: fmt.Sprintf("invalid port %q", value)}
		}
		ports = append(ports, port)
	}
	options.ports = sliceutil.Dedupe(ports)

	prefix, err := resolveSubnet(options.Subnet)
	if err != nil {
		return &ValidationError{Field: "subnet", Message: err.Error()}
	}
	options.prefix = prefix

	return nil
}

// Prefix returns the subnet resolved by Validate.
func (options *Options) Prefix() addrspace.Prefix {
	return options.prefix
}

func resolveSubnet(subnet string) (addrspace.Prefix, error) {
	if strings.EqualFold(strings.TrimSpace(subnet), AutoSubnet) {
		return addrspace.LocalPrefix()
	}
	return addrspace.ParsePrefix(subnet)
}

// ValidationError is an invalid option value
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
