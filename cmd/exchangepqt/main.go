package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/michelderooij/exchangepqt/internal/config"
	"github.com/michelderooij/exchangepqt/internal/export"
	"github.com/michelderooij/exchangepqt/internal/pipeline"
	"github.com/michelderooij/exchangepqt/internal/sizing"
)

type opts struct {
	configPath string
	watch      bool
	verbose    bool

	// query filters
	cpu    string
	vendor string
	system string

	// sizing requirement
	spec          string
	cores         int
	minCores      int
	maxCores      int
	chips         int
	minChips      int
	maxChips      int
	minMegaCycles int
	overhead      int
	vcpuRatio     float64
	vcpus         int

	// output
	csvPath   string
	allFields bool
	timeout   time.Duration
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "exchangepqt",
		Short: "Match published SPEC CPU results against an Exchange sizing requirement",
		Long: `exchangepqt queries the published SPEC CPU integer rate results, converts
each system's score into Exchange megacycle capacity and lists the systems
that satisfy a workload sizing requirement (minimum total megacycles,
core/chip bounds, virtualization ratio).

Requirements can be given as flags or as a YAML requirements file; with
--watch the file is re-evaluated whenever it changes.

Examples:
  exchangepqt --vendor Dell --min-megacycles 150000 --overhead 10
  exchangepqt --cpu "EPYC 9334" --cores 32 --vcpus 8 --vcpu-ratio 2
  exchangepqt --config requirements.yaml --watch --csv matches.csv`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd, o)
		},
	}

	root.Flags().StringVar(&o.configPath, "config", "", "path to a YAML requirements file")
	root.Flags().BoolVar(&o.watch, "watch", false, "re-run the query when the requirements file changes (requires --config)")
	root.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")

	root.Flags().StringVar(&o.cpu, "cpu", "", "processor name substring filter")
	root.Flags().StringVar(&o.vendor, "vendor", "", "hardware vendor substring filter")
	root.Flags().StringVar(&o.system, "system", "", "system name substring filter")

	root.Flags().StringVar(&o.spec, "spec", config.SpecCPU2017, "benchmark era: cpu2006 | cpu2017")
	root.Flags().IntVar(&o.cores, "cores", 0, "exact physical core count (excludes --min-cores/--max-cores)")
	root.Flags().IntVar(&o.minCores, "min-cores", 0, "minimum core count")
	root.Flags().IntVar(&o.maxCores, "max-cores", 0, "maximum core count (0 = unbounded)")
	root.Flags().IntVar(&o.chips, "chips", 0, "exact processor package count (excludes --min-chips/--max-chips)")
	root.Flags().IntVar(&o.minChips, "min-chips", 0, "minimum chip count")
	root.Flags().IntVar(&o.maxChips, "max-chips", 0, "maximum chip count (0 = unbounded)")
	root.Flags().IntVar(&o.minMegaCycles, "min-megacycles", 0, "required total megacycle capacity")
	root.Flags().IntVar(&o.overhead, "overhead", 0, "overhead buffer percentage on the megacycle requirement [0-100]")
	root.Flags().Float64Var(&o.vcpuRatio, "vcpu-ratio", config.DefaultVCPURatio, "vCPU:pCPU oversubscription ratio [1-2]")
	root.Flags().IntVar(&o.vcpus, "vcpus", 0, "size for this vCPU allocation [1-100] (requires --cores)")

	root.Flags().StringVar(&o.csvPath, "csv", "", "write matches to this CSV file instead of stdout")
	root.Flags().BoolVar(&o.allFields, "all-fields", false, "show every column instead of the default set")
	root.Flags().DurationVar(&o.timeout, "timeout", 0, "fetch timeout (default 60s)")

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cobra.Command, o opts) error {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if o.watch && o.configPath == "" {
		return fmt.Errorf("--watch requires --config")
	}

	cfg, err := buildConfig(cmd, o)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := runOnce(ctx, cfg, o); err != nil {
		return err
	}
	if !o.watch {
		return nil
	}

	// Watch mode: every change to the requirements file re-runs the whole
	// pipeline against the remote dataset. Reload failures keep the
	// previous requirements; query failures are logged and waited out.
	err = config.Watch(ctx, o.configPath, func(updated *config.Config) {
		if err := runOnce(ctx, updated, o); err != nil {
			slog.Error("query failed", "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("watch requirements: %w", err)
	}
	return nil
}

// buildConfig assembles the requirement from the YAML file (when given)
// with explicitly set flags layered on top.
func buildConfig(cmd *cobra.Command, o opts) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	set := cmd.Flags().Changed
	if set("cpu") {
		cfg.Query.CPU = o.cpu
	}
	if set("vendor") {
		cfg.Query.Vendor = o.vendor
	}
	if set("system") {
		cfg.Query.System = o.system
	}
	if set("spec") {
		cfg.Sizing.Spec = o.spec
	}
	if set("cores") {
		cfg.Sizing.Cores = o.cores
	}
	if set("min-cores") {
		cfg.Sizing.MinCores = o.minCores
	}
	if set("max-cores") {
		cfg.Sizing.MaxCores = o.maxCores
	}
	if set("chips") {
		cfg.Sizing.Chips = o.chips
	}
	if set("min-chips") {
		cfg.Sizing.MinChips = o.minChips
	}
	if set("max-chips") {
		cfg.Sizing.MaxChips = o.maxChips
	}
	if set("min-megacycles") {
		cfg.Sizing.MinMegaCycles = o.minMegaCycles
	}
	if set("overhead") {
		cfg.Sizing.Overhead = o.overhead
	}
	if set("vcpu-ratio") {
		cfg.Sizing.VCPURatio = o.vcpuRatio
	}
	if set("vcpus") {
		cfg.Sizing.VCPUs = o.vcpus
	}
	return cfg, nil
}

// runOnce executes one full query pipeline and renders the matches.
func runOnce(ctx context.Context, cfg *config.Config, o opts) error {
	results, err := pipeline.Run(ctx, cfg, pipeline.WithTimeout(o.timeout))
	if err != nil {
		return err
	}
	defer results.Close()

	fields := sizing.DefaultFields
	if o.allFields {
		fields = sizing.AllFields
	}

	var out io.Writer = os.Stdout
	if o.csvPath != "" {
		f, err := os.Create(o.csvPath)
		if err != nil {
			return fmt.Errorf("create csv file: %w", err)
		}
		defer f.Close()
		out = f
	}

	var n int
	if o.csvPath != "" {
		n, err = export.WriteCSV(out, fields, results)
	} else {
		n, err = export.WriteTable(out, fields, results)
	}
	if err != nil {
		return err
	}
	if err := results.Err(); err != nil {
		return err
	}

	slog.Info("matches rendered", "run_id", results.RunID(), "matches", n)
	return nil
}
