package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dklassen/beanmorph"
	"github.com/dklassen/beanmorph/internal/bench"
	"github.com/dklassen/beanmorph/internal/config"
)

var (
	benchConfigFile string
	benchStrategies []string
	benchFormat     string
	benchInProcess  bool

	benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Measure the average time per copy of each strategy",
		Long: `Run every mapping strategy (or the ones named with --strategy) through
warmup and measurement iterations, repeated over --forks child processes,
and print the average time per operation.

Settings come from defaults, then --config, then BEANMORPH_* environment
variables, then flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd)
		},
	}
)

// configFlags maps config keys to flag names for bench and fork.
var configFlags = map[string]string{
	config.KeyWarmup:      "warmup",
	config.KeyMeasurement: "iterations",
	config.KeyForks:       "forks",
	config.KeyOps:         "ops",
	config.KeyUnit:        "unit",
}

func init() {
	addConfigFlags(benchCmd.Flags())
	benchCmd.Flags().StringVarP(&benchConfigFile, "config", "c", "", "YAML file with benchmark settings")
	benchCmd.Flags().StringSliceVarP(&benchStrategies, "strategy", "s", nil, "Strategies to run (default all)")
	benchCmd.Flags().StringVarP(&benchFormat, "format", "o", "text", "Report format: text or json")
	benchCmd.Flags().BoolVar(&benchInProcess, "in-process", false, "Run forks in this process instead of child processes")
}

func addConfigFlags(flags *pflag.FlagSet) {
	defaults := bench.DefaultConfig()
	flags.Int("warmup", defaults.Warmup, "Warmup iterations per fork")
	flags.Int("iterations", defaults.Measurement, "Measurement iterations per fork")
	flags.Int("forks", defaults.Forks, "Forks per benchmark, 0 runs one trial in this process")
	flags.Int("ops", defaults.OpsPerIteration, "Operations per iteration")
	flags.Duration("unit", defaults.TimeUnit, "Score time unit")
}

func loadConfig(cmd *cobra.Command, path string) (bench.Config, error) {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags(), configFlags); err != nil {
		return bench.Config{}, err
	}
	return config.Load(v, path)
}

func runBench(cmd *cobra.Command) error {
	if benchFormat != "text" && benchFormat != "json" {
		return fmt.Errorf("unknown format %q, want text or json", benchFormat)
	}

	cfg, err := loadConfig(cmd, benchConfigFile)
	if err != nil {
		return err
	}

	reg, err := beanmorph.NewPersonRegistry()
	if err != nil {
		return err
	}
	strategies := make([]beanmorph.Strategy, 0, len(benchStrategies))
	for _, s := range benchStrategies {
		strategies = append(strategies, beanmorph.Strategy(s))
	}
	benchmarks, err := bench.PersonBenchmarks(reg, strategies...)
	if err != nil {
		return err
	}

	opts := []bench.Option{bench.WithLogger(logger)}
	if !benchInProcess {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("locating executable for forks: %w", err)
		}
		opts = append(opts, bench.WithForker(bench.ExecForker{Path: exe, Args: forkArgs, Stderr: cmd.ErrOrStderr()}))
	}

	runner, err := bench.NewRunner(cfg, opts...)
	if err != nil {
		return err
	}
	defer runner.Close()

	if err := runner.OnTrial(func(_ context.Context, ev bench.Event) error {
		logger.Info("trial finished", "benchmark", ev.Benchmark, "fork", ev.Fork,
			"score", strconv.FormatFloat(ev.Score, 'f', 3, 64), "unit", ev.Unit)
		return nil
	}); err != nil {
		return err
	}

	logger.Info("running benchmarks", "count", len(benchmarks), "warmup", cfg.Warmup,
		"iterations", cfg.Measurement, "forks", cfg.Forks, "ops", cfg.OpsPerIteration)
	report, err := runner.Run(cmd.Context(), benchmarks...)
	if err != nil {
		return err
	}
	logger.Info("benchmarks done", "elapsed", report.Elapsed.Round(time.Millisecond))

	if benchFormat == "json" {
		return bench.WriteJSON(cmd.OutOrStdout(), report)
	}
	return bench.WriteText(cmd.OutOrStdout(), report)
}

// forkArgs builds the command line of the hidden fork command. Iteration
// events fire in the child, so the parent only logs finished trials.
func forkArgs(benchmark string, fork int, cfg bench.Config) []string {
	args := []string{
		"fork",
		"--benchmark", benchmark,
		"--fork", strconv.Itoa(fork),
		"--warmup", strconv.Itoa(cfg.Warmup),
		"--iterations", strconv.Itoa(cfg.Measurement),
		"--ops", strconv.Itoa(cfg.OpsPerIteration),
		"--unit", cfg.TimeUnit.String(),
	}
	if verbose {
		args = append(args, "--verbose")
	}
	return args
}
