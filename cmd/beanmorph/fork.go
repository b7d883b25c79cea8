package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dklassen/beanmorph"
	"github.com/dklassen/beanmorph/internal/bench"
)

var (
	forkBenchmark string
	forkNumber    int

	forkCmd = &cobra.Command{
		Use:    "fork",
		Short:  "Run one trial of one benchmark and print it as JSON",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFork(cmd)
		},
	}
)

func init() {
	addConfigFlags(forkCmd.Flags())
	forkCmd.Flags().StringVar(&forkBenchmark, "benchmark", "", "Benchmark to run")
	forkCmd.Flags().IntVar(&forkNumber, "fork", 1, "Fork number reported with the trial")
	_ = forkCmd.MarkFlagRequired("benchmark") //nolint:errcheck
}

func runFork(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}

	reg, err := beanmorph.NewPersonRegistry()
	if err != nil {
		return err
	}
	benchmarks, err := bench.PersonBenchmarks(reg, beanmorph.Strategy(forkBenchmark))
	if err != nil {
		return err
	}
	b, ok := bench.Find(benchmarks, forkBenchmark)
	if !ok {
		return fmt.Errorf("unknown benchmark %q", forkBenchmark)
	}

	runner, err := bench.NewRunner(cfg, bench.WithLogger(logger))
	if err != nil {
		return err
	}
	defer runner.Close()

	tr, err := runner.RunTrial(cmd.Context(), b, forkNumber)
	if err != nil {
		return err
	}
	return bench.WriteTrial(cmd.OutOrStdout(), tr)
}
