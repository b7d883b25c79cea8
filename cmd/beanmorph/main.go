// Command beanmorph benchmarks the PersonEntity -> PersonDTO mapping
// strategies and generates the compile-time mapper from beanmorph.yaml.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
	logger  = slog.New(slog.DiscardHandler)

	rootCmd = &cobra.Command{
		Use:   "beanmorph",
		Short: "Compare ways of copying one record type into another",
		Long: `beanmorph maps a PersonEntity into a PersonDTO using a hand-written
mapper, reflective copiers, a JSON round trip and a generated mapper, and
measures the average time per copy of each.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(verbose)
		},
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress at debug level")

	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(forkCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(strategiesCmd)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
