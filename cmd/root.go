package cmd

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ising-sim/ising-sim/sim"
	"github.com/ising-sim/ising-sim/sim/experiment"
	"github.com/ising-sim/ising-sim/sim/results"
)

var (
	// CLI flags shared by run and snapshot
	seed          int64  // Master seed; 0 seeds from the clock
	logLevel      string // Log verbosity level
	configPath    string // Optional YAML experiment file
	outputDir     string // Directory for results files
	workers       int    // Concurrent temperature points per lattice size
	sweeps        int    // Total sweeps per temperature point (MCS)
	equilibration int    // Sweeps discarded before sampling (K0)
	stride        int    // Sample every stride-th sweep after K0
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "ising-sim",
	Short: "Metropolis Monte Carlo simulator for the 2D Ising model",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd produces the magnetization and/or heat capacity series
var runCmd = &cobra.Command{
	Use:       "run [magnetization|heat]...",
	Short:     "Sweep temperatures and write <|m|> and/or heat capacity series",
	ValidArgs: []string{"magnetization", "heat"},
	Args:      cobra.OnlyValidArgs,
	Run: func(cmd *cobra.Command, args []string) {
		observables := []sim.Observable{sim.ObservableMagnetization, sim.ObservableHeat}
		if len(args) > 0 {
			observables = observables[:0]
			for _, a := range args {
				obs, err := sim.ParseObservable(a)
				if err != nil {
					logrus.Fatalf("%v", err)
				}
				observables = append(observables, obs)
			}
		}

		cfg := resolveConfig(cmd)
		runner := newRunner(cfg)
		startTime := time.Now()

		var report experiment.Report
		for _, obs := range observables {
			series := cfg.Series(obs)
			r, err := runner.RunSeries(cmd.Context(), obs, series.Sizes, series.Range())
			report.Merge(r)
			if err != nil {
				logrus.Fatalf("%s experiment failed: %v", obs, err)
			}
		}
		logReport(report, startTime)
	},
}

// snapshotCmd writes equilibrated spin configurations
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Equilibrate lattices and write their spin configurations",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := resolveConfig(cmd)
		runner := newRunner(cfg)
		startTime := time.Now()

		report, err := runner.RunSnapshots(cmd.Context(), cfg.Snapshots.Sizes, cfg.Snapshots.Temperatures)
		if err != nil {
			logrus.Fatalf("snapshot experiment failed: %v", err)
		}
		logReport(report, startTime)
	},
}

// resolveConfig loads the experiment file (if any), applies explicitly set
// schedule flags on top, and validates the result.
func resolveConfig(cmd *cobra.Command) Config {
	cfg := DefaultConfig()
	if configPath != "" {
		loaded, err := LoadConfig(configPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		cfg = loaded
	}
	// Flags override the file only when the user set them.
	if cmd.Flags().Changed("sweeps") {
		cfg.Schedule.Sweeps = sweeps
	}
	if cmd.Flags().Changed("equilibration") {
		cfg.Schedule.Equilibration = equilibration
	}
	if cmd.Flags().Changed("stride") {
		cfg.Schedule.Stride = stride
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid experiment config: %v", err)
	}
	return cfg
}

func newRunner(cfg Config) *experiment.Runner {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		logrus.Fatalf("Failed to create output directory %s: %v", outputDir, err)
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))
	logrus.Infof("Starting experiment: seed=%d sweeps=%d equilibration=%d stride=%d workers=%d",
		int64(rng.Key()), cfg.Schedule.Sweeps, cfg.Schedule.Equilibration, cfg.Schedule.Stride, workers)
	return experiment.NewRunner(cfg.ExperimentSchedule(), results.NewFileSink(outputDir), rng, workers)
}

func logReport(report experiment.Report, startTime time.Time) {
	logrus.Infof("Experiment complete: %d points, %d files written, %d write failures in %s",
		report.Points, report.FilesWritten, len(report.WriteFailures), time.Since(startTime).Round(time.Millisecond))
	for _, msg := range report.WriteFailures {
		logrus.Warnf("write failure: %s", msg)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	for _, c := range []*cobra.Command{runCmd, snapshotCmd} {
		c.Flags().Int64Var(&seed, "seed", 0, "Master seed for all runs (0 = seed from the clock)")
		c.Flags().StringVar(&configPath, "config", "", "YAML experiment file overriding the built-in experiment")
		c.Flags().StringVar(&outputDir, "output-dir", ".", "Directory for results files")
		c.Flags().IntVar(&sweeps, "sweeps", 230000, "Total Monte Carlo sweeps per temperature point")
		c.Flags().IntVar(&equilibration, "equilibration", 30000, "Sweeps discarded before sampling")
		c.Flags().IntVar(&stride, "stride", 100, "Sample every N-th sweep after equilibration")
	}
	runCmd.Flags().IntVar(&workers, "workers", 1, "Temperature points simulated concurrently per lattice size")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(inspectCmd)
}
