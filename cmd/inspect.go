package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ising-sim/ising-sim/sim"
	"github.com/ising-sim/ising-sim/sim/results"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarise results files written by run and snapshot",
}

var inspectSeriesCmd = &cobra.Command{
	Use:   "series FILE...",
	Short: "Print point count, range and peak of magnetization or heat series",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			points, err := results.ReadSeries(path)
			if err != nil {
				return err
			}
			s := results.Summarize(points)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "=== %s ===\n", filepath.Base(path))
			fmt.Fprintf(out, "Points       : %d\n", s.Points)
			if s.Points == 0 {
				continue
			}
			fmt.Fprintf(out, "T* range     : %.4f .. %.4f\n", s.MinT, s.MaxT)
			fmt.Fprintf(out, "Mean value   : %.6f\n", s.Mean)
			fmt.Fprintf(out, "Peak value   : %.6f at T*=%.4f\n", s.Peak, s.PeakT)
			if s.HasHalfT {
				fmt.Fprintf(out, "Half of peak : below at T*=%.4f\n", s.HalfT)
			}
		}
		return nil
	},
}

var inspectSnapshotCmd = &cobra.Command{
	Use:   "snapshot FILE",
	Short: "Render a spin configuration as a heatmap with its observables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		grid, err := results.ReadSnapshot(args[0])
		if err != nil {
			return err
		}
		lattice, err := sim.NewLatticeFromSpins(grid)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		logrus.Debugf("Loaded %dx%d snapshot from %s", lattice.Size(), lattice.Size(), args[0])

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, results.RenderSnapshot(filepath.Base(args[0]), grid))
		fmt.Fprintf(out, "L            : %d\n", lattice.Size())
		fmt.Fprintf(out, "m            : %.6f\n", sim.Magnetization(lattice))
		fmt.Fprintf(out, "E            : %d (E/N = %.4f)\n", sim.Energy(lattice),
			float64(sim.Energy(lattice))/float64(lattice.Size()*lattice.Size()))
		return nil
	},
}

func init() {
	inspectCmd.AddCommand(inspectSeriesCmd)
	inspectCmd.AddCommand(inspectSnapshotCmd)
}
