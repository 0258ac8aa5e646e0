// Package experiment drives the simulation engine over lattice sizes and
// temperature ranges and forwards the results to a results.Sink.
package experiment

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ising-sim/ising-sim/sim"
	"github.com/ising-sim/ising-sim/sim/results"
)

// temperatureEpsilon, scaled by the step, is added to the end of a range so
// the boundary point survives accumulated rounding from repeated addition.
const temperatureEpsilon = 1e-6

// TemperatureRange is [Start, End] stepped by Step.
type TemperatureRange struct {
	Start float64
	End   float64
	Step  float64
}

// Validate checks that the range is finite, positive and non-empty.
func (r TemperatureRange) Validate() error {
	for name, v := range map[string]float64{"start": r.Start, "end": r.End, "step": r.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("temperature %s must be a positive finite number, got %v", name, v)
		}
	}
	if r.End < r.Start {
		return fmt.Errorf("temperature end %v is below start %v", r.End, r.Start)
	}
	return nil
}

// Points enumerates the range by repeated addition of Step.
func (r TemperatureRange) Points() []float64 {
	var temps []float64
	if r.Step <= 0 {
		return temps
	}
	end := r.End + r.Step*temperatureEpsilon
	for t := r.Start; t <= end; t += r.Step {
		temps = append(temps, t)
	}
	return temps
}

// Schedule is the sweep protocol shared by every point of an experiment.
type Schedule struct {
	Sweeps        int
	Equilibration int
	Stride        int
}

// Params binds the schedule to one (L, T) point.
func (s Schedule) Params(size int, temperature float64) sim.Params {
	return sim.NewParams(temperature, size, s.Sweeps, s.Equilibration, s.Stride)
}

// Report counts what an experiment produced.
type Report struct {
	Points        int      // temperature points simulated
	FilesWritten  int      // sink writes that succeeded
	WriteFailures []string // one message per failed sink write
}

// Merge adds o's counts into r.
func (r *Report) Merge(o Report) {
	r.Points += o.Points
	r.FilesWritten += o.FilesWritten
	r.WriteFailures = append(r.WriteFailures, o.WriteFailures...)
}

// Runner executes experiments.
type Runner struct {
	Schedule Schedule
	Sink     results.Sink
	RNG      *sim.PartitionedRNG
	// Workers bounds how many temperature points run at once; values <= 1
	// run every point strictly in sequence.
	Workers int
}

// NewRunner creates a Runner.
func NewRunner(schedule Schedule, sink results.Sink, rng *sim.PartitionedRNG, workers int) *Runner {
	return &Runner{Schedule: schedule, Sink: sink, RNG: rng, Workers: workers}
}

// RunSeries simulates every temperature in tr for each size and writes one
// series per size. A failed write is logged and recorded in the report; the
// remaining sizes still run. Simulation errors abort the experiment.
func (r *Runner) RunSeries(ctx context.Context, obs sim.Observable, sizes []int, tr TemperatureRange) (Report, error) {
	var report Report
	if err := tr.Validate(); err != nil {
		return report, err
	}
	temps := tr.Points()
	for _, size := range sizes {
		if err := r.Schedule.Params(size, tr.Start).Validate(); err != nil {
			return report, err
		}
	}

	for _, size := range sizes {
		logrus.Infof("Running %s series for L=%d over %d temperatures", obs, size, len(temps))
		points, err := r.simulateSize(ctx, obs, size, temps)
		if err != nil {
			return report, err
		}
		report.Points += len(points)

		if err := r.Sink.WriteSeries(obs, size, points); err != nil {
			logrus.Errorf("Failed to write %s series for L=%d: %v", obs, size, err)
			report.WriteFailures = append(report.WriteFailures, err.Error())
			continue
		}
		report.FilesWritten++
		logrus.Infof("Wrote %s", results.SeriesFileName(obs, size))
	}
	return report, nil
}

// simulateSize runs every temperature for one lattice size. Each point owns
// its lattice, accumulators and RNG stream; output order follows temps.
func (r *Runner) simulateSize(ctx context.Context, obs sim.Observable, size int, temps []float64) ([]results.Point, error) {
	points := make([]results.Point, len(temps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, r.Workers))
	for idx, t := range temps {
		idx, t := idx, t
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := sim.Simulate(r.Schedule.Params(size, t), r.RNG.ForRun(size, t))
			if err != nil {
				return err
			}
			points[idx] = results.Point{Temperature: t, Value: obs.Select(rec)}
			logrus.Debugf("[L=%d T=%.4f] <|m|>=%.6f C=%.6f <E>=%.3f samples=%d",
				size, t, rec.Magnetization, rec.Heat, rec.Energy, rec.Samples)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// RunSnapshots runs the full sweep count on a fresh lattice for every
// (size, temperature) pair and writes its final configuration. No sampling
// is performed.
func (r *Runner) RunSnapshots(ctx context.Context, sizes []int, temps []float64) (Report, error) {
	var report Report
	if r.Schedule.Sweeps <= 0 {
		return report, fmt.Errorf("%w: snapshot sweeps must be positive, got %d", sim.ErrInvalidParams, r.Schedule.Sweeps)
	}
	for _, size := range sizes {
		for _, t := range temps {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
				return report, fmt.Errorf("%w: snapshot temperature must be positive, got %v", sim.ErrInvalidParams, t)
			}
			rng := r.RNG.ForSubsystem(sim.SnapshotName(size, t))
			lattice, err := sim.NewLattice(size, rng)
			if err != nil {
				return report, err
			}
			sim.Equilibrate(lattice, t, r.Schedule.Sweeps, rng)
			report.Points++

			if err := r.Sink.WriteSnapshot(size, t, lattice.Snapshot()); err != nil {
				logrus.Errorf("Failed to write snapshot L=%d T=%v: %v", size, t, err)
				report.WriteFailures = append(report.WriteFailures, err.Error())
				continue
			}
			report.FilesWritten++
			logrus.Infof("Wrote %s", results.SnapshotFileName(size, t))
		}
	}
	return report, nil
}
