// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// RunSweep attempts one Metropolis flip at every site in row-major order
// (i outer, j inner). One sweep is L² trials. Returns the number of accepted flips.
func RunSweep(l *Lattice, temperature float64, rng RandomSource) int {
	accepted := 0
	for i := 0; i < l.size; i++ {
		for j := 0; j < l.size; j++ {
			if TrySpinFlip(l, i, j, temperature, rng) {
				accepted++
			}
		}
	}
	return accepted
}

// ShouldSample reports whether sweep k (counted from 1) is sampled:
// k is past the equilibration cutoff and (k - equilibration) is a multiple of stride.
func ShouldSample(k, equilibration, stride int) bool {
	return k > equilibration && (k-equilibration)%stride == 0
}

// Equilibrate runs sweeps sweeps without sampling.
func Equilibrate(l *Lattice, temperature float64, sweeps int, rng RandomSource) {
	for k := 0; k < sweeps; k++ {
		RunSweep(l, temperature, rng)
	}
}

// Simulator runs the equilibration + sampling schedule on one lattice.
type Simulator struct {
	Params  Params
	Lattice *Lattice
	RNG     RandomSource
	// Accepted counts accepted flips over the whole run.
	Accepted int64
}

// NewSimulator validates p and builds a freshly randomised lattice from rng.
func NewSimulator(p Params, rng RandomSource) (*Simulator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	l, err := NewLattice(p.Size, rng)
	if err != nil {
		return nil, err
	}
	return &Simulator{Params: p, Lattice: l, RNG: rng}, nil
}

// Run performs Params.Sweeps sweeps, sampling the lattice into the returned
// accumulators after every sweep selected by ShouldSample.
func (s *Simulator) Run() Accumulators {
	var acc Accumulators
	p := s.Params
	for k := 1; k <= p.Sweeps; k++ {
		s.Accepted += int64(RunSweep(s.Lattice, p.Temperature, s.RNG))
		if ShouldSample(k, p.Equilibration, p.Stride) {
			acc.Accumulate(s.Lattice)
		}
	}
	logrus.Debugf("[L=%d T=%v] %d sweeps done, %d samples, acceptance %.4f",
		p.Size, p.Temperature, p.Sweeps, acc.Samples, s.AcceptanceRate())
	return acc
}

// AcceptanceRate returns accepted flips / trials attempted so far.
func (s *Simulator) AcceptanceRate() float64 {
	trials := int64(s.Params.Sweeps) * int64(s.Params.Size*s.Params.Size)
	if trials == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(trials)
}

// Simulate is the full protocol for one temperature point: fresh lattice,
// equilibration, sampling, finalisation.
func Simulate(p Params, rng RandomSource) (ResultRecord, error) {
	s, err := NewSimulator(p, rng)
	if err != nil {
		return ResultRecord{}, err
	}
	acc := s.Run()
	rec, err := acc.Finalize(p.Size, p.Temperature)
	if err != nil {
		return ResultRecord{}, fmt.Errorf("L=%d T=%v: %w", p.Size, p.Temperature, err)
	}
	return rec, nil
}
