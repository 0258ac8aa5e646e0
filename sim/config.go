package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is wrapped by every parameter validation failure.
var ErrInvalidParams = errors.New("invalid simulation parameters")

// Params groups the inputs of one (L, T) simulation run.
type Params struct {
	Temperature   float64 // reduced temperature T* (must be > 0)
	Size          int     // lattice side L (must be >= 1)
	Sweeps        int     // total Monte Carlo sweeps (MCS)
	Equilibration int     // sweeps discarded before sampling (K0 < MCS)
	Stride        int     // sample every Stride-th sweep after K0 (must be > 0)
}

// NewParams creates a Params with all fields explicitly specified.
func NewParams(temperature float64, size, sweeps, equilibration, stride int) Params {
	return Params{
		Temperature:   temperature,
		Size:          size,
		Sweeps:        sweeps,
		Equilibration: equilibration,
		Stride:        stride,
	}
}

// ExpectedSamples returns floor((Sweeps - Equilibration) / Stride), or 0 when
// the schedule leaves nothing to sample.
func (p Params) ExpectedSamples() int {
	if p.Stride <= 0 || p.Sweeps <= p.Equilibration {
		return 0
	}
	return (p.Sweeps - p.Equilibration) / p.Stride
}

// Validate rejects degenerate parameters that would otherwise surface as
// NaN or a division by zero in the estimators.
func (p Params) Validate() error {
	if math.IsNaN(p.Temperature) || math.IsInf(p.Temperature, 0) || p.Temperature <= 0 {
		return fmt.Errorf("%w: temperature must be a positive finite number, got %v", ErrInvalidParams, p.Temperature)
	}
	if p.Size < 1 {
		return fmt.Errorf("%w: lattice size must be >= 1, got %d", ErrInvalidParams, p.Size)
	}
	if p.Sweeps <= 0 {
		return fmt.Errorf("%w: sweeps must be positive, got %d", ErrInvalidParams, p.Sweeps)
	}
	if p.Equilibration < 0 || p.Equilibration >= p.Sweeps {
		return fmt.Errorf("%w: equilibration must be in [0, %d), got %d", ErrInvalidParams, p.Sweeps, p.Equilibration)
	}
	if p.Stride <= 0 {
		return fmt.Errorf("%w: stride must be positive, got %d", ErrInvalidParams, p.Stride)
	}
	if p.ExpectedSamples() == 0 {
		return fmt.Errorf("%w: schedule of %d sweeps, equilibration %d, stride %d yields no samples",
			ErrInvalidParams, p.Sweeps, p.Equilibration, p.Stride)
	}
	return nil
}
