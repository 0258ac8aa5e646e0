package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoSamples is returned by Finalize when no sweep was sampled.
var ErrNoSamples = errors.New("no samples accumulated")

// Magnetization returns Σ spins / L², in [-1, 1].
func Magnetization(l *Lattice) float64 {
	total := 0
	for _, s := range l.spins {
		total += int(s)
	}
	return float64(total) / float64(len(l.spins))
}

// Energy returns H = -½ Σ_sites s(i,j) · NeighborSum(i,j).
// Each bond is visited from both ends, hence the half. A fully aligned
// lattice has energy -2·L².
func Energy(l *Lattice) int {
	sum := 0
	for i := 0; i < l.size; i++ {
		for j := 0; j < l.size; j++ {
			sum += l.Spin(i, j) * l.NeighborSum(i, j)
		}
	}
	return -sum / 2
}

// Accumulators holds running sums for one (L, T) run.
// Never shared across runs.
type Accumulators struct {
	AbsMagnetization float64 // Σ |m|
	Energy           float64 // Σ E
	EnergySquared    float64 // Σ E²
	Samples          int     // number of Accumulate calls
}

// Accumulate adds the current lattice state to the running sums.
func (a *Accumulators) Accumulate(l *Lattice) {
	e := float64(Energy(l))
	a.AbsMagnetization += math.Abs(Magnetization(l))
	a.Energy += e
	a.EnergySquared += e * e
	a.Samples++
}

// ResultRecord is the estimate for one temperature point.
type ResultRecord struct {
	Magnetization float64 // <|m|>, in [0, 1]
	Heat          float64 // (<E²> - <E>²) / (L² T²), >= 0
	Energy        float64 // <E>
	Samples       int
}

// Finalize turns the running sums into time averages using the actual
// number of samples taken. Floating-point cancellation in the variance is
// clamped at zero.
func (a *Accumulators) Finalize(size int, temperature float64) (ResultRecord, error) {
	if a.Samples <= 0 {
		return ResultRecord{}, ErrNoSamples
	}
	if size < 1 || temperature <= 0 {
		return ResultRecord{}, fmt.Errorf("%w: finalize with L=%d, T=%v", ErrInvalidParams, size, temperature)
	}
	n := float64(a.Samples)
	meanE := a.Energy / n
	meanE2 := a.EnergySquared / n
	variance := math.Max(0, meanE2-meanE*meanE)
	l2 := float64(size * size)
	return ResultRecord{
		Magnetization: a.AbsMagnetization / n,
		Heat:          variance / (l2 * temperature * temperature),
		Energy:        meanE,
		Samples:       a.Samples,
	}, nil
}

// === Observable ===

// Observable selects which scalar of a ResultRecord an experiment reports.
type Observable int

const (
	ObservableMagnetization Observable = iota
	ObservableHeat
)

// String returns the name used on the command line and in file names.
func (o Observable) String() string {
	switch o {
	case ObservableMagnetization:
		return "magnetization"
	case ObservableHeat:
		return "heat"
	default:
		return fmt.Sprintf("Observable(%d)", int(o))
	}
}

// Select extracts the observable's scalar from r.
func (o Observable) Select(r ResultRecord) float64 {
	if o == ObservableHeat {
		return r.Heat
	}
	return r.Magnetization
}

// ParseObservable maps "magnetization" or "heat" to an Observable.
func ParseObservable(name string) (Observable, error) {
	switch name {
	case "magnetization":
		return ObservableMagnetization, nil
	case "heat":
		return ObservableHeat, nil
	default:
		return 0, fmt.Errorf("unknown observable %q; valid: magnetization, heat", name)
	}
}
