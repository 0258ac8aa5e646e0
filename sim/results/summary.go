package results

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SeriesSummary aggregates a (temperature, value) series.
type SeriesSummary struct {
	Points   int
	MinT     float64
	MaxT     float64
	Mean     float64
	Peak     float64 // largest value
	PeakT    float64 // temperature of the largest value; for heat series, the T_c estimate
	HalfT    float64 // first temperature where the value drops below half its peak (0 if never)
	HasHalfT bool
}

// Summarize computes aggregate statistics from a series.
// Safe for nil or empty series (returns zero-value fields).
func Summarize(points []Point) SeriesSummary {
	var s SeriesSummary
	if len(points) == 0 {
		return s
	}
	temps := make([]float64, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		temps[i] = p.Temperature
		values[i] = p.Value
	}

	s.Points = len(points)
	s.MinT = floats.Min(temps)
	s.MaxT = floats.Max(temps)
	s.Mean = stat.Mean(values, nil)
	peak := floats.MaxIdx(values)
	s.Peak = values[peak]
	s.PeakT = temps[peak]

	for i := peak; i < len(values); i++ {
		if values[i] < s.Peak/2 {
			s.HalfT = temps[i]
			s.HasHalfT = true
			break
		}
	}
	return s
}
