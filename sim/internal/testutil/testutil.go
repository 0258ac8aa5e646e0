// Package testutil provides shared test infrastructure for the Ising simulator.
// It consolidates scripted random sources and assertion helpers used across
// sim/ and its sub-package tests.
package testutil

import (
	"math"
	"testing"
)

// ScriptedSource replays a fixed sequence of draws, cycling when exhausted.
// Calls counts how many draws were consumed.
type ScriptedSource struct {
	Values []float64
	Calls  int
}

// Float64 returns the next scripted value.
func (s *ScriptedSource) Float64() float64 {
	v := s.Values[s.Calls%len(s.Values)]
	s.Calls++
	return v
}

// ConstSource returns a ScriptedSource that always yields v.
func ConstSource(v float64) *ScriptedSource {
	return &ScriptedSource{Values: []float64{v}}
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
