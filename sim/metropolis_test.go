package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ising-sim/ising-sim/sim/internal/testutil"
)

func alignedLattice(t *testing.T, size, spin int) *Lattice {
	t.Helper()
	grid := make([][]int, size)
	for i := range grid {
		grid[i] = make([]int, size)
		for j := range grid[i] {
			grid[i][j] = spin
		}
	}
	l, err := NewLatticeFromSpins(grid)
	require.NoError(t, err)
	return l
}

func TestDeltaEnergy(t *testing.T) {
	l := alignedLattice(t, 3, 1)
	assert.Equal(t, 8, DeltaEnergy(l, 1, 1))

	l.Flip(1, 1)
	assert.Equal(t, -8, DeltaEnergy(l, 1, 1))
	// (0,1) now has one opposite neighbour
	assert.Equal(t, 4, DeltaEnergy(l, 0, 1))
}

func TestTrySpinFlip_NegativeDeltaAlwaysFlips(t *testing.T) {
	// GIVEN a lone down spin in an up lattice (ΔE = -8)
	l := alignedLattice(t, 3, 1)
	l.Flip(1, 1)

	// WHEN the trial runs with a draw that would reject any uphill move
	src := testutil.ConstSource(0.999999)
	flipped := TrySpinFlip(l, 1, 1, 0.01, src)

	// THEN the flip is accepted without consuming a draw
	assert.True(t, flipped)
	assert.Equal(t, 1, l.Spin(1, 1))
	assert.Equal(t, 0, src.Calls)
}

func TestTrySpinFlip_PositiveDeltaUsesBoltzmannFactor(t *testing.T) {
	threshold := math.Exp(-8.0 / 2.0)
	tests := []struct {
		name   string
		draw   float64
		accept bool
	}{
		{"draw below factor", threshold / 2, true},
		{"draw equal to factor", threshold, true},
		{"draw above factor", threshold * 1.01, false},
		{"draw near one", 0.99, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN an aligned lattice, so flipping (1,1) costs ΔE = 8
			l := alignedLattice(t, 3, 1)
			src := testutil.ConstSource(tt.draw)

			// WHEN the trial runs at T=2
			flipped := TrySpinFlip(l, 1, 1, 2.0, src)

			// THEN acceptance follows r <= exp(-ΔE/T), consuming exactly one draw
			assert.Equal(t, tt.accept, flipped)
			assert.Equal(t, 1, src.Calls)
			if tt.accept {
				assert.Equal(t, -1, l.Spin(1, 1))
			} else {
				assert.Equal(t, 1, l.Spin(1, 1))
			}
		})
	}
}

func TestTrySpinFlip_ZeroDeltaAlwaysAccepted(t *testing.T) {
	// GIVEN a site with two up and two down neighbours
	l, err := NewLatticeFromSpins([][]int{
		{1, 1, 1, 1},
		{-1, 1, 1, 1},
		{1, -1, 1, 1},
		{1, 1, 1, 1},
	})
	require.NoError(t, err)
	require.Equal(t, 0, DeltaEnergy(l, 1, 1))

	// WHEN the largest possible draw is used
	flipped := TrySpinFlip(l, 1, 1, 0.5, testutil.ConstSource(math.Nextafter(1, 0)))

	// THEN exp(0) = 1 accepts it
	assert.True(t, flipped)
}
