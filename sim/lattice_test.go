package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ising-sim/ising-sim/sim/internal/testutil"
)

func TestNewLattice_EverySpinIsPlusOrMinusOne(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, size := range []int{1, 2, 3, 8, 35} {
		l, err := NewLattice(size, rng)
		require.NoError(t, err)
		assert.Equal(t, size, l.Size())
		for i := 0; i < size; i++ {
			for j := 0; j < size; j++ {
				s := l.Spin(i, j)
				assert.True(t, s == 1 || s == -1, "L=%d spin (%d,%d)=%d", size, i, j, s)
			}
		}
	}
}

func TestNewLattice_ThresholdDraw(t *testing.T) {
	// GIVEN draws alternating below/above 0.5
	src := &testutil.ScriptedSource{Values: []float64{0.1, 0.5, 0.49, 0.99}}

	// WHEN a 2x2 lattice is created
	l, err := NewLattice(2, src)
	require.NoError(t, err)

	// THEN < 0.5 gives +1, otherwise -1, in row-major order
	assert.Equal(t, [][]int{{1, -1}, {1, -1}}, l.Snapshot())
	assert.Equal(t, 4, src.Calls)
}

func TestNewLattice_RejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -3} {
		_, err := NewLattice(size, testutil.ConstSource(0.1))
		assert.ErrorIs(t, err, ErrInvalidParams)
	}
}

func TestLattice_NeighborSumWrapsForL1(t *testing.T) {
	// BDD: for L=1 every neighbour is the site itself
	for _, s := range []float64{0.1, 0.9} {
		l, err := NewLattice(1, testutil.ConstSource(s))
		require.NoError(t, err)
		assert.Equal(t, 4*l.Spin(0, 0), l.NeighborSum(0, 0))
	}
}

func TestLattice_NeighborSumPeriodic(t *testing.T) {
	l, err := NewLatticeFromSpins([][]int{
		{1, -1, 1},
		{-1, 1, 1},
		{1, 1, -1},
	})
	require.NoError(t, err)

	tests := []struct {
		i, j int
		want int
	}{
		// up (2,0)=1, down (1,0)=-1, left (0,2)=1, right (0,1)=-1
		{0, 0, 0},
		// up (1,2)=1, down (0,2)=1, left (2,1)=1, right (2,0)=1
		{2, 2, 4},
		// up (0,1)=-1, down (2,1)=1, left (1,0)=-1, right (1,2)=1
		{1, 1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, l.NeighborSum(tt.i, tt.j), "site (%d,%d)", tt.i, tt.j)
	}
}

func TestLattice_FlipNegatesInPlace(t *testing.T) {
	l, err := NewLatticeFromSpins([][]int{{1, 1}, {1, 1}})
	require.NoError(t, err)

	l.Flip(1, 0)
	assert.Equal(t, -1, l.Spin(1, 0))
	l.Flip(1, 0)
	assert.Equal(t, 1, l.Spin(1, 0))

	// wrapped indices address the same cell
	l.Flip(-1, 2)
	assert.Equal(t, -1, l.Spin(1, 0))
}

func TestLattice_SnapshotIsACopy(t *testing.T) {
	l, err := NewLatticeFromSpins([][]int{{1, 1}, {1, 1}})
	require.NoError(t, err)
	snap := l.Snapshot()
	snap[0][0] = -1
	assert.Equal(t, 1, l.Spin(0, 0))
}

func TestNewLatticeFromSpins_Rejects(t *testing.T) {
	tests := []struct {
		name string
		grid [][]int
	}{
		{"empty", nil},
		{"ragged", [][]int{{1, 1}, {1}}},
		{"zero spin", [][]int{{1, 0}, {1, 1}}},
		{"non-square", [][]int{{1, 1, 1}, {1, 1, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLatticeFromSpins(tt.grid)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}
