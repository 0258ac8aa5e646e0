package sim

import "math"

// DeltaEnergy returns the energy change of flipping (i, j):
// 2 · s(i,j) · Σ neighbours, from H = -Σ s_i s_j over nearest-neighbour bonds.
func DeltaEnergy(l *Lattice, i, j int) int {
	return 2 * l.Spin(i, j) * l.NeighborSum(i, j)
}

// TrySpinFlip applies one Metropolis trial at (i, j).
// Moves that lower the energy are always accepted without consuming a draw.
// Otherwise one uniform r is drawn and the flip is accepted iff
// r <= exp(-ΔE/T). Returns whether the spin was flipped.
func TrySpinFlip(l *Lattice, i, j int, temperature float64, rng RandomSource) bool {
	dE := DeltaEnergy(l, i, j)
	if dE < 0 {
		l.Flip(i, j)
		return true
	}
	if rng.Float64() <= math.Exp(-float64(dE)/temperature) {
		l.Flip(i, j)
		return true
	}
	return false
}
