package sim

import "fmt"

// Lattice is an L×L grid of ±1 spins with periodic boundaries.
// Spins are stored in row-major order.
type Lattice struct {
	size  int
	spins []int8
}

// NewLattice creates a lattice of side size with every spin drawn
// independently: +1 if the draw is below 0.5, -1 otherwise.
func NewLattice(size int, rng RandomSource) (*Lattice, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: lattice size must be >= 1, got %d", ErrInvalidParams, size)
	}
	l := &Lattice{size: size, spins: make([]int8, size*size)}
	for idx := range l.spins {
		if rng.Float64() < 0.5 {
			l.spins[idx] = 1
		} else {
			l.spins[idx] = -1
		}
	}
	return l, nil
}

// NewLatticeFromSpins builds a lattice from an explicit square grid.
// Every row must have the same length as the grid and every entry must be ±1.
func NewLatticeFromSpins(grid [][]int) (*Lattice, error) {
	size := len(grid)
	if size < 1 {
		return nil, fmt.Errorf("%w: empty spin grid", ErrInvalidParams)
	}
	l := &Lattice{size: size, spins: make([]int8, size*size)}
	for i, row := range grid {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d spins, want %d", ErrInvalidParams, i, len(row), size)
		}
		for j, s := range row {
			if s != 1 && s != -1 {
				return nil, fmt.Errorf("%w: spin (%d,%d) is %d, want +1 or -1", ErrInvalidParams, i, j, s)
			}
			l.spins[i*size+j] = int8(s)
		}
	}
	return l, nil
}

// Size returns the side length L.
func (l *Lattice) Size() int { return l.size }

// Spin returns the spin at (i, j). Indices wrap modulo L.
func (l *Lattice) Spin(i, j int) int {
	return int(l.spins[l.index(i, j)])
}

// Flip negates the spin at (i, j) in place.
func (l *Lattice) Flip(i, j int) {
	idx := l.index(i, j)
	l.spins[idx] = -l.spins[idx]
}

// NeighborSum returns the sum of the up, down, left and right neighbours of
// (i, j) under periodic wraparound. For L=1 the site is its own neighbour in
// every direction.
func (l *Lattice) NeighborSum(i, j int) int {
	return l.Spin(i-1, j) + l.Spin(i+1, j) + l.Spin(i, j-1) + l.Spin(i, j+1)
}

// Snapshot copies the spins into a fresh [][]int, row by row.
func (l *Lattice) Snapshot() [][]int {
	grid := make([][]int, l.size)
	for i := range grid {
		row := make([]int, l.size)
		for j := range row {
			row[j] = int(l.spins[i*l.size+j])
		}
		grid[i] = row
	}
	return grid
}

func (l *Lattice) index(i, j int) int {
	i = (i%l.size + l.size) % l.size
	j = (j%l.size + l.size) % l.size
	return i*l.size + j
}
