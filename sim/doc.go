// Package sim provides the Metropolis Monte Carlo engine for the 2D Ising model.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - lattice.go: the L×L spin grid with periodic neighbour lookups
//   - metropolis.go: the single-spin acceptance rule
//   - simulator.go: sweeps, the equilibration + sampling schedule
//   - observables.go: magnetization, energy, accumulators and the fluctuation estimator
//
// # Architecture
//
// The sim package owns the physics; orchestration and I/O live in sub-packages:
//   - sim/experiment/: temperature ranges, per-size series and snapshot runs
//   - sim/results/: file naming and the line-oriented results formats
//
// Randomness is always passed in explicitly as a RandomSource. PartitionedRNG
// derives one independent stream per (L, T) run from a single SimulationKey,
// so runs can execute concurrently without sharing a generator.
package sim
