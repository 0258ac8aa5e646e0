package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strconv"
	"sync"
	"time"
)

// === RandomSource ===

// RandomSource produces uniform reals in [0, 1).
// *rand.Rand satisfies it; tests substitute scripted sequences.
type RandomSource interface {
	Float64() float64
}

// === SimulationKey ===

// SimulationKey identifies a reproducible experiment.
// Two experiments with the same SimulationKey and identical configuration
// produce identical results, regardless of how many workers run them.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
// A zero seed is replaced by the current wall-clock time, so by default
// every process draws a fresh, non-repeating sequence.
func NewSimulationKey(seed int64) SimulationKey {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return SimulationKey(seed)
}

// RunName returns the subsystem name for the (size, temperature) run.
func RunName(size int, temperature float64) string {
	return fmt.Sprintf("run_L=%d_T=%s", size, strconv.FormatFloat(temperature, 'g', -1, 64))
}

// SnapshotName returns the subsystem name for a snapshot run.
func SnapshotName(size int, temperature float64) string {
	return "snapshot_" + RunName(size, temperature)
}

// === PartitionedRNG ===

// PartitionedRNG hands out isolated RNG streams, one per run.
//
// Derivation formula: masterSeed XOR fnv1a64(name).
//
// Thread-safety: ForSubsystem may be called from several goroutines, but each
// returned *rand.Rand must only be used by one goroutine at a time.
type PartitionedRNG struct {
	key SimulationKey

	mu         sync.Mutex
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	p.mu.Lock()
	defer p.mu.Unlock()

	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// ForRun returns the RNG owned by the (size, temperature) run.
func (p *PartitionedRNG) ForRun(size int, temperature float64) *rand.Rand {
	return p.ForSubsystem(RunName(size, temperature))
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
