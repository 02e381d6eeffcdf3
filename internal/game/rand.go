package game

import (
	"math/rand/v2"
	"sync"
)

// Source is the randomness the engine draws from. Implementations must be
// safe for concurrent use.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }

// DefaultSource draws from the runtime's goroutine-safe generator.
func DefaultSource() Source {
	return globalSource{}
}

// LockedSource is a seeded, reproducible generator guarded by a mutex.
type LockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource creates a reproducible source from seed.
func NewSeededSource(seed uint64) *LockedSource {
	return &LockedSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 returns a uniform value in [0, 1).
func (s *LockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// IntN returns a uniform value in [0, n).
func (s *LockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// FixedSource always returns the same draw. IntN maps it onto [0, n).
type FixedSource float64

// Float64 returns the fixed draw.
func (f FixedSource) Float64() float64 { return float64(f) }

// IntN returns floor(f × n).
func (f FixedSource) IntN(n int) int {
	i := int(float64(f) * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
