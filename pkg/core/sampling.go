package core

import (
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
}

// RandomSampler wraps a standard Go random generator.
// Not safe for concurrent use; every stateful consumer owns its own instance.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded by seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// SequenceSampler replays a fixed list of values, wrapping around at the end
type SequenceSampler struct {
	Values []float64
	next   int
}

// NewSequenceSampler creates a deterministic sampler over values
func NewSequenceSampler(values ...float64) *SequenceSampler {
	return &SequenceSampler{Values: values}
}

// Get1D returns the next value in the sequence, or 0.5 if the sequence is empty
func (s *SequenceSampler) Get1D() float64 {
	if len(s.Values) == 0 {
		return 0.5
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// SeedSource hands out independent seeds derived from a base seed, so
// each material and the camera can own a separate generator
type SeedSource struct {
	base int64
	n    int64
}

// NewSeedSource creates a seed source. A base of 0 is shifted to avoid seed 0.
func NewSeedSource(base int64) *SeedSource {
	return &SeedSource{base: base + 42}
}

// NextSampler returns a sampler backed by a new generator
func (s *SeedSource) NextSampler() *RandomSampler {
	s.n++
	return NewSeededSampler(s.base*1_000_003 + s.n)
}
