// Package sampler provides deterministic, seedable permutation sampling.
//
// It backs the approximate Shapley-Shubik engine's Castro-style permutation
// sweep: the same seed must always produce the same sequence of
// permutations, and independent sub-seeds must be derivable for parallel
// workers without the workers sharing any mutable state.
package sampler

import "gonum.org/v1/gonum/mathext/prng"

// Source is a seedable source of uniformly distributed 64-bit values.
type Source interface {
	Uint64() uint64
}

// NewSource returns a Mersenne-Twister source seeded deterministically.
// The same seed always yields the same stream of values.
func NewSource(seed uint64) Source {
	mt := prng.NewMT19937()
	mt.Seed(seed)
	return mt
}

// SubSeed derives an independent seed for worker w of a parallel sampler
// splitting work under a shared parent seed. Workers seeded this way never
// need to coordinate or share a Source.
func SubSeed(parent uint64, worker int) uint64 {
	// SplitMix64-style mixing: cheap, well-distributed, deterministic.
	x := parent + uint64(worker)*0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

// Permuter draws uniformly random permutations of {0, ..., n-1} by
// repeated Fisher-Yates shuffles of a single reused buffer. Each call to
// Next returns a fresh, independently owned slice; the permuter itself
// must be re-seeded (via NewPermuter) to restart the sequence.
type Permuter struct {
	src  Source
	base []int
	buf  []int
}

// NewPermuter creates a Permuter over {0, ..., n-1} driven by src.
func NewPermuter(n int, src Source) *Permuter {
	base := make([]int, n)
	for i := range base {
		base[i] = i
	}
	return &Permuter{src: src, base: base, buf: make([]int, n)}
}

// Next draws the next permutation and returns an owned copy.
func (p *Permuter) Next() []int {
	copy(p.buf, p.base)
	n := len(p.buf)
	for i := n - 1; i > 0; i-- {
		j := int(p.src.Uint64() % uint64(i+1))
		p.buf[i], p.buf[j] = p.buf[j], p.buf[i]
	}
	out := make([]int, n)
	copy(out, p.buf)
	return out
}
