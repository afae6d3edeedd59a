// Package random provides the injectable randomness used by quiz
// generation and deck shuffling, so both can be replayed in tests.
package random

import (
	"math/rand/v2"
	"time"
)

// Source is the randomness a quiz or review session draws from.
type Source interface {
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int

	// Shuffle permutes n elements via swap, each ordering equiprobable.
	Shuffle(n int, swap func(i, j int))

	// Coin returns true with probability 1/2.
	Coin() bool
}

type pcgSource struct {
	r *rand.Rand
}

// New returns a deterministic Source seeded with seed.
func New(seed uint64) Source {
	return &pcgSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandom returns a Source seeded from the wall clock.
func NewRandom() Source {
	return New(uint64(time.Now().UnixNano()))
}

func (s *pcgSource) IntN(n int) int { return s.r.IntN(n) }

func (s *pcgSource) Shuffle(n int, swap func(i, j int)) { s.r.Shuffle(n, swap) }

func (s *pcgSource) Coin() bool { return s.r.IntN(2) == 1 }

// Sample returns k distinct indices drawn uniformly from [0, n) without
// replacement, in draw order. k is clamped to n.
func Sample(src Source, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	// Partial Fisher-Yates over an index table.
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + src.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

// Permute returns a random permutation of [0, n).
func Permute(src Source, n int) []int {
	return Sample(src, n, n)
}
