package testutil

import (
	"fmt"
	"math/rand"
	"sync"
)

// RNG is a seeded random source. It is safe for concurrent use.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset restarts the sequence from the initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Image returns size random bytes.
func (r *RNG) Image(size int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	buf := make([]byte, size)
	_, _ = r.rand.Read(buf)
	return buf
}

// Label returns a label value in [0, vocabSize).
func (r *RNG) Label(vocabSize int) uint16 {
	return uint16(r.Intn(vocabSize))
}

// Labels returns n label values in [0, vocabSize).
func (r *RNG) Labels(n, vocabSize int) []uint16 {
	labels := make([]uint16, n)
	for i := range labels {
		labels[i] = r.Label(vocabSize)
	}
	return labels
}

// Vocabulary returns n distinct label names.
func (r *RNG) Vocabulary(n int) []string {
	vocab := make([]string, n)
	for i := range vocab {
		vocab[i] = fmt.Sprintf("class-%05d", i)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(n, func(i, j int) { vocab[i], vocab[j] = vocab[j], vocab[i] })
	return vocab
}

// Pick returns a random element of names.
func (r *RNG) Pick(names []string) string {
	return names[r.Intn(len(names))]
}
