package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImage(t *testing.T) {
	rng := NewRNG(4711)

	img := rng.Image(784)
	assert.Len(t, img, 784)

	rng.Reset()
	assert.Equal(t, img, rng.Image(784))
}

func TestLabels(t *testing.T) {
	rng := NewRNG(4711)

	labels := rng.Labels(100, 7)
	assert.Len(t, labels, 100)
	for _, l := range labels {
		assert.Less(t, l, uint16(7))
	}
}

func TestVocabulary(t *testing.T) {
	rng := NewRNG(4711)

	vocab := rng.Vocabulary(50)
	assert.Len(t, vocab, 50)

	seen := make(map[string]bool)
	for _, v := range vocab {
		assert.False(t, seen[v], "duplicate %q", v)
		seen[v] = true
	}
	assert.Contains(t, vocab, rng.Pick(vocab))
	assert.Equal(t, int64(4711), rng.Seed())
}
