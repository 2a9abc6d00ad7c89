package jdx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/jdx/testutil"
)

// newTestDataset builds a 2x2 8-bit dataset. Image i is filled with byte i+1
// and carries labels[i].
func newTestDataset(t *testing.T, vocab []string, labels ...uint16) *Dataset {
	t.Helper()
	d := NewDataset(NewHeader(2, 2, 8, vocab...))
	for i, l := range labels {
		require.NoError(t, d.Push(LabeledImage{Data: bytes.Repeat([]byte{byte(i + 1)}, 4), Label: l}))
	}
	return d
}

func randomDataset(t testing.TB, rng *testutil.RNG, width, height uint16, bitDepth uint8, vocab []string, n int) *Dataset {
	t.Helper()
	d := NewDataset(NewHeader(width, height, bitDepth, vocab...))
	for range n {
		img := LabeledImage{Data: rng.Image(d.Header().ImageSize()), Label: rng.Label(len(vocab))}
		require.NoError(t, d.Push(img))
	}
	return d
}

func labelsOf(d *Dataset) []uint16 {
	labels := make([]uint16, 0, d.Len())
	for _, img := range d.All() {
		labels = append(labels, img.Label)
	}
	return labels
}

func encodeDataset(t *testing.T, d *Dataset, opts ...Option) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, d.Write(&buf, opts...))
	return buf.Bytes()
}
