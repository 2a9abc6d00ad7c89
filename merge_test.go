package jdx

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/jdx/testutil"
)

func TestAppend_ReconcilesLabels(t *testing.T) {
	a := newTestDataset(t, []string{"cat", "dog"}, 0, 1)
	b := newTestDataset(t, []string{"dog", "bird"}, 0, 1)
	bImages := []byte{b.At(0).Data[0], b.At(1).Data[0]}

	stats, err := a.AppendWithStats(b)
	require.NoError(t, err)

	assert.Equal(t, []string{"cat", "dog", "bird"}, a.Header().Labels)
	assert.Equal(t, []uint16{0, 1, 1, 2}, labelsOf(a))
	assert.Equal(t, uint64(4), a.Header().ImageCount)
	assert.Equal(t, 4, a.Len())
	assert.Equal(t, bImages[0], a.At(2).Data[0])
	assert.Equal(t, bImages[1], a.At(3).Data[0])
	assert.Equal(t, MergeStats{ImagesAdded: 2, LabelsAdded: 1, LabelsReused: 1}, stats)

	assert.Equal(t, 0, b.Len(), "append consumes its argument")
	assert.Equal(t, uint64(0), b.Header().ImageCount)
	assert.Equal(t, []string{"dog", "bird"}, b.Header().Labels)

	item, _ := a.Item(2)
	assert.Equal(t, "dog", item.LabelName)
	item, _ = a.Item(3)
	assert.Equal(t, "bird", item.LabelName)
}

func TestAppend_LabelNamesSurvive(t *testing.T) {
	rng := testutil.NewRNG(4711)
	vocab := rng.Vocabulary(40)

	a := randomDataset(t, rng, 4, 4, 8, vocab[:25], 200)
	b := randomDataset(t, rng, 4, 4, 8, vocab[15:], 300)

	var want []string
	for i := range a.Len() {
		item, _ := a.Item(i)
		want = append(want, item.LabelName)
	}
	for i := range b.Len() {
		item, _ := b.Item(i)
		want = append(want, item.LabelName)
	}

	require.NoError(t, a.Append(b))
	require.NoError(t, a.Validate())
	assert.LessOrEqual(t, len(a.Header().Labels), 40)
	assert.Equal(t, vocab[:25], a.Header().Labels[:25], "existing indices never move")

	for i, name := range want {
		item, ok := a.Item(i)
		require.True(t, ok)
		assert.Equal(t, name, item.LabelName, "image %d", i)
	}
}

func TestAppend_RejectsGeometry(t *testing.T) {
	tests := []struct {
		field string
		other *Header
	}{
		{"image_width", NewHeader(3, 2, 8, "cat")},
		{"image_height", NewHeader(2, 3, 8, "cat")},
		{"bit_depth", NewHeader(2, 2, 16, "cat")},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			a := newTestDataset(t, []string{"cat"}, 0)
			other := NewDataset(tt.other)
			require.NoError(t, other.Push(LabeledImage{Data: make([]byte, tt.other.ImageSize())}))

			err := a.Append(other)
			require.ErrorIs(t, err, ErrIncompatibleDimensions)
			var gm *GeometryMismatchError
			require.ErrorAs(t, err, &gm)
			assert.Equal(t, tt.field, gm.Field)

			assert.ErrorIs(t, a.Extend(other), ErrIncompatibleDimensions)
			assert.Equal(t, 1, a.Len())
			assert.Equal(t, 1, other.Len())
		})
	}
}

func TestAppend_DifferentVocabularySameGeometry(t *testing.T) {
	a := newTestDataset(t, []string{"cat"}, 0)
	b := newTestDataset(t, []string{"ship", "plane"}, 1, 0)
	require.NoError(t, a.Append(b))
	assert.Equal(t, []string{"cat", "plane", "ship"}, a.Header().Labels)
	assert.Equal(t, []uint16{0, 1, 2}, labelsOf(a))
}

func TestAppend_FirstMatchWins(t *testing.T) {
	a := newTestDataset(t, []string{"cat", "dog", "cat"}, 2)
	b := newTestDataset(t, []string{"cat"}, 0)
	require.NoError(t, a.Append(b))

	assert.Equal(t, []string{"cat", "dog", "cat"}, a.Header().Labels)
	assert.Equal(t, []uint16{2, 0}, labelsOf(a))
}

func TestAppend_Self(t *testing.T) {
	d := newTestDataset(t, []string{"cat", "dog"}, 0, 1, 1)

	require.NoError(t, d.Append(d))
	assert.Equal(t, []string{"cat", "dog"}, d.Header().Labels)
	assert.Equal(t, []uint16{0, 1, 1, 0, 1, 1}, labelsOf(d))
	assert.Equal(t, uint64(6), d.Header().ImageCount)

	d.At(3).Data[0] = 0xff
	assert.Equal(t, byte(1), d.At(0).Data[0], "self append copies image data")
}

func TestAppend_SameVocabularyAddsNoLabels(t *testing.T) {
	a := newTestDataset(t, []string{"cat", "dog"}, 0, 1)
	b := newTestDataset(t, []string{"cat", "dog"}, 1, 1, 0)

	stats, err := a.AppendWithStats(b)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.LabelsAdded)
	assert.Equal(t, 2, stats.LabelsReused)
	assert.Equal(t, []uint16{0, 1, 1, 1, 0}, labelsOf(a))
}

func TestAppend_LabelCeiling(t *testing.T) {
	vocab := make([]string, MaxLabels)
	for i := range vocab {
		vocab[i] = fmt.Sprintf("l%d", i)
	}
	a := newTestDataset(t, vocab, 0, MaxLabels-1)
	b := newTestDataset(t, []string{"l7", "unseen"}, 0, 1)

	err := a.Append(b)
	require.ErrorIs(t, err, ErrPastLabelLimit)
	var le *LabelLimitError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, MaxLabels, le.Have)
	assert.Equal(t, 1, le.Need)

	assert.Equal(t, 2, a.Len(), "failed merge leaves self untouched")
	assert.Equal(t, uint64(2), a.Header().ImageCount)
	assert.Len(t, a.Header().Labels, MaxLabels)
	assert.Equal(t, []uint16{0, MaxLabels - 1}, labelsOf(a))

	assert.Equal(t, 2, b.Len(), "failed merge leaves other untouched")
	assert.Equal(t, []uint16{0, 1}, labelsOf(b))

	known := newTestDataset(t, []string{"l7", "l65534"}, 1, 0)
	require.NoError(t, a.Append(known), "known labels still merge at the ceiling")
	assert.Equal(t, []uint16{0, MaxLabels - 1, MaxLabels - 1, 7}, labelsOf(a))
}

func TestAppend_FillsToCeiling(t *testing.T) {
	vocab := make([]string, MaxLabels-1)
	for i := range vocab {
		vocab[i] = fmt.Sprintf("l%d", i)
	}
	a := newTestDataset(t, vocab)
	b := newTestDataset(t, []string{"last"}, 0)

	require.NoError(t, a.Append(b))
	assert.Len(t, a.Header().Labels, MaxLabels)
	assert.Equal(t, []uint16{MaxLabels - 1}, labelsOf(a))
}

func TestAppend_InvalidSourceLabel(t *testing.T) {
	a := newTestDataset(t, []string{"cat"}, 0)
	b := newTestDataset(t, []string{"dog"}, 0, 3)

	assert.ErrorIs(t, a.Append(b), ErrInvalidLabel)
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, []string{"cat"}, a.Header().Labels)
	assert.Equal(t, 2, b.Len())
}

func TestExtend_LeavesArgumentUntouched(t *testing.T) {
	a := newTestDataset(t, []string{"cat", "dog"}, 0, 1)
	b := newTestDataset(t, []string{"dog", "bird"}, 0, 1)
	before := b.Clone()

	stats, err := a.ExtendWithStats(b)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ImagesAdded)

	assert.Equal(t, []uint16{0, 1, 1, 2}, labelsOf(a))
	assert.Equal(t, before.Header(), b.Header())
	assert.Equal(t, labelsOf(before), labelsOf(b))

	a.At(2).Data[0] = 0xee
	assert.NotEqual(t, byte(0xee), b.At(0).Data[0])
}
