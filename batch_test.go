package jdx

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/jdx/blobstore"
	"github.com/hupe1980/jdx/resource"
	"github.com/hupe1980/jdx/testutil"
)

// shardStore writes n random 8x8 shards whose vocabularies overlap.
func shardStore(t *testing.T, n int) (blobstore.Store, []string, []*Dataset) {
	t.Helper()
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	rng := testutil.NewRNG(2024)
	vocab := rng.Vocabulary(30)

	names := make([]string, n)
	shards := make([]*Dataset, n)
	for i := range n {
		lo := rng.Intn(20)
		shards[i] = randomDataset(t, rng, 8, 8, 8, vocab[lo:lo+10], 25+i)
		names[i] = fmt.Sprintf("shard-%03d.jdx", i)
		require.NoError(t, shards[i].WriteToStore(ctx, store, names[i]))
	}
	return store, names, shards
}

func TestMergeAll(t *testing.T) {
	store, names, shards := shardStore(t, 12)

	want := shards[0].Clone()
	for _, s := range shards[1:] {
		require.NoError(t, want.Extend(s))
	}

	for _, workers := range []int{0, 1, 3, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			metrics := &BasicMetricsCollector{}
			got, err := MergeAll(context.Background(), store, names, WithWorkers(workers), WithMetricsCollector(metrics))
			require.NoError(t, err)
			require.NoError(t, got.Validate())
			assertSameDataset(t, want, got)

			stats := metrics.GetStats()
			assert.Equal(t, int64(len(names)), stats.ReadCount)
			assert.Equal(t, int64(len(names)-1), stats.MergeCount)
			assert.Equal(t, int64(want.Len()-shards[0].Len()), stats.MergedImages)
		})
	}
}

func TestMergeAll_SingleInput(t *testing.T) {
	store, names, shards := shardStore(t, 1)

	got, err := MergeAll(context.Background(), store, names)
	require.NoError(t, err)
	assertSameDataset(t, shards[0], got)
}

func TestMergeAll_NoInputs(t *testing.T) {
	_, err := MergeAll(context.Background(), blobstore.NewMemoryStore(), nil)
	assert.ErrorIs(t, err, ErrNoInputs)
}

func TestMergeAll_MissingInput(t *testing.T) {
	store, names, _ := shardStore(t, 3)
	names = append(names, "missing.jdx")

	_, err := MergeAll(context.Background(), store, names, WithWorkers(2))
	require.ErrorIs(t, err, ErrOpenFile)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestMergeAll_IncompatibleInput(t *testing.T) {
	ctx := context.Background()
	store, names, _ := shardStore(t, 2)

	odd := NewDataset(NewHeader(4, 4, 8, "cat"))
	require.NoError(t, odd.Push(LabeledImage{Data: make([]byte, 16)}))
	require.NoError(t, odd.WriteToStore(ctx, store, "odd.jdx"))
	names = append(names, "odd.jdx")

	metrics := &BasicMetricsCollector{}
	_, err := MergeAll(ctx, store, names, WithMetricsCollector(metrics))
	require.ErrorIs(t, err, ErrIncompatibleDimensions)
	assert.Contains(t, err.Error(), "odd.jdx")
	assert.Equal(t, int64(1), metrics.GetStats().MergeErrors)
}

func TestMergeAll_ResourceController(t *testing.T) {
	store, names, shards := shardStore(t, 6)

	rc := resource.NewController(resource.Config{
		MaxWorkers:         2,
		MemoryLimitBytes:   1 << 20,
		IOLimitBytesPerSec: 1 << 20,
	})
	got, err := MergeAll(context.Background(), store, names, WithResourceController(rc), WithWorkers(4))
	require.NoError(t, err)
	assert.Zero(t, rc.MemoryUsage())

	total := 0
	for _, s := range shards {
		total += s.Len()
	}
	assert.Equal(t, total, got.Len())
}

func TestMergeAll_BlobLargerThanMemoryLimit(t *testing.T) {
	store, names, _ := shardStore(t, 2)

	rc := resource.NewController(resource.Config{MaxWorkers: 1, MemoryLimitBytes: 16})
	_, err := MergeAll(context.Background(), store, names, WithResourceController(rc))
	require.ErrorIs(t, err, resource.ErrExceedsLimit)
	assert.Zero(t, rc.MemoryUsage())
}

func TestMergeAll_Canceled(t *testing.T) {
	store, names, _ := shardStore(t, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := MergeAll(ctx, store, names)
	assert.ErrorIs(t, err, context.Canceled)
}
