package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/jdx/internal/fs"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	data := []byte("hello world, this is a dataset blob")

	w, err := store.Create(ctx, "train/part-001.jdx")
	require.NoError(t, err)
	n, err := w.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.NoError(t, w.Sync())
	require.NoError(t, w.Close())

	_, err = os.Stat(filepath.Join(tmpDir, "train", "part-001.jdx"))
	require.NoError(t, err)

	blob, err := store.Open(ctx, "train/part-001.jdx")
	require.NoError(t, err)
	defer blob.Close()
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err = blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "world", string(buf))

	rr, err := blob.ReadRange(ctx, 13, 4)
	require.NoError(t, err)
	content, err := io.ReadAll(rr)
	require.NoError(t, err)
	require.NoError(t, rr.Close())
	require.Equal(t, "this", string(content))

	require.NoError(t, store.Put(ctx, "train/part-002.jdx", []byte("second")))
	require.NoError(t, store.Put(ctx, "test/part-001.jdx", []byte("third")))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"test/part-001.jdx", "train/part-001.jdx", "train/part-002.jdx"}, names)

	names, err = store.List(ctx, "train/")
	require.NoError(t, err)
	require.Equal(t, []string{"train/part-001.jdx", "train/part-002.jdx"}, names)

	require.NoError(t, store.Delete(ctx, "train/part-002.jdx"))
	require.NoError(t, store.Delete(ctx, "train/part-002.jdx"))

	_, err = store.Open(ctx, "train/part-002.jdx")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_ReadRangeBoundaries(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	data := []byte("0123456789")
	require.NoError(t, store.Put(ctx, "boundary.jdx", data))

	blob, err := store.Open(ctx, "boundary.jdx")
	require.NoError(t, err)
	defer blob.Close()

	r, err := blob.ReadRange(ctx, 0, 10)
	require.NoError(t, err)
	content, _ := io.ReadAll(r)
	require.Equal(t, data, content)

	r, err = blob.ReadRange(ctx, 8, 5)
	require.NoError(t, err)
	content, err = io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "89", string(content))

	_, err = blob.ReadRange(ctx, 20, 5)
	require.ErrorIs(t, err, io.EOF)

	all, err := NewReader(ctx, blob)
	require.NoError(t, err)
	content, err = io.ReadAll(all)
	require.NoError(t, err)
	require.Equal(t, data, content)
}

func TestLocalStore_AbortLeavesNothing(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	w, err := store.Create(ctx, "aborted.jdx")
	require.NoError(t, err)
	_, err = w.Write([]byte("partial"))
	require.NoError(t, err)
	require.NoError(t, w.Abort())

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStore_FailedRenameKeepsOldBlob(t *testing.T) {
	tmpDir := t.TempDir()
	faulty := fs.NewFaultyFS(nil)
	store := NewLocalStoreFS(tmpDir, faulty)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "data.jdx", []byte("old")))

	fault := fs.NoFault()
	fault.FailOnRename = true
	faulty.AddRule("data.jdx", fault)

	err := store.Put(ctx, "data.jdx", []byte("new"))
	require.ErrorIs(t, err, fs.ErrInjected)

	got, err := ReadAll(ctx, store, "data.jdx")
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"data.jdx"}, names)
}

func TestLocalStore_InvalidNames(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "../escape.jdx", "a/../../b.jdx"} {
		_, err := store.Create(ctx, name)
		assert.Error(t, err, name)
	}
}

func TestLocalStore_EmptyBlob(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "empty.jdx", nil))
	got, err := ReadAll(ctx, store, "empty.jdx")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLocalStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}
