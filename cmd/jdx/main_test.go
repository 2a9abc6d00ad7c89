package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/jdx"
	"github.com/hupe1980/jdx/compress"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("JDX_CONFIG", filepath.Join(t.TempDir(), "none.yaml"))

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(context.Background(), append([]string{"jdx"}, args...))
	return out.String(), err
}

func writeDataset(t *testing.T, path string, vocab []string, labels ...uint16) {
	t.Helper()
	d := jdx.NewDataset(jdx.NewHeader(2, 2, 8, vocab...))
	for i, l := range labels {
		require.NoError(t, d.Push(jdx.LabeledImage{Data: bytes.Repeat([]byte{byte(i)}, 4), Label: l}))
	}
	require.NoError(t, d.WriteFile(path))
}

func TestCLI_MergeStatsSubset(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, filepath.Join(dir, "a.jdx"), []string{"cat", "dog"}, 0, 1)
	writeDataset(t, filepath.Join(dir, "b.jdx"), []string{"dog", "bird"}, 0, 1, 1)

	out, err := run(t, "--root", dir, "merge", "-o", "all.jdx", "a.jdx", "b.jdx")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote all.jdx: 5 images, 3 labels")

	merged, err := jdx.ReadFile(filepath.Join(dir, "all.jdx"))
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog", "bird"}, merged.Header().Labels)

	out, err = run(t, "--root", dir, "stats", "--json", "all.jdx")
	require.NoError(t, err)
	var counts []jdx.LabelCount
	require.NoError(t, json.Unmarshal([]byte(out), &counts))
	assert.Equal(t, []jdx.LabelCount{
		{Label: 0, Name: "cat", Count: 1},
		{Label: 1, Name: "dog", Count: 2},
		{Label: 2, Name: "bird", Count: 2},
	}, counts)

	out, err = run(t, "--root", dir, "subset", "-o", "birds.jdx", "--label", "bird", "all.jdx")
	require.NoError(t, err)
	assert.Contains(t, out, "2 of 5 images")
}

func TestCLI_InspectAndRecompress(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, filepath.Join(dir, "a.jdx"), []string{"cat", "dog"}, 0, 1, 1)

	out, err := run(t, "--root", dir, "recompress", "-o", "a.lz4.jdx", "--compression", "lz4", "a.jdx")
	require.NoError(t, err)
	assert.Contains(t, out, "with lz4")

	out, err = run(t, "--root", dir, "inspect", "--json", "a.lz4.jdx")
	require.NoError(t, err)
	var h headerJSON
	require.NoError(t, json.Unmarshal([]byte(out), &h))
	assert.Equal(t, uint64(3), h.ImageCount)
	assert.Equal(t, []string{"cat", "dog"}, h.Labels)
	assert.Equal(t, 4, h.ImageSize)

	out, err = run(t, "--root", dir, "inspect", "a.jdx")
	require.NoError(t, err)
	assert.Contains(t, out, "geometry:    2x2, 8 bits per pixel")
	assert.Contains(t, out, "images:      3")

	_, err = compress.ParseAlgorithm("brotli")
	require.Error(t, err)
	_, err = run(t, "--root", dir, "recompress", "-o", "x.jdx", "--compression", "brotli", "a.jdx")
	assert.ErrorIs(t, err, compress.ErrUnknownAlgorithm)
}

func TestCLI_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "--root", dir, "inspect", "missing.jdx")
	assert.ErrorIs(t, err, jdx.ErrOpenFile)

	_, err = run(t, "--root", dir, "--store", "ftp", "inspect", "a.jdx")
	assert.ErrorContains(t, err, "unknown store")

	_, err = run(t, "--store", "s3", "inspect", "a.jdx")
	assert.ErrorContains(t, err, "--bucket is required")

	_, err = run(t, "--root", dir, "--log-level", "loud", "inspect", "a.jdx")
	assert.ErrorContains(t, err, "invalid --log-level")
}
