package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() []byte {
	var buf bytes.Buffer
	for i := 0; i < 4096; i++ {
		buf.WriteByte(byte(i % 17))
		buf.WriteByte(byte(i / 256))
	}
	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	payload := samplePayload()

	for _, algo := range []Algorithm{Deflate, Zstd, LZ4} {
		t.Run(algo.String(), func(t *testing.T) {
			c, err := For(algo)
			require.NoError(t, err)
			assert.Equal(t, algo, c.Algorithm())

			packed, err := c.Compress(payload)
			require.NoError(t, err)
			assert.Less(t, len(packed), len(payload))

			detected, err := Detect(packed)
			require.NoError(t, err)
			assert.Equal(t, algo, detected)

			out, err := c.Decompress(packed, len(payload))
			require.NoError(t, err)
			assert.Equal(t, payload, out)

			out, err = Decompress(packed, -1)
			require.NoError(t, err)
			assert.Equal(t, payload, out)
		})
	}
}

func TestCompressDeterministic(t *testing.T) {
	payload := samplePayload()

	for _, algo := range []Algorithm{Deflate, Zstd, LZ4} {
		c, err := For(algo)
		require.NoError(t, err)

		a, err := c.Compress(payload)
		require.NoError(t, err)
		b, err := c.Compress(payload)
		require.NoError(t, err)
		assert.Equal(t, a, b, algo.String())
	}
}

func TestDecompressSizeLimit(t *testing.T) {
	payload := samplePayload()

	for _, algo := range []Algorithm{Deflate, Zstd, LZ4} {
		c, err := For(algo)
		require.NoError(t, err)
		packed, err := c.Compress(payload)
		require.NoError(t, err)

		_, err = c.Decompress(packed, len(payload)-1)
		assert.ErrorIs(t, err, ErrTooLarge, algo.String())
	}
}

func TestDecompressCorrupt(t *testing.T) {
	packed, err := NewDeflate().Compress(samplePayload())
	require.NoError(t, err)

	truncated := packed[:len(packed)/2]
	_, err = NewDeflate().Decompress(truncated, -1)
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = Decompress([]byte{0xde, 0xad, 0xbe, 0xef}, -1)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestDetect(t *testing.T) {
	_, err := Detect(nil)
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)

	algo, err := Detect([]byte{0x78, 0xda})
	require.NoError(t, err)
	assert.Equal(t, Deflate, algo)

	_, err = Detect([]byte{0x78, 0x00})
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestParseAlgorithm(t *testing.T) {
	tests := map[string]Algorithm{
		"deflate": Deflate,
		"ZLIB":    Deflate,
		"":        Deflate,
		"zstd":    Zstd,
		" lz4 ":   LZ4,
	}
	for name, want := range tests {
		got, err := ParseAlgorithm(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseAlgorithm("brotli")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}
