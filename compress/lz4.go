package compress

import (
	"bytes"

	"github.com/pierrec/lz4/v4"
)

// LZ4Compressor writes LZ4 frames at level 9.
type LZ4Compressor struct{}

// NewLZ4 returns an LZ4 frame compressor.
func NewLZ4() *LZ4Compressor { return &LZ4Compressor{} }

// Algorithm implements Compressor.
func (*LZ4Compressor) Algorithm() Algorithm { return LZ4 }

// Compress implements Compressor.
func (*LZ4Compressor) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if err := zw.Apply(lz4.CompressionLevelOption(lz4.Level9)); err != nil {
		return nil, err
	}
	if _, err := zw.Write(src); err != nil {
		_ = zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress implements Compressor.
func (*LZ4Compressor) Decompress(src []byte, maxSize int) ([]byte, error) {
	return readAllBounded(lz4.NewReader(bytes.NewReader(src)), maxSize)
}
