package compress

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
		zstd.WithEncoderConcurrency(1),
	)
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
}

// ZstdCompressor writes Zstandard frames at SpeedBestCompression.
type ZstdCompressor struct{}

// NewZstd returns a Zstandard compressor.
func NewZstd() *ZstdCompressor { return &ZstdCompressor{} }

// Algorithm implements Compressor.
func (*ZstdCompressor) Algorithm() Algorithm { return Zstd }

// Compress implements Compressor.
func (*ZstdCompressor) Compress(src []byte) ([]byte, error) {
	enc, err := getZstdEncoder()
	if err != nil {
		return nil, err
	}
	defer zstdEncoderPool.Put(enc)
	return enc.EncodeAll(src, make([]byte, 0, len(src)/2)), nil
}

// Decompress implements Compressor.
func (*ZstdCompressor) Decompress(src []byte, maxSize int) ([]byte, error) {
	dec, err := getZstdDecoder()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = dec.Reset(nil)
		zstdDecoderPool.Put(dec)
	}()
	if err := dec.Reset(bytes.NewReader(src)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return readAllBounded(dec, maxSize)
}
