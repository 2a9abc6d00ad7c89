package compress

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zlib"
)

// DeflateCompressor writes zlib-framed deflate streams.
type DeflateCompressor struct {
	level int
}

// NewDeflate returns a deflate compressor at zlib.BestCompression.
func NewDeflate() *DeflateCompressor {
	return &DeflateCompressor{level: zlib.BestCompression}
}

// Algorithm implements Compressor.
func (*DeflateCompressor) Algorithm() Algorithm { return Deflate }

// Compress implements Compressor.
func (c *DeflateCompressor) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, c.level)
	if err != nil {
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
func (c *DeflateCompressor) Decompress(src []byte, maxSize int) (out []byte, err error) {
	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	defer func() {
		if cerr := zr.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrCorrupt, cerr)
		}
	}()
	return readAllBounded(zr, maxSize)
}
