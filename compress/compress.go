package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrCorrupt is returned when a stream cannot be decoded.
	ErrCorrupt = errors.New("compress: corrupt stream")
	// ErrTooLarge is returned when a stream decodes to more bytes than allowed.
	ErrTooLarge = errors.New("compress: stream exceeds size limit")
	// ErrUnknownAlgorithm is returned for unrecognized names or magic bytes.
	ErrUnknownAlgorithm = errors.New("compress: unknown algorithm")
)

// maxPrealloc caps the buffer reserved up front from an untrusted size.
const maxPrealloc = 64 << 20

// Algorithm identifies a stream format.
type Algorithm uint8

const (
	Deflate Algorithm = iota
	Zstd
	LZ4
)

func (a Algorithm) String() string {
	switch a {
	case Deflate:
		return "deflate"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
}

// ParseAlgorithm maps a name ("deflate", "zlib", "zstd", "lz4") to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "deflate", "zlib", "":
		return Deflate, nil
	case "zstd", "zstandard":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// Compressor encodes and decodes whole byte slices.
// Implementations must be safe for concurrent use.
type Compressor interface {
	// Algorithm returns the stream format produced by Compress.
	Algorithm() Algorithm
	// Compress encodes src.
	Compress(src []byte) ([]byte, error)
	// Decompress decodes src, producing at most maxSize bytes.
	// A negative maxSize disables the bound.
	Decompress(src []byte, maxSize int) ([]byte, error)
}

// Default is the compressor used for new files.
var Default Compressor = NewDeflate()

// For returns the maximum-level compressor for a.
func For(a Algorithm) (Compressor, error) {
	switch a {
	case Deflate:
		return NewDeflate(), nil
	case Zstd:
		return NewZstd(), nil
	case LZ4:
		return NewLZ4(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, a)
	}
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect identifies the stream format from its leading bytes.
func Detect(src []byte) (Algorithm, error) {
	switch {
	case bytes.HasPrefix(src, zstdMagic):
		return Zstd, nil
	case bytes.HasPrefix(src, lz4Magic):
		return LZ4, nil
	case isZlibHeader(src):
		return Deflate, nil
	default:
		return 0, ErrUnknownAlgorithm
	}
}

// isZlibHeader checks the RFC 1950 CMF/FLG pair: method 8 and a header
// checksum that is a multiple of 31.
func isZlibHeader(src []byte) bool {
	if len(src) < 2 {
		return false
	}
	cmf, flg := src[0], src[1]
	if cmf&0x0f != 8 || cmf>>4 > 7 {
		return false
	}
	return (uint16(cmf)<<8|uint16(flg))%31 == 0
}

// Decompress detects the format of src and decodes it.
func Decompress(src []byte, maxSize int) ([]byte, error) {
	algo, err := Detect(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	c, err := For(algo)
	if err != nil {
		return nil, err
	}
	return c.Decompress(src, maxSize)
}

// readAllBounded drains r into a buffer sized from maxSize, failing with
// ErrTooLarge once more than maxSize bytes are produced.
func readAllBounded(r io.Reader, maxSize int) ([]byte, error) {
	var buf bytes.Buffer
	if maxSize < 0 {
		if _, err := io.Copy(&buf, r); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		return buf.Bytes(), nil
	}

	buf.Grow(min(maxSize, maxPrealloc))
	n, err := io.Copy(&buf, io.LimitReader(r, int64(maxSize)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if n > int64(maxSize) {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, maxSize)
	}
	return buf.Bytes(), nil
}
