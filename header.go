package jdx

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/hupe1980/jdx/internal/conv"
)

const (
	// MaxLabels is the largest vocabulary a header can carry. Label values are
	// 16-bit indices and the on-disk label count is a u16.
	MaxLabels = 65535

	// headerFixedSize covers version, width, height, bit depth, image count and
	// the label count that precedes the vocabulary.
	headerFixedSize = 4 + 2 + 2 + 1 + 8 + 2
)

// Header describes the geometry and vocabulary of a dataset.
type Header struct {
	Version Version

	ImageWidth  uint16
	ImageHeight uint16
	BitDepth    uint8
	ImageCount  uint64

	// Labels is the vocabulary. A label value is an index into this slice.
	Labels []string
}

// NewHeader returns an empty-vocabulary header stamped with LibraryVersion.
func NewHeader(width, height uint16, bitDepth uint8, labels ...string) *Header {
	return &Header{
		Version:     LibraryVersion(),
		ImageWidth:  width,
		ImageHeight: height,
		BitDepth:    bitDepth,
		Labels:      slices.Clone(labels),
	}
}

// ImageSize returns the number of bytes of one image.
func (h *Header) ImageSize() int {
	return int(h.ImageWidth) * int(h.ImageHeight) * int(h.BitDepth) / 8
}

// IsCompatibleWith reports whether images of other can be stored under h.
// Version and vocabulary are not part of compatibility.
func (h *Header) IsCompatibleWith(other *Header) bool {
	return h.ImageWidth == other.ImageWidth &&
		h.ImageHeight == other.ImageHeight &&
		h.BitDepth == other.BitDepth
}

// Clone returns a deep copy of h.
func (h *Header) Clone() *Header {
	c := *h
	c.Labels = slices.Clone(h.Labels)
	return &c
}

// Equal reports whether both headers carry identical fields.
func (h *Header) Equal(other *Header) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.Version == other.Version &&
		h.ImageWidth == other.ImageWidth &&
		h.ImageHeight == other.ImageHeight &&
		h.BitDepth == other.BitDepth &&
		h.ImageCount == other.ImageCount &&
		slices.Equal(h.Labels, other.Labels)
}

// LabelIndex returns the position of the first vocabulary entry equal to
// name, or -1.
func (h *Header) LabelIndex(name string) int {
	return slices.Index(h.Labels, name)
}

// Validate checks that h can be encoded and that its geometry is byte aligned.
func (h *Header) Validate() error {
	if h.BitDepth == 0 || h.BitDepth%8 != 0 {
		return fmt.Errorf("%w: bit depth %d is not a positive multiple of 8", ErrInvalidHeader, h.BitDepth)
	}
	if len(h.Labels) > MaxLabels {
		return fmt.Errorf("%w: vocabulary holds %d labels (max %d)", ErrPastLabelLimit, len(h.Labels), MaxLabels)
	}
	for i, label := range h.Labels {
		if strings.IndexByte(label, 0) >= 0 {
			return fmt.Errorf("%w: label %d contains a NUL byte", ErrInvalidHeader, i)
		}
	}
	return nil
}

// EncodedSize returns the number of bytes MarshalBinary produces.
func (h *Header) EncodedSize() int {
	n := headerFixedSize
	for _, label := range h.Labels {
		n += len(label) + 1
	}
	return n
}

// MarshalBinary encodes the header in file order.
func (h *Header) MarshalBinary() ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	labelCount, err := conv.IntToUint16(len(h.Labels))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPastLabelLimit, err)
	}
	buf := make([]byte, headerFixedSize, h.EncodedSize())
	buf[0] = byte(h.Version.BuildStage)
	buf[1] = h.Version.Patch
	buf[2] = h.Version.Minor
	buf[3] = h.Version.Major
	binary.LittleEndian.PutUint16(buf[4:], h.ImageWidth)
	binary.LittleEndian.PutUint16(buf[6:], h.ImageHeight)
	buf[8] = h.BitDepth
	binary.LittleEndian.PutUint64(buf[9:], h.ImageCount)
	binary.LittleEndian.PutUint16(buf[17:], labelCount)
	for _, label := range h.Labels {
		buf = append(buf, label...)
		buf = append(buf, 0)
	}
	return buf, nil
}

// UnmarshalBinary decodes a header. Trailing bytes after the vocabulary are
// rejected.
func (h *Header) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	decoded, err := readHeader(r, "")
	if err != nil {
		return err
	}
	if r.Len() != 0 {
		return corruptf("%d trailing bytes after header", r.Len())
	}
	*h = *decoded
	return nil
}

// Write encodes the header to w.
func (h *Header) Write(w io.Writer) error {
	buf, err := h.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := w.Write(buf); err != nil {
		return fileError(ErrWriteFile, "", err)
	}
	return nil
}

// String returns a one-line summary.
func (h *Header) String() string {
	return fmt.Sprintf("jdx %s %dx%dx%d images=%d labels=%d",
		h.Version, h.ImageWidth, h.ImageHeight, h.BitDepth, h.ImageCount, len(h.Labels))
}

type byteReader interface {
	io.Reader
	io.ByteReader
}

// ReadHeader decodes a header from r.
//
// If r does not implement io.ByteReader it is wrapped in a bufio.Reader, which
// may consume bytes past the header. Pass a *bufio.Reader to keep reading the
// body from the same stream.
func ReadHeader(r io.Reader) (*Header, error) {
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return readHeader(br, "")
}

func readHeader(r byteReader, path string) (*Header, error) {
	var fixed [headerFixedSize]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return nil, readError(path, "header", err)
	}

	h := &Header{
		Version: Version{
			BuildStage: BuildStage(fixed[0]),
			Patch:      fixed[1],
			Minor:      fixed[2],
			Major:      fixed[3],
		},
		ImageWidth:  binary.LittleEndian.Uint16(fixed[4:]),
		ImageHeight: binary.LittleEndian.Uint16(fixed[6:]),
		BitDepth:    fixed[8],
		ImageCount:  binary.LittleEndian.Uint64(fixed[9:]),
	}
	if h.BitDepth == 0 || h.BitDepth%8 != 0 {
		return nil, corruptf("bit depth %d is not a positive multiple of 8", h.BitDepth)
	}

	labelCount := int(binary.LittleEndian.Uint16(fixed[17:]))
	h.Labels = make([]string, 0, labelCount)
	var scratch []byte
	for i := 0; i < labelCount; i++ {
		scratch = scratch[:0]
		for {
			c, err := r.ReadByte()
			if err != nil {
				return nil, readError(path, fmt.Sprintf("label %d of %d", i, labelCount), err)
			}
			if c == 0 {
				break
			}
			scratch = append(scratch, c)
		}
		h.Labels = append(h.Labels, string(scratch))
	}
	return h, nil
}

// readError classifies a read failure: running out of input means the layout
// is truncated, anything else is an I/O failure.
func readError(path, what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated %s: %w", ErrCorruptFile, what, err)
	}
	return fileError(ErrReadFile, path, err)
}
