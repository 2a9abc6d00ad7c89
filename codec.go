package jdx

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/jdx/compress"
	"github.com/hupe1980/jdx/internal/conv"
)

// bodyLengthSize is the width of the uncompressed body length that follows
// the header.
const bodyLengthSize = 8

// labelSize is the width of the label trailing every image record.
const labelSize = 2

// RecordSize returns the encoded size of one image record: the image bytes
// followed by a u16 label.
func (h *Header) RecordSize() int {
	return h.ImageSize() + labelSize
}

// ReadDataset decodes a complete dataset from r.
//
// The compressed body may be zlib, zstd or LZ4; the format is detected from
// its leading bytes. Truncated input and malformed bodies fail with
// ErrCorruptFile, other read failures with ErrReadFile.
func ReadDataset(r io.Reader, optFns ...Option) (*Dataset, error) {
	o := newOptions(optFns)
	return readDatasetFrom(context.Background(), r, "", o)
}

// Write encodes d to w using the configured compressor.
func (d *Dataset) Write(w io.Writer, optFns ...Option) error {
	o := newOptions(optFns)
	start := time.Now()
	n, err := d.encode(w, "", o)
	o.metricsCollector.RecordWrite(n, time.Since(start), err)
	o.logger.LogWrite(context.Background(), "", d.header, int(n), time.Since(start), err)
	return err
}

// readDatasetFrom wraps r for byte-wise header decoding, decodes the dataset
// and reports the read.
func readDatasetFrom(ctx context.Context, r io.Reader, path string, o options) (*Dataset, error) {
	start := time.Now()
	cr := &countingReader{r: r}
	br := bufio.NewReaderSize(cr, 64<<10)

	d, err := decodeDataset(br, path)
	o.metricsCollector.RecordRead(cr.n, time.Since(start), err)
	var h *Header
	if d != nil {
		h = d.header
	}
	o.logger.LogRead(ctx, path, h, time.Since(start), err)
	return d, err
}

func decodeDataset(r byteReader, path string) (*Dataset, error) {
	h, err := readHeader(r, path)
	if err != nil {
		return nil, err
	}

	var lenBuf [bodyLengthSize]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, readError(path, "body length", err)
	}
	bodyLen := binary.LittleEndian.Uint64(lenBuf[:])

	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, fileError(ErrReadFile, path, err)
	}

	images, err := decodeBody(h, bodyLen, compressed)
	if err != nil {
		return nil, err
	}
	return &Dataset{header: h, images: images}, nil
}

// decodeBody checks the declared layout against the header, inflates the
// body and splits it into records. Image data aliases the inflated buffer.
func decodeBody(h *Header, bodyLen uint64, compressed []byte) ([]LabeledImage, error) {
	recordSize := uint64(h.RecordSize())
	if bodyLen%recordSize != 0 {
		return nil, corruptf("body length %d is not a multiple of record size %d", bodyLen, recordSize)
	}
	if count := bodyLen / recordSize; count != h.ImageCount {
		return nil, corruptf("body holds %d records, header declares %d images", count, h.ImageCount)
	}
	size, err := conv.Uint64ToInt(bodyLen)
	if err != nil {
		return nil, fmt.Errorf("%w: body length: %w", ErrCorruptFile, err)
	}

	if size == 0 && len(compressed) == 0 {
		return nil, nil
	}

	body, err := compress.Decompress(compressed, size)
	if err != nil {
		return nil, fmt.Errorf("%w: body: %w", ErrCorruptFile, err)
	}
	if len(body) != size {
		return nil, corruptf("body inflates to %d bytes, header declares %d", len(body), bodyLen)
	}

	imageSize := h.ImageSize()
	images := make([]LabeledImage, 0, h.ImageCount)
	for off := 0; off < len(body); off += int(recordSize) {
		end := off + imageSize
		label := binary.LittleEndian.Uint16(body[end:])
		if int(label) >= len(h.Labels) {
			return nil, corruptf("image %d has label %d, vocabulary holds %d", len(images), label, len(h.Labels))
		}
		images = append(images, LabeledImage{
			Data:  body[off:end:end],
			Label: label,
		})
	}
	return images, nil
}

// encode writes header, body length and compressed body to w and returns the
// number of bytes written.
func (d *Dataset) encode(w io.Writer, path string, o options) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}

	hdr, err := d.header.MarshalBinary()
	if err != nil {
		return 0, err
	}

	body := d.encodeBody()
	compressed, err := o.compressor.Compress(body)
	if err != nil {
		return 0, fileError(ErrWriteFile, path, fmt.Errorf("compress body: %w", err))
	}

	var lenBuf [bodyLengthSize]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(body)))

	var written int64
	for _, chunk := range [][]byte{hdr, lenBuf[:], compressed} {
		n, err := w.Write(chunk)
		written += int64(n)
		if err != nil {
			return written, fileError(ErrWriteFile, path, err)
		}
	}
	return written, nil
}

func (d *Dataset) encodeBody() []byte {
	recordSize := d.header.RecordSize()
	body := make([]byte, 0, len(d.images)*recordSize)
	for _, img := range d.images {
		body = append(body, img.Data...)
		body = binary.LittleEndian.AppendUint16(body, img.Label)
	}
	return body
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
