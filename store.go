package jdx

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/hupe1980/jdx/blobstore"
	"github.com/hupe1980/jdx/resource"
)

// ReadFromStore reads the dataset stored as blob name.
//
// A missing blob fails with ErrOpenFile and the error also matches
// blobstore.ErrNotFound.
func ReadFromStore(ctx context.Context, store blobstore.Store, name string, optFns ...Option) (*Dataset, error) {
	o := newOptions(optFns)

	b, err := store.Open(ctx, name)
	if err != nil {
		err = fileError(ErrOpenFile, name, err)
		o.logger.LogRead(ctx, name, nil, 0, err)
		return nil, err
	}

	d, err := readBlob(ctx, b, name, o)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	if err := b.Close(); err != nil {
		return nil, fileError(ErrCloseFile, name, err)
	}
	return d, nil
}

// ReadHeaderFromStore reads only the header of blob name. Blobs without a
// mapping are fetched with ranged reads, so the body is not downloaded.
func ReadHeaderFromStore(ctx context.Context, store blobstore.Store, name string, optFns ...Option) (*Header, error) {
	o := newOptions(optFns)
	start := time.Now()

	b, err := store.Open(ctx, name)
	if err != nil {
		err = fileError(ErrOpenFile, name, err)
		o.logger.LogRead(ctx, name, nil, 0, err)
		return nil, err
	}

	cr := &countingReader{r: &blobReader{ctx: ctx, b: b}}
	h, err := readHeader(bufio.NewReaderSize(cr, 4<<10), name)
	if cerr := b.Close(); cerr != nil && err == nil {
		err = fileError(ErrCloseFile, name, cerr)
	}
	o.metricsCollector.RecordRead(cr.n, time.Since(start), err)
	o.logger.LogRead(ctx, name, h, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// blobReader reads a blob sequentially through ReadAt.
type blobReader struct {
	ctx context.Context
	b   blobstore.Blob
	off int64
}

func (r *blobReader) Read(p []byte) (int, error) {
	if r.off >= r.b.Size() {
		return 0, io.EOF
	}
	n, err := r.b.ReadAt(r.ctx, p, r.off)
	r.off += int64(n)
	if errors.Is(err, io.EOF) && n > 0 {
		err = nil
	}
	return n, err
}

// readBlob decodes an open blob, throttled by the resource controller when
// an IO limit is configured.
func readBlob(ctx context.Context, b blobstore.Blob, name string, o options) (*Dataset, error) {
	rc, err := blobstore.NewReader(ctx, b)
	if err != nil {
		err = fileError(ErrReadFile, name, err)
		o.logger.LogRead(ctx, name, nil, 0, err)
		return nil, err
	}

	var src io.Reader = rc
	if o.controller.IOBurst() > 0 {
		src = resource.NewRateLimitedReader(ctx, rc, o.controller)
	}

	d, err := readDatasetFrom(ctx, src, name, o)
	if cerr := rc.Close(); cerr != nil && err == nil {
		return nil, fileError(ErrCloseFile, name, cerr)
	}
	return d, err
}

// WriteToStore writes d as blob name. On failure the upload is aborted and
// no blob becomes visible.
func (d *Dataset) WriteToStore(ctx context.Context, store blobstore.Store, name string, optFns ...Option) (err error) {
	o := newOptions(optFns)
	start := time.Now()
	var n int64
	defer func() {
		o.metricsCollector.RecordWrite(n, time.Since(start), err)
		o.logger.LogWrite(ctx, name, d.header, int(n), time.Since(start), err)
	}()

	w, err := store.Create(ctx, name)
	if err != nil {
		return fileError(ErrOpenFile, name, err)
	}

	var dst io.Writer = w
	if o.controller.IOBurst() > 0 {
		dst = resource.NewRateLimitedWriter(ctx, w, o.controller)
	}

	bw := bufio.NewWriterSize(dst, 64<<10)
	if n, err = d.encode(bw, name, o); err != nil {
		_ = w.Abort()
		return err
	}
	if err = bw.Flush(); err != nil {
		_ = w.Abort()
		return fileError(ErrWriteFile, name, err)
	}
	if err = w.Sync(); err != nil {
		_ = w.Abort()
		return fileError(ErrWriteFile, name, err)
	}
	if err = w.Close(); err != nil {
		return fileError(ErrCloseFile, name, err)
	}
	return nil
}
