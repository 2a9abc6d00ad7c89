package jdx

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/jdx/internal/fs"
)

// ReadFile reads the dataset stored at path.
//
// Errors match ErrOpenFile, ErrReadFile, ErrCloseFile or ErrCorruptFile and
// I/O errors carry the path in a *FileError.
func ReadFile(path string, optFns ...Option) (*Dataset, error) {
	o := newOptions(optFns)

	f, err := fs.Open(o.fs, path)
	if err != nil {
		err = fileError(ErrOpenFile, path, err)
		o.logger.LogRead(context.Background(), path, nil, 0, err)
		return nil, err
	}

	d, err := readDatasetFrom(context.Background(), f, path, o)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fileError(ErrCloseFile, path, err)
	}
	return d, nil
}

// ReadHeaderFile reads only the header of the dataset stored at path.
func ReadHeaderFile(path string, optFns ...Option) (*Header, error) {
	o := newOptions(optFns)
	start := time.Now()

	f, err := fs.Open(o.fs, path)
	if err != nil {
		err = fileError(ErrOpenFile, path, err)
		o.logger.LogRead(context.Background(), path, nil, 0, err)
		return nil, err
	}

	cr := &countingReader{r: f}
	h, err := readHeader(bufio.NewReader(cr), path)
	if cerr := f.Close(); cerr != nil && err == nil {
		err = fileError(ErrCloseFile, path, cerr)
	}
	o.metricsCollector.RecordRead(cr.n, time.Since(start), err)
	o.logger.LogRead(context.Background(), path, h, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// WriteFile writes d to path, replacing any existing file.
//
// The dataset is written to a temporary file next to path which is synced and
// renamed into place, so readers never observe a partial file.
func (d *Dataset) WriteFile(path string, optFns ...Option) error {
	o := newOptions(optFns)
	start := time.Now()
	n, err := writeFileAtomic(o.fs, path, func(w io.Writer) (int64, error) {
		return d.encode(w, path, o)
	})
	o.metricsCollector.RecordWrite(n, time.Since(start), err)
	o.logger.LogWrite(context.Background(), path, d.header, int(n), time.Since(start), err)
	return err
}

// WriteFile writes the header alone to path. The result is a header-only
// file; ReadFile rejects it as truncated.
func (h *Header) WriteFile(path string, optFns ...Option) error {
	o := newOptions(optFns)
	start := time.Now()
	n, err := writeFileAtomic(o.fs, path, func(w io.Writer) (int64, error) {
		buf, err := h.MarshalBinary()
		if err != nil {
			return 0, err
		}
		n, err := w.Write(buf)
		if err != nil {
			return int64(n), fileError(ErrWriteFile, path, err)
		}
		return int64(n), nil
	})
	o.metricsCollector.RecordWrite(n, time.Since(start), err)
	o.logger.LogWrite(context.Background(), path, h, int(n), time.Since(start), err)
	return err
}

// writeFileAtomic creates a uniquely named temporary file beside path, fills
// it through a buffered writer, syncs, closes and renames it over path. The
// temporary file is removed on every failure path.
func writeFileAtomic(fsys fs.FileSystem, path string, fill func(io.Writer) (int64, error)) (n int64, err error) {
	tmp := path + ".tmp-" + uuid.NewString()

	f, err := fs.CreateExclusive(fsys, tmp)
	if err != nil {
		return 0, fileError(ErrOpenFile, path, err)
	}

	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = f.Close()
		}
		_ = fsys.Remove(tmp)
	}()

	bw := bufio.NewWriterSize(f, 64<<10)
	if n, err = fill(bw); err != nil {
		return n, err
	}
	if err = bw.Flush(); err != nil {
		return n, fileError(ErrWriteFile, path, err)
	}
	if err = f.Sync(); err != nil {
		return n, fileError(ErrWriteFile, path, err)
	}

	closed = true
	if err = f.Close(); err != nil {
		return n, fileError(ErrCloseFile, path, err)
	}
	if err = fsys.Rename(tmp, path); err != nil {
		return n, fileError(ErrWriteFile, path, err)
	}
	return n, nil
}

// IsIOError reports whether err is an open, read, write or close failure as
// opposed to a format or merge error.
func IsIOError(err error) bool {
	return errors.Is(err, ErrOpenFile) ||
		errors.Is(err, ErrReadFile) ||
		errors.Is(err, ErrWriteFile) ||
		errors.Is(err, ErrCloseFile)
}
