package jdx

import (
	"errors"
	"fmt"
)

var (
	// ErrOpenFile is returned when a file or blob cannot be opened or created.
	ErrOpenFile = errors.New("jdx: open file")
	// ErrCloseFile is returned when releasing a file or blob fails.
	ErrCloseFile = errors.New("jdx: close file")
	// ErrReadFile is returned when reading from a file, blob or stream fails.
	ErrReadFile = errors.New("jdx: read file")
	// ErrWriteFile is returned when writing to a file, blob or stream fails.
	ErrWriteFile = errors.New("jdx: write file")
	// ErrCorruptFile is returned when the header or body layout is invalid.
	ErrCorruptFile = errors.New("jdx: corrupt file")
	// ErrIncompatibleDimensions is returned when image geometry does not match.
	ErrIncompatibleDimensions = errors.New("jdx: incompatible dimensions")
	// ErrPastLabelLimit is returned when a vocabulary would exceed MaxLabels.
	ErrPastLabelLimit = errors.New("jdx: past label limit")

	// ErrInvalidHeader is returned when a header cannot be encoded as is.
	ErrInvalidHeader = errors.New("jdx: invalid header")
	// ErrInvalidLabel is returned when an image label is outside the vocabulary.
	ErrInvalidLabel = errors.New("jdx: invalid label")
)

// FileError records an I/O failure together with the path it happened on.
//
// Op is one of ErrOpenFile, ErrCloseFile, ErrReadFile or ErrWriteFile, so
// errors.Is(err, ErrReadFile) matches. The original error is reachable via
// errors.Unwrap/errors.As.
type FileError struct {
	Op    error
	Path  string
	cause error
}

func (e *FileError) Error() string {
	path := e.Path
	if path == "" {
		path = "<stream>"
	}
	if e.cause == nil {
		return fmt.Sprintf("%v %s", e.Op, path)
	}
	return fmt.Sprintf("%v %s: %v", e.Op, path, e.cause)
}

func (e *FileError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.Op}
	}
	return []error{e.Op, e.cause}
}

func fileError(op error, path string, cause error) error {
	return &FileError{Op: op, Path: path, cause: cause}
}

// GeometryMismatchError reports which geometry field disagreed.
//
// It matches ErrIncompatibleDimensions with errors.Is.
type GeometryMismatchError struct {
	Field    string
	Expected int
	Actual   int
}

func (e *GeometryMismatchError) Error() string {
	return fmt.Sprintf("%v: %s expected %d, got %d", ErrIncompatibleDimensions, e.Field, e.Expected, e.Actual)
}

func (e *GeometryMismatchError) Is(target error) bool {
	return target == ErrIncompatibleDimensions
}

// LabelLimitError is returned when a merge needs more vocabulary slots than
// remain. It matches ErrPastLabelLimit with errors.Is.
type LabelLimitError struct {
	Have int
	Need int
}

func (e *LabelLimitError) Error() string {
	return fmt.Sprintf("%v: vocabulary holds %d labels, merge needs %d more (max %d)", ErrPastLabelLimit, e.Have, e.Need, MaxLabels)
}

func (e *LabelLimitError) Is(target error) bool {
	return target == ErrPastLabelLimit
}

func corruptf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptFile, fmt.Sprintf(format, args...))
}

// checkGeometry returns a GeometryMismatchError for the first field of other
// that differs from h.
func checkGeometry(h, other *Header) error {
	switch {
	case h.ImageWidth != other.ImageWidth:
		return &GeometryMismatchError{Field: "image_width", Expected: int(h.ImageWidth), Actual: int(other.ImageWidth)}
	case h.ImageHeight != other.ImageHeight:
		return &GeometryMismatchError{Field: "image_height", Expected: int(h.ImageHeight), Actual: int(other.ImageHeight)}
	case h.BitDepth != other.BitDepth:
		return &GeometryMismatchError{Field: "bit_depth", Expected: int(h.BitDepth), Actual: int(other.BitDepth)}
	}
	return nil
}
