package jdx

import (
	"fmt"
	"iter"
	"slices"
)

// LabeledImage is one image of a dataset. Data holds ImageSize() bytes of
// channel data and Label indexes the header vocabulary.
type LabeledImage struct {
	Data  []byte
	Label uint16
}

// Clone returns a copy of img that shares no memory with it.
func (img LabeledImage) Clone() LabeledImage {
	return LabeledImage{Data: slices.Clone(img.Data), Label: img.Label}
}

// Item is a self-contained view of one image together with its geometry and
// resolved label name.
type Item struct {
	Data      []byte
	Width     uint16
	Height    uint16
	BitDepth  uint8
	Label     uint16
	LabelName string
}

// Dataset is a header plus an ordered sequence of labeled images.
//
// A Dataset is not safe for concurrent use.
type Dataset struct {
	header *Header
	images []LabeledImage
}

// NewDataset returns an empty dataset with a copy of h. The copy's
// ImageCount is reset to zero.
func NewDataset(h *Header) *Dataset {
	hc := h.Clone()
	hc.ImageCount = 0
	return &Dataset{header: hc}
}

// Header returns the dataset header. Callers must not modify ImageCount or
// the geometry fields; use Push, Append or Extend instead.
func (d *Dataset) Header() *Header {
	return d.header
}

// Len returns the number of images.
func (d *Dataset) Len() int {
	return len(d.images)
}

// Get returns the image at position i.
func (d *Dataset) Get(i int) (LabeledImage, bool) {
	if i < 0 || i >= len(d.images) {
		return LabeledImage{}, false
	}
	return d.images[i], true
}

// At returns a pointer to the image at position i for in-place edits, or nil
// if i is out of range. The length of Data must not change.
func (d *Dataset) At(i int) *LabeledImage {
	if i < 0 || i >= len(d.images) {
		return nil
	}
	return &d.images[i]
}

// Item returns the image at position i with its geometry and label name.
// LabelName is empty when the label is outside the vocabulary.
func (d *Dataset) Item(i int) (Item, bool) {
	img, ok := d.Get(i)
	if !ok {
		return Item{}, false
	}
	item := Item{
		Data:     img.Data,
		Width:    d.header.ImageWidth,
		Height:   d.header.ImageHeight,
		BitDepth: d.header.BitDepth,
		Label:    img.Label,
	}
	if int(img.Label) < len(d.header.Labels) {
		item.LabelName = d.header.Labels[img.Label]
	}
	return item, true
}

// All iterates over the images in order.
func (d *Dataset) All() iter.Seq2[int, LabeledImage] {
	return func(yield func(int, LabeledImage) bool) {
		for i, img := range d.images {
			if !yield(i, img) {
				return
			}
		}
	}
}

// AllMut iterates over pointers to the images in order.
func (d *Dataset) AllMut() iter.Seq2[int, *LabeledImage] {
	return func(yield func(int, *LabeledImage) bool) {
		for i := range d.images {
			if !yield(i, &d.images[i]) {
				return
			}
		}
	}
}

// Push appends one image. The label is not checked against the vocabulary.
func (d *Dataset) Push(img LabeledImage) error {
	if want := d.header.ImageSize(); len(img.Data) != want {
		return &GeometryMismatchError{Field: "image_size", Expected: want, Actual: len(img.Data)}
	}
	d.images = append(d.images, img)
	d.header.ImageCount++
	return nil
}

// Clone returns a deep copy of d.
func (d *Dataset) Clone() *Dataset {
	images := make([]LabeledImage, len(d.images))
	for i, img := range d.images {
		images[i] = img.Clone()
	}
	return &Dataset{header: d.header.Clone(), images: images}
}

// Validate checks the dataset invariants: every image has ImageSize bytes and
// a label inside the vocabulary, and ImageCount matches the image count.
func (d *Dataset) Validate() error {
	if err := d.header.Validate(); err != nil {
		return err
	}
	if d.header.ImageCount != uint64(len(d.images)) {
		return fmt.Errorf("%w: header counts %d images, dataset holds %d", ErrInvalidHeader, d.header.ImageCount, len(d.images))
	}
	size := d.header.ImageSize()
	for i, img := range d.images {
		if len(img.Data) != size {
			return fmt.Errorf("image %d: %w", i, &GeometryMismatchError{Field: "image_size", Expected: size, Actual: len(img.Data)})
		}
		if int(img.Label) >= len(d.header.Labels) {
			return fmt.Errorf("%w: image %d has label %d, vocabulary holds %d", ErrInvalidLabel, i, img.Label, len(d.header.Labels))
		}
	}
	return nil
}

// reset empties the body, keeping the header vocabulary.
func (d *Dataset) reset() {
	d.images = nil
	d.header.ImageCount = 0
}
