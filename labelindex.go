package jdx

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// LabelIndex maps a label value to the positions of the images carrying it.
// Labels no image carries are absent.
type LabelIndex map[uint16]*roaring.Bitmap

// Positions returns the bitmap for label, or an empty bitmap.
func (idx LabelIndex) Positions(label uint16) *roaring.Bitmap {
	if bm, ok := idx[label]; ok {
		return bm
	}
	return roaring.New()
}

// Union returns the positions carrying any of labels.
func (idx LabelIndex) Union(labels ...uint16) *roaring.Bitmap {
	bms := make([]*roaring.Bitmap, 0, len(labels))
	for _, l := range labels {
		if bm, ok := idx[l]; ok {
			bms = append(bms, bm)
		}
	}
	return roaring.FastOr(bms...)
}

// LabelIndex builds the posting list of every label in d.
// Positions are stored as uint32.
func (d *Dataset) LabelIndex() LabelIndex {
	idx := make(LabelIndex)
	for i, img := range d.images {
		bm, ok := idx[img.Label]
		if !ok {
			bm = roaring.New()
			idx[img.Label] = bm
		}
		bm.Add(uint32(i))
	}
	for _, bm := range idx {
		bm.RunOptimize()
	}
	return idx
}

// LabelCount is the number of images carrying one vocabulary entry.
type LabelCount struct {
	Label uint16 `json:"label"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// LabelCounts returns one entry per vocabulary label in vocabulary order,
// including labels no image carries.
func (d *Dataset) LabelCounts() []LabelCount {
	idx := d.LabelIndex()
	counts := make([]LabelCount, len(d.header.Labels))
	for i, name := range d.header.Labels {
		counts[i] = LabelCount{
			Label: uint16(i),
			Name:  name,
			Count: int(idx.Positions(uint16(i)).GetCardinality()),
		}
	}
	return counts
}

// Subset returns a new dataset with the images whose label name is one of
// names, in their original order. The vocabulary is kept unchanged so label
// values stay valid. Unknown names match nothing.
func (d *Dataset) Subset(names ...string) *Dataset {
	var labels []uint16
	for i, l := range d.header.Labels {
		if slices.Contains(names, l) {
			labels = append(labels, uint16(i))
		}
	}
	return d.SubsetLabels(labels...)
}

// SubsetLabels is Subset by label value.
func (d *Dataset) SubsetLabels(labels ...uint16) *Dataset {
	positions := d.LabelIndex().Union(labels...)

	out := NewDataset(d.header)
	out.images = make([]LabeledImage, 0, positions.GetCardinality())
	it := positions.Iterator()
	for it.HasNext() {
		out.images = append(out.images, d.images[it.Next()].Clone())
	}
	out.header.ImageCount = uint64(len(out.images))
	return out
}

// Filter returns a new dataset with the images for which keep returns true,
// in their original order.
func (d *Dataset) Filter(keep func(i int, img LabeledImage) bool) *Dataset {
	out := NewDataset(d.header)
	for i, img := range d.images {
		if keep(i, img) {
			out.images = append(out.images, img.Clone())
		}
	}
	out.header.ImageCount = uint64(len(out.images))
	return out
}
