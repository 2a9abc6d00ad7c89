package jdx

import "fmt"

// MergeStats summarizes a successful Append or Extend.
type MergeStats struct {
	// ImagesAdded is the number of images moved into the destination.
	ImagesAdded int
	// LabelsAdded is the number of vocabulary entries appended.
	LabelsAdded int
	// LabelsReused is the number of source labels that resolved to an
	// existing destination entry.
	LabelsReused int
}

// Append moves every image of other into d, translating labels into d's
// vocabulary. Labels unknown to d are appended to its vocabulary in the order
// they are first seen; existing indices never change.
//
// The geometry of both headers must match, otherwise the error matches
// ErrIncompatibleDimensions. If the merged vocabulary would exceed MaxLabels
// the error matches ErrPastLabelLimit. On any error neither dataset is
// modified.
//
// On success other is consumed: its images now belong to d and other is left
// empty with its vocabulary intact. Use Extend to keep other untouched.
func (d *Dataset) Append(other *Dataset) error {
	_, err := d.AppendWithStats(other)
	return err
}

// AppendWithStats is Append returning what the merge did.
func (d *Dataset) AppendWithStats(other *Dataset) (MergeStats, error) {
	if other == d {
		other = d.Clone()
	}

	plan, err := d.reconcile(other)
	if err != nil {
		return MergeStats{}, err
	}

	d.header.Labels = append(d.header.Labels, plan.newLabels...)
	d.images = append(d.images, other.images...)
	base := len(d.images) - len(other.images)
	for i, label := range plan.labels {
		d.images[base+i].Label = label
	}
	d.header.ImageCount += uint64(len(other.images))
	other.reset()

	return plan.stats, nil
}

// Extend merges a copy of other into d. other is never modified.
func (d *Dataset) Extend(other *Dataset) error {
	_, err := d.ExtendWithStats(other)
	return err
}

// ExtendWithStats is Extend returning what the merge did.
func (d *Dataset) ExtendWithStats(other *Dataset) (MergeStats, error) {
	if err := checkGeometry(d.header, other.header); err != nil {
		return MergeStats{}, err
	}
	return d.AppendWithStats(other.Clone())
}

// mergePlan is the outcome of reconciling a source vocabulary against a
// destination. It is computed without touching either dataset.
type mergePlan struct {
	// labels holds the translated label of every source image, in order.
	labels    []uint16
	newLabels []string
	stats     MergeStats
}

// reconcile translates other's labels into d's vocabulary.
//
// The source-to-destination mapping is filled lazily, one entry per distinct
// source label. Lookups in the destination vocabulary are by string value and
// the lowest matching index wins.
func (d *Dataset) reconcile(other *Dataset) (*mergePlan, error) {
	if err := checkGeometry(d.header, other.header); err != nil {
		return nil, err
	}

	srcLabels := other.header.Labels
	dstLabels := d.header.Labels

	const unmapped = -1
	mapping := make([]int32, len(srcLabels))
	for i := range mapping {
		mapping[i] = unmapped
	}

	var index map[string]int
	lookup := func(name string) (int, bool) {
		if index == nil {
			index = make(map[string]int, len(dstLabels))
			for i, l := range dstLabels {
				if _, seen := index[l]; !seen {
					index[l] = i
				}
			}
		}
		i, ok := index[name]
		return i, ok
	}

	plan := &mergePlan{labels: make([]uint16, len(other.images))}
	for i, img := range other.images {
		src := int(img.Label)
		if src >= len(srcLabels) {
			return nil, fmt.Errorf("%w: source image %d has label %d, vocabulary holds %d", ErrInvalidLabel, i, src, len(srcLabels))
		}

		if mapping[src] == unmapped {
			name := srcLabels[src]
			if dst, ok := lookup(name); ok {
				mapping[src] = int32(dst)
				plan.stats.LabelsReused++
			} else {
				dst = len(dstLabels) + len(plan.newLabels)
				plan.newLabels = append(plan.newLabels, name)
				index[name] = dst
				mapping[src] = int32(dst)
			}
		}
		plan.labels[i] = uint16(mapping[src])
	}

	if len(dstLabels)+len(plan.newLabels) > MaxLabels {
		return nil, &LabelLimitError{Have: len(dstLabels), Need: len(plan.newLabels)}
	}

	plan.stats.ImagesAdded = len(other.images)
	plan.stats.LabelsAdded = len(plan.newLabels)
	return plan, nil
}
