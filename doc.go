// Package jdx reads, writes and merges JDX labeled-image datasets.
//
// A JDX file is a small binary header followed by a compressed body. The
// header carries a version stamp, the image geometry (width, height, bit
// depth), the number of images and the label vocabulary. The body is a
// sequence of fixed-size records, each holding the raw bytes of one image and
// a 16-bit label that indexes the vocabulary.
//
// # Quick Start
//
//	d, err := jdx.ReadFile("train.jdx")
//	if err != nil {
//	    return err
//	}
//	for i, img := range d.All() {
//	    item, _ := d.Item(i)
//	    fmt.Println(i, item.LabelName, len(img.Data))
//	}
//
// # Merging
//
// Append moves the images of one dataset into another of the same geometry.
// Label values are translated by name: labels the destination already knows
// keep their index, unknown labels are appended to its vocabulary in the order
// they are first seen.
//
//	if err := train.Append(extra); err != nil {
//	    return err // ErrIncompatibleDimensions or ErrPastLabelLimit
//	}
//
// A failed merge leaves both datasets unchanged. Use Extend to merge a copy
// and keep the source intact.
//
// # Storage
//
// Besides plain io.Reader/io.Writer and file paths, datasets can be stored in
// any blobstore.Store: the local filesystem, memory, Amazon S3 or MinIO.
// MergeAll loads many blobs concurrently and merges them in a deterministic
// order:
//
//	store, _ := s3.New(ctx, "datasets", s3.WithPrefix("shards/"))
//	merged, err := jdx.MergeAll(ctx, store, names, jdx.WithWorkers(8))
//
// # Compression
//
// New files use zlib at the best compression level. WithCompression selects
// zstd or LZ4 instead; readers detect the stream format from its magic bytes.
//
// # Errors
//
// Every error matches one of the exported sentinels with errors.Is. I/O
// failures are *FileError values that also carry the path and the cause.
package jdx
