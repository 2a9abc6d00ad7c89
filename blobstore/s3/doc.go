// Package s3 stores dataset blobs in Amazon S3.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("datasets/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//	ds, err := jdx.ReadFromStore(ctx, store, "train.jdx")
//
// Reads use ranged GetObject calls. Writes stream through the SDK upload
// manager, which switches to multipart uploads for large datasets and aborts
// them on failure.
package s3
