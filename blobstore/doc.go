// Package blobstore abstracts where dataset files live.
//
// A Store holds whole, immutable blobs addressed by slash-separated names.
// Readers open a Blob and read ranges of it; writers either Put a complete
// byte slice or stream into a WritableBlob that becomes visible on Close.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: a directory on the local filesystem, mmap reads, atomic writes
//   - MemoryStore: process memory, for tests
//   - s3.Store: Amazon S3 through aws-sdk-go-v2
//   - minio.Store: MinIO and other S3-compatible services
package blobstore
