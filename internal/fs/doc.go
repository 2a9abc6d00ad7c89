// Package fs provides the filesystem abstraction used by the dataset codec.
//
// The package defines two key interfaces:
//
//   - [File]: an open file with read/write/sync capabilities
//   - [FileSystem]: open, remove, rename and directory operations
//
// # Implementations
//
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: test utility that injects open, read, write, sync, close and
//     rename failures
//
// # Usage
//
// Production code uses fs.Default (which is [LocalFS]):
//
//	file, err := fs.Default.OpenFile(path, os.O_RDONLY, 0)
//
// Tests inject [FaultyFS] to drive error paths:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("train.jdx", fs.Fault{FailAfterBytes: 16})
//
// Operations take no context.Context: local filesystem calls are not
// interruptible at the syscall level. Remote storage goes through the
// blobstore package instead.
package fs
