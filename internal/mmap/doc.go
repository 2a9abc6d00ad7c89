// Package mmap maps dataset files read-only into memory.
//
// The local blob store uses it so that decoding a dataset reads straight from
// the page cache instead of copying the file through a read buffer:
//
//	m, err := mmap.Open("train.jdx", mmap.AccessSequential)
//	if err != nil { ... }
//	defer m.Close()
//	body := m.Bytes()
//
// Unix systems use mmap(2) and madvise(2); Windows uses
// CreateFileMapping/MapViewOfFile and ignores access hints.
//
// A Mapping may be read from several goroutines. Close is idempotent, but no
// slice returned by Bytes or Slice may be used after it returns.
package mmap
