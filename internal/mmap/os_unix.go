//go:build unix

package mmap

import (
	"os"

	"golang.org/x/sys/unix"
)

var madvice = map[AccessPattern]int{
	AccessDefault:    unix.MADV_NORMAL,
	AccessSequential: unix.MADV_SEQUENTIAL,
	AccessRandom:     unix.MADV_RANDOM,
}

// mapReadOnly maps the first size bytes of f and applies the initial hint.
func mapReadOnly(f *os.File, size int, pattern AccessPattern) ([]byte, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, &os.PathError{Op: "mmap", Path: f.Name(), Err: err}
	}
	if err := advise(data, pattern); err != nil {
		_ = unix.Munmap(data)
		return nil, err
	}
	return data, nil
}

func unmap(data []byte) error {
	return unix.Munmap(data)
}

func advise(data []byte, pattern AccessPattern) error {
	advice, ok := madvice[pattern]
	if !ok {
		advice = unix.MADV_NORMAL
	}
	// EINVAL on an unaligned sub-slice is ignored; the hint is optional.
	if err := unix.Madvise(data, advice); err != nil && err != unix.EINVAL {
		return err
	}
	return nil
}
