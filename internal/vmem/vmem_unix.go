//go:build unix

package vmem

import (
	"golang.org/x/sys/unix"
)

func osPageSize() int {
	return unix.Getpagesize()
}

func osReserve(size int, access Access) ([]byte, func([]byte) error, error) {
	prot := unix.PROT_NONE
	flags := unix.MAP_ANON | unix.MAP_PRIVATE
	if access == AccessReadWrite {
		prot = unix.PROT_READ | unix.PROT_WRITE
		flags |= lazyFlags
	}

	data, err := unix.Mmap(-1, 0, size, prot, flags)
	if err != nil {
		return nil, nil, err
	}
	return data, unix.Munmap, nil
}

func osCommit(span []byte) error {
	return unix.Mprotect(span, unix.PROT_READ|unix.PROT_WRITE)
}
