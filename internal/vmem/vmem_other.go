//go:build !unix

package vmem

import "os"

func osPageSize() int {
	return os.Getpagesize()
}

func osReserve(int, Access) ([]byte, func([]byte) error, error) {
	return nil, nil, ErrUnsupported
}

func osCommit([]byte) error {
	return ErrUnsupported
}
