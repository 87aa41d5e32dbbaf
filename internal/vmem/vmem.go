package vmem

import (
	"errors"
	"unsafe"
)

// Access selects the initial protection of a reservation.
type Access int

const (
	// AccessNone maps the region without any access rights.
	// Sub-ranges must be committed before use.
	AccessNone Access = iota
	// AccessReadWrite maps the whole region readable and writable.
	// Pages are backed by physical memory on first touch.
	AccessReadWrite
)

func (a Access) String() string {
	switch a {
	case AccessNone:
		return "none"
	case AccessReadWrite:
		return "read-write"
	default:
		return "unknown"
	}
}

var (
	// ErrReleased is returned when operating on a released region.
	ErrReleased = errors.New("vmem: region is released")
	// ErrInvalidSize is returned for non-positive reservation sizes.
	ErrInvalidSize = errors.New("vmem: invalid size")
	// ErrOutOfBounds is returned when a range is not inside the region.
	ErrOutOfBounds = errors.New("vmem: out of bounds")
	// ErrUnaligned is returned when a commit range is not page aligned.
	ErrUnaligned = errors.New("vmem: range is not page aligned")
	// ErrUnsupported is returned on platforms without mmap support.
	ErrUnsupported = errors.New("vmem: unsupported platform")
)

var pageSize = osPageSize()

// PageSize returns the operating system page size in bytes.
func PageSize() int {
	return pageSize
}

// RoundUp rounds n up to a whole number of pages.
func RoundUp(n int) int {
	return (n + pageSize - 1) / pageSize * pageSize
}

// Region is a single anonymous memory reservation.
type Region struct {
	data   []byte
	access Access
	// release is the platform-specific unmap function.
	release func([]byte) error
}

// Reserve maps size bytes of anonymous, process-private address space.
// size is rounded up to a whole number of pages.
func Reserve(size int, access Access) (*Region, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	size = RoundUp(size)

	data, release, err := osReserve(size, access)
	if err != nil {
		return nil, err
	}
	return &Region{data: data, access: access, release: release}, nil
}

// Commit grants read/write access to [off, off+n).
// Both off and n must be multiples of the page size.
func (r *Region) Commit(off, n int) error {
	if r.data == nil {
		return ErrReleased
	}
	if off < 0 || n < 0 || off+n > len(r.data) {
		return ErrOutOfBounds
	}
	if off%pageSize != 0 || n%pageSize != 0 {
		return ErrUnaligned
	}
	if n == 0 {
		return nil
	}
	return osCommit(r.data[off : off+n])
}

// Release unmaps the region. It is idempotent.
func (r *Region) Release() error {
	if r == nil || r.data == nil {
		return nil
	}
	data := r.data
	r.data = nil
	return r.release(data)
}

// Bytes returns the whole reservation.
// Only committed ranges may be touched under AccessNone.
func (r *Region) Bytes() []byte {
	return r.data
}

// Len returns the size of the reservation in bytes.
func (r *Region) Len() int {
	return len(r.data)
}

// Base returns the start address of the reservation, or nil once released.
func (r *Region) Base() unsafe.Pointer {
	if len(r.data) == 0 {
		return nil
	}
	return unsafe.Pointer(&r.data[0])
}

// Access reports the protection the region was reserved with.
func (r *Region) Access() Access {
	return r.access
}
