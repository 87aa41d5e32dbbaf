package settled

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrReservationFailed is matched by errors returned when the operating
	// system refuses the initial address-space reservation.
	ErrReservationFailed = errors.New("settled: address space reservation failed")
	// ErrCommitFailed is matched by errors returned when the operating system
	// refuses to make part of a reservation readable and writable.
	ErrCommitFailed = errors.New("settled: commit failed")
	// ErrCapacityExhausted is returned when growth would exceed the reservation.
	ErrCapacityExhausted = errors.New("settled: reservation exhausted")
	// ErrOutOfRange is matched by errors for indexes outside the live range.
	ErrOutOfRange = errors.New("settled: index out of range")
	// ErrEmpty is returned when removing from or peeking into an empty vector.
	ErrEmpty = errors.New("settled: vector is empty")
	// ErrInvalidSize is returned for negative sizes and counts.
	ErrInvalidSize = errors.New("settled: invalid size")
	// ErrElementType is matched by errors for element types that cannot be
	// stored outside the Go heap.
	ErrElementType = errors.New("settled: unsupported element type")
)

// ReservationError reports a failed address-space reservation.
//
// The operating system error can be accessed via errors.Unwrap.
type ReservationError struct {
	Size int
	Err  error
}

func (e *ReservationError) Error() string {
	return fmt.Sprintf("settled: reserve %d bytes: %v", e.Size, e.Err)
}

func (e *ReservationError) Unwrap() error { return e.Err }

// Is reports whether target is ErrReservationFailed.
func (e *ReservationError) Is(target error) bool { return target == ErrReservationFailed }

// CommitError reports a failed commit of [Offset, Offset+Length).
//
// The operating system error can be accessed via errors.Unwrap.
type CommitError struct {
	Offset int
	Length int
	Err    error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("settled: commit %d bytes at offset %d: %v", e.Length, e.Offset, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }

// Is reports whether target is ErrCommitFailed.
func (e *CommitError) Is(target error) bool { return target == ErrCommitFailed }

// IndexError reports an index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("settled: index %d out of range [0:%d]", e.Index, e.Len)
}

// Is reports whether target is ErrOutOfRange.
func (e *IndexError) Is(target error) bool { return target == ErrOutOfRange }

// ElementTypeError reports an element type the vector cannot hold.
type ElementTypeError struct {
	Type   reflect.Type
	Reason string
}

func (e *ElementTypeError) Error() string {
	return fmt.Sprintf("settled: element type %v: %s", e.Type, e.Reason)
}

// Is reports whether target is ErrElementType.
func (e *ElementTypeError) Is(target error) bool { return target == ErrElementType }
