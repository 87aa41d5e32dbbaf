package settled

import (
	"errors"
	"iter"
)

// Vector is a growable sequence of T whose elements never change address.
//
// Elements live in an Arena. Growth makes more of the arena's reservation
// usable instead of reallocating, so pointers obtained from Ptr, Front,
// Back, Slice or the iterators stay valid across any number of
// insertions and growth events. Insert and Erase shift contents through
// the fixed slots; the slots themselves never move.
//
// T must be pointer-free and not zero-sized. The zero value is an empty
// vector with default options. A Vector is not goroutine-safe and holds
// operating system memory until Close is called.
type Vector[T any] struct {
	arena Arena
	n     int     // live elements
	size  uintptr // bytes per element
}

// New creates an empty vector. No memory is reserved until the first
// growth.
func New[T any](opts ...Option) (*Vector[T], error) {
	size, err := elemLayout[T]()
	if err != nil {
		return nil, err
	}
	v := &Vector[T]{size: size}
	v.arena.init(newConfig(opts))
	return v, nil
}

// NewSized creates a vector holding n zero values.
func NewSized[T any](n int, opts ...Option) (*Vector[T], error) {
	v, err := New[T](opts...)
	if err != nil {
		return nil, err
	}
	if err := v.Resize(n); err != nil {
		_ = v.Close()
		return nil, err
	}
	return v, nil
}

// FromSlice creates a vector holding a copy of s, in order.
func FromSlice[T any](s []T, opts ...Option) (*Vector[T], error) {
	v, err := New[T](opts...)
	if err != nil {
		return nil, err
	}
	if err := v.Reserve(len(s)); err != nil {
		_ = v.Close()
		return nil, err
	}
	for _, x := range s {
		if err := v.PushBack(x); err != nil {
			_ = v.Close()
			return nil, err
		}
	}
	return v, nil
}

// Collect creates a vector holding the values of seq, in order.
func Collect[T any](seq iter.Seq[T], opts ...Option) (*Vector[T], error) {
	v, err := New[T](opts...)
	if err != nil {
		return nil, err
	}
	for x := range seq {
		if err := v.PushBack(x); err != nil {
			_ = v.Close()
			return nil, err
		}
	}
	return v, nil
}

// Of creates a vector holding values, with default options.
func Of[T any](values ...T) (*Vector[T], error) {
	return FromSlice(values)
}

// Clone returns a deep copy of v with its own reservation and the same
// options.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	v.arena.ensureInit()
	c := &Vector[T]{size: v.size}
	c.arena.init(v.arena.cfg)
	if err := c.Reserve(v.n); err != nil {
		_ = c.Close()
		return nil, err
	}
	for i := 0; i < v.n; i++ {
		*c.slot(i) = *v.slot(i)
	}
	c.n = v.n
	return c, nil
}

// Move transfers the elements and the reservation of v to a new vector.
// Addresses of elements are unchanged. v is left empty with zero capacity
// and remains usable.
func (v *Vector[T]) Move() *Vector[T] {
	v.arena.ensureInit()
	dst := &Vector[T]{size: v.size, n: v.n}
	dst.arena.init(v.arena.cfg)
	dst.arena.takeFrom(&v.arena)
	v.n = 0
	return dst
}

// Swap exchanges the contents of v and o.
func (v *Vector[T]) Swap(o *Vector[T]) {
	v.arena.ensureInit()
	o.arena.ensureInit()
	v.arena.swap(&o.arena)
	v.n, o.n = o.n, v.n
	v.size, o.size = o.size, v.size
}

// Close destroys all elements and releases the reservation.
// The vector remains usable and reserves again if it grows.
func (v *Vector[T]) Close() error {
	v.Clear()
	return v.arena.Release()
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int {
	return v.n
}

// Cap returns the number of elements that fit without further growth.
func (v *Vector[T]) Cap() int {
	if v.size == 0 {
		return 0
	}
	return v.arena.CapacityBytes() / int(v.size)
}

// Empty reports whether the vector has no elements.
func (v *Vector[T]) Empty() bool {
	return v.n == 0
}

// Get returns the element at index i.
func (v *Vector[T]) Get(i int) (T, error) {
	if err := v.checkIndex(i); err != nil {
		var zero T
		return zero, err
	}
	return *v.slot(i), nil
}

// Ptr returns the address of the element at index i. The address stays
// valid until that slot is removed or the vector is closed or moved.
func (v *Vector[T]) Ptr(i int) (*T, error) {
	if err := v.checkIndex(i); err != nil {
		return nil, err
	}
	return v.slot(i), nil
}

// Set replaces the element at index i.
func (v *Vector[T]) Set(i int, x T) error {
	if err := v.checkIndex(i); err != nil {
		return err
	}
	*v.slot(i) = x
	return nil
}

// Front returns the address of the first element.
func (v *Vector[T]) Front() (*T, error) {
	if v.n == 0 {
		return nil, ErrEmpty
	}
	return v.slot(0), nil
}

// Back returns the address of the last element.
func (v *Vector[T]) Back() (*T, error) {
	if v.n == 0 {
		return nil, ErrEmpty
	}
	return v.slot(v.n - 1), nil
}

// Slice returns the live elements as a slice backed by the arena.
// Growth never invalidates it; removing elements shortens the live range
// without shortening the returned slice.
func (v *Vector[T]) Slice() []T {
	if v.n == 0 {
		return nil
	}
	return unsafeSlice(v.slot(0), v.n)
}

// PushBack appends x. No existing element moves.
func (v *Vector[T]) PushBack(x T) error {
	if err := v.growIfNecessary(1); err != nil {
		return err
	}
	*v.slot(v.n) = x
	v.n++
	return nil
}

// EmplaceBack appends an element constructed in place by init, which
// receives the zeroed slot. A nil init appends the zero value.
func (v *Vector[T]) EmplaceBack(init func(*T)) error {
	if err := v.growIfNecessary(1); err != nil {
		return err
	}
	if init != nil {
		init(v.slot(v.n))
	}
	v.n++
	return nil
}

// PopBack removes the last element.
func (v *Vector[T]) PopBack() error {
	if v.n == 0 {
		return ErrEmpty
	}
	v.n--
	v.destroy(v.n)
	return nil
}

// Insert inserts x at position pos, shifting later elements towards the
// end. pos may equal Len.
func (v *Vector[T]) Insert(pos int, x T) error {
	return v.Emplace(pos, func(p *T) { *p = x })
}

// Emplace inserts an element constructed in place by init at position
// pos, shifting later elements towards the end. pos may equal Len.
//
// The element at pos is relocated into a new slot at the end, the vacated
// slot is reconstructed with init, and a chain of swaps walks the end slot
// back into order. Slots keep their addresses; only contents shift.
func (v *Vector[T]) Emplace(pos int, init func(*T)) error {
	if pos < 0 || pos > v.n {
		return &IndexError{Index: pos, Len: v.n}
	}
	if pos == v.n {
		return v.EmplaceBack(init)
	}
	if err := v.growIfNecessary(1); err != nil {
		return err
	}
	end := v.slot(v.n)
	at := v.slot(pos)
	*end = *at
	v.destroy(pos)
	if init != nil {
		init(at)
	}
	for i := pos + 1; i < v.n; i++ {
		p := v.slot(i)
		*end, *p = *p, *end
	}
	v.n++
	return nil
}

// Erase removes the element at pos, shifting later elements towards the
// front. It returns pos, which now holds the element that followed the
// erased one (or equals Len if the last element was erased).
func (v *Vector[T]) Erase(pos int) (int, error) {
	if v.n == 0 {
		return 0, ErrEmpty
	}
	if err := v.checkIndex(pos); err != nil {
		return 0, err
	}
	for i := pos; i+1 < v.n; i++ {
		a, b := v.slot(i), v.slot(i+1)
		*a, *b = *b, *a
	}
	v.n--
	v.destroy(v.n)
	return pos, nil
}

// Clear destroys all elements, last to first. Capacity is kept.
func (v *Vector[T]) Clear() {
	for v.n > 0 {
		v.n--
		v.destroy(v.n)
	}
}

// Resize changes the length to n, removing elements from the back or
// appending zero values.
func (v *Vector[T]) Resize(n int) error {
	if n < 0 {
		return ErrInvalidSize
	}
	if err := v.Reserve(n); err != nil {
		return err
	}
	for v.n > n {
		v.n--
		v.destroy(v.n)
	}
	// Slots past Len are always zeroed.
	v.n = max(v.n, n)
	return nil
}

// Reserve ensures room for at least n elements.
func (v *Vector[T]) Reserve(n int) error {
	if n < 0 {
		return ErrInvalidSize
	}
	if n > v.Cap() {
		return v.growIfNecessary(n - v.n)
	}
	return nil
}

// All returns an iterator over indexes and element addresses, front to
// back.
func (v *Vector[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(i, v.slot(i)) {
				return
			}
		}
	}
}

// Backward returns an iterator over indexes and element addresses, back
// to front.
func (v *Vector[T]) Backward() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := v.n - 1; i >= 0; i-- {
			if !yield(i, v.slot(i)) {
				return
			}
		}
	}
}

// Values returns an iterator over element values, front to back.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(*v.slot(i)) {
				return
			}
		}
	}
}

// Equal reports whether a and b have the same length and equal elements
// in the same order.
func Equal[T comparable](a, b *Vector[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like Equal but compares elements with eq.
func EqualFunc[T any](a, b *Vector[T], eq func(T, T) bool) bool {
	if a.n != b.n {
		return false
	}
	for i := 0; i < a.n; i++ {
		if !eq(*a.slot(i), *b.slot(i)) {
			return false
		}
	}
	return true
}

func (v *Vector[T]) slot(i int) *T {
	return slotAt[T](v.arena.Base(), i, v.size)
}

// destroy resets slot i to the zero value.
func (v *Vector[T]) destroy(i int) {
	var zero T
	*v.slot(i) = zero
}

func (v *Vector[T]) checkIndex(i int) error {
	if i < 0 || i >= v.n {
		return &IndexError{Index: i, Len: v.n}
	}
	return nil
}

// growIfNecessary makes room for k more elements. It asks the arena for
// max(k, Cap) elements so that growth is geometric, falling back to the
// exact shortfall near the end of the reservation.
func (v *Vector[T]) growIfNecessary(k int) error {
	if v.size == 0 {
		size, err := elemLayout[T]()
		if err != nil {
			return err
		}
		v.size = size
	}
	free := v.Cap() - v.n
	if free >= k {
		return nil
	}
	chunks := max(k, v.Cap())
	err := v.arena.Grow(int(v.size), chunks)
	if errors.Is(err, ErrCapacityExhausted) && chunks > k-free {
		err = v.arena.Grow(int(v.size), k-free)
	}
	if err != nil {
		return err
	}
	if v.Cap()-v.n < k {
		return ErrCapacityExhausted
	}
	return nil
}
