// Package settled implements a growable vector whose elements never move.
// Storage comes from one large virtual-memory reservation per vector, and
// growth exposes more of that reservation instead of reallocating.
package settled

import (
	"unsafe"

	"github.com/pavanmanishd/settled/internal/vmem"
	"github.com/sirupsen/logrus"
)

// Arena owns one virtual-memory reservation and tracks how much of it is
// usable. The start of the reservation never moves; the usable end only
// grows for the lifetime of a reservation.
//
// The reservation is made lazily on the first non-empty Grow. The zero
// value is an Arena with default options.
// Not goroutine-safe, except for Metrics.
type Arena struct {
	cfg         config
	strategy    strategy
	reservation int

	region    *vmem.Region
	usable    int // bytes usable from the start of region
	committed int // bytes with read/write access from the start of region

	stats arenaStats
}

// NewArena creates an Arena. No memory is reserved until the first Grow.
func NewArena(opts ...Option) *Arena {
	a := &Arena{}
	a.init(newConfig(opts))
	return a
}

func (a *Arena) init(cfg config) {
	a.cfg = cfg
	a.strategy = cfg.policy.strategy()
	a.reservation = vmem.RoundUp(cfg.reservation)
}

// ensureInit gives a zero Arena the default configuration.
func (a *Arena) ensureInit() {
	if a.strategy == nil {
		a.init(defaultConfig())
	}
}

// Grow makes at least chunkSize*chunkCount more bytes usable beyond the
// current usable end. The usable end always lands on a multiple of
// chunkSize. A request for zero bytes is a no-op.
//
// Under PolicyLazy the first call makes the whole reservation usable and
// later calls do nothing. Under PolicyCommit every call commits the
// requested bytes rounded up to whole pages.
//
// Growth that would not fit in the reservation fails with
// ErrCapacityExhausted and leaves the arena unchanged.
func (a *Arena) Grow(chunkSize, chunkCount int) error {
	a.ensureInit()
	if chunkSize < 0 || chunkCount < 0 {
		return ErrInvalidSize
	}
	if chunkSize == 0 || chunkCount == 0 {
		return nil
	}
	if chunkCount > a.reservation/chunkSize {
		return a.exhausted(chunkSize, chunkCount)
	}
	a.stats.grows.Add(1)
	return a.strategy.grow(a, chunkSize, chunkCount)
}

// CapacityBytes returns the number of usable bytes.
func (a *Arena) CapacityBytes() int {
	return a.usable
}

// Bytes returns the usable part of the reservation, or nil before the
// first growth.
func (a *Arena) Bytes() []byte {
	if a.region == nil {
		return nil
	}
	return a.region.Bytes()[:a.usable]
}

// Base returns the start of the reservation, or nil before the first
// growth.
func (a *Arena) Base() unsafe.Pointer {
	if a.region == nil {
		return nil
	}
	return a.region.Base()
}

// Policy returns the growth policy of the arena.
func (a *Arena) Policy() Policy {
	return a.cfg.policy
}

// ReservationSize returns the size of the reservation in bytes, rounded up
// to whole pages.
func (a *Arena) ReservationSize() int {
	a.ensureInit()
	return a.reservation
}

// Move transfers the reservation to a new Arena. The receiver is left
// empty but usable; it reserves again if it is grown.
func (a *Arena) Move() *Arena {
	a.ensureInit()
	dst := &Arena{}
	dst.init(a.cfg)
	dst.takeFrom(a)
	return dst
}

// Release returns the reservation to the operating system. It is
// idempotent and a no-op on an arena that holds no reservation.
func (a *Arena) Release() error {
	if a.region == nil {
		return nil
	}
	size := a.region.Len()
	err := a.region.Release()
	a.region = nil
	a.usable = 0
	a.committed = 0
	a.publish()
	a.stats.releases.Add(1)

	log := a.cfg.logger.WithField("action", "arena_release").WithField("size", size)
	if err != nil {
		log.WithError(err).Error("release failed")
		return err
	}
	log.Debug("released address space")
	a.cfg.observer.OnRelease(size)
	return nil
}

func (a *Arena) reserve(access vmem.Access) error {
	region, err := vmem.Reserve(a.reservation, access)
	if err != nil {
		a.cfg.logger.WithField("action", "arena_reserve").
			WithField("size", a.reservation).
			WithError(err).
			Error("reservation failed")
		return &ReservationError{Size: a.reservation, Err: err}
	}
	a.region = region
	a.publish()
	a.cfg.logger.WithFields(logrus.Fields{
		"action": "arena_reserve",
		"size":   region.Len(),
		"access": access.String(),
		"policy": a.cfg.policy.String(),
	}).Debug("reserved address space")
	a.cfg.observer.OnReserve(region.Len())
	return nil
}

// advance moves the usable end forward to usable bytes.
func (a *Arena) advance(chunkSize, usable, requested int) {
	prev := a.usable
	if usable > a.usable {
		a.usable = usable
	}
	a.publish()
	a.cfg.observer.OnGrow(GrowEvent{
		Policy:         a.cfg.policy,
		ChunkSize:      chunkSize,
		RequestedBytes: requested,
		PreviousBytes:  prev,
		UsableBytes:    a.usable,
		CommittedBytes: a.committed,
	})
}

func (a *Arena) exhausted(chunkSize, chunkCount int) error {
	a.cfg.logger.WithFields(logrus.Fields{
		"action":      "arena_exhausted",
		"chunk_size":  chunkSize,
		"chunk_count": chunkCount,
		"usable":      a.usable,
		"reservation": a.reservation,
	}).Debug("growth exceeds reservation")
	return ErrCapacityExhausted
}

func (a *Arena) takeFrom(src *Arena) {
	a.region, src.region = src.region, nil
	a.usable, src.usable = src.usable, 0
	a.committed, src.committed = src.committed, 0
	a.publish()
	src.publish()
}

// swap exchanges reservations and configuration with b.
func (a *Arena) swap(b *Arena) {
	a.cfg, b.cfg = b.cfg, a.cfg
	a.strategy, b.strategy = b.strategy, a.strategy
	a.reservation, b.reservation = b.reservation, a.reservation
	a.region, b.region = b.region, a.region
	a.usable, b.usable = b.usable, a.usable
	a.committed, b.committed = b.committed, a.committed
	a.publish()
	b.publish()
}
