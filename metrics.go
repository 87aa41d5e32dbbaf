package settled

import "sync/atomic"

// GrowthObserver receives arena lifecycle events.
// Implement this interface to integrate with monitoring systems like
// Prometheus; see the promstats package.
//
// Methods are called synchronously on the goroutine using the arena.
type GrowthObserver interface {
	// OnReserve is called after address space of size bytes is reserved.
	OnReserve(size int)
	// OnGrow is called after each growth that reached the policy.
	OnGrow(ev GrowEvent)
	// OnRelease is called after a reservation of size bytes is released.
	OnRelease(size int)
}

// GrowEvent describes one growth step of an arena.
type GrowEvent struct {
	Policy         Policy
	ChunkSize      int // bytes per chunk (element size for a Vector)
	RequestedBytes int // chunk size times chunk count
	PreviousBytes  int // usable bytes before the growth
	UsableBytes    int // usable bytes after the growth
	CommittedBytes int // bytes with read/write access after the growth
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnReserve(int)    {}
func (NoopObserver) OnGrow(GrowEvent) {}
func (NoopObserver) OnRelease(int)    {}

// arenaStats is safe to read from other goroutines.
type arenaStats struct {
	reserved  atomic.Int64
	committed atomic.Int64
	usable    atomic.Int64
	grows     atomic.Uint64
	commits   atomic.Uint64
	releases  atomic.Uint64
}

// publish copies the current sizes into the atomic stats.
func (a *Arena) publish() {
	reserved := 0
	if a.region != nil {
		reserved = a.region.Len()
	}
	a.stats.reserved.Store(int64(reserved))
	a.stats.committed.Store(int64(a.committed))
	a.stats.usable.Store(int64(a.usable))
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	Policy         Policy
	ReservedBytes  int64   // Address space currently reserved
	CommittedBytes int64   // Bytes with read/write access
	UsableBytes    int64   // Bytes usable in whole chunks
	Grows          uint64  // Grow calls that reached the policy
	Commits        uint64  // Commit system calls
	Releases       uint64  // Reservations released
	Utilization    float64 // Ratio of usable to reserved (0.0-1.0)
}

// Metrics returns a snapshot of arena statistics.
// It is safe to call concurrently with other arena methods.
func (a *Arena) Metrics() ArenaMetrics {
	m := ArenaMetrics{
		Policy:         a.cfg.policy,
		ReservedBytes:  a.stats.reserved.Load(),
		CommittedBytes: a.stats.committed.Load(),
		UsableBytes:    a.stats.usable.Load(),
		Grows:          a.stats.grows.Load(),
		Commits:        a.stats.commits.Load(),
		Releases:       a.stats.releases.Load(),
	}
	if m.ReservedBytes > 0 {
		m.Utilization = float64(m.UsableBytes) / float64(m.ReservedBytes)
	}
	return m
}

// VectorMetrics contains statistical information about a vector.
type VectorMetrics struct {
	Len         int     // Live elements
	Cap         int     // Elements that fit in usable memory
	ElemSize    int     // Bytes per element
	Utilization float64 // Ratio of Len to Cap (0.0-1.0)
	Arena       ArenaMetrics
}

// Metrics returns a snapshot of vector statistics.
func (v *Vector[T]) Metrics() VectorMetrics {
	m := VectorMetrics{
		Len:      v.n,
		Cap:      v.Cap(),
		ElemSize: int(v.size),
		Arena:    v.arena.Metrics(),
	}
	if m.Cap > 0 {
		m.Utilization = float64(m.Len) / float64(m.Cap)
	}
	return m
}
