package settled

import (
	"sync"
	"testing"

	"github.com/pavanmanishd/settled/internal/vmem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaMetrics(t *testing.T) {
	ps := vmem.PageSize()
	a := NewArena(WithPolicy(PolicyCommit), WithReservationSize(16*ps))

	// Initial state
	m := a.Metrics()
	assert.Equal(t, PolicyCommit, m.Policy)
	assert.Zero(t, m.ReservedBytes)
	assert.Zero(t, m.Utilization)

	require.NoError(t, a.Grow(100, 1))
	require.NoError(t, a.Grow(ps, 3))

	m = a.Metrics()
	assert.Equal(t, int64(16*ps), m.ReservedBytes)
	assert.Equal(t, int64(4*ps), m.CommittedBytes)
	assert.Equal(t, int64(a.CapacityBytes()), m.UsableBytes)
	assert.Equal(t, uint64(2), m.Grows)
	assert.Equal(t, uint64(2), m.Commits)
	assert.InDelta(t, 0.25, m.Utilization, 1e-9)

	require.NoError(t, a.Release())
	m = a.Metrics()
	assert.Zero(t, m.ReservedBytes)
	assert.Zero(t, m.CommittedBytes)
	assert.Zero(t, m.UsableBytes)
	assert.Equal(t, uint64(1), m.Releases)
}

func TestArenaMetrics_Lazy(t *testing.T) {
	a := NewArena(WithReservationSize(testReservation))
	defer a.Release()

	require.NoError(t, a.Grow(8, 1))
	m := a.Metrics()
	assert.Equal(t, int64(testReservation), m.ReservedBytes)
	assert.Equal(t, int64(testReservation), m.CommittedBytes)
	assert.Zero(t, m.Commits)
	assert.InDelta(t, 1.0, m.Utilization, 1e-9)
}

func TestArenaMetrics_ConcurrentRead(t *testing.T) {
	a := NewArena(WithPolicy(PolicyCommit), WithReservationSize(testReservation))
	defer a.Release()

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				m := a.Metrics()
				assert.LessOrEqual(t, m.UsableBytes, m.ReservedBytes)
			}
		}
	}()

	for i := 0; i < 100; i++ {
		require.NoError(t, a.Grow(64, 16))
	}
	close(done)
	wg.Wait()
}

func TestVectorMetrics(t *testing.T) {
	v, err := New[int32](testOptions(PolicyCommit)...)
	require.NoError(t, err)
	defer v.Close()

	m := v.Metrics()
	assert.Zero(t, m.Cap)
	assert.Zero(t, m.Utilization)
	assert.Equal(t, 4, m.ElemSize)

	for i := 0; i < 10; i++ {
		require.NoError(t, v.PushBack(int32(i)))
	}
	m = v.Metrics()
	assert.Equal(t, 10, m.Len)
	assert.Equal(t, v.Cap(), m.Cap)
	assert.InDelta(t, 10/float64(v.Cap()), m.Utilization, 1e-9)
	assert.Equal(t, int64(v.Cap()*4), m.Arena.UsableBytes)
}

type recordingObserver struct {
	reserves, releases []int
	grows              []GrowEvent
}

func (r *recordingObserver) OnReserve(size int)  { r.reserves = append(r.reserves, size) }
func (r *recordingObserver) OnGrow(ev GrowEvent) { r.grows = append(r.grows, ev) }
func (r *recordingObserver) OnRelease(size int)  { r.releases = append(r.releases, size) }

func TestGrowthObserver(t *testing.T) {
	ps := vmem.PageSize()
	obs := &recordingObserver{}
	v, err := New[[36]byte](WithPolicy(PolicyCommit), WithReservationSize(8*ps), WithObserver(obs))
	require.NoError(t, err)

	require.NoError(t, v.PushBack([36]byte{}))
	for v.Len() < v.Cap() {
		require.NoError(t, v.PushBack([36]byte{1}))
	}
	require.NoError(t, v.PushBack([36]byte{2}))
	require.NoError(t, v.Close())

	assert.Equal(t, []int{8 * ps}, obs.reserves)
	assert.Equal(t, []int{8 * ps}, obs.releases)
	require.Len(t, obs.grows, 2)

	first, second := obs.grows[0], obs.grows[1]
	assert.Equal(t, GrowEvent{
		Policy:         PolicyCommit,
		ChunkSize:      36,
		RequestedBytes: 36,
		PreviousBytes:  0,
		UsableBytes:    ps / 36 * 36,
		CommittedBytes: ps,
	}, first)
	assert.Equal(t, first.UsableBytes, second.PreviousBytes)
	assert.Equal(t, 2*ps/36*36, second.UsableBytes)
	assert.Equal(t, 2*ps, second.CommittedBytes)
}

func TestWithObserverNil(t *testing.T) {
	a := NewArena(WithObserver(nil), WithLogger(nil), WithReservationSize(testReservation))
	defer a.Release()
	assert.NoError(t, a.Grow(1, 1))
}
