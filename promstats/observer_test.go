package promstats

import (
	"testing"

	"github.com/pavanmanishd/settled"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserver_CommitPolicy(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "test")

	v, err := settled.New[int64](
		settled.WithPolicy(settled.PolicyCommit),
		settled.WithReservationSize(1<<20),
		settled.WithObserver(m.Observer("ints")),
	)
	require.NoError(t, err)

	require.NoError(t, v.PushBack(1))

	reserved := testutil.ToFloat64(m.ReservedBytes.WithLabelValues("ints"))
	committed := testutil.ToFloat64(m.CommittedBytes.WithLabelValues("ints"))
	usable := testutil.ToFloat64(m.UsableBytes.WithLabelValues("ints"))

	assert.Equal(t, float64(v.Metrics().Arena.ReservedBytes), reserved)
	assert.Equal(t, float64(v.Metrics().Arena.CommittedBytes), committed)
	assert.Equal(t, float64(v.Cap()*8), usable)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Reservations.WithLabelValues("ints")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Grows.WithLabelValues("ints", "commit")))

	// Fill the first commit and force a second growth step.
	for v.Len() < v.Cap() {
		require.NoError(t, v.PushBack(int64(v.Len())))
	}
	require.NoError(t, v.PushBack(0))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Grows.WithLabelValues("ints", "commit")))
	assert.Greater(t, testutil.ToFloat64(m.UsableBytes.WithLabelValues("ints")), usable)

	require.NoError(t, v.Close())
	assert.Equal(t, float64(0), testutil.ToFloat64(m.ReservedBytes.WithLabelValues("ints")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.UsableBytes.WithLabelValues("ints")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Releases.WithLabelValues("ints")))
}

func TestObserver_LazyPolicy(t *testing.T) {
	m := NewMetrics(nil, "")
	a := settled.NewArena(
		settled.WithReservationSize(1<<20),
		settled.WithObserver(m.Observer("raw")),
	)
	defer a.Release()

	require.NoError(t, a.Grow(16, 4))
	// Subsequent growth needs no reservation or commit.
	require.NoError(t, a.Grow(16, 4))

	assert.Equal(t, float64(1<<20), testutil.ToFloat64(m.ReservedBytes.WithLabelValues("raw")))
	assert.Equal(t, float64(1<<20), testutil.ToFloat64(m.UsableBytes.WithLabelValues("raw")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Grows.WithLabelValues("raw", "lazy")))
}

func TestNewMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "ns")
	m.Observer("a").OnReserve(4096)

	count, err := testutil.GatherAndCount(reg, "ns_arena_reserved_bytes")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Panics(t, func() { NewMetrics(reg, "ns") })
}
