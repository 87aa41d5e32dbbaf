// Package promstats exports arena growth events as Prometheus metrics.
//
//	m := promstats.NewMetrics(prometheus.DefaultRegisterer, "myapp")
//	v, err := settled.New[Point](settled.WithObserver(m.Observer("points")))
package promstats

import (
	"github.com/pavanmanishd/settled"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors shared by all observed arenas. Every
// series carries an "arena" label naming the observed arena.
type Metrics struct {
	ReservedBytes  *prometheus.GaugeVec
	CommittedBytes *prometheus.GaugeVec
	UsableBytes    *prometheus.GaugeVec
	Reservations   *prometheus.CounterVec
	Grows          *prometheus.CounterVec
	Releases       *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered. Registration conflicts panic.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ReservedBytes: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "arena_reserved_bytes",
			Help:      "Address space currently reserved by the arena",
		}, []string{"arena"}),
		CommittedBytes: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "arena_committed_bytes",
			Help:      "Bytes of the reservation with read/write access",
		}, []string{"arena"}),
		UsableBytes: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "arena_usable_bytes",
			Help:      "Bytes of the reservation usable in whole elements",
		}, []string{"arena"}),
		Reservations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "arena_reservations_total",
			Help:      "Total count of address space reservations",
		}, []string{"arena"}),
		Grows: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "arena_grows_total",
			Help:      "Total count of growth steps",
		}, []string{"arena", "policy"}),
		Releases: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "arena_releases_total",
			Help:      "Total count of released reservations",
		}, []string{"arena"}),
	}
}

// Observer returns a settled.GrowthObserver recording into m under the
// given arena name.
func (m *Metrics) Observer(name string) *Observer {
	return &Observer{m: m, name: name}
}

// Observer implements settled.GrowthObserver.
type Observer struct {
	m    *Metrics
	name string
}

var _ settled.GrowthObserver = (*Observer)(nil)

// OnReserve implements settled.GrowthObserver.
func (o *Observer) OnReserve(size int) {
	o.m.ReservedBytes.WithLabelValues(o.name).Set(float64(size))
	o.m.Reservations.WithLabelValues(o.name).Inc()
}

// OnGrow implements settled.GrowthObserver.
func (o *Observer) OnGrow(ev settled.GrowEvent) {
	o.m.CommittedBytes.WithLabelValues(o.name).Set(float64(ev.CommittedBytes))
	o.m.UsableBytes.WithLabelValues(o.name).Set(float64(ev.UsableBytes))
	o.m.Grows.WithLabelValues(o.name, ev.Policy.String()).Inc()
}

// OnRelease implements settled.GrowthObserver.
func (o *Observer) OnRelease(int) {
	o.m.ReservedBytes.WithLabelValues(o.name).Set(0)
	o.m.CommittedBytes.WithLabelValues(o.name).Set(0)
	o.m.UsableBytes.WithLabelValues(o.name).Set(0)
	o.m.Releases.WithLabelValues(o.name).Inc()
}
