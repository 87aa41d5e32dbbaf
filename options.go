package settled

import (
	"github.com/sirupsen/logrus"
)

type config struct {
	policy      Policy
	reservation int
	logger      logrus.FieldLogger
	observer    GrowthObserver
}

func defaultConfig() config {
	return config{
		policy:      PolicyLazy,
		reservation: DefaultReservationSize,
		logger:      logrus.StandardLogger(),
		observer:    NoopObserver{},
	}
}

func newConfig(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Option configures an Arena or a Vector.
type Option func(*config)

// WithPolicy selects the growth strategy. PolicyLazy is the default.
func WithPolicy(p Policy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// WithReservationSize sets the size of the address-space reservation in
// bytes. It is rounded up to a whole number of pages when the reservation
// is made. Non-positive values keep DefaultReservationSize.
//
// The reservation bounds the capacity of the arena for its whole lifetime.
func WithReservationSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.reservation = n
		}
	}
}

// WithLogger sets the logger used for reservation, commit and release
// events. If nil is passed, logrus.StandardLogger() is used.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l == nil {
			l = logrus.StandardLogger()
		}
		c.logger = l
	}
}

// WithObserver registers an observer for growth events.
// If nil is passed, events are discarded.
func WithObserver(o GrowthObserver) Option {
	return func(c *config) {
		if o == nil {
			o = NoopObserver{}
		}
		c.observer = o
	}
}
