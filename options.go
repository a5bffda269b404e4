package kzgsrs

import (
	"crypto/rand"
	"io"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

// Option configures how an Srs is read and processed.
type Option func(*options)

type options struct {
	workers int
	rng     io.Reader
	log     zerolog.Logger
}

func newOptions(opts []Option) options {
	o := options{
		rng: rand.Reader,
		log: logger.Logger().With().Logger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithWorkers sets how many goroutines decode points, compute the Lagrange
// basis and run the validation multi-scalar multiplications. n <= 0, the
// default, uses one per CPU; 1 runs everything on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithRandomness sets the source of the validation coefficients, crypto/rand
// by default. Only tests should use a predictable source.
func WithRandomness(rng io.Reader) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithLogger replaces the gnark logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}
