package qmedian

import "golang.org/x/exp/constraints"

// options holds the configuration for a Buffer.
type options[T Number, TT constraints.Unsigned] struct {
	spread    int // < 0 means Len()/4
	evictHook func(value T, at TT)
}

// Option is a function that configures a Buffer's options.
type Option[T Number, TT constraints.Unsigned] func(*options[T, TT])

// WithSpread fixes how many neighbours on each side of the median
// MedianAverage and the interval variants include. The default is a quarter of
// the examined samples. Negative values restore the default.
func WithSpread[T Number, TT constraints.Unsigned](d int) Option[T, TT] {
	return func(o *options[T, TT]) {
		o.spread = d
	}
}

// WithEvictHook registers fn to receive the oldest sample whenever Push
// overwrites it on a full buffer. Overwrite still happens unconditionally.
func WithEvictHook[T Number, TT constraints.Unsigned](fn func(value T, at TT)) Option[T, TT] {
	return func(o *options[T, TT]) {
		o.evictHook = fn
	}
}
