package qmedian

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

// ErrInvalidCapacity is returned by New for a capacity outside [1, MaxCapacity]
// or one the result type cannot count to.
var ErrInvalidCapacity = errors.New("qmedian: invalid capacity")

// entry is one stored sample.
type entry[T Number, TT constraints.Unsigned] struct {
	value    T
	at       TT
	interval TT    // delta to the next sample, valid while intervalsValid
	tag      uint8 // chronological offset, valid while key-ordered
}

// Buffer is a fixed-capacity circular buffer of time-stamped samples with
// in-place order statistics. The zero value is not usable; call New.
type Buffer[T Number, R Number, TT constraints.Unsigned] struct {
	items          []entry[T, TT]
	ring           ring
	order          orderState
	intervalsValid bool
	pushCount      uint8
	opts           options[T, TT]
}

// New creates an empty buffer holding up to capacity samples. All storage is
// allocated here.
func New[T Number, R Number, TT constraints.Unsigned](capacity int, opts ...Option[T, TT]) (*Buffer[T, R, TT], error) {
	if capacity < 1 || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidCapacity, capacity, MaxCapacity)
	}
	if !fitsIn[R](capacity) {
		return nil, fmt.Errorf("%w: %d overflows the result type", ErrInvalidCapacity, capacity)
	}

	cfg := options[T, TT]{spread: -1}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Buffer[T, R, TT]{
		items: make([]entry[T, TT], capacity),
		ring:  newRing(uint8(capacity)),
		opts:  cfg,
	}, nil
}

// Push stores a sample. On a full buffer the oldest sample is overwritten.
func (b *Buffer[T, R, TT]) Push(value T, at TT) {
	b.restoreChronological()
	b.pushCount++
	b.intervalsValid = false

	if b.ring.full && b.opts.evictHook != nil {
		old := b.items[b.ring.tail]
		b.opts.evictHook(old.value, old.at)
	}
	b.items[b.ring.head] = entry[T, TT]{value: value, at: at}
	b.ring.push()
}

// Pop removes and returns the oldest sample, or zero when empty.
func (b *Buffer[T, R, TT]) Pop() T {
	v, _ := b.TryPop()
	return v
}

// TryPop is Pop that also reports whether a sample was removed.
func (b *Buffer[T, R, TT]) TryPop() (T, bool) {
	if b.ring.empty() {
		var zero T
		return zero, false
	}
	b.restoreChronological()
	b.intervalsValid = false
	v := b.items[b.ring.tail].value
	b.ring.pop()
	return v, true
}

// Peek returns the oldest sample without removing it, or zero when empty.
func (b *Buffer[T, R, TT]) Peek() T {
	v, _, _ := b.TryPeek()
	return v
}

// PeekTime returns the time of the oldest sample, or zero when empty.
func (b *Buffer[T, R, TT]) PeekTime() TT {
	_, at, _ := b.TryPeek()
	return at
}

// TryPeek returns the oldest sample and its time, and false when empty.
func (b *Buffer[T, R, TT]) TryPeek() (T, TT, bool) {
	if b.ring.empty() {
		var zero T
		var zeroTime TT
		return zero, zeroTime, false
	}
	b.restoreChronological()
	e := b.items[b.ring.tail]
	return e.value, e.at, true
}

// DeleteOlderThanInterval pops the oldest sample if its age at now is greater
// than interval, and reports whether it did. Age is now - PeekTime() in TT
// arithmetic, so a wrapped clock still yields the right age.
func (b *Buffer[T, R, TT]) DeleteOlderThanInterval(now, interval TT) bool {
	if b.ring.empty() {
		return false
	}
	if now-b.PeekTime() > interval {
		b.Pop()
		return true
	}
	return false
}

// Prune removes every sample older than interval and returns how many went.
func (b *Buffer[T, R, TT]) Prune(now, interval TT) int {
	n := 0
	for b.DeleteOlderThanInterval(now, interval) {
		n++
	}
	return n
}

// Clear empties the buffer. Storage is not zeroed and PushCount is kept.
func (b *Buffer[T, R, TT]) Clear() {
	b.restoreChronological()
	b.ring.reset()
	b.intervalsValid = false
}

// IsFull reports whether the next Push will overwrite the oldest sample.
func (b *Buffer[T, R, TT]) IsFull() bool { return b.ring.full }

// IsEmpty reports whether the buffer holds no samples.
func (b *Buffer[T, R, TT]) IsEmpty() bool { return b.ring.empty() }

// Len returns the number of samples held.
func (b *Buffer[T, R, TT]) Len() int { return b.ring.count() }

// Cap returns the fixed capacity.
func (b *Buffer[T, R, TT]) Cap() int { return int(b.ring.capacity) }

// PushCount returns the number of pushes since construction or the last
// ResetPushCount. It wraps at 256.
func (b *Buffer[T, R, TT]) PushCount() uint8 { return b.pushCount }

// ResetPushCount zeroes the push counter.
func (b *Buffer[T, R, TT]) ResetPushCount() { b.pushCount = 0 }

// Values returns a copy of the samples, oldest first.
func (b *Buffer[T, R, TT]) Values() []T {
	b.restoreChronological()
	n := b.ring.count()
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = b.items[b.ring.physical(i)].value
	}
	return out
}

// Times returns a copy of the sample times, oldest first.
func (b *Buffer[T, R, TT]) Times() []TT {
	b.restoreChronological()
	n := b.ring.count()
	out := make([]TT, n)
	for i := 0; i < n; i++ {
		out[i] = b.items[b.ring.physical(i)].at
	}
	return out
}
