package qmedian

import "golang.org/x/exp/constraints"

// windowBounds returns the logical range [lo, hi] of a sorted window of n
// entries that lies within d places of the median position n/2. For even n
// the lower middle entry is always included, so d = 0 averages both middles.
func windowBounds(n, d int) (lo, hi int) {
	if d < 0 {
		d = 0
	}
	mid := n / 2
	lo = mid - d
	if n%2 == 0 {
		lo--
	}
	hi = mid + d
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	return lo, hi
}

// spreadFor returns the configured spread, or n/4.
func (b *Buffer[T, R, TT]) spreadFor(n int) int {
	if b.opts.spread >= 0 {
		return b.opts.spread
	}
	return n / 4
}

// medianOf picks the entry at n/2 of a sorted window. It is always a real
// sample, never an interpolation.
func medianOf[T Number, R Number, TT constraints.Unsigned, K Number](b *Buffer[T, R, TT], n int, key func(e *entry[T, TT]) K) K {
	var zero K
	if n == 0 {
		return zero
	}
	return key(&b.items[b.ring.physical(n/2)])
}

// meanOf is the running mean of keys over logical positions [lo, hi].
func meanOf[T Number, R Number, TT constraints.Unsigned, K Number](b *Buffer[T, R, TT], lo, hi int, key func(e *entry[T, TT]) K) R {
	var avg R
	for i := lo; i <= hi; i++ {
		avg = meanStep(avg, R(key(&b.items[b.ring.physical(i)])), i-lo)
	}
	return avg
}

// deviationOf is the running mean of |key - center| over [lo, hi].
func deviationOf[T Number, R Number, TT constraints.Unsigned, K Number](b *Buffer[T, R, TT], lo, hi int, center R, key func(e *entry[T, TT]) K) R {
	var dev R
	for i := lo; i <= hi; i++ {
		x := R(key(&b.items[b.ring.physical(i)]))
		dev = deviationStep(dev, x, center, i-lo)
	}
	return dev
}

// Median returns the sample at position Len()/2 in value order, or zero when
// empty.
func (b *Buffer[T, R, TT]) Median() T {
	n := b.ring.count()
	if n == 0 {
		var zero T
		return zero
	}
	orderBy(b, n, valueKey[T, TT])
	defer b.restoreChronological()
	return medianOf(b, n, valueKey[T, TT])
}

// MedianAverage averages the median and its neighbours within the default
// spread. See MedianAverageWithin.
func (b *Buffer[T, R, TT]) MedianAverage() R {
	return b.MedianAverageWithin(-1)
}

// MedianAverageWithin averages the samples within d places of the median in
// value order. For an even count both middle samples are always included.
// A negative d selects the default spread.
func (b *Buffer[T, R, TT]) MedianAverageWithin(d int) R {
	n := b.ring.count()
	if n == 0 {
		var zero R
		return zero
	}
	if d < 0 {
		d = b.spreadFor(n)
	}
	orderBy(b, n, valueKey[T, TT])
	defer b.restoreChronological()
	lo, hi := windowBounds(n, d)
	return meanOf(b, lo, hi, valueKey[T, TT])
}

// Average returns the running mean of all samples, or zero when empty. It does
// not reorder.
func (b *Buffer[T, R, TT]) Average() R {
	n := b.ring.count()
	if n == 0 {
		var zero R
		return zero
	}
	return meanOf(b, 0, n-1, valueKey[T, TT])
}

// extremes scans for the smallest and largest sample.
func (b *Buffer[T, R, TT]) extremes() (lo, hi T) {
	n := b.ring.count()
	if n == 0 {
		return lo, hi
	}
	lo = b.items[b.ring.physical(0)].value
	hi = lo
	for i := 1; i < n; i++ {
		v := b.items[b.ring.physical(i)].value
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Min returns the smallest sample, or zero when empty.
func (b *Buffer[T, R, TT]) Min() T {
	lo, _ := b.extremes()
	return lo
}

// Max returns the largest sample, or zero when empty.
func (b *Buffer[T, R, TT]) Max() T {
	_, hi := b.extremes()
	return hi
}

// Range returns Max() - Min(). For a signed T it wraps when the samples span
// more than T can hold, e.g. 127 and -128 in an int8 buffer give -1.
func (b *Buffer[T, R, TT]) Range() T {
	lo, hi := b.extremes()
	return hi - lo
}

// Occurrences counts samples whose distance from test is strictly less than
// epsilon.
func (b *Buffer[T, R, TT]) Occurrences(test, epsilon T) int {
	n := b.ring.count()
	c := 0
	for i := 0; i < n; i++ {
		if d, ok := absDiff(b.items[b.ring.physical(i)].value, test); ok && d < epsilon {
			c++
		}
	}
	return c
}

// Frequency is Occurrences divided by Len, or zero when empty.
func (b *Buffer[T, R, TT]) Frequency(test, epsilon T) R {
	n := b.ring.count()
	if n == 0 {
		var zero R
		return zero
	}
	return R(b.Occurrences(test, epsilon)) / R(n)
}

// MeanAbsDeviation returns the mean absolute deviation around Average.
func (b *Buffer[T, R, TT]) MeanAbsDeviation() R {
	n := b.ring.count()
	if n == 0 {
		var zero R
		return zero
	}
	center := meanOf(b, 0, n-1, valueKey[T, TT])
	return deviationOf(b, 0, n-1, center, valueKey[T, TT])
}

// MeanAbsDeviationAroundMedianAverage returns the mean absolute deviation
// around MedianAverageWithin(d), taken over the same window. A negative d
// selects the default spread.
func (b *Buffer[T, R, TT]) MeanAbsDeviationAroundMedianAverage(d int) R {
	n := b.ring.count()
	if n == 0 {
		var zero R
		return zero
	}
	if d < 0 {
		d = b.spreadFor(n)
	}
	orderBy(b, n, valueKey[T, TT])
	defer b.restoreChronological()
	lo, hi := windowBounds(n, d)
	center := meanOf(b, lo, hi, valueKey[T, TT])
	return deviationOf(b, lo, hi, center, valueKey[T, TT])
}
