package qmedian

// fillIntervals stores in each entry the time to the next chronological entry
// and returns how many intervals are valid (Len()-1). The newest entry has no
// successor; its interval is zero and never examined. Results are cached until
// the next Push, Pop or Clear. Sample values are left untouched.
func (b *Buffer[T, R, TT]) fillIntervals() int {
	n := b.ring.count()
	if n < 2 {
		return 0
	}
	if b.intervalsValid {
		return n - 1
	}
	b.restoreChronological()
	prev := &b.items[b.ring.physical(0)]
	for i := 1; i < n; i++ {
		next := &b.items[b.ring.physical(i)]
		prev.interval = next.at - prev.at
		prev = next
	}
	prev.interval = 0
	b.intervalsValid = true
	return n - 1
}

// reciprocal returns 1/x, or zero when x is zero.
func reciprocal[R Number](x R) R {
	var zero R
	if x == zero {
		return zero
	}
	return 1 / x
}

// MedianInterval returns the median time between consecutive samples, or zero
// with fewer than two samples.
func (b *Buffer[T, R, TT]) MedianInterval() TT {
	m := b.fillIntervals()
	if m == 0 {
		var zero TT
		return zero
	}
	orderBy(b, m, intervalKey[T, TT])
	defer b.restoreChronological()
	return medianOf(b, m, intervalKey[T, TT])
}

// MedianAverageInterval averages the intervals within the default spread of
// the median interval.
func (b *Buffer[T, R, TT]) MedianAverageInterval() R {
	m := b.fillIntervals()
	if m == 0 {
		var zero R
		return zero
	}
	orderBy(b, m, intervalKey[T, TT])
	defer b.restoreChronological()
	lo, hi := windowBounds(m, b.spreadFor(m))
	return meanOf(b, lo, hi, intervalKey[T, TT])
}

// AverageInterval returns the running mean time between consecutive samples.
func (b *Buffer[T, R, TT]) AverageInterval() R {
	m := b.fillIntervals()
	if m == 0 {
		var zero R
		return zero
	}
	return meanOf(b, 0, m-1, intervalKey[T, TT])
}

// MedianRateOfChange is 1/MedianInterval: samples per time unit. Zero when the
// interval is zero. Use a float R; integer results truncate to 0 or 1.
func (b *Buffer[T, R, TT]) MedianRateOfChange() R {
	return reciprocal(R(b.MedianInterval()))
}

// MedianAverageRateOfChange is 1/MedianAverageInterval, or zero.
func (b *Buffer[T, R, TT]) MedianAverageRateOfChange() R {
	return reciprocal(b.MedianAverageInterval())
}

// AverageRateOfChange is 1/AverageInterval, or zero.
func (b *Buffer[T, R, TT]) AverageRateOfChange() R {
	return reciprocal(b.AverageInterval())
}
