/*
Package qmedian provides a fixed-capacity circular buffer of time-stamped numeric
samples with order statistics: median, median-average, min/max, mean absolute
deviation, average and inter-arrival interval figures.

It is built for streaming sensor data where samples arrive constantly and are
read rarely, so the buffer is almost always full. No memory is allocated after
New: statistics sort the buffer's own storage into value order, read the result
and sort it back into insertion order using a per-entry order tag.

Besides its value and time, each entry carries a TT field for the gap to the
next sample. Interval statistics sort on that field, so the stored values are
never overwritten and a T too narrow for time deltas still works.

Type parameters:

  - T is the stored sample type (any integer or float type).
  - R is the result type of averaged figures. Pick a float type, or an integer
    at least as wide as T, to keep precision.
  - TT is the unsigned time type. Deltas are computed with wrap-around
    arithmetic, so a uint32 millisecond counter may roll over.

Empty buffers never produce errors: Pop, Peek, PeekTime and every statistic
return the zero value of their result type when there is no data, which is easy
to confuse with a real zero reading. Use TryPop or TryPeek, or check Len, when
the difference matters. The same zero is returned wherever a figure would divide
by zero (a zero interval for the rate-of-change variants).

Averages use the running mean avg += (x - avg) / (i + 1) instead of a sum, so a
result type as narrow as T does not overflow. When x and avg have opposite
signs both are divided first, avg - avg/(i+1) + x/(i+1). The price is a small
truncation error for integer result types. Range is a plain subtraction and
wraps for a signed T whose samples span more than T can hold.

A Buffer is not safe for concurrent use. Every statistic reorders the storage,
so readers must be serialised with writers and with each other.

Example:

	b, err := qmedian.New[int16, float64, uint32](9)
	if err != nil {
		return err
	}
	for i, v := range []int16{-61, -64, -58, -90, -60} {
		b.Push(v, uint32(i*100))
	}
	med := b.Median()              // -61, always a pushed sample
	avg := b.MedianAverage()       // mean of the samples around the median
	rate := b.AverageRateOfChange() // samples per time unit
*/
package qmedian
