package qmedian

import "testing"

func TestIntervals(t *testing.T) {
	b := mustNew[float64](t, 5)
	b.Push(1, 0)
	b.Push(2, 10)
	b.Push(3, 25)

	// deltas 10 and 15; the newest sample has none
	assertEqual(t, b.MedianInterval(), uint32(15), "MedianInterval")
	assertEqual(t, b.MedianAverageInterval(), 12.5, "MedianAverageInterval")
	assertEqual(t, b.AverageInterval(), 12.5, "AverageInterval")
	assertNear(t, b.MedianRateOfChange(), 1.0/15, 1e-12, "MedianRateOfChange")
	assertEqual(t, b.MedianAverageRateOfChange(), 0.08, "MedianAverageRateOfChange")
	assertEqual(t, b.AverageRateOfChange(), 0.08, "AverageRateOfChange")
	assertEqual(t, b.order, orderChronological, "order after interval statistics")
}

func TestIntervalsDoNotLeakIntoValues(t *testing.T) {
	b := mustNew[float64](t, 5)
	b.Push(1, 0)
	b.Push(2, 10)
	b.Push(3, 25)

	b.MedianInterval()
	assertEqual(t, b.Average(), 2.0, "Average after MedianInterval")
	assertEqual(t, b.Median(), 2.0, "Median after MedianInterval")
	assertSlice(t, b.Values(), []float64{1, 2, 3}, "Values")

	b.Push(4, 40)
	assertTrue(t, !b.intervalsValid, "Push invalidates intervals")
	assertNear(t, b.AverageInterval(), 40.0/3, 1e-9, "AverageInterval after push")
	assertEqual(t, b.Average(), 2.5, "Average after push")

	b.Pop()
	assertTrue(t, !b.intervalsValid, "Pop invalidates intervals")
	assertEqual(t, b.AverageInterval(), 15.0, "AverageInterval after pop")
}

func TestIntervalsAfterWraparound(t *testing.T) {
	b := mustNew[int](t, 3)
	for i, at := range []uint32{0, 10, 25, 45} {
		b.Push(i, at)
	}
	// kept times 10, 25, 45
	assertEqual(t, b.MedianInterval(), uint32(20), "MedianInterval")
	assertEqual(t, b.AverageInterval(), 17.5, "AverageInterval")
	assertSlice(t, b.Values(), []int{1, 2, 3}, "Values")
}

func TestIntervalsWrappedClock(t *testing.T) {
	b, err := New[int, float64, uint8](4)
	if err != nil {
		t.Fatal(err)
	}
	b.Push(1, 250)
	b.Push(2, 255)
	b.Push(3, 4)
	assertEqual(t, b.AverageInterval(), 5.0, "deltas across the wrap")
	assertEqual(t, b.MedianInterval(), uint8(5), "MedianInterval")
}

func TestIntervalsNeedTwoSamples(t *testing.T) {
	b := mustNew[int](t, 3)
	b.Push(1, 100)
	assertEqual(t, b.MedianInterval(), uint32(0), "MedianInterval")
	assertEqual(t, b.MedianAverageInterval(), 0.0, "MedianAverageInterval")
	assertEqual(t, b.AverageInterval(), 0.0, "AverageInterval")
	assertEqual(t, b.MedianRateOfChange(), 0.0, "MedianRateOfChange")
	assertEqual(t, b.AverageRateOfChange(), 0.0, "AverageRateOfChange")
}

func TestZeroIntervalRate(t *testing.T) {
	b := mustNew[int](t, 3)
	b.Push(1, 5)
	b.Push(2, 5)
	b.Push(3, 5)
	assertEqual(t, b.AverageInterval(), 0.0, "AverageInterval")
	assertEqual(t, b.AverageRateOfChange(), 0.0, "zero interval gives zero rate")
	assertEqual(t, b.MedianRateOfChange(), 0.0, "zero median interval gives zero rate")
}
