package qmedian

import "golang.org/x/exp/constraints"

// Number is any integer or floating-point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// absDiff returns |a - b|. It compares before subtracting, so unsigned types
// never wrap and no signed-only abs is needed. ok is false when a and b have
// opposite signs and their distance does not fit in N; d is then meaningless.
func absDiff[N Number](a, b N) (d N, ok bool) {
	if a > b {
		d = a - b
	} else {
		d = b - a
	}
	return d, d >= 0
}

// meanStep folds x into avg, the running mean of n earlier samples.
// Same-sign operands take the difference in whichever direction keeps it
// non-negative, so unsigned types never wrap. Opposite signs could overflow a
// signed difference, so both sides are scaled down before they are combined.
func meanStep[R Number](avg, x R, n int) R {
	k := R(n + 1)
	if (x < 0) != (avg < 0) {
		return avg - avg/k + x/k
	}
	if x >= avg {
		return avg + (x-avg)/k
	}
	return avg - (avg-x)/k
}

// deviationStep folds |x - center| into dev, the running mean absolute
// deviation of n earlier samples. A distance too wide for R is folded in
// float64 and truncated back.
func deviationStep[R Number](dev, x, center R, n int) R {
	d, ok := absDiff(x, center)
	if ok {
		return meanStep(dev, d, n)
	}
	dist := float64(x) - float64(center)
	if dist < 0 {
		dist = -dist
	}
	return R(float64(dev) + (dist-float64(dev))/float64(n+1))
}

// fitsIn reports whether n survives a round trip through R.
func fitsIn[R Number](n int) bool {
	return int(R(n)) == n
}
