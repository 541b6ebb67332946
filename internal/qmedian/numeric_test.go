package qmedian

import "testing"

func TestAbsDiff(t *testing.T) {
	d := func(v uint8, _ bool) uint8 { return v }
	assertEqual(t, d(absDiff[uint8](3, 250)), 247, "uint8 below")
	assertEqual(t, d(absDiff[uint8](250, 3)), 247, "uint8 above")

	got, ok := absDiff[int16](-60, -90)
	assertEqual(t, got, 30, "int16")
	assertTrue(t, ok, "int16 fits")

	f, ok := absDiff(1.5, -1.5)
	assertEqual(t, f, 3.0, "float64")
	assertTrue(t, ok, "float64 fits")

	u, _ := absDiff[uint32](7, 7)
	assertEqual(t, u, 0, "equal")

	_, ok = absDiff[int8](127, -128)
	assertTrue(t, !ok, "int8 distance 255 does not fit")
	w, ok := absDiff[int8](100, -27)
	assertEqual(t, w, 127, "int8 opposite signs within range")
	assertTrue(t, ok, "int8 127 fits")
}

func TestMeanStep(t *testing.T) {
	tests := []struct {
		name string
		avg  uint8
		x    uint8
		n    int
		want uint8
	}{
		{"first sample", 0, 200, 0, 200},
		{"rising", 100, 200, 1, 150},
		{"falling unsigned does not wrap", 200, 100, 1, 150},
		{"truncates toward the old mean", 250, 255, 5, 250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertEqual(t, meanStep(tt.avg, tt.x, tt.n), tt.want, "meanStep")
		})
	}

	assertEqual(t, meanStep(-10.0, -20.0, 1), -15.0, "float falling")
	assertEqual(t, meanStep[int8](127, -128, 1), 0, "int8 opposite signs")
	assertEqual(t, meanStep[int8](-128, 127, 1), -1, "int8 opposite signs falling")
	assertEqual(t, meanStep[int8](0, -128, 0), -128, "int8 first negative sample")
}

func TestDeviationStep(t *testing.T) {
	assertEqual(t, deviationStep[int8](0, 127, 0, 0), 127, "first deviation")
	assertEqual(t, deviationStep[int8](127, -128, 0, 1), 127, "distance wider than int8")
	assertEqual(t, deviationStep[uint8](10, 5, 20, 1), 12, "unsigned below center")
}

func TestFitsIn(t *testing.T) {
	assertTrue(t, fitsIn[uint8](255), "255 fits uint8")
	assertTrue(t, !fitsIn[int8](200), "200 does not fit int8")
	assertTrue(t, fitsIn[float32](255), "255 fits float32")
}
