package qmedian

import (
	"math"
	"testing"
)

func assertEqual[V comparable](t *testing.T, got, want V, msg string) {
	t.Helper()
	if got != want {
		t.Fatalf("%s: expected %v, got %v", msg, want, got)
	}
}

func assertNear(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s: expected %v (+/-%v), got %v", msg, want, tol, got)
	}
}

func assertTrue(t *testing.T, v bool, msg string) {
	t.Helper()
	if !v {
		t.Fatalf("%s: expected true, got false", msg)
	}
}

func assertSlice[V comparable](t *testing.T, got, want []V, msg string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: expected %v, got %v", msg, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s: expected %v, got %v", msg, want, got)
		}
	}
}

// mustNew builds a float-result buffer with uint32 time for tests.
func mustNew[T Number](t *testing.T, capacity int, opts ...Option[T, uint32]) *Buffer[T, float64, uint32] {
	t.Helper()
	b, err := New[T, float64, uint32](capacity, opts...)
	if err != nil {
		t.Fatalf("New(%d): %v", capacity, err)
	}
	return b
}

// pushAll pushes values with times 0, 10, 20, ...
func pushAll[T Number](b *Buffer[T, float64, uint32], values ...T) {
	for i, v := range values {
		b.Push(v, uint32(i*10))
	}
}
