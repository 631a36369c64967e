package vmath

import (
	"math"
	"testing"
)

func TestEaseOutCubicEndpoints(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.875},
		{1, 1},
		{2, 1},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := EaseOutCubic(tt.in); got != tt.want {
			t.Errorf("EaseOutCubic(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEaseOutCubicMonotonic(t *testing.T) {
	prev := EaseOutCubic(0)
	for i := 1; i <= 1000; i++ {
		cur := EaseOutCubic(float64(i) / 1000)
		if cur < prev {
			t.Fatalf("ease decreased at step %d: %v -> %v", i, prev, cur)
		}
		prev = cur
	}
}

func TestFinite(t *testing.T) {
	if !Finite(1, -2, 0) {
		t.Error("finite values reported non-finite")
	}
	if Finite(1, math.Inf(1)) || Finite(math.NaN()) {
		t.Error("non-finite values reported finite")
	}
	if LerpF(10, -10, 0.25) != 5 {
		t.Errorf("LerpF(10, -10, 0.25) = %v", LerpF(10, -10, 0.25))
	}
}
