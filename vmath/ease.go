package vmath

import "math"

// Clamp01 clamps t into [0, 1], NaN maps to 0
func Clamp01(t float64) float64 {
	if !(t > 0) {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// EaseOutCubic starts fast and decelerates into 1, monotonic on [0, 1]
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	inv := 1 - t
	return 1 - inv*inv*inv
}

// LerpF interpolates between a and b
func LerpF(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Finite reports whether every value is neither NaN nor infinite
func Finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
