// Package vmath provides 2D float math helpers for world-space physics,
// layered on mgl64.Vec2. Scalar clamps, epsilon comparison, and the AABB
// type live here; everything a vector already does well is left to mathgl.
package vmath

import "math"

// Clamp limits value to [min, max]
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ApproxEqual reports whether a and b differ by less than eps
func ApproxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// MaxAbs returns the larger of |a| and |b|
func MaxAbs(a, b float64) float64 {
	return math.Max(math.Abs(a), math.Abs(b))
}
