package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SafeNormalize returns the unit vector of v, or fallback when v is shorter
// than eps. Keeps normal computation free of division by zero
func SafeNormalize(v mgl64.Vec2, fallback mgl64.Vec2, eps float64) mgl64.Vec2 {
	lenSq := v.LenSqr()
	if lenSq < eps*eps {
		return fallback
	}
	return v.Mul(1.0 / math.Sqrt(lenSq))
}

// Perpendicular returns v rotated 90 degrees counter-clockwise
func Perpendicular(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v.Y(), v.X()}
}

// ClampMagnitude limits v to maxMag while preserving direction
func ClampMagnitude(v mgl64.Vec2, maxMag float64) mgl64.Vec2 {
	lenSq := v.LenSqr()
	if lenSq <= maxMag*maxMag || lenSq == 0 {
		return v
	}
	return v.Mul(maxMag / math.Sqrt(lenSq))
}

// Reflect returns v reflected off a surface with the given unit normal
// v' = v - 2 * dot(v, n) * n
func Reflect(v, normal mgl64.Vec2) mgl64.Vec2 {
	return v.Sub(normal.Mul(2 * v.Dot(normal)))
}
