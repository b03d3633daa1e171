package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB is an axis-aligned bounding box in world space
type AABB struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// AABBAround builds an AABB from a center and half extents
func AABBAround(center, half mgl64.Vec2) AABB {
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Center returns the box midpoint
func (b AABB) Center() mgl64.Vec2 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Half returns the box half extents
func (b AABB) Half() mgl64.Vec2 {
	return b.Max.Sub(b.Min).Mul(0.5)
}

// Overlaps reports whether b and o intersect, boundary touches included
func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X() <= o.Max.X() && b.Max.X() >= o.Min.X() &&
		b.Min.Y() <= o.Max.Y() && b.Max.Y() >= o.Min.Y()
}

// Contains reports whether p lies inside or on the boundary of b
func (b AABB) Contains(p mgl64.Vec2) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y()
}

// ClosestPoint clamps p to the box surface or interior
func (b AABB) ClosestPoint(p mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		Clamp(p.X(), b.Min.X(), b.Max.X()),
		Clamp(p.Y(), b.Min.Y(), b.Max.Y()),
	}
}

// Union returns the smallest AABB containing both b and o
func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: mgl64.Vec2{math.Min(b.Min.X(), o.Min.X()), math.Min(b.Min.Y(), o.Min.Y())},
		Max: mgl64.Vec2{math.Max(b.Max.X(), o.Max.X()), math.Max(b.Max.Y(), o.Max.Y())},
	}
}

// Expanded grows the box by margin on every side
func (b AABB) Expanded(margin float64) AABB {
	m := mgl64.Vec2{margin, margin}
	return AABB{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

// Raycast intersects a ray with the box using the slab method. dir need not
// be normalized; the returned t is in dir lengths along the ray. The normal
// is the face normal of the slab that produced the entry point. Rays starting
// inside the box hit at t = 0 with a zero normal.
// Returns ok = false when the ray is parallel to an axis while the origin is
// outside that axis's slab, or when the intervals never overlap.
func (b AABB) Raycast(origin, dir mgl64.Vec2, maxT float64) (t float64, normal mgl64.Vec2, ok bool) {
	tMin := 0.0
	tMax := maxT
	normal = mgl64.Vec2{}

	for axis := 0; axis < 2; axis++ {
		o := origin[axis]
		d := dir[axis]
		lo := b.Min[axis]
		hi := b.Max[axis]

		if math.Abs(d) < 1e-12 {
			// Parallel to this slab: miss unless origin is within it
			if o < lo || o > hi {
				return 0, normal, false
			}
			continue
		}

		inv := 1.0 / d
		t1 := (lo - o) * inv
		t2 := (hi - o) * inv
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}

		if t1 > tMin {
			tMin = t1
			normal = mgl64.Vec2{}
			normal[axis] = sign
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, normal, false
		}
	}

	return tMin, normal, true
}
