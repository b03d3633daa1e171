package physics

import "github.com/go-gl/mathgl/mgl64"

// Contact records one detected overlap. Normal is a unit vector pointing
// from A to B, Point approximates the contact location and Depth is the
// penetration, always >= 0.
//
// Contacts are symmetric: the contact for (B, A) is the exact mirror
type Contact struct {
	A      *Shape
	B      *Shape
	Normal mgl64.Vec2
	Point  mgl64.Vec2
	Depth  float64
}

// Mirrored returns the same contact from B's perspective: references
// swapped, normal negated, depth unchanged
func (c Contact) Mirrored() Contact {
	return Contact{
		A:      c.B,
		B:      c.A,
		Normal: c.Normal.Mul(-1),
		Point:  c.Point,
		Depth:  c.Depth,
	}
}

// Trigger reports whether either shape is a trigger, which exempts the
// contact from resolution
func (c Contact) Trigger() bool {
	return c.A.Trigger || c.B.Trigger
}

// pairKey identifies an unordered shape pair. The smaller ID always goes
// first, so (a, b) and (b, a) produce the same key
type pairKey struct {
	lo ShapeID
	hi ShapeID
}

func makePairKey(a, b ShapeID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}
