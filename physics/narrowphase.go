package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rigid2d/constants"
	"github.com/lixenwraith/rigid2d/vmath"
)

// collide dispatches the narrow-phase test for the variant pair. The
// returned contact has its normal pointing from a to b. Cached bounds must
// be fresh for both shapes
func collide(a, b *Shape) (Contact, bool) {
	switch {
	case a.Kind == ShapeBox && b.Kind == ShapeBox:
		return collideBoxBox(a, b)
	case a.Kind == ShapeCircle && b.Kind == ShapeCircle:
		return collideCircleCircle(a, b)
	case a.Kind == ShapeBox && b.Kind == ShapeCircle:
		return collideBoxCircle(a, b)
	case a.Kind == ShapeCircle && b.Kind == ShapeBox:
		c, ok := collideBoxCircle(b, a)
		if !ok {
			return Contact{}, false
		}
		return c.Mirrored(), true
	}
	// Unknown variant pair: AABB overlap keeps future shapes colliding
	// conservatively until a dedicated test exists
	return collideBounds(a, b)
}

// collideBoxBox tests two axis-aligned boxes with the minimum-penetration
// heuristic: the axis with the smaller positive overlap separates.
// X wins ties, so symmetric overlaps resolve deterministically
func collideBoxBox(a, b *Shape) (Contact, bool) {
	centerA := a.Center()
	centerB := b.Center()
	delta := centerB.Sub(centerA)

	halfA := a.half()
	halfB := b.half()
	overlapX := halfA.X() + halfB.X() - math.Abs(delta.X())
	if overlapX <= 0 {
		return Contact{}, false
	}
	overlapY := halfA.Y() + halfB.Y() - math.Abs(delta.Y())
	if overlapY <= 0 {
		return Contact{}, false
	}

	var normal mgl64.Vec2
	var depth float64
	if overlapX <= overlapY {
		depth = overlapX
		if delta.X() >= 0 {
			normal = mgl64.Vec2{1, 0}
		} else {
			normal = mgl64.Vec2{-1, 0}
		}
	} else {
		depth = overlapY
		if delta.Y() >= 0 {
			normal = mgl64.Vec2{0, 1}
		} else {
			normal = mgl64.Vec2{0, -1}
		}
	}

	// Contact point approximated as B's face center along the normal
	point := centerB.Sub(mgl64.Vec2{normal.X() * halfB.X(), normal.Y() * halfB.Y()})

	return Contact{A: a, B: b, Normal: normal, Point: point, Depth: depth}, true
}

// collideCircleCircle tests two circles by squared distance against the sum
// of their scaled radii. Coincident centers fall back to a fixed +X normal
func collideCircleCircle(a, b *Shape) (Contact, bool) {
	centerA := a.Center()
	centerB := b.Center()
	delta := centerB.Sub(centerA)

	radiusSum := a.scaledRadius() + b.scaledRadius()
	distSq := delta.LenSqr()
	if distSq >= radiusSum*radiusSum {
		return Contact{}, false
	}

	dist := math.Sqrt(distSq)
	var normal mgl64.Vec2
	if dist < constants.Epsilon {
		normal = mgl64.Vec2{1, 0}
	} else {
		normal = delta.Mul(1.0 / dist)
	}

	return Contact{
		A:      a,
		B:      b,
		Normal: normal,
		Point:  centerA.Add(normal.Mul(a.scaledRadius())),
		Depth:  radiusSum - dist,
	}, true
}

// collideBoxCircle tests a box against a circle by clamping the circle
// center to the box extents. Depth follows one convention in both branches:
// radius minus the signed distance to the box surface, which is negative
// when the center has penetrated inside
func collideBoxCircle(box, circle *Shape) (Contact, bool) {
	boxCenter := box.Center()
	half := box.half()
	center := circle.Center()
	radius := circle.scaledRadius()

	local := center.Sub(boxCenter)
	clamped := mgl64.Vec2{
		vmath.Clamp(local.X(), -half.X(), half.X()),
		vmath.Clamp(local.Y(), -half.Y(), half.Y()),
	}

	inside := clamped == local
	if !inside {
		toCenter := local.Sub(clamped)
		distSq := toCenter.LenSqr()
		if distSq >= radius*radius {
			return Contact{}, false
		}
		dist := math.Sqrt(distSq)
		normal := vmath.SafeNormalize(toCenter, mgl64.Vec2{1, 0}, constants.Epsilon)
		return Contact{
			A:      box,
			B:      circle,
			Normal: normal,
			Point:  boxCenter.Add(clamped),
			Depth:  radius - dist,
		}, true
	}

	// Center inside the box: the raw closest-point vector is zero length, so
	// point the normal at the nearest face and read the distance as negative
	faceX := half.X() - math.Abs(local.X())
	faceY := half.Y() - math.Abs(local.Y())

	var normal mgl64.Vec2
	var faceDist float64
	if faceX <= faceY {
		faceDist = faceX
		if local.X() >= 0 {
			normal = mgl64.Vec2{1, 0}
		} else {
			normal = mgl64.Vec2{-1, 0}
		}
	} else {
		faceDist = faceY
		if local.Y() >= 0 {
			normal = mgl64.Vec2{0, 1}
		} else {
			normal = mgl64.Vec2{0, -1}
		}
	}

	return Contact{
		A:      box,
		B:      circle,
		Normal: normal,
		Point:  boxCenter.Add(clamped),
		Depth:  radius + faceDist, // radius - (-faceDist)
	}, true
}

// collideBounds is the AABB-overlap fallback, using the same minimum-axis
// heuristic as the box-box test on the cached bounds
func collideBounds(a, b *Shape) (Contact, bool) {
	boundsA := a.bounds
	boundsB := b.bounds

	centerA := boundsA.Center()
	centerB := boundsB.Center()
	delta := centerB.Sub(centerA)

	halfA := boundsA.Half()
	halfB := boundsB.Half()
	overlapX := halfA.X() + halfB.X() - math.Abs(delta.X())
	if overlapX <= 0 {
		return Contact{}, false
	}
	overlapY := halfA.Y() + halfB.Y() - math.Abs(delta.Y())
	if overlapY <= 0 {
		return Contact{}, false
	}

	var normal mgl64.Vec2
	var depth float64
	if overlapX <= overlapY {
		depth = overlapX
		if delta.X() >= 0 {
			normal = mgl64.Vec2{1, 0}
		} else {
			normal = mgl64.Vec2{-1, 0}
		}
	} else {
		depth = overlapY
		if delta.Y() >= 0 {
			normal = mgl64.Vec2{0, 1}
		} else {
			normal = mgl64.Vec2{0, -1}
		}
	}

	point := centerB.Sub(mgl64.Vec2{normal.X() * halfB.X(), normal.Y() * halfB.Y()})
	return Contact{A: a, B: b, Normal: normal, Point: point, Depth: depth}, true
}
