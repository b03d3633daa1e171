package physics

import (
	"math"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rigid2d/constants"
	"github.com/lixenwraith/rigid2d/vmath"
)

// ShapeKind selects the geometry variant of a Shape
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
)

// ShapeID is the stable identity of a shape for its lifetime, used for pair
// de-duplication and event records
type ShapeID = uint64

var shapeIDCounter atomic.Uint64

// Shape is a collidable volume: a tagged union over box and circle geometry.
// Every operation dispatches on Kind, so adding a variant is an explicit,
// exhaustively-checked change.
//
// World-space bounds are cached in the shape and recomputed once per fixed
// step for every active shape (and on demand by queries), never read stale
type Shape struct {
	id   ShapeID
	Kind ShapeKind

	Body      *Body      // nil means immovable scenery
	Transform *Transform // Owning pose, required

	Layer   int  // Collision layer, 0..31
	Trigger bool // Detect and report, never resolve
	Active  bool

	Offset mgl64.Vec2 // Local offset from the owning transform

	Size   mgl64.Vec2 // Box: full extent before scaling
	Radius float64    // Circle: radius before scaling

	bounds vmath.AABB

	// Broad-phase bookkeeping, owned by the spatial grid
	cells      []int64
	queryStamp uint64
}

// RayHit describes a ray intersection
type RayHit struct {
	Shape    *Shape
	Point    mgl64.Vec2
	Normal   mgl64.Vec2
	Distance float64
}

// NewBoxShape returns an active box shape of the given full size attached
// to t
func NewBoxShape(t *Transform, size mgl64.Vec2) *Shape {
	return &Shape{
		id:        shapeIDCounter.Add(1),
		Kind:      ShapeBox,
		Transform: t,
		Size:      size,
		Active:    true,
	}
}

// NewCircleShape returns an active circle shape of the given radius attached
// to t
func NewCircleShape(t *Transform, radius float64) *Shape {
	return &Shape{
		id:        shapeIDCounter.Add(1),
		Kind:      ShapeCircle,
		Transform: t,
		Radius:    radius,
		Active:    true,
	}
}

// ID returns the shape's stable identity
func (s *Shape) ID() ShapeID {
	return s.id
}

// Center returns the shape's world-space center: transform position plus
// local offset
func (s *Shape) Center() mgl64.Vec2 {
	return s.Transform.Position.Add(s.Offset)
}

// half returns the box half extents scaled by the transform
func (s *Shape) half() mgl64.Vec2 {
	return mgl64.Vec2{
		math.Abs(s.Size.X()*s.Transform.Scale.X()) * 0.5,
		math.Abs(s.Size.Y()*s.Transform.Scale.Y()) * 0.5,
	}
}

// scaledRadius returns the circle radius scaled by the larger transform axis.
// Magnitude only, so a negative Radius or scale cannot produce a negative
// penetration depth downstream
func (s *Shape) scaledRadius() float64 {
	return math.Abs(s.Radius) * vmath.MaxAbs(s.Transform.Scale.X(), s.Transform.Scale.Y())
}

// refreshBounds recomputes the cached world-space AABB from the current pose
func (s *Shape) refreshBounds() {
	center := s.Center()
	switch s.Kind {
	case ShapeBox:
		s.bounds = vmath.AABBAround(center, s.half())
	case ShapeCircle:
		r := s.scaledRadius()
		s.bounds = vmath.AABBAround(center, mgl64.Vec2{r, r})
	}
}

// Bounds recomputes and returns the world-space AABB
func (s *Shape) Bounds() vmath.AABB {
	s.refreshBounds()
	return s.bounds
}

// ContainsPoint reports whether p lies inside the shape
func (s *Shape) ContainsPoint(p mgl64.Vec2) bool {
	center := s.Center()
	switch s.Kind {
	case ShapeBox:
		half := s.half()
		d := p.Sub(center)
		return math.Abs(d.X()) <= half.X() && math.Abs(d.Y()) <= half.Y()
	case ShapeCircle:
		r := s.scaledRadius()
		return p.Sub(center).LenSqr() <= r*r
	}
	return false
}

// ClosestPoint returns the point on or inside the shape nearest to p
func (s *Shape) ClosestPoint(p mgl64.Vec2) mgl64.Vec2 {
	center := s.Center()
	switch s.Kind {
	case ShapeBox:
		return vmath.AABBAround(center, s.half()).ClosestPoint(p)
	case ShapeCircle:
		r := s.scaledRadius()
		d := p.Sub(center)
		if d.LenSqr() <= r*r {
			return p
		}
		return center.Add(vmath.SafeNormalize(d, mgl64.Vec2{1, 0}, constants.Epsilon).Mul(r))
	}
	return p
}

// Raycast intersects a ray with the shape. dir must be a unit vector; the
// hit distance is clamped to [0, maxDistance]. Boxes use the slab method,
// circles the half-chord construction.
//
// A ray starting inside a box hits at distance 0 with a zero normal, since
// no face produced the entry point; a ray starting inside a circle hits the
// exit point with its outward normal. Callers reacting to Normal must handle
// the zero vector
func (s *Shape) Raycast(origin, dir mgl64.Vec2, maxDistance float64) (RayHit, bool) {
	switch s.Kind {
	case ShapeBox:
		return s.raycastBox(origin, dir, maxDistance)
	case ShapeCircle:
		return s.raycastCircle(origin, dir, maxDistance)
	}
	return RayHit{}, false
}

func (s *Shape) raycastBox(origin, dir mgl64.Vec2, maxDistance float64) (RayHit, bool) {
	box := vmath.AABBAround(s.Center(), s.half())
	t, normal, ok := box.Raycast(origin, dir, maxDistance)
	if !ok {
		return RayHit{}, false
	}
	t = vmath.Clamp(t, 0, maxDistance)
	return RayHit{
		Shape:    s,
		Point:    origin.Add(dir.Mul(t)),
		Normal:   normal,
		Distance: t,
	}, true
}

func (s *Shape) raycastCircle(origin, dir mgl64.Vec2, maxDistance float64) (RayHit, bool) {
	center := s.Center()
	r := s.scaledRadius()

	// Project the center onto the ray, then step back by the half chord
	toCenter := center.Sub(origin)
	proj := toCenter.Dot(dir)
	perpSq := toCenter.LenSqr() - proj*proj
	if perpSq > r*r {
		return RayHit{}, false
	}

	halfChord := math.Sqrt(r*r - perpSq)
	t := proj - halfChord
	if t < 0 {
		// Origin inside the circle, exit point is the hit
		t = proj + halfChord
	}
	if t < 0 || t > maxDistance {
		return RayHit{}, false
	}

	point := origin.Add(dir.Mul(t))
	return RayHit{
		Shape:    s,
		Point:    point,
		Normal:   vmath.SafeNormalize(point.Sub(center), dir.Mul(-1), constants.Epsilon),
		Distance: t,
	}, true
}
