package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rigid2d/vmath"
)

// Query façade: read-only lookups for gameplay logic, callable any time
// outside the step. Queries recompute shape bounds on the fly rather than
// trusting the step-time cache, since shapes may have moved since the last
// rebuild. The core's own step never calls these.

// QueryPoint returns the first active shape on an admitted layer containing
// p. Iteration order is registration order; callers needing nearest-hit
// semantics must not rely on it
func (w *World) QueryPoint(p mgl64.Vec2, mask LayerMask) *Shape {
	for _, s := range w.shapes {
		if !s.Active || !mask.Admits(s.Layer) {
			continue
		}
		if s.ContainsPoint(p) {
			return s
		}
	}
	return nil
}

// Raycast scans all admitted shapes and returns the minimum-distance hit.
// dir must be a unit vector
func (w *World) Raycast(origin, dir mgl64.Vec2, maxDistance float64, mask LayerMask) (RayHit, bool) {
	var best RayHit
	found := false
	for _, s := range w.shapes {
		if !s.Active || !mask.Admits(s.Layer) {
			continue
		}
		hit, ok := s.Raycast(origin, dir, maxDistance)
		if !ok {
			continue
		}
		if !found || hit.Distance < best.Distance {
			best = hit
			found = true
		}
	}
	return best, found
}

// RaycastAll returns every hit along the ray in registration order.
// dir must be a unit vector
func (w *World) RaycastAll(origin, dir mgl64.Vec2, maxDistance float64, mask LayerMask) []RayHit {
	var hits []RayHit
	for _, s := range w.shapes {
		if !s.Active || !mask.Admits(s.Layer) {
			continue
		}
		if hit, ok := s.Raycast(origin, dir, maxDistance); ok {
			hits = append(hits, hit)
		}
	}
	return hits
}

// OverlapCircle returns every admitted shape within radius of center,
// measured to the shape's closest point
func (w *World) OverlapCircle(center mgl64.Vec2, radius float64, mask LayerMask) []*Shape {
	var result []*Shape
	for _, s := range w.shapes {
		if !s.Active || !mask.Admits(s.Layer) {
			continue
		}
		closest := s.ClosestPoint(center)
		if closest.Sub(center).LenSqr() <= radius*radius {
			result = append(result, s)
		}
	}
	return result
}

// OverlapAABB returns every admitted shape whose bounds overlap the box
func (w *World) OverlapAABB(box vmath.AABB, mask LayerMask) []*Shape {
	var result []*Shape
	for _, s := range w.shapes {
		if !s.Active || !mask.Admits(s.Layer) {
			continue
		}
		if s.Bounds().Overlaps(box) {
			result = append(result, s)
		}
	}
	return result
}
