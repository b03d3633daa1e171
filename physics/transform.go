// Package physics implements a 2D rigid-body core: uniform-grid broad phase,
// box/circle narrow phase, impulse-based resolution with friction and
// restitution, and point/ray/area queries, driven by a fixed-timestep loop.
//
// The world is an explicitly constructed object; one fixed step runs to
// completion before poses are observed, and the whole pipeline is
// single-threaded computation.
package physics

import "github.com/go-gl/mathgl/mgl64"

// Transform is the pose of an owning entity: position, per-axis scale and
// rotation in radians. Shapes hold a pointer to it; the scene layer reads
// Position back after a step for drawing
type Transform struct {
	Position mgl64.Vec2
	Scale    mgl64.Vec2
	Rotation float64
}

// NewTransform returns a transform at pos with unit scale
func NewTransform(pos mgl64.Vec2) *Transform {
	return &Transform{Position: pos, Scale: mgl64.Vec2{1, 1}}
}
