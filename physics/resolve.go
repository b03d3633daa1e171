package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rigid2d/constants"
	"github.com/lixenwraith/rigid2d/vmath"
)

// invMassOf returns the effective inverse mass of a shape's owner. A nil or
// kinematic body is immovable: it contributes zero motion and pushes all
// positional correction onto the other shape
func invMassOf(s *Shape) float64 {
	if s.Body == nil {
		return 0
	}
	return s.Body.InverseMass()
}

// resolveContact applies positional correction and, when both shapes carry a
// body, an impulse along the contact normal plus a tangential friction
// impulse. Trigger contacts never reach this point
func (w *World) resolveContact(c Contact) {
	invA := invMassOf(c.A)
	invB := invMassOf(c.B)
	invSum := invA + invB
	if invSum <= 0 {
		// Two immovable shapes overlapping; nothing to do
		return
	}

	w.correctPositions(c, invA, invB, invSum)

	if c.A.Body == nil || c.B.Body == nil {
		w.markGrounded(c)
		return
	}

	bodyA := c.A.Body
	bodyB := c.B.Body

	relVel := bodyB.Velocity().Sub(bodyA.Velocity())
	velAlongNormal := relVel.Dot(c.Normal)
	if velAlongNormal > 0 {
		// Already separating
		w.markGrounded(c)
		return
	}

	// Pair restitution is the min of the two, clamped into [0, 1] so a
	// misconfigured body cannot add energy or invert the bounce
	restitution := vmath.Clamp(math.Min(bodyA.Restitution, bodyB.Restitution), 0, 1)
	j := -(1 + restitution) * velAlongNormal / invSum

	impulse := c.Normal.Mul(j)
	bodyA.applyImpulse(impulse.Mul(-1))
	bodyB.applyImpulse(impulse)

	w.applyFriction(c, bodyA, bodyB, j, invSum)
	w.markGrounded(c)
}

// applyFriction adds a tangential impulse opposing sliding, with magnitude
// clamped to j scaled by the average friction of the pair
func (w *World) applyFriction(c Contact, bodyA, bodyB *Body, j, invSum float64) {
	friction := (bodyA.Friction + bodyB.Friction) * 0.5
	if friction <= 0 {
		return
	}

	// Recompute relative velocity after the normal impulse
	relVel := bodyB.Velocity().Sub(bodyA.Velocity())
	tangent := relVel.Sub(c.Normal.Mul(relVel.Dot(c.Normal)))
	if tangent.LenSqr() < constants.Epsilon*constants.Epsilon {
		return
	}
	tangent = tangent.Normalize()

	jt := -relVel.Dot(tangent) / invSum
	jt = vmath.Clamp(jt, -j*friction, j*friction)
	if math.Abs(jt) < constants.Epsilon {
		return
	}

	impulse := tangent.Mul(jt)
	bodyA.applyImpulse(impulse.Mul(-1))
	bodyB.applyImpulse(impulse)
}

// correctPositions moves each movable shape along the contact normal by a
// fraction of the penetration depth, split by inverse-mass ratio.
// Under-correcting on purpose keeps resting stacks from jittering
func (w *World) correctPositions(c Contact, invA, invB, invSum float64) {
	correction := c.Depth * w.cfg.CorrectionFactor / invSum
	if invA > 0 {
		c.A.Transform.Position = c.A.Transform.Position.Sub(c.Normal.Mul(correction * invA))
	}
	if invB > 0 {
		c.B.Transform.Position = c.B.Transform.Position.Add(c.Normal.Mul(correction * invB))
	}
}

// markGrounded flags a body as supported when the contact normal aligns with
// gravity strongly enough: for A the normal points toward its support, for B
// away from it
func (w *World) markGrounded(c Contact) {
	gravDir := w.gravityDir
	if gravDir == (mgl64.Vec2{}) {
		return
	}
	align := c.Normal.Dot(gravDir)
	if c.A.Body != nil && align > constants.GroundedNormalThreshold {
		c.A.Body.Grounded = true
	}
	if c.B.Body != nil && align < -constants.GroundedNormalThreshold {
		c.B.Body.Grounded = true
	}
}
