package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rigid2d/constants"
)

// Body holds per-object dynamics state. It has no update logic of its own;
// integration and resolution live in the World. All setters are guarded so
// the invariants hold no matter what gameplay code does:
//   - mass is floored at constants.MinMass
//   - a kinematic body's velocity, force and torque stay zero
//   - frozen axes keep their velocity component at zero
type Body struct {
	mass        float64
	Drag        float64 // Linear damping factor, >= 0
	Restitution float64 // Bounciness in [0, 1]
	Friction    float64 // Tangential impulse scale, >= 0

	velocity        mgl64.Vec2
	angularVelocity float64
	force           mgl64.Vec2 // Accumulated, cleared every integration
	torque          float64    // Accumulated, cleared every integration

	FreezeX        bool
	FreezeY        bool
	FreezeRotation bool
	UseGravity     bool

	kinematic bool

	// Grounded is informational, set by the resolution step when a contact
	// supports this body against gravity. Cleared at the top of every step
	Grounded bool

	// Integration stamp so a body shared by several shapes integrates once
	// per fixed step
	lastStep uint64
}

// NewBody returns a dynamic body with the given mass (floored), gravity
// enabled and neutral material values
func NewBody(mass float64) *Body {
	b := &Body{
		Restitution: 0,
		Friction:    0,
		UseGravity:  true,
	}
	b.SetMass(mass)
	return b
}

// Mass returns the current mass
func (b *Body) Mass() float64 {
	return b.mass
}

// SetMass floors mass at constants.MinMass to avoid division by zero in
// impulse math
func (b *Body) SetMass(mass float64) {
	if mass < constants.MinMass {
		mass = constants.MinMass
	}
	b.mass = mass
}

// InverseMass returns 1/mass, or 0 for a kinematic body (infinite mass)
func (b *Body) InverseMass() float64 {
	if b.kinematic {
		return 0
	}
	return 1.0 / b.mass
}

// Velocity returns the current linear velocity
func (b *Body) Velocity() mgl64.Vec2 {
	return b.velocity
}

// SetVelocity replaces the linear velocity. No-op on a kinematic body;
// frozen axes are zeroed
func (b *Body) SetVelocity(v mgl64.Vec2) {
	if b.kinematic {
		return
	}
	b.velocity = b.applyFreeze(v)
}

// AddVelocity adds a velocity delta under the same guards as SetVelocity
func (b *Body) AddVelocity(dv mgl64.Vec2) {
	b.SetVelocity(b.velocity.Add(dv))
}

// AngularVelocity returns the current angular velocity in rad/s
func (b *Body) AngularVelocity() float64 {
	return b.angularVelocity
}

// SetAngularVelocity replaces the angular velocity. No-op on a kinematic
// body or when rotation is frozen
func (b *Body) SetAngularVelocity(w float64) {
	if b.kinematic || b.FreezeRotation {
		return
	}
	b.angularVelocity = w
}

// AddForce accumulates a force for the next integration step. No-op on a
// kinematic body; frozen axes are zeroed
func (b *Body) AddForce(f mgl64.Vec2) {
	if b.kinematic {
		return
	}
	b.force = b.force.Add(b.applyFreeze(f))
}

// AddTorque accumulates torque for the next integration step. No-op on a
// kinematic body or when rotation is frozen
func (b *Body) AddTorque(t float64) {
	if b.kinematic || b.FreezeRotation {
		return
	}
	b.torque += t
}

// Kinematic reports whether the body is excluded from force integration
func (b *Body) Kinematic() bool {
	return b.kinematic
}

// SetKinematic toggles the kinematic flag. Enabling it zeroes velocity,
// angular velocity and all accumulated force and torque
func (b *Body) SetKinematic(kinematic bool) {
	b.kinematic = kinematic
	if kinematic {
		b.velocity = mgl64.Vec2{}
		b.angularVelocity = 0
		b.force = mgl64.Vec2{}
		b.torque = 0
	}
}

// applyFreeze zeroes the components of v blocked by freeze flags
func (b *Body) applyFreeze(v mgl64.Vec2) mgl64.Vec2 {
	if b.FreezeX {
		v[0] = 0
	}
	if b.FreezeY {
		v[1] = 0
	}
	return v
}

// applyImpulse adds an instantaneous velocity change of j/mass. Used by the
// resolution step; kinematic bodies draw no motion from impulses
func (b *Body) applyImpulse(j mgl64.Vec2) {
	if b.kinematic {
		return
	}
	b.velocity = b.velocity.Add(b.applyFreeze(j.Mul(1.0 / b.mass)))
}

// clearAccumulators drops accumulated force and torque after integration
func (b *Body) clearAccumulators() {
	b.force = mgl64.Vec2{}
	b.torque = 0
}
