package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/rigid2d/constants"
	"github.com/lixenwraith/rigid2d/events"
	"github.com/lixenwraith/rigid2d/vmath"
)

// Config holds the runtime-tunable world parameters. Zero or negative values
// fall back to the constants-backed defaults
type Config struct {
	Gravity          mgl64.Vec2
	FixedTimeStep    float64
	CellSize         float64
	CorrectionFactor float64
	MaxCatchUpSteps  int
}

// DefaultConfig returns the tuning used by the sandbox and tests: 60 Hz
// steps, downward gravity, 80% positional correction
func DefaultConfig() Config {
	return Config{
		Gravity:          mgl64.Vec2{0, -9.81},
		FixedTimeStep:    constants.FixedTimeStep,
		CellSize:         constants.GridCellSize,
		CorrectionFactor: constants.PenetrationCorrection,
		MaxCatchUpSteps:  constants.MaxCatchUpSteps,
	}
}

// Handler consumes contact events for one shape during event dispatch
type Handler func(events.ContactEvent)

// pairInfo tracks a live contact pair across steps for stay/exit events
type pairInfo struct {
	a, b    ShapeID
	trigger bool
}

// World owns the shape registry, the spatial index and the layer matrix, and
// runs the fixed-timestep pipeline: integrate, rebuild index, detect, queue
// events, resolve. One Update runs to completion before anything observes
// poses; nothing inside the step blocks or escapes
type World struct {
	cfg        Config
	gravityDir mgl64.Vec2 // Unit gravity, zero vector when gravity is zero

	shapes []*Shape
	byID   map[ShapeID]*Shape

	grid   *spatialGrid
	layers LayerMatrix

	queue    *events.Queue
	handlers map[ShapeID]Handler

	accumulator float64
	stepCount   uint64

	pairsPrev map[pairKey]pairInfo
	pairsCur  map[pairKey]pairInfo

	// Per-step scratch, reused across steps
	contacts  []Contact
	processed map[pairKey]struct{}
	candBuf   []*Shape

	lastContacts int
}

// NewWorld constructs a world from cfg. The world is self-contained: callers
// own its lifecycle and pass it to whichever system steps or queries it
func NewWorld(cfg Config) *World {
	def := DefaultConfig()
	if cfg.FixedTimeStep <= 0 {
		cfg.FixedTimeStep = def.FixedTimeStep
	}
	if cfg.CellSize <= 0 {
		cfg.CellSize = def.CellSize
	}
	if cfg.CorrectionFactor <= 0 {
		cfg.CorrectionFactor = def.CorrectionFactor
	}
	if cfg.MaxCatchUpSteps <= 0 {
		cfg.MaxCatchUpSteps = def.MaxCatchUpSteps
	}

	return &World{
		cfg:        cfg,
		gravityDir: vmath.SafeNormalize(cfg.Gravity, mgl64.Vec2{}, constants.Epsilon),
		byID:       make(map[ShapeID]*Shape),
		grid:       newSpatialGrid(cfg.CellSize),
		layers:     NewLayerMatrix(),
		queue:      events.NewQueue(),
		handlers:   make(map[ShapeID]Handler),
		pairsPrev:  make(map[pairKey]pairInfo),
		pairsCur:   make(map[pairKey]pairInfo),
		processed:  make(map[pairKey]struct{}),
	}
}

// SetGravity replaces the gravity vector, effective on the next step
func (w *World) SetGravity(g mgl64.Vec2) {
	w.cfg.Gravity = g
	w.gravityDir = vmath.SafeNormalize(g, mgl64.Vec2{}, constants.Epsilon)
}

// SetLayerCollision declares whether two layers interact. Symmetric, takes
// effect on the next step
func (w *World) SetLayerCollision(a, b int, collide bool) {
	w.layers.Set(a, b, collide)
}

// AddShape registers a shape with the world. Shapes without a transform are
// rejected silently; the step defends against malformed input rather than
// failing
func (w *World) AddShape(s *Shape) {
	if s == nil || s.Transform == nil {
		return
	}
	if _, exists := w.byID[s.id]; exists {
		return
	}
	w.shapes = append(w.shapes, s)
	w.byID[s.id] = s
}

// RemoveShape deregisters a shape. Live pairs referencing it are dropped
// without exit events, matching the destroyed-collaborator policy
func (w *World) RemoveShape(s *Shape) {
	if s == nil {
		return
	}
	if _, exists := w.byID[s.id]; !exists {
		return
	}
	delete(w.byID, s.id)
	delete(w.handlers, s.id)
	for i, other := range w.shapes {
		if other == s {
			w.shapes = append(w.shapes[:i], w.shapes[i+1:]...)
			break
		}
	}
	for key, info := range w.pairsPrev {
		if info.a == s.id || info.b == s.id {
			delete(w.pairsPrev, key)
		}
	}
}

// Shape returns a registered shape by identity
func (w *World) Shape(id ShapeID) (*Shape, bool) {
	s, ok := w.byID[id]
	return s, ok
}

// OnContact registers a handler invoked with this shape's contact events
// during DispatchEvents. Events are delivered from the shape's own
// perspective: the shape is always ShapeA and the normal points away from it
func (w *World) OnContact(s *Shape, h Handler) {
	if s == nil || h == nil {
		return
	}
	w.handlers[s.id] = h
}

// Update advances the simulation by frameDelta seconds, running as many
// fixed steps as the accumulator affords. The accumulator is capped at
// MaxCatchUpSteps steps so a pathological frame cannot spiral
func (w *World) Update(frameDelta float64) {
	if frameDelta < 0 {
		return
	}
	w.accumulator += frameDelta

	maxAccum := w.cfg.FixedTimeStep * float64(w.cfg.MaxCatchUpSteps)
	if w.accumulator > maxAccum {
		w.accumulator = maxAccum
	}

	for w.accumulator >= w.cfg.FixedTimeStep {
		w.fixedUpdate(w.cfg.FixedTimeStep)
		w.accumulator -= w.cfg.FixedTimeStep
	}
}

// Step runs exactly one fixed step, ignoring the accumulator. Useful for
// deterministic tests and tools
func (w *World) Step() {
	w.fixedUpdate(w.cfg.FixedTimeStep)
}

// StepCount returns the number of fixed steps run so far
func (w *World) StepCount() uint64 {
	return w.stepCount
}

// Queue exposes the contact event queue for direct single-consumer draining.
// Callers using DispatchEvents must not also consume the queue
func (w *World) Queue() *events.Queue {
	return w.queue
}

// DispatchEvents drains the queue, invokes registered per-shape handlers and
// returns the drained events. Each handler sees events from its own shape's
// perspective
func (w *World) DispatchEvents() []events.ContactEvent {
	drained := w.queue.Consume()
	for _, ev := range drained {
		if h, ok := w.handlers[ev.ShapeA]; ok {
			h(ev)
		}
		if h, ok := w.handlers[ev.ShapeB]; ok {
			h(mirrorEvent(ev))
		}
	}
	return drained
}

// mirrorEvent swaps the shape references and negates the normal, the event
// equivalent of Contact.Mirrored
func mirrorEvent(ev events.ContactEvent) events.ContactEvent {
	ev.ShapeA, ev.ShapeB = ev.ShapeB, ev.ShapeA
	ev.Normal = ev.Normal.Mul(-1)
	return ev
}

// fixedUpdate runs one complete fixed step. Phase ordering is strict:
// integration for all bodies finishes before any narrow-phase test, and
// detection for all pairs finishes before resolution begins, so results
// never depend on pair iteration order
func (w *World) fixedUpdate(dt float64) {
	w.stepCount++

	w.integrate(dt)
	w.rebuildIndex()
	w.detect()
	w.emitEvents()
	w.resolve()

	// Rotate pair tracking for the next step
	w.pairsPrev, w.pairsCur = w.pairsCur, w.pairsPrev
	for key := range w.pairsCur {
		delete(w.pairsCur, key)
	}
}

// integrate advances every active body: gravity and accumulated force into
// velocity, drag, then velocity into position. A body shared by several
// shapes integrates once; kinematic bodies skip force integration but keep
// existing for collision purposes
func (w *World) integrate(dt float64) {
	for _, s := range w.shapes {
		if !s.Active || s.Body == nil {
			continue
		}
		b := s.Body
		if b.lastStep == w.stepCount {
			continue
		}
		b.lastStep = w.stepCount
		b.Grounded = false

		if b.kinematic {
			continue
		}

		if b.UseGravity {
			b.force = b.force.Add(w.cfg.Gravity.Mul(b.mass))
		}

		accel := b.force.Mul(1.0 / b.mass)
		b.velocity = b.applyFreeze(b.velocity.Add(accel.Mul(dt)))

		if b.Drag > 0 {
			factor := 1.0 - b.Drag*dt
			if factor < 0 {
				factor = 0
			}
			b.velocity = b.velocity.Mul(factor)
		}

		if !b.FreezeRotation {
			b.angularVelocity += b.torque / b.mass * dt
			s.Transform.Rotation += b.angularVelocity * dt
		}

		b.clearAccumulators()

		s.Transform.Position = s.Transform.Position.Add(b.velocity.Mul(dt))
	}
}

// rebuildIndex refreshes every active shape's bounds and re-inserts them
// into a cleared grid. Full rebuild each step: redundant work, no stale cells
func (w *World) rebuildIndex() {
	w.grid.clear()
	for _, s := range w.shapes {
		if !s.Active {
			continue
		}
		s.refreshBounds()
		w.grid.insert(s)
	}
}

// detect runs broad-phase candidate generation and narrow-phase tests for
// every active shape, de-duplicating unordered pairs so each is tested once
func (w *World) detect() {
	w.contacts = w.contacts[:0]
	for key := range w.processed {
		delete(w.processed, key)
	}

	for _, s := range w.shapes {
		if !s.Active {
			continue
		}
		w.candBuf = w.grid.candidates(s, w.candBuf[:0])
		for _, other := range w.candBuf {
			if !other.Active {
				continue
			}
			if !w.layers.ShouldCollide(s.Layer, other.Layer) {
				continue
			}
			key := makePairKey(s.id, other.id)
			if _, seen := w.processed[key]; seen {
				continue
			}
			w.processed[key] = struct{}{}

			contact, hit := collide(s, other)
			if !hit {
				continue
			}
			w.contacts = append(w.contacts, contact)
			w.pairsCur[key] = pairInfo{a: s.id, b: other.id, trigger: contact.Trigger()}
		}
	}
	w.lastContacts = len(w.contacts)
}

// emitEvents pushes enter/stay events for this step's contacts and exit
// events for pairs that stopped appearing. Enter fires exactly once per
// newly detected pair
func (w *World) emitEvents() {
	for _, c := range w.contacts {
		key := makePairKey(c.A.id, c.B.id)
		_, existed := w.pairsPrev[key]

		var evType events.ContactEventType
		switch {
		case c.Trigger() && existed:
			evType = events.TriggerStay
		case c.Trigger():
			evType = events.TriggerEnter
		case existed:
			evType = events.ContactStay
		default:
			evType = events.ContactEnter
		}

		w.queue.Push(events.ContactEvent{
			Type:        evType,
			ShapeA:      c.A.id,
			ShapeB:      c.B.id,
			Normal:      c.Normal,
			Point:       c.Point,
			Depth:       c.Depth,
			ImpactSpeed: w.impactSpeed(c),
			Step:        w.stepCount,
		})
	}

	for key, info := range w.pairsPrev {
		if _, alive := w.pairsCur[key]; alive {
			continue
		}
		// Drop exits silently when either shape was destroyed
		if _, ok := w.byID[info.a]; !ok {
			continue
		}
		if _, ok := w.byID[info.b]; !ok {
			continue
		}
		evType := events.ContactExit
		if info.trigger {
			evType = events.TriggerExit
		}
		w.queue.Push(events.ContactEvent{
			Type:   evType,
			ShapeA: info.a,
			ShapeB: info.b,
			Step:   w.stepCount,
		})
	}
}

// impactSpeed returns the closing speed along the contact normal at
// detection time, for listeners that scale reactions by impact
func (w *World) impactSpeed(c Contact) float64 {
	var velA, velB mgl64.Vec2
	if c.A.Body != nil {
		velA = c.A.Body.Velocity()
	}
	if c.B.Body != nil {
		velB = c.B.Body.Velocity()
	}
	closing := velB.Sub(velA).Dot(c.Normal)
	if closing < 0 {
		return -closing
	}
	return 0
}

// resolve applies impulse and positional correction to every non-trigger
// contact found this step
func (w *World) resolve() {
	for _, c := range w.contacts {
		if c.Trigger() {
			continue
		}
		w.resolveContact(c)
	}
}

// Stats reports world occupancy for diagnostics overlays
type Stats struct {
	Shapes    int
	Active    int
	Contacts  int // Contacts found in the most recent step
	GridCells int
	MaxBucket int
	Steps     uint64
}

// Stats returns a snapshot of world occupancy
func (w *World) Stats() Stats {
	active := 0
	for _, s := range w.shapes {
		if s.Active {
			active++
		}
	}
	cells, maxBucket := w.grid.occupancy()
	return Stats{
		Shapes:    len(w.shapes),
		Active:    active,
		Contacts:  w.lastContacts,
		GridCells: cells,
		MaxBucket: maxBucket,
		Steps:     w.stepCount,
	}
}
