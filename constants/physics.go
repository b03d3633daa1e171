package constants

// Simulation Timing
const (
	// FixedTimeStep is the fixed physics step duration in seconds (~60 Hz)
	FixedTimeStep = 1.0 / 60.0

	// MaxCatchUpSteps caps fixed steps run in a single frame so a pathological
	// frame delta cannot stall the loop
	MaxCatchUpSteps = 5
)

// Spatial Index
const (
	// GridCellSize is the broad-phase cell edge in world units, coarser than
	// the median object size so most shapes span few cells
	GridCellSize = 64.0

	// Multiplicative hash primes for folding a 2D cell coordinate into one key
	CellHashPrimeX = 73856093
	CellHashPrimeY = 19349663
)

// Resolution Tuning
const (
	// PenetrationCorrection is the fraction of penetration depth removed per
	// step; under-correcting avoids positional jitter
	PenetrationCorrection = 0.8

	// GroundedNormalThreshold is the minimum alignment between a contact
	// normal and gravity for the supported body to count as grounded
	GroundedNormalThreshold = 0.7
)

// Numeric Floors
const (
	// Epsilon guards zero-length normal and tangent computations
	Epsilon = 1e-9

	// MinMass is the floor applied by the mass setter to keep impulse math
	// free of division by zero
	MinMass = 1e-6
)

// Layers
const (
	// MaxLayers is the number of collision layers (layer indices 0..31)
	MaxLayers = 32
)

// Event Queue
const (
	// EventQueueSize is the fixed capacity of the contact event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)
