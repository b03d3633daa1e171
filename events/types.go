// Package events carries collision events from the physics step to
// interested listeners. Contacts found during a step are appended to a
// fixed-capacity queue and drained after the step, so reactions never
// mutate physics state mid-step.
package events

import "github.com/go-gl/mathgl/mgl64"

// ContactEventType classifies a contact event
type ContactEventType int

const (
	// ContactEnter fires once when a solid pair is first detected
	ContactEnter ContactEventType = iota

	// ContactStay fires every step a solid pair persists after entering
	ContactStay

	// ContactExit fires once when a previously tracked solid pair stops
	// appearing
	ContactExit

	// TriggerEnter fires once when a pair involving a trigger shape is
	// first detected; trigger pairs are never resolved
	TriggerEnter

	// TriggerStay fires every step a trigger pair persists
	TriggerStay

	// TriggerExit fires once when a trigger pair stops appearing
	TriggerExit
)

// String returns the event type name for diagnostics
func (t ContactEventType) String() string {
	switch t {
	case ContactEnter:
		return "ContactEnter"
	case ContactStay:
		return "ContactStay"
	case ContactExit:
		return "ContactExit"
	case TriggerEnter:
		return "TriggerEnter"
	case TriggerStay:
		return "TriggerStay"
	case TriggerExit:
		return "TriggerExit"
	}
	return "Unknown"
}

// ContactEvent is a single contact observation. ShapeA and ShapeB are the
// stable shape identities; Normal points from A to B. Exit events carry only
// the shape identities and step number.
type ContactEvent struct {
	Type        ContactEventType
	ShapeA      uint64
	ShapeB      uint64
	Normal      mgl64.Vec2
	Point       mgl64.Vec2
	Depth       float64
	ImpactSpeed float64 // Relative speed along the normal at detection
	Step        uint64  // Fixed step counter, for deduplication
}
