package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/chase/components"
)

// Contact is a pursuer overlapping the player.
type Contact struct {
	Entity  ecs.Entity
	Pursuer *components.Pursuer
	Motion  *components.Motion
}

// Overlaps reports whether two bodies touch, allowing tolerance pixels of
// interpenetration before it counts.
func Overlaps(a components.Position, ra float32, b components.Position, rb float32, tolerance float32) bool {
	d := math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
	return d < float64(ra+rb-tolerance)
}

// CollisionSystem finds pursuers touching the player.
type CollisionSystem struct {
	filter   ecs.Filter4[components.Position, components.Motion, components.Body, components.Pursuer]
	contacts []Contact
}

// NewCollisionSystem creates a new collision system.
func NewCollisionSystem(w *ecs.World) *CollisionSystem {
	return &CollisionSystem{
		filter: *ecs.NewFilter4[components.Position, components.Motion, components.Body, components.Pursuer](w),
	}
}

// Contacts returns every pursuer overlapping the player in enumeration
// order. The returned slice is reused between calls and its pointers are
// only valid until the world is next modified structurally.
func (s *CollisionSystem) Contacts(player components.Position, radius, tolerance float32) []Contact {
	s.contacts = s.contacts[:0]
	query := s.filter.Query()
	for query.Next() {
		pos, mot, body, p := query.Get()
		if Overlaps(player, radius, *pos, body.Radius, tolerance) {
			s.contacts = append(s.contacts, Contact{Entity: query.Entity(), Pursuer: p, Motion: mot})
		}
	}
	return s.contacts
}
