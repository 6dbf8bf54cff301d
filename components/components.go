// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/chase/maze"

// Personality selects a pursuer's chase-target strategy.
type Personality uint8

const (
	Direct      Personality = iota // Aims at the player's tile
	Ambusher                       // Aims ahead of the player
	Flanker                        // Pivots on the player through Direct's tile
	Opportunist                    // Chases only when close
	NumPersonalities
)

func (p Personality) String() string {
	switch p {
	case Direct:
		return "direct"
	case Ambusher:
		return "ambusher"
	case Flanker:
		return "flanker"
	case Opportunist:
		return "opportunist"
	}
	return "unknown"
}

// Mode is a pursuer's behavior state. Exactly one applies at a time.
type Mode uint8

const (
	ModeScatter    Mode = iota // Patrol; default after (re)spawn
	ModeChase                  // Personality targeting
	ModeFrightened             // Wandering and capturable
	ModeEyes                   // Captured, returning home, invulnerable
)

func (m Mode) String() string {
	switch m {
	case ModeScatter:
		return "scatter"
	case ModeChase:
		return "chase"
	case ModeFrightened:
		return "frightened"
	case ModeEyes:
		return "eyes"
	}
	return "unknown"
}

// PickupKind identifies what the player consumed on a tile.
type PickupKind uint8

const (
	PickupNone PickupKind = iota
	PickupSmall
	PickupLarge
)

func (k PickupKind) String() string {
	switch k {
	case PickupSmall:
		return "small"
	case PickupLarge:
		return "large"
	}
	return "none"
}

// Position represents an actor's position in maze pixels.
type Position struct {
	X, Y float32
}

// Motion holds an actor's direction state and speed.
// Want is the player's queued intent; pursuers leave it zero.
type Motion struct {
	Dir   maze.Dir
	Want  maze.Dir
	Speed float32 // px/s
}

// Body is the collision circle.
type Body struct {
	Radius float32
}

// Player marks the player-controlled actor.
type Player struct {
	Spawn maze.Tile
}

// Pursuer holds pursuer identity and behavior state.
type Pursuer struct {
	Personality Personality
	Mode        Mode
	Home        maze.Tile
	Corner      maze.Tile // Fixed scatter target

	// DecisionTile is where the last direction decision was made. A
	// pursuer decides once per tile visit.
	DecisionTile maze.Tile
	Decided      bool
}
