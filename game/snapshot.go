package game

import (
	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/maze"
)

// ActorState is a read-only copy of an actor for rendering.
type ActorState struct {
	X, Y   float32
	Tile   maze.Tile
	Dir    maze.Dir
	Radius float32
}

// PursuerState adds identity and mode to ActorState.
type PursuerState struct {
	ActorState
	Personality components.Personality
	Mode        components.Mode
}

// Snapshot is a copy of everything a renderer or HUD needs between ticks.
type Snapshot struct {
	Player   ActorState
	Pursuers [components.NumPersonalities]PursuerState
	Round    Round
	Paused   bool
	Dots     []maze.Tile
	Powers   []maze.Tile
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Round:  g.round,
		Paused: g.paused,
		Dots:   g.pickups.Dots(),
		Powers: g.pickups.Powers(),
	}

	pos, mot, body, _ := g.playerMapper.Get(g.player)
	s.Player = g.actorState(pos, mot, body)

	for i, e := range g.pursuers {
		pos, mot, body, p := g.pursuerMapper.Get(e)
		s.Pursuers[i] = PursuerState{
			ActorState:  g.actorState(pos, mot, body),
			Personality: p.Personality,
			Mode:        p.Mode,
		}
	}
	return s
}

func (g *Game) actorState(pos *components.Position, mot *components.Motion, body *components.Body) ActorState {
	return ActorState{
		X:      pos.X,
		Y:      pos.Y,
		Tile:   g.maze.TileAt(pos.X, pos.Y),
		Dir:    mot.Dir,
		Radius: body.Radius,
	}
}
