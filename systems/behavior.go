package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/maze"
)

// PursuerParams carries the per-tick tuning the behavior pass needs.
type PursuerParams struct {
	BaseSpeed       float32
	FrightenedSpeed float32
	EyesSpeed       float32
	CenterEps       float32
	ReverseChance   float64
	ScatterPhase    bool // scatter-mode pursuers head for their corner
	FrightenedOver  bool // frightened timer has run out
}

// PursuerEvent records a mode change made by the behavior pass.
type PursuerEvent struct {
	Entity      ecs.Entity
	Personality components.Personality
	From, To    components.Mode
}

// BehaviorSystem chooses directions for pursuers at tile centres and moves them.
type BehaviorSystem struct {
	filter ecs.Filter4[components.Position, components.Motion, components.Body, components.Pursuer]
	maze   *maze.Maze
	rng    *rand.Rand

	changes []PursuerEvent
}

// NewBehaviorSystem creates a new behavior system.
func NewBehaviorSystem(w *ecs.World, m *maze.Maze, rng *rand.Rand) *BehaviorSystem {
	return &BehaviorSystem{
		filter: *ecs.NewFilter4[components.Position, components.Motion, components.Body, components.Pursuer](w),
		maze:   m,
		rng:    rng,
	}
}

// SetMaze swaps the maze the system navigates.
func (s *BehaviorSystem) SetMaze(m *maze.Maze) {
	s.maze = m
}

// DirectTile returns the tile of the Direct pursuer, or fallback if there is none.
func (s *BehaviorSystem) DirectTile(fallback maze.Tile) maze.Tile {
	tile := fallback
	query := s.filter.Query()
	for query.Next() {
		pos, _, _, p := query.Get()
		if p.Personality == components.Direct {
			tile = s.maze.TileAt(pos.X, pos.Y)
		}
	}
	return tile
}

// Update advances every pursuer by one tick. ctx.DirectTile must already
// hold the pre-pass snapshot. The returned slice is reused between calls.
func (s *BehaviorSystem) Update(ctx *TargetContext, params PursuerParams, dt float32) []PursuerEvent {
	s.changes = s.changes[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, mot, body, p := query.Get()
		entity := query.Entity()

		switch p.Mode {
		case components.ModeFrightened:
			mot.Speed = params.FrightenedSpeed
		case components.ModeEyes:
			mot.Speed = params.EyesSpeed
		default:
			mot.Speed = params.BaseSpeed
		}

		tile := s.maze.TileAt(pos.X, pos.Y)
		if s.maze.NearCenter(pos.X, pos.Y, params.CenterEps) && (!p.Decided || p.DecisionTile != tile) {
			p.DecisionTile, p.Decided = tile, true
			if from, changed := s.decide(ctx, params, pos, mot, p); changed {
				s.changes = append(s.changes, PursuerEvent{Entity: entity, Personality: p.Personality, From: from, To: p.Mode})
			}
		}

		res := Move(s.maze, pos, mot, body.Radius, dt, params.CenterEps, p.Mode == components.ModeEyes)
		if res.Blocked {
			SnapToCenter(s.maze, pos)
			mot.Dir = mot.Dir.Reverse()
			p.Decided = false
		}

		if p.Mode == components.ModeFrightened && params.FrightenedOver {
			p.Mode = components.ModeChase
			s.changes = append(s.changes, PursuerEvent{Entity: entity, Personality: p.Personality, From: components.ModeFrightened, To: components.ModeChase})
		}
	}
	return s.changes
}

// decide runs the centre-of-tile decision for one pursuer, once per tile
// visit. It reports the previous mode when the decision changed it.
func (s *BehaviorSystem) decide(ctx *TargetContext, params PursuerParams, pos *components.Position, mot *components.Motion, p *components.Pursuer) (components.Mode, bool) {
	tile := s.maze.TileAt(pos.X, pos.Y)
	prev := mot.Dir

	if p.Mode == components.ModeEyes && tile == p.Home {
		p.Mode = components.ModeScatter
		mot.Dir = maze.Right
		return components.ModeEyes, true
	}

	switch p.Mode {
	case components.ModeFrightened:
		dirs := s.maze.OpenDirs(tile, mot.Dir.Reverse(), false)
		mot.Dir = dirs[s.rng.Intn(len(dirs))]
		if s.rng.Float64() < params.ReverseChance {
			mot.Dir = mot.Dir.Reverse()
		}
	default:
		target := Target(s.maze, ctx, p, *pos, params.ScatterPhase)
		mot.Dir = s.maze.GreedyDir(tile, target, mot.Dir, p.Mode == components.ModeEyes)
	}

	if mot.Dir != prev {
		SnapToCenter(s.maze, pos)
	}
	return p.Mode, false
}
