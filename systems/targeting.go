package systems

import (
	"math"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/maze"
)

// TargetContext is the read-only view target selection works from.
// DirectTile is captured once before the pursuer pass so every pursuer
// sees the same value regardless of update order.
type TargetContext struct {
	PlayerTile   maze.Tile
	PlayerFacing maze.Dir
	PlayerPos    components.Position
	DirectTile   maze.Tile

	AmbushLead int     // tiles
	FlankLead  int     // tiles
	ShyRadius  float32 // tiles
	TileSize   float32
}

// TargetFunc computes an unclamped chase target for one personality.
type TargetFunc func(ctx *TargetContext, self *components.Pursuer, pos components.Position) maze.Tile

// targetStrategies is indexed by Personality.
var targetStrategies = [components.NumPersonalities]TargetFunc{
	components.Direct:      directTarget,
	components.Ambusher:    ambushTarget,
	components.Flanker:     flankTarget,
	components.Opportunist: opportunistTarget,
}

func directTarget(ctx *TargetContext, _ *components.Pursuer, _ components.Position) maze.Tile {
	return ctx.PlayerTile
}

func ambushTarget(ctx *TargetContext, _ *components.Pursuer, _ components.Position) maze.Tile {
	return ctx.PlayerTile.Add(ctx.PlayerFacing, ctx.AmbushLead)
}

func flankTarget(ctx *TargetContext, _ *components.Pursuer, _ components.Position) maze.Tile {
	ahead := ctx.PlayerTile.Add(ctx.PlayerFacing, ctx.FlankLead)
	return maze.Tile{
		C: ahead.C + (ahead.C - ctx.DirectTile.C),
		R: ahead.R + (ahead.R - ctx.DirectTile.R),
	}
}

func opportunistTarget(ctx *TargetContext, self *components.Pursuer, pos components.Position) maze.Tile {
	dx := float64(pos.X - ctx.PlayerPos.X)
	dy := float64(pos.Y - ctx.PlayerPos.Y)
	if float32(math.Hypot(dx, dy))/ctx.TileSize > ctx.ShyRadius {
		return self.Corner
	}
	return ctx.PlayerTile
}

// Target returns the clamped tile a pursuer steers towards.
// Eyes head home; a scatter phase sends scatter-mode pursuers to their
// corner; otherwise the personality strategy decides.
func Target(m *maze.Maze, ctx *TargetContext, p *components.Pursuer, pos components.Position, scatterPhase bool) maze.Tile {
	var t maze.Tile
	switch {
	case p.Mode == components.ModeEyes:
		t = p.Home
	case p.Mode == components.ModeScatter && scatterPhase:
		t = p.Corner
	default:
		t = targetStrategies[p.Personality](ctx, p, pos)
	}
	return m.Clamp(t)
}

// ScatterCorner returns the fixed corner tile for a personality.
func ScatterCorner(m *maze.Maze, p components.Personality) maze.Tile {
	right, bottom := m.Cols()-2, m.Rows()-2
	switch p {
	case components.Direct:
		return maze.Tile{C: right, R: 1}
	case components.Ambusher:
		return maze.Tile{C: 1, R: 1}
	case components.Flanker:
		return maze.Tile{C: right, R: bottom}
	}
	return maze.Tile{C: 1, R: bottom}
}
