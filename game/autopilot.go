package game

import (
	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/maze"
	"github.com/pthm-cable/chase/systems"
)

// autopilotDanger is how many tiles around a dangerous pursuer the
// autopilot refuses to route through.
const autopilotDanger = 2

// AutopilotIntent returns an intent that steers the player towards the
// nearest pickup while avoiding pursuers that can catch it.
func (g *Game) AutopilotIntent() maze.Dir {
	if g.autopilot == nil {
		g.autopilot = systems.NewAutopilot(g.maze, autopilotDanger)
	}

	threats := make([]systems.Threat, 0, len(g.pursuers))
	for _, e := range g.pursuers {
		pos, _, _, p := g.pursuerMapper.Get(e)
		if p.Mode == components.ModeFrightened || p.Mode == components.ModeEyes {
			continue
		}
		threats = append(threats, systems.Threat{Tile: g.maze.TileAt(pos.X, pos.Y)})
	}

	pos, _, _, _ := g.playerMapper.Get(g.player)
	return g.autopilot.Intent(g.maze.TileAt(pos.X, pos.Y), g.pickups, threats)
}
