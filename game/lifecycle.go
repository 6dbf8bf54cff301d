package game

import (
	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/maze"
	"github.com/pthm-cable/chase/systems"
	"github.com/pthm-cable/chase/telemetry"
)

// Initialize starts a fresh round at the given level, lives and score.
// Pickups are repopulated and every actor is put back on its spawn tile.
// The high score is kept.
func (g *Game) Initialize(level, lives, score int) {
	if level < 1 {
		level = 1
	}
	g.round = Round{
		Level:      level,
		StartLevel: level,
		Lives:      lives,
		HighScore:  g.round.HighScore,
	}
	g.events = g.events[:0]
	g.addScore(score)
	g.pickups.Refill(g.maze)
	g.respawn()
	g.clock.Discard()
}

// Reset re-initializes level 1 with the configured lives and a zero score.
func (g *Game) Reset() {
	g.Initialize(1, g.cfg.Round.Lives, 0)
	g.logger.Info("game reset", "high_score", g.round.HighScore)
}

// SetMaze swaps in a new maze and resets the game on it.
func (g *Game) SetMaze(m *maze.Maze) {
	g.maze = m
	g.behavior.SetMaze(m)
	if g.autopilot != nil {
		g.autopilot.SetMaze(m)
	}

	homes := m.Homes()
	_, _, _, player := g.playerMapper.Get(g.player)
	player.Spawn = m.PlayerSpawn()
	for i, e := range g.pursuers {
		_, _, _, p := g.pursuerMapper.Get(e)
		p.Home = homes[i]
		p.Corner = systems.ScatterCorner(m, p.Personality)
	}
	g.Reset()
}

// respawn puts the player and all pursuers back on their spawn tiles and
// clears the frightened window.
func (g *Game) respawn() {
	g.round.FrightenedMs = 0
	g.round.Chain = 0
	g.round.ScatterMs = g.cfg.Pursuer.ScatterMs

	pos, mot, _, player := g.playerMapper.Get(g.player)
	pos.X, pos.Y = g.maze.Center(player.Spawn)
	mot.Dir, mot.Want = maze.None, maze.None
	mot.Speed = g.playerSpeed()

	for _, e := range g.pursuers {
		pos, mot, _, p := g.pursuerMapper.Get(e)
		pos.X, pos.Y = g.maze.Center(p.Home)
		mot.Dir, mot.Want = maze.Right, maze.None
		mot.Speed = g.pursuerSpeed()
		p.Mode = components.ModeScatter
		p.Decided = false
	}
}

// advanceLevel moves to the next level after the maze was cleared.
func (g *Game) advanceLevel() {
	g.round.Level++
	g.round.LevelsCleared++
	g.pickups.Refill(g.maze)
	g.respawn()

	g.emit(telemetry.NewLevelClearedEvent(g.round.Tick, g.round.Level, g.round.Score))
	g.logger.Info("level cleared",
		"tick", g.round.Tick,
		"level", g.round.Level,
		"score", g.round.Score,
	)
}

// loseLife handles the player being caught by a pursuer.
func (g *Game) loseLife(by components.Personality, tile maze.Tile) {
	g.round.Lives--
	g.emit(telemetry.NewPlayerCapturedEvent(g.round.Tick, tile, by, g.round.Lives, g.round.Score))

	if g.round.Lives <= 0 {
		g.round.Lives = 0
		g.round.Over = true
		g.emit(telemetry.NewGameOverEvent(g.round.Tick, g.round.Level, g.round.Score))
		g.logger.Info("game over",
			"tick", g.round.Tick,
			"level", g.round.Level,
			"score", g.round.Score,
			"high_score", g.round.HighScore,
		)
		return
	}

	g.respawn()
	g.logger.Info("life lost",
		"tick", g.round.Tick,
		"by", by.String(),
		"lives", g.round.Lives,
		"score", g.round.Score,
	)
}
