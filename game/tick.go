package game

import (
	"math"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/maze"
	"github.com/pthm-cable/chase/systems"
	"github.com/pthm-cable/chase/telemetry"
)

// Tick advances the simulation by one fixed step with the given player
// intent (maze.None keeps the previous one). It returns the events of the
// step; the slice is reused by the next call. Ticks are no-ops while
// paused or after game over.
func (g *Game) Tick(intent maze.Dir) []telemetry.Event {
	g.events = g.events[:0]
	if g.round.Over || g.paused {
		return nil
	}

	g.perfStartTick()
	g.round.Tick++
	g.advanceTimers()

	g.perfPhase(telemetry.PhasePlayer)
	g.movePlayer(intent)

	g.perfPhase(telemetry.PhasePickups)
	g.eatPickups()

	g.perfPhase(telemetry.PhaseCollision)
	if g.resolveCollisions() {
		g.perfEndTick()
		g.recordTelemetry()
		return g.events
	}

	g.perfPhase(telemetry.PhasePursuers)
	g.movePursuers()

	g.perfPhase(telemetry.PhaseLifecycle)
	if g.pickups.Empty() {
		g.advanceLevel()
	}

	g.perfEndTick()
	g.recordTelemetry()
	return g.events
}

// advanceTimers counts down the frightened timer and the optional scatter phase.
func (g *Game) advanceTimers() {
	step := g.cfg.Sim.StepMs
	if g.round.FrightenedMs > 0 {
		g.round.FrightenedMs = math.Max(0, g.round.FrightenedMs-step)
	}
	if g.round.ScatterMs > 0 {
		g.round.ScatterMs = math.Max(0, g.round.ScatterMs-step)
		if g.round.ScatterMs == 0 {
			g.endScatterPhase()
		}
	}
}

func (g *Game) endScatterPhase() {
	for _, e := range g.pursuers {
		_, _, _, p := g.pursuerMapper.Get(e)
		if p.Mode == components.ModeScatter {
			p.Mode = components.ModeChase
		}
	}
}

func (g *Game) movePlayer(intent maze.Dir) {
	pos, mot, body, _ := g.playerMapper.Get(g.player)
	if !intent.IsZero() {
		mot.Want = intent
	}
	mot.Speed = g.playerSpeed()
	systems.Move(g.maze, pos, mot, body.Radius, g.cfg.Derived.StepSec32, g.cfg.Derived.CenterEps32, false)
}

// eatPickups consumes whatever lies on the player's tile.
func (g *Game) eatPickups() {
	pos, _, _, _ := g.playerMapper.Get(g.player)
	tile := g.maze.TileAt(pos.X, pos.Y)

	switch kind := g.pickups.Consume(tile); kind {
	case components.PickupSmall:
		g.addScore(g.cfg.Scoring.Dot)
		g.emit(telemetry.NewPickupEvent(g.round.Tick, tile, kind, g.cfg.Scoring.Dot, g.round.Score))
	case components.PickupLarge:
		g.addScore(g.cfg.Scoring.Power)
		g.frighten()
		g.emit(telemetry.NewPickupEvent(g.round.Tick, tile, kind, g.cfg.Scoring.Power, g.round.Score))
	}
}

// frighten starts a full frightened window and resets the chain.
func (g *Game) frighten() {
	g.round.FrightenedMs = g.cfg.Scoring.FrightenedMs
	g.round.Chain = 0
	for _, e := range g.pursuers {
		_, _, _, p := g.pursuerMapper.Get(e)
		if p.Mode != components.ModeEyes {
			p.Mode = components.ModeFrightened
		}
	}
}

// resolveCollisions handles every pursuer touching the player. All
// frightened captures are awarded first in enumeration order, then at most
// one life is lost. Reports whether a life was lost.
func (g *Game) resolveCollisions() bool {
	pos, _, body, _ := g.playerMapper.Get(g.player)
	playerTile := g.maze.TileAt(pos.X, pos.Y)
	contacts := g.collision.Contacts(*pos, body.Radius, float32(g.cfg.Collision.OverlapTolerance))

	var capturer *components.Pursuer
	for _, c := range contacts {
		switch c.Pursuer.Mode {
		case components.ModeFrightened:
			award := g.cfg.Scoring.ChainBase << g.round.Chain
			g.round.Chain = min(g.cfg.Scoring.ChainCap, g.round.Chain+1)
			c.Pursuer.Mode = components.ModeEyes
			c.Motion.Speed = g.eyesSpeed()
			g.addScore(award)
			g.emit(telemetry.NewPursuerCapturedEvent(g.round.Tick, playerTile, c.Pursuer.Personality, award, g.round.Chain, g.round.Score))
		case components.ModeEyes:
			// pass-through
		default:
			if capturer == nil {
				capturer = c.Pursuer
			}
		}
	}

	if capturer == nil {
		return false
	}
	g.loseLife(capturer.Personality, playerTile)
	return true
}

// movePursuers runs the behavior pass with a consistent snapshot of the
// player and of the Direct pursuer's tile.
func (g *Game) movePursuers() {
	pos, mot, _, _ := g.playerMapper.Get(g.player)
	playerTile := g.maze.TileAt(pos.X, pos.Y)

	ctx := systems.TargetContext{
		PlayerTile:   playerTile,
		PlayerFacing: mot.Dir,
		PlayerPos:    *pos,
		DirectTile:   g.behavior.DirectTile(playerTile),
		AmbushLead:   g.cfg.Pursuer.AmbushLead,
		FlankLead:    g.cfg.Pursuer.FlankLead,
		ShyRadius:    float32(g.cfg.Pursuer.ShyRadius),
		TileSize:     g.maze.TileSize(),
	}
	params := systems.PursuerParams{
		BaseSpeed:       g.pursuerSpeed(),
		FrightenedSpeed: float32(g.cfg.Pursuer.FrightenedSpeed),
		EyesSpeed:       g.eyesSpeed(),
		CenterEps:       g.cfg.Derived.CenterEps32,
		ReverseChance:   g.cfg.Pursuer.ReverseChance,
		ScatterPhase:    g.round.ScatterMs > 0,
		FrightenedOver:  g.round.FrightenedMs <= 0,
	}

	for _, ch := range g.behavior.Update(&ctx, params, g.cfg.Derived.StepSec32) {
		g.logger.Debug("pursuer mode changed",
			"tick", g.round.Tick,
			"pursuer", ch.Personality.String(),
			"from", ch.From.String(),
			"to", ch.To.String(),
		)
	}
}

func (g *Game) addScore(n int) {
	g.round.Score += n
	if g.round.Score > g.round.HighScore {
		g.round.HighScore = g.round.Score
	}
}
