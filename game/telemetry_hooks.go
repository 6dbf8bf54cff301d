package game

import (
	"math"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/telemetry"
)

func (g *Game) perfStartTick() {
	if g.perf != nil {
		g.perf.StartTick()
	}
}

func (g *Game) perfPhase(p telemetry.Phase) {
	if g.perf != nil {
		g.perf.StartPhase(p)
	}
}

func (g *Game) perfEndTick() {
	if g.perf != nil {
		g.perf.EndTick()
	}
}

// recordTelemetry feeds the tick's events to the collector and output, and
// flushes the stats window when it is due.
func (g *Game) recordTelemetry() {
	if g.collector == nil && g.output == nil {
		return
	}

	if err := g.output.WriteEvents(g.events); err != nil {
		g.logger.Error("failed to write events", "error", err)
	}

	if g.collector == nil {
		return
	}
	g.collector.RecordEvents(g.events)
	g.collector.SamplePressure(g.NearestThreat())

	if !g.collector.ShouldFlush(g.round.Tick) {
		return
	}

	stats := g.collector.Flush(g.round.Tick, telemetry.RoundState{
		Level:     g.round.Level,
		Lives:     g.round.Lives,
		Score:     g.round.Score,
		HighScore: g.round.HighScore,
		Dots:      g.pickups.DotCount(),
		Powers:    g.pickups.PowerCount(),
	})

	var perfStats telemetry.PerfStats
	if g.perf != nil {
		perfStats = g.perf.Stats()
	}

	if g.logStats {
		stats.LogStats(g.logger)
		if g.perf != nil {
			perfStats.LogStats(g.logger)
		}
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		g.logger.Error("failed to write telemetry", "error", err)
	}
	if g.perf != nil {
		if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			g.logger.Error("failed to write perf", "error", err)
		}
	}
}

// NearestThreat returns the distance in tiles from the player to the
// closest pursuer that can catch it, or -1 if none can.
func (g *Game) NearestThreat() float64 {
	pos, _, _, _ := g.playerMapper.Get(g.player)
	best := -1.0
	for _, e := range g.pursuers {
		ppos, _, _, p := g.pursuerMapper.Get(e)
		if p.Mode == components.ModeFrightened || p.Mode == components.ModeEyes {
			continue
		}
		d := math.Hypot(float64(ppos.X-pos.X), float64(ppos.Y-pos.Y)) / float64(g.maze.TileSize())
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}
