package telemetry

import "github.com/pthm-cable/chase/components"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	dotsEaten        int
	powersEaten      int
	pursuersCaptured int
	captureScore     int
	livesLost        int
	levelsCleared    int
	scoreGained      int

	// Distance in tiles from the player to the nearest dangerous pursuer,
	// one sample per tick
	pressure []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		pressure:            make([]float64, 0, ticksPerWindow),
	}
}

// Record tallies a game event.
func (c *Collector) Record(ev Event) {
	c.scoreGained += ev.ScoreDelta
	switch ev.Type {
	case EventPickupEaten:
		if ev.Pickup == components.PickupLarge {
			c.powersEaten++
		} else {
			c.dotsEaten++
		}
	case EventPursuerCaptured:
		c.pursuersCaptured++
		c.captureScore += ev.ScoreDelta
	case EventPlayerCaptured:
		c.livesLost++
	case EventLevelCleared:
		c.levelsCleared++
	}
}

// RecordEvents tallies every event of a tick.
func (c *Collector) RecordEvents(events []Event) {
	for _, ev := range events {
		c.Record(ev)
	}
}

// SamplePressure records the nearest dangerous pursuer distance in tiles.
// Negative values mean no pursuer is dangerous and are skipped.
func (c *Collector) SamplePressure(tiles float64) {
	if tiles < 0 {
		return
	}
	c.pressure = append(c.pressure, tiles)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// RoundState is the round snapshot sampled at window end.
type RoundState struct {
	Level     int
	Lives     int
	Score     int
	HighScore int
	Dots      int
	Powers    int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, round RoundState) WindowStats {
	pMean, pStd, pMin, pP50 := ComputePressureStats(c.pressure)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Level:     round.Level,
		Lives:     round.Lives,
		Score:     round.Score,
		HighScore: round.HighScore,
		DotsLeft:  round.Dots,
		PowerLeft: round.Powers,

		DotsEaten:        c.dotsEaten,
		PowersEaten:      c.powersEaten,
		PursuersCaptured: c.pursuersCaptured,
		CaptureScore:     c.captureScore,
		LivesLost:        c.livesLost,
		LevelsCleared:    c.levelsCleared,
		ScoreGained:      c.scoreGained,

		PressureMean: pMean,
		PressureStd:  pStd,
		PressureMin:  pMin,
		PressureP50:  pP50,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.dotsEaten = 0
	c.powersEaten = 0
	c.pursuersCaptured = 0
	c.captureScore = 0
	c.livesLost = 0
	c.levelsCleared = 0
	c.scoreGained = 0
	c.pressure = c.pressure[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
