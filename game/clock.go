package game

import (
	"time"

	"github.com/pthm-cable/chase/maze"
	"github.com/pthm-cable/chase/telemetry"
)

// Clock is a fixed-step accumulator. Elapsed wall time goes in, whole steps
// come out, and the remainder carries over to the next call.
type Clock struct {
	stepMs   float64
	maxSteps int // 0 = unlimited catch-up
	acc      float64
}

// NewClock creates a clock that drains steps of stepMs milliseconds.
func NewClock(stepMs float64, maxSteps int) Clock {
	return Clock{stepMs: stepMs, maxSteps: maxSteps}
}

// Advance adds elapsedMs and returns how many steps are due. When the
// catch-up cap is hit the excess time is dropped.
func (c *Clock) Advance(elapsedMs float64) int {
	if elapsedMs > 0 {
		c.acc += elapsedMs
	}
	n := int(c.acc / c.stepMs)
	c.acc -= float64(n) * c.stepMs
	if c.maxSteps > 0 && n > c.maxSteps {
		n = c.maxSteps
		c.acc = 0
	}
	return n
}

// Discard drops accumulated time.
func (c *Clock) Discard() {
	c.acc = 0
}

// Pending returns the accumulated time not yet drained, in milliseconds.
func (c *Clock) Pending() float64 {
	return c.acc
}

// Update feeds elapsed wall time into the clock and runs every tick that
// is due with the same intent. It returns all events of those ticks; the
// slice is reused by the next call.
func (g *Game) Update(elapsed time.Duration, intent maze.Dir) []telemetry.Event {
	g.frameEvents = g.frameEvents[:0]
	if g.paused || g.round.Over {
		g.clock.Discard()
		return nil
	}

	steps := g.clock.Advance(float64(elapsed) / float64(time.Millisecond))
	for i := 0; i < steps && !g.round.Over; i++ {
		g.frameEvents = append(g.frameEvents, g.Tick(intent)...)
	}
	return g.frameEvents
}
