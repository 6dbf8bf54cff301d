package game

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/config"
	"github.com/pthm-cable/chase/maze"
	"github.com/pthm-cable/chase/telemetry"
)

func newDefaultGame(cfg *config.Config, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = quietLogger
	}
	return New(cfg, maze.Default(float32(cfg.Maze.TileSize)), opts)
}

func TestDeterministicWithSeed(t *testing.T) {
	a := newDefaultGame(config.Default(), Options{Seed: 42})
	b := newDefaultGame(config.Default(), Options{Seed: 42})

	for i := 0; i < 3000; i++ {
		a.Tick(a.AutopilotIntent())
		b.Tick(b.AutopilotIntent())
		if i%100 == 0 && !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
			t.Fatalf("tick %d: snapshots diverged", i)
		}
	}
	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Fatal("final snapshots diverged")
	}
}

// TestActorsNeverEnterWalls plays the default maze on autopilot and checks
// every actor's tile after every tick.
func TestActorsNeverEnterWalls(t *testing.T) {
	g := newDefaultGame(config.Default(), Options{Seed: 3})
	m := g.Maze()

	for tick := 0; tick < 20000; tick++ {
		if g.GameOver() {
			g.Reset()
		}
		g.Tick(g.AutopilotIntent())

		s := g.Snapshot()
		if m.Blocked(s.Player.Tile.C, s.Player.Tile.R, false) {
			t.Fatalf("tick %d: player inside blocked tile %v", tick, s.Player.Tile)
		}
		for _, p := range s.Pursuers {
			if m.Blocked(p.Tile.C, p.Tile.R, p.Mode == components.ModeEyes) {
				t.Fatalf("tick %d: %v pursuer (%v) inside blocked tile %v", tick, p.Personality, p.Mode, p.Tile)
			}
		}
	}
}

// TestPickupsOnlyShrink checks that remaining plus eaten pickups always
// equal the template within a level.
func TestPickupsOnlyShrink(t *testing.T) {
	g := newDefaultGame(config.Default(), Options{Seed: 9})
	total := len(g.Maze().Dots()) + len(g.Maze().Powers())
	eaten := 0
	level := g.Level()

	for tick := 0; tick < 5000 && !g.GameOver(); tick++ {
		for _, ev := range g.Tick(g.AutopilotIntent()) {
			switch ev.Type {
			case telemetry.EventPickupEaten:
				eaten++
			case telemetry.EventLevelCleared:
				eaten = 0
			}
		}
		if g.Level() != level {
			level = g.Level()
			continue
		}
		if left := len(g.Dots()) + len(g.Powers()); left+eaten != total {
			t.Fatalf("tick %d: %d left + %d eaten != %d", tick, left, eaten, total)
		}
	}
}

func TestClockAdvance(t *testing.T) {
	c := NewClock(10, 0)

	steps := []struct {
		elapsed float64
		want    int
		pending float64
	}{
		{25, 2, 5},
		{4, 0, 9},
		{1, 1, 0},
		{-3, 0, 0},
		{30, 3, 0},
	}
	for i, s := range steps {
		if got := c.Advance(s.elapsed); got != s.want {
			t.Errorf("step %d: Advance(%v) = %d, want %d", i, s.elapsed, got, s.want)
		}
		if c.Pending() != s.pending {
			t.Errorf("step %d: pending = %v, want %v", i, c.Pending(), s.pending)
		}
	}
}

func TestClockCatchUpCap(t *testing.T) {
	c := NewClock(10, 3)
	if got := c.Advance(100); got != 3 {
		t.Errorf("Advance = %d, want capped 3", got)
	}
	if c.Pending() != 0 {
		t.Errorf("pending = %v, want excess dropped", c.Pending())
	}

	c.Advance(7)
	c.Discard()
	if c.Pending() != 0 {
		t.Errorf("pending after discard = %v", c.Pending())
	}
}

func TestUpdateAndPause(t *testing.T) {
	cfg := config.Default()
	cfg.Sim.StepMs = 10
	if err := cfg.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	g := newTestGameWithConfig(t, corridorTemplate, cfg, Options{Seed: 1})

	g.Update(25*time.Millisecond, maze.Right)
	if g.TickCount() != 2 {
		t.Fatalf("ticks = %d, want 2", g.TickCount())
	}

	g.SetPaused(true)
	if evs := g.Update(time.Second, maze.Right); evs != nil {
		t.Errorf("paused update returned %v", evs)
	}
	if g.TickCount() != 2 {
		t.Errorf("ticks while paused = %d, want 2", g.TickCount())
	}

	g.SetPaused(false)
	g.Update(5*time.Millisecond, maze.Right)
	if g.TickCount() != 2 {
		t.Errorf("leftover time was played back: ticks = %d", g.TickCount())
	}
	g.Update(5*time.Millisecond, maze.Right)
	if g.TickCount() != 3 {
		t.Errorf("ticks = %d, want 3", g.TickCount())
	}
}

func TestUpdateCollectsEvents(t *testing.T) {
	g := newTestGame(t, corridorTemplate, Options{Seed: 1})
	var events []telemetry.Event
	for i := 0; i < 200 && g.Score() < 60; i++ {
		events = append(events, g.Update(50*time.Millisecond, maze.Right)...)
	}
	if len(events) != 2 {
		t.Fatalf("events = %+v, want two pickups", events)
	}
	if events[1].ScoreDelta != 50 || events[1].Score != 60 {
		t.Errorf("power event = %+v", events[1])
	}
}

func TestTelemetryOutput(t *testing.T) {
	cfg := config.Default()
	dir := filepath.Join(t.TempDir(), "out")
	om, err := telemetry.NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	g := newDefaultGame(cfg, Options{
		Seed:      5,
		Collector: telemetry.NewCollector(0.5, cfg.Derived.StepSec32),
		Output:    om,
		Perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
	})
	for i := 0; i < 600 && !g.GameOver(); i++ {
		g.Tick(g.AutopilotIntent())
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, name := range []string{"telemetry.csv", "events.csv", "perf.csv"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if lines := strings.Count(string(data), "\n"); lines < 2 {
			t.Errorf("%s has %d lines, want header and rows", name, lines)
		}
	}
}

func TestNearestThreat(t *testing.T) {
	g := newTestGame(t, corridorTemplate, Options{Seed: 1})

	// The nearest home is one column right and two rows down: sqrt(5) tiles
	if d := g.NearestThreat(); d < 2.23 || d > 2.24 {
		t.Errorf("nearest threat = %v tiles, want about 2.236", d)
	}

	for i := range g.pursuers {
		_, _, _, p := g.pursuerMapper.Get(g.pursuers[i])
		p.Mode = components.ModeFrightened
	}
	if d := g.NearestThreat(); d != -1 {
		t.Errorf("nearest threat with all frightened = %v, want -1", d)
	}
}
