package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/maze"
)

func TestComputePressureStats(t *testing.T) {
	tests := []struct {
		name                string
		values              []float64
		mean, std, min, p50 float64
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"single", []float64{4}, 4, 0, 4, 4},
		{"spread", []float64{8, 2, 4, 6}, 5, math.Sqrt(5), 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, min, p50 := ComputePressureStats(tt.values)
			if math.Abs(mean-tt.mean) > 1e-9 {
				t.Errorf("mean = %v, want %v", mean, tt.mean)
			}
			if math.Abs(std-tt.std) > 1e-9 {
				t.Errorf("std = %v, want %v", std, tt.std)
			}
			if min != tt.min {
				t.Errorf("min = %v, want %v", min, tt.min)
			}
			if p50 != tt.p50 {
				t.Errorf("p50 = %v, want %v", p50, tt.p50)
			}
		})
	}
}

func TestComputePressureStatsKeepsInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputePressureStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1, 0.125)
	if c.WindowDurationTicks() != 8 {
		t.Fatalf("window ticks = %d, want 8", c.WindowDurationTicks())
	}

	tile := maze.Tile{C: 1, R: 1}
	c.RecordEvents([]Event{
		NewPickupEvent(1, tile, components.PickupSmall, 10, 10),
		NewPickupEvent(2, tile, components.PickupLarge, 50, 60),
		NewPursuerCapturedEvent(3, tile, components.Flanker, 200, 1, 260),
		NewPlayerCapturedEvent(4, tile, components.Direct, 2, 260),
	})
	c.SamplePressure(3)
	c.SamplePressure(-1)
	c.SamplePressure(5)

	if c.ShouldFlush(7) {
		t.Error("flush requested before window end")
	}
	if !c.ShouldFlush(8) {
		t.Error("flush not requested at window end")
	}

	s := c.Flush(8, RoundState{Level: 1, Lives: 2, Score: 260})
	if s.DotsEaten != 1 || s.PowersEaten != 1 {
		t.Errorf("pickups = %d/%d, want 1/1", s.DotsEaten, s.PowersEaten)
	}
	if s.PursuersCaptured != 1 || s.CaptureScore != 200 {
		t.Errorf("captures = %d (%d pts), want 1 (200)", s.PursuersCaptured, s.CaptureScore)
	}
	if s.LivesLost != 1 {
		t.Errorf("lives lost = %d, want 1", s.LivesLost)
	}
	if s.ScoreGained != 260 {
		t.Errorf("score gained = %d, want 260", s.ScoreGained)
	}
	if s.PressureMean != 4 || s.PressureMin != 3 {
		t.Errorf("pressure mean/min = %v/%v, want 4/3", s.PressureMean, s.PressureMin)
	}
	if math.Abs(s.SimTimeSec-1) > 1e-6 {
		t.Errorf("sim time = %v, want 1", s.SimTimeSec)
	}

	next := c.Flush(16, RoundState{})
	if next.DotsEaten != 0 || next.PressureMean != 0 || next.WindowStartTick != 8 {
		t.Errorf("counters not reset: %+v", next)
	}
}
