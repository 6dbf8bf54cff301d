package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Maze.TileSize != 24 {
		t.Errorf("tile size = %d, want 24", cfg.Maze.TileSize)
	}
	if cfg.Round.Lives != 3 {
		t.Errorf("lives = %d, want 3", cfg.Round.Lives)
	}
	if cfg.Scoring.Dot != 10 || cfg.Scoring.Power != 50 {
		t.Errorf("rewards = %d/%d, want 10/50", cfg.Scoring.Dot, cfg.Scoring.Power)
	}
	if cfg.Scoring.FrightenedMs != 7000 {
		t.Errorf("frightened_ms = %v, want 7000", cfg.Scoring.FrightenedMs)
	}
	if got := cfg.Derived.TicksPerSec; got < 119.99 || got > 120.01 {
		t.Errorf("ticks per second = %v, want 120", got)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	overlay := []byte("round:\n  lives: 5\nscoring:\n  dot: 20\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", path, err)
	}

	if cfg.Round.Lives != 5 {
		t.Errorf("lives = %d, want 5", cfg.Round.Lives)
	}
	if cfg.Scoring.Dot != 20 {
		t.Errorf("dot = %d, want 20", cfg.Scoring.Dot)
	}
	// Untouched keys keep their defaults
	if cfg.Scoring.Power != 50 {
		t.Errorf("power = %d, want default 50", cfg.Scoring.Power)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
	}{
		{"zero step", "sim:\n  step_ms: 0\n"},
		{"zero tile", "maze:\n  tile_size: 0\n"},
		{"no lives", "round:\n  lives: 0\n"},
		{"bad reverse chance", "pursuer:\n  reverse_chance: 1.5\n"},
		{"negative chain cap", "scoring:\n  chain_cap: -1\n"},
		{"huge chain cap", "scoring:\n  chain_cap: 31\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.overlay), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("Load accepted %q", tt.overlay)
			}
		})
	}
}

func TestLoadAcceptsMaxChainCap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.yaml")
	if err := os.WriteFile(path, []byte("scoring:\n  chain_cap: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Scoring.ChainCap != MaxChainCap {
		t.Errorf("chain_cap = %d, want %d", cfg.Scoring.ChainCap, MaxChainCap)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Round.Lives = 7

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Round.Lives != 7 {
		t.Errorf("lives = %d after round trip, want 7", loaded.Round.Lives)
	}
}

func TestRefresh(t *testing.T) {
	cfg := Default()
	cfg.Sim.StepMs = 10
	if err := cfg.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if cfg.Derived.StepSec32 != 0.01 {
		t.Errorf("StepSec32 = %v, want 0.01", cfg.Derived.StepSec32)
	}
	if cfg.Derived.TicksPerSec != 100 {
		t.Errorf("TicksPerSec = %v, want 100", cfg.Derived.TicksPerSec)
	}

	cfg.Sim.StepMs = 0
	if err := cfg.Refresh(); err == nil {
		t.Error("expected error for zero step")
	}
}
