// Package config provides configuration loading for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Sim       SimConfig       `yaml:"sim"`
	Maze      MazeConfig      `yaml:"maze"`
	Player    PlayerConfig    `yaml:"player"`
	Pursuer   PursuerConfig   `yaml:"pursuer"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Round     RoundConfig     `yaml:"round"`
	Collision CollisionConfig `yaml:"collision"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the graphical front-end.
type ScreenConfig struct {
	Scale     float64 `yaml:"scale"` // Pixels on screen per maze pixel
	TargetFPS int     `yaml:"target_fps"`
}

// SimConfig holds clock parameters.
type SimConfig struct {
	StepMs           float64 `yaml:"step_ms"`             // Fixed tick length in milliseconds
	MaxStepsPerFrame int     `yaml:"max_steps_per_frame"` // Catch-up cap per Update call (0 = unlimited)
	Seed             int64   `yaml:"seed"`
}

// MazeConfig holds maze template and geometry settings.
type MazeConfig struct {
	Path          string  `yaml:"path"`
	TileSize      int     `yaml:"tile_size"`
	CenterEpsilon float64 `yaml:"center_epsilon"` // Max offset from a tile midpoint that still counts as centred
}

// PlayerConfig holds player actor parameters.
type PlayerConfig struct {
	Speed      float64 `yaml:"speed"`       // px/s at level 1
	LevelBonus float64 `yaml:"level_bonus"` // px/s added per level above 1
	Radius     float64 `yaml:"radius"`
}

// PursuerConfig holds pursuer actor and behavior parameters.
type PursuerConfig struct {
	Speed           float64 `yaml:"speed"`
	LevelBonus      float64 `yaml:"level_bonus"`
	FrightenedSpeed float64 `yaml:"frightened_speed"`
	EyesBonus       float64 `yaml:"eyes_bonus"` // Added to base speed while returning home
	Radius          float64 `yaml:"radius"`
	ReverseChance   float64 `yaml:"reverse_chance"` // Forced reversal probability per frightened decision
	AmbushLead      int     `yaml:"ambush_lead"`    // Tiles ahead of the player the ambusher aims at
	FlankLead       int     `yaml:"flank_lead"`     // Tiles ahead of the player the flanker pivots on
	ShyRadius       float64 `yaml:"shy_radius"`     // Opportunist chase radius in tiles
	ScatterMs       float64 `yaml:"scatter_ms"`     // Corner patrol phase after respawn (0 = disabled)
}

// ScoringConfig holds reward values and the frightened duration.
type ScoringConfig struct {
	Dot          int     `yaml:"dot"`
	Power        int     `yaml:"power"`
	FrightenedMs float64 `yaml:"frightened_ms"`
	ChainBase    int     `yaml:"chain_base"` // Reward for the first capture in a frightened window
	ChainCap     int     `yaml:"chain_cap"`  // Max doubling exponent
}

// RoundConfig holds round lifecycle parameters.
type RoundConfig struct {
	Lives        int     `yaml:"lives"`
	LevelSpeedup float64 `yaml:"level_speedup"` // px/s added to every actor on level clear
}

// CollisionConfig holds player/pursuer overlap parameters.
type CollisionConfig struct {
	OverlapTolerance float64 `yaml:"overlap_tolerance"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds of simulated time per stats row
	PerfWindow  int     `yaml:"perf_window"`  // Ticks averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	StepSec32     float32 // Sim.StepMs in seconds as float32
	TileSize32    float32
	CenterEps32   float32
	TicksPerSec   float64
	StatsWindowTk int32 // Telemetry.StatsWindow in ticks
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// MaxChainCap is the largest accepted scoring.chain_cap.
const MaxChainCap = 30

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Sim.StepMs <= 0:
		return fmt.Errorf("sim.step_ms must be positive, got %v", c.Sim.StepMs)
	case c.Maze.TileSize <= 0:
		return fmt.Errorf("maze.tile_size must be positive, got %d", c.Maze.TileSize)
	case c.Round.Lives < 1:
		return fmt.Errorf("round.lives must be at least 1, got %d", c.Round.Lives)
	case c.Scoring.ChainCap < 0 || c.Scoring.ChainCap > MaxChainCap:
		return fmt.Errorf("scoring.chain_cap must be in [0,%d], got %d", MaxChainCap, c.Scoring.ChainCap)
	case c.Pursuer.ReverseChance < 0 || c.Pursuer.ReverseChance > 1:
		return fmt.Errorf("pursuer.reverse_chance must be in [0,1], got %v", c.Pursuer.ReverseChance)
	}
	return nil
}

// Refresh validates the config and recomputes derived values after fields
// were changed in code.
func (c *Config) Refresh() error {
	if err := c.validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.StepSec32 = float32(c.Sim.StepMs / 1000)
	c.Derived.TileSize32 = float32(c.Maze.TileSize)
	c.Derived.CenterEps32 = float32(c.Maze.CenterEpsilon)
	c.Derived.TicksPerSec = 1000 / c.Sim.StepMs

	window := int32(c.Telemetry.StatsWindow * c.Derived.TicksPerSec)
	if window < 1 {
		window = 1
	}
	c.Derived.StatsWindowTk = window
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
