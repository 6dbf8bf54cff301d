// Package game owns the simulation context: the ECS world, the round state,
// the pickup sets and the tick pipeline.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/config"
	"github.com/pthm-cable/chase/maze"
	"github.com/pthm-cable/chase/systems"
	"github.com/pthm-cable/chase/telemetry"
)

// Options configures a new Game.
type Options struct {
	Seed      int64        // RNG seed for frightened wandering
	HighScore int          // high score carried in from outside
	Logger    *slog.Logger // nil = slog.Default()

	// Optional telemetry; all may be nil
	Collector *telemetry.Collector
	Output    *telemetry.OutputManager
	Perf      *telemetry.PerfCollector
	LogStats  bool
}

// Round is the mutable per-game state outside the ECS world.
type Round struct {
	Level         int
	StartLevel    int
	Lives         int
	Score         int
	HighScore     int
	FrightenedMs  float64
	Chain         int
	Over          bool
	LevelsCleared int
	ScatterMs     float64
	Tick          int32
}

// Game holds the complete game state.
type Game struct {
	cfg    *config.Config
	maze   *maze.Maze
	rng    *rand.Rand
	logger *slog.Logger

	world         *ecs.World
	playerMapper  *ecs.Map4[components.Position, components.Motion, components.Body, components.Player]
	pursuerMapper *ecs.Map4[components.Position, components.Motion, components.Body, components.Pursuer]
	player        ecs.Entity
	pursuers      [components.NumPersonalities]ecs.Entity

	behavior  *systems.BehaviorSystem
	collision *systems.CollisionSystem
	pickups   *systems.Pickups
	autopilot *systems.Autopilot

	round  Round
	clock  Clock
	paused bool

	events      []telemetry.Event
	frameEvents []telemetry.Event
	subscribers []func(telemetry.Event)

	// Telemetry
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	perf      *telemetry.PerfCollector
	logStats  bool
}

// New creates a game on maze m and initializes it at level 1.
func New(cfg *config.Config, m *maze.Maze, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		cfg:           cfg,
		maze:          m,
		rng:           rng,
		logger:        logger,
		world:         world,
		playerMapper:  ecs.NewMap4[components.Position, components.Motion, components.Body, components.Player](world),
		pursuerMapper: ecs.NewMap4[components.Position, components.Motion, components.Body, components.Pursuer](world),
		behavior:      systems.NewBehaviorSystem(world, m, rng),
		collision:     systems.NewCollisionSystem(world),
		pickups:       systems.NewPickups(m),
		clock:         NewClock(cfg.Sim.StepMs, cfg.Sim.MaxStepsPerFrame),
		collector:     opts.Collector,
		output:        opts.Output,
		perf:          opts.Perf,
		logStats:      opts.LogStats,
	}
	g.round.HighScore = opts.HighScore

	g.spawnActors()
	g.Initialize(1, cfg.Round.Lives, 0)
	return g
}

// spawnActors creates the player and one pursuer per personality. Pursuers
// are created in personality order, which is the collision enumeration order.
func (g *Game) spawnActors() {
	pos := components.Position{}
	mot := components.Motion{}
	body := components.Body{Radius: float32(g.cfg.Player.Radius)}
	player := components.Player{Spawn: g.maze.PlayerSpawn()}
	g.player = g.playerMapper.NewEntity(&pos, &mot, &body, &player)

	homes := g.maze.Homes()
	for i := range g.pursuers {
		p := components.Personality(i)
		pos := components.Position{}
		mot := components.Motion{}
		body := components.Body{Radius: float32(g.cfg.Pursuer.Radius)}
		pursuer := components.Pursuer{
			Personality: p,
			Home:        homes[i],
			Corner:      systems.ScatterCorner(g.maze, p),
		}
		g.pursuers[i] = g.pursuerMapper.NewEntity(&pos, &mot, &body, &pursuer)
	}
}

// Subscribe registers fn to receive every event as it is emitted.
func (g *Game) Subscribe(fn func(telemetry.Event)) {
	g.subscribers = append(g.subscribers, fn)
}

func (g *Game) emit(ev telemetry.Event) {
	g.events = append(g.events, ev)
	for _, fn := range g.subscribers {
		fn(ev)
	}
}

// Maze returns the maze the game runs on.
func (g *Game) Maze() *maze.Maze { return g.maze }

// Config returns the game configuration.
func (g *Game) Config() *config.Config { return g.cfg }

// Score returns the current score.
func (g *Game) Score() int { return g.round.Score }

// HighScore returns the best score seen, including the current one.
func (g *Game) HighScore() int { return g.round.HighScore }

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.round.Lives }

// Level returns the current level, starting at 1.
func (g *Game) Level() int { return g.round.Level }

// GameOver reports whether the last life was lost.
func (g *Game) GameOver() bool { return g.round.Over }

// FrightenedMs returns the time left in the frightened window.
func (g *Game) FrightenedMs() float64 { return g.round.FrightenedMs }

// Chain returns the capture chain counter of the frightened window.
func (g *Game) Chain() int { return g.round.Chain }

// TickCount returns the number of ticks run since the last Initialize.
func (g *Game) TickCount() int32 { return g.round.Tick }

// Round returns a copy of the round state.
func (g *Game) Round() Round { return g.round }

// Paused reports whether the clock is suspended.
func (g *Game) Paused() bool { return g.paused }

// Dots returns the remaining small pickups in row-major order.
func (g *Game) Dots() []maze.Tile { return g.pickups.Dots() }

// Powers returns the remaining large pickups in row-major order.
func (g *Game) Powers() []maze.Tile { return g.pickups.Powers() }

// Pickups returns the live pickup sets.
func (g *Game) Pickups() *systems.Pickups { return g.pickups }

// SetPaused suspends or resumes the clock. Time that passes while paused
// is discarded.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
	g.clock.Discard()
}

// playerSpeed is the player's base speed plus per-level bonuses.
func (g *Game) playerSpeed() float32 {
	c := g.cfg
	return float32(c.Player.Speed +
		c.Player.LevelBonus*float64(g.round.StartLevel-1) +
		c.Round.LevelSpeedup*float64(g.round.LevelsCleared))
}

// pursuerSpeed is the scatter/chase speed for the current level.
func (g *Game) pursuerSpeed() float32 {
	c := g.cfg
	return float32(c.Pursuer.Speed +
		c.Pursuer.LevelBonus*float64(g.round.Level-1) +
		c.Round.LevelSpeedup*float64(g.round.LevelsCleared))
}

func (g *Game) eyesSpeed() float32 {
	return float32(g.cfg.Pursuer.Speed + g.cfg.Pursuer.EyesBonus)
}
