package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/chase/config"
	"github.com/pthm-cable/chase/game"
	"github.com/pthm-cable/chase/maze"
	"github.com/pthm-cable/chase/renderer"
	"github.com/pthm-cable/chase/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	mazePath := flag.String("maze", "", "Path to a maze template (empty = config or built-in)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config, then time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	watch := flag.Bool("watch", false, "Reload the maze file when it changes (applied on reset)")
	autopilot := flag.Bool("autopilot", false, "Steer the player towards the nearest pickup")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Sim.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	path := cfg.Maze.Path
	if *mazePath != "" {
		path = *mazePath
	}
	m, err := loadMaze(path, cfg.Derived.TileSize32)
	if err != nil {
		slog.Error("failed to load maze", "path", path, "error", err)
		os.Exit(1)
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output dir", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	var collector *telemetry.Collector
	if *logStats || *outputDir != "" {
		collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.StepSec32)
	}
	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)

	g := game.New(cfg, m, game.Options{
		Seed:      rngSeed,
		Logger:    logger,
		Collector: collector,
		Output:    output,
		Perf:      perf,
		LogStats:  *logStats,
	})

	var watcher *maze.Watcher
	if *watch && path != "" {
		watcher, err = maze.NewWatcher(path)
		if err != nil {
			slog.Error("failed to watch maze", "path", path, "error", err)
			os.Exit(1)
		}
		defer watcher.Close()
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"headless", *headless,
		"maze", path,
		"cols", m.Cols(),
		"rows", m.Rows(),
		"max_ticks", *maxTicks,
		"autopilot", *autopilot,
	)

	r := runner{
		game:      g,
		cfg:       cfg,
		watcher:   watcher,
		maxTicks:  *maxTicks,
		autopilot: *autopilot,
	}
	if *headless {
		r.runHeadless()
	} else {
		r.runGraphical(perf)
	}
}

// loadMaze reads a template file, or the built-in layout when path is empty.
func loadMaze(path string, tileSize float32) (*maze.Maze, error) {
	if path == "" {
		return maze.Default(tileSize), nil
	}
	return maze.Load(path, tileSize)
}

// runner drives a game from the command line.
type runner struct {
	game      *game.Game
	cfg       *config.Config
	watcher   *maze.Watcher
	pending   *maze.Maze // reloaded maze waiting for the next reset
	maxTicks  int
	autopilot bool
	ticks     int
}

func (r *runner) runHeadless() {
	for {
		if r.game.GameOver() {
			slog.Info("game over",
				"tick", r.game.TickCount(),
				"score", r.game.Score(),
				"level", r.game.Level(),
				"high_score", r.game.HighScore(),
			)
			r.reset()
		}

		intent := maze.None
		if r.autopilot {
			intent = r.game.AutopilotIntent()
		}
		r.game.Tick(intent)
		r.ticks++
		r.pollWatcher()

		if r.maxTicks > 0 && r.ticks >= r.maxTicks {
			slog.Info("max ticks reached", "ticks", r.ticks, "score", r.game.Score())
			return
		}
	}
}

func (r *runner) runGraphical(perf *telemetry.PerfCollector) {
	theme := renderer.DefaultTheme()
	scale := float32(r.cfg.Screen.Scale)
	board := renderer.NewBoard(theme, scale, 0, renderer.HUDHeight)
	bw, bh := board.Size(r.game.Maze())
	width, height := bw, bh+renderer.HUDHeight+40

	rl.InitWindow(width, height, "Chase")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(r.cfg.Screen.TargetFPS))

	hud := renderer.NewHUD(theme, width)
	var input renderer.Input

	for !rl.WindowShouldClose() {
		perf.RecordFrame()

		keys := renderer.PollKeys()
		if keys.ToggleGrid {
			board.ShowGrid = !board.ShowGrid
		}
		if keys.ToggleTile {
			board.ShowTiles = !board.ShowTiles
		}
		if keys.TogglePerf {
			hud.ShowPerf = !hud.ShowPerf
		}

		intent := input.Intent()
		if r.autopilot && intent.IsZero() {
			intent = r.game.AutopilotIntent()
		}
		before := r.game.TickCount()
		r.game.Update(time.Duration(rl.GetFrameTime()*float32(time.Second)), intent)
		r.ticks += int(r.game.TickCount() - before)
		r.pollWatcher()

		snap := r.game.Snapshot()

		rl.BeginDrawing()
		rl.ClearBackground(theme.Background)
		board.Draw(r.game.Maze(), snap)
		action := hud.Draw(snap)
		hud.DrawPerf(theme.Padding, bh+renderer.HUDHeight+4, perf.Stats())
		hud.DrawControls(theme.Padding, bh+renderer.HUDHeight+22)
		rl.EndDrawing()

		if keys.Pause || action == renderer.ActionTogglePause {
			r.game.SetPaused(!r.game.Paused())
		}
		if keys.Reset || action == renderer.ActionReset {
			r.reset()
		}

		if r.maxTicks > 0 && r.ticks >= r.maxTicks {
			break
		}
	}
}

// reset restarts at level 1, swapping in a reloaded maze if one is waiting.
func (r *runner) reset() {
	if r.pending != nil {
		r.game.SetMaze(r.pending)
		r.pending = nil
		return
	}
	r.game.Reset()
}

// pollWatcher picks up maze file changes without blocking.
func (r *runner) pollWatcher() {
	if r.watcher == nil {
		return
	}
	select {
	case path, ok := <-r.watcher.Events:
		if !ok {
			r.watcher = nil
			return
		}
		m, err := maze.Load(path, r.cfg.Derived.TileSize32)
		if err != nil {
			slog.Warn("maze reload failed", "path", path, "error", err)
			return
		}
		r.pending = m
		slog.Info("maze reloaded, applied on next reset", "path", path, "cols", m.Cols(), "rows", m.Rows())
	case err, ok := <-r.watcher.Errors:
		if ok {
			slog.Warn("maze watcher error", "error", err)
		}
	default:
	}
}
