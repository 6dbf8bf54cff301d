package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Round state at window end
	Level     int `csv:"level"`
	Lives     int `csv:"lives"`
	Score     int `csv:"score"`
	HighScore int `csv:"high_score"`
	DotsLeft  int `csv:"dots_left"`
	PowerLeft int `csv:"powers_left"`

	// Events during window
	DotsEaten        int `csv:"dots_eaten"`
	PowersEaten      int `csv:"powers_eaten"`
	PursuersCaptured int `csv:"pursuers_captured"`
	CaptureScore     int `csv:"capture_score"`
	LivesLost        int `csv:"lives_lost"`
	LevelsCleared    int `csv:"levels_cleared"`
	ScoreGained      int `csv:"score_gained"`

	// Nearest dangerous pursuer distance in tiles
	PressureMean float64 `csv:"pressure_mean"`
	PressureStd  float64 `csv:"pressure_std"`
	PressureMin  float64 `csv:"pressure_min"`
	PressureP50  float64 `csv:"pressure_p50"`
}

// ComputePressureStats calculates mean, standard deviation, minimum and
// median of the pressure samples. All zero for an empty slice.
func ComputePressureStats(values []float64) (mean, std, min, p50 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std = stat.PopMeanStdDev(sorted, nil)
	min = floats.Min(sorted)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return mean, std, min, p50
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("level", s.Level),
		slog.Int("lives", s.Lives),
		slog.Int("score", s.Score),
		slog.Int("high_score", s.HighScore),
		slog.Int("dots_left", s.DotsLeft),
		slog.Int("powers_left", s.PowerLeft),
		slog.Int("dots_eaten", s.DotsEaten),
		slog.Int("powers_eaten", s.PowersEaten),
		slog.Int("pursuers_captured", s.PursuersCaptured),
		slog.Int("capture_score", s.CaptureScore),
		slog.Int("lives_lost", s.LivesLost),
		slog.Int("levels_cleared", s.LevelsCleared),
		slog.Int("score_gained", s.ScoreGained),
		slog.Float64("pressure_mean", s.PressureMean),
		slog.Float64("pressure_std", s.PressureStd),
		slog.Float64("pressure_min", s.PressureMin),
		slog.Float64("pressure_p50", s.PressureP50),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats(logger *slog.Logger) {
	logger.Info("stats", "window", s)
}
