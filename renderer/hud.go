package renderer

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/chase/game"
	"github.com/pthm-cable/chase/telemetry"
)

// HUDHeight is the vertical space reserved for the HUD strip above the board.
const HUDHeight = 64

// Action is a request raised by a HUD button.
type Action uint8

const (
	ActionNone Action = iota
	ActionTogglePause
	ActionReset
)

// HUD draws the score strip and its buttons.
type HUD struct {
	Theme Theme
	Width int32

	// ShowPerf adds a timing line under the board.
	ShowPerf bool
}

// NewHUD creates a HUD spanning width pixels.
func NewHUD(theme Theme, width int32) *HUD {
	return &HUD{Theme: theme, Width: width}
}

// Draw renders the HUD and returns the button pressed this frame, if any.
func (h *HUD) Draw(s game.Snapshot) Action {
	t := h.Theme
	x, y := t.Padding, t.Padding

	rl.DrawText("SCORE", x, y, t.FontSize, t.LabelColor)
	rl.DrawText(fmt.Sprintf("%d", s.Round.Score), x, y+t.LineHeight, t.HeaderFontSize, t.ValueColor)

	x += 120
	rl.DrawText("HIGH", x, y, t.FontSize, t.LabelColor)
	rl.DrawText(fmt.Sprintf("%d", s.Round.HighScore), x, y+t.LineHeight, t.HeaderFontSize, t.ValueColor)

	x += 120
	rl.DrawText(fmt.Sprintf("LEVEL %d", s.Round.Level), x, y, t.FontSize, t.LabelColor)
	h.drawLives(x, y+t.LineHeight+4, s.Round.Lives)

	status := ""
	switch {
	case s.Round.Over:
		status = "GAME OVER"
	case s.Paused:
		status = "PAUSED"
	case s.Round.FrightenedMs > 0:
		status = fmt.Sprintf("POWER %.1fs  x%d", s.Round.FrightenedMs/1000, 1<<s.Round.Chain)
	}
	if status != "" {
		rl.DrawText(status, x+110, y+t.LineHeight, t.FontSize, t.AlertColor)
	}

	// Buttons, right aligned
	bw, bh := float32(80), float32(24)
	bx := float32(h.Width-t.Padding) - bw
	by := float32(t.Padding)
	action := ActionNone
	if gui.Button(rl.Rectangle{X: bx, Y: by, Width: bw, Height: bh}, toggleText(s.Paused, "Resume", "Pause")) {
		action = ActionTogglePause
	}
	if gui.Button(rl.Rectangle{X: bx, Y: by + bh + 4, Width: bw, Height: bh}, "Reset") {
		action = ActionReset
	}
	return action
}

func (h *HUD) drawLives(x, y int32, lives int) {
	r := float32(6)
	for i := 0; i < lives; i++ {
		cx := float32(x) + r + float32(i)*(r*2+4)
		rl.DrawCircleSector(rl.Vector2{X: cx, Y: float32(y) + r}, r, 30, 330, 12, h.Theme.Player)
	}
}

// DrawPerf renders frame and tick timing at (x, y).
func (h *HUD) DrawPerf(x, y int32, stats telemetry.PerfStats) {
	if !h.ShowPerf {
		return
	}
	line := fmt.Sprintf("FPS %.0f | tick %s", stats.FPS, stats.AvgTickDuration.Round(time.Microsecond))
	for ph, pct := range stats.PhasePct {
		if pct > 10 {
			line += fmt.Sprintf(" | %s %.0f%%", telemetry.Phase(ph), pct)
		}
	}
	rl.DrawText(line, x, y, 12, h.Theme.LabelColor)
}

// DrawControls renders the key legend at (x, y).
func (h *HUD) DrawControls(x, y int32) {
	rl.DrawText("Arrows/WASD move | P pause | R reset | G grid | T tiles | F perf", x, y, 12, rl.Gray)
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
