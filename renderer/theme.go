// Package renderer draws simulation snapshots with raylib and reads player input.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/chase/components"
)

// Theme holds colours and sizing for the board and HUD.
type Theme struct {
	Background  rl.Color
	Wall        rl.Color
	WallEdge    rl.Color
	Gate        rl.Color
	Dot         rl.Color
	Power       rl.Color
	Player      rl.Color
	Frightened  rl.Color
	Flashing    rl.Color
	Eyes        rl.Color
	Grid        rl.Color
	LabelColor  rl.Color
	ValueColor  rl.Color
	AlertColor  rl.Color
	Personality [components.NumPersonalities]rl.Color

	Padding        int32
	LineHeight     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the standard arcade palette.
func DefaultTheme() Theme {
	return Theme{
		Background: rl.Black,
		Wall:       rl.Color{R: 24, G: 32, B: 140, A: 255},
		WallEdge:   rl.Color{R: 60, G: 80, B: 230, A: 255},
		Gate:       rl.Color{R: 255, G: 184, B: 222, A: 255},
		Dot:        rl.Color{R: 255, G: 200, B: 170, A: 255},
		Power:      rl.Color{R: 255, G: 220, B: 190, A: 255},
		Player:     rl.Yellow,
		Frightened: rl.Color{R: 40, G: 60, B: 255, A: 255},
		Flashing:   rl.RayWhite,
		Eyes:       rl.Color{R: 230, G: 230, B: 255, A: 200},
		Grid:       rl.Color{R: 255, G: 255, B: 255, A: 24},
		LabelColor: rl.LightGray,
		ValueColor: rl.White,
		AlertColor: rl.Yellow,
		Personality: [components.NumPersonalities]rl.Color{
			components.Direct:      rl.Red,
			components.Ambusher:    rl.Pink,
			components.Flanker:     rl.SkyBlue,
			components.Opportunist: rl.Orange,
		},

		Padding:        8,
		LineHeight:     20,
		FontSize:       16,
		HeaderFontSize: 20,
	}
}

// flashThresholdMs is how much frightened time remains when pursuers start flashing.
const flashThresholdMs = 2000

// PursuerColor picks the body colour for a pursuer.
func (t Theme) PursuerColor(p components.Personality, mode components.Mode, frightenedMs float64, tick int32) rl.Color {
	switch mode {
	case components.ModeEyes:
		return t.Eyes
	case components.ModeFrightened:
		// Alternate every 15 ticks near the end of the window.
		if frightenedMs < flashThresholdMs && (tick/15)%2 == 1 {
			return t.Flashing
		}
		return t.Frightened
	}
	if p < components.NumPersonalities {
		return t.Personality[p]
	}
	return rl.Gray
}
