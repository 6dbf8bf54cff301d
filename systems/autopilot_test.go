package systems

import (
	"testing"

	"github.com/pthm-cable/chase/maze"
)

const autopilotTemplate = `#######
#P....#
#.###.#
#....o#
#######`

func TestAutopilotIntent(t *testing.T) {
	m := mustParse(t, autopilotTemplate)
	start := m.PlayerSpawn()

	tests := []struct {
		name    string
		threats []Threat
		want    maze.Dir
	}{
		{"nearest pickup", nil, maze.Right},
		{"routes around threat", []Threat{{Tile: maze.Tile{C: 3, R: 1}}}, maze.Down},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ap := NewAutopilot(m, 1)
			if got := ap.Intent(start, NewPickups(m), tt.threats); got != tt.want {
				t.Errorf("Intent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAutopilotIgnoresThreatsWhenCornered(t *testing.T) {
	m := mustParse(t, autopilotTemplate)
	ap := NewAutopilot(m, 10)
	if got := ap.Intent(m.PlayerSpawn(), NewPickups(m), []Threat{{Tile: maze.Tile{C: 3, R: 2}}}); got.IsZero() {
		t.Error("expected a direction when every route is threatened")
	}
}

func TestAutopilotNothingLeft(t *testing.T) {
	m := mustParse(t, autopilotTemplate)
	p := NewPickups(m)
	for _, tile := range append(m.Dots(), m.Powers()...) {
		p.Consume(tile)
	}
	if got := NewAutopilot(m, 1).Intent(m.PlayerSpawn(), p, nil); got != maze.None {
		t.Errorf("Intent = %v, want none", got)
	}
}
