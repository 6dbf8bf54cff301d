package systems

import (
	"testing"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/maze"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		dx   float32
		want bool
	}{
		{"same spot", 0, true},
		{"inside tolerance", 16.9, true},
		{"at threshold", 17, false},
		{"apart", 30, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := components.Position{X: 100, Y: 100}
			b := components.Position{X: 100 + tt.dx, Y: 100}
			if got := Overlaps(a, 9, b, 10, 2); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContactsInEnumerationOrder(t *testing.T) {
	m := openMaze(t, 12)
	pw := newPursuerWorld()
	first := pw.spawn(m, maze.Tile{C: 3, R: 3}, maze.Right, components.Pursuer{Personality: components.Direct})
	pw.spawn(m, maze.Tile{C: 8, R: 8}, maze.Right, components.Pursuer{Personality: components.Ambusher})
	third := pw.spawn(m, maze.Tile{C: 3, R: 3}, maze.Left, components.Pursuer{Personality: components.Flanker})

	sys := NewCollisionSystem(pw.world)
	x, y := m.Center(maze.Tile{C: 3, R: 3})
	contacts := sys.Contacts(components.Position{X: x, Y: y}, 4, 2)

	if len(contacts) != 2 {
		t.Fatalf("contacts = %d, want 2", len(contacts))
	}
	if contacts[0].Entity != first || contacts[1].Entity != third {
		t.Errorf("contact order = %v,%v, want %v,%v", contacts[0].Entity, contacts[1].Entity, first, third)
	}
}
