package systems

import (
	"sort"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/maze"
)

// Pickups tracks the remaining small and large pickups of a level.
type Pickups struct {
	dots   map[maze.Tile]struct{}
	powers map[maze.Tile]struct{}
}

// NewPickups creates a pickup set filled from the maze template.
func NewPickups(m *maze.Maze) *Pickups {
	p := &Pickups{}
	p.Refill(m)
	return p
}

// Refill repopulates both sets from the maze template.
func (p *Pickups) Refill(m *maze.Maze) {
	dots, powers := m.Dots(), m.Powers()
	p.dots = make(map[maze.Tile]struct{}, len(dots))
	p.powers = make(map[maze.Tile]struct{}, len(powers))
	for _, t := range dots {
		p.dots[t] = struct{}{}
	}
	for _, t := range powers {
		p.powers[t] = struct{}{}
	}
}

// Consume removes whatever pickup lies on t and reports its kind.
func (p *Pickups) Consume(t maze.Tile) components.PickupKind {
	if _, ok := p.dots[t]; ok {
		delete(p.dots, t)
		return components.PickupSmall
	}
	if _, ok := p.powers[t]; ok {
		delete(p.powers, t)
		return components.PickupLarge
	}
	return components.PickupNone
}

// At reports the pickup on t without consuming it.
func (p *Pickups) At(t maze.Tile) components.PickupKind {
	if _, ok := p.dots[t]; ok {
		return components.PickupSmall
	}
	if _, ok := p.powers[t]; ok {
		return components.PickupLarge
	}
	return components.PickupNone
}

func (p *Pickups) DotCount() int   { return len(p.dots) }
func (p *Pickups) PowerCount() int { return len(p.powers) }

// Empty reports whether the level has been cleared.
func (p *Pickups) Empty() bool {
	return len(p.dots) == 0 && len(p.powers) == 0
}

// Dots returns the remaining small pickups in row-major order.
func (p *Pickups) Dots() []maze.Tile {
	return sortedTiles(p.dots)
}

// Powers returns the remaining large pickups in row-major order.
func (p *Pickups) Powers() []maze.Tile {
	return sortedTiles(p.powers)
}

func sortedTiles(set map[maze.Tile]struct{}) []maze.Tile {
	out := make([]maze.Tile, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].R != out[j].R {
			return out[i].R < out[j].R
		}
		return out[i].C < out[j].C
	})
	return out
}
