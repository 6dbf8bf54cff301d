package systems

import (
	"math"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/maze"
)

// MoveResult reports what happened to an actor during one kinematic step.
type MoveResult struct {
	Turned  bool // Want was committed to Dir
	Blocked bool // Travel was cancelled by a wall or forbidden gate
}

// Move advances an actor by one explicit Euler step on the maze.
//
// A queued Want is committed only at tile centres, and only when the tile
// it leads to is open for this actor. The position then advances along
// Dir and wraps through tunnels. If the leading edge of the body would
// enter a blocked tile, the axis of travel is snapped to the centre of the
// tile the actor occupied, which leaves it inside the turn window.
func Move(m *maze.Maze, pos *components.Position, mot *components.Motion, radius, dt, eps float32, allowGate bool) MoveResult {
	var res MoveResult

	if !mot.Want.IsZero() && mot.Want != mot.Dir && m.NearCenter(pos.X, pos.Y, eps) {
		next := m.TileAt(pos.X, pos.Y).Add(mot.Want, 1)
		if !m.Blocked(next.C, next.R, allowGate) {
			mot.Dir = mot.Want
			res.Turned = true
		}
	}

	if mot.Dir.IsZero() {
		return res
	}

	step := mot.Speed * dt
	nx := pos.X + float32(mot.Dir.X)*step
	ny := pos.Y + float32(mot.Dir.Y)*step
	nx, ny = m.Wrap(nx, ny)

	ts := m.TileSize()
	next := m.TileAt(nx, ny)
	cx, cy := m.Center(m.TileAt(pos.X, pos.Y))
	if mot.Dir.X != 0 {
		edge := nx + float32(mot.Dir.X)*radius
		c := int(math.Floor(float64(edge / ts)))
		if m.Blocked(c, next.R, allowGate) {
			nx = cx
			res.Blocked = true
		}
	}
	if mot.Dir.Y != 0 {
		edge := ny + float32(mot.Dir.Y)*radius
		r := int(math.Floor(float64(edge / ts)))
		if m.Blocked(next.C, r, allowGate) {
			ny = cy
			res.Blocked = true
		}
	}

	pos.X, pos.Y = nx, ny
	return res
}

// SnapToCenter moves a position onto the midpoint of the tile it occupies.
func SnapToCenter(m *maze.Maze, pos *components.Position) {
	pos.X, pos.Y = m.Center(m.TileAt(pos.X, pos.Y))
}
