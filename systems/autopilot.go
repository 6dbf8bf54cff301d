package systems

import (
	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/maze"
)

// Threat is a pursuer position the autopilot should keep away from.
type Threat struct {
	Tile maze.Tile
}

// Autopilot steers the player towards the nearest pickup with a
// breadth-first search over open tiles, routing around threatened tiles.
type Autopilot struct {
	maze *maze.Maze

	// DangerRadius is the Chebyshev tile distance around a threat that the
	// search treats as closed.
	DangerRadius int

	// Reusable data structures (cleared between searches)
	queue    []int
	firstDir []int8 // index into maze.Candidates, -1 unvisited
	blocked  []bool
}

// NewAutopilot creates an autopilot for m.
func NewAutopilot(m *maze.Maze, dangerRadius int) *Autopilot {
	a := &Autopilot{DangerRadius: dangerRadius}
	a.SetMaze(m)
	return a
}

// SetMaze resizes the search buffers for a new maze.
func (a *Autopilot) SetMaze(m *maze.Maze) {
	a.maze = m
	n := m.Cols() * m.Rows()
	a.queue = make([]int, 0, n)
	a.firstDir = make([]int8, n)
	a.blocked = make([]bool, n)
}

// Intent returns the direction the player should want next. When every
// route to a pickup is cut off it retries ignoring threats, and returns
// maze.None if nothing is reachable at all.
func (a *Autopilot) Intent(from maze.Tile, pickups *Pickups, threats []Threat) maze.Dir {
	if d, ok := a.search(from, pickups, threats); ok {
		return d
	}
	if d, ok := a.search(from, pickups, nil); ok {
		return d
	}
	return maze.None
}

func (a *Autopilot) search(from maze.Tile, pickups *Pickups, threats []Threat) (maze.Dir, bool) {
	m := a.maze
	cols, rows := m.Cols(), m.Rows()
	from = m.Clamp(from)

	for i := range a.firstDir {
		a.firstDir[i] = -1
		a.blocked[i] = false
	}
	for _, th := range threats {
		for dr := -a.DangerRadius; dr <= a.DangerRadius; dr++ {
			for dc := -a.DangerRadius; dc <= a.DangerRadius; dc++ {
				c := wrap(th.Tile.C+dc, cols)
				r := wrap(th.Tile.R+dr, rows)
				a.blocked[r*cols+c] = true
			}
		}
	}

	start := from.R*cols + from.C
	a.queue = append(a.queue[:0], start)
	a.firstDir[start] = int8(len(maze.Candidates))

	for head := 0; head < len(a.queue); head++ {
		idx := a.queue[head]
		cur := maze.Tile{C: idx % cols, R: idx / cols}
		if idx != start && pickups.At(cur) != components.PickupNone {
			return maze.Candidates[a.firstDir[idx]], true
		}
		for di, d := range maze.Candidates {
			n := cur.Add(d, 1)
			if m.Blocked(n.C, n.R, false) {
				continue
			}
			n.C, n.R = wrap(n.C, cols), wrap(n.R, rows)
			ni := n.R*cols + n.C
			if a.firstDir[ni] >= 0 || a.blocked[ni] {
				continue
			}
			if idx == start {
				a.firstDir[ni] = int8(di)
			} else {
				a.firstDir[ni] = a.firstDir[idx]
			}
			a.queue = append(a.queue, ni)
		}
	}
	return maze.None, false
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
