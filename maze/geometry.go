package maze

import "fmt"

// Dir is a grid direction: one of the four unit vectors or zero.
// Screen coordinates: +Y points down.
type Dir struct {
	X, Y int8
}

// Unit directions.
var (
	None  = Dir{}
	Right = Dir{X: 1}
	Left  = Dir{X: -1}
	Down  = Dir{Y: 1}
	Up    = Dir{Y: -1}
)

// Candidates is the fixed evaluation order for direction choice.
// Ties in greedy selection go to the earliest entry.
var Candidates = [4]Dir{Right, Left, Down, Up}

// Reverse returns the opposite direction.
func (d Dir) Reverse() Dir {
	return Dir{X: -d.X, Y: -d.Y}
}

// IsZero reports whether d is the zero direction.
func (d Dir) IsZero() bool {
	return d.X == 0 && d.Y == 0
}

func (d Dir) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case Down:
		return "down"
	case Up:
		return "up"
	case None:
		return "none"
	}
	return fmt.Sprintf("(%d,%d)", d.X, d.Y)
}

// Tile is a grid cell coordinate (column, row).
type Tile struct {
	C, R int
}

// Add returns the tile n steps along d.
func (t Tile) Add(d Dir, n int) Tile {
	return Tile{C: t.C + int(d.X)*n, R: t.R + int(d.Y)*n}
}

// DistSq returns the squared Euclidean distance in tiles.
func (t Tile) DistSq(o Tile) int {
	dc := t.C - o.C
	dr := t.R - o.R
	return dc*dc + dr*dr
}

func (t Tile) String() string {
	return fmt.Sprintf("%d,%d", t.C, t.R)
}
