// Package maze models the static tile grid the actors move on.
//
// A Maze is immutable once parsed. It answers wall and gate queries,
// converts between pixel positions and tiles, applies tunnel wrap-around
// and owns the direction helpers shared by every actor.
package maze

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

//go:embed default.txt
var defaultTemplate string

// Cell is the static kind of a grid cell.
type Cell uint8

const (
	CellOpen Cell = iota
	CellWall
	CellGate // Passable only by pursuers returning home
)

// NumHomes is the number of pursuer home tiles a maze provides.
const NumHomes = 4

// Template legend.
const (
	glyphWall   = '#'
	glyphGate   = 'G'
	glyphDot    = '.'
	glyphPower  = 'o'
	glyphPlayer = 'P'
	glyphHome   = 'H'
)

// ErrEmptyTemplate is returned when a template contains no rows.
var ErrEmptyTemplate = errors.New("maze: empty template")

// Maze is a parsed tile grid.
type Maze struct {
	cells    []Cell
	cols     int
	rows     int
	tileSize float32

	dots   []Tile
	powers []Tile

	playerSpawn Tile
	homes       [NumHomes]Tile
}

// Default returns the embedded reference maze.
func Default(tileSize float32) *Maze {
	m, err := Parse(strings.NewReader(defaultTemplate), tileSize)
	if err != nil {
		panic(fmt.Sprintf("maze: embedded template is invalid: %v", err))
	}
	return m
}

// Load parses the template at path. An empty path returns the embedded maze.
func Load(path string, tileSize float32) (*Maze, error) {
	if path == "" {
		return Default(tileSize), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening maze: %w", err)
	}
	defer f.Close()

	m, err := Parse(f, tileSize)
	if err != nil {
		return nil, fmt.Errorf("parsing maze %s: %w", path, err)
	}
	return m, nil
}

// Parse reads a text template. Rows shorter than the widest row are
// padded with open cells. Missing spawn markers fall back to the open tile
// nearest the map centre.
func Parse(r io.Reader, tileSize float32) (*Maze, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("maze: tile size must be positive, got %v", tileSize)
	}

	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	// Trailing blank lines are not rows
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, ErrEmptyTemplate
	}

	cols := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > cols {
			cols = n
		}
	}

	m := &Maze{
		cells:    make([]Cell, cols*len(lines)),
		cols:     cols,
		rows:     len(lines),
		tileSize: tileSize,
	}

	var homes []Tile
	spawnFound := false
	for r, line := range lines {
		for c, ch := range []rune(line) {
			t := Tile{C: c, R: r}
			switch ch {
			case glyphWall:
				m.cells[m.index(c, r)] = CellWall
			case glyphGate:
				m.cells[m.index(c, r)] = CellGate
			case glyphDot:
				m.dots = append(m.dots, t)
			case glyphPower:
				m.powers = append(m.powers, t)
			case glyphPlayer:
				if !spawnFound {
					m.playerSpawn = t
					spawnFound = true
				}
			case glyphHome:
				homes = append(homes, t)
			}
		}
	}

	fallback := m.fallbackTile()
	if !spawnFound {
		m.playerSpawn = fallback
	}
	for i := range m.homes {
		if i < len(homes) {
			m.homes[i] = homes[i]
		} else {
			m.homes[i] = fallback
		}
	}

	return m, nil
}

// fallbackTile returns the map-centre tile, or the open tile nearest to it.
func (m *Maze) fallbackTile() Tile {
	center := Tile{C: m.cols / 2, R: m.rows / 2}
	best := center
	bestD := -1
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if m.cells[m.index(c, r)] != CellOpen {
				continue
			}
			t := Tile{C: c, R: r}
			if d := t.DistSq(center); bestD < 0 || d < bestD {
				best, bestD = t, d
			}
		}
	}
	return best
}

func (m *Maze) index(c, r int) int {
	return r*m.cols + c
}

func (m *Maze) inBounds(c, r int) bool {
	return c >= 0 && c < m.cols && r >= 0 && r < m.rows
}

// Cols returns the grid width in tiles.
func (m *Maze) Cols() int { return m.cols }

// Rows returns the grid height in tiles.
func (m *Maze) Rows() int { return m.rows }

// TileSize returns the tile edge length in pixels.
func (m *Maze) TileSize() float32 { return m.tileSize }

// Width returns the maze width in pixels.
func (m *Maze) Width() float32 { return float32(m.cols) * m.tileSize }

// Height returns the maze height in pixels.
func (m *Maze) Height() float32 { return float32(m.rows) * m.tileSize }

// CellAt returns the cell kind. Out-of-bounds cells read as walls.
func (m *Maze) CellAt(c, r int) Cell {
	if !m.inBounds(c, r) {
		return CellWall
	}
	return m.cells[m.index(c, r)]
}

// IsWall reports whether the tile blocks movement by default: out of
// bounds, a wall, or a gate.
func (m *Maze) IsWall(c, r int) bool {
	return m.CellAt(c, r) != CellOpen
}

// IsGate reports whether the tile is a gate.
func (m *Maze) IsGate(c, r int) bool {
	return m.inBounds(c, r) && m.cells[m.index(c, r)] == CellGate
}

// Blocked is the movement query. Indices wrap around the grid so that a
// tunnel mouth resolves to the cell on the opposite edge. Gates are open
// when allowGate is set.
func (m *Maze) Blocked(c, r int, allowGate bool) bool {
	switch m.cells[m.index(wrapIndex(c, m.cols), wrapIndex(r, m.rows))] {
	case CellWall:
		return true
	case CellGate:
		return !allowGate
	}
	return false
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// TileAt converts a pixel position to the tile containing it.
func (m *Maze) TileAt(x, y float32) Tile {
	return Tile{
		C: int(math.Floor(float64(x / m.tileSize))),
		R: int(math.Floor(float64(y / m.tileSize))),
	}
}

// Center returns the pixel midpoint of a tile.
func (m *Maze) Center(t Tile) (x, y float32) {
	half := m.tileSize / 2
	return float32(t.C)*m.tileSize + half, float32(t.R)*m.tileSize + half
}

// NearCenter reports whether a position is within eps of its tile's
// midpoint on both axes.
func (m *Maze) NearCenter(x, y, eps float32) bool {
	return m.axisNearCenter(x, eps) && m.axisNearCenter(y, eps)
}

func (m *Maze) axisNearCenter(v, eps float32) bool {
	off := mod(v, m.tileSize) - m.tileSize/2
	return off < eps && off > -eps
}

// Wrap translates a position that left the maze back inside it.
func (m *Maze) Wrap(x, y float32) (float32, float32) {
	return mod(x, m.Width()), mod(y, m.Height())
}

// Clamp limits a tile to the grid bounds.
func (m *Maze) Clamp(t Tile) Tile {
	return Tile{C: clampInt(t.C, 0, m.cols-1), R: clampInt(t.R, 0, m.rows-1)}
}

// Dots returns a copy of the template's small pickup tiles.
func (m *Maze) Dots() []Tile {
	return append([]Tile(nil), m.dots...)
}

// Powers returns a copy of the template's large pickup tiles.
func (m *Maze) Powers() []Tile {
	return append([]Tile(nil), m.powers...)
}

// PlayerSpawn returns the player's spawn tile.
func (m *Maze) PlayerSpawn() Tile {
	return m.playerSpawn
}

// Homes returns the pursuer home tiles in template reading order.
func (m *Maze) Homes() [NumHomes]Tile {
	return m.homes
}

// mod returns positive modulo (Go's % can return negative).
func mod(a, b float32) float32 {
	r := float32(math.Mod(float64(a), float64(b)))
	if r < 0 {
		r += b
	}
	// float32 rounding of r+b can land exactly on b
	if r >= b {
		r = 0
	}
	return r
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
