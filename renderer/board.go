package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/game"
	"github.com/pthm-cable/chase/maze"
)

// Board draws the maze, pickups and actors at a fixed screen offset and scale.
type Board struct {
	Theme   Theme
	Scale   float32
	OffsetX float32
	OffsetY float32

	// ShowGrid overlays tile boundaries.
	ShowGrid bool
	// ShowTiles highlights the tile each actor currently occupies.
	ShowTiles bool
}

// NewBoard creates a board renderer.
func NewBoard(theme Theme, scale, offsetX, offsetY float32) *Board {
	if scale <= 0 {
		scale = 1
	}
	return &Board{
		Theme:   theme,
		Scale:   scale,
		OffsetX: offsetX,
		OffsetY: offsetY,
	}
}

// Size returns the on-screen size of the maze in pixels.
func (b *Board) Size(m *maze.Maze) (w, h int32) {
	return int32(m.Width() * b.Scale), int32(m.Height() * b.Scale)
}

// screen converts maze pixels to screen pixels.
func (b *Board) screen(x, y float32) (float32, float32) {
	return b.OffsetX + x*b.Scale, b.OffsetY + y*b.Scale
}

// tileRect returns the screen rectangle of a tile.
func (b *Board) tileRect(m *maze.Maze, c, r int) rl.Rectangle {
	ts := m.TileSize()
	x, y := b.screen(float32(c)*ts, float32(r)*ts)
	return rl.Rectangle{X: x, Y: y, Width: ts * b.Scale, Height: ts * b.Scale}
}

// Draw renders a full snapshot.
func (b *Board) Draw(m *maze.Maze, s game.Snapshot) {
	b.drawMaze(m)
	if b.ShowGrid {
		b.drawGrid(m)
	}
	b.drawPickups(m, s)
	if b.ShowTiles {
		b.drawActorTiles(m, s)
	}
	for _, p := range s.Pursuers {
		b.drawPursuer(p, s.Round)
	}
	b.drawPlayer(s.Player, s.Round.Tick)
}

func (b *Board) drawMaze(m *maze.Maze) {
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			switch m.CellAt(c, r) {
			case maze.CellWall:
				rect := b.tileRect(m, c, r)
				rl.DrawRectangleRec(rect, b.Theme.Wall)
				b.drawWallEdges(m, c, r, rect)
			case maze.CellGate:
				rect := b.tileRect(m, c, r)
				h := rect.Height / 6
				rl.DrawRectangleRec(rl.Rectangle{X: rect.X, Y: rect.Y + (rect.Height-h)/2, Width: rect.Width, Height: h}, b.Theme.Gate)
			}
		}
	}
}

// drawWallEdges outlines the sides of a wall tile that face open space.
func (b *Board) drawWallEdges(m *maze.Maze, c, r int, rect rl.Rectangle) {
	x0, y0 := rect.X, rect.Y
	x1, y1 := rect.X+rect.Width, rect.Y+rect.Height
	thick := float32(math.Max(1, float64(b.Scale)))
	if r > 0 && !m.IsWall(c, r-1) {
		rl.DrawLineEx(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y0}, thick, b.Theme.WallEdge)
	}
	if r < m.Rows()-1 && !m.IsWall(c, r+1) {
		rl.DrawLineEx(rl.Vector2{X: x0, Y: y1}, rl.Vector2{X: x1, Y: y1}, thick, b.Theme.WallEdge)
	}
	if c > 0 && !m.IsWall(c-1, r) {
		rl.DrawLineEx(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x0, Y: y1}, thick, b.Theme.WallEdge)
	}
	if c < m.Cols()-1 && !m.IsWall(c+1, r) {
		rl.DrawLineEx(rl.Vector2{X: x1, Y: y0}, rl.Vector2{X: x1, Y: y1}, thick, b.Theme.WallEdge)
	}
}

func (b *Board) drawGrid(m *maze.Maze) {
	w, h := b.Size(m)
	ts := m.TileSize() * b.Scale
	for c := 0; c <= m.Cols(); c++ {
		x := int32(b.OffsetX + float32(c)*ts)
		rl.DrawLine(x, int32(b.OffsetY), x, int32(b.OffsetY)+h, b.Theme.Grid)
	}
	for r := 0; r <= m.Rows(); r++ {
		y := int32(b.OffsetY + float32(r)*ts)
		rl.DrawLine(int32(b.OffsetX), y, int32(b.OffsetX)+w, y, b.Theme.Grid)
	}
}

func (b *Board) drawPickups(m *maze.Maze, s game.Snapshot) {
	ts := m.TileSize()
	for _, t := range s.Dots {
		x, y := b.screen(m.Center(t))
		rl.DrawCircleV(rl.Vector2{X: x, Y: y}, ts*0.1*b.Scale, b.Theme.Dot)
	}
	// Power pickups pulse at roughly 2Hz.
	pulse := float32(0.8 + 0.2*math.Sin(float64(s.Round.Tick)*0.1))
	for _, t := range s.Powers {
		x, y := b.screen(m.Center(t))
		rl.DrawCircleV(rl.Vector2{X: x, Y: y}, ts*0.3*b.Scale*pulse, b.Theme.Power)
	}
}

func (b *Board) drawActorTiles(m *maze.Maze, s game.Snapshot) {
	highlight := func(t maze.Tile, col rl.Color) {
		col.A = 60
		rl.DrawRectangleRec(b.tileRect(m, t.C, t.R), col)
	}
	highlight(s.Player.Tile, b.Theme.Player)
	for _, p := range s.Pursuers {
		highlight(p.Tile, b.Theme.Personality[p.Personality])
	}
}

// drawPlayer draws a wedge that opens towards the facing direction.
func (b *Board) drawPlayer(a game.ActorState, tick int32) {
	x, y := b.screen(a.X, a.Y)
	radius := a.Radius * b.Scale
	center := rl.Vector2{X: x, Y: y}

	if a.Dir.IsZero() {
		rl.DrawCircleV(center, radius, b.Theme.Player)
		return
	}

	heading := float32(math.Atan2(float64(a.Dir.Y), float64(a.Dir.X)) * 180 / math.Pi)
	mouth := float32(35 * math.Abs(math.Sin(float64(tick)*0.15)))
	rl.DrawCircleSector(center, radius, heading+mouth, heading+360-mouth, 24, b.Theme.Player)
}

func (b *Board) drawPursuer(p game.PursuerState, round game.Round) {
	x, y := b.screen(p.X, p.Y)
	radius := p.Radius * b.Scale
	col := b.Theme.PursuerColor(p.Personality, p.Mode, round.FrightenedMs, round.Tick)

	if p.Mode != components.ModeEyes {
		// Dome on top of a skirt.
		rl.DrawCircleV(rl.Vector2{X: x, Y: y - radius*0.1}, radius, col)
		rl.DrawRectangleRec(rl.Rectangle{X: x - radius, Y: y - radius*0.1, Width: radius * 2, Height: radius}, col)
	}
	b.drawEyes(x, y-radius*0.25, radius, p.Dir)
}

func (b *Board) drawEyes(x, y, radius float32, dir maze.Dir) {
	off := radius * 0.38
	look := rl.Vector2{X: float32(dir.X) * radius * 0.12, Y: float32(dir.Y) * radius * 0.12}
	for _, sx := range [2]float32{-off, off} {
		eye := rl.Vector2{X: x + sx, Y: y}
		rl.DrawCircleV(eye, radius*0.3, rl.White)
		rl.DrawCircleV(rl.Vector2{X: eye.X + look.X, Y: eye.Y + look.Y}, radius*0.14, rl.DarkBlue)
	}
}
