package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/chase/maze"
)

// Input tracks the held direction and one-shot key presses for a frame.
type Input struct {
	last maze.Dir
}

// Intent returns the desired direction. The most recently pressed key wins
// while it is held; otherwise any held key is used, in Candidates order.
func (in *Input) Intent() maze.Dir {
	bindings := [4]struct {
		dir  maze.Dir
		keys [2]int32
	}{
		{maze.Right, [2]int32{rl.KeyRight, rl.KeyD}},
		{maze.Left, [2]int32{rl.KeyLeft, rl.KeyA}},
		{maze.Down, [2]int32{rl.KeyDown, rl.KeyS}},
		{maze.Up, [2]int32{rl.KeyUp, rl.KeyW}},
	}

	var held [4]bool
	for i, b := range bindings {
		for _, k := range b.keys {
			if rl.IsKeyPressed(k) {
				in.last = b.dir
			}
			if rl.IsKeyDown(k) {
				held[i] = true
			}
		}
	}

	for i, b := range bindings {
		if held[i] && b.dir == in.last {
			return in.last
		}
	}
	for i, b := range bindings {
		if held[i] {
			return b.dir
		}
	}
	return maze.None
}

// Keys holds the toggles pressed this frame.
type Keys struct {
	Pause      bool
	Reset      bool
	ToggleGrid bool
	ToggleTile bool
	TogglePerf bool
}

// PollKeys reads the one-shot control keys.
func PollKeys() Keys {
	return Keys{
		Pause:      rl.IsKeyPressed(rl.KeyP) || rl.IsKeyPressed(rl.KeySpace),
		Reset:      rl.IsKeyPressed(rl.KeyR),
		ToggleGrid: rl.IsKeyPressed(rl.KeyG),
		ToggleTile: rl.IsKeyPressed(rl.KeyT),
		TogglePerf: rl.IsKeyPressed(rl.KeyF),
	}
}
