package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/chase/components"
	"github.com/pthm-cable/chase/maze"
)

type pursuerWorld struct {
	world  *ecs.World
	mapper *ecs.Map4[components.Position, components.Motion, components.Body, components.Pursuer]
}

func newPursuerWorld() *pursuerWorld {
	w := ecs.NewWorld()
	return &pursuerWorld{
		world:  w,
		mapper: ecs.NewMap4[components.Position, components.Motion, components.Body, components.Pursuer](w),
	}
}

func (pw *pursuerWorld) spawn(m *maze.Maze, tile maze.Tile, dir maze.Dir, p components.Pursuer) ecs.Entity {
	x, y := m.Center(tile)
	pos := components.Position{X: x, Y: y}
	mot := components.Motion{Dir: dir}
	body := components.Body{Radius: 5}
	return pw.mapper.NewEntity(&pos, &mot, &body, &p)
}

func defaultParams() PursuerParams {
	return PursuerParams{
		BaseSpeed:       80,
		FrightenedSpeed: 60,
		EyesSpeed:       120,
		CenterEps:       1.5,
		ReverseChance:   0.05,
	}
}

func TestEyesFlipToScatterAtHome(t *testing.T) {
	m := mustParse(t, ringTemplate)
	pw := newPursuerWorld()
	home := maze.Tile{C: 1, R: 1}
	e := pw.spawn(m, home, maze.Down, components.Pursuer{Mode: components.ModeEyes, Home: home})

	sys := NewBehaviorSystem(pw.world, m, rand.New(rand.NewSource(1)))
	ctx := &TargetContext{TileSize: 10}
	changes := sys.Update(ctx, defaultParams(), 1.0/120)

	_, mot, _, p := pw.mapper.Get(e)
	if p.Mode != components.ModeScatter {
		t.Fatalf("mode = %v, want scatter", p.Mode)
	}
	if mot.Dir != maze.Right {
		t.Errorf("dir = %v, want right", mot.Dir)
	}
	if len(changes) != 1 || changes[0].From != components.ModeEyes || changes[0].To != components.ModeScatter {
		t.Errorf("changes = %+v, want one eyes->scatter", changes)
	}
}

func TestFrightenedExpiresToChase(t *testing.T) {
	m := mustParse(t, ringTemplate)
	pw := newPursuerWorld()
	e := pw.spawn(m, maze.Tile{C: 1, R: 1}, maze.Right, components.Pursuer{Mode: components.ModeFrightened})

	sys := NewBehaviorSystem(pw.world, m, rand.New(rand.NewSource(1)))
	params := defaultParams()

	sys.Update(&TargetContext{TileSize: 10}, params, 1.0/120)
	if _, _, _, p := pw.mapper.Get(e); p.Mode != components.ModeFrightened {
		t.Fatalf("mode = %v before expiry, want frightened", p.Mode)
	}

	params.FrightenedOver = true
	sys.Update(&TargetContext{TileSize: 10}, params, 1.0/120)
	if _, _, _, p := pw.mapper.Get(e); p.Mode != components.ModeChase {
		t.Errorf("mode = %v after expiry, want chase", p.Mode)
	}
}

func TestBlockedPursuerSnapsAndReverses(t *testing.T) {
	m := mustParse(t, "#####\n#...#\n#####")
	pw := newPursuerWorld()
	e := pw.spawn(m, maze.Tile{C: 3, R: 1}, maze.Right, components.Pursuer{Mode: components.ModeFrightened})

	sys := NewBehaviorSystem(pw.world, m, rand.New(rand.NewSource(1)))
	params := defaultParams()
	params.ReverseChance = 1 // dead end forces Left, then the flip points it back at the wall

	sys.Update(&TargetContext{TileSize: 10}, params, 1.0/120)

	pos, mot, _, p := pw.mapper.Get(e)
	if mot.Dir != maze.Left {
		t.Errorf("dir = %v, want left", mot.Dir)
	}
	if pos.X != 35 || pos.Y != 15 {
		t.Errorf("pos = %+v, want tile centre 35,15", *pos)
	}
	if p.Decided {
		t.Error("decision not cleared after a blocked move")
	}
}

// TestOneDecisionPerTile keeps a chase pursuer inside the centre window of
// a four-way tile for several ticks and checks it never turns back the way
// it came.
func TestOneDecisionPerTile(t *testing.T) {
	m := openMaze(t, 12)
	pw := newPursuerWorld()
	start := maze.Tile{C: 4, R: 3}
	e := pw.spawn(m, start, maze.Right, components.Pursuer{Personality: components.Direct, Mode: components.ModeChase})

	sys := NewBehaviorSystem(pw.world, m, rand.New(rand.NewSource(1)))
	ctx := &TargetContext{PlayerTile: maze.Tile{C: 1, R: 1}, TileSize: 10}

	for tick := 0; tick < 30; tick++ {
		sys.Update(ctx, defaultParams(), 1.0/120)

		pos, mot, _, _ := pw.mapper.Get(e)
		tile := m.TileAt(pos.X, pos.Y)
		if tile == start {
			if mot.Dir != maze.Up {
				t.Fatalf("tick %d: dir = %v inside %v, want up", tick, mot.Dir, start)
			}
			continue
		}
		if tile != (maze.Tile{C: 4, R: 2}) || mot.Dir != maze.Up {
			t.Fatalf("left %v into %v heading %v, want 4,2 heading up", start, tile, mot.Dir)
		}
		return
	}
	t.Fatal("pursuer never left its start tile")
}

func TestChaseHeadsForPlayer(t *testing.T) {
	m := openMaze(t, 12)
	pw := newPursuerWorld()
	e := pw.spawn(m, maze.Tile{C: 5, R: 5}, maze.Up, components.Pursuer{Personality: components.Direct, Mode: components.ModeChase})

	sys := NewBehaviorSystem(pw.world, m, rand.New(rand.NewSource(1)))
	ctx := &TargetContext{PlayerTile: maze.Tile{C: 10, R: 5}, TileSize: 10}
	sys.Update(ctx, defaultParams(), 1.0/120)

	_, mot, _, _ := pw.mapper.Get(e)
	if mot.Dir != maze.Right {
		t.Errorf("dir = %v, want right", mot.Dir)
	}
	if mot.Speed != 80 {
		t.Errorf("speed = %v, want base speed 80", mot.Speed)
	}
}

func TestDirectTileSnapshot(t *testing.T) {
	m := openMaze(t, 12)
	pw := newPursuerWorld()
	pw.spawn(m, maze.Tile{C: 2, R: 2}, maze.Right, components.Pursuer{Personality: components.Ambusher})
	pw.spawn(m, maze.Tile{C: 7, R: 3}, maze.Right, components.Pursuer{Personality: components.Direct})

	sys := NewBehaviorSystem(pw.world, m, rand.New(rand.NewSource(1)))
	if got := sys.DirectTile(maze.Tile{}); got != (maze.Tile{C: 7, R: 3}) {
		t.Errorf("DirectTile = %v, want 7,3", got)
	}

	empty := NewBehaviorSystem(ecs.NewWorld(), m, rand.New(rand.NewSource(1)))
	fallback := maze.Tile{C: 4, R: 4}
	if got := empty.DirectTile(fallback); got != fallback {
		t.Errorf("DirectTile without a direct pursuer = %v, want fallback", got)
	}
}

// TestPursuersNeverEnterWalls wanders frightened pursuers around the
// default maze and checks every resulting tile.
func TestPursuersNeverEnterWalls(t *testing.T) {
	m := maze.Default(24)
	pw := newPursuerWorld()
	for i, home := range m.Homes() {
		p := components.Pursuer{Personality: components.Personality(i), Mode: components.ModeFrightened, Home: home}
		pw.spawn(m, home, maze.Right, p)
	}

	sys := NewBehaviorSystem(pw.world, m, rand.New(rand.NewSource(7)))
	filter := ecs.NewFilter4[components.Position, components.Motion, components.Body, components.Pursuer](pw.world)
	params := defaultParams()
	ctx := &TargetContext{TileSize: 24}

	for tick := 0; tick < 20000; tick++ {
		sys.Update(ctx, params, 1.0/120)

		query := filter.Query()
		for query.Next() {
			pos, _, _, p := query.Get()
			tile := m.TileAt(pos.X, pos.Y)
			if m.Blocked(tile.C, tile.R, false) {
				query.Close()
				t.Fatalf("tick %d: %v pursuer inside blocked tile %v", tick, p.Personality, tile)
			}
		}
	}
}
