package dungeon

import (
	"errors"
	"fmt"

	"github.com/nathoo/dungeoncore/engine/combat"
	"github.com/nathoo/dungeoncore/engine/rng"
	"github.com/nathoo/dungeoncore/types"
)

// ErrInvalidGridSize is returned by BuildGrid for sizes below 1.
var ErrInvalidGridSize = errors.New("dungeon: invalid grid size")

// Cell is one grid square. The zero value is empty rock.
type Cell string

// Cell kinds.
const (
	CellEmpty    Cell = ""
	CellEntrance Cell = "entrance"
	CellBoss     Cell = "boss"
	CellCorridor Cell = "corridor"

	CellMisc     Cell = "miscRoom"
	CellArmory   Cell = "armory"
	CellTreasure Cell = "treasureRoom"
	CellTrap     Cell = "trapRoom"
	CellEnemy    Cell = "enemyRoom"
	CellPuzzle   Cell = "puzzleRoom"
)

// SideCells are the kinds a side branch may be filled with.
var SideCells = []Cell{CellMisc, CellArmory, CellTreasure, CellTrap, CellEnemy, CellPuzzle}

// Pos is a grid coordinate. Row 0 is the top (north) edge.
type Pos struct {
	Row, Col int
}

// Grid is a square dungeon map.
type Grid struct {
	Size     int
	Cells    [][]Cell
	Entrance Pos
	Boss     Pos
	MainPath []Pos
}

// At returns the cell at p, or CellEmpty when p is off the grid.
func (g *Grid) At(p Pos) Cell {
	if !g.inside(p) {
		return CellEmpty
	}
	return g.Cells[p.Row][p.Col]
}

func (g *Grid) inside(p Pos) bool {
	return p.Row >= 0 && p.Row < g.Size && p.Col >= 0 && p.Col < g.Size
}

// BuildGrid carves an n×n map: entrance on the top row, boss on the bottom
// row, a biased random walk between them and random side branches.
func BuildGrid(n int, r *rng.RNG) (*Grid, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGridSize, n)
	}

	g := &Grid{Size: n, Cells: make([][]Cell, n)}
	for i := range g.Cells {
		g.Cells[i] = make([]Cell, n)
	}

	g.Entrance = Pos{Row: 0, Col: r.Intn(n)}
	g.Boss = Pos{Row: n - 1, Col: r.Intn(n)}
	g.Cells[g.Boss.Row][g.Boss.Col] = CellBoss
	// On a 1×1 grid both anchors share the only cell; the entrance wins.
	g.Cells[g.Entrance.Row][g.Entrance.Col] = CellEntrance

	// Every step moves one cell closer to the boss, so the walk terminates.
	cur := g.Entrance
	g.MainPath = []Pos{cur}
	for cur != g.Boss {
		dy := sign(g.Boss.Row - cur.Row)
		dx := sign(g.Boss.Col - cur.Col)
		switch {
		case r.Chance(0.7) && dy != 0:
			cur.Row += dy
		case dx != 0:
			cur.Col += dx
		default:
			cur.Row += dy
		}
		g.MainPath = append(g.MainPath, cur)
		if g.Cells[cur.Row][cur.Col] == CellEmpty {
			g.Cells[cur.Row][cur.Col] = CellCorridor
		}
	}

	steps := []Pos{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	for _, cell := range g.MainPath {
		if !r.Chance(0.3) {
			continue
		}
		step := steps[r.Intn(len(steps))]
		length := 2 + r.Intn(3)
		p := cell
		for range length {
			p = Pos{Row: p.Row + step.Row, Col: p.Col + step.Col}
			if !g.inside(p) || g.Cells[p.Row][p.Col] != CellEmpty {
				break
			}
			g.Cells[p.Row][p.Col] = SideCells[r.Intn(len(SideCells))]
		}
	}
	return g, nil
}

// String renders the grid one row per line, for debugging.
func (g *Grid) String() string {
	glyphs := map[Cell]byte{
		CellEmpty: '.', CellEntrance: 'E', CellBoss: 'B', CellCorridor: '#',
		CellMisc: 'm', CellArmory: 'a', CellTreasure: 't', CellTrap: '^',
		CellEnemy: 'x', CellPuzzle: '?',
	}
	buf := make([]byte, 0, g.Size*(g.Size+1))
	for _, row := range g.Cells {
		for _, c := range row {
			buf = append(buf, glyphs[c])
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// roomTypeForCell maps grid cells onto the room types content describes.
var roomTypeForCell = map[Cell]string{
	CellEntrance: "entrance",
	CellBoss:     "lair",
	CellCorridor: "corridor",
	CellMisc:     "chamber",
	CellArmory:   "armory",
	CellTreasure: "treasury",
	CellTrap:     "trap",
	CellEnemy:    "chamber",
	CellPuzzle:   "puzzle",
}

// FromGrid turns every non-empty cell into a room. 4-adjacent rooms get
// reciprocal exits (north is row-1). The entrance cell becomes the start
// room and the boss cell the boss's lair; enemy rooms always hold a monster.
func FromGrid(g *Grid, opts Options, r *rng.RNG, c *types.Content) *types.Dungeon {
	opts = opts.normalized()

	ids := map[Pos]string{}
	for row := range g.Size {
		for col := range g.Size {
			p := Pos{Row: row, Col: col}
			switch g.At(p) {
			case CellEmpty:
			case CellEntrance:
				ids[p] = StartRoomID
			case CellBoss:
				ids[p] = "lair"
			default:
				ids[p] = fmt.Sprintf("r%dc%d", row, col)
			}
		}
	}

	rooms := []types.Room{}
	for row := range g.Size {
		for col := range g.Size {
			p := Pos{Row: row, Col: col}
			cell := g.At(p)
			if cell == CellEmpty {
				continue
			}
			room := newRoom(ids[p], roomTypeForCell[cell], r, c)
			for dir, step := range map[string]Pos{
				"north": {-1, 0}, "south": {1, 0}, "east": {0, 1}, "west": {0, -1},
			} {
				if id, ok := ids[Pos{Row: row + step.Row, Col: col + step.Col}]; ok {
					room.Exits[dir] = id
				}
			}

			switch cell {
			case CellEntrance:
			case CellBoss:
				room.Monsters = append(room.Monsters, combat.GenerateBoss(opts.Difficulty, r, c))
			default:
				room.Detail = objectDescription(r, c)
				room.Items = floor(RoomItems(opts.Difficulty, r, c))
				if cell == CellEnemy || r.Chance(monsterChance) {
					room.Monsters = append(room.Monsters, combat.GenerateMonster(opts.Difficulty, r, c))
				}
			}

			if cell == CellEntrance {
				rooms = append([]types.Room{room}, rooms...)
			} else {
				rooms = append(rooms, room)
			}
		}
	}

	return &types.Dungeon{
		Name:        fmt.Sprintf("Level %d", opts.Depth),
		Depth:       opts.Depth,
		Difficulty:  opts.Difficulty,
		Layout:      LayoutGrid,
		Rooms:       rooms,
		StartRoomID: StartRoomID,
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
