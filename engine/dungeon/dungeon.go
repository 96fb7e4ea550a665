// Package dungeon builds playable dungeons. Generate produces the room-graph
// layout; BuildGrid and FromGrid produce the grid layout. Either way every
// room is reachable from the start room.
package dungeon

import (
	"fmt"
	"maps"
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nathoo/dungeoncore/engine/combat"
	"github.com/nathoo/dungeoncore/engine/inventory"
	"github.com/nathoo/dungeoncore/engine/rng"
	"github.com/nathoo/dungeoncore/types"
)

// Layouts.
const (
	LayoutGraph = "graph"
	LayoutGrid  = "grid"
)

// StartRoomID is the ID of the entrance room in every layout.
const StartRoomID = "entrance"

const (
	monsterChance = 0.25
	itemChance    = 0.30
)

// Directions lists the cardinal exits in canonical order.
var Directions = []string{"north", "east", "south", "west"}

var opposites = map[string]string{
	"north": "south",
	"south": "north",
	"east":  "west",
	"west":  "east",
}

// Opposite returns the reverse of a cardinal direction, or "" if dir is not one.
func Opposite(dir string) string {
	return opposites[dir]
}

// Options controls generation.
type Options struct {
	Depth      int
	Difficulty int
	RoomCount  int // total rooms including the entrance; 0 means 5 + 2·depth
}

func (o Options) normalized() Options {
	o.Depth = max(1, o.Depth)
	o.Difficulty = max(1, o.Difficulty)
	if o.RoomCount <= 0 {
		o.RoomCount = 5 + 2*o.Depth
	}
	return o
}

// Generate builds a room-graph dungeon: an entrance followed by rooms of
// weighted-random type, chained with reciprocal exits, plus ⌊roomCount/3⌋
// best-effort extra connections. The last room holds the boss.
func Generate(opts Options, r *rng.RNG, c *types.Content) *types.Dungeon {
	opts = opts.normalized()

	rooms := make([]types.Room, 0, opts.RoomCount)
	rooms = append(rooms, newRoom(StartRoomID, "entrance", r, c))

	roomTypes := roomTypeWeights(opts.Depth)
	for i := 1; i < opts.RoomCount; i++ {
		kind, _ := rng.WeightedRandom(r, roomTypes)
		room := newRoom(combat.NewID(r), kind, r, c)
		room.Detail = objectDescription(r, c)
		room.Items = floor(RoomItems(opts.Difficulty, r, c))
		rooms = append(rooms, room)
	}

	// Room i has used at most the exit back to i-1 and room i+1 none, so a
	// free pair always exists and chain exits are never overwritten.
	for i := 0; i < len(rooms)-1; i++ {
		free := freeDirections(&rooms[i])
		dir := rng.Pick(r, free)
		link(&rooms[i], &rooms[i+1], dir)
	}

	if len(rooms) > 1 {
		for range opts.RoomCount / 3 {
			a := r.Between(0, len(rooms)-1)
			b := a
			for b == a {
				b = r.Between(0, len(rooms)-1)
			}
			free := freeDirections(&rooms[a])
			if len(free) == 0 {
				continue
			}
			dir := free[r.Between(0, len(free)-1)]
			if _, taken := rooms[b].Exits[Opposite(dir)]; taken {
				continue
			}
			link(&rooms[a], &rooms[b], dir)
		}
	}

	for i := 1; i < len(rooms)-1; i++ {
		if r.Chance(monsterChance) {
			rooms[i].Monsters = append(rooms[i].Monsters, combat.GenerateMonster(opts.Difficulty, r, c))
		}
	}
	if len(rooms) > 1 {
		last := &rooms[len(rooms)-1]
		last.Monsters = append(last.Monsters, combat.GenerateBoss(opts.Difficulty, r, c))
	}

	return &types.Dungeon{
		Name:        fmt.Sprintf("Level %d", opts.Depth),
		Depth:       opts.Depth,
		Difficulty:  opts.Difficulty,
		Layout:      LayoutGraph,
		Rooms:       rooms,
		StartRoomID: StartRoomID,
	}
}

// Reachable returns the set of room IDs reachable from the start room by
// following exits.
func Reachable(d *types.Dungeon) map[string]bool {
	byID := make(map[string]*types.Room, len(d.Rooms))
	for i := range d.Rooms {
		byID[d.Rooms[i].ID] = &d.Rooms[i]
	}

	seen := map[string]bool{}
	if _, ok := byID[d.StartRoomID]; !ok {
		return seen
	}
	queue := []string{d.StartRoomID}
	seen[d.StartRoomID] = true
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, dir := range Directions {
			next, ok := byID[id].Exits[dir]
			if !ok || seen[next] {
				continue
			}
			if _, exists := byID[next]; !exists {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}
	return seen
}

// FindRoom returns the room with the given ID, or nil.
func FindRoom(d *types.Dungeon, id string) *types.Room {
	for i := range d.Rooms {
		if d.Rooms[i].ID == id {
			return &d.Rooms[i]
		}
	}
	return nil
}

// ExitNames returns the room's exit directions in canonical order.
func ExitNames(room *types.Room) []string {
	var out []string
	for _, dir := range Directions {
		if _, ok := room.Exits[dir]; ok {
			out = append(out, dir)
		}
	}
	return out
}

func roomTypeWeights(depth int) []rng.Weighted[string] {
	d := float64(depth)
	return []rng.Weighted[string]{
		{Item: "chamber", Weight: 10},
		{Item: "corridor", Weight: 8},
		{Item: "cavern", Weight: 5},
		{Item: "crypt", Weight: 3 + d},
		{Item: "treasury", Weight: 2},
		{Item: "armory", Weight: 3},
		{Item: "library", Weight: 3},
		{Item: "prison", Weight: 2 + d},
		{Item: "forge", Weight: 2},
		{Item: "ritual", Weight: 1 + d},
		{Item: "laboratory", Weight: 1 + d},
	}
}

func newRoom(id, kind string, r *rng.RNG, c *types.Content) types.Room {
	return types.Room{
		ID:          id,
		Name:        RoomName(kind),
		Type:        kind,
		Description: roomDescription(kind, r, c),
		Exits:       map[string]string{},
	}
}

// RoomName is the display name for a room type.
func RoomName(kind string) string {
	switch kind {
	case "entrance":
		return "Dungeon Entrance"
	case "lair":
		return "Boss Lair"
	}
	return cases.Title(language.English).String(kind)
}

func roomDescription(kind string, r *rng.RNG, c *types.Content) string {
	descs := c.RoomDescriptions[kind]
	if len(descs) == 0 {
		descs = c.RoomDescriptions["chamber"]
	}
	if len(descs) == 0 {
		return ""
	}
	return rng.Pick(r, descs)
}

func objectDescription(r *rng.RNG, c *types.Content) string {
	if len(c.ObjectDescriptions) == 0 {
		return ""
	}
	// Sorted so the same seed always picks the same object.
	groups := slices.Sorted(maps.Keys(c.ObjectDescriptions))
	descs := c.ObjectDescriptions[rng.Pick(r, groups)]
	if len(descs) == 0 {
		return ""
	}
	return rng.Pick(r, descs)
}

func freeDirections(room *types.Room) []string {
	var free []string
	for _, dir := range Directions {
		if _, used := room.Exits[dir]; !used {
			free = append(free, dir)
		}
	}
	return free
}

func link(a, b *types.Room, dir string) {
	a.Exits[dir] = b.ID
	b.Exits[Opposite(dir)] = a.ID
}

func floor(items []types.Item) types.Inventory {
	return types.Inventory{Items: items, Weight: inventory.TotalWeight(items)}
}
