// Package state owns the mutable world of one game session. Callers read
// through copies and change the world only through Store methods, so no
// mutable alias of the internals ever leaves the package.
package state

import (
	"slices"

	"github.com/nathoo/dungeoncore/engine/dungeon"
	"github.com/nathoo/dungeoncore/engine/inventory"
	"github.com/nathoo/dungeoncore/types"
)

// Well-known flags.
const (
	FlagGameOver = "game_over"
	FlagVictory  = "victory"
)

// Store holds a GameState.
type Store struct {
	s    types.GameState
	room *types.Room // current room; points into s.Dungeon.Rooms
}

// New places player at the dungeon's start room. The store keeps its own
// copies of both.
func New(player types.Player, d *types.Dungeon) *Store {
	gs := types.GameState{
		Player:      clonePlayer(player),
		Dungeon:     cloneDungeon(*d),
		CurrentRoom: d.StartRoomID,
		Flags:       map[string]bool{},
		Timers:      []types.Timer{},
		CommandLog:  []string{},
	}
	return Import(gs)
}

// Import builds a store from exported state, e.g. a loaded save.
func Import(gs types.GameState) *Store {
	st := &Store{s: cloneState(gs)}
	if st.s.Flags == nil {
		st.s.Flags = map[string]bool{}
	}
	st.room = dungeon.FindRoom(&st.s.Dungeon, st.s.CurrentRoom)
	if st.room == nil {
		panic("state: precondition violated: current room " + st.s.CurrentRoom + " not in dungeon")
	}
	st.room.Visited = true
	return st
}

// Export returns a deep copy of the full state.
func (st *Store) Export() types.GameState {
	return cloneState(st.s)
}

// Player returns a copy of the player.
func (st *Store) Player() types.Player {
	return clonePlayer(st.s.Player)
}

// CurrentRoom returns a copy of the room the player stands in.
func (st *Store) CurrentRoom() types.Room {
	return cloneRoom(*st.room)
}

// Room returns a copy of any room by ID.
func (st *Store) Room(id string) (types.Room, bool) {
	r := dungeon.FindRoom(&st.s.Dungeon, id)
	if r == nil {
		return types.Room{}, false
	}
	return cloneRoom(*r), true
}

// Dungeon returns a copy of the dungeon.
func (st *Store) Dungeon() types.Dungeon {
	return cloneDungeon(st.s.Dungeon)
}

// Elapsed returns the game time in seconds.
func (st *Store) Elapsed() int { return st.s.Elapsed }

// Turn returns the number of time-consuming commands executed.
func (st *Store) Turn() int { return st.s.TurnCount }

// ReadyAt returns the time before which the player cannot act.
func (st *Store) ReadyAt() int { return st.s.Player.ReadyAt }

// Flag returns the value of a flag. Unset flags return false.
func (st *Store) Flag(name string) bool { return st.s.Flags[name] }

// Timers returns a copy of the event timers.
func (st *Store) Timers() []types.Timer {
	return slices.Clone(st.s.Timers)
}

// QuietRooms returns the IDs of rooms with no monster, other than the
// player's, in dungeon order.
func (st *Store) QuietRooms() []string {
	var ids []string
	for _, r := range st.s.Dungeon.Rooms {
		if r.ID != st.room.ID && len(r.Monsters) == 0 {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// Snapshot returns the presentation view of the state.
func (st *Store) Snapshot() types.Snapshot {
	p := st.s.Player
	room := st.room

	monsters := make([]string, 0, len(room.Monsters))
	for _, m := range room.Monsters {
		monsters = append(monsters, m.Name)
	}
	exits := dungeon.ExitNames(room)
	if exits == nil {
		exits = []string{}
	}

	flags := make(map[string]bool, len(st.s.Flags))
	for k, v := range st.s.Flags {
		flags[k] = v
	}

	return types.Snapshot{
		Player: types.PlayerView{
			Name:                  p.Name,
			Health:                p.Health,
			MaxHealth:             p.MaxHealth,
			Level:                 p.Level,
			Experience:            p.Experience,
			ExperienceToNextLevel: p.ExperienceToNextLevel,
			CurrentWeight:         inventory.TotalWeight(p.Inventory.Items),
			MaxCarryWeight:        p.Inventory.MaxWeight,
			Stats:                 p.Stats,
			Skills:                p.Skills,
			Inventory:             cloneItems(p.Inventory.Items),
			Equipment:             p.Equipment,
		},
		Location: types.LocationView{
			ID:          room.ID,
			Name:        room.Name,
			Description: room.Description,
			Detail:      room.Detail,
			Exits:       exits,
			Items:       cloneItems(room.Items.Items),
			Monsters:    monsters,
		},
		Elapsed: st.s.Elapsed,
		Turn:    st.s.TurnCount,
		Flags:   flags,
	}
}
