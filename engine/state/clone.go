package state

import (
	"maps"
	"slices"

	"github.com/nathoo/dungeoncore/types"
)

func cloneState(gs types.GameState) types.GameState {
	out := gs
	out.Player = clonePlayer(gs.Player)
	out.Dungeon = cloneDungeon(gs.Dungeon)
	out.Flags = maps.Clone(gs.Flags)
	out.Timers = slices.Clone(gs.Timers)
	out.CommandLog = slices.Clone(gs.CommandLog)
	return out
}

func cloneDungeon(d types.Dungeon) types.Dungeon {
	out := d
	out.Rooms = make([]types.Room, len(d.Rooms))
	for i, r := range d.Rooms {
		out.Rooms[i] = cloneRoom(r)
	}
	return out
}

func cloneRoom(r types.Room) types.Room {
	out := r
	out.Exits = maps.Clone(r.Exits)
	if out.Exits == nil {
		out.Exits = map[string]string{}
	}
	out.Items = cloneInventory(r.Items)
	out.Monsters = make([]types.Monster, len(r.Monsters))
	for i, m := range r.Monsters {
		out.Monsters[i] = cloneMonster(m)
	}
	return out
}

func clonePlayer(p types.Player) types.Player {
	out := p
	out.Combatant = cloneCombatant(p.Combatant)
	return out
}

func cloneMonster(m types.Monster) types.Monster {
	out := m
	out.Combatant = cloneCombatant(m.Combatant)
	return out
}

func cloneCombatant(c types.Combatant) types.Combatant {
	out := c
	out.Inventory = cloneInventory(c.Inventory)
	return out
}

func cloneInventory(inv types.Inventory) types.Inventory {
	out := inv
	out.Items = cloneItems(inv.Items)
	return out
}

func cloneItems(items []types.Item) []types.Item {
	out := make([]types.Item, len(items))
	for i, it := range items {
		out[i] = cloneItem(it)
	}
	return out
}

func cloneItem(it types.Item) types.Item {
	out := it
	if it.Weapon != nil {
		w := *it.Weapon
		out.Weapon = &w
	}
	if it.Armor != nil {
		a := *it.Armor
		out.Armor = &a
	}
	if it.Potion != nil {
		p := *it.Potion
		out.Potion = &p
	}
	return out
}
