package loader

import (
	"github.com/nathoo/dungeoncore/types"
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the content constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", intro = "..." }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Rooms "crypt" { "description", ... } — curried.
	L.SetGlobal("Rooms", L.NewFunction(func(L *lua.LState) int {
		kind := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.rooms = append(coll.rooms, rawList{key: kind, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Objects "altars" { "description", ... } — curried.
	L.SetGlobal("Objects", L.NewFunction(func(L *lua.LState) int {
		group := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.objects = append(coll.objects, rawList{key: group, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	}))

	// Weapon { name = "...", damage = "1d8", ... } and friends.
	for name, kind := range map[string]types.ItemKind{
		"Weapon":   types.KindWeapon,
		"Armor":    types.KindArmor,
		"Potion":   types.KindPotion,
		"Treasure": types.KindTreasure,
		"Key":      types.KindKey,
	} {
		L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
			coll.items = append(coll.items, rawItem{kind: kind, table: L.CheckTable(1)})
			return 0
		}))
	}

	// Monster { name = "Ghoul", health = 5, strength = 1, dexterity = -1 }
	L.SetGlobal("Monster", L.NewFunction(func(L *lua.LState) int {
		coll.monsters = append(coll.monsters, L.CheckTable(1))
		return 0
	}))

	// Adjectives { "Pale", "Rotting" }
	L.SetGlobal("Adjectives", L.NewFunction(func(L *lua.LState) int {
		coll.adjectives = append(coll.adjectives, L.CheckTable(1))
		return 0
	}))

	// Event { name = "regeneration", kind = "regenerate", every = 60, amount = 2 }
	L.SetGlobal("Event", L.NewFunction(func(L *lua.LState) int {
		coll.events = append(coll.events, L.CheckTable(1))
		return 0
	}))
}
