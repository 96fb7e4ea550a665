// Package loader loads Lua content packs into Go structs at startup.
// The Lua VM is discarded after loading — zero Lua at runtime.
package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/dungeoncore/content"
	"github.com/nathoo/dungeoncore/types"
	lua "github.com/yuin/gopher-lua"
)

// rawList holds a keyed list of strings before compilation.
type rawList struct {
	key   string
	table *lua.LTable
}

// rawItem holds an item template table before compilation.
type rawItem struct {
	kind  types.ItemKind
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// stringList converts an array table of strings.
func stringList(tbl *lua.LTable) ([]string, error) {
	out := make([]string, 0, tbl.MaxN())
	for i := 1; i <= tbl.MaxN(); i++ {
		s, ok := tbl.RawGetInt(i).(lua.LString)
		if !ok {
			return nil, fmt.Errorf("entry %d is %s, want string", i, tbl.RawGetInt(i).Type())
		}
		out = append(out, string(s))
	}
	return out, nil
}

// compile applies the collected definitions on top of a copy of base.
// A pack that declares any entry of a table (a room type, an object group,
// an item kind, the monster list, the adjectives) replaces that table
// wholesale; events replace the base event of the same name.
func compile(coll *collector, base *types.Content) (*types.Content, error) {
	c := content.Clone(base)

	if coll.game != nil {
		if title := getString(coll.game, "title"); title != "" {
			c.Title = title
		}
		if intro := getString(coll.game, "intro"); intro != "" {
			c.Intro = intro
		}
	}

	for _, raw := range coll.rooms {
		list, err := stringList(raw.table)
		if err != nil {
			return nil, fmt.Errorf("rooms %q: %w", raw.key, err)
		}
		c.RoomDescriptions[raw.key] = list
	}

	for _, raw := range coll.objects {
		list, err := stringList(raw.table)
		if err != nil {
			return nil, fmt.Errorf("objects %q: %w", raw.key, err)
		}
		c.ObjectDescriptions[raw.key] = list
	}

	declared := map[types.ItemKind]bool{}
	for _, raw := range coll.items {
		if !declared[raw.kind] {
			declared[raw.kind] = true
			c.ItemTemplates[raw.kind] = nil
		}
		c.ItemTemplates[raw.kind] = append(c.ItemTemplates[raw.kind], compileTemplate(raw.table))
	}

	if len(coll.monsters) > 0 {
		c.Monsters = c.Monsters[:0:0]
		for _, tbl := range coll.monsters {
			c.Monsters = append(c.Monsters, types.MonsterArchetype{
				Name:         getString(tbl, "name"),
				HealthMod:    getInt(tbl, "health"),
				StrengthMod:  getInt(tbl, "strength"),
				DexterityMod: getInt(tbl, "dexterity"),
			})
		}
	}

	if len(coll.adjectives) > 0 {
		c.Adjectives = nil
		for _, tbl := range coll.adjectives {
			list, err := stringList(tbl)
			if err != nil {
				return nil, fmt.Errorf("adjectives: %w", err)
			}
			c.Adjectives = append(c.Adjectives, list...)
		}
	}

	for _, tbl := range coll.events {
		ev := types.EventDef{
			Name:   getString(tbl, "name"),
			Kind:   getString(tbl, "kind"),
			Every:  getInt(tbl, "every"),
			Amount: getInt(tbl, "amount"),
		}
		replaced := false
		for i := range c.Events {
			if c.Events[i].Name == ev.Name {
				c.Events[i] = ev
				replaced = true
			}
		}
		if !replaced {
			c.Events = append(c.Events, ev)
		}
	}

	return c, nil
}

func compileTemplate(tbl *lua.LTable) types.ItemTemplate {
	return types.ItemTemplate{
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Weight:      getNumber(tbl, "weight"),
		Value:       getInt(tbl, "value"),
		Damage:      getString(tbl, "damage"),
		AttackBonus: getInt(tbl, "attack_bonus"),
		Protection:  getInt(tbl, "protection"),
		Effect:      getString(tbl, "effect"),
		Power:       getInt(tbl, "power"),
	}
}

// sortedLuaFiles returns .lua files in a directory, with game.lua first
// and the rest sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
