package parser

import (
	"fmt"
	"strings"

	"github.com/nathoo/dungeoncore/types"
)

// Registry maps verbs and their aliases to command definitions.
type Registry struct {
	defs  []types.CommandDef
	index map[string]int
}

// NewRegistry builds a registry. Names and aliases are matched
// case-insensitively and must be unique across all definitions.
func NewRegistry(defs ...types.CommandDef) (*Registry, error) {
	r := &Registry{index: map[string]int{}}
	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("parser: command with empty name")
		}
		i := len(r.defs)
		r.defs = append(r.defs, def)
		for _, word := range append([]string{def.Name}, def.Aliases...) {
			key := strings.ToLower(word)
			if prev, dup := r.index[key]; dup {
				return nil, fmt.Errorf("parser: %q of %q already registered by %q", word, def.Name, r.defs[prev].Name)
			}
			r.index[key] = i
		}
	}
	return r, nil
}

// Lookup finds the definition whose name or alias equals word.
func (r *Registry) Lookup(word string) (types.CommandDef, bool) {
	i, ok := r.index[strings.ToLower(word)]
	if !ok {
		return types.CommandDef{}, false
	}
	return r.defs[i], true
}

// Commands returns the definitions in registration order.
func (r *Registry) Commands() []types.CommandDef {
	out := make([]types.CommandDef, len(r.defs))
	copy(out, r.defs)
	return out
}

// DefaultCommands is the built-in command table.
var DefaultCommands = []types.CommandDef{
	{
		Name: "look", Category: types.CategoryInteraction, TimeCost: 2,
		Description: "Look around the room, in a direction or at an item.",
		Usage:       "look [direction|item]", Aliases: []string{"l"},
	},
	{
		Name: "examine", Category: types.CategoryInteraction, TimeCost: 3,
		Description: "Examine an item closely.",
		Usage:       "examine <item>", Aliases: []string{"x", "inspect", "check"},
	},
	{
		Name: "go", Category: types.CategoryMovement, TimeCost: 10,
		Description: "Move in a direction.",
		Usage:       "go <north|south|east|west>", Aliases: []string{"walk", "move", "run", "head"},
	},
	{
		Name: "take", Category: types.CategoryInteraction, TimeCost: 3,
		Description: "Pick up an item.",
		Usage:       "take <item>", Aliases: []string{"get", "grab", "pickup"},
	},
	{
		Name: "drop", Category: types.CategoryInteraction, TimeCost: 2,
		Description: "Drop an item from your inventory.",
		Usage:       "drop <item>", Aliases: []string{"discard"},
	},
	{
		Name: "equip", Category: types.CategoryInteraction, TimeCost: 5,
		Description: "Equip a weapon or armor.",
		Usage:       "equip <item>", Aliases: []string{"wield", "wear"},
	},
	{
		Name: "unequip", Category: types.CategoryInteraction, TimeCost: 5,
		Description: "Unequip an item or a slot.",
		Usage:       "unequip <item|weapon|armor|accessory>", Aliases: []string{"remove"},
	},
	{
		Name: "use", Category: types.CategoryInteraction, TimeCost: 4,
		Description: "Use an item, such as drinking a potion.",
		Usage:       "use <item>", Aliases: []string{"drink", "quaff", "consume"},
	},
	{
		Name: "attack", Category: types.CategoryCombat, TimeCost: 6,
		Description: "Attack a monster in the room.",
		Usage:       "attack <monster>", Aliases: []string{"hit", "fight", "kill", "strike"},
	},
	{
		Name: "inventory", Category: types.CategorySystem, TimeCost: 0,
		Description: "Show what you are carrying.",
		Usage:       "inventory", Aliases: []string{"inv", "i"},
	},
	{
		Name: "stats", Category: types.CategorySystem, TimeCost: 0,
		Description: "Show your character's statistics.",
		Usage:       "stats", Aliases: []string{"status"},
	},
	{
		Name: "help", Category: types.CategorySystem, TimeCost: 0,
		Description: "List commands or explain one.",
		Usage:       "help [command]", Aliases: []string{"?"},
	},
	{
		Name: "wait", Category: types.CategorySystem, TimeCost: 30,
		Description: "Let some time pass.",
		Usage:       "wait", Aliases: []string{"z", "rest"},
	},
}

// DefaultRegistry returns a registry of DefaultCommands.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultCommands...)
	if err != nil {
		panic(err)
	}
	return r
}
