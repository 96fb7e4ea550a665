package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nathoo/dungeoncore/engine/inventory"
	"github.com/nathoo/dungeoncore/types"
)

var categoryLabels = map[types.ItemKind]string{
	types.KindWeapon:   "Weapons",
	types.KindArmor:    "Armor",
	types.KindPotion:   "Potions",
	types.KindTreasure: "Treasure",
	types.KindKey:      "Keys",
	"misc":             "Other",
}

func (s *Session) doInventory(t *turn) error {
	p := s.store.Player()
	if len(p.Inventory.Items) == 0 {
		t.say("Your inventory is empty.")
		return nil
	}

	t.say("You are carrying:")
	groups := inventory.OrganizeByCategory(p.Inventory.Items)
	for _, kind := range append(slices.Clone(inventory.Categories), "misc") {
		items := groups[kind]
		if len(items) == 0 {
			continue
		}
		t.say("%s:", categoryLabels[kind])
		for _, it := range items {
			line := "- " + it.Name
			if it.Equipped {
				line += " (equipped)"
			}
			t.say("%s (%s weight)", line, inventory.FormatWeight(it.Weight))
		}
	}
	t.say("Total weight: %s/%s",
		inventory.FormatWeight(inventory.TotalWeight(p.Inventory.Items)),
		inventory.FormatWeight(p.Inventory.MaxWeight))
	return nil
}

func (s *Session) doStats(t *turn) error {
	p := s.store.Player()
	t.say("Name: %s", p.Name)
	t.say("Level: %d", p.Level)
	t.say("Experience: %d/%d", p.Experience, p.ExperienceToNextLevel)
	t.say("Health: %d/%d", p.Health, p.MaxHealth)
	t.say("")
	t.say("Stats:")
	t.say("  Strength: %d", p.Stats.Strength)
	t.say("  Dexterity: %d", p.Stats.Dexterity)
	t.say("  Intelligence: %d", p.Stats.Intelligence)
	t.say("  Constitution: %d", p.Stats.Constitution)
	t.say("")
	t.say("Skills:")
	t.say("  Combat: %d", p.Skills.Combat)
	t.say("  Magic: %d", p.Skills.Magic)
	t.say("  Stealth: %d", p.Skills.Stealth)
	t.say("  Perception: %d", p.Skills.Perception)
	return nil
}

// doHelp lists every command, or explains one looked up by name or alias.
func (s *Session) doHelp(t *turn) error {
	if t.cmd.Args == "" {
		t.say("Available commands:")
		for _, def := range s.registry.Commands() {
			t.say("  %-10s %s", def.Name, def.Description)
		}
		return nil
	}

	topic := strings.Fields(t.cmd.Args)[0]
	def, ok := s.registry.Lookup(topic)
	if !ok {
		t.say("No help available for '%s'. Type 'help' for all commands.", topic)
		return nil
	}
	t.say("%s command:", strings.ToUpper(def.Name))
	t.say("%s", def.Description)
	t.say("Usage: %s", def.Usage)
	if len(def.Aliases) > 0 {
		t.say("Aliases: %s", strings.Join(def.Aliases, ", "))
	}
	if def.TimeCost > 0 {
		t.say("Takes %s.", seconds(def.TimeCost))
	}
	return nil
}

func (s *Session) doWait(t *turn) error {
	t.say("Time passes...")
	return nil
}

func seconds(n int) string {
	if n == 1 {
		return "1 second"
	}
	return fmt.Sprintf("%d seconds", n)
}
