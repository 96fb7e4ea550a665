package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/dungeoncore/engine/events"
	"github.com/nathoo/dungeoncore/engine/inventory"
	"github.com/nathoo/dungeoncore/engine/rng"
	"github.com/nathoo/dungeoncore/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// Room types the generator can produce.
var knownRoomTypes = map[string]bool{
	"entrance": true, "corridor": true, "chamber": true, "treasury": true,
	"armory": true, "library": true, "ritual": true, "prison": true,
	"crypt": true, "cavern": true, "forge": true, "laboratory": true,
	"lair": true, "trap": true, "puzzle": true,
}

var validPotionEffects = map[string]bool{
	"heal":     true,
	"strength": true,
	"cure":     true,
}

var validEventKinds = map[string]bool{
	events.KindRegenerate: true,
	events.KindWander:     true,
}

// validate checks compiled content for consistency. Errors make the content
// unusable; warnings flag content that loads but will never be seen.
func validate(c *types.Content) *ValidationError {
	ve := &ValidationError{}

	if c.Title == "" {
		ve.Errors = append(ve.Errors, "Game.title is required")
	}

	// Unknown room types fall back to chamber descriptions.
	if len(c.RoomDescriptions["chamber"]) == 0 {
		ve.Errors = append(ve.Errors, `room type "chamber" needs at least one description`)
	}
	for _, kind := range sortedKeys(c.RoomDescriptions) {
		if len(c.RoomDescriptions[kind]) == 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("room type %q has no descriptions", kind))
		}
		if !knownRoomTypes[kind] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("room type %q is never generated", kind))
		}
	}

	for _, kind := range inventory.Categories {
		templates := c.ItemTemplates[kind]
		if len(templates) == 0 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("no %s templates: no %s items will be generated", kind, kind))
		}
		for i, t := range templates {
			validateTemplate(kind, i, t, ve)
		}
	}

	if len(c.Monsters) == 0 {
		ve.Errors = append(ve.Errors, "at least one Monster is required")
	}
	for i, m := range c.Monsters {
		if m.Name == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf("monster %d has no name", i+1))
		}
	}

	seen := map[string]bool{}
	for _, ev := range c.Events {
		switch {
		case ev.Name == "":
			ve.Errors = append(ve.Errors, "event without a name")
		case seen[ev.Name]:
			ve.Errors = append(ve.Errors, fmt.Sprintf("event %q defined twice", ev.Name))
		}
		seen[ev.Name] = true
		if !validEventKinds[ev.Kind] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("event %q has unknown kind %q", ev.Name, ev.Kind))
		}
		if ev.Every <= 0 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf("event %q has no period and never fires", ev.Name))
		}
	}

	return ve
}

func validateTemplate(kind types.ItemKind, i int, t types.ItemTemplate, ve *ValidationError) {
	name := t.Name
	if name == "" {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%s %d has no name", kind, i+1))
		name = fmt.Sprintf("%s %d", kind, i+1)
	}
	if t.Weight < 0 || t.Value < 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf("%s %q has negative weight or value", kind, name))
	}

	switch kind {
	case types.KindWeapon:
		if _, _, err := rng.ParseDice(t.Damage); err != nil {
			ve.Errors = append(ve.Errors, fmt.Sprintf("weapon %q: %v", name, err))
		}
	case types.KindArmor:
		if t.Protection < 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("armor %q has negative protection", name))
		}
	case types.KindPotion:
		if !validPotionEffects[t.Effect] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("potion %q has unknown effect %q", name, t.Effect))
		}
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
