package combat

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/nathoo/dungeoncore/engine/rng"
	"github.com/nathoo/dungeoncore/types"
)

// GenerateMonster builds a monster scaled to difficulty from the content's
// monster table. Difficulty below 1 is treated as 1.
func GenerateMonster(difficulty int, r *rng.RNG, c *types.Content) types.Monster {
	if len(c.Monsters) == 0 {
		panic("combat: GenerateMonster precondition violated: empty monster table")
	}
	difficulty = max(1, difficulty)

	baseHealth := 20 + 10*difficulty
	baseStrength := 10 + difficulty/2
	baseDexterity := 10 + difficulty/3

	arch := c.Monsters[r.Intn(len(c.Monsters))]
	name := arch.Name
	if len(c.Adjectives) > 0 {
		name = c.Adjectives[r.Intn(len(c.Adjectives))] + " " + arch.Name
	}

	health := max(1, baseHealth+arch.HealthMod)
	m := types.Monster{
		Combatant: types.Combatant{
			Name:      name,
			Health:    health,
			MaxHealth: health,
			Level:     difficulty,
			Stats: types.Stats{
				Strength:     baseStrength + arch.StrengthMod,
				Dexterity:    baseDexterity + arch.DexterityMod,
				Intelligence: 8,
				Constitution: 8,
			},
		},
		ID:        NewID(r),
		Archetype: arch.Name,
		XPReward:  10 * difficulty,
	}

	claws := types.Item{
		ID:        NewID(r),
		Name:      "Claws",
		Kind:      types.KindWeapon,
		Equipable: true,
		Slot:      types.SlotWeapon,
		Equipped:  true,
		Weapon: &types.WeaponProps{
			Damage:      fmt.Sprintf("1d%d", 4+difficulty/2),
			AttackBonus: difficulty / 2,
		},
	}
	m.Inventory.Items = []types.Item{claws}
	m.Equipment.Weapon = claws.ID
	return m
}

// GenerateBoss builds the guardian of a dungeon: a monster two difficulty
// levels above the dungeon's own.
func GenerateBoss(difficulty int, r *rng.RNG, c *types.Content) types.Monster {
	m := GenerateMonster(difficulty+2, r, c)
	m.Name = m.Archetype + " Warlord"
	m.Boss = true
	m.XPReward *= 2
	return m
}

// NewID returns a UUID drawn from r, so IDs are reproducible per seed.
func NewID(r *rng.RNG) string {
	return uuid.Must(uuid.NewRandomFromReader(r)).String()
}
