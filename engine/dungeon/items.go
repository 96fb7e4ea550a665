package dungeon

import (
	"github.com/nathoo/dungeoncore/engine/combat"
	"github.com/nathoo/dungeoncore/engine/rng"
	"github.com/nathoo/dungeoncore/types"
)

// RoomItems rolls the loot for one room: with a 30% chance, one or two items.
func RoomItems(difficulty int, r *rng.RNG, c *types.Content) []types.Item {
	if !r.Chance(itemChance) {
		return nil
	}
	count := r.Between(1, 2)
	items := make([]types.Item, 0, count)
	for range count {
		if item, ok := RandomItem(difficulty, r, c); ok {
			items = append(items, item)
		}
	}
	return items
}

// RandomItem creates one item: the category is weighted (keys appear only
// above difficulty 2) and the template is uniform within the category.
func RandomItem(difficulty int, r *rng.RNG, c *types.Content) (types.Item, bool) {
	keyWeight := 0.0
	if difficulty > 2 {
		keyWeight = 1
	}
	kind, _ := rng.WeightedRandom(r, []rng.Weighted[types.ItemKind]{
		{Item: types.KindWeapon, Weight: 3},
		{Item: types.KindArmor, Weight: 2},
		{Item: types.KindPotion, Weight: 4},
		{Item: types.KindTreasure, Weight: 5},
		{Item: types.KindKey, Weight: keyWeight},
	})
	templates := c.ItemTemplates[kind]
	if len(templates) == 0 {
		return types.Item{}, false
	}
	return NewItem(kind, rng.Pick(r, templates), r), true
}

// NewItem instantiates a template. Weapons and armor are equipable in their
// matching slot; every generated item can be picked up.
func NewItem(kind types.ItemKind, t types.ItemTemplate, r *rng.RNG) types.Item {
	item := types.Item{
		ID:          combat.NewID(r),
		Name:        t.Name,
		Kind:        kind,
		Description: t.Description,
		Weight:      t.Weight,
		Value:       t.Value,
		Takeable:    true,
	}
	switch kind {
	case types.KindWeapon:
		item.Equipable = true
		item.Slot = types.SlotWeapon
		item.Weapon = &types.WeaponProps{Damage: t.Damage, AttackBonus: t.AttackBonus}
	case types.KindArmor:
		item.Equipable = true
		item.Slot = types.SlotArmor
		item.Armor = &types.ArmorProps{Protection: t.Protection}
	case types.KindPotion:
		item.Potion = &types.PotionProps{Effect: t.Effect, Power: t.Power}
	}
	return item
}
