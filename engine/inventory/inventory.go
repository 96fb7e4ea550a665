// Package inventory implements weight-bounded item containers shared by the
// player, monsters and room floors.
package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/dungeoncore/types"
)

var (
	// ErrNotFound is returned when an item is not in the container.
	ErrNotFound = errors.New("item not found")
	// ErrTooHeavy is returned when adding an item would exceed MaxWeight.
	ErrTooHeavy = errors.New("too heavy")
	// ErrDuplicate is returned when an item with the same ID is already held.
	ErrDuplicate = errors.New("duplicate item")
)

// Categories lists item categories in display order.
var Categories = []types.ItemKind{
	types.KindWeapon, types.KindArmor, types.KindPotion, types.KindTreasure, types.KindKey,
}

// TotalWeight sums the weights of items.
func TotalWeight(items []types.Item) float64 {
	total := 0.0
	for _, it := range items {
		total += it.Weight
	}
	return total
}

// WouldExceed reports whether adding item would push inv past its limit.
// Unbounded containers (MaxWeight 0) never exceed.
func WouldExceed(inv *types.Inventory, item types.Item) bool {
	if inv.MaxWeight <= 0 {
		return false
	}
	return TotalWeight(inv.Items)+item.Weight > inv.MaxWeight
}

// Add appends item to inv.
func Add(inv *types.Inventory, item types.Item) error {
	if _, ok := indexOf(inv, item.ID); ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, item.ID)
	}
	if WouldExceed(inv, item) {
		return fmt.Errorf("%w: %s", ErrTooHeavy, item.Name)
	}
	inv.Items = append(inv.Items, item)
	inv.Weight = TotalWeight(inv.Items)
	return nil
}

// Remove takes the item with the given ID out of inv and returns it.
func Remove(inv *types.Inventory, id string) (types.Item, error) {
	i, ok := indexOf(inv, id)
	if !ok {
		return types.Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	item := inv.Items[i]
	inv.Items = append(inv.Items[:i:i], inv.Items[i+1:]...)
	inv.Weight = TotalWeight(inv.Items)
	return item, nil
}

// Transfer moves the item with the given ID from one container to another.
// On failure neither container is modified.
func Transfer(from, to *types.Inventory, id string) (types.Item, error) {
	i, ok := indexOf(from, id)
	if !ok {
		return types.Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	item := from.Items[i]
	if err := Add(to, item); err != nil {
		return types.Item{}, err
	}
	if _, err := Remove(from, id); err != nil {
		return types.Item{}, err
	}
	return item, nil
}

// FindByID returns a pointer to the item with the given ID, or nil.
// The pointer is only valid until inv is next modified.
func FindByID(inv *types.Inventory, id string) *types.Item {
	if i, ok := indexOf(inv, id); ok {
		return &inv.Items[i]
	}
	return nil
}

// FindByName looks an item up by name, case-insensitively. An exact match
// wins over a substring match; otherwise the first substring match is used.
func FindByName(inv *types.Inventory, name string) *types.Item {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}
	for i := range inv.Items {
		if strings.ToLower(inv.Items[i].Name) == name {
			return &inv.Items[i]
		}
	}
	for i := range inv.Items {
		if strings.Contains(strings.ToLower(inv.Items[i].Name), name) {
			return &inv.Items[i]
		}
	}
	return nil
}

// OrganizeByCategory groups items by kind. Unknown kinds go under "misc".
func OrganizeByCategory(items []types.Item) map[types.ItemKind][]types.Item {
	out := map[types.ItemKind][]types.Item{}
	for _, it := range items {
		kind := it.Kind
		if !isKnownKind(kind) {
			kind = "misc"
		}
		out[kind] = append(out[kind], it)
	}
	return out
}

// Describe renders a one-line description of an item.
func Describe(item types.Item) string {
	var b strings.Builder
	b.WriteString(item.Name)
	if item.Weight > 0 {
		fmt.Fprintf(&b, " (Weight: %s)", FormatWeight(item.Weight))
	}
	if item.Value > 0 {
		fmt.Fprintf(&b, " (Value: %d gold)", item.Value)
	}
	switch item.Kind {
	case types.KindWeapon:
		if item.Weapon != nil {
			fmt.Fprintf(&b, " (Damage: %s)", item.Weapon.Damage)
		}
	case types.KindArmor:
		if item.Armor != nil {
			fmt.Fprintf(&b, " (Protection: %d)", item.Armor.Protection)
		}
	case types.KindPotion:
		if item.Potion != nil {
			fmt.Fprintf(&b, " (Effect: %s)", potionEffectText(item.Potion.Effect))
		}
	}
	if item.Equipped {
		b.WriteString(" [Equipped]")
	}
	return b.String()
}

// FormatWeight prints a weight without trailing zeros.
func FormatWeight(w float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", w), "0"), ".")
}

func potionEffectText(effect string) string {
	switch effect {
	case "heal":
		return "Restores health"
	case "strength":
		return "Increases strength"
	case "cure":
		return "Cures poison"
	default:
		return effect
	}
}

func isKnownKind(kind types.ItemKind) bool {
	for _, k := range Categories {
		if k == kind {
			return true
		}
	}
	return false
}

func indexOf(inv *types.Inventory, id string) (int, bool) {
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			return i, true
		}
	}
	return -1, false
}
