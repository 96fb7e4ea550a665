package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/dungeoncore/engine/inventory"
	"github.com/nathoo/dungeoncore/engine/resolve"
	"github.com/nathoo/dungeoncore/types"
)

func (s *Session) doTake(t *turn) error {
	if t.cmd.Args == "" {
		return invalid("Take what?")
	}
	room := s.store.CurrentRoom()
	if len(room.Items.Items) == 0 {
		return invalid("There's nothing here to take.")
	}
	item, err := resolve.Item(room.Items.Items, t.cmd.Args)
	if err != nil {
		return notFound(err, fmt.Sprintf("You don't see any '%s' here.", t.cmd.Args))
	}
	if !item.Takeable {
		return invalid("You cannot take the %s.", item.Name)
	}
	p := s.store.Player()
	if inventory.WouldExceed(&p.Inventory, item) {
		return invalid("The %s is too heavy to carry with your current load.", item.Name)
	}
	if _, err := s.store.TakeItem(item.ID); err != nil {
		return err
	}
	t.say("You take the %s.", item.Name)
	return nil
}

func (s *Session) doDrop(t *turn) error {
	if t.cmd.Args == "" {
		return invalid("Drop what?")
	}
	p := s.store.Player()
	if len(p.Inventory.Items) == 0 {
		return invalid("You aren't carrying anything.")
	}
	item, err := resolve.Item(p.Inventory.Items, t.cmd.Args)
	if err != nil {
		return notFound(err, fmt.Sprintf("You don't have any '%s'.", t.cmd.Args))
	}
	if item.Equipped {
		return invalid("You need to unequip the %s first.", item.Name)
	}
	if _, err := s.store.DropItem(item.ID); err != nil {
		return err
	}
	t.say("You drop the %s.", item.Name)
	return nil
}

func (s *Session) doEquip(t *turn) error {
	if t.cmd.Args == "" {
		return invalid("Equip what?")
	}
	p := s.store.Player()
	if len(p.Inventory.Items) == 0 {
		return invalid("You have nothing to equip.")
	}
	item, err := resolve.Item(p.Inventory.Items, t.cmd.Args)
	if err != nil {
		return notFound(err, fmt.Sprintf("You don't have any '%s'.", t.cmd.Args))
	}
	if !item.Equipable || item.Slot == types.SlotNone {
		return invalid("You cannot equip the %s.", item.Name)
	}
	if item.Equipped {
		return invalid("You already have the %s equipped.", item.Name)
	}
	_, replaced, err := s.store.Equip(item.ID)
	if err != nil {
		return err
	}
	if replaced != nil {
		t.say("You unequip the %s.", replaced.Name)
	}
	t.say("You equip the %s.", item.Name)
	return nil
}

// doUnequip accepts either an item name or a slot name.
func (s *Session) doUnequip(t *turn) error {
	if t.cmd.Args == "" {
		return invalid("Unequip what?")
	}
	switch slot := types.Slot(strings.ToLower(t.cmd.Args)); slot {
	case types.SlotWeapon, types.SlotArmor, types.SlotAccessory:
		item, err := s.store.Unequip(slot)
		if err != nil {
			return invalid("You have nothing equipped as %s.", slot)
		}
		t.say("You unequip the %s.", item.Name)
		return nil
	}

	var worn []types.Item
	for _, it := range s.store.Player().Inventory.Items {
		if it.Equipped {
			worn = append(worn, it)
		}
	}
	item, err := resolve.Item(worn, t.cmd.Args)
	if err != nil {
		return notFound(err, fmt.Sprintf("You don't have any '%s' equipped.", t.cmd.Args))
	}
	if _, err := s.store.Unequip(item.Slot); err != nil {
		return err
	}
	t.say("You unequip the %s.", item.Name)
	return nil
}

func (s *Session) doUse(t *turn) error {
	if t.cmd.Args == "" {
		return invalid("Use what?")
	}
	p := s.store.Player()
	if len(p.Inventory.Items) == 0 {
		return invalid("You have nothing to use.")
	}
	item, err := resolve.Item(p.Inventory.Items, t.cmd.Args)
	if err != nil {
		return notFound(err, fmt.Sprintf("You don't have any '%s'.", t.cmd.Args))
	}

	switch {
	case item.Kind == types.KindPotion && item.Potion != nil:
		return s.drink(t, item)
	case item.Kind == types.KindKey:
		return invalid("You try to use the %s, but there's nothing to unlock here.", item.Name)
	}
	return invalid("You can't figure out how to use the %s.", item.Name)
}

func (s *Session) drink(t *turn, item types.Item) error {
	effect := item.Potion.Effect
	switch effect {
	case "heal", "strength", "cure":
	default:
		return invalid("You can't figure out how to use the %s.", item.Name)
	}
	if _, err := s.store.ConsumeItem(item.ID); err != nil {
		return err
	}
	t.say("You use the %s.", item.Name)

	switch effect {
	case "heal":
		t.say("You feel refreshed and recover %d health.", s.store.Heal(item.Potion.Power))
	case "strength":
		if err := s.store.BoostStat("strength", item.Potion.Power); err != nil {
			return err
		}
		t.say("You feel stronger! Your strength increases by %d.", item.Potion.Power)
	case "cure":
		t.say("You feel purified. Any poison has been neutralized.")
	}
	return nil
}

// doExamine describes an item on the floor or in the pack, or a monster.
func (s *Session) doExamine(t *turn) error {
	if t.cmd.Args == "" {
		return invalid("Examine what?")
	}
	room := s.store.CurrentRoom()
	items := append(s.store.Player().Inventory.Items, room.Items.Items...)
	item, err := resolve.Item(items, t.cmd.Args)
	if err == nil {
		t.say("%s", inventory.Describe(item))
		if item.Description != "" {
			t.say("%s", item.Description)
		}
		return nil
	}
	var amb *resolve.AmbiguityError
	if errors.As(err, &amb) {
		return &ValidationError{Reason: amb.Error()}
	}
	m, err := resolve.Monster(room.Monsters, t.cmd.Args)
	if err != nil {
		return notFound(err, fmt.Sprintf("You don't see any '%s' here.", t.cmd.Args))
	}
	t.out = append(t.out, describeMonster(m)...)
	return nil
}
