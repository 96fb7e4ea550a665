package state

import (
	"errors"
	"fmt"

	"github.com/nathoo/dungeoncore/engine/combat"
	"github.com/nathoo/dungeoncore/engine/dungeon"
	"github.com/nathoo/dungeoncore/engine/inventory"
	"github.com/nathoo/dungeoncore/types"
)

var (
	ErrNoExit          = errors.New("no exit in that direction")
	ErrNotHere         = errors.New("not here")
	ErrNotTakeable     = errors.New("cannot be taken")
	ErrNotCarried      = errors.New("not carried")
	ErrNotEquipable    = errors.New("cannot be equipped")
	ErrEquipped        = errors.New("currently equipped")
	ErrNothingEquipped = errors.New("nothing equipped")
	ErrUnknownRoom     = errors.New("unknown room")
	ErrUnknownStat     = errors.New("unknown stat")
)

// MovePlayer follows the current room's exit in dir and returns a copy of
// the room entered.
func (st *Store) MovePlayer(dir string) (types.Room, error) {
	target, ok := st.room.Exits[dir]
	if !ok {
		return types.Room{}, fmt.Errorf("%w: %s", ErrNoExit, dir)
	}
	next := dungeon.FindRoom(&st.s.Dungeon, target)
	if next == nil {
		return types.Room{}, fmt.Errorf("%w: %s", ErrUnknownRoom, target)
	}
	next.Visited = true
	st.room = next
	st.s.CurrentRoom = next.ID
	return cloneRoom(*next), nil
}

// TakeItem moves a takeable item from the room floor into the player's pack.
func (st *Store) TakeItem(id string) (types.Item, error) {
	item := inventory.FindByID(&st.room.Items, id)
	if item == nil {
		return types.Item{}, fmt.Errorf("%w: %s", ErrNotHere, id)
	}
	if !item.Takeable {
		return types.Item{}, fmt.Errorf("%s %w", item.Name, ErrNotTakeable)
	}
	moved, err := inventory.Transfer(&st.room.Items, &st.s.Player.Inventory, id)
	if err != nil {
		return types.Item{}, err
	}
	return cloneItem(moved), nil
}

// DropItem moves an unequipped item from the pack to the room floor.
func (st *Store) DropItem(id string) (types.Item, error) {
	item := inventory.FindByID(&st.s.Player.Inventory, id)
	if item == nil {
		return types.Item{}, fmt.Errorf("%w: %s", ErrNotCarried, id)
	}
	if item.Equipped {
		return types.Item{}, fmt.Errorf("%s is %w", item.Name, ErrEquipped)
	}
	moved, err := inventory.Transfer(&st.s.Player.Inventory, &st.room.Items, id)
	if err != nil {
		return types.Item{}, err
	}
	return cloneItem(moved), nil
}

// Equip equips a carried item in its slot, first unequipping whatever held
// that slot. Returns the equipped item and the replaced one, if any.
func (st *Store) Equip(id string) (equipped types.Item, replaced *types.Item, err error) {
	p := &st.s.Player
	item := inventory.FindByID(&p.Inventory, id)
	if item == nil {
		return types.Item{}, nil, fmt.Errorf("%w: %s", ErrNotCarried, id)
	}
	if !item.Equipable || item.Slot == types.SlotNone {
		return types.Item{}, nil, fmt.Errorf("%s %w", item.Name, ErrNotEquipable)
	}
	if item.Equipped {
		return cloneItem(*item), nil, nil
	}

	if prev, err := st.Unequip(item.Slot); err == nil {
		replaced = &prev
	}
	item.Equipped = true
	setSlot(&p.Equipment, item.Slot, item.ID)
	return cloneItem(*item), replaced, nil
}

// Unequip clears a slot and returns the item that was in it.
func (st *Store) Unequip(slot types.Slot) (types.Item, error) {
	p := &st.s.Player
	id := slotID(p.Equipment, slot)
	if id == "" {
		return types.Item{}, fmt.Errorf("%w: %s", ErrNothingEquipped, slot)
	}
	setSlot(&p.Equipment, slot, "")
	item := inventory.FindByID(&p.Inventory, id)
	if item == nil {
		return types.Item{}, fmt.Errorf("%w: %s", ErrNotCarried, id)
	}
	item.Equipped = false
	return cloneItem(*item), nil
}

// ConsumeItem removes an unequipped item from the pack for good.
func (st *Store) ConsumeItem(id string) (types.Item, error) {
	p := &st.s.Player
	item := inventory.FindByID(&p.Inventory, id)
	if item == nil {
		return types.Item{}, fmt.Errorf("%w: %s", ErrNotCarried, id)
	}
	if item.Equipped {
		return types.Item{}, fmt.Errorf("%s is %w", item.Name, ErrEquipped)
	}
	removed, err := inventory.Remove(&p.Inventory, id)
	if err != nil {
		return types.Item{}, err
	}
	return cloneItem(removed), nil
}

// Heal restores player health up to the maximum and returns the amount healed.
func (st *Store) Heal(amount int) int {
	return combat.Heal(&st.s.Player.Combatant, amount)
}

// BoostStat raises one of the player's attributes.
func (st *Store) BoostStat(stat string, amount int) error {
	s := &st.s.Player.Stats
	switch stat {
	case "strength":
		s.Strength += amount
	case "dexterity":
		s.Dexterity += amount
	case "intelligence":
		s.Intelligence += amount
	case "constitution":
		s.Constitution += amount
	default:
		return fmt.Errorf("%w: %s", ErrUnknownStat, stat)
	}
	return nil
}

// DamagePlayer lowers player health, clamped at zero. Returns true if the
// player died.
func (st *Store) DamagePlayer(amount int) bool {
	return combat.TakeDamage(&st.s.Player.Combatant, amount)
}

// MutateMonster runs fn with the live monster id from the current room and
// the live player. The pointers are valid only for the duration of fn.
func (st *Store) MutateMonster(id string, fn func(m *types.Monster, p *types.Player)) error {
	for i := range st.room.Monsters {
		if st.room.Monsters[i].ID == id {
			fn(&st.room.Monsters[i], &st.s.Player)
			return nil
		}
	}
	return fmt.Errorf("%w: monster %s", ErrNotHere, id)
}

// RemoveMonster takes a monster out of the current room.
func (st *Store) RemoveMonster(id string) (types.Monster, error) {
	for i, m := range st.room.Monsters {
		if m.ID == id {
			st.room.Monsters = append(st.room.Monsters[:i], st.room.Monsters[i+1:]...)
			return m, nil
		}
	}
	return types.Monster{}, fmt.Errorf("%w: monster %s", ErrNotHere, id)
}

// SpawnMonster places a monster in a room.
func (st *Store) SpawnMonster(roomID string, m types.Monster) error {
	r := dungeon.FindRoom(&st.s.Dungeon, roomID)
	if r == nil {
		return fmt.Errorf("%w: %s", ErrUnknownRoom, roomID)
	}
	r.Monsters = append(r.Monsters, cloneMonster(m))
	return nil
}

// DropOnFloor adds items to the current room's floor.
func (st *Store) DropOnFloor(items ...types.Item) error {
	for _, it := range items {
		if err := inventory.Add(&st.room.Items, cloneItem(it)); err != nil {
			return err
		}
	}
	return nil
}

// AwardExperience grants the player experience for a defeated monster.
func (st *Store) AwardExperience(m types.Monster) combat.ExperienceResult {
	return combat.AwardExperience(&st.s.Player, &m)
}

// TrainSkill raises the player's combat skill.
func (st *Store) TrainSkill(amount int) {
	st.s.Player.Skills.Combat += amount
}

// RegenerateMonsters restores health to every living monster in the dungeon.
func (st *Store) RegenerateMonsters(amount int) {
	for i := range st.s.Dungeon.Rooms {
		for j := range st.s.Dungeon.Rooms[i].Monsters {
			m := &st.s.Dungeon.Rooms[i].Monsters[j]
			if m.Health > 0 {
				combat.Heal(&m.Combatant, amount)
			}
		}
	}
}

// AdvanceTime spends seconds of game time on a command: the clock moves,
// the player becomes ready at the new time and the turn counter ticks.
func (st *Store) AdvanceTime(seconds int) int {
	st.s.Elapsed += max(0, seconds)
	st.s.Player.ReadyAt = st.s.Elapsed
	st.s.TurnCount++
	return st.s.Elapsed
}

// SetReadyAt delays the player's next action until t.
func (st *Store) SetReadyAt(t int) {
	st.s.Player.ReadyAt = t
}

// SetFlag sets a flag.
func (st *Store) SetFlag(name string, v bool) {
	st.s.Flags[name] = v
}

// SetTimers replaces the event timers.
func (st *Store) SetTimers(timers []types.Timer) {
	st.s.Timers = append([]types.Timer(nil), timers...)
}

// SetRNG records the session RNG's seed and position for saving.
func (st *Store) SetRNG(seed, position int64) {
	st.s.RNGSeed = seed
	st.s.RNGPosition = position
}

// LogCommand appends raw input to the command log.
func (st *Store) LogCommand(raw string) {
	st.s.CommandLog = append(st.s.CommandLog, raw)
}

func slotID(e types.Equipment, slot types.Slot) string {
	switch slot {
	case types.SlotWeapon:
		return e.Weapon
	case types.SlotArmor:
		return e.Armor
	case types.SlotAccessory:
		return e.Accessory
	}
	return ""
}

func setSlot(e *types.Equipment, slot types.Slot, id string) {
	switch slot {
	case types.SlotWeapon:
		e.Weapon = id
	case types.SlotArmor:
		e.Armor = id
	case types.SlotAccessory:
		e.Accessory = id
	}
}
