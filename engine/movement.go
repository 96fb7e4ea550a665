package engine

import (
	"fmt"

	"github.com/nathoo/dungeoncore/engine/inventory"
	"github.com/nathoo/dungeoncore/engine/resolve"
	"github.com/nathoo/dungeoncore/types"
)

func (s *Session) doGo(t *turn) error {
	if t.cmd.Args == "" {
		return invalid("Go where? Specify a direction (north, south, east, west).")
	}
	dir, ok := direction(t.cmd.Args)
	if !ok {
		return invalid("You can't go %s from here.", t.cmd.Args)
	}
	room, err := s.store.MovePlayer(dir)
	if err != nil {
		return invalid("You can't go %s from here.", dir)
	}
	t.say("You go %s.", dir)
	t.out = append(t.out, describeRoom(&room)...)
	return nil
}

// doLook looks around, down an exit, or at something in the room or pack.
func (s *Session) doLook(t *turn) error {
	room := s.store.CurrentRoom()
	if t.cmd.Args == "" {
		t.out = append(t.out, describeRoom(&room)...)
		return nil
	}

	if dir, ok := direction(t.cmd.Args); ok {
		if _, exit := room.Exits[dir]; exit {
			t.say("You see a path leading %s.", dir)
		} else {
			t.say("There is no path leading %s.", dir)
		}
		return nil
	}

	if m, err := resolve.Monster(room.Monsters, t.cmd.Args); err == nil {
		t.out = append(t.out, describeMonster(m)...)
		return nil
	}

	items := append(room.Items.Items, s.store.Player().Inventory.Items...)
	item, err := resolve.Item(items, t.cmd.Args)
	if err != nil {
		return notFound(err, fmt.Sprintf("You don't see any '%s' here.", t.cmd.Args))
	}
	t.say("%s", item.Name)
	if item.Description != "" {
		t.say("%s", item.Description)
	} else {
		t.say("Nothing special about it.")
	}
	t.say("It weighs %s units.", inventory.FormatWeight(item.Weight))
	return nil
}

func describeMonster(m types.Monster) []string {
	out := []string{
		fmt.Sprintf("%s (level %d)", m.Name, m.Level),
		fmt.Sprintf("Health: %d/%d", m.Health, m.MaxHealth),
	}
	if m.Boss {
		out = append(out, "It guards this level of the dungeon.")
	}
	if m.Health*4 <= m.MaxHealth {
		out = append(out, "It is badly wounded.")
	}
	return out
}
