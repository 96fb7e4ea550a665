package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/dungeoncore/engine/dungeon"
	"github.com/nathoo/dungeoncore/engine/resolve"
	"github.com/nathoo/dungeoncore/types"
)

// turn collects the output of one command.
type turn struct {
	cmd     types.Command
	out     []string
	stagger bool // a monster's critical hit knocked the player off balance
}

func (t *turn) say(format string, args ...any) {
	t.out = append(t.out, fmt.Sprintf(format, args...))
}

// handler validates a command against the world and, if it is allowed,
// applies it. A handler that returns an error must not have changed anything.
type handler func(s *Session, t *turn) error

var handlers map[string]handler

func init() {
	handlers = map[string]handler{
		"go":        (*Session).doGo,
		"look":      (*Session).doLook,
		"examine":   (*Session).doExamine,
		"take":      (*Session).doTake,
		"drop":      (*Session).doDrop,
		"equip":     (*Session).doEquip,
		"unequip":   (*Session).doUnequip,
		"use":       (*Session).doUse,
		"attack":    (*Session).doAttack,
		"inventory": (*Session).doInventory,
		"stats":     (*Session).doStats,
		"help":      (*Session).doHelp,
		"wait":      (*Session).doWait,
	}
}

var shortDirections = map[string]string{
	"n": "north", "s": "south", "e": "east", "w": "west",
}

// direction normalizes a direction word. ok is false for anything that is
// not a cardinal direction.
func direction(word string) (string, bool) {
	word = strings.ToLower(strings.TrimSpace(word))
	if full, ok := shortDirections[word]; ok {
		return full, true
	}
	for _, d := range dungeon.Directions {
		if d == word {
			return d, true
		}
	}
	return word, false
}

// describeRoom renders what the player sees on entering or looking around.
func describeRoom(room *types.Room) []string {
	out := []string{room.Name, room.Description}
	if room.Detail != "" {
		out = append(out, room.Detail)
	}
	for _, m := range room.Monsters {
		out = append(out, fmt.Sprintf("%s is here!", article(m.Name)))
	}
	if exits := dungeon.ExitNames(room); len(exits) > 0 {
		out = append(out, "Exits: "+strings.Join(exits, ", "))
	} else {
		out = append(out, "There are no obvious exits.")
	}
	if len(room.Items.Items) > 0 {
		names := make([]string, len(room.Items.Items))
		for i, it := range room.Items.Items {
			names[i] = it.Name
		}
		out = append(out, "You see: "+strings.Join(names, ", "))
	}
	return out
}

func article(name string) string {
	if name == "" {
		return name
	}
	switch strings.ToLower(name[:1]) {
	case "a", "e", "i", "o", "u":
		return "An " + name
	}
	return "A " + name
}

// notFound turns a resolve failure into a validation error, using miss as
// the message when nothing matched.
func notFound(err error, miss string) error {
	var nf *resolve.NotFoundError
	if errors.As(err, &nf) {
		return &ValidationError{Reason: miss}
	}
	return &ValidationError{Reason: err.Error()}
}
