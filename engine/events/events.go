// Package events schedules recurring time-triggered events. Firings are
// computed in a single pass after the clock moves and never trigger
// further firings.
package events

import (
	"slices"

	"github.com/nathoo/dungeoncore/types"
)

// Event kinds.
const (
	KindRegenerate = "regenerate"
	KindWander     = "wander"
)

// Firing is one occurrence of an event.
type Firing struct {
	Def types.EventDef
	At  int
}

// Init creates timers for defs, each first due one period after now.
// Definitions with a non-positive period never fire and get no timer.
func Init(defs []types.EventDef, now int) []types.Timer {
	timers := make([]types.Timer, 0, len(defs))
	for _, d := range defs {
		if d.Every > 0 {
			timers = append(timers, types.Timer{Name: d.Name, NextAt: now + d.Every})
		}
	}
	return timers
}

// Due returns the firings whose time has come by now, ordered by time, and
// the advanced timers. A timer crossed several times fires once per period.
// Definitions without a timer get one starting from now.
func Due(defs []types.EventDef, timers []types.Timer, now int) ([]Firing, []types.Timer) {
	next := make(map[string]int, len(timers))
	for _, t := range timers {
		next[t.Name] = t.NextAt
	}

	var firings []Firing
	out := make([]types.Timer, 0, len(defs))
	for _, d := range defs {
		if d.Every <= 0 {
			continue
		}
		at, ok := next[d.Name]
		if !ok {
			at = now + d.Every
		}
		for at <= now {
			firings = append(firings, Firing{Def: d, At: at})
			at += d.Every
		}
		out = append(out, types.Timer{Name: d.Name, NextAt: at})
	}

	slices.SortStableFunc(firings, func(a, b Firing) int {
		return a.At - b.At
	})
	return firings, out
}
