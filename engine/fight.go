package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/dungeoncore/engine/combat"
	"github.com/nathoo/dungeoncore/engine/dungeon"
	"github.com/nathoo/dungeoncore/engine/resolve"
	"github.com/nathoo/dungeoncore/engine/state"
	"github.com/nathoo/dungeoncore/types"
)

// lootChance is the probability that a defeated monster leaves a random
// item besides its own gear.
const lootChance = 0.5

// doAttack resolves the player's strike and, if the monster survives, its
// counter-attack.
func (s *Session) doAttack(t *turn) error {
	target, err := s.target(t.cmd.Args)
	if err != nil {
		return err
	}

	var res combat.RoundResult
	if err := s.store.MutateMonster(target.ID, func(m *types.Monster, p *types.Player) {
		res = combat.ProcessRound(&p.Combatant, &m.Combatant, s.rng)
	}); err != nil {
		return err
	}
	t.out = append(t.out, combat.Describe(res)...)
	s.log.Debug("player attack", "target", target.Name, "round", combat.Trace(res))

	if !res.DefenderAlive {
		s.defeat(t, target.ID)
		return nil
	}

	var back combat.RoundResult
	if err := s.store.MutateMonster(target.ID, func(m *types.Monster, p *types.Player) {
		back = combat.ProcessRound(&m.Combatant, &p.Combatant, s.rng)
	}); err != nil {
		return err
	}
	t.out = append(t.out, combat.Describe(back)...)
	s.log.Debug("monster attack", "monster", target.Name, "round", combat.Trace(back))

	if !back.DefenderAlive {
		s.store.SetFlag(state.FlagGameOver, true)
		t.say("You have died. Game over.")
		return nil
	}
	if back.Hit && back.Critical {
		t.stagger = true
		t.say("The blow leaves you reeling.")
	}
	return nil
}

// target picks the monster to attack. With no name given, a lone monster is
// the obvious target.
func (s *Session) target(name string) (types.Monster, error) {
	monsters := s.store.CurrentRoom().Monsters
	if len(monsters) == 0 {
		return types.Monster{}, invalid("There is nothing here to attack.")
	}
	if name == "" {
		if len(monsters) == 1 {
			return monsters[0], nil
		}
		return types.Monster{}, invalid("Attack what?")
	}
	m, err := resolve.Monster(monsters, name)
	if err != nil {
		return types.Monster{}, notFound(err, fmt.Sprintf("There is no '%s' here to attack.", name))
	}
	return m, nil
}

// defeat pays out a kill: experience, loot on the floor, and victory if the
// monster guarded the level.
func (s *Session) defeat(t *turn, id string) {
	m, err := s.store.RemoveMonster(id)
	if err != nil {
		panic("engine: precondition violated: " + err.Error())
	}

	xp := s.store.AwardExperience(m)
	t.say("You gain %d experience.", xp.XPAwarded)
	if xp.LeveledUp {
		t.say("You have reached level %d!", xp.NewLevel)
	}
	s.store.TrainSkill(1)

	var loot []types.Item
	for _, it := range m.Inventory.Items {
		if it.Takeable {
			it.Equipped = false
			loot = append(loot, it)
		}
	}
	if s.rng.Chance(lootChance) {
		if it, ok := dungeon.RandomItem(s.difficulty, s.rng, s.content); ok {
			loot = append(loot, it)
		}
	}
	if len(loot) > 0 {
		if err := s.store.DropOnFloor(loot...); err != nil {
			s.log.Error("dropping loot failed", "monster", m.Name, "err", err)
		} else {
			names := make([]string, len(loot))
			for i, it := range loot {
				names[i] = it.Name
			}
			t.say("The %s dropped: %s", m.Name, strings.Join(names, ", "))
		}
	}

	if m.Boss {
		s.store.SetFlag(state.FlagVictory, true)
		t.say("You have defeated the guardian of %s. Victory!", s.store.Dungeon().Name)
	}
}
