package combat

import "github.com/nathoo/dungeoncore/types"

// ExperienceResult reports an experience award.
type ExperienceResult struct {
	XPAwarded int
	LeveledUp bool
	NewLevel  int
}

// AwardExperience grants the player experience for defeating monster.
// Higher-level monsters pay 20% more per level of difference; monsters more
// than two levels below the player pay half.
func AwardExperience(p *types.Player, m *types.Monster) ExperienceResult {
	base := m.XPReward
	if base <= 0 {
		base = 10
	}
	level := max(1, m.Level)

	diff := level - p.Level
	xp := base
	switch {
	case diff > 0:
		// floor(base * (1 + 0.2*diff)) in integer arithmetic.
		xp = base * (5 + diff) / 5
	case diff < -2:
		xp = base / 2
	}

	leveled := AddExperience(p, xp)
	return ExperienceResult{XPAwarded: xp, LeveledUp: leveled, NewLevel: p.Level}
}

// AddExperience adds xp and levels the player up as many times as the
// accumulated experience allows. Returns true if at least one level was gained.
func AddExperience(p *types.Player, xp int) bool {
	if p.ExperienceToNextLevel <= 0 {
		panic("combat: AddExperience precondition violated: non-positive level threshold")
	}
	p.Experience += xp
	leveled := false
	for p.Experience >= p.ExperienceToNextLevel {
		LevelUp(p)
		leveled = true
	}
	return leveled
}

// LevelUp advances the player one level: the threshold grows by half, max
// health grows with constitution, health is restored and carry capacity rises.
func LevelUp(p *types.Player) {
	p.Level++
	p.Experience -= p.ExperienceToNextLevel
	p.ExperienceToNextLevel = p.ExperienceToNextLevel * 3 / 2

	p.MaxHealth += 10 + floorDiv(p.Stats.Constitution, 2)
	p.Health = p.MaxHealth
	p.Inventory.MaxWeight += 5
}
