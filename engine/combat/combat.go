// Package combat resolves attack rounds between combatants and generates
// monsters. Each round is independent: a pure function of both participants'
// stats plus dice, whose only side effect is the defender's health.
package combat

import (
	"fmt"

	"github.com/nathoo/dungeoncore/engine/inventory"
	"github.com/nathoo/dungeoncore/types"
)

const (
	unarmedDice = "1d4"
	unarmedName = "unarmed strike"
	baseDefense = 10
)

// Roller is the randomness a combat round draws from. *rng.RNG satisfies it.
type Roller interface {
	Roll(sides int) int
	RollDice(spec string) (int, error)
}

// AttackRoll is the breakdown of an attack roll.
type AttackRoll struct {
	Roll        int // natural d20
	StrengthMod int
	WeaponBonus int
	SkillBonus  int
	Total       int
	Critical    bool
}

// Defense is the breakdown of a defense value.
type Defense struct {
	Base       int
	DexMod     int
	ArmorBonus int
	Total      int
}

// Damage is the breakdown of a damage roll.
type Damage struct {
	Weapon      string
	Dice        string
	Roll        int // already doubled on a critical
	StrengthMod int
	Critical    bool
	Total       int
}

// RoundResult describes one resolved attack.
type RoundResult struct {
	AttackerName   string
	DefenderName   string
	Attack         AttackRoll
	Defense        Defense
	Hit            bool
	Critical       bool
	Damage         *Damage // nil on a miss
	DefenderHealth int
	DefenderAlive  bool
}

// Modifier converts an attribute score into its bonus: floor((score-10)/2).
func Modifier(score int) int {
	return floorDiv(score-10, 2)
}

// EquippedWeapon returns the combatant's equipped weapon, or nil.
func EquippedWeapon(c *types.Combatant) *types.Item {
	return equipped(c, c.Equipment.Weapon)
}

// EquippedArmor returns the combatant's equipped armor, or nil.
func EquippedArmor(c *types.Combatant) *types.Item {
	return equipped(c, c.Equipment.Armor)
}

// CalculateAttackRoll rolls 1d20 + strength modifier + weapon attack bonus
// + floor(combat skill / 5). A natural 20 is a critical.
func CalculateAttackRoll(attacker *types.Combatant, r Roller) AttackRoll {
	mustBeWellFormed(attacker)

	a := AttackRoll{
		Roll:        r.Roll(20),
		StrengthMod: Modifier(attacker.Stats.Strength),
		SkillBonus:  floorDiv(attacker.Skills.Combat, 5),
	}
	if w := EquippedWeapon(attacker); w != nil && w.Weapon != nil {
		a.WeaponBonus = w.Weapon.AttackBonus
	}
	a.Total = a.Roll + a.StrengthMod + a.WeaponBonus + a.SkillBonus
	a.Critical = a.Roll == 20
	return a
}

// CalculateDefense computes 10 + dexterity modifier + armor protection.
func CalculateDefense(defender *types.Combatant) Defense {
	mustBeWellFormed(defender)

	d := Defense{
		Base:   baseDefense,
		DexMod: Modifier(defender.Stats.Dexterity),
	}
	if a := EquippedArmor(defender); a != nil && a.Armor != nil {
		d.ArmorBonus = a.Armor.Protection
	}
	d.Total = d.Base + d.DexMod + d.ArmorBonus
	return d
}

// CalculateDamage rolls the equipped weapon's dice (1d4 unarmed), doubles the
// rolled value on a critical, adds the strength modifier and floors at 1.
func CalculateDamage(attacker *types.Combatant, critical bool, r Roller) Damage {
	mustBeWellFormed(attacker)

	d := Damage{
		Weapon:      unarmedName,
		Dice:        unarmedDice,
		StrengthMod: Modifier(attacker.Stats.Strength),
		Critical:    critical,
	}
	if w := EquippedWeapon(attacker); w != nil && w.Weapon != nil && w.Weapon.Damage != "" {
		d.Weapon = w.Name
		d.Dice = w.Weapon.Damage
	}

	roll, err := r.RollDice(d.Dice)
	if err != nil {
		panic(fmt.Sprintf("combat: weapon %q precondition violated: %v", d.Weapon, err))
	}
	if critical {
		roll *= 2
	}
	d.Roll = roll
	d.Total = max(1, roll+d.StrengthMod)
	return d
}

// ProcessRound resolves one attack. The attack hits when its total meets the
// defense or on a natural 20. Damage is subtracted from the defender's health,
// clamped at zero.
func ProcessRound(attacker, defender *types.Combatant, r Roller) RoundResult {
	attack := CalculateAttackRoll(attacker, r)
	defense := CalculateDefense(defender)

	res := RoundResult{
		AttackerName: attacker.Name,
		DefenderName: defender.Name,
		Attack:       attack,
		Defense:      defense,
		Hit:          attack.Total >= defense.Total || attack.Critical,
		Critical:     attack.Critical,
	}

	if res.Hit {
		dmg := CalculateDamage(attacker, attack.Critical, r)
		res.Damage = &dmg
		TakeDamage(defender, dmg.Total)
	}

	res.DefenderHealth = defender.Health
	res.DefenderAlive = defender.Health > 0
	return res
}

// TakeDamage lowers health by amount, never below zero. Returns true if the
// combatant is dead afterwards.
func TakeDamage(c *types.Combatant, amount int) bool {
	if amount < 0 {
		amount = 0
	}
	c.Health -= amount
	if c.Health < 0 {
		c.Health = 0
	}
	return c.Health == 0
}

// Heal raises health by amount, never above max health. Returns the amount
// actually restored.
func Heal(c *types.Combatant, amount int) int {
	before := c.Health
	c.Health = min(c.MaxHealth, c.Health+max(0, amount))
	return c.Health - before
}

// Describe narrates a round for the player.
func Describe(res RoundResult) []string {
	if !res.Hit {
		return []string{fmt.Sprintf("%s misses %s!", res.AttackerName, res.DefenderName)}
	}

	var out []string
	if res.Critical {
		out = append(out, fmt.Sprintf("%s lands a critical hit on %s with %s!", res.AttackerName, res.DefenderName, res.Damage.Weapon))
	} else {
		out = append(out, fmt.Sprintf("%s hits %s with %s.", res.AttackerName, res.DefenderName, res.Damage.Weapon))
	}
	out = append(out, fmt.Sprintf("%s takes %d damage.", res.DefenderName, res.Damage.Total))
	if res.DefenderAlive {
		out = append(out, fmt.Sprintf("%s has %d health remaining.", res.DefenderName, res.DefenderHealth))
	} else {
		out = append(out, fmt.Sprintf("%s has been defeated!", res.DefenderName))
	}
	return out
}

// Trace renders the dice breakdown of a round, e.g. for debug output.
func Trace(res RoundResult) string {
	s := fmt.Sprintf("attack d20[%d]%+d%+d%+d = %d vs defense %d",
		res.Attack.Roll, res.Attack.StrengthMod, res.Attack.WeaponBonus, res.Attack.SkillBonus,
		res.Attack.Total, res.Defense.Total)
	if res.Damage != nil {
		s += fmt.Sprintf(" → %s[%d]%+d = %d damage", res.Damage.Dice, res.Damage.Roll, res.Damage.StrengthMod, res.Damage.Total)
	}
	return s
}

func equipped(c *types.Combatant, id string) *types.Item {
	if id == "" {
		return nil
	}
	return inventory.FindByID(&c.Inventory, id)
}

// mustBeWellFormed fails fast on stat blocks that no generator or save file
// should ever produce.
func mustBeWellFormed(c *types.Combatant) {
	if c == nil {
		panic("combat: precondition violated: nil combatant")
	}
	if c.MaxHealth <= 0 {
		panic(fmt.Sprintf("combat: precondition violated: %q has no stat block (max health %d)", c.Name, c.MaxHealth))
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
