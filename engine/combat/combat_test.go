package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/dungeoncore/content"
	"github.com/nathoo/dungeoncore/engine/rng"
	"github.com/nathoo/dungeoncore/types"
)

// scriptedRoller returns queued results so rounds can be tested exactly.
type scriptedRoller struct {
	d20   []int
	dice  []int
	specs []string
}

func (s *scriptedRoller) Roll(sides int) int {
	v := s.d20[0]
	s.d20 = s.d20[1:]
	return v
}

func (s *scriptedRoller) RollDice(spec string) (int, error) {
	if _, _, err := rng.ParseDice(spec); err != nil {
		return 0, err
	}
	s.specs = append(s.specs, spec)
	v := s.dice[0]
	s.dice = s.dice[1:]
	return v, nil
}

func fighter(name string, str, dex int) *types.Combatant {
	return &types.Combatant{
		Name: name, Health: 30, MaxHealth: 30, Level: 1,
		Stats: types.Stats{Strength: str, Dexterity: dex, Intelligence: 10, Constitution: 10},
	}
}

func arm(c *types.Combatant, weapon *types.WeaponProps, armor *types.ArmorProps) {
	if weapon != nil {
		w := types.Item{ID: "w", Name: "Battleaxe", Kind: types.KindWeapon, Equipable: true, Slot: types.SlotWeapon, Equipped: true, Weapon: weapon}
		c.Inventory.Items = append(c.Inventory.Items, w)
		c.Equipment.Weapon = w.ID
	}
	if armor != nil {
		a := types.Item{ID: "a", Name: "Chainmail", Kind: types.KindArmor, Equipable: true, Slot: types.SlotArmor, Equipped: true, Armor: armor}
		c.Inventory.Items = append(c.Inventory.Items, a)
		c.Equipment.Armor = a.ID
	}
}

func TestModifier(t *testing.T) {
	tests := []struct{ score, want int }{
		{10, 0}, {11, 0}, {12, 1}, {13, 1}, {18, 4},
		{9, -1}, {8, -1}, {7, -2}, {3, -4}, {1, -5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Modifier(tt.score), "Modifier(%d)", tt.score)
	}
}

func TestCalculateAttackRoll(t *testing.T) {
	a := fighter("Hero", 14, 10)
	a.Skills.Combat = 10
	arm(a, &types.WeaponProps{Damage: "1d8", AttackBonus: 1}, nil)

	got := CalculateAttackRoll(a, &scriptedRoller{d20: []int{7}})
	assert.Equal(t, AttackRoll{Roll: 7, StrengthMod: 2, WeaponBonus: 1, SkillBonus: 2, Total: 12}, got)

	crit := CalculateAttackRoll(a, &scriptedRoller{d20: []int{20}})
	assert.True(t, crit.Critical)
}

func TestCalculateDefense(t *testing.T) {
	d := fighter("Guard", 10, 14)
	assert.Equal(t, 12, CalculateDefense(d).Total)

	arm(d, nil, &types.ArmorProps{Protection: 2})
	got := CalculateDefense(d)
	assert.Equal(t, Defense{Base: 10, DexMod: 2, ArmorBonus: 2, Total: 14}, got)
}

func TestCalculateDamage_UnarmedDefault(t *testing.T) {
	a := fighter("Brawler", 10, 10)
	r := &scriptedRoller{dice: []int{3}}

	got := CalculateDamage(a, false, r)
	assert.Equal(t, []string{"1d4"}, r.specs)
	assert.Equal(t, "unarmed strike", got.Weapon)
	assert.Equal(t, 3, got.Total)
}

func TestCalculateDamage_CriticalDoublesRolledValue(t *testing.T) {
	a := fighter("Hero", 14, 10)
	arm(a, &types.WeaponProps{Damage: "1d8"}, nil)

	got := CalculateDamage(a, true, &scriptedRoller{dice: []int{5}})
	assert.Equal(t, 10, got.Roll)
	assert.Equal(t, 12, got.Total)
	assert.Equal(t, "Battleaxe", got.Weapon)
}

func TestCalculateDamage_MinimumOne(t *testing.T) {
	weak := fighter("Weakling", 1, 10)
	got := CalculateDamage(weak, false, &scriptedRoller{dice: []int{1}})
	assert.Equal(t, 1, got.Total)
}

func TestProcessRound_NaturalTwentyAlwaysHits(t *testing.T) {
	a := fighter("Hero", 3, 10) // -4 strength
	d := fighter("Fortress", 10, 10)
	arm(d, nil, &types.ArmorProps{Protection: 100})

	res := ProcessRound(a, d, &scriptedRoller{d20: []int{20}, dice: []int{1}})
	assert.True(t, res.Hit)
	assert.True(t, res.Critical)
	require.NotNil(t, res.Damage)
	assert.GreaterOrEqual(t, res.Damage.Total, 1)
}

func TestProcessRound_Miss(t *testing.T) {
	a := fighter("Hero", 10, 10)
	d := fighter("Guard", 10, 10)
	arm(d, nil, &types.ArmorProps{Protection: 5})

	res := ProcessRound(a, d, &scriptedRoller{d20: []int{14}})
	assert.False(t, res.Hit)
	assert.Nil(t, res.Damage)
	assert.Equal(t, 30, d.Health)
	assert.Equal(t, []string{"Hero misses Guard!"}, Describe(res))
}

func TestProcessRound_HitOnEqualTotal(t *testing.T) {
	a := fighter("Hero", 10, 10)
	d := fighter("Guard", 10, 10)

	res := ProcessRound(a, d, &scriptedRoller{d20: []int{10}, dice: []int{2}})
	assert.True(t, res.Hit)
	assert.Equal(t, 28, d.Health)
}

func TestProcessRound_KillsAtOneHealth(t *testing.T) {
	a := fighter("Hero", 10, 10)
	d := fighter("Goblin", 10, 10)
	d.Health = 1

	res := ProcessRound(a, d, &scriptedRoller{d20: []int{15}, dice: []int{4}})
	assert.True(t, res.Hit)
	assert.Equal(t, 0, d.Health)
	assert.False(t, res.DefenderAlive)
	assert.Contains(t, Describe(res), "Goblin has been defeated!")
}

func TestProcessRound_HealthStaysInBounds(t *testing.T) {
	r := rng.New(2024)
	for i := 0; i < 500; i++ {
		a := fighter("Troll", 18, 10)
		arm(a, &types.WeaponProps{Damage: "2d6", AttackBonus: 3}, nil)
		d := fighter("Rat", 6, 14)
		d.Health = 1 + r.Intn(30)

		for d.Health > 0 {
			res := ProcessRound(a, d, r)
			require.GreaterOrEqual(t, d.Health, 0)
			require.LessOrEqual(t, d.Health, d.MaxHealth)
			if res.Hit {
				require.GreaterOrEqual(t, res.Damage.Total, 1)
			}
		}
	}
}

func TestProcessRound_PanicsOnMissingStatBlock(t *testing.T) {
	a := fighter("Hero", 10, 10)
	broken := &types.Combatant{Name: "Broken"}
	assert.Panics(t, func() {
		ProcessRound(a, broken, &scriptedRoller{d20: []int{10}, dice: []int{1}})
	})
}

func TestHeal_CapsAtMax(t *testing.T) {
	c := fighter("Hero", 10, 10)
	c.Health = 25
	assert.Equal(t, 5, Heal(c, 20))
	assert.Equal(t, 30, c.Health)
}

func TestGenerateMonster_Scaling(t *testing.T) {
	c := content.Default()
	mods := map[string]types.MonsterArchetype{}
	for _, m := range c.Monsters {
		mods[m.Name] = m
	}

	r := rng.New(99)
	for i := 0; i < 50; i++ {
		m := GenerateMonster(4, r, c)
		arch, ok := mods[m.Archetype]
		require.True(t, ok, "unknown archetype %q", m.Archetype)

		assert.Equal(t, 60+arch.HealthMod, m.MaxHealth)
		assert.Equal(t, m.MaxHealth, m.Health)
		assert.Equal(t, 12+arch.StrengthMod, m.Stats.Strength)
		assert.Equal(t, 11+arch.DexterityMod, m.Stats.Dexterity)
		assert.Equal(t, 4, m.Level)
		assert.Equal(t, 40, m.XPReward)
		assert.Contains(t, m.Name, m.Archetype)

		w := EquippedWeapon(&m.Combatant)
		require.NotNil(t, w)
		assert.Equal(t, "1d6", w.Weapon.Damage)
		assert.Equal(t, 2, w.Weapon.AttackBonus)
		assert.False(t, w.Takeable)
	}
}

func TestGenerateMonster_DeterministicIDs(t *testing.T) {
	c := content.Default()
	a := GenerateMonster(2, rng.New(7), c)
	b := GenerateMonster(2, rng.New(7), c)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, a.Name, b.Name)
	assert.NotEqual(t, a.ID, a.Equipment.Weapon)
}

func TestGenerateBoss(t *testing.T) {
	boss := GenerateBoss(1, rng.New(3), content.Default())
	assert.True(t, boss.Boss)
	assert.Equal(t, 3, boss.Level)
	assert.Equal(t, 60, boss.XPReward)
}

func newPlayer() *types.Player {
	return &types.Player{
		Combatant: types.Combatant{
			Name: "Adventurer", Health: 40, MaxHealth: 100, Level: 1,
			Stats:     types.Stats{Strength: 10, Dexterity: 10, Intelligence: 10, Constitution: 10},
			Inventory: types.Inventory{MaxWeight: 50},
		},
		ExperienceToNextLevel: 100,
	}
}

func TestAwardExperience_Multipliers(t *testing.T) {
	tests := []struct {
		name         string
		playerLevel  int
		monsterLevel int
		reward       int
		want         int
	}{
		{"same level", 1, 1, 10, 10},
		{"one above", 1, 2, 20, 24},
		{"two above", 1, 3, 30, 42},
		{"two below", 3, 1, 10, 10},
		{"far below", 5, 1, 10, 5},
		{"no reward falls back", 1, 1, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPlayer()
			p.Level = tt.playerLevel
			p.ExperienceToNextLevel = 1000
			m := &types.Monster{Combatant: types.Combatant{Level: tt.monsterLevel}, XPReward: tt.reward}

			got := AwardExperience(p, m)
			assert.Equal(t, tt.want, got.XPAwarded)
			assert.Equal(t, tt.want, p.Experience)
			assert.False(t, got.LeveledUp)
		})
	}
}

func TestAwardExperience_LevelUp(t *testing.T) {
	p := newPlayer()
	m := &types.Monster{Combatant: types.Combatant{Level: 1}, XPReward: 150}

	got := AwardExperience(p, m)
	assert.True(t, got.LeveledUp)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 50, p.Experience)
	assert.Equal(t, 150, p.ExperienceToNextLevel)
	assert.Equal(t, 115, p.MaxHealth)
	assert.Equal(t, 115, p.Health)
	assert.InDelta(t, 55.0, p.Inventory.MaxWeight, 1e-9)
}

func TestAddExperience_MultipleLevels(t *testing.T) {
	p := newPlayer()
	assert.True(t, AddExperience(p, 260))
	// 260 - 100 = 160 ≥ 150 → level 3 with 10 left over, next threshold 225.
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 10, p.Experience)
	assert.Equal(t, 225, p.ExperienceToNextLevel)
}
