package engine

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/nathoo/dungeoncore/content"
	"github.com/nathoo/dungeoncore/engine/dungeon"
	"github.com/nathoo/dungeoncore/engine/state"
	"github.com/nathoo/dungeoncore/types"
)

// testState builds a small world: an entrance with a sword, an altar and an
// anvil, a hall to the north guarded by a one-hit goblin, and an empty vault
// east of the hall. The player carries a potion and a key.
func testState() types.GameState {
	sword := types.Item{
		ID: "sword", Name: "Short Sword", Kind: types.KindWeapon,
		Weight: 3, Value: 10, Takeable: true, Equipable: true, Slot: types.SlotWeapon,
		Weapon: &types.WeaponProps{Damage: "1d6"},
	}
	altar := types.Item{ID: "altar", Name: "Stone Altar", Kind: types.KindTreasure, Weight: 500}
	anvil := types.Item{ID: "anvil", Name: "Iron Anvil", Kind: types.KindTreasure, Weight: 80, Takeable: true}
	potion := types.Item{
		ID: "potion", Name: "Health Potion", Kind: types.KindPotion,
		Weight: 0.5, Takeable: true,
		Potion: &types.PotionProps{Effect: "heal", Power: 20},
	}
	key := types.Item{ID: "key", Name: "Rusty Key", Kind: types.KindKey, Weight: 0.5, Takeable: true}

	goblin := types.Monster{
		ID: "goblin", Archetype: "Goblin", XPReward: 10,
		Combatant: types.Combatant{
			Name: "Goblin", Health: 1, MaxHealth: 1, Level: 1,
			Stats: types.Stats{Strength: 1, Dexterity: 1, Intelligence: 8, Constitution: 8},
		},
	}

	player := NewPlayer("Tester")
	player.Health = 50
	player.Inventory.Items = []types.Item{potion, key}
	player.Inventory.Weight = 1

	return types.GameState{
		Player: player,
		Dungeon: types.Dungeon{
			Name: "Test Level", Depth: 1, Difficulty: 1, Layout: dungeon.LayoutGraph,
			StartRoomID: "entrance",
			Rooms: []types.Room{
				{
					ID: "entrance", Name: "Dungeon Entrance", Type: "entrance",
					Description: "Stone steps lead down.",
					Exits:       map[string]string{"north": "hall"},
					Items:       types.Inventory{Items: []types.Item{sword, altar, anvil}, Weight: 583},
				},
				{
					ID: "hall", Name: "Hall", Type: "chamber",
					Description: "A long hall.",
					Exits:       map[string]string{"south": "entrance", "east": "vault"},
					Monsters:    []types.Monster{goblin},
				},
				{
					ID: "vault", Name: "Vault", Type: "treasury",
					Description: "An empty vault.",
					Exits:       map[string]string{"west": "hall"},
				},
			},
		},
		CurrentRoom: "entrance",
		Flags:       map[string]bool{},
		RNGSeed:     42,
	}
}

func newSession(t *testing.T, gs types.GameState) *Session {
	t.Helper()
	s, err := New(Options{Seed: 7})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Initialize()
	if err := s.Restore(gs); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	return s
}

func contains(msgs []string, sub string) bool {
	for _, m := range msgs {
		if strings.Contains(m, sub) {
			return true
		}
	}
	return false
}

func mustSucceed(t *testing.T, s *Session, input string) types.Response {
	t.Helper()
	r := s.Process(input)
	if !r.Success {
		t.Fatalf("%q failed: %v", input, r.Messages)
	}
	return r
}

func mustFail(t *testing.T, s *Session, input, want string) types.Response {
	t.Helper()
	r := s.Process(input)
	if r.Success {
		t.Fatalf("%q succeeded, want failure %q: %v", input, want, r.Messages)
	}
	if !contains(r.Messages, want) {
		t.Errorf("%q messages = %v, want %q", input, r.Messages, want)
	}
	return r
}

func TestNew_InvalidOptions(t *testing.T) {
	if _, err := New(Options{Layout: "maze"}); err == nil {
		t.Error("expected error for unknown layout")
	}
	if _, err := New(Options{Layout: dungeon.LayoutGrid}); err == nil {
		t.Error("expected error for grid without a size")
	}
	if _, err := New(Options{Content: &types.Content{}}); err == nil {
		t.Error("expected error for content without monsters")
	}
}

func TestProcess_BeforeInitialize(t *testing.T) {
	s, err := New(Options{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if r := s.Process("look"); r.Success {
		t.Error("expected failure before Initialize")
	}
}

func TestInitialize(t *testing.T) {
	s, err := New(Options{Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	r := s.Initialize()
	if !r.Success {
		t.Fatalf("Initialize failed: %v", r.Messages)
	}
	if r.Messages[0] != content.Default().Intro {
		t.Errorf("first message = %q, want intro", r.Messages[0])
	}
	if r.State.Location.ID != dungeon.StartRoomID {
		t.Errorf("location = %q, want %q", r.State.Location.ID, dungeon.StartRoomID)
	}
	if !contains(r.Messages, "Dungeon Entrance") {
		t.Errorf("expected room name in %v", r.Messages)
	}

	p := r.State.Player
	if p.Name != DefaultPlayerName || p.Health != 100 || p.MaxHealth != 100 || p.Level != 1 {
		t.Errorf("unexpected player %+v", p)
	}
	if p.MaxCarryWeight != 50 || p.ExperienceToNextLevel != 100 {
		t.Errorf("carry = %v, next level = %d", p.MaxCarryWeight, p.ExperienceToNextLevel)
	}
	if r.State.Elapsed != 0 || r.State.Turn != 0 {
		t.Errorf("elapsed = %d, turn = %d", r.State.Elapsed, r.State.Turn)
	}
}

func TestInitialize_Deterministic(t *testing.T) {
	var dungeons []types.Dungeon
	for range 2 {
		s, err := New(Options{Seed: 99, Dungeon: dungeon.Options{Depth: 2, Difficulty: 3}})
		if err != nil {
			t.Fatal(err)
		}
		s.Initialize()
		dungeons = append(dungeons, s.Export().Dungeon)
	}
	if !reflect.DeepEqual(dungeons[0], dungeons[1]) {
		t.Error("same seed generated different dungeons")
	}
}

func TestInitialize_GridLayout(t *testing.T) {
	s, err := New(Options{Seed: 5, Layout: dungeon.LayoutGrid, GridSize: 6})
	if err != nil {
		t.Fatal(err)
	}
	s.Initialize()
	d := s.Export().Dungeon
	if d.Layout != dungeon.LayoutGrid {
		t.Errorf("layout = %q", d.Layout)
	}
	if got := len(dungeon.Reachable(&d)); got != len(d.Rooms) {
		t.Errorf("reachable %d of %d rooms", got, len(d.Rooms))
	}
}

func TestGoNorth(t *testing.T) {
	s := newSession(t, testState())
	r := mustSucceed(t, s, "go north")

	if r.State.Location.ID != "hall" {
		t.Errorf("location = %q, want hall", r.State.Location.ID)
	}
	if r.State.Elapsed != 10 {
		t.Errorf("elapsed = %d, want 10", r.State.Elapsed)
	}
	if r.State.Turn != 1 {
		t.Errorf("turn = %d, want 1", r.State.Turn)
	}
	if !contains(r.Messages, "You go north.") || !contains(r.Messages, "A Goblin is here!") {
		t.Errorf("messages = %v", r.Messages)
	}
}

func TestGo_Shorthands(t *testing.T) {
	for _, input := range []string{"n", "north", "walk north", "go n", "GO NORTH"} {
		s := newSession(t, testState())
		r := mustSucceed(t, s, input)
		if r.State.Location.ID != "hall" {
			t.Errorf("%q: location = %q", input, r.State.Location.ID)
		}
	}
}

func TestGo_Failures(t *testing.T) {
	s := newSession(t, testState())
	before := s.Export()

	mustFail(t, s, "go west", "You can't go west from here.")
	mustFail(t, s, "go", "Go where?")
	mustFail(t, s, "go sideways", "You can't go sideways from here.")

	if !reflect.DeepEqual(before, s.Export()) {
		t.Error("failed moves changed state")
	}
}

func TestTakeSword(t *testing.T) {
	s := newSession(t, testState())
	r := mustSucceed(t, s, "take sword")

	if !contains(r.Messages, "You take the Short Sword.") {
		t.Errorf("messages = %v", r.Messages)
	}
	var found bool
	for _, it := range r.State.Player.Inventory {
		if it.ID == "sword" {
			found = true
		}
	}
	if !found {
		t.Error("sword not in inventory")
	}
	for _, it := range r.State.Location.Items {
		if it.ID == "sword" {
			t.Error("sword still in room")
		}
	}
	if r.State.Player.CurrentWeight != 4 {
		t.Errorf("weight = %v, want 4", r.State.Player.CurrentWeight)
	}
	if r.State.Elapsed != 3 {
		t.Errorf("elapsed = %d, want 3", r.State.Elapsed)
	}
}

func TestTake_Failures(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"take", "Take what?"},
		{"take altar", "You cannot take the Stone Altar."},
		{"take anvil", "The Iron Anvil is too heavy to carry with your current load."},
		{"take dragon", "You don't see any 'dragon' here."},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := newSession(t, testState())
			before := s.Export()
			mustFail(t, s, tt.input, tt.want)
			if !reflect.DeepEqual(before, s.Export()) {
				t.Error("state changed")
			}
		})
	}
}

func TestTake_EmptyRoom(t *testing.T) {
	gs := testState()
	gs.CurrentRoom = "vault"
	s := newSession(t, gs)
	mustFail(t, s, "take sword", "There's nothing here to take.")
}

func TestEquipAndDrop(t *testing.T) {
	s := newSession(t, testState())
	mustSucceed(t, s, "take sword")

	r := mustSucceed(t, s, "wield sword")
	if r.State.Player.Equipment.Weapon != "sword" {
		t.Errorf("weapon = %q, want sword", r.State.Player.Equipment.Weapon)
	}
	mustFail(t, s, "equip sword", "You already have the Short Sword equipped.")
	mustFail(t, s, "equip key", "You cannot equip the Rusty Key.")
	mustFail(t, s, "drop sword", "You need to unequip the Short Sword first.")

	r = mustSucceed(t, s, "unequip weapon")
	if r.State.Player.Equipment.Weapon != "" {
		t.Errorf("weapon = %q after unequip", r.State.Player.Equipment.Weapon)
	}
	mustFail(t, s, "unequip weapon", "You have nothing equipped as weapon.")

	r = mustSucceed(t, s, "drop the sword")
	if !contains(r.Messages, "You drop the Short Sword.") {
		t.Errorf("messages = %v", r.Messages)
	}
	if r.State.Player.CurrentWeight != 1 {
		t.Errorf("weight = %v, want 1", r.State.Player.CurrentWeight)
	}
}

func TestUnequip_ByName(t *testing.T) {
	s := newSession(t, testState())
	mustSucceed(t, s, "take sword")
	mustSucceed(t, s, "equip sword")
	r := mustSucceed(t, s, "take off short sword")
	if !contains(r.Messages, "You unequip the Short Sword.") {
		t.Errorf("messages = %v", r.Messages)
	}
	mustFail(t, s, "unequip sword", "You don't have any 'sword' equipped.")
}

func TestUsePotion(t *testing.T) {
	s := newSession(t, testState())
	r := mustSucceed(t, s, "drink potion")

	if r.State.Player.Health != 70 {
		t.Errorf("health = %d, want 70", r.State.Player.Health)
	}
	if !contains(r.Messages, "You feel refreshed and recover 20 health.") {
		t.Errorf("messages = %v", r.Messages)
	}
	for _, it := range r.State.Player.Inventory {
		if it.ID == "potion" {
			t.Error("potion not consumed")
		}
	}
}

func TestUse_Failures(t *testing.T) {
	s := newSession(t, testState())
	before := s.Export()
	mustFail(t, s, "use key", "You try to use the Rusty Key, but there's nothing to unlock here.")
	mustFail(t, s, "use", "Use what?")
	mustFail(t, s, "use torch", "You don't have any 'torch'.")
	if !reflect.DeepEqual(before, s.Export()) {
		t.Error("state changed")
	}
}

func TestLook(t *testing.T) {
	s := newSession(t, testState())

	tests := []struct {
		input string
		want  string
	}{
		{"look", "Exits: north"},
		{"l", "You see: Short Sword, Stone Altar, Iron Anvil"},
		{"look north", "You see a path leading north."},
		{"look w", "There is no path leading west."},
		{"look sword", "It weighs 3 units."},
		{"look key", "Nothing special about it."},
		{"look at sword", "Short Sword (Weight: 3) (Value: 10 gold) (Damage: 1d6)"},
	}
	for _, tt := range tests {
		r := mustSucceed(t, s, tt.input)
		if !contains(r.Messages, tt.want) {
			t.Errorf("%q messages = %v, want %q", tt.input, r.Messages, tt.want)
		}
	}
	mustFail(t, s, "look dragon", "You don't see any 'dragon' here.")
}

func TestLook_SpendsNoTime(t *testing.T) {
	s := newSession(t, testState())
	mustSucceed(t, s, "go north")

	lines := s.Look()
	if len(lines) == 0 || lines[0] != "Hall" {
		t.Fatalf("Look() = %v", lines)
	}
	if !contains(lines, "A Goblin is here!") || !contains(lines, "Exits: east, south") {
		t.Errorf("Look() = %v", lines)
	}
	if snap := s.Snapshot(); snap.Elapsed != 10 || snap.Turn != 1 {
		t.Errorf("elapsed %d turn %d after Look, want 10 and 1", snap.Elapsed, snap.Turn)
	}
}

func TestParseFailure_LeavesStateUnchanged(t *testing.T) {
	s := newSession(t, testState())
	before := s.Export()

	r := mustFail(t, s, "dance wildly", "I don't understand")
	if !reflect.DeepEqual(r.State, s.Snapshot()) {
		t.Error("response snapshot differs from session")
	}
	mustFail(t, s, "   ", "Please enter a command.")

	if !reflect.DeepEqual(before, s.Export()) {
		t.Error("parse failure changed state")
	}
}

// attackUntilGone attacks name until it leaves the room, waiting out any
// stagger along the way.
func attackUntilGone(t *testing.T, s *Session, name string) []string {
	t.Helper()
	var msgs []string
	for range 50 {
		r := s.Process("attack " + name)
		msgs = append(msgs, r.Messages...)
		if !r.Success {
			mustSucceed(t, s, "wait")
			continue
		}
		if len(r.State.Location.Monsters) == 0 {
			return msgs
		}
	}
	t.Fatalf("%s never went down: %v", name, msgs)
	return nil
}

func TestAttackGoblin(t *testing.T) {
	s := newSession(t, testState())
	mustSucceed(t, s, "go north")

	msgs := attackUntilGone(t, s, "goblin")
	if !contains(msgs, "Goblin has been defeated!") {
		t.Errorf("messages = %v", msgs)
	}
	if !contains(msgs, "You gain 10 experience.") {
		t.Errorf("messages = %v", msgs)
	}

	gs := s.Export()
	if gs.Player.Experience != 10 {
		t.Errorf("experience = %d, want 10", gs.Player.Experience)
	}
	if gs.Player.Skills.Combat != 1 {
		t.Errorf("combat skill = %d, want 1", gs.Player.Skills.Combat)
	}
	if gs.Flags[state.FlagVictory] {
		t.Error("victory set for a regular monster")
	}
	mustFail(t, s, "attack goblin", "There is nothing here to attack.")
}

func TestAttack_Failures(t *testing.T) {
	s := newSession(t, testState())
	mustFail(t, s, "attack goblin", "There is nothing here to attack.")
	mustSucceed(t, s, "go north")
	mustFail(t, s, "attack dragon", "There is no 'dragon' here to attack.")
}

func TestAttack_BossGivesVictory(t *testing.T) {
	gs := testState()
	gs.Dungeon.Rooms[1].Monsters[0].Boss = true
	s := newSession(t, gs)
	mustSucceed(t, s, "go north")

	msgs := attackUntilGone(t, s, "")
	if !contains(msgs, "Victory!") {
		t.Errorf("messages = %v", msgs)
	}
	if !s.Over() {
		t.Error("expected game to be over")
	}
	mustFail(t, s, "go south", "The game is over.")
	mustSucceed(t, s, "stats")
}

func TestReadiness(t *testing.T) {
	gs := testState()
	gs.Player.ReadyAt = 6
	s := newSession(t, gs)
	before := s.Export()

	mustFail(t, s, "go north", "You are still recovering")
	if !reflect.DeepEqual(before, s.Export()) {
		t.Error("rejected command changed state")
	}

	mustSucceed(t, s, "inventory")
	r := mustSucceed(t, s, "wait")
	if r.State.Elapsed != 30 {
		t.Errorf("elapsed = %d, want 30", r.State.Elapsed)
	}
	mustSucceed(t, s, "go north")
}

func TestGameOver(t *testing.T) {
	gs := testState()
	gs.Flags[state.FlagGameOver] = true
	s := newSession(t, gs)

	mustFail(t, s, "go north", "The game is over.")
	mustFail(t, s, "wait", "The game is over.")
	mustSucceed(t, s, "stats")
	mustSucceed(t, s, "help")
	mustSucceed(t, s, "inventory")
}

func TestPlayerDeath(t *testing.T) {
	gs := testState()
	gs.Player.Health = 1
	ogre := &gs.Dungeon.Rooms[1].Monsters[0]
	ogre.Name = "Ogre"
	ogre.Health, ogre.MaxHealth = 500, 500
	ogre.Stats = types.Stats{Strength: 30, Dexterity: 30}
	s := newSession(t, gs)
	mustSucceed(t, s, "go north")

	for range 50 {
		r := s.Process("attack ogre")
		if s.Over() {
			if !contains(r.Messages, "You have died.") {
				t.Errorf("messages = %v", r.Messages)
			}
			if !r.State.Flags[state.FlagGameOver] || r.State.Player.Health != 0 {
				t.Errorf("flags = %v, health = %d", r.State.Flags, r.State.Player.Health)
			}
			return
		}
		if !r.Success {
			mustSucceed(t, s, "wait")
		}
	}
	t.Fatal("player never died")
}

func TestInventory(t *testing.T) {
	gs := testState()
	gs.Player.Inventory.Items = nil
	gs.Player.Inventory.Weight = 0
	s := newSession(t, gs)

	r := mustSucceed(t, s, "i")
	if !contains(r.Messages, "Your inventory is empty.") {
		t.Errorf("messages = %v", r.Messages)
	}

	mustSucceed(t, s, "take sword")
	mustSucceed(t, s, "equip sword")
	r = mustSucceed(t, s, "inventory")
	for _, want := range []string{"You are carrying:", "Weapons:", "- Short Sword (equipped) (3 weight)", "Total weight: 3/50"} {
		if !contains(r.Messages, want) {
			t.Errorf("messages = %v, want %q", r.Messages, want)
		}
	}
	if r.State.Elapsed != 8 {
		t.Errorf("inventory cost time: elapsed = %d, want 8", r.State.Elapsed)
	}
}

func TestStats(t *testing.T) {
	s := newSession(t, testState())
	r := mustSucceed(t, s, "stats")
	for _, want := range []string{"Name: Tester", "Level: 1", "Experience: 0/100", "Health: 50/100", "  Strength: 10"} {
		if !contains(r.Messages, want) {
			t.Errorf("messages = %v, want %q", r.Messages, want)
		}
	}
}

func TestHelp(t *testing.T) {
	s := newSession(t, testState())

	r := mustSucceed(t, s, "help")
	if len(r.Messages) != len(s.Commands())+1 {
		t.Errorf("help listed %d lines for %d commands", len(r.Messages), len(s.Commands()))
	}

	r = mustSucceed(t, s, "help walk")
	if !contains(r.Messages, "GO command:") || !contains(r.Messages, "Takes 10 seconds.") {
		t.Errorf("messages = %v", r.Messages)
	}

	r = mustSucceed(t, s, "? dance")
	if !contains(r.Messages, "No help available for 'dance'.") {
		t.Errorf("messages = %v", r.Messages)
	}
}

func TestEvents_Regeneration(t *testing.T) {
	s := newSession(t, testState())
	r := mustSucceed(t, s, "wait")
	if r.State.Player.Health != 50 {
		t.Errorf("health = %d before the first regeneration", r.State.Player.Health)
	}
	r = mustSucceed(t, s, "rest")
	if r.State.Elapsed != 60 {
		t.Fatalf("elapsed = %d, want 60", r.State.Elapsed)
	}
	if r.State.Player.Health != 52 {
		t.Errorf("health = %d, want 52", r.State.Player.Health)
	}
}

func TestEvents_WanderingMonster(t *testing.T) {
	s := newSession(t, testState())
	var last types.Response
	for range 20 {
		last = mustSucceed(t, s, "wait")
	}
	if last.State.Elapsed != 600 {
		t.Fatalf("elapsed = %d, want 600", last.State.Elapsed)
	}
	if !contains(last.Messages, "You hear something moving in the distance.") {
		t.Errorf("messages = %v", last.Messages)
	}

	d := s.Export().Dungeon
	vault := dungeon.FindRoom(&d, "vault")
	if len(vault.Monsters) != 1 {
		t.Errorf("vault monsters = %d, want 1", len(vault.Monsters))
	}
	entrance := dungeon.FindRoom(&d, "entrance")
	if len(entrance.Monsters) != 0 {
		t.Error("monster spawned in the player's room")
	}
}

func TestExportRestore(t *testing.T) {
	s1 := newSession(t, testState())
	mustSucceed(t, s1, "go north")

	s2 := newSession(t, s1.Export())
	if !reflect.DeepEqual(s1.Snapshot(), s2.Snapshot()) {
		t.Fatal("restored snapshot differs")
	}

	// The RNG position travels with the state, so both sessions fight alike.
	r1 := s1.Process("attack goblin")
	r2 := s2.Process("attack goblin")
	if !reflect.DeepEqual(r1, r2) {
		t.Errorf("sessions diverged:\n%v\n%v", r1.Messages, r2.Messages)
	}
}

func TestRestore_UnknownRoom(t *testing.T) {
	gs := testState()
	gs.CurrentRoom = "nowhere"
	s, err := New(Options{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Restore(gs); err == nil {
		t.Error("expected error for unknown current room")
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := newSession(t, testState())
	snap := s.Snapshot()
	snap.Player.Inventory[0].Name = "Tampered"
	snap.Flags["cheat"] = true

	again := s.Snapshot()
	if again.Player.Inventory[0].Name != "Health Potion" || again.Flags["cheat"] {
		t.Error("snapshot aliases session state")
	}
}

func TestProcess_Concurrent(t *testing.T) {
	s := newSession(t, testState())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				s.Process("look")
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	if snap.Turn != 80 || snap.Elapsed != 160 {
		t.Errorf("turn = %d, elapsed = %d, want 80/160", snap.Turn, snap.Elapsed)
	}
}
