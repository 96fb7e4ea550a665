// Package content holds the built-in dungeon content: room and object
// descriptions, item templates, the monster table and scheduled events.
// Lua content packs (see package loader) start from these defaults.
package content

import "github.com/nathoo/dungeoncore/types"

// Default returns a fresh copy of the built-in content.
func Default() *types.Content {
	c := &types.Content{
		Title: "The Dungeon",
		Intro: "Welcome to the dungeon! Type 'help' for a list of commands.",
		RoomDescriptions: map[string][]string{
			"entrance": {
				"A torch-lit entrance with ancient stone steps leading down into darkness.",
				"A massive iron door marks the entrance to the dungeon, groaning as it swings open.",
				"A narrow passageway descends steeply into the earth, cool air flowing from below.",
			},
			"corridor": {
				"A dimly lit corridor stretches before you, the walls glistening with moisture.",
				"A narrow hallway with cracked stone floor tiles and cobwebs in the corners.",
				"A twisting passage with flickering torches casting dancing shadows on the walls.",
			},
			"chamber": {
				"A spacious chamber with high ceilings supported by crumbling stone columns.",
				"A circular room with mysterious symbols etched into the floor.",
				"A damp chamber with water dripping from the ceiling, forming small puddles.",
			},
			"treasury": {
				"A small room with ornate chests and display cases, once used to store valuables.",
				"A secure chamber with heavy iron lockboxes built into the walls.",
				"A treasury room with pedestals where valuable artifacts were once displayed.",
			},
			"armory": {
				"An old armory with empty weapon racks and broken armor stands.",
				"A room lined with weapon racks and training dummies, long abandoned.",
				"An armory with rusty weapons hanging on the walls and scattered across the floor.",
			},
			"library": {
				"A forgotten library with rotting bookshelves and decaying tomes.",
				"A study room with ancient scrolls and manuscripts scattered about.",
				"A chamber with wall-to-wall bookshelves, many books still intact despite the years.",
			},
			"ritual": {
				"A disturbing ritual chamber with a large stone altar in the center.",
				"A room with arcane circles carved into the floor, giving off a faint glow.",
				"A dark chamber with strange symbols painted on the walls in what looks like dried blood.",
			},
			"prison": {
				"A grim chamber with rusted iron cages and shackles hanging from the walls.",
				"A prison block with small cells lining both sides of a narrow corridor.",
				"A torture chamber with sinister devices and dark stains on the floor.",
			},
			"crypt": {
				"A solemn crypt with stone sarcophagi arranged in rows.",
				"A burial chamber with wall niches containing the remains of the deceased.",
				"A mausoleum-like room with elaborate coffins and funerary art.",
			},
			"cavern": {
				"A natural cavern with stalactites hanging from the ceiling and stalagmites rising from the floor.",
				"A large cave with a small underground stream flowing through it.",
				"A spacious grotto with glowing fungi providing dim illumination.",
			},
			"forge": {
				"An ancient forge with dormant furnaces and anvils covered in dust.",
				"A blacksmith's workshop with hammers, tongs, and other tools still laid out.",
				"A smelting room with large furnaces and molds for casting metal.",
			},
			"laboratory": {
				"A wizard's laboratory filled with strange apparatus and dusty alchemical equipment.",
				"An alchemist's workshop with tables covered in vials, tubes, and magical ingredients.",
				"An arcane research room with diagrams etched into the walls and ceiling.",
			},
			"trap": {
				"A narrow room whose floor is riddled with suspicious pressure plates.",
				"A chamber lined with tiny holes in the walls, the floor scattered with old darts.",
			},
			"puzzle": {
				"A hexagonal room with rotating stone tiles engraved with runes.",
				"A chamber dominated by a great bronze mechanism of gears and levers.",
			},
			"lair": {
				"A vast cavern littered with bones, the air thick with the stench of something enormous.",
				"A throne room carved from black rock, its occupant watching you from the shadows.",
			},
		},
		ObjectDescriptions: map[string][]string{
			"furniture": {
				"A wooden table, its surface covered in dust and scratches.",
				"A broken chair lies on its side in the corner.",
				"A bed with rotting sheets and a collapsed frame.",
				"A heavy oak cabinet with most of its doors hanging open.",
			},
			"decoration": {
				"Faded tapestries hang on the walls, their designs barely visible.",
				"Iron sconces hold burnt-out torches along the walls.",
				"A cracked mirror reflects a distorted image of the room.",
				"Stone statues of forgotten heroes stand silent guard.",
			},
			"container": {
				"A small wooden chest with rusted metal bindings.",
				"A large iron lockbox sits in the corner.",
				"Clay pots of various sizes are arranged along the wall.",
				"A leather satchel has been discarded on the floor.",
			},
			"debris": {
				"Broken stones and debris are scattered across the floor.",
				"Pieces of rotted wood and fabric litter the ground.",
				"Fragments of pottery and glass crunch under your feet.",
				"Piles of rubble have fallen from the damaged ceiling.",
			},
		},
		ItemTemplates: map[types.ItemKind][]types.ItemTemplate{
			types.KindWeapon: {
				{Name: "Rusty Dagger", Damage: "1d4", Value: 2, Weight: 1},
				{Name: "Short Sword", Damage: "1d6", Value: 10, Weight: 2},
				{Name: "Mace", Damage: "1d6", Value: 5, Weight: 4},
				{Name: "Battleaxe", Damage: "1d8", Value: 10, Weight: 4},
			},
			types.KindArmor: {
				{Name: "Leather Armor", Protection: 1, Value: 10, Weight: 10},
				{Name: "Chainmail", Protection: 2, Value: 75, Weight: 20},
				{Name: "Shield", Protection: 1, Value: 10, Weight: 6},
			},
			types.KindPotion: {
				{Name: "Health Potion", Effect: "heal", Power: 20, Value: 50, Weight: 0.5},
				{Name: "Strength Potion", Effect: "strength", Power: 5, Value: 75, Weight: 0.5},
				{Name: "Antidote", Effect: "cure", Power: 1, Value: 25, Weight: 0.5},
			},
			types.KindTreasure: {
				{Name: "Gold Coins", Value: 10, Weight: 0.1},
				{Name: "Silver Ring", Value: 25, Weight: 0.1},
				{Name: "Gemstone", Value: 50, Weight: 0.1},
				{Name: "Golden Amulet", Value: 100, Weight: 0.5},
			},
			types.KindKey: {
				{Name: "Iron Key", Value: 1, Weight: 0.1},
				{Name: "Brass Key", Value: 1, Weight: 0.1},
				{Name: "Silver Key", Value: 5, Weight: 0.1},
			},
		},
		Monsters: []types.MonsterArchetype{
			{Name: "Goblin", HealthMod: -5, StrengthMod: -1, DexterityMod: 2},
			{Name: "Orc", HealthMod: 5, StrengthMod: 2, DexterityMod: 0},
			{Name: "Skeleton", HealthMod: -10, StrengthMod: 0, DexterityMod: 1},
			{Name: "Zombie", HealthMod: 10, StrengthMod: 1, DexterityMod: -2},
			{Name: "Troll", HealthMod: 15, StrengthMod: 3, DexterityMod: -1},
			{Name: "Giant Rat", HealthMod: -15, StrengthMod: -2, DexterityMod: 3},
		},
		Adjectives: []string{
			"Fierce", "Savage", "Wild", "Rabid", "Crazed",
			"Battle-scarred", "Wounded", "Enraged", "Ancient", "Young",
		},
		Events: []types.EventDef{
			{Name: "regeneration", Kind: "regenerate", Every: 60, Amount: 2},
			{Name: "wandering monsters", Kind: "wander", Every: 600},
		},
	}
	return c
}

// Clone returns a deep copy of c so callers can modify it freely.
func Clone(c *types.Content) *types.Content {
	out := &types.Content{
		Title:              c.Title,
		Intro:              c.Intro,
		RoomDescriptions:   make(map[string][]string, len(c.RoomDescriptions)),
		ObjectDescriptions: make(map[string][]string, len(c.ObjectDescriptions)),
		ItemTemplates:      make(map[types.ItemKind][]types.ItemTemplate, len(c.ItemTemplates)),
		Monsters:           append([]types.MonsterArchetype(nil), c.Monsters...),
		Adjectives:         append([]string(nil), c.Adjectives...),
		Events:             append([]types.EventDef(nil), c.Events...),
	}
	for k, v := range c.RoomDescriptions {
		out.RoomDescriptions[k] = append([]string(nil), v...)
	}
	for k, v := range c.ObjectDescriptions {
		out.ObjectDescriptions[k] = append([]string(nil), v...)
	}
	for k, v := range c.ItemTemplates {
		out.ItemTemplates[k] = append([]types.ItemTemplate(nil), v...)
	}
	return out
}
