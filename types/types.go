// Package types defines the shared data structures for the dungeoncore engine.
// This package contains only type definitions, no logic or methods.
package types

// ItemKind discriminates the Item variant.
type ItemKind string

const (
	KindWeapon   ItemKind = "weapon"
	KindArmor    ItemKind = "armor"
	KindPotion   ItemKind = "potion"
	KindTreasure ItemKind = "treasure"
	KindKey      ItemKind = "key"
)

// Slot is an equipment slot name.
type Slot string

const (
	SlotNone      Slot = ""
	SlotWeapon    Slot = "weapon"
	SlotArmor     Slot = "armor"
	SlotAccessory Slot = "accessory"
)

// WeaponProps is the weapon payload of an Item.
type WeaponProps struct {
	Damage      string `json:"damage"` // dice spec, e.g. "1d6"
	AttackBonus int    `json:"attackBonus,omitempty"`
}

// ArmorProps is the armor payload of an Item.
type ArmorProps struct {
	Protection int `json:"protection"`
}

// PotionProps is the potion payload of an Item.
type PotionProps struct {
	Effect string `json:"effect"` // "heal", "strength", "cure"
	Power  int    `json:"power"`
}

// Item is a tagged variant: the base fields are shared, exactly one payload
// pointer matching Kind is set for weapons, armor and potions.
type Item struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Kind        ItemKind     `json:"type"`
	Description string       `json:"description,omitempty"`
	Weight      float64      `json:"weight"`
	Value       int          `json:"value"`
	Takeable    bool         `json:"takeable"`
	Equipable   bool         `json:"equipable"`
	Slot        Slot         `json:"slot,omitempty"`
	Equipped    bool         `json:"equipped"`
	Weapon      *WeaponProps `json:"weapon,omitempty"`
	Armor       *ArmorProps  `json:"armor,omitempty"`
	Potion      *PotionProps `json:"potion,omitempty"`
}

// Inventory is an ordered item container. Weight caches the sum of item
// weights. MaxWeight of zero means the container is unbounded.
type Inventory struct {
	Items     []Item  `json:"items"`
	Weight    float64 `json:"weight"`
	MaxWeight float64 `json:"maxWeight"`
}

// Stats is the attribute block shared by every combatant.
type Stats struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Intelligence int `json:"intelligence"`
	Constitution int `json:"constitution"`
}

// Skills is the trained-skill block. Monsters leave it zero.
type Skills struct {
	Combat     int `json:"combat"`
	Magic      int `json:"magic"`
	Stealth    int `json:"stealth"`
	Perception int `json:"perception"`
}

// Equipment holds the IDs of equipped inventory items per slot.
type Equipment struct {
	Weapon    string `json:"weapon,omitempty"`
	Armor     string `json:"armor,omitempty"`
	Accessory string `json:"accessory,omitempty"`
}

// Combatant is the stat block shared by players and monsters.
type Combatant struct {
	Name      string    `json:"name"`
	Health    int       `json:"health"`
	MaxHealth int       `json:"maxHealth"`
	Level     int       `json:"level"`
	Stats     Stats     `json:"stats"`
	Skills    Skills    `json:"skills"`
	Equipment Equipment `json:"equipment"`
	Inventory Inventory `json:"inventory"`
}

// Player is the player character.
type Player struct {
	Combatant
	Experience            int `json:"experience"`
	ExperienceToNextLevel int `json:"experienceToNextLevel"`
	ReadyAt               int `json:"readyAt"`
}

// Monster is a hostile combatant living in a room.
type Monster struct {
	Combatant
	ID        string `json:"id"`
	Archetype string `json:"archetype"`
	XPReward  int    `json:"xpReward"`
	Boss      bool   `json:"boss,omitempty"`
}

// Room is a node of the dungeon graph.
type Room struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Description string            `json:"description"`
	Detail      string            `json:"detail,omitempty"`
	Exits       map[string]string `json:"exits"` // direction → room id
	Items       Inventory         `json:"items"`
	Monsters    []Monster         `json:"monsters"`
	Visited     bool              `json:"visited"`
}

// Dungeon is a generated level.
type Dungeon struct {
	Name        string `json:"name"`
	Depth       int    `json:"depth"`
	Difficulty  int    `json:"difficulty"`
	Layout      string `json:"layout"` // "graph" or "grid"
	Rooms       []Room `json:"rooms"`
	StartRoomID string `json:"startRoomId"`
}

// Timer tracks the next firing time of a scheduled event.
type Timer struct {
	Name   string `json:"name"`
	NextAt int    `json:"nextAt"`
}

// GameState is the complete mutable world of one session.
type GameState struct {
	Player      Player          `json:"player"`
	Dungeon     Dungeon         `json:"dungeon"`
	CurrentRoom string          `json:"currentRoom"`
	Elapsed     int             `json:"elapsed"` // game seconds
	TurnCount   int             `json:"turnCount"`
	Flags       map[string]bool `json:"flags"`
	Timers      []Timer         `json:"timers"`
	RNGSeed     int64           `json:"rngSeed"`
	RNGPosition int64           `json:"rngPosition"`
	CommandLog  []string        `json:"commandLog"`
}

// Category groups commands by the handler that executes them.
type Category string

const (
	CategoryMovement    Category = "movement"
	CategoryInteraction Category = "interaction"
	CategoryCombat      Category = "combat"
	CategorySystem      Category = "system"
)

// CommandDef is one entry of the command registry.
type CommandDef struct {
	Name        string
	Category    Category
	TimeCost    int // game seconds
	Description string
	Usage       string
	Aliases     []string
}

// Command is the parsed representation of a player command.
type Command struct {
	Verb string
	Args string
	Def  CommandDef
	Raw  string
}

// PlayerView is the presentation-safe copy of the player.
type PlayerView struct {
	Name                  string    `json:"name"`
	Health                int       `json:"health"`
	MaxHealth             int       `json:"maxHealth"`
	Level                 int       `json:"level"`
	Experience            int       `json:"experience"`
	ExperienceToNextLevel int       `json:"experienceToNextLevel"`
	CurrentWeight         float64   `json:"currentWeight"`
	MaxCarryWeight        float64   `json:"maxCarryWeight"`
	Stats                 Stats     `json:"stats"`
	Skills                Skills    `json:"skills"`
	Inventory             []Item    `json:"inventory"`
	Equipment             Equipment `json:"equipment"`
}

// LocationView is the presentation-safe copy of the current room.
type LocationView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Detail      string   `json:"detail,omitempty"`
	Exits       []string `json:"exits"`
	Items       []Item   `json:"items"`
	Monsters    []string `json:"monsters"`
}

// Snapshot is the read-only state handed to presentation code.
type Snapshot struct {
	Player   PlayerView      `json:"player"`
	Location LocationView    `json:"currentLocation"`
	Elapsed  int             `json:"elapsedTime"`
	Turn     int             `json:"turn"`
	Flags    map[string]bool `json:"flags"`
}

// Response is the output of initializing a session or processing a command.
type Response struct {
	Success  bool     `json:"success"`
	Messages []string `json:"messages"`
	State    Snapshot `json:"gameState"`
}

// ItemTemplate describes an item the generator can instantiate.
type ItemTemplate struct {
	Name        string
	Description string
	Weight      float64
	Value       int
	Damage      string
	AttackBonus int
	Protection  int
	Effect      string
	Power       int
}

// MonsterArchetype is an entry of the monster table.
type MonsterArchetype struct {
	Name         string
	HealthMod    int
	StrengthMod  int
	DexterityMod int
}

// EventDef declares a recurring time-triggered event.
type EventDef struct {
	Name   string
	Kind   string // "regenerate", "wander"
	Every  int    // game seconds
	Amount int
}

// Content is the data the generator, combat resolver and scheduler draw from.
type Content struct {
	Title              string
	Intro              string
	RoomDescriptions   map[string][]string
	ObjectDescriptions map[string][]string
	ItemTemplates      map[ItemKind][]ItemTemplate
	Monsters           []MonsterArchetype
	Adjectives         []string
	Events             []EventDef
}
