package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/dungeoncore/content"
	"github.com/nathoo/dungeoncore/types"
)

// writePack writes Lua files into a fresh directory and returns it.
func writePack(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

const cryptPack = `
Game { title = "The Sunken Crypt", intro = "Water drips somewhere below." }

Rooms "crypt" {
  "Flooded alcoves line the walls.",
  "Bones float in knee-deep water.",
}

Weapon { name = "Bone Club", damage = "1d8", attack_bonus = 1, weight = 6, value = 12 }
Weapon { name = "Rusted Trident", damage = "2d4", weight = 8, value = 20,
         description = "Green with age." }

Monster { name = "Drowned One", health = 5, strength = 1, dexterity = -2 }
Monster { name = "Eel", health = -10, dexterity = 4 }

Adjectives { "Bloated", "Pale" }

Event { name = "regeneration", kind = "regenerate", every = 120, amount = 1 }
Event { name = "tide", kind = "wander", every = 300 }
`

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := writePack(t, map[string]string{"game.lua": cryptPack})
	pack, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	c := pack.Content
	def := content.Default()

	if c.Title != "The Sunken Crypt" || c.Intro != "Water drips somewhere below." {
		t.Errorf("title/intro = %q / %q", c.Title, c.Intro)
	}

	if got := c.RoomDescriptions["crypt"]; len(got) != 2 || got[1] != "Bones float in knee-deep water." {
		t.Errorf("crypt descriptions = %v", got)
	}
	if len(c.RoomDescriptions["forge"]) != len(def.RoomDescriptions["forge"]) {
		t.Error("undeclared room type should keep its defaults")
	}

	weapons := c.ItemTemplates[types.KindWeapon]
	if len(weapons) != 2 {
		t.Fatalf("expected 2 weapons, got %d", len(weapons))
	}
	if weapons[0].Name != "Bone Club" || weapons[0].Damage != "1d8" || weapons[0].AttackBonus != 1 ||
		weapons[0].Weight != 6 || weapons[0].Value != 12 {
		t.Errorf("bone club = %+v", weapons[0])
	}
	if weapons[1].Description != "Green with age." {
		t.Errorf("trident description = %q", weapons[1].Description)
	}
	if len(c.ItemTemplates[types.KindPotion]) != len(def.ItemTemplates[types.KindPotion]) {
		t.Error("undeclared item kind should keep its defaults")
	}

	if len(c.Monsters) != 2 {
		t.Fatalf("expected 2 monsters, got %d", len(c.Monsters))
	}
	if m := c.Monsters[1]; m.Name != "Eel" || m.HealthMod != -10 || m.StrengthMod != 0 || m.DexterityMod != 4 {
		t.Errorf("eel = %+v", m)
	}

	if len(c.Adjectives) != 2 || c.Adjectives[0] != "Bloated" {
		t.Errorf("adjectives = %v", c.Adjectives)
	}

	events := map[string]types.EventDef{}
	for _, ev := range c.Events {
		events[ev.Name] = ev
	}
	if ev := events["regeneration"]; ev.Every != 120 || ev.Amount != 1 {
		t.Errorf("regeneration = %+v", ev)
	}
	if ev := events["tide"]; ev.Kind != "wander" || ev.Every != 300 {
		t.Errorf("tide = %+v", ev)
	}
	if len(c.Events) != len(def.Events)+1 {
		t.Errorf("expected %d events, got %d", len(def.Events)+1, len(c.Events))
	}
}

func TestLoad_BaseUntouched(t *testing.T) {
	base := content.Default()
	dir := writePack(t, map[string]string{"game.lua": cryptPack})
	if _, err := Load(dir, base); err != nil {
		t.Fatal(err)
	}
	if base.Title != "The Dungeon" {
		t.Errorf("base title changed to %q", base.Title)
	}
	if len(base.Monsters) == 2 {
		t.Error("base monsters replaced")
	}
}

func TestLoad_FileOrder(t *testing.T) {
	dir := writePack(t, map[string]string{
		"b_more.lua":  `Game { title = "From B" }`,
		"a_first.lua": `Game { title = "From A" }`,
		"game.lua":    `Game { title = "From Game" }`,
	})
	pack, err := Load(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"game.lua", "a_first.lua", "b_more.lua"}
	if strings.Join(pack.Files, ",") != strings.Join(want, ",") {
		t.Errorf("files = %v, want %v", pack.Files, want)
	}
	if pack.Content.Title != "From B" {
		t.Errorf("title = %q, want the last file's", pack.Content.Title)
	}
}

func TestLoad_NoLuaFiles(t *testing.T) {
	dir := writePack(t, map[string]string{"notes.txt": "hello"})
	if _, err := Load(dir, nil); err == nil {
		t.Error("expected error for directory without .lua files")
	}
	if _, err := Load(filepath.Join(dir, "missing"), nil); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestLoad_LuaError(t *testing.T) {
	dir := writePack(t, map[string]string{"broken.lua": `Game { title = `})
	_, err := Load(dir, nil)
	if err == nil || !strings.Contains(err.Error(), "broken.lua") {
		t.Errorf("expected error naming broken.lua, got %v", err)
	}
}

func TestLoad_Sandbox(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"dofile", `dofile("/etc/passwd")`},
		{"loadstring", `loadstring("return 1")()`},
		{"os", `os.exit(1)`},
		{"io", `io.open("x")`},
		{"math.random", `local x = math.random(6)`},
		{"math.randomseed", `math.randomseed(1)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writePack(t, map[string]string{"game.lua": tt.src})
			if _, err := Load(dir, nil); err == nil {
				t.Errorf("%s should not be callable", tt.name)
			}
		})
	}
}

func TestLoad_SafeLibs(t *testing.T) {
	dir := writePack(t, map[string]string{"game.lua": `
local names = {}
for i = 1, 3 do
  table.insert(names, string.format("Vault %d", math.floor(i * 1.5)))
end
Rooms "treasury" (names)
`})
	pack, err := Load(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := pack.Content.RoomDescriptions["treasury"]
	if len(got) != 3 || got[2] != "Vault 4" {
		t.Errorf("treasury = %v", got)
	}
}

func TestLoad_NonStringDescription(t *testing.T) {
	dir := writePack(t, map[string]string{"game.lua": `Objects "bones" { "A skull.", 42 }`})
	_, err := Load(dir, nil)
	if err == nil || !strings.Contains(err.Error(), `objects "bones"`) {
		t.Errorf("expected objects error, got %v", err)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	dir := writePack(t, map[string]string{"game.lua": `
Weapon { name = "Wet Noodle", damage = "lots" }
Potion { name = "Murky Brew", effect = "flight", power = 3 }
Event { name = "quake", kind = "earthquake", every = 10 }
`})
	_, err := Load(dir, nil)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(ve.Errors), ve.Errors)
	}
}

func TestLoad_Warnings(t *testing.T) {
	dir := writePack(t, map[string]string{"game.lua": `Rooms "ballroom" { "Dusty chandeliers." }`})
	pack, err := Load(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(pack.Warnings) != 1 || !strings.Contains(pack.Warnings[0], "ballroom") {
		t.Errorf("warnings = %v", pack.Warnings)
	}
}
