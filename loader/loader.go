package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/dungeoncore/content"
	"github.com/nathoo/dungeoncore/types"
	lua "github.com/yuin/gopher-lua"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	game       *lua.LTable
	rooms      []rawList
	objects    []rawList
	items      []rawItem
	monsters   []*lua.LTable
	adjectives []*lua.LTable
	events     []*lua.LTable
}

// Pack is the result of loading a content pack.
type Pack struct {
	Content  *types.Content
	Files    []string // in execution order
	Warnings []string
}

// Load reads all .lua files from dir, applies them on top of base (the
// built-in content when nil) and validates the result. base itself is never
// modified. The Lua VM is discarded after loading.
func Load(dir string, base *types.Content) (*Pack, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}

	// Sort: game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	if base == nil {
		base = content.Default()
	}
	c, err := compile(coll, base)
	if err != nil {
		return nil, fmt.Errorf("compiling content: %w", err)
	}

	ve := validate(c)
	if len(ve.Errors) > 0 {
		return nil, ve
	}
	return &Pack{Content: c, Files: luaFiles, Warnings: ve.Warnings}, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Content is generated from the session RNG only.
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("random", lua.LNil)
		tbl.RawSetString("randomseed", lua.LNil)
	}
}
