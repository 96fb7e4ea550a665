// Package save implements the JSON save format and the slot stores that
// keep saves on disk.
package save

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nathoo/dungeoncore/types"
)

// FormatVersion is written into every save and checked on load.
const FormatVersion = 1

// ErrIncompatible is returned for saves written by another format version.
var ErrIncompatible = errors.New("save: incompatible format version")

// SaveData is the JSON-serializable save format.
type SaveData struct {
	Version int             `json:"version"`
	Game    string          `json:"game"`
	State   types.GameState `json:"state"`
}

// Save serializes game state to JSON bytes.
func Save(gs types.GameState, game string) ([]byte, error) {
	data := SaveData{
		Version: FormatVersion,
		Game:    game,
		State:   gs,
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("save: decode: %w", err)
	}
	if sd.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrIncompatible, sd.Version)
	}
	if sd.State.Dungeon.StartRoomID == "" || len(sd.State.Dungeon.Rooms) == 0 {
		return nil, fmt.Errorf("save: no dungeon in save")
	}

	// Ensure maps and slices are never nil after load.
	gs := &sd.State
	if gs.Flags == nil {
		gs.Flags = map[string]bool{}
	}
	if gs.Timers == nil {
		gs.Timers = []types.Timer{}
	}
	if gs.CommandLog == nil {
		gs.CommandLog = []string{}
	}
	if gs.Player.Inventory.Items == nil {
		gs.Player.Inventory.Items = []types.Item{}
	}
	for i := range gs.Dungeon.Rooms {
		if gs.Dungeon.Rooms[i].Exits == nil {
			gs.Dungeon.Rooms[i].Exits = map[string]string{}
		}
	}
	return &sd, nil
}
