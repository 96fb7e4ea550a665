// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the dungeoncore engine.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/dungeoncore/engine"
	"github.com/nathoo/dungeoncore/engine/save"
	"github.com/nathoo/dungeoncore/types"
)

const defaultSlot = "quicksave"

// CLI handles line-oriented interaction with the player.
type CLI struct {
	Session   *engine.Session
	Saves     save.Store
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given session and save store.
func New(s *engine.Session, saves save.Store) *CLI {
	return &CLI{
		Session: s,
		Saves:   saves,
		In:      os.Stdin,
		Out:     os.Stdout,
	}
}

// Run starts a new game and loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	c.printResponse(c.Session.Initialize())

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		resp := c.Session.Process(input)
		c.printResponse(resp)
		if c.Trace {
			c.printTrace(resp.State)
		}
		if c.Session.Over() {
			c.printSystem("Game over. Use /load to restore a save or /quit to exit.")
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true
	case "/save":
		c.cmdSave(arg)
	case "/load":
		c.cmdLoad(arg)
	case "/saves":
		c.cmdSaves()
	case "/help":
		c.cmdHelp()
	case "/state":
		c.cmdState()
	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}
	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}
	return false
}

func (c *CLI) cmdSave(slot string) {
	if slot == "" {
		slot = defaultSlot
	}
	if err := SaveSlot(context.Background(), c.Session, c.Saves, slot); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game saved to %s.", slot))
}

func (c *CLI) cmdLoad(slot string) {
	if slot == "" {
		slot = defaultSlot
	}
	turn, err := LoadSlot(context.Background(), c.Session, c.Saves, slot)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game loaded from %s (turn %d).", slot, turn))
	for _, line := range c.Session.Look() {
		c.printLine(line)
	}
}

var errSavesDisabled = errors.New("saving is disabled")

// SaveSlot writes the session's state to slot.
func SaveSlot(ctx context.Context, s *engine.Session, saves save.Store, slot string) error {
	if saves == nil {
		return errSavesDisabled
	}
	data, err := save.Save(s.Export(), s.Title())
	if err != nil {
		return err
	}
	return saves.Put(ctx, slot, data)
}

// LoadSlot replaces the session's state with the save in slot and returns
// the turn it was taken on.
func LoadSlot(ctx context.Context, s *engine.Session, saves save.Store, slot string) (int, error) {
	if saves == nil {
		return 0, errSavesDisabled
	}
	data, err := saves.Get(ctx, slot)
	if errors.Is(err, save.ErrNoSlot) {
		return 0, fmt.Errorf("no save named %s", slot)
	}
	if err != nil {
		return 0, err
	}
	sd, err := save.Load(data)
	if err != nil {
		return 0, err
	}
	if err := s.Restore(sd.State); err != nil {
		return 0, err
	}
	return sd.State.TurnCount, nil
}

func (c *CLI) cmdSaves() {
	if c.Saves == nil {
		c.printSystem("Saving is disabled.")
		return
	}
	slots, err := c.Saves.List(context.Background())
	if err != nil {
		c.printSystem(fmt.Sprintf("Listing saves failed: %v", err))
		return
	}
	if len(slots) == 0 {
		c.printSystem("No saved games.")
		return
	}
	for _, s := range slots {
		c.printSystem(fmt.Sprintf("%s  (%s)", s.Name, s.UpdatedAt.Local().Format("2006-01-02 15:04")))
	}
}

func (c *CLI) cmdHelp() {
	for _, line := range HelpLines(c.Session.Commands()) {
		c.printLine(line)
	}
}

// HelpLines renders the meta-commands and the game's command table.
func HelpLines(cmds []types.CommandDef) []string {
	lines := []string{
		"System:",
		"  /save [name]  — Save game (default: quicksave)",
		"  /load [name]  — Load game (default: quicksave)",
		"  /saves        — List saved games",
		"  /quit         — Exit game",
		"  /help         — Show this help",
		"  /state        — Debug: dump current state",
		"  /trace        — Toggle debug trace output",
		"",
		"Game commands:",
	}
	for _, def := range cmds {
		usage := def.Usage
		if len(def.Aliases) > 0 {
			usage += " (" + strings.Join(def.Aliases, ", ") + ")"
		}
		lines = append(lines, fmt.Sprintf("  %-40s — %s", usage, def.Description))
	}
	lines = append(lines, fmt.Sprintf("  %-40s — %s", "again (g)", "Repeat your last command"))
	return lines
}

func (c *CLI) cmdState() {
	s := c.Session.Snapshot()
	c.printSystem(fmt.Sprintf("Turn: %d", s.Turn))
	c.printSystem(fmt.Sprintf("Elapsed: %ds", s.Elapsed))
	c.printSystem(fmt.Sprintf("Location: %s (%s)", s.Location.Name, s.Location.ID))
	c.printSystem(fmt.Sprintf("Health: %d/%d", s.Player.Health, s.Player.MaxHealth))
	names := make([]string, len(s.Player.Inventory))
	for i, it := range s.Player.Inventory {
		names[i] = it.Name
	}
	c.printSystem(fmt.Sprintf("Inventory: %v", names))
	if len(s.Flags) > 0 {
		c.printSystem(fmt.Sprintf("Flags: %v", s.Flags))
	}
}

func (c *CLI) printTrace(s types.Snapshot) {
	c.printSystem(fmt.Sprintf("[trace] turn=%d elapsed=%ds room=%s hp=%d/%d",
		s.Turn, s.Elapsed, s.Location.ID, s.Player.Health, s.Player.MaxHealth))
}

func (c *CLI) printResponse(resp types.Response) {
	for _, line := range resp.Messages {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
