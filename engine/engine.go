// Package engine provides the Session that wires together parsing,
// validation, state mutation, combat and timed events into a single turn.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nathoo/dungeoncore/content"
	"github.com/nathoo/dungeoncore/engine/combat"
	"github.com/nathoo/dungeoncore/engine/dungeon"
	"github.com/nathoo/dungeoncore/engine/events"
	"github.com/nathoo/dungeoncore/engine/parser"
	"github.com/nathoo/dungeoncore/engine/rng"
	"github.com/nathoo/dungeoncore/engine/state"
	"github.com/nathoo/dungeoncore/types"
)

// staggerSeconds is how long a monster's critical hit keeps the player from
// acting.
const staggerSeconds = 6

// Player defaults.
const (
	DefaultPlayerName = "Adventurer"
	startingHealth    = 100
	startingCarry     = 50
	firstLevelXP      = 100
)

// Options configures a Session.
type Options struct {
	PlayerName string
	Seed       int64 // 0 picks a time-based seed
	Dungeon    dungeon.Options
	Layout     string // dungeon.LayoutGraph (default) or dungeon.LayoutGrid
	GridSize   int
	Content    *types.Content // nil uses content.Default()
	Logger     *slog.Logger   // nil discards
}

// ValidationError reports a command that is well formed but cannot be
// carried out. The world is left untouched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Session is one game. All methods are safe for concurrent use; commands
// are processed one at a time.
type Session struct {
	mu         sync.Mutex
	opts       Options
	content    *types.Content
	registry   *parser.Registry
	rng        *rng.RNG
	store      *state.Store
	difficulty int
	log        *slog.Logger
}

// New validates opts and returns a session ready to Initialize.
func New(opts Options) (*Session, error) {
	switch opts.Layout {
	case "":
		opts.Layout = dungeon.LayoutGraph
	case dungeon.LayoutGraph, dungeon.LayoutGrid:
	default:
		return nil, fmt.Errorf("engine: unknown layout %q", opts.Layout)
	}
	if opts.Layout == dungeon.LayoutGrid && opts.GridSize < 1 {
		return nil, fmt.Errorf("%w: %d", dungeon.ErrInvalidGridSize, opts.GridSize)
	}
	if opts.PlayerName == "" {
		opts.PlayerName = DefaultPlayerName
	}

	c := opts.Content
	if c == nil {
		c = content.Default()
	}
	if len(c.Monsters) == 0 {
		return nil, errors.New("engine: content has no monsters")
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Session{
		opts:     opts,
		content:  c,
		registry: parser.DefaultRegistry(),
		log:      log,
	}, nil
}

// NewPlayer returns a level 1 character.
func NewPlayer(name string) types.Player {
	if name == "" {
		name = DefaultPlayerName
	}
	return types.Player{
		Combatant: types.Combatant{
			Name:      name,
			Health:    startingHealth,
			MaxHealth: startingHealth,
			Level:     1,
			Stats:     types.Stats{Strength: 10, Dexterity: 10, Intelligence: 10, Constitution: 10},
			Inventory: types.Inventory{Items: []types.Item{}, MaxWeight: startingCarry},
		},
		ExperienceToNextLevel: firstLevelXP,
	}
}

// Initialize generates a fresh dungeon, places a new player at its entrance
// and returns the opening narration.
func (s *Session) Initialize() types.Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed := s.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.rng = rng.New(seed)

	d := s.generate()
	s.difficulty = d.Difficulty
	s.log.Debug("dungeon generated",
		"seed", seed,
		"layout", d.Layout,
		"rooms", len(d.Rooms),
		"reachable", len(dungeon.Reachable(d)))

	s.store = state.New(NewPlayer(s.opts.PlayerName), d)
	s.store.SetTimers(events.Init(s.content.Events, 0))
	s.store.SetRNG(s.rng.Seed(), s.rng.Position())

	var out []string
	if s.content.Intro != "" {
		out = append(out, s.content.Intro, "")
	}
	room := s.store.CurrentRoom()
	out = append(out, describeRoom(&room)...)
	return s.respond(true, out)
}

func (s *Session) generate() *types.Dungeon {
	if s.opts.Layout == dungeon.LayoutGrid {
		g, err := dungeon.BuildGrid(s.opts.GridSize, s.rng)
		if err != nil {
			// GridSize was checked by New.
			panic("engine: precondition violated: " + err.Error())
		}
		return dungeon.FromGrid(g, s.opts.Dungeon, s.rng, s.content)
	}
	return dungeon.Generate(s.opts.Dungeon, s.rng, s.content)
}

// Process parses and executes one command. Failures are reported in the
// response with Success false and leave the world unchanged.
func (s *Session) Process(input string) types.Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return types.Response{Success: false, Messages: []string{"The game has not started."}}
	}

	// 1. Parse.
	cmd, err := parser.Parse(input, s.registry)
	if err != nil {
		return s.respond(false, []string{err.Error()})
	}

	// 2. Game over: only free system commands.
	if s.over() && (cmd.Def.Category != types.CategorySystem || cmd.Def.TimeCost > 0) {
		return s.respond(false, []string{"The game is over. Load a save or start a new game."})
	}

	// 3. Readiness.
	if cmd.Def.Category != types.CategorySystem {
		if wait := s.store.ReadyAt() - s.store.Elapsed(); wait > 0 {
			return s.respond(false, []string{fmt.Sprintf(
				"You are still recovering and cannot act for another %d seconds. (try 'wait')", wait)})
		}
	}

	// 4. Validate and apply.
	h, ok := handlers[cmd.Verb]
	if !ok {
		panic("engine: precondition violated: no handler for " + cmd.Verb)
	}
	t := &turn{cmd: cmd}
	if err := h(s, t); err != nil {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			s.log.Error("command failed", "input", cmd.Raw, "err", err)
		}
		return s.respond(false, []string{err.Error()})
	}
	s.store.LogCommand(cmd.Raw)

	// 5. Time and events.
	if cmd.Def.TimeCost > 0 {
		s.tick(t)
	}
	s.store.SetRNG(s.rng.Seed(), s.rng.Position())

	s.log.Debug("command",
		"verb", cmd.Verb,
		"args", cmd.Args,
		"cost", cmd.Def.TimeCost,
		"elapsed", s.store.Elapsed(),
		"turn", s.store.Turn())
	return s.respond(true, t.out)
}

// tick spends the command's time and fires the events it crossed.
func (s *Session) tick(t *turn) {
	now := s.store.AdvanceTime(t.cmd.Def.TimeCost)
	if t.stagger {
		s.store.SetReadyAt(now + staggerSeconds)
	}

	firings, timers := events.Due(s.content.Events, s.store.Timers(), now)
	s.store.SetTimers(timers)
	for _, f := range firings {
		switch f.Def.Kind {
		case events.KindRegenerate:
			s.store.RegenerateMonsters(f.Def.Amount)
			if s.store.Player().Health > 0 {
				s.store.Heal(f.Def.Amount)
			}
		case events.KindWander:
			rooms := s.store.QuietRooms()
			if len(rooms) == 0 {
				continue
			}
			roomID := rng.Pick(s.rng, rooms)
			m := combat.GenerateMonster(s.difficulty, s.rng, s.content)
			if err := s.store.SpawnMonster(roomID, m); err != nil {
				s.log.Error("wander spawn failed", "room", roomID, "err", err)
				continue
			}
			s.log.Debug("monster wandered in", "room", roomID, "monster", m.Name, "at", f.At)
			t.say("You hear something moving in the distance.")
		default:
			s.log.Warn("unknown event kind", "event", f.Def.Name, "kind", f.Def.Kind)
		}
	}
}

func (s *Session) over() bool {
	return s.store.Flag(state.FlagGameOver) || s.store.Flag(state.FlagVictory)
}

func (s *Session) respond(ok bool, msgs []string) types.Response {
	if msgs == nil {
		msgs = []string{}
	}
	return types.Response{Success: ok, Messages: msgs, State: s.store.Snapshot()}
}

// Snapshot returns the presentation view of the current state.
func (s *Session) Snapshot() types.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return types.Snapshot{}
	}
	return s.store.Snapshot()
}

// Export returns a deep copy of the full state, RNG position included.
func (s *Session) Export() types.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return types.GameState{}
	}
	s.store.SetRNG(s.rng.Seed(), s.rng.Position())
	return s.store.Export()
}

// Restore replaces the session's world with gs, e.g. from a save.
func (s *Session) Restore(gs types.GameState) error {
	if dungeon.FindRoom(&gs.Dungeon, gs.CurrentRoom) == nil {
		return fmt.Errorf("engine: restore: %w: %s", state.ErrUnknownRoom, gs.CurrentRoom)
	}
	if gs.Player.ExperienceToNextLevel <= 0 {
		return errors.New("engine: restore: player has no level threshold")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rng.Restore(gs.RNGSeed, gs.RNGPosition)
	s.store = state.Import(gs)
	s.difficulty = gs.Dungeon.Difficulty
	if len(s.store.Timers()) == 0 {
		s.store.SetTimers(events.Init(s.content.Events, s.store.Elapsed()))
	}
	s.log.Debug("state restored", "room", gs.CurrentRoom, "elapsed", gs.Elapsed)
	return nil
}

// Look describes the current room without spending game time.
func (s *Session) Look() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	room := s.store.CurrentRoom()
	return describeRoom(&room)
}

// Commands returns the registered commands.
func (s *Session) Commands() []types.CommandDef {
	return s.registry.Commands()
}

// Title returns the game title.
func (s *Session) Title() string {
	return s.content.Title
}

// Over reports whether the game has ended by death or victory.
func (s *Session) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store != nil && s.over()
}
