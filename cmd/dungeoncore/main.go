// Dungeoncore generates a dungeon and lets you explore it from the terminal.
// Usage: dungeoncore [--version] [--plain] [--config <file>] [--seed <n>] [--script <file>] [--trace] [content_directory]
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/nathoo/dungeoncore/cli"
	"github.com/nathoo/dungeoncore/config"
	"github.com/nathoo/dungeoncore/engine"
	"github.com/nathoo/dungeoncore/engine/save"
	"github.com/nathoo/dungeoncore/loader"
	"github.com/nathoo/dungeoncore/logger"
	"github.com/nathoo/dungeoncore/tui"
	"github.com/nathoo/dungeoncore/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: dungeoncore [--version] [--plain] [--config <file>] [--seed <n>] [--script <file>] [--trace] [content_directory]"

func main() {
	plain := false
	trace := false
	var configFile, scriptFile, contentDir string
	var seed int64

	args := os.Args[1:]
	value := func(i int) string {
		if i+1 >= len(args) {
			fatalf("%s requires a value\n%s", args[i], usage)
		}
		return args[i+1]
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("dungeoncore %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--config":
			configFile = value(i)
			i++
		case "--script":
			scriptFile = value(i)
			i++
		case "--seed":
			n, err := strconv.ParseInt(value(i), 10, 64)
			if err != nil {
				fatalf("--seed: %v", err)
			}
			seed = n
			i++
		case "-h", "--help":
			fmt.Println(usage)
			return
		default:
			if contentDir == "" {
				contentDir = args[i]
			}
		}
	}

	// A .env file in the working directory may carry DUNGEONCORE_* overrides.
	_ = godotenv.Load()

	cfg, err := config.Load(configFile)
	if err != nil {
		fatalf("Error loading config: %v", err)
	}
	if seed != 0 {
		cfg.Dungeon.Seed = seed
	}
	if contentDir != "" {
		cfg.ContentDir = contentDir
	}

	log := logger.New(os.Stderr, cfg.Logger())
	slog.SetDefault(log)

	var content *types.Content
	if cfg.ContentDir != "" {
		pack, err := loader.Load(cfg.ContentDir, nil)
		if err != nil {
			fatalf("Error loading content: %v", err)
		}
		for _, w := range pack.Warnings {
			log.Warn("content warning", "dir", cfg.ContentDir, "warning", w)
		}
		log.Info("content pack loaded", "dir", cfg.ContentDir, "files", len(pack.Files))
		content = pack.Content
	}

	session, err := engine.New(engine.Options{
		PlayerName: cfg.Player.Name,
		Seed:       cfg.Dungeon.Seed,
		Dungeon:    cfg.DungeonOptions(),
		Layout:     cfg.Dungeon.Layout,
		GridSize:   cfg.Dungeon.GridSize,
		Content:    content,
		Logger:     log,
	})
	if err != nil {
		fatalf("Error: %v", err)
	}

	saves, err := save.Open(cfg.Save.Backend, cfg.Save.Dir)
	if err != nil {
		log.Warn("saving disabled", "backend", cfg.Save.Backend, "dir", cfg.Save.Dir, "error", err)
		saves = nil
	} else {
		defer saves.Close()
	}

	// Script mode: read commands from a file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fatalf("Error opening script: %v", err)
		}
		defer f.Close()
		c := cli.New(session, saves)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		fmt.Printf("%s\n\n", session.Title())
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(session, saves)
		c.Trace = trace
		fmt.Printf("%s\n\n", session.Title())
		c.Run()
		return
	}

	if err := tui.Run(session, saves); err != nil {
		fatalf("Error: %v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
