// Package config loads dungeoncore settings: built-in defaults, then an
// optional YAML file, then DUNGEONCORE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"gopkg.in/yaml.v3"

	"github.com/nathoo/dungeoncore/engine/dungeon"
	"github.com/nathoo/dungeoncore/engine/save"
	"github.com/nathoo/dungeoncore/logger"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DUNGEONCORE_"

// Config is the full application configuration.
type Config struct {
	Player     PlayerConfig  `yaml:"player" envPrefix:"PLAYER_"`
	Dungeon    DungeonConfig `yaml:"dungeon" envPrefix:"DUNGEON_"`
	ContentDir string        `yaml:"content_dir" env:"CONTENT_DIR"`
	Save       SaveConfig    `yaml:"save" envPrefix:"SAVE_"`
	Log        LogConfig     `yaml:"log" envPrefix:"LOG_"`
}

type PlayerConfig struct {
	Name string `yaml:"name" env:"NAME"`
}

type DungeonConfig struct {
	Seed       int64  `yaml:"seed" env:"SEED"` // 0 = time-based
	Depth      int    `yaml:"depth" env:"DEPTH" validate:"min=1"`
	Difficulty int    `yaml:"difficulty" env:"DIFFICULTY" validate:"min=1"`
	RoomCount  int    `yaml:"room_count" env:"ROOM_COUNT" validate:"min=0"` // 0 = derived from depth
	Layout     string `yaml:"layout" env:"LAYOUT" validate:"oneof=graph grid"`
	GridSize   int    `yaml:"grid_size" env:"GRID_SIZE"`
}

type SaveConfig struct {
	Dir     string `yaml:"dir" env:"DIR" validate:"notblank"`
	Backend string `yaml:"backend" env:"BACKEND" validate:"oneof=file sqlite"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT" validate:"oneof=text json"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Player: PlayerConfig{Name: "Adventurer"},
		Dungeon: DungeonConfig{
			Depth:      1,
			Difficulty: 1,
			Layout:     dungeon.LayoutGraph,
			GridSize:   7,
		},
		Save: SaveConfig{Dir: "saves", Backend: save.BackendFile},
		Log:  LogConfig{Level: "warn", Format: logger.FormatText},
	}
}

// Load builds the configuration. An empty path skips the file; a path that
// does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("config: parse env: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Normalize lowercases enumerated values.
func (c *Config) Normalize() {
	c.Dungeon.Layout = strings.ToLower(strings.TrimSpace(c.Dungeon.Layout))
	c.Save.Backend = strings.ToLower(strings.TrimSpace(c.Save.Backend))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Player.Name = strings.TrimSpace(c.Player.Name)
}

var validate = newValidator()

// newValidator names fields by their YAML keys so messages match the file.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	var fieldErrs validator.ValidationErrors
	if err := validate.Struct(c); errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			errs = append(errs, errors.New(describe(fe)))
		}
	} else if err != nil {
		errs = append(errs, err)
	}

	if c.Dungeon.Layout == dungeon.LayoutGrid && c.Dungeon.GridSize < 1 {
		errs = append(errs, fmt.Errorf("dungeon.grid_size must be >= 1, got %d", c.Dungeon.GridSize))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be >= %s, got %v", field, fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "notblank":
		return field + " is required"
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}

// Logger returns the logger settings.
func (c Config) Logger() logger.Config {
	return logger.Config{Level: c.Log.Level, Format: c.Log.Format}
}

// DungeonOptions returns the generator settings.
func (c Config) DungeonOptions() dungeon.Options {
	return dungeon.Options{
		Depth:      c.Dungeon.Depth,
		Difficulty: c.Dungeon.Difficulty,
		RoomCount:  c.Dungeon.RoomCount,
	}
}
