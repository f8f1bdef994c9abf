// Package config loads doubleskunk settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	engine "github.com/rsucco/doubleskunk/engine"
	"github.com/rsucco/doubleskunk/engine/agent"
)

// Config holds every runtime setting.
type Config struct {
	Players     int    `env:"DOUBLESKUNK_PLAYERS" envDefault:"2"`
	Difficulty  string `env:"DOUBLESKUNK_DIFFICULTY" envDefault:"hard"`
	TargetScore int    `env:"DOUBLESKUNK_TARGET_SCORE" envDefault:"121"`
	Heels       bool   `env:"DOUBLESKUNK_HEELS" envDefault:"true"`
	Seed        uint64 `env:"DOUBLESKUNK_SEED" envDefault:"0"` // 0 uses the clock
	Workers     int    `env:"DOUBLESKUNK_WORKERS" envDefault:"0"`
	LogLevel    string `env:"DOUBLESKUNK_LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"DOUBLESKUNK_LOG_FORMAT" envDefault:"text"`
	Games       int    `env:"DOUBLESKUNK_GAMES" envDefault:"1"`
}

// Load reads the given .env files, skipping any that do not exist, then
// parses the environment. Variables already set win over file values.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Players != 2 && c.Players != 3 {
		return fmt.Errorf("players must be 2 or 3, got %d", c.Players)
	}
	if _, err := agent.ParseDifficulty(c.Difficulty); err != nil {
		return err
	}
	if c.TargetScore < 31 || c.TargetScore > 1000 {
		return fmt.Errorf("target score %d out of range", c.TargetScore)
	}
	if c.Games < 1 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	return nil
}

// DifficultyLevel returns the parsed difficulty. Call after Validate.
func (c Config) DifficultyLevel() agent.Difficulty {
	d, err := agent.ParseDifficulty(c.Difficulty)
	if err != nil {
		return agent.Hard
	}
	return d
}

// HouseRules builds engine rules from the configuration. Skunk lines keep
// their standard distance below the target.
func (c Config) HouseRules() engine.HouseRules {
	r := engine.DefaultHouseRules()
	r.NumPlayers = uint8(c.Players)
	r.Heels = c.Heels
	if c.TargetScore != int(r.TargetScore) {
		shift := int16(c.TargetScore) - r.TargetScore
		r.TargetScore = int16(c.TargetScore)
		r.SkunkLine = max(r.SkunkLine+shift, 0)
		r.DoubleSkunkLine = max(r.DoubleSkunkLine+shift, 0)
		r.TripleSkunkLine = max(r.TripleSkunkLine+shift, 0)
	}
	return r
}
