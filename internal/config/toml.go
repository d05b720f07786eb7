// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/wordsearch/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Puzzle  PuzzleConfig  `toml:"puzzle"`
	History HistoryConfig `toml:"history"`
}

// PuzzleConfig maps puzzle generation defaults.
type PuzzleConfig struct {
	File          *string      `toml:"file"`
	Dimensions    *string      `toml:"dimensions"`
	Count         *int         `toml:"count"`
	Backwards     *bool        `toml:"backwards"`
	Orientations  []string     `toml:"orientations"`
	Rules         *string      `toml:"rules"`
	Solve         *bool        `toml:"solve"`
	Underfill     *string      `toml:"underfill"`
	MaxAttempts   *int         `toml:"max-attempts"`
	PreferOverlap *bool        `toml:"prefer-overlap"`
	Format        *string      `toml:"format"`
	RuleSet       []model.Rule `toml:"rule"`
}

// HistoryConfig controls the puzzle history database.
type HistoryConfig struct {
	Enabled *bool   `toml:"enabled"`
	Path    *string `toml:"path"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
