package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Puzzle.Count != nil || cfg.Puzzle.Dimensions != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[puzzle]
dimensions = "12x10"
count = 15
backwards = true
underfill = "warn"

[[puzzle.rule]]
size = 5
count = 2

[[puzzle.rule]]
size = 4
count = 3

[history]
enabled = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Puzzle.Dimensions == nil || *cfg.Puzzle.Dimensions != "12x10" {
		t.Fatalf("unexpected dimensions %v", cfg.Puzzle.Dimensions)
	}
	if cfg.Puzzle.Count == nil || *cfg.Puzzle.Count != 15 {
		t.Fatalf("unexpected count %v", cfg.Puzzle.Count)
	}
	if cfg.Puzzle.Backwards == nil || !*cfg.Puzzle.Backwards {
		t.Fatalf("expected backwards = true")
	}
	if cfg.Puzzle.Solve != nil {
		t.Fatalf("expected solve to be unset")
	}
	if len(cfg.Puzzle.RuleSet) != 2 || cfg.Puzzle.RuleSet[0].Size != 5 || cfg.Puzzle.RuleSet[1].Count != 3 {
		t.Fatalf("unexpected rules %+v", cfg.Puzzle.RuleSet)
	}
	if cfg.History.Enabled == nil || *cfg.History.Enabled {
		t.Fatalf("expected history disabled")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[puzzle\ncount = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDefaultPathsHonorXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "wordsearch", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "wordsearch", "wordsearch.db") {
		t.Fatalf("unexpected db path %q", got)
	}
}
