package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boatsim.toml")
	body := `
[simulation]
tick_rate = "20ms"
seed = 42

[spawn.obstacle]
initial = ["1s"]
reroll_min = "2s"
reroll_max = "3s"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.TickRate != 20*time.Millisecond {
		t.Errorf("TickRate = %s, want 20ms", cfg.Simulation.TickRate)
	}
	if cfg.Simulation.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Simulation.Seed)
	}
	if len(cfg.Spawn.Obstacle.Initial) != 1 || cfg.Spawn.Obstacle.Initial[0] != time.Second {
		t.Errorf("Obstacle.Initial = %v, want [1s]", cfg.Spawn.Obstacle.Initial)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// untouched sections keep their defaults
	if cfg.Field.Width != 512 {
		t.Errorf("Field.Width = %v, want 512", cfg.Field.Width)
	}
}

func TestValidate_RejectsBadRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"inverted reroll", func(c *Config) {
			c.Spawn.Pirate.RerollMin, c.Spawn.Pirate.RerollMax = 5*time.Second, time.Second
		}},
		{"empty reroll", func(c *Config) {
			c.Spawn.Barrel.RerollMax = c.Spawn.Barrel.RerollMin
		}},
		{"unordered thresholds", func(c *Config) {
			c.Difficulty.HardThreshold = c.Difficulty.MediumThreshold
		}},
		{"margin wider than field", func(c *Config) {
			c.Field.SpawnMargin = c.Field.Width
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("Validate() = %v, want ErrInvalidRange", err)
			}
		})
	}
}

func TestValidate_RejectsMissingTimers(t *testing.T) {
	c := Default()
	c.Spawn.SideCannon.Initial = nil
	if err := c.Validate(); err == nil {
		t.Error("Validate() accepted an empty initial timer list")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load of missing file returned nil error")
	}
}
