package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls runtime behavior. Values layer as defaults, then
// GLYPHRAIN_* environment variables, then command-line flags.
type Config struct {
	// Width and Height override the detected terminal size; 0 means detect.
	Width  int `env:"GLYPHRAIN_WIDTH"`
	Height int `env:"GLYPHRAIN_HEIGHT"`

	// TickInterval paces the simulation; RefreshInterval paces the display.
	// The two are independent.
	TickInterval    time.Duration `env:"GLYPHRAIN_TICK"`
	RefreshInterval time.Duration `env:"GLYPHRAIN_REFRESH"`

	// SpawnChance is the per-tick probability of a new stack.
	SpawnChance float64 `env:"GLYPHRAIN_DENSITY"`

	// MinGlyphInterval and MaxGlyphInterval bound each stack's own cadence.
	MinGlyphInterval time.Duration `env:"GLYPHRAIN_MIN_GLYPH_INTERVAL"`
	MaxGlyphInterval time.Duration `env:"GLYPHRAIN_MAX_GLYPH_INTERVAL"`

	// Seed fixes the random source; 0 seeds from entropy.
	Seed uint64 `env:"GLYPHRAIN_SEED"`

	// Sound enables the spawn blip.
	Sound bool `env:"GLYPHRAIN_SOUND"`

	// LogPath enables file logging; empty discards all logs since the
	// terminal owns stdout and stderr.
	LogPath string `env:"GLYPHRAIN_LOG"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		TickInterval:     25 * time.Millisecond,
		RefreshInterval:  16 * time.Millisecond,
		SpawnChance:      0.5,
		MinGlyphInterval: 50 * time.Millisecond,
		MaxGlyphInterval: 250 * time.Millisecond,
	}
}

// FromEnv layers GLYPHRAIN_* variables over the defaults.
func FromEnv() (Config, error) {
	cfg := Default()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("invalid viewport override %dx%d", c.Width, c.Height)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", c.TickInterval)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %v", c.RefreshInterval)
	}
	if c.SpawnChance < 0 || c.SpawnChance > 1 {
		return fmt.Errorf("spawn chance must be in [0, 1], got %g", c.SpawnChance)
	}
	if c.MinGlyphInterval <= 0 {
		return fmt.Errorf("min glyph interval must be positive, got %v", c.MinGlyphInterval)
	}
	if c.MaxGlyphInterval < c.MinGlyphInterval {
		return fmt.Errorf("max glyph interval %v below min %v", c.MaxGlyphInterval, c.MinGlyphInterval)
	}
	return nil
}
