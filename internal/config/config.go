package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 50

	ConfettiDuration = 3000 * time.Millisecond
	BackdropCount    = 20
)

// Config holds the runtime settings of the confetti window.
type Config struct {
	Width     int           `env:"CONFETTI_WIDTH"`
	Height    int           `env:"CONFETTI_HEIGHT"`
	Duration  time.Duration `env:"CONFETTI_DURATION"`
	SoundPath string        `env:"CONFETTI_SOUND"`
	Verbose   bool          `env:"CONFETTI_VERBOSE"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:    WindowWidth,
		Height:   WindowHeight,
		Duration: ConfettiDuration,
	}
}

// Load reads CONFETTI_* environment variables on top of Default.
func Load() (Config, error) {
	cfg := Default()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unusable window sizes and durations.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Width, c.Height)
	}
	if c.Duration < 0 {
		return errors.New("duration must not be negative")
	}
	return nil
}
