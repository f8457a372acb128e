// Package config provides YAML-based configuration loading for termsnake.
// The board size is fixed and deliberately not configurable.
package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/sm1k0/termsnake/internal/core"
	"github.com/sm1k0/termsnake/internal/games/snake"
)

// Config contains all user-tunable settings.
type Config struct {
	Timing Timing    `yaml:"timing"`
	Glyphs Glyphs    `yaml:"glyphs"`
	Theme  Theme     `yaml:"theme"`
	Log    LogConfig `yaml:"log"`
}

// Timing sets the tick and render periods.
type Timing struct {
	Tick   time.Duration `yaml:"tick"`
	Render time.Duration `yaml:"render"`
}

// Glyphs are single-character strings for each board element.
type Glyphs struct {
	Border string `yaml:"border"`
	Snake  string `yaml:"snake"`
	Food   string `yaml:"food"`
}

// Theme holds color names (see core.ParseColor).
type Theme struct {
	Border string `yaml:"border"`
	Snake  string `yaml:"snake"`
	Food   string `yaml:"food"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks periods, glyphs, colors and the log level.
func (c Config) Validate() error {
	if c.Timing.Tick <= 0 {
		return fmt.Errorf("%w: timing.tick must be positive, got %s", ErrInvalid, c.Timing.Tick)
	}
	if c.Timing.Render <= 0 {
		return fmt.Errorf("%w: timing.render must be positive, got %s", ErrInvalid, c.Timing.Render)
	}

	glyphs := []struct{ field, value string }{
		{"glyphs.border", c.Glyphs.Border},
		{"glyphs.snake", c.Glyphs.Snake},
		{"glyphs.food", c.Glyphs.Food},
	}
	for _, g := range glyphs {
		if utf8.RuneCountInString(g.value) != 1 {
			return fmt.Errorf("%w: %s must be exactly one character, got %q", ErrInvalid, g.field, g.value)
		}
	}

	colors := []struct{ field, name string }{
		{"theme.border", c.Theme.Border},
		{"theme.snake", c.Theme.Snake},
		{"theme.food", c.Theme.Food},
	}
	for _, col := range colors {
		if _, ok := core.ParseColor(col.name); !ok {
			return fmt.Errorf("%w: %s: unknown color %q", ErrInvalid, col.field, col.name)
		}
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

// Runtime converts the timing section into engine settings.
func (c Config) Runtime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		TickEvery:   c.Timing.Tick,
		RenderEvery: c.Timing.Render,
		Seed:        seed,
	}
}

// Style converts glyphs and theme into a board style.
// Call Validate first; invalid entries fall back to the defaults.
func (c Config) Style() snake.Style {
	st := snake.DefaultStyle()
	if r, size := utf8.DecodeRuneInString(c.Glyphs.Border); size > 0 && r != utf8.RuneError {
		st.Border = r
	}
	if r, size := utf8.DecodeRuneInString(c.Glyphs.Snake); size > 0 && r != utf8.RuneError {
		st.Body = r
	}
	if r, size := utf8.DecodeRuneInString(c.Glyphs.Food); size > 0 && r != utf8.RuneError {
		st.Food = r
	}
	if col, ok := core.ParseColor(c.Theme.Border); ok {
		st.BorderColor = col
	}
	if col, ok := core.ParseColor(c.Theme.Snake); ok {
		st.BodyColor = col
	}
	if col, ok := core.ParseColor(c.Theme.Food); ok {
		st.FoodColor = col
	}
	return st
}

// LogLevel returns the parsed log level, defaulting to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
