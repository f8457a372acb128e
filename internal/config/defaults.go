package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultYAML []byte

// Default returns the hard-coded configuration, matching the embedded YAML.
func Default() Config {
	return Config{
		Timing: Timing{
			Tick:   100 * time.Millisecond,
			Render: 100 * time.Millisecond,
		},
		Glyphs: Glyphs{
			Border: "#",
			Snake:  "*",
			Food:   "$",
		},
		Theme: Theme{
			Border: "gray",
			Snake:  "bright_green",
			Food:   "bright_yellow",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultYAML
}
