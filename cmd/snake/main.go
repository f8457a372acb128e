// snake is a terminal Snake game.
//
// Usage:
//
//	snake                    - Play one session (same as "snake play")
//	snake play               - Play, optionally recording or with sound
//	snake serve              - Start SSH server for remote play
//	snake history            - List recorded sessions
//	snake replay <id>        - Replay a recorded session
//	snake config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>      - Config file (default: search ~/.termsnake, ./configs, built-in)
//	--seed <value>       - Set RNG seed for reproducible food placement
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file while playing
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sm1k0/termsnake/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Steer a growing snake around a walled board, eat the food and
avoid running into the walls or yourself.

Available commands:
  play     - Play a session (default)
  serve    - Start SSH server for remote play
  history  - List recorded sessions
  replay   - Replay a recorded session
  config   - Print the effective configuration

Examples:
  snake
  snake play --backend tcell
  snake play --record ~/.termsnake/journal.db
  snake replay 3 --db ~/.termsnake/journal.db
  snake serve --ssh :2222`,
	RunE:          runPlay,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file during play")

	// Root plays by default, so it carries the play flags too
	addPlayFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the configuration and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// newLogger builds the application logger writing to w.
func newLogger(w io.Writer, cfg config.Config) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
		Level:           cfg.LogLevel(),
	})
}

// sessionLogger returns a logger that never writes to the terminal the game
// is drawn on: it goes to --log-file when set and is discarded otherwise.
func sessionLogger(cfg config.Config) (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return newLogger(io.Discard, cfg), func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return newLogger(f, cfg), func() { f.Close() }, nil
}
