package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sm1k0/termsnake/internal/audio"
	"github.com/sm1k0/termsnake/internal/core"
	"github.com/sm1k0/termsnake/internal/engine"
	"github.com/sm1k0/termsnake/internal/games/snake"
	"github.com/sm1k0/termsnake/internal/platform/console"
	"github.com/sm1k0/termsnake/internal/platform/tui"
	"github.com/sm1k0/termsnake/internal/storage"
)

const (
	backendTUI   = "tui"
	backendTcell = "tcell"
)

var (
	flagBackend string
	flagRecord  string
	flagSound   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session",
	Long: `Start a game of Snake.

Controls:
  Arrows, WASD, hjkl  - Steer
  Q/Ctrl+C            - Quit

Backends:
  tui    - Bubble Tea renderer (default)
  tcell  - Raw terminal cells via tcell

Examples:
  snake play
  snake play --seed 42
  snake play --backend tcell
  snake play --record ~/.termsnake/journal.db
  snake play --sound`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagBackend, "backend", backendTUI, "Renderer backend: tui or tcell")
	cmd.Flags().StringVar(&flagRecord, "record", "", "Record the session to this journal database")
	cmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues")
}

func runPlay(_ *cobra.Command, _ []string) error {
	if err := checkBackend(flagBackend); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := sessionLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	warnTerminalSize()

	rc := cfg.Runtime(flagSeed).WithSeed()
	seed := rc.Seed
	game := snake.New(seed)
	logger.Info("session starting", "seed", seed, "backend", flagBackend)

	opts := tui.Options{
		Style:  cfg.Style(),
		Logger: logger,
	}

	var rec *storage.Recorder
	if flagRecord != "" {
		store, err := storage.Open(flagRecord)
		if err != nil {
			return err
		}
		defer store.Close()

		rec, err = storage.NewRecorder(store, seed)
		if err != nil {
			return err
		}
		opts.Observers = append(opts.Observers, rec)
	}

	if flagSound {
		player, err := audio.Open(logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
			logger.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			opts.Observers = append(opts.Observers, player)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	final, runErr := runSession(ctx, flagBackend, game, rc, opts)
	logger.Info("session ended", "ticks", final.Tick, "length", final.Len(), "reason", final.Reason)

	if rec != nil {
		if err := rec.Finish(final); err != nil {
			return err
		}
		fmt.Printf("Recorded session #%d (seed %d). Replay with: snake replay %d --db %s\n",
			rec.ID(), seed, rec.ID(), flagRecord)
	}

	return runErr
}

func checkBackend(name string) error {
	switch name {
	case backendTUI, backendTcell:
		return nil
	}
	return fmt.Errorf("unknown backend %q (want %s or %s)", name, backendTUI, backendTcell)
}

// runSession plays game on the chosen backend. Quitting early is not an error.
func runSession(ctx context.Context, backend string, game *snake.Game, rc core.RuntimeConfig, opts tui.Options) (snake.Snapshot, error) {
	var (
		final snake.Snapshot
		err   error
	)

	switch backend {
	case backendTcell:
		final, err = runConsole(ctx, game, rc, opts)
	default:
		final, err = tui.Run(ctx, game, rc, opts)
	}

	return final, ignoreAbort(err)
}

// ignoreAbort drops the error a session returns when the player quits.
func ignoreAbort(err error) error {
	if console.IsAborted(err) {
		return nil
	}
	return err
}

func runConsole(ctx context.Context, game *snake.Game, rc core.RuntimeConfig, opts tui.Options) (snake.Snapshot, error) {
	con, err := console.Open(opts.Style)
	if err != nil {
		return game.Snapshot(), err
	}
	defer con.Close()

	eng := engine.New(game, con, rc)
	if opts.Input != nil {
		eng.SetInput(opts.Input)
	}
	for _, o := range opts.Observers {
		eng.AddObserver(o)
	}
	eng.SetLogger(opts.Logger)

	return con.Play(ctx, eng)
}

// warnTerminalSize prints a warning when the board will not fit.
func warnTerminalSize() {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return // Not a terminal
	}
	// Board plus two status lines
	needW, needH := snake.ScreenW, snake.ScreenH+2
	if w < needW || h < needH {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the board needs %dx%d\n", w, h, needW, needH)
	}
}
