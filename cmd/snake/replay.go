package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sm1k0/termsnake/internal/games/snake"
	"github.com/sm1k0/termsnake/internal/platform/tui"
	"github.com/sm1k0/termsnake/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Replay a recorded session",
	Long: `Rebuild a recorded session from its seed and replay the recorded
commands at their original ticks. Steering keys are ignored; Q quits.

Examples:
  snake replay 3
  snake replay 3 --db ./journal.db --backend tcell`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagDBPath, "db", defaultJournal, "Path to journal database")
	replayCmd.Flags().StringVar(&flagBackend, "backend", backendTUI, "Renderer backend: tui or tcell")
}

func runReplay(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid session id %q", args[0])
	}
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

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sess, err := store.Session(id)
	if err != nil {
		return err
	}
	script, err := store.Script(id)
	if err != nil {
		return err
	}

	warnTerminalSize()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	game := snake.New(sess.Seed)
	final, err := runSession(ctx, flagBackend, game, cfg.Runtime(sess.Seed), tui.Options{
		Style:  cfg.Style(),
		Input:  script,
		Logger: logger,
		Title:  fmt.Sprintf("Replay #%d (seed %d)", sess.ID, sess.Seed),
	})
	if err != nil {
		return err
	}

	if final.Over && !replayMatches(sess, final) {
		fmt.Fprintf(os.Stderr, "Warning: replay ended at tick %d (%s), journal says tick %d (%s)\n",
			final.Tick, final.Reason, sess.Ticks, sess.Reason)
	}
	return nil
}

// replayMatches reports whether a finished replay agrees with the journal.
// Sessions that were aborted have no end state to compare against.
func replayMatches(sess storage.Session, final snake.Snapshot) bool {
	if sess.Reason == storage.ReasonAborted || sess.Reason == "" {
		return true
	}
	return final.Tick == sess.Ticks && string(final.Reason) == sess.Reason
}
