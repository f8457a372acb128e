package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sm1k0/termsnake/internal/storage"
)

const defaultJournal = "~/.termsnake/journal.db"

var (
	flagDBPath string
	flagLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded sessions",
	Long: `Display the most recent sessions recorded with "snake play --record".

Examples:
  snake history
  snake history --db ./journal.db --limit 5`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagDBPath, "db", defaultJournal, "Path to journal database")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of sessions to show")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.Sessions(flagLimit)
	if err != nil {
		return err
	}

	printHistory(os.Stdout, sessions)
	return nil
}

func printHistory(w io.Writer, sessions []storage.Session) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play with 'snake play --record <db>' to record one.")
		return
	}

	fmt.Fprintf(w, "  %-4s  %-16s  %-6s  %s\n", "ID", "Started", "Ticks", "Result")
	fmt.Fprintf(w, "  %-4s  %-16s  %-6s  %s\n", "--", "-------", "-----", "------")

	for _, s := range sessions {
		result := s.Reason
		if result == "" {
			result = "unfinished"
		}
		fmt.Fprintf(w, "  %-4d  %-16s  %-6d  %s\n", s.ID, s.StartedAt.Format("2006-01-02 15:04"), s.Ticks, result)
	}
}
