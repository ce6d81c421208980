package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/escoba/internal/platform/tui"
	"github.com/vovakirdan/escoba/internal/storage"
)

var (
	flagLimit  int
	flagStats  string
	flagBrowse bool
	flagClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished matches and player stats",
	Long: `Display recently finished matches, or aggregated stats for a player.

Examples:
  escoba history
  escoba history --limit 5
  escoba history --stats Ana
  escoba history --tui`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of matches to show")
	historyCmd.Flags().StringVar(&flagStats, "stats", "", "Show stats for this player")
	historyCmd.Flags().BoolVar(&flagBrowse, "tui", false, "Browse history interactively")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded matches")
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)

	store, err := storage.Open(cfg.History.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearHistory(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("History cleared.")

	case flagBrowse:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunHistory(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case flagStats != "":
		printStats(store, flagStats)

	default:
		printRecent(store, flagLimit)
	}
}

func printRecent(store *storage.Store, limit int) {
	entries, err := store.RecentMatches(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent Matches")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'escoba play' to record the first one!")
		return
	}

	// Print header
	fmt.Printf("  %-16s  %-14s  %-7s  %-14s  %-14s  %s\n", "Date", "Player 1", "Score", "Player 2", "Winner", "Seed")
	fmt.Printf("  %-16s  %-14s  %-7s  %-14s  %-14s  %s\n", "----", "--------", "-----", "--------", "------", "----")

	for _, e := range entries {
		winner := e.Winner
		if e.IsDraw() {
			winner = "draw"
		}
		fmt.Printf("  %-16s  %-14s  %-7s  %-14s  %-14s  %d\n",
			e.CreatedAt.Format("2006-01-02 15:04"),
			e.Player1,
			fmt.Sprintf("%d - %d", e.Score1, e.Score2),
			e.Player2,
			winner,
			e.Seed,
		)
	}
}

func printStats(store *storage.Store, name string) {
	st, err := store.GetPlayerStats(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Stats - %s\n", st.Name)
	fmt.Println()
	if st.Games == 0 {
		fmt.Println("No matches recorded for this player.")
		return
	}

	fmt.Printf("  Games:       %d\n", st.Games)
	fmt.Printf("  W/D/L:       %d/%d/%d\n", st.Wins, st.Draws, st.Losses)
	fmt.Printf("  Best score:  %d\n", st.BestScore)
	fmt.Printf("  Avg score:   %.1f\n", st.AvgScore)
	fmt.Printf("  Escobas:     %d\n", st.Escobas)
	fmt.Printf("  Last played: %s\n", st.LastPlayed.Format("2006-01-02 15:04"))
}
