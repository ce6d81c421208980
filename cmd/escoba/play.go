package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/escoba/internal/match"
	"github.com/vovakirdan/escoba/internal/platform/tui"
	"github.com/vovakirdan/escoba/internal/storage"
)

var (
	flagPlayer1   string
	flagPlayer2   string
	flagNoHistory bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a two-player game. Each player has an own pane and command line;
Tab switches between them.

Commands (typed into your pane):
  play <n>                 - Place card n from your hand on the table
  play <n> take <m> [...]  - Capture table cards m... with card n
  help                     - Show the rules and commands
  new                      - Start again once the game is over
  quit                     - Leave

Keys:
  Tab     - Switch pane
  F1      - More keys
  F2      - Match history
  Ctrl+C  - Quit

Examples:
  escoba play
  escoba play --p1 Ana --p2 Beto
  escoba play --seed 42 --log-file -`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer1, "p1", "", "Name of player 1")
	playCmd.Flags().StringVar(&flagPlayer2, "p2", "", "Name of player 2")
	playCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record this match")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)
	if flagPlayer1 != "" {
		cfg.Players.One = flagPlayer1
	}
	if flagPlayer2 != "" {
		cfg.Players.Two = flagPlayer2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open history storage
	var store *storage.Store
	if cfg.History.Enabled && !flagNoHistory {
		store, err = storage.Open(cfg.History.DB)
		if err != nil {
			logger.Warn("could not open history database", "error", err)
			fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
			// Continue without storage - game still works
			store = nil
		}
	}

	opts := match.Options{
		Player1: cfg.Players.One,
		Player2: cfg.Players.Two,
		Seed:    cfg.Seed,
		Logger:  logger,
	}
	if store != nil {
		opts.Saver = store
	}
	m := match.New(opts)
	if err := m.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Run the game
	runErr := tui.Run(m, store, cfg.Theme, width, height)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		logger.Error("game loop failed", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	fmt.Printf("Thanks for playing! Match %s (seed %d)\n", m.ID(), m.Seed())
}
