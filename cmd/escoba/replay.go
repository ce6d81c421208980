package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/escoba/internal/match"
	"github.com/vovakirdan/escoba/internal/storage"
)

var (
	flagRecord bool
	flagQuiet  bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [script]",
	Short: "Replay a command script against a seeded deal",
	Long: `Run a game headless from a script of commands and print the result.
With the same --seed the deal is identical, so a script always produces
the same game.

Script format: one command per line, played by whoever is to move.
Prefix a line with "1:" or "2:" to send it from a specific player.
Blank lines and lines starting with # are ignored. Reads stdin when
no script is given or the script is "-".

Examples:
  escoba replay --seed 42 game.txt
  printf 'play 1\nplay 1\n' | escoba replay --seed 7`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the finished match in history")
	replayCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only print the final result")
}

func runReplay(cmd *cobra.Command, args []string) {
	cfg := loadConfig(cmd)

	logger, logCloser, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	var in io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	opts := match.Options{
		Player1: cfg.Players.One,
		Player2: cfg.Players.Two,
		Seed:    cfg.Seed,
		Logger:  logger,
	}
	if flagRecord {
		store, err := storage.Open(cfg.History.DB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		opts.Saver = store
	}

	m := match.New(opts)
	if err := m.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out := io.Writer(os.Stdout)
	if flagQuiet {
		out = io.Discard
	}
	if err := runScript(out, m, in); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printResult(os.Stdout, m)
}

// runScript feeds every script line to the match and echoes the outcome.
// It stops when a player quits.
func runScript(w io.Writer, m *match.Match, r io.Reader) error {
	fmt.Fprintf(w, "Match %s, seed %d\n", m.ID(), m.Seed())

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		player, text, err := scriptLine(line, m.Snapshot().Current)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		out := m.Submit(player, text)
		fmt.Fprintf(w, "P%d> %s\n", player+1, text)
		for _, l := range out.Lines {
			fmt.Fprintf(w, "  %s\n", l)
		}
		if out.Quit {
			fmt.Fprintf(w, "Player %d quit.\n", player+1)
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("cannot read script: %w", err)
	}
	return nil
}

// scriptLine splits an optional "1:" / "2:" player prefix from a command.
func scriptLine(line string, current int) (int, string, error) {
	prefix, rest, found := strings.Cut(line, ":")
	if !found {
		return current, line, nil
	}
	switch p := strings.TrimSpace(prefix); p {
	case "1":
		return 0, strings.TrimSpace(rest), nil
	case "2":
		return 1, strings.TrimSpace(rest), nil
	default:
		if _, err := strconv.Atoi(p); err == nil {
			return 0, "", fmt.Errorf("unknown player %q (use 1 or 2)", p)
		}
	}
	return current, line, nil
}

// printResult prints the final summary, or the state of an unfinished game.
func printResult(w io.Writer, m *match.Match) {
	summary, err := m.Summary()
	if err != nil {
		snap := m.Snapshot()
		fmt.Fprintf(w, "Game not finished: %d cards left in the deck, %s to move.\n",
			snap.DeckRemaining, snap.Players[snap.Current].Name)
		return
	}
	for _, line := range summary.Lines() {
		fmt.Fprintln(w, line)
	}
}
