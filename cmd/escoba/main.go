// escoba is a two-player Escoba de 15 card game for the terminal.
//
// Usage:
//
//	escoba play              - Play a hot-seat game with two panes
//	escoba replay <script>   - Replay a command script against a seeded deal
//	escoba history           - Show finished matches and player stats
//
// Global flags:
//
//	--seed <value>     - Set shuffle seed for a reproducible deal
//	--db <path>        - Set history database path (default: ~/.escoba/history.db)
//	--config <path>    - Use a custom config YAML
//	--log-file <path>  - Write the log here ("-" for stderr)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/escoba/internal/config"
)

var (
	// Global flags
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "escoba",
	Short: "Escoba de 15 - the Spanish card game in your terminal",
	Long: `Escoba de 15 is a two-player capture game played with the 40-card
Spanish deck. Play a card and take table cards whose values add up to 15
together with it; clearing the table is an escoba.

Available commands:
  play     - Play a game, one pane per player
  replay   - Run a command script against a seeded deal
  history  - View finished matches and player stats

Examples:
  escoba play
  escoba play --seed 42
  escoba replay --seed 42 game.txt
  escoba history --stats Ana`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Shuffle seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", `Log file path, "-" for stderr (default from config)`)

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig reads .env, the config file and environment overrides, then
// applies command-line flags on top. It exits on invalid configuration.
func loadConfig(cmd *cobra.Command) config.Config {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.History.DB = flagDBPath
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger creates the application logger. The TUI owns the terminal, so
// unless the log goes to stderr it is written to a file.
func newLogger(cfg config.Config) (*log.Logger, io.Closer, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	if cfg.Log.File != "" && cfg.Log.File != "-" {
		path, err := config.ExpandPath(cfg.Log.File)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "escoba",
		Level:           level,
	})
	return logger, closer, nil
}
