// Package config provides YAML-based configuration loading for the escoba
// command: player names, shuffle seed, match history, logging and pane
// colors.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// Config is the complete application configuration.
type Config struct {
	Players PlayersConfig `yaml:"players"`
	Seed    int64         `yaml:"seed"` // 0 = time-based
	History HistoryConfig `yaml:"history"`
	Log     LogConfig     `yaml:"log"`
	Theme   ThemeConfig   `yaml:"theme"`
}

// PlayersConfig names the two seats.
type PlayersConfig struct {
	One string `yaml:"one"`
	Two string `yaml:"two"`
}

// HistoryConfig controls the SQLite match history.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DB      string `yaml:"db"`
}

// LogConfig controls the application log.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // "-" = stderr
}

// ThemeConfig holds the per-player pane colors.
type ThemeConfig struct {
	Player1 PaneTheme `yaml:"player1"`
	Player2 PaneTheme `yaml:"player2"`
}

// PaneTheme is a pair of hex colors, e.g. "#0f192d".
type PaneTheme struct {
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
}

// Validation errors.
var (
	ErrEmptyName     = errors.New("config: player names must not be empty")
	ErrSameNames     = errors.New("config: player names must differ")
	ErrLogLevel      = errors.New("config: unknown log level")
	ErrColor         = errors.New("config: invalid color")
	ErrHistoryNoPath = errors.New("config: history enabled without a database path")
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks the configuration for values the game cannot use.
func (c Config) Validate() error {
	one, two := strings.TrimSpace(c.Players.One), strings.TrimSpace(c.Players.Two)
	if one == "" || two == "" {
		return ErrEmptyName
	}
	if strings.EqualFold(one, two) {
		return fmt.Errorf("%w: both are %q", ErrSameNames, one)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	if c.History.Enabled && c.History.DB == "" {
		return ErrHistoryNoPath
	}

	colors := map[string]string{
		"theme.player1.background": c.Theme.Player1.Background,
		"theme.player1.foreground": c.Theme.Player1.Foreground,
		"theme.player2.background": c.Theme.Player2.Background,
		"theme.player2.foreground": c.Theme.Player2.Foreground,
	}
	for key, value := range colors {
		if !hexColor.MatchString(value) {
			return fmt.Errorf("%w: %s = %q", ErrColor, key, value)
		}
	}
	return nil
}

// LogLevel parses Log.Level. An empty level means info.
func (c Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return 0, fmt.Errorf("%w: %q", ErrLogLevel, c.Log.Level)
	}
	lvl, err := log.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrLogLevel, c.Log.Level)
	}
	return lvl, nil
}
