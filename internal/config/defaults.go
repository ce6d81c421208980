package config

import (
	_ "embed"
)

//go:embed defaults/escoba.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches
// defaults/escoba.yaml and is used if the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Players: PlayersConfig{
			One: "Player 1",
			Two: "Player 2",
		},
		Seed: 0,
		History: HistoryConfig{
			Enabled: true,
			DB:      "~/.escoba/history.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.escoba/escoba.log",
		},
		Theme: ThemeConfig{
			Player1: PaneTheme{Background: "#0f192d", Foreground: "#add8e6"},
			Player2: PaneTheme{Background: "#0f2319", Foreground: "#90ee90"},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
