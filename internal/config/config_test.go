package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded default = %+v\nexpected %+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded default is invalid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "escoba.yaml")
	data := []byte("players:\n  one: Ana\n  two: Beto\nseed: 42\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFile(path)
	if err != nil {
		t.Fatalf("loadFile() failed: %v", err)
	}
	if cfg.Players.One != "Ana" || cfg.Players.Two != "Beto" || cfg.Seed != 42 {
		t.Errorf("unexpected config %+v", cfg)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Theme != Default().Theme || cfg.History != Default().History {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := loadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("players: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadFile(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvSeed:     "1234",
		EnvDB:       "/tmp/h.db",
		EnvLogLevel: "debug",
		EnvPlayer1:  "Ana",
		EnvPlayer2:  "Beto",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := ApplyEnv(&cfg, lookup); err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}
	if cfg.Seed != 1234 || cfg.History.DB != "/tmp/h.db" || cfg.Log.Level != "debug" ||
		cfg.Players.One != "Ana" || cfg.Players.Two != "Beto" {
		t.Errorf("overrides not applied: %+v", cfg)
	}

	env[EnvSeed] = "soon"
	if err := ApplyEnv(&cfg, lookup); err == nil {
		t.Error("expected error for non-numeric seed")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ESCOBA_PLAYER2=Carla\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv(EnvPlayer2)
	t.Cleanup(func() { os.Unsetenv(EnvPlayer2) })

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("LoadDotEnv() failed: %v", err)
	}
	if got := os.Getenv(EnvPlayer2); got != "Carla" {
		t.Errorf("%s = %q, expected Carla", EnvPlayer2, got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty name", func(c *Config) { c.Players.One = "  " }, ErrEmptyName},
		{"same names", func(c *Config) { c.Players.Two = "player 1" }, ErrSameNames},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, ErrLogLevel},
		{"fatal level", func(c *Config) { c.Log.Level = "fatal" }, ErrLogLevel},
		{"bad color", func(c *Config) { c.Theme.Player2.Foreground = "green" }, ErrColor},
		{"history without db", func(c *Config) { c.History.DB = "" }, ErrHistoryNoPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, expected %v", err, tt.want)
			}
		})
	}

	cfg := Default()
	cfg.History = HistoryConfig{Enabled: false}
	cfg.Theme.Player1.Background = "#abc"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v for a valid config", err)
	}
}

func TestLogLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "WARN"
	lvl, err := cfg.LogLevel()
	if err != nil || lvl != log.WarnLevel {
		t.Errorf("LogLevel() = %v, %v", lvl, err)
	}

	cfg.Log.Level = ""
	if lvl, _ := cfg.LogLevel(); lvl != log.InfoLevel {
		t.Errorf("empty level = %v, expected info", lvl)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/.escoba/h.db")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".escoba", "h.db"); got != want {
		t.Errorf("ExpandPath() = %q, expected %q", got, want)
	}
	if got, _ := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path changed: %q", got)
	}
}
