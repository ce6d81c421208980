// Package storage provides SQLite-based match history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/escoba/internal/escoba"
	"github.com/vovakirdan/escoba/internal/match"
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// MatchEntry is one finished round as stored in history.
type MatchEntry struct {
	ID        int64
	MatchID   string
	Round     int
	Seed      int64
	Player1   string
	Player2   string
	Score1    int
	Score2    int
	Escobas1  int
	Escobas2  int
	Cards1    int
	Cards2    int
	Winner    string // Empty on a draw
	Moves     int
	Duration  int // Duration in seconds
	CreatedAt time.Time
}

// IsDraw reports whether the round ended level.
func (e MatchEntry) IsDraw() bool {
	return e.Winner == ""
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL,
			round INTEGER NOT NULL DEFAULT 1,
			seed INTEGER NOT NULL,
			player1 TEXT NOT NULL,
			player2 TEXT NOT NULL,
			winner TEXT,
			moves INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (match_id, round)
		);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);

		CREATE TABLE IF NOT EXISTS match_scores (
			match_row INTEGER NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			seat INTEGER NOT NULL,
			name TEXT NOT NULL,
			total INTEGER NOT NULL,
			escobas INTEGER NOT NULL,
			cards INTEGER NOT NULL,
			golds INTEGER NOT NULL,
			sevens INTEGER NOT NULL,
			seven_of_golds INTEGER NOT NULL,
			result TEXT NOT NULL,
			PRIMARY KEY (match_row, seat)
		);
		CREATE INDEX IF NOT EXISTS idx_match_scores_name ON match_scores(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch implements match.ResultSaver.
// The round and both score breakdowns are written in one transaction.
func (s *Store) SaveMatch(rec match.Record) error {
	_, err := s.saveRecord(rec)
	return err
}

// Ensure Store implements ResultSaver
var _ match.ResultSaver = (*Store)(nil)

func (s *Store) saveRecord(rec match.Record) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	var winner sql.NullString
	if name := rec.WinnerName(); name != "" {
		winner = sql.NullString{String: name, Valid: true}
	}

	res, err := tx.Exec(
		`INSERT INTO matches (match_id, round, seed, player1, player2, winner, moves, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(rec.MatchID), rec.Round, rec.Seed, rec.Player1, rec.Player2,
		winner, rec.Moves, int(rec.Duration.Seconds()),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for seat, b := range rec.Breakdowns {
		if _, err := tx.Exec(
			`INSERT INTO match_scores
			 (match_row, seat, name, total, escobas, cards, golds, sevens, seven_of_golds, result)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, seat, b.Name, b.Total, b.Escobas, b.Cards, b.Golds, b.Sevens, b.SevenOfGolds,
			seatResult(rec.Winner, seat),
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return id, nil
}

func seatResult(winner, seat int) string {
	switch winner {
	case escoba.Draw:
		return "draw"
	case seat:
		return "win"
	default:
		return "loss"
	}
}

const entryQuery = `
	SELECT m.id, m.match_id, m.round, m.seed, m.player1, m.player2,
	       s1.total, s2.total, s1.escobas, s2.escobas, s1.cards, s2.cards,
	       m.winner, m.moves, m.duration_secs, m.created_at
	FROM matches m
	JOIN match_scores s1 ON s1.match_row = m.id AND s1.seat = 0
	JOIN match_scores s2 ON s2.match_row = m.id AND s2.seat = 1`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (MatchEntry, error) {
	var e MatchEntry
	var winner sql.NullString
	var createdAt any
	err := row.Scan(
		&e.ID, &e.MatchID, &e.Round, &e.Seed, &e.Player1, &e.Player2,
		&e.Score1, &e.Score2, &e.Escobas1, &e.Escobas2, &e.Cards1, &e.Cards2,
		&winner, &e.Moves, &e.Duration, &createdAt,
	)
	if err != nil {
		return e, err
	}
	if winner.Valid {
		e.Winner = winner.String
	}
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RecentMatches retrieves the most recent rounds, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(entryQuery+` ORDER BY m.created_at DESC, m.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var entries []MatchEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// MatchByID retrieves one round of a match. It returns nil when the
// round is not in history.
func (s *Store) MatchByID(matchID string, round int) (*MatchEntry, error) {
	e, err := scanEntry(s.db.QueryRow(entryQuery+` WHERE m.match_id = ? AND m.round = ?`, matchID, round))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &e, nil
}

// PlayerStats contains aggregated results for one player name.
type PlayerStats struct {
	Name       string
	Games      int
	Wins       int
	Draws      int
	Losses     int
	BestScore  int
	AvgScore   float64
	Escobas    int
	LastPlayed time.Time
}

const statsQuery = `
	SELECT s.name, COUNT(*),
	       COALESCE(SUM(s.result = 'win'), 0),
	       COALESCE(SUM(s.result = 'draw'), 0),
	       COALESCE(SUM(s.result = 'loss'), 0),
	       COALESCE(MAX(s.total), 0), COALESCE(AVG(s.total), 0),
	       COALESCE(SUM(s.escobas), 0), MAX(m.created_at)
	FROM match_scores s
	JOIN matches m ON m.id = s.match_row`

func scanStats(row scanner) (PlayerStats, error) {
	var st PlayerStats
	var lastPlayed any
	err := row.Scan(&st.Name, &st.Games, &st.Wins, &st.Draws, &st.Losses,
		&st.BestScore, &st.AvgScore, &st.Escobas, &lastPlayed)
	if err != nil {
		return st, err
	}
	st.LastPlayed = parseTime(lastPlayed)
	return st, nil
}

// GetPlayerStats retrieves aggregated statistics for one player.
// A player with no history gets zero stats.
func (s *Store) GetPlayerStats(name string) (*PlayerStats, error) {
	rows, err := s.db.Query(statsQuery+` WHERE s.name = ? GROUP BY s.name`, name)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
		}
		return &PlayerStats{Name: name}, nil
	}
	st, err := scanStats(rows)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
	}
	return &st, nil
}

// Leaderboard retrieves statistics for every player, most wins first.
func (s *Store) Leaderboard(limit int) ([]PlayerStats, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(statsQuery+`
		GROUP BY s.name
		ORDER BY 3 DESC, 6 DESC, s.name
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get leaderboard: %w", err)
	}
	defer rows.Close()

	var stats []PlayerStats
	for rows.Next() {
		st, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearHistory deletes every stored match.
func (s *Store) ClearHistory() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM match_scores"); err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM matches"); err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}
