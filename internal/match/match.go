// Package match drives one Escoba engine from text commands.
// Both player panes share a single Match, so every method serializes on
// one mutex; the engine underneath is never touched concurrently.
package match

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/escoba/internal/cards"
	"github.com/vovakirdan/escoba/internal/command"
	"github.com/vovakirdan/escoba/internal/escoba"
)

// ID uniquely identifies a match. It is a time-ordered UUID so history
// rows sort naturally.
type ID string

// ResultSaver persists finished matches. storage.Store implements it; a
// nil saver disables history.
type ResultSaver interface {
	SaveMatch(rec Record) error
}

// Record is the persisted outcome of one finished round.
type Record struct {
	MatchID    ID
	Round      int
	Seed       int64
	Player1    string
	Player2    string
	Breakdowns [escoba.NumPlayers]escoba.Breakdown
	Winner     int // Player index or escoba.Draw
	Moves      int
	Duration   time.Duration
}

// WinnerName returns the winner's name, or "" for a draw.
func (r Record) WinnerName() string {
	if r.Winner == escoba.Draw {
		return ""
	}
	return r.Breakdowns[r.Winner].Name
}

// Options configures a Match.
type Options struct {
	Player1 string
	Player2 string
	Seed    int64 // 0 picks a time-based seed

	Logger *log.Logger // nil discards
	Saver  ResultSaver // nil disables history

	// EngineOptions are appended after the seed option; tests use them to
	// stack the deck.
	EngineOptions []escoba.Option
}

// ErrQuit is returned in Outcome.Err when a player asks to leave.
var ErrQuit = errors.New("match: player quit")

// Outcome is what a submitted line produced. Lines are meant for the
// acting player's pane; when Public is set both panes should show them.
type Outcome struct {
	Player  int
	Request command.Request
	Result  escoba.Result
	Lines   []string
	Public  bool
	Ended   bool
	Quit    bool
	Err     error
}

// Match owns one engine and everything around it: identity, logging and
// history hooks.
type Match struct {
	mu sync.Mutex

	id     ID
	engine *escoba.Engine
	logger *log.Logger
	saver  ResultSaver

	started time.Time
	moves   int
	saved   int // last round written to history
}

// New creates a match. Call Start to deal the first round.
func New(opts Options) *Match {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	engineOpts := append([]escoba.Option{escoba.WithSeed(opts.Seed)}, opts.EngineOptions...)
	m := &Match{
		id:     newID(),
		engine: escoba.New(opts.Player1, opts.Player2, engineOpts...),
		saver:  opts.Saver,
	}
	m.logger = logger.With("match", string(m.id))
	return m
}

func newID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		return ID(uuid.New().String())
	}
	return ID(id.String())
}

// ID returns the match identifier.
func (m *Match) ID() ID {
	return m.id
}

// Seed returns the shuffle seed, useful for replaying the match.
func (m *Match) Seed() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.Seed()
}

// Start deals a new round. It fails while a round is in progress.
func (m *Match) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startLocked()
}

func (m *Match) startLocked() error {
	if err := m.engine.StartNewRound(); err != nil {
		return err
	}
	m.started = time.Now()
	m.moves = 0

	p1, p2 := m.engine.Player(0), m.engine.Player(1)
	m.logger.Info("round started",
		"round", m.engine.Round(),
		"seed", m.engine.Seed(),
		"player1", p1.Name,
		"player2", p2.Name,
	)
	return nil
}

// Place plays a card from the player's hand onto the table.
func (m *Match) Place(player, cardIndex int) escoba.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.afterAction(m.engine.PlaceCard(player, cardIndex))
}

// Capture attempts a sum-to-15 capture.
func (m *Match) Capture(player, cardIndex int, tableIndices []int) escoba.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.afterAction(m.engine.AttemptCapture(player, cardIndex, tableIndices))
}

// afterAction logs the result and records history when the round ended.
// Callers hold m.mu.
func (m *Match) afterAction(res escoba.Result) escoba.Result {
	if !res.OK {
		m.logger.Warn("action rejected",
			"player", res.Player,
			"action", res.Action,
			"err", res.Err,
		)
		return res
	}

	m.moves++
	m.logger.Info("action accepted",
		"player", res.Player,
		"action", res.Action,
		"card", res.Played.Short(),
		"escoba", res.Escoba,
	)

	if res.GameEnded {
		m.finishLocked()
	}
	return res
}

func (m *Match) finishLocked() {
	summary, err := m.engine.FinalSummary()
	if err != nil {
		return
	}
	t1, t2 := summary.Totals()
	m.logger.Info("round finished",
		"round", m.engine.Round(),
		"score1", t1,
		"score2", t2,
		"winner", summary.Winner,
	)

	if m.saver == nil || m.saved == m.engine.Round() {
		return
	}
	m.saved = m.engine.Round()

	rec := Record{
		MatchID:    m.id,
		Round:      m.engine.Round(),
		Seed:       m.engine.Seed(),
		Player1:    summary.Breakdowns[0].Name,
		Player2:    summary.Breakdowns[1].Name,
		Breakdowns: summary.Breakdowns,
		Winner:     summary.Winner,
		Moves:      m.moves,
		Duration:   time.Since(m.started),
	}
	if err := m.saver.SaveMatch(rec); err != nil {
		m.logger.Error("failed to save match", "err", err)
	}
}

// Submit parses and executes one line typed by player.
func (m *Match) Submit(player int, line string) Outcome {
	out := Outcome{Player: player}

	req, err := command.Parse(line)
	if err != nil {
		out.Err = err
		out.Lines = []string{"Error: " + userMessage(err)}
		return out
	}
	out.Request = req

	switch req.Kind {
	case command.KindHelp:
		out.Lines = command.Help()
		return out

	case command.KindQuit:
		out.Quit = true
		out.Err = ErrQuit
		return out

	case command.KindNew:
		m.mu.Lock()
		defer m.mu.Unlock()
		if !m.engine.IsGameOver() {
			out.Err = escoba.ErrGameNotOver
			out.Lines = []string{"Error: finish the current game before starting a new one"}
			return out
		}
		if err := m.startLocked(); err != nil {
			out.Err = err
			out.Lines = []string{"Error: " + err.Error()}
			return out
		}
		out.Public = true
		out.Lines = []string{fmt.Sprintf("=== NEW GAME (round %d) ===", m.engine.Round())}
		return out
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var res escoba.Result
	if req.Kind == command.KindCapture {
		res = m.engine.AttemptCapture(player, req.Card, req.Table)
	} else {
		res = m.engine.PlaceCard(player, req.Card)
	}
	res = m.afterAction(res)

	out.Result = res
	out.Err = res.Err
	out.Ended = res.GameEnded
	out.Lines = resultLines(res)
	if res.OK {
		out.Public = true
	}
	if res.GameEnded {
		if summary, err := m.engine.FinalSummary(); err == nil {
			out.Lines = append(out.Lines, "")
			out.Lines = append(out.Lines, summary.Lines()...)
			out.Lines = append(out.Lines, "Type 'new' to play again or 'quit' to leave.")
		}
	}
	return out
}

func resultLines(res escoba.Result) []string {
	if !res.OK {
		return []string{"Error: " + res.Message}
	}
	lines := []string{res.Message}
	if res.Escoba {
		lines = append(lines, "*** ESCOBA! ***")
	}
	if len(res.Swept) > 0 {
		lines = append(lines, fmt.Sprintf("Last cards on the table go to the last player to act: %s", shortCards(res.Swept)))
	}
	return lines
}

func userMessage(err error) string {
	msg := err.Error()
	const prefix = "command: "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}

func shortCards(cs []cards.Card) string {
	s := ""
	for i, c := range cs {
		if i > 0 {
			s += " "
		}
		s += c.Short()
	}
	return s
}

// Snapshot returns the engine state for rendering.
func (m *Match) Snapshot() escoba.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.Snapshot()
}

// Summary returns the final score once the round is over.
func (m *Match) Summary() (escoba.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.FinalSummary()
}
