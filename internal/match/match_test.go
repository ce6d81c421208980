package match

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/vovakirdan/escoba/internal/cards"
	"github.com/vovakirdan/escoba/internal/command"
	"github.com/vovakirdan/escoba/internal/escoba"
)

type fakeSaver struct {
	mu      sync.Mutex
	records []Record
	err     error
}

func (f *fakeSaver) SaveMatch(rec Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, rec)
	return f.err
}

func (f *fakeSaver) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

// shortGame is a ten-card deck: one deal and six moves.
// Table 1G 2G 3G 4G; Ana holds 5C 1C 2C; Beto holds 6C 6S 6B.
func shortGame() escoba.Option {
	order := []cards.Card{
		cards.New(1, cards.Golds), cards.New(2, cards.Golds), cards.New(3, cards.Golds), cards.New(4, cards.Golds),
		cards.New(5, cards.Cups), cards.New(6, cards.Cups),
		cards.New(1, cards.Cups), cards.New(6, cards.Swords),
		cards.New(2, cards.Cups), cards.New(6, cards.Batons),
	}
	return escoba.WithDeckFactory(func(*rand.Rand) *cards.Deck {
		return cards.NewStackedDeck(order)
	})
}

func newShortMatch(t *testing.T, saver ResultSaver) *Match {
	t.Helper()
	m := New(Options{
		Player1:       "Ana",
		Player2:       "Beto",
		Seed:          7,
		Saver:         saver,
		EngineOptions: []escoba.Option{shortGame()},
	})
	if err := m.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return m
}

func TestMatchID(t *testing.T) {
	a := New(Options{})
	b := New(Options{})
	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("IDs should be unique and non-empty: %q, %q", a.ID(), b.ID())
	}
}

func TestSubmitFullGame(t *testing.T) {
	saver := &fakeSaver{}
	m := newShortMatch(t, saver)

	out := m.Submit(0, "play 1 take 1 2 3 4")
	if out.Err != nil {
		t.Fatalf("capture failed: %v", out.Err)
	}
	if !out.Result.Escoba || !out.Public {
		t.Errorf("expected public escoba outcome, got %+v", out)
	}
	if !strings.Contains(strings.Join(out.Lines, "\n"), "ESCOBA") {
		t.Errorf("escoba not announced: %v", out.Lines)
	}

	moves := []struct {
		player int
		line   string
	}{
		{1, "play 1"},
		{0, "jugar 1"},
		{1, "play 1"},
		{0, "play 1"},
	}
	for _, mv := range moves {
		if out := m.Submit(mv.player, mv.line); out.Err != nil {
			t.Fatalf("Submit(%d, %q) failed: %v", mv.player, mv.line, out.Err)
		}
	}
	if saver.count() != 0 {
		t.Fatal("history written before the game ended")
	}

	out = m.Submit(1, "play 1")
	if !out.Ended {
		t.Fatal("expected the last move to end the game")
	}
	if len(out.Result.Swept) != 5 {
		t.Errorf("swept %d cards, expected 5", len(out.Result.Swept))
	}
	text := strings.Join(out.Lines, "\n")
	if !strings.Contains(text, "ANA WINS") {
		t.Errorf("summary missing winner:\n%s", text)
	}

	if saver.count() != 1 {
		t.Fatalf("SaveMatch called %d times, expected 1", saver.count())
	}
	rec := saver.records[0]
	if rec.MatchID != m.ID() || rec.Winner != 0 || rec.WinnerName() != "Ana" {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.Breakdowns[0].Total != 2 || rec.Breakdowns[1].Total != 0 {
		t.Errorf("totals = %d, %d, expected 2, 0", rec.Breakdowns[0].Total, rec.Breakdowns[1].Total)
	}
	if rec.Moves != 6 || rec.Round != 1 || rec.Seed != 7 {
		t.Errorf("record moves/round/seed = %d/%d/%d", rec.Moves, rec.Round, rec.Seed)
	}

	summary, err := m.Summary()
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if summary.Winner != 0 {
		t.Errorf("Summary().Winner = %d, expected 0", summary.Winner)
	}

	if out := m.Submit(0, "play 1"); !errors.Is(out.Err, escoba.ErrGameOver) {
		t.Errorf("move after game over: err = %v", out.Err)
	}
}

func TestSubmitRejections(t *testing.T) {
	m := newShortMatch(t, nil)
	before := m.Snapshot()

	tests := []struct {
		name   string
		player int
		line   string
		want   error
	}{
		{"wrong turn", 1, "play 1", escoba.ErrNotYourTurn},
		{"bad hand index", 0, "play 9", escoba.ErrInvalidIndex},
		{"bad table index", 0, "play 1 take 7", escoba.ErrInvalidIndex},
		{"no capture", 0, "play 2 take 1", escoba.ErrNoCapture},
		{"duplicate", 0, "play 1 take 1 1", escoba.ErrDuplicateIndex},
		{"parse error", 0, "play one", command.ErrBadNumber},
		{"unknown", 0, "shuffle", command.ErrUnknownCommand},
		{"new mid game", 0, "new", escoba.ErrGameNotOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := m.Submit(tt.player, tt.line)
			if !errors.Is(out.Err, tt.want) {
				t.Errorf("err = %v, expected %v", out.Err, tt.want)
			}
			if out.Public {
				t.Error("rejections should only be shown to the acting player")
			}
			if len(out.Lines) == 0 || !strings.HasPrefix(out.Lines[0], "Error: ") {
				t.Errorf("lines = %v", out.Lines)
			}
		})
	}

	after := m.Snapshot()
	if after.DeckRemaining != before.DeckRemaining || len(after.Table) != len(before.Table) ||
		len(after.Players[0].Hand) != len(before.Players[0].Hand) || after.Current != before.Current {
		t.Error("rejected commands changed the game state")
	}
}

func TestNoCaptureReportsSum(t *testing.T) {
	m := newShortMatch(t, nil)
	// 1C (1) + 1G (1) = 2
	out := m.Submit(0, "play 2 take 1")
	if out.Result.Sum != 2 {
		t.Errorf("Sum = %d, expected 2", out.Result.Sum)
	}
	if !strings.Contains(out.Lines[0], "2") {
		t.Errorf("message should carry the sum: %q", out.Lines[0])
	}
}

func TestSubmitHelpAndQuit(t *testing.T) {
	m := newShortMatch(t, nil)

	out := m.Submit(1, "ayuda")
	if out.Err != nil || len(out.Lines) == 0 || out.Request.Kind != command.KindHelp {
		t.Errorf("help outcome = %+v", out)
	}

	out = m.Submit(1, "quit")
	if !out.Quit || !errors.Is(out.Err, ErrQuit) {
		t.Errorf("quit outcome = %+v", out)
	}
}

func TestNewAfterGameOver(t *testing.T) {
	saver := &fakeSaver{}
	m := New(Options{Player1: "A", Player2: "B", Seed: 99, Saver: saver})
	if err := m.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	playOut(m)
	if !m.Snapshot().GameOver() {
		t.Fatal("game did not finish")
	}

	out := m.Submit(1, "new")
	if out.Err != nil || !out.Public {
		t.Fatalf("new outcome = %+v", out)
	}
	snap := m.Snapshot()
	if snap.Round != 2 || snap.State != escoba.StateInProgress || snap.DeckRemaining != 30 {
		t.Errorf("after new: round=%d state=%v deck=%d", snap.Round, snap.State, snap.DeckRemaining)
	}

	playOut(m)
	if saver.count() != 2 {
		t.Errorf("SaveMatch called %d times over two rounds, expected 2", saver.count())
	}
}

func TestSaverErrorDoesNotBreakMatch(t *testing.T) {
	saver := &fakeSaver{err: errors.New("disk full")}
	m := newShortMatch(t, saver)
	playOut(m)
	if !m.Snapshot().GameOver() {
		t.Error("game should finish even if history cannot be saved")
	}
}

// TestConcurrentPanes drives both players from separate goroutines, the
// way two input panes would, and checks that no card is lost.
func TestConcurrentPanes(t *testing.T) {
	saver := &fakeSaver{}
	m := New(Options{Player1: "A", Player2: "B", Seed: 2024, Saver: saver})
	if err := m.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	var wg sync.WaitGroup
	for p := 0; p < escoba.NumPlayers; p++ {
		wg.Add(1)
		go func(player int) {
			defer wg.Done()
			for !m.Snapshot().GameOver() {
				m.Submit(player, "play 1")
				m.Submit(player, "help")
			}
		}(p)
	}
	wg.Wait()

	snap := m.Snapshot()
	total := snap.Players[0].CapturedCount() + snap.Players[1].CapturedCount()
	if total != cards.DeckSize {
		t.Errorf("captured %d cards in total, expected %d", total, cards.DeckSize)
	}
	if len(snap.Table) != 0 || snap.DeckRemaining != 0 {
		t.Errorf("table=%d deck=%d after game over", len(snap.Table), snap.DeckRemaining)
	}
	if saver.count() != 1 {
		t.Errorf("SaveMatch called %d times, expected 1", saver.count())
	}
}

// playOut places the first card for whoever is to move until the round ends.
func playOut(m *Match) {
	for !m.Snapshot().GameOver() {
		m.Submit(m.Snapshot().Current, "play 1")
	}
}
