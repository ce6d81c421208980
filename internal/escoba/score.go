package escoba

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/escoba/internal/cards"
)

// Breakdown is one player's score split by criterion.
// Each "most" criterion is strict: a tie gives the point to nobody.
type Breakdown struct {
	Name string

	Escobas int // One point each, uncapped

	Cards         int
	OpponentCards int
	MostCards     int

	Golds         int
	OpponentGolds int
	MostGolds     int

	SevenOfGolds int

	Sevens         int
	OpponentSevens int
	MostSevens     int

	Total int
}

// Score computes player's points against opponent from their final
// snapshots. It is a pure function of its arguments.
func Score(player, opponent PlayerSnapshot) Breakdown {
	b := Breakdown{
		Name:           player.Name,
		Escobas:        player.Escobas,
		Cards:          player.CapturedCount(),
		OpponentCards:  opponent.CapturedCount(),
		Golds:          player.CountSuit(PrimarySuit),
		OpponentGolds:  opponent.CountSuit(PrimarySuit),
		Sevens:         player.CountRank(cards.Seven),
		OpponentSevens: opponent.CountRank(cards.Seven),
	}

	b.MostCards = point(b.Cards > b.OpponentCards)
	b.MostGolds = point(b.Golds > b.OpponentGolds)
	b.SevenOfGolds = point(player.HasCaptured(cards.New(cards.Seven, PrimarySuit)))
	b.MostSevens = point(b.Sevens > b.OpponentSevens)

	b.Total = b.Escobas + b.MostCards + b.MostGolds + b.SevenOfGolds + b.MostSevens
	return b
}

func point(won bool) int {
	if won {
		return 1
	}
	return 0
}

// Lines renders the breakdown for display.
func (b Breakdown) Lines() []string {
	seven := "No"
	if b.SevenOfGolds == 1 {
		seven = "Yes"
	}
	return []string{
		fmt.Sprintf("%s - score breakdown:", b.Name),
		fmt.Sprintf("  Escobas: %d x 1 = %d pts", b.Escobas, b.Escobas),
		fmt.Sprintf("  Most cards: %d vs %d = %d pt", b.Cards, b.OpponentCards, b.MostCards),
		fmt.Sprintf("  Most golds: %d vs %d = %d pt", b.Golds, b.OpponentGolds, b.MostGolds),
		fmt.Sprintf("  7 of Golds: %s = %d pt", seven, b.SevenOfGolds),
		fmt.Sprintf("  Most sevens: %d vs %d = %d pt", b.Sevens, b.OpponentSevens, b.MostSevens),
		fmt.Sprintf("  TOTAL: %d points", b.Total),
	}
}

// Draw is the Winner value for equal totals.
const Draw = -1

// Summary is the end-of-game result for both players.
type Summary struct {
	Breakdowns [NumPlayers]Breakdown
	Winner     int // Player index, or Draw
}

// Summarize scores both players and picks the winner.
func Summarize(p1, p2 PlayerSnapshot) Summary {
	s := Summary{
		Breakdowns: [NumPlayers]Breakdown{Score(p1, p2), Score(p2, p1)},
		Winner:     Draw,
	}
	switch {
	case s.Breakdowns[0].Total > s.Breakdowns[1].Total:
		s.Winner = 0
	case s.Breakdowns[1].Total > s.Breakdowns[0].Total:
		s.Winner = 1
	}
	return s
}

// IsDraw reports whether both totals are equal.
func (s Summary) IsDraw() bool {
	return s.Winner == Draw
}

// Totals returns both players' final points.
func (s Summary) Totals() (int, int) {
	return s.Breakdowns[0].Total, s.Breakdowns[1].Total
}

// Lines renders the full end-of-game report.
func (s Summary) Lines() []string {
	const rule = "================================="
	lines := []string{rule, "          GAME OVER!", rule, ""}

	for _, b := range s.Breakdowns {
		lines = append(lines, b.Lines()...)
		lines = append(lines, "")
	}

	lines = append(lines, "FINAL SCORE:")
	for _, b := range s.Breakdowns {
		lines = append(lines, fmt.Sprintf("  %s: %d points", b.Name, b.Total))
	}
	lines = append(lines, "")

	if s.IsDraw() {
		lines = append(lines, "*** IT'S A DRAW! ***")
	} else {
		lines = append(lines, fmt.Sprintf("*** %s WINS! ***", strings.ToUpper(s.Breakdowns[s.Winner].Name)))
	}
	lines = append(lines, rule)
	return lines
}
