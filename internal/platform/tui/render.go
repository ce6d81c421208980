package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/escoba/internal/cards"
	"github.com/vovakirdan/escoba/internal/escoba"
)

// renderCards lists cards with their 1-based numbers, the numbers players
// type in commands.
func (t Theme) renderCards(cs []cards.Card) string {
	if len(cs) == 0 {
		return t.Dim.Render("(empty)")
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = fmt.Sprintf("%d:%s", i+1, t.Card(c))
	}
	return strings.Join(parts, " ")
}

// boardLines renders what player sees of the game: the shared table, their
// own hand and a summary of both players. The opponent's hand stays hidden.
func (t Theme) boardLines(snap escoba.Snapshot, player int) []string {
	me := snap.Players[player]
	opp := snap.Players[1-player]

	lines := []string{
		t.Title.Render(me.Name),
		"",
		t.Label.Render("Table: ") + t.renderCards(snap.Table),
		t.Label.Render("Hand:  ") + t.renderCards(me.Hand),
		"",
		fmt.Sprintf("Captured %d  Escobas %d  Deck %d", me.CapturedCount(), me.Escobas, snap.DeckRemaining),
		t.Dim.Render(fmt.Sprintf("%s: %d in hand, %d captured, %d escobas",
			opp.Name, len(opp.Hand), opp.CapturedCount(), opp.Escobas)),
		"",
	}

	switch {
	case snap.State == escoba.StateNotStarted:
		lines = append(lines, t.Dim.Render("Waiting for the deal..."))
	case snap.GameOver():
		lines = append(lines, t.Escoba.Render("GAME OVER"))
	case snap.Current == player:
		lines = append(lines, t.Panes[player].Turn.Render(">>> YOUR TURN <<<"))
	default:
		lines = append(lines, t.Dim.Render(fmt.Sprintf("Waiting for %s...", opp.Name)))
	}
	return lines
}

// styleLogLine highlights errors and escobas in a pane's message log.
func (t Theme) styleLogLine(line string) string {
	switch {
	case strings.HasPrefix(line, "Error: "):
		return t.Error.Render(line)
	case strings.Contains(line, "ESCOBA"):
		return t.Escoba.Render(line)
	default:
		return line
	}
}

// tail returns the last n lines.
func tail(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}

func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
