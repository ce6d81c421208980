package escoba

import "github.com/vovakirdan/escoba/internal/cards"

// Snapshot captures the complete engine state for rendering, determinism
// testing and replay checks. It shares no memory with the engine.
type Snapshot struct {
	State         State
	Round         int
	Current       int
	LastActor     int
	DeckRemaining int
	Table         []cards.Card
	Players       [NumPlayers]PlayerSnapshot
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:         e.state,
		Round:         e.round,
		Current:       e.current,
		LastActor:     e.lastActor,
		DeckRemaining: e.deck.Remaining(),
		Table:         cloneCards(e.table),
		Players: [NumPlayers]PlayerSnapshot{
			e.players[0].Snapshot(),
			e.players[1].Snapshot(),
		},
	}
}

// GameOver reports whether the snapshot is of a finished round.
func (s Snapshot) GameOver() bool {
	return s.State == StateFinished
}
