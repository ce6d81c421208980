// Package escoba implements the rule engine for Escoba de 15, a two-player
// capture game played with the 40-card Spanish deck.
//
// The engine is a plain state machine: callers invoke PlaceCard or
// AttemptCapture for the player whose turn it is and receive a Result
// value describing what happened. It performs no I/O and is not safe for
// concurrent use; see package match for a serialized wrapper.
package escoba

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/vovakirdan/escoba/internal/cards"
)

// Rule constants.
const (
	NumPlayers        = 2
	HandSize          = 3
	InitialTableCards = 4
	CaptureTarget     = 15
)

// PrimarySuit is the suit that counts for the "most golds" and
// "seven of golds" points.
const PrimarySuit = cards.Golds

// State is the round lifecycle state.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateFinished
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateInProgress:
		return "in progress"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// DeckFactory produces the deck for a new round. The default builds a
// full deck and shuffles it once with the engine's RNG.
type DeckFactory func(rng *rand.Rand) *cards.Deck

// ShuffledDeck is the default DeckFactory.
func ShuffledDeck(rng *rand.Rand) *cards.Deck {
	d := cards.NewDeck()
	d.Shuffle(rng)
	return d
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed makes shuffles reproducible. A zero seed uses the current time.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.seed = seed
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithDeckFactory replaces how each round's deck is produced.
func WithDeckFactory(f DeckFactory) Option {
	return func(e *Engine) {
		e.newDeck = f
	}
}

// Engine owns the deck, the table and both players for one match.
type Engine struct {
	names   [NumPlayers]string
	seed    int64
	rng     *rand.Rand
	newDeck DeckFactory

	deck      *cards.Deck
	table     []cards.Card
	players   [NumPlayers]*Player
	current   int
	lastActor int
	state     State
	round     int
}

// New creates an engine for two named players. Empty names default to
// "Player 1" and "Player 2". Call StartNewRound before playing.
func New(name1, name2 string, opts ...Option) *Engine {
	if name1 == "" {
		name1 = "Player 1"
	}
	if name2 == "" {
		name2 = "Player 2"
	}

	e := &Engine{
		names:   [NumPlayers]string{name1, name2},
		newDeck: ShuffledDeck,
		deck:    cards.NewStackedDeck(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		WithSeed(0)(e)
	}
	for i := range e.players {
		e.players[i] = NewPlayer(e.names[i])
	}
	return e
}

// StartNewRound deals a fresh round: new shuffled deck, empty table,
// reset players, four cards to the table and three to each player.
// Player 1 (index 0) always moves first.
func (e *Engine) StartNewRound() error {
	if e.state == StateInProgress {
		return ErrRoundInProgress
	}

	e.deck = e.newDeck(e.rng)
	e.table = nil
	for i := range e.players {
		e.players[i] = NewPlayer(e.names[i])
	}
	e.current = 0
	e.lastActor = 0

	for i := 0; i < InitialTableCards; i++ {
		c, err := e.deck.Draw()
		if err != nil {
			break
		}
		e.table = append(e.table, c)
	}
	e.dealHands()

	e.state = StateInProgress
	e.round++
	return nil
}

// dealHands gives three cards to each player, alternating starting with
// player 1. A short deck deals what it has.
func (e *Engine) dealHands() {
	for i := 0; i < HandSize; i++ {
		for _, p := range e.players {
			c, err := e.deck.Draw()
			if err != nil {
				return
			}
			p.AddToHand(c)
		}
	}
}

// checkTurn validates that player may act now.
func (e *Engine) checkTurn(player int) error {
	switch e.state {
	case StateNotStarted:
		return ErrNotStarted
	case StateFinished:
		return ErrGameOver
	}
	if player != e.current {
		return ErrNotYourTurn
	}
	return nil
}

// PlaceCard moves a card from the player's hand to the table without
// capturing.
func (e *Engine) PlaceCard(player, cardIndex int) Result {
	if err := e.checkTurn(player); err != nil {
		return rejected(ActionPlace, player, err)
	}

	p := e.players[player]
	card, err := p.RemoveFromHand(cardIndex)
	if err != nil {
		return rejected(ActionPlace, player, err)
	}
	e.table = append(e.table, card)

	res := Result{
		OK:      true,
		Action:  ActionPlace,
		Player:  player,
		Played:  card,
		Message: fmt.Sprintf("%s placed %s on the table", p.Name(), card),
	}
	res.Swept, res.GameEnded = e.endOfAction()
	return res
}

// AttemptCapture plays a hand card together with the selected table
// cards. The capture succeeds only when the game values add up to 15.
// All indices are validated against the current hand and table before
// anything changes, so a rejected capture leaves the engine untouched.
func (e *Engine) AttemptCapture(player, cardIndex int, tableIndices []int) Result {
	if err := e.checkTurn(player); err != nil {
		return rejected(ActionCapture, player, err)
	}

	p := e.players[player]
	card, err := p.CardInHand(cardIndex)
	if err != nil {
		return rejected(ActionCapture, player, err)
	}

	selected := make(map[int]bool, len(tableIndices))
	taken := make([]cards.Card, 0, len(tableIndices))
	for _, idx := range tableIndices {
		if idx < 0 || idx >= len(e.table) {
			return rejected(ActionCapture, player,
				fmt.Errorf("%w: table card %d (table has %d cards)", ErrInvalidIndex, idx, len(e.table)))
		}
		if selected[idx] {
			return rejected(ActionCapture, player, fmt.Errorf("%w: table card %d", ErrDuplicateIndex, idx))
		}
		selected[idx] = true
		taken = append(taken, e.table[idx])
	}

	sum := card.Value() + cards.Sum(taken)
	if sum != CaptureTarget {
		res := rejected(ActionCapture, player, fmt.Errorf("%w: your sum is %d", ErrNoCapture, sum))
		res.Sum = sum
		return res
	}

	// Validated; mutate.
	if _, err := p.RemoveFromHand(cardIndex); err != nil {
		return rejected(ActionCapture, player, err)
	}
	p.AddToCaptured(card)
	p.AddAllToCaptured(taken)

	remaining := make([]cards.Card, 0, len(e.table)-len(taken))
	for i, c := range e.table {
		if !selected[i] {
			remaining = append(remaining, c)
		}
	}
	e.table = remaining

	res := Result{
		OK:       true,
		Action:   ActionCapture,
		Player:   player,
		Played:   card,
		Captured: taken,
		Sum:      sum,
		Message:  fmt.Sprintf("%s captured %s + [%s] = 15", p.Name(), card, joinCards(taken)),
	}

	if len(e.table) == 0 {
		p.IncrementEscobas()
		res.Escoba = true
	}

	res.Swept, res.GameEnded = e.endOfAction()
	return res
}

// endOfAction redeals when both hands are empty, finishes the round when
// the deck is also empty, and otherwise passes the turn. It returns the
// cards swept by the last actor and whether the round ended.
func (e *Engine) endOfAction() ([]cards.Card, bool) {
	e.lastActor = e.current

	if !e.players[0].HasCardsInHand() && !e.players[1].HasCardsInHand() {
		if e.deck.IsEmpty() {
			return e.finish(), true
		}
		e.dealHands()
	}

	e.current = 1 - e.current
	return nil, false
}

// finish ends the round; the player who just acted takes what is left on
// the table.
func (e *Engine) finish() []cards.Card {
	swept := e.table
	if len(swept) > 0 {
		e.players[e.current].AddAllToCaptured(swept)
	}
	e.table = nil
	e.state = StateFinished
	return swept
}

// FinalSummary scores the finished round.
func (e *Engine) FinalSummary() (Summary, error) {
	if e.state != StateFinished {
		return Summary{}, ErrGameNotOver
	}
	return Summarize(e.players[0].Snapshot(), e.players[1].Snapshot()), nil
}

// Table returns a copy of the face-up cards in display order.
func (e *Engine) Table() []cards.Card {
	return cloneCards(e.table)
}

// Player returns a copy of player i's state. i must be 0 or 1.
func (e *Engine) Player(i int) PlayerSnapshot {
	return e.players[i].Snapshot()
}

// CurrentPlayer returns the index of the player whose turn it is.
func (e *Engine) CurrentPlayer() int {
	return e.current
}

// LastActor returns the index of the player who made the latest accepted move.
func (e *Engine) LastActor() int {
	return e.lastActor
}

// DeckRemaining returns the number of undealt cards.
func (e *Engine) DeckRemaining() int {
	return e.deck.Remaining()
}

// IsGameOver reports whether the round has finished.
func (e *Engine) IsGameOver() bool {
	return e.state == StateFinished
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Round returns how many rounds have been dealt.
func (e *Engine) Round() int {
	return e.round
}

// Seed returns the RNG seed in use.
func (e *Engine) Seed() int64 {
	return e.seed
}

func joinCards(cs []cards.Card) string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}
