package cards

import (
	"errors"
	"math/rand"
)

// DeckSize is the number of cards in a full Spanish deck.
const DeckSize = 40

// ErrEmptyDeck is returned by Draw when no cards remain.
var ErrEmptyDeck = errors.New("cards: deck is empty")

// Deck is an ordered pile of cards drawn from the front.
// Drawn cards are removed permanently.
type Deck struct {
	cards []Card
}

// NewDeck builds a full 40-card deck in fixed order:
// for each suit (Golds, Cups, Swords, Batons), ranks 1-7 then Jack, Knight, King.
func NewDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, DeckSize)}
	for _, s := range Suits {
		for _, r := range Ranks {
			d.cards = append(d.cards, Card{Rank: r, Suit: s})
		}
	}
	return d
}

// NewStackedDeck creates a deck holding exactly the given cards in order.
// Used to arrange a known deal in tests and replays.
func NewStackedDeck(cs []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cs))}
	copy(d.cards, cs)
	return d
}

// Shuffle permutes the remaining cards uniformly using rng (Fisher-Yates).
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, nil
}

// IsEmpty reports whether no cards remain.
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Remaining returns the number of cards left.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards in draw order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
