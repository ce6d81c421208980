// Package cards models the 40-card Spanish deck used by Escoba.
// It has no dependencies on the game rules so it can be tested on its own.
package cards

import "fmt"

// Suit is one of the four Spanish suits.
type Suit int

const (
	Golds Suit = iota // Oros, the primary suit for scoring
	Cups              // Copas
	Swords            // Espadas
	Batons            // Bastos
)

// Suits lists every suit in deck build order.
var Suits = []Suit{Golds, Cups, Swords, Batons}

// String returns the English suit name.
func (s Suit) String() string {
	switch s {
	case Golds:
		return "Golds"
	case Cups:
		return "Cups"
	case Swords:
		return "Swords"
	case Batons:
		return "Batons"
	default:
		return "Unknown"
	}
}

// Letter returns the one-letter suit code used in short card names.
func (s Suit) Letter() string {
	switch s {
	case Golds:
		return "G"
	case Cups:
		return "C"
	case Swords:
		return "S"
	case Batons:
		return "B"
	default:
		return "?"
	}
}

// Rank is the printed number of a card: 1-7, 10 (Jack), 11 (Knight) or 12 (King).
type Rank int

const (
	Ace    Rank = 1
	Seven  Rank = 7
	Jack   Rank = 10 // Sota
	Knight Rank = 11 // Caballo
	King   Rank = 12 // Rey
)

// Ranks lists every rank in deck build order.
var Ranks = []Rank{1, 2, 3, 4, 5, 6, 7, Jack, Knight, King}

// Valid reports whether r exists in the Spanish 40-card deck.
func (r Rank) Valid() bool {
	return (r >= 1 && r <= 7) || r == Jack || r == Knight || r == King
}

// Value returns the game value used when summing to 15.
// Ranks 1-7 count as themselves; Jack, Knight and King count as 8, 9 and 10.
func (r Rank) Value() int {
	switch r {
	case Jack:
		return 8
	case Knight:
		return 9
	case King:
		return 10
	default:
		return int(r)
	}
}

// String returns the English rank name.
func (r Rank) String() string {
	switch r {
	case Ace:
		return "Ace"
	case Jack:
		return "Jack"
	case Knight:
		return "Knight"
	case King:
		return "King"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// Letter returns the short rank code (A, 2-7, J, N, K).
func (r Rank) Letter() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Knight:
		return "N"
	case King:
		return "K"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// Card is an immutable rank/suit pair. Cards compare with ==.
type Card struct {
	Rank Rank
	Suit Suit
}

// New creates a card.
func New(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Value returns the card's game value (see Rank.Value).
func (c Card) Value() int {
	return c.Rank.Value()
}

// Is reports whether the card has the given rank and suit.
func (c Card) Is(rank Rank, suit Suit) bool {
	return c.Rank == rank && c.Suit == suit
}

// String returns the long name, e.g. "7 of Golds" or "Knight of Cups".
func (c Card) String() string {
	return c.Rank.String() + " of " + c.Suit.String()
}

// Short returns the compact name, e.g. "7G" or "NC".
func (c Card) Short() string {
	return c.Rank.Letter() + c.Suit.Letter()
}

// Sum returns the total game value of the given cards.
func Sum(cs []Card) int {
	total := 0
	for _, c := range cs {
		total += c.Value()
	}
	return total
}
