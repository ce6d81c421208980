package escoba

import (
	"fmt"

	"github.com/vovakirdan/escoba/internal/cards"
)

// Player holds one side's hand, capture pile and escoba count.
// Cards only ever leave the hand; the capture pile only grows.
type Player struct {
	name     string
	hand     []cards.Card
	captured []cards.Card
	escobas  int
}

// NewPlayer creates a player with an empty hand and pile.
func NewPlayer(name string) *Player {
	return &Player{name: name}
}

// Name returns the player's display name.
func (p *Player) Name() string {
	return p.name
}

// AddToHand appends a card to the hand.
func (p *Player) AddToHand(c cards.Card) {
	p.hand = append(p.hand, c)
}

// CardInHand returns the card at index without removing it.
func (p *Player) CardInHand(index int) (cards.Card, error) {
	if index < 0 || index >= len(p.hand) {
		return cards.Card{}, fmt.Errorf("%w: hand card %d (hand has %d cards)", ErrInvalidIndex, index, len(p.hand))
	}
	return p.hand[index], nil
}

// RemoveFromHand removes and returns the card at index.
func (p *Player) RemoveFromHand(index int) (cards.Card, error) {
	c, err := p.CardInHand(index)
	if err != nil {
		return cards.Card{}, err
	}
	p.hand = append(p.hand[:index:index], p.hand[index+1:]...)
	return c, nil
}

// AddToCaptured appends a single card to the capture pile.
func (p *Player) AddToCaptured(c cards.Card) {
	p.captured = append(p.captured, c)
}

// AddAllToCaptured appends cards to the capture pile.
func (p *Player) AddAllToCaptured(cs []cards.Card) {
	p.captured = append(p.captured, cs...)
}

// IncrementEscobas records one more table clear.
func (p *Player) IncrementEscobas() {
	p.escobas++
}

// HasCardsInHand reports whether the hand is non-empty.
func (p *Player) HasCardsInHand() bool {
	return len(p.hand) > 0
}

// HandSize returns the number of cards in hand.
func (p *Player) HandSize() int {
	return len(p.hand)
}

// CapturedCount returns the size of the capture pile.
func (p *Player) CapturedCount() int {
	return len(p.captured)
}

// Escobas returns the number of escobas scored.
func (p *Player) Escobas() int {
	return p.escobas
}

// Snapshot returns an independent copy of the player's state.
func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		Name:     p.name,
		Hand:     cloneCards(p.hand),
		Captured: cloneCards(p.captured),
		Escobas:  p.escobas,
	}
}

// PlayerSnapshot is a read-only copy of a player's state.
// It is all the score calculator needs.
type PlayerSnapshot struct {
	Name     string
	Hand     []cards.Card
	Captured []cards.Card
	Escobas  int
}

// CapturedCount returns the size of the capture pile.
func (s PlayerSnapshot) CapturedCount() int {
	return len(s.Captured)
}

// CountSuit returns how many captured cards have the given suit.
func (s PlayerSnapshot) CountSuit(suit cards.Suit) int {
	n := 0
	for _, c := range s.Captured {
		if c.Suit == suit {
			n++
		}
	}
	return n
}

// CountRank returns how many captured cards have the given rank.
func (s PlayerSnapshot) CountRank(rank cards.Rank) int {
	n := 0
	for _, c := range s.Captured {
		if c.Rank == rank {
			n++
		}
	}
	return n
}

// HasCaptured reports whether the capture pile contains the card.
func (s PlayerSnapshot) HasCaptured(card cards.Card) bool {
	for _, c := range s.Captured {
		if c == card {
			return true
		}
	}
	return false
}

func cloneCards(cs []cards.Card) []cards.Card {
	out := make([]cards.Card, len(cs))
	copy(out, cs)
	return out
}
