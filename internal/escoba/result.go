package escoba

import (
	"strings"

	"github.com/vovakirdan/escoba/internal/cards"
)

// Action identifies the kind of move a player attempted.
type Action int

const (
	ActionPlace Action = iota
	ActionCapture
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionPlace:
		return "place"
	case ActionCapture:
		return "capture"
	default:
		return "unknown"
	}
}

// Result describes the outcome of an attempted action.
// The presentation layer renders it; nothing else needs to be queried.
type Result struct {
	OK      bool
	Action  Action
	Player  int
	Message string

	Played   cards.Card   // Card played from hand (zero on rejection)
	Captured []cards.Card // Table cards taken by a capture
	Swept    []cards.Card // Table cards swept by the last actor when the round ended

	Sum       int // Attempted sum, set for captures
	Escoba    bool
	GameEnded bool

	// Err is the rejection reason; nil when OK.
	Err error
}

func rejected(action Action, player int, err error) Result {
	return Result{
		Action:  action,
		Player:  player,
		Message: rejectionMessage(err),
		Err:     err,
	}
}

// rejectionMessage turns an engine error into player-facing text.
func rejectionMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), "escoba: ")
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
