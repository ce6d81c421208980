package escoba

import "errors"

// Rejection reasons. A rejected action never changes engine state.
var (
	// ErrInvalidIndex means a hand or table index is out of range.
	ErrInvalidIndex = errors.New("escoba: invalid card index")

	// ErrDuplicateIndex means the same table card was selected twice in one capture.
	ErrDuplicateIndex = errors.New("escoba: table card selected more than once")

	// ErrNoCapture means the selected cards do not add up to 15.
	ErrNoCapture = errors.New("escoba: cards do not sum to 15")

	// ErrNotYourTurn means the acting player is not the current player.
	ErrNotYourTurn = errors.New("escoba: not your turn")

	// ErrGameOver means the round has finished and no more actions are accepted.
	ErrGameOver = errors.New("escoba: game is over")

	// ErrNotStarted means no round has been dealt yet.
	ErrNotStarted = errors.New("escoba: game has not started")

	// ErrRoundInProgress means a new round was requested before the current one ended.
	ErrRoundInProgress = errors.New("escoba: round still in progress")

	// ErrGameNotOver means the final summary was requested before the round ended.
	ErrGameNotOver = errors.New("escoba: game is not over yet")
)
