// Package command parses the text commands players type into their input
// line. Card and table numbers are 1-based on the wire and converted to the
// engine's 0-based indices here.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind is the semantic command, abstracted from the words used to type it.
type Kind int

const (
	KindNone    Kind = iota
	KindPlace        // play <n>
	KindCapture      // play <n> take <m>...
	KindHelp         // help, ayuda
	KindQuit         // quit, salir
	KindNew          // new, nueva
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindPlace:
		return "Place"
	case KindCapture:
		return "Capture"
	case KindHelp:
		return "Help"
	case KindQuit:
		return "Quit"
	case KindNew:
		return "New"
	default:
		return "Unknown"
	}
}

// Parse errors.
var (
	ErrEmpty          = errors.New("command: empty command")
	ErrUnknownCommand = errors.New("command: unknown command")
	ErrMissingCard    = errors.New("command: missing card number")
	ErrBadNumber      = errors.New("command: invalid number")
	ErrMissingTake    = errors.New("command: expected 'take' followed by table card numbers")
)

// Request is a parsed command. Card and Table hold 0-based indices.
type Request struct {
	Kind  Kind
	Card  int
	Table []int
}

var (
	playWords = map[string]bool{"play": true, "jugar": true, "p": true}
	takeWords = map[string]bool{"take": true, "llevar": true, "t": true}
	helpWords = map[string]bool{"help": true, "ayuda": true, "?": true}
	quitWords = map[string]bool{"quit": true, "salir": true, "exit": true}
	newWords  = map[string]bool{"new": true, "nueva": true}
)

// Parse turns a raw input line into a Request. Words are case-insensitive
// and extra whitespace is ignored.
func Parse(line string) (Request, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Request{}, ErrEmpty
	}

	word, args := fields[0], fields[1:]
	switch {
	case playWords[word]:
		return parsePlay(args)
	case helpWords[word]:
		return Request{Kind: KindHelp}, nil
	case quitWords[word]:
		return Request{Kind: KindQuit}, nil
	case newWords[word]:
		return Request{Kind: KindNew}, nil
	}
	return Request{}, fmt.Errorf("%w: %q (type 'help')", ErrUnknownCommand, word)
}

func parsePlay(args []string) (Request, error) {
	if len(args) == 0 {
		return Request{}, ErrMissingCard
	}
	card, err := index(args[0])
	if err != nil {
		return Request{}, err
	}

	rest := args[1:]
	if len(rest) == 0 {
		return Request{Kind: KindPlace, Card: card}, nil
	}
	if !takeWords[rest[0]] || len(rest) == 1 {
		return Request{}, ErrMissingTake
	}

	table := make([]int, 0, len(rest)-1)
	for _, arg := range rest[1:] {
		idx, err := index(arg)
		if err != nil {
			return Request{}, err
		}
		table = append(table, idx)
	}
	return Request{Kind: KindCapture, Card: card, Table: table}, nil
}

// index converts a 1-based number into a 0-based index. Range checks
// against the hand and table belong to the engine.
func index(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(s, ","))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrBadNumber, s)
	}
	return n - 1, nil
}

// Help returns the command reference shown on 'help'.
func Help() []string {
	return []string{
		"=== COMMANDS ===",
		"play <n>                 place card n from your hand on the table",
		"play <n> take <m> [...]  capture table cards m... with card n (sum must be 15)",
		"help                     show this help",
		"new                      start a new game once the current one is over",
		"quit                     leave the game",
		"",
		"Values: 1-7 face value, Jack = 8, Knight = 9, King = 10.",
		"Clearing the table with a capture is an escoba (+1 point).",
		"Spanish words work too: jugar, llevar, ayuda, nueva, salir.",
	}
}
