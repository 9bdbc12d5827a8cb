package connect4

import "github.com/pkg/errors"

// Error values returned by the session. The session recovers nothing
// internally, every failure is reported to the caller and the prior
// state is preserved.
var (
	// Move into a full or out-of-range column
	ErrIllegalMove = errors.New("connect4: illegal move")

	// Move submitted after the game has ended
	ErrGameOver = errors.New("connect4: game is over")

	// A supplied history contains an illegal move, or leads to a terminal
	// position before its last move
	ErrInvalidGame = errors.New("connect4: invalid game")
)
