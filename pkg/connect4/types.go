package connect4

// Type defines for the board
type Column int8
type Color uint8
type Result uint8

// Board dimensions. Each column owns 7 bits in the bitboard: 6 playable
// rows plus a guard bit on top, so shifted win detection never wraps
// between columns.
const (
	NumColumns int = 7
	NumRows    int = 6
	MaxPlies   int = 42

	// Bits per column, including the guard row
	columnStride = 7
)

// Enum for the colors, Yellow always moves first
const (
	Yellow Color = iota
	Red
)

// Enum for the game result
const (
	ResultNone Result = iota
	ResultYellowWins
	ResultRedWins
	ResultDraw
)

func (c Color) String() string {
	if c == Yellow {
		return "yellow"
	}
	return "red"
}

// The other color
func (c Color) Other() Color {
	return c ^ 1
}

func (r Result) String() string {
	switch r {
	case ResultYellowWins:
		return "yellow wins"
	case ResultRedWins:
		return "red wins"
	case ResultDraw:
		return "draw"
	}
	return "none"
}

// Wheter the result means the game has ended
func (r Result) Terminal() bool {
	return r != ResultNone
}

// Winner returns the winning color, and false if the result
// is a draw or the game is still going
func (r Result) Winner() (Color, bool) {
	switch r {
	case ResultYellowWins:
		return Yellow, true
	case ResultRedWins:
		return Red, true
	}
	return Yellow, false
}
