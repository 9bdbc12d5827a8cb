package connect4

import "strings"

// Top-row mask, one guard bit per column. A column whose height bit is set
// here is full.
const topMask uint64 = 0b1000000_1000000_1000000_1000000_1000000_1000000_1000000

// Win detection direction offsets: vertical, horizontal and both diagonals.
// These exploit the 7-bit column stride.
var directions = [4]uint{1, columnStride, columnStride - 1, columnStride + 1}

// Main position struct. One bitboard per color (Tromp's layout, bit index
// 7*c + r with r=0 at the bottom), per-column heights holding the absolute
// bit index of the next drop, and the move history.
type Position struct {
	bitboards [2]uint64
	heights   [NumColumns]uint8
	history   [MaxPlies]Column
	plies     uint8
	result    Result
}

// Create a heap-allocated, initialized position
func NewPosition() *Position {
	pos := &Position{}
	pos.Reset()
	return pos
}

// Reset the position to the empty board
func (p *Position) Reset() {
	p.bitboards[Yellow] = 0
	p.bitboards[Red] = 0
	for c := range p.heights {
		p.heights[c] = uint8(c * columnStride)
	}
	p.plies = 0
	p.result = ResultNone
}

// Make a deep copy of the position (has no shared memory with this object)
func (p *Position) Clone() Position {
	// Value copy is deep, the struct holds no pointers
	return *p
}

// Side to move, Yellow iff the number of plies is even
func (p *Position) Turn() Color {
	return Color(p.plies & 1)
}

func (p *Position) Plies() int {
	return int(p.plies)
}

// Result of the game so far
func (p *Position) Result() Result {
	return p.result
}

func (p *Position) IsTerminated() bool {
	return p.result.Terminal()
}

// The moves played so far, as a freshly allocated slice
func (p *Position) History() []Column {
	history := make([]Column, p.plies)
	copy(history, p.history[:p.plies])
	return history
}

// Wheter 'c' is a playable column: in range and not full
func (p *Position) Legal(c Column) bool {
	if c < 0 || int(c) >= NumColumns {
		return false
	}
	return topMask&(1<<p.heights[c]) == 0
}

// Generate all playable columns, in ascending order, full columns omitted
func (p *Position) LegalMoves() *MoveList {
	movelist := NewMoveList()
	if p.result.Terminal() {
		return movelist
	}

	for c := 0; c < NumColumns; c++ {
		if topMask&(1<<p.heights[c]) == 0 {
			movelist.Append(Column(c))
		}
	}
	return movelist
}

// Drop a piece of the side to move into column 'c'. The caller must make
// sure the move is legal and the game is not over, see Legal and Result.
func (p *Position) MakeMove(c Column) {
	mover := p.Turn()
	p.bitboards[mover] |= 1 << p.heights[c]
	p.heights[c]++
	p.history[p.plies] = c
	p.plies++

	if connectedFour(p.bitboards[mover]) {
		if mover == Yellow {
			p.result = ResultYellowWins
		} else {
			p.result = ResultRedWins
		}
	} else if int(p.plies) == MaxPlies {
		p.result = ResultDraw
	}
}

// Shifted-AND detection of four in a row on a single color's bitboard
func connectedFour(b uint64) bool {
	for _, d := range directions {
		x := b & (b >> d)
		if x&(x>>(2*d)) != 0 {
			return true
		}
	}
	return false
}

// Get string representation of the board, bottom row last,
// 'o' for Yellow, 'x' for Red
func (p *Position) String() string {
	builder := strings.Builder{}
	for r := NumRows - 1; r >= 0; r-- {
		for c := 0; c < NumColumns; c++ {
			bit := uint64(1) << (c*columnStride + r)
			switch {
			case p.bitboards[Yellow]&bit != 0:
				builder.WriteByte('o')
			case p.bitboards[Red]&bit != 0:
				builder.WriteByte('x')
			default:
				builder.WriteByte('.')
			}
			if c+1 < NumColumns {
				builder.WriteByte(' ')
			}
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}
