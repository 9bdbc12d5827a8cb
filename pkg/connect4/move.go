package connect4

import (
	"strconv"
	"strings"
)

// Fixed-size list of playable columns, at most one entry per column
type MoveList struct {
	moves [NumColumns]Column
	size  uint8
}

// Make a new move list struct
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Reset the movelist, simply sets the size to 0
func (ml *MoveList) Clear() {
	ml.size = 0
}

// Get the actual slice of valid moves
func (ml *MoveList) Slice() []Column {
	return ml.moves[0:ml.size]
}

func (ml *MoveList) Size() int {
	return int(ml.size)
}

// Appends a new column to the list of moves
func (ml *MoveList) Append(c Column) {
	ml.moves[ml.size] = c
	ml.size++
}

// Wheter the list contains given column
func (ml *MoveList) Contains(c Column) bool {
	for _, m := range ml.Slice() {
		if m == c {
			return true
		}
	}
	return false
}

// Convert movelist into a string, with space separation
func (ml *MoveList) String() string {
	if ml.size == 0 {
		return "empty"
	}

	strMoves := make([]string, ml.size)
	for i, m := range ml.Slice() {
		strMoves[i] = strconv.Itoa(int(m))
	}
	return strings.Join(strMoves, " ")
}
