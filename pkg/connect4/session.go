package connect4

import "github.com/pkg/errors"

// Snapshot of a session, returned by Move, MoveMany and Look. The history
// slice is a copy, the caller may keep or modify it freely.
type Snapshot struct {
	History []Column
	Result  Result
}

// Session is a mutable game wrapper around Position: it validates and
// sequences moves one-at-a-time or in a batch, reports outcomes, and can
// be reset to the empty board. The MCTS engine drives one session during
// a search as its simulator.
type Session struct {
	pos Position
}

// Create a session holding the empty initial position
func NewSession() *Session {
	s := &Session{}
	s.pos.Reset()
	return s
}

// Create a session and replay the given history onto it. Equivalent to
// NewSession followed by MoveMany.
func NewSessionWithHistory(history []Column) (*Session, error) {
	s := NewSession()
	if _, err := s.MoveMany(history); err != nil {
		return nil, err
	}
	return s, nil
}

// Play a single move for the side to move
func (s *Session) Move(c Column) (Snapshot, error) {
	if s.pos.IsTerminated() {
		return Snapshot{}, errors.Wrapf(ErrGameOver, "column %d", c)
	}
	if !s.pos.Legal(c) {
		return Snapshot{}, errors.Wrapf(ErrIllegalMove, "column %d", c)
	}

	s.pos.MakeMove(c)
	return s.Look(), nil
}

// Play a batch of moves. The batch is atomic: if any move is illegal, or
// the game ends before the last supplied move, the session is left
// unchanged. Ending exactly at the last supplied move is fine.
func (s *Session) MoveMany(cs []Column) (Snapshot, error) {
	if s.pos.IsTerminated() {
		return Snapshot{}, ErrGameOver
	}

	// Replay on a scratch copy, commit only when the whole batch applies
	scratch := s.pos.Clone()
	for i, c := range cs {
		if scratch.IsTerminated() {
			return Snapshot{}, errors.Wrapf(ErrInvalidGame, "game over before move %d (column %d)", i, c)
		}
		if !scratch.Legal(c) {
			return Snapshot{}, errors.Wrapf(ErrInvalidGame, "illegal move %d (column %d)", i, c)
		}
		scratch.MakeMove(c)
	}

	s.pos = scratch
	return s.Look(), nil
}

// Generate all playable columns in the current position
func (s *Session) LegalMoves() *MoveList {
	return s.pos.LegalMoves()
}

// Non-mutating snapshot of the session
func (s *Session) Look() Snapshot {
	return Snapshot{
		History: s.pos.History(),
		Result:  s.pos.Result(),
	}
}

// Return to the empty initial position, whatever the current state is
func (s *Session) Reset() {
	s.pos.Reset()
}

// Result of the game so far
func (s *Session) Result() Result {
	return s.pos.Result()
}

// Side to move
func (s *Session) Turn() Color {
	return s.pos.Turn()
}

// The underlying position, for rendering
func (s *Session) Position() Position {
	return s.pos.Clone()
}
