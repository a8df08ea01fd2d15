package search

import "github.com/ryokubo/sunfish/pkg/shogi"

// Record is a game history: an initial position plus the moves played from
// it. SetRecord/ClearRecord feed it to the searcher so SHEK can be primed
// by replaying it from the initial position before a search and unwound
// in reverse after.
type Record struct {
	initial *shogi.Position
	moves   []shogi.Move
}

// NewRecord starts a Record at initial, with no moves played yet.
func NewRecord(initial *shogi.Position) *Record {
	return &Record{initial: initial}
}

// Append adds a move to the end of the record.
func (r *Record) Append(m shogi.Move) {
	r.moves = append(r.moves, m)
}

// Count returns the number of moves recorded.
func (r *Record) Count() int {
	return len(r.moves)
}

// MoveAt returns the move at history index i (0-based from the initial
// position), and false if i is out of range.
func (r *Record) MoveAt(i int) (shogi.Move, bool) {
	if i < 0 || i >= len(r.moves) {
		return shogi.Move{}, false
	}
	return r.moves[i], true
}

// InitialPosition returns the position the record starts from.
func (r *Record) InitialPosition() *shogi.Position {
	return r.initial
}
