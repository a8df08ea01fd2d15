package eval

import (
	"github.com/ryokubo/sunfish/pkg/search"
	"github.com/ryokubo/sunfish/pkg/shogi"
)

// Linear is material plus a piece-square positional term, scaled down by
// search.PositionalScale before being folded into a single Value. This is
// the default evaluator: strong enough to give the search something
// non-trivial to optimize without requiring tuned weights.
type Linear struct{}

func (Linear) Evaluate(pos *shogi.Position) search.ValuePair {
	var material, positional search.Value
	for s := shogi.ZeroSquare; s < shogi.NumSquares; s++ {
		pl := pos.At(s)
		if pl.Empty() {
			continue
		}
		if pl.Color == shogi.Black {
			material += search.NominalValue(pl.Piece)
			positional += search.Value(pieceSquareTable[pl.Piece][s])
		} else {
			mirror := shogi.NumSquares - 1 - s
			material -= search.NominalValue(pl.Piece)
			positional -= search.Value(pieceSquareTable[pl.Piece][mirror])
		}
	}
	for _, p := range shogi.HandPieces {
		v := search.NominalValue(p)
		material += search.Value(pos.Hand(shogi.Black).Count(p)) * v
		material -= search.Value(pos.Hand(shogi.White).Count(p)) * v
	}
	return search.ValuePair{Material: material, Positional: positional}
}

// EvaluateDiff recomputes from scratch rather than patching prev
// incrementally: at 81 squares this is cheap enough that the extra
// bookkeeping an incremental update would need (tracking exactly which
// squares a promotion or capture touched) isn't worth its own complexity.
func (l Linear) EvaluateDiff(pos *shogi.Position, prev search.ValuePair, mv shogi.Move) search.ValuePair {
	return l.Evaluate(pos)
}
