// Package eval provides search.Evaluator implementations: plain material
// count, a material-plus-piece-square-table linear evaluator, and a small
// randomized noise wrapper for varying engine personality between games.
package eval

import (
	"github.com/ryokubo/sunfish/pkg/search"
	"github.com/ryokubo/sunfish/pkg/shogi"
)

// Material scores the Black-relative nominal material balance: pieces on
// the board plus pieces held in hand, which count in shogi exactly as
// board pieces do since either can be brought to bear next move.
type Material struct{}

func (Material) Evaluate(pos *shogi.Position) search.ValuePair {
	return search.ValuePair{Material: materialBalance(pos)}
}

func (m Material) EvaluateDiff(pos *shogi.Position, prev search.ValuePair, mv shogi.Move) search.ValuePair {
	return m.Evaluate(pos)
}

func materialBalance(pos *shogi.Position) search.Value {
	var total search.Value
	for s := shogi.ZeroSquare; s < shogi.NumSquares; s++ {
		pl := pos.At(s)
		if pl.Empty() {
			continue
		}
		v := search.NominalValue(pl.Piece)
		if pl.Color == shogi.Black {
			total += v
		} else {
			total -= v
		}
	}
	for _, p := range shogi.HandPieces {
		v := search.NominalValue(p)
		total += search.Value(pos.Hand(shogi.Black).Count(p)) * v
		total -= search.Value(pos.Hand(shogi.White).Count(p)) * v
	}
	return total
}
