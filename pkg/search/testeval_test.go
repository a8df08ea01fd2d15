package search_test

import (
	"github.com/ryokubo/sunfish/pkg/search"
	"github.com/ryokubo/sunfish/pkg/shogi"
)

// materialEvaluator is the simplest possible search.Evaluator: the
// material balance from Black's perspective, using search's own nominal
// piece-value table. It exists only so pkg/search's tests can exercise
// Tree/Searcher without depending on pkg/eval.
type materialEvaluator struct{}

func (materialEvaluator) Evaluate(pos *shogi.Position) search.ValuePair {
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
	return search.ValuePair{Material: total}
}

func (e materialEvaluator) EvaluateDiff(pos *shogi.Position, prev search.ValuePair, m shogi.Move) search.ValuePair {
	return e.Evaluate(pos)
}
