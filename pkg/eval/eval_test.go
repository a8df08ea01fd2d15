package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ryokubo/sunfish/pkg/eval"
	"github.com/ryokubo/sunfish/pkg/search"
	"github.com/ryokubo/sunfish/pkg/shogi"
)

func TestMaterialStartPositionIsBalanced(t *testing.T) {
	var m eval.Material
	vp := m.Evaluate(shogi.NewStartPosition())
	assert.Equal(t, search.Value(0), vp.Value())
}

func TestMaterialFavorsExtraPieceOnBoard(t *testing.T) {
	pos := shogi.NewEmptyPosition()
	pos.SetSquare(shogi.NewSquare(4, 0), shogi.King, shogi.White)
	pos.SetSquare(shogi.NewSquare(4, 8), shogi.King, shogi.Black)
	pos.SetSquare(shogi.NewSquare(0, 7), shogi.Rook, shogi.Black)

	var m eval.Material
	vp := m.Evaluate(pos)
	assert.Greater(t, vp.Value(), search.Value(0))
}

func TestLinearStartPositionIsBalanced(t *testing.T) {
	var l eval.Linear
	vp := l.Evaluate(shogi.NewStartPosition())
	assert.Equal(t, search.Value(0), vp.Value())
}

func TestLinearEvaluateDiffMatchesEvaluate(t *testing.T) {
	var l eval.Linear
	pos := shogi.NewStartPosition()
	next, ok := pos.ApplyMove(shogi.Move{From: shogi.NewSquare(2, 6), To: shogi.NewSquare(2, 5), Piece: shogi.Pawn})
	assert.True(t, ok)

	prev := l.Evaluate(pos)
	diff := l.EvaluateDiff(next, prev, shogi.Move{})
	full := l.Evaluate(next)
	assert.Equal(t, full, diff)
}

func TestRandomZeroLimitIsNoop(t *testing.T) {
	var m eval.Material
	r := eval.NewRandom(m, 0, 1)

	pos := shogi.NewStartPosition()
	assert.Equal(t, m.Evaluate(pos), r.Evaluate(pos))
}

func TestRandomAddsBoundedNoise(t *testing.T) {
	var m eval.Material
	r := eval.NewRandom(m, 20, 42)

	pos := shogi.NewStartPosition()
	base := m.Evaluate(pos)
	noisy := r.Evaluate(pos)

	diff := noisy.Material - base.Material
	assert.LessOrEqual(t, diff, search.Value(10))
	assert.GreaterOrEqual(t, diff, search.Value(-10))
}
