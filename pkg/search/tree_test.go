package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ryokubo/sunfish/pkg/search"
	"github.com/ryokubo/sunfish/pkg/shogi"
)

func newTestTree() (*search.Tree, *shogi.ZobristTable) {
	zt := shogi.NewZobristTable(1)
	tr := search.NewTree(zt, search.NewShekTable())
	tr.Init(shogi.NewStartPosition(), materialEvaluator{})
	return tr, zt
}

func TestTreeInitAtStartPosition(t *testing.T) {
	tr, _ := newTestTree()
	assert.Equal(t, 0, tr.Ply())
	assert.False(t, tr.IsChecking())
	assert.Equal(t, search.Value(0), tr.Value()) // symmetric starting material
}

func TestTreeMakeUnmakeMoveRestoresState(t *testing.T) {
	tr, _ := newTestTree()
	hashBefore := tr.Hash()
	turnBefore := tr.Turn()

	m := shogi.Move{From: shogi.NewSquare(2, 6), To: shogi.NewSquare(2, 5), Piece: shogi.Pawn}
	ok := tr.MakeMove(m, materialEvaluator{})
	assert.True(t, ok)
	assert.Equal(t, 1, tr.Ply())
	assert.NotEqual(t, hashBefore, tr.Hash())
	assert.NotEqual(t, turnBefore, tr.Turn())

	tr.UnmakeMove()
	assert.Equal(t, 0, tr.Ply())
	assert.Equal(t, hashBefore, tr.Hash())
	assert.Equal(t, turnBefore, tr.Turn())
}

func TestTreeIllegalMoveLeavesTreeUnchanged(t *testing.T) {
	pos := shogi.NewEmptyPosition()
	pos.SetSquare(shogi.NewSquare(4, 4), shogi.King, shogi.Black)
	pos.SetSquare(shogi.NewSquare(4, 0), shogi.Rook, shogi.White)
	pos.SetSquare(shogi.NewSquare(8, 8), shogi.King, shogi.White)

	zt := shogi.NewZobristTable(1)
	tr := search.NewTree(zt, search.NewShekTable())
	tr.Init(pos, materialEvaluator{})

	// King steps to (4,3), still on the rook's open file.
	bad := shogi.Move{From: shogi.NewSquare(4, 4), To: shogi.NewSquare(4, 3), Piece: shogi.King}
	ok := tr.MakeMove(bad, materialEvaluator{})
	assert.False(t, ok)
	assert.Equal(t, 0, tr.Ply())
}

func TestTreeNullMoveFlipsTurnOnly(t *testing.T) {
	tr, _ := newTestTree()
	hashBefore := tr.Hash()
	valueBefore := tr.ValuePair()

	tr.MakeNullMove()
	assert.Equal(t, 1, tr.Ply())
	assert.NotEqual(t, hashBefore, tr.Hash())
	assert.False(t, tr.IsChecking())
	assert.Equal(t, valueBefore, tr.ValuePair())

	tr.UnmakeNullMove()
	assert.Equal(t, 0, tr.Ply())
	assert.Equal(t, hashBefore, tr.Hash())
}

func TestTreeGenPhaseAndMoveSelection(t *testing.T) {
	tr, _ := newTestTree()
	tr.InitGenPhase(search.PhasePrior)
	assert.Equal(t, search.PhasePrior, tr.GenPhase())

	m := shogi.Move{From: shogi.NewSquare(2, 6), To: shogi.NewSquare(2, 5), Piece: shogi.Pawn}
	tr.SetMoves([]search.Move{m})

	got, ok := tr.SelectNextMove()
	assert.True(t, ok)
	assert.True(t, got.Equals(m))

	_, ok = tr.SelectNextMove()
	assert.False(t, ok)
}

func TestTreeIsStackFull(t *testing.T) {
	tr, _ := newTestTree()
	assert.False(t, tr.IsStackFull())
}
