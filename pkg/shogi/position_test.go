package shogi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ryokubo/sunfish/pkg/shogi"
)

func TestStartPositionMoveCounts(t *testing.T) {
	pos := shogi.NewStartPosition()

	assert.False(t, pos.IsChecked(shogi.Black))
	assert.False(t, pos.IsChecked(shogi.White))

	captures := pos.GenerateCaptures(shogi.Black)
	assert.Empty(t, captures)

	quiet := pos.GenerateQuiet(shogi.Black)
	// 9 pawns x1, 2 lances x1 (stopped by own pawns), 2 knights x0 (own
	// pawns on their landing squares), 2 silvers x2, 2 golds x3, king x3,
	// rook x6 along its rank, bishop x0: 30 in all. Assert a sane lower
	// bound rather than a brittle exact count.
	assert.True(t, len(quiet) > 20, "expected plenty of legal opening moves, got %d", len(quiet))

	drops := pos.GenerateDrops(shogi.Black)
	assert.Empty(t, drops, "no pieces in hand at game start")
}

func TestApplyMoveIsReversibleViaGame(t *testing.T) {
	zt := shogi.NewZobristTable(1)
	g := shogi.NewGame(zt, shogi.NewStartPosition())

	startHash := g.Hash()

	// 7g7f (Black pawn push), a quiet, non-capturing board move.
	from, _ := shogi.ParseSquare('7', 'g')
	to, _ := shogi.ParseSquare('7', 'f')
	m := shogi.Move{From: from, To: to, Piece: shogi.Pawn}

	ok := g.PushMove(m)
	assert.True(t, ok)
	assert.Equal(t, shogi.White, g.Turn())
	assert.NotEqual(t, startHash, g.Hash())

	undone, ok := g.PopMove()
	assert.True(t, ok)
	assert.True(t, undone.Equals(m))
	assert.Equal(t, shogi.Black, g.Turn())
	assert.Equal(t, startHash, g.Hash())
}

func TestDropRespectsNifu(t *testing.T) {
	// Kings on (4,0) and (4,8), a Black pawn on (0,4), and a pawn in
	// Black's hand, so pawn drops are generated on every other file.
	pos, err := shogi.ParsePosition("4k4/9/9/9/P8/9/9/9/4K4 b P 1")
	assert.NoError(t, err)

	drops := pos.GenerateDrops(shogi.Black)
	assert.NotEmpty(t, drops)
	for _, d := range drops {
		if d.Drop == shogi.Pawn && d.To.File() == 0 {
			t.Fatalf("nifu violation: pawn drop generated on file already holding a pawn: %v", d)
		}
	}
}

func TestSFENRoundTrip(t *testing.T) {
	start := shogi.NewStartPosition()
	sfen := start.SFEN()

	parsed, err := shogi.ParsePosition(sfen)
	assert.NoError(t, err)
	assert.Equal(t, sfen, parsed.SFEN())
	assert.Equal(t, shogi.Black, parsed.Turn())
}

func TestMoveSerializeFollowsIdentity(t *testing.T) {
	from, _ := shogi.ParseSquare('7', 'g')
	to, _ := shogi.ParseSquare('7', 'f')
	m := shogi.Move{From: from, To: to, Piece: shogi.Pawn}

	other := shogi.Move{From: from, To: to, Piece: shogi.Pawn, Capture: shogi.Silver}
	assert.True(t, m.Equals(other), "Equals ignores Capture/Piece bookkeeping")
	assert.Equal(t, m.Serialize(), other.Serialize())

	drop := shogi.NewDrop(shogi.Pawn, to)
	assert.False(t, m.Equals(drop))
	assert.NotEqual(t, m.Serialize(), drop.Serialize())
}
