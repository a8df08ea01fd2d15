package search_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ryokubo/sunfish/pkg/search"
	"github.com/ryokubo/sunfish/pkg/shogi"
)

func TestTranspositionTableSizeRoundsDownToPowerOfTwo(t *testing.T) {
	ctx := context.Background()

	// Size is in buckets of 4 entries x 64 bytes: 0x1000 bytes is 16
	// buckets, and 0x1f00 bytes (31 buckets' worth) rounds down to 16.
	tt := search.NewTranspositionTable(ctx, 0x1000)
	assert.Equal(t, uint64(16), tt.Size())

	tt2 := search.NewTranspositionTable(ctx, 0x1f00)
	assert.Equal(t, uint64(16), tt2.Size())
}

func TestTranspositionTableProbeMiss(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 0x1000)
	hash := shogi.ZobristHash(rand.Uint64())

	_, _, _, _, _, ok := tt.Probe(hash, 0)
	assert.False(t, ok)
}

func TestTranspositionTableStoreProbeRoundTrip(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 0x1000)
	hash := shogi.ZobristHash(rand.Uint64())
	m := shogi.Move{From: shogi.NewSquare(6, 6), To: shogi.NewSquare(6, 5), Piece: shogi.Pawn}

	tt.Store(hash, -100, 100, 42, 5, 2, m)

	bound, depth, value, move1, _, ok := tt.Probe(hash, 2)
	assert.True(t, ok)
	assert.Equal(t, search.ExactBound, bound)
	assert.Equal(t, 5, depth)
	assert.Equal(t, search.Value(42), value)
	assert.True(t, move1.Equals(m))
}

func TestTranspositionTableBoundClassification(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 0x1000)
	m := shogi.Move{From: shogi.NewSquare(6, 6), To: shogi.NewSquare(6, 5), Piece: shogi.Pawn}

	lowerHash := shogi.ZobristHash(1)
	tt.Store(lowerHash, -10, 10, 20, 3, 0, m) // value >= beta
	bound, _, _, _, _, _ := tt.Probe(lowerHash, 0)
	assert.Equal(t, search.LowerBound, bound)

	upperHash := shogi.ZobristHash(2)
	tt.Store(upperHash, -10, 10, -20, 3, 0, m) // value <= alpha
	bound, _, _, _, _, _ = tt.Probe(upperHash, 0)
	assert.Equal(t, search.UpperBound, bound)
}

func TestTranspositionTableMateScoreRoundTripsAtSamePly(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 0x1000)
	m := shogi.Move{From: shogi.NewSquare(6, 6), To: shogi.NewSquare(6, 5), Piece: shogi.Pawn}
	hash := shogi.ZobristHash(99)

	// A mate-band value stored at ply 4 and probed back at the same ply.
	tt.Store(hash, -search.Inf, search.Inf, search.Mate+3, 10, 4, m)

	_, _, value, _, _, ok := tt.Probe(hash, 4)
	assert.True(t, ok)
	assert.Equal(t, search.Mate+3, value)
}

func TestTranspositionTableShallowerWriteOnSameHashKeepsDeeperMove(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 0x1000)
	hash := shogi.ZobristHash(7)
	m1 := shogi.Move{From: shogi.NewSquare(6, 6), To: shogi.NewSquare(6, 5), Piece: shogi.Pawn}
	m2 := shogi.Move{From: shogi.NewSquare(2, 6), To: shogi.NewSquare(2, 5), Piece: shogi.Pawn}

	tt.Store(hash, -10, 10, 5, 8, 0, m1)
	tt.Store(hash, -10, 10, 6, 4, 0, m2) // shallower write on the same hash still updates in place

	_, depth, value, move1, move2, ok := tt.Probe(hash, 0)
	assert.True(t, ok)
	assert.Equal(t, 4, depth)
	assert.Equal(t, search.Value(6), value)
	assert.True(t, move1.Equals(m1)) // shallower write demotes its move to the hint slot
	assert.True(t, move2.Equals(m2))
}

func TestTranspositionTableClear(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 0x1000)
	hash := shogi.ZobristHash(1)
	m := shogi.Move{From: shogi.NewSquare(6, 6), To: shogi.NewSquare(6, 5), Piece: shogi.Pawn}

	tt.Store(hash, -10, 10, 1, 1, 0, m)
	tt.Clear()

	_, _, _, _, _, ok := tt.Probe(hash, 0)
	assert.False(t, ok)
}
