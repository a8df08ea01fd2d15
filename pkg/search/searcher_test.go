package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryokubo/sunfish/pkg/search"
	"github.com/ryokubo/sunfish/pkg/shogi"
)

func newTestSearcher() *search.Searcher {
	ctx := context.Background()
	return search.NewSearcher(ctx, materialEvaluator{}, search.DefaultConfig(), 1<<16)
}

func TestSearcherSearchFromStartPositionReturnsLegalMove(t *testing.T) {
	s := newTestSearcher()
	pos := shogi.NewStartPosition()

	m, _, err := s.Search(context.Background(), pos, 1)
	require.NoError(t, err)
	assert.False(t, m.IsEmpty())

	_, ok := pos.ApplyMove(m)
	assert.True(t, ok)
}

// With White reduced to a bare king and Black holding a large material
// edge, the search should still return a legal move and a score heavily
// favoring the side to move (Black).
func TestSearcherFindsLopsidedMaterialAdvantage(t *testing.T) {
	pos := shogi.NewEmptyPosition()
	pos.SetSquare(shogi.NewSquare(0, 0), shogi.King, shogi.White)
	pos.SetSquare(shogi.NewSquare(8, 8), shogi.King, shogi.Black)
	pos.SetSquare(shogi.NewSquare(4, 4), shogi.Rook, shogi.Black)
	pos.SetSquare(shogi.NewSquare(5, 4), shogi.Bishop, shogi.Black)
	pos.SetSquare(shogi.NewSquare(6, 4), shogi.Gold, shogi.Black)

	s := newTestSearcher()
	m, score, err := s.Search(context.Background(), pos, 2)
	require.NoError(t, err)
	assert.False(t, m.IsEmpty())
	assert.Greater(t, score, search.Value(0))
}

func TestSearcherSearchWithEmptyRecordSucceeds(t *testing.T) {
	s := newTestSearcher()
	s.SetRecord(search.NewRecord(shogi.NewStartPosition()))

	_, _, err := s.Search(context.Background(), shogi.NewStartPosition(), 1)
	require.NoError(t, err)
}

func TestSearcherIDSearchRespectsMaxDepth(t *testing.T) {
	cfg := search.DefaultConfig()
	cfg.MaxDepth = 2
	s := search.NewSearcher(context.Background(), materialEvaluator{}, cfg, 1<<16)

	m, _, err := s.IDSearch(context.Background(), shogi.NewStartPosition())
	require.NoError(t, err)
	assert.False(t, m.IsEmpty())
	assert.LessOrEqual(t, s.GetInfo().LastDepth, 2)
}

func TestSearcherStopsOnCancelledContext(t *testing.T) {
	cfg := search.DefaultConfig()
	cfg.MaxDepth = 30
	s := search.NewSearcher(context.Background(), materialEvaluator{}, cfg, 1<<16)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.Search(ctx, shogi.NewStartPosition(), 30)
	assert.Error(t, err)
}

func TestSearcherForceInterruptStopsLongSearch(t *testing.T) {
	cfg := search.DefaultConfig()
	cfg.MaxDepth = 30
	s := search.NewSearcher(context.Background(), materialEvaluator{}, cfg, 1<<16)

	go func() {
		time.Sleep(10 * time.Millisecond)
		s.ForceInterrupt()
	}()

	_, _, err := s.IDSearch(context.Background(), shogi.NewStartPosition())
	assert.Error(t, err)
}
