package search

import (
	"context"
	"sort"

	"github.com/ryokubo/sunfish/pkg/shogi"
)

// rootMove pairs a root-level candidate with the score the most recent
// completed iteration assigned it, so the next iteration's rootSearch can
// try the previous best move first.
type rootMove struct {
	move  shogi.Move
	value Value
}

// aspirationWindows is the 3-rung ladder tried around the previous
// iteration's score before falling back to a full window: the narrower
// windows cut more nodes when they hold, and each fallback still completes
// the iteration rather than returning a possibly-wrong bound.
var aspirationWindows = [3]Value{320, 1280, Inf}

func (s *Searcher) generateRootMoves(t *Tree) []shogi.Move {
	pos := t.Position()
	turn := pos.Turn()
	if t.IsChecking() {
		return pos.GenerateEvasions(turn)
	}
	all := append(pos.GenerateCaptures(turn), pos.GenerateQuiet(turn)...)
	return append(all, pos.GenerateDrops(turn)...)
}

// rootSearch tries every move in order at depth under window [alpha, beta],
// using a null-window scout plus PV re-search for every move but the first,
// exactly like the move loop inside search itself. Returns false only if
// interrupted mid-way.
func (s *Searcher) rootSearch(ctx context.Context, t *Tree, depth int, alpha, beta Value, order []shogi.Move) ([]rootMove, bool) {
	var results []rootMove
	a := alpha
	first := true

	for _, m := range order {
		if !t.MakeMove(m, s.evaluator) {
			continue
		}

		var v Value
		if first {
			v = -s.search(ctx, t, depth, -beta, -a, true, defaultStat())
		} else {
			v = -s.search(ctx, t, depth, -a-1, -a, false, defaultStat())
			if v > a && v < beta && !s.isInterrupted(ctx) {
				v = -s.search(ctx, t, depth, -beta, -a, true, defaultStat())
			}
		}

		t.UnmakeMove()
		if s.isInterrupted(ctx) {
			return results, false
		}

		results = append(results, rootMove{move: m, value: v})
		if v > a {
			a = v
			t.UpdatePv(m)
		}
		first = false
	}

	return results, true
}

func maxRootValue(results []rootMove) Value {
	v := -Inf
	for _, r := range results {
		if r.value > v {
			v = r.value
		}
	}
	return v
}

func movesOf(results []rootMove) []shogi.Move {
	out := make([]shogi.Move, len(results))
	for i, r := range results {
		out[i] = r.move
	}
	return out
}

// runSearch drives the iterative-deepening loop from depth 1 up to
// maxDepth, widening the aspiration window one rung at a time whenever an
// iteration fails low or high, and re-sorting the root move list by score
// before starting the next depth.
func (s *Searcher) runSearch(ctx context.Context, pos *shogi.Position, maxDepth int) (best shogi.Move, score Value, err error) {
	g := s.before(ctx)
	lastDepth := 0
	defer func() { s.after(ctx, g, best, lastDepth) }()

	t := NewTree(s.zt, s.shek)
	t.Init(pos, s.evaluator)

	order := s.generateRootMoves(t)
	if len(order) == 0 {
		err = ErrLostPosition
		return
	}

	prevScore := Zero

	for depth := 1; depth <= maxDepth; depth++ {
		var results []rootMove

		for _, w := range aspirationWindows {
			alpha, beta := -Inf, Inf
			if depth > 1 && w < Inf {
				alpha, beta = prevScore-w, prevScore+w
			}

			ok := false
			results, ok = s.rootSearch(ctx, t, depth*Depth1Ply, alpha, beta, order)
			if !ok {
				err = ErrInterrupted
				return
			}
			if len(results) == 0 {
				break
			}

			top := maxRootValue(results)
			failedLow := top <= alpha && alpha > -Inf
			failedHigh := top >= beta && beta < Inf
			if failedLow || failedHigh {
				continue
			}
			break
		}

		if s.isInterrupted(ctx) {
			err = ErrInterrupted
			return
		}
		if len(results) == 0 {
			if best.IsEmpty() {
				err = ErrLostPosition
			}
			return
		}

		sort.SliceStable(results, func(i, j int) bool { return results[i].value > results[j].value })
		order = movesOf(results)

		best = results[0].move
		score = results[0].value
		prevScore = score
		lastDepth = depth

		s.infoMu.Lock()
		s.info.Eval = score
		s.infoMu.Unlock()

		if score.IsMate() {
			break
		}
	}

	if score <= -Mate {
		err = ErrLostPosition
	}
	return
}

// Search runs a fixed-depth search (in whole plies) from pos.
func (s *Searcher) Search(ctx context.Context, pos *shogi.Position, depth int) (shogi.Move, Value, error) {
	return s.runSearch(ctx, pos, depth)
}

// IDSearch runs iterative deepening from pos up to the Searcher's
// configured MaxDepth, or until interrupted.
func (s *Searcher) IDSearch(ctx context.Context, pos *shogi.Position) (shogi.Move, Value, error) {
	cfg := s.GetConfig()
	return s.runSearch(ctx, pos, cfg.MaxDepth)
}
