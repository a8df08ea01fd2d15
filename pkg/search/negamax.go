package search

import (
	"context"

	"github.com/ryokubo/sunfish/pkg/shogi"
)

// stat carries the small set of flags that vary per recursive call but
// don't belong on Tree or Config: whether null-move pruning and
// TT-value-cuts are currently allowed at this node, and whether the move
// that led here was itself a capture (making this node a candidate to
// watch for a same-square recapture extension).
type stat struct {
	nullMove  bool
	hashCut   bool
	recapture bool
}

func defaultStat() stat {
	return stat{nullMove: true, hashCut: true}
}

// estimateMove is the cheap, pre-move futility estimate: the nominal
// value of whatever is captured plus the promotion bonus if the mover can
// and does promote, or, if larger, the largest positional swing previously
// observed for a move to this (piece, to), so a quiet move that has historically
// gained more than its nominal value suggests isn't pruned on that basis
// alone.
func estimateMove(gains *Gains, m shogi.Move) Value {
	var v Value
	if m.IsCapture() {
		v += nominalValue[m.Capture]
	}
	if m.Promote {
		v += PromotionGain(m.Piece)
	}
	return Max(v, gains.Get(m))
}

func isPriorMove(t *Tree, m shogi.Move) bool {
	for _, p := range t.PriorMoves() {
		if p.Equals(m) {
			return true
		}
	}
	return false
}

// IsRecapture reports whether candidate move m recaptures on the same
// square as the move that led to the current node.
func (t *Tree) IsRecapture(m shogi.Move) bool {
	prev := t.CurrentMove()
	return !prev.IsEmpty() && prev.IsCapture() && m.IsCapture() && m.To == prev.To
}

// search is the core negamax routine, called with pvNode true only along
// the expected principal variation; everywhere else it runs with a null
// window ([alpha, alpha+1)) as a scout.
func (s *Searcher) search(ctx context.Context, t *Tree, depth int, alpha, beta Value, pvNode bool, st stat) Value {
	ply := t.Ply()
	origAlpha, origBeta := alpha, beta

	s.infoMu.Lock()
	s.info.Node++
	s.infoMu.Unlock()

	// (1) Distance pruning.
	maxv := Inf - Value(ply)
	if alpha >= maxv {
		return maxv
	}

	// (2) SHEK check. Tree.MakeMove/MakeNullMove already classified this
	// node against every ancestor on the table -- real-game history via
	// Searcher.before's priming, plus every position the search itself
	// has descended through -- at the moment it was made.
	hash := t.Hash()
	s.infoMu.Lock()
	s.info.ShekProbed++
	s.infoMu.Unlock()
	switch t.ShekVerdict() {
	case ShekSuperior:
		s.infoMu.Lock()
		s.info.ShekSuperior++
		s.infoMu.Unlock()
		return Inf - Value(ply)
	case ShekInferior:
		s.infoMu.Lock()
		s.info.ShekInferior++
		s.infoMu.Unlock()
		return -Inf + Value(ply)
	case ShekEqual:
		s.infoMu.Lock()
		s.info.ShekEqual++
		s.infoMu.Unlock()
		return Zero
	}

	// (3) Stack-full.
	if t.IsStackFull() {
		return t.Value()
	}

	// (4) Drop into quiescence.
	if !t.IsChecking() && depth < Depth1Ply {
		return s.qsearch(ctx, t, alpha, beta, 0)
	}

	// (5) TT probe.
	var hash1, hash2 shogi.Move
	if bound, ttDepth, ttValue, m1, m2, ok := s.tt.Probe(hash, ply); ok {
		s.infoMu.Lock()
		s.info.HashProbed++
		s.info.HashHit++
		s.infoMu.Unlock()
		hash1, hash2 = m1, m2

		if st.hashCut && !pvNode && ttDepth >= depth {
			switch bound {
			case ExactBound:
				s.infoMu.Lock()
				s.info.HashExact++
				s.infoMu.Unlock()
				return ttValue
			case LowerBound:
				if ttValue >= beta {
					s.infoMu.Lock()
					s.info.HashLower++
					s.infoMu.Unlock()
					return ttValue
				}
			case UpperBound:
				if ttValue <= alpha {
					s.infoMu.Lock()
					s.info.HashUpper++
					s.infoMu.Unlock()
					return ttValue
				}
			}
		}
	} else {
		s.infoMu.Lock()
		s.info.HashProbed++
		s.infoMu.Unlock()
	}

	standPat := t.Value()

	// (6) Null-move pruning.
	if !pvNode && st.nullMove && !t.IsChecking() && beta <= standPat && depth >= nullMoveMinimum {
		s.infoMu.Lock()
		s.info.NullMovePruningTried++
		s.infoMu.Unlock()

		newDepth := depth - nullMoveReduce
		t.MakeNullMove()
		val := -s.search(ctx, t, newDepth, -beta, -beta+1, false, stat{nullMove: false, hashCut: st.hashCut})
		t.UnmakeNullMove()

		if s.isInterrupted(ctx) {
			return Zero
		}
		if val >= beta {
			s.infoMu.Lock()
			s.info.NullMovePruning++
			s.infoMu.Unlock()
			return beta
		}
	}

	// (7) Internal iterative deepening.
	if hash1.IsEmpty() && depth >= iidThreshold {
		s.search(ctx, t, depth-Depth1Ply, alpha, beta, pvNode, stat{nullMove: false, hashCut: false, recapture: st.recapture})
		if _, _, _, m1, m2, ok := s.tt.Probe(hash, ply); ok {
			hash1, hash2 = m1, m2
		}
	}

	// (8) Move loop.
	t.InitGenPhase(PhasePrior)
	value := -Inf + Value(ply)
	var best shogi.Move
	var tried []shogi.Move
	count := 0
	checkingPrev := t.IsChecking()
	isNullWindow := beta == alpha+1

	for {
		m, ok := s.NextMove(t, hash1, hash2)
		if !ok {
			break
		}

		if !checkingPrev {
			if standPat+estimateMove(s.gains, m)+futilityMargin <= alpha {
				value = Max(value, alpha)
				s.infoMu.Lock()
				s.info.FutilityPruning++
				s.infoMu.Unlock()
				continue
			}
		}

		exhaustedAfterThis := t.IsExhausted()
		prior := isPriorMove(t, m)

		if !t.MakeMove(m, s.evaluator) {
			continue
		}
		count++
		tried = append(tried, m)
		s.gains.Update(m, -t.Value()-standPat)

		isCheckCurr := t.IsChecking()
		newDepth := depth - Depth1Ply
		newStat := stat{nullMove: true, hashCut: true, recapture: m.IsCapture()}

		switch {
		case isCheckCurr:
			newDepth += extCheck
			s.infoMu.Lock()
			s.info.CheckExtension++
			s.infoMu.Unlock()
		case checkingPrev && count == 1 && exhaustedAfterThis:
			newDepth += extOneRep
			s.infoMu.Lock()
			s.info.OnerepExtension++
			s.infoMu.Unlock()
		case !checkingPrev && st.recapture && t.IsRecapture(m):
			newDepth += extRecapture
			newStat.recapture = false
			s.infoMu.Lock()
			s.info.RecapExtension++
			s.infoMu.Unlock()
		}

		reduced := 0
		if newDepth >= Depth1Ply && count != 1 && !checkingPrev && !isCheckCurr && !prior &&
			!(m.Promote && m.Piece == shogi.Silver) {
			reduced = s.history.GetReductionDepth(m, isNullWindow) * (Depth1Ply / 2)
			newDepth -= reduced
		}

		if !isCheckCurr && !checkingPrev {
			if t.Value()+futilityMargin <= alpha {
				t.UnmakeMove()
				value = Max(value, alpha)
				s.infoMu.Lock()
				s.info.ExtendedFutilityPruning++
				s.infoMu.Unlock()
				continue
			}
		}

		var child Value
		if count == 1 {
			child = -s.search(ctx, t, newDepth, -beta, -alpha, pvNode, newStat)
		} else {
			child = -s.search(ctx, t, newDepth, -alpha-1, -alpha, false, newStat)
			if child > alpha && child < beta && !s.isInterrupted(ctx) {
				newDepth += reduced
				child = -s.search(ctx, t, newDepth, -beta, -alpha, pvNode, newStat)
			}
		}

		t.UnmakeMove()
		if s.isInterrupted(ctx) {
			return Zero
		}

		if child > value {
			value = child
			best = m
			t.UpdatePv(m)
			if value > alpha {
				alpha = value
			}
		}
		if value >= beta {
			s.infoMu.Lock()
			s.info.FailHigh++
			if count == 1 {
				s.info.FailHighFirst++
			}
			s.infoMu.Unlock()
			s.killers.Update(ply, m)
			break
		}
	}

	// (9) History update.
	if !best.IsEmpty() && value > origAlpha {
		credit := uint32(1)
		if q := depth / (Depth1Ply / 4); q > 1 {
			credit = uint32(q)
		}
		for _, m := range tried {
			if m.Equals(best) {
				s.history.Add(m, credit)
			} else {
				s.history.Add(m, 0)
			}
		}
	}

	// (10) TT store.
	if !best.IsEmpty() {
		s.tt.Store(hash, origAlpha, origBeta, value, depth, ply, best)
		s.infoMu.Lock()
		s.info.HashStore++
		s.infoMu.Unlock()
	}

	return value
}
