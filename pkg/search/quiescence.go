package search

import "context"

// qsearch resolves the tactical noise left at the horizon: captures only
// (or, while in check, every evasion), no transposition-table store, no
// futility pruning -- the stand-pat score already serves that purpose.
func (s *Searcher) qsearch(ctx context.Context, t *Tree, alpha, beta Value, qply int) Value {
	s.infoMu.Lock()
	s.info.QNode++
	s.infoMu.Unlock()

	if t.IsStackFull() {
		return t.Value()
	}

	standPat := t.Value()
	value := standPat

	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	t.InitGenPhase(PhaseCaptureOnly)

	for {
		m, ok := s.NextMoveQuiescence(t, qply)
		if !ok {
			break
		}
		if !t.MakeMove(m, s.evaluator) {
			continue
		}
		child := -s.qsearch(ctx, t, -beta, -alpha, qply+1)
		t.UnmakeMove()

		if s.isInterrupted(ctx) {
			return Zero
		}

		if child > value {
			value = child
			if value > alpha {
				alpha = value
			}
		}
		if value >= beta {
			break
		}
	}

	return value
}
