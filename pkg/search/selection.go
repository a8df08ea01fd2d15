package search

import (
	"sort"

	"github.com/ryokubo/sunfish/pkg/shogi"
)

// buildPriorMoves assembles the Prior-phase candidate list: the TT's two
// ordering-hint moves followed by this ply's killers, each included only
// if it is actually present in the legal move set (moves is the union of
// captures+quiet+drops already filtered to ones currently playable --
// "legal-strict" per the phase table, i.e. pseudo-legality is checked by
// set membership here, true legality by ApplyMove at make time).
func buildPriorMoves(candidates []shogi.Move, hash1, hash2, killer1, killer2 shogi.Move) []shogi.Move {
	var priors []shogi.Move
	add := func(m shogi.Move) {
		if m.IsEmpty() {
			return
		}
		for _, c := range candidates {
			if c.Equals(m) {
				priors = append(priors, c)
				return
			}
		}
	}
	add(hash1)
	add(hash2)
	add(killer1)
	add(killer2)
	return priors
}

// sortBySee orders moves descending by static-exchange value, the
// Capture-phase ordering rule.
func sortBySee(pos *shogi.Position, hash shogi.ZobristHash, see *SeeTable, moves []shogi.Move) {
	values := make([]Value, len(moves))
	for i, m := range moves {
		values[i] = cachedSee(pos, hash, see, m)
	}
	sort.Stable(bySliceValue{moves, values})
}

// sortByHistory orders moves descending by history-table credit, the
// NoCapture/evasion-phase ordering rule.
func sortByHistory(hist *History, moves []shogi.Move) {
	values := make([]Value, len(moves))
	for i, m := range moves {
		values[i] = Value(hist.Value(m))
	}
	sort.Stable(bySliceValue{moves, values})
}

// cachedSee computes StaticExchange for a capturing move, consulting and
// populating the SEE cache.
func cachedSee(pos *shogi.Position, hash shogi.ZobristHash, see *SeeTable, m shogi.Move) Value {
	if v, ok := see.Get(hash, m, -Inf, Inf); ok {
		return v
	}
	v := StaticExchange(pos, m.To, pos.Turn())
	if m.Promote {
		v += PromotionGain(m.Piece)
	}
	see.Set(hash, m, v, -Inf, Inf)
	return v
}

type bySliceValue struct {
	moves  []shogi.Move
	values []Value
}

func (b bySliceValue) Len() int { return len(b.moves) }
func (b bySliceValue) Less(i, j int) bool { return b.values[i] > b.values[j] }
func (b bySliceValue) Swap(i, j int) {
	b.moves[i], b.moves[j] = b.moves[j], b.moves[i]
	b.values[i], b.values[j] = b.values[j], b.values[i]
}

// advance runs the phase machine at the current node forward by one
// phase, populating the tree's move list for the new phase. Returns false
// once PhaseEnd is reached.
func (s *Searcher) advance(t *Tree, hash1, hash2 shogi.Move) bool {
	pos := t.Position()
	turn := pos.Turn()
	checking := t.IsChecking()

	switch t.GenPhase() {
	case PhasePrior:
		all := append(pos.GenerateCaptures(turn), pos.GenerateQuiet(turn)...)
		all = append(all, pos.GenerateDrops(turn)...)
		k1, k2 := s.killers.Get(t.Ply())
		priors := buildPriorMoves(all, hash1, hash2, k1, k2)
		t.SetPriorMoves(priors)
		t.SetMoves(priors)
		t.SetGenPhase(PhaseCapture)
		return true

	case PhaseCapture:
		if checking {
			evasions := pos.GenerateEvasions(turn)
			evasions = dropAll(evasions, t.PriorMoves())
			sortByHistory(s.history, evasions)
			t.SetMoves(evasions)
			t.SetGenPhase(PhaseEnd)
			return true
		}
		captures := pos.GenerateCaptures(turn)
		captures = dropAll(captures, t.PriorMoves())
		sortBySee(pos, t.Hash(), s.see, captures)
		t.SetMoves(captures)
		t.SetGenPhase(PhaseNoCapture)
		return true

	case PhaseNoCapture:
		quiet := append(pos.GenerateQuiet(turn), pos.GenerateDrops(turn)...)
		quiet = dropAll(quiet, t.PriorMoves())
		sortByHistory(s.history, quiet)
		t.SetMoves(quiet)
		t.SetGenPhase(PhaseEnd)
		return true

	default:
		return false
	}
}

// advanceQuiescence is the CaptureOnly phase used by qsearch.
func (s *Searcher) advanceQuiescence(t *Tree, qply int) bool {
	if t.GenPhase() == PhaseEnd {
		return false
	}

	pos := t.Position()
	turn := pos.Turn()

	if t.IsChecking() {
		evasions := pos.GenerateEvasions(turn)
		sortByHistory(s.history, evasions)
		t.SetMoves(evasions)
		t.SetGenPhase(PhaseEnd)
		return true
	}

	captures := pos.GenerateCaptures(turn)
	light := qply >= 7
	var filtered []shogi.Move
	for _, m := range captures {
		v := cachedSee(pos, t.Hash(), s.see, m)
		if v <= 0 {
			continue
		}
		if light && !m.Promote && nominalValue[m.Piece] <= nominalValue[shogi.Pawn] {
			continue
		}
		filtered = append(filtered, m)
	}
	sortBySee(pos, t.Hash(), s.see, filtered)
	t.SetMoves(filtered)
	t.SetGenPhase(PhaseEnd)
	return true
}

func dropAll(moves, drop []shogi.Move) []shogi.Move {
	for _, d := range drop {
		moves = removeMove(moves, d)
	}
	return moves
}

// NextMove returns the next move to try at the current node, advancing
// the Prior -> Capture -> NoCapture phase machine as each phase's list is
// exhausted, and false once every phase has been drained.
func (s *Searcher) NextMove(t *Tree, hash1, hash2 shogi.Move) (shogi.Move, bool) {
	for {
		if m, ok := t.SelectNextMove(); ok {
			return m, true
		}
		if !s.advance(t, hash1, hash2) {
			return shogi.Move{}, false
		}
	}
}

// NextMoveQuiescence is NextMove's counterpart for qsearch's single
// CaptureOnly phase.
func (s *Searcher) NextMoveQuiescence(t *Tree, qply int) (shogi.Move, bool) {
	for {
		if m, ok := t.SelectNextMove(); ok {
			return m, true
		}
		if !s.advanceQuiescence(t, qply) {
			return shogi.Move{}, false
		}
	}
}
