package search

import "github.com/ryokubo/sunfish/pkg/shogi"

// historyKey folds (piece, to) into a compact index. For a drop, piece is
// the dropped kind, so a dropped silver and a moved silver landing on the
// same square share one set of statistics.
type historyKey struct {
	piece shogi.Piece
	to    shogi.Square
}

func historyKeyOf(m shogi.Move) historyKey {
	p := m.Piece
	if m.IsDrop() {
		p = m.Drop
	}
	return historyKey{piece: p, to: m.To}
}

// History tracks per-(piece,to) appear/good counters used both for quiet
// move ordering and to derive late-move-reduction amounts.
type History struct {
	appear map[historyKey]uint32
	good   map[historyKey]uint32
}

func NewHistory() *History {
	return &History{
		appear: make(map[historyKey]uint32),
		good:   make(map[historyKey]uint32),
	}
}

// Add records that m was tried (appear) and, if good > 0, that it caused a
// beta-cut or best-move update worth good credit.
func (h *History) Add(m shogi.Move, good uint32) {
	k := historyKeyOf(m)
	h.appear[k]++
	h.good[k] += good
}

// Reduce halves every counter, called once at the start of each search to
// decay stale statistics.
func (h *History) Reduce() {
	for k := range h.appear {
		h.appear[k] /= 2
	}
	for k := range h.good {
		h.good[k] /= 2
	}
}

func (h *History) ratio(m shogi.Move) (good, appear uint32) {
	k := historyKeyOf(m)
	return h.good[k], h.appear[k]
}

// Value returns a move-ordering sort key: higher is better.
func (h *History) Value(m shogi.Move) uint32 {
	good, appear := h.ratio(m)
	if appear == 0 {
		return 0
	}
	return good*1024/appear + good
}

// GetReductionDepth returns a late-move-reduction amount in Depth1Ply/2
// units, derived from the move's good/appear ratio. isNullWindow selects
// the tighter null-window bracket (the move is being searched in a scout
// re-search rather than as the presumed-best candidate).
func (h *History) GetReductionDepth(m shogi.Move, isNullWindow bool) int {
	good, appear := h.ratio(m)
	if appear == 0 {
		if isNullWindow {
			return 4
		}
		return 3
	}

	if isNullWindow {
		switch {
		case good*10 < appear:
			return 4
		case good*6 < appear:
			return 3
		case good*4 < appear:
			return 2
		case good*2 < appear:
			return 1
		default:
			return 0
		}
	}

	switch {
	case good*20 < appear:
		return 3
	case good*7 < appear:
		return 2
	case good*3 < appear:
		return 1
	default:
		return 0
	}
}

// Killers holds, per ply, the quiet moves that most recently caused a
// beta-cut -- tried in the Prior phase, after the TT moves and before any
// generated captures or quiet moves.
type Killers struct {
	slots [][2]shogi.Move
}

func NewKillers(stackSize int) *Killers {
	return &Killers{slots: make([][2]shogi.Move, stackSize)}
}

// Update records m as the newest killer at ply, demoting the previous
// primary killer to secondary.
func (k *Killers) Update(ply int, m shogi.Move) {
	if ply < 0 || ply >= len(k.slots) {
		return
	}
	if k.slots[ply][0].Equals(m) {
		return
	}
	k.slots[ply][1] = k.slots[ply][0]
	k.slots[ply][0] = m
}

// Get returns the two killers recorded at ply.
func (k *Killers) Get(ply int) (shogi.Move, shogi.Move) {
	if ply < 0 || ply >= len(k.slots) {
		return shogi.Move{}, shogi.Move{}
	}
	return k.slots[ply][0], k.slots[ply][1]
}

// Gains tracks the largest positional gain observed for a (piece, to),
// used by futility pruning's estimate. Each update decays the previous
// value by at most 1 before taking the max with the new observation.
type Gains struct {
	values map[historyKey]Value
}

func NewGains() *Gains {
	return &Gains{values: make(map[historyKey]Value)}
}

// Update records a new observed gain for the move m, decaying the
// previous entry by one before taking the max.
func (g *Gains) Update(m shogi.Move, gain Value) {
	k := historyKeyOf(m)
	ref := g.values[k] - 1
	g.values[k] = Max(ref, gain)
}

// Get returns the recorded gain for m, or zero if none.
func (g *Gains) Get(m shogi.Move) Value {
	return g.values[historyKeyOf(m)]
}
