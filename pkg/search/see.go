package search

import (
	"sort"

	"github.com/ryokubo/sunfish/pkg/shogi"
)

// StaticExchange computes the static-exchange value of the capture/drop
// sequence that would unfold on target if side recaptures there, from
// side's point of view. It repeatedly picks the least-valuable attacker of
// whichever side is to move, swapping captures on target, until a side
// declines to continue the exchange (no attacker left, or the exchange
// would lose material). Unlike a bitboard engine's pinned-attacker-stack
// approach, a removed attacker here simply vacates its square and the
// attacker list is recomputed, so sliding pieces behind it are exposed for
// free on the next iteration.
func StaticExchange(pos *shogi.Position, target shogi.Square, side shogi.Color) Value {
	occupant := pos.At(target)
	if occupant.Empty() {
		return 0
	}

	removed := map[shogi.Square]bool{}
	ignore := func(s shogi.Square) bool { return removed[s] }

	gains := make([]Value, 0, 16)
	captured := nominalValue[occupant.Piece]
	turn := occupant.Color.Opponent() // side about to capture on target

	for {
		attackers := pos.AttackersTo(target, turn, ignore)
		if len(attackers) == 0 {
			break
		}
		from := leastValuable(pos, attackers)
		gains = append(gains, captured)
		captured = nominalValue[pos.At(from).Piece]
		removed[from] = true
		turn = turn.Opponent()
	}

	// Fold the gain list from the far end back in: at each step the side
	// to move may decline (stop) if continuing loses material, which is
	// folding value = max(0, gain - value) from the last capture backward.
	var value Value
	for i := len(gains) - 1; i >= 0; i-- {
		value = Max(0, gains[i]-value)
	}
	if occupant.Color == side {
		return -value
	}
	return value
}

func leastValuable(pos *shogi.Position, squares []shogi.Square) shogi.Square {
	sort.Slice(squares, func(i, j int) bool {
		return nominalValue[pos.At(squares[i]).Piece] < nominalValue[pos.At(squares[j]).Piece]
	})
	return squares[0]
}

// seeCacheBits is the key width for the SEE cache.
const seeCacheBits = 22
const seeCacheSize = 1 << seeCacheBits
const seeCacheMask = seeCacheSize - 1

// seeValueBits: an entry packs value-type (2 bits) and a clipped value (14 bits,
// offset to be non-negative) alongside the 22-bit hash tag, mirroring the
// bit-packed single-word cache entry the original searcher uses.
const seeValueBits = 14
const seeValueOffset = 1 << (seeValueBits - 1)

// SeeTable caches static-exchange results keyed by (position hash, move
// serial), each entry clipped to [alpha, beta] the way the original
// SeeEntity does, so cache hits return a bound rather than an exact value
// when the query window differs from the one the entry was stored under.
type SeeTable struct {
	entries []uint64
}

func NewSeeTable() *SeeTable {
	return &SeeTable{entries: make([]uint64, seeCacheSize)}
}

func seeCacheKey(hash shogi.ZobristHash, m shogi.Move) uint64 {
	return (uint64(hash) ^ uint64(m.Serialize())) & seeCacheMask
}

// Get returns a cached clipped SEE value for (hash, m) if present,
// interpreting it against [alpha, beta] the same way a TT probe does:
// Exact always usable, Lower only if it already meets beta, Upper only if
// it already fails alpha. The cache is keyed by a 22-bit fold of (hash, move) with no separate
// collision tag -- like the original SeeEntity, two distinct queries that
// fold to the same key alias each other. That's an accepted imprecision
// for a heuristic move-ordering aid, not a correctness requirement.
func (t *SeeTable) Get(hash shogi.ZobristHash, m shogi.Move, alpha, beta Value) (Value, bool) {
	key := seeCacheKey(hash, m)
	raw := t.entries[key]
	if raw == 0 {
		return 0, false
	}
	bound := Bound((raw >> 14) & 0x3)
	value := Value(int32(raw&0x3fff) - seeValueOffset)

	switch bound {
	case ExactBound:
		return value, true
	case LowerBound:
		if value >= beta {
			return value, true
		}
	case UpperBound:
		if value <= alpha {
			return value, true
		}
	}
	return 0, false
}

// Set stores value for (hash, m), clipped to [alpha, beta] and tagged with
// its bound the way TT entries are.
func (t *SeeTable) Set(hash shogi.ZobristHash, m shogi.Move, value, alpha, beta Value) {
	bound := ExactBound
	clipped := value
	switch {
	case value >= beta:
		bound = LowerBound
		clipped = beta
	case value <= alpha:
		bound = UpperBound
		clipped = alpha
	}
	clipped = Value(clampInt32(int32(clipped)+int32(seeValueOffset), 0, (1<<seeValueBits)-1))

	key := seeCacheKey(hash, m)
	raw := (key << 16) | uint64(bound)<<14 | uint64(clipped)
	t.entries[key] = raw
}

func clampInt32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
