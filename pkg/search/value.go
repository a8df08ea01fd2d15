// Package search implements the shogi search core: transposition table,
// history heuristic, static exchange evaluation, repetition/superiority
// detection, the per-ply tree stack, and the negamax/quiescence searcher
// that ties them together.
package search

import "fmt"

// Value is a signed centipawn score with a reserved band for mate scores.
// Plain arithmetic on Value does not saturate; Crop saturates a result
// back into [-Inf, Inf].
type Value int32

const (
	// Inf is a sentinel strictly above any legitimate evaluated score.
	Inf Value = 30000

	// Mate is the threshold above which a score is read as "mate in
	// (Inf - value) plies from the node where it was produced",
	// symmetrically below -Mate for the side being mated.
	Mate Value = Inf - 1024

	// Zero is the side-relative draw/unknown score.
	Zero Value = 0
)

func (v Value) String() string {
	if v >= Mate {
		return fmt.Sprintf("+M%d", Inf-v)
	}
	if v <= -Mate {
		return fmt.Sprintf("-M%d", Inf+v)
	}
	return fmt.Sprintf("%d", int32(v))
}

// IsMate reports whether v is within the mate band, for either side.
func (v Value) IsMate() bool {
	return v >= Mate || v <= -Mate
}

// MateDistance returns the number of plies to mate and true if v is a mate
// score; the second return indicates whether the side to move is winning
// (true) or losing (false) the mate.
func (v Value) MateDistance() (int, bool) {
	switch {
	case v >= Mate:
		return int(Inf - v), true
	case v <= -Mate:
		return int(Inf + v), false
	default:
		return 0, false
	}
}

// Crop saturates v into [-Inf, Inf].
func Crop(v Value) Value {
	switch {
	case v > Inf:
		return Inf
	case v < -Inf:
		return -Inf
	default:
		return v
	}
}

// Max returns the larger of a and b.
func Max(a, b Value) Value {
	if a < b {
		return b
	}
	return a
}

// Min returns the smaller of a and b.
func Min(a, b Value) Value {
	if a < b {
		return a
	}
	return b
}

// NormalizeStore converts a value produced at ply from the root into its
// root-normalized form for TT storage: a mate score is shifted by the
// distance to the node it was found at, so that re-probing the same TT
// entry at a different ply can re-derive the correct from-here distance.
func NormalizeStore(v Value, ply int) Value {
	switch {
	case v >= Mate:
		return v + Value(ply)
	case v <= -Mate:
		return v - Value(ply)
	default:
		return v
	}
}

// NormalizeLoad is the inverse of NormalizeStore, applied when a TT entry
// is read back in at ply.
func NormalizeLoad(v Value, ply int) Value {
	switch {
	case v >= Mate:
		return v - Value(ply)
	case v <= -Mate:
		return v + Value(ply)
	default:
		return v
	}
}

// PositionalScale divides the positional component of a ValuePair before
// it is folded into a single Value.
const PositionalScale = 32

// ValuePair splits an evaluation into a material component and a
// positional component scaled down before combination, so that positional
// terms can be tuned at finer granularity than material without swamping
// it. Side-to-move relative scoring is computed by the caller, not here.
type ValuePair struct {
	Material   Value
	Positional Value
}

// Value folds the pair into a single centipawn score.
func (vp ValuePair) Value() Value {
	return vp.Material + vp.Positional/PositionalScale
}

func (vp ValuePair) Add(o ValuePair) ValuePair {
	return ValuePair{vp.Material + o.Material, vp.Positional + o.Positional}
}

func (vp ValuePair) Sub(o ValuePair) ValuePair {
	return ValuePair{vp.Material - o.Material, vp.Positional - o.Positional}
}

func (vp ValuePair) Negate() ValuePair {
	return ValuePair{-vp.Material, -vp.Positional}
}
