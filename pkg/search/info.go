package search

import "github.com/ryokubo/sunfish/pkg/shogi"

// Info collects the bookkeeping counters a search run accumulates, plus
// the summary fields (time, nps, ...) filled in once the run completes.
// Mirrors the source's SearchInfoBase+SearchInfo split, flattened into one
// struct since Go has no analogous inheritance idiom worth preserving.
type Info struct {
	Node  uint64
	QNode uint64

	FailHigh        uint64
	FailHighFirst   uint64
	FailHighIsHash  uint64
	FailHighKiller1 uint64
	FailHighKiller2 uint64

	HashProbed    uint64
	HashHit       uint64
	HashExact     uint64
	HashLower     uint64
	HashUpper     uint64
	HashStore     uint64
	HashNew       uint64
	HashUpdate    uint64
	HashCollision uint64
	HashReject    uint64

	ShekProbed   uint64
	ShekSuperior uint64
	ShekInferior uint64
	ShekEqual    uint64

	NullMovePruning      uint64
	NullMovePruningTried uint64

	FutilityPruning         uint64
	ExtendedFutilityPruning uint64

	Expand          uint64
	ExpandHashMove  uint64

	CheckExtension   uint64
	OnerepExtension  uint64
	RecapExtension   uint64

	Split uint64

	Time      float64
	Nps       uint64
	Move      shogi.Move
	Eval      Value
	LastDepth int
}

// Reset zeros every field, including Move/Eval/LastDepth/Time/Nps, which
// the run writes again as it completes.
func (i *Info) Reset() {
	*i = Info{}
}
