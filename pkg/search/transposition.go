package search

import (
	"context"
	"math/bits"

	"github.com/seekerror/logw"
	"go.uber.org/atomic"

	"github.com/ryokubo/sunfish/pkg/shogi"
)

// Bound classifies a stored Value relative to the window it was produced
// in.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "Exact"
	case LowerBound:
		return "Lower"
	case UpperBound:
		return "Upper"
	default:
		return "?"
	}
}

// bucketSize is the minimum entries-per-bucket required for a replacement
// policy that doesn't starve deep entries on every collision.
const bucketSize = 4

// tableEntry is an immutable transposition table record. Entries are
// published via a single atomic.Pointer swap per slot, so -- unlike the
// original payload-XOR-key trick, needed there to detect torn reads of a
// struct written field-by-field -- a reader here either sees a complete
// entry or the previous one; there is no intermediate state to guard
// against.
type tableEntry struct {
	hash       shogi.ZobristHash
	move1      shogi.Move
	move2      shogi.Move
	value      Value
	bound      Bound
	depth      int
	generation uint32
}

// TranspositionTable is a fixed-size, lock-free, bucketed position cache
// shared across all search workers.
type TranspositionTable struct {
	buckets    [][bucketSize]atomic.Pointer[tableEntry]
	mask       uint64
	generation atomic.Uint32
}

// NewTranspositionTable allocates a table sized (in bytes) to the nearest
// power of two not exceeding size.
func NewTranspositionTable(ctx context.Context, size uint64) *TranspositionTable {
	const entrySize = 64 // approximate bytes per tableEntry, pointer included
	n := uint64(1)
	if size > entrySize*bucketSize {
		n = uint64(1) << (63 - bits.LeadingZeros64(size/(entrySize*bucketSize)))
	}

	logw.Infof(ctx, "Allocating transposition table with %v buckets (%v entries)", n, n*bucketSize)

	return &TranspositionTable{
		buckets: make([][bucketSize]atomic.Pointer[tableEntry], n),
		mask:    n - 1,
	}
}

// Size returns the number of buckets.
func (t *TranspositionTable) Size() uint64 {
	return uint64(len(t.buckets))
}

func (t *TranspositionTable) bucket(hash shogi.ZobristHash) *[bucketSize]atomic.Pointer[tableEntry] {
	return &t.buckets[uint64(hash)&t.mask]
}

// Probe returns the bound, depth, root-normalized value (converted back to
// ply-relative via NormalizeLoad), and up to two ordering-hint moves for
// hash, if present in the table.
func (t *TranspositionTable) Probe(hash shogi.ZobristHash, ply int) (Bound, int, Value, shogi.Move, shogi.Move, bool) {
	bucket := t.bucket(hash)
	for i := range bucket {
		e := bucket[i].Load()
		if e != nil && e.hash == hash {
			return e.bound, e.depth, NormalizeLoad(e.value, ply), e.move1, e.move2, true
		}
	}
	return 0, 0, 0, shogi.Move{}, shogi.Move{}, false
}

// Store classifies value against (alpha, beta) to derive its Bound,
// normalizes it to the root, and writes it into the table, applying the
// bucket replacement policy: an exact-hash slot is updated in place
// (preserving the deeper search's move as the primary ordering hint if the
// new write is shallower); otherwise prefer an empty slot, else the slot
// with the oldest generation, breaking ties by shallowest depth.
func (t *TranspositionTable) Store(hash shogi.ZobristHash, alpha, beta, value Value, depth, ply int, best shogi.Move) {
	bound := ExactBound
	switch {
	case value >= beta:
		bound = LowerBound
	case value <= alpha:
		bound = UpperBound
	}
	normalized := NormalizeStore(value, ply)
	gen := t.generation.Load()

	fresh := tableEntry{
		hash:       hash,
		move1:      best,
		value:      normalized,
		bound:      bound,
		depth:      depth,
		generation: gen,
	}

	bucket := t.bucket(hash)

	for i := range bucket {
		old := bucket[i].Load()
		if old != nil && old.hash == hash {
			if depth >= old.depth {
				fresh.move2 = old.move1
			} else {
				fresh.move1 = old.move1
				fresh.move2 = best
			}
			bucket[i].Store(&fresh)
			return
		}
	}

	victim, victimEntry := 0, bucket[0].Load()
	for i := range bucket {
		e := bucket[i].Load()
		if e == nil {
			victim = i
			break
		}
		if victimEntry == nil || e.generation < victimEntry.generation ||
			(e.generation == victimEntry.generation && e.depth < victimEntry.depth) {
			victim, victimEntry = i, e
		}
	}
	bucket[victim].Store(&fresh)
}

// Evolve bumps the generation counter, called once per top-level search so
// entries written by prior searches age out of the replacement policy.
func (t *TranspositionTable) Evolve() {
	t.generation.Inc()
}

// Clear empties every bucket.
func (t *TranspositionTable) Clear() {
	for i := range t.buckets {
		for j := range t.buckets[i] {
			t.buckets[i][j].Store(nil)
		}
	}
}
