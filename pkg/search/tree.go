package search

import "github.com/ryokubo/sunfish/pkg/shogi"

// GenPhase is the per-node move-generation state machine driven by the
// move selector: each phase contributes moves of one kind, in the order
// that gives the best chance of an early beta-cut.
type GenPhase uint8

const (
	PhasePrior GenPhase = iota
	PhaseCapture
	PhaseNoCapture
	PhaseCaptureOnly // quiescence-only: evasions or positive captures
	PhaseEnd
)

// StackSize bounds the tree's depth, generously above any reachable
// search depth in practice.
const StackSize = 128

// Node is one ply's scratch area: the move that led here, its generated
// move list and iteration cursor, the phase machine state, the checking
// flag, the running PV, and the incrementally maintained ValuePair.
type Node struct {
	pos  *shogi.Position
	hash shogi.ZobristHash

	move Move

	moves      []Move
	priorMoves []Move
	index      int
	genPhase   GenPhase

	checking    bool
	pv          []Move
	valuePair   ValuePair
	shekVerdict ShekVerdict
}

// Move is a local alias so tree.go doesn't need a shogi. qualifier on every
// line; search code otherwise treats a move as wholly opaque.
type Move = shogi.Move

// Tree is the per-search scratch stack: one Node per ply, sharing a single
// zobrist table for incremental hash maintenance and a single SHEK table
// so that repetition/superiority classification covers every position the
// search tree visits, not just the real game's move history. Not safe for
// concurrent use by more than one worker.
type Tree struct {
	zt    *shogi.ZobristTable
	shek  *ShekTable
	stack [StackSize]Node
	ply   int
}

func NewTree(zt *shogi.ZobristTable, shek *ShekTable) *Tree {
	return &Tree{zt: zt, shek: shek}
}

// Init resets the tree to ply 0 at pos and evaluates it from scratch.
func (t *Tree) Init(pos *shogi.Position, evaluator Evaluator) {
	t.ply = 0
	t.stack[0] = Node{
		pos:       pos,
		hash:      t.zt.Hash(pos),
		valuePair: evaluator.Evaluate(pos),
	}
}

func (t *Tree) Ply() int { return t.ply }

// IsStackFull reports whether recursing one more ply would overflow the
// stack; callers must return the standing evaluation instead.
func (t *Tree) IsStackFull() bool {
	return t.ply >= StackSize-1
}

func (t *Tree) Position() *shogi.Position { return t.stack[t.ply].pos }

func (t *Tree) Hash() shogi.ZobristHash { return t.stack[t.ply].hash }

func (t *Tree) Turn() shogi.Color { return t.stack[t.ply].pos.Turn() }

func (t *Tree) IsChecking() bool { return t.stack[t.ply].checking }

// ShekVerdict reports how the current node classifies against every
// ancestor (real-game or search-tree-internal) already pushed onto the
// shared SHEK table -- computed once, at the moment this node was made,
// against the table as it stood before this node registered itself.
func (t *Tree) ShekVerdict() ShekVerdict { return t.stack[t.ply].shekVerdict }

func (t *Tree) ValuePair() ValuePair { return t.stack[t.ply].valuePair }

// Value returns the current node's value from the side-to-move's
// perspective. ValuePair is stored Black-relative (positive favors Black,
// the side that moves first), so White negates it.
func (t *Tree) Value() Value {
	v := t.stack[t.ply].valuePair.Value()
	if t.Turn() == shogi.White {
		return -v
	}
	return v
}

// sideRelative is like Value but for a ValuePair not installed on the
// stack.
func sideRelative(vp ValuePair, turn shogi.Color) Value {
	v := vp.Value()
	if turn == shogi.White {
		return -v
	}
	return v
}

// MakeMove pushes m: applies it to the current position, advances ply,
// evaluates incrementally, and updates the checking flag. Returns false if
// m is illegal (leaves the mover's king in check), leaving the tree
// unchanged.
func (t *Tree) MakeMove(m Move, evaluator Evaluator) bool {
	cur := &t.stack[t.ply]
	next, ok := cur.pos.ApplyMove(m)
	if !ok {
		return false
	}

	nextHash := t.zt.Move(cur.hash, cur.pos, next, m)
	nextHand := next.Hand(next.Turn())
	verdict := t.shek.Check(nextHash, nextHand)

	t.ply++
	t.stack[t.ply] = Node{
		pos:         next,
		hash:        nextHash,
		move:        m,
		valuePair:   evaluator.EvaluateDiff(next, cur.valuePair, m),
		checking:    next.IsChecked(next.Turn()),
		genPhase:    PhasePrior,
		shekVerdict: verdict,
	}
	t.shek.Set(nextHash, nextHand)
	return true
}

// UnmakeMove pops the most recently made move. The board state below it on
// the stack was never mutated, so undoing it is a SHEK unregister plus a
// ply decrement.
func (t *Tree) UnmakeMove() {
	cur := &t.stack[t.ply]
	t.shek.Unset(cur.hash, cur.pos.Hand(cur.pos.Turn()))
	t.ply--
}

// MakeNullMove passes the turn without moving a piece: no material
// change, and checking is forced false (a side is never "in check" right
// after declining to move, by definition of the position being legal to
// begin with).
func (t *Tree) MakeNullMove() {
	cur := &t.stack[t.ply]
	next := cur.pos.NullMove()
	nextHash := t.zt.NullMove(cur.hash)
	nextHand := next.Hand(next.Turn())
	verdict := t.shek.Check(nextHash, nextHand)

	t.ply++
	t.stack[t.ply] = Node{
		pos:         next,
		hash:        nextHash,
		valuePair:   cur.valuePair,
		checking:    false,
		genPhase:    PhasePrior,
		shekVerdict: verdict,
	}
	t.shek.Set(nextHash, nextHand)
}

func (t *Tree) UnmakeNullMove() {
	cur := &t.stack[t.ply]
	t.shek.Unset(cur.hash, cur.pos.Hand(cur.pos.Turn()))
	t.ply--
}

// InitGenPhase resets the current node's phase machine to phase.
func (t *Tree) InitGenPhase(phase GenPhase) {
	cur := &t.stack[t.ply]
	cur.genPhase = phase
	cur.moves = nil
	cur.index = 0
}

// ResetGenPhase restarts the phase machine from the top without forgetting
// already-computed prior moves.
func (t *Tree) ResetGenPhase() {
	cur := &t.stack[t.ply]
	cur.genPhase = PhasePrior
	cur.moves = nil
	cur.index = 0
}

func (t *Tree) GenPhase() GenPhase { return t.stack[t.ply].genPhase }

// SetGenPhase advances the phase marker without touching the move list,
// used once the new phase's moves have already been installed via
// SetMoves.
func (t *Tree) SetGenPhase(phase GenPhase) { t.stack[t.ply].genPhase = phase }

func (t *Tree) PriorMoves() []Move { return t.stack[t.ply].priorMoves }

// SetPriorMoves installs the TT/killer moves considered during the Prior
// phase, used both to try them first and to exclude them from later
// phases' generated lists.
func (t *Tree) SetPriorMoves(moves []Move) {
	t.stack[t.ply].priorMoves = moves
}

// SetMoves installs the current phase's generated move list.
func (t *Tree) SetMoves(moves []Move) {
	cur := &t.stack[t.ply]
	cur.moves = moves
	cur.index = 0
}

func (t *Tree) Moves() []Move { return t.stack[t.ply].moves }

// SelectNextMove returns the next move in the current node's list and
// advances the cursor, or false if exhausted.
func (t *Tree) SelectNextMove() (Move, bool) {
	cur := &t.stack[t.ply]
	if cur.index >= len(cur.moves) {
		return Move{}, false
	}
	m := cur.moves[cur.index]
	cur.index++
	return m, true
}

// IsExhausted reports whether the current phase's move list cursor has
// reached the end -- used by the one-reply extension predicate, which
// must fire only once every move at the node has been enumerated.
func (t *Tree) IsExhausted() bool {
	cur := &t.stack[t.ply]
	return cur.genPhase == PhaseEnd && cur.index >= len(cur.moves)
}

// removeMove deletes m from moves, used to drop prior moves from a
// freshly generated phase list so they aren't tried twice.
func removeMove(moves []Move, m Move) []Move {
	for i, o := range moves {
		if o.Equals(m) {
			return append(moves[:i], moves[i+1:]...)
		}
	}
	return moves
}

// UpdatePv prepends move to the child node's PV and installs it as the
// current node's PV.
func (t *Tree) UpdatePv(move Move) {
	cur := &t.stack[t.ply]
	child := &t.stack[t.ply+1]
	cur.pv = append([]Move{move}, child.pv...)
}

// UpdatePvNull prepends an empty move, for PV bookkeeping of a null move
// that has no actual move to record.
func (t *Tree) UpdatePvNull() {
	cur := &t.stack[t.ply]
	child := &t.stack[t.ply+1]
	cur.pv = append([]Move{{}}, child.pv...)
}

func (t *Tree) Pv() []Move { return t.stack[t.ply].pv }

func (t *Tree) CurrentMove() Move { return t.stack[t.ply].move }
