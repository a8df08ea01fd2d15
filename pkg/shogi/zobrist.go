package shogi

import "math/rand"

// ZobristHash is a position hash covering piece placement, both hands and
// side to move. It is intended for transposition table indexing and SHEK/
// repetition detection, both of which fold "identical" positions to the
// same hash value.
//
// See also: https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type ZobristHash uint64

// maxHandCount is one past the largest a single hand-piece count can reach
// (all 18 pawns, the most plentiful kind, could in principle sit in one
// hand), so counts 0..18 index the hand table.
const maxHandCount = 19

// ZobristTable is a pseudo-randomized table for computing a position hash.
type ZobristTable struct {
	pieces [NumColors][NumPieces][NumSquares]ZobristHash
	hand   [NumColors][NumPieces][maxHandCount]ZobristHash
	turn   ZobristHash
}

func NewZobristTable(seed int64) *ZobristTable {
	ret := &ZobristTable{}

	r := rand.New(rand.NewSource(seed))

	for c := Color(0); c < NumColors; c++ {
		for p := Piece(0); p < NumPieces; p++ {
			for sq := Square(0); sq < NumSquares; sq++ {
				ret.pieces[c][p][sq] = ZobristHash(r.Uint64())
			}
			for n := 0; n < maxHandCount; n++ {
				ret.hand[c][p][n] = ZobristHash(r.Uint64())
			}
		}
	}
	ret.turn = ZobristHash(r.Uint64())
	return ret
}

// Hash computes the zobrist hash for the given position from scratch.
func (z *ZobristTable) Hash(pos *Position) ZobristHash {
	var hash ZobristHash

	for sq := Square(0); sq < NumSquares; sq++ {
		pl := pos.At(sq)
		if !pl.Empty() {
			hash ^= z.pieces[pl.Color][pl.Piece][sq]
		}
	}
	for c := Color(0); c < NumColors; c++ {
		hand := pos.Hand(c)
		for _, kind := range HandPieces {
			if n := hand.Count(kind); n > 0 {
				hash ^= z.hand[c][kind][n]
			}
		}
	}
	if pos.Turn() == White {
		hash ^= z.turn
	}
	return hash
}

// Move computes the hash of the position after playing m incrementally,
// given the hash and board state before the move. Cheaper than recomputing
// Hash on the resulting position directly. before must be the position
// prior to m; after is the position returned by before.ApplyMove(m).
func (z *ZobristTable) Move(h ZobristHash, before, after *Position, m Move) ZobristHash {
	hash := h
	c := before.Turn()

	if m.IsDrop() {
		hash ^= z.pieces[c][m.Drop][m.To]
		hash ^= z.handTerm(c, m.Drop, before.Hand(c).Count(m.Drop))
		hash ^= z.handTerm(c, m.Drop, after.Hand(c).Count(m.Drop))
	} else {
		mover := before.At(m.From)
		hash ^= z.pieces[c][mover.Piece][m.From]

		resultPiece := mover.Piece
		if m.Promote {
			resultPiece = resultPiece.Promoted()
		}
		hash ^= z.pieces[c][resultPiece][m.To]

		if m.IsCapture() {
			hash ^= z.pieces[c.Opponent()][m.Capture][m.To]
			kind := m.Capture.Unpromoted()
			hash ^= z.handTerm(c, kind, before.Hand(c).Count(kind))
			hash ^= z.handTerm(c, kind, after.Hand(c).Count(kind))
		}
	}

	hash ^= z.turn
	return hash
}

// NullMove computes the hash after passing the turn with no board change.
func (z *ZobristTable) NullMove(h ZobristHash) ZobristHash {
	return h ^ z.turn
}

func (z *ZobristTable) handTerm(c Color, kind Piece, count int) ZobristHash {
	if count <= 0 {
		return 0
	}
	return z.hand[c][kind][count]
}
