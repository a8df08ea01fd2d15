package shogi

// Move generation is pseudo-legal: callers apply a candidate via ApplyMove
// and check its ok result, which is false exactly when the move leaves the
// mover's own king in check. Deferring the check test to make-move time
// rather than filtering the move list up front is cheaper for the common
// case where most candidates are never actually searched.

// promotionRank returns the boundary rank (inclusive) of c's promotion
// zone: the last three ranks as seen from c.
func promotionRank(c Color) int {
	if c == Black {
		return 2
	}
	return 6
}

func inPromotionZone(s Square, c Color) bool {
	if c == Black {
		return s.Rank() <= 2
	}
	return s.Rank() >= 6
}

// mustPromote reports whether piece dropped or moved to square to, for
// color c, has no legal unpromoted placement there (pawn/lance on the
// farthest rank, knight on the farthest two ranks).
func mustPromote(piece Piece, c Color, to Square) bool {
	rank := to.Rank()
	last, last2 := 0, 1
	if c == White {
		last, last2 = 8, 7
	}
	switch piece {
	case Pawn, Lance:
		return rank == last
	case Knight:
		return rank == last || rank == last2
	default:
		return false
	}
}

// GenerateCaptures returns pseudo-legal board moves (not drops, drops never
// capture) that capture an enemy piece, for both promoting and
// non-promoting variants where both are legal.
func (p *Position) GenerateCaptures(c Color) []Move {
	return p.genBoardMoves(c, true)
}

// GenerateQuiet returns pseudo-legal non-capturing board moves.
func (p *Position) GenerateQuiet(c Color) []Move {
	return p.genBoardMoves(c, false)
}

// GenerateDrops returns pseudo-legal drop moves, honoring the nifu
// (two-pawns-on-a-file) restriction and the forced-promotion squares (a
// piece can never be dropped onto a square where it would have no move).
func (p *Position) GenerateDrops(c Color) []Move {
	var moves []Move
	hand := p.hands[c]
	for _, kind := range HandPieces {
		if hand.Count(kind) == 0 {
			continue
		}
		for file := 0; file < NumFiles; file++ {
			if kind == Pawn && p.hasPawnOnFile(c, file) {
				continue
			}
			for rank := 0; rank < NumRanks; rank++ {
				to := NewSquare(file, rank)
				if !p.squares[to].Empty() {
					continue
				}
				if mustPromote(kind, c, to) {
					continue
				}
				moves = append(moves, NewDrop(kind, to))
			}
		}
	}
	return moves
}

func (p *Position) hasPawnOnFile(c Color, file int) bool {
	for rank := 0; rank < NumRanks; rank++ {
		pl := p.squares[NewSquare(file, rank)]
		if pl.Piece == Pawn && pl.Color == c {
			return true
		}
	}
	return false
}

// GenerateEvasions returns every pseudo-legal candidate (board moves and
// drops) when c's king is in check. It does not special-case the checking
// piece; ApplyMove's own-king-in-check test at make time rejects anything
// that does not actually resolve the check, same as the non-check path.
func (p *Position) GenerateEvasions(c Color) []Move {
	moves := p.genBoardMoves(c, true)
	moves = append(moves, p.genBoardMoves(c, false)...)
	moves = append(moves, p.GenerateDrops(c)...)
	return moves
}

// GenerateAll returns every pseudo-legal move for c: captures, quiet moves
// and drops, in that order.
func (p *Position) GenerateAll(c Color) []Move {
	moves := p.GenerateCaptures(c)
	moves = append(moves, p.GenerateQuiet(c)...)
	moves = append(moves, p.GenerateDrops(c)...)
	return moves
}

func (p *Position) genBoardMoves(c Color, capturesOnly bool) []Move {
	var moves []Move
	for from := Square(0); from < NumSquares; from++ {
		pl := p.squares[from]
		if pl.Empty() || pl.Color != c {
			continue
		}
		moves = p.appendStepMoves(moves, from, pl.Piece, c, capturesOnly)
		moves = p.appendSlideMoves(moves, from, pl.Piece, c, capturesOnly)
	}
	return moves
}

func (p *Position) appendStepMoves(moves []Move, from Square, piece Piece, c Color, capturesOnly bool) []Move {
	for _, to := range stepTargets(piece, from, c) {
		moves = p.appendTargetMoves(moves, from, to, piece, c, capturesOnly)
	}
	if piece == Horse || piece == Dragon {
		for _, to := range stepTargets(King, from, c) {
			// Horse adds the orthogonal king steps, Dragon the diagonal.
			df, dr := to.File()-from.File(), to.Rank()-from.Rank()
			isDiag := df != 0 && dr != 0
			if (piece == Horse && isDiag) || (piece == Dragon && !isDiag) {
				continue
			}
			moves = p.appendTargetMoves(moves, from, to, piece, c, capturesOnly)
		}
	}
	return moves
}

func (p *Position) appendSlideMoves(moves []Move, from Square, piece Piece, c Color, capturesOnly bool) []Move {
	for _, d := range slideDirs(piece, c) {
		cur := from
		for {
			file, rank := cur.File()+d.df, cur.Rank()+d.dr
			if file < 0 || file >= NumFiles || rank < 0 || rank >= NumRanks {
				break
			}
			cur = NewSquare(file, rank)
			occ := p.squares[cur]
			if occ.Empty() {
				moves = p.appendTargetMoves(moves, from, cur, piece, c, capturesOnly)
				continue
			}
			if occ.Color != c {
				moves = p.appendTargetMoves(moves, from, cur, piece, c, capturesOnly)
			}
			break
		}
	}
	return moves
}

func (p *Position) appendTargetMoves(moves []Move, from, to Square, piece Piece, c Color, capturesOnly bool) []Move {
	occ := p.squares[to]
	if !occ.Empty() && occ.Color == c {
		return moves
	}
	isCapture := !occ.Empty()
	if capturesOnly != isCapture {
		return moves
	}
	capture := occ.Piece

	canPromoteHere := piece.CanPromote() && (inPromotionZone(from, c) || inPromotionZone(to, c))
	forced := canPromoteHere && mustPromote(piece, c, to)

	if canPromoteHere {
		moves = append(moves, Move{From: from, To: to, Piece: piece, Promote: true, Capture: capture})
	}
	if !forced {
		moves = append(moves, Move{From: from, To: to, Piece: piece, Promote: false, Capture: capture})
	}
	return moves
}

// ApplyMove returns the position after playing m, and false if m is
// illegal (leaves the mover's own king in check -- the only legality
// check not already enforced by move generation).
func (p *Position) ApplyMove(m Move) (*Position, bool) {
	np := p.Clone()
	c := p.turn

	if m.IsDrop() {
		np.squares[m.To] = Placement{m.Drop, c}
		np.hands[c] = np.hands[c].Remove(m.Drop)
	} else {
		mover := np.squares[m.From]
		if !np.squares[m.To].Empty() {
			captured := np.squares[m.To]
			np.hands[c] = np.hands[c].Add(captured.Piece.Unpromoted())
		}
		piece := mover.Piece
		if m.Promote {
			piece = piece.Promoted()
		}
		np.squares[m.From] = Placement{}
		np.squares[m.To] = Placement{piece, c}
		if piece == King {
			np.king[c] = m.To
		}
	}

	np.turn = c.Opponent()
	if np.IsChecked(c) {
		return np, false
	}
	return np, true
}
