package search

import "github.com/ryokubo/sunfish/pkg/shogi"

// nominalValue gives each piece kind's material worth in centipawns, used
// by both static-exchange evaluation and futility-pruning estimates. It
// intentionally lives in the search package rather than pkg/eval: SEE and
// futility need a cheap, always-available value table independent of
// whatever positional evaluator the searcher was built with.
var nominalValue = [shogi.NumPieces]Value{
	shogi.Pawn:    90,
	shogi.Lance:   315,
	shogi.Knight:  405,
	shogi.Silver:  495,
	shogi.Gold:    540,
	shogi.Bishop:  855,
	shogi.Rook:    990,
	shogi.King:    15000,
	shogi.Tokin:   540,
	shogi.PLance:  540,
	shogi.PKnight: 540,
	shogi.PSilver: 540,
	shogi.Horse:   945,
	shogi.Dragon:  1395,
}

// NominalValue returns the absolute nominal value of piece p.
func NominalValue(p shogi.Piece) Value {
	return nominalValue[p]
}

// PromotionGain is the nominal value gained by promoting p, relative to
// leaving it unpromoted, used by SEE and futility estimation.
func PromotionGain(p shogi.Piece) Value {
	if !p.CanPromote() {
		return 0
	}
	return nominalValue[p.Promoted()] - nominalValue[p]
}
