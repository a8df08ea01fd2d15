package shogi

import "fmt"

// Hand counts pieces held off-board per unpromoted kind, indexed by Piece
// (only HandPieces entries are ever non-zero).
type Hand [NumPieces]uint8

// Add increments the count for kind (unpromoted).
func (h Hand) Add(kind Piece) Hand {
	h[kind]++
	return h
}

// Remove decrements the count for kind. Panics if none held -- callers must
// check Count first.
func (h Hand) Remove(kind Piece) Hand {
	if h[kind] == 0 {
		panic("shogi: hand underflow")
	}
	h[kind]--
	return h
}

func (h Hand) Count(kind Piece) int {
	return int(h[kind])
}

// Dominates reports whether h has, for every piece kind, at least as many as
// other, with at least one strictly more -- the "strict superset" relation
// used for repetition superiority/inferiority classification.
func (h Hand) Dominates(other Hand) bool {
	strictlyMore := false
	for _, p := range HandPieces {
		if h.Count(p) < other.Count(p) {
			return false
		}
		if h.Count(p) > other.Count(p) {
			strictlyMore = true
		}
	}
	return strictlyMore
}

// Equals reports whether the two hands hold identical counts.
func (h Hand) Equals(other Hand) bool {
	return h == other
}

func (h Hand) String() string {
	s := ""
	for _, p := range HandPieces {
		if n := h.Count(p); n > 0 {
			s += fmt.Sprintf("%v%d", p, n)
		}
	}
	if s == "" {
		return "-"
	}
	return s
}
