package shogi

import "fmt"

// Square is a board square 0..80, file-major: Square = file*9 + rank, with
// file 0 = the "9" file (Black's left) and rank 0 = rank "a" (White's back
// rank), matching the usual shogi board diagram when printed top-to-bottom
// by rank, right-to-left by file.
type Square int8

const (
	ZeroSquare Square = 0
	NumSquares Square = 81
	NumFiles          = 9
	NumRanks          = 9
)

// NewSquare builds a Square from 0-indexed file and rank.
func NewSquare(file, rank int) Square {
	return Square(file*NumFiles + rank)
}

func (s Square) File() int {
	return int(s) / NumFiles
}

func (s Square) Rank() int {
	return int(s) % NumFiles
}

// IsValid reports whether s is within the board.
func (s Square) IsValid() bool {
	return s >= 0 && s < NumSquares
}

// String prints in standard shogi notation: file 1-9 (high-to-low internal
// file order maps to low-to-high notation, since file 0 here is the "9"
// file), rank a-i.
func (s Square) String() string {
	file := NumFiles - s.File()
	rank := rune('a' + s.Rank())
	return fmt.Sprintf("%d%c", file, rank)
}

// ParseSquare parses standard notation, e.g. "7g".
func ParseSquare(file rune, rank rune) (Square, bool) {
	if file < '1' || file > '9' || rank < 'a' || rank > 'i' {
		return 0, false
	}
	f := NumFiles - int(file-'0')
	r := int(rank - 'a')
	return NewSquare(f, r), true
}

// step offsets, expressed as (deltaFile, deltaRank) from Black's perspective
// (Black advances towards decreasing rank). Mirror for White.
type delta struct{ df, dr int }

func (d delta) forColor(c Color) delta {
	if c == Black {
		return d
	}
	return delta{d.df, -d.dr}
}

var (
	goldSteps = []delta{{0, -1}, {1, -1}, {-1, -1}, {1, 0}, {-1, 0}, {0, 1}}
	silverSteps = []delta{{0, -1}, {1, -1}, {-1, -1}, {1, 1}, {-1, 1}}
	kingSteps = []delta{{0, -1}, {1, -1}, {-1, -1}, {1, 0}, {-1, 0}, {0, 1}, {1, 1}, {-1, 1}}
	pawnSteps = []delta{{0, -1}}
	knightSteps = []delta{{1, -2}, {-1, -2}}

	bishopDirs = []delta{{1, -1}, {-1, -1}, {1, 1}, {-1, 1}}
	rookDirs   = []delta{{0, -1}, {0, 1}, {1, 0}, {-1, 0}}
)

// stepTargets returns the reachable squares for a single non-sliding step
// piece at from, for color c.
func stepTargets(piece Piece, from Square, c Color) []Square {
	var steps []delta
	switch piece {
	case Gold, Tokin, PLance, PKnight, PSilver:
		steps = goldSteps
	case Silver:
		steps = silverSteps
	case King:
		steps = kingSteps
	case Pawn:
		steps = pawnSteps
	case Knight:
		steps = knightSteps
	default:
		return nil
	}

	var ret []Square
	for _, d := range steps {
		d = d.forColor(c)
		sq := NewSquare(from.File()+d.df, from.Rank()+d.dr)
		if from.File()+d.df < 0 || from.File()+d.df >= NumFiles {
			continue
		}
		if from.Rank()+d.dr < 0 || from.Rank()+d.dr >= NumRanks {
			continue
		}
		ret = append(ret, sq)
	}
	return ret
}

// slideDirs returns the direction set for a sliding piece for color c, or
// nil if piece does not slide (or slides only as part of its promoted
// Horse/Dragon step addition, handled by the caller alongside kingSteps).
// Bishop/Rook directions are symmetric under color flip; Lance is not, so
// it alone needs forColor applied here rather than by the caller.
func slideDirs(piece Piece, c Color) []delta {
	switch piece {
	case Lance:
		return []delta{lanceDir.forColor(c)}
	case Bishop, Horse:
		return bishopDirs
	case Rook, Dragon:
		return rookDirs
	default:
		return nil
	}
}

var lanceDir = delta{0, -1}
