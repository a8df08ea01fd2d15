package shogi

import (
	"fmt"
	"strconv"
	"strings"
)

var sfenPieceLetter = map[Piece]byte{
	Pawn: 'P', Lance: 'L', Knight: 'N', Silver: 'S', Gold: 'G',
	Bishop: 'B', Rook: 'R', King: 'K',
}

var sfenLetterPiece = map[byte]Piece{
	'P': Pawn, 'L': Lance, 'N': Knight, 'S': Silver, 'G': Gold,
	'B': Bishop, 'R': Rook, 'K': King,
}

// ParsePosition parses the board/hands/turn portion of an SFEN string
// ("lnsgkgsnl/... b - 1" or just its first three fields). The trailing
// move-count field, if present, is ignored -- search.Record tracks ply via
// the move history, not a counter carried in the position itself.
func ParsePosition(sfen string) (*Position, error) {
	fields := strings.Fields(strings.TrimSpace(sfen))
	if len(fields) < 3 {
		return nil, fmt.Errorf("shogi: malformed sfen %q: need board, turn, hand fields", sfen)
	}

	p := NewEmptyPosition()
	rows := strings.Split(fields[0], "/")
	if len(rows) != NumRanks {
		return nil, fmt.Errorf("shogi: malformed sfen board %q: want %d ranks, got %d", fields[0], NumRanks, len(rows))
	}
	for rank, row := range rows {
		file := 0
		promote := false
		for i := 0; i < len(row); i++ {
			ch := row[i]
			switch {
			case ch == '+':
				promote = true
			case ch >= '1' && ch <= '9':
				n := int(ch - '0')
				file += n
				promote = false
			default:
				if file >= NumFiles {
					return nil, fmt.Errorf("shogi: malformed sfen row %q: too many squares", row)
				}
				c := Black
				letter := ch
				if ch >= 'a' && ch <= 'z' {
					c = White
					letter = ch - 'a' + 'A'
				}
				kind, ok := sfenLetterPiece[letter]
				if !ok {
					return nil, fmt.Errorf("shogi: unknown sfen piece %q", string(ch))
				}
				if promote {
					kind = kind.Promoted()
				}
				p.SetSquare(NewSquare(file, rank), kind, c)
				file++
				promote = false
			}
		}
	}

	switch fields[1] {
	case "b":
		p.turn = Black
	case "w":
		p.turn = White
	default:
		return nil, fmt.Errorf("shogi: malformed sfen turn field %q", fields[1])
	}

	if fields[2] != "-" {
		count := 0
		for i := 0; i < len(fields[2]); i++ {
			ch := fields[2][i]
			if ch >= '0' && ch <= '9' {
				count = count*10 + int(ch-'0')
				continue
			}
			if count == 0 {
				count = 1
			}
			c := Black
			letter := ch
			if ch >= 'a' && ch <= 'z' {
				c = White
				letter = ch - 'a' + 'A'
			}
			kind, ok := sfenLetterPiece[letter]
			if !ok {
				return nil, fmt.Errorf("shogi: unknown sfen hand piece %q", string(ch))
			}
			for n := 0; n < count; n++ {
				p.hands[c] = p.hands[c].Add(kind)
			}
			count = 0
		}
	}

	return p, nil
}

// SFEN encodes p as the board/turn/hand portion of an SFEN string.
func (p *Position) SFEN() string {
	var rows []string
	for rank := 0; rank < NumRanks; rank++ {
		var sb strings.Builder
		empty := 0
		for file := 0; file < NumFiles; file++ {
			pl := p.squares[NewSquare(file, rank)]
			if pl.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			letter := sfenPieceLetter[pl.Piece.Unpromoted()]
			if pl.Piece.IsPromoted() {
				sb.WriteByte('+')
			}
			if pl.Color == White {
				letter = letter - 'A' + 'a'
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		rows = append(rows, sb.String())
	}

	turn := "b"
	if p.turn == White {
		turn = "w"
	}

	hand := p.handSFEN()

	return fmt.Sprintf("%v %v %v 1", strings.Join(rows, "/"), turn, hand)
}

// handSFEN encodes both hands, Black's before White's, highest-value piece
// first within a color, matching standard SFEN ordering (R B G S N L P).
func (p *Position) handSFEN() string {
	order := []Piece{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}
	var sb strings.Builder
	for _, c := range []Color{Black, White} {
		for _, kind := range order {
			n := p.hands[c].Count(kind)
			if n == 0 {
				continue
			}
			if n > 1 {
				sb.WriteString(strconv.Itoa(n))
			}
			letter := sfenPieceLetter[kind]
			if c == White {
				letter = letter - 'A' + 'a'
			}
			sb.WriteByte(letter)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// NewGameFromSFEN parses sfen and wraps it in a fresh Game.
func NewGameFromSFEN(zt *ZobristTable, sfen string) (*Game, error) {
	pos, err := ParsePosition(sfen)
	if err != nil {
		return nil, err
	}
	return NewGame(zt, pos), nil
}
