package shogi

import "fmt"

type node struct {
	pos  *Position
	hash ZobristHash

	next Move // if not current
	prev *node
}

// Game is a shogi position plus its move history, needed for incremental
// hashing and for the search package's SHEK table to prime itself by
// walking backwards through ancestor positions. Not thread-safe; use Fork
// to hand an independent copy to a parallel search worker.
type Game struct {
	zt      *ZobristTable
	ply     int
	current *node
}

// NewGame starts a Game at pos (commonly NewStartPosition()).
func NewGame(zt *ZobristTable, pos *Position) *Game {
	return &Game{
		zt: zt,
		current: &node{
			pos:  pos,
			hash: zt.Hash(pos),
		},
	}
}

// Fork branches off an independent Game sharing history nodes for past
// positions. The shared history must not be mutated via PopMove past the
// fork point from either branch, or the other branch's forward-move link
// goes stale.
func (g *Game) Fork() *Game {
	return &Game{
		zt:  g.zt,
		ply: g.ply,
		current: &node{
			pos:  g.current.pos,
			hash: g.current.hash,
			prev: g.current.prev,
		},
	}
}

func (g *Game) Position() *Position { return g.current.pos }

func (g *Game) Hash() ZobristHash { return g.current.hash }

func (g *Game) Turn() Color { return g.current.pos.Turn() }

func (g *Game) Ply() int { return g.ply }

// PushMove attempts to play a pseudo-legal move. Returns false if m is
// illegal (leaves the mover's king in check), in which case the game is
// unchanged.
func (g *Game) PushMove(m Move) bool {
	next, ok := g.current.pos.ApplyMove(m)
	if !ok {
		return false
	}

	n := &node{
		pos:  next,
		hash: g.zt.Move(g.current.hash, g.current.pos, next, m),
		prev: g.current,
	}
	g.current.next = m
	g.current = n
	g.ply++
	return true
}

// PopMove undoes the last move, returning it. Returns false if at the root.
func (g *Game) PopMove() (Move, bool) {
	if g.current.prev == nil {
		return Move{}, false
	}
	m := g.current.prev.next
	g.current.prev.next = Move{}
	g.current = g.current.prev
	g.ply--
	return m, true
}

// AncestorPosition returns the position the given number of plies back
// from the current one, and false if the history is shorter than that. It
// walks the game history without mutating g.
func (g *Game) AncestorPosition(plies int) (*Position, bool) {
	n := g.current
	for i := 0; i < plies; i++ {
		if n.prev == nil {
			return nil, false
		}
		n = n.prev
	}
	return n.pos, true
}

func (g *Game) String() string {
	return fmt.Sprintf("game{pos=%v, turn=%v, hash=%x, ply=%v}", g.current.pos, g.Turn(), g.current.hash, g.ply)
}
