package search

import "github.com/ryokubo/sunfish/pkg/shogi"

// ShekVerdict classifies the current position against the positions
// already pushed onto the SHEK table (repetition/superiority-equality-hash).
type ShekVerdict uint8

const (
	ShekNone ShekVerdict = iota
	ShekEqual
	ShekSuperior
	ShekInferior
)

type shekRecord struct {
	hand  shogi.Hand
	count int
}

// ShekTable tracks, per position hash, the hands held by the side to move
// at every ancestor occurrence on the current search path, so that
// repetition (equal hand) and the hand-superiority rule that shortcuts a
// search early can both be answered in O(bucket size).
//
// set/unset must be called in strictly balanced push/pop pairs -- this is
// the same discipline the tree stack's makeMove/unmakeMove already impose,
// and SHEK is primed/unwound alongside it.
type ShekTable struct {
	buckets map[shogi.ZobristHash][]shekRecord
}

func NewShekTable() *ShekTable {
	return &ShekTable{buckets: make(map[shogi.ZobristHash][]shekRecord)}
}

// Set pushes (hash, hand) onto the table.
func (s *ShekTable) Set(hash shogi.ZobristHash, hand shogi.Hand) {
	list := s.buckets[hash]
	for i := range list {
		if list[i].hand.Equals(hand) {
			list[i].count++
			return
		}
	}
	s.buckets[hash] = append(list, shekRecord{hand: hand, count: 1})
}

// Unset pops (hash, hand) off the table. Panics if it was never pushed --
// set/unset calls must be balanced by construction.
func (s *ShekTable) Unset(hash shogi.ZobristHash, hand shogi.Hand) {
	list := s.buckets[hash]
	for i := range list {
		if list[i].hand.Equals(hand) {
			list[i].count--
			if list[i].count == 0 {
				list = append(list[:i], list[i+1:]...)
				if len(list) == 0 {
					delete(s.buckets, hash)
				} else {
					s.buckets[hash] = list
				}
			}
			return
		}
	}
	panic("search: shek unset without matching set")
}

// Check classifies hash/hand against every ancestor entry sharing hash.
func (s *ShekTable) Check(hash shogi.ZobristHash, hand shogi.Hand) ShekVerdict {
	for _, rec := range s.buckets[hash] {
		switch {
		case rec.hand.Equals(hand):
			return ShekEqual
		case hand.Dominates(rec.hand):
			return ShekSuperior
		case rec.hand.Dominates(hand):
			return ShekInferior
		}
	}
	return ShekNone
}

// Size returns the total number of live (hash, hand) entries, used by
// tests to verify set/unset balance.
func (s *ShekTable) Size() int {
	n := 0
	for _, list := range s.buckets {
		for _, rec := range list {
			n += rec.count
		}
	}
	return n
}
