package search

import "github.com/ryokubo/sunfish/pkg/shogi"

// Evaluator is the static position evaluator the searcher is constructed
// with. Its feature tables and any parameter file I/O live outside this
// package; the searcher consumes only these two entry points.
type Evaluator interface {
	// Evaluate returns the full ValuePair for pos, computed from scratch.
	Evaluate(pos *shogi.Position) ValuePair

	// EvaluateDiff returns the ValuePair for pos given the ValuePair of
	// the position before move m was played and the move itself. It must
	// equal Evaluate(pos) for every reachable pos.
	EvaluateDiff(pos *shogi.Position, prev ValuePair, m shogi.Move) ValuePair
}
