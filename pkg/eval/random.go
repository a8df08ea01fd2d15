package eval

import (
	"math/rand"

	"github.com/ryokubo/sunfish/pkg/search"
	"github.com/ryokubo/sunfish/pkg/shogi"
)

// Random wraps an Evaluator with a small amount of additive noise, so that
// otherwise-deterministic self-play games diverge. limit bounds the noise
// to [-limit/2, limit/2] centipawns; a non-positive limit disables it.
type Random struct {
	inner search.Evaluator
	rng   *rand.Rand
	limit int
}

func NewRandom(inner search.Evaluator, limit int, seed int64) Random {
	return Random{inner: inner, rng: rand.New(rand.NewSource(seed)), limit: limit}
}

func (r Random) Evaluate(pos *shogi.Position) search.ValuePair {
	return r.noisy(r.inner.Evaluate(pos))
}

func (r Random) EvaluateDiff(pos *shogi.Position, prev search.ValuePair, mv shogi.Move) search.ValuePair {
	return r.noisy(r.inner.EvaluateDiff(pos, prev, mv))
}

func (r Random) noisy(vp search.ValuePair) search.ValuePair {
	if r.limit <= 0 {
		return vp
	}
	n := search.Value(r.rng.Intn(r.limit) - r.limit/2)
	vp.Material += n
	return vp
}
