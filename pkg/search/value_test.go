package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ryokubo/sunfish/pkg/search"
)

func TestValueMaxMin(t *testing.T) {
	assert.Equal(t, search.Value(5), search.Max(5, 3))
	assert.Equal(t, search.Value(3), search.Min(5, 3))
}

func TestValueIsMate(t *testing.T) {
	assert.True(t, search.Value(search.Mate).IsMate())
	assert.True(t, search.Value(-search.Mate).IsMate())
	assert.False(t, search.Value(100).IsMate())
}

func TestValueMateDistance(t *testing.T) {
	d, winning := (search.Mate + 3).MateDistance()
	assert.Equal(t, int(search.Inf-(search.Mate+3)), d)
	assert.True(t, winning)

	d, winning = (-search.Mate - 3).MateDistance()
	assert.Equal(t, int(search.Inf-(search.Mate+3)), d)
	assert.False(t, winning)
}

func TestValueNormalizeRoundTrip(t *testing.T) {
	v := search.Mate + 5
	stored := search.NormalizeStore(v, 7)
	assert.Equal(t, v+7, stored)
	assert.Equal(t, v, search.NormalizeLoad(stored, 7))

	// Non-mate scores are untouched.
	assert.Equal(t, search.Value(120), search.NormalizeStore(120, 7))
	assert.Equal(t, search.Value(120), search.NormalizeLoad(120, 7))
}

func TestValuePairValue(t *testing.T) {
	vp := search.ValuePair{Material: 100, Positional: search.PositionalScale * 4}
	assert.Equal(t, search.Value(104), vp.Value())
}

func TestValuePairArithmetic(t *testing.T) {
	a := search.ValuePair{Material: 10, Positional: 20}
	b := search.ValuePair{Material: 3, Positional: 4}

	assert.Equal(t, search.ValuePair{Material: 13, Positional: 24}, a.Add(b))
	assert.Equal(t, search.ValuePair{Material: 7, Positional: 16}, a.Sub(b))
	assert.Equal(t, search.ValuePair{Material: -10, Positional: -20}, a.Negate())
}
