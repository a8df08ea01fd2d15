package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ryokubo/sunfish/pkg/search"
	"github.com/ryokubo/sunfish/pkg/shogi"
)

func TestShekCheckNoneWhenUnset(t *testing.T) {
	s := search.NewShekTable()
	assert.Equal(t, search.ShekNone, s.Check(1, shogi.Hand{}))
}

func TestShekEqualHandIsRepetition(t *testing.T) {
	s := search.NewShekTable()
	hand := shogi.Hand{}.Add(shogi.Pawn)

	s.Set(42, hand)
	assert.Equal(t, search.ShekEqual, s.Check(42, hand))
}

func TestShekSuperiorInferior(t *testing.T) {
	s := search.NewShekTable()
	weak := shogi.Hand{}
	strong := weak.Add(shogi.Pawn)

	s.Set(7, weak)
	assert.Equal(t, search.ShekSuperior, s.Check(7, strong))

	s2 := search.NewShekTable()
	s2.Set(7, strong)
	assert.Equal(t, search.ShekInferior, s2.Check(7, weak))
}

func TestShekSetUnsetBalance(t *testing.T) {
	s := search.NewShekTable()
	hand := shogi.Hand{}

	s.Set(1, hand)
	s.Set(1, hand)
	assert.Equal(t, 2, s.Size())

	s.Unset(1, hand)
	assert.Equal(t, 1, s.Size())
	assert.Equal(t, search.ShekEqual, s.Check(1, hand))

	s.Unset(1, hand)
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, search.ShekNone, s.Check(1, hand))
}

func TestShekUnsetWithoutSetPanics(t *testing.T) {
	s := search.NewShekTable()
	assert.Panics(t, func() { s.Unset(1, shogi.Hand{}) })
}
