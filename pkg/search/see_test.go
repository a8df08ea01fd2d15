package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ryokubo/sunfish/pkg/search"
	"github.com/ryokubo/sunfish/pkg/shogi"
)

func TestStaticExchangeEmptySquareIsZero(t *testing.T) {
	pos := shogi.NewEmptyPosition()
	v := search.StaticExchange(pos, shogi.NewSquare(4, 4), shogi.Black)
	assert.Equal(t, search.Value(0), v)
}

// A lone Black pawn capturing an undefended White pawn gains a pawn and is
// never recaptured.
func TestStaticExchangeUndefendedCaptureGainsNominalValue(t *testing.T) {
	pos := shogi.NewEmptyPosition()
	pos.SetSquare(shogi.NewSquare(4, 4), shogi.Pawn, shogi.White)
	pos.SetSquare(shogi.NewSquare(4, 5), shogi.Pawn, shogi.Black)

	v := search.StaticExchange(pos, shogi.NewSquare(4, 4), shogi.Black)
	assert.Equal(t, search.NominalValue(shogi.Pawn), v)
}

// If the attacked pawn is defended by a bishop sitting on the same
// diagonal, the exchange evens out (pawn for pawn) and SEE should not
// report a net gain for the side initiating the capture.
func TestStaticExchangeDefendedCaptureIsNotProfitable(t *testing.T) {
	pos := shogi.NewEmptyPosition()
	pos.SetSquare(shogi.NewSquare(4, 4), shogi.Pawn, shogi.White)
	pos.SetSquare(shogi.NewSquare(4, 5), shogi.Pawn, shogi.Black)
	pos.SetSquare(shogi.NewSquare(0, 0), shogi.Bishop, shogi.White) // recaptures along the diagonal

	v := search.StaticExchange(pos, shogi.NewSquare(4, 4), shogi.Black)
	assert.LessOrEqual(t, v, search.Value(0))
}

func TestStaticExchangeIsAntisymmetricForTheDefender(t *testing.T) {
	pos := shogi.NewEmptyPosition()
	pos.SetSquare(shogi.NewSquare(4, 4), shogi.Pawn, shogi.White)
	pos.SetSquare(shogi.NewSquare(4, 5), shogi.Pawn, shogi.Black)

	forAttacker := search.StaticExchange(pos, shogi.NewSquare(4, 4), shogi.Black)
	forDefender := search.StaticExchange(pos, shogi.NewSquare(4, 4), shogi.White)
	assert.Equal(t, -forAttacker, forDefender)
}

func TestSeeTableGetSetRoundTripExact(t *testing.T) {
	st := search.NewSeeTable()
	m := shogi.Move{From: shogi.NewSquare(4, 5), To: shogi.NewSquare(4, 4), Piece: shogi.Pawn, Capture: shogi.Pawn}

	_, ok := st.Get(1, m, -search.Inf, search.Inf)
	assert.False(t, ok)

	st.Set(1, m, 90, -search.Inf, search.Inf)
	v, ok := st.Get(1, m, -search.Inf, search.Inf)
	assert.True(t, ok)
	assert.Equal(t, search.Value(90), v)
}

func TestSeeTableClipsToWindow(t *testing.T) {
	st := search.NewSeeTable()
	m := shogi.Move{From: shogi.NewSquare(4, 5), To: shogi.NewSquare(4, 4), Piece: shogi.Pawn, Capture: shogi.Pawn}

	st.Set(1, m, 500, -100, 100)
	v, ok := st.Get(1, m, -100, 100)
	assert.True(t, ok)
	assert.Equal(t, search.Value(100), v)

	// A probe whose beta lies above the stored Lower bound can't be trusted.
	_, ok = st.Get(1, m, -100, 200)
	assert.False(t, ok)
}
