package deal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/solitaire/internal/cards"
	"github.com/lox/solitaire/internal/layout"
)

func klondikeModel(t *testing.T) *layout.Model {
	t.Helper()
	row := []*layout.StackSpec{{Kind: layout.Dealer, NumFacingDown: 52}}
	for i := 0; i < 7; i++ {
		row = append(row, &layout.StackSpec{Kind: layout.InPlay, Fanning: layout.FanDown, NumFacingDown: i, NumFacingUp: 1})
	}
	m, err := layout.Build(layout.Layout{row})
	require.NoError(t, err)
	return m
}

func deck(t *testing.T) []*cards.Card {
	t.Helper()
	cs, err := cards.CreateCards(1, false, false)
	require.NoError(t, err)
	return cs
}

func TestNumCardsToDeal(t *testing.T) {
	t.Parallel()

	m := klondikeModel(t)
	assert.Equal(t, 28, NumCardsToDeal(m))

	foundationOnly, err := layout.Build(layout.Layout{{
		{Kind: layout.Dealer, NumFacingDown: 52},
		{Kind: layout.Foundation, NumFacingUp: 13},
	}})
	require.NoError(t, err)
	assert.Zero(t, NumCardsToDeal(foundationOnly), "only in-play stacks count")
}

func TestCollectAll(t *testing.T) {
	t.Parallel()

	m := klondikeModel(t)
	cs := deck(t)
	m.Rows[0][3].Append(cs[0])

	require.NoError(t, CollectAll(m, cs))
	dealer := m.DealerStack()
	assert.Equal(t, cs, dealer.Cards)
	assert.Zero(t, m.Rows[0][3].Len(), "every other stack is emptied")
	for _, c := range dealer.Cards {
		assert.Equal(t, cards.FaceDown, c.Face)
	}
}

func TestCollectAllFacesAgainstDealerCounts(t *testing.T) {
	t.Parallel()

	m, err := layout.Build(layout.Layout{{{Kind: layout.Dealer, NumFacingDown: 2, NumFacingUp: 1}}})
	require.NoError(t, err)
	cs := deck(t)[:4]

	require.NoError(t, CollectAll(m, cs))
	assert.Equal(t, cards.FaceDown, cs[0].Face)
	assert.Equal(t, cards.FaceDown, cs[1].Face)
	assert.Equal(t, cards.FaceUp, cs[2].Face)
	assert.Equal(t, cards.FaceUp, cs[3].Face)
}

func TestCollectAllWithoutDealer(t *testing.T) {
	t.Parallel()

	m, err := layout.Build(layout.Layout{{{Kind: layout.InPlay, NumFacingUp: 1}}})
	require.NoError(t, err)
	assert.ErrorIs(t, CollectAll(m, deck(t)), ErrNoDealer)
}

func TestDealKlondike(t *testing.T) {
	t.Parallel()

	m := klondikeModel(t)
	cs := deck(t)
	require.NoError(t, CollectAll(m, cs))
	require.NoError(t, Deal(m, cs))

	inPlay := m.StacksOfKind(layout.InPlay)
	total := 0
	for i, s := range inPlay {
		require.Equal(t, i+1, s.Len(), "stack %d", i)
		total += s.Len()
		for j, c := range s.Cards {
			if j == s.Len()-1 {
				assert.Equal(t, cards.FaceUp, c.Face, "stack %d top card", i)
			} else {
				assert.Equal(t, cards.FaceDown, c.Face, "stack %d card %d", i, j)
			}
		}
	}
	assert.Equal(t, NumCardsToDeal(m), total)
	assert.Equal(t, 52-28, m.DealerStack().Len(), "dealt cards leave the dealer")
	assert.Equal(t, 52, m.CardCount(), "no card is lost or duplicated")

	// Round-robin: first pass puts one card on each stack.
	assert.Same(t, cs[0], inPlay[0].Cards[0])
	assert.Same(t, cs[1], inPlay[1].Cards[0])
	assert.Same(t, cs[7], inPlay[1].Cards[1])
}

func TestDealFaceDownCounts(t *testing.T) {
	t.Parallel()

	m := klondikeModel(t)
	cs := deck(t)
	require.NoError(t, Deal(m, cs))

	for _, s := range m.StacksOfKind(layout.InPlay) {
		down := 0
		for _, c := range s.Cards {
			if c.Face == cards.FaceDown {
				down++
			}
		}
		assert.Equal(t, min(s.NumFacingDown, s.Len()), down)
	}
}

func TestDealIsDeterministic(t *testing.T) {
	t.Parallel()

	cs := deck(t)
	var shapes [][]int
	for i := 0; i < 3; i++ {
		m := klondikeModel(t)
		require.NoError(t, CollectAll(m, cs))
		require.NoError(t, Deal(m, cs))

		var shape []int
		for _, s := range m.StacksOfKind(layout.InPlay) {
			shape = append(shape, s.Len(), s.Top().ID)
		}
		shapes = append(shapes, shape)
	}
	assert.Equal(t, shapes[0], shapes[1])
	assert.Equal(t, shapes[1], shapes[2])
}

func TestDealInsufficientCards(t *testing.T) {
	t.Parallel()

	m := klondikeModel(t)
	cs := deck(t)[:20]
	require.NoError(t, CollectAll(m, cs))

	err := Deal(m, cs)
	require.ErrorIs(t, err, ErrInsufficientCards)
	assert.Equal(t, 20, m.DealerStack().Len(), "failed deal moves nothing")
	for _, s := range m.StacksOfKind(layout.InPlay) {
		assert.Zero(t, s.Len())
	}
}

func TestDealInsufficientCapacity(t *testing.T) {
	t.Parallel()

	m := klondikeModel(t)
	cs := deck(t)
	first := m.StacksOfKind(layout.InPlay)[0]
	first.Append(cs[40], cs[41])

	err := Deal(m, cs[:28])
	require.ErrorIs(t, err, ErrInsufficientCapacity)
	assert.Equal(t, 2, first.Len())
}

func TestDealNoInPlayStacks(t *testing.T) {
	t.Parallel()

	m, err := layout.Build(layout.Layout{{{Kind: layout.Dealer, NumFacingDown: 52}}})
	require.NoError(t, err)
	cs := deck(t)
	require.NoError(t, CollectAll(m, cs))
	require.NoError(t, Deal(m, cs))
	assert.Equal(t, 52, m.DealerStack().Len())
}
