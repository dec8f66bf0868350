package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/solitaire/internal/cards"
	"github.com/lox/solitaire/internal/layout"
	"github.com/lox/solitaire/internal/view"
)

func up(suit cards.Suit, rank cards.Rank) *cards.Card {
	return &cards.Card{Suit: suit, Rank: rank, Face: cards.FaceUp}
}

func down(suit cards.Suit, rank cards.Rank) *cards.Card {
	return &cards.Card{Suit: suit, Rank: rank, Face: cards.FaceDown}
}

// board returns views for one stack of each kind: dealer, draw, in-play,
// foundation.
func board(t *testing.T) map[layout.StackKind]*view.StackView {
	t.Helper()
	m, err := layout.Build(layout.Layout{{
		{Kind: layout.Dealer},
		{Kind: layout.Draw},
		{Kind: layout.InPlay},
		{Kind: layout.Foundation},
	}})
	require.NoError(t, err)
	b := view.NewBoard(m, view.DefaultGeometry())
	out := make(map[layout.StackKind]*view.StackView)
	for _, v := range b.Views() {
		out[v.Stack.Kind] = v
	}
	return out
}

func TestKlondikeInPlay(t *testing.T) {
	t.Parallel()

	k := &Klondike{}
	tests := []struct {
		name string
		top  *cards.Card
		run  []*cards.Card
		want bool
	}{
		{name: "king onto empty", run: []*cards.Card{up(cards.Spades, cards.King)}, want: true},
		{name: "queen onto empty", run: []*cards.Card{up(cards.Spades, cards.Queen)}, want: false},
		{name: "red on black descending", top: up(cards.Spades, cards.Eight), run: []*cards.Card{up(cards.Hearts, cards.Seven)}, want: true},
		{name: "same colour", top: up(cards.Spades, cards.Eight), run: []*cards.Card{up(cards.Clubs, cards.Seven)}, want: false},
		{name: "not descending", top: up(cards.Spades, cards.Eight), run: []*cards.Card{up(cards.Hearts, cards.Six)}, want: false},
		{name: "onto face-down card", top: down(cards.Spades, cards.Eight), run: []*cards.Card{up(cards.Hearts, cards.Seven)}, want: false},
		{name: "run with face-down card", top: up(cards.Spades, cards.Eight), run: []*cards.Card{up(cards.Hearts, cards.Seven), down(cards.Clubs, cards.Six)}, want: false},
		{name: "multi-card run", top: up(cards.Spades, cards.Eight), run: []*cards.Card{up(cards.Hearts, cards.Seven), up(cards.Clubs, cards.Six)}, want: true},
		{name: "ace onto two", top: up(cards.Spades, cards.Two), run: []*cards.Card{up(cards.Hearts, cards.Ace)}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := board(t)[layout.InPlay]
			if tt.top != nil {
				target.Stack.Append(tt.top)
			}
			assert.Equal(t, tt.want, k.CardsCanDropIntoStack(tt.run, target))
		})
	}
}

func TestKlondikeFoundation(t *testing.T) {
	t.Parallel()

	k := &Klondike{}
	tests := []struct {
		name string
		top  *cards.Card
		run  []*cards.Card
		want bool
	}{
		{name: "ace onto empty", run: []*cards.Card{up(cards.Hearts, cards.Ace)}, want: true},
		{name: "two onto empty", run: []*cards.Card{up(cards.Hearts, cards.Two)}, want: false},
		{name: "two onto ace same suit", top: up(cards.Hearts, cards.Ace), run: []*cards.Card{up(cards.Hearts, cards.Two)}, want: true},
		{name: "two onto ace other suit", top: up(cards.Hearts, cards.Ace), run: []*cards.Card{up(cards.Spades, cards.Two)}, want: false},
		{name: "more than one card", top: up(cards.Hearts, cards.Ace), run: []*cards.Card{up(cards.Hearts, cards.Two), up(cards.Hearts, cards.Three)}, want: false},
		{name: "face-down card", run: []*cards.Card{down(cards.Hearts, cards.Ace)}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := board(t)[layout.Foundation]
			if tt.top != nil {
				target.Stack.Append(tt.top)
			}
			assert.Equal(t, tt.want, k.CardsCanDropIntoStack(tt.run, target))
		})
	}
}

func TestKlondikeAcesHigh(t *testing.T) {
	t.Parallel()

	k := &Klondike{acesHigh: true}
	views := board(t)
	assert.True(t, k.CardsCanDropIntoStack([]*cards.Card{up(cards.Hearts, cards.Ace)}, views[layout.InPlay]),
		"ace is the highest card and starts an empty pile")
	assert.True(t, k.CardsCanDropIntoStack([]*cards.Card{up(cards.Hearts, cards.Two)}, views[layout.Foundation]))

	views[layout.InPlay].Stack.Append(up(cards.Spades, cards.Ace))
	assert.True(t, k.CardsCanDropIntoStack([]*cards.Card{up(cards.Hearts, cards.King)}, views[layout.InPlay]))
}

func TestKlondikeDrawAndDealer(t *testing.T) {
	t.Parallel()

	k := &Klondike{}
	views := board(t)
	assert.True(t, k.CardsCanDropIntoStack([]*cards.Card{down(cards.Clubs, cards.Nine)}, views[layout.Draw]))
	assert.False(t, k.CardsCanDropIntoStack([]*cards.Card{up(cards.Clubs, cards.Nine)}, views[layout.Draw]))
	assert.False(t, k.CardsCanDropIntoStack([]*cards.Card{down(cards.Clubs, cards.Nine), down(cards.Clubs, cards.Ten)}, views[layout.Draw]))
	assert.False(t, k.CardsCanDropIntoStack([]*cards.Card{up(cards.Clubs, cards.King)}, views[layout.Dealer]))
	assert.False(t, k.CardsCanDropIntoStack(nil, views[layout.InPlay]))
}

func TestKlondikeCardsDropped(t *testing.T) {
	t.Parallel()

	k := &Klondike{}
	views := board(t)

	hidden := down(cards.Spades, cards.Four)
	views[layout.InPlay].Stack.Append(hidden)
	moved := up(cards.Hearts, cards.Ace)
	views[layout.Foundation].Stack.Append(moved)
	k.CardsDropped([]*cards.Card{moved}, views[layout.InPlay], views[layout.Foundation])
	assert.True(t, hidden.IsFaceUp(), "exposed in-play card is turned up")

	drawn := down(cards.Clubs, cards.Nine)
	views[layout.Draw].Stack.Append(drawn)
	k.CardsDropped([]*cards.Card{drawn}, views[layout.Dealer], views[layout.Draw])
	assert.True(t, drawn.IsFaceUp())
}
