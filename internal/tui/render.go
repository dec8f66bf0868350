package tui

import (
	"unicode/utf8"

	"github.com/lox/solitaire/internal/cards"
	"github.com/lox/solitaire/internal/view"
)

// Geometry returns the board geometry in terminal cells. top is the number
// of lines drawn above the board.
func Geometry(top int) view.Geometry {
	return view.Geometry{
		CardWidth:  7,
		CardHeight: 5,
		ColumnGap:  2,
		RowGap:     1,
		FanOffset:  2,
		DragMargin: 0,
		Origin:     view.Point{Y: float64(top)},
	}
}

var placeholderLabels = map[string]string{
	"dealer":     "deal",
	"draw":       "draw",
	"foundation": "home",
}

// RenderBoard draws a board snapshot. Coordinates are play-area cells.
func RenderBoard(snap view.Snapshot) string {
	w, h := extent(snap)
	c := newCanvas(w, h)
	for _, s := range snap.Stacks {
		drawStack(c, s, false)
	}
	if snap.Roving != nil {
		drawStack(c, *snap.Roving, true)
	}
	return c.String()
}

func extent(snap view.Snapshot) (int, int) {
	var w, h int
	grow := func(r view.Rect) {
		b := toBounds(r)
		w = max(w, b.x+b.w)
		h = max(h, b.y+b.h)
	}
	for _, s := range snap.Stacks {
		grow(s.Rect)
		for _, card := range s.Cards {
			grow(card.Rect)
		}
	}
	if snap.Roving != nil {
		for _, card := range snap.Roving.Cards {
			grow(card.Rect)
		}
	}
	return w, h
}

func drawStack(c *canvas, s view.StackElement, roving bool) {
	if s.Empty {
		return
	}
	if len(s.Cards) == 0 {
		b := toBounds(s.Rect)
		c.box(b, dashedBox, inkPlaceholder, ' ', inkNone)
		if label, ok := placeholderLabels[s.Kind]; ok {
			c.text(b.x+(b.w-len(label))/2, b.y+b.h/2, label, inkPlaceholder)
		}
		return
	}
	for _, card := range s.Cards {
		drawCard(c, card, roving)
	}
}

func drawCard(c *canvas, card view.CardElement, roving bool) {
	b := toBounds(card.Rect)
	border := inkBorder
	if roving {
		border = inkRoving
	}

	if card.Face != cards.FaceUp.String() {
		c.box(b, solidBox, border, '░', inkBack)
		return
	}

	c.box(b, solidBox, border, ' ', inkNone)
	label, colour := cardLabel(card)
	c.text(b.x+1, b.y+1, label, colour)
	if b.h >= 4 {
		c.text(b.x+b.w-1-utf8.RuneCountInString(label), b.y+b.h-2, label, colour)
	}
}

// cardLabel returns the short face label ("10♥") and its ink.
func cardLabel(card view.CardElement) (string, ink) {
	suit, err := cards.ParseSuit(card.Suit)
	if err != nil {
		return "??", inkBlack
	}
	rank, err := cards.ParseRank(card.Rank)
	if err != nil {
		return "?" + suit.String(), inkBlack
	}
	if suit.Color() == cards.Red {
		return rank.String() + suit.String(), inkRed
	}
	return rank.String() + suit.String(), inkBlack
}
