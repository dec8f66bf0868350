package rules

import (
	"github.com/lox/solitaire/internal/cards"
	"github.com/lox/solitaire/internal/layout"
	"github.com/lox/solitaire/internal/view"
)

// dropRules maps the drop_rules name used in variation files to a
// constructor for the view rules.
var dropRules = map[string]func(ModelRules) ViewRules{
	"any":      func(ModelRules) ViewRules { return AnyDrop{} },
	"klondike": func(m ModelRules) ViewRules { return &Klondike{acesHigh: m.AcesHigh()} },
}

// AnyDrop accepts every drop.
type AnyDrop struct{}

func (AnyDrop) CardsCanDropIntoStack([]*cards.Card, *view.StackView) bool {
	return true
}

// Klondike implements the classic patience drop rules: in-play stacks
// build down in alternating colours from a king, foundations build up by
// suit from the lowest card, and the draw pile takes single cards turned
// from the dealer.
type Klondike struct {
	acesHigh bool
}

func (k *Klondike) value(c *cards.Card) int {
	return cards.RankValue(c.Rank, k.acesHigh)
}

func (k *Klondike) lowest() cards.Rank {
	if k.acesHigh {
		return cards.Two
	}
	return cards.Ace
}

func (k *Klondike) highest() cards.Rank {
	if k.acesHigh {
		return cards.Ace
	}
	return cards.King
}

// CardsCanDropIntoStack reports whether run may land on target.
func (k *Klondike) CardsCanDropIntoStack(run []*cards.Card, target *view.StackView) bool {
	if len(run) == 0 || target == nil || target.Stack == nil {
		return false
	}
	lead := run[0]
	top := target.Stack.Top()

	switch target.Stack.Kind {
	case layout.InPlay:
		for _, c := range run {
			if !c.IsFaceUp() {
				return false
			}
		}
		if top == nil {
			return lead.Rank == k.highest()
		}
		return top.IsFaceUp() && top.Color() != lead.Color() && k.value(top) == k.value(lead)+1

	case layout.Foundation:
		if len(run) != 1 || !lead.IsFaceUp() {
			return false
		}
		if top == nil {
			return lead.Rank == k.lowest()
		}
		return top.Suit == lead.Suit && k.value(lead) == k.value(top)+1

	case layout.Draw:
		// Only the dealer holds face-down cards on top of a pile.
		return len(run) == 1 && !lead.IsFaceUp()
	}
	return false
}

// CardsDropped turns cards drawn from the dealer face up and reveals the
// card exposed on an in-play source stack.
func (k *Klondike) CardsDropped(run []*cards.Card, source, target *view.StackView) {
	if target.Stack != nil && target.Stack.Kind == layout.Draw {
		for _, c := range run {
			c.Face = cards.FaceUp
		}
	}
	if source.Stack != nil && source.Stack.Kind == layout.InPlay {
		if top := source.Stack.Top(); top != nil {
			top.Face = cards.FaceUp
		}
	}
}
