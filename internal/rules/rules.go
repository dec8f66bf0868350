// Package rules defines the contract between a game variation and the
// engine, and the registry that maps variation names to their rules.
package rules

import (
	"github.com/lox/solitaire/internal/cards"
	"github.com/lox/solitaire/internal/layout"
	"github.com/lox/solitaire/internal/view"
)

// ModelRules describes the deck and board of a variation.
type ModelRules interface {
	Name() string
	Title() string
	NumDecksInGame() int
	AcesHigh() bool
	IncludeJokers() bool
	UseTimer() bool
	Layout() layout.Layout
	// StackModel is the model built from Layout when the rules were created.
	StackModel() *layout.Model
}

// ViewRules decides which drops are legal.
type ViewRules interface {
	CardsCanDropIntoStack(run []*cards.Card, target *view.StackView) bool
}

// DropObserver is implemented by view rules that react to a committed drop.
type DropObserver interface {
	CardsDropped(run []*cards.Card, source, target *view.StackView)
}

// Game pairs the model and view rules of one instantiated variation.
type Game struct {
	ModelRules
	ViewRules
}

// Observer returns the drop observer of the view rules, or nil.
func (g *Game) Observer() DropObserver {
	if o, ok := g.ViewRules.(DropObserver); ok {
		return o
	}
	return nil
}
