package layout

import (
	"fmt"

	"github.com/lox/solitaire/internal/cards"
)

// StackSpec declares one stack in a layout cell.
type StackSpec struct {
	Kind          StackKind
	Fanning       Fanning
	NumFacingDown int
	NumFacingUp   int
}

// Validate checks the spec's counts and enums.
func (s StackSpec) Validate() error {
	if s.Kind < Dealer || s.Kind > Foundation {
		return &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown stack kind %d", s.Kind)}
	}
	if s.Fanning < FanNone || s.Fanning > FanRight {
		return &ValidationError{Field: "fanning", Reason: fmt.Sprintf("unknown fanning %d", s.Fanning)}
	}
	if s.NumFacingDown < 0 {
		return &ValidationError{Field: "facing_down", Reason: "must not be negative"}
	}
	if s.NumFacingUp < 0 {
		return &ValidationError{Field: "facing_up", Reason: "must not be negative"}
	}
	return nil
}

// Stack is a pile of cards. Cards are ordered bottom to top; the last card
// is the one drawn in front.
type Stack struct {
	ID            string
	Row, Col      int
	Kind          StackKind
	Fanning       Fanning
	NumFacingDown int
	NumFacingUp   int
	Cards         []*cards.Card
}

// NewStack creates an empty stack at a grid position.
func NewStack(spec StackSpec, row, col int) *Stack {
	return &Stack{
		ID:            fmt.Sprintf("r%dc%d", row, col),
		Row:           row,
		Col:           col,
		Kind:          spec.Kind,
		Fanning:       spec.Fanning,
		NumFacingDown: spec.NumFacingDown,
		NumFacingUp:   spec.NumFacingUp,
	}
}

// Target is the number of cards the stack receives during a deal.
func (s *Stack) Target() int {
	return s.NumFacingDown + s.NumFacingUp
}

// Len returns the number of cards in the stack.
func (s *Stack) Len() int {
	return len(s.Cards)
}

// Top returns the front-most card, or nil if the stack is empty.
func (s *Stack) Top() *cards.Card {
	if len(s.Cards) == 0 {
		return nil
	}
	return s.Cards[len(s.Cards)-1]
}

// IndexOf returns the position of c in the stack, or -1.
func (s *Stack) IndexOf(c *cards.Card) int {
	for i, sc := range s.Cards {
		if sc == c {
			return i
		}
	}
	return -1
}

// Append places cards on top of the stack, in order.
func (s *Stack) Append(cs ...*cards.Card) {
	s.Cards = append(s.Cards, cs...)
}

// TakeFrom removes and returns the cards from index i to the top.
func (s *Stack) TakeFrom(i int) []*cards.Card {
	if i < 0 || i >= len(s.Cards) {
		return nil
	}
	run := make([]*cards.Card, len(s.Cards)-i)
	copy(run, s.Cards[i:])
	clear(s.Cards[i:])
	s.Cards = s.Cards[:i]
	return run
}

// Clear removes every card from the stack.
func (s *Stack) Clear() {
	s.Cards = nil
}

func (s *Stack) String() string {
	return fmt.Sprintf("%s(%s, %d cards)", s.ID, s.Kind, len(s.Cards))
}
