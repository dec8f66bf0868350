// Package deal distributes cards from the dealer across the in-play stacks.
package deal

import (
	"errors"
	"fmt"

	"github.com/lox/solitaire/internal/cards"
	"github.com/lox/solitaire/internal/layout"
)

var (
	// ErrNoDealer is returned when the stack model has no dealer stack.
	ErrNoDealer = errors.New("no dealer stack in layout")
	// ErrInsufficientCards is returned when the deal needs more cards than supplied.
	ErrInsufficientCards = errors.New("insufficient cards to deal")
	// ErrInsufficientCapacity is returned when the in-play stacks cannot absorb the deal.
	ErrInsufficientCapacity = errors.New("in-play stacks already hold too many cards")
)

// NumCardsToDeal is the sum of the target compositions of every in-play
// stack. Dealer, draw and foundation stacks are filled by collection, not
// by dealing.
func NumCardsToDeal(m *layout.Model) int {
	total := 0
	for _, s := range m.StacksOfKind(layout.InPlay) {
		total += s.Target()
	}
	return total
}

// CollectAll empties every stack and homes the whole card sequence in the
// dealer stack. Faces follow the dealer's own counts: the first
// NumFacingDown cards go face down, the rest face up.
func CollectAll(m *layout.Model, cs []*cards.Card) error {
	dealer := m.DealerStack()
	if dealer == nil {
		return ErrNoDealer
	}

	for _, s := range m.Stacks() {
		s.Clear()
	}
	dealer.Cards = make([]*cards.Card, 0, len(cs))
	for i, c := range cs {
		if i < dealer.NumFacingDown {
			c.Face = cards.FaceDown
		} else {
			c.Face = cards.FaceUp
		}
		dealer.Append(c)
	}
	return nil
}

// Deal hands cards out one at a time, round-robin over the in-play stacks
// in row-major order, skipping stacks that have reached their target. A
// card goes face down while its stack holds fewer than NumFacingDown cards,
// face up otherwise. Each dealt card is first detached from whichever stack
// holds it.
//
// The preconditions are checked before anything moves, so a failed deal
// leaves the model untouched.
func Deal(m *layout.Model, cs []*cards.Card) error {
	stacks := m.StacksOfKind(layout.InPlay)
	target := NumCardsToDeal(m)
	if target > len(cs) {
		return fmt.Errorf("%w: need %d, have %d", ErrInsufficientCards, target, len(cs))
	}
	if target == 0 {
		return nil
	}

	dealt := make(map[*cards.Card]struct{}, target)
	for _, c := range cs[:target] {
		dealt[c] = struct{}{}
	}

	capacity := 0
	for _, s := range stacks {
		remaining := 0
		for _, c := range s.Cards {
			if _, ok := dealt[c]; !ok {
				remaining++
			}
		}
		capacity += max(0, s.Target()-remaining)
	}
	if capacity < target {
		return fmt.Errorf("%w: room for %d, dealing %d", ErrInsufficientCapacity, capacity, target)
	}

	for _, s := range m.Stacks() {
		detach(s, dealt)
	}

	cardCursor, stackCursor := 0, 0
	for cardCursor < target {
		s := stacks[stackCursor]
		stackCursor = (stackCursor + 1) % len(stacks)
		if s.Len() >= s.Target() {
			continue
		}

		c := cs[cardCursor]
		if s.Len() < s.NumFacingDown {
			c.Face = cards.FaceDown
		} else {
			c.Face = cards.FaceUp
		}
		s.Append(c)
		cardCursor++
	}
	return nil
}

func detach(s *layout.Stack, dealt map[*cards.Card]struct{}) {
	kept := s.Cards[:0]
	for _, c := range s.Cards {
		if _, ok := dealt[c]; !ok {
			kept = append(kept, c)
		}
	}
	clear(s.Cards[len(kept):])
	s.Cards = kept
}
