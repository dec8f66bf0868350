package cards

import (
	"errors"
	"fmt"
)

// ErrNoDecks is returned when fewer than one deck is requested.
var ErrNoDecks = errors.New("at least one deck is required")

// CardsPerDeck is the size of a standard deck without jokers.
const CardsPerDeck = 52

// CreateCards generates numDecks standard decks in suit-major, rank-minor
// order, deck by deck. Every card starts face up and is tagged with its
// 1-based deck index. Card IDs are the position in the returned sequence.
//
// acesHigh does not change the tokens themselves; callers compare ranks with
// RankValue. Jokers are not generated yet, so includeJokers is a no-op.
func CreateCards(numDecks int, acesHigh bool, includeJokers bool) ([]*Card, error) {
	if numDecks < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoDecks, numDecks)
	}

	out := make([]*Card, 0, numDecks*CardsPerDeck)
	for deck := 1; deck <= numDecks; deck++ {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				out = append(out, &Card{
					ID:        len(out),
					Suit:      suit,
					Rank:      rank,
					DeckIndex: deck,
					Face:      FaceUp,
				})
			}
		}
	}
	return out, nil
}
