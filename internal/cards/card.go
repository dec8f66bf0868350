// Package cards defines the playing-card value types and the deck generator.
package cards

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSuit is returned when a suit name cannot be parsed.
var ErrUnknownSuit = errors.New("unknown suit")

// ErrUnknownRank is returned when a rank name cannot be parsed.
var ErrUnknownRank = errors.New("unknown rank")

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Spades
	Clubs
)

// Suits lists the four suits in deck generation order.
var Suits = [...]Suit{Hearts, Diamonds, Spades, Clubs}

// Color is the colour of a suit.
type Color int

const (
	Red Color = iota
	Black
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Name returns the lower-case suit name ("hearts", "spades", ...)
func (s Suit) Name() string {
	switch s {
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Spades:
		return "spades"
	case Clubs:
		return "clubs"
	default:
		return "unknown"
	}
}

// String returns the suit symbol
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Color returns red for hearts and diamonds, black otherwise.
func (s Suit) Color() Color {
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

// ParseSuit parses a suit name, case-insensitively.
func ParseSuit(name string) (Suit, error) {
	for _, s := range Suits {
		if strings.EqualFold(s.Name(), name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSuit, name)
}

// Rank represents a card rank
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists the thirteen ranks in deck generation order, two through ace.
var Ranks = [...]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

var rankNames = map[Rank]string{
	Ace: "ace", Two: "two", Three: "three", Four: "four", Five: "five",
	Six: "six", Seven: "seven", Eight: "eight", Nine: "nine", Ten: "ten",
	Jack: "jack", Queen: "queen", King: "king",
}

// Name returns the lower-case rank name ("ace", "two", ... "king")
func (r Rank) Name() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "unknown"
}

// String returns the short rank label
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r >= Two && r <= Nine {
		return fmt.Sprintf("%d", int(r))
	}
	return "?"
}

// ParseRank parses a rank name, case-insensitively.
func ParseRank(name string) (Rank, error) {
	for r, n := range rankNames {
		if strings.EqualFold(n, name) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRank, name)
}

// RankValue returns the ordinal value of a rank. Ace counts 1, or one more
// than king when aces are high.
func RankValue(r Rank, acesHigh bool) int {
	if r == Ace && acesHigh {
		return int(King) + 1
	}
	return int(r)
}

// Face is the side of a card that is showing.
type Face int

const (
	FaceUp Face = iota
	FaceDown
)

func (f Face) String() string {
	if f == FaceDown {
		return "down"
	}
	return "up"
}

// Card is a single card token. Cards are compared by pointer: two cards with
// the same suit, rank and deck index are still distinct.
type Card struct {
	ID        int
	Suit      Suit
	Rank      Rank
	DeckIndex int
	Face      Face
}

// String returns the string representation of a card (e.g., "Q♥")
func (c *Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// IsFaceUp reports whether the front of the card is showing.
func (c *Card) IsFaceUp() bool {
	return c.Face == FaceUp
}

// Color returns the colour of the card's suit.
func (c *Card) Color() Color {
	return c.Suit.Color()
}

// Clone returns an independent copy of the card.
func (c *Card) Clone() *Card {
	cp := *c
	return &cp
}

// FrontImage returns the image key for the card face, e.g. "queen_of_hearts".
func (c *Card) FrontImage() string {
	return c.Rank.Name() + "_of_" + c.Suit.Name()
}

// BackImage returns the image key for the card back.
func (c *Card) BackImage() string {
	return "back"
}

// CloneAll deep-copies a card sequence, preserving order.
func CloneAll(cs []*Card) []*Card {
	out := make([]*Card, len(cs))
	for i, c := range cs {
		out[i] = c.Clone()
	}
	return out
}
