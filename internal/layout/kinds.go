package layout

import (
	"fmt"
	"strings"
)

// StackKind is the semantic role of a stack on the board.
type StackKind int

const (
	Dealer StackKind = iota
	Draw
	InPlay
	Foundation
)

var kindNames = [...]string{"dealer", "draw", "inPlay", "foundation"}

func (k StackKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseStackKind parses a kind name. Both "inPlay" and "in_play" are accepted.
func ParseStackKind(name string) (StackKind, error) {
	norm := strings.ReplaceAll(strings.ToLower(name), "_", "")
	for i, n := range kindNames {
		if strings.ToLower(n) == norm {
			return StackKind(i), nil
		}
	}
	return 0, &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown stack kind %q", name)}
}

// Fanning is the direction in which cards in a stack are spread out.
type Fanning int

const (
	FanNone Fanning = iota
	FanUp
	FanDown
	FanLeft
	FanRight
)

var fanningNames = [...]string{"none", "up", "down", "left", "right"}

func (f Fanning) String() string {
	if f < 0 || int(f) >= len(fanningNames) {
		return "unknown"
	}
	return fanningNames[f]
}

// ParseFanning parses a fanning direction; the empty string means none.
func ParseFanning(name string) (Fanning, error) {
	if name == "" {
		return FanNone, nil
	}
	for i, n := range fanningNames {
		if strings.EqualFold(n, name) {
			return Fanning(i), nil
		}
	}
	return 0, &ValidationError{Field: "fanning", Reason: fmt.Sprintf("unknown fanning direction %q", name)}
}
