package drag

import "github.com/lox/solitaire/internal/view"

// State is the state of the drag machine.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// EventKind identifies a pointer event.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	PointerCancel
	Click
)

var eventNames = [...]string{"down", "move", "up", "cancel", "click"}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// ParseEventKind maps a wire name to an event kind. Touch names are
// accepted as aliases.
func ParseEventKind(name string) (EventKind, bool) {
	switch name {
	case "down", "start":
		return PointerDown, true
	case "move":
		return PointerMove, true
	case "up", "end":
		return PointerUp, true
	case "cancel":
		return PointerCancel, true
	case "click", "tap":
		return Click, true
	}
	return 0, false
}

// Device is the kind of pointer that produced an event.
type Device int

const (
	Mouse Device = iota
	Touch
)

func (d Device) String() string {
	if d == Touch {
		return "touch"
	}
	return "mouse"
}

// NoCard means the event does not name the card it hit; the board is
// hit-tested instead.
const NoCard = -1

// Event is a pointer or touch event in page coordinates.
type Event struct {
	Kind   EventKind
	Device Device
	Page   view.Point
	CardID int
}

// At builds a mouse event at page position x, y.
func At(kind EventKind, x, y float64) Event {
	return Event{Kind: kind, Page: view.Point{X: x, Y: y}, CardID: NoCard}
}

// EffectKind identifies what a dispatched event did to the board.
type EffectKind string

const (
	DragStarted   EffectKind = "drag_started"
	RovingMoved   EffectKind = "roving_moved"
	DropCommitted EffectKind = "drop_committed"
	DropReverted  EffectKind = "drop_reverted"
	RunSelected   EffectKind = "run_selected"
)

// Effect describes one change made by the machine.
type Effect struct {
	Kind   EffectKind `json:"kind"`
	Source string     `json:"source,omitempty"`
	Target string     `json:"target,omitempty"`
	Cards  []int      `json:"cards,omitempty"`
	Rect   *view.Rect `json:"rect,omitempty"`
	Reason string     `json:"reason,omitempty"`
}

// Next is the transition table. A pointer-down that misses every card
// leaves the machine idle even though Next reports Dragging.
func Next(s State, k EventKind) State {
	switch s {
	case Idle:
		if k == PointerDown {
			return Dragging
		}
	case Dragging:
		if k == PointerUp || k == PointerCancel {
			return Idle
		}
	}
	return s
}
