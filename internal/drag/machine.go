// Package drag implements the pointer-driven state machine that moves runs
// of cards between stacks.
//
// A pointer-down on a card lifts that card and every card above it into a
// roving stack that follows the pointer. Releasing over exactly one stack
// whose drop predicate accepts the run moves it there; any other release
// puts the run back where it came from.
package drag

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/solitaire/internal/cards"
	"github.com/lox/solitaire/internal/view"
)

// ErrUnknownCard is returned when an event names a card that is not on the board.
var ErrUnknownCard = errors.New("card not on board")

// CanDropFunc decides whether run may be dropped onto target.
type CanDropFunc func(run []*cards.Card, target *view.StackView) bool

// DropFunc is called after a run has been committed to target.
type DropFunc func(run []*cards.Card, source, target *view.StackView)

// Machine is the drag state machine for one board.
type Machine struct {
	board   *view.Board
	canDrop CanDropFunc
	onDrop  DropFunc
	logger  *log.Logger

	state State
	drag  *inFlight
}

type inFlight struct {
	source *view.StackView
	run    []*cards.Card
	device Device
}

// Option configures a Machine.
type Option func(*Machine)

// WithDropObserver registers fn to run after every committed drop.
func WithDropObserver(fn DropFunc) Option {
	return func(m *Machine) {
		m.onDrop = fn
	}
}

// NewMachine creates an idle machine for board.
func NewMachine(board *view.Board, canDrop CanDropFunc, logger *log.Logger, opts ...Option) *Machine {
	m := &Machine{
		board:   board,
		canDrop: canDrop,
		logger:  logger.WithPrefix("drag"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Dispatch feeds one event through the machine and returns the effects it
// had on the board. Events that make no sense in the current state, such as
// a second pointer-down while dragging, are ignored.
func (m *Machine) Dispatch(ev Event) ([]Effect, error) {
	switch m.state {
	case Idle:
		switch ev.Kind {
		case PointerDown:
			return m.grab(ev)
		case Click:
			return m.selectRun(ev)
		}
	case Dragging:
		switch ev.Kind {
		case PointerMove:
			rect, ok := m.board.MoveRoving(ev.Page)
			if !ok {
				return nil, nil
			}
			return []Effect{{Kind: RovingMoved, Rect: &rect}}, nil
		case PointerUp, PointerCancel:
			return []Effect{m.release(ev)}, nil
		case PointerDown:
			m.logger.Debug("Ignoring pointer down during drag", "device", ev.Device)
		}
	}
	return nil, nil
}

// Abort puts an in-flight run back on its source stack.
func (m *Machine) Abort() []Effect {
	if m.state != Dragging {
		return nil
	}
	return []Effect{m.revert("aborted")}
}

// RunAt returns the run that a pointer-down with ev would pick up: the
// targeted card and every card above it.
func (m *Machine) RunAt(ev Event) (*view.StackView, []*cards.Card, error) {
	v, i, err := m.target(ev)
	if err != nil || v == nil {
		return nil, nil, err
	}
	return v, v.Cards()[i:], nil
}

func (m *Machine) target(ev Event) (*view.StackView, int, error) {
	if ev.CardID != NoCard {
		v, i, ok := m.board.Locate(ev.CardID)
		if !ok {
			return nil, -1, fmt.Errorf("%w: %d", ErrUnknownCard, ev.CardID)
		}
		return v, i, nil
	}
	v, i, ok := m.board.CardAt(ev.Page)
	if !ok {
		return nil, -1, nil
	}
	return v, i, nil
}

func (m *Machine) grab(ev Event) ([]Effect, error) {
	source, i, err := m.target(ev)
	if err != nil {
		return nil, err
	}
	if source == nil || source.Stack == nil {
		return nil, nil
	}

	at := source.CardRect(i).Origin()
	run := source.Stack.TakeFrom(i)
	roving := m.board.NewRoving(run, at)

	m.drag = &inFlight{source: source, run: run, device: ev.Device}
	m.state = Dragging
	m.logger.Debug("Drag started", "source", source.ID, "cards", len(run), "device", ev.Device)

	rect := roving.Rect()
	return []Effect{{
		Kind:   DragStarted,
		Source: source.ID,
		Cards:  cardIDs(run),
		Rect:   &rect,
	}}, nil
}

func (m *Machine) release(ev Event) Effect {
	targets := m.board.DropTargets(ev.Page)
	switch {
	case len(targets) == 0:
		return m.revert("no target")
	case len(targets) > 1:
		return m.revert("ambiguous target")
	}

	target := targets[0]
	if !m.allowed(m.drag.run, target) {
		return m.revert("rejected")
	}

	d := m.finish()
	target.Stack.Append(d.run...)
	m.logger.Debug("Drop committed", "source", d.source.ID, "target", target.ID, "cards", len(d.run))
	if m.onDrop != nil {
		m.onDrop(d.run, d.source, target)
	}
	return Effect{
		Kind:   DropCommitted,
		Source: d.source.ID,
		Target: target.ID,
		Cards:  cardIDs(d.run),
	}
}

func (m *Machine) revert(reason string) Effect {
	d := m.finish()
	d.source.Stack.Append(d.run...)
	m.logger.Debug("Drop reverted", "source", d.source.ID, "reason", reason)
	return Effect{
		Kind:   DropReverted,
		Source: d.source.ID,
		Cards:  cardIDs(d.run),
		Reason: reason,
	}
}

// finish tears down the roving stack and returns the machine to idle.
func (m *Machine) finish() *inFlight {
	d := m.drag
	m.board.DestroyRoving()
	m.drag = nil
	m.state = Idle
	return d
}

// allowed runs the drop predicate; a panicking predicate counts as a
// rejection so the run is never stranded in the roving stack.
func (m *Machine) allowed(run []*cards.Card, target *view.StackView) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Drop predicate panicked", "target", target.ID, "panic", r)
			ok = false
		}
	}()
	return m.canDrop(run, target)
}

func (m *Machine) selectRun(ev Event) ([]Effect, error) {
	source, run, err := m.RunAt(ev)
	if err != nil || source == nil {
		return nil, err
	}
	return []Effect{{Kind: RunSelected, Source: source.ID, Cards: cardIDs(run)}}, nil
}

func cardIDs(run []*cards.Card) []int {
	ids := make([]int, len(run))
	for i, c := range run {
		ids[i] = c.ID
	}
	return ids
}
