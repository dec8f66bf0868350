// Package view maps the stack model onto screen geometry. It owns the
// back-reference from on-screen stack identities to domain stacks, the
// transient roving stack used while dragging, and hit-testing.
package view

import (
	"errors"
	"fmt"

	"github.com/lox/solitaire/internal/cards"
	"github.com/lox/solitaire/internal/layout"
)

// ErrNoStackView is returned when a stack has no view on the board.
var ErrNoStackView = errors.New("no stack view for stack")

// RovingID is the view ID of the stack that follows the pointer.
const RovingID = "roving"

// StackView is the on-screen form of one grid cell.
type StackView struct {
	ID       string
	Row, Col int
	// Stack is nil for placeholders and for the roving stack.
	Stack   *layout.Stack
	Fanning layout.Fanning
	// Moving marks the roving stack.
	Moving bool
	// Empty marks a placeholder cell that holds no stack.
	Empty bool

	rect  Rect
	geom  *Geometry
	cards []*cards.Card
}

// Cards returns the cards shown by this view, bottom to top.
func (v *StackView) Cards() []*cards.Card {
	if v.Stack != nil {
		return v.Stack.Cards
	}
	return v.cards
}

// Len returns the number of cards shown.
func (v *StackView) Len() int {
	return len(v.Cards())
}

// Rect returns the stack's own rectangle relative to the play area.
func (v *StackView) Rect() Rect {
	return v.rect
}

// CardRect returns the rectangle of the i-th card, shifted along the
// fanning direction.
func (v *StackView) CardRect(i int) Rect {
	r := v.rect
	off := float64(i) * v.geom.FanOffset
	switch v.Fanning {
	case layout.FanDown:
		r.Y += off
	case layout.FanUp:
		r.Y -= off
	case layout.FanRight:
		r.X += off
	case layout.FanLeft:
		r.X -= off
	}
	return r
}

// HitBox is the area that accepts drops: the stack's own rectangle, extended
// to its last card when it holds more than one.
func (v *StackView) HitBox() Rect {
	if n := v.Len(); n > 1 {
		return v.rect.Union(v.CardRect(n - 1))
	}
	return v.rect
}

// Board is the rendered grid of stack views for one stack model.
type Board struct {
	geom   Geometry
	model  *layout.Model
	views  []*StackView
	byID   map[string]*StackView
	roving *StackView
}

// NewBoard lays out one view per cell of the model.
func NewBoard(m *layout.Model, g Geometry) *Board {
	b := &Board{
		geom:  g,
		model: m,
		byID:  make(map[string]*StackView),
	}
	m.ForEachStack(func(s *layout.Stack, row, col int) {
		v := &StackView{
			ID:   fmt.Sprintf("r%dc%d", row, col),
			Row:  row,
			Col:  col,
			rect: g.cell(row, col),
			geom: &b.geom,
		}
		if s == nil {
			v.Empty = true
		} else {
			v.ID = s.ID
			v.Stack = s
			v.Fanning = s.Fanning
		}
		b.views = append(b.views, v)
		b.byID[v.ID] = v
	})
	return b
}

// Geometry returns the board geometry.
func (b *Board) Geometry() Geometry {
	return b.geom
}

// Model returns the stack model the board renders.
func (b *Board) Model() *layout.Model {
	return b.model
}

// Views returns every cell view in row-major order. The roving stack is not
// included.
func (b *Board) Views() []*StackView {
	return b.views
}

// View looks a view up by ID.
func (b *Board) View(id string) (*StackView, bool) {
	if b.roving != nil && id == RovingID {
		return b.roving, true
	}
	v, ok := b.byID[id]
	return v, ok
}

// ViewFor returns the view rendering s.
func (b *Board) ViewFor(s *layout.Stack) (*StackView, error) {
	if s != nil {
		if v, ok := b.byID[s.ID]; ok && v.Stack == s {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrNoStackView, s)
}

// ToLocal converts a page position into play-area coordinates.
func (b *Board) ToLocal(p Point) Point {
	return p.Sub(b.geom.Origin)
}

// Locate finds the view holding the card with the given ID and its index.
func (b *Board) Locate(cardID int) (*StackView, int, bool) {
	for _, v := range b.views {
		for i, c := range v.Cards() {
			if c.ID == cardID {
				return v, i, true
			}
		}
	}
	return nil, -1, false
}

// CardAt returns the front-most card under the page position p.
func (b *Board) CardAt(p Point) (*StackView, int, bool) {
	local := b.ToLocal(p)
	for vi := len(b.views) - 1; vi >= 0; vi-- {
		v := b.views[vi]
		if v.Empty || v.Moving {
			continue
		}
		for i := v.Len() - 1; i >= 0; i-- {
			if v.CardRect(i).Contains(local) {
				return v, i, true
			}
		}
	}
	return nil, -1, false
}

// DropTargets returns the views whose hit box contains the page position p.
// Moving and empty views never match.
func (b *Board) DropTargets(p Point) []*StackView {
	local := b.ToLocal(p)
	var out []*StackView
	for _, v := range b.views {
		if v.Moving || v.Empty {
			continue
		}
		if v.HitBox().Contains(local) {
			out = append(out, v)
		}
	}
	return out
}

// NewRoving creates the roving stack holding run, with its top-left corner
// at the play-area position at.
func (b *Board) NewRoving(run []*cards.Card, at Point) *StackView {
	b.roving = &StackView{
		ID:      RovingID,
		Row:     -1,
		Col:     -1,
		Fanning: layout.FanNone,
		Moving:  true,
		rect:    Rect{X: at.X, Y: at.Y, W: b.geom.CardWidth, H: b.geom.CardHeight},
		geom:    &b.geom,
		cards:   run,
	}
	return b.roving
}

// MoveRoving centres the roving stack horizontally on the page position p,
// holding it DragMargin above the pointer.
func (b *Board) MoveRoving(p Point) (Rect, bool) {
	if b.roving == nil {
		return Rect{}, false
	}
	local := b.ToLocal(p)
	b.roving.rect.X = local.X - b.geom.CardWidth/2
	b.roving.rect.Y = local.Y - b.geom.DragMargin
	return b.roving.rect, true
}

// Roving returns the current roving stack, if any.
func (b *Board) Roving() *StackView {
	return b.roving
}

// DestroyRoving removes the roving stack and returns the cards it held.
func (b *Board) DestroyRoving() []*cards.Card {
	if b.roving == nil {
		return nil
	}
	run := b.roving.cards
	b.roving.cards = nil
	b.roving = nil
	return run
}
