// Package layout turns a declarative grid of stack specifications into the
// concrete stack model a game is played on.
package layout

import "errors"

// Layout is an ordered list of rows. A nil cell is an empty placeholder.
type Layout [][]*StackSpec

// Model is the grid of stacks built from a Layout. Nil cells mirror the
// placeholders of the layout.
type Model struct {
	Rows [][]*Stack
}

// Build instantiates a Stack for every non-nil cell in the layout. Specs are
// assumed to be valid already; only an empty layout is rejected.
func Build(l Layout) (*Model, error) {
	if len(l) == 0 {
		return nil, ErrEmptyLayout
	}

	m := &Model{Rows: make([][]*Stack, len(l))}
	for r, row := range l {
		if len(row) == 0 {
			return nil, ErrEmptyLayout
		}
		m.Rows[r] = make([]*Stack, len(row))
		for c, spec := range row {
			if spec == nil {
				continue
			}
			m.Rows[r][c] = NewStack(*spec, r, c)
		}
	}
	return m, nil
}

// Validate checks the shape of the layout and every spec in it.
func (l Layout) Validate() error {
	if len(l) == 0 {
		return ErrEmptyLayout
	}
	for r, row := range l {
		if len(row) == 0 {
			return ErrEmptyLayout
		}
		for c, spec := range row {
			if spec == nil {
				continue
			}
			if err := spec.Validate(); err != nil {
				var ve *ValidationError
				if errors.As(err, &ve) {
					ve.Row, ve.Col = r, c
				}
				return err
			}
		}
	}
	return nil
}

// ForEachStack visits every cell in row-major order, including empty ones.
func (m *Model) ForEachStack(visit func(s *Stack, row, col int)) {
	for r, row := range m.Rows {
		for c, s := range row {
			visit(s, r, c)
		}
	}
}

// Stacks returns every non-nil stack in row-major order.
func (m *Model) Stacks() []*Stack {
	var out []*Stack
	m.ForEachStack(func(s *Stack, _, _ int) {
		if s != nil {
			out = append(out, s)
		}
	})
	return out
}

// StacksOfKind returns the stacks of the given kind in row-major order.
func (m *Model) StacksOfKind(kind StackKind) []*Stack {
	var out []*Stack
	for _, s := range m.Stacks() {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// DealerStack returns the first dealer stack, or nil if there is none.
func (m *Model) DealerStack() *Stack {
	for _, s := range m.Stacks() {
		if s.Kind == Dealer {
			return s
		}
	}
	return nil
}

// Stack looks a stack up by ID.
func (m *Model) Stack(id string) *Stack {
	for _, s := range m.Stacks() {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// CardCount returns the total number of cards held by all stacks.
func (m *Model) CardCount() int {
	n := 0
	for _, s := range m.Stacks() {
		n += s.Len()
	}
	return n
}
