package view

// CardElement is the render form of one card.
type CardElement struct {
	ID        int    `json:"id"`
	Suit      string `json:"suit"`
	Rank      string `json:"rank"`
	DeckIndex int    `json:"deckIndex"`
	Face      string `json:"face"`
	Rect      Rect   `json:"rect"`
	Front     string `json:"front"`
	Back      string `json:"back"`
}

// StackElement is the render form of one stack view. Cards are listed back
// to front.
type StackElement struct {
	ID      string        `json:"id"`
	Row     int           `json:"row"`
	Col     int           `json:"col"`
	Kind    string        `json:"kind,omitempty"`
	Fanning string        `json:"fanning"`
	Rect    Rect          `json:"rect"`
	Moving  bool          `json:"moving,omitempty"`
	Empty   bool          `json:"empty,omitempty"`
	Cards   []CardElement `json:"cards"`
}

// Snapshot is everything a front end needs to draw the board.
type Snapshot struct {
	Stacks []StackElement `json:"stacks"`
	Roving *StackElement  `json:"roving,omitempty"`
}

// Render captures the current board.
func (b *Board) Render() Snapshot {
	snap := Snapshot{Stacks: make([]StackElement, 0, len(b.views))}
	for _, v := range b.views {
		snap.Stacks = append(snap.Stacks, v.Element())
	}
	if b.roving != nil {
		el := b.roving.Element()
		snap.Roving = &el
	}
	return snap
}

// Element renders a single view.
func (v *StackView) Element() StackElement {
	el := StackElement{
		ID:      v.ID,
		Row:     v.Row,
		Col:     v.Col,
		Fanning: v.Fanning.String(),
		Rect:    v.rect,
		Moving:  v.Moving,
		Empty:   v.Empty,
		Cards:   make([]CardElement, 0, v.Len()),
	}
	if v.Stack != nil {
		el.Kind = v.Stack.Kind.String()
	}
	for i, c := range v.Cards() {
		el.Cards = append(el.Cards, CardElement{
			ID:        c.ID,
			Suit:      c.Suit.Name(),
			Rank:      c.Rank.Name(),
			DeckIndex: c.DeckIndex,
			Face:      c.Face.String(),
			Rect:      v.CardRect(i),
			Front:     c.FrontImage(),
			Back:      c.BackImage(),
		})
	}
	return el
}
