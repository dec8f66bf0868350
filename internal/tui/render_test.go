package tui

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/solitaire/internal/view"
)

func TestCanvasBoxAndClipping(t *testing.T) {
	t.Parallel()

	c := newCanvas(6, 3)
	c.box(bounds{x: 0, y: 0, w: 4, h: 3}, solidBox, inkBorder, '░', inkBack)
	c.text(3, 1, "xyz", inkNone)
	c.set(-1, 0, '!', inkNone)
	c.set(0, 5, '!', inkNone)

	assert.Equal(t, "┌──┐\n│░░xyz\n└──┘", c.String())
}

func TestCardLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		suit, rank string
		want       string
		ink        ink
	}{
		{"hearts", "ten", "10♥", inkRed},
		{"diamonds", "ace", "A♦", inkRed},
		{"spades", "queen", "Q♠", inkBlack},
		{"clubs", "seven", "7♣", inkBlack},
		{"stars", "ace", "??", inkBlack},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			label, colour := cardLabel(view.CardElement{Suit: tt.suit, Rank: tt.rank})
			assert.Equal(t, tt.want, label)
			assert.Equal(t, tt.ink, colour)
		})
	}
}

func TestRenderBoard(t *testing.T) {
	t.Parallel()
	m := newModel(t, "sandbox")

	out := RenderBoard(m.ctrl.Board().Render())
	lines := strings.Split(out, "\n")

	// Two rows of five-line cards with a gap, plus the deepest fan below.
	require.GreaterOrEqual(t, len(lines), 11)
	assert.Contains(t, out, "░", "dealer cards are face down")
	assert.Contains(t, out, "home", "empty foundations are labelled")
	assert.Contains(t, out, "┄")

	top := m.ctrl.Model().Stack("r1c0").Top()
	assert.Contains(t, out, top.Rank.String()+top.Suit.String())
}

func TestRenderRovingStack(t *testing.T) {
	t.Parallel()

	snap := view.Snapshot{
		Roving: &view.StackElement{
			ID:     view.RovingID,
			Moving: true,
			Cards: []view.CardElement{{
				Suit: "spades", Rank: "king", Face: "up",
				Rect: view.Rect{X: 2, Y: 1, W: 7, H: 5},
			}},
		},
	}
	out := RenderBoard(snap)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "  ┌─────┐", lines[1])
	assert.Equal(t, "  │K♠   │", lines[2])
	assert.Equal(t, "  │   K♠│", lines[4])
}

func TestParseColorProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		want    termenv.Profile
		wantErr bool
	}{
		{"ascii", termenv.Ascii, false},
		{"none", termenv.Ascii, false},
		{"ansi", termenv.ANSI, false},
		{"ansi256", termenv.ANSI256, false},
		{"truecolor", termenv.TrueColor, false},
		{"sepia", termenv.Ascii, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColorProfile(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
