package rules

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/solitaire/internal/deal"
	"github.com/lox/solitaire/internal/layout"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	r, err := DefaultRegistry(quietLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"klondike", "sandbox"}, r.Names())
	assert.Equal(t, []Info{{Name: "klondike", Title: "Klondike"}, {Name: "sandbox", Title: "Sandbox"}}, r.List())
}

func TestLookupKlondike(t *testing.T) {
	t.Parallel()

	r, err := DefaultRegistry(quietLogger())
	require.NoError(t, err)

	g, err := r.Lookup("klondike")
	require.NoError(t, err)
	assert.Equal(t, "Klondike", g.Title())
	assert.Equal(t, 1, g.NumDecksInGame())
	assert.False(t, g.AcesHigh())
	assert.True(t, g.UseTimer())

	m := g.StackModel()
	require.Len(t, m.Rows, 2)
	assert.Nil(t, m.Rows[0][2])
	assert.Equal(t, 52, m.DealerStack().NumFacingDown)
	assert.Len(t, m.StacksOfKind(layout.Foundation), 4)
	assert.Equal(t, 28, deal.NumCardsToDeal(m))
	assert.NotNil(t, g.Observer())

	again, err := r.Lookup("klondike")
	require.NoError(t, err)
	assert.NotSame(t, m, again.StackModel(), "each lookup builds a fresh model")
}

func TestLookupSandbox(t *testing.T) {
	t.Parallel()

	r, err := DefaultRegistry(quietLogger())
	require.NoError(t, err)

	g, err := r.Lookup("sandbox")
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumDecksInGame())
	assert.True(t, g.AcesHigh())
	assert.Nil(t, g.Observer())
	assert.True(t, g.CardsCanDropIntoStack(nil, nil))
}

func TestLookupNotFound(t *testing.T) {
	t.Parallel()

	r := NewRegistry(quietLogger())
	_, err := r.Lookup("spider")
	require.ErrorIs(t, err, ErrGameNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "spider", nf.Name)
}

func TestParseVariations(t *testing.T) {
	t.Parallel()

	src := []byte(`
game "tiny" {
  row {
    cell {
      kind        = "dealer"
      facing_down = 10
    }
    cell {}
    cell {
      kind      = "inPlay"
      fanning   = "down"
      facing_up = 2
    }
  }
}
`)
	games, err := ParseVariations(src, "tiny.hcl")
	require.NoError(t, err)
	require.Len(t, games, 1)

	g := games[0]
	assert.Equal(t, "tiny", g.Title, "title defaults to name")
	assert.Equal(t, 1, g.Decks)
	assert.Equal(t, "any", g.DropRules)

	l, err := g.Layout()
	require.NoError(t, err)
	require.Len(t, l[0], 3)
	assert.Nil(t, l[0][1])
	assert.Equal(t, layout.InPlay, l[0][2].Kind)
	assert.Equal(t, layout.FanDown, l[0][2].Fanning)
}

func TestRegisterVariationRejectsBadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  GameConfig
	}{
		{name: "no name", cfg: GameConfig{Decks: 1, DropRules: "any"}},
		{name: "no decks", cfg: GameConfig{Name: "x", DropRules: "any"}},
		{name: "unknown drop rules", cfg: GameConfig{Name: "x", Decks: 1, DropRules: "spider"}},
		{name: "no rows", cfg: GameConfig{Name: "x", Decks: 1, DropRules: "any"}},
		{name: "bad kind", cfg: GameConfig{Name: "x", Decks: 1, DropRules: "any",
			Rows: []RowConfig{{Cells: []CellConfig{{Kind: "discard"}}}}}},
		{name: "negative count", cfg: GameConfig{Name: "x", Decks: 1, DropRules: "any",
			Rows: []RowConfig{{Cells: []CellConfig{{Kind: "dealer", FacingDown: -1}}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(quietLogger())
			err := r.RegisterVariation(tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidVariation)
			assert.Empty(t, r.Names())
		})
	}
}

func TestLoadFilesSkipsBadFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.hcl")
	bad := filepath.Join(dir, "bad.hcl")
	require.NoError(t, os.WriteFile(good, []byte(`
game "one-pile" {
  row {
    cell {
      kind        = "dealer"
      facing_down = 52
    }
  }
}
`), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte(`game "broken" {`), 0o644))

	r := NewRegistry(quietLogger())
	loaded := r.LoadFiles([]string{good, bad, filepath.Join(dir, "missing.hcl")})
	assert.Equal(t, 1, loaded)
	assert.Equal(t, []string{"one-pile"}, r.Names())
}

func TestRegisterCustomFactory(t *testing.T) {
	t.Parallel()

	r := NewRegistry(quietLogger())
	v, err := NewVariation(GameConfig{
		Name: "custom", Decks: 1, DropRules: "any",
		Rows: []RowConfig{{Cells: []CellConfig{{Kind: "dealer", FacingDown: 52}}}},
	})
	require.NoError(t, err)

	r.Register("custom", "", Factory{
		NewModelRules: func() (ModelRules, error) { return v, nil },
		NewViewRules:  func(ModelRules) (ViewRules, error) { return AnyDrop{}, nil },
	})
	g, err := r.Lookup("custom")
	require.NoError(t, err)
	assert.Same(t, v.StackModel(), g.StackModel())
	assert.Equal(t, []Info{{Name: "custom", Title: "custom"}}, r.List())
}
