package rules

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/solitaire/internal/layout"
)

// ErrInvalidVariation is returned for a variation definition that cannot be used.
var ErrInvalidVariation = errors.New("invalid game variation")

// File is the top level of a variation file.
type File struct {
	Games []GameConfig `hcl:"game,block"`
}

// GameConfig declares one variation.
type GameConfig struct {
	Name          string      `hcl:"name,label"`
	Title         string      `hcl:"title,optional"`
	Decks         int         `hcl:"decks,optional"`
	AcesHigh      bool        `hcl:"aces_high,optional"`
	IncludeJokers bool        `hcl:"include_jokers,optional"`
	UseTimer      bool        `hcl:"use_timer,optional"`
	DropRules     string      `hcl:"drop_rules,optional"`
	Rows          []RowConfig `hcl:"row,block"`
}

// RowConfig is one row of cells.
type RowConfig struct {
	Cells []CellConfig `hcl:"cell,block"`
}

// CellConfig is a stack specification. A cell without a kind is an empty
// placeholder.
type CellConfig struct {
	Kind       string `hcl:"kind,optional"`
	Fanning    string `hcl:"fanning,optional"`
	FacingDown int    `hcl:"facing_down,optional"`
	FacingUp   int    `hcl:"facing_up,optional"`
}

// ParseVariations decodes the variations in an HCL document.
func ParseVariations(src []byte, filename string) ([]GameConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var f File
	diags = gohcl.DecodeBody(file.Body, nil, &f)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	for i := range f.Games {
		if f.Games[i].Decks == 0 {
			f.Games[i].Decks = 1
		}
		if f.Games[i].Title == "" {
			f.Games[i].Title = f.Games[i].Name
		}
		if f.Games[i].DropRules == "" {
			f.Games[i].DropRules = "any"
		}
	}
	return f.Games, nil
}

// Layout converts the rows into a validated layout.
func (g GameConfig) Layout() (layout.Layout, error) {
	l := make(layout.Layout, 0, len(g.Rows))
	for _, row := range g.Rows {
		cells := make([]*layout.StackSpec, 0, len(row.Cells))
		for _, cell := range row.Cells {
			spec, err := cell.spec()
			if err != nil {
				return nil, fmt.Errorf("game %s: %w", g.Name, err)
			}
			cells = append(cells, spec)
		}
		l = append(l, cells)
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("game %s: %w", g.Name, err)
	}
	return l, nil
}

func (c CellConfig) spec() (*layout.StackSpec, error) {
	if c.Kind == "" {
		return nil, nil
	}
	kind, err := layout.ParseStackKind(c.Kind)
	if err != nil {
		return nil, err
	}
	fan, err := layout.ParseFanning(c.Fanning)
	if err != nil {
		return nil, err
	}
	return &layout.StackSpec{
		Kind:          kind,
		Fanning:       fan,
		NumFacingDown: c.FacingDown,
		NumFacingUp:   c.FacingUp,
	}, nil
}

// Validate checks the settings that do not depend on the layout.
func (g GameConfig) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidVariation)
	}
	if g.Decks < 1 {
		return fmt.Errorf("%w: game %s: decks must be at least 1", ErrInvalidVariation, g.Name)
	}
	if _, ok := dropRules[g.DropRules]; !ok {
		return fmt.Errorf("%w: game %s: unknown drop rules %q", ErrInvalidVariation, g.Name, g.DropRules)
	}
	return nil
}

// Variation is the ModelRules of a variation declared in HCL.
type Variation struct {
	cfg    GameConfig
	layout layout.Layout
	model  *layout.Model
}

// NewVariation validates cfg and builds its stack model.
func NewVariation(cfg GameConfig) (*Variation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l, err := cfg.Layout()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidVariation, err)
	}
	m, err := layout.Build(l)
	if err != nil {
		return nil, fmt.Errorf("%w: game %s: %w", ErrInvalidVariation, cfg.Name, err)
	}
	return &Variation{cfg: cfg, layout: l, model: m}, nil
}

func (v *Variation) Name() string              { return v.cfg.Name }
func (v *Variation) Title() string             { return v.cfg.Title }
func (v *Variation) NumDecksInGame() int       { return v.cfg.Decks }
func (v *Variation) AcesHigh() bool            { return v.cfg.AcesHigh }
func (v *Variation) IncludeJokers() bool       { return v.cfg.IncludeJokers }
func (v *Variation) UseTimer() bool            { return v.cfg.UseTimer }
func (v *Variation) Layout() layout.Layout     { return v.layout }
func (v *Variation) StackModel() *layout.Model { return v.model }

// DropRules names the view rules the variation uses.
func (v *Variation) DropRules() string { return v.cfg.DropRules }
