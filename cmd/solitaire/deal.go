package main

import (
	"fmt"
	"os"

	"github.com/lox/solitaire/internal/controller"
	"github.com/lox/solitaire/internal/deal"
	"github.com/lox/solitaire/internal/fileutil"
	"github.com/lox/solitaire/internal/tui"
)

// DealCmd shuffles and deals one game and prints the board.
type DealCmd struct {
	Game  string `arg:"" optional:"" help:"Game to deal (defaults to the configured game)"`
	Seed  *int64 `help:"Deterministic RNG seed for shuffling (optional)"`
	Color string `default:"auto" enum:"auto,none,ascii,ansi,ansi256,truecolor" help:"Color profile"`
	JSON  string `name:"json" type:"path" help:"Also write the board snapshot as JSON to this file"`
}

func (c *DealCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	if err := setColor(c.Color); err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.Level())

	registry, err := loadRegistry(cfg, logger)
	if err != nil {
		return err
	}
	name := c.Game
	if name == "" {
		name = cfg.DefaultGame()
	}
	game, err := registry.Lookup(name)
	if err != nil {
		return err
	}

	seed := seedOrRandom(c.Seed)
	ctrl, err := controller.New(game,
		controller.WithLogger(logger),
		controller.WithRand(randFactory(seed)()),
		controller.WithGeometry(tui.Geometry(0)),
	)
	if err != nil {
		return err
	}
	if err := ctrl.BeginGamePlay(true); err != nil {
		return err
	}

	snap := ctrl.Board().Render()
	if c.JSON != "" {
		if err := fileutil.WriteJSONAtomic(c.JSON, snap, 0o644); err != nil {
			return err
		}
		logger.Info("Wrote board snapshot", "file", c.JSON)
	}

	fmt.Println(tui.HeaderStyle.Render(" " + game.Title() + " "))
	fmt.Println(tui.RenderBoard(snap))
	fmt.Println(tui.InfoStyle.Render(fmt.Sprintf("dealt %d of %d cards, %d left in the dealer, seed %d",
		deal.NumCardsToDeal(ctrl.Model()), len(ctrl.Cards()), ctrl.Model().DealerStack().Len(), seed)))
	return nil
}
