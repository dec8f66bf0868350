package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/solitaire/internal/controller"
	"github.com/lox/solitaire/internal/tui"
)

// PlayCmd plays one game in the terminal.
type PlayCmd struct {
	Game    string `arg:"" optional:"" help:"Game to play (defaults to the configured game)"`
	Seed    *int64 `help:"Deterministic RNG seed for shuffling (optional)"`
	Color   string `default:"auto" enum:"auto,none,ascii,ansi,ansi256,truecolor" help:"Color profile"`
	LogFile string `help:"Write logs to this file; the terminal is busy drawing the board"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}

	var out io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger := newLogger(out, cfg.Level())

	if err := setColor(c.Color); err != nil {
		return err
	}

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
	logger.Info("Starting terminal game", "game", name, "seed", seed)

	ctrl, err := controller.New(game,
		controller.WithLogger(logger),
		controller.WithRand(randFactory(seed)()),
		controller.WithGeometry(tui.Geometry(tui.HeaderLines)),
	)
	if err != nil {
		return err
	}
	if err := ctrl.BeginGamePlay(true); err != nil {
		return err
	}
	return tui.Run(ctrl, logger)
}

// setColor applies a --color value.
func setColor(name string) error {
	profile, err := tui.ParseColorProfile(name)
	if err != nil {
		return err
	}
	tui.SetColorProfile(profile)
	return nil
}
