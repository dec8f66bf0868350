package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/solitaire/internal/tui"
)

// GamesCmd lists the registered games.
type GamesCmd struct {
	Color string `default:"auto" enum:"auto,none,ascii,ansi,ansi256,truecolor" help:"Color profile"`
}

func (c *GamesCmd) Run(g *Globals) error {
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

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tui.InfoStyle).
		Headers("NAME", "TITLE", "DECKS", "TIMER")
	for _, info := range registry.List() {
		game, err := registry.Lookup(info.Name)
		if err != nil {
			logger.Warn("Skipping game", "game", info.Name, "error", err)
			continue
		}
		name := info.Name
		if name == cfg.DefaultGame() {
			name += " *"
		}
		timer := "no"
		if game.UseTimer() {
			timer = "yes"
		}
		t.Row(name, info.Title, strconv.Itoa(game.NumDecksInGame()), timer)
	}

	fmt.Println(t.Render())
	fmt.Println(tui.InfoStyle.Render("* dealt to new connections by default"))
	return nil
}
