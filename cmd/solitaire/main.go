package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"solitaire.hcl" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" help:"Log level: debug, info, warn or error (overrides config)"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Serve   ServeCmd         `cmd:"" help:"Serve games to browsers over WebSocket"`
	Play    PlayCmd          `cmd:"" help:"Play in the terminal with the mouse"`
	Games   GamesCmd         `cmd:"" help:"List the available games"`
	Deal    DealCmd          `cmd:"" help:"Shuffle, deal and print a board"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("solitaire"),
		kong.Description("Solitaire card games for the browser and the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
