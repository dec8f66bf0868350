package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/solitaire/internal/server"
)

// ServeCmd runs the WebSocket server.
type ServeCmd struct {
	Addr string `short:"a" help:"Address to bind to (overrides config)"`
	Port int    `short:"p" help:"Port to listen on (overrides config)"`
	Game string `short:"g" help:"Game dealt to new connections (overrides config)"`
	Seed *int64 `help:"Deterministic RNG seed for shuffling (optional)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.Game != "" {
		cfg.Games.Default = c.Game
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(os.Stderr, cfg.Level())

	registry, err := loadRegistry(cfg, logger)
	if err != nil {
		return err
	}
	if _, err := registry.Lookup(cfg.DefaultGame()); err != nil {
		return fmt.Errorf("default game: %w", err)
	}

	seed := seedOrRandom(c.Seed)
	logger.Info("Starting solitaire server",
		"addr", cfg.GetServerAddress(),
		"game", cfg.DefaultGame(),
		"games", len(registry.Names()),
		"seed", seed)

	clock := quartz.NewReal()
	srv := server.NewServer(cfg.GetServerAddress(), registry, logger,
		server.WithDefaultGame(cfg.DefaultGame()),
		server.WithGeometry(cfg.Geometry()),
		server.WithClock(clock),
		server.WithRandFactory(randFactory(seed)),
	)

	sigCtx, cancel := signalContext(logger)
	defer cancel()
	grp, ctx := errgroup.WithContext(sigCtx)

	grp.Go(srv.Start)

	grp.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	grp.Go(func() error {
		readyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		url := "http://" + cfg.GetServerAddress()
		if err := server.WaitForHealthy(readyCtx, clock, url); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				logger.Warn("Server did not report healthy", "url", url)
			}
			return nil
		}
		logger.Info("Server ready", "url", url, "ws", "ws://"+cfg.GetServerAddress()+"/ws")
		return nil
	})

	return grp.Wait()
}
