package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/lox/solitaire/internal/randutil"
	"github.com/lox/solitaire/internal/rules"
	"github.com/lox/solitaire/internal/server"
	"github.com/lox/solitaire/internal/shuffle"
)

// loadConfig reads the config file and applies flag overrides.
func loadConfig(g *Globals) (*server.ServerConfig, error) {
	cfg, err := server.LoadServerConfig(g.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if g.LogLevel != "" {
		cfg.Server.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

// loadRegistry returns the built-in games plus those in the configured
// files. Bad files are skipped.
func loadRegistry(cfg *server.ServerConfig, logger *log.Logger) (*rules.Registry, error) {
	registry, err := rules.DefaultRegistry(logger)
	if err != nil {
		return nil, err
	}
	if files := cfg.GameFiles(); len(files) > 0 {
		loaded := registry.LoadFiles(files)
		logger.Info("Loaded game files", "loaded", loaded, "configured", len(files))
	}
	return registry, nil
}

// seedOrRandom returns *seed, or a fresh seed when none was given.
func seedOrRandom(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return randutil.Seed()
}

// randFactory derives a generator per game from one seeded source.
func randFactory(seed int64) func() shuffle.Source {
	var mu sync.Mutex
	master := randutil.New(seed)
	return func() shuffle.Source {
		mu.Lock()
		defer mu.Unlock()
		return randutil.New(master.Int64())
	}
}

// signalContext is cancelled on interrupt or terminate.
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down gracefully", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
