package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandFactoryIsDeterministic(t *testing.T) {
	a, b := randFactory(42), randFactory(42)
	for range 3 {
		ra, rb := a(), b()
		assert.Equal(t, ra.Float64(), rb.Float64())
	}

	first, second := randFactory(42)(), randFactory(42)
	second()
	assert.NotEqual(t, first.Float64(), second().Float64(), "each game gets its own stream")
}

func TestSeedOrRandom(t *testing.T) {
	seed := int64(7)
	assert.Equal(t, int64(7), seedOrRandom(&seed))
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solitaire.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
server {
  log_level = "warn"
}
games {
  default = "sandbox"
  files   = ["missing.hcl"]
}
`), 0o600))

	cfg, err := loadConfig(&Globals{Config: path, LogLevel: "debug"})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "sandbox", cfg.DefaultGame())

	registry, err := loadRegistry(cfg, newLogger(os.Stderr, cfg.Level()))
	require.NoError(t, err, "missing game files are skipped")
	assert.Equal(t, []string{"klondike", "sandbox"}, registry.Names())

	_, err = loadConfig(&Globals{Config: path, LogLevel: "loud"})
	assert.Error(t, err)
}
