package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	w, h := cfg.ScreenSize()
	assert.Equal(t, 600, w)
	assert.Equal(t, 480, h)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero scale", func(c *Config) { c.ScreenScale = 0 }},
		{"zero tps", func(c *Config) { c.TPS = 0 }},
		{"empty shot pool", func(c *Config) { c.Pools.Shots = 0 }},
		{"zero fire rate", func(c *Config) { c.Ship.FireRate = 0 }},
		{"fire chance above one", func(c *Config) { c.Enemy.FireChance = 1.5 }},
		{"no columns", func(c *Config) { c.Formation.Columns = 0 }},
		{"formation larger than pool", func(c *Config) { c.Formation.Count = c.Pools.Enemies + 1 }},
		{"flat enemy", func(c *Config) { c.Enemy.Height = 0 }},
		{"thin shot", func(c *Config) { c.Shot.Width = -5 }},
		{"quadtree depth", func(c *Config) { c.Quadtree.MaxDepth = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "galactic.yaml")
	data := []byte(`
width: 800
seed: 7
quadtree:
  max_objects: 4
enemy:
  fire_chance: 0
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, 800.0, cfg.Width)
	assert.Equal(t, def.Height, cfg.Height)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 4, cfg.Quadtree.MaxObjects)
	assert.Equal(t, def.Quadtree.MaxDepth, cfg.Quadtree.MaxDepth)
	assert.Zero(t, cfg.Enemy.FireChance)
	assert.Equal(t, def.Enemy.Speed, cfg.Enemy.Speed)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("width: [1, 2"), 0o644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("pools:\n  enemies: 0\n"), 0o644))
	_, err = LoadConfig(invalid)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
