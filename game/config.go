package game

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"galactic/quadtree"
)

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid game config")

// Config holds game configuration constants
type Config struct {
	// Width is the playfield width in pixels
	Width float64 `yaml:"width"`

	// Height is the playfield height in pixels
	Height float64 `yaml:"height"`

	// ScreenScale multiplies the playfield size to get the window size
	ScreenScale float64 `yaml:"screen_scale"`

	// TPS is the number of simulation ticks per second
	TPS int `yaml:"tps"`

	// Seed drives every random decision in the world
	Seed int64 `yaml:"seed"`

	// ScorePerHit is added for every enemy destroyed
	ScorePerHit int `yaml:"score_per_hit"`

	// Quadtree limits for the collision index
	Quadtree quadtree.Config `yaml:"quadtree"`

	// Pools holds the fixed capacity of each object pool
	Pools PoolConfig `yaml:"pools"`

	Ship      ShipConfig      `yaml:"ship"`
	Shot      ShotConfig      `yaml:"shot"`
	EnemyShot ShotConfig      `yaml:"enemy_shot"`
	Enemy     EnemyConfig     `yaml:"enemy"`
	Formation FormationConfig `yaml:"formation"`
}

// PoolConfig sizes the three pools.
type PoolConfig struct {
	Shots      int `yaml:"shots"`
	Enemies    int `yaml:"enemies"`
	EnemyShots int `yaml:"enemy_shots"`
}

// ShipConfig describes the player ship.
type ShipConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Speed in pixels per tick
	Speed float64 `yaml:"speed"`

	// FireRate is the minimum number of ticks between two volleys
	FireRate int `yaml:"fire_rate"`

	// LeftGun and RightGun are the x offsets the two shots leave from
	LeftGun  float64 `yaml:"left_gun"`
	RightGun float64 `yaml:"right_gun"`
}

// ShotConfig describes a projectile.
type ShotConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Speed is subtracted from y every tick; negative values move down
	Speed float64 `yaml:"speed"`
}

// EnemyConfig describes a formation enemy.
type EnemyConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Speed is the initial descent and sway speed
	Speed float64 `yaml:"speed"`

	// PatrolSpeed replaces Speed once the enemy reaches its bottom edge
	PatrolSpeed float64 `yaml:"patrol_speed"`

	// Sway is how far the enemy moves left and right of its spawn column
	Sway float64 `yaml:"sway"`

	// Descent is how far below the spawn row the enemy stops descending
	Descent float64 `yaml:"descent"`

	// Lift is how far the enemy moves back up when it stops descending
	Lift float64 `yaml:"lift"`

	// FireChance is the per-tick probability of firing, in [0, 1]
	FireChance float64 `yaml:"fire_chance"`
}

// FormationConfig lays out a wave of enemies.
type FormationConfig struct {
	// Count is the number of enemies in a wave
	Count int `yaml:"count"`

	// Columns is the number of enemies per row
	Columns int `yaml:"columns"`

	// Left is the x of the first column
	Left float64 `yaml:"left"`

	// Gap is the horizontal space between two enemies
	Gap float64 `yaml:"gap"`

	// RowSpacing is the row step in enemy heights; rows stack upward off-screen
	RowSpacing float64 `yaml:"row_spacing"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Width:       600,
		Height:      480,
		ScreenScale: 1,
		TPS:         60,
		Seed:        1,
		ScorePerHit: 10,
		Quadtree:    quadtree.DefaultConfig(),
		Pools: PoolConfig{
			Shots:      30,
			Enemies:    30,
			EnemyShots: 50,
		},
		Ship: ShipConfig{
			Width:    38,
			Height:   38,
			Speed:    3,
			FireRate: 15,
			LeftGun:  6,
			RightGun: 33,
		},
		Shot: ShotConfig{
			Width:  5,
			Height: 10,
			Speed:  3,
		},
		EnemyShot: ShotConfig{
			Width:  6,
			Height: 6,
			Speed:  -2.5,
		},
		Enemy: EnemyConfig{
			Width:       32,
			Height:      32,
			Speed:       2,
			PatrolSpeed: 1.5,
			Sway:        90,
			Descent:     140,
			Lift:        5,
			FireChance:  0.01,
		},
		Formation: FormationConfig{
			Count:      18,
			Columns:    6,
			Left:       100,
			Gap:        25,
			RowSpacing: 1.5,
		},
	}
}

// LoadConfig reads a YAML file over the defaults. Keys missing from the
// file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every value the world depends on.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: playfield %vx%v", ErrInvalidConfig, c.Width, c.Height)
	case c.ScreenScale <= 0:
		return fmt.Errorf("%w: screen scale %v", ErrInvalidConfig, c.ScreenScale)
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps %d", ErrInvalidConfig, c.TPS)
	case c.Pools.Shots <= 0 || c.Pools.Enemies <= 0 || c.Pools.EnemyShots <= 0:
		return fmt.Errorf("%w: pool sizes %+v", ErrInvalidConfig, c.Pools)
	case c.Ship.FireRate <= 0:
		return fmt.Errorf("%w: fire rate %d", ErrInvalidConfig, c.Ship.FireRate)
	case c.Enemy.FireChance < 0 || c.Enemy.FireChance > 1:
		return fmt.Errorf("%w: fire chance %v", ErrInvalidConfig, c.Enemy.FireChance)
	case c.Formation.Columns <= 0 || c.Formation.Count <= 0:
		return fmt.Errorf("%w: formation %d in %d columns", ErrInvalidConfig, c.Formation.Count, c.Formation.Columns)
	case c.Formation.Count > c.Pools.Enemies:
		return fmt.Errorf("%w: formation of %d does not fit %d enemy slots",
			ErrInvalidConfig, c.Formation.Count, c.Pools.Enemies)
	}

	sizes := map[string][2]float64{
		"ship":       {c.Ship.Width, c.Ship.Height},
		"shot":       {c.Shot.Width, c.Shot.Height},
		"enemy shot": {c.EnemyShot.Width, c.EnemyShot.Height},
		"enemy":      {c.Enemy.Width, c.Enemy.Height},
	}
	for name, size := range sizes {
		if size[0] <= 0 || size[1] <= 0 {
			return fmt.Errorf("%w: %s size %vx%v", ErrInvalidConfig, name, size[0], size[1])
		}
	}

	if err := c.Quadtree.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ScreenSize returns the window size in pixels.
func (c Config) ScreenSize() (int, int) {
	return int(c.Width * c.ScreenScale), int(c.Height * c.ScreenScale)
}
