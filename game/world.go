package game

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"galactic/collision"
	"galactic/entity"
	"galactic/geom"
	"galactic/pool"
)

// FrameStats describes one tick.
type FrameStats struct {
	// Tick number, starting at 1 after a reset
	Tick uint64

	// Reaped is the number of pooled objects returned this tick
	Reaped int

	// NewWave is true when a formation was spawned this tick
	NewWave bool

	// Kills is the number of enemies hit this tick
	Kills int

	// Score after this tick
	Score int

	// GameOver is true once the ship has been hit
	GameOver bool

	// Collision is the detector's report for this tick
	Collision collision.Stats
}

// World owns every object of a run: the ship, the three pools and the
// collision detector. It is driven one tick at a time and never touches
// devices or the screen.
type World struct {
	cfg Config
	log *zap.Logger
	rng *rand.Rand

	ship       *Ship
	shots      *pool.Pool[*Shot]
	enemies    *pool.Pool[*Enemy]
	enemyShots *pool.Pool[*Shot]
	detector   *collision.Detector

	tick  uint64
	score int
	wave  int
	over  bool
	last  FrameStats

	// Scratch space for Digest
	digest []byte
}

// NewWorld creates a world and spawns the first wave.
func NewWorld(cfg Config, log *zap.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	w := &World{
		cfg: cfg,
		log: log,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}

	var err error
	w.enemyShots, err = pool.New(cfg.Pools.EnemyShots, func() *Shot {
		return NewEnemyShot(cfg.EnemyShot, cfg.Height)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create enemy shot pool: %w", err)
	}
	w.shots, err = pool.New(cfg.Pools.Shots, func() *Shot {
		return NewPlayerShot(cfg.Shot, cfg.Height)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shot pool: %w", err)
	}
	w.enemies, err = pool.New(cfg.Pools.Enemies, func() *Enemy {
		return NewEnemy(cfg.Enemy, w.rng, w.enemyShots, cfg.EnemyShot.Speed)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create enemy pool: %w", err)
	}

	w.detector, err = collision.New(geom.Rect{Width: cfg.Width, Height: cfg.Height}, cfg.Quadtree)
	if err != nil {
		return nil, fmt.Errorf("failed to create collision detector: %w", err)
	}

	w.ship = NewShip(cfg.Ship, cfg.Width, cfg.Height, w.shots, cfg.Shot.Speed)
	w.digest = make([]byte, 0, 64*(1+w.shots.Cap()+w.enemies.Cap()+w.enemyShots.Cap()))

	log.Info("world created",
		zap.Float64("width", cfg.Width),
		zap.Float64("height", cfg.Height),
		zap.Int("shots", w.shots.Cap()),
		zap.Int("enemies", w.enemies.Cap()),
		zap.Int("enemy_shots", w.enemyShots.Cap()),
		zap.Int64("seed", cfg.Seed))

	w.Reset()
	return w, nil
}

// Reset starts a new run with the same seed: every pool is emptied, the
// ship returns to its start and the first wave is spawned.
func (w *World) Reset() {
	w.shots.Reset()
	w.enemies.Reset()
	w.enemyShots.Reset()
	w.ship.Reset()
	w.rng.Seed(w.cfg.Seed)

	w.tick = 0
	w.score = 0
	w.wave = 0
	w.over = false
	w.last = FrameStats{}

	w.spawnWave()
}

// spawnWave lays the formation out row by row. Rows after the first stack
// upward above the playfield and descend into view.
func (w *World) spawnWave() {
	f := w.cfg.Formation
	enemy := w.cfg.Enemy

	x := f.Left
	y := -enemy.Height
	spacer := y * f.RowSpacing
	for i := 1; i <= f.Count; i++ {
		w.enemies.Acquire(x, y, enemy.Speed)
		x += enemy.Width + f.Gap
		if i%f.Columns == 0 {
			x = f.Left
			y += spacer
		}
	}
	w.wave++

	w.log.Debug("wave spawned", zap.Int("wave", w.wave), zap.Int("enemies", w.enemies.Len()))
}

// Tick advances the world by one frame. Objects hit in the previous tick
// are reaped first, so a hit stays visible for exactly one rendered frame.
func (w *World) Tick(in Input) FrameStats {
	w.tick++
	stats := FrameStats{Tick: w.tick}

	stats.Reaped += w.shots.AdvanceAndReap()
	stats.Reaped += w.enemies.AdvanceAndReap()
	stats.Reaped += w.enemyShots.AdvanceAndReap()

	if body := w.ship.Body(); body.Alive {
		w.ship.Control(in)
		if w.ship.Advance() {
			body.Alive = false
		}
	}

	if w.enemies.Len() == 0 && !w.over {
		w.spawnWave()
		stats.NewWave = true
	}

	stats.Collision = w.detector.DetectAll(w.ship.Body(), w.shots, w.enemies, w.enemyShots)
	if stats.Collision.Skipped > 0 {
		w.log.Warn("malformed entities skipped", zap.Uint64("tick", w.tick), zap.Int("count", stats.Collision.Skipped))
	}

	for _, e := range w.enemies.Live() {
		if e.Body().Colliding {
			stats.Kills++
		}
	}
	w.score += stats.Kills * w.cfg.ScorePerHit

	if !w.over && w.ship.Body().Colliding {
		w.over = true
		w.log.Info("ship destroyed", zap.Uint64("tick", w.tick), zap.Int("score", w.score), zap.Int("wave", w.wave))
	}

	stats.Score = w.score
	stats.GameOver = w.over
	w.last = stats
	return stats
}

// Digest hashes the state of every live object in pool order. Two worlds
// built from the same config and fed the same inputs have equal digests.
func (w *World) Digest() uint64 {
	buf := w.digest[:0]
	buf = binary.LittleEndian.AppendUint64(buf, w.tick)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(w.score))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(w.wave))
	buf = appendBody(buf, w.ship.Body())
	for _, s := range w.shots.Live() {
		buf = appendBody(buf, s.Body())
	}
	for _, e := range w.enemies.Live() {
		buf = appendBody(buf, e.Body())
	}
	for _, s := range w.enemyShots.Live() {
		buf = appendBody(buf, s.Body())
	}
	w.digest = buf
	return xxhash.Sum64(buf)
}

func appendBody(buf []byte, e *entity.Entity) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(e.X))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(e.Y))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(e.Speed))

	var flags byte
	if e.Alive {
		flags |= 1
	}
	if e.Colliding {
		flags |= 2
	}
	return append(buf, byte(e.Kind), flags)
}

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// Ship returns the player ship.
func (w *World) Ship() *Ship { return w.ship }

// Shots returns the player shot pool.
func (w *World) Shots() *pool.Pool[*Shot] { return w.shots }

// Enemies returns the enemy pool.
func (w *World) Enemies() *pool.Pool[*Enemy] { return w.enemies }

// EnemyShots returns the enemy shot pool.
func (w *World) EnemyShots() *pool.Pool[*Shot] { return w.enemyShots }

// Detector returns the collision detector.
func (w *World) Detector() *collision.Detector { return w.detector }

// Score returns the current score.
func (w *World) Score() int { return w.score }

// Wave returns the number of waves spawned since the last reset.
func (w *World) Wave() int { return w.wave }

// GameOver reports whether the ship has been hit.
func (w *World) GameOver() bool { return w.over }

// Ticks returns the number of ticks since the last reset.
func (w *World) Ticks() uint64 { return w.tick }

// LastFrame returns the stats of the most recent tick.
func (w *World) LastFrame() FrameStats { return w.last }
