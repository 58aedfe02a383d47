package game

import (
	"math/rand"

	"galactic/entity"
	"galactic/pool"
)

// Enemy descends from its spawn row, then sways between two patrol edges
// and fires at random.
type Enemy struct {
	body *entity.Entity
	cfg  EnemyConfig

	// Velocity for the current leg
	speedX, speedY float64

	// Patrol limits fixed at spawn
	leftEdge, rightEdge, bottomEdge float64

	// Shared with the world so every random draw comes from one seeded source
	rng *rand.Rand

	// Pool the enemy's guns draw from and the speed shots leave at
	shots     *pool.Pool[*Shot]
	shotSpeed float64
}

// NewEnemy creates a dead enemy firing into shots.
func NewEnemy(cfg EnemyConfig, rng *rand.Rand, shots *pool.Pool[*Shot], shotSpeed float64) *Enemy {
	return &Enemy{
		body:      entity.New(entity.KindEnemy, entity.KindShot, cfg.Width, cfg.Height),
		cfg:       cfg,
		rng:       rng,
		shots:     shots,
		shotSpeed: shotSpeed,
	}
}

// Body returns the enemy entity.
func (e *Enemy) Body() *entity.Entity { return e.body }

// Spawn places the enemy and fixes its patrol edges around the spawn point.
func (e *Enemy) Spawn(x, y, speed float64) {
	e.body.Place(x, y, speed)
	e.speedX = 0
	e.speedY = speed
	e.leftEdge = x - e.cfg.Sway
	e.rightEdge = x + e.cfg.Sway
	e.bottomEdge = y + e.cfg.Descent
}

// Clear resets the enemy for reuse in pooling.
func (e *Enemy) Clear() {
	e.body.Clear()
	e.speedX = 0
	e.speedY = 0
	e.leftEdge = 0
	e.rightEdge = 0
	e.bottomEdge = 0
}

// Advance moves the enemy one step along its patrol. An enemy is done only
// once it has been hit.
func (e *Enemy) Advance() bool {
	b := e.body
	b.X += e.speedX
	b.Y += e.speedY

	switch {
	case b.X <= e.leftEdge:
		e.speedX = b.Speed
	case b.X >= e.rightEdge+b.Width:
		e.speedX = -b.Speed
	case b.Y >= e.bottomEdge:
		b.Speed = e.cfg.PatrolSpeed
		e.speedY = 0
		b.Y -= e.cfg.Lift
		e.speedX = -b.Speed
	}

	if b.Colliding {
		return true
	}

	if float64(e.rng.Intn(101))/100 < e.cfg.FireChance {
		e.fire()
	}
	return false
}

// fire drops a shot from the enemy's bottom centre. A full pool swallows it.
func (e *Enemy) fire() {
	b := e.body
	e.shots.Acquire(b.X+b.Width/2, b.Y+b.Height, e.shotSpeed)
}

// Velocity returns the current per-tick movement.
func (e *Enemy) Velocity() (float64, float64) {
	return e.speedX, e.speedY
}
