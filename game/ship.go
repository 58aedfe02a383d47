package game

import (
	"galactic/entity"
	"galactic/pool"
)

// Ship is the player ship. It moves in one direction per tick and fires a
// pair of shots on a fixed cadence.
type Ship struct {
	body *entity.Entity
	cfg  ShipConfig

	// Shot pool the guns draw from and the speed shots leave at
	shots     *pool.Pool[*Shot]
	shotSpeed float64

	// Start position and movement limits
	startX, startY float64
	minY           float64
	maxX, maxY     float64

	// Ticks since the last volley
	counter int

	// Controls for the current tick
	input Input

	// Volleys fired since the last reset
	volleys int
}

// NewShip creates a ship confined to the bottom quarter of a width x height playfield.
func NewShip(cfg ShipConfig, width, height float64, shots *pool.Pool[*Shot], shotSpeed float64) *Ship {
	return &Ship{
		body:      entity.New(entity.KindShip, entity.KindEnemyShot, cfg.Width, cfg.Height),
		cfg:       cfg,
		shots:     shots,
		shotSpeed: shotSpeed,
		startX:    width/2 - cfg.Width,
		startY:    height/4*3 + cfg.Height*2,
		minY:      height / 4 * 3,
		maxX:      width - cfg.Width,
		maxY:      height - cfg.Height,
	}
}

// Body returns the ship entity.
func (s *Ship) Body() *entity.Entity { return s.body }

// Reset puts the ship back at its start position, undamaged.
func (s *Ship) Reset() {
	s.body.Place(s.startX, s.startY, s.cfg.Speed)
	s.counter = 0
	s.volleys = 0
	s.input = Input{}
}

// Control sets the input used by the next Advance.
func (s *Ship) Control(in Input) {
	s.input = in
}

// Advance moves and fires the ship. A hit ship no longer moves and reports done.
func (s *Ship) Advance() bool {
	b := s.body
	if b.Colliding {
		return true
	}

	s.counter++

	// One direction per tick: left, then right, then up, then down.
	switch {
	case s.input.Left:
		b.X = max(b.X-b.Speed, 0)
	case s.input.Right:
		b.X = min(b.X+b.Speed, s.maxX)
	case s.input.Up:
		b.Y = max(b.Y-b.Speed, s.minY)
	case s.input.Down:
		b.Y = min(b.Y+b.Speed, s.maxY)
	}

	if s.input.Fire && s.counter >= s.cfg.FireRate {
		s.fire()
		s.counter = 0
	}
	return false
}

// fire launches both guns or neither.
func (s *Ship) fire() {
	left := pool.Spawn{X: s.body.X + s.cfg.LeftGun, Y: s.body.Y, Speed: s.shotSpeed}
	right := pool.Spawn{X: s.body.X + s.cfg.RightGun, Y: s.body.Y, Speed: s.shotSpeed}
	if s.shots.AcquirePair(left, right) {
		s.volleys++
	}
}

// Volleys returns the number of shot pairs fired since the last reset.
func (s *Ship) Volleys() int { return s.volleys }
