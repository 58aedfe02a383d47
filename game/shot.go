package game

import "galactic/entity"

// Shot is a projectile travelling straight up or down. Player shots carry
// a positive speed and leave through the top; enemy shots carry a negative
// speed and leave through the bottom.
type Shot struct {
	body *entity.Entity

	// Playfield height, the exit line for downward shots
	floor float64
}

// NewPlayerShot creates a dead shot that hits enemies.
func NewPlayerShot(cfg ShotConfig, floor float64) *Shot {
	return &Shot{
		body:  entity.New(entity.KindShot, entity.KindEnemy, cfg.Width, cfg.Height),
		floor: floor,
	}
}

// NewEnemyShot creates a dead shot that hits the ship.
func NewEnemyShot(cfg ShotConfig, floor float64) *Shot {
	return &Shot{
		body:  entity.New(entity.KindEnemyShot, entity.KindShip, cfg.Width, cfg.Height),
		floor: floor,
	}
}

// Body returns the shot entity.
func (s *Shot) Body() *entity.Entity { return s.body }

// Spawn launches the shot from x, y.
func (s *Shot) Spawn(x, y, speed float64) { s.body.Place(x, y, speed) }

// Clear resets the shot for reuse in pooling.
func (s *Shot) Clear() { s.body.Clear() }

// Advance moves the shot. It is done once it has hit something or left the playfield.
func (s *Shot) Advance() bool {
	b := s.body
	b.Y -= b.Speed

	switch {
	case b.Colliding:
		return true
	case b.Speed >= 0:
		return b.Y <= -b.Height
	default:
		return b.Y >= s.floor
	}
}
