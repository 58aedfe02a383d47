package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galactic/entity"
	"galactic/pool"
)

func newShotPool(t *testing.T, capacity int, factory func() *Shot) *pool.Pool[*Shot] {
	t.Helper()
	p, err := pool.New(capacity, factory)
	require.NoError(t, err)
	return p
}

func newTestShip(t *testing.T) (*Ship, *pool.Pool[*Shot]) {
	t.Helper()
	cfg := DefaultConfig()
	shots := newShotPool(t, cfg.Pools.Shots, func() *Shot { return NewPlayerShot(cfg.Shot, cfg.Height) })
	ship := NewShip(cfg.Ship, cfg.Width, cfg.Height, shots, cfg.Shot.Speed)
	ship.Reset()
	return ship, shots
}

func TestShipStartsNearBottomMiddle(t *testing.T) {
	ship, _ := newTestShip(t)
	b := ship.Body()

	assert.Equal(t, 262.0, b.X)
	assert.Equal(t, 436.0, b.Y)
	assert.True(t, b.Alive)
	assert.Equal(t, entity.KindShip, b.Kind)
	assert.Equal(t, entity.KindEnemyShot, b.CollidesWith)
}

func TestShipMovesOneDirectionPerTick(t *testing.T) {
	tests := []struct {
		name   string
		in     Input
		dx, dy float64
	}{
		{"left wins over right", Input{Left: true, Right: true}, -3, 0},
		{"right wins over up", Input{Right: true, Up: true}, 3, 0},
		{"up wins over down", Input{Up: true, Down: true}, 0, -3},
		{"down", Input{Down: true}, 0, 3},
		{"idle", Input{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ship, _ := newTestShip(t)
			b := ship.Body()
			b.Y = 400
			x, y := b.X, b.Y

			ship.Control(tt.in)
			assert.False(t, ship.Advance())
			assert.Equal(t, x+tt.dx, b.X)
			assert.Equal(t, y+tt.dy, b.Y)
		})
	}
}

func TestShipStaysInItsZone(t *testing.T) {
	ship, _ := newTestShip(t)
	b := ship.Body()

	b.X = 1
	ship.Control(Input{Left: true})
	ship.Advance()
	assert.Equal(t, 0.0, b.X)

	b.X = 600 - 38 - 1
	ship.Control(Input{Right: true})
	ship.Advance()
	assert.Equal(t, 562.0, b.X)

	b.Y = 361
	ship.Control(Input{Up: true})
	ship.Advance()
	assert.Equal(t, 360.0, b.Y)

	b.Y = 441
	ship.Control(Input{Down: true})
	ship.Advance()
	assert.Equal(t, 442.0, b.Y)
}

func TestShipFiresPairsAtFireRate(t *testing.T) {
	ship, shots := newTestShip(t)
	ship.Control(Input{Fire: true})

	for i := 0; i < 14; i++ {
		ship.Advance()
	}
	assert.Zero(t, shots.Len())

	ship.Advance()
	require.Equal(t, 2, shots.Len())
	b := ship.Body()
	live := shots.Live()
	assert.Equal(t, b.X+6, live[0].Body().X)
	assert.Equal(t, b.X+33, live[1].Body().X)
	assert.Equal(t, b.Y, live[0].Body().Y)
	assert.Equal(t, 3.0, live[0].Body().Speed)

	for i := 0; i < 15; i++ {
		ship.Advance()
	}
	assert.Equal(t, 4, shots.Len())
	assert.Equal(t, 2, ship.Volleys())
}

func TestShipFiresNothingWhenOneSlotIsLeft(t *testing.T) {
	cfg := DefaultConfig()
	shots := newShotPool(t, 3, func() *Shot { return NewPlayerShot(cfg.Shot, cfg.Height) })
	ship := NewShip(cfg.Ship, cfg.Width, cfg.Height, shots, cfg.Shot.Speed)
	ship.Reset()
	ship.Control(Input{Fire: true})

	for i := 0; i < 30; i++ {
		ship.Advance()
	}
	assert.Equal(t, 2, shots.Len())
	assert.Equal(t, 1, ship.Volleys())
	assert.Positive(t, shots.Stats().Exhausted)
}

func TestHitShipIsDone(t *testing.T) {
	ship, shots := newTestShip(t)
	b := ship.Body()
	b.Colliding = true
	x, y := b.X, b.Y

	ship.Control(Input{Left: true, Fire: true})
	for i := 0; i < 20; i++ {
		assert.True(t, ship.Advance())
	}
	assert.Equal(t, x, b.X)
	assert.Equal(t, y, b.Y)
	assert.Zero(t, shots.Len())
}

func TestPlayerShotLeavesThroughTop(t *testing.T) {
	shot := NewPlayerShot(ShotConfig{Width: 5, Height: 10}, 480)
	shot.Spawn(10, -4, 3)

	assert.False(t, shot.Advance(), "y=-7 is still on screen")
	assert.True(t, shot.Advance(), "y=-10 has left")
}

func TestEnemyShotLeavesThroughBottom(t *testing.T) {
	shot := NewEnemyShot(ShotConfig{Width: 6, Height: 6}, 480)
	shot.Spawn(10, 475, -2.5)

	assert.False(t, shot.Advance())
	assert.Equal(t, 477.5, shot.Body().Y)
	assert.True(t, shot.Advance())
}

func TestCollidingShotIsDone(t *testing.T) {
	shot := NewPlayerShot(ShotConfig{Width: 5, Height: 10}, 480)
	shot.Spawn(10, 200, 3)
	shot.Body().Colliding = true

	assert.True(t, shot.Advance())
}

func newTestEnemy(t *testing.T, chance float64) (*Enemy, *pool.Pool[*Shot]) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Enemy.FireChance = chance
	shots := newShotPool(t, cfg.Pools.EnemyShots, func() *Shot { return NewEnemyShot(cfg.EnemyShot, cfg.Height) })
	return NewEnemy(cfg.Enemy, rand.New(rand.NewSource(1)), shots, cfg.EnemyShot.Speed), shots
}

func TestEnemyPatrol(t *testing.T) {
	enemy, shots := newTestEnemy(t, 0)
	enemy.Spawn(100, -32, 2)
	b := enemy.Body()

	// Descends until it reaches 140 below its spawn row.
	for i := 0; i < 69; i++ {
		require.False(t, enemy.Advance())
	}
	assert.Equal(t, 106.0, b.Y)
	vx, vy := enemy.Velocity()
	assert.Zero(t, vx)
	assert.Equal(t, 2.0, vy)

	// Then lifts, slows down and turns left.
	enemy.Advance()
	assert.Equal(t, 103.0, b.Y)
	assert.Equal(t, 1.5, b.Speed)
	vx, vy = enemy.Velocity()
	assert.Equal(t, -1.5, vx)
	assert.Zero(t, vy)

	// Sways to the left edge and turns back.
	for i := 0; i < 60; i++ {
		enemy.Advance()
	}
	assert.Equal(t, 10.0, b.X)
	vx, _ = enemy.Velocity()
	assert.Equal(t, 1.5, vx)
	assert.Equal(t, 103.0, b.Y)

	assert.Zero(t, shots.Len())
}

func TestEnemyFiresFromBottomCentre(t *testing.T) {
	enemy, shots := newTestEnemy(t, 1)
	enemy.Spawn(100, 50, 2)

	for i := 0; i < 10 && shots.Len() == 0; i++ {
		enemy.Advance()
	}
	require.Positive(t, shots.Len())

	b := enemy.Body()
	shot := shots.Live()[0].Body()
	assert.Equal(t, b.X+16, shot.X)
	assert.Equal(t, b.Y+32, shot.Y)
	assert.Equal(t, -2.5, shot.Speed)
	assert.Equal(t, entity.KindEnemyShot, shot.Kind)
}

func TestHitEnemyIsDoneAndHoldsFire(t *testing.T) {
	enemy, shots := newTestEnemy(t, 1)
	enemy.Spawn(100, 50, 2)
	enemy.Body().Colliding = true

	assert.True(t, enemy.Advance())
	assert.Zero(t, shots.Len())
}

func TestEnemyClear(t *testing.T) {
	enemy, _ := newTestEnemy(t, 0)
	enemy.Spawn(100, 50, 2)
	enemy.Advance()
	enemy.Clear()

	b := enemy.Body()
	assert.False(t, b.Alive)
	assert.Zero(t, b.X)
	assert.Zero(t, b.Y)
	vx, vy := enemy.Velocity()
	assert.Zero(t, vx)
	assert.Zero(t, vy)
	assert.Equal(t, 32.0, b.Width)
}
