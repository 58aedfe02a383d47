package pool

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galactic/entity"
)

// drifter falls upward by its speed and is done once above y=0 or hit.
type drifter struct {
	body     *entity.Entity
	advanced int
}

func newDrifter() *drifter {
	return &drifter{body: entity.New(entity.KindShot, entity.KindEnemy, 2, 4)}
}

func (d *drifter) Body() *entity.Entity { return d.body }

func (d *drifter) Spawn(x, y, speed float64) { d.body.Place(x, y, speed) }

func (d *drifter) Advance() bool {
	d.advanced++
	d.body.Y -= d.body.Speed
	return d.body.Colliding || d.body.Y <= -d.body.Height
}

func (d *drifter) Clear() { d.body.Clear() }

func newTestPool(t *testing.T, capacity int) *Pool[*drifter] {
	t.Helper()
	p, err := New(capacity, newDrifter)
	require.NoError(t, err)
	return p
}

func assertPartitioned(t *testing.T, p *Pool[*drifter]) {
	t.Helper()
	require.LessOrEqual(t, p.Len(), p.Cap())
	for i, item := range p.items {
		if i < p.live {
			require.True(t, item.body.Alive, "slot %d inside live prefix is dead", i)
		} else {
			require.False(t, item.body.Alive, "slot %d inside dead suffix is alive", i)
		}
	}
}

func TestNewRejectsBadCapacity(t *testing.T) {
	for _, capacity := range []int{0, -3} {
		_, err := New(capacity, newDrifter)
		assert.ErrorIs(t, err, ErrInvalidCapacity)
	}
}

func TestNewRejectsZeroSizedSlots(t *testing.T) {
	_, err := New(2, func() *drifter {
		return &drifter{body: entity.New(entity.KindShot, entity.KindEnemy, 0, 4)}
	})
	assert.ErrorIs(t, err, entity.ErrInvalidGeometry)
}

func TestNewStartsDead(t *testing.T) {
	p := newTestPool(t, 5)
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 5, p.Free())
	assert.Empty(t, p.Live())
	assertPartitioned(t, p)
}

func TestAcquire(t *testing.T) {
	p := newTestPool(t, 2)

	first, ok := p.Acquire(10, 20, 3)
	require.True(t, ok)
	assert.True(t, first.body.Alive)
	assert.Equal(t, 10.0, first.body.X)
	assert.Equal(t, 20.0, first.body.Y)
	assert.Equal(t, 3.0, first.body.Speed)

	_, ok = p.Acquire(11, 20, 3)
	require.True(t, ok)

	_, ok = p.Acquire(12, 20, 3)
	assert.False(t, ok, "a full pool degrades to a no-op")
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, uint64(1), p.Stats().Exhausted)
	assertPartitioned(t, p)
}

func TestAcquireRejectsInvalidGeometry(t *testing.T) {
	p := newTestPool(t, 3)

	_, ok := p.Acquire(math.NaN(), 0, 1)
	assert.False(t, ok)
	_, ok = p.Acquire(0, math.Inf(1), 1)
	assert.False(t, ok)
	_, ok = p.Acquire(0, 0, math.NaN())
	assert.False(t, ok)

	assert.Equal(t, 0, p.Len())
	assert.Equal(t, uint64(3), p.Stats().Rejected)
	assertPartitioned(t, p)
}

func TestAcquirePairIsAtomic(t *testing.T) {
	p := newTestPool(t, 3)
	_, ok := p.Acquire(0, 50, 1)
	require.True(t, ok)
	_, ok = p.Acquire(0, 50, 1)
	require.True(t, ok)

	before := make([]entity.Entity, p.Cap())
	for i, item := range p.items {
		before[i] = *item.body
	}

	ok = p.AcquirePair(Spawn{X: 1, Y: 1, Speed: 3}, Spawn{X: 2, Y: 2, Speed: 3})
	assert.False(t, ok, "one free slot must not satisfy a pair")
	for i, item := range p.items {
		assert.Equal(t, before[i], *item.body, "slot %d changed", i)
	}
	assert.Equal(t, 2, p.Len())
}

func TestAcquirePairRejectsWhenEitherSpawnIsInvalid(t *testing.T) {
	p := newTestPool(t, 4)

	ok := p.AcquirePair(Spawn{X: 1, Y: 1, Speed: 3}, Spawn{X: math.NaN(), Y: 2, Speed: 3})
	assert.False(t, ok)
	assert.Equal(t, 0, p.Len())
	assertPartitioned(t, p)

	ok = p.AcquirePair(Spawn{X: 1, Y: 1, Speed: 3}, Spawn{X: 2, Y: 2, Speed: 3})
	require.True(t, ok)
	assert.Equal(t, 2, p.Len())
	live := p.Live()
	assert.Equal(t, 1.0, live[0].body.X)
	assert.Equal(t, 2.0, live[1].body.X)
}

func TestAdvanceAndReapAdvancesEachLiveItemOnce(t *testing.T) {
	p := newTestPool(t, 4)
	for i := 0; i < 4; i++ {
		_, ok := p.Acquire(float64(i), 10, 1)
		require.True(t, ok)
	}
	// Slots 0 and 2 are hit and get reaped; the swapped-in tails must still advance.
	p.items[0].body.Colliding = true
	p.items[2].body.Colliding = true

	reaped := p.AdvanceAndReap()

	assert.Equal(t, 2, reaped)
	assert.Equal(t, 2, p.Len())
	for _, item := range p.items {
		assert.Equal(t, 1, item.advanced, "item at x=%v", item.body.X)
	}
	for _, item := range p.Live() {
		assert.Equal(t, 9.0, item.body.Y)
	}
	assertPartitioned(t, p)
}

func TestAdvanceAndReapFreesSlotsForReuse(t *testing.T) {
	p := newTestPool(t, 1)
	_, ok := p.Acquire(0, 1, 5)
	require.True(t, ok)

	assert.Equal(t, 1, p.AdvanceAndReap())
	assert.Equal(t, 0, p.Len())

	_, ok = p.Acquire(0, 100, 5)
	assert.True(t, ok)
}

func TestAppendBodies(t *testing.T) {
	p := newTestPool(t, 3)
	a, _ := p.Acquire(1, 10, 1)
	b, _ := p.Acquire(2, 10, 1)

	bodies := p.AppendBodies(nil)
	assert.Equal(t, []*entity.Entity{a.body, b.body}, bodies)
}

func TestReset(t *testing.T) {
	p := newTestPool(t, 3)
	p.Acquire(1, 10, 1)
	p.Acquire(2, 10, 1)

	p.Reset()

	assert.Equal(t, 0, p.Len())
	assertPartitioned(t, p)
}

func TestPoolInvariantUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := newTestPool(t, 16)

	for step := 0; step < 5000; step++ {
		switch rng.Intn(4) {
		case 0, 1:
			p.Acquire(rng.Float64()*100, rng.Float64()*50, rng.Float64()*10)
		case 2:
			p.AcquirePair(
				Spawn{X: rng.Float64() * 100, Y: rng.Float64() * 50, Speed: 2},
				Spawn{X: rng.Float64() * 100, Y: rng.Float64() * 50, Speed: 2},
			)
		case 3:
			for _, item := range p.Live() {
				if rng.Intn(5) == 0 {
					item.body.Colliding = true
				}
			}
			p.AdvanceAndReap()
		}
		assertPartitioned(t, p)
	}
}

func TestAcquireAndReapDoNotAllocate(t *testing.T) {
	p := newTestPool(t, 8)
	allocs := testing.AllocsPerRun(100, func() {
		for i := 0; i < 8; i++ {
			p.Acquire(1, 1, 10)
		}
		p.AdvanceAndReap()
	})
	assert.Zero(t, allocs)
}
