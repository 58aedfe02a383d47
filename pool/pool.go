// Package pool implements a fixed-capacity arena of reusable game objects.
//
// Items are kept in a single slice split by a boundary index: items[:live]
// are alive, items[live:] are dead. Spawning moves the boundary right and
// reaping swaps the reaped item to the boundary and moves it left, so
// neither operation scans or allocates.
package pool

import (
	"errors"
	"fmt"

	"galactic/entity"
	"galactic/geom"
)

// ErrInvalidCapacity is returned when a pool is created with capacity <= 0.
var ErrInvalidCapacity = errors.New("pool capacity must be positive")

// Item is the behaviour a pooled object provides.
type Item interface {
	// Body returns the entity the item owns for its whole lifetime
	Body() *entity.Entity

	// Spawn sets the item up at the given position
	Spawn(x, y, speed float64)

	// Advance moves the item one tick; true means it is done and should be reaped
	Advance() bool

	// Clear resets the item to its dead state
	Clear()
}

// Spawn holds the parameters of a single acquire.
type Spawn struct {
	X, Y  float64
	Speed float64
}

// Stats counts pool activity since creation.
type Stats struct {
	Acquired  uint64
	Exhausted uint64
	Rejected  uint64
	Reaped    uint64
}

// Pool is a fixed-capacity ring of reusable items of one kind.
type Pool[T Item] struct {
	items []T
	live  int
	stats Stats
}

// New populates a pool with capacity items built by factory, all dead.
func New[T Item](capacity int, factory func() T) (*Pool[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	items := make([]T, capacity)
	for i := range items {
		item := factory()
		body := item.Body()
		if body.Width <= 0 || body.Height <= 0 {
			return nil, fmt.Errorf("%w: %s slot sized %vx%v",
				entity.ErrInvalidGeometry, body.Kind, body.Width, body.Height)
		}
		item.Clear()
		items[i] = item
	}

	return &Pool[T]{items: items}, nil
}

// Acquire spawns the first dead item. When the pool is full or the spawn
// position is not finite, nothing changes and ok is false.
func (p *Pool[T]) Acquire(x, y, speed float64) (item T, ok bool) {
	if p.live == len(p.items) {
		p.stats.Exhausted++
		return item, false
	}
	if !p.spawnable(p.live, Spawn{X: x, Y: y, Speed: speed}) {
		p.stats.Rejected++
		return item, false
	}
	return p.promote(Spawn{X: x, Y: y, Speed: speed}), true
}

// AcquirePair spawns two items or none. Both spawns are checked before
// either slot is touched, so a pair never half-succeeds.
func (p *Pool[T]) AcquirePair(a, b Spawn) bool {
	if p.Free() < 2 {
		p.stats.Exhausted++
		return false
	}
	if !p.spawnable(p.live, a) || !p.spawnable(p.live+1, b) {
		p.stats.Rejected++
		return false
	}
	p.promote(a)
	p.promote(b)
	return true
}

func (p *Pool[T]) spawnable(slot int, s Spawn) bool {
	body := p.items[slot].Body()
	r := geom.Rect{X: s.X, Y: s.Y, Width: body.Width, Height: body.Height}
	return r.Valid() && geom.Finite(s.Speed)
}

func (p *Pool[T]) promote(s Spawn) T {
	item := p.items[p.live]
	item.Spawn(s.X, s.Y, s.Speed)
	p.live++
	p.stats.Acquired++
	return item
}

// Live returns the live prefix. The slice aliases pool storage and is only
// valid until the next Acquire or AdvanceAndReap.
func (p *Pool[T]) Live() []T {
	return p.items[:p.live]
}

// AppendBodies appends the entity of every live item, in pool order.
func (p *Pool[T]) AppendBodies(dst []*entity.Entity) []*entity.Entity {
	for _, item := range p.items[:p.live] {
		dst = append(dst, item.Body())
	}
	return dst
}

// AdvanceAndReap advances every live item once. Items that report done are
// cleared and swapped behind the boundary. It returns the number reaped.
func (p *Pool[T]) AdvanceAndReap() int {
	reaped := 0
	i := 0
	for i < p.live {
		if !p.items[i].Advance() {
			i++
			continue
		}

		p.items[i].Clear()
		p.live--
		// The item swapped in from the tail has not advanced yet, so i stays put.
		p.items[i], p.items[p.live] = p.items[p.live], p.items[i]
		reaped++
	}
	p.stats.Reaped += uint64(reaped)
	return reaped
}

// Reset clears every item and empties the pool.
func (p *Pool[T]) Reset() {
	for i := 0; i < p.live; i++ {
		p.items[i].Clear()
	}
	p.live = 0
}

// Len returns the number of live items.
func (p *Pool[T]) Len() int { return p.live }

// Cap returns the fixed capacity.
func (p *Pool[T]) Cap() int { return len(p.items) }

// Free returns the number of dead slots.
func (p *Pool[T]) Free() int { return len(p.items) - p.live }

// Stats returns the activity counters.
func (p *Pool[T]) Stats() Stats { return p.stats }
