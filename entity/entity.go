// Package entity defines the moving rectangle every pooled game object wraps.
package entity

import (
	"errors"
	"fmt"
	"sync/atomic"

	"galactic/geom"
)

// ErrInvalidGeometry is returned for a non-positive size or a non-finite coordinate.
var ErrInvalidGeometry = errors.New("invalid entity geometry")

// ID is a unique identifier for an entity slot.
// IDs are assigned once when the slot is created and survive recycling.
type ID uint64

// InvalidID represents an unset entity reference.
const InvalidID ID = 0

var nextID uint64

// newID creates a new unique entity ID.
func newID() ID {
	return ID(atomic.AddUint64(&nextID, 1))
}

// Kind identifies the type of entity for collision filtering
type Kind uint8

const (
	KindNone Kind = iota
	KindShip
	KindShot
	KindEnemy
	KindEnemyShot
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindShot:
		return "shot"
	case KindEnemy:
		return "enemy"
	case KindEnemyShot:
		return "enemy-shot"
	default:
		return "none"
	}
}

// Entity is a moving axis-aligned rectangle with a collision tag.
type Entity struct {
	// Identity of the slot, stable across spawns
	ID ID

	// Top-left corner in world coordinates
	X, Y float64

	// Size in world units, fixed per slot
	Width, Height float64

	// Speed in world units per tick
	Speed float64

	// Alive is true while the entity is spawned
	Alive bool

	// Colliding is set by the detector and cleared on reap
	Colliding bool

	// Kind of this entity
	Kind Kind

	// CollidesWith is the single kind this entity can hit
	CollidesWith Kind
}

// New creates a dead entity with the given slot defaults.
func New(kind, collidesWith Kind, width, height float64) *Entity {
	return &Entity{
		ID:           newID(),
		Width:        width,
		Height:       height,
		Kind:         kind,
		CollidesWith: collidesWith,
	}
}

// Bounds returns the entity rectangle.
func (e *Entity) Bounds() geom.Rect {
	return geom.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// Overlaps reports whether the two entities intersect with non-zero area.
func (e *Entity) Overlaps(other *Entity) bool {
	return e.X < other.X+other.Width &&
		e.X+e.Width > other.X &&
		e.Y < other.Y+other.Height &&
		e.Y+e.Height > other.Y
}

// CompatibleWith reports whether e declares other's kind as its target.
// The relation is one-sided; callers wanting a pair check test both ways.
func (e *Entity) CompatibleWith(other *Entity) bool {
	return e.CollidesWith != KindNone && e.CollidesWith == other.Kind
}

// Validate checks the entity rectangle.
func (e *Entity) Validate() error {
	if !e.Bounds().Valid() {
		return fmt.Errorf("%w: %s %d at (%v, %v) size %vx%v",
			ErrInvalidGeometry, e.Kind, e.ID, e.X, e.Y, e.Width, e.Height)
	}
	return nil
}

// Place spawns the entity at the given position.
func (e *Entity) Place(x, y, speed float64) {
	e.X = x
	e.Y = y
	e.Speed = speed
	e.Alive = true
	e.Colliding = false
}

// Clear resets the entity for reuse in pooling.
// Size and tags are slot defaults and are kept.
func (e *Entity) Clear() {
	e.X = 0
	e.Y = 0
	e.Speed = 0
	e.Alive = false
	e.Colliding = false
}
