package game

import "galactic/entity"

// Actor is anything in the world that owns a body and moves once per tick.
type Actor interface {
	// Body returns the entity the actor owns
	Body() *entity.Entity

	// Advance moves the actor one tick; true means it is done
	Advance() bool
}

var (
	_ Actor = (*Ship)(nil)
	_ Actor = (*Shot)(nil)
	_ Actor = (*Enemy)(nil)
)
