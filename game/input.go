package game

// Input is the state of the controls for one tick.
// It is captured by the caller before Tick; the world never reads devices.
type Input struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
	Fire  bool
}

// InputProvider produces the input for successive ticks.
type InputProvider interface {
	// Next returns the input for the given tick
	Next(tick uint64) Input
}

// Moving reports whether any direction is held.
func (in Input) Moving() bool {
	return in.Left || in.Right || in.Up || in.Down
}

// Sweep is a scripted pilot that holds fire and cycles left, up, right and
// down, Hold ticks each.
type Sweep struct {
	Hold uint64
}

// Next implements InputProvider.
func (s Sweep) Next(tick uint64) Input {
	phase := tick / max(s.Hold, 1) % 4
	return Input{
		Left:  phase == 0,
		Up:    phase == 1,
		Right: phase == 2,
		Down:  phase == 3,
		Fire:  true,
	}
}
