package screen

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"galactic/game"
)

// keyboard captures the controls once per tick and tracks the keys that act
// on release-then-press rather than while held.
type keyboard struct {
	prevRestart  bool
	prevAltEnter bool
}

// controls reads the arrow keys, WASD and space.
func (k *keyboard) controls() game.Input {
	return game.Input{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Up:    ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Down:  ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		Fire:  ebiten.IsKeyPressed(ebiten.KeySpace),
	}
}

// restart reports a fresh press of R.
func (k *keyboard) restart() bool {
	pressed := ebiten.IsKeyPressed(ebiten.KeyR)
	fresh := pressed && !k.prevRestart
	k.prevRestart = pressed
	return fresh
}

// debug reports a fresh press of F1.
func (k *keyboard) debug() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF1)
}

// fullscreen toggles fullscreen on Alt+Enter.
func (k *keyboard) fullscreen() {
	alt := ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight)
	altEnter := alt && ebiten.IsKeyPressed(ebiten.KeyEnter)
	if altEnter && !k.prevAltEnter {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	k.prevAltEnter = altEnter
}
