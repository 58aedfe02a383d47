package screen

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"galactic/entity"
	"galactic/game"
)

var (
	colorBackground = color.NRGBA{R: 3, G: 5, B: 16, A: 255}
	colorShip       = color.NRGBA{R: 80, G: 220, B: 120, A: 255}
	colorShot       = color.NRGBA{R: 255, G: 230, B: 90, A: 255}
	colorEnemy      = color.NRGBA{R: 230, G: 70, B: 70, A: 255}
	colorEnemyShot  = color.NRGBA{R: 255, G: 140, B: 40, A: 255}
	colorHit        = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colorHUD        = color.NRGBA{R: 200, G: 210, B: 230, A: 255}
)

// Renderer draws the world as coloured rectangles with a text HUD.
type Renderer struct {
	face text.Face
}

// NewRenderer creates a renderer using the built-in bitmap font.
func NewRenderer() *Renderer {
	return &Renderer{face: text.NewGoXFace(basicfont.Face7x13)}
}

// Render draws every live object. Objects hit this tick are drawn in the
// hit colour; they are reaped on the next tick.
func (r *Renderer) Render(dst *ebiten.Image, w *game.World) {
	for _, e := range w.Enemies().Live() {
		r.drawBody(dst, e.Body())
	}
	for _, s := range w.EnemyShots().Live() {
		r.drawBody(dst, s.Body())
	}
	for _, s := range w.Shots().Live() {
		r.drawBody(dst, s.Body())
	}
	if ship := w.Ship().Body(); ship.Alive {
		r.drawBody(dst, ship)
	}
}

func (r *Renderer) drawBody(dst *ebiten.Image, e *entity.Entity) {
	clr := kindColor(e.Kind)
	if e.Colliding {
		clr = colorHit
	}
	vector.DrawFilledRect(dst, float32(e.X), float32(e.Y), float32(e.Width), float32(e.Height), clr, false)
}

func kindColor(k entity.Kind) color.NRGBA {
	switch k {
	case entity.KindShip:
		return colorShip
	case entity.KindShot:
		return colorShot
	case entity.KindEnemy:
		return colorEnemy
	case entity.KindEnemyShot:
		return colorEnemyShot
	default:
		return colorHUD
	}
}

// RenderHUD draws the score line and, once the ship is lost, the restart prompt.
func (r *Renderer) RenderHUD(dst *ebiten.Image, w *game.World, fps float64) {
	hud := fmt.Sprintf("Score: %d | Wave: %d | FPS: %.0f", w.Score(), w.Wave(), fps)
	r.print(dst, hud, 8, 6, text.AlignStart)

	if w.GameOver() {
		cfg := w.Config()
		r.print(dst, "GAME OVER", cfg.Width/2, cfg.Height/2-14, text.AlignCenter)
		r.print(dst, "Press R to restart", cfg.Width/2, cfg.Height/2+4, text.AlignCenter)
	}
}

func (r *Renderer) print(dst *ebiten.Image, s string, x, y float64, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(colorHUD)
	op.PrimaryAlign = align
	text.Draw(dst, s, r.face, op)
}
