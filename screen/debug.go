package screen

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"galactic/game"
	"galactic/geom"
)

// DebugState holds debug flags that persist across restarts
type DebugState struct {
	ShowTree bool // Show quadtree nodes and collision stats
}

var depthColors = []color.NRGBA{
	{R: 60, G: 90, B: 160, A: 255},
	{R: 70, G: 140, B: 170, A: 255},
	{R: 80, G: 170, B: 140, A: 255},
	{R: 140, G: 170, B: 80, A: 255},
	{R: 170, G: 140, B: 70, A: 255},
	{R: 170, G: 90, B: 70, A: 255},
}

// RenderDebug outlines every quadtree node from the last collision pass and
// prints the pass statistics.
func (r *Renderer) RenderDebug(dst *ebiten.Image, w *game.World) {
	w.Detector().Tree().Walk(func(b geom.Rect, depth, held int) {
		clr := depthColors[min(depth, len(depthColors)-1)]
		vector.StrokeRect(dst, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), 1, clr, false)
		if held > 0 {
			r.print(dst, fmt.Sprint(held), b.X+2, b.Y+2, text.AlignStart)
		}
	})

	stats := w.LastFrame().Collision
	cfg := w.Config()
	line := fmt.Sprintf("nodes %d | indexed %d | candidates %d | hits %d",
		stats.Nodes, stats.Indexed, stats.Candidates, stats.Hits)
	r.print(dst, line, 8, cfg.Height-20, text.AlignStart)

	pools := fmt.Sprintf("shots %d/%d | enemies %d/%d | enemy shots %d/%d",
		w.Shots().Len(), w.Shots().Cap(),
		w.Enemies().Len(), w.Enemies().Cap(),
		w.EnemyShots().Len(), w.EnemyShots().Cap())
	r.print(dst, pools, 8, cfg.Height-36, text.AlignStart)
}
