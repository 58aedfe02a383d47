package screen

import (
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	starCount     = 70
	starBaseSpeed = 1.0
)

// star is a single background dot
type star struct {
	x, y   float64
	speed  float64
	radius float32
	shade  uint8
}

// Background is a star field panning down the playfield.
type Background struct {
	stars  []star
	width  float64
	height float64
}

// NewBackground scatters stars over a width x height field.
func NewBackground(width, height float64, seed int64) *Background {
	rng := rand.New(rand.NewSource(seed))
	stars := make([]star, starCount)
	for i := range stars {
		stars[i] = star{
			x:      rng.Float64() * width,
			y:      rng.Float64() * height,
			speed:  starBaseSpeed * (0.3 + rng.Float64()*0.7),
			radius: float32(0.5 + rng.Float64()),
			shade:  uint8(90 + rng.Intn(150)),
		}
	}
	return &Background{stars: stars, width: width, height: height}
}

// Update pans every star down, wrapping at the bottom edge.
func (b *Background) Update() {
	for i := range b.stars {
		s := &b.stars[i]
		s.y += s.speed
		if s.y >= b.height {
			s.y -= b.height
		}
	}
}

// Draw paints the stars.
func (b *Background) Draw(dst *ebiten.Image) {
	for _, s := range b.stars {
		c := color.NRGBA{R: s.shade, G: s.shade, B: s.shade, A: 255}
		vector.DrawFilledCircle(dst, float32(s.x), float32(s.y), s.radius, c, false)
	}
}
