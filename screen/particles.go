package screen

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"galactic/entity"
	"galactic/game"
)

// Particle represents a single spark
type Particle struct {
	x, y     float64
	vx, vy   float64
	age      int // age in ticks
	lifetime int // total lifetime in ticks
	color    color.NRGBA
	size     float64
}

// Sparks bursts particles out of every object hit this tick.
type Sparks struct {
	particles    []Particle
	maxParticles int
	perBurst     int
	velocityMin  float64
	velocityMax  float64
	lifetimeMin  int
	lifetimeMax  int
	rng          *rand.Rand
}

// NewSparks creates a spark system holding at most maxParticles.
func NewSparks(maxParticles int, seed int64) *Sparks {
	return &Sparks{
		particles:    make([]Particle, 0, maxParticles),
		maxParticles: maxParticles,
		perBurst:     14,
		velocityMin:  0.5,
		velocityMax:  2.5,
		lifetimeMin:  12,
		lifetimeMax:  30,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// Update ages the sparks and bursts new ones from hit enemies and a hit ship.
func (s *Sparks) Update(w *game.World) {
	for i := 0; i < len(s.particles); {
		p := &s.particles[i]
		p.age++
		p.x += p.vx
		p.y += p.vy
		if p.age >= p.lifetime {
			last := len(s.particles) - 1
			s.particles[i] = s.particles[last]
			s.particles = s.particles[:last]
			continue
		}
		i++
	}

	for _, e := range w.Enemies().Live() {
		if b := e.Body(); b.Colliding {
			s.burst(b)
		}
	}
	if ship := w.Ship().Body(); ship.Alive && ship.Colliding {
		s.burst(ship)
	}
}

func (s *Sparks) burst(b *entity.Entity) {
	cx, cy := b.Bounds().Center()
	base := kindColor(b.Kind)

	for i := 0; i < s.perBurst && len(s.particles) < s.maxParticles; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := s.velocityMin + s.rng.Float64()*(s.velocityMax-s.velocityMin)
		s.particles = append(s.particles, Particle{
			x:        cx,
			y:        cy,
			vx:       math.Cos(angle) * speed,
			vy:       math.Sin(angle) * speed,
			lifetime: s.lifetimeMin + s.rng.Intn(s.lifetimeMax-s.lifetimeMin+1),
			color:    base,
			size:     1 + s.rng.Float64()*1.5,
		})
	}
}

// Draw renders every spark, fading with age.
func (s *Sparks) Draw(dst *ebiten.Image) {
	for _, p := range s.particles {
		fade := 1 - float64(p.age)/float64(p.lifetime)
		c := p.color
		c.A = uint8(float64(c.A) * fade)
		vector.DrawFilledCircle(dst, float32(p.x), float32(p.y), float32(p.size), c, false)
	}
}

// Reset drops every spark.
func (s *Sparks) Reset() {
	s.particles = s.particles[:0]
}
