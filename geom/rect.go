// Package geom holds the axis-aligned rectangle shared by the spatial index,
// the collision detector and the renderer.
package geom

import "math"

// Rect is an axis-aligned rectangle covering [X, X+Width) x [Y, Y+Height).
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Overlaps reports whether the two rectangles share a non-zero area.
// Touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X &&
		r.Y < o.Bottom() && r.Bottom() > o.Y
}

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Right() <= r.Right() &&
		o.Y >= r.Y && o.Bottom() <= r.Bottom()
}

// Valid reports whether every coordinate is finite and both sides are positive.
func (r Rect) Valid() bool {
	return finite(r.X) && finite(r.Y) && finite(r.Width) && finite(r.Height) &&
		r.Width > 0 && r.Height > 0
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return finite(v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
