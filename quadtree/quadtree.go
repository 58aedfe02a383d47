// Package quadtree implements a depth-bounded region quadtree over
// axis-aligned rectangles, rebuilt from scratch every frame.
//
// Quadrants are numbered
//
//	  1 | 0
//	 ---+---
//	  2 | 3
//
// An object moves into a child only when it fits entirely on one side of
// both midlines; anything touching or straddling a midline stays at the
// node. Queries walk the same path as insertion, so an object's candidates
// are everything held by its own node and the node's ancestors.
package quadtree

import (
	"errors"
	"fmt"

	"galactic/geom"
)

// ErrInvalidConfig is returned for non-positive limits or empty bounds.
var ErrInvalidConfig = errors.New("invalid quadtree config")

// Bounded is anything with a bounding rectangle.
type Bounded interface {
	Bounds() geom.Rect
}

// Config bounds the shape of the tree.
type Config struct {
	// MaxObjects is the number of objects a node holds before it splits
	MaxObjects int `yaml:"max_objects"`

	// MaxDepth is the deepest level a node can split to; the root is level 0
	MaxDepth int `yaml:"max_depth"`
}

// DefaultConfig returns the default split threshold and depth.
func DefaultConfig() Config {
	return Config{
		MaxObjects: 10,
		MaxDepth:   5,
	}
}

// Validate checks both limits are positive.
func (c Config) Validate() error {
	if c.MaxObjects <= 0 {
		return fmt.Errorf("%w: max objects %d", ErrInvalidConfig, c.MaxObjects)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: max depth %d", ErrInvalidConfig, c.MaxDepth)
	}
	return nil
}

type node[T Bounded] struct {
	bounds   geom.Rect
	depth    int
	objects  []T
	children [4]*node[T]
	split    bool
}

// Tree is a quadtree over a fixed world rectangle.
// Nodes released by Clear are kept and reused by later splits.
type Tree[T Bounded] struct {
	cfg   Config
	root  *node[T]
	spare []*node[T]

	nodes     int
	held      int
	allocated int
}

// New creates an empty tree covering bounds.
func New[T Bounded](bounds geom.Rect, cfg Config) (*Tree[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !bounds.Valid() {
		return nil, fmt.Errorf("%w: bounds %+v", ErrInvalidConfig, bounds)
	}

	t := &Tree[T]{cfg: cfg}
	t.root = t.newNode(bounds, 0)
	return t, nil
}

func (t *Tree[T]) newNode(bounds geom.Rect, depth int) *node[T] {
	var n *node[T]
	if last := len(t.spare) - 1; last >= 0 {
		n = t.spare[last]
		t.spare[last] = nil
		t.spare = t.spare[:last]
	} else {
		n = &node[T]{}
		t.allocated++
	}
	n.bounds = bounds
	n.depth = depth
	n.split = false
	t.nodes++
	return n
}

// Clear empties the tree back to a single root covering the same bounds.
func (t *Tree[T]) Clear() {
	t.release(t.root)
	t.root.split = false
	t.nodes = 1
	t.held = 0
}

func (t *Tree[T]) release(n *node[T]) {
	clear(n.objects)
	n.objects = n.objects[:0]
	if !n.split {
		return
	}
	for i, child := range n.children {
		t.release(child)
		t.spare = append(t.spare, child)
		n.children[i] = nil
	}
}

// Insert adds an object, splitting nodes that overflow.
func (t *Tree[T]) Insert(item T) {
	t.held++
	t.insert(t.root, item)
}

// InsertBatch inserts items in order.
func (t *Tree[T]) InsertBatch(items []T) {
	for _, item := range items {
		t.Insert(item)
	}
}

func (t *Tree[T]) insert(n *node[T], item T) {
	if n.split {
		if i := n.index(item.Bounds()); i >= 0 {
			t.insert(n.children[i], item)
			return
		}
	}

	n.objects = append(n.objects, item)
	if len(n.objects) <= t.cfg.MaxObjects || n.depth >= t.cfg.MaxDepth {
		return
	}

	if !n.split {
		t.split(n)
	}

	// Push down whatever now fits a quadrant, keeping the rest in order.
	kept := n.objects[:0]
	for _, obj := range n.objects {
		if i := n.index(obj.Bounds()); i >= 0 {
			t.insert(n.children[i], obj)
		} else {
			kept = append(kept, obj)
		}
	}
	clear(n.objects[len(kept):])
	n.objects = kept
}

func (t *Tree[T]) split(n *node[T]) {
	b := n.bounds
	w := b.Width / 2
	h := b.Height / 2
	depth := n.depth + 1

	n.children[0] = t.newNode(geom.Rect{X: b.X + w, Y: b.Y, Width: w, Height: h}, depth)
	n.children[1] = t.newNode(geom.Rect{X: b.X, Y: b.Y, Width: w, Height: h}, depth)
	n.children[2] = t.newNode(geom.Rect{X: b.X, Y: b.Y + h, Width: w, Height: h}, depth)
	n.children[3] = t.newNode(geom.Rect{X: b.X + w, Y: b.Y + h, Width: w, Height: h}, depth)
	n.split = true
}

// index returns the quadrant r fits in entirely, or -1 when it touches or
// crosses a midline.
func (n *node[T]) index(r geom.Rect) int {
	vertical := n.bounds.X + n.bounds.Width/2
	horizontal := n.bounds.Y + n.bounds.Height/2

	top := r.Y < horizontal && r.Bottom() < horizontal
	bottom := r.Y > horizontal

	if r.X < vertical && r.Right() < vertical {
		if top {
			return 1
		}
		if bottom {
			return 2
		}
	} else if r.X > vertical {
		if top {
			return 0
		}
		if bottom {
			return 3
		}
	}
	return -1
}

// Candidates appends every object that item could overlap: the objects of
// the node item would be inserted into and of all its ancestors. The deepest
// node's objects come first.
func (t *Tree[T]) Candidates(item T, dst []T) []T {
	return t.root.candidates(item.Bounds(), dst)
}

func (n *node[T]) candidates(r geom.Rect, dst []T) []T {
	if n.split {
		if i := n.index(r); i >= 0 {
			dst = n.children[i].candidates(r, dst)
		}
	}
	return append(dst, n.objects...)
}

// All appends every held object, depth first with children before the
// node's own objects.
func (t *Tree[T]) All(dst []T) []T {
	return t.root.all(dst)
}

func (n *node[T]) all(dst []T) []T {
	if n.split {
		for _, child := range n.children {
			dst = child.all(dst)
		}
	}
	return append(dst, n.objects...)
}

// Walk calls fn for every node, parents before children.
func (t *Tree[T]) Walk(fn func(bounds geom.Rect, depth, held int)) {
	t.root.walk(fn)
}

func (n *node[T]) walk(fn func(bounds geom.Rect, depth, held int)) {
	fn(n.bounds, n.depth, len(n.objects))
	if n.split {
		for _, child := range n.children {
			child.walk(fn)
		}
	}
}

// Bounds returns the world rectangle covered by the root.
func (t *Tree[T]) Bounds() geom.Rect { return t.root.bounds }

// Config returns the limits the tree was built with.
func (t *Tree[T]) Config() Config { return t.cfg }

// NodeCount returns the number of nodes in use.
func (t *Tree[T]) NodeCount() int { return t.nodes }

// Len returns the number of objects inserted since the last Clear.
func (t *Tree[T]) Len() int { return t.held }
