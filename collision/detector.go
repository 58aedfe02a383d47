// Package collision runs the per-frame broad and narrow phase over every
// live entity.
package collision

import (
	"galactic/entity"
	"galactic/geom"
	"galactic/quadtree"
)

// Source supplies live entities for a frame, in a stable order.
// Pools satisfy it.
type Source interface {
	AppendBodies(dst []*entity.Entity) []*entity.Entity
}

// Stats describes one DetectAll pass.
type Stats struct {
	// Indexed is the number of entities inserted into the tree
	Indexed int

	// Skipped is the number of entities left out for malformed geometry
	Skipped int

	// Candidates is the total size of every candidate set queried
	Candidates int

	// Hits is the number of colliding pairs found; a pair seen from both sides counts twice
	Hits int

	// Nodes is the quadtree node count after the rebuild
	Nodes int
}

// Detector handles collision detection using a quadtree rebuilt every frame.
// Its buffers are reused, so a warmed-up detector does not allocate.
type Detector struct {
	tree *quadtree.Tree[*entity.Entity]

	gathered   []*entity.Entity
	all        []*entity.Entity
	candidates []*entity.Entity
}

// New creates a detector covering the world bounds.
func New(bounds geom.Rect, cfg quadtree.Config) (*Detector, error) {
	tree, err := quadtree.New[*entity.Entity](bounds, cfg)
	if err != nil {
		return nil, err
	}
	return &Detector{tree: tree}, nil
}

// DetectAll rebuilds the index from the ship and every source, then flags
// each compatible overlapping pair as colliding. Entities are not removed;
// their pools reap them on the next advance.
func (d *Detector) DetectAll(ship *entity.Entity, sources ...Source) Stats {
	var stats Stats

	d.gathered = d.gathered[:0]
	if ship != nil && ship.Alive {
		d.gathered = append(d.gathered, ship)
	}
	for _, src := range sources {
		d.gathered = src.AppendBodies(d.gathered)
	}

	// A malformed rectangle would sit at the root forever; keep it out of the frame.
	valid := d.gathered[:0]
	for _, e := range d.gathered {
		if e.Validate() != nil {
			stats.Skipped++
			continue
		}
		valid = append(valid, e)
	}
	clear(d.gathered[len(valid):])
	d.gathered = valid

	d.tree.Clear()
	d.tree.InsertBatch(d.gathered)
	stats.Indexed = len(d.gathered)
	stats.Nodes = d.tree.NodeCount()

	d.all = d.tree.All(d.all[:0])
	for _, a := range d.all {
		d.candidates = d.tree.Candidates(a, d.candidates[:0])
		stats.Candidates += len(d.candidates)

		for _, b := range d.candidates {
			if a == b {
				continue
			}
			if !a.CompatibleWith(b) && !b.CompatibleWith(a) {
				continue
			}
			if a.Overlaps(b) {
				a.Colliding = true
				b.Colliding = true
				stats.Hits++
			}
		}
	}

	return stats
}

// Tree returns the index as built by the last DetectAll.
func (d *Detector) Tree() *quadtree.Tree[*entity.Entity] {
	return d.tree
}
