// Package obstacle holds obstacle markers and the per-world registry that
// answers spatial queries for the search engine.
package obstacle

import (
	gpmath "github.com/Faultbox/gridpath/pkg/math"
)

// ID identifies an obstacle inside one registry.
type ID uint32

// Obstacle is a rectangular marker that either blocks cells or makes them
// more expensive to cross.
type Obstacle struct {
	ID         ID
	Bounds     gpmath.AABB
	Impassable bool
	Cost       float64 // only meaningful when Impassable is false
}

// Source answers "which obstacles are near this point" queries. Results are
// appended to dst, which callers reuse between queries.
type Source interface {
	QueryNear(x, y, radius float64, dst []*Obstacle) []*Obstacle
}

// AABBQuerier is implemented by sources that can query a box directly.
type AABBQuerier interface {
	QueryAABB(box gpmath.AABB, dst []*Obstacle) []*Obstacle
}

// SetCost sets the traversal cost. Negative costs are clamped to zero.
func (o *Obstacle) SetCost(cost float64) {
	if cost < 0 {
		cost = 0
	}
	o.Cost = cost
}
